package models

import "time"

// Review represents a persisted review row. Optional sub-ratings and
// reviewer fields are nil when unset and stored as NULL.
type Review struct {
	ID              string           `json:"id"`
	EntityID        string           `json:"entityId"`
	OverallRating   int              `json:"overallRating"`
	Body            string           `json:"body"`
	Secondary       *string          `json:"secondary,omitempty"`
	Communication   *int             `json:"communication,omitempty"`
	Fairness        *int             `json:"fairness,omitempty"`
	Speed           *int             `json:"speed,omitempty"`
	Professionalism *int             `json:"professionalism,omitempty"`
	ClaimType       string           `json:"claimType"`
	ClaimOutcome    string           `json:"claimOutcome"`
	Recommend       string           `json:"recommend"`
	ReviewerRole    *string          `json:"reviewerRole,omitempty"`
	ReviewerEmail   *string          `json:"-"`
	ReviewerName    *string          `json:"-"`
	Status          ModerationStatus `json:"status"`
	CreatedAt       time.Time        `json:"createdAt"`
}

// SubmitReviewRequest is the full wizard draft posted at final submission.
// Field-level validation (step gating, minimum lengths, enumerations) is
// owned by the wizard replay in the review service; binding tags only
// guard against oversized or malformed payloads.
type SubmitReviewRequest struct {
	// Entity selection: id from the resolver or a deep link, or free
	// text from manual entry
	EntityID    string `json:"entityId" binding:"omitempty,max=64"`
	TargetName  string `json:"targetName" binding:"max=200"`
	CompanyName string `json:"companyName" binding:"max=200"`

	// Step 1: experience
	Narrative         string `json:"narrative" binding:"max=5000"`
	SecondaryComments string `json:"secondaryComments" binding:"max=5000"`
	OverallRating     int    `json:"overallRating" binding:"min=0,max=5"`

	// Step 2: context
	State     string `json:"state" binding:"max=2"`
	City      string `json:"city" binding:"max=100"`
	ClaimType string `json:"claimType" binding:"max=50"`

	// Step 3: outcome
	ClaimOutcome    string `json:"claimOutcome" binding:"max=50"`
	Recommend       string `json:"recommend" binding:"omitempty,oneof=yes no"`
	Communication   int    `json:"communication" binding:"min=0,max=5"`
	Fairness        int    `json:"fairness" binding:"min=0,max=5"`
	Speed           int    `json:"speed" binding:"min=0,max=5"`
	Professionalism int    `json:"professionalism" binding:"min=0,max=5"`

	// Step 4: contact (all optional)
	Email        string `json:"email" binding:"omitempty,email"`
	FirstName    string `json:"firstName" binding:"max=100"`
	ReviewerRole string `json:"reviewerRole" binding:"max=50"`
	OptIn        bool   `json:"optIn"`

	// Website is the honeypot. Hidden off-screen on the form; humans
	// never fill it.
	Website string `json:"website"`

	RecaptchaToken string `json:"recaptchaToken"`
}

// SubmitReviewResponse represents the response after submitting a review
type SubmitReviewResponse struct {
	Success    bool   `json:"success"`
	ReviewID   string `json:"reviewId,omitempty"`
	EntityID   string `json:"entityId,omitempty"`
	EntitySlug string `json:"entitySlug,omitempty"`
	Error      string `json:"error,omitempty"`
}

// SearchResponse is the resolver's answer to one search-as-you-type
// query. Seq echoes the caller-supplied sequence number so clients can
// discard responses that arrive out of order.
type SearchResponse struct {
	Query   string           `json:"query"`
	Seq     int64            `json:"seq"`
	Results []*EntitySummary `json:"results"`
}

// VerifyCaptchaRequest is the thin relay payload forwarded to the
// verification provider
type VerifyCaptchaRequest struct {
	Token  string `json:"token" binding:"required"`
	Action string `json:"action" binding:"required,max=50"`
}

// VerifyCaptchaResponse mirrors the provider's pass/fail plus trust score
type VerifyCaptchaResponse struct {
	Success bool    `json:"success"`
	Score   float64 `json:"score"`
}
