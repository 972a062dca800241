package models

import (
	"strings"
	"time"
)

// EntityType identifies a kind of reviewable entity
type EntityType string

const (
	EntityTypeAdjuster       EntityType = "adjuster"
	EntityTypePublicAdjuster EntityType = "public_adjuster"
	EntityTypeInsuranceAgent EntityType = "insurance_agent"
)

// ModerationStatus is the publication gate state of a review
type ModerationStatus string

const (
	ModerationPending  ModerationStatus = "pending"
	ModerationApproved ModerationStatus = "approved"
	ModerationRejected ModerationStatus = "rejected"
)

// License verification states maintained by the data-import pipeline
const (
	LicenseUnverified = "unverified"
	LicenseVerified   = "verified"
	LicenseExpired    = "expired"
)

// TypeSchema describes one reviewable-entity type. The three review forms
// are a single generic workflow parameterized by this descriptor: table
// names, category enumerations, captcha requirement and the default
// moderation status all live here instead of being copy-pasted per form.
type TypeSchema struct {
	Type         EntityType
	PathSegment  string // URL path segment, e.g. "adjusters"
	Table        string
	ReviewsTable string
	HasCompany   bool

	// Only the adjuster form carries the invisible-challenge widget.
	RequiresCaptcha bool

	// Adjuster reviews enter moderation as pending; public-adjuster
	// reviews publish immediately. The asymmetry is product behavior
	// carried over deliberately, kept explicit rather than hardcoded.
	DefaultReviewStatus ModerationStatus

	ClaimTypes []string // step-2 category selector values
	Outcomes   []string // step-3 outcome values
}

var claimOutcomes = []string{"approved", "denied", "partial", "still_open", "other"}

var typeSchemas = []*TypeSchema{
	{
		Type:                EntityTypeAdjuster,
		PathSegment:         "adjusters",
		Table:               "adjusters",
		ReviewsTable:        "adjuster_reviews",
		HasCompany:          true,
		RequiresCaptcha:     true,
		DefaultReviewStatus: ModerationPending,
		ClaimTypes:          []string{"roof", "water", "fire", "wind", "hail", "flood", "mold", "theft", "auto", "other"},
		Outcomes:            claimOutcomes,
	},
	{
		Type:                EntityTypePublicAdjuster,
		PathSegment:         "public-adjusters",
		Table:               "public_adjusters",
		ReviewsTable:        "public_adjuster_reviews",
		HasCompany:          true,
		RequiresCaptcha:     false,
		DefaultReviewStatus: ModerationApproved,
		ClaimTypes:          []string{"roof", "water", "fire", "wind", "hail", "flood", "mold", "theft", "other"},
		Outcomes:            claimOutcomes,
	},
	{
		Type:                EntityTypeInsuranceAgent,
		PathSegment:         "insurance-agents",
		Table:               "insurance_agents",
		ReviewsTable:        "insurance_agent_reviews",
		HasCompany:          true,
		RequiresCaptcha:     false,
		DefaultReviewStatus: ModerationPending,
		ClaimTypes:          []string{"auto", "home", "life", "health", "commercial", "other"},
		Outcomes:            claimOutcomes,
	},
}

// SchemaFor returns the descriptor for an entity type
func SchemaFor(t EntityType) (*TypeSchema, bool) {
	for _, s := range typeSchemas {
		if s.Type == t {
			return s, true
		}
	}
	return nil, false
}

// SchemaForPath returns the descriptor for a URL path segment like "adjusters"
func SchemaForPath(segment string) (*TypeSchema, bool) {
	for _, s := range typeSchemas {
		if s.PathSegment == segment {
			return s, true
		}
	}
	return nil, false
}

// AllSchemas returns every registered entity-type descriptor
func AllSchemas() []*TypeSchema {
	return typeSchemas
}

// ValidClaimType reports whether v is a valid category for this type
func (s *TypeSchema) ValidClaimType(v string) bool {
	return containsFold(s.ClaimTypes, v)
}

// ValidOutcome reports whether v is a valid claim outcome for this type
func (s *TypeSchema) ValidOutcome(v string) bool {
	return containsFold(s.Outcomes, v)
}

func containsFold(list []string, v string) bool {
	for _, item := range list {
		if strings.EqualFold(item, v) {
			return true
		}
	}
	return false
}

// Entity represents a reviewable person/company record. The aggregate
// fields (AvgRating, ReviewCount) are denormalized and recomputed by the
// datastore when reviews are approved; this service never writes them.
type Entity struct {
	ID            string     `json:"id"`
	Type          EntityType `json:"type"`
	FirstName     string     `json:"firstName"`
	LastName      string     `json:"lastName"`
	Company       *string    `json:"company,omitempty"`
	State         string     `json:"state"`
	City          *string    `json:"city,omitempty"`
	Slug          string     `json:"slug"`
	LicenseStatus string     `json:"licenseStatus"`
	AvgRating     float64    `json:"avgRating"`
	ReviewCount   int        `json:"reviewCount"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

// DisplayName returns "First Last" for rendering and search results
func (e *Entity) DisplayName() string {
	return strings.TrimSpace(e.FirstName + " " + e.LastName)
}

// EntitySummary is the lightweight search-result shape returned by the
// entity resolver
type EntitySummary struct {
	ID          string  `json:"id"`
	DisplayName string  `json:"displayName"`
	State       string  `json:"state"`
	Company     *string `json:"company,omitempty"`
}

// NewEntity carries the fields for an implicit entity creation triggered
// by a reviewer who could not find an existing profile. Empty optional
// strings are represented as nil pointers, never empty-string columns.
type NewEntity struct {
	FirstName string
	LastName  string
	Company   *string
	State     string
	City      *string
	Slug      string
}

// NameFilter expresses the resolver's prefix-matching policy for the
// repository layer. Exactly one of the two shapes is populated: a
// two-token query sets FirstPrefix/LastPrefix, a one-token query sets
// AnyPrefix (matched against first name, last name and, when
// IncludeCompany, company name).
type NameFilter struct {
	FirstPrefix    string
	LastPrefix     string
	AnyPrefix      string
	IncludeCompany bool
}

// OptionalString maps "" to absence. Empty string and unset are both
// represented as NULL in the datastore.
func OptionalString(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// OptionalRating maps the wizard's 0 (unset) to absence
func OptionalRating(n int) *int {
	if n == 0 {
		return nil
	}
	return &n
}
