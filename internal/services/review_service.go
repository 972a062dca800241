package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ratemyadjusters/ratemyadjusters-api/internal/models"
	"github.com/ratemyadjusters/ratemyadjusters-api/internal/repository"
	"github.com/ratemyadjusters/ratemyadjusters-api/internal/wizard"
	apperrors "github.com/ratemyadjusters/ratemyadjusters-api/pkg/errors"
	"github.com/ratemyadjusters/ratemyadjusters-api/pkg/logger"
	"github.com/ratemyadjusters/ratemyadjusters-api/pkg/metrics"
	"github.com/ratemyadjusters/ratemyadjusters-api/pkg/recaptcha"
	"github.com/ratemyadjusters/ratemyadjusters-api/pkg/slug"
)

// reviewSubmitAction is the reCAPTCHA action name the form executes with
const reviewSubmitAction = "submit_review"

// Sentinel errors returned alongside user-facing response messages so
// handlers can pick status codes without string matching.
var (
	ErrDraftInvalid       = apperrors.InvalidInputError("draft", "failed step validation")
	ErrCaptchaFailed      = apperrors.InvalidInputError("recaptchaToken", "verification failed")
	ErrEntityCreateFailed = apperrors.InternalError("entity creation failed")
	ErrReviewCreateFailed = apperrors.InternalError("review creation failed")
)

// ReviewService orchestrates review submission: wizard replay, abuse
// checks, entity resolution and the two datastore writes.
type ReviewService struct {
	entityRepo repository.EntityRepositoryInterface
	reviewRepo repository.ReviewRepositoryInterface
	verifier   VerifierInterface
	profiles   ProfileServiceInterface
	now        func() time.Time
}

// NewReviewService creates a new review service
func NewReviewService(
	entityRepo repository.EntityRepositoryInterface,
	reviewRepo repository.ReviewRepositoryInterface,
	verifier VerifierInterface,
	profiles ProfileServiceInterface,
) *ReviewService {
	return &ReviewService{
		entityRepo: entityRepo,
		reviewRepo: reviewRepo,
		verifier:   verifier,
		profiles:   profiles,
		now:        time.Now,
	}
}

// Submit runs the full submission pipeline. The returned response always
// carries a user-facing Error message when err is non-nil, except for
// honeypot trips, which return a fake success and write nothing.
func (s *ReviewService) Submit(ctx context.Context, schema *models.TypeSchema, req *models.SubmitReviewRequest) (*models.SubmitReviewResponse, error) {
	start := time.Now()
	submissionID := uuid.New().String()
	log := logger.With(
		zap.String("submission_id", submissionID),
		zap.String("entity_type", string(schema.Type)))

	// Replay the wizard server-side. A payload that could not have
	// walked all four steps in a browser is rejected with the same
	// message the form would have shown.
	draft, msg := replayDraft(schema, req)
	if msg != "" {
		metrics.ReviewSubmissions.WithLabelValues(string(schema.Type), "invalid").Inc()
		log.Info("Review rejected by draft validation", zap.String("reason", msg))
		return &models.SubmitReviewResponse{Error: msg}, ErrDraftInvalid
	}

	// Honeypot: bots fill the hidden field. Report success, write
	// nothing, and give no signal that the trap fired.
	if strings.TrimSpace(req.Website) != "" {
		metrics.HoneypotTrips.WithLabelValues("review").Inc()
		metrics.ReviewSubmissions.WithLabelValues(string(schema.Type), "honeypot").Inc()
		log.Info("Honeypot tripped on review form")
		return &models.SubmitReviewResponse{Success: true}, nil
	}

	if schema.RequiresCaptcha {
		if resp, err := s.verifyCaptcha(log, schema, req.RecaptchaToken); err != nil {
			draft.Finish(false)
			return resp, err
		}
	}

	entity, resp, err := s.resolveEntity(ctx, log, schema, draft)
	if err != nil {
		draft.Finish(false)
		return resp, err
	}

	review := buildReview(schema, entity.ID, draft)
	reviewID, err := s.reviewRepo.Create(ctx, schema, review)
	if err != nil {
		// The entity row (if we just created it) stays. It is valid on
		// its own and a retried submission will find it by search.
		metrics.ReviewSubmissions.WithLabelValues(string(schema.Type), "error").Inc()
		log.Error("Review insert failed", zap.String("entity_id", entity.ID), zap.Error(err))
		draft.Finish(false)
		return &models.SubmitReviewResponse{
			EntityID:   entity.ID,
			EntitySlug: entity.Slug,
			Error:      "We couldn't submit your review. Please try again.",
		}, ErrReviewCreateFailed
	}

	draft.Finish(true)
	s.profiles.InvalidateProfile(schema, entity.Slug)

	metrics.ReviewSubmissions.WithLabelValues(string(schema.Type), "accepted").Inc()
	metrics.ReviewDuration.Observe(metrics.MeasureDuration(start))
	log.Info("Review accepted",
		zap.String("review_id", reviewID),
		zap.String("entity_id", entity.ID),
		zap.String("status", string(review.Status)),
		zap.Duration("duration", time.Since(start)))

	return &models.SubmitReviewResponse{
		Success:    true,
		ReviewID:   reviewID,
		EntityID:   entity.ID,
		EntitySlug: entity.Slug,
	}, nil
}

// verifyCaptcha enforces the reCAPTCHA gate. Provider outages fail open:
// a submission is never lost to a third-party incident.
func (s *ReviewService) verifyCaptcha(log *zap.Logger, schema *models.TypeSchema, token string) (*models.SubmitReviewResponse, error) {
	if token == "" {
		metrics.RecaptchaVerifications.WithLabelValues("rejected").Inc()
		metrics.ReviewSubmissions.WithLabelValues(string(schema.Type), "captcha_rejected").Inc()
		log.Info("Review rejected: missing captcha token")
		return &models.SubmitReviewResponse{
			Error: "We couldn't verify your submission. Please try again.",
		}, ErrCaptchaFailed
	}

	score, err := s.verifier.Verify(token, reviewSubmitAction)
	switch {
	case err == nil:
		metrics.RecaptchaVerifications.WithLabelValues("passed").Inc()
		return nil, nil
	case apperrors.Is(err, recaptcha.ErrUnavailable):
		metrics.RecaptchaVerifications.WithLabelValues("unavailable").Inc()
		log.Warn("Captcha verifier unavailable, allowing submission", zap.Error(err))
		return nil, nil
	default:
		metrics.RecaptchaVerifications.WithLabelValues("rejected").Inc()
		metrics.ReviewSubmissions.WithLabelValues(string(schema.Type), "captcha_rejected").Inc()
		log.Info("Review rejected by captcha", zap.Float64("score", score))
		return &models.SubmitReviewResponse{
			Error: "We couldn't verify your submission. Please try again.",
		}, ErrCaptchaFailed
	}
}

// resolveEntity looks up the selected entity or creates one from the
// free-text name. A stale deep-link id falls back to the create path
// rather than failing the whole submission.
func (s *ReviewService) resolveEntity(ctx context.Context, log *zap.Logger, schema *models.TypeSchema, draft *wizard.Draft) (*models.Entity, *models.SubmitReviewResponse, error) {
	if draft.EntityID != "" {
		// A non-UUID id would error at the datastore as a type fault, not
		// a missing row; treat it like any other dead link.
		if _, parseErr := uuid.Parse(draft.EntityID); parseErr != nil {
			log.Info("Malformed entity id, creating from name",
				zap.String("entity_id", draft.EntityID))
			return s.createEntity(ctx, log, schema, draft)
		}
		entity, err := s.entityRepo.GetByID(ctx, schema, draft.EntityID)
		if err == nil {
			return entity, nil, nil
		}
		if !apperrors.Is(err, apperrors.ErrNotFound) {
			metrics.ReviewSubmissions.WithLabelValues(string(schema.Type), "error").Inc()
			log.Error("Entity lookup failed", zap.String("entity_id", draft.EntityID), zap.Error(err))
			return nil, &models.SubmitReviewResponse{
				Error: "We couldn't submit your review. Please try again.",
			}, ErrEntityCreateFailed
		}
		log.Info("Selected entity no longer exists, creating from name",
			zap.String("entity_id", draft.EntityID))
	}

	return s.createEntity(ctx, log, schema, draft)
}

// createEntity builds an entity row from the draft's free-text fields
func (s *ReviewService) createEntity(ctx context.Context, log *zap.Logger, schema *models.TypeSchema, draft *wizard.Draft) (*models.Entity, *models.SubmitReviewResponse, error) {
	first, last := splitName(draft.TargetName)
	now := s.now()
	rec := &models.NewEntity{
		FirstName: first,
		LastName:  last,
		Company:   models.OptionalString(draft.CompanyName),
		State:     strings.ToUpper(draft.State),
		City:      models.OptionalString(draft.City),
		Slug:      slug.GenerateEntitySlug(first, last, draft.State, now),
	}

	entity, err := s.entityRepo.Create(ctx, schema, rec)
	if apperrors.Is(err, apperrors.ErrConflict) {
		// A concurrent submission won the insert race. Reuse its row.
		log.Info("Entity already exists, reusing", zap.String("slug", rec.Slug))
		entity, err = s.entityRepo.GetBySlug(ctx, schema, rec.Slug)
	}
	if err != nil {
		metrics.ReviewSubmissions.WithLabelValues(string(schema.Type), "error").Inc()
		log.Error("Entity creation failed", zap.String("slug", rec.Slug), zap.Error(err))
		return nil, &models.SubmitReviewResponse{
			Error: "We couldn't create this profile. Please try again.",
		}, ErrEntityCreateFailed
	}

	metrics.EntitiesCreated.WithLabelValues(string(schema.Type)).Inc()
	log.Info("Entity created from review submission",
		zap.String("entity_id", entity.ID),
		zap.String("slug", entity.Slug))
	return entity, nil, nil
}

// replayDraft feeds the posted payload through the wizard step by step.
// Returns the completed draft, or the first step's validation message.
func replayDraft(schema *models.TypeSchema, req *models.SubmitReviewRequest) (*wizard.Draft, string) {
	draft := wizard.NewDraft(wizard.Rules{
		ClaimTypes: schema.ClaimTypes,
		Outcomes:   schema.Outcomes,
	})

	draft.EntityID = strings.TrimSpace(req.EntityID)
	draft.TargetName = strings.TrimSpace(req.TargetName)
	draft.CompanyName = req.CompanyName
	draft.SetNarrative(req.Narrative)
	draft.SetSecondary(req.SecondaryComments)
	draft.OverallRating = req.OverallRating

	draft.State = req.State
	draft.City = req.City
	draft.ClaimType = req.ClaimType

	draft.ClaimOutcome = req.ClaimOutcome
	draft.Recommend = req.Recommend
	draft.Communication = req.Communication
	draft.Fairness = req.Fairness
	draft.Speed = req.Speed
	draft.Professionalism = req.Professionalism

	draft.Email = req.Email
	draft.FirstName = req.FirstName
	draft.ReviewerRole = req.ReviewerRole
	draft.OptIn = req.OptIn

	for draft.Step() < wizard.StepContact {
		if !draft.Continue() {
			return nil, draft.Err()
		}
	}
	if !draft.BeginSubmit() {
		return nil, draft.Err()
	}
	return draft, ""
}

// buildReview maps the validated draft to a review row, applying the
// per-type default moderation status
func buildReview(schema *models.TypeSchema, entityID string, draft *wizard.Draft) *models.Review {
	return &models.Review{
		EntityID:        entityID,
		OverallRating:   draft.OverallRating,
		Body:            strings.TrimSpace(draft.Narrative()),
		Secondary:       models.OptionalString(draft.Secondary()),
		Communication:   models.OptionalRating(draft.Communication),
		Fairness:        models.OptionalRating(draft.Fairness),
		Speed:           models.OptionalRating(draft.Speed),
		Professionalism: models.OptionalRating(draft.Professionalism),
		ClaimType:       strings.ToLower(draft.ClaimType),
		ClaimOutcome:    strings.ToLower(draft.ClaimOutcome),
		Recommend:       draft.Recommend,
		ReviewerRole:    models.OptionalString(draft.ReviewerRole),
		ReviewerEmail:   models.OptionalString(draft.Email),
		ReviewerName:    models.OptionalString(draft.FirstName),
		Status:          schema.DefaultReviewStatus,
	}
}

// splitName breaks a free-text name into first and last. A single-token
// name gets a placeholder last name so the entity row stays well-formed.
func splitName(name string) (string, string) {
	tokens := strings.Fields(name)
	switch len(tokens) {
	case 0:
		return "Unknown", "Unknown"
	case 1:
		return tokens[0], "Unknown"
	default:
		return tokens[0], strings.Join(tokens[1:], " ")
	}
}
