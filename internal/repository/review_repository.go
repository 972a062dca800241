package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/ratemyadjusters/ratemyadjusters-api/internal/models"
	apperrors "github.com/ratemyadjusters/ratemyadjusters-api/pkg/errors"
)

// ReviewRepository handles review persistence. Each entity type has its
// own reviews table, named by the TypeSchema descriptor.
type ReviewRepository struct {
	pool *pgxpool.Pool
}

// NewReviewRepository creates a new review repository
func NewReviewRepository(pool *pgxpool.Pool) *ReviewRepository {
	return &ReviewRepository{pool: pool}
}

// Create inserts a review row referencing an existing entity id and
// returns the new review id. Unset sub-ratings and optional reviewer
// fields arrive as nil and are stored as NULL.
func (r *ReviewRepository) Create(ctx context.Context, schema *models.TypeSchema, review *models.Review) (string, error) {
	start := time.Now()
	operation := "createReview"

	query := fmt.Sprintf(`
		INSERT INTO %s (
			entity_id, overall_rating, body, secondary_comments,
			communication_rating, fairness_rating, speed_rating, professionalism_rating,
			claim_type, claim_outcome, recommend,
			reviewer_role, reviewer_email, reviewer_name, status
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING id
	`, schema.ReviewsTable)

	var reviewID string
	err := r.pool.QueryRow(ctx, query,
		review.EntityID, review.OverallRating, review.Body, review.Secondary,
		review.Communication, review.Fairness, review.Speed, review.Professionalism,
		review.ClaimType, review.ClaimOutcome, review.Recommend,
		review.ReviewerRole, review.ReviewerEmail, review.ReviewerName, review.Status,
	).Scan(&reviewID)
	if err != nil {
		// 23503: the referenced entity id does not exist
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			recordMetrics(operation, "error", start, zap.Error(err))
			return "", fmt.Errorf("review references missing entity: %w", apperrors.ErrNotFound)
		}
		recordMetrics(operation, "error", start, zap.Error(err))
		return "", fmt.Errorf("failed to create review: %w", err)
	}

	recordMetrics(operation, "success", start, zap.String("review_id", reviewID))
	return reviewID, nil
}
