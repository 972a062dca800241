package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/ratemyadjusters/ratemyadjusters-api/internal/models"
)

// InquiryRepository handles contact-inquiry persistence
type InquiryRepository struct {
	pool *pgxpool.Pool
}

// NewInquiryRepository creates a new inquiry repository
func NewInquiryRepository(pool *pgxpool.Pool) *InquiryRepository {
	return &InquiryRepository{pool: pool}
}

// Create inserts an inquiry and returns its id
func (r *InquiryRepository) Create(ctx context.Context, inquiry *models.Inquiry) (string, error) {
	start := time.Now()
	operation := "createInquiry"

	query := `
		INSERT INTO inquiries (inquiry_type, name, email, phone, subject, message)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	var id string
	err := r.pool.QueryRow(ctx, query,
		inquiry.InquiryType, inquiry.Name, inquiry.Email, inquiry.Phone, inquiry.Subject, inquiry.Message,
	).Scan(&id)
	if err != nil {
		recordMetrics(operation, "error", start, zap.Error(err))
		return "", fmt.Errorf("failed to create inquiry: %w", err)
	}

	recordMetrics(operation, "success", start, zap.String("inquiry_id", id))
	return id, nil
}
