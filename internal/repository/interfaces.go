package repository

import (
	"context"
	"time"

	"github.com/ratemyadjusters/ratemyadjusters-api/internal/models"
)

// EntityRepositoryInterface defines data access for reviewable entities.
type EntityRepositoryInterface interface {
	// Search returns up to limit lightweight summaries matching the
	// prefix filter, ordered by last name, first name. Zero matches is
	// not an error.
	Search(ctx context.Context, schema *models.TypeSchema, filter models.NameFilter, limit int) ([]*models.EntitySummary, error)
	GetByID(ctx context.Context, schema *models.TypeSchema, id string) (*models.Entity, error)
	GetBySlug(ctx context.Context, schema *models.TypeSchema, slug string) (*models.Entity, error)
	Create(ctx context.Context, schema *models.TypeSchema, rec *models.NewEntity) (*models.Entity, error)
	Count(ctx context.Context, schema *models.TypeSchema) (int, error)
	ListSlugs(ctx context.Context, schema *models.TypeSchema, offset, limit int) ([]SlugEntry, error)
}

// SlugEntry is one sitemap row
type SlugEntry struct {
	Slug      string
	UpdatedAt time.Time
}

// ReviewRepositoryInterface defines review persistence
type ReviewRepositoryInterface interface {
	Create(ctx context.Context, schema *models.TypeSchema, review *models.Review) (string, error)
}

// InquiryRepositoryInterface defines contact-inquiry persistence
type InquiryRepositoryInterface interface {
	Create(ctx context.Context, inquiry *models.Inquiry) (string, error)
}
