package services

import (
	"context"

	"github.com/ratemyadjusters/ratemyadjusters-api/internal/models"
)

// SearchServiceInterface defines the interface for entity search operations
type SearchServiceInterface interface {
	Search(ctx context.Context, schema *models.TypeSchema, query string, seq int64) (*models.SearchResponse, error)
	GetByID(ctx context.Context, schema *models.TypeSchema, id string) (*models.Entity, error)
}

// ReviewServiceInterface defines the interface for review submission
type ReviewServiceInterface interface {
	Submit(ctx context.Context, schema *models.TypeSchema, req *models.SubmitReviewRequest) (*models.SubmitReviewResponse, error)
}

// ContactServiceInterface defines the interface for contact inquiries
type ContactServiceInterface interface {
	Submit(ctx context.Context, req *models.InquiryRequest) (*models.InquiryResponse, error)
}

// ProfileServiceInterface defines the interface for public profile lookups
type ProfileServiceInterface interface {
	GetProfile(ctx context.Context, schema *models.TypeSchema, slug string) (*models.Entity, error)
	InvalidateProfile(schema *models.TypeSchema, slug string)
	FlushProfiles()
}

// SitemapServiceInterface defines the interface for sitemap generation
type SitemapServiceInterface interface {
	Index(ctx context.Context) (*models.SitemapIndex, error)
	Page(ctx context.Context, schema *models.TypeSchema, page int) (*models.SitemapURLSet, error)
}

// VerifierInterface abstracts the reCAPTCHA verifier for testing
type VerifierInterface interface {
	Verify(token, expectedAction string) (float64, error)
}
