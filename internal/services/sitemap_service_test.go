package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ratemyadjusters/ratemyadjusters-api/internal/models"
	"github.com/ratemyadjusters/ratemyadjusters-api/internal/repository"
	"github.com/ratemyadjusters/ratemyadjusters-api/internal/services"
	apperrors "github.com/ratemyadjusters/ratemyadjusters-api/pkg/errors"
)

func TestSitemapService_IndexPaginates(t *testing.T) {
	mockRepo := new(MockEntityRepository)
	service := services.NewSitemapService(mockRepo, "https://ratemyadjusters.com", 1000)
	ctx := context.Background()

	// 2500 adjusters -> 3 pages, 0 public adjusters, 1 agent -> 1 page
	for _, schema := range models.AllSchemas() {
		switch schema.Type {
		case models.EntityTypeAdjuster:
			mockRepo.On("Count", ctx, schema).Return(2500, nil).Once()
		case models.EntityTypePublicAdjuster:
			mockRepo.On("Count", ctx, schema).Return(0, nil).Once()
		default:
			mockRepo.On("Count", ctx, schema).Return(1, nil).Once()
		}
	}

	index, err := service.Index(ctx)
	assert.NoError(t, err)
	assert.Len(t, index.Sitemaps, 4)
	assert.Equal(t, "https://ratemyadjusters.com/sitemaps/adjusters/1.xml", index.Sitemaps[0].Loc)
	assert.Equal(t, "https://ratemyadjusters.com/sitemaps/adjusters/3.xml", index.Sitemaps[2].Loc)
	assert.Equal(t, "https://ratemyadjusters.com/sitemaps/insurance-agents/1.xml", index.Sitemaps[3].Loc)
}

func TestSitemapService_PageOffsets(t *testing.T) {
	mockRepo := new(MockEntityRepository)
	service := services.NewSitemapService(mockRepo, "https://ratemyadjusters.com", 1000)
	ctx := context.Background()
	schema := adjusterSchema(t)

	updated := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	mockRepo.On("ListSlugs", ctx, schema, 1000, 1000).
		Return([]repository.SlugEntry{{Slug: "john-smith-tx-1", UpdatedAt: updated}}, nil).Once()

	urlSet, err := service.Page(ctx, schema, 2)
	assert.NoError(t, err)
	assert.Len(t, urlSet.URLs, 1)
	assert.Equal(t, "https://ratemyadjusters.com/adjusters/john-smith-tx-1", urlSet.URLs[0].Loc)
	assert.Equal(t, "2026-08-01", urlSet.URLs[0].LastMod)
}

func TestSitemapService_PagePastEndNotFound(t *testing.T) {
	mockRepo := new(MockEntityRepository)
	service := services.NewSitemapService(mockRepo, "https://ratemyadjusters.com", 1000)
	ctx := context.Background()
	schema := adjusterSchema(t)

	mockRepo.On("ListSlugs", ctx, schema, 9000, 1000).
		Return([]repository.SlugEntry{}, nil).Once()

	_, err := service.Page(ctx, schema, 10)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	_, err = service.Page(ctx, schema, 0)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
