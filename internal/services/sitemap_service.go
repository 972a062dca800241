package services

import (
	"context"
	"fmt"
	"time"

	"github.com/ratemyadjusters/ratemyadjusters-api/internal/models"
	"github.com/ratemyadjusters/ratemyadjusters-api/internal/repository"
	apperrors "github.com/ratemyadjusters/ratemyadjusters-api/pkg/errors"
)

// SitemapService builds the sitemap index and its paginated per-type
// pages from entity slugs
type SitemapService struct {
	entityRepo repository.EntityRepositoryInterface
	baseURL    string
	pageSize   int
}

// NewSitemapService creates a sitemap service. baseURL is the public
// site origin without a trailing slash.
func NewSitemapService(entityRepo repository.EntityRepositoryInterface, baseURL string, pageSize int) *SitemapService {
	return &SitemapService{
		entityRepo: entityRepo,
		baseURL:    baseURL,
		pageSize:   pageSize,
	}
}

// Index lists one sitemap reference per type per page of entities
func (s *SitemapService) Index(ctx context.Context) (*models.SitemapIndex, error) {
	index := &models.SitemapIndex{Sitemaps: []models.SitemapRef{}}

	for _, schema := range models.AllSchemas() {
		count, err := s.entityRepo.Count(ctx, schema)
		if err != nil {
			return nil, err
		}
		pages := (count + s.pageSize - 1) / s.pageSize
		if pages == 0 {
			continue
		}
		for page := 1; page <= pages; page++ {
			index.Sitemaps = append(index.Sitemaps, models.SitemapRef{
				Loc: fmt.Sprintf("%s/sitemaps/%s/%d.xml", s.baseURL, schema.PathSegment, page),
			})
		}
	}

	return index, nil
}

// Page returns one page of profile URLs for a type. Pages are numbered
// from 1; a page past the end is not found.
func (s *SitemapService) Page(ctx context.Context, schema *models.TypeSchema, page int) (*models.SitemapURLSet, error) {
	if page < 1 {
		return nil, apperrors.NotFoundError("sitemap page")
	}

	offset := (page - 1) * s.pageSize
	entries, err := s.entityRepo.ListSlugs(ctx, schema, offset, s.pageSize)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, apperrors.NotFoundError("sitemap page")
	}

	urlSet := &models.SitemapURLSet{URLs: make([]models.SitemapURL, 0, len(entries))}
	for _, entry := range entries {
		urlSet.URLs = append(urlSet.URLs, models.SitemapURL{
			Loc:        fmt.Sprintf("%s/%s/%s", s.baseURL, schema.PathSegment, entry.Slug),
			LastMod:    entry.UpdatedAt.Format(time.DateOnly),
			ChangeFreq: "weekly",
			Priority:   "0.7",
		})
	}

	return urlSet, nil
}
