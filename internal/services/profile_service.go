package services

import (
	"context"

	"github.com/ratemyadjusters/ratemyadjusters-api/internal/cache"
	"github.com/ratemyadjusters/ratemyadjusters-api/internal/models"
	"github.com/ratemyadjusters/ratemyadjusters-api/internal/repository"
	"github.com/ratemyadjusters/ratemyadjusters-api/pkg/metrics"
)

// ProfileService serves public profile pages through the TTL cache
type ProfileService struct {
	cache *cache.ProfileCache
}

// NewProfileService creates a profile service backed by the entity
// repository
func NewProfileService(entityRepo repository.EntityRepositoryInterface, ttlSeconds int) *ProfileService {
	fetch := func(ctx context.Context, schema *models.TypeSchema, slug string) (*models.Entity, error) {
		return entityRepo.GetBySlug(ctx, schema, slug)
	}
	return &ProfileService{cache: cache.NewProfileCache(fetch, ttlSeconds)}
}

// GetProfile returns a profile by slug
func (s *ProfileService) GetProfile(ctx context.Context, schema *models.TypeSchema, slug string) (*models.Entity, error) {
	entity, err := s.cache.Get(ctx, schema, slug)
	if err != nil {
		return nil, err
	}
	metrics.ProfileViews.WithLabelValues(string(schema.Type)).Inc()
	return entity, nil
}

// InvalidateProfile drops one profile from the cache after its data
// changed (e.g. a new review was accepted)
func (s *ProfileService) InvalidateProfile(schema *models.TypeSchema, slug string) {
	s.cache.Invalidate(schema, slug)
}

// FlushProfiles clears the whole profile cache
func (s *ProfileService) FlushProfiles() {
	s.cache.Flush()
}
