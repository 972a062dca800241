package cache

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/ratemyadjusters/ratemyadjusters-api/internal/models"
	apperrors "github.com/ratemyadjusters/ratemyadjusters-api/pkg/errors"
	"github.com/ratemyadjusters/ratemyadjusters-api/pkg/metrics"
	"github.com/ratemyadjusters/ratemyadjusters-api/pkg/retry"
)

const cacheCheckPeriod = 60 * time.Second

// ProfileFetcher loads a profile from the datastore on cache miss
type ProfileFetcher func(ctx context.Context, schema *models.TypeSchema, slug string) (*models.Entity, error)

// ProfileCache is a read-through TTL cache for entity profile pages.
// Profiles change rarely (aggregates update when reviews are approved),
// so a short TTL keeps pages fast without a refresh pipeline.
type ProfileCache struct {
	cache *gocache.Cache
	fetch ProfileFetcher
	ttl   time.Duration
}

// NewProfileCache creates a profile cache with the given TTL in seconds
func NewProfileCache(fetch ProfileFetcher, ttlSeconds int) *ProfileCache {
	ttl := time.Duration(ttlSeconds) * time.Second
	return &ProfileCache{
		cache: gocache.New(ttl, cacheCheckPeriod),
		fetch: fetch,
		ttl:   ttl,
	}
}

// Get returns a profile by slug, fetching through to the datastore on
// miss. Fetches are retried as read-only operations; not-found
// propagates uncached so a just-created profile appears immediately.
func (pc *ProfileCache) Get(ctx context.Context, schema *models.TypeSchema, slug string) (*models.Entity, error) {
	key := cacheKey(schema, slug)

	if data, found := pc.cache.Get(key); found {
		metrics.CacheHits.WithLabelValues("profile").Inc()
		return data.(*models.Entity), nil
	}

	metrics.CacheMisses.WithLabelValues("profile").Inc()

	cfg := retry.ReadConfig()
	cfg.RetryableErrors = func(err error) bool {
		return !apperrors.Is(err, apperrors.ErrNotFound)
	}

	entity, err := retry.DoWithResult(ctx, cfg, "fetchProfile", func() (*models.Entity, error) {
		return pc.fetch(ctx, schema, slug)
	})
	if err != nil {
		return nil, err
	}

	pc.cache.Set(key, entity, pc.ttl)
	return entity, nil
}

// Invalidate drops one profile from the cache
func (pc *ProfileCache) Invalidate(schema *models.TypeSchema, slug string) {
	pc.cache.Delete(cacheKey(schema, slug))
}

// Flush drops every cached profile
func (pc *ProfileCache) Flush() {
	pc.cache.Flush()
}

func cacheKey(schema *models.TypeSchema, slug string) string {
	return string(schema.Type) + ":" + slug
}
