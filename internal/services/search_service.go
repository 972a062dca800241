package services

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/ratemyadjusters/ratemyadjusters-api/internal/models"
	"github.com/ratemyadjusters/ratemyadjusters-api/internal/repository"
	"github.com/ratemyadjusters/ratemyadjusters-api/pkg/logger"
	"github.com/ratemyadjusters/ratemyadjusters-api/pkg/metrics"
)

const (
	// MinQueryLength is the minimum query length before we hit the database.
	// Shorter queries return an empty result set without a lookup.
	MinQueryLength = 2

	// DefaultSearchLimit caps typeahead result sets
	DefaultSearchLimit = 8
)

// SearchService resolves free-text name queries to entity profiles
type SearchService struct {
	entityRepo repository.EntityRepositoryInterface
}

// NewSearchService creates a new search service
func NewSearchService(entityRepo repository.EntityRepositoryInterface) *SearchService {
	return &SearchService{entityRepo: entityRepo}
}

// Search returns up to DefaultSearchLimit entities whose names match the
// query as prefixes. The caller's seq is echoed back unchanged so stale
// responses can be discarded client-side.
func (s *SearchService) Search(ctx context.Context, schema *models.TypeSchema, query string, seq int64) (*models.SearchResponse, error) {
	start := time.Now()
	trimmed := strings.TrimSpace(query)

	resp := &models.SearchResponse{
		Query:   trimmed,
		Seq:     seq,
		Results: []*models.EntitySummary{},
	}

	if len([]rune(trimmed)) < MinQueryLength {
		metrics.EntitySearches.WithLabelValues(string(schema.Type), "short_query").Inc()
		return resp, nil
	}

	filter := buildNameFilter(trimmed, schema.HasCompany)

	results, err := s.entityRepo.Search(ctx, schema, filter, DefaultSearchLimit)
	if err != nil {
		metrics.EntitySearches.WithLabelValues(string(schema.Type), "error").Inc()
		logger.Error("Entity search failed",
			zap.String("entity_type", string(schema.Type)),
			zap.String("query", trimmed),
			zap.Error(err))
		return nil, err
	}
	resp.Results = results

	outcome := "hit"
	if len(results) == 0 {
		outcome = "miss"
	}
	metrics.EntitySearches.WithLabelValues(string(schema.Type), outcome).Inc()

	logger.Debug("Entity search completed",
		zap.String("entity_type", string(schema.Type)),
		zap.String("query", trimmed),
		zap.Int("results", len(results)),
		zap.Duration("duration", time.Since(start)))

	return resp, nil
}

// GetByID fetches a single entity for deep-linked review forms
func (s *SearchService) GetByID(ctx context.Context, schema *models.TypeSchema, id string) (*models.Entity, error) {
	return s.entityRepo.GetByID(ctx, schema, id)
}

// buildNameFilter tokenizes the query. Two or more tokens are treated as
// "first last": the first token matches first names, the rest match last
// names. A single token matches either name (and company where the type
// has one).
func buildNameFilter(query string, hasCompany bool) models.NameFilter {
	tokens := strings.Fields(query)
	if len(tokens) >= 2 {
		return models.NameFilter{
			FirstPrefix: tokens[0],
			LastPrefix:  strings.Join(tokens[1:], " "),
		}
	}
	return models.NameFilter{
		AnyPrefix:      tokens[0],
		IncludeCompany: hasCompany,
	}
}
