package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/ratemyadjusters/ratemyadjusters-api/internal/models"
	apperrors "github.com/ratemyadjusters/ratemyadjusters-api/pkg/errors"
	"github.com/ratemyadjusters/ratemyadjusters-api/pkg/logger"
	"github.com/ratemyadjusters/ratemyadjusters-api/pkg/metrics"
)

// entityColumns is the shared select list for entity rows
const entityColumns = `id, first_name, last_name, company, state, city, slug,
	license_status, avg_rating, review_count, created_at, updated_at`

// EntityRepository handles reviewable-entity data access. Each entity
// type lives in its own table; the table name always comes from the
// TypeSchema descriptor whitelist, never from request input.
type EntityRepository struct {
	pool *pgxpool.Pool
}

// NewEntityRepository creates a new entity repository
func NewEntityRepository(pool *pgxpool.Pool) *EntityRepository {
	return &EntityRepository{pool: pool}
}

// likeEscaper neutralizes LIKE metacharacters in user query tokens so a
// token like "%" cannot turn a starts-with match into match-all.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// Search returns entity summaries matching the resolver's prefix filter.
func (r *EntityRepository) Search(ctx context.Context, schema *models.TypeSchema, filter models.NameFilter, limit int) ([]*models.EntitySummary, error) {
	start := time.Now()
	operation := "searchEntities"

	var query string
	var args []interface{}

	// Case folding happens on both sides of LIKE so the lower(col)
	// text_pattern_ops indexes stay usable for the prefix scan.
	if filter.AnyPrefix != "" {
		cond := "(lower(first_name) LIKE lower($1) OR lower(last_name) LIKE lower($1)"
		if filter.IncludeCompany {
			cond += " OR lower(company) LIKE lower($1)"
		}
		cond += ")"
		query = fmt.Sprintf(`
			SELECT id, first_name, last_name, company, state
			FROM %s
			WHERE %s
			ORDER BY last_name, first_name
			LIMIT $2
		`, schema.Table, cond)
		args = []interface{}{escapeLike(filter.AnyPrefix) + "%", limit}
	} else {
		query = fmt.Sprintf(`
			SELECT id, first_name, last_name, company, state
			FROM %s
			WHERE lower(first_name) LIKE lower($1) AND lower(last_name) LIKE lower($2)
			ORDER BY last_name, first_name
			LIMIT $3
		`, schema.Table)
		args = []interface{}{escapeLike(filter.FirstPrefix) + "%", escapeLike(filter.LastPrefix) + "%", limit}
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		recordMetrics(operation, "error", start, zap.Error(err))
		return nil, fmt.Errorf("failed to search %s: %w", schema.Table, err)
	}
	defer rows.Close()

	results := make([]*models.EntitySummary, 0, limit)
	for rows.Next() {
		var id, first, last, state string
		var company *string
		if err := rows.Scan(&id, &first, &last, &company, &state); err != nil {
			recordMetrics(operation, "error", start, zap.Error(err))
			return nil, fmt.Errorf("failed to scan entity row: %w", err)
		}
		summary := &models.EntitySummary{
			ID:          id,
			DisplayName: first + " " + last,
			State:       state,
		}
		if schema.HasCompany {
			summary.Company = company
		}
		results = append(results, summary)
	}
	if err := rows.Err(); err != nil {
		recordMetrics(operation, "error", start, zap.Error(err))
		return nil, fmt.Errorf("error iterating entity rows: %w", err)
	}

	recordMetrics(operation, "success", start, zap.Int("count", len(results)))
	return results, nil
}

// GetByID fetches one entity by primary key. Returns ErrNotFound when no
// row exists; the caller falls back to manual entry.
func (r *EntityRepository) GetByID(ctx context.Context, schema *models.TypeSchema, id string) (*models.Entity, error) {
	return r.getByField(ctx, schema, "getEntityByID", "id = $1", id)
}

// GetBySlug fetches one entity by its URL slug
func (r *EntityRepository) GetBySlug(ctx context.Context, schema *models.TypeSchema, slug string) (*models.Entity, error) {
	return r.getByField(ctx, schema, "getEntityBySlug", "slug = $1", slug)
}

func (r *EntityRepository) getByField(ctx context.Context, schema *models.TypeSchema, operation, whereClause string, arg interface{}) (*models.Entity, error) {
	start := time.Now()

	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s`, entityColumns, schema.Table, whereClause)

	entity, err := scanEntity(r.pool.QueryRow(ctx, query, arg), schema.Type)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			recordMetrics(operation, "not_found", start)
			return nil, apperrors.NotFoundError("entity")
		}
		recordMetrics(operation, "error", start, zap.Error(err))
		return nil, fmt.Errorf("failed to fetch entity: %w", err)
	}

	recordMetrics(operation, "success", start)
	return entity, nil
}

// Create inserts a reviewer-created entity. License status starts as
// unverified; aggregates start at zero and are maintained by the
// datastore as reviews are approved.
func (r *EntityRepository) Create(ctx context.Context, schema *models.TypeSchema, rec *models.NewEntity) (*models.Entity, error) {
	start := time.Now()
	operation := "createEntity"

	query := fmt.Sprintf(`
		INSERT INTO %s (first_name, last_name, company, state, city, slug, license_status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING %s
	`, schema.Table, entityColumns)

	entity, err := scanEntity(r.pool.QueryRow(ctx, query,
		rec.FirstName, rec.LastName, rec.Company, rec.State, rec.City, rec.Slug, models.LicenseUnverified,
	), schema.Type)
	if err != nil {
		// 23505: slug already taken, a concurrent submission created the
		// same entity first
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			recordMetrics(operation, "conflict", start, zap.String("slug", rec.Slug))
			return nil, apperrors.ConflictError("entity slug", rec.Slug)
		}
		recordMetrics(operation, "error", start, zap.Error(err))
		return nil, fmt.Errorf("failed to create entity: %w", err)
	}

	recordMetrics(operation, "success", start, zap.String("slug", entity.Slug))
	return entity, nil
}

// Count returns the number of entities of one type (sitemap pagination)
func (r *EntityRepository) Count(ctx context.Context, schema *models.TypeSchema) (int, error) {
	start := time.Now()
	operation := "countEntities"

	var count int
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s`, schema.Table)
	if err := r.pool.QueryRow(ctx, query).Scan(&count); err != nil {
		recordMetrics(operation, "error", start, zap.Error(err))
		return 0, fmt.Errorf("failed to count %s: %w", schema.Table, err)
	}

	recordMetrics(operation, "success", start)
	return count, nil
}

// ListSlugs returns one sitemap page of slugs ordered by creation
func (r *EntityRepository) ListSlugs(ctx context.Context, schema *models.TypeSchema, offset, limit int) ([]SlugEntry, error) {
	start := time.Now()
	operation := "listEntitySlugs"

	query := fmt.Sprintf(`
		SELECT slug, updated_at
		FROM %s
		ORDER BY created_at, id
		OFFSET $1 LIMIT $2
	`, schema.Table)

	rows, err := r.pool.Query(ctx, query, offset, limit)
	if err != nil {
		recordMetrics(operation, "error", start, zap.Error(err))
		return nil, fmt.Errorf("failed to list %s slugs: %w", schema.Table, err)
	}
	defer rows.Close()

	entries := make([]SlugEntry, 0, limit)
	for rows.Next() {
		var e SlugEntry
		if err := rows.Scan(&e.Slug, &e.UpdatedAt); err != nil {
			recordMetrics(operation, "error", start, zap.Error(err))
			return nil, fmt.Errorf("failed to scan slug row: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		recordMetrics(operation, "error", start, zap.Error(err))
		return nil, fmt.Errorf("error iterating slug rows: %w", err)
	}

	recordMetrics(operation, "success", start, zap.Int("count", len(entries)))
	return entries, nil
}

func scanEntity(row pgx.Row, entityType models.EntityType) (*models.Entity, error) {
	var e models.Entity
	err := row.Scan(
		&e.ID, &e.FirstName, &e.LastName, &e.Company, &e.State, &e.City, &e.Slug,
		&e.LicenseStatus, &e.AvgRating, &e.ReviewCount, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	e.Type = entityType
	return &e, nil
}

func recordMetrics(operation, status string, start time.Time, fields ...zap.Field) {
	duration := metrics.MeasureDuration(start)
	metrics.DatastoreRequestDuration.WithLabelValues(operation, status).Observe(duration)
	metrics.DatastoreRequestTotal.WithLabelValues(operation, status).Inc()

	logStatus := status
	if status == "not_found" {
		logStatus = "success"
	}
	logger.LogAPICall("postgres", operation, logStatus, duration, fields...)
}
