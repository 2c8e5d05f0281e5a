package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/jonesrussell/gogrants/internal/models"
)

// GrantRepository handles persistence of grants. Grants are keyed by URL;
// the upsert relies on the unique index so concurrent writers cannot
// race-create duplicates.
type GrantRepository struct {
	db *sqlx.DB
}

// NewGrantRepository creates a grant repository.
func NewGrantRepository(db *sqlx.DB) *GrantRepository {
	return &GrantRepository{db: db}
}

// GetByURL returns the grant with the given URL, or nil when none exists.
func (r *GrantRepository) GetByURL(ctx context.Context, url string) (*models.Grant, error) {
	var grant models.Grant
	query := `
		SELECT id, title, description, organization, categories, amount, deadline,
		       url, requirements, eligibility, source, location, tags,
		       is_active, created_at, updated_at, scraped_at
		FROM grants
		WHERE url = $1
	`

	err := r.db.GetContext(ctx, &grant, query, url)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get grant by url: %w", err)
	}

	return &grant, nil
}

// Upsert creates the grant on first sighting of its URL, or overwrites the
// mutable fields and refreshes updated_at on every later sighting. The
// latest scrape is authoritative. Returns true when a new row was created.
func (r *GrantRepository) Upsert(ctx context.Context, grant *models.Grant) (bool, error) {
	if grant.ID == "" {
		grant.ID = uuid.New().String()
	}
	now := time.Now()
	grant.ScrapedAt = now

	query := `
		INSERT INTO grants (
			id, title, description, organization, categories, amount, deadline,
			url, requirements, eligibility, source, location, tags,
			is_active, created_at, updated_at, scraped_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, TRUE, $14, $14, $14)
		ON CONFLICT (url) DO UPDATE SET
			title = EXCLUDED.title,
			description = EXCLUDED.description,
			organization = EXCLUDED.organization,
			categories = EXCLUDED.categories,
			amount = EXCLUDED.amount,
			deadline = EXCLUDED.deadline,
			requirements = EXCLUDED.requirements,
			eligibility = EXCLUDED.eligibility,
			source = EXCLUDED.source,
			location = EXCLUDED.location,
			tags = EXCLUDED.tags,
			is_active = TRUE,
			updated_at = EXCLUDED.updated_at,
			scraped_at = EXCLUDED.scraped_at
		RETURNING (xmax = 0) AS inserted
	`

	var inserted bool
	err := r.db.QueryRowContext(
		ctx,
		query,
		grant.ID,
		grant.Title,
		grant.Description,
		grant.Organization,
		grant.Categories,
		grant.Amount,
		grant.Deadline,
		grant.URL,
		grant.Requirements,
		grant.Eligibility,
		grant.Source,
		grant.Location,
		grant.Tags,
		now,
	).Scan(&inserted)

	if err != nil {
		return false, fmt.Errorf("upsert grant: %w", err)
	}

	return inserted, nil
}

// DeactivateExpired marks inactive every active grant of the source whose
// deadline has passed. Grants without a deadline are never touched; rows
// are never deleted by ingestion.
func (r *GrantRepository) DeactivateExpired(ctx context.Context, source string, asOf time.Time) (int64, error) {
	query := `
		UPDATE grants
		SET is_active = FALSE, updated_at = $1
		WHERE source = $2
		  AND is_active = TRUE
		  AND deadline IS NOT NULL
		  AND deadline < $1
	`

	result, err := r.db.ExecContext(ctx, query, asOf, source)
	if err != nil {
		return 0, fmt.Errorf("deactivate expired grants: %w", err)
	}

	count, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("deactivate expired grants rows affected: %w", err)
	}

	return count, nil
}
