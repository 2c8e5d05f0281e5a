package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// migrations are applied in order at startup. Statements are idempotent
// so a restart against an existing database is a no-op.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS grants (
		id UUID PRIMARY KEY,
		title TEXT NOT NULL,
		description TEXT NOT NULL,
		organization TEXT NOT NULL,
		categories JSONB NOT NULL DEFAULT '[]',
		amount TEXT,
		deadline TIMESTAMPTZ,
		url TEXT NOT NULL,
		requirements TEXT,
		eligibility TEXT,
		source TEXT NOT NULL,
		location TEXT,
		tags JSONB NOT NULL DEFAULT '[]',
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		scraped_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_grants_url ON grants (url)`,
	`CREATE INDEX IF NOT EXISTS idx_grants_source ON grants (source)`,
	`CREATE INDEX IF NOT EXISTS idx_grants_active ON grants (is_active)`,
	`CREATE TABLE IF NOT EXISTS scrape_jobs (
		id UUID PRIMARY KEY,
		source TEXT NOT NULL,
		status TEXT NOT NULL,
		grants_found INTEGER NOT NULL DEFAULT 0,
		error TEXT,
		started_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		completed_at TIMESTAMPTZ
	)`,
	`CREATE INDEX IF NOT EXISTS idx_scrape_jobs_started_at ON scrape_jobs (started_at DESC)`,
}

// Migrate applies the schema migrations.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	for i, stmt := range migrations {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply migration %d: %w", i, err)
		}
	}
	return nil
}
