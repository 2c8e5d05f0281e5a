package database

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/jonesrussell/gogrants/internal/models"
)

// JobRepository handles persistence of scrape jobs.
type JobRepository struct {
	db *sqlx.DB
}

// NewJobRepository creates a job repository.
func NewJobRepository(db *sqlx.DB) *JobRepository {
	return &JobRepository{db: db}
}

// Create inserts a job in running state, timestamped at now.
func (r *JobRepository) Create(ctx context.Context, source string) (*models.ScrapeJob, error) {
	job := &models.ScrapeJob{
		ID:        uuid.New().String(),
		Source:    source,
		Status:    models.JobStatusRunning,
		StartedAt: time.Now(),
	}

	query := `
		INSERT INTO scrape_jobs (id, source, status, grants_found, started_at)
		VALUES ($1, $2, $3, 0, $4)
	`

	if _, err := r.db.ExecContext(ctx, query, job.ID, job.Source, job.Status, job.StartedAt); err != nil {
		return nil, fmt.Errorf("create scrape job: %w", err)
	}

	return job, nil
}

// Complete transitions a running job to success.
func (r *JobRepository) Complete(ctx context.Context, id string, grantsFound int) error {
	query := `
		UPDATE scrape_jobs
		SET status = $1, grants_found = $2, completed_at = $3
		WHERE id = $4
	`

	if _, err := r.db.ExecContext(ctx, query, models.JobStatusSuccess, grantsFound, time.Now(), id); err != nil {
		return fmt.Errorf("complete scrape job: %w", err)
	}

	return nil
}

// Fail transitions a running job to failed with the error message.
func (r *JobRepository) Fail(ctx context.Context, id, errMsg string) error {
	query := `
		UPDATE scrape_jobs
		SET status = $1, error = $2, completed_at = $3
		WHERE id = $4
	`

	if _, err := r.db.ExecContext(ctx, query, models.JobStatusFailed, errMsg, time.Now(), id); err != nil {
		return fmt.Errorf("fail scrape job: %w", err)
	}

	return nil
}

// List returns the most recent jobs ordered by started_at descending.
func (r *JobRepository) List(ctx context.Context, limit int) ([]*models.ScrapeJob, error) {
	var jobs []*models.ScrapeJob
	query := `
		SELECT id, source, status, grants_found, error, started_at, completed_at
		FROM scrape_jobs
		ORDER BY started_at DESC
		LIMIT $1
	`

	if err := r.db.SelectContext(ctx, &jobs, query, limit); err != nil {
		return nil, fmt.Errorf("list scrape jobs: %w", err)
	}

	if jobs == nil {
		jobs = []*models.ScrapeJob{}
	}

	return jobs, nil
}
