package models

import "time"

// Scrape job statuses. A job is created running and transitions exactly
// once to success or failed.
const (
	JobStatusRunning = "running"
	JobStatusSuccess = "success"
	JobStatusFailed  = "failed"
)

// ScrapeJob records a single ingestion attempt for one source.
type ScrapeJob struct {
	ID          string     `json:"id" db:"id"`
	Source      string     `json:"source" db:"source"`
	Status      string     `json:"status" db:"status"`
	GrantsFound int        `json:"grants_found" db:"grants_found"`
	Error       *string    `json:"error,omitempty" db:"error"`
	StartedAt   time.Time  `json:"started_at" db:"started_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty" db:"completed_at"`
}
