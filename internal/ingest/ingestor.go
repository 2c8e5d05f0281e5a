package ingest

import (
	"context"
	"fmt"
	"time"

	"github.com/jonesrussell/gogrants/internal/logger"
	"github.com/jonesrussell/gogrants/internal/models"
	"github.com/jonesrussell/gogrants/internal/sources"
)

// GrantStore is the persistence collaborator for grants. Upsert must be
// atomic with respect to concurrent writers on the same URL.
type GrantStore interface {
	Upsert(ctx context.Context, grant *models.Grant) (created bool, err error)
	DeactivateExpired(ctx context.Context, source string, asOf time.Time) (int64, error)
}

// JobStore tracks ingestion attempts.
type JobStore interface {
	Create(ctx context.Context, source string) (*models.ScrapeJob, error)
	Complete(ctx context.Context, id string, grantsFound int) error
	Fail(ctx context.Context, id, errMsg string) error
}

// CandidateCollector gathers candidates for a source.
type CandidateCollector interface {
	Collect(ctx context.Context, src sources.Source) ([]models.Candidate, error)
}

// Result summarizes one source run. Saved counts newly created grants,
// Updated counts overwrites of previously seen URLs.
type Result struct {
	Saved   int `json:"saved"`
	Updated int `json:"updated"`
	Total   int `json:"total"`
}

// Ingestor runs one source to completion: collect candidates, persist
// them keyed by URL, retire expired grants, and record the job outcome.
type Ingestor struct {
	registry  *sources.Registry
	collector CandidateCollector
	grants    GrantStore
	jobs      JobStore
	log       logger.Logger
}

// NewIngestor creates an ingestor.
func NewIngestor(
	registry *sources.Registry,
	collector CandidateCollector,
	grants GrantStore,
	jobs JobStore,
	log logger.Logger,
) *Ingestor {
	return &Ingestor{
		registry:  registry,
		collector: collector,
		grants:    grants,
		jobs:      jobs,
		log:       log,
	}
}

// RunSource ingests a single source. A job record is created in running
// state before extraction begins and transitions exactly once to success
// or failed before this method returns.
func (i *Ingestor) RunSource(ctx context.Context, sourceID string) (Result, error) {
	src, err := i.registry.Get(sourceID)
	if err != nil {
		return Result{}, fmt.Errorf("run source %q: %w", sourceID, err)
	}

	job, err := i.jobs.Create(ctx, src.ID)
	if err != nil {
		return Result{}, fmt.Errorf("create job for source %q: %w", src.ID, err)
	}

	result, runErr := i.run(ctx, src)
	if runErr != nil {
		if failErr := i.jobs.Fail(ctx, job.ID, runErr.Error()); failErr != nil {
			i.log.Error("failed to mark job failed",
				logger.String("job_id", job.ID),
				logger.Error(failErr),
			)
		}
		return Result{}, runErr
	}

	if completeErr := i.jobs.Complete(ctx, job.ID, result.Saved); completeErr != nil {
		i.log.Error("failed to mark job complete",
			logger.String("job_id", job.ID),
			logger.Error(completeErr),
		)
	}

	i.log.Info("source run complete",
		logger.String("source", src.ID),
		logger.Int("saved", result.Saved),
		logger.Int("updated", result.Updated),
		logger.Int("total", result.Total),
	)

	return result, nil
}

// run collects and persists candidates, then retires expired grants.
func (i *Ingestor) run(ctx context.Context, src sources.Source) (Result, error) {
	candidates, err := i.collector.Collect(ctx, src)
	if err != nil {
		return Result{}, fmt.Errorf("collect candidates for %q: %w", src.ID, err)
	}

	result := Result{Total: len(candidates)}

	for idx := range candidates {
		candidate := &candidates[idx]

		// Extraction noise: candidates without a usable URL are dropped
		// silently, they cannot be deduplicated.
		if !candidate.HasValidURL() {
			i.log.Debug("dropping candidate without valid URL",
				logger.String("source", src.ID),
				logger.String("title", candidate.Title),
			)
			continue
		}

		created, upsertErr := i.grants.Upsert(ctx, GrantFromCandidate(candidate))
		if upsertErr != nil {
			// A bad candidate must not abort the rest of the batch.
			i.log.Error("failed to persist candidate",
				logger.String("source", src.ID),
				logger.String("url", candidate.URL),
				logger.Error(upsertErr),
			)
			continue
		}

		if created {
			result.Saved++
		} else {
			result.Updated++
		}
	}

	deactivated, err := i.grants.DeactivateExpired(ctx, src.ID, time.Now())
	if err != nil {
		return result, fmt.Errorf("deactivate expired grants for %q: %w", src.ID, err)
	}
	if deactivated > 0 {
		i.log.Info("deactivated expired grants",
			logger.String("source", src.ID),
			logger.Int64("count", deactivated),
		)
	}

	return result, nil
}

// GrantFromCandidate converts an extraction candidate into a grant ready
// for persistence.
func GrantFromCandidate(c *models.Candidate) *models.Grant {
	grant := &models.Grant{
		Title:        c.Title,
		Description:  c.Description,
		Organization: c.Organization,
		Categories:   models.StringArray(c.Categories),
		Deadline:     c.Deadline,
		URL:          c.URL,
		Source:       c.Source,
		Tags:         models.StringArray(c.Tags),
		IsActive:     true,
	}

	if c.Amount != "" {
		amount := c.Amount
		grant.Amount = &amount
	}
	if c.Requirements != "" {
		requirements := c.Requirements
		grant.Requirements = &requirements
	}
	if c.Eligibility != "" {
		eligibility := c.Eligibility
		grant.Eligibility = &eligibility
	}
	if c.Location != "" {
		location := c.Location
		grant.Location = &location
	}

	return grant
}
