// Package scheduler owns the recurring ingestion trigger and the
// on-demand run surface consumed by the HTTP handlers.
package scheduler

import (
	"context"
	"sync"

	"github.com/robfig/cron/v3"

	"github.com/jonesrussell/gogrants/internal/ingest"
	"github.com/jonesrussell/gogrants/internal/logger"
)

// BatchRunner runs every registered source.
type BatchRunner interface {
	RunAll(ctx context.Context) []ingest.SourceResult
}

// SourceRunner runs a single source.
type SourceRunner interface {
	RunSource(ctx context.Context, sourceID string) (ingest.Result, error)
}

// Scheduler is process-lifetime state: constructed once at startup and
// passed by reference to trigger handlers. The recurring trigger is
// registered at most once per process.
type Scheduler struct {
	cron        *cron.Cron
	coordinator BatchRunner
	ingestor    SourceRunner
	schedule    string
	log         logger.Logger
	startOnce   sync.Once
	startErr    error
}

// New creates a scheduler. schedule is a standard cron expression for the
// recurring all-sources run.
func New(coordinator BatchRunner, ingestor SourceRunner, schedule string, log logger.Logger) *Scheduler {
	return &Scheduler{
		cron:        cron.New(),
		coordinator: coordinator,
		ingestor:    ingestor,
		schedule:    schedule,
		log:         log,
	}
}

// Start registers the recurring trigger and starts the cron runner.
// Calling Start again is a no-op returning the original outcome.
func (s *Scheduler) Start() error {
	s.startOnce.Do(func() {
		_, err := s.cron.AddFunc(s.schedule, s.runScheduled)
		if err != nil {
			s.startErr = err
			return
		}

		s.cron.Start()
		s.log.Info("scheduler started",
			logger.String("schedule", s.schedule),
		)
	})

	return s.startErr
}

// Stop halts the cron runner. In-flight runs finish on their own.
func (s *Scheduler) Stop() {
	s.cron.Stop()
	s.log.Info("scheduler stopped")
}

// runScheduled is the recurring trigger body. It is fire-and-forget:
// there is no caller to propagate failures to, so outcomes are only
// logged. Scheduled and on-demand runs may overlap; their jobs are
// tracked independently.
func (s *Scheduler) runScheduled() {
	s.log.Info("running scheduled ingestion")

	results := s.coordinator.RunAll(context.Background())

	failed := 0
	for _, r := range results {
		if !r.Success {
			failed++
		}
	}

	s.log.Info("scheduled ingestion complete",
		logger.Int("sources", len(results)),
		logger.Int("failed", failed),
	)
}

// RunAll triggers a batch run on demand.
func (s *Scheduler) RunAll(ctx context.Context) []ingest.SourceResult {
	return s.coordinator.RunAll(ctx)
}

// RunSource triggers a single-source run on demand, propagating its
// result or error to the caller.
func (s *Scheduler) RunSource(ctx context.Context, sourceID string) (ingest.Result, error) {
	return s.ingestor.RunSource(ctx, sourceID)
}
