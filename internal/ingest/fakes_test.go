package ingest_test

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jonesrussell/gogrants/internal/models"
	"github.com/jonesrussell/gogrants/internal/sources"
)

// fakeGrantStore records upserts in memory. Safe for concurrent use so it
// can back coordinator tests.
type fakeGrantStore struct {
	mu sync.Mutex

	grants      map[string]*models.Grant
	upsertErrs  map[string]error
	deactivated map[string]int64
	deactErr    error
}

func newFakeGrantStore() *fakeGrantStore {
	return &fakeGrantStore{
		grants:      make(map[string]*models.Grant),
		upsertErrs:  make(map[string]error),
		deactivated: make(map[string]int64),
	}
}

func (f *fakeGrantStore) Upsert(_ context.Context, grant *models.Grant) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err, ok := f.upsertErrs[grant.URL]; ok {
		return false, err
	}

	_, existed := f.grants[grant.URL]
	f.grants[grant.URL] = grant
	return !existed, nil
}

func (f *fakeGrantStore) DeactivateExpired(_ context.Context, source string, _ time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.deactErr != nil {
		return 0, f.deactErr
	}
	return f.deactivated[source], nil
}

func (f *fakeGrantStore) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.grants)
}

func (f *fakeGrantStore) get(url string) *models.Grant {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.grants[url]
}

// fakeJobStore records job lifecycle transitions.
type fakeJobStore struct {
	mu sync.Mutex

	jobs      map[string]*models.ScrapeJob
	createErr error
}

func newFakeJobStore() *fakeJobStore {
	return &fakeJobStore{jobs: make(map[string]*models.ScrapeJob)}
}

func (f *fakeJobStore) Create(_ context.Context, source string) (*models.ScrapeJob, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.createErr != nil {
		return nil, f.createErr
	}

	job := &models.ScrapeJob{
		ID:        uuid.New().String(),
		Source:    source,
		Status:    models.JobStatusRunning,
		StartedAt: time.Now(),
	}
	f.jobs[job.ID] = job
	return job, nil
}

func (f *fakeJobStore) Complete(_ context.Context, id string, grantsFound int) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	job := f.jobs[id]
	job.Status = models.JobStatusSuccess
	job.GrantsFound = grantsFound
	now := time.Now()
	job.CompletedAt = &now
	return nil
}

func (f *fakeJobStore) Fail(_ context.Context, id, errMsg string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	job := f.jobs[id]
	job.Status = models.JobStatusFailed
	job.Error = &errMsg
	now := time.Now()
	job.CompletedAt = &now
	return nil
}

func (f *fakeJobStore) bySource(source string) *models.ScrapeJob {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, job := range f.jobs {
		if job.Source == source {
			return job
		}
	}
	return nil
}

// fakeCollector returns canned candidates or errors per source.
type fakeCollector struct {
	candidates map[string][]models.Candidate
	errs       map[string]error
}

func newFakeCollector() *fakeCollector {
	return &fakeCollector{
		candidates: make(map[string][]models.Candidate),
		errs:       make(map[string]error),
	}
}

func (f *fakeCollector) Collect(_ context.Context, src sources.Source) ([]models.Candidate, error) {
	if err, ok := f.errs[src.ID]; ok {
		return nil, err
	}
	return f.candidates[src.ID], nil
}
