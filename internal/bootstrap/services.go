package bootstrap

import (
	"net/http"

	"github.com/jmoiron/sqlx"

	"github.com/jonesrussell/gogrants/internal/config"
	"github.com/jonesrussell/gogrants/internal/database"
	"github.com/jonesrussell/gogrants/internal/feed"
	"github.com/jonesrussell/gogrants/internal/fetch"
	"github.com/jonesrussell/gogrants/internal/ingest"
	"github.com/jonesrussell/gogrants/internal/logger"
	"github.com/jonesrussell/gogrants/internal/scheduler"
	"github.com/jonesrussell/gogrants/internal/scrape"
	"github.com/jonesrussell/gogrants/internal/sources"
)

// Services holds the wired application components the HTTP layer and
// scheduler need.
type Services struct {
	Scheduler *scheduler.Scheduler
	Jobs      *database.JobRepository
}

// SetupServices wires the ingestion pipeline: shared fetcher, feed
// discovery and reading, page extraction, persistence, the per-source
// ingestor, the batch coordinator, and the scheduler on top.
func SetupServices(cfg *config.Config, db *sqlx.DB, log logger.Logger) *Services {
	fetcher := fetch.NewHTTPClient(&http.Client{Timeout: cfg.Scraper.RequestTimeout})

	registry := sources.NewRegistry()
	grantRepo := database.NewGrantRepository(db)
	jobRepo := database.NewJobRepository(db)

	discoverer := feed.NewDiscoverer(fetcher, log)
	reader := feed.NewReader(fetcher, log)
	newExtractor := func(src sources.Source) ingest.PageExtractor {
		return scrape.NewExtractor(src.ID, src.Rules, fetcher, log)
	}

	collector := ingest.NewCollector(discoverer, reader, newExtractor, log)
	ingestor := ingest.NewIngestor(registry, collector, grantRepo, jobRepo, log)
	coordinator := ingest.NewCoordinator(registry, ingestor, grantRepo, cfg.Scraper.Workers, log)

	return &Services{
		Scheduler: scheduler.New(coordinator, ingestor, cfg.Scraper.Schedule, log),
		Jobs:      jobRepo,
	}
}
