// Package bootstrap handles application initialization and lifecycle
// management for the grant ingestion service.
package bootstrap

import (
	"fmt"

	"github.com/jonesrussell/gogrants/internal/logger"
)

const version = "dev"

// Start initializes and runs the application.
func Start() error {
	// Phase 1: Load config and create logger
	cfg, err := LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log, err := CreateLogger(cfg, version)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	// Phase 2: Setup database
	db, err := SetupDatabase(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to set up database: %w", err)
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			log.Error("Failed to close database", logger.Error(closeErr))
		}
	}()

	// Phase 3: Wire the ingestion pipeline and scheduler
	services := SetupServices(cfg, db, log)
	if cfg.Scraper.EnableCron {
		if startErr := services.Scheduler.Start(); startErr != nil {
			return fmt.Errorf("failed to start scheduler: %w", startErr)
		}
		defer services.Scheduler.Stop()
	}

	// Phase 4: Run the HTTP server until shutdown
	if runErr := RunHTTPServer(cfg, services, log); runErr != nil {
		log.Error("Server error", logger.Error(runErr))
		return fmt.Errorf("server error: %w", runErr)
	}

	log.Info("Server exited")
	return nil
}
