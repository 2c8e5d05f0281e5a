package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jonesrussell/gogrants/internal/api"
	"github.com/jonesrussell/gogrants/internal/config"
	"github.com/jonesrussell/gogrants/internal/handlers"
	"github.com/jonesrussell/gogrants/internal/logger"
)

const shutdownTimeout = 10 * time.Second

// RunHTTPServer serves the API until SIGINT or SIGTERM, then shuts down
// gracefully.
func RunHTTPServer(cfg *config.Config, services *Services, log logger.Logger) error {
	if cfg.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	scrapeHandler := handlers.NewScrapeHandler(services.Scheduler, cfg.Scraper.CronSecret, log)
	jobsHandler := handlers.NewJobsHandler(services.Jobs, log)
	router := api.NewRouter(scrapeHandler, jobsHandler, cfg.Server.CORSOrigins, log)

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server",
			logger.String("host", cfg.Server.Host),
			logger.Int("port", cfg.Server.Port),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("Shutting down HTTP server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
