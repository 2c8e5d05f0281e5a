package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/jonesrussell/gogrants/internal/ingest"
	"github.com/jonesrussell/gogrants/internal/logger"
	"github.com/jonesrussell/gogrants/internal/sources"
)

// Runner is the scrape trigger surface the handlers delegate to.
type Runner interface {
	RunAll(ctx context.Context) []ingest.SourceResult
	RunSource(ctx context.Context, sourceID string) (ingest.Result, error)
}

// ScrapeHandler exposes the ingestion triggers over HTTP.
type ScrapeHandler struct {
	runner     Runner
	cronSecret string
	log        logger.Logger
}

// NewScrapeHandler creates a scrape handler. cronSecret guards the GET
// trigger; an empty secret rejects all GET triggers.
func NewScrapeHandler(runner Runner, cronSecret string, log logger.Logger) *ScrapeHandler {
	return &ScrapeHandler{
		runner:     runner,
		cronSecret: cronSecret,
		log:        log,
	}
}

type scrapeRequest struct {
	Source string `json:"source"`
}

// TriggerCron handles GET /api/v1/scrape, the endpoint scheduled
// infrastructure calls. The shared secret may arrive as a query
// parameter, a bearer token, or the x-cron-secret header.
func (h *ScrapeHandler) TriggerCron(c *gin.Context) {
	if !h.authorized(c) {
		h.log.Warn("unauthorized cron trigger",
			logger.String("remote_addr", c.ClientIP()),
		)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	h.runAll(c)
}

// TriggerManual handles POST /api/v1/scrape. An optional JSON body names
// a single source to run; an empty body runs every source.
func (h *ScrapeHandler) TriggerManual(c *gin.Context) {
	if !h.authorized(c) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req scrapeRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
	}

	if req.Source == "" {
		h.runAll(c)
		return
	}

	result, err := h.runner.RunSource(c.Request.Context(), req.Source)
	if err != nil {
		if errors.Is(err, sources.ErrSourceNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "unknown source: " + req.Source})
			return
		}

		h.log.Error("source run failed",
			logger.String("source", req.Source),
			logger.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"source":  req.Source,
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"source":  req.Source,
		"result":  result,
	})
}

func (h *ScrapeHandler) runAll(c *gin.Context) {
	results := h.runner.RunAll(c.Request.Context())

	saved, updated := 0, 0
	for _, r := range results {
		saved += r.Saved
		updated += r.Updated
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"saved":   saved,
		"updated": updated,
		"sources": results,
	})
}

// authorized checks the shared cron secret. All three transports the
// original deployment used are accepted.
func (h *ScrapeHandler) authorized(c *gin.Context) bool {
	if h.cronSecret == "" {
		return false
	}

	if c.Query("secret") == h.cronSecret {
		return true
	}

	if auth := c.GetHeader("Authorization"); auth != "" {
		token := strings.TrimPrefix(auth, "Bearer ")
		if token == h.cronSecret {
			return true
		}
	}

	return c.GetHeader("x-cron-secret") == h.cronSecret
}
