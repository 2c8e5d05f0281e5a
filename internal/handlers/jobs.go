package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jonesrussell/gogrants/internal/logger"
	"github.com/jonesrussell/gogrants/internal/models"
)

const defaultJobLimit = 10

// JobLister reads recent scrape jobs.
type JobLister interface {
	List(ctx context.Context, limit int) ([]*models.ScrapeJob, error)
}

// JobsHandler exposes scrape job history.
type JobsHandler struct {
	jobs JobLister
	log  logger.Logger
}

func NewJobsHandler(jobs JobLister, log logger.Logger) *JobsHandler {
	return &JobsHandler{jobs: jobs, log: log}
}

// Status handles GET /api/v1/scrape/status, returning the most recent
// jobs newest first. limit defaults to 10.
func (h *JobsHandler) Status(c *gin.Context) {
	limit := defaultJobLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = n
	}

	jobs, err := h.jobs.List(c.Request.Context(), limit)
	if err != nil {
		h.log.Error("failed to list scrape jobs", logger.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load job history"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"count": len(jobs),
		"jobs":  jobs,
	})
}
