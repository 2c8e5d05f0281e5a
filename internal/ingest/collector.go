// Package ingest orchestrates grant ingestion: candidate collection,
// persistence with URL deduplication, job tracking, and batch runs across
// the source catalog.
package ingest

import (
	"context"

	"github.com/jonesrussell/gogrants/internal/feed"
	"github.com/jonesrussell/gogrants/internal/logger"
	"github.com/jonesrussell/gogrants/internal/models"
	"github.com/jonesrussell/gogrants/internal/sources"
)

// FeedDiscoverer locates a structured feed for a base URL.
type FeedDiscoverer interface {
	DiscoverFeed(ctx context.Context, baseURL string) string
}

// FeedReader parses a feed into candidates under a mapping.
type FeedReader interface {
	Read(ctx context.Context, feedURL string, mapping feed.Mapping) []models.Candidate
}

// PageExtractor pulls candidates out of a source's page markup.
type PageExtractor interface {
	Extract(ctx context.Context) []models.Candidate
}

// ExtractorFactory builds the page extractor for a source.
type ExtractorFactory func(src sources.Source) PageExtractor

// Collector implements the feed-first acquisition policy: structured feeds
// are cheaper and more reliable than markup scraping, so a feed that
// yields data wins outright; the page extractor only runs when discovery
// fails, the feed is empty, or reading it fails. A source that fully fails
// contributes nothing rather than aborting its batch.
type Collector struct {
	discoverer   FeedDiscoverer
	reader       FeedReader
	newExtractor ExtractorFactory
	log          logger.Logger
}

// NewCollector creates a collector.
func NewCollector(
	discoverer FeedDiscoverer,
	reader FeedReader,
	newExtractor ExtractorFactory,
	log logger.Logger,
) *Collector {
	return &Collector{
		discoverer:   discoverer,
		reader:       reader,
		newExtractor: newExtractor,
		log:          log,
	}
}

// Collect gathers candidates for one source. It never returns an error:
// every acquisition failure degrades to the next strategy and finally to
// an empty result.
func (c *Collector) Collect(ctx context.Context, src sources.Source) ([]models.Candidate, error) {
	if feedURL := c.discoverer.DiscoverFeed(ctx, src.BaseURL); feedURL != "" {
		c.log.Info("found feed for source",
			logger.String("source", src.ID),
			logger.String("feed_url", feedURL),
		)

		candidates := c.reader.Read(ctx, feedURL, mappingFor(src))
		if len(candidates) > 0 {
			return candidates, nil
		}

		c.log.Info("feed yielded nothing, falling back to page extraction",
			logger.String("source", src.ID),
		)
	}

	return c.newExtractor(src).Extract(ctx), nil
}

// mappingFor builds the feed mapping for a source.
func mappingFor(src sources.Source) feed.Mapping {
	return feed.Mapping{
		Source:          src.ID,
		Organization:    src.Organization,
		Categories:      src.Categories,
		Location:        src.Location,
		DefaultLocation: src.DefaultLocation,
		Filter:          src.FeedFilter,
	}
}
