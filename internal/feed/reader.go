package feed

import (
	"context"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/mmcdole/gofeed"

	"github.com/jonesrussell/gogrants/internal/fetch"
	"github.com/jonesrussell/gogrants/internal/logger"
	"github.com/jonesrussell/gogrants/internal/models"
)

// maxDescriptionLength bounds stored descriptions.
const maxDescriptionLength = 1000

// feedTag marks candidates that were produced from a structured feed.
const feedTag = "RSS Feed"

// Mapping supplies the per-source context applied to every feed item.
type Mapping struct {
	Source       string
	Organization string
	Categories   []string
	// Location, when set, wins over DefaultLocation. Both lose to
	// locations inferred from the item text.
	Location        string
	DefaultLocation string
	// Filter, when non-nil, drops items for which it returns false. It
	// receives the raw item title and content snippet.
	Filter func(title, snippet string) bool
}

// Reader parses structured feeds into candidate records.
type Reader struct {
	fetcher fetch.Client
	log     logger.Logger
}

// NewReader creates a feed reader.
func NewReader(fetcher fetch.Client, log logger.Logger) *Reader {
	return &Reader{fetcher: fetcher, log: log}
}

// Read fetches and parses the feed at feedURL, converting items to
// candidates under the mapping. Fetch and parse failures produce an empty
// slice; feed unavailability is routine, not exceptional.
func (r *Reader) Read(ctx context.Context, feedURL string, mapping Mapping) []models.Candidate {
	resp, err := r.fetcher.Fetch(ctx, feedURL)
	if err != nil {
		r.log.Warn("feed fetch failed",
			logger.String("feed_url", feedURL),
			logger.String("source", mapping.Source),
			logger.Error(err),
		)
		return nil
	}

	if resp.StatusCode != http.StatusOK {
		r.log.Warn("feed fetch returned non-OK status",
			logger.String("feed_url", feedURL),
			logger.String("source", mapping.Source),
			logger.Int("status", resp.StatusCode),
		)
		return nil
	}

	parsed, err := gofeed.NewParser().ParseString(resp.Body)
	if err != nil {
		r.log.Warn("feed parse failed",
			logger.String("feed_url", feedURL),
			logger.String("source", mapping.Source),
			logger.Error(err),
		)
		return nil
	}

	candidates := make([]models.Candidate, 0, len(parsed.Items))

	for _, item := range parsed.Items {
		if candidate, ok := convertItem(item, mapping); ok {
			candidates = append(candidates, candidate)
		}
	}

	r.log.Info("parsed feed",
		logger.String("feed_url", feedURL),
		logger.String("source", mapping.Source),
		logger.Int("candidates", len(candidates)),
	)

	return candidates
}

// convertItem maps a single feed item to a candidate. Items failing the
// filter or missing a title or link are dropped.
func convertItem(item *gofeed.Item, mapping Mapping) (models.Candidate, bool) {
	title := strings.TrimSpace(item.Title)
	description := itemDescription(item)

	if mapping.Filter != nil && !mapping.Filter(title, description) {
		return models.Candidate{}, false
	}

	link := extractLink(item)
	if title == "" || link == "" {
		return models.Candidate{}, false
	}

	return models.Candidate{
		Title:        title,
		Description:  truncate(description, maxDescriptionLength),
		Organization: mapping.Organization,
		Categories:   mapping.Categories,
		Deadline:     itemTimestamp(item),
		URL:          link,
		Source:       mapping.Source,
		Location:     inferLocation(title, description, mapping),
		Tags:         []string{feedTag},
	}, true
}

// itemDescription picks the best available text for an item.
func itemDescription(item *gofeed.Item) string {
	if item.Description != "" {
		return item.Description
	}
	return item.Content
}

// extractLink returns the item link, falling back to a GUID that looks
// like an HTTP URL.
func extractLink(item *gofeed.Item) string {
	if item.Link != "" {
		return item.Link
	}

	if strings.HasPrefix(item.GUID, "http") {
		return item.GUID
	}

	return ""
}

// itemTimestamp derives a deadline from the item's published or updated
// time. Feeds rarely state real application deadlines, so the publication
// date stands in for one.
func itemTimestamp(item *gofeed.Item) *time.Time {
	if item.PublishedParsed != nil {
		return item.PublishedParsed
	}
	return item.UpdatedParsed
}

// inferLocation scans the item text for location keywords, falling back to
// the mapping's configured location. A "kenya" mention always wins.
func inferLocation(title, description string, mapping Mapping) string {
	text := strings.ToLower(title + " " + description)

	switch {
	case strings.Contains(text, "kenya"):
		return models.LocationKenya
	case strings.Contains(text, "africa"):
		return models.LocationAfrica
	case mapping.Location != "":
		return mapping.Location
	case mapping.DefaultLocation != "":
		return mapping.DefaultLocation
	default:
		return models.LocationGlobal
	}
}

// truncate caps s at max bytes without splitting a multi-byte rune;
// the store rejects invalid UTF-8.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}

	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}
