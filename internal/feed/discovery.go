package feed

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/jonesrussell/gogrants/internal/fetch"
	"github.com/jonesrussell/gogrants/internal/logger"
)

// rssXMLType and atomXMLType are the MIME type substrings for feed link
// detection.
const (
	rssXMLType  = "rss+xml"
	atomXMLType = "atom+xml"
)

// Discoverer locates RSS/Atom feeds declared in a page's markup.
type Discoverer struct {
	fetcher fetch.Client
	log     logger.Logger
}

// NewDiscoverer creates a feed discoverer.
func NewDiscoverer(fetcher fetch.Client, log logger.Logger) *Discoverer {
	return &Discoverer{fetcher: fetcher, log: log}
}

// DiscoverFeed fetches the base URL and returns the first feed URL declared
// via a <link rel="alternate"> tag, resolved to absolute form. Returns an
// empty string when the page cannot be fetched or declares no feed; feed
// absence is routine, never an error.
func (d *Discoverer) DiscoverFeed(ctx context.Context, baseURL string) string {
	resp, err := d.fetcher.Fetch(ctx, baseURL)
	if err != nil {
		d.log.Debug("feed discovery fetch failed",
			logger.String("url", baseURL),
			logger.Error(err),
		)
		return ""
	}

	if resp.StatusCode != http.StatusOK {
		return ""
	}

	return extractFeedLink(baseURL, resp.Body)
}

// extractFeedLink parses HTML and returns the first declared feed URL.
func extractFeedLink(baseURL, body string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return ""
	}

	var found string

	doc.Find(`link[rel="alternate"]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		linkType, _ := s.Attr("type")
		if !isFeedType(linkType) {
			return true
		}

		href, exists := s.Attr("href")
		if !exists || href == "" {
			return true
		}

		if resolved := resolveURL(baseURL, href); resolved != "" {
			found = resolved
			return false
		}

		return true
	})

	return found
}

// isFeedType checks if a link type attribute indicates an RSS or Atom feed.
func isFeedType(linkType string) bool {
	return strings.Contains(linkType, rssXMLType) || strings.Contains(linkType, atomXMLType)
}

// resolveURL resolves a potentially relative href against a base URL.
func resolveURL(baseURL, href string) string {
	base, err := url.Parse(baseURL)
	if err != nil {
		return ""
	}

	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}

	return base.ResolveReference(ref).String()
}
