// Package scrape extracts grant candidates from unstructured page markup
// using per-source selector rule sets.
package scrape

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/jonesrussell/gogrants/internal/fetch"
	"github.com/jonesrussell/gogrants/internal/logger"
	"github.com/jonesrussell/gogrants/internal/models"
)

// RuleSet describes how to pull candidates out of one source's markup.
// Real-world markup is inconsistent, so every selector list is an ordered
// fall-through: the first selector that matches anything wins.
type RuleSet struct {
	// PageURL is the page fetched for extraction.
	PageURL string
	// ContainerSelectors locate the candidate nodes.
	ContainerSelectors []string
	// TitleSelectors locate the title within a container.
	TitleSelectors []string
	// DescriptionSelectors locate the description within a container.
	DescriptionSelectors []string
	// AmountSelectors locate an optional free-text amount.
	AmountSelectors []string
	// LinkSelector locates an anchor whose href becomes the candidate URL.
	// When empty or unmatched, PageURL is used.
	LinkSelector string

	// Fixed fields stamped onto every extracted candidate.
	Organization string
	Categories   []string
	Location     string
	Tags         []string

	// FallbackDescription fills in when a container has no description.
	FallbackDescription string
	// Fallback, when non-nil, is emitted as the sole candidate if no
	// containers match, so the source is never silently absent.
	Fallback *models.Candidate
}

// Extractor runs a RuleSet against its source page.
type Extractor struct {
	source  string
	rules   RuleSet
	fetcher fetch.Client
	log     logger.Logger
}

// NewExtractor creates a page extractor for one source.
func NewExtractor(source string, rules RuleSet, fetcher fetch.Client, log logger.Logger) *Extractor {
	return &Extractor{
		source:  source,
		rules:   rules,
		fetcher: fetcher,
		log:     log,
	}
}

// Extract fetches the source page and applies the rule set. All network
// and parse failures degrade to an empty result; scraping noise is
// expected, never fatal.
func (e *Extractor) Extract(ctx context.Context) []models.Candidate {
	resp, err := e.fetcher.Fetch(ctx, e.rules.PageURL)
	if err != nil {
		e.log.Warn("page fetch failed",
			logger.String("source", e.source),
			logger.String("url", e.rules.PageURL),
			logger.Error(err),
		)
		return e.fallback()
	}

	if resp.StatusCode != http.StatusOK {
		e.log.Warn("page fetch returned non-OK status",
			logger.String("source", e.source),
			logger.String("url", e.rules.PageURL),
			logger.Int("status", resp.StatusCode),
		)
		return e.fallback()
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(resp.Body))
	if err != nil {
		e.log.Warn("page parse failed",
			logger.String("source", e.source),
			logger.Error(err),
		)
		return e.fallback()
	}

	candidates := e.extractFromDocument(doc)
	if len(candidates) == 0 {
		return e.fallback()
	}

	e.log.Info("extracted candidates from page",
		logger.String("source", e.source),
		logger.Int("candidates", len(candidates)),
	)

	return candidates
}

// extractFromDocument tries each container selector in order and converts
// the first matching node set.
func (e *Extractor) extractFromDocument(doc *goquery.Document) []models.Candidate {
	for _, selector := range e.rules.ContainerSelectors {
		nodes := doc.Find(selector)
		if nodes.Length() == 0 {
			continue
		}

		var candidates []models.Candidate
		nodes.Each(func(_ int, node *goquery.Selection) {
			if candidate, ok := e.convertNode(node); ok {
				candidates = append(candidates, candidate)
			}
		})

		if len(candidates) > 0 {
			return candidates
		}
	}

	return nil
}

// convertNode builds a candidate from one container node. Nodes without a
// title are skipped.
func (e *Extractor) convertNode(node *goquery.Selection) (models.Candidate, bool) {
	title := firstText(node, e.rules.TitleSelectors)
	if title == "" {
		return models.Candidate{}, false
	}

	description := firstText(node, e.rules.DescriptionSelectors)
	if description == "" {
		description = e.rules.FallbackDescription
	}

	return models.Candidate{
		Title:        title,
		Description:  description,
		Organization: e.rules.Organization,
		Categories:   e.rules.Categories,
		Amount:       firstText(node, e.rules.AmountSelectors),
		URL:          e.resolveLink(node),
		Source:       e.source,
		Location:     e.rules.Location,
		Tags:         e.rules.Tags,
	}, true
}

// resolveLink extracts the candidate URL from the node's anchor, resolved
// against the page URL. Falls back to the page URL itself.
func (e *Extractor) resolveLink(node *goquery.Selection) string {
	if e.rules.LinkSelector == "" {
		return e.rules.PageURL
	}

	href, exists := node.Find(e.rules.LinkSelector).First().Attr("href")
	if !exists || href == "" {
		return e.rules.PageURL
	}

	if strings.HasPrefix(href, "http") {
		return href
	}

	return resolveAgainst(e.rules.PageURL, href)
}

// fallback returns the rule set's synthetic record, if any.
func (e *Extractor) fallback() []models.Candidate {
	if e.rules.Fallback == nil {
		return nil
	}

	record := *e.rules.Fallback
	record.Source = e.source

	e.log.Info("emitting fallback record",
		logger.String("source", e.source),
	)

	return []models.Candidate{record}
}

// resolveAgainst resolves a relative href against the page URL.
func resolveAgainst(pageURL, href string) string {
	base, err := url.Parse(pageURL)
	if err != nil {
		return pageURL
	}

	ref, err := url.Parse(href)
	if err != nil {
		return pageURL
	}

	return base.ResolveReference(ref).String()
}

// firstText returns the trimmed text of the first selector that matches a
// non-empty element.
func firstText(node *goquery.Selection, selectors []string) string {
	for _, selector := range selectors {
		text := strings.TrimSpace(node.Find(selector).First().Text())
		if text != "" {
			return text
		}
	}
	return ""
}
