// Package sources holds the static catalog of grant sources. Adding a
// source means adding one entry here plus its selector rule set; no other
// component branches on source identity.
package sources

import (
	"errors"
	"strings"

	"github.com/jonesrussell/gogrants/internal/models"
	"github.com/jonesrussell/gogrants/internal/scrape"
)

// ErrSourceNotFound is returned for source IDs absent from the registry.
// It indicates a caller configuration mistake, not a runtime condition.
var ErrSourceNotFound = errors.New("source not found")

// Source binds one external origin of grant data to its extraction
// strategy and fixed metadata.
type Source struct {
	// ID uniquely identifies the source; it is stamped on every record
	// and job produced for it.
	ID string
	// Name is the human-readable display name.
	Name string
	// Organization, Categories and locations are stamped onto records
	// produced from this source's feed.
	Organization    string
	Categories      []string
	Location        string
	DefaultLocation string
	// BaseURL is probed for a structured feed declaration.
	BaseURL string
	// FeedFilter, when non-nil, drops feed items it rejects.
	FeedFilter func(title, snippet string) bool
	// Rules drive page extraction when no feed yields data.
	Rules scrape.RuleSet
}

// Registry is the fixed catalog of sources.
type Registry struct {
	ordered []Source
	byID    map[string]Source
}

// NewRegistry creates the default source catalog.
func NewRegistry() *Registry {
	return newRegistry(defaultSources())
}

func newRegistry(list []Source) *Registry {
	byID := make(map[string]Source, len(list))
	for _, src := range list {
		byID[src.ID] = src
	}
	return &Registry{ordered: list, byID: byID}
}

// Get returns the source with the given ID, or ErrSourceNotFound.
func (r *Registry) Get(id string) (Source, error) {
	src, ok := r.byID[id]
	if !ok {
		return Source{}, ErrSourceNotFound
	}
	return src, nil
}

// All returns every registered source in catalog order.
func (r *Registry) All() []Source {
	out := make([]Source, len(r.ordered))
	copy(out, r.ordered)
	return out
}

// keywordFilter accepts items whose title or snippet contains any of the
// given keywords, case-insensitively.
func keywordFilter(keywords ...string) func(title, snippet string) bool {
	return func(title, snippet string) bool {
		text := strings.ToLower(title + " " + snippet)
		for _, kw := range keywords {
			if strings.Contains(text, kw) {
				return true
			}
		}
		return false
	}
}

func defaultSources() []Source {
	return []Source{
		{
			ID:              "grants-gov",
			Name:            "Grants.gov",
			Organization:    "U.S. Government",
			Categories:      []string{models.CategoryTechnology},
			Location:        models.LocationGlobal,
			BaseURL:         "https://www.grants.gov/connect/rss-feeds",
			FeedFilter:      keywordFilter("technology", "tech", "ai", "computing", "innovation", "research"),
			Rules: scrape.RuleSet{
				PageURL:            "https://www.grants.gov/web/grants/search-grants.html",
				ContainerSelectors: []string{".search-result", ".grant-listing", "table tbody tr"},
				TitleSelectors:     []string{".opportunity-title", "h2", "h3", "a"},
				DescriptionSelectors: []string{
					".opportunity-synopsis", "p",
				},
				LinkSelector: "a",
				Organization: "U.S. Government",
				Categories:   []string{models.CategoryTechnology},
				Location:     models.LocationGlobal,
				Tags:         []string{"Grants.gov", "Government"},
			},
		},
		{
			ID:              "aws-credits",
			Name:            "AWS Cloud Credits",
			Organization:    "Amazon Web Services",
			Categories:      []string{models.CategoryCloudCompute},
			DefaultLocation: models.LocationGlobal,
			BaseURL:         "https://aws.amazon.com/grants/",
			Rules: scrape.RuleSet{
				PageURL:              "https://aws.amazon.com/grants/",
				ContainerSelectors:   []string{".grant-item", ".program-card", ".lb-content-item"},
				TitleSelectors:       []string{"h2", "h3", ".title"},
				DescriptionSelectors: []string{"p", ".description"},
				Organization:         "Amazon Web Services",
				Categories:           []string{models.CategoryCloudCompute},
				Location:             models.LocationGlobal,
				Tags:                 []string{"AWS", "Cloud Credits", "Research"},
			},
		},
		{
			ID:              "google-cloud",
			Name:            "Google Cloud Research Credits",
			Organization:    "Google",
			Categories:      []string{models.CategoryCloudCompute},
			DefaultLocation: models.LocationGlobal,
			BaseURL:         "https://cloud.google.com/edu/researchers",
			Rules: scrape.RuleSet{
				PageURL:              "https://cloud.google.com/edu/researchers",
				ContainerSelectors:   []string{".program-card", ".grant-card", "article"},
				TitleSelectors:       []string{"h2", "h3"},
				DescriptionSelectors: []string{"p"},
				Organization:         "Google",
				Categories:           []string{models.CategoryCloudCompute},
				Location:             models.LocationGlobal,
				Tags:                 []string{"Google Cloud", "Research Credits"},
				FallbackDescription:  "Google Cloud research credits program",
				Fallback: &models.Candidate{
					Title:        "Google Cloud Research Credits",
					Description:  "Google Cloud offers research credits for academic and research institutions working on innovative projects.",
					Organization: "Google",
					Categories:   []string{models.CategoryCloudCompute},
					URL:          "https://cloud.google.com/edu/researchers",
					Location:     models.LocationGlobal,
					Tags:         []string{"Google Cloud", "Research Credits"},
				},
			},
		},
		{
			ID:              "microsoft-ai",
			Name:            "Microsoft AI for Good",
			Organization:    "Microsoft",
			Categories:      []string{models.CategoryHealthAI, models.CategoryFinanceAI},
			DefaultLocation: models.LocationGlobal,
			BaseURL:         "https://www.microsoft.com/en-us/ai/ai-for-good",
			Rules: scrape.RuleSet{
				PageURL:              "https://www.microsoft.com/en-us/ai/ai-for-good",
				ContainerSelectors:   []string{".program-item", ".grant-program", "section article"},
				TitleSelectors:       []string{"h2", "h3"},
				DescriptionSelectors: []string{"p"},
				Organization:         "Microsoft",
				Categories:           []string{models.CategoryHealthAI, models.CategoryFinanceAI},
				Location:             models.LocationGlobal,
				Tags:                 []string{"Microsoft", "AI for Good"},
				FallbackDescription:  "Microsoft AI for Good program",
			},
		},
		{
			ID:              "openai",
			Name:            "OpenAI",
			Organization:    "OpenAI",
			Categories:      []string{models.CategoryLLMTokens},
			DefaultLocation: models.LocationGlobal,
			BaseURL:         "https://openai.com/research",
			Rules: scrape.RuleSet{
				PageURL:             "https://openai.com/research",
				ContainerSelectors:  []string{".program-card", "article"},
				TitleSelectors:      []string{"h2", "h3"},
				LinkSelector:        "a",
				Organization:        "OpenAI",
				Categories:          []string{models.CategoryLLMTokens},
				Location:            models.LocationGlobal,
				Tags:                []string{"OpenAI", "API Tokens", "LLM"},
				FallbackDescription: "OpenAI researcher access and API token programs",
			},
		},
		{
			ID:              "anthropic",
			Name:            "Anthropic",
			Organization:    "Anthropic",
			Categories:      []string{models.CategoryLLMTokens},
			DefaultLocation: models.LocationGlobal,
			BaseURL:         "https://www.anthropic.com/research",
			Rules: scrape.RuleSet{
				PageURL:             "https://www.anthropic.com/research",
				ContainerSelectors:  []string{".program-item", "article"},
				TitleSelectors:      []string{"h2", "h3"},
				LinkSelector:        "a",
				Organization:        "Anthropic",
				Categories:          []string{models.CategoryLLMTokens},
				Location:            models.LocationGlobal,
				Tags:                []string{"Anthropic", "Claude", "API Tokens", "LLM"},
				FallbackDescription: "Anthropic research access and API programs",
			},
		},
	}
}
