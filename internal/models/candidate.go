package models

import (
	"net/url"
	"strings"
	"time"
)

// Candidate is an unpersisted grant observation produced by one extraction
// pass over a source. The ingestor converts candidates into persisted
// grants, deduplicating by URL.
type Candidate struct {
	Title        string
	Description  string
	Organization string
	Categories   []string
	Amount       string
	Deadline     *time.Time
	URL          string
	Requirements string
	Eligibility  string
	Source       string
	Location     string
	Tags         []string
}

// HasValidURL reports whether the candidate carries an absolute http or
// https URL. Candidates without one are extraction noise and are dropped,
// not treated as errors.
func (c *Candidate) HasValidURL() bool {
	trimmed := strings.TrimSpace(c.URL)
	if trimmed == "" {
		return false
	}

	parsed, err := url.Parse(trimmed)
	if err != nil {
		return false
	}

	return (parsed.Scheme == "http" || parsed.Scheme == "https") && parsed.Host != ""
}
