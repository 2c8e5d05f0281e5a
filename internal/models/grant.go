// Package models provides domain models shared across the application.
package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// Grant categories. Every persisted grant carries at least one of these.
const (
	CategoryCloudCompute = "Cloud Compute"
	CategoryHealthAI     = "Health AI"
	CategoryFinanceAI    = "Finance AI"
	CategoryLLMTokens    = "LLM Tokens"
	CategoryTechnology   = "Technology"
)

// Grant locations. Inferred from text when a source does not fix one.
const (
	LocationKenya  = "Kenya"
	LocationAfrica = "Africa"
	LocationGlobal = "Global"
)

// Grant represents a persisted funding opportunity. At most one grant
// exists per URL; repeat sightings overwrite mutable fields in place.
type Grant struct {
	ID           string      `json:"id" db:"id"`
	Title        string      `json:"title" db:"title"`
	Description  string      `json:"description" db:"description"`
	Organization string      `json:"organization" db:"organization"`
	Categories   StringArray `json:"categories" db:"categories"`
	Amount       *string     `json:"amount,omitempty" db:"amount"`
	Deadline     *time.Time  `json:"deadline,omitempty" db:"deadline"`
	URL          string      `json:"url" db:"url"`
	Requirements *string     `json:"requirements,omitempty" db:"requirements"`
	Eligibility  *string     `json:"eligibility,omitempty" db:"eligibility"`
	Source       string      `json:"source" db:"source"`
	Location     *string     `json:"location,omitempty" db:"location"`
	Tags         StringArray `json:"tags" db:"tags"`
	IsActive     bool        `json:"is_active" db:"is_active"`
	CreatedAt    time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at" db:"updated_at"`
	ScrapedAt    time.Time   `json:"scraped_at" db:"scraped_at"`
}

// StringArray stores a []string as JSONB in PostgreSQL.
type StringArray []string

var errUnsupportedScanType = errors.New("unsupported scan type for StringArray")

// Value implements driver.Valuer.
func (a StringArray) Value() (driver.Value, error) {
	if len(a) == 0 {
		return []byte("[]"), nil
	}
	return json.Marshal(a)
}

// Scan implements sql.Scanner.
func (a *StringArray) Scan(value any) error {
	if value == nil {
		*a = nil
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return errUnsupportedScanType
	}

	if len(data) == 0 {
		*a = StringArray{}
		return nil
	}

	return json.Unmarshal(data, a)
}
