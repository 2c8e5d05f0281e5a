package sources_test

import (
	"errors"
	"testing"

	"github.com/jonesrussell/gogrants/internal/sources"
)

func TestRegistry_GetKnownSource(t *testing.T) {
	t.Parallel()

	registry := sources.NewRegistry()

	src, err := registry.Get("grants-gov")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if src.ID != "grants-gov" {
		t.Errorf("expected ID=grants-gov, got %s", src.ID)
	}
	if src.Name != "Grants.gov" {
		t.Errorf("expected Name=Grants.gov, got %s", src.Name)
	}
}

func TestRegistry_GetUnknownSource(t *testing.T) {
	t.Parallel()

	registry := sources.NewRegistry()

	_, err := registry.Get("does-not-exist")
	if !errors.Is(err, sources.ErrSourceNotFound) {
		t.Fatalf("expected ErrSourceNotFound, got %v", err)
	}
}

func TestRegistry_AllReturnsCatalogOrder(t *testing.T) {
	t.Parallel()

	registry := sources.NewRegistry()
	all := registry.All()

	want := []string{"grants-gov", "aws-credits", "google-cloud", "microsoft-ai", "openai", "anthropic"}
	if len(all) != len(want) {
		t.Fatalf("expected %d sources, got %d", len(want), len(all))
	}
	for i, id := range want {
		if all[i].ID != id {
			t.Errorf("position %d: expected %s, got %s", i, id, all[i].ID)
		}
	}
}

func TestRegistry_AllReturnsCopy(t *testing.T) {
	t.Parallel()

	registry := sources.NewRegistry()

	first := registry.All()
	first[0].ID = "mutated"

	second := registry.All()
	if second[0].ID != "grants-gov" {
		t.Error("All() exposed internal catalog to mutation")
	}
}

func TestRegistry_EverySourceIsComplete(t *testing.T) {
	t.Parallel()

	for _, src := range sources.NewRegistry().All() {
		if src.ID == "" || src.Name == "" || src.Organization == "" {
			t.Errorf("source %q missing identity fields", src.ID)
		}
		if src.BaseURL == "" {
			t.Errorf("source %q has no base URL", src.ID)
		}
		if len(src.Categories) == 0 {
			t.Errorf("source %q has no categories", src.ID)
		}
		if src.Rules.PageURL == "" {
			t.Errorf("source %q has no extraction page", src.ID)
		}
		if len(src.Rules.ContainerSelectors) == 0 {
			t.Errorf("source %q has no container selectors", src.ID)
		}
	}
}

func TestFeedFilter_GrantsGov(t *testing.T) {
	t.Parallel()

	registry := sources.NewRegistry()
	src, err := registry.Get("grants-gov")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if src.FeedFilter == nil {
		t.Fatal("expected grants-gov to carry a feed filter")
	}

	if !src.FeedFilter("AI Research Opportunities", "") {
		t.Error("expected technology-related item to pass the filter")
	}
	if !src.FeedFilter("New Funding", "supporting computing infrastructure") {
		t.Error("expected keyword in snippet to pass the filter")
	}
	if src.FeedFilter("Agriculture Subsidy", "rural farming support") {
		t.Error("expected unrelated item to be filtered out")
	}
}
