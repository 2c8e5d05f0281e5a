package database_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"

	"github.com/jonesrussell/gogrants/internal/database"
	"github.com/jonesrussell/gogrants/internal/models"
)

// grantColumns lists the columns returned by grants SELECT queries.
var grantColumns = []string{
	"id", "title", "description", "organization", "categories", "amount",
	"deadline", "url", "requirements", "eligibility", "source", "location",
	"tags", "is_active", "created_at", "updated_at", "scraped_at",
}

func newGrantRepo(t *testing.T) (*database.GrantRepository, sqlmock.Sqlmock, func()) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}

	db := sqlx.NewDb(mockDB, "postgres")
	repo := database.NewGrantRepository(db)

	return repo, mock, func() { mockDB.Close() }
}

func expectationsMet(t *testing.T, mock sqlmock.Sqlmock) {
	t.Helper()

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet sqlmock expectations: %v", err)
	}
}

func testGrant() *models.Grant {
	return &models.Grant{
		Title:        "AI Research Grant",
		Description:  "Funding for AI research",
		Organization: "Example Org",
		Categories:   models.StringArray{models.CategoryTechnology},
		URL:          "https://example.org/grant",
		Source:       "grants-gov",
		Tags:         models.StringArray{"RSS Feed"},
		IsActive:     true,
	}
}

func TestGrantRepository_GetByURL_NotFound(t *testing.T) {
	repo, mock, cleanup := newGrantRepo(t)
	defer cleanup()

	mock.ExpectQuery("SELECT .+ FROM grants").
		WithArgs("https://example.org/missing").
		WillReturnRows(sqlmock.NewRows(grantColumns))

	grant, err := repo.GetByURL(context.Background(), "https://example.org/missing")
	if err != nil {
		t.Fatalf("GetByURL() error = %v", err)
	}
	if grant != nil {
		t.Errorf("expected nil for missing URL, got %+v", grant)
	}

	expectationsMet(t, mock)
}

func TestGrantRepository_GetByURL_Found(t *testing.T) {
	repo, mock, cleanup := newGrantRepo(t)
	defer cleanup()

	now := time.Now()
	mock.ExpectQuery("SELECT .+ FROM grants").
		WithArgs("https://example.org/grant").
		WillReturnRows(
			sqlmock.NewRows(grantColumns).AddRow(
				"id-1", "AI Research Grant", "Funding for AI research",
				"Example Org", []byte(`["Technology"]`), nil, nil,
				"https://example.org/grant", nil, nil, "grants-gov", nil,
				[]byte(`["RSS Feed"]`), true, now, now, now,
			),
		)

	grant, err := repo.GetByURL(context.Background(), "https://example.org/grant")
	if err != nil {
		t.Fatalf("GetByURL() error = %v", err)
	}
	if grant == nil {
		t.Fatal("expected a grant")
	}
	if grant.Title != "AI Research Grant" {
		t.Errorf("Title: got %q", grant.Title)
	}
	if len(grant.Categories) != 1 || grant.Categories[0] != models.CategoryTechnology {
		t.Errorf("Categories: got %v", grant.Categories)
	}
	if !grant.IsActive {
		t.Error("expected grant to be active")
	}

	expectationsMet(t, mock)
}

func TestGrantRepository_Upsert_Insert(t *testing.T) {
	repo, mock, cleanup := newGrantRepo(t)
	defer cleanup()

	mock.ExpectQuery("INSERT INTO grants").
		WillReturnRows(sqlmock.NewRows([]string{"inserted"}).AddRow(true))

	grant := testGrant()
	created, err := repo.Upsert(context.Background(), grant)
	if err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}
	if !created {
		t.Error("expected created=true for a new URL")
	}
	if grant.ID == "" {
		t.Error("expected an ID to be generated")
	}
	if grant.ScrapedAt.IsZero() {
		t.Error("expected ScrapedAt to be stamped")
	}

	expectationsMet(t, mock)
}

func TestGrantRepository_Upsert_UpdateExisting(t *testing.T) {
	repo, mock, cleanup := newGrantRepo(t)
	defer cleanup()

	mock.ExpectQuery("INSERT INTO grants").
		WillReturnRows(sqlmock.NewRows([]string{"inserted"}).AddRow(false))

	created, err := repo.Upsert(context.Background(), testGrant())
	if err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}
	if created {
		t.Error("expected created=false for a known URL")
	}

	expectationsMet(t, mock)
}

func TestGrantRepository_Upsert_PreservesExplicitID(t *testing.T) {
	repo, mock, cleanup := newGrantRepo(t)
	defer cleanup()

	mock.ExpectQuery("INSERT INTO grants").
		WillReturnRows(sqlmock.NewRows([]string{"inserted"}).AddRow(true))

	grant := testGrant()
	grant.ID = "existing-id"

	if _, err := repo.Upsert(context.Background(), grant); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}
	if grant.ID != "existing-id" {
		t.Errorf("expected ID preserved, got %s", grant.ID)
	}

	expectationsMet(t, mock)
}

func TestGrantRepository_Upsert_Error(t *testing.T) {
	repo, mock, cleanup := newGrantRepo(t)
	defer cleanup()

	mock.ExpectQuery("INSERT INTO grants").
		WillReturnError(errors.New("connection lost"))

	if _, err := repo.Upsert(context.Background(), testGrant()); err == nil {
		t.Fatal("expected error")
	}

	expectationsMet(t, mock)
}

func TestGrantRepository_DeactivateExpired(t *testing.T) {
	repo, mock, cleanup := newGrantRepo(t)
	defer cleanup()

	asOf := time.Now()
	mock.ExpectExec("UPDATE grants").
		WithArgs(asOf, "grants-gov").
		WillReturnResult(sqlmock.NewResult(0, 3))

	count, err := repo.DeactivateExpired(context.Background(), "grants-gov", asOf)
	if err != nil {
		t.Fatalf("DeactivateExpired() error = %v", err)
	}
	if count != 3 {
		t.Errorf("expected 3 rows deactivated, got %d", count)
	}

	expectationsMet(t, mock)
}

func TestGrantRepository_DeactivateExpired_NoExpired(t *testing.T) {
	repo, mock, cleanup := newGrantRepo(t)
	defer cleanup()

	asOf := time.Now()
	mock.ExpectExec("UPDATE grants").
		WithArgs(asOf, "openai").
		WillReturnResult(sqlmock.NewResult(0, 0))

	count, err := repo.DeactivateExpired(context.Background(), "openai", asOf)
	if err != nil {
		t.Fatalf("DeactivateExpired() error = %v", err)
	}
	if count != 0 {
		t.Errorf("expected 0 rows, got %d", count)
	}

	expectationsMet(t, mock)
}
