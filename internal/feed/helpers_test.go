package feed_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jonesrussell/gogrants/internal/fetch"
)

// mockFetcher serves canned responses keyed by URL.
type mockFetcher struct {
	responses map[string]*fetch.Response
	errs      map[string]error
}

func newMockFetcher() *mockFetcher {
	return &mockFetcher{
		responses: make(map[string]*fetch.Response),
		errs:      make(map[string]error),
	}
}

func (m *mockFetcher) Fetch(_ context.Context, url string) (*fetch.Response, error) {
	if err, ok := m.errs[url]; ok {
		return nil, err
	}
	if resp, ok := m.responses[url]; ok {
		return resp, nil
	}
	return nil, errors.New("no response configured for " + url)
}

func (m *mockFetcher) respond(url, body string) {
	m.responses[url] = &fetch.Response{StatusCode: 200, Body: body}
}

func (m *mockFetcher) respondStatus(url string, status int, body string) {
	m.responses[url] = &fetch.Response{StatusCode: status, Body: body}
}

func (m *mockFetcher) fail(url string, err error) {
	m.errs[url] = err
}

func assertEqual(t *testing.T, field, expected, actual string) {
	t.Helper()
	if expected != actual {
		t.Errorf("%s: expected %q, got %q", field, expected, actual)
	}
}

func requireLen[T any](t *testing.T, items []T, expected int) {
	t.Helper()
	if len(items) != expected {
		t.Fatalf("expected %d items, got %d", expected, len(items))
	}
}
