// Package fetch provides bounded HTTP fetching shared by feed and page
// extraction.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
)

// browserUserAgent is sent on every outbound request. Several grant sites
// refuse requests that do not look like a browser.
const browserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"

// Response is the result of fetching a URL.
type Response struct {
	StatusCode int
	Body       string
}

// Client fetches URLs. Implementations must honor context deadlines.
type Client interface {
	Fetch(ctx context.Context, url string) (*Response, error)
}

// HTTPClient implements Client using net/http.
type HTTPClient struct {
	client *http.Client
}

// NewHTTPClient creates a Client backed by the given http.Client. The
// client's timeout bounds every call; a hung source must not stall a batch.
func NewHTTPClient(client *http.Client) *HTTPClient {
	return &HTTPClient{client: client}
}

// Fetch performs an HTTP GET and reads the full body.
func (c *HTTPClient) Fetch(ctx context.Context, url string) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("fetch new request: %w", err)
	}
	req.Header.Set("User-Agent", browserUserAgent)

	resp, doErr := c.client.Do(req)
	if doErr != nil {
		return nil, fmt.Errorf("fetch do request: %w", doErr)
	}
	defer resp.Body.Close()

	raw, readErr := io.ReadAll(resp.Body)
	if readErr != nil {
		return nil, fmt.Errorf("fetch read body: %w", readErr)
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Body:       string(raw),
	}, nil
}
