// Package catalog fetches component catalogs from the remote API and keeps
// a local SQLite copy of them.
//
// The API does no filtering of its own; GET /api/{category} returns the
// full array for a category and all compatibility work happens locally.
package catalog

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/StinkyLord/ibuildhw/internal/model"
)

// maxErrorBody caps how much of an error response is kept for messages.
const maxErrorBody = 512

// Client reads catalogs from the remote API.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewClient creates a client for baseURL (e.g. "http://localhost:8000").
// The token, when non-empty, is sent as a bearer token.
func NewClient(baseURL, token string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// URL returns the endpoint serving category.
func (c *Client) URL(category model.Category) string {
	return c.baseURL + "/api/" + url.PathEscape(category.Plural())
}

// Fetch downloads and decodes the catalog for category.
func (c *Client) Fetch(ctx context.Context, category model.Category) ([]*model.Component, error) {
	if !category.HasCatalog() {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCategory, category)
	}

	endpoint := c.URL(category)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request for %s: %w", endpoint, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("catalog request %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &StatusError{
			URL:        endpoint,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(body)),
		}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", endpoint, err)
	}
	return model.DecodeCatalog(category, data)
}
