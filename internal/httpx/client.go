package httpx

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// FetchError carries the HTTP status of a failed provider call so callers
// can classify it without string matching.
type FetchError struct {
	Status int
	Err    error
}

func (e *FetchError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("fetch error (status %d)", e.Status)
	}
	return fmt.Sprintf("fetch error (status %d): %v", e.Status, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Client is a thin JSON API client with a fixed per-request timeout.
type Client struct {
	client *http.Client
}

func NewClient(timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		client: &http.Client{Timeout: timeout},
	}
}

// GetJSON issues a GET with the given query parameters and headers and
// decodes the response body into out. Non-2xx statuses return a *FetchError.
func (c *Client) GetJSON(ctx context.Context, baseURL string, params url.Values, headers map[string]string, out any) error {
	u, err := url.Parse(baseURL)
	if err != nil {
		return fmt.Errorf("invalid url %q: %w", baseURL, err)
	}
	if len(params) > 0 {
		u.RawQuery = params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return &FetchError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// Drain a little of the body so the error is actionable in logs.
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		return &FetchError{Status: resp.StatusCode, Err: fmt.Errorf("%s", snippet)}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode failed: %w", err)
	}
	return nil
}
