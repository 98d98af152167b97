// Package client is the Go client of the 9RIB marketplace API. Reads retry
// transient failures and the top artisans listing falls back to placeholder
// records outside development mode so public pages are never empty.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const (
	defaultTimeout    = 8 * time.Second
	defaultMaxRetries = 3
	defaultRetryDelay = 500 * time.Millisecond
)

// Client is the marketplace API client.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client

	// MaxRetries bounds the re-issues of a read after a transient failure.
	MaxRetries int
	// RetryDelay is the pause between attempts.
	RetryDelay time.Duration
	// DevMode surfaces top artisan failures instead of placeholder data.
	DevMode bool
}

// New creates a new API client. token may be empty for public reads.
func New(baseURL, token string) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		MaxRetries: defaultMaxRetries,
		RetryDelay: defaultRetryDelay,
	}
}

// ListArtisans fetches a page of the directory. When a search term is set the
// page is also filtered locally with MatchesSearch.
func (c *Client) ListArtisans(ctx context.Context, f ArtisanFilter) (*ArtisanPage, error) {
	var page ArtisanPage
	if err := c.getWithRetry(ctx, "ListArtisans", "/v1/artisans?"+f.values().Encode(), &page); err != nil {
		return nil, err
	}
	if f.Search != "" {
		page.Items = FilterSearch(page.Items, f.Search)
	}
	return &page, nil
}

// TopArtisans returns the best rated artisans. limit is clamped to
// [1, MaxTopLimit], zero meaning DefaultTopLimit. Outside DevMode a failed
// fetch yields PlaceholderArtisans(limit) and no error.
func (c *Client) TopArtisans(ctx context.Context, limit int) ([]Artisan, error) {
	limit = clampTopLimit(limit)
	params := url.Values{}
	params.Set("limit", strconv.Itoa(limit))

	var items []Artisan
	err := c.getWithRetry(ctx, "TopArtisans", "/v1/artisans/top?"+params.Encode(), &items)
	if err != nil {
		if c.DevMode {
			return nil, err
		}
		return PlaceholderArtisans(limit), nil
	}
	return items, nil
}

// Categories returns the active categories.
func (c *Client) Categories(ctx context.Context) ([]Category, error) {
	var items []Category
	if err := c.getWithRetry(ctx, "Categories", "/v1/categories", &items); err != nil {
		return nil, err
	}
	return items, nil
}

// Cities returns the active cities.
func (c *Client) Cities(ctx context.Context) ([]City, error) {
	var items []City
	if err := c.getWithRetry(ctx, "Cities", "/v1/cities", &items); err != nil {
		return nil, err
	}
	return items, nil
}

// ProcessApplication applies an admin decision. It is not retried.
func (c *Client) ProcessApplication(ctx context.Context, req ProcessRequest) (*ProcessResponse, error) {
	var resp ProcessResponse
	if err := c.doRequest(ctx, http.MethodPost, "/v1/functions/process-application", req, &resp); err != nil {
		return nil, newFetchError("ProcessApplication", err)
	}
	return &resp, nil
}

// getWithRetry issues a GET and re-issues it up to MaxRetries times while the
// failure looks transient.
func (c *Client) getWithRetry(ctx context.Context, op, path string, out any) error {
	var err error
	for attempt := 0; ; attempt++ {
		err = c.doRequest(ctx, http.MethodGet, path, nil, out)
		if err == nil {
			return nil
		}
		if !IsTransient(err) || attempt >= c.MaxRetries {
			break
		}

		select {
		case <-ctx.Done():
			return newFetchError(op, ctx.Err())
		case <-time.After(c.RetryDelay):
		}
	}
	return newFetchError(op, err)
}

func (c *Client) doRequest(ctx context.Context, method, path string, body any, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode >= 400 {
		respBody, readErr := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
		if readErr != nil {
			return &HTTPError{StatusCode: resp.StatusCode, Message: fmt.Sprintf("failed to read body: %v", readErr)}
		}
		var apiErr struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(respBody, &apiErr) == nil && apiErr.Error != "" {
			return &HTTPError{StatusCode: resp.StatusCode, Message: apiErr.Error}
		}
		return &HTTPError{StatusCode: resp.StatusCode, Message: string(respBody)}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}
