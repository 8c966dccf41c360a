package jobsapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	defaultPageSize  = 11
	defaultRetryBase = 200 * time.Millisecond
	maxRetryDelay    = 5 * time.Second
)

// NewClient instantiates a jobs API client
func NewClient(cfg Config) (*Client, error) {
	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		return nil, fmt.Errorf("jobsapi: base url is required")
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("jobsapi: parse base url: %w", err)
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	pageSize := cfg.PageSize
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}

	retries := cfg.MaxRetries
	if retries < 0 {
		retries = 0
	}

	base := cfg.RetryBase
	if base <= 0 {
		base = defaultRetryBase
	}

	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
		pageSize:   pageSize,
		maxRetries: retries,
		retryBase:  base,
		sleep:      time.After,
	}, nil
}

// PageSize is the default page size used when callers pass zero
func (c *Client) PageSize() int {
	return c.pageSize
}

// FetchPage requests one page of listings
func (c *Client) FetchPage(ctx context.Context, page, perPage int) (Response, error) {
	if c == nil {
		return Response{}, fmt.Errorf("jobsapi: client is nil")
	}
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = c.pageSize
	}

	u, err := c.buildURL(page, perPage)
	if err != nil {
		return Response{}, err
	}

	var out Response
	if err := c.getJSON(ctx, u, &out); err != nil {
		return Response{}, err
	}
	return out, nil
}

// FetchAll requests a single large page capped at limit
func (c *Client) FetchAll(ctx context.Context, limit int) ([]Posting, error) {
	res, err := c.FetchPage(ctx, 1, limit)
	if err != nil {
		return nil, err
	}
	return res.Data, nil
}

func (c *Client) buildURL(page, perPage int) (string, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return "", fmt.Errorf("jobsapi: parse base url: %w", err)
	}

	values := u.Query()
	values.Set("page", strconv.Itoa(page))
	values.Set("per_page", strconv.Itoa(perPage))
	u.RawQuery = values.Encode()

	return u.String(), nil
}

// statusError is an upstream HTTP error response
type statusError struct {
	code int
	body string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("jobsapi: API error (%d): %s", e.code, e.body)
}

func (e *statusError) retryable() bool {
	return e.code == http.StatusTooManyRequests || e.code >= http.StatusInternalServerError
}

func (c *Client) getJSON(ctx context.Context, u string, out any) error {
	var lastErr error

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return fmt.Errorf("jobsapi: %w (last error: %v)", ctx.Err(), lastErr)
			case <-c.sleep(c.backoff(attempt)):
			}
		}

		err := c.getOnce(ctx, u, out)
		if err == nil {
			return nil
		}
		lastErr = err

		if !retryable(ctx, err) {
			return err
		}
	}

	return fmt.Errorf("jobsapi: giving up after %d attempts: %w", c.maxRetries+1, lastErr)
}

func (c *Client) backoff(attempt int) time.Duration {
	d := c.retryBase << (attempt - 1)
	if d <= 0 || d > maxRetryDelay {
		return maxRetryDelay
	}
	return d
}

func retryable(ctx context.Context, err error) bool {
	if ctx.Err() != nil {
		return false
	}
	var se *statusError
	if errors.As(err, &se) {
		return se.retryable()
	}
	var pe *permanentError
	return !errors.As(err, &pe)
}

// permanentError is a failure that retrying cannot fix
type permanentError struct {
	err error
}

func (e *permanentError) Error() string { return "jobsapi: " + e.err.Error() }
func (e *permanentError) Unwrap() error { return e.err }

func (c *Client) getOnce(ctx context.Context, u string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return &permanentError{err: fmt.Errorf("build request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("jobsapi: request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode >= http.StatusBadRequest {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &statusError{code: resp.StatusCode, body: strings.TrimSpace(string(body))}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &permanentError{err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}
