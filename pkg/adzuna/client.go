package adzuna

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	defaultBaseURL  = "https://api.adzuna.com"
	defaultCountry  = "us"
	defaultPageSize = 20
	// Adzuna rejects larger pages
	maxPageSize = 50
)

// NewClient instantiates an Adzuna API client
func NewClient(cfg Config) (*Client, error) {
	if cfg.AppID == "" || cfg.AppKey == "" {
		return nil, fmt.Errorf("adzuna: app_id and app_key are required")
	}

	country := cfg.Country
	if country == "" {
		country = defaultCountry
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	baseURL = strings.TrimSuffix(baseURL, "/")

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	pageSize := cfg.PageSize
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}

	return &Client{
		appID:      cfg.AppID,
		appKey:     cfg.AppKey,
		country:    country,
		baseURL:    baseURL,
		httpClient: httpClient,
		pageSize:   clampPageSize(pageSize),
		what:       cfg.What,
	}, nil
}

// MaxPageSize is the largest page Adzuna serves
func (c *Client) MaxPageSize() int {
	return maxPageSize
}

// SearchPage fetches one 1-based page of results
func (c *Client) SearchPage(ctx context.Context, page, perPage int) (SearchPage, error) {
	if c == nil {
		return SearchPage{}, fmt.Errorf("adzuna: client is nil")
	}
	if page < 1 {
		page = 1
	}
	if perPage <= 0 {
		perPage = c.pageSize
	}
	perPage = clampPageSize(perPage)

	u, err := c.buildSearchURL(page, perPage)
	if err != nil {
		return SearchPage{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return SearchPage{}, fmt.Errorf("adzuna: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return SearchPage{}, fmt.Errorf("adzuna: request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode >= http.StatusBadRequest {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return SearchPage{}, fmt.Errorf("adzuna: API error (%d): %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var payload jobSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return SearchPage{}, fmt.Errorf("adzuna: decode response: %w", err)
	}

	jobs := make([]Job, 0, len(payload.Results))
	for _, posting := range payload.Results {
		job := mapPosting(posting)
		if job.ID == "" {
			job.ID = uuid.NewString()
		}
		jobs = append(jobs, job)
	}

	return SearchPage{
		Jobs:    jobs,
		Page:    page,
		PerPage: perPage,
		Count:   payload.Count,
	}, nil
}

func (c *Client) buildSearchURL(page, perPage int) (string, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return "", fmt.Errorf("adzuna: parse base url: %w", err)
	}

	u.Path = path.Join(u.Path, "v1", "api", "jobs", c.country, "search", strconv.Itoa(page))

	values := url.Values{}
	values.Set("app_id", c.appID)
	values.Set("app_key", c.appKey)
	values.Set("results_per_page", strconv.Itoa(perPage))
	values.Set("content-type", "application/json")
	if c.what != "" {
		values.Set("what", c.what)
	}

	u.RawQuery = values.Encode()
	return u.String(), nil
}

func clampPageSize(n int) int {
	if n > maxPageSize {
		return maxPageSize
	}
	return n
}

func mapPosting(posting jobPosting) Job {
	job := Job{
		ID:          posting.ID,
		Title:       posting.Title,
		CompanyName: posting.Company.DisplayName,
		Location:    posting.Location.DisplayName,
		Area:        posting.Location.Area,
		URL:         posting.RedirectURL,
		Description: posting.Description,
		Category:    posting.Category.Label,
		Contract:    posting.Contract,
		SalaryMin:   posting.SalaryMin,
		SalaryMax:   posting.SalaryMax,
	}

	if posting.Created != "" {
		if ts, err := time.Parse(time.RFC3339, posting.Created); err == nil {
			job.PostedAt = ts
		}
	}

	return job
}
