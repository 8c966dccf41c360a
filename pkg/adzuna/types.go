package adzuna

import (
	"net/http"
	"time"
)

// Config defines Adzuna API client settings
type Config struct {
	AppID      string
	AppKey     string
	Country    string
	BaseURL    string
	HTTPClient *http.Client
	PageSize   int
	// What is an optional keyword query applied to every search
	What string
}

// Client queries Adzuna job search API
type Client struct {
	appID      string
	appKey     string
	country    string
	baseURL    string
	httpClient *http.Client
	pageSize   int
	what       string
}

// SearchPage is one page of Adzuna results
type SearchPage struct {
	Jobs    []Job
	Page    int
	PerPage int
	Count   int
}

// Pages is the number of pages Count spans at PerPage
func (p SearchPage) Pages() int {
	if p.PerPage <= 0 || p.Count <= 0 {
		return 0
	}
	return (p.Count + p.PerPage - 1) / p.PerPage
}

type jobSearchResponse struct {
	Count   int          `json:"count"`
	Results []jobPosting `json:"results"`
}

type jobPosting struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Company     companySummary  `json:"company"`
	Location    locationSummary `json:"location"`
	Description string          `json:"description"`
	Created     string          `json:"created"`
	RedirectURL string          `json:"redirect_url"`
	Contract    string          `json:"contract_time"`
	Category    struct {
		Label string `json:"label"`
	} `json:"category"`
	SalaryMin float64 `json:"salary_min"`
	SalaryMax float64 `json:"salary_max"`
}

type companySummary struct {
	DisplayName string `json:"display_name"`
}

type locationSummary struct {
	DisplayName string   `json:"display_name"`
	Area        []string `json:"area"`
}

// Job represents a normalized Adzuna job posting.
type Job struct {
	ID          string
	Title       string
	CompanyName string
	Location    string
	Area        []string
	URL         string
	Description string
	Category    string
	Contract    string
	PostedAt    time.Time
	SalaryMin   float64
	SalaryMax   float64
}
