package jobsapi

import (
	"net/http"
	"time"
)

// Config defines jobs API client settings
type Config struct {
	BaseURL    string
	HTTPClient *http.Client
	PageSize   int
	// MaxRetries is the number of extra attempts after a retryable failure
	MaxRetries int
	RetryBase  time.Duration
}

// Client queries the jobs listing API
type Client struct {
	baseURL    string
	httpClient *http.Client
	pageSize   int
	maxRetries int
	retryBase  time.Duration
	sleep      func(time.Duration) <-chan time.Time
}

// Response is one page of the listing endpoint
type Response struct {
	Data []Posting `json:"data"`
	Meta Meta      `json:"meta"`
}

// Meta is the upstream pagination block
type Meta struct {
	CurrentPage int `json:"current_page"`
	PerPage     int `json:"per_page"`
	Total       int `json:"total"`
	LastPage    int `json:"last_page"`
}

// Posting is a job as served by the API. Only the fields we read are declared.
type Posting struct {
	ID                       string    `json:"id"`
	Title                    string    `json:"title"`
	Description              *string   `json:"description"`
	MinimumYearsOfExperience int       `json:"minimum_years_of_experience"`
	BasicSalaryFrom          int64     `json:"basic_salary_from"`
	BasicSalaryTo            int64     `json:"basic_salary_to"`
	SalaryFrom               int64     `json:"salary_from"`
	SalaryTo                 int64     `json:"salary_to"`
	NumberOfVacancies        int       `json:"number_of_vacancies"`
	Type                     string    `json:"type"`
	Tags                     []string  `json:"tags"`
	DatePublished            *string   `json:"date_published"`
	CreatedAt                string    `json:"created_at"`
	UpdatedAt                string    `json:"updated_at"`
	Location                 *Location `json:"location"`
	Page                     *Page     `json:"page"`
}

// Location is a job or company page location
type Location struct {
	ID             string `json:"id"`
	AddressLineOne string `json:"address_line_one"`
	CountryAndCity string `json:"country_and_city"`
	Country        *Named `json:"country"`
	City           *Named `json:"city"`
}

// Named is a nested reference that only carries a display name
type Named struct {
	Name string `json:"name"`
}

// Page is the employer page that published the posting
type Page struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Alias    string    `json:"alias"`
	Location *Location `json:"location"`
}
