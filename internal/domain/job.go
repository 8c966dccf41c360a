package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// JobID uniquely identifies a job posting upstream
type JobID = string

// Location is a resolved place attached to a job or employer
type Location struct {
	ID             string
	Country        string
	City           string
	AddressLine    string
	CountryAndCity string
}

// Employer is the company page that published a job
type Employer struct {
	ID       string
	Name     string
	Alias    string
	Slug     string
	Location *Location
}

// Job is the normalized job posting entity. Jobs are never mutated after fetch.
type Job struct {
	ID                       JobID
	Title                    string
	MinimumYearsOfExperience int
	Employer                 Employer
	Location                 *Location
	Description              string
	Type                     string
	Tags                     []string
	Vacancies                int
	SalaryFrom               int64
	SalaryTo                 int64
	PublishedAt              time.Time
	CreatedAt                time.Time
	UpdatedAt                time.Time
	Source                   string
}

// CountryAndCity returns the composite location string used for filtering.
// The job's own location wins over the employer's.
func (j Job) CountryAndCity() (string, bool) {
	if j.Location != nil && j.Location.CountryAndCity != "" {
		return j.Location.CountryAndCity, true
	}
	if j.Employer.Location != nil && j.Employer.Location.CountryAndCity != "" {
		return j.Employer.Location.CountryAndCity, true
	}
	return "", false
}

// CompanyName is the first word of the employer alias
func (j Job) CompanyName() string {
	fields := strings.Fields(j.Employer.Alias)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

func (j Job) ExperienceLevel() ExperienceLevel {
	return ExperienceLevelFor(j.MinimumYearsOfExperience)
}

func (j Job) ExperienceLabel() string {
	return ExperienceLabel(j.MinimumYearsOfExperience)
}

// SalaryRange renders the salary bounds, e.g. "1,200 - 2,500"
func (j Job) SalaryRange() string {
	switch {
	case j.SalaryFrom > 0 && j.SalaryTo > 0:
		return fmt.Sprintf("%s - %s", humanize.Comma(j.SalaryFrom), humanize.Comma(j.SalaryTo))
	case j.SalaryFrom > 0:
		return "from " + humanize.Comma(j.SalaryFrom)
	case j.SalaryTo > 0:
		return "up to " + humanize.Comma(j.SalaryTo)
	default:
		return ""
	}
}

// PublishedAgo is the humanized publish time, empty when unknown
func (j Job) PublishedAgo() string {
	if j.PublishedAt.IsZero() {
		return ""
	}
	return humanize.Time(j.PublishedAt)
}

// PageMeta is the pagination metadata reported by the job source
type PageMeta struct {
	CurrentPage int
	PerPage     int
	Total       int
	LastPage    int
}

// JobPage is one server-paginated batch
type JobPage struct {
	Data []Job
	Meta PageMeta
}

// JobSummary is the response-friendly job view
type JobSummary struct {
	ID              JobID  `json:"id"`
	Title           string `json:"title"`
	Company         string `json:"company"`
	Location        string `json:"location,omitempty"`
	ExperienceLevel string `json:"experience_level"`
	Experience      string `json:"experience"`
	Salary          string `json:"salary,omitempty"`
	Published       string `json:"published,omitempty"`
	Description     string `json:"description,omitempty"`
}

func (j Job) Summary() JobSummary {
	loc, _ := j.CountryAndCity()
	return JobSummary{
		ID:              j.ID,
		Title:           j.Title,
		Company:         j.CompanyName(),
		Location:        loc,
		ExperienceLevel: string(j.ExperienceLevel()),
		Experience:      j.ExperienceLabel(),
		Salary:          j.SalaryRange(),
		Published:       j.PublishedAgo(),
		Description:     j.Description,
	}
}
