package jobsapi

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/honeycarbs/job-browser/internal/domain"
	jobdomain "github.com/honeycarbs/job-browser/internal/domain/job"
	"github.com/honeycarbs/job-browser/pkg/jobsapi"
)

// listingClient describes the subset of the jobs API client used by the provider.
type listingClient interface {
	FetchPage(ctx context.Context, page, perPage int) (jobsapi.Response, error)
	FetchAll(ctx context.Context, limit int) ([]jobsapi.Posting, error)
}

// Provider implements job.Source on top of the jobs listing API
type Provider struct {
	client listingClient
}

// NewProvider builds a jobs API provider
func NewProvider(client listingClient) (*Provider, error) {
	if client == nil {
		return nil, fmt.Errorf("jobsapi provider: client is required")
	}
	return &Provider{client: client}, nil
}

func (p *Provider) Name() string {
	return "jobsapi"
}

func (p *Provider) FetchPage(ctx context.Context, page, pageSize int) (domain.JobPage, error) {
	res, err := p.client.FetchPage(ctx, page, pageSize)
	if err != nil {
		return domain.JobPage{}, err
	}

	return domain.JobPage{
		Data: mapPostings(res.Data),
		Meta: domain.PageMeta{
			CurrentPage: res.Meta.CurrentPage,
			PerPage:     res.Meta.PerPage,
			Total:       res.Meta.Total,
			LastPage:    res.Meta.LastPage,
		},
	}, nil
}

func (p *Provider) FetchAll(ctx context.Context) ([]domain.Job, error) {
	postings, err := p.client.FetchAll(ctx, jobdomain.BulkFetchLimit)
	if err != nil {
		return nil, err
	}
	if len(postings) > jobdomain.BulkFetchLimit {
		postings = postings[:jobdomain.BulkFetchLimit]
	}
	return mapPostings(postings), nil
}

var _ jobdomain.Source = (*Provider)(nil)

func mapPostings(postings []jobsapi.Posting) []domain.Job {
	out := make([]domain.Job, 0, len(postings))
	for _, p := range postings {
		out = append(out, mapPosting(p))
	}
	return out
}

func mapPosting(p jobsapi.Posting) domain.Job {
	id := strings.TrimSpace(p.ID)
	if id == "" {
		id = uuid.NewString()
	}

	job := domain.Job{
		ID:                       id,
		Title:                    strings.TrimSpace(p.Title),
		MinimumYearsOfExperience: max(p.MinimumYearsOfExperience, 0),
		Location:                 mapLocation(p.Location),
		Type:                     p.Type,
		Tags:                     append([]string(nil), p.Tags...),
		Vacancies:                p.NumberOfVacancies,
		SalaryFrom:               firstPositive(p.SalaryFrom, p.BasicSalaryFrom),
		SalaryTo:                 firstPositive(p.SalaryTo, p.BasicSalaryTo),
		CreatedAt:                parseTime(p.CreatedAt),
		UpdatedAt:                parseTime(p.UpdatedAt),
		Source:                   "jobsapi",
	}

	if p.Description != nil {
		job.Description = *p.Description
	}
	if p.DatePublished != nil {
		job.PublishedAt = parseTime(*p.DatePublished)
	}
	if p.Page != nil {
		job.Employer = domain.Employer{
			ID:       p.Page.ID,
			Name:     p.Page.Name,
			Alias:    p.Page.Alias,
			Location: mapLocation(p.Page.Location),
		}
	}

	return job
}

func mapLocation(l *jobsapi.Location) *domain.Location {
	if l == nil {
		return nil
	}

	loc := &domain.Location{
		ID:             l.ID,
		AddressLine:    l.AddressLineOne,
		CountryAndCity: l.CountryAndCity,
	}
	if l.Country != nil {
		loc.Country = l.Country.Name
	}
	if l.City != nil {
		loc.City = l.City.Name
	}
	if loc.CountryAndCity == "" && loc.Country != "" {
		loc.CountryAndCity = loc.Country
		if loc.City != "" {
			loc.CountryAndCity += ", " + loc.City
		}
	}
	return loc
}

func firstPositive(vals ...int64) int64 {
	for _, v := range vals {
		if v > 0 {
			return v
		}
	}
	return 0
}

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func parseTime(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range timeLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts.UTC()
		}
	}
	return time.Time{}
}
