package adzuna

import (
	"context"
	"fmt"
	"math"

	"github.com/gosimple/slug"

	"github.com/honeycarbs/job-browser/internal/domain"
	jobdomain "github.com/honeycarbs/job-browser/internal/domain/job"
	"github.com/honeycarbs/job-browser/pkg/adzuna"
)

// searchClient describes the subset of the Adzuna client used by the provider.
type searchClient interface {
	SearchPage(ctx context.Context, page, perPage int) (adzuna.SearchPage, error)
	MaxPageSize() int
}

// Provider implements job.Source using Adzuna API
type Provider struct {
	client searchClient
}

// NewProvider builds an Adzuna provider
func NewProvider(client searchClient) (*Provider, error) {
	if client == nil {
		return nil, fmt.Errorf("adzuna provider: client is required")
	}
	return &Provider{client: client}, nil
}

// Name returns provider identifier
func (p *Provider) Name() string {
	return "adzuna"
}

func (p *Provider) FetchPage(ctx context.Context, page, pageSize int) (domain.JobPage, error) {
	res, err := p.client.SearchPage(ctx, page, pageSize)
	if err != nil {
		return domain.JobPage{}, err
	}

	return domain.JobPage{
		Data: mapJobs(res.Jobs),
		Meta: domain.PageMeta{
			CurrentPage: res.Page,
			PerPage:     res.PerPage,
			Total:       res.Count,
			LastPage:    res.Pages(),
		},
	}, nil
}

// FetchAll walks pages of the maximum size until BulkFetchLimit jobs are collected
// or Adzuna runs out of results
func (p *Provider) FetchAll(ctx context.Context) ([]domain.Job, error) {
	perPage := p.client.MaxPageSize()
	out := make([]domain.Job, 0, perPage)

	for page := 1; len(out) < jobdomain.BulkFetchLimit; page++ {
		res, err := p.client.SearchPage(ctx, page, perPage)
		if err != nil {
			return nil, fmt.Errorf("adzuna provider: page %d: %w", page, err)
		}

		out = append(out, mapJobs(res.Jobs)...)
		if len(res.Jobs) == 0 || page >= res.Pages() {
			break
		}
	}

	if len(out) > jobdomain.BulkFetchLimit {
		out = out[:jobdomain.BulkFetchLimit]
	}
	return out, nil
}

var _ jobdomain.Source = (*Provider)(nil)

func mapJobs(jobs []adzuna.Job) []domain.Job {
	out := make([]domain.Job, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, mapJob(j))
	}
	return out
}

func mapJob(j adzuna.Job) domain.Job {
	job := domain.Job{
		ID:          j.ID,
		Title:       j.Title,
		Description: j.Description,
		Type:        j.Contract,
		SalaryFrom:  int64(math.Round(j.SalaryMin)),
		SalaryTo:    int64(math.Round(j.SalaryMax)),
		PublishedAt: j.PostedAt,
		CreatedAt:   j.PostedAt,
		Source:      "adzuna",
		Employer: domain.Employer{
			ID:    slug.Make(j.CompanyName),
			Name:  j.CompanyName,
			Alias: j.CompanyName,
			Slug:  slug.Make(j.CompanyName),
		},
	}

	if j.Category != "" {
		job.Tags = []string{j.Category}
	}

	if j.Location != "" {
		loc := &domain.Location{CountryAndCity: j.Location}
		if len(j.Area) > 0 {
			loc.Country = j.Area[0]
		}
		if len(j.Area) > 1 {
			loc.City = j.Area[len(j.Area)-1]
		}
		job.Location = loc
	}

	return job
}
