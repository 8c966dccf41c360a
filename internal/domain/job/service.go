package job

import (
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/honeycarbs/job-browser/internal/domain"
)

// Service fetches jobs from a Source and normalizes them for display
type Service interface {
	Page(ctx context.Context, page, pageSize int) (domain.JobPage, error)
	All(ctx context.Context) ([]domain.Job, error)
}

// Option configures Service
type Option func(*config)

type config struct {
	source       Source
	descriptions DescriptionResolver
	policy       *bluemonday.Policy
}

// WithSource sets the upstream job source
func WithSource(source Source) Option {
	return func(c *config) {
		c.source = source
	}
}

// WithDescriptions sets the fallback description resolver
func WithDescriptions(d DescriptionResolver) Option {
	return func(c *config) {
		c.descriptions = d
	}
}

// WithSanitizer overrides the HTML policy applied to descriptions
func WithSanitizer(p *bluemonday.Policy) Option {
	return func(c *config) {
		c.policy = p
	}
}

// NewService builds Service from options
func NewService(opts ...Option) (Service, error) {
	cfg := &config{
		descriptions: NewStaticDescriptions(),
		policy:       bluemonday.StrictPolicy(),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.source == nil {
		return nil, fmt.Errorf("job.Service: source is required")
	}

	return &service{
		source:       cfg.source,
		descriptions: cfg.descriptions,
		policy:       cfg.policy,
	}, nil
}

// NewServiceWithDeps creates a Service with direct dependencies (Wire-compatible)
func NewServiceWithDeps(source Source, descriptions DescriptionResolver) (Service, error) {
	return NewService(WithSource(source), WithDescriptions(descriptions))
}

type service struct {
	source       Source
	descriptions DescriptionResolver
	policy       *bluemonday.Policy
}

func (s *service) Page(ctx context.Context, page, pageSize int) (domain.JobPage, error) {
	res, err := s.source.FetchPage(ctx, page, pageSize)
	if err != nil {
		return domain.JobPage{}, fmt.Errorf("%s: fetch page %d: %w", s.source.Name(), page, err)
	}
	res.Data = s.normalize(res.Data)
	return res, nil
}

func (s *service) All(ctx context.Context) ([]domain.Job, error) {
	jobs, err := s.source.FetchAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: fetch all: %w", s.source.Name(), err)
	}
	return s.normalize(jobs), nil
}

// normalize returns copies with sanitized descriptions, backfilling empty ones.
// Entities are decoded before sanitizing so encoded markup cannot survive it;
// the result is entity-escaped text.
func (s *service) normalize(jobs []domain.Job) []domain.Job {
	out := make([]domain.Job, 0, len(jobs))
	for _, j := range jobs {
		desc := strings.TrimSpace(s.policy.Sanitize(html.UnescapeString(j.Description)))
		if desc == "" {
			desc = s.descriptions.Resolve(j.Title)
		}
		j.Description = desc
		out = append(out, j)
	}
	return out
}
