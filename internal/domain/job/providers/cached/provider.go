package cached

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/allegro/bigcache/v3"

	"github.com/honeycarbs/job-browser/internal/domain"
	jobdomain "github.com/honeycarbs/job-browser/internal/domain/job"
	"github.com/honeycarbs/job-browser/pkg/logging"
)

const allKey = "all"

// Provider decorates a job.Source with an in-memory response cache.
// Only successful responses are cached.
type Provider struct {
	next   jobdomain.Source
	cache  *bigcache.BigCache
	logger *logging.Logger
}

// NewProvider wraps next with a cache whose entries live for ttl
func NewProvider(next jobdomain.Source, ttl time.Duration, logger *logging.Logger) (*Provider, error) {
	if next == nil {
		return nil, fmt.Errorf("cached provider: source is required")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("cached provider: ttl must be positive")
	}
	if logger == nil {
		logger = logging.NewNop()
	}

	cfg := bigcache.DefaultConfig(ttl)
	cfg.Verbose = false
	cfg.Shards = 64
	cfg.CleanWindow = ttl

	cache, err := bigcache.NewBigCache(cfg)
	if err != nil {
		return nil, fmt.Errorf("cached provider: init cache: %w", err)
	}

	return &Provider{
		next:   next,
		cache:  cache,
		logger: logger.With("component", "job_cache", "source", next.Name()),
	}, nil
}

func (p *Provider) Name() string {
	return p.next.Name()
}

func (p *Provider) FetchPage(ctx context.Context, page, pageSize int) (domain.JobPage, error) {
	key := fmt.Sprintf("page:%d:%d", page, pageSize)

	var hit domain.JobPage
	if p.get(key, &hit) {
		return hit, nil
	}

	res, err := p.next.FetchPage(ctx, page, pageSize)
	if err != nil {
		return domain.JobPage{}, err
	}
	p.set(key, res)
	return res, nil
}

func (p *Provider) FetchAll(ctx context.Context) ([]domain.Job, error) {
	var hit []domain.Job
	if p.get(allKey, &hit) {
		return hit, nil
	}

	jobs, err := p.next.FetchAll(ctx)
	if err != nil {
		return nil, err
	}
	p.set(allKey, jobs)
	return jobs, nil
}

// Invalidate drops every cached response
func (p *Provider) Invalidate() error {
	return p.cache.Reset()
}

// Close releases the cache's background cleaner
func (p *Provider) Close() error {
	return p.cache.Close()
}

func (p *Provider) get(key string, out any) bool {
	raw, err := p.cache.Get(key)
	if err != nil {
		if !errors.Is(err, bigcache.ErrEntryNotFound) {
			p.logger.Warn("cache read failed", "key", key, "err", err)
		}
		return false
	}
	if err := json.Unmarshal(raw, out); err != nil {
		p.logger.Warn("dropping undecodable cache entry", "key", key, "err", err)
		_ = p.cache.Delete(key)
		return false
	}
	p.logger.Debug("cache hit", "key", key)
	return true
}

func (p *Provider) set(key string, v any) {
	raw, err := json.Marshal(v)
	if err != nil {
		p.logger.Warn("cache encode failed", "key", key, "err", err)
		return
	}
	if err := p.cache.Set(key, raw); err != nil {
		p.logger.Warn("cache write failed", "key", key, "err", err)
	}
}

var _ jobdomain.Source = (*Provider)(nil)
