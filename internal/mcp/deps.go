package mcp

import (
	"context"
	"fmt"
	"net/http"

	"github.com/honeycarbs/job-browser/internal/config"
	"github.com/honeycarbs/job-browser/internal/domain/job"
	adzunaProvider "github.com/honeycarbs/job-browser/internal/domain/job/providers/adzuna"
	"github.com/honeycarbs/job-browser/internal/domain/job/providers/cached"
	jobsapiProvider "github.com/honeycarbs/job-browser/internal/domain/job/providers/jobsapi"
	"github.com/honeycarbs/job-browser/internal/export"
	"github.com/honeycarbs/job-browser/internal/storage"
	neo4jstore "github.com/honeycarbs/job-browser/internal/storage/neo4j"
	redisstore "github.com/honeycarbs/job-browser/internal/storage/redis"
	"github.com/honeycarbs/job-browser/internal/storage/sqlite"
	"github.com/honeycarbs/job-browser/internal/store"
	"github.com/honeycarbs/job-browser/pkg/adzuna"
	"github.com/honeycarbs/job-browser/pkg/jobsapi"
	"github.com/honeycarbs/job-browser/pkg/logging"
	n4j "github.com/honeycarbs/job-browser/pkg/neo4j"
	"github.com/honeycarbs/job-browser/pkg/sheets"
)

// provideJobSource builds the configured upstream, wrapped in the page cache
// unless the TTL is zero
func provideJobSource(cfg config.Config, logger *logging.Logger) (job.Source, func(), error) {
	httpClient := &http.Client{Timeout: cfg.JobsAPI.Timeout}

	var source job.Source
	switch cfg.JobSource {
	case config.SourceAdzuna:
		client, err := adzuna.NewClient(adzuna.Config{
			AppID:      cfg.Adzuna.AppID,
			AppKey:     cfg.Adzuna.AppKey,
			Country:    cfg.Adzuna.Country,
			HTTPClient: httpClient,
			PageSize:   cfg.JobsAPI.PageSize,
		})
		if err != nil {
			return nil, nil, err
		}
		p, err := adzunaProvider.NewProvider(client)
		if err != nil {
			return nil, nil, err
		}
		source = p
	case config.SourceJobsAPI:
		client, err := jobsapi.NewClient(jobsapi.Config{
			BaseURL:    cfg.JobsAPI.URL,
			HTTPClient: httpClient,
			PageSize:   cfg.JobsAPI.PageSize,
			MaxRetries: cfg.JobsAPI.MaxRetries,
			RetryBase:  cfg.JobsAPI.RetryBase,
		})
		if err != nil {
			return nil, nil, err
		}
		p, err := jobsapiProvider.NewProvider(client)
		if err != nil {
			return nil, nil, err
		}
		source = p
	default:
		return nil, nil, fmt.Errorf("unknown job source %q", cfg.JobSource)
	}

	logger.Info("job source initialized", "source", source.Name())

	if cfg.CacheTTL <= 0 {
		return source, func() {}, nil
	}

	cachedSource, err := cached.NewProvider(source, cfg.CacheTTL, logger)
	if err != nil {
		return nil, nil, err
	}
	logger.Info("job page cache enabled", "ttl", cfg.CacheTTL)

	cleanup := func() {
		if err := cachedSource.Close(); err != nil {
			logger.Warn("failed to close job cache", "err", err)
		}
	}
	return cachedSource, cleanup, nil
}

// provideKV opens the configured applications backend
func provideKV(ctx context.Context, cfg config.Config, logger *logging.Logger) (storage.KV, func(), error) {
	switch cfg.StorageBackend {
	case config.BackendSQLite:
		kv, err := sqlite.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("sqlite storage initialized", "path", cfg.SQLitePath)
		return kv, closer(logger, "sqlite", kv.Close), nil

	case config.BackendRedis:
		kv, err := redisstore.NewKV(ctx, redisstore.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return nil, nil, err
		}
		logger.Info("redis storage initialized", "addr", cfg.Redis.Addr, "db", cfg.Redis.DB)
		return kv, closer(logger, "redis", kv.Close), nil

	case config.BackendNeo4j:
		client, err := n4j.NewClient(n4j.Config{
			URI:      cfg.Neo4j.URI,
			Username: cfg.Neo4j.Username,
			Password: cfg.Neo4j.Password,
		})
		if err != nil {
			return nil, nil, err
		}
		kv := neo4jstore.NewKV(client)
		if err := kv.EnsureSchema(ctx); err != nil {
			_ = client.Close(context.Background())
			return nil, nil, err
		}
		logger.Info("neo4j storage initialized", "uri", cfg.Neo4j.URI)
		return kv, closer(logger, "neo4j", func() error { return client.Close(context.Background()) }), nil

	case config.BackendMemory, "":
		logger.Warn("using in-memory storage; saved applications will not survive a restart")
		return storage.NewMemory(), func() {}, nil

	default:
		return nil, nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
}

func closer(logger *logging.Logger, name string, closeFn func() error) func() {
	return func() {
		if err := closeFn(); err != nil {
			logger.Warn("failed to close storage", "backend", name, "err", err)
		}
	}
}

func provideStore(jobs job.Service, apps store.Applications, cfg config.Config, logger *logging.Logger) (*store.Store, func()) {
	s := store.New(jobs, apps,
		store.WithLogger(logger),
		store.WithPageInputDebounce(cfg.PageInputDebounce),
		store.WithRequestTimeout(cfg.JobsAPI.Timeout),
	)
	return s, s.Close
}

// provideSheetsExporter never fails; without credentials the export tool
// reports that Sheets is not configured
func provideSheetsExporter(ctx context.Context, cfg config.Config, logger *logging.Logger) *export.SheetsExporter {
	var writer export.Writer
	if cfg.Sheets.CredentialsPath != "" {
		client, err := sheets.NewClient(ctx, sheets.Config{CredentialsPath: cfg.Sheets.CredentialsPath})
		if err != nil {
			logger.Warn("failed to initialize Google Sheets client", "err", err)
		} else {
			writer = client
			logger.Info("Google Sheets client initialized")
		}
	}
	return export.NewSheetsExporter(writer, cfg.Sheets.SpreadsheetID, logger)
}
