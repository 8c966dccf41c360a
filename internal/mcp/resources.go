package mcp

import (
	"context"

	"github.com/honeycarbs/job-browser/internal/config"
	"github.com/honeycarbs/job-browser/pkg/logging"
)

// LoadResources wires every dependency for cfg. The returned cleanup releases
// caches and storage connections and must be called once the server stops.
func LoadResources(ctx context.Context, cfg config.Config, logger *logging.Logger) (*Resources, func(), error) {
	res, cleanup, err := InitializeResources(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to initialize resources",
			"err", err,
			"job_source", cfg.JobSource,
			"storage_backend", cfg.StorageBackend,
		)
		return nil, nil, err
	}

	logger.Info("resources initialized",
		"job_source", cfg.JobSource,
		"storage_backend", cfg.StorageBackend,
		"cache_ttl", cfg.CacheTTL,
	)
	return res, cleanup, nil
}
