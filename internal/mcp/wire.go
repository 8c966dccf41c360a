//go:build wireinject
// +build wireinject

package mcp

import (
	"context"

	"github.com/google/wire"

	"github.com/honeycarbs/job-browser/internal/applications"
	"github.com/honeycarbs/job-browser/internal/config"
	"github.com/honeycarbs/job-browser/internal/domain/job"
	"github.com/honeycarbs/job-browser/internal/store"
	"github.com/honeycarbs/job-browser/pkg/logging"
)

// InitializeResources creates Resources with all dependencies wired up
func InitializeResources(ctx context.Context, cfg config.Config, logger *logging.Logger) (*Resources, func(), error) {
	wire.Build(
		// Upstream job source, optionally cached
		provideJobSource,
		job.NewStaticDescriptions,
		wire.Bind(new(job.DescriptionResolver), new(*job.StaticDescriptions)),
		job.NewServiceWithDeps,

		// Saved applications
		provideKV,
		applications.NewRepository,
		wire.Bind(new(store.Applications), new(*applications.Repository)),

		// Core
		provideStore,

		// Export
		provideSheetsExporter,

		newResources,
	)

	return nil, nil, nil
}
