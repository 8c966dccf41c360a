package tools

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/honeycarbs/job-browser/internal/domain"
	"github.com/honeycarbs/job-browser/internal/export"
	"github.com/honeycarbs/job-browser/internal/store"
	"github.com/honeycarbs/job-browser/pkg/logging"
)

// Store is the job browsing surface driven by the tools
type Store interface {
	Snapshot() store.State
	LoadPage(ctx context.Context, page, size int) error
	UpdateFilters(ctx context.Context, u domain.FilterUpdate) error
	SetPage(ctx context.Context, page int) error
	OnPageInputChanged(raw string)
	OpenJobModal(j domain.Job) error
	CloseJobModal()
	StartApplication() error
	CancelApplication() error
	SubmitJobApplication(ctx context.Context, form domain.ApplicationForm) (domain.SavedApplication, error)
	ListSavedApplications(ctx context.Context) []domain.SavedApplication
	DeleteSavedApplication(ctx context.Context, id string) (bool, error)
	ClearSavedApplications(ctx context.Context) error
}

// Exporter publishes saved applications to an external sheet
type Exporter interface {
	Export(ctx context.Context, apps []domain.SavedApplication, req export.Request) (export.Result, error)
}

// Option configures which tools are registered
type Option func(*registry)

type registry struct {
	server *sdkmcp.Server
	logger *logging.Logger
	names  []string
}

func (r *registry) add(name string) {
	r.names = append(r.names, name)
}

// Register applies the provided tool options and returns the registered tool names
func Register(server *sdkmcp.Server, logger *logging.Logger, opts ...Option) []string {
	if logger == nil {
		logger = logging.NewNop()
	}
	reg := &registry{server: server, logger: logger}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(reg)
	}
	return reg.names
}
