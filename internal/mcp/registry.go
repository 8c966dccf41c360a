package mcp

import (
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/honeycarbs/job-browser/internal/export"
	"github.com/honeycarbs/job-browser/internal/mcp/tools"
	"github.com/honeycarbs/job-browser/internal/store"
	"github.com/honeycarbs/job-browser/pkg/logging"
)

type ToolRegistry struct {
	logger *logging.Logger
}

// Resources are the long-lived dependencies the tools operate on
type Resources struct {
	Store    *store.Store
	Exporter tools.Exporter
}

func newResources(s *store.Store, exporter *export.SheetsExporter) *Resources {
	return &Resources{Store: s, Exporter: exporter}
}

func NewToolRegistry(logger *logging.Logger) *ToolRegistry {
	return &ToolRegistry{logger: logger}
}

func (r *ToolRegistry) RegisterAll(server *sdkmcp.Server, res *Resources) []string {
	names := tools.Register(server, r.logger,
		tools.WithJobTools(res.Store),
		tools.WithWorkflowTools(res.Store),
		tools.WithApplicationTools(res.Store),
		tools.WithExportTool(res.Store, res.Exporter),
	)
	r.logger.Info("MCP tools registered", "tools", names)
	return names
}
