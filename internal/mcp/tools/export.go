package tools

import (
	"context"
	"errors"
	"fmt"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/honeycarbs/job-browser/internal/export"
	"github.com/honeycarbs/job-browser/pkg/logging"
)

// ExportApplicationsParams defines the arguments for the export_applications tool
type ExportApplicationsParams struct {
	SpreadsheetID string `json:"spreadsheet_id,omitempty" jsonschema:"Google Sheets document ID; defaults to the configured one"`
	Tab           string `json:"tab,omitempty" jsonschema:"Tab name, default Applications"`
	Replace       bool   `json:"replace,omitempty" jsonschema:"Rewrite the tab with a header row instead of appending"`
}

type exportTool struct {
	store    Store
	exporter Exporter
	logger   *logging.Logger
}

// WithExportTool registers export_applications
func WithExportTool(s Store, exporter Exporter) Option {
	return func(reg *registry) {
		handler := exportTool{store: s, exporter: exporter, logger: reg.logger.With("tool_group", "export")}
		sdkmcp.AddTool(reg.server, &sdkmcp.Tool{
			Name:        "export_applications",
			Description: "Export saved job applications to Google Sheets",
		}, handler.handle)
		reg.add("export_applications")
	}
}

func (t exportTool) handle(ctx context.Context, req *sdkmcp.CallToolRequest, params *ExportApplicationsParams) (*sdkmcp.CallToolResult, any, error) {
	if params == nil {
		params = &ExportApplicationsParams{}
	}
	if t.exporter == nil {
		return textResult("[export_applications] unavailable: Google Sheets not configured"), nil, export.ErrNotConfigured
	}

	apps := t.store.ListSavedApplications(ctx)
	res, err := t.exporter.Export(ctx, apps, export.Request{
		SpreadsheetID: params.SpreadsheetID,
		Tab:           params.Tab,
		Replace:       params.Replace,
	})
	if errors.Is(err, export.ErrNotConfigured) {
		return textResult("[export_applications] unavailable: Google Sheets not configured"), res, err
	}
	if err != nil {
		t.logger.Error("export_applications failed", "err", err, "spreadsheet_id", res.SpreadsheetID)
		return nil, nil, fmt.Errorf("failed to export applications: %w", err)
	}

	return textResult(fmt.Sprintf("[export_applications] %s", res.Message)), res, nil
}
