package tools

import (
	"context"
	"fmt"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/honeycarbs/job-browser/pkg/logging"
)

// OpenJobParams defines the arguments for the open_job tool
type OpenJobParams struct {
	JobID string `json:"job_id" jsonschema:"Identifier of a job in the current listing"`
}

// EmptyParams is used by tools without arguments
type EmptyParams struct{}

type workflowTool struct {
	store  Store
	logger *logging.Logger
}

// WithWorkflowTools registers open_job, close_job, start_application and cancel_application
func WithWorkflowTools(s Store) Option {
	return func(reg *registry) {
		handler := workflowTool{store: s, logger: reg.logger.With("tool_group", "workflow")}

		sdkmcp.AddTool(reg.server, &sdkmcp.Tool{
			Name:        "open_job",
			Description: "Show the details of a job from the current listing",
		}, handler.openJob)
		reg.add("open_job")

		sdkmcp.AddTool(reg.server, &sdkmcp.Tool{
			Name:        "close_job",
			Description: "Close the job details, discarding any application draft",
		}, handler.closeJob)
		reg.add("close_job")

		sdkmcp.AddTool(reg.server, &sdkmcp.Tool{
			Name:        "start_application",
			Description: "Start applying to the job being viewed",
		}, handler.startApplication)
		reg.add("start_application")

		sdkmcp.AddTool(reg.server, &sdkmcp.Tool{
			Name:        "cancel_application",
			Description: "Abandon the application draft and return to the job details",
		}, handler.cancelApplication)
		reg.add("cancel_application")
	}
}

func (t workflowTool) openJob(ctx context.Context, req *sdkmcp.CallToolRequest, params *OpenJobParams) (*sdkmcp.CallToolResult, any, error) {
	if params == nil || params.JobID == "" {
		return nil, nil, fmt.Errorf("job_id is required")
	}

	j, ok := findJob(t.store.Snapshot(), params.JobID)
	if !ok {
		return nil, nil, fmt.Errorf("job %q is not in the current listing", params.JobID)
	}
	if err := t.store.OpenJobModal(j); err != nil {
		return nil, nil, err
	}

	t.logger.Debug("job opened", "job_id", j.ID)
	view := workflowView(t.store.Snapshot())
	return textResult(fmt.Sprintf("[open_job] %s at %s", j.Title, j.CompanyName())), view, nil
}

func (t workflowTool) closeJob(ctx context.Context, req *sdkmcp.CallToolRequest, params *EmptyParams) (*sdkmcp.CallToolResult, any, error) {
	t.store.CloseJobModal()
	return textResult("[close_job] closed"), workflowView(t.store.Snapshot()), nil
}

func (t workflowTool) startApplication(ctx context.Context, req *sdkmcp.CallToolRequest, params *EmptyParams) (*sdkmcp.CallToolResult, any, error) {
	if err := t.store.StartApplication(); err != nil {
		return nil, nil, err
	}
	return textResult("[start_application] application started"), workflowView(t.store.Snapshot()), nil
}

func (t workflowTool) cancelApplication(ctx context.Context, req *sdkmcp.CallToolRequest, params *EmptyParams) (*sdkmcp.CallToolResult, any, error) {
	if err := t.store.CancelApplication(); err != nil {
		return nil, nil, err
	}
	return textResult("[cancel_application] application cancelled"), workflowView(t.store.Snapshot()), nil
}
