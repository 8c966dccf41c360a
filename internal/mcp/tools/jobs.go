package tools

import (
	"context"
	"errors"
	"fmt"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/honeycarbs/job-browser/internal/domain"
	"github.com/honeycarbs/job-browser/internal/store"
	"github.com/honeycarbs/job-browser/pkg/logging"
)

// ListJobsParams defines the arguments for the list_jobs tool
type ListJobsParams struct {
	Page     int `json:"page,omitempty" jsonschema:"Server page to load; defaults to the current page"`
	PageSize int `json:"page_size,omitempty" jsonschema:"Jobs per page; defaults to the current page size"`
}

// FilterJobsParams defines the arguments for the filter_jobs tool. Omitted
// fields keep their current value; an empty string clears a criterion.
type FilterJobsParams struct {
	Title           *string `json:"title,omitempty" jsonschema:"Case-insensitive title substring"`
	Location        *string `json:"location,omitempty" jsonschema:"Case-insensitive country/city substring"`
	ExperienceLevel *string `json:"experience_level,omitempty" jsonschema:"entry, mid, senior or executive"`
	Company         *string `json:"company,omitempty" jsonschema:"Case-insensitive company name substring"`
}

// SetPageParams defines the arguments for the set_page tool
type SetPageParams struct {
	Page int `json:"page" jsonschema:"Page number; out-of-range values are clamped"`
}

// PageInputParams defines the arguments for the page_input tool
type PageInputParams struct {
	Value string `json:"value" jsonschema:"Raw text typed into the page number box"`
}

type jobsTool struct {
	store  Store
	logger *logging.Logger
}

// WithJobTools registers list_jobs, filter_jobs, set_page and page_input
func WithJobTools(s Store) Option {
	return func(reg *registry) {
		handler := jobsTool{store: s, logger: reg.logger.With("tool_group", "jobs")}

		sdkmcp.AddTool(reg.server, &sdkmcp.Tool{
			Name:        "list_jobs",
			Description: "Load a page of job postings from the upstream source and show the current listing",
		}, handler.listJobs)
		reg.add("list_jobs")

		sdkmcp.AddTool(reg.server, &sdkmcp.Tool{
			Name:        "filter_jobs",
			Description: "Filter jobs by title, location, experience level and company; clear all fields to return to server paging",
		}, handler.filterJobs)
		reg.add("filter_jobs")

		sdkmcp.AddTool(reg.server, &sdkmcp.Tool{
			Name:        "set_page",
			Description: "Go to a page of the current listing",
		}, handler.setPage)
		reg.add("set_page")

		sdkmcp.AddTool(reg.server, &sdkmcp.Tool{
			Name:        "page_input",
			Description: "Feed free-text page number input; applied after a short quiet period",
		}, handler.pageInput)
		reg.add("page_input")
	}
}

func (t jobsTool) listJobs(ctx context.Context, req *sdkmcp.CallToolRequest, params *ListJobsParams) (*sdkmcp.CallToolResult, any, error) {
	if params == nil {
		params = &ListJobsParams{}
	}
	t.logger.Debug("list_jobs called", "page", params.Page, "page_size", params.PageSize)

	if !t.store.Snapshot().IsFiltering {
		if err := t.store.LoadPage(ctx, params.Page, params.PageSize); err != nil && !errors.Is(err, store.ErrSuperseded) {
			t.logger.Warn("list_jobs: load failed", "err", err)
			view := browserView(t.store.Snapshot())
			return errorResult(fmt.Sprintf("[list_jobs] failed to load jobs: %v", err)), view, nil
		}
	}

	view := browserView(t.store.Snapshot())
	return textResult(listingMessage("list_jobs", view)), view, nil
}

func (t jobsTool) filterJobs(ctx context.Context, req *sdkmcp.CallToolRequest, params *FilterJobsParams) (*sdkmcp.CallToolResult, any, error) {
	if params == nil {
		params = &FilterJobsParams{}
	}
	if lvl := params.ExperienceLevel; lvl != nil && *lvl != "" && !domain.ExperienceLevel(*lvl).Valid() {
		return nil, nil, fmt.Errorf("unknown experience level %q", *lvl)
	}

	update := domain.FilterUpdate{
		Title:           params.Title,
		Location:        params.Location,
		ExperienceLevel: params.ExperienceLevel,
		Company:         params.Company,
	}
	if err := t.store.UpdateFilters(ctx, update); err != nil && !errors.Is(err, store.ErrSuperseded) {
		t.logger.Warn("filter_jobs: update failed", "err", err)
		view := browserView(t.store.Snapshot())
		return errorResult(fmt.Sprintf("[filter_jobs] failed to load jobs: %v", err)), view, nil
	}

	view := browserView(t.store.Snapshot())
	t.logger.Info("filters updated", "filters", view.Filters, "matches", view.Counts.Filtered)
	return textResult(listingMessage("filter_jobs", view)), view, nil
}

func (t jobsTool) setPage(ctx context.Context, req *sdkmcp.CallToolRequest, params *SetPageParams) (*sdkmcp.CallToolResult, any, error) {
	if params == nil {
		return nil, nil, fmt.Errorf("missing parameters")
	}

	if err := t.store.SetPage(ctx, params.Page); err != nil && !errors.Is(err, store.ErrSuperseded) {
		t.logger.Warn("set_page failed", "page", params.Page, "err", err)
		view := browserView(t.store.Snapshot())
		return errorResult(fmt.Sprintf("[set_page] failed to load page %d: %v", params.Page, err)), view, nil
	}

	view := browserView(t.store.Snapshot())
	return textResult(listingMessage("set_page", view)), view, nil
}

func (t jobsTool) pageInput(ctx context.Context, req *sdkmcp.CallToolRequest, params *PageInputParams) (*sdkmcp.CallToolResult, any, error) {
	if params == nil {
		return nil, nil, fmt.Errorf("missing parameters")
	}
	t.store.OnPageInputChanged(params.Value)
	return textResult(fmt.Sprintf("[page_input] accepted %q", params.Value)), nil, nil
}

func listingMessage(tool string, v BrowserView) string {
	if v.Counts.Filtered == 0 {
		return fmt.Sprintf("[%s] no jobs to show", tool)
	}
	return fmt.Sprintf("[%s] showing %d-%d of %d job(s), page %d of %d",
		tool, v.Window.Start, v.Window.End, v.Pagination.TotalItems, v.Pagination.CurrentPage, v.Pagination.TotalPages)
}
