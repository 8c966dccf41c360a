package tools

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/honeycarbs/job-browser/internal/domain"
	"github.com/honeycarbs/job-browser/pkg/logging"
)

// CVFileParams describes an uploaded CV
type CVFileParams struct {
	Name          string `json:"name" jsonschema:"File name"`
	ContentType   string `json:"content_type,omitempty" jsonschema:"MIME type, e.g. application/pdf"`
	Size          int64  `json:"size,omitempty" jsonschema:"Size in bytes; derived from content when omitted"`
	ContentBase64 string `json:"content_base64,omitempty" jsonschema:"Standard base64 file content"`
}

// SubmitApplicationParams defines the arguments for the submit_application tool
type SubmitApplicationParams struct {
	Name            string        `json:"name"`
	Email           string        `json:"email"`
	Phone           string        `json:"phone"`
	Country         string        `json:"country"`
	Education       string        `json:"education"`
	CurrentPosition string        `json:"current_position"`
	CurrentCompany  string        `json:"current_company"`
	CVFile          *CVFileParams `json:"cv_file,omitempty"`
	CoverLetter     string        `json:"cover_letter,omitempty"`
}

func (p SubmitApplicationParams) form() (domain.ApplicationForm, error) {
	f := domain.ApplicationForm{
		Name:            p.Name,
		Email:           p.Email,
		Phone:           p.Phone,
		Country:         p.Country,
		Education:       p.Education,
		CurrentPosition: p.CurrentPosition,
		CurrentCompany:  p.CurrentCompany,
		CoverLetter:     p.CoverLetter,
	}
	if p.CVFile != nil {
		content, err := base64.StdEncoding.DecodeString(p.CVFile.ContentBase64)
		if err != nil {
			return f, fmt.Errorf("cv_file.content_base64: %w", err)
		}
		f.CVFile = &domain.FileUpload{
			Name:        p.CVFile.Name,
			ContentType: p.CVFile.ContentType,
			Size:        p.CVFile.Size,
			Content:     content,
		}
	}
	return f, nil
}

// DeleteApplicationParams defines the arguments for the delete_application tool
type DeleteApplicationParams struct {
	ApplicationID string `json:"application_id" jsonschema:"Identifier returned by submit_application"`
}

// ApplicationsResult lists the saved applications
type ApplicationsResult struct {
	Applications []domain.SavedApplication `json:"applications"`
	Count        int                       `json:"count"`
}

type applicationsTool struct {
	store  Store
	logger *logging.Logger
}

// WithApplicationTools registers submit_application and the saved application tools
func WithApplicationTools(s Store) Option {
	return func(reg *registry) {
		handler := applicationsTool{store: s, logger: reg.logger.With("tool_group", "applications")}

		sdkmcp.AddTool(reg.server, &sdkmcp.Tool{
			Name:        "submit_application",
			Description: "Submit the application for the job being applied to and save it locally",
		}, handler.submit)
		reg.add("submit_application")

		sdkmcp.AddTool(reg.server, &sdkmcp.Tool{
			Name:        "list_applications",
			Description: "List locally saved job applications",
		}, handler.list)
		reg.add("list_applications")

		sdkmcp.AddTool(reg.server, &sdkmcp.Tool{
			Name:        "delete_application",
			Description: "Delete a saved job application by id",
		}, handler.delete)
		reg.add("delete_application")

		sdkmcp.AddTool(reg.server, &sdkmcp.Tool{
			Name:        "clear_applications",
			Description: "Delete every saved job application",
		}, handler.clear)
		reg.add("clear_applications")
	}
}

func (t applicationsTool) submit(ctx context.Context, req *sdkmcp.CallToolRequest, params *SubmitApplicationParams) (*sdkmcp.CallToolResult, any, error) {
	if params == nil {
		params = &SubmitApplicationParams{}
	}

	form, err := params.form()
	if err != nil {
		return nil, nil, err
	}
	app, err := t.store.SubmitJobApplication(ctx, form)

	var verrs domain.ValidationErrors
	switch {
	case errors.As(err, &verrs):
		t.logger.Debug("submit_application: invalid form", "fields", len(verrs))
		return errorResult("[submit_application] "+verrs.Error()), workflowView(t.store.Snapshot()), nil
	case err != nil:
		t.logger.Error("submit_application failed", "err", err)
		return nil, nil, err
	}

	msg := fmt.Sprintf("[submit_application] applied to %s at %s (id %s)", app.JobTitle, app.Company, app.ApplicationID)
	return textResult(msg), app, nil
}

func (t applicationsTool) list(ctx context.Context, req *sdkmcp.CallToolRequest, params *EmptyParams) (*sdkmcp.CallToolResult, any, error) {
	apps := t.store.ListSavedApplications(ctx)
	res := ApplicationsResult{Applications: apps, Count: len(apps)}
	return textResult(fmt.Sprintf("[list_applications] %d saved application(s)", res.Count)), res, nil
}

func (t applicationsTool) delete(ctx context.Context, req *sdkmcp.CallToolRequest, params *DeleteApplicationParams) (*sdkmcp.CallToolResult, any, error) {
	if params == nil || params.ApplicationID == "" {
		return nil, nil, fmt.Errorf("application_id is required")
	}

	removed, err := t.store.DeleteSavedApplication(ctx, params.ApplicationID)
	if err != nil {
		return nil, nil, err
	}
	if !removed {
		return errorResult(fmt.Sprintf("[delete_application] no application with id %q", params.ApplicationID)), nil, nil
	}

	t.logger.Info("application deleted", "application_id", params.ApplicationID)
	return textResult(fmt.Sprintf("[delete_application] deleted %s", params.ApplicationID)), nil, nil
}

func (t applicationsTool) clear(ctx context.Context, req *sdkmcp.CallToolRequest, params *EmptyParams) (*sdkmcp.CallToolResult, any, error) {
	if err := t.store.ClearSavedApplications(ctx); err != nil {
		return nil, nil, err
	}
	t.logger.Info("applications cleared")
	return textResult("[clear_applications] all saved applications deleted"), nil, nil
}
