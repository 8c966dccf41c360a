package export

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/honeycarbs/job-browser/internal/domain"
	"github.com/honeycarbs/job-browser/pkg/logging"
	"github.com/honeycarbs/job-browser/pkg/sheets"
)

const DefaultTab = "Applications"

// ErrNotConfigured is returned when no Sheets credentials were provided
var ErrNotConfigured = errors.New("export: google sheets not configured")

// Writer is the subset of the Sheets client used for export
type Writer interface {
	Append(ctx context.Context, spreadsheetID, rng string, rows [][]any) (int, error)
	Update(ctx context.Context, spreadsheetID, rng string, rows [][]any) (int, error)
	Clear(ctx context.Context, spreadsheetID, rng string) error
}

var header = []any{
	"Application ID", "Applied", "Job Title", "Company",
	"Name", "Email", "Phone", "Country", "Education",
	"Current Position", "Current Company", "CV", "CV Size",
}

// Request selects the destination. Replace rewrites the tab with a header row;
// otherwise rows are appended below existing data.
type Request struct {
	SpreadsheetID string
	Tab           string
	Replace       bool
}

type Result struct {
	SpreadsheetID string    `json:"spreadsheet_id"`
	Tab           string    `json:"tab"`
	WrittenRows   int       `json:"written_rows"`
	Mode          string    `json:"mode"`
	CompletedAt   time.Time `json:"completed_at"`
	Message       string    `json:"message,omitempty"`
}

// SheetsExporter writes saved applications to a spreadsheet
type SheetsExporter struct {
	writer             Writer
	defaultSpreadsheet string
	logger             *logging.Logger
	now                func() time.Time
}

// NewSheetsExporter accepts a nil writer; Export then fails with ErrNotConfigured
func NewSheetsExporter(writer Writer, defaultSpreadsheet string, logger *logging.Logger) *SheetsExporter {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &SheetsExporter{
		writer:             writer,
		defaultSpreadsheet: defaultSpreadsheet,
		logger:             logger.With("component", "sheets_export"),
		now:                time.Now,
	}
}

func (e *SheetsExporter) Export(ctx context.Context, apps []domain.SavedApplication, req Request) (Result, error) {
	if req.SpreadsheetID == "" {
		req.SpreadsheetID = e.defaultSpreadsheet
	}
	if req.Tab == "" {
		req.Tab = DefaultTab
	}

	result := Result{SpreadsheetID: req.SpreadsheetID, Tab: req.Tab, Mode: "append"}
	if req.Replace {
		result.Mode = "replace"
	}

	if e.writer == nil {
		return result, ErrNotConfigured
	}
	if req.SpreadsheetID == "" {
		return result, fmt.Errorf("export: spreadsheet id is required")
	}

	rows := make([][]any, 0, len(apps)+1)
	if req.Replace {
		rows = append(rows, header)
	}
	for _, a := range apps {
		rows = append(rows, row(a))
	}

	var (
		written int
		err     error
	)
	switch {
	case req.Replace:
		if err = e.writer.Clear(ctx, req.SpreadsheetID, sheets.A1(req.Tab, "A:Z")); err != nil {
			return result, fmt.Errorf("export: %w", err)
		}
		written, err = e.writer.Update(ctx, req.SpreadsheetID, sheets.A1(req.Tab, "A1"), rows)
	case len(rows) == 0:
		result.CompletedAt = e.now().UTC()
		result.Message = "no applications to export"
		return result, nil
	default:
		written, err = e.writer.Append(ctx, req.SpreadsheetID, sheets.A1(req.Tab, "A1"), rows)
	}
	if err != nil {
		return result, fmt.Errorf("export: %w", err)
	}

	result.WrittenRows = written
	result.CompletedAt = e.now().UTC()
	result.Message = fmt.Sprintf("exported %d application(s)", len(apps))

	e.logger.Info("applications exported",
		"spreadsheet_id", req.SpreadsheetID,
		"tab", req.Tab,
		"mode", result.Mode,
		"applications", len(apps),
	)
	return result, nil
}

func row(a domain.SavedApplication) []any {
	cvName, cvSize := "", ""
	if a.CVFile != nil {
		cvName = a.CVFile.Name
		cvSize = humanize.IBytes(uint64(max(a.CVFile.Size, 0)))
	}
	return []any{
		a.ApplicationID,
		a.AppliedDate.UTC().Format(time.RFC3339),
		a.JobTitle,
		a.Company,
		a.Name,
		a.Email,
		a.Phone,
		a.Country,
		a.Education,
		a.CurrentPosition,
		a.CurrentCompany,
		cvName,
		cvSize,
	}
}
