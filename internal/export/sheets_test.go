package export

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/honeycarbs/job-browser/internal/domain"
)

type call struct {
	op, spreadsheetID, rng string
	rows                   [][]any
}

type recordingWriter struct {
	calls []call
	err   error
}

func (w *recordingWriter) Append(_ context.Context, id, rng string, rows [][]any) (int, error) {
	w.calls = append(w.calls, call{"append", id, rng, rows})
	return len(rows), w.err
}

func (w *recordingWriter) Update(_ context.Context, id, rng string, rows [][]any) (int, error) {
	w.calls = append(w.calls, call{"update", id, rng, rows})
	return len(rows), w.err
}

func (w *recordingWriter) Clear(_ context.Context, id, rng string) error {
	w.calls = append(w.calls, call{"clear", id, rng, nil})
	return w.err
}

func saved() []domain.SavedApplication {
	return []domain.SavedApplication{{
		ApplicationID: "2Fz",
		JobTitle:      "Sushi Chef",
		Company:       "Nobu",
		AppliedDate:   time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC),
		Name:          "Jane",
		Email:         "jane@example.com",
		CVFile:        &domain.FileMeta{Name: "cv.pdf", Type: "application/pdf", Size: 2048},
	}}
}

func TestExportAppendsRows(t *testing.T) {
	w := &recordingWriter{}
	e := NewSheetsExporter(w, "sheet-1", nil)

	res, err := e.Export(context.Background(), saved(), Request{})
	require.NoError(t, err)

	assert.Equal(t, "sheet-1", res.SpreadsheetID)
	assert.Equal(t, DefaultTab, res.Tab)
	assert.Equal(t, "append", res.Mode)
	assert.Equal(t, 1, res.WrittenRows)

	require.Len(t, w.calls, 1)
	c := w.calls[0]
	assert.Equal(t, "append", c.op)
	assert.Equal(t, "'Applications'!A1", c.rng)
	require.Len(t, c.rows, 1)
	assert.Equal(t, "2Fz", c.rows[0][0])
	assert.Equal(t, "2024-05-01T09:30:00Z", c.rows[0][1])
	assert.Equal(t, "cv.pdf", c.rows[0][11])
	assert.Equal(t, "2.0 KiB", c.rows[0][12])
}

func TestExportReplaceWritesHeader(t *testing.T) {
	w := &recordingWriter{}
	e := NewSheetsExporter(w, "", nil)

	res, err := e.Export(context.Background(), saved(), Request{SpreadsheetID: "other", Tab: "Mine", Replace: true})
	require.NoError(t, err)
	assert.Equal(t, "replace", res.Mode)
	assert.Equal(t, 2, res.WrittenRows)

	require.Len(t, w.calls, 2)
	assert.Equal(t, call{"clear", "other", "'Mine'!A:Z", nil}, w.calls[0])
	assert.Equal(t, "update", w.calls[1].op)
	assert.Equal(t, header, w.calls[1].rows[0])
}

func TestExportNothingToAppend(t *testing.T) {
	w := &recordingWriter{}
	e := NewSheetsExporter(w, "sheet-1", nil)

	res, err := e.Export(context.Background(), nil, Request{})
	require.NoError(t, err)
	assert.Zero(t, res.WrittenRows)
	assert.Empty(t, w.calls)
}

func TestExportErrors(t *testing.T) {
	_, err := NewSheetsExporter(nil, "sheet-1", nil).Export(context.Background(), saved(), Request{})
	assert.ErrorIs(t, err, ErrNotConfigured)

	_, err = NewSheetsExporter(&recordingWriter{}, "", nil).Export(context.Background(), saved(), Request{})
	assert.ErrorContains(t, err, "spreadsheet id")

	boom := errors.New("quota")
	_, err = NewSheetsExporter(&recordingWriter{err: boom}, "s", nil).Export(context.Background(), saved(), Request{})
	assert.ErrorIs(t, err, boom)
}
