package extraction

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/guttosm/floorsheet/internal/domain/models"
)

// fakeAdapter serves pre-parsed pages without a browser.
type fakeAdapter struct {
	label    string
	labelErr error
	pages    [][][]string
	rowsErr  error
	current  int
	advances int
	calls    []string
}

func (f *fakeAdapter) Open(context.Context, string) error {
	f.calls = append(f.calls, "open")
	return nil
}

func (f *fakeAdapter) ConfigureFilters(context.Context, string) error {
	f.calls = append(f.calls, "configure")
	return nil
}

func (f *fakeAdapter) SortByRate(context.Context) error {
	f.calls = append(f.calls, "sort")
	return nil
}

func (f *fakeAdapter) TotalPagesLabel(context.Context) (string, error) {
	f.calls = append(f.calls, "label")
	return f.label, f.labelErr
}

func (f *fakeAdapter) Rows(context.Context) ([][]string, error) {
	f.calls = append(f.calls, "rows")
	if f.rowsErr != nil {
		return nil, f.rowsErr
	}
	if f.current >= len(f.pages) {
		return nil, nil
	}
	return f.pages[f.current], nil
}

func (f *fakeAdapter) Advance(context.Context) error {
	f.calls = append(f.calls, "advance")
	f.advances++
	if f.current < len(f.pages)-1 {
		f.current++
	}
	return nil
}

// fakeRepo captures what the scraper mirrors.
type fakeRepo struct {
	runs      []models.Run
	pages     []int
	records   int
	runErr    error
	insertErr error
}

func (f *fakeRepo) InsertRecordsBatch(_ uuid.UUID, page int, records []models.Record) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.pages = append(f.pages, page)
	f.records += len(records)
	return nil
}

func (f *fakeRepo) UpsertRun(run models.Run) error {
	f.runs = append(f.runs, run)
	return f.runErr
}

func (f *fakeRepo) ListRuns(int) ([]models.Run, error) { return f.runs, nil }

func (f *fakeRepo) GetSymbolSummary(string, *uuid.UUID) (*models.SymbolSummary, error) {
	return nil, nil
}

// failingWriter rejects every write after the first n bytes.
type failingWriter struct {
	n       int
	written int
}

var errDiskFull = errors.New("disk full")

func (w *failingWriter) Write(p []byte) (int, error) {
	if w.written+len(p) > w.n {
		return 0, errDiskFull
	}
	w.written += len(p)
	return len(p), nil
}
