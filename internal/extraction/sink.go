package extraction

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"

	"github.com/guttosm/floorsheet/internal/domain/models"
	"github.com/guttosm/floorsheet/internal/storage"
)

const delimiter = ","

// Header is the first line of every output file.
var Header = []string{"SN", "ContractNo", "StockSymbol", "Buyer", "Seller", "Quantity", "Rate", "Amount"}

// Sink receives the records of each page, in page order.
type Sink interface {
	WriteRecords(ctx context.Context, page int, records []models.Record) error
	Close() error
}

// FormatRecord renders r as one LF-terminated output line. Fields are
// joined as-is; they carry no commas once parsed.
func FormatRecord(r models.Record) string {
	return strings.Join(r.Fields(), delimiter) + "\n"
}

// CSVSink appends records to a comma-delimited stream, one write per record.
type CSVSink struct {
	w      io.Writer
	closer io.Closer
	path   string
}

var _ Sink = (*CSVSink)(nil)

// NewCSVSink writes the header to w and returns a sink appending to it.
func NewCSVSink(w io.Writer) (*CSVSink, error) {
	if _, err := io.WriteString(w, strings.Join(Header, delimiter)+"\n"); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}
	s := &CSVSink{w: w}
	if c, ok := w.(io.Closer); ok {
		s.closer = c
	}
	return s, nil
}

// CreateCSV creates (or truncates) path and writes the header.
func CreateCSV(path string) (*CSVSink, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create output file: %w", err)
	}
	s, err := NewCSVSink(f)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	s.path = path
	return s, nil
}

// Path returns the file backing the sink, or "" for a plain writer.
func (s *CSVSink) Path() string { return s.path }

func (s *CSVSink) WriteRecords(_ context.Context, _ int, records []models.Record) error {
	for _, r := range records {
		if _, err := io.WriteString(s.w, FormatRecord(r)); err != nil {
			return fmt.Errorf("write record %s: %w", r.SN, err)
		}
	}
	return nil
}

func (s *CSVSink) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer.Close()
}

// RepositorySink mirrors each page into the floor_sheet table.
type RepositorySink struct {
	repo  storage.FloorSheetRepository
	runID uuid.UUID
}

var _ Sink = (*RepositorySink)(nil)

func NewRepositorySink(repo storage.FloorSheetRepository, runID uuid.UUID) *RepositorySink {
	return &RepositorySink{repo: repo, runID: runID}
}

func (s *RepositorySink) WriteRecords(_ context.Context, page int, records []models.Record) error {
	if err := s.repo.InsertRecordsBatch(s.runID, page, records); err != nil {
		return fmt.Errorf("mirror page %d: %w", page, err)
	}
	return nil
}

func (s *RepositorySink) Close() error { return nil }

// MultiSink writes to every sink in order and stops at the first error.
type MultiSink []Sink

func (m MultiSink) WriteRecords(ctx context.Context, page int, records []models.Record) error {
	for _, s := range m {
		if err := s.WriteRecords(ctx, page, records); err != nil {
			return err
		}
	}
	return nil
}

// Close closes every sink, even after a failure, and joins their errors.
func (m MultiSink) Close() error {
	var errs []error
	for _, s := range m {
		if err := s.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
