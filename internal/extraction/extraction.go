// Package extraction drives the paginated floor-sheet extraction: it
// configures the remote view, walks a fixed number of pages and streams the
// validated rows of each page to the output sinks.
package extraction

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/guttosm/floorsheet/internal/domain/models"
	"github.com/guttosm/floorsheet/internal/storage"
)

// State is the controller's position in a run. Runs move strictly forward:
// Idle, Configuring, Sorting, Paginating, Closed. A failure in any state
// goes straight to Closed.
type State string

const (
	StateIdle        State = "idle"
	StateConfiguring State = "configuring"
	StateSorting     State = "sorting"
	StatePaginating  State = "paginating"
	StateClosed      State = "closed"
)

// Options configures a Scraper.
//
// Fields:
//   - URL: floor-sheet page opened before configuring the view.
//   - PageSize: rows-per-page value selected during configuration.
//   - FallbackTotalPages: page count used when the pagination label is unusable.
//   - OutputDir: directory the dated CSV file is created in.
type Options struct {
	URL                string
	PageSize           string
	FallbackTotalPages int
	OutputDir          string
}

// Scraper is the navigation controller for one browser session.
// It is not safe for concurrent use.
type Scraper struct {
	adapter Adapter
	opts    Options
	log     zerolog.Logger
	repo    storage.FloorSheetRepository
	clock   func() time.Time
	state   State
}

// NewScraper returns a Scraper driving adapter.
func NewScraper(adapter Adapter, opts Options, log zerolog.Logger) *Scraper {
	return &Scraper{
		adapter: adapter,
		opts:    opts,
		log:     log,
		clock:   time.Now,
		state:   StateIdle,
	}
}

// WithRepository mirrors records and the run log into repo.
func (s *Scraper) WithRepository(repo storage.FloorSheetRepository) *Scraper {
	s.repo = repo
	return s
}

// State returns the current controller state.
func (s *Scraper) State() State { return s.state }

// Run performs one full extraction session.
//
// Sequence:
//  1. Open the page, select the page size and apply the filter.
//  2. Sort by rate.
//  3. Read the total page count once (falling back to FallbackTotalPages).
//  4. Create the output file and write the header.
//  5. Exactly TotalPages times: extract the current page, write its
//     records, then advance.
//
// The first error aborts the run; records already written stay in the
// output file. The returned Run is filled in both cases. Closing the
// browser is left to the caller.
func (s *Scraper) Run(ctx context.Context) (models.Run, error) {
	run := models.Run{
		ID:        uuid.New(),
		StartedAt: s.clock(),
		Status:    models.RunStatusRunning,
	}
	run.TradingDate = TradingDate(run.StartedAt)
	s.state = StateIdle

	log := s.log.With().Str("run_id", run.ID.String()).Logger()
	if !IsTradingDay(run.StartedAt) {
		log.Warn().
			Str("trading_date", run.TradingDate.Format("2006-01-02")).
			Msg("market closed today; floor sheet shows the previous session")
	}
	log.Info().Str("url", s.opts.URL).Str("page_size", s.opts.PageSize).Msg("extraction start")
	s.recordRun(log, run)

	err := s.execute(ctx, log, &run)

	run.State = string(s.state)
	run.FinishedAt = s.clock()
	s.transition(log, StateClosed)

	if err != nil {
		run.Status = models.RunStatusFailed
		run.Error = err.Error()
		log.Error().Err(err).Str("state", run.State).Int("pages_processed", run.PagesProcessed).Msg("extraction failed")
	} else {
		run.Status = models.RunStatusCompleted
		log.Info().
			Int("pages", run.PagesProcessed).
			Int("records", run.Records).
			Int("dropped", run.DroppedRows).
			Str("file", run.OutputFile).
			Dur("elapsed", run.FinishedAt.Sub(run.StartedAt)).
			Msg("extraction done")
	}
	s.recordRun(log, run)

	return run, err
}

func (s *Scraper) execute(ctx context.Context, log zerolog.Logger, run *models.Run) (err error) {
	s.transition(log, StateConfiguring)
	if err := s.adapter.Open(ctx, s.opts.URL); err != nil {
		return err
	}
	if err := s.adapter.ConfigureFilters(ctx, s.opts.PageSize); err != nil {
		return err
	}

	s.transition(log, StateSorting)
	if err := s.adapter.SortByRate(ctx); err != nil {
		return err
	}

	total, fallback, err := DetectTotalPages(ctx, s.adapter, s.opts.FallbackTotalPages, log)
	if err != nil {
		return err
	}
	run.TotalPages = total
	run.UsedFallback = fallback

	sink, err := s.openSinks(run)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := sink.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close output: %w", cerr)
		}
	}()

	s.transition(log, StatePaginating)
	for i := 0; i < total; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		page := i + 1

		records, dropped, err := ExtractPage(ctx, s.adapter)
		if err != nil {
			return fmt.Errorf("page %d/%d: %w", page, total, err)
		}
		if err := sink.WriteRecords(ctx, page, records); err != nil {
			return fmt.Errorf("page %d/%d: %w", page, total, err)
		}
		run.PagesProcessed++
		run.Records += len(records)
		run.DroppedRows += dropped

		log.Info().Int("page", page).Int("total", total).Int("records", len(records)).Msg("page done")
		if dropped > 0 {
			log.Debug().Int("page", page).Int("dropped", dropped).Msg("rows rejected")
		}

		if err := s.adapter.Advance(ctx); err != nil {
			return fmt.Errorf("page %d/%d: %w", page, total, err)
		}
	}
	return nil
}

// openSinks creates the dated CSV file and, when a repository is set, the database mirror.
func (s *Scraper) openSinks(run *models.Run) (Sink, error) {
	path := filepath.Join(s.opts.OutputDir, OutputFileName(run.StartedAt))
	csv, err := CreateCSV(path)
	if err != nil {
		return nil, err
	}
	run.OutputFile = path

	if s.repo == nil {
		return csv, nil
	}
	return MultiSink{csv, NewRepositorySink(s.repo, run.ID)}, nil
}

// DetectTotalPages reads the pagination label once. When it is missing or
// unparsable the fallback is returned, a warning is logged and the second
// result is true. Browser failures are returned as-is.
func DetectTotalPages(ctx context.Context, a Adapter, fallback int, log zerolog.Logger) (int, bool, error) {
	label, err := a.TotalPagesLabel(ctx)
	if err != nil {
		return 0, false, err
	}
	if n, ok := ParseTotalPages(label); ok {
		log.Info().Int("total_pages", n).Msg("total pages detected")
		return n, false, nil
	}

	log.Warn().
		Str("label", label).
		Int("fallback_total_pages", fallback).
		Msg("total pages label missing or unparsable; using fallback")
	return fallback, true, nil
}

func (s *Scraper) transition(log zerolog.Logger, next State) {
	log.Debug().Str("from", string(s.state)).Str("to", string(next)).Msg("state")
	s.state = next
}

// recordRun upserts the run log entry. Failures are logged and ignored.
func (s *Scraper) recordRun(log zerolog.Logger, run models.Run) {
	if s.repo == nil {
		return
	}
	if err := s.repo.UpsertRun(run); err != nil {
		log.Warn().Err(err).Str("status", run.Status).Msg("record run failed")
	}
}
