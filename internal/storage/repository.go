package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	pq "github.com/lib/pq"

	"github.com/guttosm/floorsheet/internal/domain/models"
)

// FloorSheetRepository defines contract for DB operations.
type FloorSheetRepository interface {
	InsertRecordsBatch(runID uuid.UUID, page int, records []models.Record) error
	UpsertRun(run models.Run) error
	ListRuns(limit int) ([]models.Run, error)
	GetSymbolSummary(symbol string, runID *uuid.UUID) (*models.SymbolSummary, error)
}

type floorSheetRepository struct {
	db *sql.DB
}

func NewFloorSheetRepository(db *sql.DB) FloorSheetRepository {
	return &floorSheetRepository{db: db}
}

// toNullNumeric maps a sanitized numeric-looking string to a float, or NULL when it does not parse.
func toNullNumeric(s string) interface{} {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return v
}

func toNullTime(t time.Time) interface{} {
	if t.IsZero() {
		return nil
	}
	return t
}

// InsertRecordsBatch copies one page of records into floor_sheet in a single transaction.
func (r *floorSheetRepository) InsertRecordsBatch(runID uuid.UUID, page int, records []models.Record) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := r.db.Begin()
	if err != nil {
		return err
	}

	// Small optimization for bulk load
	if _, err := tx.Exec(`SET LOCAL synchronous_commit = OFF`); err != nil {
		_ = tx.Rollback()
		return err
	}

	stmt, err := tx.Prepare(pq.CopyIn(
		"floor_sheet",
		"run_id",
		"page",
		"sn",
		"contract_no",
		"stock_symbol",
		"buyer",
		"seller",
		"quantity",
		"rate",
		"amount",
	))
	if err != nil {
		_ = tx.Rollback()
		return err
	}

	for _, rec := range records {
		if _, err := stmt.Exec(
			runID.String(),
			page,
			rec.SN,
			rec.ContractNo,
			rec.StockSymbol,
			rec.Buyer,
			rec.Seller,
			toNullNumeric(rec.Quantity),
			toNullNumeric(rec.Rate),
			toNullNumeric(rec.Amount),
		); err != nil {
			_ = stmt.Close()
			_ = tx.Rollback()
			return err
		}
	}

	if _, err := stmt.Exec(); err != nil {
		_ = stmt.Close()
		_ = tx.Rollback()
		return err
	}
	if err := stmt.Close(); err != nil {
		_ = tx.Rollback()
		return err
	}

	return tx.Commit()
}

// UpsertRun records (or updates) the run log entry for run.ID.
func (r *floorSheetRepository) UpsertRun(run models.Run) error {
	var tradingDate interface{}
	if !run.TradingDate.IsZero() {
		tradingDate = run.TradingDate.Format("2006-01-02")
	}

	_, err := r.db.Exec(`
		INSERT INTO scrape_runs (id, started_at, finished_at, trading_date, output_file, total_pages, pages_processed, records, dropped_rows, used_fallback, state, status, error)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (id)
		DO UPDATE SET finished_at = EXCLUDED.finished_at,
					  output_file = EXCLUDED.output_file,
					  total_pages = EXCLUDED.total_pages,
					  pages_processed = EXCLUDED.pages_processed,
					  records = EXCLUDED.records,
					  dropped_rows = EXCLUDED.dropped_rows,
					  used_fallback = EXCLUDED.used_fallback,
					  state = EXCLUDED.state,
					  status = EXCLUDED.status,
					  error = EXCLUDED.error
	`,
		run.ID.String(),
		run.StartedAt,
		toNullTime(run.FinishedAt),
		tradingDate,
		run.OutputFile,
		run.TotalPages,
		run.PagesProcessed,
		run.Records,
		run.DroppedRows,
		run.UsedFallback,
		run.State,
		run.Status,
		run.Error,
	)
	return err
}

// ListRuns returns the most recent runs, newest first.
func (r *floorSheetRepository) ListRuns(limit int) ([]models.Run, error) {
	rows, err := r.db.Query(`
		SELECT id, started_at, finished_at, trading_date, output_file, total_pages, pages_processed, records, dropped_rows, used_fallback, state, status, error
		FROM scrape_runs
		ORDER BY started_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	runs := make([]models.Run, 0, limit)
	for rows.Next() {
		var (
			run         models.Run
			finishedAt  sql.NullTime
			tradingDate sql.NullTime
		)
		if err := rows.Scan(
			&run.ID,
			&run.StartedAt,
			&finishedAt,
			&tradingDate,
			&run.OutputFile,
			&run.TotalPages,
			&run.PagesProcessed,
			&run.Records,
			&run.DroppedRows,
			&run.UsedFallback,
			&run.State,
			&run.Status,
			&run.Error,
		); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		if finishedAt.Valid {
			run.FinishedAt = finishedAt.Time
		}
		if tradingDate.Valid {
			run.TradingDate = tradingDate.Time
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// GetSymbolSummary aggregates a symbol's contracts within a run. When runID
// is nil the latest completed run is used. It returns nil, nil when there is
// no data.
func (r *floorSheetRepository) GetSymbolSummary(symbol string, runID *uuid.UUID) (*models.SymbolSummary, error) {
	conditions := "stock_symbol = $1"
	args := []interface{}{symbol}
	if runID != nil {
		conditions += " AND run_id = $2"
		args = append(args, runID.String())
	} else {
		conditions += " AND run_id = (SELECT id FROM scrape_runs WHERE status = 'completed' ORDER BY started_at DESC LIMIT 1)"
	}

	query := fmt.Sprintf(`
		SELECT
			run_id,
			COUNT(*) AS trades,
			COALESCE(SUM(quantity), 0) AS total_quantity,
			COALESCE(SUM(amount), 0) AS total_amount,
			COALESCE(MIN(rate), 0) AS min_rate,
			COALESCE(MAX(rate), 0) AS max_rate
		FROM floor_sheet
		WHERE %s
		GROUP BY run_id
	`, conditions)

	sum := models.SymbolSummary{Symbol: symbol}
	err := r.db.QueryRow(query, args...).Scan(
		&sum.RunID,
		&sum.Trades,
		&sum.TotalQuantity,
		&sum.TotalAmount,
		&sum.MinRate,
		&sum.MaxRate,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if sum.TotalQuantity > 0 {
		sum.VWAP = sum.TotalAmount / sum.TotalQuantity
	}
	return &sum, nil
}
