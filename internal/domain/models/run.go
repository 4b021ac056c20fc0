package models

import (
	"time"

	"github.com/google/uuid"
)

// Run statuses stored in the run log.
const (
	RunStatusRunning   = "running"
	RunStatusCompleted = "completed"
	RunStatusFailed    = "failed"
)

// Run summarizes one extraction session.
//
// Fields:
//   - ID: identifier attached to every log line and mirrored row of the run.
//   - TradingDate: the market session the floor sheet belongs to.
//   - OutputFile: path of the CSV file (empty when the run failed before opening it).
//   - TotalPages: page count detected once at the start of pagination.
//   - PagesProcessed: pages whose records reached the sinks.
//   - DroppedRows: rendered rows rejected by row validation.
//   - UsedFallback: true when TotalPages came from the configured fallback.
//   - State: last controller state reached before the session closed.
type Run struct {
	ID             uuid.UUID `json:"id"`
	StartedAt      time.Time `json:"started_at"`
	FinishedAt     time.Time `json:"finished_at"`
	TradingDate    time.Time `json:"trading_date"`
	OutputFile     string    `json:"output_file"`
	TotalPages     int       `json:"total_pages"`
	PagesProcessed int       `json:"pages_processed"`
	Records        int       `json:"records"`
	DroppedRows    int       `json:"dropped_rows"`
	UsedFallback   bool      `json:"used_fallback"`
	State          string    `json:"state"`
	Status         string    `json:"status"`
	Error          string    `json:"error,omitempty"`
}
