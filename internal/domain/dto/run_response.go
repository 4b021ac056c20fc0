package dto

import (
	"time"

	"github.com/guttosm/floorsheet/internal/domain/models"
)

// RunResponse is one entry of GET /api/v1/runs.
type RunResponse struct {
	ID             string     `json:"id" example:"0b9d7c1e-1f4e-4a55-9d0e-8c2f1f3b7a10"`
	StartedAt      time.Time  `json:"started_at"`
	FinishedAt     *time.Time `json:"finished_at,omitempty"`
	TradingDate    string     `json:"trading_date" example:"2026-10-18"`
	OutputFile     string     `json:"output_file" example:"Mon-Oct-19-2026-floor-data.csv"`
	TotalPages     int        `json:"total_pages" example:"12"`
	PagesProcessed int        `json:"pages_processed" example:"12"`
	Records        int        `json:"records" example:"5873"`
	DroppedRows    int        `json:"dropped_rows" example:"0"`
	UsedFallback   bool       `json:"used_fallback" example:"false"`
	Status         string     `json:"status" example:"completed"`
	Error          string     `json:"error,omitempty"`
}

// NewRunResponse maps a run log entry to its API shape.
func NewRunResponse(r models.Run) RunResponse {
	resp := RunResponse{
		ID:             r.ID.String(),
		StartedAt:      r.StartedAt,
		OutputFile:     r.OutputFile,
		TotalPages:     r.TotalPages,
		PagesProcessed: r.PagesProcessed,
		Records:        r.Records,
		DroppedRows:    r.DroppedRows,
		UsedFallback:   r.UsedFallback,
		Status:         r.Status,
		Error:          r.Error,
	}
	if !r.FinishedAt.IsZero() {
		f := r.FinishedAt
		resp.FinishedAt = &f
	}
	if !r.TradingDate.IsZero() {
		resp.TradingDate = r.TradingDate.Format("2006-01-02")
	}
	return resp
}
