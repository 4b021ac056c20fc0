package dto

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/guttosm/floorsheet/internal/domain/models"
)

func TestErrorResponse_Error(t *testing.T) {
	e := ErrorResponse{Message: "oops"}
	if e.Error() != "oops" {
		t.Fatalf("want 'oops' got %q", e.Error())
	}
	e2 := ErrorResponse{Message: "oops", ErrorDetails: "bad"}
	if e2.Error() != "oops: bad" {
		t.Fatalf("want 'oops: bad' got %q", e2.Error())
	}
}

func TestNewErrorResponse(t *testing.T) {
	// without inner error
	e := NewErrorResponse("msg", nil)
	if e.Message != "msg" || e.ErrorDetails != "" {
		t.Fatalf("unexpected %+v", e)
	}
	if e.Timestamp.IsZero() || time.Since(e.Timestamp) > time.Second {
		t.Fatalf("timestamp not set")
	}

	// with inner error
	err := errors.New("boom")
	e2 := NewErrorResponse("msg", err)
	if e2.ErrorDetails != "boom" || e2.Message != "msg" {
		t.Fatalf("unexpected %+v", e2)
	}
}

func TestNewRunResponse(t *testing.T) {
	id := uuid.MustParse("0b9d7c1e-1f4e-4a55-9d0e-8c2f1f3b7a10")
	r := models.Run{
		ID:          id,
		StartedAt:   time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC),
		TradingDate: time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC),
		Status:      models.RunStatusRunning,
	}
	got := NewRunResponse(r)
	if got.ID != id.String() || got.TradingDate != "2026-10-18" {
		t.Fatalf("unexpected %+v", got)
	}
	if got.FinishedAt != nil {
		t.Fatalf("running run must not report finished_at")
	}

	r.FinishedAt = r.StartedAt.Add(time.Minute)
	if NewRunResponse(r).FinishedAt == nil {
		t.Fatalf("finished_at missing")
	}
}
