package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/guttosm/floorsheet/internal/domain/models"
	"github.com/guttosm/floorsheet/internal/storage"
)

// Limits applied to run listings.
const (
	DefaultRunsLimit = 20
	MaxRunsLimit     = 100
)

// FloorSheetService answers read queries over mirrored runs.
type FloorSheetService interface {
	ListRuns(ctx context.Context, limit int) ([]models.Run, error)
	GetSymbolSummary(ctx context.Context, symbol string, runID *uuid.UUID) (*models.SymbolSummary, error)
}

type floorSheetService struct {
	repo storage.FloorSheetRepository
}

func NewFloorSheetService(repo storage.FloorSheetRepository) FloorSheetService {
	return &floorSheetService{repo: repo}
}

// ListRuns clamps limit to [1, MaxRunsLimit]; zero or negative means DefaultRunsLimit.
func (s *floorSheetService) ListRuns(_ context.Context, limit int) ([]models.Run, error) {
	switch {
	case limit <= 0:
		limit = DefaultRunsLimit
	case limit > MaxRunsLimit:
		limit = MaxRunsLimit
	}
	return s.repo.ListRuns(limit)
}

// GetSymbolSummary normalizes symbol (trimmed, upper case) before querying.
func (s *floorSheetService) GetSymbolSummary(_ context.Context, symbol string, runID *uuid.UUID) (*models.SymbolSummary, error) {
	return s.repo.GetSymbolSummary(strings.ToUpper(strings.TrimSpace(symbol)), runID)
}
