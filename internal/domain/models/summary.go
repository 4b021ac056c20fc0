package models

import "github.com/google/uuid"

// SymbolSummary aggregates the contracts of one stock symbol within a run.
//
// Fields:
//   - Trades: number of contracts.
//   - TotalQuantity / TotalAmount: sums over contracts with numeric values.
//   - MinRate / MaxRate: rate range observed.
//   - VWAP: TotalAmount / TotalQuantity, zero when quantity is zero.
//
// swagger:model SymbolSummary
type SymbolSummary struct {
	Symbol        string    `json:"symbol" example:"NABIL"`
	RunID         uuid.UUID `json:"run_id"`
	Trades        int64     `json:"trades" example:"1520"`
	TotalQuantity float64   `json:"total_quantity" example:"48210"`
	TotalAmount   float64   `json:"total_amount" example:"24105000"`
	MinRate       float64   `json:"min_rate" example:"495.5"`
	MaxRate       float64   `json:"max_rate" example:"503"`
	VWAP          float64   `json:"vwap" example:"500.01"`
}
