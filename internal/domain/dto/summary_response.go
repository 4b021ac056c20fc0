package dto

// SymbolSummaryResponse represents the JSON structure returned by the
// GET /api/v1/symbols/{symbol}/summary endpoint.
//
// Fields match the API contract and may differ from internal domain models.
// VWAP is the volume-weighted average rate of the symbol within the run.
type SymbolSummaryResponse struct {
	Symbol        string  `json:"symbol" example:"NABIL"`
	RunID         string  `json:"run_id" example:"0b9d7c1e-1f4e-4a55-9d0e-8c2f1f3b7a10"`
	Trades        int64   `json:"trades" example:"1520"`
	TotalQuantity float64 `json:"total_quantity" example:"48210"`
	TotalAmount   float64 `json:"total_amount" example:"24105000"`
	MinRate       float64 `json:"min_rate" example:"495.5"`
	MaxRate       float64 `json:"max_rate" example:"503"`
	VWAP          float64 `json:"vwap" example:"500.01"`
}
