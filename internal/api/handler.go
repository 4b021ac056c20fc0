package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/guttosm/floorsheet/internal/domain/dto"
	"github.com/guttosm/floorsheet/internal/middleware"
	"github.com/guttosm/floorsheet/internal/service"
)

// Handler provides HTTP handlers for the floor-sheet read endpoints.
//
// Responsibilities:
//   - Validate path and query parameters
//   - Call the service layer with the request context
//   - Translate results into response DTOs
type Handler struct {
	svc service.FloorSheetService
}

// NewHandler constructs a new Handler instance.
func NewHandler(svc service.FloorSheetService) *Handler {
	return &Handler{svc: svc}
}

// ListRuns godoc
// @Summary      List extraction runs
// @Description  Returns the most recent extraction runs, newest first
// @Tags         runs
// @Produce      json
// @Param        limit  query     int  false  "Maximum number of runs (1-100)" default(20)
// @Success      200    {array}   dto.RunResponse    "Success"
// @Failure      400    {object}  dto.ErrorResponse  "Bad Request"
// @Failure      500    {object}  dto.ErrorResponse  "Internal Error"
// @Router       /api/v1/runs [get]
func (h *Handler) ListRuns(c *gin.Context) {
	limit := service.DefaultRunsLimit
	if s := c.Query("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 {
			middleware.AbortWithError(c, http.StatusBadRequest, "invalid limit, expected a positive integer", err)
			return
		}
		limit = n
	}

	runs, err := h.svc.ListRuns(c.Request.Context(), limit)
	if err != nil {
		middleware.AbortWithError(c, http.StatusInternalServerError, "failed to list runs", err)
		return
	}

	resp := make([]dto.RunResponse, 0, len(runs))
	for _, r := range runs {
		resp = append(resp, dto.NewRunResponse(r))
	}
	c.JSON(http.StatusOK, resp)
}

// GetSymbolSummary handles GET /api/v1/symbols/{symbol}/summary.
//
// Query Parameters:
//   - run_id (uuid, optional): run to summarize; the latest completed run when absent.
//
// Responses:
//   - 200 OK: SymbolSummaryResponse.
//   - 400 Bad Request: empty symbol or malformed run_id.
//   - 404 Not Found: the symbol has no contracts in the run.
//   - 500 Internal Server Error: repository failure.
//
// GetSymbolSummary godoc
// @Summary      Get symbol summary
// @Description  Returns trade count, quantity, amount, rate range and VWAP of a symbol within a run
// @Tags         symbols
// @Produce      json
// @Param        symbol  path      string  true   "Stock symbol" example(NABIL)
// @Param        run_id  query     string  false  "Run id (uuid)"
// @Success      200     {object}  dto.SymbolSummaryResponse  "Success"
// @Failure      400     {object}  dto.ErrorResponse          "Bad Request"
// @Failure      404     {object}  dto.ErrorResponse          "Not Found"
// @Failure      500     {object}  dto.ErrorResponse          "Internal Error"
// @Router       /api/v1/symbols/{symbol}/summary [get]
func (h *Handler) GetSymbolSummary(c *gin.Context) {
	symbol := strings.TrimSpace(c.Param("symbol"))
	if symbol == "" {
		middleware.AbortWithError(c, http.StatusBadRequest, "symbol is required", nil)
		return
	}

	var runID *uuid.UUID
	if s := c.Query("run_id"); s != "" {
		parsed, err := uuid.Parse(s)
		if err != nil {
			middleware.AbortWithError(c, http.StatusBadRequest, "invalid run_id, expected a UUID", err)
			return
		}
		runID = &parsed
	}

	sum, err := h.svc.GetSymbolSummary(c.Request.Context(), symbol, runID)
	if err != nil {
		middleware.AbortWithError(c, http.StatusInternalServerError, "failed to fetch summary", err)
		return
	}
	if sum == nil {
		middleware.AbortWithError(c, http.StatusNotFound, "no data found", nil)
		return
	}

	c.JSON(http.StatusOK, dto.SymbolSummaryResponse{
		Symbol:        sum.Symbol,
		RunID:         sum.RunID.String(),
		Trades:        sum.Trades,
		TotalQuantity: sum.TotalQuantity,
		TotalAmount:   sum.TotalAmount,
		MinRate:       sum.MinRate,
		MaxRate:       sum.MaxRate,
		VWAP:          sum.VWAP,
	})
}
