package handlers

import (
	"encoding/json"
	"net/http"

	"investmenttracker/internal/api/request"
	"investmenttracker/internal/api/response"
	"investmenttracker/internal/apperrors"
	"investmenttracker/internal/ratelimit"
	"investmenttracker/internal/resolver"
	"investmenttracker/internal/service"
)

// QuoteHandler exposes price resolution over HTTP, behind a soft
// rate-limit window. Authentication is deliberately not required here,
// matching the original surface.
type QuoteHandler struct {
	stockService *service.StockService
	window       *ratelimit.Window
}

// NewQuoteHandler creates a new QuoteHandler with the provided service
// and window guard.
func NewQuoteHandler(stockService *service.StockService, window *ratelimit.Window) *QuoteHandler {
	return &QuoteHandler{
		stockService: stockService,
		window:       window,
	}
}

// QuoteResponse wraps a successful resolution.
type QuoteResponse struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
}

// Quote handles POST requests to resolve a ticker to a price.
//
// Endpoint: POST /api/stocks/quote
// Response: 200 OK with PriceResult
// Error: 400 missing ticker; 429 inside the soft window; 404 when every
// price source failed for the ticker
func (h *QuoteHandler) Quote(w http.ResponseWriter, r *http.Request) {
	var req request.QuoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		req.Ticker = r.URL.Query().Get("ticker")
	}
	if req.Ticker == "" {
		response.RespondError(w, http.StatusBadRequest, apperrors.ErrMissingTicker.Error(), nil)
		return
	}

	// The window key only matters in per-ticker scope; in global scope
	// the guard collapses every key to one window.
	if !h.window.Allow(resolver.Normalize(req.Ticker)) {
		response.RespondError(w, http.StatusTooManyRequests, apperrors.ErrRateLimited.Error(), nil)
		return
	}

	result := h.stockService.Quote(r.Context(), req.Ticker)
	if !result.Resolved() {
		response.RespondError(w, http.StatusNotFound,
			"could not fetch data for "+req.Ticker+", please verify the ticker symbol", nil)
		return
	}

	response.RespondJSON(w, http.StatusOK, QuoteResponse{Success: true, Data: result})
}
