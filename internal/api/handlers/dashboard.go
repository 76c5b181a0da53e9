package handlers

import (
	"net/http"

	"investmenttracker/internal/api/response"
	"investmenttracker/internal/model"
	"investmenttracker/internal/service"
	"investmenttracker/internal/session"
)

// DashboardHandler aggregates stock and fund holdings into a single
// overview. Its refresh cap is tighter than the stocks listing so the
// landing page stays fast; the remainder serves stored prices.
type DashboardHandler struct {
	stockService *service.StockService
	fundService  *service.FundService
	flash        *session.Flash
	refreshLimit int
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(stockService *service.StockService, fundService *service.FundService, flash *session.Flash, refreshLimit int) *DashboardHandler {
	return &DashboardHandler{
		stockService: stockService,
		fundService:  fundService,
		flash:        flash,
		refreshLimit: refreshLimit,
	}
}

// DashboardResponse is the combined holdings overview.
type DashboardResponse struct {
	Stocks      []model.StockHolding `json:"stocks"`
	MutualFunds []model.FundHolding  `json:"mutual_funds"`
}

// Dashboard handles GET requests for the holdings overview.
//
// Endpoint: GET /api/dashboard?token=
// Response: 200 OK with DashboardResponse
// Error: 303 redirect to login on auth failure
func (h *DashboardHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	token := tokenFrom(r)

	stocks, err := h.stockService.ListStocks(r.Context(), token, h.refreshLimit)
	if err != nil {
		if isAuthError(err) {
			redirectToLogin(w, r, h.flash, "Authentication required")
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to retrieve dashboard", err.Error())
		return
	}

	funds, err := h.fundService.ListFunds(r.Context(), token)
	if err != nil {
		// The token already verified against the stock listing; a fund
		// failure here is a store problem, not an auth problem.
		response.RespondError(w, http.StatusInternalServerError, "failed to retrieve dashboard", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, DashboardResponse{
		Stocks:      stocks,
		MutualFunds: funds,
	})
}
