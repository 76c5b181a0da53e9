package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"investmenttracker/internal/api/request"
	"investmenttracker/internal/api/response"
	"investmenttracker/internal/apperrors"
	"investmenttracker/internal/service"
	"investmenttracker/internal/session"
)

// StockHandler handles HTTP requests for stock holdings. It serves as
// the HTTP layer adapter, parsing requests and delegating business logic
// to the stock service.
type StockHandler struct {
	stockService *service.StockService
	flash        *session.Flash
	refreshLimit int
}

// NewStockHandler creates a new StockHandler. refreshLimit caps how many
// holdings get a live price lookup per listing request.
func NewStockHandler(stockService *service.StockService, flash *session.Flash, refreshLimit int) *StockHandler {
	return &StockHandler{
		stockService: stockService,
		flash:        flash,
		refreshLimit: refreshLimit,
	}
}

// Stocks handles GET requests to list the user's stock holdings.
//
// Endpoint: GET /api/stocks?token=
// Response: 200 OK with array of StockHolding
// Error: 303 redirect to login on auth failure, 500 otherwise
func (h *StockHandler) Stocks(w http.ResponseWriter, r *http.Request) {
	token := tokenFrom(r)

	holdings, err := h.stockService.ListStocks(r.Context(), token, h.refreshLimit)
	if err != nil {
		if isAuthError(err) {
			redirectToLogin(w, r, h.flash, "Authentication required")
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to retrieve stocks", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, holdings)
}

// AddStock handles POST requests to add a stock holding.
//
// Endpoint: POST /api/stocks?token=
// Response: 201 Created with the stored holding
// Error: 303 redirect on auth failure; 400 invalid input; 422 when no
// price source could resolve the ticker
func (h *StockHandler) AddStock(w http.ResponseWriter, r *http.Request) {
	token := tokenFrom(r)

	var req request.AddStockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	holding, err := h.stockService.AddStock(r.Context(), token, service.AddStockInput{
		Ticker:        req.Ticker,
		Symbol:        req.Symbol,
		Quantity:      req.Quantity,
		PurchasePrice: req.PurchasePrice,
	})
	if err != nil {
		switch {
		case isAuthError(err):
			redirectToLogin(w, r, h.flash, "Authentication required")
		case errors.Is(err, apperrors.ErrMissingTicker), errors.Is(err, apperrors.ErrInvalidQuantity):
			response.RespondError(w, http.StatusBadRequest, err.Error(), nil)
		case errors.Is(err, apperrors.ErrTickerUnresolved):
			response.RespondError(w, http.StatusUnprocessableEntity,
				"could not find stock information for "+req.Ticker, nil)
		default:
			response.RespondError(w, http.StatusInternalServerError, "failed to add stock", err.Error())
		}
		return
	}

	response.RespondJSON(w, http.StatusCreated, holding)
}

// DeleteStock handles DELETE requests to remove a stock holding.
//
// Endpoint: DELETE /api/stocks/{ticker}?token=
// Response: 204 No Content
func (h *StockHandler) DeleteStock(w http.ResponseWriter, r *http.Request) {
	token := tokenFrom(r)
	ticker := chi.URLParam(r, "ticker")

	if err := h.stockService.DeleteStock(r.Context(), token, ticker); err != nil {
		if isAuthError(err) {
			redirectToLogin(w, r, h.flash, "Authentication required")
			return
		}
		if errors.Is(err, apperrors.ErrMissingTicker) {
			response.RespondError(w, http.StatusBadRequest, err.Error(), nil)
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to delete stock", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}
