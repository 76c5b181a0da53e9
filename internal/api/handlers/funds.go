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

// FundHandler handles HTTP requests for mutual fund holdings.
type FundHandler struct {
	fundService *service.FundService
	flash       *session.Flash
}

// NewFundHandler creates a new FundHandler with the provided dependencies.
func NewFundHandler(fundService *service.FundService, flash *session.Flash) *FundHandler {
	return &FundHandler{
		fundService: fundService,
		flash:       flash,
	}
}

// Funds handles GET requests to list the user's fund holdings.
//
// Endpoint: GET /api/mutual-funds?token=
// Response: 200 OK with array of FundHolding
func (h *FundHandler) Funds(w http.ResponseWriter, r *http.Request) {
	token := tokenFrom(r)

	holdings, err := h.fundService.ListFunds(r.Context(), token)
	if err != nil {
		if isAuthError(err) {
			redirectToLogin(w, r, h.flash, "Authentication required")
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to retrieve mutual funds", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, holdings)
}

// AddFund handles POST requests to add a mutual fund holding.
//
// Endpoint: POST /api/mutual-funds?token=
// Response: 201 Created with the stored holding
// Error: 303 redirect on auth failure; 400 invalid input; 404 unknown
// scheme code
func (h *FundHandler) AddFund(w http.ResponseWriter, r *http.Request) {
	token := tokenFrom(r)

	var req request.AddFundRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	holding, err := h.fundService.AddFund(r.Context(), token, service.AddFundInput{
		SchemeCode:  req.SchemeCode,
		Units:       req.Units,
		PurchaseNAV: req.PurchaseNAV,
	})
	if err != nil {
		switch {
		case isAuthError(err):
			redirectToLogin(w, r, h.flash, "Authentication required")
		case errors.Is(err, apperrors.ErrMissingSchemeCode), errors.Is(err, apperrors.ErrInvalidQuantity):
			response.RespondError(w, http.StatusBadRequest, err.Error(), nil)
		case errors.Is(err, apperrors.ErrSchemeNotFound):
			response.RespondError(w, http.StatusNotFound,
				"mutual fund scheme code "+req.SchemeCode+" not found", nil)
		default:
			response.RespondError(w, http.StatusInternalServerError, "failed to add mutual fund", err.Error())
		}
		return
	}

	response.RespondJSON(w, http.StatusCreated, holding)
}

// DeleteFund handles DELETE requests to remove a fund holding.
//
// Endpoint: DELETE /api/mutual-funds/{schemeCode}?token=
// Response: 204 No Content
func (h *FundHandler) DeleteFund(w http.ResponseWriter, r *http.Request) {
	token := tokenFrom(r)
	schemeCode := chi.URLParam(r, "schemeCode")

	if err := h.fundService.DeleteFund(r.Context(), token, schemeCode); err != nil {
		if isAuthError(err) {
			redirectToLogin(w, r, h.flash, "Authentication required")
			return
		}
		if errors.Is(err, apperrors.ErrMissingSchemeCode) {
			response.RespondError(w, http.StatusBadRequest, err.Error(), nil)
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to delete mutual fund", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}
