package handlers

import (
	"encoding/json"
	"net/http"

	"investmenttracker/internal/api/request"
	"investmenttracker/internal/api/response"
	"investmenttracker/internal/service"
	"investmenttracker/internal/session"
)

// AuthHandler handles HTTP requests for the login entry point and
// session lifecycle.
type AuthHandler struct {
	authService *service.AuthService
	flash       *session.Flash
}

// NewAuthHandler creates a new AuthHandler with the provided dependencies.
func NewAuthHandler(authService *service.AuthService, flash *session.Flash) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		flash:       flash,
	}
}

// IndexResponse is the login entry payload, carrying any flash messages
// queued by a preceding redirect.
type IndexResponse struct {
	Message string   `json:"message"`
	Flash   []string `json:"flash,omitempty"`
}

// LoginResponse carries the authenticated identity back to the client.
// The token must accompany every subsequent request.
type LoginResponse struct {
	UserID string `json:"user_id"`
	Token  string `json:"token"`
}

// Index handles GET requests to the login entry point.
//
// Endpoint: GET /
// Response: 200 OK with pending flash messages, which are cleared
func (h *AuthHandler) Index(w http.ResponseWriter, r *http.Request) {
	messages := h.flash.Pop(w, r)
	response.RespondJSON(w, http.StatusOK, IndexResponse{
		Message: "login required",
		Flash:   messages,
	})
}

// Login handles POST requests to sign in with email and password.
//
// Endpoint: POST /api/auth/login
// Response: 200 OK with user id and bearer token
// Error: 303 redirect to the login entry with a flash message on rejection
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req request.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		// Fall back to form fields for browser-style submissions.
		req.Email = r.PostFormValue("email")
		req.Password = r.PostFormValue("password")
	}
	if req.Email == "" || req.Password == "" {
		response.RespondError(w, http.StatusBadRequest, "email and password are required", nil)
		return
	}

	user, err := h.authService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		redirectToLogin(w, r, h.flash, "Login failed. Please check your credentials.")
		return
	}

	response.RespondJSON(w, http.StatusOK, LoginResponse{
		UserID: user.UserID,
		Token:  user.Token,
	})
}

// Logout handles GET requests to end the session. Tokens are held by the
// client, so logout is a plain redirect to the login entry.
//
// Endpoint: GET /api/auth/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
