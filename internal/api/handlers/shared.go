package handlers

import (
	"errors"
	"net/http"

	"investmenttracker/internal/apperrors"
	"investmenttracker/internal/session"
)

// tokenFrom extracts the bearer token from the request. The token rides
// in the query string (matching the original client contract), with the
// form body as a fallback for POSTs.
func tokenFrom(r *http.Request) string {
	if token := r.URL.Query().Get("token"); token != "" {
		return token
	}
	return r.PostFormValue("token")
}

// isAuthError reports whether err is an authentication failure, which
// surfaces as a redirect to the login entry rather than a JSON error.
func isAuthError(err error) bool {
	return errors.Is(err, apperrors.ErrMissingToken) || errors.Is(err, apperrors.ErrInvalidToken)
}

// redirectToLogin sends the caller back to the login entry point with a
// transient flash message.
func redirectToLogin(w http.ResponseWriter, r *http.Request, flash *session.Flash, message string) {
	flash.Add(w, r, message)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
