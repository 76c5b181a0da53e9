package apperrors

import "errors"

// Authentication errors. These surface as a redirect to the login entry
// point with a flash message, never as a hard failure.
var (
	// ErrMissingToken indicates that no bearer token accompanied the request.
	ErrMissingToken = errors.New("authentication required")

	// ErrInvalidToken indicates that the identity provider rejected the token.
	ErrInvalidToken = errors.New("invalid or expired token")

	// ErrLoginFailed indicates that the email/password sign-in was rejected.
	ErrLoginFailed = errors.New("login failed")
)

// Input validation errors surface as 4xx JSON payloads.
var (
	// ErrMissingTicker indicates that a quote request carried no ticker.
	ErrMissingTicker = errors.New("no ticker provided")

	// ErrMissingSchemeCode indicates that a fund request carried no scheme code.
	ErrMissingSchemeCode = errors.New("no scheme code provided")

	// ErrInvalidQuantity indicates a non-positive or unparseable quantity/units value.
	ErrInvalidQuantity = errors.New("invalid quantity")
)

// Business errors for holding mutations.
var (
	// ErrTickerUnresolved indicates that every price source failed for a
	// ticker, so the stock cannot be added with a live price.
	ErrTickerUnresolved = errors.New("could not find stock information")

	// ErrSchemeNotFound indicates that the NAV collaborator does not know
	// the requested mutual fund scheme code.
	ErrSchemeNotFound = errors.New("mutual fund scheme not found")
)

// Rate limiting.
var (
	// ErrRateLimited indicates that the soft per-process quote window was
	// violated. Surfaced as 429.
	ErrRateLimited = errors.New("rate limit exceeded, please try again in a few seconds")
)
