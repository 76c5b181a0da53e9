package service

import (
	"context"

	"investmenttracker/internal/firebase"
)

// AuthService handles sign-in and token verification by delegating to
// the identity collaborator.
type AuthService struct {
	auth firebase.Auth
}

// NewAuthService creates a new AuthService with the provided identity client.
func NewAuthService(auth firebase.Auth) *AuthService {
	return &AuthService{auth: auth}
}

// Login exchanges email/password for an authenticated user.
func (s *AuthService) Login(ctx context.Context, email, password string) (firebase.User, error) {
	return s.auth.SignIn(ctx, email, password)
}

// Verify resolves a bearer token to its user id.
func (s *AuthService) Verify(ctx context.Context, token string) (string, error) {
	return s.auth.Verify(ctx, token)
}
