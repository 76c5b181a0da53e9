// Package firebase wraps the external identity and hierarchical-store
// collaborator over its REST surface. Holdings are read and written as
// opaque records scoped under users/{uid}; nothing is persisted locally.
package firebase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"investmenttracker/internal/apperrors"
)

const defaultAuthBaseURL = "https://identitytoolkit.googleapis.com"

// User is an authenticated identity: the store key plus the bearer token
// that authorizes subsequent reads and writes.
type User struct {
	UserID string
	Token  string
}

// Auth defines the interface for the identity collaborator.
type Auth interface {
	SignIn(ctx context.Context, email, password string) (User, error)
	Verify(ctx context.Context, token string) (string, error)
}

// AuthClient talks to the identity toolkit REST endpoints.
type AuthClient struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

// NewAuthClient creates an identity client. Pass an empty baseURL for the
// public endpoint; tests pass an httptest server URL.
func NewAuthClient(apiKey, baseURL string) *AuthClient {
	if baseURL == "" {
		baseURL = defaultAuthBaseURL
	}
	return &AuthClient{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    baseURL,
		apiKey:     apiKey,
	}
}

type signInRequest struct {
	Email             string `json:"email"`
	Password          string `json:"password"`
	ReturnSecureToken bool   `json:"returnSecureToken"`
}

type signInResponse struct {
	LocalID string `json:"localId"`
	IDToken string `json:"idToken"`
}

type lookupRequest struct {
	IDToken string `json:"idToken"`
}

type lookupResponse struct {
	Users []struct {
		LocalID string `json:"localId"`
	} `json:"users"`
}

type authError struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// SignIn exchanges email/password for a user id and bearer token.
// Provider rejections (wrong password, unknown user, disabled account)
// all map to apperrors.ErrLoginFailed with the provider message wrapped.
func (c *AuthClient) SignIn(ctx context.Context, email, password string) (User, error) {
	body := signInRequest{Email: email, Password: password, ReturnSecureToken: true}

	var result signInResponse
	if err := c.post(ctx, "accounts:signInWithPassword", body, &result); err != nil {
		return User{}, fmt.Errorf("%w: %v", apperrors.ErrLoginFailed, err)
	}
	if result.LocalID == "" || result.IDToken == "" {
		return User{}, apperrors.ErrLoginFailed
	}

	return User{UserID: result.LocalID, Token: result.IDToken}, nil
}

// Verify resolves a bearer token to its user id. Invalid or expired
// tokens map to apperrors.ErrInvalidToken.
func (c *AuthClient) Verify(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", apperrors.ErrMissingToken
	}

	var result lookupResponse
	if err := c.post(ctx, "accounts:lookup", lookupRequest{IDToken: token}, &result); err != nil {
		return "", fmt.Errorf("%w: %v", apperrors.ErrInvalidToken, err)
	}
	if len(result.Users) == 0 {
		return "", apperrors.ErrInvalidToken
	}

	return result.Users[0].LocalID, nil
}

// post executes one identity toolkit call and decodes the response.
func (c *AuthClient) post(ctx context.Context, endpoint string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s/v1/%s?key=%s", c.baseURL, endpoint, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var apiErr authError
		if err := json.NewDecoder(resp.Body).Decode(&apiErr); err == nil && apiErr.Error.Message != "" {
			return fmt.Errorf("identity provider: %s", apiErr.Error.Message)
		}
		return fmt.Errorf("identity provider returned status %d", resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
