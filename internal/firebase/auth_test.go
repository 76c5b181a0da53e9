package firebase_test

import (
	"context"
	"errors"
	"testing"

	"investmenttracker/internal/apperrors"
	"investmenttracker/internal/testutil"
)

func TestAuthClient_SignIn(t *testing.T) {
	fb := testutil.NewFakeFirebase(t)
	uid, _ := fb.AddUser("user@example.com", "secret")
	client := fb.AuthClient()

	t.Run("valid credentials", func(t *testing.T) {
		user, err := client.SignIn(context.Background(), "user@example.com", "secret")
		if err != nil {
			t.Fatalf("SignIn returned error: %v", err)
		}
		if user.UserID != uid {
			t.Errorf("Expected uid %s, got %s", uid, user.UserID)
		}
		if user.Token == "" {
			t.Error("Expected a non-empty token")
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := client.SignIn(context.Background(), "user@example.com", "wrong")
		if !errors.Is(err, apperrors.ErrLoginFailed) {
			t.Errorf("Expected ErrLoginFailed, got %v", err)
		}
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := client.SignIn(context.Background(), "nobody@example.com", "secret")
		if !errors.Is(err, apperrors.ErrLoginFailed) {
			t.Errorf("Expected ErrLoginFailed, got %v", err)
		}
	})
}

func TestAuthClient_Verify(t *testing.T) {
	fb := testutil.NewFakeFirebase(t)
	uid, token := fb.AddUser("user@example.com", "secret")
	client := fb.AuthClient()

	t.Run("valid token", func(t *testing.T) {
		got, err := client.Verify(context.Background(), token)
		if err != nil {
			t.Fatalf("Verify returned error: %v", err)
		}
		if got != uid {
			t.Errorf("Expected uid %s, got %s", uid, got)
		}
	})

	t.Run("empty token short-circuits", func(t *testing.T) {
		if _, err := client.Verify(context.Background(), ""); !errors.Is(err, apperrors.ErrMissingToken) {
			t.Errorf("Expected ErrMissingToken, got %v", err)
		}
	})

	t.Run("garbage token", func(t *testing.T) {
		if _, err := client.Verify(context.Background(), "garbage"); !errors.Is(err, apperrors.ErrInvalidToken) {
			t.Errorf("Expected ErrInvalidToken, got %v", err)
		}
	})
}
