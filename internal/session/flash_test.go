package session_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"investmenttracker/internal/session"
)

// carryCookies copies the flash cookie from a response onto a new request,
// simulating the browser following a redirect.
func carryCookies(rec *httptest.ResponseRecorder) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rec.Result().Cookies() {
		req.AddCookie(c)
	}
	return req
}

func TestFlash_AddThenPop(t *testing.T) {
	flash, err := session.NewFlash("")
	if err != nil {
		t.Fatalf("NewFlash returned error: %v", err)
	}

	rec := httptest.NewRecorder()
	flash.Add(rec, httptest.NewRequest(http.MethodPost, "/login", nil), "Login failed")

	popRec := httptest.NewRecorder()
	messages := flash.Pop(popRec, carryCookies(rec))
	if len(messages) != 1 || messages[0] != "Login failed" {
		t.Fatalf("Expected the queued message, got %v", messages)
	}

	// Pop clears the cookie.
	cleared := false
	for _, c := range popRec.Result().Cookies() {
		if c.Name == "flash" && c.MaxAge < 0 {
			cleared = true
		}
	}
	if !cleared {
		t.Error("Expected Pop to expire the flash cookie")
	}
}

func TestFlash_AddAppendsToExisting(t *testing.T) {
	flash, err := session.NewFlash("")
	if err != nil {
		t.Fatalf("NewFlash returned error: %v", err)
	}

	first := httptest.NewRecorder()
	flash.Add(first, httptest.NewRequest(http.MethodPost, "/", nil), "one")

	second := httptest.NewRecorder()
	flash.Add(second, carryCookies(first), "two")

	messages := flash.Pop(httptest.NewRecorder(), carryCookies(second))
	if len(messages) != 2 || messages[0] != "one" || messages[1] != "two" {
		t.Errorf("Expected both messages in order, got %v", messages)
	}
}

func TestFlash_EmptyAndTamperedCookies(t *testing.T) {
	flash, err := session.NewFlash("")
	if err != nil {
		t.Fatalf("NewFlash returned error: %v", err)
	}

	t.Run("no cookie reads as no messages", func(t *testing.T) {
		messages := flash.Pop(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
		if messages != nil {
			t.Errorf("Expected nil, got %v", messages)
		}
	})

	t.Run("tampered cookie reads as no messages", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: "flash", Value: "not-a-fernet-token"})
		messages := flash.Pop(httptest.NewRecorder(), req)
		if messages != nil {
			t.Errorf("Expected nil for a forged cookie, got %v", messages)
		}
	})

	t.Run("cookie from a different key reads as no messages", func(t *testing.T) {
		other, err := session.NewFlash("")
		if err != nil {
			t.Fatalf("NewFlash returned error: %v", err)
		}
		rec := httptest.NewRecorder()
		other.Add(rec, httptest.NewRequest(http.MethodPost, "/", nil), "secret")
		messages := flash.Pop(httptest.NewRecorder(), carryCookies(rec))
		if messages != nil {
			t.Errorf("Expected nil for a foreign-key cookie, got %v", messages)
		}
	})
}

func TestNewFlash_InvalidKey(t *testing.T) {
	if _, err := session.NewFlash("not base64!"); err == nil {
		t.Error("Expected an error for a malformed key")
	}
}
