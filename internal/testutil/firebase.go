package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"

	"investmenttracker/internal/firebase"
	"investmenttracker/internal/model"
)

// FakeFirebase is an in-memory stand-in for the identity and
// hierarchical-store collaborator, served over httptest. It implements
// just the REST shapes the clients use: signInWithPassword,
// accounts:lookup, and GET/PUT/DELETE under users/{uid}/....
type FakeFirebase struct {
	server *httptest.Server

	mu        sync.Mutex
	passwords map[string]string // email -> password
	userIDs   map[string]string // email -> uid
	tokens    map[string]string // token -> uid
	stocks    map[string]map[string]model.StockPosition
	funds     map[string]map[string]model.FundPosition
}

// NewFakeFirebase starts the fake collaborator and registers its
// shutdown with the test.
func NewFakeFirebase(t *testing.T) *FakeFirebase {
	t.Helper()
	f := &FakeFirebase{
		passwords: map[string]string{},
		userIDs:   map[string]string{},
		tokens:    map[string]string{},
		stocks:    map[string]map[string]model.StockPosition{},
		funds:     map[string]map[string]model.FundPosition{},
	}
	f.server = httptest.NewServer(http.HandlerFunc(f.handle))
	t.Cleanup(f.server.Close)
	return f
}

// URL returns the base URL to point both clients at.
func (f *FakeFirebase) URL() string { return f.server.URL }

// AuthClient returns an identity client wired to the fake.
func (f *FakeFirebase) AuthClient() *firebase.AuthClient {
	return firebase.NewAuthClient("test-api-key", f.server.URL)
}

// Database returns a store client wired to the fake.
func (f *FakeFirebase) Database() *firebase.Database {
	return firebase.NewDatabase(f.server.URL)
}

// AddUser registers a user and returns its uid and a valid token.
func (f *FakeFirebase) AddUser(email, password string) (uid, token string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	uid = uuid.NewString()
	token = uuid.NewString()
	f.passwords[email] = password
	f.userIDs[email] = uid
	f.tokens[token] = uid
	return uid, token
}

// SeedStock stores a stock position directly, bypassing the REST surface.
func (f *FakeFirebase) SeedStock(uid, ticker string, position model.StockPosition) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.stocks[uid] == nil {
		f.stocks[uid] = map[string]model.StockPosition{}
	}
	f.stocks[uid][ticker] = position
}

// SeedFund stores a fund position directly.
func (f *FakeFirebase) SeedFund(uid, schemeCode string, position model.FundPosition) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.funds[uid] == nil {
		f.funds[uid] = map[string]model.FundPosition{}
	}
	f.funds[uid][schemeCode] = position
}

// Stock reads a stored stock position back out.
func (f *FakeFirebase) Stock(uid, ticker string) (model.StockPosition, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	position, ok := f.stocks[uid][ticker]
	return position, ok
}

func (f *FakeFirebase) handle(w http.ResponseWriter, r *http.Request) {
	switch {
	case strings.HasPrefix(r.URL.Path, "/v1/accounts:signInWithPassword"):
		f.handleSignIn(w, r)
	case strings.HasPrefix(r.URL.Path, "/v1/accounts:lookup"):
		f.handleLookup(w, r)
	case strings.HasPrefix(r.URL.Path, "/users/"):
		f.handleStore(w, r)
	default:
		http.NotFound(w, r)
	}
}

func (f *FakeFirebase) handleSignIn(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	_ = json.NewDecoder(r.Body).Decode(&req)

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.passwords[req.Email] == "" || f.passwords[req.Email] != req.Password {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"error": map[string]any{"message": "INVALID_LOGIN_CREDENTIALS"},
		})
		return
	}
	uid := f.userIDs[req.Email]
	token := uuid.NewString()
	f.tokens[token] = uid
	writeJSON(w, http.StatusOK, map[string]any{"localId": uid, "idToken": token})
}

func (f *FakeFirebase) handleLookup(w http.ResponseWriter, r *http.Request) {
	var req struct {
		IDToken string `json:"idToken"`
	}
	_ = json.NewDecoder(r.Body).Decode(&req)

	f.mu.Lock()
	defer f.mu.Unlock()
	uid, ok := f.tokens[req.IDToken]
	if !ok {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"error": map[string]any{"message": "INVALID_ID_TOKEN"},
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"users": []map[string]any{{"localId": uid}},
	})
}

// handleStore serves the RTDB-style REST surface:
// /users/{uid}/stocks.json, /users/{uid}/stocks/{ticker}.json and the
// mutual_funds mirror. Every call must carry a known auth token.
func (f *FakeFirebase) handleStore(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	token := r.URL.Query().Get("auth")
	if _, ok := f.tokens[token]; !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"error": "Permission denied"})
		return
	}

	path := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/users/"), ".json")
	parts := strings.Split(path, "/")
	if len(parts) < 2 {
		http.NotFound(w, r)
		return
	}
	uid, collection := parts[0], parts[1]

	switch {
	case collection == "stocks" && len(parts) == 2 && r.Method == http.MethodGet:
		writeJSON(w, http.StatusOK, f.stocks[uid])
	case collection == "stocks" && len(parts) == 3:
		f.handleStock(w, r, uid, parts[2])
	case collection == "mutual_funds" && len(parts) == 2 && r.Method == http.MethodGet:
		writeJSON(w, http.StatusOK, f.funds[uid])
	case collection == "mutual_funds" && len(parts) == 3:
		f.handleFund(w, r, uid, parts[2])
	default:
		http.NotFound(w, r)
	}
}

func (f *FakeFirebase) handleStock(w http.ResponseWriter, r *http.Request, uid, ticker string) {
	switch r.Method {
	case http.MethodPut:
		var position model.StockPosition
		if err := json.NewDecoder(r.Body).Decode(&position); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]any{"error": err.Error()})
			return
		}
		if f.stocks[uid] == nil {
			f.stocks[uid] = map[string]model.StockPosition{}
		}
		f.stocks[uid][ticker] = position
		writeJSON(w, http.StatusOK, position)
	case http.MethodDelete:
		delete(f.stocks[uid], ticker)
		writeJSON(w, http.StatusOK, nil)
	default:
		writeJSON(w, http.StatusOK, f.stocks[uid][ticker])
	}
}

func (f *FakeFirebase) handleFund(w http.ResponseWriter, r *http.Request, uid, schemeCode string) {
	switch r.Method {
	case http.MethodPut:
		var position model.FundPosition
		if err := json.NewDecoder(r.Body).Decode(&position); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]any{"error": err.Error()})
			return
		}
		if f.funds[uid] == nil {
			f.funds[uid] = map[string]model.FundPosition{}
		}
		f.funds[uid][schemeCode] = position
		writeJSON(w, http.StatusOK, position)
	case http.MethodDelete:
		delete(f.funds[uid], schemeCode)
		writeJSON(w, http.StatusOK, nil)
	default:
		writeJSON(w, http.StatusOK, f.funds[uid][schemeCode])
	}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
