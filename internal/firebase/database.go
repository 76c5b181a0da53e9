package firebase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"investmenttracker/internal/model"
)

// Store defines the holdings surface of the hierarchical store. Every
// call is authorized by the caller's bearer token; the store enforces
// per-user access, not this client.
type Store interface {
	Stocks(ctx context.Context, uid, token string) (map[string]model.StockPosition, error)
	SetStock(ctx context.Context, uid, token, baseTicker string, position model.StockPosition) error
	DeleteStock(ctx context.Context, uid, token, baseTicker string) error

	MutualFunds(ctx context.Context, uid, token string) (map[string]model.FundPosition, error)
	SetMutualFund(ctx context.Context, uid, token, schemeCode string, position model.FundPosition) error
	DeleteMutualFund(ctx context.Context, uid, token, schemeCode string) error
}

// Database talks to the realtime database REST surface. Paths map to
// users/{uid}/stocks/{baseTicker} and users/{uid}/mutual_funds/{code},
// each suffixed with .json and an auth query parameter.
type Database struct {
	httpClient *http.Client
	baseURL    string
}

// NewDatabase creates a store client for the given database URL.
func NewDatabase(databaseURL string) *Database {
	return &Database{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    strings.TrimRight(databaseURL, "/"),
	}
}

// Stocks returns all stock positions for a user, keyed by base ticker.
// A missing subtree comes back as an empty map, not an error.
func (d *Database) Stocks(ctx context.Context, uid, token string) (map[string]model.StockPosition, error) {
	var positions map[string]model.StockPosition
	if err := d.get(ctx, d.path("users", uid, "stocks"), token, &positions); err != nil {
		return nil, err
	}
	if positions == nil {
		positions = map[string]model.StockPosition{}
	}
	return positions, nil
}

// SetStock writes a stock position under the user's tree. Writes replace
// the record wholesale; there is no merge.
func (d *Database) SetStock(ctx context.Context, uid, token, baseTicker string, position model.StockPosition) error {
	return d.put(ctx, d.path("users", uid, "stocks", baseTicker), token, position)
}

// DeleteStock removes a stock position.
func (d *Database) DeleteStock(ctx context.Context, uid, token, baseTicker string) error {
	return d.delete(ctx, d.path("users", uid, "stocks", baseTicker), token)
}

// MutualFunds returns all fund positions for a user, keyed by scheme code.
func (d *Database) MutualFunds(ctx context.Context, uid, token string) (map[string]model.FundPosition, error) {
	var positions map[string]model.FundPosition
	if err := d.get(ctx, d.path("users", uid, "mutual_funds"), token, &positions); err != nil {
		return nil, err
	}
	if positions == nil {
		positions = map[string]model.FundPosition{}
	}
	return positions, nil
}

// SetMutualFund writes a fund position under the user's tree.
func (d *Database) SetMutualFund(ctx context.Context, uid, token, schemeCode string, position model.FundPosition) error {
	return d.put(ctx, d.path("users", uid, "mutual_funds", schemeCode), token, position)
}

// DeleteMutualFund removes a fund position.
func (d *Database) DeleteMutualFund(ctx context.Context, uid, token, schemeCode string) error {
	return d.delete(ctx, d.path("users", uid, "mutual_funds", schemeCode), token)
}

// path builds the REST URL for a store location.
func (d *Database) path(segments ...string) string {
	escaped := make([]string, len(segments))
	for i, s := range segments {
		escaped[i] = url.PathEscape(s)
	}
	return fmt.Sprintf("%s/%s.json", d.baseURL, strings.Join(escaped, "/"))
}

func (d *Database) get(ctx context.Context, rawURL, token string, out any) error {
	return d.do(ctx, http.MethodGet, rawURL, token, nil, out)
}

func (d *Database) put(ctx context.Context, rawURL, token string, body any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}
	return d.do(ctx, http.MethodPut, rawURL, token, payload, nil)
}

func (d *Database) delete(ctx context.Context, rawURL, token string) error {
	return d.do(ctx, http.MethodDelete, rawURL, token, nil, nil)
}

// do executes one store call. The bearer token rides in the auth query
// parameter, matching the store's REST convention.
func (d *Database) do(ctx context.Context, method, rawURL, token string, body []byte, out any) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return err
	}
	q := u.Query()
	q.Set("auth", token)
	u.RawQuery = q.Encode()

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("store returned status %d for %s %s", resp.StatusCode, method, u.Path)
	}

	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}
