// Package mfapi wraps the mfapi.in mutual fund NAV collaborator.
// One unauthenticated GET per scheme code, no retries.
package mfapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"investmenttracker/internal/apperrors"
)

const defaultBaseURL = "https://api.mfapi.in"

// SchemeResponse represents the raw JSON response for a scheme lookup.
// The first element of Data is treated as the latest NAV.
type SchemeResponse struct {
	Meta struct {
		SchemeName string `json:"scheme_name"`
		SchemeCode int    `json:"scheme_code"`
		FundHouse  string `json:"fund_house"`
	} `json:"meta"`
	Data []NAVEntry `json:"data"`
}

// NAVEntry is one dated NAV record. NAV arrives as a string.
type NAVEntry struct {
	Date string `json:"date"`
	NAV  string `json:"nav"`
}

// Scheme is the parsed result of a lookup: display name plus latest NAV.
type Scheme struct {
	Code      string
	Name      string
	LatestNAV float64
}

// Client defines the interface for mutual fund NAV lookups.
type Client interface {
	Scheme(ctx context.Context, schemeCode string) (Scheme, error)
}

// NAVClient fetches scheme data over HTTP.
type NAVClient struct {
	httpClient *http.Client
	baseURL    string
}

// NewNAVClient creates a NAV client. Pass an empty baseURL for the public
// endpoint; tests pass an httptest server URL.
func NewNAVClient(baseURL string) *NAVClient {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &NAVClient{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    baseURL,
	}
}

// Scheme looks up a mutual fund scheme by code. A 404 from the
// collaborator maps to apperrors.ErrSchemeNotFound.
func (c *NAVClient) Scheme(ctx context.Context, schemeCode string) (Scheme, error) {
	url := fmt.Sprintf("%s/mf/%s", c.baseURL, schemeCode)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Scheme{}, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Scheme{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return Scheme{}, apperrors.ErrSchemeNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return Scheme{}, fmt.Errorf("mfapi returned status %d for scheme %s", resp.StatusCode, schemeCode)
	}

	var response SchemeResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return Scheme{}, fmt.Errorf("failed to decode mfapi response: %w", err)
	}

	// mfapi answers 200 with an empty body shape for unknown schemes.
	if response.Meta.SchemeName == "" && len(response.Data) == 0 {
		return Scheme{}, apperrors.ErrSchemeNotFound
	}

	scheme := Scheme{
		Code: schemeCode,
		Name: response.Meta.SchemeName,
	}
	if scheme.Name == "" {
		scheme.Name = fmt.Sprintf("Fund %s", schemeCode)
	}
	if len(response.Data) > 0 {
		if nav, err := strconv.ParseFloat(response.Data[0].NAV, 64); err == nil {
			scheme.LatestNAV = nav
		}
	}

	return scheme, nil
}
