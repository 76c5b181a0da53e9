package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Default endpoint hosts. Yahoo has no official API for Indian exchange
// tickers; these are the same undocumented endpoints browsers hit.
const (
	defaultChartBaseURL   = "https://query1.finance.yahoo.com"
	defaultOptionsBaseURL = "https://query2.finance.yahoo.com"

	// browserUserAgent mimics a browser to avoid API blocking.
	browserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
)

// Client defines the interface for fetching market data from Yahoo Finance.
// This interface enables dependency injection and testing with mock
// implementations.
type Client interface {
	Chart(ctx context.Context, symbol string) (ChartResponse, error)
	OptionsQuote(ctx context.Context, symbol string) (OptionsResponse, error)
}

// FinanceClient provides methods for fetching market data from Yahoo
// Finance. It wraps an HTTP client and provides convenient methods for
// querying daily charts and quote snapshots.
type FinanceClient struct {
	httpClient     *http.Client
	chartBaseURL   string
	optionsBaseURL string
}

// Option configures a FinanceClient.
type Option func(*FinanceClient)

// WithBaseURLs overrides both endpoint hosts. Used by tests to point the
// client at a local server.
func WithBaseURLs(chartBase, optionsBase string) Option {
	return func(c *FinanceClient) {
		c.chartBaseURL = chartBase
		c.optionsBaseURL = optionsBase
	}
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *FinanceClient) {
		c.httpClient = hc
	}
}

// NewFinanceClient creates a new Yahoo Finance client. The default HTTP
// client carries a 10s timeout; there is no retry logic here, fallback
// ordering lives in the resolver.
func NewFinanceClient(opts ...Option) *FinanceClient {
	c := &FinanceClient{
		httpClient:     &http.Client{Timeout: 10 * time.Second},
		chartBaseURL:   defaultChartBaseURL,
		optionsBaseURL: defaultOptionsBaseURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Chart fetches the last 5 days of daily price data for a symbol.
// The range-based query format (range=5d) automatically selects the most
// recent trading days, so the latest close is always within the window.
func (c *FinanceClient) Chart(ctx context.Context, symbol string) (ChartResponse, error) {
	url := fmt.Sprintf("%s/v8/finance/chart/%s?interval=1d&range=5d", c.chartBaseURL, symbol)

	var response ChartResponse
	if err := c.getJSON(ctx, url, &response); err != nil {
		return ChartResponse{}, err
	}
	if response.Chart.Error != nil {
		return response, fmt.Errorf("yahoo chart error for %s: %s", symbol, response.Chart.Error.Description)
	}
	if len(response.Chart.Result) == 0 {
		return ChartResponse{}, fmt.Errorf("no chart results returned for symbol %s", symbol)
	}
	return response, nil
}

// OptionsQuote fetches the quote snapshot embedded in the options-chain
// endpoint for a symbol. The snapshot carries regularMarketPrice, the
// previous close and display names.
func (c *FinanceClient) OptionsQuote(ctx context.Context, symbol string) (OptionsResponse, error) {
	url := fmt.Sprintf("%s/v7/finance/options/%s", c.optionsBaseURL, symbol)

	var response OptionsResponse
	if err := c.getJSON(ctx, url, &response); err != nil {
		return OptionsResponse{}, err
	}
	if response.OptionChain.Error != nil {
		return response, fmt.Errorf("yahoo options error for %s: %s", symbol, response.OptionChain.Error.Description)
	}
	if len(response.OptionChain.Result) == 0 {
		return OptionsResponse{}, fmt.Errorf("no options results returned for symbol %s", symbol)
	}
	return response, nil
}

// getJSON executes a GET request and decodes the JSON body into out.
// Sets the browser-like User-Agent required to avoid blocking.
func (c *FinanceClient) getJSON(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	req.Header.Set("User-Agent", browserUserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("yahoo returned status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, out)
}

// LatestClose returns the most recent non-null daily closing price from a
// chart response, or false when the response carries no usable close.
func (r ChartResponse) LatestClose() (float64, bool) {
	if len(r.Chart.Result) == 0 {
		return 0, false
	}
	result := r.Chart.Result[0]
	if len(result.Indicators.Quote) == 0 {
		return 0, false
	}
	closes := result.Indicators.Quote[0].Close
	for i := len(closes) - 1; i >= 0; i-- {
		if closes[i] != nil && *closes[i] > 0 {
			return *closes[i], true
		}
	}
	return 0, false
}

// MetaPrice returns meta.regularMarketPrice from a chart response, or
// false when it is absent or zero.
func (r ChartResponse) MetaPrice() (float64, bool) {
	if len(r.Chart.Result) == 0 {
		return 0, false
	}
	price := r.Chart.Result[0].Meta.RegularMarketPrice
	return price, price > 0
}

// Snapshot returns the quote snapshot of an options response, or false
// when the response carries none.
func (r OptionsResponse) Snapshot() (QuoteSnapshot, bool) {
	if len(r.OptionChain.Result) == 0 {
		return QuoteSnapshot{}, false
	}
	return r.OptionChain.Result[0].Quote, true
}

// DisplayName picks the best available display name from a snapshot,
// falling back to the given symbol.
func (q QuoteSnapshot) DisplayName(fallback string) string {
	if q.ShortName != "" {
		return q.ShortName
	}
	if q.LongName != "" {
		return q.LongName
	}
	return fallback
}
