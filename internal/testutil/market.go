package testutil

import (
	"context"
	"fmt"
	"sync"

	"investmenttracker/internal/yahoo"
)

// MarketCall records one upstream request made through the mock market
// client, for call-count assertions.
type MarketCall struct {
	Method string // "chart" or "options"
	Symbol string
}

// MockMarketClient is a mock implementation of yahoo.Client. Symbols
// without a configured response behave like an unavailable upstream and
// return an error.
type MockMarketClient struct {
	mu               sync.Mutex
	chartResponses   map[string]yahoo.ChartResponse
	optionsResponses map[string]yahoo.OptionsResponse
	optionsFailures  map[string]int
	calls            []MarketCall
}

// NewMockMarketClient creates an empty mock; every lookup fails until
// responses are configured.
func NewMockMarketClient() *MockMarketClient {
	return &MockMarketClient{
		chartResponses:   map[string]yahoo.ChartResponse{},
		optionsResponses: map[string]yahoo.OptionsResponse{},
		optionsFailures:  map[string]int{},
	}
}

// WithChart configures the chart response for a symbol.
func (m *MockMarketClient) WithChart(symbol string, resp yahoo.ChartResponse) *MockMarketClient {
	m.chartResponses[symbol] = resp
	return m
}

// WithOptions configures the options response for a symbol.
func (m *MockMarketClient) WithOptions(symbol string, resp yahoo.OptionsResponse) *MockMarketClient {
	m.optionsResponses[symbol] = resp
	return m
}

// WithOptionsFailures makes the first n options requests for a symbol
// fail before the configured response kicks in. Used to exercise the
// deeper fallback steps, which reuse the same endpoint.
func (m *MockMarketClient) WithOptionsFailures(symbol string, n int) *MockMarketClient {
	m.optionsFailures[symbol] = n
	return m
}

// Chart implements yahoo.Client.
func (m *MockMarketClient) Chart(_ context.Context, symbol string) (yahoo.ChartResponse, error) {
	m.record("chart", symbol)
	m.mu.Lock()
	resp, ok := m.chartResponses[symbol]
	m.mu.Unlock()
	if !ok {
		return yahoo.ChartResponse{}, fmt.Errorf("no chart results returned for symbol %s", symbol)
	}
	return resp, nil
}

// OptionsQuote implements yahoo.Client.
func (m *MockMarketClient) OptionsQuote(_ context.Context, symbol string) (yahoo.OptionsResponse, error) {
	m.record("options", symbol)
	m.mu.Lock()
	if remaining := m.optionsFailures[symbol]; remaining > 0 {
		m.optionsFailures[symbol] = remaining - 1
		m.mu.Unlock()
		return yahoo.OptionsResponse{}, fmt.Errorf("simulated upstream failure for %s", symbol)
	}
	resp, ok := m.optionsResponses[symbol]
	m.mu.Unlock()
	if !ok {
		return yahoo.OptionsResponse{}, fmt.Errorf("no options results returned for symbol %s", symbol)
	}
	return resp, nil
}

func (m *MockMarketClient) record(method, symbol string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, MarketCall{Method: method, Symbol: symbol})
}

// CallCount returns the total number of upstream requests made.
func (m *MockMarketClient) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

// CallsFor returns how many requests targeted the given symbol.
func (m *MockMarketClient) CallsFor(symbol string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, c := range m.calls {
		if c.Symbol == symbol {
			n++
		}
	}
	return n
}

// ChartWithClose builds a chart response whose latest daily close is
// closePrice.
func ChartWithClose(symbol string, closePrice float64) yahoo.ChartResponse {
	price := closePrice
	return yahoo.ChartResponse{
		Chart: yahoo.Chart{
			Result: []yahoo.ChartResult{
				{
					Meta:      yahoo.Meta{Symbol: symbol},
					Timestamp: []int64{1700000000},
					Indicators: yahoo.IndicatorsContainer{
						Quote: []yahoo.OHLCV{{Close: []*float64{&price}}},
					},
				},
			},
		},
	}
}

// ChartWithMetaPrice builds a chart response carrying only
// meta.regularMarketPrice, the shape the direct-endpoint fallback reads.
func ChartWithMetaPrice(symbol, shortName string, price float64) yahoo.ChartResponse {
	return yahoo.ChartResponse{
		Chart: yahoo.Chart{
			Result: []yahoo.ChartResult{
				{
					Meta: yahoo.Meta{
						Symbol:             symbol,
						ShortName:          shortName,
						RegularMarketPrice: price,
					},
				},
			},
		},
	}
}

// OptionsWithQuote builds an options response with a quote snapshot.
func OptionsWithQuote(symbol, shortName string, price, previousClose float64) yahoo.OptionsResponse {
	return yahoo.OptionsResponse{
		OptionChain: yahoo.OptionChain{
			Result: []yahoo.OptionResult{
				{
					Quote: yahoo.QuoteSnapshot{
						Symbol:             symbol,
						ShortName:          shortName,
						RegularMarketPrice: price,
						PreviousClose:      previousClose,
					},
				},
			},
		},
	}
}
