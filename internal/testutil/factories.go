package testutil

import (
	"context"
	"strings"
	"sync"

	"investmenttracker/internal/apperrors"
	"investmenttracker/internal/mfapi"
	"investmenttracker/internal/model"
)

// StubResolver is a canned price resolver for service and handler tests.
// Unconfigured tickers resolve to the zero-price placeholder, mirroring
// the real resolver's never-fail contract.
type StubResolver struct {
	mu      sync.Mutex
	results map[string]model.PriceResult
	calls   int
}

// NewStubResolver creates an empty stub.
func NewStubResolver() *StubResolver {
	return &StubResolver{results: map[string]model.PriceResult{}}
}

// WithResult configures the result for a raw ticker (matched after
// trim/uppercase normalization).
func (s *StubResolver) WithResult(ticker string, result model.PriceResult) *StubResolver {
	s.results[normalize(ticker)] = result
	return s
}

// Resolve implements the resolver capability. A suffixed ticker that
// misses the map also tries its base form, matching the real chain's
// suffix stripping before the exchange walk.
func (s *StubResolver) Resolve(_ context.Context, rawTicker string) model.PriceResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	key := normalize(rawTicker)
	if result, ok := s.results[key]; ok {
		return result
	}
	base := key
	if strings.HasSuffix(base, model.SuffixNSE) || strings.HasSuffix(base, model.SuffixBSE) {
		base = base[:len(base)-3]
	}
	if result, ok := s.results[base]; ok {
		return result
	}
	return model.PriceResult{Name: base, Exchange: model.ExchangeUnknown, Symbol: base}
}

// Calls returns how many resolutions were requested.
func (s *StubResolver) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func normalize(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// StubNAVClient is a canned NAV client for fund tests.
type StubNAVClient struct {
	Schemes map[string]mfapi.Scheme
	Err     error
	calls   int
}

// Scheme implements mfapi.Client.
func (s *StubNAVClient) Scheme(_ context.Context, code string) (mfapi.Scheme, error) {
	s.calls++
	if s.Err != nil {
		return mfapi.Scheme{}, s.Err
	}
	scheme, ok := s.Schemes[code]
	if !ok {
		return mfapi.Scheme{}, apperrors.ErrSchemeNotFound
	}
	return scheme, nil
}

// Calls returns how many lookups were requested.
func (s *StubNAVClient) Calls() int { return s.calls }
