package service

import (
	"context"
	"sort"

	"investmenttracker/internal/apperrors"
	"investmenttracker/internal/firebase"
	"investmenttracker/internal/model"
	"investmenttracker/internal/resolver"
)

// PriceResolver is the resolution capability the stock service depends
// on. Resolve never fails; unresolved tickers come back as zero-price
// placeholders.
type PriceResolver interface {
	Resolve(ctx context.Context, rawTicker string) model.PriceResult
}

// StockService handles stock holding listings and mutations. Listings
// refresh at most a capped number of holdings per request through the
// resolver and serve stored values for the remainder, bounding
// per-request latency at the cost of staleness.
type StockService struct {
	auth     firebase.Auth
	store    firebase.Store
	resolver PriceResolver
}

// NewStockService creates a new StockService with the provided dependencies.
func NewStockService(auth firebase.Auth, store firebase.Store, priceResolver PriceResolver) *StockService {
	return &StockService{
		auth:     auth,
		store:    store,
		resolver: priceResolver,
	}
}

// AddStockInput carries the fields of an add-stock request.
type AddStockInput struct {
	Ticker        string
	Symbol        string // optional full symbol including exchange suffix
	Quantity      float64
	PurchasePrice float64
}

// ListStocks returns the user's stock holdings with valuations. The
// first refreshLimit holdings (ticker order) get a live price lookup;
// the rest are served from their stored values.
func (s *StockService) ListStocks(ctx context.Context, token string, refreshLimit int) ([]model.StockHolding, error) {
	uid, err := s.auth.Verify(ctx, token)
	if err != nil {
		return nil, err
	}

	positions, err := s.store.Stocks(ctx, uid, token)
	if err != nil {
		return nil, err
	}

	// Map iteration order is randomized; sort tickers so the refresh cap
	// hits a stable prefix across requests.
	tickers := make([]string, 0, len(positions))
	for ticker := range positions {
		tickers = append(tickers, ticker)
	}
	sort.Strings(tickers)

	holdings := make([]model.StockHolding, 0, len(positions))
	for i, ticker := range tickers {
		position := positions[ticker]
		if i < refreshLimit {
			holdings = append(holdings, s.refreshedHolding(ctx, ticker, position))
			continue
		}
		holdings = append(holdings, storedHolding(ticker, position))
	}

	return holdings, nil
}

// refreshedHolding resolves a live price for one position. Stored fields
// win over resolver output where both exist, matching the rule that a
// user's chosen display name and exchange are not clobbered by a refresh.
func (s *StockService) refreshedHolding(ctx context.Context, ticker string, position model.StockPosition) model.StockHolding {
	symbol := position.Symbol
	if symbol == "" {
		symbol = ticker
	}

	quote := s.resolver.Resolve(ctx, symbol)

	holding := model.StockHolding{
		Ticker:        ticker,
		Name:          position.Name,
		Quantity:      position.Quantity,
		PurchasePrice: position.PurchasePrice,
		CurrentPrice:  quote.CurrentPrice,
		Exchange:      position.Exchange,
		Symbol:        symbol,
		Refreshed:     true,
	}
	if holding.Name == "" {
		holding.Name = quote.Name
	}
	if holding.Exchange == "" {
		holding.Exchange = quote.Exchange
	}
	holding.Value = Value(holding.CurrentPrice, holding.Quantity)
	holding.GainLossPct = GainLossPct(holding.CurrentPrice, holding.PurchasePrice)
	return holding
}

// storedHolding builds a holding purely from stored values.
func storedHolding(ticker string, position model.StockPosition) model.StockHolding {
	holding := model.StockHolding{
		Ticker:        ticker,
		Name:          position.Name,
		Quantity:      position.Quantity,
		PurchasePrice: position.PurchasePrice,
		CurrentPrice:  position.CurrentPrice,
		Exchange:      position.Exchange,
		Symbol:        position.Symbol,
		Refreshed:     false,
	}
	if holding.Name == "" {
		holding.Name = ticker
	}
	if holding.Exchange == "" {
		holding.Exchange = model.ExchangeUnknown
	}
	if holding.Symbol == "" {
		holding.Symbol = ticker
	}
	holding.Value = Value(holding.CurrentPrice, holding.Quantity)
	holding.GainLossPct = GainLossPct(holding.CurrentPrice, holding.PurchasePrice)
	return holding
}

// AddStock resolves the requested ticker and stores the position under
// its base ticker. Tickers no source can price are rejected.
func (s *StockService) AddStock(ctx context.Context, token string, input AddStockInput) (model.StockHolding, error) {
	uid, err := s.auth.Verify(ctx, token)
	if err != nil {
		return model.StockHolding{}, err
	}
	if input.Ticker == "" {
		return model.StockHolding{}, apperrors.ErrMissingTicker
	}
	if input.Quantity <= 0 {
		return model.StockHolding{}, apperrors.ErrInvalidQuantity
	}

	// Prefer the full symbol (exchange suffix included) when the caller
	// supplies one; it skips the exchange-guessing part of the chain.
	lookupTicker := input.Symbol
	if lookupTicker == "" {
		lookupTicker = input.Ticker
	}

	quote := s.resolver.Resolve(ctx, lookupTicker)
	if !quote.Resolved() {
		return model.StockHolding{}, apperrors.ErrTickerUnresolved
	}

	baseTicker := resolver.BaseTicker(resolver.Normalize(input.Ticker))
	position := model.StockPosition{
		Name:          quote.Name,
		Quantity:      input.Quantity,
		PurchasePrice: input.PurchasePrice,
		Exchange:      quote.Exchange,
		Symbol:        quote.Symbol,
		CurrentPrice:  quote.CurrentPrice,
	}
	if err := s.store.SetStock(ctx, uid, token, baseTicker, position); err != nil {
		return model.StockHolding{}, err
	}

	holding := storedHolding(baseTicker, position)
	holding.Refreshed = true
	return holding, nil
}

// DeleteStock removes a holding by its base ticker.
func (s *StockService) DeleteStock(ctx context.Context, token, ticker string) error {
	uid, err := s.auth.Verify(ctx, token)
	if err != nil {
		return err
	}
	baseTicker := resolver.BaseTicker(resolver.Normalize(ticker))
	if baseTicker == "" {
		return apperrors.ErrMissingTicker
	}
	return s.store.DeleteStock(ctx, uid, token, baseTicker)
}

// Quote resolves a single ticker without touching the store. Used by the
// public quote endpoint.
func (s *StockService) Quote(ctx context.Context, ticker string) model.PriceResult {
	return s.resolver.Resolve(ctx, ticker)
}
