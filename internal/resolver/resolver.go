// Package resolver implements best-effort price resolution for Indian
// exchange tickers. A lookup walks a fixed priority chain: NSE listing,
// BSE listing, then two raw endpoint fallbacks, degrading to a zero-price
// placeholder when every source fails. Results, placeholders included,
// are cached for a TTL so each ticker costs at most one chain walk per
// cache window.
package resolver

import (
	"context"
	"log"
	"strings"

	"golang.org/x/sync/singleflight"

	"investmenttracker/internal/model"
	"investmenttracker/internal/ratelimit"
	"investmenttracker/internal/yahoo"
)

// Resolver resolves raw ticker strings to PriceResults. It never returns
// an error: every failure path collapses into the placeholder result.
type Resolver struct {
	market  yahoo.Client
	cache   *Cache
	limiter ratelimit.Limiter
	group   singleflight.Group
}

// New creates a resolver. The limiter is consulted before every upstream
// request; pass ratelimit.NopLimiter to disable pacing.
func New(market yahoo.Client, cache *Cache, limiter ratelimit.Limiter) *Resolver {
	if limiter == nil {
		limiter = ratelimit.NopLimiter{}
	}
	return &Resolver{
		market:  market,
		cache:   cache,
		limiter: limiter,
	}
}

// Normalize trims and uppercases a raw ticker. The normalized form,
// exchange suffix included, is the cache key.
func Normalize(raw string) string {
	return strings.ToUpper(strings.TrimSpace(raw))
}

// BaseTicker strips a trailing exchange suffix from a normalized ticker.
func BaseTicker(normalized string) string {
	if strings.HasSuffix(normalized, model.SuffixNSE) || strings.HasSuffix(normalized, model.SuffixBSE) {
		return normalized[:len(normalized)-3]
	}
	return normalized
}

// Resolve returns the best-effort price for a raw ticker. A fresh cache
// entry is returned verbatim with no upstream contact; concurrent misses
// for the same key collapse into a single chain walk.
func (r *Resolver) Resolve(ctx context.Context, rawTicker string) model.PriceResult {
	key := Normalize(rawTicker)

	if cached, ok := r.cache.Get(key); ok {
		return cached
	}

	v, _, _ := r.group.Do(key, func() (any, error) {
		// Another caller may have filled the cache while we waited.
		if cached, ok := r.cache.Get(key); ok {
			return cached, nil
		}
		result := r.lookup(ctx, BaseTicker(key))
		r.cache.Put(key, result)
		return result, nil
	})
	return v.(model.PriceResult)
}

// stepResult is the typed outcome of one extraction step. A non-nil err
// marks a transient upstream or parse failure; either way the chain moves
// on, but transient failures are logged.
type stepResult struct {
	price float64
	name  string
	err   error
}

func (s stepResult) found() bool {
	return s.err == nil && s.price > 0
}

// lookup walks the fallback chain for a base ticker.
func (r *Resolver) lookup(ctx context.Context, base string) model.PriceResult {
	// Try the NSE listing first, then BSE.
	for _, exchange := range []model.Exchange{model.ExchangeNSE, model.ExchangeBSE} {
		if result, ok := r.exchangeLookup(ctx, base, exchange); ok {
			return result
		}
	}

	// Raw chart endpoint for the NSE symbol.
	if step := r.chartMetaStep(ctx, base); step.found() {
		return model.PriceResult{
			Name:         step.name,
			CurrentPrice: step.price,
			Exchange:     model.ExchangeNSE,
			Symbol:       base + model.SuffixNSE,
		}
	} else if step.err != nil {
		log.Printf("direct chart fallback error for %s: %v", base, step.err)
	}

	// Options-chain endpoint for the NSE symbol.
	if step := r.optionsStep(ctx, base); step.found() {
		return model.PriceResult{
			Name:         step.name,
			CurrentPrice: step.price,
			Exchange:     model.ExchangeNSE,
			Symbol:       base + model.SuffixNSE,
		}
	} else if step.err != nil {
		log.Printf("options fallback error for %s: %v", base, step.err)
	}

	// Everything failed: placeholder, cached like any other result so the
	// upstream sources are not hammered for a known-bad ticker.
	return model.PriceResult{
		Name:         base,
		CurrentPrice: 0,
		Exchange:     model.ExchangeUnknown,
		Symbol:       base,
	}
}

// exchangeLookup attempts both extraction strategies against one exchange
// listing: the most recent daily close from a short chart window, then
// the quote snapshot's regular market price with previous close as a last
// resort. The display name comes from the snapshot when available; a name
// failure never aborts a price attempt.
func (r *Resolver) exchangeLookup(ctx context.Context, base string, exchange model.Exchange) (model.PriceResult, bool) {
	suffix := model.SuffixNSE
	if exchange == model.ExchangeBSE {
		suffix = model.SuffixBSE
	}
	symbol := base + suffix

	var price float64
	found := false

	if err := r.limiter.Wait(ctx); err != nil {
		return model.PriceResult{}, false
	}
	chart, err := r.market.Chart(ctx, symbol)
	if err != nil {
		log.Printf("%s history error for %s: %v", exchange, symbol, err)
	} else if closePrice, ok := chart.LatestClose(); ok {
		price = closePrice
		found = true
	}

	name := symbol
	if err := r.limiter.Wait(ctx); err == nil {
		options, err := r.market.OptionsQuote(ctx, symbol)
		if err != nil {
			log.Printf("%s quote error for %s: %v", exchange, symbol, err)
		} else if snapshot, ok := options.Snapshot(); ok {
			if !found {
				switch {
				case snapshot.RegularMarketPrice > 0:
					price = snapshot.RegularMarketPrice
					found = true
				case snapshot.PreviousClose > 0:
					price = snapshot.PreviousClose
					found = true
				}
			}
			name = snapshot.DisplayName(symbol)
		}
	}

	if !found {
		return model.PriceResult{}, false
	}
	return model.PriceResult{
		Name:         name,
		CurrentPrice: price,
		Exchange:     exchange,
		Symbol:       symbol,
	}, true
}

// chartMetaStep reads meta.regularMarketPrice from the raw chart endpoint
// for the NSE symbol.
func (r *Resolver) chartMetaStep(ctx context.Context, base string) stepResult {
	if err := r.limiter.Wait(ctx); err != nil {
		return stepResult{err: err}
	}
	chart, err := r.market.Chart(ctx, base+model.SuffixNSE)
	if err != nil {
		return stepResult{err: err}
	}
	price, ok := chart.MetaPrice()
	if !ok {
		return stepResult{}
	}
	name := chart.Chart.Result[0].Meta.ShortName
	if name == "" {
		name = base
	}
	return stepResult{price: price, name: name}
}

// optionsStep reads the quote snapshot from the options-chain endpoint
// for the NSE symbol. Only a strictly positive regular market price
// counts here; there is no previous-close fallback at this depth.
func (r *Resolver) optionsStep(ctx context.Context, base string) stepResult {
	if err := r.limiter.Wait(ctx); err != nil {
		return stepResult{err: err}
	}
	options, err := r.market.OptionsQuote(ctx, base+model.SuffixNSE)
	if err != nil {
		return stepResult{err: err}
	}
	snapshot, ok := options.Snapshot()
	if !ok || snapshot.RegularMarketPrice <= 0 {
		return stepResult{}
	}
	return stepResult{
		price: snapshot.RegularMarketPrice,
		name:  snapshot.DisplayName(base),
	}
}
