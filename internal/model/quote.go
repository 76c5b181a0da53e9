package model

// Exchange identifies the listing venue a price was resolved against.
type Exchange string

const (
	ExchangeNSE     Exchange = "NSE"
	ExchangeBSE     Exchange = "BSE"
	ExchangeUnknown Exchange = "Unknown"
)

// SuffixNSE and SuffixBSE are the Yahoo-style ticker suffixes that
// disambiguate a listing between the two Indian exchanges.
const (
	SuffixNSE = ".NS"
	SuffixBSE = ".BO"
)

// PriceResult is the best-effort outcome of a price lookup. A zero
// CurrentPrice together with ExchangeUnknown means every source failed;
// callers must treat that as "unresolved", not as a free stock.
type PriceResult struct {
	Name         string   `json:"name"`
	CurrentPrice float64  `json:"current_price"`
	Exchange     Exchange `json:"exchange"`
	Symbol       string   `json:"symbol"`
}

// Resolved reports whether the lookup produced a usable price.
func (r PriceResult) Resolved() bool {
	return r.CurrentPrice > 0
}
