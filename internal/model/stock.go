package model

// StockPosition is a stored stock holding as it lives in the hierarchical
// store under users/{uid}/stocks/{baseTicker}. The record is opaque to the
// store; no cross-field consistency is enforced here.
type StockPosition struct {
	Name          string   `json:"name"`
	Quantity      float64  `json:"quantity"`
	PurchasePrice float64  `json:"purchase_price"`
	Exchange      Exchange `json:"exchange"`
	Symbol        string   `json:"symbol"`
	CurrentPrice  float64  `json:"current_price,omitempty"`
}

// StockHolding is a stock position enriched with current valuation,
// as returned by the dashboard and stocks listings.
type StockHolding struct {
	Ticker        string   `json:"ticker"`
	Name          string   `json:"name"`
	Quantity      float64  `json:"quantity"`
	PurchasePrice float64  `json:"purchase_price"`
	CurrentPrice  float64  `json:"current_price"`
	Exchange      Exchange `json:"exchange"`
	Symbol        string   `json:"symbol"`
	Value         float64  `json:"value"`
	GainLossPct   float64  `json:"gain_loss_pct"`
	// Refreshed is false when the per-request refresh cap was reached and
	// the stored price was served instead of a live lookup.
	Refreshed bool `json:"refreshed"`
}
