package request

// AddStockRequest carries the fields for adding a stock holding. Symbol
// is optional; when set it should be the full listing symbol including
// the exchange suffix and takes precedence for the price lookup.
type AddStockRequest struct {
	Ticker        string  `json:"ticker"`
	Symbol        string  `json:"symbol,omitempty"`
	Quantity      float64 `json:"quantity"`
	PurchasePrice float64 `json:"purchase_price"`
}

// QuoteRequest carries the ticker for a price resolution request.
type QuoteRequest struct {
	Ticker string `json:"ticker"`
}
