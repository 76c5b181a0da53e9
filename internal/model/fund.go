package model

// FundPosition is a stored mutual fund holding as it lives in the
// hierarchical store under users/{uid}/mutual_funds/{schemeCode}.
type FundPosition struct {
	Name        string  `json:"name"`
	Units       float64 `json:"units"`
	PurchaseNAV float64 `json:"purchase_nav"`
	CurrentNAV  float64 `json:"current_nav,omitempty"`
	LastUpdated string  `json:"last_updated,omitempty"`
}

// FundHolding is a fund position enriched with the latest NAV and valuation.
type FundHolding struct {
	SchemeCode  string  `json:"scheme_code"`
	Name        string  `json:"name"`
	Units       float64 `json:"units"`
	PurchaseNAV float64 `json:"purchase_nav"`
	CurrentNAV  float64 `json:"current_nav"`
	Value       float64 `json:"value"`
	GainLossPct float64 `json:"gain_loss_pct"`
}
