package request

// AddFundRequest carries the fields for adding a mutual fund holding.
type AddFundRequest struct {
	SchemeCode  string  `json:"scheme_code"`
	Units       float64 `json:"units"`
	PurchaseNAV float64 `json:"purchase_nav"`
}
