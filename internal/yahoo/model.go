package yahoo

// ChartResponse represents the raw JSON response from the Yahoo Finance
// chart API (query1 .../v8/finance/chart/{symbol}). The structure maps
// the nested chart.result[0] shape: symbol metadata, Unix timestamps and
// parallel OHLCV arrays. Close values can be null for non-trading slots,
// hence the pointer slices.
type ChartResponse struct {
	Chart Chart `json:"chart"`
}

// Chart is the top-level result container of a chart response.
type Chart struct {
	Result []ChartResult `json:"result"`
	Error  *APIError     `json:"error"`
}

// ChartResult is a single chart result with metadata and indicators.
type ChartResult struct {
	Meta       Meta                `json:"meta"`
	Timestamp  []int64             `json:"timestamp"`
	Indicators IndicatorsContainer `json:"indicators"`
}

// Meta carries symbol metadata. RegularMarketPrice is present on current
// chart queries and is the value the direct-endpoint fallback reads.
type Meta struct {
	Currency           string  `json:"currency"`
	Symbol             string  `json:"symbol"`
	ExchangeName       string  `json:"exchangeName"`
	FullExchangeName   string  `json:"fullExchangeName"`
	LongName           string  `json:"longName"`
	ShortName          string  `json:"shortName"`
	RegularMarketPrice float64 `json:"regularMarketPrice"`
}

// IndicatorsContainer wraps the quote indicator arrays.
type IndicatorsContainer struct {
	Quote []OHLCV `json:"quote"`
}

// OHLCV holds one indicator series per field, parallel to Timestamp.
type OHLCV struct {
	Open   []*float64 `json:"open"`
	Close  []*float64 `json:"close"`
	High   []*float64 `json:"high"`
	Low    []*float64 `json:"low"`
	Volume []*int64   `json:"volume"`
}

// OptionsResponse represents the raw JSON response from the Yahoo Finance
// options API (query2 .../v7/finance/options/{symbol}). Only the embedded
// quote snapshot is consumed; the option chain itself is ignored.
type OptionsResponse struct {
	OptionChain OptionChain `json:"optionChain"`
}

// OptionChain is the top-level result container of an options response.
type OptionChain struct {
	Result []OptionResult `json:"result"`
	Error  *APIError      `json:"error"`
}

// OptionResult is a single options result; Quote is the market snapshot.
type OptionResult struct {
	Quote QuoteSnapshot `json:"quote"`
}

// QuoteSnapshot is the point-in-time quote embedded in an options response.
type QuoteSnapshot struct {
	Symbol             string  `json:"symbol"`
	ShortName          string  `json:"shortName"`
	LongName           string  `json:"longName"`
	RegularMarketPrice float64 `json:"regularMarketPrice"`
	PreviousClose      float64 `json:"regularMarketPreviousClose"`
	Exchange           string  `json:"exchange"`
	Currency           string  `json:"currency"`
}

// APIError is the error object Yahoo embeds in responses.
type APIError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}
