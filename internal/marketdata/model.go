package marketdata

// Quote represents a current market snapshot for one symbol, already
// converted into the display currency.
type Quote struct {
	Symbol        string
	CurrentPrice  float64
	ChangePercent float64
}

// quoteResponse maps the raw Finnhub /quote payload.
// Fields: c = current price, d = change, dp = change percent,
// h/l/o = high/low/open, pc = previous close, t = timestamp.
type quoteResponse struct {
	Current       float64 `json:"c"`
	Change        float64 `json:"d"`
	ChangePercent float64 `json:"dp"`
	High          float64 `json:"h"`
	Low           float64 `json:"l"`
	Open          float64 `json:"o"`
	PreviousClose float64 `json:"pc"`
	Timestamp     int64   `json:"t"`
}

// profileResponse maps the raw Finnhub /stock/profile2 payload.
// Only the company name is used.
type profileResponse struct {
	Name string `json:"name"`
}

// candleResponse maps the raw Finnhub /stock/candle payload.
// S is "ok" or "no_data"; Close and Timestamp are parallel arrays.
type candleResponse struct {
	Close     []float64 `json:"c"`
	Timestamp []int64   `json:"t"`
	Status    string    `json:"s"`
}
