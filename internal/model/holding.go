package model

// Holding is a derived record describing how much of one stock a
// portfolio currently owns and at what average cost. Holdings are
// recomputed on demand from the transaction log plus a market snapshot
// and are never persisted or mutated in place. A holding exists only
// when its computed quantity is strictly positive.
type Holding struct {
	StockID      string  `json:"stockId"`
	Symbol       string  `json:"symbol"`
	CompanyName  string  `json:"companyName"`
	Quantity     float64 `json:"quantity"`
	AvgPrice     float64 `json:"avgPrice"`
	CurrentPrice float64 `json:"currentPrice"`
	CurrentValue float64 `json:"currentValue"`
}

// MergedSeries is the output of the multi-symbol time-series merge:
// portfolio market value over the sorted union of input dates, plus a
// flat invested-capital reference line of equal length.
type MergedSeries struct {
	Dates       []string  `json:"dates"`
	MarketValue []float64 `json:"marketValue"`
	Invested    []float64 `json:"invested"`
}
