package valuation

import (
	"sort"

	"github.com/stockfolio/backend/internal/model"
)

// SymbolSeries is one symbol's contribution to a merged performance
// chart: a static quantity and average price plus that symbol's
// historical prices keyed by date. Dates must be in a fixed-width
// canonical format (YYYY-MM-DD) so that lexicographic order matches
// chronological order; the history provider boundary enforces this.
type SymbolSeries struct {
	Symbol   string
	Quantity float64
	AvgPrice float64
	History  map[string]float64
}

// MergeSeries aligns several symbols' price histories on the sorted
// union of their dates and produces a combined value-over-time series.
//
// For each date, every symbol with a price on that date contributes
// price times quantity; symbols missing a price contribute 0 for that
// date (no interpolation or carry-forward). The invested line is the
// flat sum of avgPrice times quantity repeated once per date.
//
// An empty symbol set yields an empty result (no chart). O(symbols x
// dates); callers cap the symbol count (top-N by value) before merging
// since each series costs an upstream history fetch.
func MergeSeries(series []SymbolSeries) model.MergedSeries {
	merged := model.MergedSeries{
		Dates:       []string{},
		MarketValue: []float64{},
		Invested:    []float64{},
	}
	if len(series) == 0 {
		return merged
	}

	dateSet := make(map[string]bool)
	for _, s := range series {
		for date := range s.History {
			dateSet[date] = true
		}
	}

	dates := make([]string, 0, len(dateSet))
	for date := range dateSet {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	var invested float64
	for _, s := range series {
		invested += s.AvgPrice * s.Quantity
	}

	marketValue := make([]float64, len(dates))
	investedLine := make([]float64, len(dates))
	for i, date := range dates {
		var total float64
		for _, s := range series {
			if price, ok := s.History[date]; ok {
				total += price * s.Quantity
			}
		}
		marketValue[i] = total
		investedLine[i] = invested
	}

	merged.Dates = dates
	merged.MarketValue = marketValue
	merged.Invested = investedLine
	return merged
}
