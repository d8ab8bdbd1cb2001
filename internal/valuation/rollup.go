package valuation

import "github.com/stockfolio/backend/internal/model"

// PortfolioHoldings pairs a portfolio with its derived holdings. Input
// shape for cross-portfolio rollups.
type PortfolioHoldings struct {
	Portfolio model.Portfolio
	Holdings  []model.Holding
}

// AggregateHoldings sums one portfolio's holdings into its current
// market value and invested capital.
func AggregateHoldings(holdings []model.Holding) (value, invested float64) {
	for _, h := range holdings {
		value += h.CurrentValue
		invested += h.AvgPrice * h.Quantity
	}
	return value, invested
}

// Aggregate combines holdings across portfolios into book-level totals.
//
// Profit is always TotalCurrentValue - TotalInvestedValue; profit
// percent is defined as 0 when invested value is 0 so callers never
// divide by zero themselves. The symbol map sums current value by
// symbol (not stock ID) across all portfolios, so identical symbols
// under different stock records collapse into one allocation bucket.
func Aggregate(portfolios []PortfolioHoldings) model.AggregateTotals {
	totals := model.AggregateTotals{
		SymbolValues: map[string]float64{},
		Portfolios:   []model.PortfolioValuation{},
	}

	for _, ph := range portfolios {
		value, invested := AggregateHoldings(ph.Holdings)
		totals.TotalCurrentValue += value
		totals.TotalInvestedValue += invested
		totals.Portfolios = append(totals.Portfolios, model.PortfolioValuation{
			ID:            ph.Portfolio.ID,
			Name:          ph.Portfolio.Name,
			Description:   ph.Portfolio.Description,
			CurrentValue:  value,
			InvestedValue: invested,
		})

		for _, h := range ph.Holdings {
			totals.SymbolValues[h.Symbol] += h.CurrentValue
		}
	}

	totals.Profit = totals.TotalCurrentValue - totals.TotalInvestedValue
	if totals.TotalInvestedValue > 0 {
		totals.ProfitPercent = totals.Profit / totals.TotalInvestedValue * 100
	}
	return totals
}

// DistinctBySymbol flattens holdings across portfolios keeping only the
// first holding seen per symbol, in portfolio iteration order. Later
// duplicates are dropped even when their quantities differ; this is a
// presentation simplification for cross-portfolio charts. Callers that
// need exact per-symbol quantities should aggregate by symbol instead.
func DistinctBySymbol(portfolios []PortfolioHoldings) []model.Holding {
	seen := make(map[string]bool)
	distinct := []model.Holding{}
	for _, ph := range portfolios {
		for _, h := range ph.Holdings {
			if seen[h.Symbol] {
				continue
			}
			seen[h.Symbol] = true
			distinct = append(distinct, h)
		}
	}
	return distinct
}
