package valuation

import (
	"sort"

	"github.com/stockfolio/backend/internal/model"
)

// BuildHoldings derives the current holdings of one portfolio from its
// transaction log and a market snapshot.
//
// Transactions are grouped by stock ID and folded in supplied order
// through the cost-basis tracker. A group is emitted as a Holding only
// when its computed quantity is strictly positive AND its stock ID
// resolves against the snapshot; positions that are closed, oversold
// into rejection, or reference an unknown stock are silently excluded.
// That is a filtering rule, not an error: market data is the source of
// truth for identity and price.
//
// Output is ordered by symbol for stable presentation. Pure function of
// its inputs; empty input yields an empty, non-nil slice.
func BuildHoldings(transactions []model.Transaction, stocks []model.Stock) []model.Holding {
	byStock := make(map[string][]model.Transaction)
	for _, t := range transactions {
		byStock[t.StockID] = append(byStock[t.StockID], t)
	}

	stockByID := make(map[string]model.Stock, len(stocks))
	for _, s := range stocks {
		stockByID[s.ID] = s
	}

	holdings := []model.Holding{}
	for stockID, txs := range byStock {
		pos, _ := Replay(txs)
		if pos.Quantity <= 0 {
			continue
		}
		stock, ok := stockByID[stockID]
		if !ok {
			continue
		}
		holdings = append(holdings, model.Holding{
			StockID:      stock.ID,
			Symbol:       stock.Symbol,
			CompanyName:  stock.CompanyName,
			Quantity:     pos.Quantity,
			AvgPrice:     pos.AvgPrice(),
			CurrentPrice: stock.CurrentPrice,
			CurrentValue: pos.Quantity * stock.CurrentPrice,
		})
	}

	sort.Slice(holdings, func(i, j int) bool {
		return holdings[i].Symbol < holdings[j].Symbol
	})
	return holdings
}
