// Package valuation implements the holdings valuation and aggregation
// engine: cost-basis tracking, holdings construction, portfolio rollups,
// multi-symbol time-series merges, and synthetic trend generation.
//
// Every function in this package is a pure, synchronous transform over
// explicitly supplied snapshots. Nothing here performs I/O, holds global
// state, or requires locking; callers may invoke any of it concurrently
// on independent inputs.
package valuation

import (
	"github.com/stockfolio/backend/internal/apperrors"
	"github.com/stockfolio/backend/internal/model"
)

// Position tracks a running quantity and total cost for a single
// (portfolio, stock) pair under the weighted-average cost method.
// The zero value is an empty position, ready for use.
type Position struct {
	Quantity  float64
	TotalCost float64
}

// Buy applies a purchase: quantity grows by amount and total cost grows
// by amount times price.
func (p *Position) Buy(amount, pricePerUnit float64) {
	p.Quantity += amount
	p.TotalCost += amount * pricePerUnit
}

// Sell applies a sale priced against the running average purchase cost.
// A sale that exceeds the currently held quantity is rejected with
// apperrors.ErrInsufficientHoldings and leaves the position unchanged.
// The sale price itself does not enter cost basis; under the
// weighted-average method cost is relieved at the running average.
func (p *Position) Sell(amount float64) error {
	if p.Quantity <= 0 || amount > p.Quantity {
		return apperrors.ErrInsufficientHoldings
	}
	avg := p.TotalCost / p.Quantity
	p.TotalCost -= amount * avg
	p.Quantity -= amount
	return nil
}

// AvgPrice returns the running average purchase cost, or 0 when the
// position is empty.
func (p *Position) AvgPrice() float64 {
	if p.Quantity <= 0 {
		return 0
	}
	return p.TotalCost / p.Quantity
}

// Apply folds a single transaction into the position. SELL rejections
// surface as apperrors.ErrInsufficientHoldings with state unchanged.
func (p *Position) Apply(t model.Transaction) error {
	switch t.Type {
	case model.TransactionBuy:
		p.Buy(t.Amount, t.PricePerUnit)
		return nil
	case model.TransactionSell:
		return p.Sell(t.Amount)
	}
	// Unknown types are ignored; the store only ever records BUY/SELL.
	return nil
}

// Replay folds an ordered transaction sequence into a position.
//
// Replay is total: a SELL that cannot be applied (position empty, or
// amount exceeding the held quantity) is skipped rather than aborting
// the fold, so valuation over an existing log never fails on historical
// bad rows. The write path is expected to reject such sells up front;
// Replay merely refuses to let them corrupt the running state. The
// number of skipped transactions is returned alongside the position.
func Replay(transactions []model.Transaction) (Position, int) {
	var pos Position
	skipped := 0
	for _, t := range transactions {
		if err := pos.Apply(t); err != nil {
			skipped++
		}
	}
	return pos, skipped
}
