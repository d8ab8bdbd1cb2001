package model

import "time"

// Watchlist represents a named list of stocks a user keeps an eye on.
// Watchlist membership has no effect on valuation; it is a convenience
// grouping over market stocks.
type Watchlist struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
	Stocks    []Stock   `json:"stocks"`
}
