package apperrors

import "errors"

// Domain entity errors represent missing entities in the system.
// These errors indicate that a requested resource does not exist.
var (
	// ErrPortfolioNotFound indicates that a portfolio with the given ID does not exist.
	ErrPortfolioNotFound = errors.New("portfolio not found")

	// ErrStockNotFound indicates that a stock with the given ID or symbol does not exist.
	ErrStockNotFound = errors.New("stock not found")

	// ErrTransactionNotFound indicates that a transaction with the given ID does not exist.
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrWatchlistNotFound indicates that a watchlist with the given ID does not exist.
	ErrWatchlistNotFound = errors.New("watchlist not found")

	// ErrSettingNotFound indicates that a settings key has no stored value.
	ErrSettingNotFound = errors.New("setting not found")
)

// Business logic errors represent validation failures or constraint violations.
var (
	// ErrInsufficientHoldings indicates that a sell transaction cannot be
	// recorded because the portfolio does not hold enough of the stock.
	ErrInsufficientHoldings = errors.New("insufficient holdings for sale")

	// ErrDuplicateSymbol indicates that a stock with the same symbol already exists.
	ErrDuplicateSymbol = errors.New("stock symbol already exists")

	// ErrInvalidUUID indicates that a provided ID is not a valid UUID format.
	ErrInvalidUUID = errors.New("invalid UUID format")

	// ErrInvalidRange indicates an unsupported history range token.
	ErrInvalidRange = errors.New("invalid history range")
)

// Operation failure errors represent system-level failures when
// retrieving or processing data, as opposed to missing entities or
// validation issues.
var (
	ErrFailedToRetrievePortfolios   = errors.New("failed to retrieve portfolios")
	ErrFailedToRetrieveStocks       = errors.New("failed to retrieve stocks")
	ErrFailedToRetrieveTransactions = errors.New("failed to retrieve transactions")
	ErrFailedToRetrieveWatchlists   = errors.New("failed to retrieve watchlists")
	ErrFailedToGetHoldings          = errors.New("failed to compute holdings")
	ErrFailedToGetSummary           = errors.New("failed to compute portfolio summary")
	ErrFailedToGetPerformance       = errors.New("failed to compute performance series")
	ErrFailedToFetchHistory         = errors.New("failed to fetch price history")
	ErrFailedToFetchQuote           = errors.New("failed to fetch quote")
)
