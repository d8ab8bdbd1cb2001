package testutil

import (
	"database/sql"
	"math/rand"
	"testing"

	"github.com/stockfolio/backend/internal/marketdata"
	"github.com/stockfolio/backend/internal/repository"
	"github.com/stockfolio/backend/internal/secrets"
	"github.com/stockfolio/backend/internal/service"
)

// TrendSeed seeds the stock service's trend source in tests so
// synthetic trends are reproducible.
const TrendSeed = 1

// NewTestSecretsCodec returns a codec with a throwaway key.
func NewTestSecretsCodec(t *testing.T) *secrets.Codec {
	t.Helper()

	codec, err := secrets.NewEphemeralCodec()
	if err != nil {
		t.Fatalf("Failed to create test secrets codec: %v", err)
	}
	return codec
}

// NewTestStockService wires a StockService against the given database
// and canned market client, with a seeded trend source.
func NewTestStockService(t *testing.T, db *sql.DB, market marketdata.Client) *service.StockService {
	t.Helper()

	stockRepo := repository.NewStockRepository(db)
	settingRepo := repository.NewSettingRepository(db)

	svc := service.NewStockService(stockRepo, settingRepo, NewTestSecretsCodec(t), market, "test-api-key")
	svc.SetTrendSource(rand.New(rand.NewSource(TrendSeed)))
	return svc
}

// NewTestTransactionService wires a TransactionService against the given database.
func NewTestTransactionService(t *testing.T, db *sql.DB) *service.TransactionService {
	t.Helper()

	transactionRepo := repository.NewTransactionRepository(db)
	portfolioRepo := repository.NewPortfolioRepository(db)
	stockRepo := repository.NewStockRepository(db)

	return service.NewTransactionService(
		transactionRepo,
		portfolioRepo,
		stockRepo,
	)
}

// NewTestPortfolioService wires a PortfolioService against the given
// database and canned market client.
func NewTestPortfolioService(t *testing.T, db *sql.DB, market marketdata.Client) *service.PortfolioService {
	t.Helper()

	portfolioRepo := repository.NewPortfolioRepository(db)
	transactionRepo := repository.NewTransactionRepository(db)
	stockRepo := repository.NewStockRepository(db)

	return service.NewPortfolioService(
		portfolioRepo,
		transactionRepo,
		stockRepo,
		NewTestStockService(t, db, market),
	)
}

// NewTestWatchlistService wires a WatchlistService against the given database.
func NewTestWatchlistService(t *testing.T, db *sql.DB) *service.WatchlistService {
	t.Helper()

	watchlistRepo := repository.NewWatchlistRepository(db)
	stockRepo := repository.NewStockRepository(db)

	return service.NewWatchlistService(watchlistRepo, stockRepo)
}
