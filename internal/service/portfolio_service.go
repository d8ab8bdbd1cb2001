package service

import (
	"context"
	"fmt"
	"log"
	"sort"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/stockfolio/backend/internal/api/request"
	"github.com/stockfolio/backend/internal/apperrors"
	"github.com/stockfolio/backend/internal/marketdata"
	"github.com/stockfolio/backend/internal/model"
	"github.com/stockfolio/backend/internal/repository"
	"github.com/stockfolio/backend/internal/valuation"
)

// DefaultPerformanceTop is how many holdings (by current value) the
// performance endpoint charts when the caller does not say otherwise.
const DefaultPerformanceTop = 5

// PortfolioService handles portfolio-related business logic: CRUD plus
// the derived read models (holdings, cross-portfolio summary and the
// merged performance time series).
type PortfolioService struct {
	portfolioRepo   *repository.PortfolioRepository
	transactionRepo *repository.TransactionRepository
	stockRepo       *repository.StockRepository
	stockService    *StockService
}

// NewPortfolioService creates a new PortfolioService with the provided dependencies.
func NewPortfolioService(
	portfolioRepo *repository.PortfolioRepository,
	transactionRepo *repository.TransactionRepository,
	stockRepo *repository.StockRepository,
	stockService *StockService,
) *PortfolioService {
	return &PortfolioService{
		portfolioRepo:   portfolioRepo,
		transactionRepo: transactionRepo,
		stockRepo:       stockRepo,
		stockService:    stockService,
	}
}

// GetAllPortfolios retrieves every portfolio, oldest first.
func (s *PortfolioService) GetAllPortfolios() ([]model.Portfolio, error) {
	return s.portfolioRepo.GetPortfolios()
}

// GetPortfolio retrieves a single portfolio by ID.
func (s *PortfolioService) GetPortfolio(portfolioID string) (model.Portfolio, error) {
	return s.portfolioRepo.GetPortfolio(portfolioID)
}

// CreatePortfolio creates a new, empty portfolio.
func (s *PortfolioService) CreatePortfolio(ctx context.Context, req request.CreatePortfolioRequest) (model.Portfolio, error) {
	portfolio := model.Portfolio{
		ID:          uuid.NewString(),
		Name:        req.Name,
		Description: req.Description,
	}
	if err := s.portfolioRepo.InsertPortfolio(ctx, portfolio); err != nil {
		return model.Portfolio{}, err
	}
	return s.portfolioRepo.GetPortfolio(portfolio.ID)
}

// DeletePortfolio removes a portfolio and, through the schema's
// cascade, its transactions.
func (s *PortfolioService) DeletePortfolio(ctx context.Context, portfolioID string) error {
	return s.portfolioRepo.DeletePortfolio(ctx, portfolioID)
}

// Holdings derives the current holdings of one portfolio from its
// transaction history and the market stock snapshot. Monetary fields
// are rounded to two decimals on the way out.
func (s *PortfolioService) Holdings(portfolioID string) ([]model.Holding, error) {
	if _, err := s.portfolioRepo.GetPortfolio(portfolioID); err != nil {
		return nil, err
	}

	transactions, err := s.transactionRepo.GetTransactionsForPortfolio(portfolioID)
	if err != nil {
		return nil, err
	}
	stocks, err := s.stockRepo.GetStocks()
	if err != nil {
		return nil, err
	}

	holdings := valuation.BuildHoldings(transactions, stocks)
	for i := range holdings {
		holdings[i].AvgPrice = round2(holdings[i].AvgPrice)
		holdings[i].CurrentValue = round2(holdings[i].CurrentValue)
	}
	return holdings, nil
}

// Summary aggregates every portfolio into one cross-portfolio view:
// total current value, total invested value, absolute and relative
// profit, the per-symbol value allocation and per-portfolio totals.
func (s *PortfolioService) Summary() (model.AggregateTotals, error) {
	grouped, err := s.holdingsByPortfolio()
	if err != nil {
		return model.AggregateTotals{}, err
	}

	totals := valuation.Aggregate(grouped)
	totals.TotalCurrentValue = round2(totals.TotalCurrentValue)
	totals.TotalInvestedValue = round2(totals.TotalInvestedValue)
	totals.Profit = round2(totals.Profit)
	totals.ProfitPercent = round2(totals.ProfitPercent)
	for symbol, value := range totals.SymbolValues {
		totals.SymbolValues[symbol] = round2(value)
	}
	for i := range totals.Portfolios {
		totals.Portfolios[i].CurrentValue = round2(totals.Portfolios[i].CurrentValue)
		totals.Portfolios[i].InvestedValue = round2(totals.Portfolios[i].InvestedValue)
	}
	return totals, nil
}

// Performance builds the merged market-value / invested-value series
// for the top N holdings across all portfolios, over the given range.
//
// Histories are fetched concurrently, one request per symbol. A symbol
// whose fetch fails is dropped from the chart rather than failing the
// whole request; a fully failed fetch set yields an empty series.
func (s *PortfolioService) Performance(ctx context.Context, rng string, top int) (model.MergedSeries, error) {
	if !marketdata.ValidRange(rng) {
		return model.MergedSeries{}, fmt.Errorf("%w: %q", apperrors.ErrInvalidRange, rng)
	}
	if top <= 0 {
		top = DefaultPerformanceTop
	}

	grouped, err := s.holdingsByPortfolio()
	if err != nil {
		return model.MergedSeries{}, err
	}

	distinct := valuation.DistinctBySymbol(grouped)
	sort.SliceStable(distinct, func(i, j int) bool {
		return distinct[i].CurrentValue > distinct[j].CurrentValue
	})
	if len(distinct) > top {
		distinct = distinct[:top]
	}

	var (
		mu     sync.Mutex
		series []valuation.SymbolSeries
	)
	g, gctx := errgroup.WithContext(ctx)
	for _, holding := range distinct {
		g.Go(func() error {
			history, err := s.stockService.History(gctx, holding.Symbol, rng, "")
			if err != nil {
				log.Printf("performance: skipping %s: %v", holding.Symbol, err)
				return nil
			}
			mu.Lock()
			series = append(series, valuation.SymbolSeries{
				Symbol:   holding.Symbol,
				Quantity: holding.Quantity,
				AvgPrice: holding.AvgPrice,
				History:  history,
			})
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return model.MergedSeries{}, err
	}

	merged := valuation.MergeSeries(series)
	for i := range merged.MarketValue {
		merged.MarketValue[i] = round2(merged.MarketValue[i])
		merged.Invested[i] = round2(merged.Invested[i])
	}
	return merged, nil
}

// holdingsByPortfolio derives holdings for every portfolio in one pass
// over the stock snapshot.
func (s *PortfolioService) holdingsByPortfolio() ([]valuation.PortfolioHoldings, error) {
	portfolios, err := s.portfolioRepo.GetPortfolios()
	if err != nil {
		return nil, err
	}
	stocks, err := s.stockRepo.GetStocks()
	if err != nil {
		return nil, err
	}

	grouped := make([]valuation.PortfolioHoldings, 0, len(portfolios))
	for _, portfolio := range portfolios {
		transactions, err := s.transactionRepo.GetTransactionsForPortfolio(portfolio.ID)
		if err != nil {
			return nil, err
		}
		grouped = append(grouped, valuation.PortfolioHoldings{
			Portfolio: portfolio,
			Holdings:  valuation.BuildHoldings(transactions, stocks),
		})
	}
	return grouped, nil
}
