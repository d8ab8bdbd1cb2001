package service

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/stockfolio/backend/internal/api/request"
	"github.com/stockfolio/backend/internal/apperrors"
	"github.com/stockfolio/backend/internal/marketdata"
	"github.com/stockfolio/backend/internal/model"
	"github.com/stockfolio/backend/internal/repository"
	"github.com/stockfolio/backend/internal/secrets"
	"github.com/stockfolio/backend/internal/valuation"
)

// settingAPIKey is the settings-table key under which the encrypted
// market data API key is stored.
const settingAPIKey = "market_api_key"

// StockService handles stock-related business logic: the market stock
// snapshot, quote refreshes, price history lookups, synthetic trends
// and API key management for the market data provider.
type StockService struct {
	stockRepo   *repository.StockRepository
	settingRepo *repository.SettingRepository
	codec       *secrets.Codec
	market      marketdata.Client
	envAPIKey   string

	trendMu  sync.Mutex
	trendRng *rand.Rand
}

// NewStockService creates a new StockService. envAPIKey is the
// environment-supplied provider key, used when no key is stored.
func NewStockService(
	stockRepo *repository.StockRepository,
	settingRepo *repository.SettingRepository,
	codec *secrets.Codec,
	market marketdata.Client,
	envAPIKey string,
) *StockService {
	return &StockService{
		stockRepo:   stockRepo,
		settingRepo: settingRepo,
		codec:       codec,
		market:      market,
		envAPIKey:   envAPIKey,
		trendRng:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// SetTrendSource replaces the random source used for synthetic trends.
// Tests use this to make trend output deterministic.
func (s *StockService) SetTrendSource(rng *rand.Rand) {
	s.trendMu.Lock()
	s.trendRng = rng
	s.trendMu.Unlock()
}

// GetAllStocks retrieves the full market stock snapshot, sorted by symbol.
func (s *StockService) GetAllStocks() ([]model.Stock, error) {
	return s.stockRepo.GetStocks()
}

// GetStock retrieves a single stock by ID.
func (s *StockService) GetStock(stockID string) (model.Stock, error) {
	return s.stockRepo.GetStock(stockID)
}

// CreateStock adds a stock to the market snapshot. Symbols are stored
// uppercase and must be unique. When no company name is supplied the
// provider's profile name is used, falling back to the symbol itself.
func (s *StockService) CreateStock(ctx context.Context, req request.CreateStockRequest) (model.Stock, error) {
	symbol := strings.ToUpper(strings.TrimSpace(req.Symbol))

	companyName := strings.TrimSpace(req.CompanyName)
	if companyName == "" {
		companyName = s.lookupCompanyName(ctx, symbol)
	}

	stock := model.Stock{
		ID:            uuid.NewString(),
		Symbol:        symbol,
		CompanyName:   companyName,
		CurrentPrice:  req.CurrentPrice,
		ChangePercent: req.ChangePercent,
	}
	if err := s.stockRepo.InsertStock(ctx, stock); err != nil {
		return model.Stock{}, err
	}
	return s.stockRepo.GetStock(stock.ID)
}

// GetStockBySymbol retrieves a single stock by its ticker symbol.
// Lookup is case-insensitive.
func (s *StockService) GetStockBySymbol(symbol string) (model.Stock, error) {
	return s.stockRepo.GetStockBySymbol(strings.TrimSpace(symbol))
}

// lookupCompanyName resolves a display name for a symbol from the
// market data provider. Any failure degrades to the symbol itself so
// stock creation never depends on provider availability.
func (s *StockService) lookupCompanyName(ctx context.Context, symbol string) string {
	apiKey, err := s.resolveAPIKey("")
	if err != nil {
		return symbol
	}

	name, err := s.market.CompanyName(ctx, symbol, apiKey)
	if err != nil || strings.TrimSpace(name) == "" {
		log.Printf("company name lookup: %s: falling back to symbol: %v", symbol, err)
		return symbol
	}
	return name
}

// DeleteStock removes a stock from the market snapshot.
func (s *StockService) DeleteStock(ctx context.Context, stockID string) error {
	return s.stockRepo.DeleteStock(ctx, stockID)
}

// History fetches the daily close series for a symbol over the given
// range, keyed by YYYY-MM-DD. apiKeyOverride, when non-empty, takes
// precedence over the stored and environment keys.
func (s *StockService) History(ctx context.Context, symbol, rng, apiKeyOverride string) (map[string]float64, error) {
	if !marketdata.ValidRange(rng) {
		return nil, fmt.Errorf("%w: %q", apperrors.ErrInvalidRange, rng)
	}
	apiKey, err := s.resolveAPIKey(apiKeyOverride)
	if err != nil {
		return nil, err
	}
	return s.market.History(ctx, symbol, rng, apiKey)
}

// Trend produces a synthetic intraday price path for one stock, ending
// exactly at its current price.
func (s *StockService) Trend(stockID string, points int) ([]float64, error) {
	stock, err := s.stockRepo.GetStock(stockID)
	if err != nil {
		return nil, err
	}

	s.trendMu.Lock()
	defer s.trendMu.Unlock()
	trend := valuation.SyntheticTrend(stock.CurrentPrice, stock.ChangePercent, points, s.trendRng)
	for i := range trend {
		trend[i] = round2(trend[i])
	}
	return trend, nil
}

// RefreshQuotes fetches a fresh quote for every stock in the snapshot
// and updates its price and change percent. Individual failures are
// logged and skipped so one bad symbol does not stall the rest.
func (s *StockService) RefreshQuotes(ctx context.Context) {
	apiKey, err := s.resolveAPIKey("")
	if err != nil {
		log.Printf("quote refresh: no api key available: %v", err)
		return
	}

	stocks, err := s.stockRepo.GetStocks()
	if err != nil {
		log.Printf("quote refresh: listing stocks: %v", err)
		return
	}

	for _, stock := range stocks {
		quote, err := s.market.Quote(ctx, stock.Symbol, apiKey)
		if err != nil {
			log.Printf("quote refresh: %s: %v", stock.Symbol, err)
			continue
		}
		if quote.CurrentPrice <= 0 {
			continue
		}
		if err := s.stockRepo.UpdateQuote(ctx, stock.ID, round2(quote.CurrentPrice), round2(quote.ChangePercent)); err != nil {
			log.Printf("quote refresh: storing %s: %v", stock.Symbol, err)
		}
	}
}

// SetAPIKey encrypts and stores the market data API key.
func (s *StockService) SetAPIKey(ctx context.Context, apiKey string) error {
	encrypted, err := s.codec.Encrypt(apiKey)
	if err != nil {
		return err
	}
	return s.settingRepo.Set(ctx, settingAPIKey, encrypted)
}

// resolveAPIKey picks the provider key to use: an explicit override
// wins, then the stored (encrypted) key, then the environment key.
func (s *StockService) resolveAPIKey(override string) (string, error) {
	if override != "" {
		return override, nil
	}

	stored, err := s.settingRepo.Get(settingAPIKey)
	if err == nil {
		decrypted, derr := s.codec.Decrypt(stored)
		if derr == nil {
			return decrypted, nil
		}
		log.Printf("api key: stored key unreadable, falling back: %v", derr)
	}

	if s.envAPIKey != "" {
		return s.envAPIKey, nil
	}
	return "", fmt.Errorf("no market data api key configured")
}
