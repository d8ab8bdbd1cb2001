package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/stockfolio/backend/internal/api/request"
	"github.com/stockfolio/backend/internal/model"
	"github.com/stockfolio/backend/internal/repository"
)

// WatchlistService handles watchlist-related business logic.
type WatchlistService struct {
	watchlistRepo *repository.WatchlistRepository
	stockRepo     *repository.StockRepository
}

// NewWatchlistService creates a new WatchlistService with the provided repository dependencies.
func NewWatchlistService(watchlistRepo *repository.WatchlistRepository, stockRepo *repository.StockRepository) *WatchlistService {
	return &WatchlistService{watchlistRepo: watchlistRepo, stockRepo: stockRepo}
}

// GetAllWatchlists retrieves every watchlist with its member stocks.
func (s *WatchlistService) GetAllWatchlists() ([]model.Watchlist, error) {
	return s.watchlistRepo.GetWatchlists()
}

// GetWatchlist retrieves a single watchlist by ID.
func (s *WatchlistService) GetWatchlist(watchlistID string) (model.Watchlist, error) {
	return s.watchlistRepo.GetWatchlist(watchlistID)
}

// CreateWatchlist creates a new, empty watchlist.
func (s *WatchlistService) CreateWatchlist(ctx context.Context, req request.CreateWatchlistRequest) (model.Watchlist, error) {
	watchlist := model.Watchlist{
		ID:   uuid.NewString(),
		Name: req.Name,
	}
	if err := s.watchlistRepo.InsertWatchlist(ctx, watchlist); err != nil {
		return model.Watchlist{}, err
	}
	return s.watchlistRepo.GetWatchlist(watchlist.ID)
}

// RenameWatchlist changes a watchlist's name.
func (s *WatchlistService) RenameWatchlist(ctx context.Context, watchlistID string, req request.UpdateWatchlistRequest) (model.Watchlist, error) {
	if err := s.watchlistRepo.RenameWatchlist(ctx, watchlistID, req.Name); err != nil {
		return model.Watchlist{}, err
	}
	return s.watchlistRepo.GetWatchlist(watchlistID)
}

// DeleteWatchlist removes a watchlist and its memberships.
func (s *WatchlistService) DeleteWatchlist(ctx context.Context, watchlistID string) error {
	if _, err := s.watchlistRepo.GetWatchlist(watchlistID); err != nil {
		return err
	}
	return s.watchlistRepo.DeleteWatchlist(ctx, watchlistID)
}

// AddStock adds a stock to a watchlist. Adding a stock that is already
// on the list is a no-op.
func (s *WatchlistService) AddStock(ctx context.Context, watchlistID, stockID string) (model.Watchlist, error) {
	if _, err := s.watchlistRepo.GetWatchlist(watchlistID); err != nil {
		return model.Watchlist{}, err
	}
	if _, err := s.stockRepo.GetStock(stockID); err != nil {
		return model.Watchlist{}, err
	}
	if err := s.watchlistRepo.AddStock(ctx, watchlistID, stockID); err != nil {
		return model.Watchlist{}, err
	}
	return s.watchlistRepo.GetWatchlist(watchlistID)
}

// RemoveStock removes a stock from a watchlist.
func (s *WatchlistService) RemoveStock(ctx context.Context, watchlistID, stockID string) (model.Watchlist, error) {
	if _, err := s.watchlistRepo.GetWatchlist(watchlistID); err != nil {
		return model.Watchlist{}, err
	}
	if err := s.watchlistRepo.RemoveStock(ctx, watchlistID, stockID); err != nil {
		return model.Watchlist{}, err
	}
	return s.watchlistRepo.GetWatchlist(watchlistID)
}
