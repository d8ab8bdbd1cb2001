package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/stockfolio/backend/internal/api/request"
	"github.com/stockfolio/backend/internal/apperrors"
	"github.com/stockfolio/backend/internal/model"
	"github.com/stockfolio/backend/internal/repository"
	"github.com/stockfolio/backend/internal/validation"
	"github.com/stockfolio/backend/internal/valuation"
)

// TransactionService handles transaction-related business logic.
// It owns the oversell gate: a SELL whose amount exceeds the currently
// tracked quantity for its (portfolio, stock) pair is rejected before
// it ever reaches the store, so the recorded log stays replayable.
type TransactionService struct {
	transactionRepo *repository.TransactionRepository
	portfolioRepo   *repository.PortfolioRepository
	stockRepo       *repository.StockRepository
}

// NewTransactionService creates a new TransactionService with the provided repository dependencies.
func NewTransactionService(
	transactionRepo *repository.TransactionRepository,
	portfolioRepo *repository.PortfolioRepository,
	stockRepo *repository.StockRepository,
) *TransactionService {
	return &TransactionService{
		transactionRepo: transactionRepo,
		portfolioRepo:   portfolioRepo,
		stockRepo:       stockRepo,
	}
}

// GetAllTransactions retrieves every transaction with stock identity, in replay order.
func (s *TransactionService) GetAllTransactions() ([]model.TransactionResponse, error) {
	return s.transactionRepo.GetAllTransactions()
}

// GetTransactionsForPortfolio retrieves one portfolio's transactions in replay order.
func (s *TransactionService) GetTransactionsForPortfolio(portfolioID string) ([]model.Transaction, error) {
	return s.transactionRepo.GetTransactionsForPortfolio(portfolioID)
}

// GetTransaction retrieves a single transaction by ID.
func (s *TransactionService) GetTransaction(transactionID string) (model.Transaction, error) {
	return s.transactionRepo.GetTransaction(transactionID)
}

// CreateTransaction records a new buy or sell.
//
// Both the portfolio and the stock must exist. For a SELL, the current
// position is replayed from the stored history and the requested amount
// must not exceed the tracked quantity; otherwise the request fails
// with apperrors.ErrInsufficientHoldings and nothing is recorded.
// A missing date means the store assigns today (UTC).
func (s *TransactionService) CreateTransaction(ctx context.Context, req request.CreateTransactionRequest) (model.Transaction, error) {
	if _, err := s.portfolioRepo.GetPortfolio(req.PortfolioID); err != nil {
		return model.Transaction{}, err
	}
	if _, err := s.stockRepo.GetStock(req.StockID); err != nil {
		return model.Transaction{}, err
	}

	if req.Type == model.TransactionSell {
		if err := s.checkSufficientHoldings(req); err != nil {
			return model.Transaction{}, err
		}
	}

	date := time.Now().UTC()
	if req.Date != nil && strings.TrimSpace(*req.Date) != "" {
		parsed, err := validation.ParseTime(*req.Date)
		if err != nil {
			return model.Transaction{}, err
		}
		date = parsed
	}

	transaction := model.Transaction{
		ID:           uuid.NewString(),
		PortfolioID:  req.PortfolioID,
		StockID:      req.StockID,
		Type:         req.Type,
		Amount:       req.Amount,
		PricePerUnit: req.PricePerUnit,
		Date:         date,
	}

	if err := s.transactionRepo.InsertTransaction(ctx, transaction); err != nil {
		return model.Transaction{}, err
	}

	return transaction, nil
}

// DeleteTransaction removes a transaction by ID.
func (s *TransactionService) DeleteTransaction(ctx context.Context, transactionID string) error {
	if _, err := s.transactionRepo.GetTransaction(transactionID); err != nil {
		return err
	}
	return s.transactionRepo.DeleteTransaction(ctx, transactionID)
}

// checkSufficientHoldings replays the position's stored history and
// rejects the sale when it exceeds the tracked quantity.
func (s *TransactionService) checkSufficientHoldings(req request.CreateTransactionRequest) error {
	history, err := s.transactionRepo.GetTransactionsForPosition(req.PortfolioID, req.StockID)
	if err != nil {
		return err
	}
	pos, _ := valuation.Replay(history)
	if req.Amount > pos.Quantity {
		return fmt.Errorf("%w: have %g, want to sell %g", apperrors.ErrInsufficientHoldings, pos.Quantity, req.Amount)
	}
	return nil
}
