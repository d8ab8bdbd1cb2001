package validation

import (
	"fmt"
	"strings"
	"time"

	"github.com/stockfolio/backend/internal/api/request"
	"github.com/stockfolio/backend/internal/model"
)

// ValidTransactionType contains the allowed transaction type values.
var ValidTransactionType = map[string]bool{
	model.TransactionBuy: true, model.TransactionSell: true,
}

// ValidateCreateTransaction validates a transaction creation request.
// Checks all required fields and validates their formats and constraints.
//
// Required fields:
//   - portfolioId: Must be a valid UUID
//   - stockId: Must be a valid UUID
//   - transactionType: Must be BUY or SELL
//   - amount: Must be positive
//   - pricePerUnit: Must be positive
//
// transactionDate is optional; when present it must be YYYY-MM-DD or
// RFC3339. A missing date means the store assigns today.
//
// Whether a SELL exceeds current holdings is NOT checked here. That
// requires the transaction history and is enforced by the transaction
// service before the row is recorded.
func ValidateCreateTransaction(req request.CreateTransactionRequest) error {
	errors := make(map[string]string)

	if err := ValidateUUID(req.PortfolioID); err != nil {
		return err
	}
	if err := ValidateUUID(req.StockID); err != nil {
		return err
	}

	if strings.TrimSpace(req.Type) == "" {
		errors["transactionType"] = "type is required"
	} else if !ValidTransactionType[req.Type] {
		errors["transactionType"] = fmt.Sprintf("invalid type: %s", req.Type)
	}

	if req.Amount <= 0.0 {
		errors["amount"] = "amount must be positive"
	}

	if req.PricePerUnit <= 0.0 {
		errors["pricePerUnit"] = "pricePerUnit must be positive"
	}

	if req.Date != nil && strings.TrimSpace(*req.Date) != "" {
		if _, err := ParseTime(*req.Date); err != nil {
			errors["transactionDate"] = err.Error()
		}
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}

// ParseTime parses a date string in "2006-01-02" or RFC3339 format.
// Mirrors repository.ParseTime; kept local to avoid a cross-layer import.
func ParseTime(str string) (time.Time, error) {
	returnTime, err := time.Parse("2006-01-02", str)
	if err != nil {
		returnTime, err = time.Parse(time.RFC3339, str)
		if err != nil {
			return time.Time{}, fmt.Errorf("failed to parse date: %w", err)
		}
	}
	return returnTime.UTC(), nil
}
