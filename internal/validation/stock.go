package validation

import (
	"strings"

	"github.com/stockfolio/backend/internal/api/request"
)

// ValidateCreateStock validates a market stock creation request.
//
// Required fields:
//   - symbol: non-empty, at most 10 characters
//   - currentPrice: positive
//
// companyName is optional; when omitted, the service resolves one from
// the market data provider. changePercent may be any value including 0
// (absent change is treated as 0 by the model).
func ValidateCreateStock(req request.CreateStockRequest) error {
	errors := make(map[string]string)

	symbol := strings.TrimSpace(req.Symbol)
	if symbol == "" {
		errors["symbol"] = "symbol is required"
	} else if len(symbol) > 10 {
		errors["symbol"] = "symbol must be at most 10 characters"
	}

	if req.CurrentPrice <= 0.0 {
		errors["currentPrice"] = "currentPrice must be positive"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}
