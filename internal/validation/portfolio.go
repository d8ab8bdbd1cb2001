package validation

import (
	"strings"

	"github.com/stockfolio/backend/internal/api/request"
)

// ValidateCreatePortfolio validates a portfolio creation request.
// Name is required; description is optional.
func ValidateCreatePortfolio(req request.CreatePortfolioRequest) error {
	errors := make(map[string]string)

	if strings.TrimSpace(req.Name) == "" {
		errors["name"] = "name is required"
	} else if len(req.Name) > 100 {
		errors["name"] = "name must be at most 100 characters"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}
