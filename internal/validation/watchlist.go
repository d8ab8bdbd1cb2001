package validation

import (
	"strings"

	"github.com/stockfolio/backend/internal/api/request"
)

// ValidateCreateWatchlist validates a watchlist creation request.
func ValidateCreateWatchlist(req request.CreateWatchlistRequest) error {
	errors := make(map[string]string)

	if strings.TrimSpace(req.Name) == "" {
		errors["name"] = "name is required"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}

// ValidateUpdateWatchlist validates a watchlist rename request.
func ValidateUpdateWatchlist(req request.UpdateWatchlistRequest) error {
	errors := make(map[string]string)

	if strings.TrimSpace(req.Name) == "" {
		errors["name"] = "name is required"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}
