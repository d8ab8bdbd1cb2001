package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/stockfolio/backend/internal/api/request"
	"github.com/stockfolio/backend/internal/api/response"
	"github.com/stockfolio/backend/internal/apperrors"
	"github.com/stockfolio/backend/internal/service"
	"github.com/stockfolio/backend/internal/validation"
)

// defaultPerformanceRange is used when the performance endpoint is
// called without an explicit range query parameter.
const defaultPerformanceRange = "1M"

// PortfolioHandler handles HTTP requests for portfolio endpoints.
// It serves as the HTTP layer adapter, parsing requests and delegating
// business logic to the portfolioService.
type PortfolioHandler struct {
	portfolioService *service.PortfolioService
}

// NewPortfolioHandler creates a new PortfolioHandler with the provided service dependency.
func NewPortfolioHandler(portfolioService *service.PortfolioService) *PortfolioHandler {
	return &PortfolioHandler{
		portfolioService: portfolioService,
	}
}

// Portfolios handles GET requests to retrieve all portfolios.
//
// Endpoint: GET /api/portfolio
// Response: 200 OK with array of Portfolio
// Error: 500 Internal Server Error if retrieval fails
func (h *PortfolioHandler) Portfolios(w http.ResponseWriter, _ *http.Request) {
	portfolios, err := h.portfolioService.GetAllPortfolios()
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrievePortfolios.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, portfolios)
}

// GetPortfolio handles GET requests to retrieve a single portfolio by ID.
//
// Endpoint: GET /api/portfolio/{uuid}
// Response: 200 OK with Portfolio
// Error: 400 Bad Request if portfolio ID is invalid (validated by middleware)
// Error: 404 Not Found if portfolio not found
func (h *PortfolioHandler) GetPortfolio(w http.ResponseWriter, r *http.Request) {
	portfolioID := chi.URLParam(r, "uuid")

	portfolio, err := h.portfolioService.GetPortfolio(portfolioID)
	if err != nil {
		if errors.Is(err, apperrors.ErrPortfolioNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrPortfolioNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrievePortfolios.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, portfolio)
}

// CreatePortfolio handles POST requests to create a new portfolio.
//
// Endpoint: POST /api/portfolio
// Request Body: CreatePortfolioRequest (name, description)
// Response: 201 Created with Portfolio
// Error: 400 Bad Request if validation fails or request body is invalid
// Error: 500 Internal Server Error if creation fails
func (h *PortfolioHandler) CreatePortfolio(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CreatePortfolioRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreatePortfolio(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	portfolio, err := h.portfolioService.CreatePortfolio(r.Context(), req)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to create portfolio", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusCreated, portfolio)
}

// DeletePortfolio handles DELETE requests to remove a portfolio and its transactions.
//
// Endpoint: DELETE /api/portfolio/{uuid}
// Response: 204 No Content
// Error: 400 Bad Request if portfolio ID is invalid (validated by middleware)
// Error: 404 Not Found if portfolio not found
func (h *PortfolioHandler) DeletePortfolio(w http.ResponseWriter, r *http.Request) {
	portfolioID := chi.URLParam(r, "uuid")

	if err := h.portfolioService.DeletePortfolio(r.Context(), portfolioID); err != nil {
		if errors.Is(err, apperrors.ErrPortfolioNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrPortfolioNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to delete portfolio", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}

// Holdings handles GET requests to derive a portfolio's current holdings
// from its transaction history.
//
// Endpoint: GET /api/portfolio/{uuid}/holdings
// Response: 200 OK with array of Holding
// Error: 400 Bad Request if portfolio ID is invalid (validated by middleware)
// Error: 404 Not Found if portfolio not found
// Error: 500 Internal Server Error if derivation fails
func (h *PortfolioHandler) Holdings(w http.ResponseWriter, r *http.Request) {
	portfolioID := chi.URLParam(r, "uuid")

	holdings, err := h.portfolioService.Holdings(portfolioID)
	if err != nil {
		if errors.Is(err, apperrors.ErrPortfolioNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrPortfolioNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToGetHoldings.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, holdings)
}

// Summary handles GET requests for the cross-portfolio aggregate view.
//
// Endpoint: GET /api/portfolio/summary
// Response: 200 OK with AggregateTotals
// Error: 500 Internal Server Error if aggregation fails
func (h *PortfolioHandler) Summary(w http.ResponseWriter, _ *http.Request) {
	totals, err := h.portfolioService.Summary()
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToGetSummary.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, totals)
}

// Performance handles GET requests for the merged performance time series
// of the top holdings across all portfolios.
//
// Endpoint: GET /api/portfolio/performance?range=1M&top=5
// Response: 200 OK with MergedSeries
// Error: 400 Bad Request if the range token is unsupported
// Error: 500 Internal Server Error if the series cannot be built
func (h *PortfolioHandler) Performance(w http.ResponseWriter, r *http.Request) {
	rng := r.URL.Query().Get("range")
	if rng == "" {
		rng = defaultPerformanceRange
	}

	top := 0
	if raw := r.URL.Query().Get("top"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			response.RespondError(w, http.StatusBadRequest, "top must be a positive integer", raw)
			return
		}
		top = parsed
	}

	series, err := h.portfolioService.Performance(r.Context(), rng, top)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidRange) {
			response.RespondError(w, http.StatusBadRequest, apperrors.ErrInvalidRange.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToGetPerformance.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, series)
}
