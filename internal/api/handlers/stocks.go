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

// StockHandler handles HTTP requests for stock endpoints.
type StockHandler struct {
	stockService *service.StockService
}

// NewStockHandler creates a new StockHandler with the provided service dependency.
func NewStockHandler(stockService *service.StockService) *StockHandler {
	return &StockHandler{
		stockService: stockService,
	}
}

// Stocks handles GET requests to retrieve the market stock snapshot.
//
// Endpoint: GET /api/stock
// Response: 200 OK with array of Stock
// Error: 500 Internal Server Error if retrieval fails
func (h *StockHandler) Stocks(w http.ResponseWriter, _ *http.Request) {
	stocks, err := h.stockService.GetAllStocks()
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveStocks.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, stocks)
}

// GetStock handles GET requests to retrieve a single stock by ID.
//
// Endpoint: GET /api/stock/{uuid}
// Response: 200 OK with Stock
// Error: 400 Bad Request if stock ID is invalid (validated by middleware)
// Error: 404 Not Found if stock not found
func (h *StockHandler) GetStock(w http.ResponseWriter, r *http.Request) {
	stockID := chi.URLParam(r, "uuid")

	stock, err := h.stockService.GetStock(stockID)
	if err != nil {
		if errors.Is(err, apperrors.ErrStockNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrStockNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveStocks.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, stock)
}

// GetStockBySymbol handles GET requests to retrieve a stock by symbol.
// Lookup is case-insensitive.
//
// Endpoint: GET /api/stock/symbol/{symbol}
// Response: 200 OK with Stock
// Error: 404 Not Found if no stock carries the symbol
func (h *StockHandler) GetStockBySymbol(w http.ResponseWriter, r *http.Request) {
	symbol := chi.URLParam(r, "symbol")

	stock, err := h.stockService.GetStockBySymbol(symbol)
	if err != nil {
		if errors.Is(err, apperrors.ErrStockNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrStockNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveStocks.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, stock)
}

// CreateStock handles POST requests to add a stock to the market snapshot.
//
// Endpoint: POST /api/stock
// Request Body: CreateStockRequest (symbol, companyName, currentPrice, changePercent)
// Response: 201 Created with Stock
// Error: 400 Bad Request if validation fails or request body is invalid
// Error: 409 Conflict if the symbol already exists
// Error: 500 Internal Server Error if creation fails
func (h *StockHandler) CreateStock(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CreateStockRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreateStock(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	stock, err := h.stockService.CreateStock(r.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicateSymbol) {
			response.RespondError(w, http.StatusConflict, apperrors.ErrDuplicateSymbol.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to create stock", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusCreated, stock)
}

// DeleteStock handles DELETE requests to remove a stock from the snapshot.
//
// Endpoint: DELETE /api/stock/{uuid}
// Response: 204 No Content
// Error: 400 Bad Request if stock ID is invalid (validated by middleware)
// Error: 404 Not Found if stock not found
func (h *StockHandler) DeleteStock(w http.ResponseWriter, r *http.Request) {
	stockID := chi.URLParam(r, "uuid")

	if err := h.stockService.DeleteStock(r.Context(), stockID); err != nil {
		if errors.Is(err, apperrors.ErrStockNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrStockNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to delete stock", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}

// History handles GET requests for a symbol's daily close history.
// An X-API-Key header, when present, overrides the stored provider key.
//
// Endpoint: GET /api/stock/history/{symbol}/{range}
// Response: 200 OK with map of YYYY-MM-DD to close price
// Error: 400 Bad Request if the range token is unsupported
// Error: 502 Bad Gateway if the market data provider fails
func (h *StockHandler) History(w http.ResponseWriter, r *http.Request) {
	symbol := chi.URLParam(r, "symbol")
	rng := chi.URLParam(r, "range")
	apiKey := r.Header.Get("X-API-Key")

	history, err := h.stockService.History(r.Context(), symbol, rng, apiKey)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidRange) {
			response.RespondError(w, http.StatusBadRequest, apperrors.ErrInvalidRange.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusBadGateway, apperrors.ErrFailedToFetchHistory.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, history)
}

// Trend handles GET requests for a stock's synthetic intraday trend.
//
// Endpoint: GET /api/stock/{uuid}/trend?points=10
// Response: 200 OK with array of prices ending at the current price
// Error: 400 Bad Request if stock ID is invalid (validated by middleware)
// Error: 404 Not Found if stock not found
func (h *StockHandler) Trend(w http.ResponseWriter, r *http.Request) {
	stockID := chi.URLParam(r, "uuid")

	points := 0
	if raw := r.URL.Query().Get("points"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			response.RespondError(w, http.StatusBadRequest, "points must be a positive integer", raw)
			return
		}
		points = parsed
	}

	trend, err := h.stockService.Trend(stockID, points)
	if err != nil {
		if errors.Is(err, apperrors.ErrStockNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrStockNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to generate trend", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, trend)
}
