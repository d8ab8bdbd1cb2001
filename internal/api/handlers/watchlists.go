package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/stockfolio/backend/internal/api/request"
	"github.com/stockfolio/backend/internal/api/response"
	"github.com/stockfolio/backend/internal/apperrors"
	"github.com/stockfolio/backend/internal/service"
	"github.com/stockfolio/backend/internal/validation"
)

// WatchlistHandler handles HTTP requests for watchlist endpoints.
type WatchlistHandler struct {
	watchlistService *service.WatchlistService
}

// NewWatchlistHandler creates a new WatchlistHandler with the provided service dependency.
func NewWatchlistHandler(watchlistService *service.WatchlistService) *WatchlistHandler {
	return &WatchlistHandler{
		watchlistService: watchlistService,
	}
}

// Watchlists handles GET requests to retrieve all watchlists with their stocks.
//
// Endpoint: GET /api/watchlist
// Response: 200 OK with array of Watchlist
// Error: 500 Internal Server Error if retrieval fails
func (h *WatchlistHandler) Watchlists(w http.ResponseWriter, _ *http.Request) {
	watchlists, err := h.watchlistService.GetAllWatchlists()
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveWatchlists.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, watchlists)
}

// GetWatchlist handles GET requests to retrieve a single watchlist by ID.
//
// Endpoint: GET /api/watchlist/{uuid}
// Response: 200 OK with Watchlist
// Error: 400 Bad Request if watchlist ID is invalid (validated by middleware)
// Error: 404 Not Found if watchlist not found
func (h *WatchlistHandler) GetWatchlist(w http.ResponseWriter, r *http.Request) {
	watchlistID := chi.URLParam(r, "uuid")

	watchlist, err := h.watchlistService.GetWatchlist(watchlistID)
	if err != nil {
		if errors.Is(err, apperrors.ErrWatchlistNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrWatchlistNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveWatchlists.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, watchlist)
}

// CreateWatchlist handles POST requests to create a new, empty watchlist.
//
// Endpoint: POST /api/watchlist
// Request Body: CreateWatchlistRequest (name)
// Response: 201 Created with Watchlist
// Error: 400 Bad Request if validation fails or request body is invalid
// Error: 500 Internal Server Error if creation fails
func (h *WatchlistHandler) CreateWatchlist(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CreateWatchlistRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreateWatchlist(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	watchlist, err := h.watchlistService.CreateWatchlist(r.Context(), req)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to create watchlist", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusCreated, watchlist)
}

// UpdateWatchlist handles PUT requests to rename a watchlist.
//
// Endpoint: PUT /api/watchlist/{uuid}
// Request Body: UpdateWatchlistRequest (name)
// Response: 200 OK with Watchlist
// Error: 400 Bad Request if validation fails or request body is invalid
// Error: 404 Not Found if watchlist not found
func (h *WatchlistHandler) UpdateWatchlist(w http.ResponseWriter, r *http.Request) {
	watchlistID := chi.URLParam(r, "uuid")

	req, err := parseJSON[request.UpdateWatchlistRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateUpdateWatchlist(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	watchlist, err := h.watchlistService.RenameWatchlist(r.Context(), watchlistID, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrWatchlistNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrWatchlistNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to rename watchlist", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, watchlist)
}

// DeleteWatchlist handles DELETE requests to remove a watchlist.
//
// Endpoint: DELETE /api/watchlist/{uuid}
// Response: 204 No Content
// Error: 400 Bad Request if watchlist ID is invalid (validated by middleware)
// Error: 404 Not Found if watchlist not found
func (h *WatchlistHandler) DeleteWatchlist(w http.ResponseWriter, r *http.Request) {
	watchlistID := chi.URLParam(r, "uuid")

	if err := h.watchlistService.DeleteWatchlist(r.Context(), watchlistID); err != nil {
		if errors.Is(err, apperrors.ErrWatchlistNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrWatchlistNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to delete watchlist", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}

// AddStock handles POST requests to add a stock to a watchlist.
// Adding a stock that is already on the list is a no-op.
//
// Endpoint: POST /api/watchlist/{uuid}/stock/{stockUuid}
// Response: 200 OK with the updated Watchlist
// Error: 400 Bad Request if either ID is invalid
// Error: 404 Not Found if the watchlist or stock does not exist
func (h *WatchlistHandler) AddStock(w http.ResponseWriter, r *http.Request) {
	watchlistID := chi.URLParam(r, "uuid")
	stockID := chi.URLParam(r, "stockUuid")

	if err := validation.ValidateUUID(stockID); err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid UUID format", err.Error())
		return
	}

	watchlist, err := h.watchlistService.AddStock(r.Context(), watchlistID, stockID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrWatchlistNotFound):
			response.RespondError(w, http.StatusNotFound, apperrors.ErrWatchlistNotFound.Error(), err.Error())
		case errors.Is(err, apperrors.ErrStockNotFound):
			response.RespondError(w, http.StatusNotFound, apperrors.ErrStockNotFound.Error(), err.Error())
		default:
			response.RespondError(w, http.StatusInternalServerError, "failed to add stock to watchlist", err.Error())
		}
		return
	}

	response.RespondJSON(w, http.StatusOK, watchlist)
}

// RemoveStock handles DELETE requests to remove a stock from a watchlist.
//
// Endpoint: DELETE /api/watchlist/{uuid}/stock/{stockUuid}
// Response: 200 OK with the updated Watchlist
// Error: 400 Bad Request if either ID is invalid
// Error: 404 Not Found if the watchlist does not exist
func (h *WatchlistHandler) RemoveStock(w http.ResponseWriter, r *http.Request) {
	watchlistID := chi.URLParam(r, "uuid")
	stockID := chi.URLParam(r, "stockUuid")

	if err := validation.ValidateUUID(stockID); err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid UUID format", err.Error())
		return
	}

	watchlist, err := h.watchlistService.RemoveStock(r.Context(), watchlistID, stockID)
	if err != nil {
		if errors.Is(err, apperrors.ErrWatchlistNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrWatchlistNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to remove stock from watchlist", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, watchlist)
}
