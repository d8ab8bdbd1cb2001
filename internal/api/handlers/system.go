package handlers

import (
	"net/http"
	"strings"

	"github.com/stockfolio/backend/internal/api/request"
	"github.com/stockfolio/backend/internal/api/response"
	"github.com/stockfolio/backend/internal/service"
)

// SystemHandler handles HTTP requests for system endpoints.
type SystemHandler struct {
	systemService *service.SystemService
	stockService  *service.StockService
}

// NewSystemHandler creates a new SystemHandler with the provided service dependencies.
func NewSystemHandler(systemService *service.SystemService, stockService *service.StockService) *SystemHandler {
	return &SystemHandler{
		systemService: systemService,
		stockService:  stockService,
	}
}

// Health handles GET requests for the service health check.
//
// Endpoint: GET /api/system/health
// Response: 200 OK with {"status":"ok"}
// Error: 503 Service Unavailable if the database is unreachable
func (h *SystemHandler) Health(w http.ResponseWriter, _ *http.Request) {
	if err := h.systemService.CheckHealth(); err != nil {
		response.RespondError(w, http.StatusServiceUnavailable, "database unreachable", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// SetAPIKey handles PUT requests to store the market data provider key.
// The key is encrypted before it is written to the settings table.
//
// Endpoint: PUT /api/system/apikey
// Request Body: SetAPIKeyRequest (apiKey)
// Response: 204 No Content
// Error: 400 Bad Request if the key is missing or the body is invalid
// Error: 500 Internal Server Error if the key cannot be stored
func (h *SystemHandler) SetAPIKey(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.SetAPIKeyRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if strings.TrimSpace(req.APIKey) == "" {
		response.RespondError(w, http.StatusBadRequest, "apiKey is required", "")
		return
	}

	if err := h.stockService.SetAPIKey(r.Context(), req.APIKey); err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to store api key", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}
