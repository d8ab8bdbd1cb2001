package handlers

import (
	"net/http"
	"strings"

	"github.com/stockfolio/backend/internal/api/request"
	"github.com/stockfolio/backend/internal/api/response"
	"github.com/stockfolio/backend/internal/assistant"
)

// AssistantHandler handles HTTP requests for the portfolio assistant.
type AssistantHandler struct {
	responder *assistant.Responder
}

// NewAssistantHandler creates a new AssistantHandler with the provided responder.
func NewAssistantHandler(responder *assistant.Responder) *AssistantHandler {
	return &AssistantHandler{
		responder: responder,
	}
}

// Message handles POST requests carrying one user message to the assistant.
//
// Endpoint: POST /api/assistant/message
// Request Body: AssistantMessageRequest (message)
// Response: 200 OK with {"reply": "..."}
// Error: 400 Bad Request if the message is missing or the body is invalid
// Error: 500 Internal Server Error if the reply cannot be built
func (h *AssistantHandler) Message(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.AssistantMessageRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if strings.TrimSpace(req.Message) == "" {
		response.RespondError(w, http.StatusBadRequest, "message is required", "")
		return
	}

	reply, err := h.responder.Reply(req.Message)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to build assistant reply", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, map[string]string{"reply": reply})
}
