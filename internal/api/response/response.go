// Package response provides helpers for sending consistent JSON
// responses and structured errors.
package response

import (
	"encoding/json"
	"log"
	"net/http"
)

// ErrorResponse is the error envelope returned by every endpoint.
// Details is optional context, usually the underlying error string.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

// RespondJSON sends data as JSON with the given status code. A nil data
// writes only the status, which is what 204 responses want. Encoding
// errors are logged; the status line has already been sent by then.
func RespondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			log.Printf("failed to encode JSON response: %v", err)
		}
	}
}

// RespondError sends an ErrorResponse with the given status code.
// message is the user-facing description; details may be nil.
func RespondError(w http.ResponseWriter, status int, message string, details any) {
	RespondJSON(w, status, ErrorResponse{
		Error:   message,
		Details: details,
	})
}
