// Package response holds the JSON response helpers shared by every
// handler. All payloads, errors included, go through these so the wire
// shape stays uniform across the API.
package response

import (
	"encoding/json"
	"log"
	"net/http"
)

// ErrorResponse is the envelope for every non-redirect error the API
// returns. Details is optional context, typically the underlying error
// string; it is omitted from the payload when nil.
type ErrorResponse struct {
	Error   string      `json:"error"`
	Details interface{} `json:"details,omitempty"`
}

// RespondJSON writes data as a JSON response with the given status.
// A nil data writes the status only, which is what the 204 paths need.
// Encoding failures are logged, not surfaced; the status line has
// already gone out by then.
func RespondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			log.Printf("failed to encode JSON response: %v", err)
		}
	}
}

// RespondError writes an ErrorResponse with the given status. The
// message should be safe to show a user; anything sensitive belongs in
// the server log, not in details.
func RespondError(w http.ResponseWriter, status int, message string, details interface{}) {
	RespondJSON(w, status, ErrorResponse{
		Error:   message,
		Details: details,
	})
}
