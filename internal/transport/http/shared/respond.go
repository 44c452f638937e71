// Package shared centralizes JSON response envelopes so every handler speaks
// the same wire format: {"message": ...} on success, {"detail": ...} on
// rejection.
package shared

import (
	"encoding/json"
	"log/slog"
	"net/http"

	dErrors "mergington/pkg/domain-errors"
)

// WriteJSON serializes v with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Default().Error("failed to encode response", "error", err)
	}
}

// WriteMessage writes a 200 confirmation envelope.
func WriteMessage(w http.ResponseWriter, message string) {
	WriteJSON(w, http.StatusOK, map[string]string{"message": message})
}

// WriteError translates a domain error into its status code and a detail
// envelope. Non-domain errors become opaque 500s.
func WriteError(w http.ResponseWriter, err error) {
	code := dErrors.CodeOf(err)
	WriteJSON(w, dErrors.ToHTTPStatus(code), map[string]string{"detail": dErrors.DetailOf(err)})
}
