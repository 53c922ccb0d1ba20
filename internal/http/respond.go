package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"khata/internal/core"
)

type errorResponse struct {
	Error string `json:"error"`
}

type fieldErrorResponse struct {
	Errors map[string]string `json:"errors"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// writeFieldErrors renders per-field validation failures as 422 so the
// client can highlight each offending input.
func writeFieldErrors(w http.ResponseWriter, errs core.FieldErrors) {
	out := make(map[string]string, len(errs))
	for field, msg := range errs {
		out[string(field)] = msg
	}
	writeJSON(w, http.StatusUnprocessableEntity, fieldErrorResponse{Errors: out})
}
