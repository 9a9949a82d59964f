package shared

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// Envelope is the uniform response wrapper every endpoint returns. It is
// built exactly once per request, at the outermost boundary.
type Envelope struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// WriteEnvelope writes the response envelope with the given status code.
// Success is derived from the status class so no caller can contradict it.
func WriteEnvelope(w http.ResponseWriter, r *http.Request, status int, message string, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	env := Envelope{
		Success: status < http.StatusBadRequest,
		Message: message,
		Data:    data,
	}
	if err := json.NewEncoder(w).Encode(env); err != nil {
		slog.Error("failed to encode JSON response",
			"error", err,
			"trace_id", GetTraceID(r.Context()))
	}
}
