package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/aretw0/carebot/pkg/domain"
)

type messageResponse struct {
	Message string `json:"message"`
}

type contextResponse struct {
	Context *domain.FlowState `json:"context"`
}

type statusResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

type flowEvent struct {
	Flow   domain.FlowState `json:"flow"`
	Intent *domain.Intent   `json:"intent,omitempty"`
}

// writeJSON marshals before touching headers so an encoding failure still yields a clean 500.
func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		slog.Error("writeJSON: failed to marshal response", "error", err)
		data = []byte(`{"status":500,"message":"Internal Server Error"}`)
		status = http.StatusInternalServerError
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(append(data, '\n')); err != nil {
		slog.Debug("writeJSON: failed to write response", "error", err)
	}
}

// writeStatus writes the {"status": n, "message": ...} error body.
func writeStatus(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, statusResponse{Status: status, Message: message})
}

// writeUnauthorized writes the {"message": ...} body used by the auth layer.
func writeUnauthorized(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusUnauthorized, messageResponse{Message: message})
}
