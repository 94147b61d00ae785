package httpd

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gogpu/gglive"
)

// Error code constants for structured error responses.
const (
	ErrCodeBadRequest   = "bad_request"
	ErrCodeNotFound     = "not_found"
	ErrCodeUnauthorized = "unauthorized"
	ErrCodeUnavailable  = "unavailable"
	ErrCodeInternal     = "internal"
)

// APIError represents a structured error returned by the server.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError for JSON serialization.
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// writeError writes a JSON error response with the given HTTP status code.
func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(ErrorResponse{
		Error: APIError{Code: code, Message: message},
	}); err != nil {
		slog.Error("httpd: write error response", "err", err)
	}
}

// writeServiceError maps a device error to a response.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, gglive.ErrNotFound):
		writeError(w, http.StatusNotFound, ErrCodeNotFound, "no such page")
	case errors.Is(err, gglive.ErrInvalidState):
		writeError(w, http.StatusServiceUnavailable, ErrCodeUnavailable, "device not running")
	default:
		writeError(w, http.StatusInternalServerError, ErrCodeInternal, err.Error())
	}
}

// writeJSON writes a JSON response with the given HTTP status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("httpd: write json response", "err", err)
	}
}
