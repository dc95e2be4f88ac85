package httpapi

import (
	"encoding/json"
	"net/http"
)

// ErrorDetail is the body of every non-2xx answer. Code is a stable
// snake_case token ("db_error", "already_running") clients can switch on.
type ErrorDetail struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

// APIError wraps ErrorDetail as {"error": {...}}.
type APIError struct {
	Error ErrorDetail `json:"error"`
}

// WriteJSON encodes v with an explicit status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeJSON(w http.ResponseWriter, v any) { WriteJSON(w, http.StatusOK, v) }

// WriteError answers with the error envelope, tagged with the request ID the
// RequestID middleware attached.
func WriteError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	WriteJSON(w, status, APIError{Error: ErrorDetail{
		Code:      code,
		Message:   message,
		RequestID: RequestIDFrom(r.Context()),
	}})
}
