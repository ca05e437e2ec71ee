// Package respond writes JSON responses and keeps internal error detail
// out of what clients see.
package respond

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
)

// JSON writes v as a JSON response with the given status code.
func JSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if v != nil {
		if err := json.NewEncoder(w).Encode(v); err != nil {
			// Headers are already sent; all we can do is log.
			slog.Default().Error("failed to encode JSON response",
				slog.Int("status_code", code),
				slog.Any("error", err))
		}
	}
}

// Error writes err's message as a JSON error response.
func Error(w http.ResponseWriter, code int, err error) {
	JSON(w, code, map[string]string{"error": err.Error()})
}

// AppError pairs an internal error with the message clients may see.
type AppError struct {
	UserMsg string
	Err     error
	Code    int
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.UserMsg
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates an AppError.
func NewAppError(code int, userMsg string, err error) *AppError {
	return &AppError{Code: code, UserMsg: userMsg, Err: err}
}

// SafeError writes an error response without leaking internals. An
// AppError's user message is returned with its own status code, and the
// wrapped cause is logged with credentials masked. Any other error with a
// 5xx code becomes a generic message; 4xx messages pass through since
// they describe the client's own request.
func SafeError(w http.ResponseWriter, code int, err error) {
	if err == nil {
		return
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		if appErr.Err != nil {
			slog.Default().Error("request failed",
				slog.Int("code", appErr.Code),
				slog.String("user_message", appErr.UserMsg),
				slog.String("error", SanitizeError(appErr.Err)))
		}
		JSON(w, appErr.Code, map[string]string{"error": appErr.UserMsg})
		return
	}

	if code >= 500 {
		slog.Default().Error("internal server error",
			slog.Int("code", code),
			slog.String("error", SanitizeError(err)))
		JSON(w, code, map[string]string{"error": "internal server error"})
		return
	}

	JSON(w, code, map[string]string{"error": err.Error()})
}
