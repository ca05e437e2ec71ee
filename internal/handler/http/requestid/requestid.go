// Package requestid assigns each HTTP request a unique ID so log entries
// from one request can be correlated.
package requestid

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

type contextKey string

const (
	// RequestIDKey is the context key the request ID is stored under.
	RequestIDKey contextKey = "request_id"
	// RequestIDHeader is the header the ID is read from and echoed to.
	RequestIDHeader = "X-Request-ID"
)

// FromContext returns the request ID from the context, or "" if absent.
func FromContext(ctx context.Context) string {
	if id, ok := ctx.Value(RequestIDKey).(string); ok {
		return id
	}
	return ""
}

// WithRequestID stores a request ID in the context.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, RequestIDKey, id)
}

// Middleware propagates an incoming X-Request-ID or generates a UUID when
// the client sent none. The ID goes into the request context and is echoed
// in the response header so clients can quote it.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.New().String()
		}

		w.Header().Set(RequestIDHeader, requestID)

		ctx := WithRequestID(r.Context(), requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
