// Package http provides the HTTP surface of the summarization service:
// the summarize endpoint, health checks, and the middleware stack for
// logging, panics, request limits, and metrics.
package http

import (
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"runtime/debug"
	"sync"
	"time"

	"go.opentelemetry.io/otel/trace"

	"textsum/internal/handler/http/requestid"
	"textsum/internal/handler/http/respond"
	"textsum/internal/handler/http/responsewriter"
)

// Logging returns middleware that logs each completed request with its
// request ID and, when tracing is active, the trace ID for correlation.
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			wrapped := responsewriter.Wrap(w)
			next.ServeHTTP(wrapped, r)

			span := trace.SpanFromContext(r.Context())

			logger.Info("request completed",
				slog.String("request_id", requestid.FromContext(r.Context())),
				slog.String("trace_id", span.SpanContext().TraceID().String()),
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("remote_addr", r.RemoteAddr),
				slog.Int("status", wrapped.StatusCode()),
				slog.Int("bytes", wrapped.BytesWritten()),
				slog.Duration("duration", time.Since(start)))
		})
	}
}

// Recover returns middleware that turns a handler panic into a 500
// response and a structured log entry with the stack.
func Recover(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					respond.SafeError(w, http.StatusInternalServerError,
						fmt.Errorf("internal error"))

					logger.Error("panic recovered",
						slog.String("request_id", requestid.FromContext(r.Context())),
						slog.String("method", r.Method),
						slog.String("path", r.URL.Path),
						slog.Any("panic", rec),
						slog.String("stack", string(debug.Stack())))
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// LimitRequestBody returns middleware that caps request body size.
// Summarization requests carry whole documents, so the cap should track
// the largest document the pipeline is expected to accept.
func LimitRequestBody(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}

// requestRecord holds the timestamps of one client's recent requests.
type requestRecord struct {
	timestamps []time.Time
	mu         sync.Mutex
}

// RateLimiter limits requests per client IP over a sliding window.
// Summarization runs are expensive, so the per-IP budget protects the
// backend quota as much as the server itself.
type RateLimiter struct {
	records   sync.Map
	limit     int
	window    time.Duration
	cleanMu   sync.Mutex
	lastClean time.Time
}

// NewRateLimiter allows limit requests per window per client IP.
func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		limit:     limit,
		window:    window,
		lastClean: time.Now(),
	}
}

// Limit rejects requests over the budget with 429.
func (rl *RateLimiter) Limit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := extractIP(r)
		rl.periodicCleanup()

		if !rl.allow(ip) {
			respond.SafeError(w, http.StatusTooManyRequests, fmt.Errorf("rate limit exceeded"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (rl *RateLimiter) allow(ip string) bool {
	now := time.Now()

	val, _ := rl.records.LoadOrStore(ip, &requestRecord{
		timestamps: make([]time.Time, 0, rl.limit),
	})
	record := val.(*requestRecord)

	record.mu.Lock()
	defer record.mu.Unlock()

	cutoff := now.Add(-rl.window)
	valid := record.timestamps[:0]
	for _, ts := range record.timestamps {
		if ts.After(cutoff) {
			valid = append(valid, ts)
		}
	}
	record.timestamps = valid

	if len(record.timestamps) >= rl.limit {
		return false
	}
	record.timestamps = append(record.timestamps, now)
	return true
}

// periodicCleanup drops idle client records so the map does not grow
// without bound.
func (rl *RateLimiter) periodicCleanup() {
	rl.cleanMu.Lock()
	defer rl.cleanMu.Unlock()

	if time.Since(rl.lastClean) < 10*time.Minute {
		return
	}
	rl.lastClean = time.Now()
	cutoff := time.Now().Add(-rl.window * 2)

	rl.records.Range(func(key, value interface{}) bool {
		record := value.(*requestRecord)
		record.mu.Lock()
		stale := true
		for _, ts := range record.timestamps {
			if ts.After(cutoff) {
				stale = false
				break
			}
		}
		record.mu.Unlock()
		if stale {
			rl.records.Delete(key)
		}
		return true
	})
}

// extractIP picks the client address out of proxy headers, falling back
// to the connection's remote address.
func extractIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if ip := parseFirstIP(xff); ip != "" {
			return ip
		}
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		if ip := net.ParseIP(xri); ip != nil {
			return ip.String()
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func parseFirstIP(s string) string {
	for i := 0; i < len(s); i++ {
		if s[i] == ',' {
			if ip := net.ParseIP(s[:i]); ip != nil {
				return ip.String()
			}
			return ""
		}
	}
	if ip := net.ParseIP(s); ip != nil {
		return ip.String()
	}
	return ""
}
