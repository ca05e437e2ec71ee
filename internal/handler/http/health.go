package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"
)

// HealthResponse is the body of the health endpoint.
type HealthResponse struct {
	Status    string                 `json:"status"`
	Timestamp string                 `json:"timestamp"`
	Checks    map[string]CheckStatus `json:"checks"`
	Version   string                 `json:"version"`
}

// CheckStatus is one named check inside a HealthResponse.
type CheckStatus struct {
	Status  string                 `json:"status"`
	Message string                 `json:"message,omitempty"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// ModelLister reports which summarization backends are registered.
type ModelLister interface {
	Models() []string
}

// HealthHandler reports service health: the process is up and at least
// one summarization backend is registered.
type HealthHandler struct {
	Registry ModelLister
	Version  string
}

// ServeHTTP returns 200 with per-check detail, or 503 when no backend is
// available.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	checks := make(map[string]CheckStatus)
	allHealthy := true

	if h.Registry != nil {
		models := h.Registry.Models()
		if len(models) == 0 {
			checks["backends"] = CheckStatus{
				Status:  "unhealthy",
				Message: "no summarization backends registered",
			}
			allHealthy = false
		} else {
			checks["backends"] = CheckStatus{
				Status:  "healthy",
				Details: map[string]interface{}{"models": models},
			}
		}
	} else {
		checks["backends"] = CheckStatus{
			Status:  "unhealthy",
			Message: "not configured",
		}
		allHealthy = false
	}

	status := "healthy"
	statusCode := http.StatusOK
	if !allHealthy {
		status = "unhealthy"
		statusCode = http.StatusServiceUnavailable
	}

	response := HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Checks:    checks,
		Version:   h.Version,
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		slog.Error("health: failed to encode response", slog.Any("error", err))
	}
}

// LiveHandler answers liveness probes: the process can serve requests.
type LiveHandler struct{}

func (h *LiveHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("alive"))
}
