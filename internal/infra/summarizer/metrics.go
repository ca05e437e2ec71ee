package summarizer

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsRecorder records per-invocation backend metrics. The interface
// exists so unit tests can inject a mock instead of the process-wide
// Prometheus registry, and so the same recording works for every backend.
type MetricsRecorder interface {
	// RecordLength records the length of a generated summary in runes.
	RecordLength(length int)

	// RecordDuration records the time taken by one backend invocation.
	RecordDuration(duration time.Duration)

	// RecordFailure increments the failure counter for the backend.
	RecordFailure(backend string)
}

// PrometheusMetrics implements MetricsRecorder on the default Prometheus
// registry. A singleton avoids duplicate registration when several
// backends are constructed in one process.
type PrometheusMetrics struct {
	lengthHistogram   prometheus.Histogram
	durationHistogram prometheus.Histogram
	failuresTotal     *prometheus.CounterVec
}

var (
	metricsInstance *PrometheusMetrics
	metricsOnce     sync.Once
)

// NewPrometheusMetrics returns the shared Prometheus-backed recorder.
func NewPrometheusMetrics() *PrometheusMetrics {
	metricsOnce.Do(func() {
		metricsInstance = &PrometheusMetrics{
			lengthHistogram: promauto.NewHistogram(prometheus.HistogramOpts{
				Name:    "summarizer_summary_length_chars",
				Help:    "Distribution of backend summary lengths in characters (runes)",
				Buckets: []float64{50, 100, 200, 400, 700, 1000, 1500, 2500},
			}),
			durationHistogram: promauto.NewHistogram(prometheus.HistogramOpts{
				Name:    "summarizer_invocation_duration_seconds",
				Help:    "Time taken by a single backend summarization call",
				Buckets: prometheus.ExponentialBuckets(0.1, 2, 10),
			}),
			failuresTotal: promauto.NewCounterVec(prometheus.CounterOpts{
				Name: "summarizer_failures_total",
				Help: "Total failed backend invocations by backend",
			}, []string{"backend"}),
		}
	})
	return metricsInstance
}

// RecordLength implements MetricsRecorder.
func (p *PrometheusMetrics) RecordLength(length int) {
	p.lengthHistogram.Observe(float64(length))
}

// RecordDuration implements MetricsRecorder.
func (p *PrometheusMetrics) RecordDuration(duration time.Duration) {
	p.durationHistogram.Observe(duration.Seconds())
}

// RecordFailure implements MetricsRecorder.
func (p *PrometheusMetrics) RecordFailure(backend string) {
	p.failuresTotal.WithLabelValues(backend).Inc()
}
