// Package metrics provides Prometheus metrics for the summarization
// pipeline. Recording goes through the PipelineRecorder interface so unit
// tests can inject a mock instead of the process-wide Prometheus registry.
package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Run statuses recorded by RecordRun.
const (
	StatusOK                = "ok"
	StatusInvalidInput      = "invalid_input"
	StatusInvalidParameters = "invalid_parameters"
	StatusModelUnavailable  = "model_unavailable"
	StatusGenerationFailed  = "generation_failed"
	StatusTimeout           = "timeout"
)

// PipelineRecorder records pipeline-level metrics for each run.
type PipelineRecorder interface {
	// RecordRun records a completed run with its terminal status and duration.
	RecordRun(status string, duration time.Duration)

	// RecordChunks records how many chunks an input was split into.
	RecordChunks(count int)

	// RecordCompression records the summary/original character ratio.
	RecordCompression(ratio float64)

	// RecordSecondPass increments the counter of second-pass compressions.
	RecordSecondPass()
}

// PrometheusPipeline implements PipelineRecorder on the default Prometheus
// registry. A process-wide singleton avoids duplicate registration when
// multiple services are constructed (common in tests).
type PrometheusPipeline struct {
	runsTotal            *prometheus.CounterVec
	runDuration          prometheus.Histogram
	chunksHistogram      prometheus.Histogram
	compressionHistogram prometheus.Histogram
	secondPassTotal      prometheus.Counter
}

var (
	pipelineInstance *PrometheusPipeline
	pipelineOnce     sync.Once
)

// NewPrometheusPipeline returns the shared Prometheus-backed recorder,
// registering the pipeline metrics on first use.
func NewPrometheusPipeline() *PrometheusPipeline {
	pipelineOnce.Do(func() {
		pipelineInstance = &PrometheusPipeline{
			runsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
				Name: "summarize_pipeline_runs_total",
				Help: "Total pipeline runs by terminal status",
			}, []string{"status"}),
			runDuration: promauto.NewHistogram(prometheus.HistogramOpts{
				Name:    "summarize_pipeline_duration_seconds",
				Help:    "End-to-end pipeline run duration",
				Buckets: prometheus.ExponentialBuckets(0.1, 2, 12),
			}),
			chunksHistogram: promauto.NewHistogram(prometheus.HistogramOpts{
				Name:    "summarize_pipeline_chunks",
				Help:    "Number of chunks per pipeline run",
				Buckets: []float64{1, 2, 3, 5, 8, 13, 21, 34},
			}),
			compressionHistogram: promauto.NewHistogram(prometheus.HistogramOpts{
				Name:    "summarize_pipeline_compression_ratio",
				Help:    "Summary length divided by original length in characters",
				Buckets: prometheus.LinearBuckets(0.05, 0.05, 20),
			}),
			secondPassTotal: promauto.NewCounter(prometheus.CounterOpts{
				Name: "summarize_pipeline_second_pass_total",
				Help: "Total runs that required a second-pass compression",
			}),
		}
	})
	return pipelineInstance
}

// RecordRun implements PipelineRecorder.
func (p *PrometheusPipeline) RecordRun(status string, duration time.Duration) {
	p.runsTotal.WithLabelValues(status).Inc()
	p.runDuration.Observe(duration.Seconds())
}

// RecordChunks implements PipelineRecorder.
func (p *PrometheusPipeline) RecordChunks(count int) {
	p.chunksHistogram.Observe(float64(count))
}

// RecordCompression implements PipelineRecorder.
func (p *PrometheusPipeline) RecordCompression(ratio float64) {
	p.compressionHistogram.Observe(ratio)
}

// RecordSecondPass implements PipelineRecorder.
func (p *PrometheusPipeline) RecordSecondPass() {
	p.secondPassTotal.Inc()
}

// NoOpPipeline is a PipelineRecorder that discards all observations.
type NoOpPipeline struct{}

// RecordRun implements PipelineRecorder.
func (NoOpPipeline) RecordRun(string, time.Duration) {}

// RecordChunks implements PipelineRecorder.
func (NoOpPipeline) RecordChunks(int) {}

// RecordCompression implements PipelineRecorder.
func (NoOpPipeline) RecordCompression(float64) {}

// RecordSecondPass implements PipelineRecorder.
func (NoOpPipeline) RecordSecondPass() {}
