package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gatherFamily(t *testing.T, name string) *dto.MetricFamily {
	t.Helper()
	families, err := prometheus.DefaultGatherer.Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() == name {
			return mf
		}
	}
	return nil
}

func counterValue(mf *dto.MetricFamily, label, value string) float64 {
	if mf == nil {
		return 0
	}
	for _, m := range mf.GetMetric() {
		for _, lp := range m.GetLabel() {
			if lp.GetName() == label && lp.GetValue() == value {
				return m.GetCounter().GetValue()
			}
		}
	}
	return 0
}

func TestNewPrometheusPipeline_Singleton(t *testing.T) {
	assert.Same(t, NewPrometheusPipeline(), NewPrometheusPipeline())
}

func TestPrometheusPipeline_RecordRun(t *testing.T) {
	rec := NewPrometheusPipeline()

	before := counterValue(gatherFamily(t, "summarize_pipeline_runs_total"), "status", StatusOK)
	rec.RecordRun(StatusOK, 120*time.Millisecond)
	after := counterValue(gatherFamily(t, "summarize_pipeline_runs_total"), "status", StatusOK)

	assert.Equal(t, before+1, after)
}

func TestPrometheusPipeline_RecordRun_FailureStatuses(t *testing.T) {
	rec := NewPrometheusPipeline()

	for _, status := range []string{
		StatusInvalidInput,
		StatusInvalidParameters,
		StatusModelUnavailable,
		StatusGenerationFailed,
		StatusTimeout,
	} {
		before := counterValue(gatherFamily(t, "summarize_pipeline_runs_total"), "status", status)
		rec.RecordRun(status, 10*time.Millisecond)
		after := counterValue(gatherFamily(t, "summarize_pipeline_runs_total"), "status", status)
		assert.Equal(t, before+1, after, "status %s", status)
	}
}

func TestPrometheusPipeline_Histograms(t *testing.T) {
	rec := NewPrometheusPipeline()

	rec.RecordChunks(3)
	rec.RecordCompression(0.25)
	rec.RecordSecondPass()

	chunks := gatherFamily(t, "summarize_pipeline_chunks")
	require.NotNil(t, chunks)
	assert.Positive(t, chunks.GetMetric()[0].GetHistogram().GetSampleCount())

	compression := gatherFamily(t, "summarize_pipeline_compression_ratio")
	require.NotNil(t, compression)
	assert.Positive(t, compression.GetMetric()[0].GetHistogram().GetSampleCount())

	secondPass := gatherFamily(t, "summarize_pipeline_second_pass_total")
	require.NotNil(t, secondPass)
	assert.Positive(t, secondPass.GetMetric()[0].GetCounter().GetValue())
}

func TestNoOpPipeline(t *testing.T) {
	var rec PipelineRecorder = NoOpPipeline{}

	// Must be callable without side effects or panics.
	rec.RecordRun(StatusOK, time.Second)
	rec.RecordChunks(1)
	rec.RecordCompression(0.5)
	rec.RecordSecondPass()
}
