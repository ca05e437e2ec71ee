package config

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics tracks configuration health for one component: when it was
// loaded and how often values fell back to defaults. A fallback in
// production usually means a typo in deployment config, which is worth an
// alert before it becomes a behavior surprise.
type Metrics struct {
	LoadTimestamp  prometheus.Gauge
	FallbacksTotal *prometheus.CounterVec
	FallbackActive prometheus.Gauge
}

// NewMetrics creates configuration metrics prefixed with the component
// name. Component names must be unique per process; duplicate
// registration panics.
func NewMetrics(component string) *Metrics {
	return &Metrics{
		LoadTimestamp: promauto.NewGauge(prometheus.GaugeOpts{
			Name: fmt.Sprintf("%s_config_load_timestamp", component),
			Help: fmt.Sprintf("Unix timestamp of last %s configuration load", component),
		}),
		FallbacksTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: fmt.Sprintf("%s_config_fallbacks_total", component),
			Help: fmt.Sprintf("Total %s configuration fallback operations", component),
		}, []string{"field"}),
		FallbackActive: promauto.NewGauge(prometheus.GaugeOpts{
			Name: fmt.Sprintf("%s_config_fallback_active", component),
			Help: fmt.Sprintf("1 if any %s configuration fallback is active", component),
		}),
	}
}

// RecordLoad marks a successful configuration load.
func (m *Metrics) RecordLoad() {
	m.LoadTimestamp.SetToCurrentTime()
}

// RecordFallback counts one fallback for the given field.
func (m *Metrics) RecordFallback(field string) {
	m.FallbacksTotal.WithLabelValues(field).Inc()
}

// SetFallbackActive flags whether any field is currently on a fallback.
func (m *Metrics) SetFallbackActive(active bool) {
	if active {
		m.FallbackActive.Set(1)
	} else {
		m.FallbackActive.Set(0)
	}
}
