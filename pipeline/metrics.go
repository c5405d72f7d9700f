package pipeline

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics records run outcomes and per-step latency.
type Metrics struct {
	Runs         *prometheus.CounterVec
	StepDuration *prometheus.HistogramVec
	Active       prometheus.Gauge
}

// NewMetrics registers the pipeline collectors with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Runs: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "summagraph_runs_total",
				Help: "Total number of pipeline runs by outcome",
			},
			[]string{"status"},
		),
		StepDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "summagraph_step_duration_seconds",
				Help:    "Duration of each pipeline step in seconds",
				Buckets: []float64{0.01, 0.1, 0.5, 1, 5, 15, 30, 60, 120, 300},
			},
			[]string{"step"},
		),
		Active: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "summagraph_runs_active",
				Help: "Number of pipeline runs in progress",
			},
		),
	}
}
