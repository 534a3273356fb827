package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// sum file ETL pipeline.
type Metrics struct {
	FilesConsumed   prometheus.Counter
	CastsProduced   prometheus.Counter
	DecodeErrors    prometheus.Counter
	PipelineRunning prometheus.Gauge

	// Batch processing metrics.
	BatchSize               prometheus.Histogram
	BatchProcessingDuration prometheus.Histogram
}

// NewMetrics creates and registers all pipeline metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		FilesConsumed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "sumfile_etl",
			Name:      "files_consumed_total",
			Help:      "Total sum files read from the spool directory.",
		}),
		CastsProduced: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "sumfile_etl",
			Name:      "casts_produced_total",
			Help:      "Total cast events written to the sink topic.",
		}),
		DecodeErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "sumfile_etl",
			Name:      "decode_errors_total",
			Help:      "Total sum files rejected with a structural decode error.",
		}),
		PipelineRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "sumfile_etl",
			Name:      "pipeline_running",
			Help:      "1 when the pipeline is active, 0 when shut down.",
		}),
		BatchSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "sumfile_etl",
			Name:      "batch_size",
			Help:      "Number of sum files per batch picked up from the spool.",
			Buckets:   []float64{1, 2, 5, 10, 20, 50},
		}),
		BatchProcessingDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "sumfile_etl",
			Name:      "batch_processing_duration_seconds",
			Help:      "Duration of a complete batch extract-transform-load cycle.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10},
		}),
	}

	prometheus.MustRegister(
		m.FilesConsumed,
		m.CastsProduced,
		m.DecodeErrors,
		m.PipelineRunning,
		m.BatchSize,
		m.BatchProcessingDuration,
	)

	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		FilesConsumed:           prometheus.NewCounter(prometheus.CounterOpts{Namespace: "sumfile_etl", Name: "files_consumed_total"}),
		CastsProduced:           prometheus.NewCounter(prometheus.CounterOpts{Namespace: "sumfile_etl", Name: "casts_produced_total"}),
		DecodeErrors:            prometheus.NewCounter(prometheus.CounterOpts{Namespace: "sumfile_etl", Name: "decode_errors_total"}),
		PipelineRunning:         prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "sumfile_etl", Name: "pipeline_running"}),
		BatchSize:               prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "sumfile_etl", Name: "batch_size"}),
		BatchProcessingDuration: prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "sumfile_etl", Name: "batch_processing_duration_seconds"}),
	}
}
