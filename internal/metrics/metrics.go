// Package metrics exposes Prometheus metrics for dataset imports.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Row outcomes.
const (
	OutcomeAccepted = "accepted"
	OutcomeExcluded = "excluded"
	OutcomeSkipped  = "skipped"
)

// Metrics holds the collectors of one service instance.
type Metrics struct {
	registry *prometheus.Registry

	importsTotal  *prometheus.CounterVec
	rowsTotal     *prometheus.CounterVec
	buildDuration prometheus.Summary
	records       prometheus.Gauge
	lastImportTS  prometheus.Gauge
	connections   prometheus.Gauge
}

// New creates and registers the collectors on a fresh registry.
func New() *Metrics {
	m := &Metrics{registry: prometheus.NewRegistry()}
	m.importsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "venueboard",
		Name:      "imports_total",
		Help:      "Number of dataset imports by source format and status",
	}, []string{"format", "status"})
	m.rowsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "venueboard",
		Name:      "rows_total",
		Help:      "Number of imported rows by outcome",
	}, []string{"outcome"})
	m.buildDuration = prometheus.NewSummary(prometheus.SummaryOpts{
		Namespace: "venueboard",
		Name:      "build_duration_seconds",
		Help:      "Time spent building a record collection",
	})
	m.records = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "venueboard",
		Name:      "records",
		Help:      "Number of records in the current dataset",
	})
	m.lastImportTS = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "venueboard",
		Name:      "last_import_timestamp_seconds",
		Help:      "Unix timestamp of the last successful import",
	})
	m.connections = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "venueboard",
		Name:      "websocket_connections",
		Help:      "Number of open websocket connections",
	})

	m.registry.MustRegister(
		m.importsTotal, m.rowsTotal, m.buildDuration,
		m.records, m.lastImportTS, m.connections,
	)
	return m
}

// ObserveImport records a finished import.
func (m *Metrics) ObserveImport(format string, err error, accepted, excluded, skipped int, took time.Duration) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.importsTotal.WithLabelValues(format, status).Inc()
	m.buildDuration.Observe(took.Seconds())
	if err != nil {
		return
	}
	m.rowsTotal.WithLabelValues(OutcomeAccepted).Add(float64(accepted))
	m.rowsTotal.WithLabelValues(OutcomeExcluded).Add(float64(excluded))
	m.rowsTotal.WithLabelValues(OutcomeSkipped).Add(float64(skipped))
	m.records.Set(float64(accepted))
	m.lastImportTS.SetToCurrentTime()
}

// SetConnections records the number of open websocket connections.
func (m *Metrics) SetConnections(n int) {
	m.connections.Set(float64(n))
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the metrics in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
