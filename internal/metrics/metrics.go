// Package metrics exposes Prometheus instrumentation for the facade,
// the state store and the change stream.
package metrics

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "teamboard"

var (
	Registry = prometheus.NewRegistry()

	FacadeCalls = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "facade",
		Name:      "calls_total",
		Help:      "Facade calls by operation and outcome kind.",
	}, []string{"op", "result"})

	FacadeDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "facade",
		Name:      "call_duration_seconds",
		Help:      "Facade call duration including simulated latency.",
		Buckets:   []float64{0.01, 0.05, 0.1, 0.15, 0.2, 0.3, 0.4, 0.5, 1},
	}, []string{"op"})

	Dispatches = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "state",
		Name:      "dispatches_total",
		Help:      "Actions dispatched to the state store.",
	}, []string{"action"})

	PersistFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "state",
		Name:      "persist_failures_total",
		Help:      "Snapshot writes that failed.",
	})

	StreamClients = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "events",
		Name:      "clients",
		Help:      "Connected change stream clients.",
	})
)

func init() {
	Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		FacadeCalls,
		FacadeDuration,
		Dispatches,
		PersistFailures,
		StreamClients,
	)
}

// ObserveFacadeCall records one facade call. result is "ok" or the
// failure kind.
func ObserveFacadeCall(op, result string, took time.Duration) {
	FacadeCalls.WithLabelValues(op, result).Inc()
	FacadeDuration.WithLabelValues(op).Observe(took.Seconds())
}

func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// RegisterDB exports connection pool stats for db.
func RegisterDB(db *sql.DB, name string) error {
	return Registry.Register(collectors.NewDBStatsCollector(db, name))
}
