package observability

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics of the projection service.
type Metrics struct {
	// Registry is the Prometheus registry that owns these metrics.
	// Exposed so the /metrics endpoint can use it.
	Registry *prometheus.Registry

	reportDuration *prometheus.HistogramVec
	reportFailures *prometheus.CounterVec
	snapshotOps    *prometheus.CounterVec
	httpRequests   *prometheus.CounterVec
}

// NewMetrics creates a dedicated Prometheus registry and registers all
// application metrics in it. Using a private registry avoids "duplicate
// collector" panics when NewMetrics is called more than once (e.g. in tests).
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		Registry: reg,

		reportDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "projection_report_duration_seconds",
				Help:    "Duration of report computations by kind.",
				Buckets: []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
			},
			[]string{"kind"},
		),
		reportFailures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "projection_report_failures_total",
				Help: "Total report computations that ended with an error.",
			},
			[]string{"kind"},
		),
		snapshotOps: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "projection_snapshot_operations_total",
				Help: "Total snapshot archive operations by operation and result.",
			},
			[]string{"operation", "result"},
		),
		httpRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "projection_http_requests_total",
				Help: "Total HTTP requests by method and status.",
			},
			[]string{"method", "status"},
		),
	}
}

// RecordReport records one report computation.
func (m *Metrics) RecordReport(kind string, d time.Duration, failed bool) {
	m.reportDuration.WithLabelValues(kind).Observe(d.Seconds())
	if failed {
		m.reportFailures.WithLabelValues(kind).Inc()
	}
}

// RecordSnapshotOp counts an archive operation; err == nil counts as success.
func (m *Metrics) RecordSnapshotOp(operation string, err error) {
	result := "success"
	if err != nil {
		result = "error"
	}
	m.snapshotOps.WithLabelValues(operation, result).Inc()
}

// IncrHTTPRequest increments the request counter.
func (m *Metrics) IncrHTTPRequest(method string, status int) {
	m.httpRequests.WithLabelValues(method, strconv.Itoa(status)).Inc()
}

// ReportFailures exposes the failure counter, labelled by kind.
func (m *Metrics) ReportFailures() *prometheus.CounterVec { return m.reportFailures }

// SnapshotOps exposes the archive counter, labelled by operation and result.
func (m *Metrics) SnapshotOps() *prometheus.CounterVec { return m.snapshotOps }
