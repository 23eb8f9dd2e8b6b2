package observability

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewMetrics_Independent(t *testing.T) {
	a := NewMetrics()
	b := NewMetrics()

	a.RecordReport("cashflow", time.Millisecond, true)
	assert.Equal(t, 1.0, testutil.ToFloat64(a.reportFailures.WithLabelValues("cashflow")))
	assert.Equal(t, 0.0, testutil.ToFloat64(b.reportFailures.WithLabelValues("cashflow")))
}

func TestRecordSnapshotOp(t *testing.T) {
	m := NewMetrics()
	m.RecordSnapshotOp("save", nil)
	m.RecordSnapshotOp("save", errors.New("disk full"))
	m.RecordSnapshotOp("save", nil)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.snapshotOps.WithLabelValues("save", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.snapshotOps.WithLabelValues("save", "error")))
}

func TestMetricsAccessors(t *testing.T) {
	m := NewMetrics()
	m.RecordReport("balanceSheet", time.Millisecond, true)
	m.RecordSnapshotOp("get", nil)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.ReportFailures().WithLabelValues("balanceSheet")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SnapshotOps().WithLabelValues("get", "success")))

	n, err := testutil.GatherAndCount(m.Registry, "projection_report_failures_total")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestZapLoggerMiddleware_CountsRequests(t *testing.T) {
	m := NewMetrics()
	h := ZapLoggerMiddleware(zap.NewNop(), m)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte("ok"))
	}))

	for _, path := range []string{"/", "/", "/missing"} {
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("GET", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("GET", "404")))
}

func TestInitTracer_Disabled(t *testing.T) {
	shutdown, err := InitTracer(context.Background(), false, "", "test")
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}

func TestNewLogger(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "bogus"} {
		assert.NotNil(t, NewLogger(level))
	}
}
