// Package api wires the HTTP endpoints of the projection service.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	apiConfig "scenario_projection/pkg/api/config"
	"scenario_projection/pkg/api/report"
	"scenario_projection/pkg/api/response"
	"scenario_projection/pkg/api/units"
	"scenario_projection/pkg/core/pipeline"
	"scenario_projection/pkg/observability"
)

// Pinger reports whether a backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Options configure the router.
type Options struct {
	Storage        string // snapshot backend name shown by /v1/config
	Store          Pinger // nil: readiness does not depend on storage
	MaxBodyBytes   int64
	RequestTimeout time.Duration
}

// NewRouter creates the HTTP router with all routes and middleware.
func NewRouter(p *pipeline.ReportPipeline, opts Options, metrics *observability.Metrics, logger *zap.Logger) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if metrics == nil {
		metrics = observability.NewMetrics()
	}
	if p == nil {
		p = pipeline.NewReportPipeline(nil, nil, metrics, logger)
	}
	if opts.Storage == "" {
		opts.Storage = "none"
	}

	r := chi.NewRouter()

	// --- Middleware ---
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(observability.ZapLoggerMiddleware(logger, metrics))
	r.Use(observability.TracingMiddleware)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Heartbeat("/ping"))
	r.Use(corsMiddleware)
	if opts.RequestTimeout > 0 {
		r.Use(middleware.Timeout(opts.RequestTimeout))
	}

	// --- Operational endpoints ---
	r.Get("/healthz", healthzHandler())
	r.Get("/readyz", readyzHandler(opts.Store, logger))
	r.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))

	reports := report.NewHandler(p, logger, opts.MaxBodyBytes)
	unitsHandler := units.NewHandler(opts.MaxBodyBytes)
	configHandler := apiConfig.NewHandler(opts.Storage)

	// --- API v1 ---
	r.Route("/v1", func(r chi.Router) {

		// =============================================
		// 1. Capabilities
		// GET /v1/config
		// =============================================
		r.Get("/config", configHandler.HandleConfig)

		// =============================================
		// 2. Reports
		// POST /v1/reports[?kind=]
		// POST /v1/reports/render?format=markdown|html
		// POST /v1/periods
		// POST /v1/validate
		// =============================================
		r.Post("/reports", reports.HandleReports)
		r.Post("/reports/render", reports.HandleRender)
		r.Post("/periods", reports.HandlePeriods)
		r.Post("/validate", reports.HandleValidate)

		// =============================================
		// 3. Snapshots
		// POST /v1/snapshots
		// GET  /v1/snapshots?scenario_id=
		// GET  /v1/snapshots/{id}
		// =============================================
		r.Post("/snapshots", reports.HandleCreateSnapshot)
		r.Get("/snapshots", reports.HandleListSnapshots)
		r.Get("/snapshots/{id}", reports.HandleGetSnapshot)

		// =============================================
		// 4. Units
		// POST /v1/units/parse | format | normalize
		// =============================================
		r.Post("/units/parse", unitsHandler.HandleParse)
		r.Post("/units/format", unitsHandler.HandleFormat)
		r.Post("/units/normalize", unitsHandler.HandleNormalize)
	})

	return r
}

func healthzHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

func readyzHandler(store Pinger, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if store != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := store.Ping(ctx); err != nil {
				logger.Warn("readiness check failed", zap.Error(err))
				response.JSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
				return
			}
		}
		response.JSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}

// corsMiddleware allows the browser editor to call the API during local development.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}
