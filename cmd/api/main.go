package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"scenario_projection/pkg/api"
	"scenario_projection/pkg/config"
	"scenario_projection/pkg/core/pipeline"
	"scenario_projection/pkg/core/projection"
	"scenario_projection/pkg/core/store"
	"scenario_projection/pkg/observability"
)

func main() {
	// --- Config ---
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	// --- Logger ---
	logger := observability.NewLogger(cfg.LogLevel)
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	logger.Info("configuration loaded",
		zap.Int("port", cfg.Port),
		zap.String("log_level", cfg.LogLevel),
		zap.Bool("database", cfg.DatabaseURL != ""),
		zap.String("snapshot_dir", cfg.SnapshotDir),
		zap.Bool("tracing", cfg.TracingEnabled),
		zap.Duration("request_timeout", cfg.RequestTimeout),
	)

	// --- Tracing ---
	shutdown, err := observability.InitTracer(context.Background(), cfg.TracingEnabled, cfg.OTLPEndpoint, cfg.ServiceName)
	if err != nil {
		logger.Fatal("failed to init tracer", zap.Error(err))
	}
	defer shutdown(context.Background())

	// --- Metrics ---
	metrics := observability.NewMetrics()

	// --- Storage ---
	// Postgres when DATABASE_URL is set, otherwise JSON files under SNAPSHOT_DIR.
	if cfg.DatabaseURL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := store.InitDB(ctx, cfg.DatabaseURL); err != nil {
			logger.Warn("database unavailable, falling back to file archive", zap.Error(err))
		} else if err := store.EnsureSchema(ctx, store.GetPool()); err != nil {
			logger.Fatal("failed to migrate schema", zap.Error(err))
		}
		cancel()
		defer store.Close()
	}
	archive := store.NewSnapshotArchive(store.GetPool(), cfg.SnapshotDir)
	logger.Info("snapshot archive ready", zap.String("backend", archive.Backend()))

	// --- Pipeline ---
	engine := projection.NewEngine(logger)
	reports := pipeline.NewReportPipeline(engine, archive, metrics, logger)

	// --- Router ---
	router := api.NewRouter(reports, api.Options{
		Storage:        archive.Backend(),
		Store:          archive,
		MaxBodyBytes:   cfg.MaxBodyBytes,
		RequestTimeout: cfg.RequestTimeout,
	}, metrics, logger)

	// --- Server ---
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: cfg.RequestTimeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// --- Graceful shutdown ---
	go func() {
		logger.Info("server starting", zap.Int("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("server shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("server forced shutdown", zap.Error(err))
	}

	logger.Info("server stopped")
}
