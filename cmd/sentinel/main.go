// Command sentinel runs the landslide early-warning service: it loads the
// terrain grid, runs the live monitoring loop in the background, and exposes
// health, metrics, and on-demand simulation endpoints over HTTP.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/sentinel-lews/risk-engine/internal/adapter/httpapi"
	kafkaadapter "github.com/sentinel-lews/risk-engine/internal/adapter/kafka"
	"github.com/sentinel-lews/risk-engine/internal/config"
	"github.com/sentinel-lews/risk-engine/internal/hydro"
	"github.com/sentinel-lews/risk-engine/internal/ingest"
	"github.com/sentinel-lews/risk-engine/internal/observability"
	"github.com/sentinel-lews/risk-engine/internal/pipeline"
	"github.com/sentinel-lews/risk-engine/internal/risk"
	"github.com/sentinel-lews/risk-engine/internal/sim"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()

	if cfg.GridPath == "" {
		logger.Error("GRID_PATH is required")
		os.Exit(1)
	}
	grid, err := ingest.LoadGrid(cfg.GridPath)
	if err != nil {
		logger.Error("failed to load terrain grid", "error", err, "path", cfg.GridPath)
		os.Exit(1)
	}
	logger.Info("terrain grid loaded", "path", cfg.GridPath, "cells", grid.Len())

	// Alert publishing is feature-flagged via ALERTS_ENABLED.
	var sink pipeline.AlertSink
	var publisher *kafkaadapter.Publisher
	if cfg.AlertsEnabled {
		publisher = kafkaadapter.NewPublisher(cfg, logger)
		sink = publisher
		logger.Info("kafka alert publishing enabled", "topic", cfg.KafkaAlertTopic, "brokers", cfg.KafkaBrokers)
	} else {
		logger.Info("kafka alert publishing disabled")
	}

	source := sim.NewSyntheticSource(nil, cfg.SimSeed)
	gen := risk.NewGenerator()
	gen.Threshold = cfg.RiskThreshold
	tracker := hydro.NewTracker(grid.Len(), hydro.DefaultInitialSaturation)

	engine := pipeline.New(grid, tracker, source, sink, gen, logger, metrics)
	engine.SetStormDuration(cfg.StormHours)

	srv := httpapi.NewServer(grid, cfg, engine, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Start HTTP server.
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	// Start the live monitoring loop. Unbounded; the cycle interval paces it.
	go func() {
		if err := engine.Run(ctx, 0, cfg.CycleInterval, nil); err != nil {
			logger.Error("monitoring loop error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if publisher != nil {
		if err := publisher.Close(); err != nil {
			logger.Error("kafka publisher close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
