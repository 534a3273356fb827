// Command etl runs the sum file ETL service: it watches a spool directory
// for WOCE sum files, decodes them into casts, and publishes the casts to a
// Kafka topic, with health and metrics endpoints on the side.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpadapter "github.com/tidewrack/sumfile-etl/internal/adapter/http"
	kafkaadapter "github.com/tidewrack/sumfile-etl/internal/adapter/kafka"
	"github.com/tidewrack/sumfile-etl/internal/adapter/spool"
	"github.com/tidewrack/sumfile-etl/internal/config"
	"github.com/tidewrack/sumfile-etl/internal/observability"
	"github.com/tidewrack/sumfile-etl/internal/pipeline"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	scanner := spool.NewScanner(cfg, logger)
	transformer := pipeline.NewTransformer(cfg.EmptyCols, logger)
	writer := kafkaadapter.NewWriter(cfg, logger)

	p := pipeline.New(scanner, transformer, writer, logger, metrics, cfg.BatchSize)

	srv := httpadapter.NewServer(cfg.HTTPAddr, p, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Start HTTP server.
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	// Start ETL pipeline.
	go func() {
		if err := p.Run(ctx); err != nil {
			logger.Error("pipeline error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if err := writer.Close(); err != nil {
		logger.Error("kafka writer close error", "error", err)
	}

	logger.Info("shutdown complete")
}
