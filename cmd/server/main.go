// Package main provides the entry point for the arXiv query service.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/arxivq/arxiv-query-service/internal/arxiv"
	"github.com/arxivq/arxiv-query-service/internal/config"
	"github.com/arxivq/arxiv-query-service/internal/observability"
	"github.com/arxivq/arxiv-query-service/internal/query"
	httpserver "github.com/arxivq/arxiv-query-service/internal/server/http"
)

// metricsNamespace prefixes every Prometheus metric the service exports.
const metricsNamespace = "arxivquery"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// Set up structured logging.
	logger := observability.NewLogger(observability.LoggingConfig{
		Level:      cfg.Logging.Level,
		Format:     cfg.Logging.Format,
		Output:     cfg.Logging.Output,
		AddSource:  cfg.Logging.AddSource,
		TimeFormat: cfg.Logging.TimeFormat,
	})
	logger = logger.With().Str("component", "server").Logger()
	logger.Info().Msg("arxiv-query-service starting")

	// Set up context with graceful shutdown via OS signals.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Register Prometheus collectors when metrics are enabled.
	var metrics *observability.Metrics
	if cfg.Metrics.Enabled {
		metrics = observability.NewMetrics(metricsNamespace)
	}

	// Create the query parser with the configured timezone offset.
	parser := query.New(query.WithTimezoneOffset(cfg.Parser.TimezoneOffsetHours))

	// Create the arXiv API client.
	arxivCfg := arxiv.Config{
		BaseURL:    cfg.ArXiv.BaseURL,
		Timeout:    cfg.ArXiv.Timeout,
		RateLimit:  cfg.ArXiv.RateLimit,
		BurstSize:  cfg.ArXiv.BurstSize,
		MaxResults: cfg.ArXiv.MaxResults,
	}
	if metrics != nil {
		arxivCfg.Metrics = metrics
	}
	arxivClient := arxiv.New(arxivCfg)
	logger.Info().
		Str("base_url", cfg.ArXiv.BaseURL).
		Float64("rate_limit", cfg.ArXiv.RateLimit).
		Msg("arXiv client configured")

	// Create the HTTP REST API server.
	httpCfg := httpserver.Config{
		Address:         cfg.Server.HTTPAddress(),
		MetricsPath:     cfg.Metrics.Path,
		ReadTimeout:     cfg.Server.ReadTimeout,
		WriteTimeout:    cfg.Server.WriteTimeout,
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	}
	httpSrv := httpserver.NewServer(httpCfg, parser, arxivClient, metrics, logger)

	// Channel to collect server errors.
	errCh := make(chan error, 1)

	// Start HTTP server in background.
	go func() {
		if err := httpSrv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	logger.Info().
		Str("http_address", httpCfg.Address).
		Msg("arxiv-query-service is ready")

	// Wait for shutdown signal or server error.
	select {
	case <-ctx.Done():
		logger.Info().Msg("received shutdown signal")
	case err := <-errCh:
		logger.Error().Err(err).Msg("server error")
		return err
	}

	// Graceful shutdown.
	logger.Info().Msg("shutting down arxiv-query-service")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("HTTP server shutdown error")
		return err
	}

	logger.Info().Msg("shutdown complete")
	return nil
}
