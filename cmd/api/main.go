// Command api serves the storefront HTTP API.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"storefront/internal/app"
	"storefront/internal/config"
	"storefront/internal/database"
	"storefront/internal/events"

	"github.com/rs/zerolog"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := config.NewLogger(cfg.Logger)
	logger.Info().
		Int64("order_number_offset", cfg.Orders.NumberOffset).
		Bool("kafka", cfg.Kafka.Enabled).
		Msg("starting storefront API server")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer pool.Close()

	if cfg.Database.AutoMigrate {
		if err := database.Migrate(ctx, pool, logger); err != nil {
			return fmt.Errorf("failed to migrate database: %w", err)
		}
	}

	publisher := events.NewPublisher(cfg.Kafka, logger)
	defer func() {
		if err := publisher.Close(); err != nil {
			logger.Error().Err(err).Msg("failed to close event publisher")
		}
	}()

	services := app.NewServices(pool, publisher, cfg.Orders.NumberOffset, logger)

	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      services.Handler(cfg.Auth.APIKey, logger),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	return serve(ctx, server, cfg.Server.ShutdownTimeout, logger)
}

// serve runs server until it fails or ctx is cancelled, then drains
// in-flight requests for at most grace.
func serve(ctx context.Context, server *http.Server, grace time.Duration, logger zerolog.Logger) error {
	failed := make(chan error, 1)
	go func() {
		logger.Info().Str("address", server.Addr).Msg("HTTP server started")
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			failed <- err
		}
		close(failed)
	}()

	select {
	case err, ok := <-failed:
		if !ok {
			return nil
		}
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	logger.Info().Msg("shutdown signal received, draining requests")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), grace)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		// Requests still running after the grace period are cut off.
		_ = server.Close()
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	logger.Info().Msg("server shutdown completed")
	return nil
}
