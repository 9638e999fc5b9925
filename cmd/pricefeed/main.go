// Command pricefeed applies gzipped reprice and restock files to variants.
// Files are taken from the command line, or from PRICEFEED_FILES when none
// are given. Every row runs the same propagation as an API variant update.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"storefront/internal/app"
	"storefront/internal/config"
	"storefront/internal/database"
	"storefront/internal/events"
	"storefront/internal/pricefeed"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := config.NewLogger(cfg.Logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer pool.Close()

	publisher := events.NewPublisher(cfg.Kafka, logger)
	defer func() {
		if err := publisher.Close(); err != nil {
			logger.Error().Err(err).Msg("failed to close event publisher")
		}
	}()

	services := app.NewServices(pool, publisher, cfg.Orders.NumberOffset, logger)

	// S3 first, local files when the object is missing.
	loader := pricefeed.NewFileLoader(logger)
	if cfg.S3.Enabled {
		s3Loader, err := pricefeed.NewS3Loader(ctx, cfg.S3.Bucket, cfg.S3.Region, logger)
		if err != nil {
			logger.Warn().
				Err(err).
				Msg("failed to initialise S3 loader, falling back to local file system only")
		} else {
			loader = pricefeed.NewFallbackLoader(s3Loader, loader, cfg.S3.Prefix, true, logger)
		}
	} else {
		logger.Info().Msg("using local file system for price feeds (S3 disabled)")
	}

	files := args
	if len(files) == 0 {
		files = cfg.PriceFeed.Files
	}

	importer := pricefeed.NewImporter(loader, services.Variants, logger)
	result, err := importer.Run(ctx, files)
	if err != nil {
		return fmt.Errorf("price feed import failed: %w", err)
	}

	for _, rowErr := range result.Failed {
		logger.Warn().Err(rowErr.Err).
			Str("source", rowErr.Source).
			Int("line", rowErr.Line).
			Int64("variant_id", rowErr.VariantID).
			Msg("price feed row rejected")
	}
	logger.Info().
		Int("files", len(files)).
		Int("applied", result.Applied).
		Int("failed", len(result.Failed)).
		Msg("price feed import completed")

	return nil
}
