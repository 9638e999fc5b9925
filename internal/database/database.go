package database

import (
	"context"
	"fmt"
	"time"

	"storefront/internal/config"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

const applicationName = "storefront"

// NewPool opens the storefront connection pool described by cfg.
func NewPool(ctx context.Context, cfg config.DatabaseConfig, logger zerolog.Logger) (*pgxpool.Pool, error) {
	return NewPoolFromURL(ctx, cfg.ConnectionString(), cfg, logger)
}

// NewPoolFromURL connects to connString with the pool sizing from cfg and
// pings the server once before returning.
func NewPoolFromURL(ctx context.Context, connString string, cfg config.DatabaseConfig, logger zerolog.Logger) (*pgxpool.Pool, error) {
	pc, err := poolConfig(connString, cfg)
	if err != nil {
		return nil, err
	}

	log := logger.With().
		Str("host", pc.ConnConfig.Host).
		Str("database", pc.ConnConfig.Database).
		Logger()
	log.Info().
		Int32("max_conns", pc.MaxConns).
		Int32("min_conns", pc.MinConns).
		Msg("connecting to postgres")

	pool, err := pgxpool.NewWithConfig(ctx, pc)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Info().Msg("postgres pool ready")
	return pool, nil
}

// poolConfig parses connString and applies the sizing from cfg. Zero sizes
// keep the pgxpool defaults.
func poolConfig(connString string, cfg config.DatabaseConfig) (*pgxpool.Config, error) {
	pc, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}

	if cfg.MaxConnections > 0 {
		pc.MaxConns = int32(cfg.MaxConnections)
	}
	if cfg.MinConnections > 0 {
		pc.MinConns = int32(cfg.MinConnections)
	}
	if cfg.MaxConnLifetime > 0 {
		pc.MaxConnLifetime = time.Duration(cfg.MaxConnLifetime) * time.Second
	}
	pc.MaxConnIdleTime = 30 * time.Minute
	pc.HealthCheckPeriod = time.Minute

	if _, ok := pc.ConnConfig.RuntimeParams["application_name"]; !ok {
		pc.ConnConfig.RuntimeParams["application_name"] = applicationName
	}
	return pc, nil
}
