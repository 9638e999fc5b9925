package database

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"sort"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// Migrate applies every embedded migration that has not run yet. Each file
// runs in its own transaction together with its bookkeeping row.
func Migrate(ctx context.Context, pool *pgxpool.Pool, logger zerolog.Logger) error {
	logger = logger.With().Str("component", "migrate").Logger()

	if _, err := pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			name TEXT PRIMARY KEY,
			applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`); err != nil {
		return fmt.Errorf("failed to create schema_migrations: %w", err)
	}

	names, err := fs.Glob(migrationFiles, "migrations/*.sql")
	if err != nil {
		return fmt.Errorf("failed to list migrations: %w", err)
	}
	sort.Strings(names)

	for _, name := range names {
		applied, err := applyMigration(ctx, pool, name)
		if err != nil {
			logger.Error().Err(err).Str("migration", name).Msg("migration failed")
			return err
		}
		if applied {
			logger.Info().Str("migration", name).Msg("migration applied")
		}
	}

	return nil
}

func applyMigration(ctx context.Context, pool *pgxpool.Pool, name string) (applied bool, err error) {
	body, err := migrationFiles.ReadFile(name)
	if err != nil {
		return false, fmt.Errorf("failed to read migration %s: %w", name, err)
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to begin migration %s: %w", name, err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	// Serialize concurrent starters on the bookkeeping table.
	if _, err = tx.Exec(ctx, "LOCK TABLE schema_migrations IN EXCLUSIVE MODE"); err != nil {
		return false, fmt.Errorf("failed to lock schema_migrations: %w", err)
	}

	var exists bool
	err = tx.QueryRow(ctx, "SELECT EXISTS (SELECT 1 FROM schema_migrations WHERE name = $1)", name).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check migration %s: %w", name, err)
	}
	if exists {
		err = tx.Rollback(ctx)
		return false, err
	}

	if _, err = tx.Exec(ctx, string(body)); err != nil {
		return false, fmt.Errorf("failed to apply migration %s: %w", name, err)
	}
	if _, err = tx.Exec(ctx, "INSERT INTO schema_migrations (name) VALUES ($1)", name); err != nil {
		return false, fmt.Errorf("failed to record migration %s: %w", name, err)
	}

	if err = tx.Commit(ctx); err != nil {
		return false, fmt.Errorf("failed to commit migration %s: %w", name, err)
	}
	return true, nil
}

// Reset empties every domain table and restarts identities. Used by
// integration tests between cases.
func Reset(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, `
		TRUNCATE order_items, orders, shipping_methods, cart_items, carts,
			wishlist_items, wishlists, product_comments, product_reviews, product_variants, products, variables, discounts,
			subcategories, categories
		RESTART IDENTITY CASCADE`)
	if err != nil {
		return fmt.Errorf("failed to reset database: %w", err)
	}
	return nil
}
