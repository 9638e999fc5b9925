package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// Querier is the subset of pgx shared by *pgxpool.Pool and pgx.Tx. Every
// repository method takes one so a whole propagation chain can run on the
// caller's transaction.
type Querier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
}

// Transactor starts database transactions.
type Transactor interface {
	// BeginTx starts a new read committed transaction.
	BeginTx(ctx context.Context) (pgx.Tx, error)
}

type transactor struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewTransactor creates a Transactor backed by pool.
func NewTransactor(pool *pgxpool.Pool, logger zerolog.Logger) Transactor {
	return &transactor{
		pool:   pool,
		logger: logger.With().Str("repository", "tx").Logger(),
	}
}

// BeginTx starts a new database transaction.
func (t *transactor) BeginTx(ctx context.Context) (pgx.Tx, error) {
	tx, err := t.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		t.logger.Error().Err(err).Msg("failed to begin transaction")
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return tx, nil
}

// scanner is implemented by pgx.Row and pgx.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// execBatch sends b and drains one Exec result per queued statement.
func execBatch(ctx context.Context, q Querier, b *pgx.Batch) error {
	if b.Len() == 0 {
		return nil
	}
	results := q.SendBatch(ctx, b)
	defer results.Close()

	for i := 0; i < b.Len(); i++ {
		if _, err := results.Exec(); err != nil {
			return err
		}
	}
	return results.Close()
}
