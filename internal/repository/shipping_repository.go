package repository

import (
	"context"
	"errors"
	"fmt"

	"storefront/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

const shippingColumns = `id, name, price, delivery_time_hours, active, created_at, updated_at`

type shippingRepository struct {
	logger zerolog.Logger
}

// NewShippingRepository creates a new PostgreSQL-backed shipping method repository.
func NewShippingRepository(logger zerolog.Logger) ShippingRepository {
	return &shippingRepository{
		logger: logger.With().Str("repository", "shipping").Logger(),
	}
}

func scanShippingMethod(s scanner) (*model.ShippingMethod, error) {
	var m model.ShippingMethod
	if err := s.Scan(&m.ID, &m.Name, &m.Price, &m.DeliveryTimeHours, &m.Active, &m.CreatedAt, &m.UpdatedAt); err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *shippingRepository) Create(ctx context.Context, q Querier, m *model.ShippingMethod) error {
	query := `
		INSERT INTO shipping_methods (name, price, delivery_time_hours, active)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + shippingColumns

	created, err := scanShippingMethod(q.QueryRow(ctx, query, m.Name, m.Price, m.DeliveryTimeHours, m.Active))
	if err != nil {
		r.logger.Error().Err(err).Str("name", m.Name).Msg("failed to create shipping method")
		return fmt.Errorf("failed to create shipping method: %w", err)
	}
	*m = *created
	return nil
}

// get reads a method, appending lock ("", "FOR SHARE" or "FOR UPDATE").
func (r *shippingRepository) get(ctx context.Context, q Querier, id int64, lock string) (*model.ShippingMethod, error) {
	query := `SELECT ` + shippingColumns + ` FROM shipping_methods WHERE id = $1 ` + lock
	m, err := scanShippingMethod(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error().Err(err).Int64("shipping_method_id", id).Msg("failed to query shipping method")
		return nil, fmt.Errorf("failed to query shipping method: %w", err)
	}
	return m, nil
}

func (r *shippingRepository) GetByID(ctx context.Context, q Querier, id int64) (*model.ShippingMethod, error) {
	return r.get(ctx, q, id, "")
}

func (r *shippingRepository) GetForUpdate(ctx context.Context, q Querier, id int64) (*model.ShippingMethod, error) {
	return r.get(ctx, q, id, "FOR UPDATE")
}

// GetForShare reads a method and blocks price changes to it until the
// caller commits. Checkout copies the price under this lock so a concurrent
// reprice waits and then sees the new order.
func (r *shippingRepository) GetForShare(ctx context.Context, q Querier, id int64) (*model.ShippingMethod, error) {
	return r.get(ctx, q, id, "FOR SHARE")
}

func (r *shippingRepository) List(ctx context.Context, q Querier, activeOnly bool) ([]model.ShippingMethod, error) {
	query := `SELECT ` + shippingColumns + ` FROM shipping_methods`
	if activeOnly {
		query += ` WHERE active`
	}
	query += ` ORDER BY id`

	rows, err := q.Query(ctx, query)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query shipping methods")
		return nil, fmt.Errorf("failed to query shipping methods: %w", err)
	}
	defer rows.Close()

	var methods []model.ShippingMethod
	for rows.Next() {
		m, err := scanShippingMethod(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan shipping method: %w", err)
		}
		methods = append(methods, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating shipping methods: %w", err)
	}
	return methods, nil
}

func (r *shippingRepository) Update(ctx context.Context, q Querier, m *model.ShippingMethod) error {
	err := q.QueryRow(ctx, `
		UPDATE shipping_methods SET
			name = $2, price = $3, delivery_time_hours = $4, active = $5, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`,
		m.ID, m.Name, m.Price, m.DeliveryTimeHours, m.Active,
	).Scan(&m.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.ErrShippingNotFound
		}
		r.logger.Error().Err(err).Int64("shipping_method_id", m.ID).Msg("failed to update shipping method")
		return fmt.Errorf("failed to update shipping method: %w", err)
	}
	return nil
}
