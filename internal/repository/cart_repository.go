package repository

import (
	"context"
	"errors"
	"fmt"

	"storefront/internal/model"
	"storefront/internal/pricing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

const cartItemColumns = `id, cart_id, variant_id, quantity, created_at`

// cartRepository implements the CartRepository interface using PostgreSQL.
type cartRepository struct {
	logger zerolog.Logger
}

// NewCartRepository creates a new PostgreSQL-backed cart repository.
func NewCartRepository(logger zerolog.Logger) CartRepository {
	return &cartRepository{
		logger: logger.With().Str("repository", "cart").Logger(),
	}
}

func scanCartItem(s scanner) (*model.CartItem, error) {
	var it model.CartItem
	if err := s.Scan(&it.ID, &it.CartID, &it.VariantID, &it.Quantity, &it.CreatedAt); err != nil {
		return nil, err
	}
	return &it, nil
}

func (r *cartRepository) CreateCart(ctx context.Context, q Querier, c *model.Cart) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	err := q.QueryRow(ctx, `INSERT INTO carts (id) VALUES ($1) RETURNING created_at`, c.ID).Scan(&c.CreatedAt)
	if err != nil {
		r.logger.Error().Err(err).Str("cart_id", c.ID.String()).Msg("failed to create cart")
		return fmt.Errorf("failed to create cart: %w", err)
	}
	return nil
}

func (r *cartRepository) getCart(ctx context.Context, q Querier, id uuid.UUID, lock bool) (*model.Cart, error) {
	query := `SELECT id, created_at FROM carts WHERE id = $1`
	if lock {
		query += ` FOR UPDATE`
	}
	var c model.Cart
	if err := q.QueryRow(ctx, query, id).Scan(&c.ID, &c.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error().Err(err).Str("cart_id", id.String()).Msg("failed to query cart")
		return nil, fmt.Errorf("failed to query cart: %w", err)
	}
	return &c, nil
}

func (r *cartRepository) GetCart(ctx context.Context, q Querier, id uuid.UUID) (*model.Cart, error) {
	return r.getCart(ctx, q, id, false)
}

func (r *cartRepository) GetCartForUpdate(ctx context.Context, q Querier, id uuid.UUID) (*model.Cart, error) {
	return r.getCart(ctx, q, id, true)
}

// DeleteCart removes the cart and, through the foreign key, its lines.
func (r *cartRepository) DeleteCart(ctx context.Context, q Querier, id uuid.UUID) (bool, error) {
	tag, err := q.Exec(ctx, `DELETE FROM carts WHERE id = $1`, id)
	if err != nil {
		r.logger.Error().Err(err).Str("cart_id", id.String()).Msg("failed to delete cart")
		return false, fmt.Errorf("failed to delete cart: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *cartRepository) getItem(ctx context.Context, q Querier, query string, args ...any) (*model.CartItem, error) {
	it, err := scanCartItem(q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query cart item: %w", err)
	}
	return it, nil
}

func (r *cartRepository) GetItem(ctx context.Context, q Querier, cartID uuid.UUID, itemID int64) (*model.CartItem, error) {
	return r.getItem(ctx, q,
		`SELECT `+cartItemColumns+` FROM cart_items WHERE cart_id = $1 AND id = $2`, cartID, itemID)
}

func (r *cartRepository) GetItemByVariant(ctx context.Context, q Querier, cartID uuid.UUID, variantID int64) (*model.CartItem, error) {
	return r.getItem(ctx, q,
		`SELECT `+cartItemColumns+` FROM cart_items WHERE cart_id = $1 AND variant_id = $2`, cartID, variantID)
}

// SaveItem inserts the line or overwrites the quantity of the existing line
// for the same variant.
func (r *cartRepository) SaveItem(ctx context.Context, q Querier, item *model.CartItem) error {
	query := `
		INSERT INTO cart_items (cart_id, variant_id, quantity)
		VALUES ($1, $2, $3)
		ON CONFLICT (cart_id, variant_id) DO UPDATE SET quantity = EXCLUDED.quantity
		RETURNING ` + cartItemColumns

	saved, err := scanCartItem(q.QueryRow(ctx, query, item.CartID, item.VariantID, item.Quantity))
	if err != nil {
		r.logger.Error().Err(err).
			Str("cart_id", item.CartID.String()).
			Int64("variant_id", item.VariantID).
			Msg("failed to save cart item")
		return fmt.Errorf("failed to save cart item: %w", err)
	}
	*item = *saved
	return nil
}

func (r *cartRepository) DeleteItem(ctx context.Context, q Querier, cartID uuid.UUID, itemID int64) (bool, error) {
	tag, err := q.Exec(ctx, `DELETE FROM cart_items WHERE cart_id = $1 AND id = $2`, cartID, itemID)
	if err != nil {
		return false, fmt.Errorf("failed to delete cart item: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *cartRepository) listItems(ctx context.Context, q Querier, query string, arg any) ([]model.CartItem, error) {
	rows, err := q.Query(ctx, query, arg)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query cart items")
		return nil, fmt.Errorf("failed to query cart items: %w", err)
	}
	defer rows.Close()

	var items []model.CartItem
	for rows.Next() {
		it, err := scanCartItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan cart item: %w", err)
		}
		items = append(items, *it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating cart items: %w", err)
	}
	return items, nil
}

func (r *cartRepository) ListItems(ctx context.Context, q Querier, cartID uuid.UUID) ([]model.CartItem, error) {
	return r.listItems(ctx, q,
		`SELECT `+cartItemColumns+` FROM cart_items WHERE cart_id = $1 ORDER BY id`, cartID)
}

// ListItemsByVariant locks and returns every cart line for a variant.
func (r *cartRepository) ListItemsByVariant(ctx context.Context, q Querier, variantID int64) ([]model.CartItem, error) {
	return r.listItems(ctx, q,
		`SELECT `+cartItemColumns+` FROM cart_items WHERE variant_id = $1 ORDER BY id FOR UPDATE`, variantID)
}

// ListLines joins each line with its variant and product. Line totals use
// the discounted price when the variant has a resolved discount.
func (r *cartRepository) ListLines(ctx context.Context, q Querier, cartID uuid.UUID) ([]model.CartLine, error) {
	query := `
		SELECT ci.id, ci.cart_id, ci.variant_id, ci.quantity, ci.created_at,
			p.id, p.title, v.title, v.price, v.discounted_price
		FROM cart_items ci
		JOIN product_variants v ON v.id = ci.variant_id
		JOIN products p ON p.id = v.product_id
		WHERE ci.cart_id = $1
		ORDER BY ci.id
	`

	rows, err := q.Query(ctx, query, cartID)
	if err != nil {
		r.logger.Error().Err(err).Str("cart_id", cartID.String()).Msg("failed to query cart lines")
		return nil, fmt.Errorf("failed to query cart lines: %w", err)
	}
	defer rows.Close()

	var lines []model.CartLine
	for rows.Next() {
		var l model.CartLine
		if err := rows.Scan(
			&l.ID, &l.CartID, &l.VariantID, &l.Quantity, &l.CreatedAt,
			&l.ProductID, &l.ProductTitle, &l.VariantTitle, &l.Price, &l.DiscountedPrice,
		); err != nil {
			return nil, fmt.Errorf("failed to scan cart line: %w", err)
		}
		unit := l.Price
		if l.DiscountedPrice != nil {
			unit = *l.DiscountedPrice
		}
		l.LineTotal = unit * int64(l.Quantity)
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating cart lines: %w", err)
	}
	return lines, nil
}

// ApplyPlan writes a reconcile plan in a single round trip.
func (r *cartRepository) ApplyPlan(ctx context.Context, q Querier, plan pricing.CartPlan) error {
	if plan.Empty() {
		return nil
	}

	batch := &pgx.Batch{}
	if len(plan.Delete) > 0 {
		batch.Queue(`DELETE FROM cart_items WHERE id = ANY($1)`, plan.Delete)
	}
	if len(plan.Update) > 0 {
		ids := make([]int64, len(plan.Update))
		qty := make([]int32, len(plan.Update))
		for i, u := range plan.Update {
			ids[i] = u.ID
			qty[i] = int32(u.Quantity)
		}
		batch.Queue(`
			UPDATE cart_items AS ci SET quantity = u.quantity
			FROM unnest($1::bigint[], $2::int[]) AS u(id, quantity)
			WHERE ci.id = u.id`, ids, qty)
	}

	if err := execBatch(ctx, q, batch); err != nil {
		r.logger.Error().Err(err).
			Int("deleted", len(plan.Delete)).
			Int("updated", len(plan.Update)).
			Msg("failed to apply cart plan")
		return fmt.Errorf("failed to apply cart plan: %w", err)
	}
	return nil
}
