package repository

import (
	"context"
	"errors"
	"fmt"

	"storefront/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

// wishlistRepository implements the WishlistRepository interface using PostgreSQL.
type wishlistRepository struct {
	logger zerolog.Logger
}

// NewWishlistRepository creates a new PostgreSQL-backed wishlist repository.
func NewWishlistRepository(logger zerolog.Logger) WishlistRepository {
	return &wishlistRepository{
		logger: logger.With().Str("repository", "wishlist").Logger(),
	}
}

func (r *wishlistRepository) CreateWishlist(ctx context.Context, q Querier, w *model.Wishlist) error {
	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}
	err := q.QueryRow(ctx,
		`INSERT INTO wishlists (id) VALUES ($1) RETURNING created_at, updated_at`, w.ID,
	).Scan(&w.CreatedAt, &w.UpdatedAt)
	if err != nil {
		r.logger.Error().Err(err).Str("wishlist_id", w.ID.String()).Msg("failed to create wishlist")
		return fmt.Errorf("failed to create wishlist: %w", err)
	}
	return nil
}

func (r *wishlistRepository) GetWishlist(ctx context.Context, q Querier, id uuid.UUID) (*model.Wishlist, error) {
	var w model.Wishlist
	err := q.QueryRow(ctx,
		`SELECT id, created_at, updated_at FROM wishlists WHERE id = $1`, id,
	).Scan(&w.ID, &w.CreatedAt, &w.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error().Err(err).Str("wishlist_id", id.String()).Msg("failed to query wishlist")
		return nil, fmt.Errorf("failed to query wishlist: %w", err)
	}
	return &w, nil
}

// DeleteWishlist removes the wishlist and, through the foreign key, its items.
func (r *wishlistRepository) DeleteWishlist(ctx context.Context, q Querier, id uuid.UUID) (bool, error) {
	tag, err := q.Exec(ctx, `DELETE FROM wishlists WHERE id = $1`, id)
	if err != nil {
		r.logger.Error().Err(err).Str("wishlist_id", id.String()).Msg("failed to delete wishlist")
		return false, fmt.Errorf("failed to delete wishlist: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// AddItem inserts the product. The unique key makes a repeated add a no-op
// reported as false.
func (r *wishlistRepository) AddItem(ctx context.Context, q Querier, item *model.WishlistItem) (bool, error) {
	err := q.QueryRow(ctx, `
		INSERT INTO wishlist_items (wishlist_id, product_id)
		VALUES ($1, $2)
		ON CONFLICT (wishlist_id, product_id) DO NOTHING
		RETURNING id, created_at`,
		item.WishlistID, item.ProductID,
	).Scan(&item.ID, &item.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		r.logger.Error().Err(err).
			Str("wishlist_id", item.WishlistID.String()).
			Int64("product_id", item.ProductID).
			Msg("failed to add wishlist item")
		return false, fmt.Errorf("failed to add wishlist item: %w", err)
	}

	if _, err := q.Exec(ctx, `UPDATE wishlists SET updated_at = NOW() WHERE id = $1`, item.WishlistID); err != nil {
		return false, fmt.Errorf("failed to touch wishlist: %w", err)
	}
	return true, nil
}

func (r *wishlistRepository) RemoveItem(ctx context.Context, q Querier, wishlistID uuid.UUID, productID int64) (bool, error) {
	tag, err := q.Exec(ctx,
		`DELETE FROM wishlist_items WHERE wishlist_id = $1 AND product_id = $2`, wishlistID, productID)
	if err != nil {
		return false, fmt.Errorf("failed to remove wishlist item: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// ListLines reads the stored derived fields so that each line shows the same
// price view as the product detail.
func (r *wishlistRepository) ListLines(ctx context.Context, q Querier, wishlistID uuid.UUID) ([]model.WishlistLine, error) {
	query := `
		SELECT wi.id, wi.wishlist_id, wi.product_id, wi.created_at,
			p.title, p.price, p.discounted_price, p.discount_amount, p.has_discount, p.in_stock
		FROM wishlist_items wi
		JOIN products p ON p.id = wi.product_id
		WHERE wi.wishlist_id = $1
		ORDER BY wi.id
	`

	rows, err := q.Query(ctx, query, wishlistID)
	if err != nil {
		r.logger.Error().Err(err).Str("wishlist_id", wishlistID.String()).Msg("failed to query wishlist lines")
		return nil, fmt.Errorf("failed to query wishlist lines: %w", err)
	}
	defer rows.Close()

	lines := []model.WishlistLine{}
	for rows.Next() {
		var (
			l model.WishlistLine
			d model.ProductDerived
		)
		if err := rows.Scan(
			&l.ID, &l.WishlistID, &l.ProductID, &l.CreatedAt,
			&l.ProductTitle, &d.Price, &d.DiscountedPrice, &d.DiscountAmount, &d.HasDiscount, &d.InStock,
		); err != nil {
			return nil, fmt.Errorf("failed to scan wishlist line: %w", err)
		}
		l.PriceView = model.PriceViewOf(d)
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating wishlist lines: %w", err)
	}
	return lines, nil
}
