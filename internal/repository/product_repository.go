package repository

import (
	"context"
	"errors"
	"fmt"

	"storefront/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

const productColumns = `
	id, title, description, category_id, subcategory_id,
	price, discounted_price, discount_amount, has_discount,
	rates_average, number_of_reviews, in_stock, stock_quantity, total_sold,
	created_at, updated_at`

const variantColumns = `
	id, product_id, variable_id, title, price, quantity,
	discount_id, discount_active, discounted_price, discount_amount,
	total_sold, created_at, updated_at`

// catalogRepository implements the CatalogRepository interface using PostgreSQL.
type catalogRepository struct {
	logger zerolog.Logger
}

// NewCatalogRepository creates a new PostgreSQL-backed catalog repository.
func NewCatalogRepository(logger zerolog.Logger) CatalogRepository {
	return &catalogRepository{
		logger: logger.With().Str("repository", "catalog").Logger(),
	}
}

func scanProduct(s scanner) (*model.Product, error) {
	var p model.Product
	err := s.Scan(
		&p.ID, &p.Title, &p.Description, &p.CategoryID, &p.SubCategoryID,
		&p.Price, &p.DiscountedPrice, &p.DiscountAmount, &p.HasDiscount,
		&p.RatesAverage, &p.NumberOfReviews, &p.InStock, &p.StockQuantity, &p.TotalSold,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func scanVariant(s scanner) (*model.Variant, error) {
	var v model.Variant
	err := s.Scan(
		&v.ID, &v.ProductID, &v.VariableID, &v.Title, &v.Price, &v.Quantity,
		&v.DiscountID, &v.DiscountActive, &v.DiscountedPrice, &v.DiscountAmount,
		&v.TotalSold, &v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *catalogRepository) CreateCategory(ctx context.Context, q Querier, c *model.Category) error {
	err := q.QueryRow(ctx,
		`INSERT INTO categories (title) VALUES ($1) RETURNING id, created_at`,
		c.Title,
	).Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		r.logger.Error().Err(err).Str("title", c.Title).Msg("failed to create category")
		return fmt.Errorf("failed to create category: %w", err)
	}
	return nil
}

func (r *catalogRepository) ListCategories(ctx context.Context, q Querier) ([]model.Category, error) {
	rows, err := q.Query(ctx, `SELECT id, title, created_at FROM categories ORDER BY title`)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	var categories []model.Category
	for rows.Next() {
		var c model.Category
		if err := rows.Scan(&c.ID, &c.Title, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating categories: %w", err)
	}
	return categories, nil
}

func (r *catalogRepository) CreateSubCategory(ctx context.Context, q Querier, s *model.SubCategory) error {
	err := q.QueryRow(ctx,
		`INSERT INTO subcategories (category_id, title) VALUES ($1, $2) RETURNING id, created_at`,
		s.CategoryID, s.Title,
	).Scan(&s.ID, &s.CreatedAt)
	if err != nil {
		r.logger.Error().Err(err).Int64("category_id", s.CategoryID).Msg("failed to create subcategory")
		return fmt.Errorf("failed to create subcategory: %w", err)
	}
	return nil
}

func (r *catalogRepository) GetSubCategory(ctx context.Context, q Querier, id int64) (*model.SubCategory, error) {
	var s model.SubCategory
	err := q.QueryRow(ctx,
		`SELECT id, category_id, title, created_at FROM subcategories WHERE id = $1`, id,
	).Scan(&s.ID, &s.CategoryID, &s.Title, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query subcategory: %w", err)
	}
	return &s, nil
}

func (r *catalogRepository) CreateVariable(ctx context.Context, q Querier, v *model.Variable) error {
	err := q.QueryRow(ctx,
		`INSERT INTO variables (type, title, color_code) VALUES ($1, $2, $3) RETURNING id`,
		string(v.Type), v.Title, v.ColorCode,
	).Scan(&v.ID)
	if err != nil {
		r.logger.Error().Err(err).Str("title", v.Title).Msg("failed to create variable")
		return fmt.Errorf("failed to create variable: %w", err)
	}
	return nil
}

func (r *catalogRepository) GetVariable(ctx context.Context, q Querier, id int64) (*model.Variable, error) {
	var v model.Variable
	var typ string
	err := q.QueryRow(ctx,
		`SELECT id, type, title, color_code FROM variables WHERE id = $1`, id,
	).Scan(&v.ID, &typ, &v.Title, &v.ColorCode)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query variable: %w", err)
	}
	v.Type = model.VariableType(typ)
	return &v, nil
}

// CreateProduct inserts a product with empty derived fields.
func (r *catalogRepository) CreateProduct(ctx context.Context, q Querier, p *model.Product) error {
	query := `
		INSERT INTO products (title, description, category_id, subcategory_id)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + productColumns

	created, err := scanProduct(q.QueryRow(ctx, query, p.Title, p.Description, p.CategoryID, p.SubCategoryID))
	if err != nil {
		r.logger.Error().Err(err).Str("title", p.Title).Msg("failed to create product")
		return fmt.Errorf("failed to create product: %w", err)
	}
	*p = *created

	r.logger.Debug().Int64("product_id", p.ID).Msg("product created")
	return nil
}

func (r *catalogRepository) getProduct(ctx context.Context, q Querier, id int64, lock bool) (*model.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	if lock {
		query += ` FOR UPDATE`
	}

	p, err := scanProduct(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Int64("product_id", id).Msg("product not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Int64("product_id", id).Msg("failed to query product")
		return nil, fmt.Errorf("failed to query product: %w", err)
	}
	return p, nil
}

// GetProduct retrieves a single product by its ID.
func (r *catalogRepository) GetProduct(ctx context.Context, q Querier, id int64) (*model.Product, error) {
	return r.getProduct(ctx, q, id, false)
}

// GetProductForUpdate retrieves and locks a product row.
func (r *catalogRepository) GetProductForUpdate(ctx context.Context, q Querier, id int64) (*model.Product, error) {
	return r.getProduct(ctx, q, id, true)
}

// LockProducts locks several product rows in id order.
func (r *catalogRepository) LockProducts(ctx context.Context, q Querier, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	rows, err := q.Query(ctx, `SELECT id FROM products WHERE id = ANY($1) ORDER BY id FOR UPDATE`, ids)
	if err != nil {
		return fmt.Errorf("failed to lock products: %w", err)
	}
	// Drain every row so each lock is taken before returning.
	if _, err := pgx.CollectRows(rows, pgx.RowTo[int64]); err != nil {
		r.logger.Error().Err(err).Ints64("product_ids", ids).Msg("failed to lock products")
		return fmt.Errorf("failed to lock products: %w", err)
	}
	return nil
}

// ListProducts retrieves products with pagination support. Set filter
// fields are combined with AND.
func (r *catalogRepository) ListProducts(ctx context.Context, q Querier, filter model.ProductFilter, limit, offset int) ([]model.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products
		WHERE ($1::bigint IS NULL OR category_id = $1)
		  AND ($2::bigint IS NULL OR subcategory_id = $2)
		ORDER BY id LIMIT $3 OFFSET $4`

	rows, err := q.Query(ctx, query, filter.CategoryID, filter.SubCategoryID, limit, offset)
	if err != nil {
		r.logger.Error().Err(err).
			Int("limit", limit).
			Int("offset", offset).
			Msg("failed to query products")
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var products []model.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan product row")
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, *p)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating product rows")
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	return products, nil
}

// UpdateProductDerived overwrites every derived column in one statement.
func (r *catalogRepository) UpdateProductDerived(ctx context.Context, q Querier, productID int64, d model.ProductDerived) error {
	query := `
		UPDATE products SET
			price = $2,
			discounted_price = $3,
			discount_amount = $4,
			has_discount = $5,
			rates_average = $6,
			number_of_reviews = $7,
			in_stock = $8,
			stock_quantity = $9,
			total_sold = $10,
			updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query, productID,
		d.Price, d.DiscountedPrice, d.DiscountAmount, d.HasDiscount,
		d.RatesAverage, d.NumberOfReviews, d.InStock, d.StockQuantity, d.TotalSold,
	)
	if err != nil {
		r.logger.Error().Err(err).Int64("product_id", productID).Msg("failed to update derived product fields")
		return fmt.Errorf("failed to update product %d: %w", productID, err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrProductNotFound
	}
	return nil
}

// CreateVariant inserts a variant including its resolved discount fields.
func (r *catalogRepository) CreateVariant(ctx context.Context, q Querier, v *model.Variant) error {
	query := `
		INSERT INTO product_variants (
			product_id, variable_id, title, price, quantity,
			discount_id, discount_active, discounted_price, discount_amount, total_sold
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING ` + variantColumns

	created, err := scanVariant(q.QueryRow(ctx, query,
		v.ProductID, v.VariableID, v.Title, v.Price, v.Quantity,
		v.DiscountID, v.DiscountActive, v.DiscountedPrice, v.DiscountAmount, v.TotalSold,
	))
	if err != nil {
		r.logger.Error().Err(err).Int64("product_id", v.ProductID).Msg("failed to create variant")
		return fmt.Errorf("failed to create variant: %w", err)
	}
	*v = *created
	return nil
}

func (r *catalogRepository) getVariant(ctx context.Context, q Querier, id int64, lock bool) (*model.Variant, error) {
	query := `SELECT ` + variantColumns + ` FROM product_variants WHERE id = $1`
	if lock {
		query += ` FOR UPDATE`
	}

	v, err := scanVariant(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Int64("variant_id", id).Msg("variant not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Int64("variant_id", id).Msg("failed to query variant")
		return nil, fmt.Errorf("failed to query variant: %w", err)
	}
	return v, nil
}

// GetVariant retrieves a variant by its ID.
func (r *catalogRepository) GetVariant(ctx context.Context, q Querier, id int64) (*model.Variant, error) {
	return r.getVariant(ctx, q, id, false)
}

// GetVariantForUpdate retrieves and locks a variant row.
func (r *catalogRepository) GetVariantForUpdate(ctx context.Context, q Querier, id int64) (*model.Variant, error) {
	return r.getVariant(ctx, q, id, true)
}

func (r *catalogRepository) listVariants(ctx context.Context, q Querier, query string, arg int64) ([]model.Variant, error) {
	rows, err := q.Query(ctx, query, arg)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query variants")
		return nil, fmt.Errorf("failed to query variants: %w", err)
	}
	defer rows.Close()

	var variants []model.Variant
	for rows.Next() {
		v, err := scanVariant(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan variant: %w", err)
		}
		variants = append(variants, *v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating variants: %w", err)
	}
	return variants, nil
}

// ListVariantsByProduct returns a product's variants ordered by id.
func (r *catalogRepository) ListVariantsByProduct(ctx context.Context, q Querier, productID int64) ([]model.Variant, error) {
	return r.listVariants(ctx, q,
		`SELECT `+variantColumns+` FROM product_variants WHERE product_id = $1 ORDER BY id`, productID)
}

// ListVariantsByDiscount returns every variant referencing a discount.
func (r *catalogRepository) ListVariantsByDiscount(ctx context.Context, q Querier, discountID int64) ([]model.Variant, error) {
	return r.listVariants(ctx, q,
		`SELECT `+variantColumns+` FROM product_variants WHERE discount_id = $1 ORDER BY product_id, id FOR UPDATE`, discountID)
}

// UpdateVariant writes every authoritative variant column.
func (r *catalogRepository) UpdateVariant(ctx context.Context, q Querier, v *model.Variant) error {
	query := `
		UPDATE product_variants SET
			variable_id = $2,
			title = $3,
			price = $4,
			quantity = $5,
			discount_id = $6,
			discount_active = $7,
			discounted_price = $8,
			discount_amount = $9,
			total_sold = $10,
			updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`

	err := q.QueryRow(ctx, query, v.ID,
		v.VariableID, v.Title, v.Price, v.Quantity,
		v.DiscountID, v.DiscountActive, v.DiscountedPrice, v.DiscountAmount, v.TotalSold,
	).Scan(&v.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.ErrVariantNotFound
		}
		r.logger.Error().Err(err).Int64("variant_id", v.ID).Msg("failed to update variant")
		return fmt.Errorf("failed to update variant: %w", err)
	}
	return nil
}

// UpdateVariantDiscounts bulk writes the resolved discount fields.
func (r *catalogRepository) UpdateVariantDiscounts(ctx context.Context, q Querier, variants []model.Variant) error {
	if len(variants) == 0 {
		return nil
	}

	ids := make([]int64, len(variants))
	prices := make([]*int64, len(variants))
	amounts := make([]*int32, len(variants))
	for i, v := range variants {
		ids[i] = v.ID
		prices[i] = v.DiscountedPrice
		if v.DiscountAmount != nil {
			a := int32(*v.DiscountAmount)
			amounts[i] = &a
		}
	}

	query := `
		UPDATE product_variants AS v SET
			discounted_price = u.discounted_price,
			discount_amount = u.discount_amount,
			updated_at = NOW()
		FROM unnest($1::bigint[], $2::bigint[], $3::int[]) AS u(id, discounted_price, discount_amount)
		WHERE v.id = u.id
	`
	if _, err := q.Exec(ctx, query, ids, prices, amounts); err != nil {
		r.logger.Error().Err(err).Int("count", len(variants)).Msg("failed to bulk update variant discounts")
		return fmt.Errorf("failed to update variant discounts: %w", err)
	}
	return nil
}

// DeleteVariant removes a variant. Deleting an absent variant is a no-op.
func (r *catalogRepository) DeleteVariant(ctx context.Context, q Querier, id int64) error {
	if _, err := q.Exec(ctx, `DELETE FROM product_variants WHERE id = $1`, id); err != nil {
		r.logger.Error().Err(err).Int64("variant_id", id).Msg("failed to delete variant")
		return fmt.Errorf("failed to delete variant: %w", err)
	}
	return nil
}

func (r *catalogRepository) CreateDiscount(ctx context.Context, q Querier, d *model.Discount) error {
	err := q.QueryRow(ctx,
		`INSERT INTO discounts (percent, description) VALUES ($1, $2) RETURNING id, created_at`,
		d.Percent, d.Description,
	).Scan(&d.ID, &d.CreatedAt)
	if err != nil {
		r.logger.Error().Err(err).Int("percent", d.Percent).Msg("failed to create discount")
		return fmt.Errorf("failed to create discount: %w", err)
	}
	return nil
}

func (r *catalogRepository) getDiscount(ctx context.Context, q Querier, id int64, lock string) (*model.Discount, error) {
	var d model.Discount
	err := q.QueryRow(ctx,
		`SELECT id, percent, description, created_at FROM discounts WHERE id = $1 `+lock, id,
	).Scan(&d.ID, &d.Percent, &d.Description, &d.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error().Err(err).Int64("discount_id", id).Msg("failed to query discount")
		return nil, fmt.Errorf("failed to query discount: %w", err)
	}
	return &d, nil
}

func (r *catalogRepository) GetDiscount(ctx context.Context, q Querier, id int64) (*model.Discount, error) {
	return r.getDiscount(ctx, q, id, "")
}

func (r *catalogRepository) GetDiscountForUpdate(ctx context.Context, q Querier, id int64) (*model.Discount, error) {
	return r.getDiscount(ctx, q, id, "FOR UPDATE")
}

func (r *catalogRepository) GetDiscountForShare(ctx context.Context, q Querier, id int64) (*model.Discount, error) {
	return r.getDiscount(ctx, q, id, "FOR SHARE")
}

// ProductIDsByDiscount lists the products owning a variant that references a discount.
func (r *catalogRepository) ProductIDsByDiscount(ctx context.Context, q Querier, discountID int64) ([]int64, error) {
	rows, err := q.Query(ctx,
		`SELECT DISTINCT product_id FROM product_variants WHERE discount_id = $1 ORDER BY product_id`, discountID)
	if err != nil {
		return nil, fmt.Errorf("failed to query products by discount: %w", err)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[int64])
	if err != nil {
		return nil, fmt.Errorf("failed to collect products by discount: %w", err)
	}
	return ids, nil
}

func (r *catalogRepository) UpdateDiscount(ctx context.Context, q Querier, d *model.Discount) error {
	tag, err := q.Exec(ctx,
		`UPDATE discounts SET percent = $2, description = $3 WHERE id = $1`,
		d.ID, d.Percent, d.Description,
	)
	if err != nil {
		r.logger.Error().Err(err).Int64("discount_id", d.ID).Msg("failed to update discount")
		return fmt.Errorf("failed to update discount: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrDiscountNotFound
	}
	return nil
}

func (r *catalogRepository) CreateReview(ctx context.Context, q Querier, rv *model.Review) error {
	err := q.QueryRow(ctx,
		`INSERT INTO product_reviews (product_id, author, rating, comment)
		 VALUES ($1, $2, $3, $4) RETURNING id, created_at`,
		rv.ProductID, rv.Author, rv.Rating, rv.Comment,
	).Scan(&rv.ID, &rv.CreatedAt)
	if err != nil {
		r.logger.Error().Err(err).Int64("product_id", rv.ProductID).Msg("failed to create review")
		return fmt.Errorf("failed to create review: %w", err)
	}
	return nil
}

func (r *catalogRepository) ListReviews(ctx context.Context, q Querier, productID int64) ([]model.Review, error) {
	rows, err := q.Query(ctx,
		`SELECT id, product_id, author, rating, comment, created_at
		 FROM product_reviews WHERE product_id = $1 ORDER BY created_at DESC, id DESC`, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to query reviews: %w", err)
	}
	defer rows.Close()

	var reviews []model.Review
	for rows.Next() {
		var rv model.Review
		if err := rows.Scan(&rv.ID, &rv.ProductID, &rv.Author, &rv.Rating, &rv.Comment, &rv.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan review: %w", err)
		}
		reviews = append(reviews, rv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating reviews: %w", err)
	}
	return reviews, nil
}

// ReviewStats aggregates a product's ratings server side. AVG is null when
// the product has no reviews.
func (r *catalogRepository) ReviewStats(ctx context.Context, q Querier, productID int64) (model.ReviewStats, error) {
	var stats model.ReviewStats
	err := q.QueryRow(ctx,
		`SELECT COUNT(*), AVG(rating::float8) FROM product_reviews WHERE product_id = $1`, productID,
	).Scan(&stats.Count, &stats.Average)
	if err != nil {
		r.logger.Error().Err(err).Int64("product_id", productID).Msg("failed to aggregate reviews")
		return model.ReviewStats{}, fmt.Errorf("failed to aggregate reviews: %w", err)
	}
	return stats, nil
}

const commentColumns = `id, product_id, author, body, status, created_at, updated_at`

func scanComment(s scanner) (*model.Comment, error) {
	var c model.Comment
	if err := s.Scan(&c.ID, &c.ProductID, &c.Author, &c.Body, &c.Status, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *catalogRepository) CreateComment(ctx context.Context, q Querier, c *model.Comment) error {
	if c.Status == "" {
		c.Status = model.CommentWaiting
	}
	saved, err := scanComment(q.QueryRow(ctx,
		`INSERT INTO product_comments (product_id, author, body, status)
		 VALUES ($1, $2, $3, $4) RETURNING `+commentColumns,
		c.ProductID, c.Author, c.Body, c.Status,
	))
	if err != nil {
		r.logger.Error().Err(err).Int64("product_id", c.ProductID).Msg("failed to create comment")
		return fmt.Errorf("failed to create comment: %w", err)
	}
	*c = *saved
	return nil
}

func (r *catalogRepository) GetComment(ctx context.Context, q Querier, id int64) (*model.Comment, error) {
	c, err := scanComment(q.QueryRow(ctx, `SELECT `+commentColumns+` FROM product_comments WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query comment: %w", err)
	}
	return c, nil
}

// ListComments returns a product's comments, newest first. An empty status
// lists every state.
func (r *catalogRepository) ListComments(ctx context.Context, q Querier, productID int64, status model.CommentStatus) ([]model.Comment, error) {
	rows, err := q.Query(ctx,
		`SELECT `+commentColumns+` FROM product_comments
		 WHERE product_id = $1 AND ($2::text = '' OR status = $2::text)
		 ORDER BY created_at DESC, id DESC`, productID, string(status))
	if err != nil {
		r.logger.Error().Err(err).Int64("product_id", productID).Msg("failed to query comments")
		return nil, fmt.Errorf("failed to query comments: %w", err)
	}
	defer rows.Close()

	comments := []model.Comment{}
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		comments = append(comments, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating comments: %w", err)
	}
	return comments, nil
}

func (r *catalogRepository) UpdateCommentStatus(ctx context.Context, q Querier, id int64, status model.CommentStatus) (*model.Comment, error) {
	c, err := scanComment(q.QueryRow(ctx,
		`UPDATE product_comments SET status = $2, updated_at = NOW()
		 WHERE id = $1 RETURNING `+commentColumns, id, status))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error().Err(err).Int64("comment_id", id).Msg("failed to moderate comment")
		return nil, fmt.Errorf("failed to moderate comment: %w", err)
	}
	return c, nil
}

func (r *catalogRepository) DeleteComment(ctx context.Context, q Querier, id int64) (bool, error) {
	tag, err := q.Exec(ctx, `DELETE FROM product_comments WHERE id = $1`, id)
	if err != nil {
		r.logger.Error().Err(err).Int64("comment_id", id).Msg("failed to delete comment")
		return false, fmt.Errorf("failed to delete comment: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
