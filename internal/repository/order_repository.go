package repository

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"storefront/internal/model"
	"storefront/internal/pricing"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

const orderColumns = `
	id, number, tracking_code, status, is_paid, shipping_method_id, shipping_price,
	receiver_name, receiver_family, receiver_phone_number, receiver_city,
	receiver_address, receiver_postal_code, receiver_latitude, receiver_longitude,
	products_total_price, order_total_discount, order_total_price,
	created_at, updated_at`

const orderItemColumns = `
	id, order_id, variant_id, product_title, variable, price, quantity,
	discount_active, discount_amount, discounted_price`

// orderRepository implements the OrderRepository interface using PostgreSQL.
type orderRepository struct {
	logger zerolog.Logger
}

// NewOrderRepository creates a new PostgreSQL-backed order repository.
func NewOrderRepository(logger zerolog.Logger) OrderRepository {
	return &orderRepository{
		logger: logger.With().Str("repository", "order").Logger(),
	}
}

func scanOrder(s scanner) (*model.Order, error) {
	var (
		o      model.Order
		number *string
		status string
	)
	err := s.Scan(
		&o.ID, &number, &o.TrackingCode, &status, &o.IsPaid, &o.ShippingMethodID, &o.ShippingPrice,
		&o.Receiver.Name, &o.Receiver.Family, &o.Receiver.PhoneNumber, &o.Receiver.City,
		&o.Receiver.Address, &o.Receiver.PostalCode, &o.Receiver.Latitude, &o.Receiver.Longitude,
		&o.ProductsTotalPrice, &o.OrderTotalDiscount, &o.OrderTotalPrice,
		&o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if number != nil {
		o.Number = *number
	}
	o.Status = model.OrderStatus(status)
	return &o, nil
}

func scanOrderItem(s scanner) (*model.OrderItem, error) {
	var it model.OrderItem
	err := s.Scan(
		&it.ID, &it.OrderID, &it.VariantID, &it.ProductTitle, &it.Variable, &it.Price, &it.Quantity,
		&it.DiscountActive, &it.DiscountAmount, &it.DiscountedPrice,
	)
	if err != nil {
		return nil, err
	}
	return &it, nil
}

// CreateOrder inserts a new order within the provided transaction. The
// number stays null until SetIdentifiers runs in the same transaction.
func (r *orderRepository) CreateOrder(ctx context.Context, q Querier, order *model.Order) error {
	if order.Status == "" {
		order.Status = model.OrderStatusNotDelivered
	}

	query := `
		INSERT INTO orders (
			status, is_paid, shipping_method_id, shipping_price,
			receiver_name, receiver_family, receiver_phone_number, receiver_city,
			receiver_address, receiver_postal_code, receiver_latitude, receiver_longitude
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, created_at, updated_at
	`

	rc := order.Receiver
	err := q.QueryRow(ctx, query,
		string(order.Status), order.IsPaid, order.ShippingMethodID, order.ShippingPrice,
		rc.Name, rc.Family, rc.PhoneNumber, rc.City, rc.Address, rc.PostalCode, rc.Latitude, rc.Longitude,
	).Scan(&order.ID, &order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		r.logger.Error().
			Err(err).
			Int64("shipping_method_id", order.ShippingMethodID).
			Msg("failed to create order")
		return fmt.Errorf("failed to create order: %w", err)
	}

	r.logger.Debug().
		Int64("order_id", order.ID).
		Msg("order created successfully")

	return nil
}

// SetIdentifiers writes the public number and tracking code of a new order.
func (r *orderRepository) SetIdentifiers(ctx context.Context, q Querier, id int64, number, trackingCode string) error {
	tag, err := q.Exec(ctx,
		`UPDATE orders SET number = $2, tracking_code = $3 WHERE id = $1`,
		id, number, trackingCode,
	)
	if err != nil {
		r.logger.Error().Err(err).Int64("order_id", id).Msg("failed to set order identifiers")
		return fmt.Errorf("failed to set order identifiers: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrOrderNotFound
	}
	return nil
}

func (r *orderRepository) getOrder(ctx context.Context, q Querier, id int64, lock bool) (*model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`
	if lock {
		query += ` FOR UPDATE`
	}

	order, err := scanOrder(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Int64("order_id", id).Msg("order not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Int64("order_id", id).Msg("failed to query order")
		return nil, fmt.Errorf("failed to query order: %w", err)
	}
	return order, nil
}

// GetOrder retrieves an order by its ID.
func (r *orderRepository) GetOrder(ctx context.Context, q Querier, id int64) (*model.Order, error) {
	return r.getOrder(ctx, q, id, false)
}

func (r *orderRepository) GetOrderForUpdate(ctx context.Context, q Querier, id int64) (*model.Order, error) {
	return r.getOrder(ctx, q, id, true)
}

// ListOrders returns the given orders ordered by id.
func (r *orderRepository) ListOrders(ctx context.Context, q Querier, ids []int64) ([]model.Order, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	rows, err := q.Query(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = ANY($1) ORDER BY id`, ids)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query orders")
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	var orders []model.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating orders: %w", err)
	}
	return orders, nil
}

func (r *orderRepository) UpdateStatus(ctx context.Context, q Querier, id int64, status model.OrderStatus) error {
	tag, err := q.Exec(ctx,
		`UPDATE orders SET status = $2, updated_at = NOW() WHERE id = $1`, id, string(status))
	if err != nil {
		r.logger.Error().Err(err).Int64("order_id", id).Msg("failed to update order status")
		return fmt.Errorf("failed to update order status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrOrderNotFound
	}
	return nil
}

// MarkPaid freezes the order. Paid orders are never touched by propagation.
func (r *orderRepository) MarkPaid(ctx context.Context, q Querier, id int64) error {
	tag, err := q.Exec(ctx,
		`UPDATE orders SET is_paid = TRUE, updated_at = NOW() WHERE id = $1`, id)
	if err != nil {
		r.logger.Error().Err(err).Int64("order_id", id).Msg("failed to mark order paid")
		return fmt.Errorf("failed to mark order paid: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrOrderNotFound
	}
	return nil
}

// CreateItems inserts multiple order items within the provided transaction.
func (r *orderRepository) CreateItems(ctx context.Context, q Querier, items []model.OrderItem) error {
	if len(items) == 0 {
		return nil
	}

	query := `
		INSERT INTO order_items (
			order_id, variant_id, product_title, variable, price, quantity,
			discount_active, discount_amount, discounted_price
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`

	batch := &pgx.Batch{}
	for _, item := range items {
		batch.Queue(query,
			item.OrderID, item.VariantID, item.ProductTitle, item.Variable, item.Price, item.Quantity,
			item.DiscountActive, item.DiscountAmount, item.DiscountedPrice,
		)
	}

	results := q.SendBatch(ctx, batch)
	defer results.Close()

	for i := range items {
		if err := results.QueryRow().Scan(&items[i].ID); err != nil {
			r.logger.Error().
				Err(err).
				Int64("order_id", items[i].OrderID).
				Msg("failed to create order item")
			return fmt.Errorf("failed to create order item: %w", err)
		}
	}

	r.logger.Debug().
		Int("count", len(items)).
		Msg("order items created successfully")

	return results.Close()
}

func (r *orderRepository) listItems(ctx context.Context, q Querier, query string, arg any) ([]model.OrderItem, error) {
	rows, err := q.Query(ctx, query, arg)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query order items")
		return nil, fmt.Errorf("failed to query order items: %w", err)
	}
	defer rows.Close()

	var items []model.OrderItem
	for rows.Next() {
		it, err := scanOrderItem(rows)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan order item row")
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}
		items = append(items, *it)
	}
	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating order item rows")
		return nil, fmt.Errorf("error iterating order items: %w", err)
	}
	return items, nil
}

func (r *orderRepository) ListItems(ctx context.Context, q Querier, orderID int64) ([]model.OrderItem, error) {
	return r.listItems(ctx, q,
		`SELECT `+orderItemColumns+` FROM order_items WHERE order_id = $1 ORDER BY id`, orderID)
}

// ListItemsByOrders groups the items of several orders by order id.
func (r *orderRepository) ListItemsByOrders(ctx context.Context, q Querier, orderIDs []int64) (map[int64][]model.OrderItem, error) {
	grouped := make(map[int64][]model.OrderItem, len(orderIDs))
	if len(orderIDs) == 0 {
		return grouped, nil
	}

	items, err := r.listItems(ctx, q,
		`SELECT `+orderItemColumns+` FROM order_items WHERE order_id = ANY($1) ORDER BY order_id, id`, orderIDs)
	if err != nil {
		return nil, err
	}
	for _, it := range items {
		grouped[it.OrderID] = append(grouped[it.OrderID], it)
	}
	return grouped, nil
}

func (r *orderRepository) UpdateItemQuantity(ctx context.Context, q Querier, itemID int64, quantity int) error {
	tag, err := q.Exec(ctx, `UPDATE order_items SET quantity = $2 WHERE id = $1`, itemID, quantity)
	if err != nil {
		r.logger.Error().Err(err).Int64("order_item_id", itemID).Msg("failed to update order item")
		return fmt.Errorf("failed to update order item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrOrderItemNotFound
	}
	return nil
}

// ListUnpaidItemsByVariant locks and returns items of unpaid orders that
// reference a variant. The order rows are locked too so MarkPaid cannot
// interleave with the rewrite.
func (r *orderRepository) ListUnpaidItemsByVariant(ctx context.Context, q Querier, variantID int64) ([]model.OrderItem, error) {
	query := `
		SELECT oi.id, oi.order_id, oi.variant_id, oi.product_title, oi.variable, oi.price, oi.quantity,
			oi.discount_active, oi.discount_amount, oi.discounted_price
		FROM order_items oi
		JOIN orders o ON o.id = oi.order_id
		WHERE oi.variant_id = $1 AND NOT o.is_paid
		ORDER BY oi.order_id, oi.id
		FOR UPDATE OF o, oi
	`
	return r.listItems(ctx, q, query, variantID)
}

// ApplyPlan writes a reconcile plan in a single round trip. The WHERE
// clauses repeat the unpaid filter so a plan can never reach a paid order.
func (r *orderRepository) ApplyPlan(ctx context.Context, q Querier, plan pricing.OrderPlan) error {
	if plan.Empty() {
		return nil
	}

	batch := &pgx.Batch{}
	if len(plan.Delete) > 0 {
		batch.Queue(`
			DELETE FROM order_items oi USING orders o
			WHERE o.id = oi.order_id AND NOT o.is_paid AND oi.id = ANY($1)`, plan.Delete)
	}
	if len(plan.Update) > 0 {
		n := len(plan.Update)
		ids := make([]int64, n)
		qty := make([]int32, n)
		prices := make([]int64, n)
		active := make([]bool, n)
		amounts := make([]*int32, n)
		discounted := make([]*int64, n)
		for i, it := range plan.Update {
			ids[i] = it.ID
			qty[i] = int32(it.Quantity)
			prices[i] = it.Price
			active[i] = it.DiscountActive
			if it.DiscountAmount != nil {
				a := int32(*it.DiscountAmount)
				amounts[i] = &a
			}
			discounted[i] = it.DiscountedPrice
		}
		batch.Queue(`
			UPDATE order_items AS oi SET
				quantity = u.quantity,
				price = u.price,
				discount_active = u.discount_active,
				discount_amount = u.discount_amount,
				discounted_price = u.discounted_price
			FROM unnest($1::bigint[], $2::int[], $3::bigint[], $4::bool[], $5::int[], $6::bigint[])
				AS u(id, quantity, price, discount_active, discount_amount, discounted_price),
				orders o
			WHERE oi.id = u.id AND o.id = oi.order_id AND NOT o.is_paid`,
			ids, qty, prices, active, amounts, discounted)
	}

	if err := execBatch(ctx, q, batch); err != nil {
		r.logger.Error().Err(err).
			Int("deleted", len(plan.Delete)).
			Int("updated", len(plan.Update)).
			Msg("failed to apply order plan")
		return fmt.Errorf("failed to apply order plan: %w", err)
	}
	return nil
}

// UpdateTotals bulk writes the derived totals of several unpaid orders.
func (r *orderRepository) UpdateTotals(ctx context.Context, q Querier, totals map[int64]model.OrderTotals) error {
	if len(totals) == 0 {
		return nil
	}

	ids := make([]int64, 0, len(totals))
	products := make([]int64, 0, len(totals))
	discounts := make([]int64, 0, len(totals))
	grand := make([]int64, 0, len(totals))
	for id, t := range totals {
		ids = append(ids, id)
		products = append(products, t.ProductsTotalPrice)
		discounts = append(discounts, t.OrderTotalDiscount)
		grand = append(grand, t.OrderTotalPrice)
	}

	query := `
		UPDATE orders AS o SET
			products_total_price = u.products,
			order_total_discount = u.discount,
			order_total_price = u.total,
			updated_at = NOW()
		FROM unnest($1::bigint[], $2::bigint[], $3::bigint[], $4::bigint[]) AS u(id, products, discount, total)
		WHERE o.id = u.id AND NOT o.is_paid
	`
	if _, err := q.Exec(ctx, query, ids, products, discounts, grand); err != nil {
		r.logger.Error().Err(err).Int("count", len(ids)).Msg("failed to update order totals")
		return fmt.Errorf("failed to update order totals: %w", err)
	}
	return nil
}

// RepriceShipping sets the shipping price of every unpaid order using a
// method and refreshes their grand totals. The orders are locked in id order
// first, the same order the variant path takes, then updated together.
func (r *orderRepository) RepriceShipping(ctx context.Context, q Querier, methodID int64, price *int64) ([]int64, error) {
	rows, err := q.Query(ctx, `
		SELECT id FROM orders
		WHERE shipping_method_id = $1 AND NOT is_paid
		ORDER BY id
		FOR UPDATE`, methodID)
	if err != nil {
		r.logger.Error().Err(err).Int64("shipping_method_id", methodID).Msg("failed to lock orders for shipping reprice")
		return nil, fmt.Errorf("failed to lock orders: %w", err)
	}
	locked, err := pgx.CollectRows(rows, pgx.RowTo[int64])
	if err != nil {
		return nil, fmt.Errorf("failed to lock orders: %w", err)
	}
	if len(locked) == 0 {
		return nil, nil
	}

	rows, err = q.Query(ctx, `
		UPDATE orders SET
			shipping_price = $2,
			order_total_price = products_total_price + COALESCE($2::bigint, 0),
			updated_at = NOW()
		WHERE id = ANY($1) AND NOT is_paid
		RETURNING id`, locked, price)
	if err != nil {
		r.logger.Error().Err(err).Int64("shipping_method_id", methodID).Msg("failed to reprice shipping")
		return nil, fmt.Errorf("failed to reprice shipping: %w", err)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[int64])
	if err != nil {
		return nil, fmt.Errorf("failed to reprice shipping: %w", err)
	}
	slices.Sort(ids)

	r.logger.Debug().
		Int64("shipping_method_id", methodID).
		Int("orders", len(ids)).
		Msg("shipping repriced")
	return ids, nil
}
