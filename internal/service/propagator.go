package service

import (
	"context"
	"fmt"

	"storefront/internal/events"
	"storefront/internal/model"
	"storefront/internal/pricing"
	"storefront/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type cartReconciled struct {
	CartID    uuid.UUID `json:"cartId"`
	VariantID int64     `json:"variantId"`
	Removed   []int64   `json:"removed,omitempty"`
	Clamped   []int64   `json:"clamped,omitempty"`
}

type orderTotals struct {
	OrderID       int64  `json:"orderId"`
	ShippingPrice *int64 `json:"shippingPrice"`
	model.OrderTotals
}

// propagator implements Propagator.
type propagator struct {
	catalog repository.CatalogRepository
	carts   repository.CartRepository
	orders  repository.OrderRepository
	logger  zerolog.Logger
}

// NewPropagator creates the change propagation chain.
func NewPropagator(
	catalog repository.CatalogRepository,
	carts repository.CartRepository,
	orders repository.OrderRepository,
	logger zerolog.Logger,
) Propagator {
	return &propagator{
		catalog: catalog,
		carts:   carts,
		orders:  orders,
		logger:  logger.With().Str("service", "propagator").Logger(),
	}
}

// RecomputeProduct rewrites a product's derived fields from its variants and reviews.
func (p *propagator) RecomputeProduct(ctx context.Context, q repository.Querier, productID int64) (*model.ProductDerived, error) {
	variants, err := p.catalog.ListVariantsByProduct(ctx, q, productID)
	if err != nil {
		p.logger.Error().Err(err).Int64("product_id", productID).Msg("failed to load variants for recompute")
		return nil, fmt.Errorf("failed to recompute product: %w", err)
	}

	stats, err := p.catalog.ReviewStats(ctx, q, productID)
	if err != nil {
		p.logger.Error().Err(err).Int64("product_id", productID).Msg("failed to load review stats for recompute")
		return nil, fmt.Errorf("failed to recompute product: %w", err)
	}

	derived := pricing.AggregateProduct(variants, stats)
	if err := p.catalog.UpdateProductDerived(ctx, q, productID, derived); err != nil {
		p.logger.Error().Err(err).Int64("product_id", productID).Msg("failed to write recomputed product")
		return nil, err
	}

	p.logger.Debug().
		Int64("product_id", productID).
		Int("variants", len(variants)).
		Bool("in_stock", derived.InStock).
		Msg("product recomputed")

	return &derived, nil
}

// VariantChanged runs the full chain for a written variant.
func (p *propagator) VariantChanged(ctx context.Context, q repository.Querier, productID, variantID int64, v *model.Variant) ([]events.Event, error) {
	var evs []events.Event

	if v != nil {
		derived, err := p.RecomputeProduct(ctx, q, productID)
		if err != nil {
			return nil, err
		}
		evs = append(evs, events.New(events.ProductRecomputed, events.ID(productID), derived))
	}

	cartEvs, err := p.reconcileCarts(ctx, q, variantID, v)
	if err != nil {
		return nil, err
	}
	evs = append(evs, cartEvs...)

	orderEvs, err := p.reconcileOrders(ctx, q, variantID, v)
	if err != nil {
		return nil, err
	}
	return append(evs, orderEvs...), nil
}

func (p *propagator) reconcileCarts(ctx context.Context, q repository.Querier, variantID int64, v *model.Variant) ([]events.Event, error) {
	lines, err := p.carts.ListItemsByVariant(ctx, q, variantID)
	if err != nil {
		return nil, fmt.Errorf("failed to reconcile carts: %w", err)
	}

	plan := pricing.ReconcileCartLines(v, lines)
	if plan.Empty() {
		return nil, nil
	}
	if err := p.carts.ApplyPlan(ctx, q, plan); err != nil {
		p.logger.Error().Err(err).Int64("variant_id", variantID).Msg("failed to reconcile cart lines")
		return nil, err
	}

	cartOf := make(map[int64]uuid.UUID, len(lines))
	for _, l := range lines {
		cartOf[l.ID] = l.CartID
	}
	byCart := make(map[uuid.UUID]*cartReconciled)
	var order []uuid.UUID
	touch := func(lineID int64) *cartReconciled {
		id := cartOf[lineID]
		c, ok := byCart[id]
		if !ok {
			c = &cartReconciled{CartID: id, VariantID: variantID}
			byCart[id] = c
			order = append(order, id)
		}
		return c
	}
	for _, id := range plan.Delete {
		c := touch(id)
		c.Removed = append(c.Removed, id)
	}
	for _, u := range plan.Update {
		c := touch(u.ID)
		c.Clamped = append(c.Clamped, u.ID)
	}

	evs := make([]events.Event, 0, len(order))
	for _, id := range order {
		evs = append(evs, events.New(events.CartReconciled, id.String(), byCart[id]))
	}

	p.logger.Debug().
		Int64("variant_id", variantID).
		Int("removed", len(plan.Delete)).
		Int("clamped", len(plan.Update)).
		Msg("cart lines reconciled")

	return evs, nil
}

func (p *propagator) reconcileOrders(ctx context.Context, q repository.Querier, variantID int64, v *model.Variant) ([]events.Event, error) {
	items, err := p.orders.ListUnpaidItemsByVariant(ctx, q, variantID)
	if err != nil {
		return nil, fmt.Errorf("failed to reconcile orders: %w", err)
	}

	plan := pricing.ReconcileOrderLines(v, items)
	if plan.Empty() {
		return nil, nil
	}
	if err := p.orders.ApplyPlan(ctx, q, plan); err != nil {
		p.logger.Error().Err(err).Int64("variant_id", variantID).Msg("failed to reconcile order items")
		return nil, err
	}

	return p.RecomputeOrders(ctx, q, plan.Orders)
}

// RecomputeOrders rewrites the totals of unpaid orders in one bulk write.
func (p *propagator) RecomputeOrders(ctx context.Context, q repository.Querier, orderIDs []int64) ([]events.Event, error) {
	if len(orderIDs) == 0 {
		return nil, nil
	}

	orders, err := p.orders.ListOrders(ctx, q, orderIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to recompute orders: %w", err)
	}
	items, err := p.orders.ListItemsByOrders(ctx, q, orderIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to recompute orders: %w", err)
	}

	totals := make(map[int64]model.OrderTotals, len(orders))
	evs := make([]events.Event, 0, len(orders))
	for _, o := range orders {
		if o.IsPaid {
			continue
		}
		t := pricing.ComputeOrderTotals(items[o.ID], o.ShippingPrice)
		totals[o.ID] = t
		evs = append(evs, events.New(events.OrderTotalsRecomputed, events.ID(o.ID),
			orderTotals{OrderID: o.ID, ShippingPrice: o.ShippingPrice, OrderTotals: t}))
	}

	if err := p.orders.UpdateTotals(ctx, q, totals); err != nil {
		p.logger.Error().Err(err).Int("orders", len(totals)).Msg("failed to write order totals")
		return nil, err
	}
	return evs, nil
}

// ShippingMethodChanged reprices every unpaid order using the method.
func (p *propagator) ShippingMethodChanged(ctx context.Context, q repository.Querier, m *model.ShippingMethod) ([]events.Event, error) {
	ids, err := p.orders.RepriceShipping(ctx, q, m.ID, m.Price)
	if err != nil {
		p.logger.Error().Err(err).Int64("shipping_method_id", m.ID).Msg("failed to reprice orders")
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}

	orders, err := p.orders.ListOrders(ctx, q, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load repriced orders: %w", err)
	}

	evs := make([]events.Event, 0, len(orders))
	for _, o := range orders {
		evs = append(evs, events.New(events.OrderTotalsRecomputed, events.ID(o.ID),
			orderTotals{OrderID: o.ID, ShippingPrice: o.ShippingPrice, OrderTotals: o.OrderTotals}))
	}

	p.logger.Info().
		Int64("shipping_method_id", m.ID).
		Int("orders", len(ids)).
		Msg("unpaid orders repriced")

	return evs, nil
}
