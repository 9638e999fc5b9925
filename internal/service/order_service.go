package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"storefront/internal/events"
	"storefront/internal/model"
	"storefront/internal/pricing"
	"storefront/internal/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

const trackingCodeLength = 15

// orderService implements OrderService.
type orderService struct {
	db           repository.Querier
	txr          repository.Transactor
	orders       repository.OrderRepository
	carts        repository.CartRepository
	catalog      repository.CatalogRepository
	shipping     repository.ShippingRepository
	propagator   Propagator
	publisher    events.Publisher
	numberOffset int64
	logger       zerolog.Logger
}

// NewOrderService creates a new order service. numberOffset is added to an
// order's id to form its public number.
func NewOrderService(
	db repository.Querier,
	txr repository.Transactor,
	orders repository.OrderRepository,
	carts repository.CartRepository,
	catalog repository.CatalogRepository,
	shipping repository.ShippingRepository,
	propagator Propagator,
	publisher events.Publisher,
	numberOffset int64,
	logger zerolog.Logger,
) OrderService {
	return &orderService{
		db:           db,
		txr:          txr,
		orders:       orders,
		carts:        carts,
		catalog:      catalog,
		shipping:     shipping,
		propagator:   propagator,
		publisher:    publisher,
		numberOffset: numberOffset,
		logger:       logger.With().Str("service", "order").Logger(),
	}
}

// newTrackingCode returns 15 upper case hex characters of a random UUID.
func newTrackingCode() string {
	hex := strings.ReplaceAll(uuid.NewString(), "-", "")
	return strings.ToUpper(hex[:trackingCodeLength])
}

// CreateFromCart converts a cart into an order in one transaction: the
// order row, its number, the item snapshots and totals are written and the
// cart is deleted.
func (s *orderService) CreateFromCart(ctx context.Context, req *model.OrderRequest) (*model.OrderResponse, error) {
	if err := s.validateOrderRequest(req); err != nil {
		return nil, err
	}

	var (
		order *model.Order
		items []model.OrderItem
	)
	err := runInTx(ctx, s.txr, s.logger, func(tx pgx.Tx) error {
		cart, err := s.carts.GetCartForUpdate(ctx, tx, req.CartID)
		if err != nil {
			return err
		}
		if cart == nil {
			return model.ErrCartNotFound
		}

		lines, err := s.carts.ListItems(ctx, tx, req.CartID)
		if err != nil {
			return err
		}
		if len(lines) == 0 {
			return model.ErrEmptyCart
		}

		// Shared lock: a concurrent price change waits for this order to
		// commit and then reprices it along with the others.
		method, err := s.shipping.GetForShare(ctx, tx, req.ShippingMethodID)
		if err != nil {
			return err
		}
		if method == nil {
			return model.ErrShippingNotFound
		}
		if !method.Active {
			return model.ErrShippingInactive
		}

		order = &model.Order{
			Status:           model.OrderStatusNotDelivered,
			ShippingMethodID: method.ID,
			ShippingPrice:    method.Price,
			Receiver:         req.Receiver,
		}
		if err := s.orders.CreateOrder(ctx, tx, order); err != nil {
			return err
		}

		// The number depends on the id, so it is a second write.
		order.Number = pricing.OrderNumber(order.ID, s.numberOffset)
		code := newTrackingCode()
		order.TrackingCode = &code
		if err := s.orders.SetIdentifiers(ctx, tx, order.ID, order.Number, code); err != nil {
			return err
		}

		items, err = s.snapshotLines(ctx, tx, order.ID, lines)
		if err != nil {
			return err
		}
		if err := s.orders.CreateItems(ctx, tx, items); err != nil {
			return err
		}

		order.OrderTotals = pricing.ComputeOrderTotals(items, order.ShippingPrice)
		if err := s.orders.UpdateTotals(ctx, tx, map[int64]model.OrderTotals{order.ID: order.OrderTotals}); err != nil {
			return err
		}

		_, err = s.carts.DeleteCart(ctx, tx, req.CartID)
		return err
	})
	if err != nil {
		s.logger.Warn().Err(err).Str("cart_id", req.CartID.String()).Msg("failed to create order")
		return nil, err
	}

	publish(ctx, s.publisher, s.logger, []events.Event{
		events.New(events.OrderTotalsRecomputed, events.ID(order.ID),
			orderTotals{OrderID: order.ID, ShippingPrice: order.ShippingPrice, OrderTotals: order.OrderTotals}),
	})

	s.logger.Info().
		Int64("order_id", order.ID).
		Str("number", order.Number).
		Int("item_count", len(items)).
		Int64("total", order.OrderTotalPrice).
		Msg("order created successfully")

	return &model.OrderResponse{Order: *order, Items: items}, nil
}

// snapshotLines locks each variant in id order and copies its live price
// into a new order item.
func (s *orderService) snapshotLines(ctx context.Context, q repository.Querier, orderID int64, lines []model.CartItem) ([]model.OrderItem, error) {
	sorted := make([]model.CartItem, len(lines))
	copy(sorted, lines)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].VariantID < sorted[j].VariantID })

	items := make([]model.OrderItem, 0, len(sorted))
	for _, line := range sorted {
		v, err := s.catalog.GetVariantForUpdate(ctx, q, line.VariantID)
		if err != nil {
			return nil, err
		}
		if v == nil {
			return nil, model.ErrVariantNotFound
		}
		if err := pricing.CheckStock(line.Quantity, v.Quantity); err != nil {
			return nil, err
		}

		product, err := s.catalog.GetProduct(ctx, q, v.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, model.ErrProductNotFound
		}

		variable := v.Title
		if v.VariableID != nil {
			vr, err := s.catalog.GetVariable(ctx, q, *v.VariableID)
			if err != nil {
				return nil, err
			}
			if vr != nil {
				variable = vr.Title
			}
		}

		items = append(items, pricing.SnapshotOrderItem(orderID, product.Title, variable, v, line.Quantity))
	}
	return items, nil
}

// GetByID retrieves an order by its ID with all items.
func (s *orderService) GetByID(ctx context.Context, id int64) (*model.OrderResponse, error) {
	order, err := s.orders.GetOrder(ctx, s.db, id)
	if err != nil {
		s.logger.Error().Err(err).Int64("order_id", id).Msg("failed to get order")
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	if order == nil {
		s.logger.Debug().Int64("order_id", id).Msg("order not found")
		return nil, model.ErrOrderNotFound
	}

	items, err := s.orders.ListItems(ctx, s.db, id)
	if err != nil {
		s.logger.Error().Err(err).Int64("order_id", id).Msg("failed to retrieve order items")
		return nil, fmt.Errorf("failed to get order items: %w", err)
	}
	if items == nil {
		items = []model.OrderItem{}
	}

	return &model.OrderResponse{Order: *order, Items: items}, nil
}

// UpdateStatus changes the delivery status. Status is independent of payment.
func (s *orderService) UpdateStatus(ctx context.Context, id int64, status model.OrderStatus) (*model.OrderResponse, error) {
	if !status.Valid() {
		return nil, model.ErrInvalidStatus
	}
	if err := s.orders.UpdateStatus(ctx, s.db, id, status); err != nil {
		return nil, err
	}
	return s.GetByID(ctx, id)
}

// MarkPaid freezes the order. Marking a paid order again is a no-op.
func (s *orderService) MarkPaid(ctx context.Context, id int64) (*model.OrderResponse, error) {
	err := runInTx(ctx, s.txr, s.logger, func(tx pgx.Tx) error {
		order, err := s.orders.GetOrderForUpdate(ctx, tx, id)
		if err != nil {
			return err
		}
		if order == nil {
			return model.ErrOrderNotFound
		}
		if order.IsPaid {
			return nil
		}
		return s.orders.MarkPaid(ctx, tx, id)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("order_id", id).Msg("order marked paid")
	return s.GetByID(ctx, id)
}

// UpdateItemQuantity changes an item of an unpaid order and recomputes its
// totals.
func (s *orderService) UpdateItemQuantity(ctx context.Context, orderID, itemID int64, quantity int) (*model.OrderResponse, error) {
	if quantity <= 0 {
		return nil, model.ErrInvalidQuantity
	}

	var evs []events.Event
	err := runInTx(ctx, s.txr, s.logger, func(tx pgx.Tx) error {
		items, err := s.orders.ListItems(ctx, tx, orderID)
		if err != nil {
			return err
		}
		var item *model.OrderItem
		for i := range items {
			if items[i].ID == itemID {
				item = &items[i]
				break
			}
		}
		if item == nil {
			return model.ErrOrderItemNotFound
		}
		if item.VariantID == nil {
			return model.ErrVariantNotFound
		}

		// Variant before order, matching the propagation chain.
		v, err := s.catalog.GetVariantForUpdate(ctx, tx, *item.VariantID)
		if err != nil {
			return err
		}
		if v == nil {
			return model.ErrVariantNotFound
		}

		order, err := s.orders.GetOrderForUpdate(ctx, tx, orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return model.ErrOrderNotFound
		}
		if order.IsPaid {
			return model.ErrOrderPaid
		}

		if err := pricing.CheckStock(quantity, v.Quantity); err != nil {
			return err
		}
		if err := s.orders.UpdateItemQuantity(ctx, tx, itemID, quantity); err != nil {
			return err
		}

		evs, err = s.propagator.RecomputeOrders(ctx, tx, []int64{orderID})
		return err
	})
	if err != nil {
		return nil, err
	}

	publish(ctx, s.publisher, s.logger, evs)
	return s.GetByID(ctx, orderID)
}

// validateOrderRequest validates the order request.
func (s *orderService) validateOrderRequest(req *model.OrderRequest) error {
	if req == nil {
		return fmt.Errorf("order request is nil")
	}
	if req.CartID == uuid.Nil {
		return model.ErrCartNotFound
	}
	if req.ShippingMethodID <= 0 {
		return model.ErrShippingNotFound
	}
	return nil
}
