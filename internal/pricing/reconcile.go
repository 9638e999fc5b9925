package pricing

import (
	"sort"

	"storefront/internal/model"
)

// QuantityUpdate sets a line's quantity.
type QuantityUpdate struct {
	ID       int64
	Quantity int
}

// CartPlan lists the cart line writes needed to match a variant.
type CartPlan struct {
	Delete []int64
	Update []QuantityUpdate
}

// Empty reports whether the plan changes nothing.
func (p CartPlan) Empty() bool {
	return len(p.Delete) == 0 && len(p.Update) == 0
}

// ReconcileCartLines plans the writes that bring cart lines referencing a
// variant in line with its stock. A nil variant means it was deleted.
// Lines are removed when the variant has no stock and clamped when they ask
// for more than is available. Applying the plan in bulk has the same effect
// as visiting each line in turn.
func ReconcileCartLines(v *model.Variant, lines []model.CartItem) CartPlan {
	var plan CartPlan
	for _, line := range lines {
		switch {
		case v == nil || v.Quantity <= 0:
			plan.Delete = append(plan.Delete, line.ID)
		case line.Quantity > v.Quantity:
			plan.Update = append(plan.Update, QuantityUpdate{ID: line.ID, Quantity: v.Quantity})
		}
	}
	return plan
}

// OrderPlan lists the order item writes needed to match a variant, plus
// every order whose totals must be recomputed afterwards.
type OrderPlan struct {
	Delete []int64
	Update []model.OrderItem
	Orders []int64
}

// Empty reports whether the plan writes nothing. Orders may still be listed
// when every item was already in line.
func (p OrderPlan) Empty() bool {
	return len(p.Delete) == 0 && len(p.Update) == 0
}

// ReconcileOrderLines plans the writes for unpaid order items referencing a
// variant. Quantities follow the cart rule; surviving items also mirror the
// variant's live price and discount fields. Callers must pass unpaid items
// only.
func ReconcileOrderLines(v *model.Variant, items []model.OrderItem) OrderPlan {
	var plan OrderPlan
	seen := make(map[int64]struct{}, len(items))

	for _, item := range items {
		if _, ok := seen[item.OrderID]; !ok {
			seen[item.OrderID] = struct{}{}
			plan.Orders = append(plan.Orders, item.OrderID)
		}

		if v == nil || v.Quantity <= 0 {
			plan.Delete = append(plan.Delete, item.ID)
			continue
		}

		next := item
		if next.Quantity > v.Quantity {
			next.Quantity = v.Quantity
		}
		next.Price = v.Price
		next.DiscountActive = v.DiscountActive
		next.DiscountAmount = copyInt(v.DiscountAmount)
		next.DiscountedPrice = copyInt64(v.DiscountedPrice)

		if !sameOrderItem(item, next) {
			plan.Update = append(plan.Update, next)
		}
	}

	sort.Slice(plan.Orders, func(i, j int) bool { return plan.Orders[i] < plan.Orders[j] })
	return plan
}

// SnapshotOrderItem copies a variant's current pricing into a new order item.
func SnapshotOrderItem(orderID int64, productTitle, variable string, v *model.Variant, quantity int) model.OrderItem {
	id := v.ID
	return model.OrderItem{
		OrderID:         orderID,
		VariantID:       &id,
		ProductTitle:    productTitle,
		Variable:        variable,
		Price:           v.Price,
		Quantity:        quantity,
		DiscountActive:  v.DiscountActive,
		DiscountAmount:  copyInt(v.DiscountAmount),
		DiscountedPrice: copyInt64(v.DiscountedPrice),
	}
}

// CheckStock validates a requested quantity at the add-to-cart and
// add-to-order boundary.
func CheckStock(requested, available int) error {
	if requested <= 0 {
		return model.ErrInvalidQuantity
	}
	if requested > available {
		return model.NewStockError(available)
	}
	return nil
}

func sameOrderItem(a, b model.OrderItem) bool {
	return a.Quantity == b.Quantity &&
		a.Price == b.Price &&
		a.DiscountActive == b.DiscountActive &&
		equalInt(a.DiscountAmount, b.DiscountAmount) &&
		equalInt64(a.DiscountedPrice, b.DiscountedPrice)
}

func copyInt(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func copyInt64(p *int64) *int64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func equalInt(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func equalInt64(a, b *int64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
