package pricing

import (
	"strconv"

	"storefront/internal/model"
)

// DefaultOrderNumberOffset is added to an order's id to form its number.
const DefaultOrderNumberOffset int64 = 12345

// ComputeOrderTotals sums an order's items. Discounted items are charged at
// their discounted price; the shipping price is added only when set.
func ComputeOrderTotals(items []model.OrderItem, shippingPrice *int64) model.OrderTotals {
	var t model.OrderTotals
	for i := range items {
		item := &items[i]
		qty := int64(item.Quantity)
		if item.HasResolvedDiscount() {
			t.ProductsTotalPrice += *item.DiscountedPrice * qty
			t.OrderTotalDiscount += (item.Price - *item.DiscountedPrice) * qty
			continue
		}
		t.ProductsTotalPrice += item.Price * qty
	}

	t.OrderTotalPrice = t.ProductsTotalPrice
	if shippingPrice != nil {
		t.OrderTotalPrice += *shippingPrice
	}
	return t
}

// OrderNumber derives the human readable number of an order from its id.
func OrderNumber(id, offset int64) string {
	return strconv.FormatInt(offset+id, 10)
}

// CartTotal sums the live unit price of each cart line.
func CartTotal(lines []model.CartLine) int64 {
	var total int64
	for _, l := range lines {
		total += l.LineTotal
	}
	return total
}
