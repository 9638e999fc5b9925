package pricing

import "storefront/internal/model"

// AggregateProduct derives a product's cached fields from its variants and
// review statistics. The result depends only on the input values, never on
// their order, so repeated runs over unchanged data are identical.
//
// The displayed price comes from a single variant: the in-stock variant with
// the lowest resolved discounted price, or failing that the in-stock variant
// with the lowest plain price. Ties go to the lowest variant id.
func AggregateProduct(variants []model.Variant, stats model.ReviewStats) model.ProductDerived {
	var d model.ProductDerived

	var discounted, plain *model.Variant
	for i := range variants {
		v := &variants[i]
		d.StockQuantity += v.Quantity
		d.TotalSold += v.TotalSold

		if !v.InStock() {
			continue
		}
		if v.HasResolvedDiscount() && lowerDiscounted(v, discounted) {
			discounted = v
		}
		if lowerPrice(v, plain) {
			plain = v
		}
	}
	d.InStock = d.StockQuantity > 0

	switch {
	case discounted != nil:
		price := discounted.Price
		dp := *discounted.DiscountedPrice
		amount := *discounted.DiscountAmount
		d.Price = &price
		d.DiscountedPrice = &dp
		d.DiscountAmount = &amount
		d.HasDiscount = true
	case plain != nil:
		price := plain.Price
		d.Price = &price
	}

	d.NumberOfReviews = stats.Count
	if stats.Count > 0 && stats.Average != nil {
		avg := *stats.Average
		d.RatesAverage = &avg
	}

	return d
}

func lowerDiscounted(v, best *model.Variant) bool {
	if best == nil {
		return true
	}
	if *v.DiscountedPrice != *best.DiscountedPrice {
		return *v.DiscountedPrice < *best.DiscountedPrice
	}
	return v.ID < best.ID
}

func lowerPrice(v, best *model.Variant) bool {
	if best == nil {
		return true
	}
	if v.Price != best.Price {
		return v.Price < best.Price
	}
	return v.ID < best.ID
}
