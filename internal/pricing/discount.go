// Package pricing holds the pure derivation rules for variant, product,
// cart and order money fields. Nothing here touches storage.
package pricing

import (
	"storefront/internal/model"

	"github.com/shopspring/decimal"
)

var (
	hundred = decimal.NewFromInt(100)
	half    = decimal.NewFromFloat(0.5)
	one     = decimal.NewFromInt(1)
)

// Resolution is the outcome of resolving a variant's discount.
// Both fields are nil or both are set.
type Resolution struct {
	DiscountedPrice *int64
	DiscountAmount  *int
}

// ResolveDiscount computes the discounted price of price under discount.
// The result is empty unless the discount is active and set. Fractions of a
// currency unit are rounded half-down.
func ResolveDiscount(price int64, discount *model.Discount, active bool) Resolution {
	if !active || discount == nil {
		return Resolution{}
	}

	p := decimal.NewFromInt(price)
	off := p.Mul(decimal.NewFromInt(int64(discount.Percent))).Div(hundred)
	discounted := roundHalfDown(p.Sub(off)).IntPart()
	amount := discount.Percent

	return Resolution{
		DiscountedPrice: &discounted,
		DiscountAmount:  &amount,
	}
}

// ApplyDiscount writes the resolution for v's current price and flags onto v.
// discount must be the row referenced by v.DiscountID, or nil when unset.
func ApplyDiscount(v *model.Variant, discount *model.Discount) {
	if v.DiscountID == nil {
		discount = nil
	}
	res := ResolveDiscount(v.Price, discount, v.DiscountActive)
	v.DiscountedPrice = res.DiscountedPrice
	v.DiscountAmount = res.DiscountAmount
}

// ValidatePercent rejects percentages outside 0..100.
func ValidatePercent(percent int) error {
	if percent < 0 || percent > 100 {
		return model.ErrInvalidDiscount
	}
	return nil
}

func roundHalfDown(d decimal.Decimal) decimal.Decimal {
	floor := d.Floor()
	if d.Sub(floor).GreaterThan(half) {
		return floor.Add(one)
	}
	return floor
}
