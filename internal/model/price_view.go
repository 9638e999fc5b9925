package model

import "encoding/json"

// PriceKind discriminates the PriceView variants.
type PriceKind string

const (
	PriceKindNoStock    PriceKind = "no_stock"
	PriceKindPlain      PriceKind = "plain"
	PriceKindDiscounted PriceKind = "discounted"
)

// PriceView is the presentation form of a product's price. Exactly one of
// the kinds applies; consumers switch on Kind instead of probing fields.
type PriceView struct {
	Kind       PriceKind
	Price      int64
	Discounted int64
	Percent    int
}

// NoStock is the view of a product with nothing to sell.
func NoStock() PriceView {
	return PriceView{Kind: PriceKindNoStock}
}

// PlainPrice is the view of an in-stock product without a discount.
func PlainPrice(price int64) PriceView {
	return PriceView{Kind: PriceKindPlain, Price: price}
}

// DiscountedPrice is the view of an in-stock product with an active discount.
func DiscountedPrice(price, discounted int64, percent int) PriceView {
	return PriceView{Kind: PriceKindDiscounted, Price: price, Discounted: discounted, Percent: percent}
}

// PriceViewOf derives the view from a product's stored derived fields.
func PriceViewOf(d ProductDerived) PriceView {
	if !d.InStock || d.Price == nil {
		return NoStock()
	}
	if d.HasDiscount && d.DiscountedPrice != nil && d.DiscountAmount != nil {
		return DiscountedPrice(*d.Price, *d.DiscountedPrice, *d.DiscountAmount)
	}
	return PlainPrice(*d.Price)
}

// MarshalJSON emits only the fields that belong to the view's kind.
func (v PriceView) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case PriceKindPlain:
		return json.Marshal(struct {
			Kind  PriceKind `json:"kind"`
			Price int64     `json:"price"`
		}{v.Kind, v.Price})
	case PriceKindDiscounted:
		return json.Marshal(struct {
			Kind       PriceKind `json:"kind"`
			Price      int64     `json:"price"`
			Discounted int64     `json:"discountedPrice"`
			Percent    int       `json:"discountPercent"`
		}{v.Kind, v.Price, v.Discounted, v.Percent})
	default:
		return json.Marshal(struct {
			Kind PriceKind `json:"kind"`
		}{PriceKindNoStock})
	}
}

// UnmarshalJSON accepts the shapes produced by MarshalJSON.
func (v *PriceView) UnmarshalJSON(data []byte) error {
	var raw struct {
		Kind       PriceKind `json:"kind"`
		Price      int64     `json:"price"`
		Discounted int64     `json:"discountedPrice"`
		Percent    int       `json:"discountPercent"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch raw.Kind {
	case PriceKindPlain:
		*v = PlainPrice(raw.Price)
	case PriceKindDiscounted:
		*v = DiscountedPrice(raw.Price, raw.Discounted, raw.Percent)
	default:
		*v = NoStock()
	}
	return nil
}
