package model

import (
	"time"

	"github.com/google/uuid"
)

// Cart is an anonymous bag of variant lines.
type Cart struct {
	ID        uuid.UUID `json:"id" db:"id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// CartItem references a variant and a quantity of at least one.
type CartItem struct {
	ID        int64     `json:"id" db:"id"`
	CartID    uuid.UUID `json:"cartId" db:"cart_id"`
	VariantID int64     `json:"variantId" db:"variant_id"`
	Quantity  int       `json:"quantity" db:"quantity"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// CartLine is a cart item joined with the live state of its variant.
type CartLine struct {
	CartItem
	ProductID       int64  `json:"productId"`
	ProductTitle    string `json:"productTitle"`
	VariantTitle    string `json:"variantTitle"`
	Price           int64  `json:"price"`
	DiscountedPrice *int64 `json:"discountedPrice"`
	LineTotal       int64  `json:"lineTotal"`
}

// CartResponse represents the response payload for a cart.
type CartResponse struct {
	ID    uuid.UUID  `json:"id"`
	Lines []CartLine `json:"lines"`
	Total int64      `json:"total"`
}

// AddCartItemRequest represents the request payload for adding to a cart.
type AddCartItemRequest struct {
	VariantID int64 `json:"variantId" validate:"required,gt=0"`
	Quantity  int   `json:"quantity" validate:"required,gt=0"`
}

// UpdateQuantityRequest sets the quantity of a cart or order line.
type UpdateQuantityRequest struct {
	Quantity int `json:"quantity" validate:"required,gt=0"`
}
