package model

import (
	"time"

	"github.com/google/uuid"
)

// Wishlist is an anonymous list of products a shopper wants to follow.
type Wishlist struct {
	ID        uuid.UUID `json:"id" db:"id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// WishlistItem references a product at most once per wishlist.
type WishlistItem struct {
	ID         int64     `json:"id" db:"id"`
	WishlistID uuid.UUID `json:"wishlistId" db:"wishlist_id"`
	ProductID  int64     `json:"productId" db:"product_id"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
}

// WishlistLine is a wishlist item joined with the product's current price.
type WishlistLine struct {
	WishlistItem
	ProductTitle string    `json:"productTitle"`
	PriceView    PriceView `json:"priceView"`
}

// WishlistResponse represents the response payload for a wishlist.
type WishlistResponse struct {
	ID    uuid.UUID      `json:"id"`
	Lines []WishlistLine `json:"lines"`
}

// AddWishlistItemRequest represents the request payload for adding a product.
type AddWishlistItemRequest struct {
	ProductID int64 `json:"productId" validate:"required,gt=0"`
}
