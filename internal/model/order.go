package model

import (
	"time"

	"github.com/google/uuid"
)

// OrderStatus is the delivery state of an order. It is orthogonal to IsPaid.
type OrderStatus string

const (
	OrderStatusNotDelivered OrderStatus = "nd"
	OrderStatusDelivered    OrderStatus = "d"
	OrderStatusCanceled     OrderStatus = "c"
)

// Valid reports whether s is a known status.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusNotDelivered, OrderStatusDelivered, OrderStatusCanceled:
		return true
	}
	return false
}

// Receiver is the delivery address snapshot stored on an order.
type Receiver struct {
	Name        string   `json:"name" db:"receiver_name" validate:"required,max=100"`
	Family      string   `json:"family" db:"receiver_family" validate:"required,max=150"`
	PhoneNumber string   `json:"phoneNumber" db:"receiver_phone_number" validate:"required,max=13"`
	City        string   `json:"city" db:"receiver_city" validate:"required,max=85"`
	Address     string   `json:"address" db:"receiver_address" validate:"required"`
	PostalCode  string   `json:"postalCode" db:"receiver_postal_code" validate:"required,max=20"`
	Latitude    *float64 `json:"latitude,omitempty" db:"receiver_latitude" validate:"omitempty,latitude"`
	Longitude   *float64 `json:"longitude,omitempty" db:"receiver_longitude" validate:"omitempty,longitude"`
}

// OrderTotals are the derived money columns of an order.
type OrderTotals struct {
	ProductsTotalPrice int64 `json:"productsTotalPrice" db:"products_total_price"`
	OrderTotalDiscount int64 `json:"orderTotalDiscount" db:"order_total_discount"`
	OrderTotalPrice    int64 `json:"orderTotalPrice" db:"order_total_price"`
}

// Order represents a customer order.
type Order struct {
	ID               int64       `json:"id" db:"id"`
	Number           string      `json:"number" db:"number"`
	TrackingCode     *string     `json:"trackingCode,omitempty" db:"tracking_code"`
	Status           OrderStatus `json:"status" db:"status"`
	IsPaid           bool        `json:"isPaid" db:"is_paid"`
	ShippingMethodID int64       `json:"shippingMethodId" db:"shipping_method_id"`
	ShippingPrice    *int64      `json:"shippingPrice" db:"shipping_price"`
	Receiver         Receiver    `json:"receiver"`
	OrderTotals
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// OrderItem is a snapshot of a variant at order time. While the order is
// unpaid it mirrors the live variant; afterwards it is frozen.
type OrderItem struct {
	ID              int64  `json:"id" db:"id"`
	OrderID         int64  `json:"orderId" db:"order_id"`
	VariantID       *int64 `json:"variantId" db:"variant_id"`
	ProductTitle    string `json:"productTitle" db:"product_title"`
	Variable        string `json:"variable" db:"variable"`
	Price           int64  `json:"price" db:"price"`
	Quantity        int    `json:"quantity" db:"quantity"`
	DiscountActive  bool   `json:"discountActive" db:"discount_active"`
	DiscountAmount  *int   `json:"discountAmount" db:"discount_amount"`
	DiscountedPrice *int64 `json:"discountedPrice" db:"discounted_price"`
}

// HasResolvedDiscount reports whether the line is charged at its discounted price.
func (i *OrderItem) HasResolvedDiscount() bool {
	return i.DiscountActive && i.DiscountAmount != nil && i.DiscountedPrice != nil
}

// OrderRequest represents the request payload for converting a cart into an order.
type OrderRequest struct {
	CartID           uuid.UUID `json:"cartId" validate:"required"`
	ShippingMethodID int64     `json:"shippingMethodId" validate:"required,gt=0"`
	Receiver         Receiver  `json:"receiver" validate:"required"`
}

// UpdateOrderStatusRequest represents the request payload for a status change.
type UpdateOrderStatusRequest struct {
	Status OrderStatus `json:"status" validate:"required,oneof=nd d c"`
}

// OrderResponse represents the response payload for an order.
type OrderResponse struct {
	Order
	Items []OrderItem `json:"items"`
}
