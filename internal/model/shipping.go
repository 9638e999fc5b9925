package model

import "time"

// ShippingMethod is a delivery option. A nil Price leaves the shipping
// price of its orders unset and adds nothing to their totals.
type ShippingMethod struct {
	ID                int64     `json:"id" db:"id"`
	Name              string    `json:"name" db:"name"`
	Price             *int64    `json:"price" db:"price"`
	DeliveryTimeHours int       `json:"deliveryTimeHours" db:"delivery_time_hours"`
	Active            bool      `json:"active" db:"active"`
	CreatedAt         time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt         time.Time `json:"updatedAt" db:"updated_at"`
}

// CreateShippingMethodRequest represents the request payload for a new shipping method.
type CreateShippingMethodRequest struct {
	Name              string `json:"name" validate:"required,max=50"`
	Price             *int64 `json:"price,omitempty" validate:"omitempty,gte=0"`
	DeliveryTimeHours int    `json:"deliveryTimeHours" validate:"gte=0"`
	Active            *bool  `json:"active,omitempty"`
}

// UpdateShippingMethodRequest carries a partial shipping method update.
// ClearPrice removes the price.
type UpdateShippingMethodRequest struct {
	Name              *string `json:"name,omitempty" validate:"omitempty,max=50"`
	Price             *int64  `json:"price,omitempty" validate:"omitempty,gte=0"`
	ClearPrice        bool    `json:"clearPrice,omitempty"`
	DeliveryTimeHours *int    `json:"deliveryTimeHours,omitempty" validate:"omitempty,gte=0"`
	Active            *bool   `json:"active,omitempty"`
}
