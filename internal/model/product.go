package model

import "time"

// Category groups subcategories and products.
type Category struct {
	ID        int64     `json:"id" db:"id"`
	Title     string    `json:"title" db:"title"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// SubCategory belongs to exactly one category.
type SubCategory struct {
	ID         int64     `json:"id" db:"id"`
	CategoryID int64     `json:"categoryId" db:"category_id"`
	Title      string    `json:"title" db:"title"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
}

// Discount is a named percentage shared by many variants.
type Discount struct {
	ID          int64     `json:"id" db:"id"`
	Percent     int       `json:"percent" db:"percent"`
	Description string    `json:"description" db:"description"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
}

// VariableType distinguishes the kind of descriptor a variant carries.
type VariableType string

const (
	VariableColor VariableType = "color"
	VariableSize  VariableType = "size"
)

// Variable is a color or size descriptor attached to variants.
type Variable struct {
	ID        int64        `json:"id" db:"id"`
	Type      VariableType `json:"type" db:"type"`
	Title     string       `json:"title" db:"title"`
	ColorCode *string      `json:"colorCode,omitempty" db:"color_code"`
}

// ProductDerived holds every product column computed from variants and reviews.
type ProductDerived struct {
	Price           *int64   `json:"price"`
	DiscountedPrice *int64   `json:"discountedPrice"`
	DiscountAmount  *int     `json:"discountAmount"`
	HasDiscount     bool     `json:"hasDiscount"`
	RatesAverage    *float64 `json:"ratesAverage"`
	NumberOfReviews int      `json:"numberOfReviews"`
	InStock         bool     `json:"inStock"`
	StockQuantity   int      `json:"stockQuantity"`
	TotalSold       int      `json:"totalSold"`
}

// Product represents a catalogue entry. Its embedded derived fields are
// written only by a recompute pass.
type Product struct {
	ID            int64     `json:"id" db:"id"`
	Title         string    `json:"title" db:"title"`
	Description   string    `json:"description" db:"description"`
	CategoryID    *int64    `json:"categoryId,omitempty" db:"category_id"`
	SubCategoryID *int64    `json:"subCategoryId,omitempty" db:"subcategory_id"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time `json:"updatedAt" db:"updated_at"`
	ProductDerived
}

// Variant is a purchasable SKU of a product.
type Variant struct {
	ID              int64     `json:"id" db:"id"`
	ProductID       int64     `json:"productId" db:"product_id"`
	VariableID      *int64    `json:"variableId,omitempty" db:"variable_id"`
	Title           string    `json:"title" db:"title"`
	Price           int64     `json:"price" db:"price"`
	Quantity        int       `json:"quantity" db:"quantity"`
	DiscountID      *int64    `json:"discountId,omitempty" db:"discount_id"`
	DiscountActive  bool      `json:"discountActive" db:"discount_active"`
	DiscountedPrice *int64    `json:"discountedPrice" db:"discounted_price"`
	DiscountAmount  *int      `json:"discountAmount" db:"discount_amount"`
	TotalSold       int       `json:"totalSold" db:"total_sold"`
	CreatedAt       time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time `json:"updatedAt" db:"updated_at"`
}

// InStock reports whether the variant can currently be sold.
func (v *Variant) InStock() bool {
	return v.Quantity > 0
}

// HasResolvedDiscount reports whether the stored discount fields are populated.
func (v *Variant) HasResolvedDiscount() bool {
	return v.DiscountActive && v.DiscountedPrice != nil && v.DiscountAmount != nil
}

// UnitPrice is the price a buyer pays for one unit right now.
func (v *Variant) UnitPrice() int64 {
	if v.HasResolvedDiscount() {
		return *v.DiscountedPrice
	}
	return v.Price
}

// Review is a single customer rating of a product.
type Review struct {
	ID        int64     `json:"id" db:"id"`
	ProductID int64     `json:"productId" db:"product_id"`
	Author    string    `json:"author" db:"author"`
	Rating    int       `json:"rating" db:"rating"`
	Comment   string    `json:"comment" db:"comment"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// ReviewStats is the server-side aggregate of a product's reviews.
type ReviewStats struct {
	Count   int
	Average *float64
}

// CommentStatus is the moderation state of a comment.
type CommentStatus string

const (
	CommentWaiting     CommentStatus = "w"
	CommentApproved    CommentStatus = "a"
	CommentNotApproved CommentStatus = "na"
)

// Valid reports whether s is a known moderation state.
func (s CommentStatus) Valid() bool {
	switch s {
	case CommentWaiting, CommentApproved, CommentNotApproved:
		return true
	}
	return false
}

// Comment is free text left on a product. New comments wait for moderation.
type Comment struct {
	ID        int64         `json:"id" db:"id"`
	ProductID int64         `json:"productId" db:"product_id"`
	Author    string        `json:"author" db:"author"`
	Body      string        `json:"body" db:"body"`
	Status    CommentStatus `json:"status" db:"status"`
	CreatedAt time.Time     `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time     `json:"updatedAt" db:"updated_at"`
}

// ProductFilter narrows a product listing. Nil fields do not filter.
type ProductFilter struct {
	CategoryID    *int64
	SubCategoryID *int64
}

// ProductResponse is the read model returned to API clients.
type ProductResponse struct {
	Product
	PriceView PriceView `json:"priceView"`
	Variants  []Variant `json:"variants,omitempty"`
}

// CreateProductRequest represents the request payload for creating a product.
type CreateProductRequest struct {
	Title         string `json:"title" validate:"required,max=255"`
	Description   string `json:"description"`
	CategoryID    *int64 `json:"categoryId,omitempty"`
	SubCategoryID *int64 `json:"subCategoryId,omitempty"`
}

// CreateCategoryRequest represents the request payload for creating a category.
type CreateCategoryRequest struct {
	Title string `json:"title" validate:"required,max=100"`
}

// CreateSubCategoryRequest represents the request payload for creating a subcategory.
type CreateSubCategoryRequest struct {
	CategoryID int64  `json:"categoryId" validate:"required,gt=0"`
	Title      string `json:"title" validate:"required,max=100"`
}

// CreateVariableRequest represents the request payload for creating a variable.
type CreateVariableRequest struct {
	Type      VariableType `json:"type" validate:"required,oneof=color size"`
	Title     string       `json:"title" validate:"required,max=100"`
	ColorCode *string      `json:"colorCode,omitempty" validate:"omitempty,hexcolor"`
}

// CreateVariantRequest represents the request payload for creating a variant.
type CreateVariantRequest struct {
	ProductID      int64  `json:"productId" validate:"required,gt=0"`
	VariableID     *int64 `json:"variableId,omitempty"`
	Title          string `json:"title" validate:"max=255"`
	Price          int64  `json:"price" validate:"gte=0"`
	Quantity       int    `json:"quantity" validate:"gte=0"`
	DiscountID     *int64 `json:"discountId,omitempty"`
	DiscountActive bool   `json:"discountActive"`
}

// UpdateVariantRequest carries a partial variant update. Nil fields are left
// unchanged; ClearDiscount detaches the discount reference.
type UpdateVariantRequest struct {
	Title          *string `json:"title,omitempty" validate:"omitempty,max=255"`
	Price          *int64  `json:"price,omitempty" validate:"omitempty,gte=0"`
	Quantity       *int    `json:"quantity,omitempty" validate:"omitempty,gte=0"`
	DiscountID     *int64  `json:"discountId,omitempty"`
	ClearDiscount  bool    `json:"clearDiscount,omitempty"`
	DiscountActive *bool   `json:"discountActive,omitempty"`
	TotalSold      *int    `json:"totalSold,omitempty" validate:"omitempty,gte=0"`
}

// CreateDiscountRequest represents the request payload for creating a discount.
type CreateDiscountRequest struct {
	Percent     int    `json:"percent" validate:"gte=0,lte=100"`
	Description string `json:"description" validate:"max=255"`
}

// UpdateDiscountRequest changes a shared discount's percentage.
type UpdateDiscountRequest struct {
	Percent     int     `json:"percent" validate:"gte=0,lte=100"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=255"`
}

// AddCommentRequest represents the request payload for commenting on a product.
type AddCommentRequest struct {
	Author string `json:"author" validate:"required,max=150"`
	Body   string `json:"body" validate:"required"`
}

// ModerateCommentRequest sets a comment's moderation status.
type ModerateCommentRequest struct {
	Status CommentStatus `json:"status" validate:"required"`
}

// AddReviewRequest represents the request payload for rating a product.
type AddReviewRequest struct {
	Author  string `json:"author" validate:"required,max=150"`
	Rating  int    `json:"rating" validate:"required,gte=1,lte=5"`
	Comment string `json:"comment"`
}
