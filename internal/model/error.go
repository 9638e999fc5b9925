package model

import "fmt"

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
	Limit   *int   `json:"limit,omitempty"`
}

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON           = "INVALID_JSON"
	ErrCodeValidation            = "VALIDATION_FAILED"
	ErrCodeProductNotFound       = "PRODUCT_NOT_FOUND"
	ErrCodeVariantNotFound       = "VARIANT_NOT_FOUND"
	ErrCodeVariableNotFound      = "VARIABLE_NOT_FOUND"
	ErrCodeCommentNotFound       = "COMMENT_NOT_FOUND"
	ErrCodeWishlistNotFound      = "WISHLIST_NOT_FOUND"
	ErrCodeWishlistItemNotFound  = "WISHLIST_ITEM_NOT_FOUND"
	ErrCodeWishlistItemExists    = "WISHLIST_ITEM_EXISTS"
	ErrCodeInvalidCommentStatus  = "INVALID_COMMENT_STATUS"
	ErrCodeDiscountNotFound      = "DISCOUNT_NOT_FOUND"
	ErrCodeCartNotFound          = "CART_NOT_FOUND"
	ErrCodeCartItemNotFound      = "CART_ITEM_NOT_FOUND"
	ErrCodeOrderNotFound         = "ORDER_NOT_FOUND"
	ErrCodeOrderItemNotFound     = "ORDER_ITEM_NOT_FOUND"
	ErrCodeShippingNotFound      = "SHIPPING_METHOD_NOT_FOUND"
	ErrCodeShippingInactive      = "SHIPPING_METHOD_INACTIVE"
	ErrCodeInvalidQuantity       = "INVALID_QUANTITY"
	ErrCodeInsufficientStock     = "INSUFFICIENT_STOCK"
	ErrCodeInvalidDiscount       = "INVALID_DISCOUNT"
	ErrCodeInvalidPrice          = "INVALID_PRICE"
	ErrCodeInvalidRating         = "INVALID_RATING"
	ErrCodeInvalidStatus         = "INVALID_STATUS"
	ErrCodeEmptyCart             = "EMPTY_CART"
	ErrCodeOrderPaid             = "ORDER_PAID"
	ErrCodeUnauthorised          = "UNAUTHORIZED"
	ErrCodeInternalError         = "INTERNAL_ERROR"
	ErrCodeInvalidIdentifier     = "INVALID_ID"
	ErrCodeSubCategoryMismatched = "SUBCATEGORY_MISMATCH"
)

// DomainError is a business rule failure surfaced to the caller.
// Field and Limit are set for validation failures bound to a single input.
type DomainError struct {
	Code    string
	Message string
	Field   string
	Limit   *int
}

func (e *DomainError) Error() string {
	return e.Message
}

// Is matches domain errors by code so wrapped and freshly built
// errors compare equal to the sentinels below.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// NewStockError reports a requested quantity above the available stock.
func NewStockError(available int) *DomainError {
	limit := available
	return &DomainError{
		Code:    ErrCodeInsufficientStock,
		Message: fmt.Sprintf("Only %d of this product are in stock", available),
		Field:   "quantity",
		Limit:   &limit,
	}
}

// Common domain errors
var (
	ErrProductNotFound     = NewDomainError(ErrCodeProductNotFound, "Product not found")
	ErrVariantNotFound     = NewDomainError(ErrCodeVariantNotFound, "Product variant not found")
	ErrVariableNotFound    = NewDomainError(ErrCodeVariableNotFound, "Variable not found")
	ErrCommentNotFound     = NewDomainError(ErrCodeCommentNotFound, "Comment not found")
	ErrWishlistNotFound    = NewDomainError(ErrCodeWishlistNotFound, "Wishlist not found")
	ErrWishlistItemMissing = NewDomainError(ErrCodeWishlistItemNotFound, "Product is not on the wishlist")
	ErrWishlistItemExists  = NewDomainError(ErrCodeWishlistItemExists, "Product is already on the wishlist")
	ErrInvalidCommentState = NewDomainError(ErrCodeInvalidCommentStatus, "Comment status must be one of w, a, na")
	ErrDiscountNotFound    = NewDomainError(ErrCodeDiscountNotFound, "Discount not found")
	ErrCartNotFound        = NewDomainError(ErrCodeCartNotFound, "Cart not found")
	ErrCartItemNotFound    = NewDomainError(ErrCodeCartItemNotFound, "Cart item not found")
	ErrOrderNotFound       = NewDomainError(ErrCodeOrderNotFound, "Order not found")
	ErrOrderItemNotFound   = NewDomainError(ErrCodeOrderItemNotFound, "Order item not found")
	ErrShippingNotFound    = NewDomainError(ErrCodeShippingNotFound, "Shipping method not found")
	ErrShippingInactive    = NewDomainError(ErrCodeShippingInactive, "Shipping method is not active")
	ErrInvalidQuantity     = NewDomainError(ErrCodeInvalidQuantity, "Quantity must be greater than zero")
	ErrNegativeStock       = NewDomainError(ErrCodeInvalidQuantity, "Stock quantity cannot be negative")
	ErrInsufficientStock   = NewDomainError(ErrCodeInsufficientStock, "Requested quantity exceeds stock")
	ErrInvalidDiscount     = NewDomainError(ErrCodeInvalidDiscount, "Discount must be between 0 and 100")
	ErrInvalidPrice        = NewDomainError(ErrCodeInvalidPrice, "Price cannot be negative")
	ErrInvalidRating       = NewDomainError(ErrCodeInvalidRating, "Rating must be between 1 and 5")
	ErrInvalidStatus       = NewDomainError(ErrCodeInvalidStatus, "Status must be one of nd, d, c")
	ErrEmptyCart           = NewDomainError(ErrCodeEmptyCart, "Cart has no items")
	ErrOrderPaid           = NewDomainError(ErrCodeOrderPaid, "Paid orders cannot be modified")
	ErrSubCategoryMismatch = NewDomainError(ErrCodeSubCategoryMismatched, "Subcategory does not belong to category")
)
