package repository

import (
	"context"

	"storefront/internal/model"
	"storefront/internal/pricing"

	"github.com/google/uuid"
)

// Get methods return (nil, nil) when the row does not exist. Methods ending in
// ForUpdate take a row lock and must be called inside a transaction.

// CatalogRepository defines data access for products, variants, discounts
// and reviews.
type CatalogRepository interface {
	CreateCategory(ctx context.Context, q Querier, c *model.Category) error
	ListCategories(ctx context.Context, q Querier) ([]model.Category, error)
	CreateSubCategory(ctx context.Context, q Querier, s *model.SubCategory) error
	GetSubCategory(ctx context.Context, q Querier, id int64) (*model.SubCategory, error)
	CreateVariable(ctx context.Context, q Querier, v *model.Variable) error
	GetVariable(ctx context.Context, q Querier, id int64) (*model.Variable, error)

	// CreateProduct inserts a product with empty derived fields.
	CreateProduct(ctx context.Context, q Querier, p *model.Product) error
	GetProduct(ctx context.Context, q Querier, id int64) (*model.Product, error)
	// GetProductForUpdate locks the product row. It is the first lock taken
	// by every write that ends in a product recompute.
	GetProductForUpdate(ctx context.Context, q Querier, id int64) (*model.Product, error)
	// LockProducts locks several product rows in id order.
	LockProducts(ctx context.Context, q Querier, ids []int64) error
	// ListProducts pages through products matching filter in id order.
	ListProducts(ctx context.Context, q Querier, filter model.ProductFilter, limit, offset int) ([]model.Product, error)
	// UpdateProductDerived overwrites every derived column in one statement.
	UpdateProductDerived(ctx context.Context, q Querier, productID int64, d model.ProductDerived) error

	CreateVariant(ctx context.Context, q Querier, v *model.Variant) error
	GetVariant(ctx context.Context, q Querier, id int64) (*model.Variant, error)
	GetVariantForUpdate(ctx context.Context, q Querier, id int64) (*model.Variant, error)
	ListVariantsByProduct(ctx context.Context, q Querier, productID int64) ([]model.Variant, error)
	// ListVariantsByDiscount returns every variant referencing a discount.
	ListVariantsByDiscount(ctx context.Context, q Querier, discountID int64) ([]model.Variant, error)
	UpdateVariant(ctx context.Context, q Querier, v *model.Variant) error
	// UpdateVariantDiscounts bulk writes the resolved discount fields.
	UpdateVariantDiscounts(ctx context.Context, q Querier, variants []model.Variant) error
	DeleteVariant(ctx context.Context, q Querier, id int64) error

	CreateDiscount(ctx context.Context, q Querier, d *model.Discount) error
	GetDiscount(ctx context.Context, q Querier, id int64) (*model.Discount, error)
	GetDiscountForUpdate(ctx context.Context, q Querier, id int64) (*model.Discount, error)
	// GetDiscountForShare blocks percent changes until the caller commits.
	GetDiscountForShare(ctx context.Context, q Querier, id int64) (*model.Discount, error)
	// ProductIDsByDiscount lists the products owning a variant that references a discount.
	ProductIDsByDiscount(ctx context.Context, q Querier, discountID int64) ([]int64, error)
	UpdateDiscount(ctx context.Context, q Querier, d *model.Discount) error

	CreateReview(ctx context.Context, q Querier, r *model.Review) error
	ListReviews(ctx context.Context, q Querier, productID int64) ([]model.Review, error)
	// ReviewStats aggregates a product's ratings server side.
	ReviewStats(ctx context.Context, q Querier, productID int64) (model.ReviewStats, error)

	// CreateComment inserts a comment, waiting for moderation unless a status is set.
	CreateComment(ctx context.Context, q Querier, c *model.Comment) error
	GetComment(ctx context.Context, q Querier, id int64) (*model.Comment, error)
	// ListComments filters by status unless it is empty.
	ListComments(ctx context.Context, q Querier, productID int64, status model.CommentStatus) ([]model.Comment, error)
	UpdateCommentStatus(ctx context.Context, q Querier, id int64, status model.CommentStatus) (*model.Comment, error)
	DeleteComment(ctx context.Context, q Querier, id int64) (bool, error)
}

// CartRepository defines data access for carts and their lines.
type CartRepository interface {
	CreateCart(ctx context.Context, q Querier, c *model.Cart) error
	GetCart(ctx context.Context, q Querier, id uuid.UUID) (*model.Cart, error)
	GetCartForUpdate(ctx context.Context, q Querier, id uuid.UUID) (*model.Cart, error)
	DeleteCart(ctx context.Context, q Querier, id uuid.UUID) (bool, error)

	GetItem(ctx context.Context, q Querier, cartID uuid.UUID, itemID int64) (*model.CartItem, error)
	GetItemByVariant(ctx context.Context, q Querier, cartID uuid.UUID, variantID int64) (*model.CartItem, error)
	// SaveItem inserts the line or overwrites the quantity of the existing
	// line for the same variant.
	SaveItem(ctx context.Context, q Querier, item *model.CartItem) error
	DeleteItem(ctx context.Context, q Querier, cartID uuid.UUID, itemID int64) (bool, error)
	ListItems(ctx context.Context, q Querier, cartID uuid.UUID) ([]model.CartItem, error)
	// ListLines joins each line with its variant and product.
	ListLines(ctx context.Context, q Querier, cartID uuid.UUID) ([]model.CartLine, error)

	// ListItemsByVariant locks and returns every cart line for a variant.
	ListItemsByVariant(ctx context.Context, q Querier, variantID int64) ([]model.CartItem, error)
	// ApplyPlan writes a reconcile plan in a single round trip.
	ApplyPlan(ctx context.Context, q Querier, plan pricing.CartPlan) error
}

// OrderRepository defines data access for orders and order items.
type OrderRepository interface {
	// CreateOrder inserts the order and fills in its id. The number is
	// written afterwards by SetIdentifiers.
	CreateOrder(ctx context.Context, q Querier, o *model.Order) error
	SetIdentifiers(ctx context.Context, q Querier, id int64, number, trackingCode string) error
	GetOrder(ctx context.Context, q Querier, id int64) (*model.Order, error)
	GetOrderForUpdate(ctx context.Context, q Querier, id int64) (*model.Order, error)
	ListOrders(ctx context.Context, q Querier, ids []int64) ([]model.Order, error)
	UpdateStatus(ctx context.Context, q Querier, id int64, status model.OrderStatus) error
	MarkPaid(ctx context.Context, q Querier, id int64) error

	CreateItems(ctx context.Context, q Querier, items []model.OrderItem) error
	ListItems(ctx context.Context, q Querier, orderID int64) ([]model.OrderItem, error)
	// ListItemsByOrders groups the items of several orders by order id.
	ListItemsByOrders(ctx context.Context, q Querier, orderIDs []int64) (map[int64][]model.OrderItem, error)
	UpdateItemQuantity(ctx context.Context, q Querier, itemID int64, quantity int) error

	// ListUnpaidItemsByVariant locks and returns items of unpaid orders that
	// reference a variant. Items of paid orders are never returned.
	ListUnpaidItemsByVariant(ctx context.Context, q Querier, variantID int64) ([]model.OrderItem, error)
	ApplyPlan(ctx context.Context, q Querier, plan pricing.OrderPlan) error
	// UpdateTotals bulk writes the derived totals of several orders.
	UpdateTotals(ctx context.Context, q Querier, totals map[int64]model.OrderTotals) error
	// RepriceShipping sets the shipping price of every unpaid order using a
	// method and refreshes their grand totals. Orders are locked in id order.
	RepriceShipping(ctx context.Context, q Querier, methodID int64, price *int64) ([]int64, error)
}

// ShippingRepository defines data access for shipping methods.
type ShippingRepository interface {
	Create(ctx context.Context, q Querier, m *model.ShippingMethod) error
	GetByID(ctx context.Context, q Querier, id int64) (*model.ShippingMethod, error)
	GetForUpdate(ctx context.Context, q Querier, id int64) (*model.ShippingMethod, error)
	// GetForShare holds off GetForUpdate callers until the caller commits.
	GetForShare(ctx context.Context, q Querier, id int64) (*model.ShippingMethod, error)
	List(ctx context.Context, q Querier, activeOnly bool) ([]model.ShippingMethod, error)
	Update(ctx context.Context, q Querier, m *model.ShippingMethod) error
}

// WishlistRepository defines data access for wishlists.
type WishlistRepository interface {
	CreateWishlist(ctx context.Context, q Querier, w *model.Wishlist) error
	GetWishlist(ctx context.Context, q Querier, id uuid.UUID) (*model.Wishlist, error)
	DeleteWishlist(ctx context.Context, q Querier, id uuid.UUID) (bool, error)

	// AddItem inserts the product and reports false when it was already listed.
	AddItem(ctx context.Context, q Querier, item *model.WishlistItem) (bool, error)
	RemoveItem(ctx context.Context, q Querier, wishlistID uuid.UUID, productID int64) (bool, error)
	// ListLines joins each item with its product's derived price fields.
	ListLines(ctx context.Context, q Querier, wishlistID uuid.UUID) ([]model.WishlistLine, error)
}
