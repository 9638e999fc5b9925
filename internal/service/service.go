package service

import (
	"context"
	"fmt"

	"storefront/internal/events"
	"storefront/internal/model"
	"storefront/internal/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

// Propagator recomputes every value derived from a variant or shipping
// method write. All methods run on the caller's transaction and return the
// events to publish once it commits.
type Propagator interface {
	// RecomputeProduct rewrites a product's derived fields from its variants
	// and reviews.
	RecomputeProduct(ctx context.Context, q repository.Querier, productID int64) (*model.ProductDerived, error)

	// VariantChanged runs the full chain for a written variant: product
	// recompute, cart reconcile, unpaid order reconcile and order totals.
	// A nil variant means it is about to be deleted; its lines are removed
	// and the product recompute is left to the caller.
	VariantChanged(ctx context.Context, q repository.Querier, productID, variantID int64, v *model.Variant) ([]events.Event, error)

	// RecomputeOrders rewrites the totals of unpaid orders.
	RecomputeOrders(ctx context.Context, q repository.Querier, orderIDs []int64) ([]events.Event, error)

	// ShippingMethodChanged reprices every unpaid order using the method.
	ShippingMethodChanged(ctx context.Context, q repository.Querier, m *model.ShippingMethod) ([]events.Event, error)
}

// ProductService defines operations for product management.
type ProductService interface {
	Create(ctx context.Context, req *model.CreateProductRequest) (*model.Product, error)

	// GetByID retrieves a product with its price view and variants.
	GetByID(ctx context.Context, id int64) (*model.ProductResponse, error)

	// List retrieves products with pagination. Set filter fields must all match.
	List(ctx context.Context, filter model.ProductFilter, limit, offset int) ([]model.ProductResponse, error)

	// Recompute rebuilds the derived fields of a product.
	Recompute(ctx context.Context, id int64) (*model.Product, error)

	AddReview(ctx context.Context, productID int64, req *model.AddReviewRequest) (*model.Review, error)
	ListReviews(ctx context.Context, productID int64) ([]model.Review, error)

	// AddComment stores a comment waiting for moderation.
	AddComment(ctx context.Context, productID int64, req *model.AddCommentRequest) (*model.Comment, error)
	ListComments(ctx context.Context, productID int64, status model.CommentStatus) ([]model.Comment, error)
	ModerateComment(ctx context.Context, id int64, status model.CommentStatus) (*model.Comment, error)
	DeleteComment(ctx context.Context, id int64) error

	CreateCategory(ctx context.Context, req *model.CreateCategoryRequest) (*model.Category, error)
	ListCategories(ctx context.Context) ([]model.Category, error)
	CreateSubCategory(ctx context.Context, req *model.CreateSubCategoryRequest) (*model.SubCategory, error)
	CreateVariable(ctx context.Context, req *model.CreateVariableRequest) (*model.Variable, error)
}

// VariantService defines operations on product variants. Every write
// propagates to the product, carts and unpaid orders before commit.
type VariantService interface {
	Create(ctx context.Context, req *model.CreateVariantRequest) (*model.Variant, error)
	GetByID(ctx context.Context, id int64) (*model.Variant, error)
	Update(ctx context.Context, id int64, req *model.UpdateVariantRequest) (*model.Variant, error)
	Delete(ctx context.Context, id int64) error
}

// DiscountService defines operations on shared discounts.
type DiscountService interface {
	Create(ctx context.Context, req *model.CreateDiscountRequest) (*model.Discount, error)
	GetByID(ctx context.Context, id int64) (*model.Discount, error)

	// Update changes the percentage and re-resolves every variant using it.
	Update(ctx context.Context, id int64, req *model.UpdateDiscountRequest) (*model.Discount, error)
}

// CartService defines operations on carts.
type CartService interface {
	Create(ctx context.Context) (*model.CartResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*model.CartResponse, error)

	// AddItem merges into an existing line for the same variant.
	AddItem(ctx context.Context, cartID uuid.UUID, req *model.AddCartItemRequest) (*model.CartResponse, error)
	UpdateItemQuantity(ctx context.Context, cartID uuid.UUID, itemID int64, quantity int) (*model.CartResponse, error)
	RemoveItem(ctx context.Context, cartID uuid.UUID, itemID int64) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// OrderService defines operations for order management.
type OrderService interface {
	// CreateFromCart converts a cart into an order and deletes the cart.
	CreateFromCart(ctx context.Context, req *model.OrderRequest) (*model.OrderResponse, error)

	GetByID(ctx context.Context, id int64) (*model.OrderResponse, error)
	UpdateStatus(ctx context.Context, id int64, status model.OrderStatus) (*model.OrderResponse, error)

	// MarkPaid freezes the order against further propagation.
	MarkPaid(ctx context.Context, id int64) (*model.OrderResponse, error)

	UpdateItemQuantity(ctx context.Context, orderID, itemID int64, quantity int) (*model.OrderResponse, error)
}

// ShippingService defines operations on shipping methods.
type ShippingService interface {
	Create(ctx context.Context, req *model.CreateShippingMethodRequest) (*model.ShippingMethod, error)

	// Update writes the method; a price change reprices unpaid orders.
	Update(ctx context.Context, id int64, req *model.UpdateShippingMethodRequest) (*model.ShippingMethod, error)

	List(ctx context.Context, activeOnly bool) ([]model.ShippingMethod, error)
}

// WishlistService defines operations on anonymous wishlists.
type WishlistService interface {
	Create(ctx context.Context) (*model.WishlistResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*model.WishlistResponse, error)

	// AddItem lists a product once; a repeat add is rejected.
	AddItem(ctx context.Context, wishlistID uuid.UUID, req *model.AddWishlistItemRequest) (*model.WishlistResponse, error)
	RemoveItem(ctx context.Context, wishlistID uuid.UUID, productID int64) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// runInTx runs fn in a transaction, rolling back when it fails.
func runInTx(ctx context.Context, txr repository.Transactor, logger zerolog.Logger, fn func(tx pgx.Tx) error) (err error) {
	tx, err := txr.BeginTx(ctx)
	if err != nil {
		return err
	}

	// Ensure transaction is rolled back on error
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	if err = fn(tx); err != nil {
		return err
	}

	if err = tx.Commit(ctx); err != nil {
		logger.Error().Err(err).Msg("failed to commit transaction")
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// publish sends committed changes downstream. Failures are logged only.
func publish(ctx context.Context, pub events.Publisher, logger zerolog.Logger, evs []events.Event) {
	if len(evs) == 0 {
		return
	}
	if err := pub.Publish(ctx, evs...); err != nil {
		logger.Warn().Err(err).Int("count", len(evs)).Msg("failed to publish change events")
	}
}
