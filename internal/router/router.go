package router

import (
	"net/http"

	"storefront/internal/handler"
	"storefront/internal/middleware"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

// Handlers groups the HTTP handlers mounted under /api.
type Handlers struct {
	Products  *handler.ProductHandler
	Variants  *handler.VariantHandler
	Carts     *handler.CartHandler
	Orders    *handler.OrderHandler
	Shipping  *handler.ShippingHandler
	Wishlists *handler.WishlistHandler
}

// New creates a new HTTP router with all routes and middleware configured.
func New(h Handlers, apiKey string, logger zerolog.Logger) http.Handler {
	r := chi.NewRouter()

	// Recovery -> RequestID -> Logging -> CORS -> APIKeyAuth
	r.Use(middleware.Recovery(logger))
	r.Use(chimw.RequestID)
	r.Use(middleware.Logging(logger))
	r.Use(middleware.CORS)
	r.Use(middleware.APIKeyAuth(apiKey, logger))

	// Health check endpoint (no authentication required)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})

	r.Route("/api", func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			r.Get("/", h.Products.List)
			r.Post("/", h.Products.Create)
			r.Get("/{productID}", h.Products.GetByID)
			r.Post("/{productID}/recompute", h.Products.Recompute)
			r.Get("/{productID}/reviews", h.Products.ListReviews)
			r.Post("/{productID}/reviews", h.Products.AddReview)
			r.Get("/{productID}/comments", h.Products.ListComments)
			r.Post("/{productID}/comments", h.Products.AddComment)
		})

		r.Route("/comments", func(r chi.Router) {
			r.Patch("/{commentID}", h.Products.ModerateComment)
			r.Delete("/{commentID}", h.Products.DeleteComment)
		})

		r.Route("/categories", func(r chi.Router) {
			r.Get("/", h.Products.ListCategories)
			r.Post("/", h.Products.CreateCategory)
			r.Get("/{categoryID}/products", h.Products.List)
			r.Get("/{categoryID}/subcategories/{subCategoryID}/products", h.Products.List)
		})

		r.Route("/subcategories", func(r chi.Router) {
			r.Post("/", h.Products.CreateSubCategory)
			r.Get("/{subCategoryID}/products", h.Products.List)
		})

		r.Post("/variables", h.Products.CreateVariable)

		r.Route("/variants", func(r chi.Router) {
			r.Post("/", h.Variants.Create)
			r.Get("/{variantID}", h.Variants.GetByID)
			r.Patch("/{variantID}", h.Variants.Update)
			r.Delete("/{variantID}", h.Variants.Delete)
		})

		r.Route("/discounts", func(r chi.Router) {
			r.Post("/", h.Variants.CreateDiscount)
			r.Get("/{discountID}", h.Variants.GetDiscount)
			r.Patch("/{discountID}", h.Variants.UpdateDiscount)
		})

		r.Route("/carts", func(r chi.Router) {
			r.Post("/", h.Carts.Create)
			r.Get("/{cartID}", h.Carts.Get)
			r.Delete("/{cartID}", h.Carts.Delete)
			r.Post("/{cartID}/items", h.Carts.AddItem)
			r.Patch("/{cartID}/items/{itemID}", h.Carts.UpdateItem)
			r.Delete("/{cartID}/items/{itemID}", h.Carts.RemoveItem)
		})

		r.Route("/orders", func(r chi.Router) {
			r.Post("/", h.Orders.Create)
			r.Get("/{orderID}", h.Orders.GetByID)
			r.Patch("/{orderID}/status", h.Orders.UpdateStatus)
			r.Post("/{orderID}/pay", h.Orders.Pay)
			r.Patch("/{orderID}/items/{itemID}", h.Orders.UpdateItem)
		})

		r.Route("/wishlists", func(r chi.Router) {
			r.Post("/", h.Wishlists.Create)
			r.Get("/{wishlistID}", h.Wishlists.Get)
			r.Delete("/{wishlistID}", h.Wishlists.Delete)
			r.Post("/{wishlistID}/items", h.Wishlists.AddItem)
			r.Delete("/{wishlistID}/items/{productID}", h.Wishlists.RemoveItem)
		})

		r.Route("/shipping-methods", func(r chi.Router) {
			r.Get("/", h.Shipping.List)
			r.Post("/", h.Shipping.Create)
			r.Patch("/{methodID}", h.Shipping.Update)
		})
	})

	return r
}
