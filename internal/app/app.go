// Package app wires the repositories, services and HTTP handlers of the
// storefront on a single connection pool. The API server, the price feed
// importer and the integration tests all build the same graph here.
package app

import (
	"net/http"

	"storefront/internal/events"
	"storefront/internal/handler"
	"storefront/internal/repository"
	"storefront/internal/router"
	"storefront/internal/service"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// Services is the full service graph. Every write service shares one
// propagator so that variant, discount and shipping writes reprice carts and
// unpaid orders the same way.
type Services struct {
	Products  service.ProductService
	Variants  service.VariantService
	Discounts service.DiscountService
	Carts     service.CartService
	Orders    service.OrderService
	Shipping  service.ShippingService
	Wishlists service.WishlistService
}

// NewServices builds the services on pool. numberOffset is added to an
// order id to form its public number.
func NewServices(pool *pgxpool.Pool, publisher events.Publisher, numberOffset int64, logger zerolog.Logger) Services {
	txr := repository.NewTransactor(pool, logger)
	catalog := repository.NewCatalogRepository(logger)
	carts := repository.NewCartRepository(logger)
	orders := repository.NewOrderRepository(logger)
	shipping := repository.NewShippingRepository(logger)
	wishlists := repository.NewWishlistRepository(logger)

	propagator := service.NewPropagator(catalog, carts, orders, logger)

	return Services{
		Products:  service.NewProductService(pool, txr, catalog, propagator, publisher, logger),
		Variants:  service.NewVariantService(pool, txr, catalog, propagator, publisher, logger),
		Discounts: service.NewDiscountService(pool, txr, catalog, propagator, publisher, logger),
		Carts:     service.NewCartService(pool, txr, carts, catalog, logger),
		Orders: service.NewOrderService(pool, txr, orders, carts, catalog, shipping,
			propagator, publisher, numberOffset, logger),
		Shipping:  service.NewShippingService(pool, txr, shipping, propagator, publisher, logger),
		Wishlists: service.NewWishlistService(pool, txr, wishlists, catalog, logger),
	}
}

// Handler mounts the services behind the API router.
func (s Services) Handler(apiKey string, logger zerolog.Logger) http.Handler {
	return router.New(router.Handlers{
		Products:  handler.NewProductHandler(s.Products, logger),
		Variants:  handler.NewVariantHandler(s.Variants, s.Discounts, logger),
		Carts:     handler.NewCartHandler(s.Carts, logger),
		Orders:    handler.NewOrderHandler(s.Orders, logger),
		Shipping:  handler.NewShippingHandler(s.Shipping, logger),
		Wishlists: handler.NewWishlistHandler(s.Wishlists, logger),
	}, apiKey, logger)
}
