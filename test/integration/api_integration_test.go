package integration

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"storefront/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testReceiver() model.Receiver {
	return model.Receiver{
		Name:        "Sara",
		Family:      "Karimi",
		PhoneNumber: "09120000000",
		City:        "Tehran",
		Address:     "Azadi St. 1",
		PostalCode:  "1234567890",
	}
}

// seedCatalog creates a product with one variant priced 1000 at a 20%
// discount and five in stock, plus a shipping method costing 150.
func seedCatalog(t *testing.T, server http.Handler) (product model.Product, variant model.Variant, method model.ShippingMethod) {
	t.Helper()

	var discount model.Discount
	require.Equal(t, http.StatusCreated, call(t, server, http.MethodPost, "/api/discounts",
		model.CreateDiscountRequest{Percent: 20, Description: "spring"}, &discount))

	require.Equal(t, http.StatusCreated, call(t, server, http.MethodPost, "/api/products",
		model.CreateProductRequest{Title: "Shirt"}, &product))

	require.Equal(t, http.StatusCreated, call(t, server, http.MethodPost, "/api/variants",
		model.CreateVariantRequest{
			ProductID:      product.ID,
			Title:          "Blue",
			Price:          1000,
			Quantity:       5,
			DiscountID:     &discount.ID,
			DiscountActive: true,
		}, &variant))

	price := int64(150)
	require.Equal(t, http.StatusCreated, call(t, server, http.MethodPost, "/api/shipping-methods",
		model.CreateShippingMethodRequest{Name: "Post", Price: &price, DeliveryTimeHours: 48}, &method))

	return product, variant, method
}

func newCartWith(t *testing.T, server http.Handler, variantID int64, quantity int) model.CartResponse {
	t.Helper()

	var cart model.CartResponse
	require.Equal(t, http.StatusCreated, call(t, server, http.MethodPost, "/api/carts", nil, &cart))
	require.Equal(t, http.StatusOK, call(t, server, http.MethodPost, fmt.Sprintf("/api/carts/%s/items", cart.ID),
		model.AddCartItemRequest{VariantID: variantID, Quantity: quantity}, &cart))
	return cart
}

func checkout(t *testing.T, server http.Handler, cart model.CartResponse, methodID int64) model.OrderResponse {
	t.Helper()

	var order model.OrderResponse
	require.Equal(t, http.StatusCreated, call(t, server, http.MethodPost, "/api/orders",
		model.OrderRequest{CartID: cart.ID, ShippingMethodID: methodID, Receiver: testReceiver()}, &order))
	return order
}

func getOrder(t *testing.T, server http.Handler, id int64) model.OrderResponse {
	t.Helper()

	var order model.OrderResponse
	require.Equal(t, http.StatusOK, call(t, server, http.MethodGet, fmt.Sprintf("/api/orders/%d", id), nil, &order))
	return order
}

func TestStorefrontAPI_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	testDB := SetupTestDB(t)
	server := setupTestServer(t, testDB)

	t.Run("product shows the discounted price of its variant", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		product, variant, _ := seedCatalog(t, server)

		require.NotNil(t, variant.DiscountedPrice)
		assert.Equal(t, int64(800), *variant.DiscountedPrice)

		var got model.ProductResponse
		require.Equal(t, http.StatusOK, call(t, server, http.MethodGet, fmt.Sprintf("/api/products/%d", product.ID), nil, &got))
		assert.Equal(t, model.DiscountedPrice(1000, 800, 20), got.PriceView)
		assert.True(t, got.InStock)
		assert.Equal(t, 5, got.StockQuantity)
		assert.Len(t, got.Variants, 1)
	})

	t.Run("add to cart beyond stock reports the limit", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		_, variant, _ := seedCatalog(t, server)
		cart := newCartWith(t, server, variant.ID, 2)
		assert.Equal(t, int64(1600), cart.Total)

		var errResp model.ErrorResponse
		code := call(t, server, http.MethodPost, fmt.Sprintf("/api/carts/%s/items", cart.ID),
			model.AddCartItemRequest{VariantID: variant.ID, Quantity: 4}, &errResp)

		assert.Equal(t, http.StatusConflict, code)
		assert.Equal(t, model.ErrCodeInsufficientStock, errResp.Error)
		assert.Equal(t, "quantity", errResp.Field)
		require.NotNil(t, errResp.Limit)
		assert.Equal(t, 5, *errResp.Limit)

		var after model.CartResponse
		require.Equal(t, http.StatusOK, call(t, server, http.MethodGet, fmt.Sprintf("/api/carts/%s", cart.ID), nil, &after))
		require.Len(t, after.Lines, 1)
		assert.Equal(t, 2, after.Lines[0].Quantity)
	})

	t.Run("checkout computes totals and deletes the cart", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		_, variant, method := seedCatalog(t, server)
		cart := newCartWith(t, server, variant.ID, 2)

		order := checkout(t, server, cart, method.ID)

		assert.Equal(t, "12346", order.Number)
		assert.Regexp(t, `^[0-9A-F]{15}$`, *order.TrackingCode)
		assert.Equal(t, model.OrderStatusNotDelivered, order.Status)
		assert.False(t, order.IsPaid)
		assert.Equal(t, int64(1600), order.ProductsTotalPrice)
		assert.Equal(t, int64(400), order.OrderTotalDiscount)
		assert.Equal(t, int64(1750), order.OrderTotalPrice)
		require.Len(t, order.Items, 1)
		assert.Equal(t, "Shirt", order.Items[0].ProductTitle)
		assert.Equal(t, "Blue", order.Items[0].Variable)

		code := call(t, server, http.MethodGet, fmt.Sprintf("/api/carts/%s", cart.ID), nil, nil)
		assert.Equal(t, http.StatusNotFound, code)
	})

	t.Run("writes propagate to unpaid orders only", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		product, variant, method := seedCatalog(t, server)

		unpaid := checkout(t, server, newCartWith(t, server, variant.ID, 2), method.ID)

		// Shipping price change reprices the open order.
		newShipping := int64(200)
		require.Equal(t, http.StatusOK, call(t, server, http.MethodPatch, fmt.Sprintf("/api/shipping-methods/%d", method.ID),
			model.UpdateShippingMethodRequest{Price: &newShipping}, nil))
		assert.Equal(t, int64(1800), getOrder(t, server, unpaid.ID).OrderTotalPrice)

		paid := checkout(t, server, newCartWith(t, server, variant.ID, 1), method.ID)
		require.Equal(t, http.StatusOK, call(t, server, http.MethodPost, fmt.Sprintf("/api/orders/%d/pay", paid.ID), nil, nil))
		assert.Equal(t, int64(1000), getOrder(t, server, paid.ID).OrderTotalPrice)

		// Price change: open order follows, paid order keeps its snapshot.
		newPrice := int64(2000)
		require.Equal(t, http.StatusOK, call(t, server, http.MethodPatch, fmt.Sprintf("/api/variants/%d", variant.ID),
			model.UpdateVariantRequest{Price: &newPrice}, nil))

		got := getOrder(t, server, unpaid.ID)
		assert.Equal(t, int64(3200), got.ProductsTotalPrice)
		assert.Equal(t, int64(800), got.OrderTotalDiscount)
		assert.Equal(t, int64(3400), got.OrderTotalPrice)
		require.Len(t, got.Items, 1)
		assert.Equal(t, int64(2000), got.Items[0].Price)

		frozen := getOrder(t, server, paid.ID)
		assert.Equal(t, int64(1000), frozen.OrderTotalPrice)
		assert.Equal(t, int64(1000), frozen.Items[0].Price)

		// Selling out removes the open order's line.
		zero := 0
		require.Equal(t, http.StatusOK, call(t, server, http.MethodPatch, fmt.Sprintf("/api/variants/%d", variant.ID),
			model.UpdateVariantRequest{Quantity: &zero}, nil))

		got = getOrder(t, server, unpaid.ID)
		assert.Empty(t, got.Items)
		assert.Equal(t, int64(0), got.ProductsTotalPrice)
		assert.Equal(t, int64(200), got.OrderTotalPrice)
		assert.Len(t, getOrder(t, server, paid.ID).Items, 1)

		var p model.ProductResponse
		require.Equal(t, http.StatusOK, call(t, server, http.MethodGet, fmt.Sprintf("/api/products/%d", product.ID), nil, &p))
		assert.Equal(t, model.PriceKindNoStock, p.PriceView.Kind)
		assert.False(t, p.InStock)
	})

	t.Run("restock clamps cart lines", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		_, variant, _ := seedCatalog(t, server)
		cart := newCartWith(t, server, variant.ID, 4)

		two := 2
		require.Equal(t, http.StatusOK, call(t, server, http.MethodPatch, fmt.Sprintf("/api/variants/%d", variant.ID),
			model.UpdateVariantRequest{Quantity: &two}, nil))

		var after model.CartResponse
		require.Equal(t, http.StatusOK, call(t, server, http.MethodGet, fmt.Sprintf("/api/carts/%s", cart.ID), nil, &after))
		require.Len(t, after.Lines, 1)
		assert.Equal(t, 2, after.Lines[0].Quantity)
		assert.Equal(t, int64(1600), after.Total)
	})

	t.Run("paid orders reject item edits", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		_, variant, method := seedCatalog(t, server)
		order := checkout(t, server, newCartWith(t, server, variant.ID, 1), method.ID)
		require.Equal(t, http.StatusOK, call(t, server, http.MethodPost, fmt.Sprintf("/api/orders/%d/pay", order.ID), nil, nil))

		var errResp model.ErrorResponse
		code := call(t, server, http.MethodPatch, fmt.Sprintf("/api/orders/%d/items/%d", order.ID, order.Items[0].ID),
			model.UpdateQuantityRequest{Quantity: 2}, &errResp)

		assert.Equal(t, http.StatusConflict, code)
		assert.Equal(t, model.ErrCodeOrderPaid, errResp.Error)
	})

	t.Run("discount change re-resolves its variants", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		product, variant, method := seedCatalog(t, server)
		order := checkout(t, server, newCartWith(t, server, variant.ID, 1), method.ID)

		require.Equal(t, http.StatusOK, call(t, server, http.MethodPatch, fmt.Sprintf("/api/discounts/%d", *variant.DiscountID),
			model.UpdateDiscountRequest{Percent: 50}, nil))

		var v model.Variant
		require.Equal(t, http.StatusOK, call(t, server, http.MethodGet, fmt.Sprintf("/api/variants/%d", variant.ID), nil, &v))
		require.NotNil(t, v.DiscountedPrice)
		assert.Equal(t, int64(500), *v.DiscountedPrice)

		var p model.ProductResponse
		require.Equal(t, http.StatusOK, call(t, server, http.MethodGet, fmt.Sprintf("/api/products/%d", product.ID), nil, &p))
		assert.Equal(t, model.DiscountedPrice(1000, 500, 50), p.PriceView)

		assert.Equal(t, int64(650), getOrder(t, server, order.ID).OrderTotalPrice)
	})

	t.Run("deleting a variant drops its lines", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		product, variant, _ := seedCatalog(t, server)
		cart := newCartWith(t, server, variant.ID, 1)

		require.Equal(t, http.StatusNoContent, call(t, server, http.MethodDelete, fmt.Sprintf("/api/variants/%d", variant.ID), nil, nil))

		var after model.CartResponse
		require.Equal(t, http.StatusOK, call(t, server, http.MethodGet, fmt.Sprintf("/api/carts/%s", cart.ID), nil, &after))
		assert.Empty(t, after.Lines)

		var p model.ProductResponse
		require.Equal(t, http.StatusOK, call(t, server, http.MethodGet, fmt.Sprintf("/api/products/%d", product.ID), nil, &p))
		assert.Equal(t, model.PriceKindNoStock, p.PriceView.Kind)
		assert.Empty(t, p.Variants)
	})

	t.Run("reviews update the product rating", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		product, _, _ := seedCatalog(t, server)

		for _, rating := range []int{4, 5} {
			require.Equal(t, http.StatusCreated, call(t, server, http.MethodPost, fmt.Sprintf("/api/products/%d/reviews", product.ID),
				model.AddReviewRequest{Author: "ali", Rating: rating}, nil))
		}

		var p model.ProductResponse
		require.Equal(t, http.StatusOK, call(t, server, http.MethodGet, fmt.Sprintf("/api/products/%d", product.ID), nil, &p))
		assert.Equal(t, 2, p.NumberOfReviews)
		require.NotNil(t, p.RatesAverage)
		assert.InDelta(t, 4.5, *p.RatesAverage, 0.001)
	})

	t.Run("category routes filter products", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)

		var clothes, books model.Category
		require.Equal(t, http.StatusCreated, call(t, server, http.MethodPost, "/api/categories",
			model.CreateCategoryRequest{Title: "Clothes"}, &clothes))
		require.Equal(t, http.StatusCreated, call(t, server, http.MethodPost, "/api/categories",
			model.CreateCategoryRequest{Title: "Books"}, &books))

		var shirts model.SubCategory
		require.Equal(t, http.StatusCreated, call(t, server, http.MethodPost, "/api/subcategories",
			model.CreateSubCategoryRequest{CategoryID: clothes.ID, Title: "Shirts"}, &shirts))

		var shirt, scarf, novel model.Product
		require.Equal(t, http.StatusCreated, call(t, server, http.MethodPost, "/api/products",
			model.CreateProductRequest{Title: "Shirt", CategoryID: &clothes.ID, SubCategoryID: &shirts.ID}, &shirt))
		require.Equal(t, http.StatusCreated, call(t, server, http.MethodPost, "/api/products",
			model.CreateProductRequest{Title: "Scarf", CategoryID: &clothes.ID}, &scarf))
		require.Equal(t, http.StatusCreated, call(t, server, http.MethodPost, "/api/products",
			model.CreateProductRequest{Title: "Novel", CategoryID: &books.ID}, &novel))

		ids := func(path string) []int64 {
			var list []model.ProductResponse
			require.Equal(t, http.StatusOK, call(t, server, http.MethodGet, path, nil, &list))
			out := make([]int64, 0, len(list))
			for _, p := range list {
				out = append(out, p.ID)
			}
			return out
		}

		assert.Equal(t, []int64{shirt.ID, scarf.ID}, ids(fmt.Sprintf("/api/categories/%d/products", clothes.ID)))
		assert.Equal(t, []int64{shirt.ID},
			ids(fmt.Sprintf("/api/categories/%d/subcategories/%d/products", clothes.ID, shirts.ID)))
		assert.Equal(t, []int64{shirt.ID}, ids(fmt.Sprintf("/api/subcategories/%d/products", shirts.ID)))
		assert.Equal(t, []int64{novel.ID}, ids(fmt.Sprintf("/api/products?categoryId=%d", books.ID)))
		assert.Len(t, ids("/api/products"), 3)
	})

	t.Run("comments wait for moderation", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		product, _, _ := seedCatalog(t, server)
		path := fmt.Sprintf("/api/products/%d/comments", product.ID)

		var c model.Comment
		require.Equal(t, http.StatusCreated, call(t, server, http.MethodPost, path,
			model.AddCommentRequest{Author: "ali", Body: "fits well"}, &c))
		assert.Equal(t, model.CommentWaiting, c.Status)

		var approved []model.Comment
		require.Equal(t, http.StatusOK, call(t, server, http.MethodGet, path+"?status=a", nil, &approved))
		assert.Empty(t, approved)

		var moderated model.Comment
		require.Equal(t, http.StatusOK, call(t, server, http.MethodPatch, fmt.Sprintf("/api/comments/%d", c.ID),
			model.ModerateCommentRequest{Status: model.CommentApproved}, &moderated))
		assert.Equal(t, model.CommentApproved, moderated.Status)

		require.Equal(t, http.StatusOK, call(t, server, http.MethodGet, path+"?status=a", nil, &approved))
		require.Len(t, approved, 1)
		assert.Equal(t, "fits well", approved[0].Body)

		assert.Equal(t, http.StatusBadRequest, call(t, server, http.MethodPatch, fmt.Sprintf("/api/comments/%d", c.ID),
			model.ModerateCommentRequest{Status: "x"}, nil))
		assert.Equal(t, http.StatusNoContent, call(t, server, http.MethodDelete, fmt.Sprintf("/api/comments/%d", c.ID), nil, nil))
		assert.Equal(t, http.StatusNotFound, call(t, server, http.MethodDelete, fmt.Sprintf("/api/comments/%d", c.ID), nil, nil))
	})

	t.Run("wishlist shows the current product price", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		product, variant, _ := seedCatalog(t, server)

		var w model.WishlistResponse
		require.Equal(t, http.StatusCreated, call(t, server, http.MethodPost, "/api/wishlists", nil, &w))
		items := fmt.Sprintf("/api/wishlists/%s/items", w.ID)

		require.Equal(t, http.StatusOK, call(t, server, http.MethodPost, items,
			model.AddWishlistItemRequest{ProductID: product.ID}, &w))
		require.Len(t, w.Lines, 1)
		assert.Equal(t, model.DiscountedPrice(1000, 800, 20), w.Lines[0].PriceView)

		assert.Equal(t, http.StatusConflict, call(t, server, http.MethodPost, items,
			model.AddWishlistItemRequest{ProductID: product.ID}, nil))

		quantity := 0
		require.Equal(t, http.StatusOK, call(t, server, http.MethodPatch, fmt.Sprintf("/api/variants/%d", variant.ID),
			model.UpdateVariantRequest{Quantity: &quantity}, nil))

		require.Equal(t, http.StatusOK, call(t, server, http.MethodGet, fmt.Sprintf("/api/wishlists/%s", w.ID), nil, &w))
		require.Len(t, w.Lines, 1)
		assert.Equal(t, model.PriceKindNoStock, w.Lines[0].PriceView.Kind)

		assert.Equal(t, http.StatusNoContent, call(t, server, http.MethodDelete,
			fmt.Sprintf("%s/%d", items, product.ID), nil, nil))
		assert.Equal(t, http.StatusNotFound, call(t, server, http.MethodDelete,
			fmt.Sprintf("%s/%d", items, product.ID), nil, nil))
	})
}

func TestAuthentication_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	testDB := SetupTestDB(t)
	server := setupTestServer(t, testDB)

	t.Run("health check needs no key", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		w := httptest.NewRecorder()
		server.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("missing key is rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
		w := httptest.NewRecorder()
		server.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
