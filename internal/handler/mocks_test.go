package handler

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"

	"storefront/internal/model"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// serve routes a single request through a chi router holding one pattern.
func serve(method, pattern string, h http.HandlerFunc, target, body string) *httptest.ResponseRecorder {
	r := chi.NewRouter()
	r.MethodFunc(method, pattern, h)

	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, rd)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func stringsReader(s string) io.Reader {
	return strings.NewReader(s)
}

// MockProductService is a mock implementation of ProductService.
type MockProductService struct {
	mock.Mock
}

func (m *MockProductService) Create(ctx context.Context, req *model.CreateProductRequest) (*model.Product, error) {
	args := m.Called(ctx, req)
	p, _ := args.Get(0).(*model.Product)
	return p, args.Error(1)
}

func (m *MockProductService) GetByID(ctx context.Context, id int64) (*model.ProductResponse, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(*model.ProductResponse)
	return p, args.Error(1)
}

func (m *MockProductService) List(ctx context.Context, filter model.ProductFilter, limit, offset int) ([]model.ProductResponse, error) {
	args := m.Called(ctx, filter, limit, offset)
	p, _ := args.Get(0).([]model.ProductResponse)
	return p, args.Error(1)
}

func (m *MockProductService) Recompute(ctx context.Context, id int64) (*model.Product, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(*model.Product)
	return p, args.Error(1)
}

func (m *MockProductService) AddReview(ctx context.Context, productID int64, req *model.AddReviewRequest) (*model.Review, error) {
	args := m.Called(ctx, productID, req)
	r, _ := args.Get(0).(*model.Review)
	return r, args.Error(1)
}

func (m *MockProductService) ListReviews(ctx context.Context, productID int64) ([]model.Review, error) {
	args := m.Called(ctx, productID)
	r, _ := args.Get(0).([]model.Review)
	return r, args.Error(1)
}

func (m *MockProductService) AddComment(ctx context.Context, productID int64, req *model.AddCommentRequest) (*model.Comment, error) {
	args := m.Called(ctx, productID, req)
	c, _ := args.Get(0).(*model.Comment)
	return c, args.Error(1)
}

func (m *MockProductService) ListComments(ctx context.Context, productID int64, status model.CommentStatus) ([]model.Comment, error) {
	args := m.Called(ctx, productID, status)
	c, _ := args.Get(0).([]model.Comment)
	return c, args.Error(1)
}

func (m *MockProductService) ModerateComment(ctx context.Context, id int64, status model.CommentStatus) (*model.Comment, error) {
	args := m.Called(ctx, id, status)
	c, _ := args.Get(0).(*model.Comment)
	return c, args.Error(1)
}

func (m *MockProductService) DeleteComment(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockProductService) CreateCategory(ctx context.Context, req *model.CreateCategoryRequest) (*model.Category, error) {
	args := m.Called(ctx, req)
	c, _ := args.Get(0).(*model.Category)
	return c, args.Error(1)
}

func (m *MockProductService) ListCategories(ctx context.Context) ([]model.Category, error) {
	args := m.Called(ctx)
	c, _ := args.Get(0).([]model.Category)
	return c, args.Error(1)
}

func (m *MockProductService) CreateSubCategory(ctx context.Context, req *model.CreateSubCategoryRequest) (*model.SubCategory, error) {
	args := m.Called(ctx, req)
	s, _ := args.Get(0).(*model.SubCategory)
	return s, args.Error(1)
}

func (m *MockProductService) CreateVariable(ctx context.Context, req *model.CreateVariableRequest) (*model.Variable, error) {
	args := m.Called(ctx, req)
	v, _ := args.Get(0).(*model.Variable)
	return v, args.Error(1)
}

// MockVariantService is a mock implementation of VariantService.
type MockVariantService struct {
	mock.Mock
}

func (m *MockVariantService) Create(ctx context.Context, req *model.CreateVariantRequest) (*model.Variant, error) {
	args := m.Called(ctx, req)
	v, _ := args.Get(0).(*model.Variant)
	return v, args.Error(1)
}

func (m *MockVariantService) GetByID(ctx context.Context, id int64) (*model.Variant, error) {
	args := m.Called(ctx, id)
	v, _ := args.Get(0).(*model.Variant)
	return v, args.Error(1)
}

func (m *MockVariantService) Update(ctx context.Context, id int64, req *model.UpdateVariantRequest) (*model.Variant, error) {
	args := m.Called(ctx, id, req)
	v, _ := args.Get(0).(*model.Variant)
	return v, args.Error(1)
}

func (m *MockVariantService) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

// MockDiscountService is a mock implementation of DiscountService.
type MockDiscountService struct {
	mock.Mock
}

func (m *MockDiscountService) Create(ctx context.Context, req *model.CreateDiscountRequest) (*model.Discount, error) {
	args := m.Called(ctx, req)
	d, _ := args.Get(0).(*model.Discount)
	return d, args.Error(1)
}

func (m *MockDiscountService) GetByID(ctx context.Context, id int64) (*model.Discount, error) {
	args := m.Called(ctx, id)
	d, _ := args.Get(0).(*model.Discount)
	return d, args.Error(1)
}

func (m *MockDiscountService) Update(ctx context.Context, id int64, req *model.UpdateDiscountRequest) (*model.Discount, error) {
	args := m.Called(ctx, id, req)
	d, _ := args.Get(0).(*model.Discount)
	return d, args.Error(1)
}

// MockWishlistService is a mock implementation of WishlistService.
type MockWishlistService struct {
	mock.Mock
}

func (m *MockWishlistService) Create(ctx context.Context) (*model.WishlistResponse, error) {
	args := m.Called(ctx)
	w, _ := args.Get(0).(*model.WishlistResponse)
	return w, args.Error(1)
}

func (m *MockWishlistService) Get(ctx context.Context, id uuid.UUID) (*model.WishlistResponse, error) {
	args := m.Called(ctx, id)
	w, _ := args.Get(0).(*model.WishlistResponse)
	return w, args.Error(1)
}

func (m *MockWishlistService) AddItem(ctx context.Context, wishlistID uuid.UUID, req *model.AddWishlistItemRequest) (*model.WishlistResponse, error) {
	args := m.Called(ctx, wishlistID, req)
	w, _ := args.Get(0).(*model.WishlistResponse)
	return w, args.Error(1)
}

func (m *MockWishlistService) RemoveItem(ctx context.Context, wishlistID uuid.UUID, productID int64) error {
	return m.Called(ctx, wishlistID, productID).Error(0)
}

func (m *MockWishlistService) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

// MockCartService is a mock implementation of CartService.
type MockCartService struct {
	mock.Mock
}

func (m *MockCartService) Create(ctx context.Context) (*model.CartResponse, error) {
	args := m.Called(ctx)
	c, _ := args.Get(0).(*model.CartResponse)
	return c, args.Error(1)
}

func (m *MockCartService) Get(ctx context.Context, id uuid.UUID) (*model.CartResponse, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(*model.CartResponse)
	return c, args.Error(1)
}

func (m *MockCartService) AddItem(ctx context.Context, cartID uuid.UUID, req *model.AddCartItemRequest) (*model.CartResponse, error) {
	args := m.Called(ctx, cartID, req)
	c, _ := args.Get(0).(*model.CartResponse)
	return c, args.Error(1)
}

func (m *MockCartService) UpdateItemQuantity(ctx context.Context, cartID uuid.UUID, itemID int64, quantity int) (*model.CartResponse, error) {
	args := m.Called(ctx, cartID, itemID, quantity)
	c, _ := args.Get(0).(*model.CartResponse)
	return c, args.Error(1)
}

func (m *MockCartService) RemoveItem(ctx context.Context, cartID uuid.UUID, itemID int64) error {
	return m.Called(ctx, cartID, itemID).Error(0)
}

func (m *MockCartService) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

// MockOrderService is a mock implementation of OrderService.
type MockOrderService struct {
	mock.Mock
}

func (m *MockOrderService) CreateFromCart(ctx context.Context, req *model.OrderRequest) (*model.OrderResponse, error) {
	args := m.Called(ctx, req)
	o, _ := args.Get(0).(*model.OrderResponse)
	return o, args.Error(1)
}

func (m *MockOrderService) GetByID(ctx context.Context, id int64) (*model.OrderResponse, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*model.OrderResponse)
	return o, args.Error(1)
}

func (m *MockOrderService) UpdateStatus(ctx context.Context, id int64, status model.OrderStatus) (*model.OrderResponse, error) {
	args := m.Called(ctx, id, status)
	o, _ := args.Get(0).(*model.OrderResponse)
	return o, args.Error(1)
}

func (m *MockOrderService) MarkPaid(ctx context.Context, id int64) (*model.OrderResponse, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*model.OrderResponse)
	return o, args.Error(1)
}

func (m *MockOrderService) UpdateItemQuantity(ctx context.Context, orderID, itemID int64, quantity int) (*model.OrderResponse, error) {
	args := m.Called(ctx, orderID, itemID, quantity)
	o, _ := args.Get(0).(*model.OrderResponse)
	return o, args.Error(1)
}

// MockShippingService is a mock implementation of ShippingService.
type MockShippingService struct {
	mock.Mock
}

func (m *MockShippingService) Create(ctx context.Context, req *model.CreateShippingMethodRequest) (*model.ShippingMethod, error) {
	args := m.Called(ctx, req)
	s, _ := args.Get(0).(*model.ShippingMethod)
	return s, args.Error(1)
}

func (m *MockShippingService) Update(ctx context.Context, id int64, req *model.UpdateShippingMethodRequest) (*model.ShippingMethod, error) {
	args := m.Called(ctx, id, req)
	s, _ := args.Get(0).(*model.ShippingMethod)
	return s, args.Error(1)
}

func (m *MockShippingService) List(ctx context.Context, activeOnly bool) ([]model.ShippingMethod, error) {
	args := m.Called(ctx, activeOnly)
	s, _ := args.Get(0).([]model.ShippingMethod)
	return s, args.Error(1)
}

func int64Ptr(v int64) *int64 { return &v }
