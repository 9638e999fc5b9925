package service

import (
	"context"

	"storefront/internal/events"
	"storefront/internal/model"
	"storefront/internal/pricing"
	"storefront/internal/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/mock"
)

// MockTx is a minimal mock implementation of pgx.Tx for testing.
type MockTx struct {
	mock.Mock
	committed  bool
	rolledBack bool
}

func (m *MockTx) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	m.committed = true
	return args.Error(0)
}

func (m *MockTx) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	m.rolledBack = true
	return args.Error(0)
}

// Stub methods to satisfy pgx.Tx interface - these are not used in our tests
func (m *MockTx) Begin(ctx context.Context) (pgx.Tx, error) { return nil, nil }
func (m *MockTx) CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error) {
	return 0, nil
}
func (m *MockTx) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults { return nil }
func (m *MockTx) LargeObjects() pgx.LargeObjects                               { return pgx.LargeObjects{} }
func (m *MockTx) Prepare(ctx context.Context, name, sql string) (*pgconn.StatementDescription, error) {
	return nil, nil
}
func (m *MockTx) Exec(ctx context.Context, sql string, arguments ...any) (commandTag pgconn.CommandTag, err error) {
	return
}
func (m *MockTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}
func (m *MockTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row { return nil }
func (m *MockTx) Conn() *pgx.Conn                                               { return nil }

// MockTransactor hands out a fixed transaction.
type MockTransactor struct {
	mock.Mock
}

func (m *MockTransactor) BeginTx(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	// Return a MockTx interface value, not a pointer
	if tx, ok := args.Get(0).(pgx.Tx); ok {
		return tx, args.Error(1)
	}
	return nil, args.Error(1)
}

// expectTx wires a transactor to a fresh MockTx that accepts commit and rollback.
func expectTx(txr *MockTransactor) *MockTx {
	tx := new(MockTx)
	txr.On("BeginTx", mock.Anything).Return(tx, nil)
	tx.On("Commit", mock.Anything).Return(nil).Maybe()
	tx.On("Rollback", mock.Anything).Return(nil).Maybe()
	return tx
}

// MockPublisher records published events.
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, evs ...events.Event) error {
	args := m.Called(ctx, evs)
	return args.Error(0)
}

func (m *MockPublisher) Close() error {
	return m.Called().Error(0)
}

// MockPropagator is a mock implementation of Propagator.
type MockPropagator struct {
	mock.Mock
}

func (m *MockPropagator) RecomputeProduct(ctx context.Context, q repository.Querier, productID int64) (*model.ProductDerived, error) {
	args := m.Called(ctx, q, productID)
	d, _ := args.Get(0).(*model.ProductDerived)
	return d, args.Error(1)
}

func (m *MockPropagator) VariantChanged(ctx context.Context, q repository.Querier, productID, variantID int64, v *model.Variant) ([]events.Event, error) {
	args := m.Called(ctx, q, productID, variantID, v)
	evs, _ := args.Get(0).([]events.Event)
	return evs, args.Error(1)
}

func (m *MockPropagator) RecomputeOrders(ctx context.Context, q repository.Querier, orderIDs []int64) ([]events.Event, error) {
	args := m.Called(ctx, q, orderIDs)
	evs, _ := args.Get(0).([]events.Event)
	return evs, args.Error(1)
}

func (m *MockPropagator) ShippingMethodChanged(ctx context.Context, q repository.Querier, sm *model.ShippingMethod) ([]events.Event, error) {
	args := m.Called(ctx, q, sm)
	evs, _ := args.Get(0).([]events.Event)
	return evs, args.Error(1)
}

// MockCatalogRepository is a mock implementation of CatalogRepository.
type MockCatalogRepository struct {
	mock.Mock
}

func (m *MockCatalogRepository) CreateCategory(ctx context.Context, q repository.Querier, c *model.Category) error {
	return m.Called(ctx, q, c).Error(0)
}

func (m *MockCatalogRepository) ListCategories(ctx context.Context, q repository.Querier) ([]model.Category, error) {
	args := m.Called(ctx, q)
	c, _ := args.Get(0).([]model.Category)
	return c, args.Error(1)
}

func (m *MockCatalogRepository) CreateSubCategory(ctx context.Context, q repository.Querier, s *model.SubCategory) error {
	return m.Called(ctx, q, s).Error(0)
}

func (m *MockCatalogRepository) GetSubCategory(ctx context.Context, q repository.Querier, id int64) (*model.SubCategory, error) {
	args := m.Called(ctx, q, id)
	s, _ := args.Get(0).(*model.SubCategory)
	return s, args.Error(1)
}

func (m *MockCatalogRepository) CreateVariable(ctx context.Context, q repository.Querier, v *model.Variable) error {
	return m.Called(ctx, q, v).Error(0)
}

func (m *MockCatalogRepository) GetVariable(ctx context.Context, q repository.Querier, id int64) (*model.Variable, error) {
	args := m.Called(ctx, q, id)
	v, _ := args.Get(0).(*model.Variable)
	return v, args.Error(1)
}

func (m *MockCatalogRepository) CreateProduct(ctx context.Context, q repository.Querier, p *model.Product) error {
	return m.Called(ctx, q, p).Error(0)
}

func (m *MockCatalogRepository) GetProduct(ctx context.Context, q repository.Querier, id int64) (*model.Product, error) {
	args := m.Called(ctx, q, id)
	p, _ := args.Get(0).(*model.Product)
	return p, args.Error(1)
}

func (m *MockCatalogRepository) GetProductForUpdate(ctx context.Context, q repository.Querier, id int64) (*model.Product, error) {
	args := m.Called(ctx, q, id)
	p, _ := args.Get(0).(*model.Product)
	return p, args.Error(1)
}

func (m *MockCatalogRepository) LockProducts(ctx context.Context, q repository.Querier, ids []int64) error {
	return m.Called(ctx, q, ids).Error(0)
}

func (m *MockCatalogRepository) ListProducts(ctx context.Context, q repository.Querier, filter model.ProductFilter, limit, offset int) ([]model.Product, error) {
	args := m.Called(ctx, q, filter, limit, offset)
	p, _ := args.Get(0).([]model.Product)
	return p, args.Error(1)
}

func (m *MockCatalogRepository) UpdateProductDerived(ctx context.Context, q repository.Querier, productID int64, d model.ProductDerived) error {
	return m.Called(ctx, q, productID, d).Error(0)
}

func (m *MockCatalogRepository) CreateVariant(ctx context.Context, q repository.Querier, v *model.Variant) error {
	return m.Called(ctx, q, v).Error(0)
}

func (m *MockCatalogRepository) GetVariant(ctx context.Context, q repository.Querier, id int64) (*model.Variant, error) {
	args := m.Called(ctx, q, id)
	v, _ := args.Get(0).(*model.Variant)
	return v, args.Error(1)
}

func (m *MockCatalogRepository) GetVariantForUpdate(ctx context.Context, q repository.Querier, id int64) (*model.Variant, error) {
	args := m.Called(ctx, q, id)
	v, _ := args.Get(0).(*model.Variant)
	return v, args.Error(1)
}

func (m *MockCatalogRepository) ListVariantsByProduct(ctx context.Context, q repository.Querier, productID int64) ([]model.Variant, error) {
	args := m.Called(ctx, q, productID)
	v, _ := args.Get(0).([]model.Variant)
	return v, args.Error(1)
}

func (m *MockCatalogRepository) ListVariantsByDiscount(ctx context.Context, q repository.Querier, discountID int64) ([]model.Variant, error) {
	args := m.Called(ctx, q, discountID)
	v, _ := args.Get(0).([]model.Variant)
	return v, args.Error(1)
}

func (m *MockCatalogRepository) UpdateVariant(ctx context.Context, q repository.Querier, v *model.Variant) error {
	return m.Called(ctx, q, v).Error(0)
}

func (m *MockCatalogRepository) UpdateVariantDiscounts(ctx context.Context, q repository.Querier, variants []model.Variant) error {
	return m.Called(ctx, q, variants).Error(0)
}

func (m *MockCatalogRepository) DeleteVariant(ctx context.Context, q repository.Querier, id int64) error {
	return m.Called(ctx, q, id).Error(0)
}

func (m *MockCatalogRepository) CreateDiscount(ctx context.Context, q repository.Querier, d *model.Discount) error {
	return m.Called(ctx, q, d).Error(0)
}

func (m *MockCatalogRepository) GetDiscount(ctx context.Context, q repository.Querier, id int64) (*model.Discount, error) {
	args := m.Called(ctx, q, id)
	d, _ := args.Get(0).(*model.Discount)
	return d, args.Error(1)
}

func (m *MockCatalogRepository) GetDiscountForUpdate(ctx context.Context, q repository.Querier, id int64) (*model.Discount, error) {
	args := m.Called(ctx, q, id)
	d, _ := args.Get(0).(*model.Discount)
	return d, args.Error(1)
}

func (m *MockCatalogRepository) GetDiscountForShare(ctx context.Context, q repository.Querier, id int64) (*model.Discount, error) {
	args := m.Called(ctx, q, id)
	d, _ := args.Get(0).(*model.Discount)
	return d, args.Error(1)
}

func (m *MockCatalogRepository) ProductIDsByDiscount(ctx context.Context, q repository.Querier, discountID int64) ([]int64, error) {
	args := m.Called(ctx, q, discountID)
	ids, _ := args.Get(0).([]int64)
	return ids, args.Error(1)
}

func (m *MockCatalogRepository) UpdateDiscount(ctx context.Context, q repository.Querier, d *model.Discount) error {
	return m.Called(ctx, q, d).Error(0)
}

func (m *MockCatalogRepository) CreateReview(ctx context.Context, q repository.Querier, r *model.Review) error {
	return m.Called(ctx, q, r).Error(0)
}

func (m *MockCatalogRepository) ListReviews(ctx context.Context, q repository.Querier, productID int64) ([]model.Review, error) {
	args := m.Called(ctx, q, productID)
	r, _ := args.Get(0).([]model.Review)
	return r, args.Error(1)
}

func (m *MockCatalogRepository) ReviewStats(ctx context.Context, q repository.Querier, productID int64) (model.ReviewStats, error) {
	args := m.Called(ctx, q, productID)
	return args.Get(0).(model.ReviewStats), args.Error(1)
}

func (m *MockCatalogRepository) CreateComment(ctx context.Context, q repository.Querier, c *model.Comment) error {
	return m.Called(ctx, q, c).Error(0)
}

func (m *MockCatalogRepository) GetComment(ctx context.Context, q repository.Querier, id int64) (*model.Comment, error) {
	args := m.Called(ctx, q, id)
	c, _ := args.Get(0).(*model.Comment)
	return c, args.Error(1)
}

func (m *MockCatalogRepository) ListComments(ctx context.Context, q repository.Querier, productID int64, status model.CommentStatus) ([]model.Comment, error) {
	args := m.Called(ctx, q, productID, status)
	c, _ := args.Get(0).([]model.Comment)
	return c, args.Error(1)
}

func (m *MockCatalogRepository) UpdateCommentStatus(ctx context.Context, q repository.Querier, id int64, status model.CommentStatus) (*model.Comment, error) {
	args := m.Called(ctx, q, id, status)
	c, _ := args.Get(0).(*model.Comment)
	return c, args.Error(1)
}

func (m *MockCatalogRepository) DeleteComment(ctx context.Context, q repository.Querier, id int64) (bool, error) {
	args := m.Called(ctx, q, id)
	return args.Bool(0), args.Error(1)
}

// MockWishlistRepository is a mock implementation of WishlistRepository.
type MockWishlistRepository struct {
	mock.Mock
}

func (m *MockWishlistRepository) CreateWishlist(ctx context.Context, q repository.Querier, w *model.Wishlist) error {
	return m.Called(ctx, q, w).Error(0)
}

func (m *MockWishlistRepository) GetWishlist(ctx context.Context, q repository.Querier, id uuid.UUID) (*model.Wishlist, error) {
	args := m.Called(ctx, q, id)
	w, _ := args.Get(0).(*model.Wishlist)
	return w, args.Error(1)
}

func (m *MockWishlistRepository) DeleteWishlist(ctx context.Context, q repository.Querier, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, q, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockWishlistRepository) AddItem(ctx context.Context, q repository.Querier, item *model.WishlistItem) (bool, error) {
	args := m.Called(ctx, q, item)
	return args.Bool(0), args.Error(1)
}

func (m *MockWishlistRepository) RemoveItem(ctx context.Context, q repository.Querier, wishlistID uuid.UUID, productID int64) (bool, error) {
	args := m.Called(ctx, q, wishlistID, productID)
	return args.Bool(0), args.Error(1)
}

func (m *MockWishlistRepository) ListLines(ctx context.Context, q repository.Querier, wishlistID uuid.UUID) ([]model.WishlistLine, error) {
	args := m.Called(ctx, q, wishlistID)
	l, _ := args.Get(0).([]model.WishlistLine)
	return l, args.Error(1)
}

// MockCartRepository is a mock implementation of CartRepository.
type MockCartRepository struct {
	mock.Mock
}

func (m *MockCartRepository) CreateCart(ctx context.Context, q repository.Querier, c *model.Cart) error {
	return m.Called(ctx, q, c).Error(0)
}

func (m *MockCartRepository) GetCart(ctx context.Context, q repository.Querier, id uuid.UUID) (*model.Cart, error) {
	args := m.Called(ctx, q, id)
	c, _ := args.Get(0).(*model.Cart)
	return c, args.Error(1)
}

func (m *MockCartRepository) GetCartForUpdate(ctx context.Context, q repository.Querier, id uuid.UUID) (*model.Cart, error) {
	args := m.Called(ctx, q, id)
	c, _ := args.Get(0).(*model.Cart)
	return c, args.Error(1)
}

func (m *MockCartRepository) DeleteCart(ctx context.Context, q repository.Querier, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, q, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockCartRepository) GetItem(ctx context.Context, q repository.Querier, cartID uuid.UUID, itemID int64) (*model.CartItem, error) {
	args := m.Called(ctx, q, cartID, itemID)
	it, _ := args.Get(0).(*model.CartItem)
	return it, args.Error(1)
}

func (m *MockCartRepository) GetItemByVariant(ctx context.Context, q repository.Querier, cartID uuid.UUID, variantID int64) (*model.CartItem, error) {
	args := m.Called(ctx, q, cartID, variantID)
	it, _ := args.Get(0).(*model.CartItem)
	return it, args.Error(1)
}

func (m *MockCartRepository) SaveItem(ctx context.Context, q repository.Querier, item *model.CartItem) error {
	return m.Called(ctx, q, item).Error(0)
}

func (m *MockCartRepository) DeleteItem(ctx context.Context, q repository.Querier, cartID uuid.UUID, itemID int64) (bool, error) {
	args := m.Called(ctx, q, cartID, itemID)
	return args.Bool(0), args.Error(1)
}

func (m *MockCartRepository) ListItems(ctx context.Context, q repository.Querier, cartID uuid.UUID) ([]model.CartItem, error) {
	args := m.Called(ctx, q, cartID)
	it, _ := args.Get(0).([]model.CartItem)
	return it, args.Error(1)
}

func (m *MockCartRepository) ListLines(ctx context.Context, q repository.Querier, cartID uuid.UUID) ([]model.CartLine, error) {
	args := m.Called(ctx, q, cartID)
	l, _ := args.Get(0).([]model.CartLine)
	return l, args.Error(1)
}

func (m *MockCartRepository) ListItemsByVariant(ctx context.Context, q repository.Querier, variantID int64) ([]model.CartItem, error) {
	args := m.Called(ctx, q, variantID)
	it, _ := args.Get(0).([]model.CartItem)
	return it, args.Error(1)
}

func (m *MockCartRepository) ApplyPlan(ctx context.Context, q repository.Querier, plan pricing.CartPlan) error {
	return m.Called(ctx, q, plan).Error(0)
}

// MockOrderRepository is a mock implementation of OrderRepository.
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) CreateOrder(ctx context.Context, q repository.Querier, o *model.Order) error {
	return m.Called(ctx, q, o).Error(0)
}

func (m *MockOrderRepository) SetIdentifiers(ctx context.Context, q repository.Querier, id int64, number, trackingCode string) error {
	return m.Called(ctx, q, id, number, trackingCode).Error(0)
}

func (m *MockOrderRepository) GetOrder(ctx context.Context, q repository.Querier, id int64) (*model.Order, error) {
	args := m.Called(ctx, q, id)
	o, _ := args.Get(0).(*model.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepository) GetOrderForUpdate(ctx context.Context, q repository.Querier, id int64) (*model.Order, error) {
	args := m.Called(ctx, q, id)
	o, _ := args.Get(0).(*model.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepository) ListOrders(ctx context.Context, q repository.Querier, ids []int64) ([]model.Order, error) {
	args := m.Called(ctx, q, ids)
	o, _ := args.Get(0).([]model.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepository) UpdateStatus(ctx context.Context, q repository.Querier, id int64, status model.OrderStatus) error {
	return m.Called(ctx, q, id, status).Error(0)
}

func (m *MockOrderRepository) MarkPaid(ctx context.Context, q repository.Querier, id int64) error {
	return m.Called(ctx, q, id).Error(0)
}

func (m *MockOrderRepository) CreateItems(ctx context.Context, q repository.Querier, items []model.OrderItem) error {
	return m.Called(ctx, q, items).Error(0)
}

func (m *MockOrderRepository) ListItems(ctx context.Context, q repository.Querier, orderID int64) ([]model.OrderItem, error) {
	args := m.Called(ctx, q, orderID)
	it, _ := args.Get(0).([]model.OrderItem)
	return it, args.Error(1)
}

func (m *MockOrderRepository) ListItemsByOrders(ctx context.Context, q repository.Querier, orderIDs []int64) (map[int64][]model.OrderItem, error) {
	args := m.Called(ctx, q, orderIDs)
	it, _ := args.Get(0).(map[int64][]model.OrderItem)
	return it, args.Error(1)
}

func (m *MockOrderRepository) UpdateItemQuantity(ctx context.Context, q repository.Querier, itemID int64, quantity int) error {
	return m.Called(ctx, q, itemID, quantity).Error(0)
}

func (m *MockOrderRepository) ListUnpaidItemsByVariant(ctx context.Context, q repository.Querier, variantID int64) ([]model.OrderItem, error) {
	args := m.Called(ctx, q, variantID)
	it, _ := args.Get(0).([]model.OrderItem)
	return it, args.Error(1)
}

func (m *MockOrderRepository) ApplyPlan(ctx context.Context, q repository.Querier, plan pricing.OrderPlan) error {
	return m.Called(ctx, q, plan).Error(0)
}

func (m *MockOrderRepository) UpdateTotals(ctx context.Context, q repository.Querier, totals map[int64]model.OrderTotals) error {
	return m.Called(ctx, q, totals).Error(0)
}

func (m *MockOrderRepository) RepriceShipping(ctx context.Context, q repository.Querier, methodID int64, price *int64) ([]int64, error) {
	args := m.Called(ctx, q, methodID, price)
	ids, _ := args.Get(0).([]int64)
	return ids, args.Error(1)
}

// MockShippingRepository is a mock implementation of ShippingRepository.
type MockShippingRepository struct {
	mock.Mock
}

func (m *MockShippingRepository) Create(ctx context.Context, q repository.Querier, sm *model.ShippingMethod) error {
	return m.Called(ctx, q, sm).Error(0)
}

func (m *MockShippingRepository) GetByID(ctx context.Context, q repository.Querier, id int64) (*model.ShippingMethod, error) {
	args := m.Called(ctx, q, id)
	sm, _ := args.Get(0).(*model.ShippingMethod)
	return sm, args.Error(1)
}

func (m *MockShippingRepository) GetForUpdate(ctx context.Context, q repository.Querier, id int64) (*model.ShippingMethod, error) {
	args := m.Called(ctx, q, id)
	sm, _ := args.Get(0).(*model.ShippingMethod)
	return sm, args.Error(1)
}

func (m *MockShippingRepository) GetForShare(ctx context.Context, q repository.Querier, id int64) (*model.ShippingMethod, error) {
	args := m.Called(ctx, q, id)
	sm, _ := args.Get(0).(*model.ShippingMethod)
	return sm, args.Error(1)
}

func (m *MockShippingRepository) List(ctx context.Context, q repository.Querier, activeOnly bool) ([]model.ShippingMethod, error) {
	args := m.Called(ctx, q, activeOnly)
	sm, _ := args.Get(0).([]model.ShippingMethod)
	return sm, args.Error(1)
}

func (m *MockShippingRepository) Update(ctx context.Context, q repository.Querier, sm *model.ShippingMethod) error {
	return m.Called(ctx, q, sm).Error(0)
}

func int64Ptr(v int64) *int64 { return &v }
func intPtr(v int) *int       { return &v }
func boolPtr(v bool) *bool    { return &v }
