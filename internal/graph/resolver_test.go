package graph

import (
	"context"
	"time"

	"foodcart-be/internal/auth"
	"foodcart-be/internal/cart"
	"foodcart-be/internal/menu"
	"foodcart-be/internal/order"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// --- Mocks ---

type MockMenuService struct {
	mock.Mock
}

func (m *MockMenuService) ListVendors(ctx context.Context) ([]menu.Vendor, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]menu.Vendor), args.Error(1)
}

func (m *MockMenuService) GetVendor(ctx context.Context, id string) (*menu.Vendor, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*menu.Vendor), args.Error(1)
}

func (m *MockMenuService) GetMenu(ctx context.Context, vendorID string) ([]menu.MenuItem, error) {
	args := m.Called(ctx, vendorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]menu.MenuItem), args.Error(1)
}

func (m *MockMenuService) GetMenuItem(ctx context.Context, id string) (*menu.MenuItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*menu.MenuItem), args.Error(1)
}

func (m *MockMenuService) CartItem(ctx context.Context, id string) (cart.MenuItem, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(cart.MenuItem), args.Error(1)
}

func (m *MockMenuService) GetMenuItemsByIDs(ctx context.Context, ids []string) (map[string]menu.MenuItem, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]menu.MenuItem), args.Error(1)
}

func (m *MockMenuService) CreateMenuItem(ctx context.Context, vendorID string, input menu.NewMenuItemInput) (*menu.MenuItem, error) {
	args := m.Called(ctx, vendorID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*menu.MenuItem), args.Error(1)
}

func (m *MockMenuService) UpdateMenuItem(ctx context.Context, vendorID string, input menu.UpdateMenuItemInput) (*menu.MenuItem, error) {
	args := m.Called(ctx, vendorID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*menu.MenuItem), args.Error(1)
}

func (m *MockMenuService) DeleteMenuItem(ctx context.Context, vendorID, id string) error {
	args := m.Called(ctx, vendorID, id)
	return args.Error(0)
}

type MockOrderService struct {
	mock.Mock
}

func (m *MockOrderService) PlaceOrder(ctx context.Context, req order.PlaceOrderRequest) (*order.Order, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderService) GetOrder(ctx context.Context, caller auth.Identity, id string) (*order.Order, error) {
	args := m.Called(ctx, caller, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderService) ListCustomerOrders(ctx context.Context, customerID string, opts order.ListOptions) ([]*order.Order, error) {
	args := m.Called(ctx, customerID, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderService) ListVendorOrders(ctx context.Context, vendorID string, opts order.ListOptions) ([]*order.Order, error) {
	args := m.Called(ctx, vendorID, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderService) UpdateOrderStatus(ctx context.Context, caller auth.Identity, id string, status order.OrderStatus) (*order.Order, error) {
	args := m.Called(ctx, caller, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

type MockCheckoutService struct {
	mock.Mock
}

func (m *MockCheckoutService) Checkout(ctx context.Context, customer auth.Identity, store *cart.Store) (*order.Order, error) {
	args := m.Called(ctx, customer, store)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

// --- Helpers ---

var (
	customer = auth.Identity{CustomerID: "cust-1", Name: "Asha", Role: auth.RoleCustomer}
	vendor   = auth.Identity{CustomerID: "owner-1", Name: "Ravi", Role: auth.RoleVendor, VendorID: "vendor-a"}
)

func newTestResolver() (*Resolver, *MockMenuService, *MockOrderService, *MockCheckoutService) {
	menuSvc := new(MockMenuService)
	orderSvc := new(MockOrderService)
	checkoutSvc := new(MockCheckoutService)
	return &Resolver{
		Carts:       cart.NewRegistry(cart.DefaultPricing(), time.Hour),
		Pricing:     cart.DefaultPricing(),
		MenuSvc:     menuSvc,
		OrderSvc:    orderSvc,
		CheckoutSvc: checkoutSvc,
	}, menuSvc, orderSvc, checkoutSvc
}

func asCustomer() context.Context {
	return auth.WithIdentity(context.Background(), customer)
}

func asVendor() context.Context {
	return auth.WithIdentity(context.Background(), vendor)
}

func cartItem(id, restaurant, price string) cart.MenuItem {
	return cart.MenuItem{
		ID:             id,
		Name:           "Item " + id,
		Price:          decimal.RequireFromString(price),
		RestaurantID:   restaurant,
		RestaurantName: "Restaurant " + restaurant,
	}
}

func sampleOrder() *order.Order {
	created := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	return &order.Order{
		ID:           "order-1",
		OrderNumber:  "ORD-20260102-030405-000-1234",
		CustomerID:   customer.CustomerID,
		CustomerName: customer.Name,
		VendorID:     "vendor-a",
		VendorName:   "Restaurant vendor-a",
		Status:       order.StatusPending,
		Subtotal:     decimal.RequireFromString("250"),
		DeliveryFee:  decimal.RequireFromString("2.99"),
		Tax:          decimal.RequireFromString("12.5"),
		Total:        decimal.RequireFromString("265.49"),
		Items: []order.OrderItem{{
			ID:         "oi-1",
			OrderID:    "order-1",
			MenuItemID: "m1",
			Name:       "Item m1",
			Quantity:   2,
			Price:      decimal.RequireFromString("125"),
			LineTotal:  decimal.RequireFromString("250"),
		}},
		CreatedAt: created,
		UpdatedAt: created,
	}
}
