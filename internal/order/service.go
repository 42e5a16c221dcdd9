package order

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"foodcart-be/internal/auth"
	"foodcart-be/internal/cart"
	"foodcart-be/internal/events"
	"foodcart-be/internal/logger"
	"foodcart-be/internal/menu"
	"foodcart-be/internal/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MenuCatalog resolves the current menu rows for the items of an order.
type MenuCatalog interface {
	GetMenuItemsByIDs(ctx context.Context, ids []string) (map[string]menu.MenuItem, error)
}

type Service interface {
	PlaceOrder(ctx context.Context, req PlaceOrderRequest) (*Order, error)
	GetOrder(ctx context.Context, caller auth.Identity, id string) (*Order, error)
	ListCustomerOrders(ctx context.Context, customerID string, opts ListOptions) ([]*Order, error)
	ListVendorOrders(ctx context.Context, vendorID string, opts ListOptions) ([]*Order, error)
	UpdateOrderStatus(ctx context.Context, caller auth.Identity, id string, status OrderStatus) (*Order, error)
}

type service struct {
	repo      Repository
	catalog   MenuCatalog
	publisher events.Publisher
	pricing   cart.Pricing
}

func NewService(repo Repository, catalog MenuCatalog, publisher events.Publisher, pricing cart.Pricing) Service {
	if publisher == nil {
		publisher = events.NoopPublisher{}
	}
	return &service{
		repo:      repo,
		catalog:   catalog,
		publisher: publisher,
		pricing:   pricing,
	}
}

func (s *service) PlaceOrder(ctx context.Context, req PlaceOrderRequest) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "PlaceOrder"),
		zap.String("vendor_id", req.VendorID),
		zap.Int("item_count", len(req.Items)),
	)

	log.Info("place order started")

	// 1. Validate payload
	if strings.TrimSpace(req.CustomerID) == "" {
		return nil, ErrCustomerRequired
	}
	if len(req.Items) == 0 {
		return nil, ErrEmptyOrder
	}

	ids := make([]string, 0, len(req.Items))
	for _, it := range req.Items {
		if it.Quantity <= 0 {
			log.Warn("invalid quantity", zap.String("menu_id", it.MenuID), zap.Int("quantity", it.Quantity))
			return nil, ErrInvalidQuantity
		}
		ids = append(ids, it.MenuID)
	}

	// 2. Resolve prices from the menu
	menuItems, err := s.catalog.GetMenuItemsByIDs(ctx, ids)
	if err != nil {
		log.Error("failed to load menu items", zap.Error(err))
		return nil, err
	}

	lines := make([]cart.LineItem, 0, len(req.Items))
	for _, it := range req.Items {
		m, ok := menuItems[it.MenuID]
		if !ok {
			return nil, fmt.Errorf("%w: %s", menu.ErrMenuItemNotFound, it.MenuID)
		}
		if m.VendorID != req.VendorID {
			return nil, fmt.Errorf("%w: %s", ErrVendorMismatch, it.MenuID)
		}
		if !m.Orderable() {
			return nil, fmt.Errorf("%w: %s", menu.ErrMenuItemUnavailable, it.MenuID)
		}
		lines = append(lines, cart.LineItem{
			ID:             m.ID,
			Name:           m.Name,
			Price:          m.Price,
			Quantity:       it.Quantity,
			RestaurantID:   m.VendorID,
			RestaurantName: m.VendorName,
		})
	}

	// 3. Totals use the same pricing as the cart
	totals := s.pricing.TotalsFor(lines)

	o := &Order{
		ID:           uuid.NewString(),
		OrderNumber:  utils.GenerateOrderNumber(),
		CustomerID:   req.CustomerID,
		CustomerName: req.CustomerName,
		VendorID:     req.VendorID,
		VendorName:   req.VendorName,
		Status:       StatusPending,
		Subtotal:     totals.Subtotal,
		DeliveryFee:  totals.DeliveryFee,
		Tax:          totals.Tax,
		Total:        totals.Total,
		Items:        make([]OrderItem, 0, len(lines)),
	}
	for _, li := range lines {
		o.Items = append(o.Items, OrderItem{
			ID:         uuid.NewString(),
			OrderID:    o.ID,
			MenuItemID: li.ID,
			Name:       li.Name,
			Quantity:   li.Quantity,
			Price:      li.Price,
			LineTotal:  li.LineTotal(),
		})
	}

	log = log.With(
		zap.String("order_id", o.ID),
		zap.String("order_number", o.OrderNumber),
		zap.String("total", o.Total.StringFixed(2)),
	)

	// 4. Persist
	if err := s.repo.CreateOrder(ctx, o); err != nil {
		log.Error("failed to create order", zap.Error(err))
		return nil, err
	}

	log.Info("order placed")
	s.publish(ctx, events.SubjectOrderPlaced, o)

	return o, nil
}

func (s *service) GetOrder(ctx context.Context, caller auth.Identity, id string) (*Order, error) {
	o, err := s.repo.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	if !canView(caller, o) {
		return nil, ErrForbidden
	}
	return o, nil
}

func (s *service) ListCustomerOrders(ctx context.Context, customerID string, opts ListOptions) ([]*Order, error) {
	if customerID == "" {
		return nil, ErrCustomerRequired
	}
	if opts.Status != nil && !opts.Status.Valid() {
		return nil, ErrInvalidStatus
	}
	return s.repo.ListByCustomer(ctx, customerID, opts)
}

func (s *service) ListVendorOrders(ctx context.Context, vendorID string, opts ListOptions) ([]*Order, error) {
	if opts.Status != nil && !opts.Status.Valid() {
		return nil, ErrInvalidStatus
	}
	return s.repo.ListByVendor(ctx, vendorID, opts)
}

// UpdateOrderStatus lets the vendor move an order along its lifecycle and the
// customer cancel an order that has not been accepted yet.
func (s *service) UpdateOrderStatus(ctx context.Context, caller auth.Identity, id string, status OrderStatus) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "UpdateOrderStatus"),
		zap.String("order_id", id),
		zap.String("status", string(status)),
	)

	if !status.Valid() {
		return nil, ErrInvalidStatus
	}

	o, err := s.repo.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}

	switch {
	case caller.IsVendor() && caller.VendorID == o.VendorID:
	case caller.CustomerID == o.CustomerID:
		if status != StatusCanceled || o.Status != StatusPending {
			log.Warn("customer status change refused", zap.String("current", string(o.Status)))
			return nil, ErrForbidden
		}
	default:
		return nil, ErrForbidden
	}

	if !o.Status.CanTransitionTo(status) {
		log.Info("invalid status transition",
			zap.String("current", string(o.Status)),
			zap.Bool("final", o.Status.IsFinal()),
		)
		return nil, ErrInvalidTransition
	}

	if err := s.repo.UpdateStatus(ctx, id, o.Status, status); err != nil {
		if !errors.Is(err, ErrStaleStatus) {
			log.Error("failed to update order status", zap.Error(err))
		}
		return nil, err
	}

	o.Status = status
	log.Info("order status updated")
	s.publish(ctx, events.SubjectOrderStatusChanged, o)

	return o, nil
}

func canView(caller auth.Identity, o *Order) bool {
	if caller.CustomerID != "" && caller.CustomerID == o.CustomerID {
		return true
	}
	return caller.IsVendor() && caller.VendorID == o.VendorID
}

// publish is best effort. The order is already stored when it runs.
func (s *service) publish(ctx context.Context, subject string, o *Order) {
	err := s.publisher.Publish(ctx, subject, events.OrderEvent{
		OrderID:    o.ID,
		CustomerID: o.CustomerID,
		VendorID:   o.VendorID,
		Status:     string(o.Status),
		Total:      o.Total.StringFixed(2),
	})
	if err != nil {
		logger.FromCtx(ctx).Warn("failed to publish order event",
			zap.String("subject", subject),
			zap.String("order_id", o.ID),
			zap.Error(err),
		)
	}
}
