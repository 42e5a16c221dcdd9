package checkout

import (
	"context"
	"errors"
	"time"

	"foodcart-be/internal/auth"
	"foodcart-be/internal/cart"
	"foodcart-be/internal/logger"
	"foodcart-be/internal/metrics"
	"foodcart-be/internal/order"

	"go.uber.org/zap"
)

const lockTTL = 30 * time.Second

var (
	checkoutsCompleted = metrics.Default.Counter("checkouts_completed_total")
	checkoutsRefused   = metrics.Default.Counter("checkouts_refused_total")
)

// OrderPlacer is the part of the order service checkout depends on.
type OrderPlacer interface {
	PlaceOrder(ctx context.Context, req order.PlaceOrderRequest) (*order.Order, error)
}

type Service interface {
	Checkout(ctx context.Context, customer auth.Identity, store *cart.Store) (*order.Order, error)
}

type service struct {
	orders OrderPlacer
	locker Locker
}

func NewService(orders OrderPlacer, locker Locker) Service {
	return &service{orders: orders, locker: locker}
}

// Checkout places an order for the contents of store and clears the cart
// when the order has been stored.
func (s *service) Checkout(ctx context.Context, customer auth.Identity, store *cart.Store) (*order.Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Checkout"),
	)

	if customer.CustomerID == "" {
		return nil, cart.ErrCustomerRequired
	}

	// 1. One checkout per customer at a time
	ok, err := s.locker.Acquire(ctx, customer.CustomerID, lockTTL)
	if err != nil {
		log.Error("failed to acquire checkout lock", zap.Error(err))
		return nil, err
	}
	if !ok {
		log.Warn("checkout already in progress")
		return nil, ErrCheckoutInProgress
	}
	defer func() {
		if err := s.locker.Release(context.WithoutCancel(ctx), customer.CustomerID); err != nil {
			log.Warn("failed to release checkout lock", zap.Error(err))
		}
	}()

	// The snapshot is taken under the lock so a finished checkout's clear is visible.
	snap := store.Snapshot()
	req, err := BuildOrderRequest(customer, snap.State)
	if err != nil {
		log.Info("checkout refused", zap.Error(err))
		checkoutsRefused.Inc()
		return nil, err
	}

	// 2. Place order
	placed, err := s.orders.PlaceOrder(ctx, req)
	if err != nil {
		log.Error("failed to place order", zap.Error(err))
		return nil, err
	}

	// 3. Clear cart. Lines changed while the order was placed stay, minus
	// what was ordered.
	if !store.ClearIfVersion(ctx, snap.Version) {
		takeOrdered(ctx, store, req.Items)
	}
	checkoutsCompleted.Inc()

	log.Info("checkout completed",
		zap.String("order_id", placed.ID),
		zap.String("total", placed.Total.StringFixed(2)),
		zap.Uint64("cart_version", snap.Version),
	)
	return placed, nil
}

func takeOrdered(ctx context.Context, store *cart.Store, items []order.PlaceOrderItem) {
	for _, it := range items {
		for n := min(it.Quantity, store.GetItemQuantity(it.MenuID)); n > 0; n-- {
			store.DecrementItem(ctx, it.MenuID)
		}
	}
}

// BuildOrderRequest translates cart line items into the order payload.
func BuildOrderRequest(customer auth.Identity, state cart.State) (order.PlaceOrderRequest, error) {
	if customer.CustomerID == "" {
		return order.PlaceOrderRequest{}, cart.ErrCustomerRequired
	}
	if state.PendingConflict != nil {
		return order.PlaceOrderRequest{}, ErrConflictPending
	}
	if state.IsEmpty() {
		return order.PlaceOrderRequest{}, ErrCartEmpty
	}
	if err := state.CheckInvariants(); err != nil {
		if errors.Is(err, cart.ErrMixedRestaurants) {
			return order.PlaceOrderRequest{}, ErrMixedRestaurants
		}
		return order.PlaceOrderRequest{}, err
	}

	items := make([]order.PlaceOrderItem, 0, len(state.Items))
	for _, li := range state.Items {
		items = append(items, order.PlaceOrderItem{
			MenuID:   li.ID,
			MenuName: li.Name,
			Quantity: li.Quantity,
		})
	}

	return order.PlaceOrderRequest{
		CustomerID:   customer.CustomerID,
		CustomerName: customer.Name,
		VendorID:     state.CurrentRestaurant,
		VendorName:   state.RestaurantName(),
		Items:        items,
	}, nil
}
