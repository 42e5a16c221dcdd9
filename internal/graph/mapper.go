package graph

import (
	"errors"
	"time"

	"foodcart-be/internal/cart"
	"foodcart-be/internal/checkout"
	"foodcart-be/internal/graph/model"
	"foodcart-be/internal/menu"
	"foodcart-be/internal/order"
	"foodcart-be/internal/utils"
)

const moneyPlaces = 2

func mapCart(p cart.Pricing, snap cart.Snapshot) *model.Cart {
	state := snap.State

	items := make([]*model.CartItem, 0, len(state.Items))
	for _, it := range state.Items {
		lineTotal := it.LineTotal()
		items = append(items, &model.CartItem{
			ID:                 it.ID,
			Name:               it.Name,
			Price:              it.Price.StringFixed(moneyPlaces),
			Quantity:           int32(it.Quantity),
			LineTotal:          lineTotal.StringFixed(moneyPlaces),
			FormattedPrice:     p.Format(it.Price),
			FormattedLineTotal: p.Format(lineTotal),
			RestaurantID:       it.RestaurantID,
			RestaurantName:     it.RestaurantName,
		})
	}

	out := &model.Cart{
		Items:                 items,
		Status:                model.CartStatus(state.Status()),
		ShowRestaurantWarning: state.ConflictWarning,
		Totals:                mapTotals(p, snap.Totals),
		Version:               int32(snap.Version),
	}

	if !state.IsEmpty() {
		out.CurrentRestaurantID = utils.StrPtr(state.CurrentRestaurant)
		out.CurrentRestaurantName = utils.StrPtr(state.RestaurantName())
	}

	if pending := state.PendingConflict; pending != nil {
		out.PendingItem = &model.PendingCartItem{
			ID:             pending.ID,
			Name:           pending.Name,
			Price:          pending.Price.StringFixed(moneyPlaces),
			FormattedPrice: p.Format(pending.Price),
			RestaurantID:   pending.RestaurantID,
			RestaurantName: pending.RestaurantName,
		}
	}

	return out
}

func mapTotals(p cart.Pricing, t cart.Totals) *model.CartTotals {
	f := p.FormatTotals(t)
	return &model.CartTotals{
		ItemCount:            int32(t.ItemCount),
		Subtotal:             t.Subtotal.StringFixed(moneyPlaces),
		DeliveryFee:          t.DeliveryFee.StringFixed(moneyPlaces),
		Tax:                  t.Tax.StringFixed(moneyPlaces),
		Total:                t.Total.StringFixed(moneyPlaces),
		FormattedSubtotal:    f.Subtotal,
		FormattedDeliveryFee: f.DeliveryFee,
		FormattedTax:         f.Tax,
		FormattedTotal:       f.Total,
	}
}

func mapVendor(v menu.Vendor) *model.Vendor {
	return &model.Vendor{
		ID:          v.ID,
		Name:        v.Name,
		Description: v.Description,
		IsOpen:      v.IsOpen,
		CreatedAt:   v.CreatedAt.Format(time.RFC3339),
	}
}

func mapMenuItem(p cart.Pricing, m menu.MenuItem) *model.MenuItem {
	return &model.MenuItem{
		ID:             m.ID,
		VendorID:       m.VendorID,
		VendorName:     m.VendorName,
		Name:           m.Name,
		Description:    m.Description,
		Price:          m.Price.StringFixed(moneyPlaces),
		FormattedPrice: p.Format(m.Price),
		IsAvailable:    m.IsAvailable,
		CreatedAt:      m.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      m.UpdatedAt.Format(time.RFC3339),
	}
}

func mapOrder(p cart.Pricing, o *order.Order) *model.Order {
	if o == nil {
		return nil
	}

	items := make([]*model.OrderItem, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, &model.OrderItem{
			ID:         it.ID,
			MenuItemID: it.MenuItemID,
			Name:       it.Name,
			Quantity:   int32(it.Quantity),
			Price:      it.Price.StringFixed(moneyPlaces),
			LineTotal:  it.LineTotal.StringFixed(moneyPlaces),
		})
	}

	return &model.Order{
		ID:             o.ID,
		OrderNumber:    o.OrderNumber,
		CustomerID:     o.CustomerID,
		CustomerName:   o.CustomerName,
		VendorID:       o.VendorID,
		VendorName:     o.VendorName,
		Status:         model.OrderStatus(o.Status),
		Items:          items,
		Subtotal:       o.Subtotal.StringFixed(moneyPlaces),
		DeliveryFee:    o.DeliveryFee.StringFixed(moneyPlaces),
		Tax:            o.Tax.StringFixed(moneyPlaces),
		Total:          o.Total.StringFixed(moneyPlaces),
		FormattedTotal: p.Format(o.Total),
		CreatedAt:      o.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      o.UpdatedAt.Format(time.RFC3339),
	}
}

func mapOrders(p cart.Pricing, orders []*order.Order) []*model.Order {
	out := make([]*model.Order, 0, len(orders))
	for _, o := range orders {
		out = append(out, mapOrder(p, o))
	}
	return out
}

// domainErrors are reported to the caller as unsuccessful responses. Anything
// else surfaces as a GraphQL error.
var domainErrors = []error{
	cart.ErrCustomerRequired,
	checkout.ErrCartEmpty,
	checkout.ErrConflictPending,
	checkout.ErrCheckoutInProgress,
	checkout.ErrMixedRestaurants,
	menu.ErrVendorNotFound,
	menu.ErrMenuItemNotFound,
	menu.ErrMenuItemUnavailable,
	menu.ErrInvalidPrice,
	menu.ErrNameRequired,
	menu.ErrNoChanges,
	menu.ErrForbidden,
	order.ErrOrderNotFound,
	order.ErrForbidden,
	order.ErrInvalidStatus,
	order.ErrInvalidTransition,
	order.ErrEmptyOrder,
	order.ErrInvalidQuantity,
	order.ErrCustomerRequired,
	order.ErrVendorMismatch,
	order.ErrStaleStatus,
}

func isDomainError(err error) bool {
	for _, target := range domainErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
