package order

import "errors"

var (
	ErrOrderNotFound     = errors.New("order not found")
	ErrForbidden         = errors.New("order belongs to someone else")
	ErrInvalidStatus     = errors.New("invalid order status")
	ErrInvalidTransition = errors.New("order status transition not allowed")
	ErrEmptyOrder        = errors.New("order has no items")
	ErrInvalidQuantity   = errors.New("quantity must be greater than zero")
	ErrCustomerRequired  = errors.New("customer id is required")
	ErrVendorMismatch    = errors.New("menu item belongs to a different vendor")
	ErrStaleStatus       = errors.New("order status changed concurrently")
)
