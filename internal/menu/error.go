package menu

import "errors"

var (
	ErrVendorNotFound      = errors.New("vendor not found")
	ErrMenuItemNotFound    = errors.New("menu item not found")
	ErrMenuItemUnavailable = errors.New("menu item is not available")
	ErrInvalidPrice        = errors.New("price must be greater than zero")
	ErrNameRequired        = errors.New("name is required")
	ErrNoChanges           = errors.New("no fields to update")
	ErrForbidden           = errors.New("menu item belongs to another vendor")
)
