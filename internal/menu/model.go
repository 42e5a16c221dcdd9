package menu

import (
	"time"

	"foodcart-be/internal/cart"

	"github.com/shopspring/decimal"
)

type Vendor struct {
	ID          string
	Name        string
	Description string
	IsOpen      bool
	CreatedAt   time.Time
}

type MenuItem struct {
	ID          string
	VendorID    string
	VendorName  string
	VendorOpen  bool
	Name        string
	Description string
	Price       decimal.Decimal
	IsAvailable bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Orderable reports whether the item can be put in a cart right now.
func (m MenuItem) Orderable() bool {
	return m.IsAvailable && m.VendorOpen
}

// ToCartItem converts the menu row into the tuple the cart accepts.
func (m MenuItem) ToCartItem() cart.MenuItem {
	return cart.MenuItem{
		ID:             m.ID,
		Name:           m.Name,
		Price:          m.Price,
		RestaurantID:   m.VendorID,
		RestaurantName: m.VendorName,
	}
}

type NewMenuItemInput struct {
	Name        string
	Description string
	Price       decimal.Decimal
	IsAvailable *bool
}

type UpdateMenuItemInput struct {
	ID          string
	Name        *string
	Description *string
	Price       *decimal.Decimal
	IsAvailable *bool
}

func (in UpdateMenuItemInput) HasChanges() bool {
	return in.Name != nil ||
		in.Description != nil ||
		in.Price != nil ||
		in.IsAvailable != nil
}
