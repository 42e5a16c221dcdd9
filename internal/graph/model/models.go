package model

import (
	"github.com/shopspring/decimal"
)

type Role string

const (
	RoleCustomer Role = "CUSTOMER"
	RoleVendor   Role = "VENDOR"
)

type CartStatus string

const (
	CartStatusEmpty           CartStatus = "EMPTY"
	CartStatusActive          CartStatus = "ACTIVE"
	CartStatusConflictPending CartStatus = "CONFLICT_PENDING"
)

type CartOutcome string

type OrderStatus string

type Vendor struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	IsOpen      bool   `json:"isOpen"`
	CreatedAt   string `json:"createdAt"`
}

type MenuItem struct {
	ID             string `json:"id"`
	VendorID       string `json:"vendorId"`
	VendorName     string `json:"vendorName"`
	Name           string `json:"name"`
	Description    string `json:"description"`
	Price          string `json:"price"`
	FormattedPrice string `json:"formattedPrice"`
	IsAvailable    bool   `json:"isAvailable"`
	CreatedAt      string `json:"createdAt"`
	UpdatedAt      string `json:"updatedAt"`
}

type CartItem struct {
	ID                 string `json:"id"`
	Name               string `json:"name"`
	Price              string `json:"price"`
	Quantity           int32  `json:"quantity"`
	LineTotal          string `json:"lineTotal"`
	FormattedPrice     string `json:"formattedPrice"`
	FormattedLineTotal string `json:"formattedLineTotal"`
	RestaurantID       string `json:"restaurantId"`
	RestaurantName     string `json:"restaurantName"`
}

type PendingCartItem struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Price          string `json:"price"`
	FormattedPrice string `json:"formattedPrice"`
	RestaurantID   string `json:"restaurantId"`
	RestaurantName string `json:"restaurantName"`
}

type CartTotals struct {
	ItemCount            int32  `json:"itemCount"`
	Subtotal             string `json:"subtotal"`
	DeliveryFee          string `json:"deliveryFee"`
	Tax                  string `json:"tax"`
	Total                string `json:"total"`
	FormattedSubtotal    string `json:"formattedSubtotal"`
	FormattedDeliveryFee string `json:"formattedDeliveryFee"`
	FormattedTax         string `json:"formattedTax"`
	FormattedTotal       string `json:"formattedTotal"`
}

type Cart struct {
	Items                 []*CartItem      `json:"items"`
	Status                CartStatus       `json:"status"`
	CurrentRestaurantID   *string          `json:"currentRestaurantId"`
	CurrentRestaurantName *string          `json:"currentRestaurantName"`
	PendingItem           *PendingCartItem `json:"pendingItem"`
	ShowRestaurantWarning bool             `json:"showRestaurantWarning"`
	Totals                *CartTotals      `json:"totals"`
	Version               int32            `json:"version"`
}

type CartMutationResponse struct {
	Success bool         `json:"success"`
	Message *string      `json:"message"`
	Outcome *CartOutcome `json:"outcome"`
	Cart    *Cart        `json:"cart"`
}

type OrderItem struct {
	ID         string `json:"id"`
	MenuItemID string `json:"menuItemId"`
	Name       string `json:"name"`
	Quantity   int32  `json:"quantity"`
	Price      string `json:"price"`
	LineTotal  string `json:"lineTotal"`
}

type Order struct {
	ID             string       `json:"id"`
	OrderNumber    string       `json:"orderNumber"`
	CustomerID     string       `json:"customerId"`
	CustomerName   string       `json:"customerName"`
	VendorID       string       `json:"vendorId"`
	VendorName     string       `json:"vendorName"`
	Status         OrderStatus  `json:"status"`
	Items          []*OrderItem `json:"items"`
	Subtotal       string       `json:"subtotal"`
	DeliveryFee    string       `json:"deliveryFee"`
	Tax            string       `json:"tax"`
	Total          string       `json:"total"`
	FormattedTotal string       `json:"formattedTotal"`
	CreatedAt      string       `json:"createdAt"`
	UpdatedAt      string       `json:"updatedAt"`
}

type CheckoutResponse struct {
	Success bool    `json:"success"`
	Message *string `json:"message"`
	Order   *Order  `json:"order"`
}

type OrderResponse struct {
	Success bool    `json:"success"`
	Message *string `json:"message"`
	Order   *Order  `json:"order"`
}

type MenuItemResponse struct {
	Success  bool      `json:"success"`
	Message  *string   `json:"message"`
	MenuItem *MenuItem `json:"menuItem"`
}

type Response struct {
	Success bool    `json:"success"`
	Message *string `json:"message"`
}

type AddToCartInput struct {
	MenuItemID string `json:"menuItemId"`
}

type CreateMenuItemInput struct {
	Name        string          `json:"name"`
	Description *string         `json:"description"`
	Price       decimal.Decimal `json:"price"`
	IsAvailable *bool           `json:"isAvailable"`
}

type UpdateMenuItemInput struct {
	ID          string           `json:"id"`
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	IsAvailable *bool            `json:"isAvailable"`
}
