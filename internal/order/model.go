package order

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	StatusPending        OrderStatus = "PENDING"
	StatusAccepted       OrderStatus = "ACCEPTED"
	StatusPreparing      OrderStatus = "PREPARING"
	StatusOutForDelivery OrderStatus = "OUT_FOR_DELIVERY"
	StatusDelivered      OrderStatus = "DELIVERED"
	StatusRejected       OrderStatus = "REJECTED"
	StatusCanceled       OrderStatus = "CANCELED"
)

var transitions = map[OrderStatus][]OrderStatus{
	StatusPending:        {StatusAccepted, StatusRejected, StatusCanceled},
	StatusAccepted:       {StatusPreparing, StatusRejected, StatusCanceled},
	StatusPreparing:      {StatusOutForDelivery},
	StatusOutForDelivery: {StatusDelivered},
}

func (s OrderStatus) Valid() bool {
	switch s {
	case StatusPending, StatusAccepted, StatusPreparing, StatusOutForDelivery,
		StatusDelivered, StatusRejected, StatusCanceled:
		return true
	}
	return false
}

// IsFinal reports whether no further transitions are possible.
func (s OrderStatus) IsFinal() bool {
	return s.Valid() && len(transitions[s]) == 0
}

func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

type Order struct {
	ID           string
	OrderNumber  string
	CustomerID   string
	CustomerName string
	VendorID     string
	VendorName   string
	Status       OrderStatus
	Subtotal     decimal.Decimal
	DeliveryFee  decimal.Decimal
	Tax          decimal.Decimal
	Total        decimal.Decimal
	Items        []OrderItem
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type OrderItem struct {
	ID         string
	OrderID    string
	MenuItemID string
	Name       string
	Quantity   int
	Price      decimal.Decimal
	LineTotal  decimal.Decimal
}

// PlaceOrderRequest is the payload the checkout flow submits to place an
// order. Prices are not trusted from the client and are resolved server side.
type PlaceOrderRequest struct {
	CustomerID   string           `json:"customerId"`
	CustomerName string           `json:"customerName"`
	VendorID     string           `json:"vendorId"`
	VendorName   string           `json:"vendorName"`
	Items        []PlaceOrderItem `json:"items"`
}

type PlaceOrderItem struct {
	MenuID   string `json:"menuId"`
	MenuName string `json:"menuName"`
	Quantity int    `json:"quantity"`
}

// ListOptions filters and paginates order listings.
type ListOptions struct {
	Status *OrderStatus
	Limit  int
	Offset int
}
