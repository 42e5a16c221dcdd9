package cart

import (
	"github.com/shopspring/decimal"
)

const (
	// NoRestaurant is the current restaurant of an empty cart.
	NoRestaurant = ""

	DefaultRestaurantID   = "default"
	UnknownRestaurantName = "Unknown Restaurant"
)

// MenuItem is the tuple the menu service hands to AddItem.
type MenuItem struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Price          decimal.Decimal `json:"price"`
	RestaurantID   string          `json:"restaurantId"`
	RestaurantName string          `json:"restaurantName"`
}

// LineItem is one row of the cart.
type LineItem struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Price          decimal.Decimal `json:"price"`
	Quantity       int             `json:"quantity"`
	RestaurantID   string          `json:"restaurantId"`
	RestaurantName string          `json:"restaurantName"`
}

// LineTotal is price × quantity.
func (li LineItem) LineTotal() decimal.Decimal {
	return li.Price.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

func newLineItem(item MenuItem) LineItem {
	return LineItem{
		ID:             item.ID,
		Name:           item.Name,
		Price:          item.Price,
		Quantity:       1,
		RestaurantID:   item.RestaurantID,
		RestaurantName: item.RestaurantName,
	}
}

type Status string

const (
	StatusEmpty           Status = "EMPTY"
	StatusActive          Status = "ACTIVE"
	StatusConflictPending Status = "CONFLICT_PENDING"
)

// State is an immutable snapshot of a cart. Apply never mutates the State it
// receives; callers holding a State may read it freely.
type State struct {
	Items             []LineItem `json:"items"`
	CurrentRestaurant string     `json:"currentRestaurant"`
	PendingConflict   *MenuItem  `json:"pendingConflict,omitempty"`
	ConflictWarning   bool       `json:"conflictWarning"`
}

// EmptyState returns a cart with no items and no current restaurant.
func EmptyState() State {
	return State{Items: []LineItem{}}
}

func (s State) Status() Status {
	switch {
	case s.PendingConflict != nil:
		return StatusConflictPending
	case len(s.Items) == 0:
		return StatusEmpty
	default:
		return StatusActive
	}
}

func (s State) IsEmpty() bool {
	return len(s.Items) == 0
}

// Quantity returns the quantity of itemID, or 0 when it is not in the cart.
func (s State) Quantity(itemID string) int {
	if i := s.indexOf(itemID); i >= 0 {
		return s.Items[i].Quantity
	}
	return 0
}

// Item looks up a line item by id.
func (s State) Item(itemID string) (LineItem, bool) {
	if i := s.indexOf(itemID); i >= 0 {
		return s.Items[i], true
	}
	return LineItem{}, false
}

// ItemCount is the sum of all quantities.
func (s State) ItemCount() int {
	n := 0
	for _, it := range s.Items {
		n += it.Quantity
	}
	return n
}

// RestaurantName returns the display name of the current restaurant.
func (s State) RestaurantName() string {
	if len(s.Items) == 0 {
		return ""
	}
	return s.Items[0].RestaurantName
}

func (s State) indexOf(itemID string) int {
	for i, it := range s.Items {
		if it.ID == itemID {
			return i
		}
	}
	return -1
}

func (s State) clone() State {
	items := make([]LineItem, len(s.Items))
	copy(items, s.Items)
	out := s
	out.Items = items
	if s.PendingConflict != nil {
		pending := *s.PendingConflict
		out.PendingConflict = &pending
	}
	return out
}

// CheckInvariants reports the first violated cart invariant, if any.
func (s State) CheckInvariants() error {
	if s.ConflictWarning != (s.PendingConflict != nil) {
		return ErrConflictFlagMismatch
	}

	if len(s.Items) == 0 {
		if s.CurrentRestaurant != NoRestaurant {
			return ErrRestaurantWithoutItems
		}
		return nil
	}

	seen := make(map[string]struct{}, len(s.Items))
	for _, it := range s.Items {
		if it.RestaurantID != s.CurrentRestaurant {
			return ErrMixedRestaurants
		}
		if it.Quantity < 1 {
			return ErrNonPositiveQuantity
		}
		if _, dup := seen[it.ID]; dup {
			return ErrDuplicateLineItem
		}
		seen[it.ID] = struct{}{}
	}
	return nil
}
