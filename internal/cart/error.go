package cart

import "errors"

var (
	// -- Session --
	ErrCustomerRequired = errors.New("customer id is required")

	// -- Invariant violations (reported by State.CheckInvariants) --
	ErrMixedRestaurants       = errors.New("cart holds items from more than one restaurant")
	ErrRestaurantWithoutItems = errors.New("empty cart still has a current restaurant")
	ErrNonPositiveQuantity    = errors.New("cart line item has a non-positive quantity")
	ErrDuplicateLineItem      = errors.New("cart holds duplicate line items")
	ErrConflictFlagMismatch   = errors.New("conflict warning and pending item disagree")
)
