package checkout

import "errors"

var (
	ErrCartEmpty          = errors.New("cart is empty")
	ErrConflictPending    = errors.New("resolve the restaurant change before checking out")
	ErrCheckoutInProgress = errors.New("checkout already in progress")
	ErrMixedRestaurants   = errors.New("cart contains items from more than one restaurant")
)
