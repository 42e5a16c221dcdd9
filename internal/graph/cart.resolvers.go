package graph

import (
	"context"
	"fmt"

	"foodcart-be/internal/auth"
	"foodcart-be/internal/cart"
	"foodcart-be/internal/graph/model"
	"foodcart-be/internal/logger"
	"foodcart-be/internal/utils"

	"go.uber.org/zap"
)

// MyCart returns the caller's cart, creating an empty one on first use.
func (r *queryResolver) MyCart(ctx context.Context) (*model.Cart, error) {
	store, _, err := r.cartFor(ctx)
	if err != nil {
		return nil, err
	}
	return mapCart(r.Pricing, store.Snapshot()), nil
}

func (r *queryResolver) CartItemQuantity(ctx context.Context, itemID string) (int32, error) {
	store, _, err := r.cartFor(ctx)
	if err != nil {
		return 0, err
	}
	return int32(store.GetItemQuantity(itemID)), nil
}

// AddToCart looks the item up in the menu and adds one unit of it. An item
// from a different restaurant is parked as a pending conflict instead.
func (r *mutationResolver) AddToCart(ctx context.Context, input model.AddToCartInput) (*model.CartMutationResponse, error) {
	log := logger.FromCtx(ctx).With(zap.String("menu_item_id", input.MenuItemID))
	log.Info("AddToCart resolver called")

	// 1. Resolve the caller's cart
	store, _, err := r.cartFor(ctx)
	if err != nil {
		log.Warn("unauthorized access (no customer in context)")
		return cartFailure(err), nil
	}

	// 2. Fetch the menu row
	item, err := r.MenuSvc.CartItem(ctx, input.MenuItemID)
	if err != nil {
		if !isDomainError(err) {
			log.Error("failed to load menu item", zap.Error(err))
			return nil, err
		}
		log.Warn("menu item cannot be added", zap.Error(err))
		return cartFailure(err), nil
	}

	// 3. Apply
	snap, outcome := store.Dispatch(ctx, cart.AddItem{Item: item})
	return r.cartResponse(snap, outcome), nil
}

func (r *mutationResolver) IncrementCartItem(ctx context.Context, itemID string) (*model.CartMutationResponse, error) {
	return r.dispatch(ctx, cart.IncrementItem{ItemID: itemID})
}

func (r *mutationResolver) DecrementCartItem(ctx context.Context, itemID string) (*model.CartMutationResponse, error) {
	return r.dispatch(ctx, cart.DecrementItem{ItemID: itemID})
}

func (r *mutationResolver) RemoveFromCart(ctx context.Context, itemID string) (*model.CartMutationResponse, error) {
	return r.dispatch(ctx, cart.RemoveItem{ItemID: itemID})
}

func (r *mutationResolver) ClearCart(ctx context.Context) (*model.CartMutationResponse, error) {
	return r.dispatch(ctx, cart.ClearCart{})
}

func (r *mutationResolver) ConfirmRestaurantChange(ctx context.Context) (*model.CartMutationResponse, error) {
	return r.dispatch(ctx, cart.ConfirmRestaurantChange{})
}

func (r *mutationResolver) DismissRestaurantWarning(ctx context.Context) (*model.CartMutationResponse, error) {
	return r.dispatch(ctx, cart.DismissWarning{})
}

// Checkout places an order for the cart and empties it.
func (r *mutationResolver) Checkout(ctx context.Context) (*model.CheckoutResponse, error) {
	log := logger.FromCtx(ctx)
	log.Info("Checkout resolver called")

	store, identity, err := r.cartFor(ctx)
	if err != nil {
		log.Warn("unauthorized access (no customer in context)")
		return &model.CheckoutResponse{Success: false, Message: utils.StrPtr(err.Error())}, nil
	}

	placed, err := r.CheckoutSvc.Checkout(ctx, identity, store)
	if err != nil {
		if !isDomainError(err) {
			log.Error("checkout failed", zap.Error(err))
			return nil, err
		}
		log.Warn("checkout refused", zap.Error(err))
		return &model.CheckoutResponse{Success: false, Message: utils.StrPtr(err.Error())}, nil
	}

	log.Info("checkout completed",
		zap.String("order_id", placed.ID),
		zap.String("order_number", placed.OrderNumber),
	)

	return &model.CheckoutResponse{
		Success: true,
		Message: utils.StrPtr("Order placed"),
		Order:   mapOrder(r.Pricing, placed),
	}, nil
}

func (r *mutationResolver) dispatch(ctx context.Context, cmd cart.Command) (*model.CartMutationResponse, error) {
	store, _, err := r.cartFor(ctx)
	if err != nil {
		logger.FromCtx(ctx).Warn("unauthorized access (no customer in context)", zap.String("command", cmd.Name()))
		return cartFailure(err), nil
	}

	snap, outcome := store.Dispatch(ctx, cmd)
	return r.cartResponse(snap, outcome), nil
}

// cartFor returns the store of the authenticated customer.
func (r *Resolver) cartFor(ctx context.Context) (*cart.Store, auth.Identity, error) {
	identity, ok := auth.IdentityFrom(ctx)
	if !ok {
		return nil, auth.Identity{}, ErrUnauthorized
	}
	store, err := r.Carts.Cart(identity.CustomerID)
	if err != nil {
		return nil, identity, err
	}
	return store, identity, nil
}

func (r *Resolver) cartResponse(snap cart.Snapshot, outcome cart.Outcome) *model.CartMutationResponse {
	o := model.CartOutcome(outcome)
	return &model.CartMutationResponse{
		Success: outcome != cart.OutcomeRejected,
		Message: outcomeMessage(snap.State, outcome),
		Outcome: &o,
		Cart:    mapCart(r.Pricing, snap),
	}
}

func outcomeMessage(state cart.State, outcome cart.Outcome) *string {
	switch outcome {
	case cart.OutcomeConflict:
		return utils.StrPtr(fmt.Sprintf(
			"Your cart has items from %s. Start a new cart with %s?",
			state.RestaurantName(), state.PendingConflict.RestaurantName,
		))
	case cart.OutcomeAdded, cart.OutcomeMerged:
		if state.PendingConflict == nil {
			return nil
		}
		return utils.StrPtr(fmt.Sprintf(
			"Added to cart. A switch to %s is still pending and confirming it will replace these items.",
			state.PendingConflict.RestaurantName,
		))
	case cart.OutcomeRejected:
		return utils.StrPtr("item could not be added to the cart")
	case cart.OutcomeNoop:
		return utils.StrPtr("nothing to update")
	default:
		return nil
	}
}

func cartFailure(err error) *model.CartMutationResponse {
	return &model.CartMutationResponse{
		Success: false,
		Message: utils.StrPtr(err.Error()),
	}
}
