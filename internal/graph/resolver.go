package graph

import (
	"context"
	"encoding/json"
	"fmt"

	"foodcart-be/internal/cart"
	"foodcart-be/internal/checkout"
	"foodcart-be/internal/graph/model"
	"foodcart-be/internal/menu"
	"foodcart-be/internal/order"
)

type Resolver struct {
	Carts       *cart.Registry
	Pricing     cart.Pricing
	MenuSvc     menu.Service
	OrderSvc    order.Service
	CheckoutSvc checkout.Service
}

type queryResolver struct{ *Resolver }

type mutationResolver struct{ *Resolver }

type args = map[string]interface{}

// NewSchema loads the schema and binds every root field to its resolver.
func NewSchema(r *Resolver) (*Executor, error) {
	schema, err := LoadSchema()
	if err != nil {
		return nil, fmt.Errorf("failed to load graphql schema: %w", err)
	}

	e := NewExecutor(schema)
	e.Directive("auth", AuthDirective)

	q := &queryResolver{r}
	m := &mutationResolver{r}

	// Queries
	e.Query("vendors", func(ctx context.Context, _ args) (interface{}, error) {
		return q.Vendors(ctx)
	})
	e.Query("vendor", func(ctx context.Context, a args) (interface{}, error) {
		var in struct {
			ID string `json:"id"`
		}
		if err := decodeArgs(a, &in); err != nil {
			return nil, err
		}
		return q.Vendor(ctx, in.ID)
	})
	e.Query("menu", func(ctx context.Context, a args) (interface{}, error) {
		var in struct {
			VendorID string `json:"vendorId"`
		}
		if err := decodeArgs(a, &in); err != nil {
			return nil, err
		}
		return q.Menu(ctx, in.VendorID)
	})
	e.Query("myCart", func(ctx context.Context, _ args) (interface{}, error) {
		return q.MyCart(ctx)
	})
	e.Query("cartItemQuantity", func(ctx context.Context, a args) (interface{}, error) {
		var in struct {
			ItemID string `json:"itemId"`
		}
		if err := decodeArgs(a, &in); err != nil {
			return nil, err
		}
		return q.CartItemQuantity(ctx, in.ItemID)
	})
	e.Query("myOrders", func(ctx context.Context, a args) (interface{}, error) {
		var in struct {
			Limit *int32 `json:"limit"`
			Page  *int32 `json:"page"`
		}
		if err := decodeArgs(a, &in); err != nil {
			return nil, err
		}
		return q.MyOrders(ctx, in.Limit, in.Page)
	})
	e.Query("order", func(ctx context.Context, a args) (interface{}, error) {
		var in struct {
			ID string `json:"id"`
		}
		if err := decodeArgs(a, &in); err != nil {
			return nil, err
		}
		return q.Order(ctx, in.ID)
	})
	e.Query("vendorOrders", func(ctx context.Context, a args) (interface{}, error) {
		var in struct {
			Status *model.OrderStatus `json:"status"`
			Limit  *int32             `json:"limit"`
			Page   *int32             `json:"page"`
		}
		if err := decodeArgs(a, &in); err != nil {
			return nil, err
		}
		return q.VendorOrders(ctx, in.Status, in.Limit, in.Page)
	})

	// Cart mutations
	e.Mutation("addToCart", func(ctx context.Context, a args) (interface{}, error) {
		var in struct {
			Input model.AddToCartInput `json:"input"`
		}
		if err := decodeArgs(a, &in); err != nil {
			return nil, err
		}
		return m.AddToCart(ctx, in.Input)
	})
	e.Mutation("incrementCartItem", itemMutation(m.IncrementCartItem))
	e.Mutation("decrementCartItem", itemMutation(m.DecrementCartItem))
	e.Mutation("removeFromCart", itemMutation(m.RemoveFromCart))
	e.Mutation("clearCart", func(ctx context.Context, _ args) (interface{}, error) {
		return m.ClearCart(ctx)
	})
	e.Mutation("confirmRestaurantChange", func(ctx context.Context, _ args) (interface{}, error) {
		return m.ConfirmRestaurantChange(ctx)
	})
	e.Mutation("dismissRestaurantWarning", func(ctx context.Context, _ args) (interface{}, error) {
		return m.DismissRestaurantWarning(ctx)
	})
	e.Mutation("checkout", func(ctx context.Context, _ args) (interface{}, error) {
		return m.Checkout(ctx)
	})

	// Vendor mutations
	e.Mutation("createMenuItem", func(ctx context.Context, a args) (interface{}, error) {
		var in struct {
			Input model.CreateMenuItemInput `json:"input"`
		}
		if err := decodeArgs(a, &in); err != nil {
			return nil, err
		}
		return m.CreateMenuItem(ctx, in.Input)
	})
	e.Mutation("updateMenuItem", func(ctx context.Context, a args) (interface{}, error) {
		var in struct {
			Input model.UpdateMenuItemInput `json:"input"`
		}
		if err := decodeArgs(a, &in); err != nil {
			return nil, err
		}
		return m.UpdateMenuItem(ctx, in.Input)
	})
	e.Mutation("deleteMenuItem", func(ctx context.Context, a args) (interface{}, error) {
		var in struct {
			ID string `json:"id"`
		}
		if err := decodeArgs(a, &in); err != nil {
			return nil, err
		}
		return m.DeleteMenuItem(ctx, in.ID)
	})
	e.Mutation("updateOrderStatus", func(ctx context.Context, a args) (interface{}, error) {
		var in struct {
			ID     string            `json:"id"`
			Status model.OrderStatus `json:"status"`
		}
		if err := decodeArgs(a, &in); err != nil {
			return nil, err
		}
		return m.UpdateOrderStatus(ctx, in.ID, in.Status)
	})

	return e, nil
}

func itemMutation(fn func(ctx context.Context, itemID string) (*model.CartMutationResponse, error)) FieldResolver {
	return func(ctx context.Context, a args) (interface{}, error) {
		var in struct {
			ItemID string `json:"itemId"`
		}
		if err := decodeArgs(a, &in); err != nil {
			return nil, err
		}
		return fn(ctx, in.ItemID)
	}
}

// decodeArgs copies coerced GraphQL arguments into a typed struct.
func decodeArgs(a args, dst interface{}) error {
	raw, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}
	return nil
}
