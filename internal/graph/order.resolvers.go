package graph

import (
	"context"
	"errors"

	"foodcart-be/internal/auth"
	"foodcart-be/internal/graph/model"
	"foodcart-be/internal/logger"
	"foodcart-be/internal/order"
	"foodcart-be/internal/utils"

	"go.uber.org/zap"
)

// MyOrders lists the caller's orders, newest first.
func (r *queryResolver) MyOrders(ctx context.Context, limit, page *int32) ([]*model.Order, error) {
	identity, ok := auth.IdentityFrom(ctx)
	if !ok {
		return nil, ErrUnauthorized
	}

	l, offset := utils.Paginate(limit, page)
	orders, err := r.OrderSvc.ListCustomerOrders(ctx, identity.CustomerID, order.ListOptions{
		Limit:  l,
		Offset: offset,
	})
	if err != nil {
		logger.FromCtx(ctx).Error("failed to list customer orders", zap.Error(err))
		return nil, err
	}
	return mapOrders(r.Pricing, orders), nil
}

func (r *queryResolver) Order(ctx context.Context, id string) (*model.Order, error) {
	identity, ok := auth.IdentityFrom(ctx)
	if !ok {
		return nil, ErrUnauthorized
	}

	o, err := r.OrderSvc.GetOrder(ctx, identity, id)
	if errors.Is(err, order.ErrOrderNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return mapOrder(r.Pricing, o), nil
}

// VendorOrders lists the orders placed with the caller's restaurant,
// optionally filtered by status.
func (r *queryResolver) VendorOrders(ctx context.Context, status *model.OrderStatus, limit, page *int32) ([]*model.Order, error) {
	identity, ok := vendorFrom(ctx)
	if !ok {
		return nil, ErrVendorOnly
	}

	l, offset := utils.Paginate(limit, page)
	opts := order.ListOptions{Limit: l, Offset: offset}
	if status != nil {
		s := order.OrderStatus(*status)
		opts.Status = &s
	}

	orders, err := r.OrderSvc.ListVendorOrders(ctx, identity.VendorID, opts)
	if err != nil {
		return nil, err
	}
	return mapOrders(r.Pricing, orders), nil
}

func (r *mutationResolver) UpdateOrderStatus(ctx context.Context, id string, status model.OrderStatus) (*model.OrderResponse, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("order_id", id),
		zap.String("status", string(status)),
	)
	log.Info("UpdateOrderStatus resolver called")

	identity, ok := auth.IdentityFrom(ctx)
	if !ok {
		log.Warn("unauthorized access (no customer in context)")
		return &model.OrderResponse{Success: false, Message: utils.StrPtr(ErrUnauthorized.Error())}, nil
	}

	updated, err := r.OrderSvc.UpdateOrderStatus(ctx, identity, id, order.OrderStatus(status))
	if err != nil {
		if !isDomainError(err) {
			log.Error("failed to update order status", zap.Error(err))
			return nil, err
		}
		log.Warn("order status change refused", zap.Error(err))
		return &model.OrderResponse{Success: false, Message: utils.StrPtr(err.Error())}, nil
	}

	return &model.OrderResponse{
		Success: true,
		Message: utils.StrPtr("Order status updated"),
		Order:   mapOrder(r.Pricing, updated),
	}, nil
}
