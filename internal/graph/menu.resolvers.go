package graph

import (
	"context"
	"errors"

	"foodcart-be/internal/auth"
	"foodcart-be/internal/graph/model"
	"foodcart-be/internal/logger"
	"foodcart-be/internal/menu"
	"foodcart-be/internal/utils"

	"go.uber.org/zap"
)

func (r *queryResolver) Vendors(ctx context.Context) ([]*model.Vendor, error) {
	vendors, err := r.MenuSvc.ListVendors(ctx)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to list vendors", zap.Error(err))
		return nil, err
	}

	out := make([]*model.Vendor, 0, len(vendors))
	for _, v := range vendors {
		out = append(out, mapVendor(v))
	}
	return out, nil
}

func (r *queryResolver) Vendor(ctx context.Context, id string) (*model.Vendor, error) {
	v, err := r.MenuSvc.GetVendor(ctx, id)
	if errors.Is(err, menu.ErrVendorNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return mapVendor(*v), nil
}

// Menu lists the available items of a vendor.
func (r *queryResolver) Menu(ctx context.Context, vendorID string) ([]*model.MenuItem, error) {
	items, err := r.MenuSvc.GetMenu(ctx, vendorID)
	if err != nil {
		return nil, err
	}

	out := make([]*model.MenuItem, 0, len(items))
	for _, it := range items {
		out = append(out, mapMenuItem(r.Pricing, it))
	}
	return out, nil
}

func (r *mutationResolver) CreateMenuItem(ctx context.Context, input model.CreateMenuItemInput) (*model.MenuItemResponse, error) {
	log := logger.FromCtx(ctx).With(zap.String("name", input.Name))
	log.Info("CreateMenuItem resolver called")

	identity, ok := vendorFrom(ctx)
	if !ok {
		log.Warn("menu change attempted without vendor role")
		return &model.MenuItemResponse{Success: false, Message: utils.StrPtr(ErrVendorOnly.Error())}, nil
	}

	created, err := r.MenuSvc.CreateMenuItem(ctx, identity.VendorID, menu.NewMenuItemInput{
		Name:        input.Name,
		Description: utils.PtrString(input.Description),
		Price:       input.Price,
		IsAvailable: input.IsAvailable,
	})
	if err != nil {
		return menuItemFailure(log, err)
	}

	return &model.MenuItemResponse{
		Success:  true,
		Message:  utils.StrPtr("Menu item created"),
		MenuItem: mapMenuItem(r.Pricing, *created),
	}, nil
}

func (r *mutationResolver) UpdateMenuItem(ctx context.Context, input model.UpdateMenuItemInput) (*model.MenuItemResponse, error) {
	log := logger.FromCtx(ctx).With(zap.String("menu_item_id", input.ID))
	log.Info("UpdateMenuItem resolver called")

	identity, ok := vendorFrom(ctx)
	if !ok {
		log.Warn("menu change attempted without vendor role")
		return &model.MenuItemResponse{Success: false, Message: utils.StrPtr(ErrVendorOnly.Error())}, nil
	}

	updated, err := r.MenuSvc.UpdateMenuItem(ctx, identity.VendorID, menu.UpdateMenuItemInput{
		ID:          input.ID,
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		IsAvailable: input.IsAvailable,
	})
	if err != nil {
		return menuItemFailure(log, err)
	}

	return &model.MenuItemResponse{
		Success:  true,
		Message:  utils.StrPtr("Menu item updated"),
		MenuItem: mapMenuItem(r.Pricing, *updated),
	}, nil
}

func (r *mutationResolver) DeleteMenuItem(ctx context.Context, id string) (*model.Response, error) {
	log := logger.FromCtx(ctx).With(zap.String("menu_item_id", id))
	log.Info("DeleteMenuItem resolver called")

	identity, ok := vendorFrom(ctx)
	if !ok {
		log.Warn("menu change attempted without vendor role")
		return &model.Response{Success: false, Message: utils.StrPtr(ErrVendorOnly.Error())}, nil
	}

	if err := r.MenuSvc.DeleteMenuItem(ctx, identity.VendorID, id); err != nil {
		if !isDomainError(err) {
			log.Error("failed to delete menu item", zap.Error(err))
			return nil, err
		}
		log.Warn("menu item not deleted", zap.Error(err))
		return &model.Response{Success: false, Message: utils.StrPtr(err.Error())}, nil
	}

	return &model.Response{Success: true, Message: utils.StrPtr("Menu item deleted")}, nil
}

func menuItemFailure(log *zap.Logger, err error) (*model.MenuItemResponse, error) {
	if !isDomainError(err) {
		log.Error("menu item change failed", zap.Error(err))
		return nil, err
	}
	log.Warn("menu item change refused", zap.Error(err))
	return &model.MenuItemResponse{Success: false, Message: utils.StrPtr(err.Error())}, nil
}

func vendorFrom(ctx context.Context) (auth.Identity, bool) {
	identity, ok := auth.IdentityFrom(ctx)
	if !ok || !identity.IsVendor() {
		return auth.Identity{}, false
	}
	return identity, true
}
