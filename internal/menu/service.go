package menu

import (
	"context"
	"errors"
	"strings"

	"foodcart-be/internal/cart"
	"foodcart-be/internal/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Service interface {
	ListVendors(ctx context.Context) ([]Vendor, error)
	GetVendor(ctx context.Context, id string) (*Vendor, error)
	GetMenu(ctx context.Context, vendorID string) ([]MenuItem, error)
	GetMenuItem(ctx context.Context, id string) (*MenuItem, error)
	CartItem(ctx context.Context, id string) (cart.MenuItem, error)
	GetMenuItemsByIDs(ctx context.Context, ids []string) (map[string]MenuItem, error)
	CreateMenuItem(ctx context.Context, vendorID string, input NewMenuItemInput) (*MenuItem, error)
	UpdateMenuItem(ctx context.Context, vendorID string, input UpdateMenuItemInput) (*MenuItem, error)
	DeleteMenuItem(ctx context.Context, vendorID, id string) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) ListVendors(ctx context.Context) ([]Vendor, error) {
	return s.repo.ListVendors(ctx, true)
}

func (s *service) GetVendor(ctx context.Context, id string) (*Vendor, error) {
	return s.repo.GetVendor(ctx, id)
}

// GetMenu returns the available items of a vendor.
func (s *service) GetMenu(ctx context.Context, vendorID string) ([]MenuItem, error) {
	if _, err := s.repo.GetVendor(ctx, vendorID); err != nil {
		return nil, err
	}
	return s.repo.ListMenuItems(ctx, vendorID, true)
}

func (s *service) GetMenuItem(ctx context.Context, id string) (*MenuItem, error) {
	return s.repo.GetMenuItem(ctx, id)
}

// CartItem looks up a menu item and returns it in the shape the cart accepts.
func (s *service) CartItem(ctx context.Context, id string) (cart.MenuItem, error) {
	item, err := s.repo.GetMenuItem(ctx, id)
	if err != nil {
		return cart.MenuItem{}, err
	}

	if !item.Orderable() {
		logger.FromCtx(ctx).Info("menu item not orderable",
			zap.String("menu_item_id", id),
			zap.Bool("is_available", item.IsAvailable),
			zap.Bool("vendor_open", item.VendorOpen),
		)
		return cart.MenuItem{}, ErrMenuItemUnavailable
	}

	return item.ToCartItem(), nil
}

func (s *service) GetMenuItemsByIDs(ctx context.Context, ids []string) (map[string]MenuItem, error) {
	items, err := s.repo.GetMenuItemsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]MenuItem, len(items))
	for _, it := range items {
		byID[it.ID] = it
	}
	return byID, nil
}

func (s *service) CreateMenuItem(ctx context.Context, vendorID string, input NewMenuItemInput) (*MenuItem, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "CreateMenuItem"),
		zap.String("vendor_id", vendorID),
	)

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrNameRequired
	}
	// Prices are stored to the paisa; validate what will be stored.
	price := input.Price.Round(2)
	if !price.IsPositive() {
		return nil, ErrInvalidPrice
	}

	vendor, err := s.repo.GetVendor(ctx, vendorID)
	if err != nil {
		return nil, err
	}

	available := true
	if input.IsAvailable != nil {
		available = *input.IsAvailable
	}

	item := &MenuItem{
		ID:          uuid.NewString(),
		VendorID:    vendor.ID,
		VendorName:  vendor.Name,
		VendorOpen:  vendor.IsOpen,
		Name:        name,
		Description: strings.TrimSpace(input.Description),
		Price:       price,
		IsAvailable: available,
	}

	if err := s.repo.CreateMenuItem(ctx, item); err != nil {
		log.Error("failed to create menu item", zap.Error(err))
		return nil, err
	}

	log.Info("menu item created", zap.String("menu_item_id", item.ID))
	return item, nil
}

func (s *service) UpdateMenuItem(ctx context.Context, vendorID string, input UpdateMenuItemInput) (*MenuItem, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "UpdateMenuItem"),
		zap.String("vendor_id", vendorID),
		zap.String("menu_item_id", input.ID),
	)

	if !input.HasChanges() {
		return nil, ErrNoChanges
	}

	item, err := s.repo.GetMenuItem(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if item.VendorID != vendorID {
		log.Warn("vendor tried to update another vendor's item", zap.String("owner_id", item.VendorID))
		return nil, ErrForbidden
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, ErrNameRequired
		}
		item.Name = name
	}
	if input.Description != nil {
		item.Description = strings.TrimSpace(*input.Description)
	}
	if input.Price != nil {
		price := input.Price.Round(2)
		if !price.IsPositive() {
			return nil, ErrInvalidPrice
		}
		item.Price = price
	}
	if input.IsAvailable != nil {
		item.IsAvailable = *input.IsAvailable
	}

	if err := s.repo.UpdateMenuItem(ctx, item); err != nil {
		log.Error("failed to update menu item", zap.Error(err))
		return nil, err
	}

	log.Info("menu item updated")
	return item, nil
}

func (s *service) DeleteMenuItem(ctx context.Context, vendorID, id string) error {
	item, err := s.repo.GetMenuItem(ctx, id)
	if err != nil {
		return err
	}
	if item.VendorID != vendorID {
		return ErrForbidden
	}

	if err := s.repo.DeleteMenuItem(ctx, id, vendorID); err != nil {
		if !errors.Is(err, ErrMenuItemNotFound) {
			logger.FromCtx(ctx).Error("failed to delete menu item",
				zap.String("menu_item_id", id),
				zap.Error(err),
			)
		}
		return err
	}
	return nil
}
