package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/fipithx/ficore_backend/internal/apperrors"
	"github.com/fipithx/ficore_backend/internal/core/domain"
	portsrepo "github.com/fipithx/ficore_backend/internal/core/ports/repositories"
	portssvc "github.com/fipithx/ficore_backend/internal/core/ports/services"
	"github.com/fipithx/ficore_backend/internal/dto"
)

// inventoryService implements the stock tracking operations.
type inventoryService struct {
	BaseService
	inventoryRepo portsrepo.InventoryRepositoryFacade
}

// NewInventoryService creates a new inventory service instance.
func NewInventoryService(inventoryRepo portsrepo.InventoryRepositoryFacade) portssvc.InventorySvcFacade {
	return &inventoryService{
		inventoryRepo: inventoryRepo,
	}
}

var _ portssvc.InventorySvcFacade = (*inventoryService)(nil)

func (s *inventoryService) getOwnedItem(ctx context.Context, actor *domain.User, itemID string) (*domain.InventoryItem, error) {
	item, err := s.inventoryRepo.FindItemByID(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("failed to find inventory item %s: %w", itemID, err)
	}
	if item.UserID != actor.UserID && !actor.IsAdmin() {
		return nil, fmt.Errorf("%w: inventory item belongs to another user", apperrors.ErrForbidden)
	}
	return item, nil
}

// GetItem retrieves an item the actor is allowed to see.
func (s *inventoryService) GetItem(ctx context.Context, actor *domain.User, itemID string) (*domain.InventoryItem, error) {
	return s.getOwnedItem(ctx, actor, itemID)
}

// ListItems lists the actor's items; admins see everyone's.
func (s *inventoryService) ListItems(ctx context.Context, actor *domain.User, limit, offset int) ([]domain.InventoryItem, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	ownerID := actor.UserID
	if actor.IsAdmin() {
		ownerID = ""
	}
	items, err := s.inventoryRepo.FindItems(ctx, ownerID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list inventory items: %w", err)
	}
	return items, nil
}

// ListLowStock lists the actor's items at or below their restock threshold.
func (s *inventoryService) ListLowStock(ctx context.Context, actor *domain.User, limit int) ([]domain.InventoryItem, error) {
	if limit <= 0 {
		limit = 20
	}

	ownerID := actor.UserID
	if actor.IsAdmin() {
		ownerID = ""
	}
	items, err := s.inventoryRepo.FindLowStockItems(ctx, ownerID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list low stock items: %w", err)
	}
	return items, nil
}

// CreateItem adds an item, debiting the creation cost in the same
// transaction as the insert.
func (s *inventoryService) CreateItem(ctx context.Context, actor *domain.User, req dto.CreateInventoryItemRequest) (*domain.InventoryItem, error) {
	if req.Qty < 0 || req.Threshold < 0 {
		return nil, fmt.Errorf("%w: quantity and threshold cannot be negative", apperrors.ErrValidation)
	}
	if req.BuyingPrice.IsNegative() || req.SellingPrice.IsNegative() {
		return nil, fmt.Errorf("%w: prices cannot be negative", apperrors.ErrValidation)
	}

	now := time.Now()
	item := domain.InventoryItem{
		ItemID:       uuid.NewString(),
		UserID:       actor.UserID,
		ItemName:     req.ItemName,
		Qty:          req.Qty,
		Unit:         req.Unit,
		BuyingPrice:  req.BuyingPrice,
		SellingPrice: req.SellingPrice,
		Threshold:    req.Threshold,
		AuditFields:  domain.NewAuditFields(actor.UserID, now),
	}

	charge := chargeFor(actor, domain.CostAddInventory, item.ItemID, "add_inventory", now)
	audit := domain.AuditLog{
		LogID:   uuid.NewString(),
		AdminID: actor.UserID,
		Action:  "add_inventory",
		Details: map[string]any{
			"item_id":   item.ItemID,
			"item_name": item.ItemName,
		},
		Timestamp: now,
	}

	if err := s.inventoryRepo.CreateItem(ctx, item, charge, audit); err != nil {
		s.LogError(ctx, err, "Failed to create inventory item", slog.String("user_id", actor.UserID))
		return nil, err
	}

	s.LogInfo(ctx, "Inventory item created", slog.String("item_id", item.ItemID))
	return &item, nil
}

// UpdateItem updates an item the actor owns.
func (s *inventoryService) UpdateItem(ctx context.Context, actor *domain.User, itemID string, req dto.UpdateInventoryItemRequest) (*domain.InventoryItem, error) {
	item, err := s.getOwnedItem(ctx, actor, itemID)
	if err != nil {
		return nil, err
	}

	if req.ItemName != nil {
		item.ItemName = *req.ItemName
	}
	if req.Qty != nil {
		if *req.Qty < 0 {
			return nil, fmt.Errorf("%w: quantity cannot be negative", apperrors.ErrValidation)
		}
		item.Qty = *req.Qty
	}
	if req.Unit != nil {
		item.Unit = *req.Unit
	}
	if req.BuyingPrice != nil {
		if req.BuyingPrice.IsNegative() {
			return nil, fmt.Errorf("%w: buying price cannot be negative", apperrors.ErrValidation)
		}
		item.BuyingPrice = *req.BuyingPrice
	}
	if req.SellingPrice != nil {
		if req.SellingPrice.IsNegative() {
			return nil, fmt.Errorf("%w: selling price cannot be negative", apperrors.ErrValidation)
		}
		item.SellingPrice = *req.SellingPrice
	}
	if req.Threshold != nil {
		if *req.Threshold < 0 {
			return nil, fmt.Errorf("%w: threshold cannot be negative", apperrors.ErrValidation)
		}
		item.Threshold = *req.Threshold
	}
	item.Touch(actor.UserID, time.Now())

	if err := s.inventoryRepo.UpdateItem(ctx, *item); err != nil {
		s.LogError(ctx, err, "Failed to update inventory item", slog.String("item_id", itemID))
		return nil, fmt.Errorf("failed to update inventory item: %w", err)
	}
	return item, nil
}

// DeleteItem removes an item the actor owns.
func (s *inventoryService) DeleteItem(ctx context.Context, actor *domain.User, itemID string) error {
	if _, err := s.getOwnedItem(ctx, actor, itemID); err != nil {
		return err
	}

	if err := s.inventoryRepo.DeleteItem(ctx, itemID); err != nil {
		s.LogError(ctx, err, "Failed to delete inventory item", slog.String("item_id", itemID))
		return fmt.Errorf("failed to delete inventory item: %w", err)
	}

	s.LogInfo(ctx, "Inventory item deleted", slog.String("item_id", itemID))
	return nil
}
