package repositories

import (
	"context"

	"github.com/fipithx/ficore_backend/internal/core/domain"
)

// InventoryReader defines read operations for inventory items
type InventoryReader interface {
	// FindItemByID retrieves a specific inventory item.
	FindItemByID(ctx context.Context, itemID string) (*domain.InventoryItem, error)

	// FindItems retrieves inventory items for a user, newest first.
	// An empty userID returns items across all users.
	FindItems(ctx context.Context, userID string, limit int, offset int) ([]domain.InventoryItem, error)

	// FindLowStockItems retrieves items whose quantity is at or below their threshold.
	FindLowStockItems(ctx context.Context, userID string, limit int) ([]domain.InventoryItem, error)
}

// InventoryWriter defines write operations for inventory items
type InventoryWriter interface {
	// CreateItem persists a new inventory item. A non-nil charge debits the
	// user in the same transaction.
	CreateItem(ctx context.Context, item domain.InventoryItem, charge *domain.CoinTransaction, audit domain.AuditLog) error

	// UpdateItem updates an existing inventory item.
	UpdateItem(ctx context.Context, item domain.InventoryItem) error

	// DeleteItem removes an inventory item.
	DeleteItem(ctx context.Context, itemID string) error
}

// InventoryRepositoryFacade combines all inventory-related repository interfaces
type InventoryRepositoryFacade interface {
	InventoryReader
	InventoryWriter
}
