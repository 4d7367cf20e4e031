package services

import (
	"context"

	"github.com/fipithx/ficore_backend/internal/core/domain"
	"github.com/fipithx/ficore_backend/internal/dto"
)

// CashflowSvcFacade defines the money-in/money-out service surface
type CashflowSvcFacade interface {
	// GetCashflow retrieves an entry the actor is allowed to see.
	GetCashflow(ctx context.Context, actor *domain.User, cashflowID string) (*domain.Cashflow, error)

	// ListCashflows lists the actor's entries; admins see everyone's.
	ListCashflows(ctx context.Context, actor *domain.User, req dto.ListCashflowsRequest) ([]domain.Cashflow, error)

	// CreateCashflow creates an entry, debiting the creation cost atomically.
	CreateCashflow(ctx context.Context, actor *domain.User, req dto.CreateCashflowRequest) (*domain.Cashflow, error)

	// UpdateCashflow updates an entry the actor owns (admins may update any).
	UpdateCashflow(ctx context.Context, actor *domain.User, cashflowID string, req dto.UpdateCashflowRequest) (*domain.Cashflow, error)

	// DeleteCashflow removes an entry the actor owns (admins may delete any).
	DeleteCashflow(ctx context.Context, actor *domain.User, cashflowID string) error

	// GenerateReceiptPDF renders a PDF receipt for a cashflow entry and
	// debits the receipt cost. Returns the PDF bytes and a suggested filename.
	GenerateReceiptPDF(ctx context.Context, actor *domain.User, cashflowID string) ([]byte, string, error)
}

// InventorySvcFacade defines the stock tracking service surface
type InventorySvcFacade interface {
	// GetItem retrieves an item the actor is allowed to see.
	GetItem(ctx context.Context, actor *domain.User, itemID string) (*domain.InventoryItem, error)

	// ListItems lists the actor's items; admins see everyone's.
	ListItems(ctx context.Context, actor *domain.User, limit, offset int) ([]domain.InventoryItem, error)

	// ListLowStock lists the actor's items at or below their restock threshold.
	ListLowStock(ctx context.Context, actor *domain.User, limit int) ([]domain.InventoryItem, error)

	// CreateItem adds an item, debiting the creation cost atomically.
	CreateItem(ctx context.Context, actor *domain.User, req dto.CreateInventoryItemRequest) (*domain.InventoryItem, error)

	// UpdateItem updates an item the actor owns (admins may update any).
	UpdateItem(ctx context.Context, actor *domain.User, itemID string, req dto.UpdateInventoryItemRequest) (*domain.InventoryItem, error)

	// DeleteItem removes an item the actor owns (admins may delete any).
	DeleteItem(ctx context.Context, actor *domain.User, itemID string) error
}
