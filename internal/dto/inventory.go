package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/fipithx/ficore_backend/internal/core/domain"
)

// CreateInventoryItemRequest defines the data for a new stock item.
type CreateInventoryItemRequest struct {
	ItemName     string          `json:"itemName" binding:"required,max=100"`
	Qty          int             `json:"qty" binding:"gte=0"`
	Unit         string          `json:"unit" binding:"omitempty,max=20"`
	BuyingPrice  decimal.Decimal `json:"buyingPrice"`
	SellingPrice decimal.Decimal `json:"sellingPrice"`
	Threshold    int             `json:"threshold" binding:"gte=0"`
}

// UpdateInventoryItemRequest defines the updatable fields of a stock item.
type UpdateInventoryItemRequest struct {
	ItemName     *string          `json:"itemName" binding:"omitempty,max=100"`
	Qty          *int             `json:"qty" binding:"omitempty,gte=0"`
	Unit         *string          `json:"unit" binding:"omitempty,max=20"`
	BuyingPrice  *decimal.Decimal `json:"buyingPrice"`
	SellingPrice *decimal.Decimal `json:"sellingPrice"`
	Threshold    *int             `json:"threshold" binding:"omitempty,gte=0"`
}

// InventoryItemResponse defines a stock item returned by the API.
type InventoryItemResponse struct {
	ItemID       string          `json:"itemID"`
	UserID       string          `json:"userID"`
	ItemName     string          `json:"itemName"`
	Qty          int             `json:"qty"`
	Unit         string          `json:"unit,omitempty"`
	BuyingPrice  decimal.Decimal `json:"buyingPrice"`
	SellingPrice decimal.Decimal `json:"sellingPrice"`
	Threshold    int             `json:"threshold"`
	LowStock     bool            `json:"lowStock"`
	CreatedAt    time.Time       `json:"createdAt"`
}

// ListInventoryResponse wraps a list of stock items.
type ListInventoryResponse struct {
	Items []InventoryItemResponse `json:"items"`
}

// ToInventoryItemResponse converts a domain.InventoryItem to its DTO.
func ToInventoryItemResponse(item *domain.InventoryItem) InventoryItemResponse {
	return InventoryItemResponse{
		ItemID:       item.ItemID,
		UserID:       item.UserID,
		ItemName:     item.ItemName,
		Qty:          item.Qty,
		Unit:         item.Unit,
		BuyingPrice:  item.BuyingPrice,
		SellingPrice: item.SellingPrice,
		Threshold:    item.Threshold,
		LowStock:     item.IsLowStock(),
		CreatedAt:    item.CreatedAt,
	}
}

// ToListInventoryResponse converts a slice of domain.InventoryItem.
func ToListInventoryResponse(items []domain.InventoryItem) ListInventoryResponse {
	responses := make([]InventoryItemResponse, len(items))
	for i := range items {
		responses[i] = ToInventoryItemResponse(&items[i])
	}
	return ListInventoryResponse{Items: responses}
}
