package domain

import "github.com/shopspring/decimal"

// InventoryItem is a stock line owned by a trader.
type InventoryItem struct {
	ItemID       string          `json:"itemID"`
	UserID       string          `json:"userID"`
	ItemName     string          `json:"itemName"`
	Qty          int             `json:"qty"`
	Unit         string          `json:"unit,omitempty"`
	BuyingPrice  decimal.Decimal `json:"buyingPrice"`
	SellingPrice decimal.Decimal `json:"sellingPrice"`
	Threshold    int             `json:"threshold"`
	AuditFields
}

// IsLowStock reports whether the item is at or below its reorder threshold.
func (i *InventoryItem) IsLowStock() bool {
	return i.Qty <= i.Threshold
}
