package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReportPeriodRequest defines the period for a business report.
type ReportPeriodRequest struct {
	From time.Time `form:"from" time_format:"2006-01-02"`
	To   time.Time `form:"to" time_format:"2006-01-02"`
}

// ProfitLossReport summarises receipts against payments over a period.
type ProfitLossReport struct {
	UserID        string          `json:"userID"`
	From          time.Time       `json:"from"`
	To            time.Time       `json:"to"`
	TotalReceipts decimal.Decimal `json:"totalReceipts"`
	TotalPayments decimal.Decimal `json:"totalPayments"`
	NetCashflow   decimal.Decimal `json:"netCashflow"`
	GeneratedAt   time.Time       `json:"generatedAt"`
}

// DebtSummaryReport summarises outstanding debts both ways.
type DebtSummaryReport struct {
	UserID        string          `json:"userID"`
	TotalOwedToMe decimal.Decimal `json:"totalOwedToMe"`
	TotalIOwe     decimal.Decimal `json:"totalIOwe"`
	DebtorCount   int             `json:"debtorCount"`
	CreditorCount int             `json:"creditorCount"`
	GeneratedAt   time.Time       `json:"generatedAt"`
}

// InventoryReportLine is one stock line in an inventory report.
type InventoryReportLine struct {
	ItemName     string          `json:"itemName"`
	Qty          int             `json:"qty"`
	Unit         string          `json:"unit,omitempty"`
	BuyingPrice  decimal.Decimal `json:"buyingPrice"`
	SellingPrice decimal.Decimal `json:"sellingPrice"`
	StockValue   decimal.Decimal `json:"stockValue"`
	LowStock     bool            `json:"lowStock"`
}

// InventoryReport summarises stock levels and valuation.
type InventoryReport struct {
	UserID          string                `json:"userID"`
	Lines           []InventoryReportLine `json:"lines"`
	TotalStockValue decimal.Decimal       `json:"totalStockValue"`
	LowStockCount   int                   `json:"lowStockCount"`
	GeneratedAt     time.Time             `json:"generatedAt"`
}
