package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Net-worth badge keys. Localized names come from the translation tables.
const (
	BadgeWealthBuilder   = "net_worth_badge_wealth_builder"
	BadgeDebtFree        = "net_worth_badge_debt_free"
	BadgeSavingsChampion = "net_worth_badge_savings_champion"
	BadgePropertyMogul   = "net_worth_badge_property_mogul"
)

// NetWorthRecord is one saved net-worth calculator submission.
type NetWorthRecord struct {
	RecordID         string          `json:"recordID"`
	UserID           string          `json:"userID,omitempty"`
	SessionID        string          `json:"sessionID,omitempty"`
	CashSavings      decimal.Decimal `json:"cashSavings"`
	Investments      decimal.Decimal `json:"investments"`
	Property         decimal.Decimal `json:"property"`
	Loans            decimal.Decimal `json:"loans"`
	TotalAssets      decimal.Decimal `json:"totalAssets"`
	TotalLiabilities decimal.Decimal `json:"totalLiabilities"`
	NetWorth         decimal.Decimal `json:"netWorth"`
	Badges           []string        `json:"badges"`
	CreatedAt        time.Time       `json:"createdAt"`
}
