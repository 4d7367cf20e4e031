package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Budget is one saved budget-calculator submission. Either UserID or
// SessionID identifies the owner; anonymous submissions carry only SessionID.
type Budget struct {
	BudgetID       string          `json:"budgetID"`
	UserID         string          `json:"userID,omitempty"`
	SessionID      string          `json:"sessionID,omitempty"`
	Income         decimal.Decimal `json:"income"`
	Housing        decimal.Decimal `json:"housing"`
	Food           decimal.Decimal `json:"food"`
	Transport      decimal.Decimal `json:"transport"`
	Dependents     decimal.Decimal `json:"dependents"`
	Miscellaneous  decimal.Decimal `json:"miscellaneous"`
	Others         decimal.Decimal `json:"others"`
	FixedExpenses  decimal.Decimal `json:"fixedExpenses"`
	SavingsGoal    decimal.Decimal `json:"savingsGoal"`
	SurplusDeficit decimal.Decimal `json:"surplusDeficit"`
	CreatedAt      time.Time       `json:"createdAt"`
}
