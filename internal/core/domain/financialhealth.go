package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// HealthStatus bands the financial health score.
type HealthStatus string

const (
	HealthExcellent        HealthStatus = "excellent"
	HealthGood             HealthStatus = "good"
	HealthNeedsImprovement HealthStatus = "needs_improvement"
)

// Financial-health badge keys.
const (
	BadgeFinancialStar = "financial_health_badge_financial_star"
	BadgeDebtManager   = "financial_health_badge_debt_manager"
	BadgeSavingsPro    = "financial_health_badge_savings_pro"
	BadgeInterestFree  = "financial_health_badge_interest_free"
)

// FinancialHealthScore is one saved financial-health submission with its
// derived metrics. All ratio metrics are percentages.
type FinancialHealthScore struct {
	ScoreID        string          `json:"scoreID"`
	UserID         string          `json:"userID,omitempty"`
	SessionID      string          `json:"sessionID,omitempty"`
	FirstName      string          `json:"firstName,omitempty"`
	Email          string          `json:"email,omitempty"`
	UserType       string          `json:"userType,omitempty"`
	Income         decimal.Decimal `json:"income"`
	Expenses       decimal.Decimal `json:"expenses"`
	Debt           decimal.Decimal `json:"debt"`
	InterestRate   decimal.Decimal `json:"interestRate"`
	DebtToIncome   float64         `json:"debtToIncome"`
	SavingsRate    float64         `json:"savingsRate"`
	InterestBurden float64         `json:"interestBurden"`
	Score          int             `json:"score"` // 0..100
	Status         HealthStatus    `json:"status"`
	Badges         []string        `json:"badges"`
	CreatedAt      time.Time       `json:"createdAt"`
}
