package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Emergency-fund badge keys.
const (
	BadgePlanner     = "emergency_fund_badge_planner"
	BadgeProtector   = "emergency_fund_badge_protector"
	BadgeSteadySaver = "emergency_fund_badge_steady_saver"
	BadgeFundMaster  = "emergency_fund_badge_fund_master"
)

// RiskTolerance feeds the recommended-months heuristic.
type RiskTolerance string

const (
	RiskLow    RiskTolerance = "low"
	RiskMedium RiskTolerance = "medium"
	RiskHigh   RiskTolerance = "high"
)

// IsValid reports whether r is a known risk tolerance band.
func (r RiskTolerance) IsValid() bool {
	switch r {
	case RiskLow, RiskMedium, RiskHigh:
		return true
	}
	return false
}

// EmergencyFund is one saved emergency-fund calculator submission.
type EmergencyFund struct {
	FundID            string          `json:"fundID"`
	UserID            string          `json:"userID,omitempty"`
	SessionID         string          `json:"sessionID,omitempty"`
	MonthlyExpenses   decimal.Decimal `json:"monthlyExpenses"`
	MonthlyIncome     decimal.Decimal `json:"monthlyIncome"`
	RiskTolerance     RiskTolerance   `json:"riskTolerance"`
	Dependents        int             `json:"dependents"`
	CurrentSavings    decimal.Decimal `json:"currentSavings"`
	TimelineMonths    int             `json:"timelineMonths"`
	RecommendedMonths int             `json:"recommendedMonths"`
	TargetAmount      decimal.Decimal `json:"targetAmount"`
	SavingsGap        decimal.Decimal `json:"savingsGap"`
	MonthlySavings    decimal.Decimal `json:"monthlySavings"`
	PercentOfIncome   *float64        `json:"percentOfIncome,omitempty"`
	Badges            []string        `json:"badges"`
	CreatedAt         time.Time       `json:"createdAt"`
}
