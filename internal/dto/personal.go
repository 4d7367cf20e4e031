package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/fipithx/ficore_backend/internal/core/domain"
)

// BudgetRequest defines a budget calculator submission.
type BudgetRequest struct {
	Income        decimal.Decimal `json:"income" binding:"required"`
	Housing       decimal.Decimal `json:"housing"`
	Food          decimal.Decimal `json:"food"`
	Transport     decimal.Decimal `json:"transport"`
	Dependents    decimal.Decimal `json:"dependents"`
	Miscellaneous decimal.Decimal `json:"miscellaneous"`
	Others        decimal.Decimal `json:"others"`
	SavingsGoal   decimal.Decimal `json:"savingsGoal"`
}

// BudgetResponse returns the computed budget outcome.
type BudgetResponse struct {
	BudgetID       string          `json:"budgetID"`
	Income         decimal.Decimal `json:"income"`
	FixedExpenses  decimal.Decimal `json:"fixedExpenses"`
	SavingsGoal    decimal.Decimal `json:"savingsGoal"`
	SurplusDeficit decimal.Decimal `json:"surplusDeficit"`
	CreatedAt      time.Time       `json:"createdAt"`
}

// CreateBillRequest defines a new bill.
type CreateBillRequest struct {
	Name      string          `json:"name" binding:"required,max=100"`
	Amount    decimal.Decimal `json:"amount" binding:"required"`
	DueDate   time.Time       `json:"dueDate" binding:"required" time_format:"2006-01-02"`
	Frequency string          `json:"frequency" binding:"required,oneof=one-off weekly monthly quarterly"`
	Category  string          `json:"category" binding:"omitempty,max=50"`
	SendEmail bool            `json:"sendEmail"`
}

// UpdateBillRequest defines the updatable fields of a bill.
type UpdateBillRequest struct {
	Name      *string          `json:"name" binding:"omitempty,max=100"`
	Amount    *decimal.Decimal `json:"amount"`
	DueDate   *time.Time       `json:"dueDate" time_format:"2006-01-02"`
	Frequency *string          `json:"frequency" binding:"omitempty,oneof=one-off weekly monthly quarterly"`
	Category  *string          `json:"category" binding:"omitempty,max=50"`
	Status    *string          `json:"status" binding:"omitempty,oneof=unpaid paid pending overdue"`
	SendEmail *bool            `json:"sendEmail"`
}

// BillResponse defines a bill returned by the API.
type BillResponse struct {
	BillID    string          `json:"billID"`
	Name      string          `json:"name"`
	Amount    decimal.Decimal `json:"amount"`
	DueDate   time.Time       `json:"dueDate"`
	Frequency string          `json:"frequency"`
	Category  string          `json:"category,omitempty"`
	Status    string          `json:"status"`
	SendEmail bool            `json:"sendEmail"`
	CreatedAt time.Time       `json:"createdAt"`
}

// NetWorthRequest defines a net worth calculator submission.
type NetWorthRequest struct {
	CashSavings decimal.Decimal `json:"cashSavings"`
	Investments decimal.Decimal `json:"investments"`
	Property    decimal.Decimal `json:"property"`
	Loans       decimal.Decimal `json:"loans"`
}

// NetWorthResponse returns the computed net worth snapshot.
type NetWorthResponse struct {
	RecordID         string          `json:"recordID"`
	TotalAssets      decimal.Decimal `json:"totalAssets"`
	TotalLiabilities decimal.Decimal `json:"totalLiabilities"`
	NetWorth         decimal.Decimal `json:"netWorth"`
	Badges           []string        `json:"badges"`
	CreatedAt        time.Time       `json:"createdAt"`
}

// EmergencyFundRequest defines an emergency fund planner submission.
type EmergencyFundRequest struct {
	MonthlyExpenses decimal.Decimal `json:"monthlyExpenses" binding:"required"`
	MonthlyIncome   decimal.Decimal `json:"monthlyIncome"`
	RiskTolerance   string          `json:"riskTolerance" binding:"omitempty,oneof=low medium high"`
	Dependents      int             `json:"dependents" binding:"gte=0"`
	CurrentSavings  decimal.Decimal `json:"currentSavings"`
	TimelineMonths  int             `json:"timelineMonths" binding:"required,gt=0"`
}

// EmergencyFundResponse returns the computed plan.
type EmergencyFundResponse struct {
	FundID            string          `json:"fundID"`
	RecommendedMonths int             `json:"recommendedMonths"`
	TargetAmount      decimal.Decimal `json:"targetAmount"`
	SavingsGap        decimal.Decimal `json:"savingsGap"`
	MonthlySavings    decimal.Decimal `json:"monthlySavings"`
	PercentOfIncome   *float64        `json:"percentOfIncome,omitempty"`
	Badges            []string        `json:"badges"`
	CreatedAt         time.Time       `json:"createdAt"`
}

// HealthScoreRequest defines a financial health scorer submission.
type HealthScoreRequest struct {
	FirstName    string          `json:"firstName" binding:"omitempty,max=50"`
	Email        string          `json:"email" binding:"omitempty,email"`
	UserType     string          `json:"userType" binding:"omitempty,oneof=individual business"`
	Income       decimal.Decimal `json:"income" binding:"required"`
	Expenses     decimal.Decimal `json:"expenses"`
	Debt         decimal.Decimal `json:"debt"`
	InterestRate decimal.Decimal `json:"interestRate"`
}

// HealthScoreResponse returns the computed score and its rank against all
// stored submissions.
type HealthScoreResponse struct {
	ScoreID        string   `json:"scoreID"`
	Score          int      `json:"score"`
	Status         string   `json:"status"`
	DebtToIncome   float64  `json:"debtToIncome"`
	SavingsRate    float64  `json:"savingsRate"`
	InterestBurden float64  `json:"interestBurden"`
	Badges         []string `json:"badges"`
	// Rank is the percentage of stored scores at or below this one.
	Rank      float64   `json:"rank"`
	CreatedAt time.Time `json:"createdAt"`
}

// QuizRequest defines a personality quiz submission of exactly ten answers.
type QuizRequest struct {
	Answers []string `json:"answers" binding:"required,len=10,dive,oneof=Yes No"`
}

// QuizResponse returns the scored quiz result.
type QuizResponse struct {
	ResultID    string    `json:"resultID"`
	Score       int       `json:"score"`
	Personality string    `json:"personality"`
	Badges      []string  `json:"badges"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ToBillResponse converts a domain.Bill to BillResponse DTO.
func ToBillResponse(b *domain.Bill) BillResponse {
	return BillResponse{
		BillID:    b.BillID,
		Name:      b.Name,
		Amount:    b.Amount,
		DueDate:   b.DueDate,
		Frequency: string(b.Frequency),
		Category:  b.Category,
		Status:    string(b.Status),
		SendEmail: b.SendEmail,
		CreatedAt: b.CreatedAt,
	}
}

// ToBillResponses converts a slice of domain.Bill.
func ToBillResponses(bills []domain.Bill) []BillResponse {
	responses := make([]BillResponse, len(bills))
	for i := range bills {
		responses[i] = ToBillResponse(&bills[i])
	}
	return responses
}
