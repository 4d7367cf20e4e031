package repositories

import (
	"context"
	"time"

	"github.com/fipithx/ficore_backend/internal/core/domain"
)

// Owner identifies whose personal-finance rows to read: a logged-in user
// or an anonymous session. Exactly one field should be set.
type Owner struct {
	UserID    string
	SessionID string
}

// BudgetRepository defines operations for saved budgets
type BudgetRepository interface {
	// SaveBudget persists a budget submission.
	SaveBudget(ctx context.Context, budget domain.Budget) error

	// FindBudgets retrieves an owner's budgets, newest first.
	FindBudgets(ctx context.Context, owner Owner, limit int) ([]domain.Budget, error)

	// DeleteBudget removes a budget belonging to the owner.
	DeleteBudget(ctx context.Context, owner Owner, budgetID string) error
}

// BillRepository defines operations for bills
type BillRepository interface {
	// SaveBill persists a new bill.
	SaveBill(ctx context.Context, bill domain.Bill) error

	// FindBillByID retrieves a specific bill for the owner.
	FindBillByID(ctx context.Context, owner Owner, billID string) (*domain.Bill, error)

	// FindBills retrieves an owner's bills ordered by due date.
	FindBills(ctx context.Context, owner Owner, status domain.BillStatus, limit int) ([]domain.Bill, error)

	// UpdateBill updates a bill belonging to the owner.
	UpdateBill(ctx context.Context, owner Owner, bill domain.Bill) error

	// DeleteBill removes a bill belonging to the owner.
	DeleteBill(ctx context.Context, owner Owner, billID string) error

	// MarkOverdueBills flips unpaid bills past their due date to overdue and
	// returns how many rows changed.
	MarkOverdueBills(ctx context.Context, now time.Time) (int64, error)
}

// NetWorthRepository defines operations for net worth snapshots
type NetWorthRepository interface {
	// SaveNetWorth persists a net worth submission.
	SaveNetWorth(ctx context.Context, record domain.NetWorthRecord) error

	// FindNetWorthRecords retrieves an owner's snapshots, newest first.
	FindNetWorthRecords(ctx context.Context, owner Owner, limit int) ([]domain.NetWorthRecord, error)
}

// EmergencyFundRepository defines operations for emergency fund plans
type EmergencyFundRepository interface {
	// SaveEmergencyFund persists an emergency fund plan.
	SaveEmergencyFund(ctx context.Context, fund domain.EmergencyFund) error

	// FindEmergencyFunds retrieves an owner's plans, newest first.
	FindEmergencyFunds(ctx context.Context, owner Owner, limit int) ([]domain.EmergencyFund, error)
}

// HealthScoreRepository defines operations for financial health scores
type HealthScoreRepository interface {
	// SaveHealthScore persists a health score submission.
	SaveHealthScore(ctx context.Context, score domain.FinancialHealthScore) error

	// FindHealthScores retrieves an owner's scores, newest first.
	FindHealthScores(ctx context.Context, owner Owner, limit int) ([]domain.FinancialHealthScore, error)

	// AllScores returns every stored score value, for percentile comparison.
	AllScores(ctx context.Context) ([]float64, error)
}

// QuizRepository defines operations for quiz results
type QuizRepository interface {
	// SaveQuizResult persists a quiz submission.
	SaveQuizResult(ctx context.Context, result domain.QuizResult) error

	// FindQuizResults retrieves an owner's results, newest first.
	FindQuizResults(ctx context.Context, owner Owner, limit int) ([]domain.QuizResult, error)
}

// PersonalRepositoryFacade combines the personal-finance repository interfaces
type PersonalRepositoryFacade interface {
	BudgetRepository
	BillRepository
	NetWorthRepository
	EmergencyFundRepository
	HealthScoreRepository
	QuizRepository
}
