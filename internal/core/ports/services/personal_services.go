package services

import (
	"context"

	"github.com/fipithx/ficore_backend/internal/core/domain"
	"github.com/fipithx/ficore_backend/internal/dto"
)

// PersonalOwner identifies the caller of a personal-finance tool: the
// authenticated user, or an anonymous session when UserID is empty.
type PersonalOwner struct {
	UserID    string
	SessionID string
}

// BudgetSvcFacade defines the budget calculator service surface
type BudgetSvcFacade interface {
	// CalculateBudget computes and persists a budget submission.
	CalculateBudget(ctx context.Context, owner PersonalOwner, req dto.BudgetRequest) (*dto.BudgetResponse, error)

	// BudgetHistory lists the owner's saved budgets, newest first.
	BudgetHistory(ctx context.Context, owner PersonalOwner, limit int) ([]domain.Budget, error)

	// DeleteBudget removes one of the owner's saved budgets.
	DeleteBudget(ctx context.Context, owner PersonalOwner, budgetID string) error
}

// BillSvcFacade defines the bill planner service surface
type BillSvcFacade interface {
	// CreateBill adds a bill for the owner.
	CreateBill(ctx context.Context, owner PersonalOwner, req dto.CreateBillRequest) (*domain.Bill, error)

	// ListBills lists the owner's bills ordered by due date.
	ListBills(ctx context.Context, owner PersonalOwner, status domain.BillStatus, limit int) ([]domain.Bill, error)

	// UpdateBill updates one of the owner's bills, advancing the due date
	// when a recurring bill is marked paid.
	UpdateBill(ctx context.Context, owner PersonalOwner, billID string, req dto.UpdateBillRequest) (*domain.Bill, error)

	// DeleteBill removes one of the owner's bills.
	DeleteBill(ctx context.Context, owner PersonalOwner, billID string) error

	// MarkOverdue flips unpaid bills past their due date to overdue.
	MarkOverdue(ctx context.Context) (int64, error)
}

// NetWorthSvcFacade defines the net worth calculator service surface
type NetWorthSvcFacade interface {
	// CalculateNetWorth computes and persists a net worth snapshot with
	// its earned badges.
	CalculateNetWorth(ctx context.Context, owner PersonalOwner, req dto.NetWorthRequest) (*dto.NetWorthResponse, error)

	// NetWorthHistory lists the owner's snapshots, newest first.
	NetWorthHistory(ctx context.Context, owner PersonalOwner, limit int) ([]domain.NetWorthRecord, error)
}

// EmergencyFundSvcFacade defines the emergency fund planner service surface
type EmergencyFundSvcFacade interface {
	// PlanEmergencyFund computes and persists an emergency fund plan with
	// its earned badges.
	PlanEmergencyFund(ctx context.Context, owner PersonalOwner, req dto.EmergencyFundRequest) (*dto.EmergencyFundResponse, error)

	// FundHistory lists the owner's plans, newest first.
	FundHistory(ctx context.Context, owner PersonalOwner, limit int) ([]domain.EmergencyFund, error)
}

// FinancialHealthSvcFacade defines the financial health scorer service surface
type FinancialHealthSvcFacade interface {
	// ScoreFinancialHealth computes and persists a health score, including
	// how the score ranks against all stored scores.
	ScoreFinancialHealth(ctx context.Context, owner PersonalOwner, req dto.HealthScoreRequest) (*dto.HealthScoreResponse, error)

	// ScoreHistory lists the owner's scores, newest first.
	ScoreHistory(ctx context.Context, owner PersonalOwner, limit int) ([]domain.FinancialHealthScore, error)
}

// QuizSvcFacade defines the personality quiz service surface
type QuizSvcFacade interface {
	// SubmitQuiz scores a quiz submission and persists the result.
	SubmitQuiz(ctx context.Context, owner PersonalOwner, req dto.QuizRequest) (*dto.QuizResponse, error)

	// QuizHistory lists the owner's results, newest first.
	QuizHistory(ctx context.Context, owner PersonalOwner, limit int) ([]domain.QuizResult, error)
}
