package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/fipithx/ficore_backend/internal/apperrors"
	"github.com/fipithx/ficore_backend/internal/core/domain"
	portsrepo "github.com/fipithx/ficore_backend/internal/core/ports/repositories"
	portssvc "github.com/fipithx/ficore_backend/internal/core/ports/services"
	"github.com/fipithx/ficore_backend/internal/dto"
	"github.com/fipithx/ficore_backend/internal/utils/finance"
)

// repoOwner converts the service-level owner identity to the repository form.
func repoOwner(owner portssvc.PersonalOwner) portsrepo.Owner {
	return portsrepo.Owner{UserID: owner.UserID, SessionID: owner.SessionID}
}

// trackTool appends a tool usage entry; usage tracking is best-effort and
// never fails the operation itself.
func trackTool(ctx context.Context, s *BaseService, usageRepo portsrepo.ToolUsageRepository, owner portssvc.PersonalOwner, toolName, action string) {
	usage := domain.ToolUsage{
		UsageID:   uuid.NewString(),
		ToolName:  toolName,
		UserID:    owner.UserID,
		SessionID: owner.SessionID,
		Action:    action,
		Timestamp: time.Now(),
	}
	if err := usageRepo.SaveToolUsage(ctx, usage); err != nil {
		s.LogDebug(ctx, "Failed to track tool usage", slog.String("tool", toolName), slog.String("error", err.Error()))
	}
}

// budgetService implements the budget calculator.
type budgetService struct {
	BaseService
	personalRepo portsrepo.BudgetRepository
	usageRepo    portsrepo.ToolUsageRepository
}

// NewBudgetService creates a new budget service instance.
func NewBudgetService(personalRepo portsrepo.BudgetRepository, usageRepo portsrepo.ToolUsageRepository) portssvc.BudgetSvcFacade {
	return &budgetService{
		personalRepo: personalRepo,
		usageRepo:    usageRepo,
	}
}

var _ portssvc.BudgetSvcFacade = (*budgetService)(nil)

// CalculateBudget computes and persists a budget submission.
func (s *budgetService) CalculateBudget(ctx context.Context, owner portssvc.PersonalOwner, req dto.BudgetRequest) (*dto.BudgetResponse, error) {
	if req.Income.IsNegative() {
		return nil, fmt.Errorf("%w: income cannot be negative", apperrors.ErrValidation)
	}

	result := finance.ComputeBudget(finance.BudgetInput{
		Income:        req.Income,
		Housing:       req.Housing,
		Food:          req.Food,
		Transport:     req.Transport,
		Dependents:    req.Dependents,
		Miscellaneous: req.Miscellaneous,
		Others:        req.Others,
		SavingsGoal:   req.SavingsGoal,
	})

	now := time.Now()
	budget := domain.Budget{
		BudgetID:       uuid.NewString(),
		UserID:         owner.UserID,
		SessionID:      owner.SessionID,
		Income:         req.Income,
		Housing:        req.Housing,
		Food:           req.Food,
		Transport:      req.Transport,
		Dependents:     req.Dependents,
		Miscellaneous:  req.Miscellaneous,
		Others:         req.Others,
		FixedExpenses:  result.FixedExpenses,
		SavingsGoal:    req.SavingsGoal,
		SurplusDeficit: result.SurplusDeficit,
		CreatedAt:      now,
	}

	if err := s.personalRepo.SaveBudget(ctx, budget); err != nil {
		s.LogError(ctx, err, "Failed to save budget")
		return nil, fmt.Errorf("failed to save budget: %w", err)
	}

	trackTool(ctx, &s.BaseService, s.usageRepo, owner, "budget", "calculate")

	return &dto.BudgetResponse{
		BudgetID:       budget.BudgetID,
		Income:         budget.Income,
		FixedExpenses:  budget.FixedExpenses,
		SavingsGoal:    budget.SavingsGoal,
		SurplusDeficit: budget.SurplusDeficit,
		CreatedAt:      budget.CreatedAt,
	}, nil
}

// BudgetHistory lists the owner's saved budgets, newest first.
func (s *budgetService) BudgetHistory(ctx context.Context, owner portssvc.PersonalOwner, limit int) ([]domain.Budget, error) {
	if limit <= 0 {
		limit = 20
	}
	budgets, err := s.personalRepo.FindBudgets(ctx, repoOwner(owner), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list budgets: %w", err)
	}
	return budgets, nil
}

// DeleteBudget removes one of the owner's saved budgets.
func (s *budgetService) DeleteBudget(ctx context.Context, owner portssvc.PersonalOwner, budgetID string) error {
	if err := s.personalRepo.DeleteBudget(ctx, repoOwner(owner), budgetID); err != nil {
		return fmt.Errorf("failed to delete budget: %w", err)
	}
	return nil
}
