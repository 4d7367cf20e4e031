package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/fipithx/ficore_backend/internal/apperrors"
	"github.com/fipithx/ficore_backend/internal/core/domain"
	portsrepo "github.com/fipithx/ficore_backend/internal/core/ports/repositories"
	portssvc "github.com/fipithx/ficore_backend/internal/core/ports/services"
	"github.com/fipithx/ficore_backend/internal/dto"
	"github.com/fipithx/ficore_backend/internal/utils/finance"
)

// emergencyFundService implements the emergency fund planner.
type emergencyFundService struct {
	BaseService
	fundRepo  portsrepo.EmergencyFundRepository
	usageRepo portsrepo.ToolUsageRepository
}

// NewEmergencyFundService creates a new emergency fund service instance.
func NewEmergencyFundService(fundRepo portsrepo.EmergencyFundRepository, usageRepo portsrepo.ToolUsageRepository) portssvc.EmergencyFundSvcFacade {
	return &emergencyFundService{
		fundRepo:  fundRepo,
		usageRepo: usageRepo,
	}
}

var _ portssvc.EmergencyFundSvcFacade = (*emergencyFundService)(nil)

// PlanEmergencyFund computes and persists an emergency fund plan with its
// earned badges.
func (s *emergencyFundService) PlanEmergencyFund(ctx context.Context, owner portssvc.PersonalOwner, req dto.EmergencyFundRequest) (*dto.EmergencyFundResponse, error) {
	if req.MonthlyExpenses.IsNegative() || req.MonthlyIncome.IsNegative() || req.CurrentSavings.IsNegative() {
		return nil, fmt.Errorf("%w: monetary values cannot be negative", apperrors.ErrValidation)
	}
	risk := domain.RiskTolerance(req.RiskTolerance)
	if req.RiskTolerance != "" && !risk.IsValid() {
		return nil, fmt.Errorf("%w: invalid risk tolerance %q", apperrors.ErrValidation, req.RiskTolerance)
	}

	result, err := finance.ComputeEmergencyFund(finance.EmergencyFundInput{
		MonthlyExpenses: req.MonthlyExpenses,
		MonthlyIncome:   req.MonthlyIncome,
		RiskTolerance:   risk,
		Dependents:      req.Dependents,
		CurrentSavings:  req.CurrentSavings,
		TimelineMonths:  req.TimelineMonths,
	})
	if err != nil {
		return nil, err
	}

	fund := domain.EmergencyFund{
		FundID:            uuid.NewString(),
		UserID:            owner.UserID,
		SessionID:         owner.SessionID,
		MonthlyExpenses:   req.MonthlyExpenses,
		MonthlyIncome:     req.MonthlyIncome,
		RiskTolerance:     risk,
		Dependents:        req.Dependents,
		CurrentSavings:    req.CurrentSavings,
		TimelineMonths:    req.TimelineMonths,
		RecommendedMonths: result.RecommendedMonths,
		TargetAmount:      result.TargetAmount,
		SavingsGap:        result.SavingsGap,
		MonthlySavings:    result.MonthlySavings,
		PercentOfIncome:   result.PercentOfIncome,
		Badges:            result.Badges,
		CreatedAt:         time.Now(),
	}

	if err := s.fundRepo.SaveEmergencyFund(ctx, fund); err != nil {
		s.LogError(ctx, err, "Failed to save emergency fund plan")
		return nil, fmt.Errorf("failed to save emergency fund plan: %w", err)
	}

	trackTool(ctx, &s.BaseService, s.usageRepo, owner, "emergency_fund", "plan")

	return &dto.EmergencyFundResponse{
		FundID:            fund.FundID,
		RecommendedMonths: fund.RecommendedMonths,
		TargetAmount:      fund.TargetAmount,
		SavingsGap:        fund.SavingsGap,
		MonthlySavings:    fund.MonthlySavings,
		PercentOfIncome:   fund.PercentOfIncome,
		Badges:            fund.Badges,
		CreatedAt:         fund.CreatedAt,
	}, nil
}

// FundHistory lists the owner's plans, newest first.
func (s *emergencyFundService) FundHistory(ctx context.Context, owner portssvc.PersonalOwner, limit int) ([]domain.EmergencyFund, error) {
	if limit <= 0 {
		limit = 20
	}
	funds, err := s.fundRepo.FindEmergencyFunds(ctx, repoOwner(owner), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list emergency fund plans: %w", err)
	}
	return funds, nil
}
