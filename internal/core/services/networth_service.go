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

// netWorthService implements the net worth calculator.
type netWorthService struct {
	BaseService
	netWorthRepo portsrepo.NetWorthRepository
	usageRepo    portsrepo.ToolUsageRepository
}

// NewNetWorthService creates a new net worth service instance.
func NewNetWorthService(netWorthRepo portsrepo.NetWorthRepository, usageRepo portsrepo.ToolUsageRepository) portssvc.NetWorthSvcFacade {
	return &netWorthService{
		netWorthRepo: netWorthRepo,
		usageRepo:    usageRepo,
	}
}

var _ portssvc.NetWorthSvcFacade = (*netWorthService)(nil)

// CalculateNetWorth computes and persists a net worth snapshot with its
// earned badges.
func (s *netWorthService) CalculateNetWorth(ctx context.Context, owner portssvc.PersonalOwner, req dto.NetWorthRequest) (*dto.NetWorthResponse, error) {
	if req.CashSavings.IsNegative() || req.Investments.IsNegative() || req.Property.IsNegative() || req.Loans.IsNegative() {
		return nil, fmt.Errorf("%w: asset and liability values cannot be negative", apperrors.ErrValidation)
	}

	result := finance.ComputeNetWorth(req.CashSavings, req.Investments, req.Property, req.Loans)

	record := domain.NetWorthRecord{
		RecordID:         uuid.NewString(),
		UserID:           owner.UserID,
		SessionID:        owner.SessionID,
		CashSavings:      req.CashSavings,
		Investments:      req.Investments,
		Property:         req.Property,
		Loans:            req.Loans,
		TotalAssets:      result.TotalAssets,
		TotalLiabilities: result.TotalLiabilities,
		NetWorth:         result.NetWorth,
		Badges:           result.Badges,
		CreatedAt:        time.Now(),
	}

	if err := s.netWorthRepo.SaveNetWorth(ctx, record); err != nil {
		s.LogError(ctx, err, "Failed to save net worth record")
		return nil, fmt.Errorf("failed to save net worth record: %w", err)
	}

	trackTool(ctx, &s.BaseService, s.usageRepo, owner, "net_worth", "calculate")

	return &dto.NetWorthResponse{
		RecordID:         record.RecordID,
		TotalAssets:      record.TotalAssets,
		TotalLiabilities: record.TotalLiabilities,
		NetWorth:         record.NetWorth,
		Badges:           record.Badges,
		CreatedAt:        record.CreatedAt,
	}, nil
}

// NetWorthHistory lists the owner's snapshots, newest first.
func (s *netWorthService) NetWorthHistory(ctx context.Context, owner portssvc.PersonalOwner, limit int) ([]domain.NetWorthRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	records, err := s.netWorthRepo.FindNetWorthRecords(ctx, repoOwner(owner), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list net worth records: %w", err)
	}
	return records, nil
}
