package services

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fipithx/ficore_backend/internal/apperrors"
	"github.com/fipithx/ficore_backend/internal/core/domain"
	portsrepo "github.com/fipithx/ficore_backend/internal/core/ports/repositories"
	portssvc "github.com/fipithx/ficore_backend/internal/core/ports/services"
	"github.com/fipithx/ficore_backend/internal/dto"
)

const dashboardRecentLimit = 5

// dashboardService aggregates per-role landing page summaries.
type dashboardService struct {
	BaseService
	userRepo      portsrepo.UserReader
	recordRepo    portsrepo.RecordReader
	cashflowRepo  portsrepo.CashflowReader
	inventoryRepo portsrepo.InventoryReader
	coinRepo      portsrepo.CoinLedgerReader
	activityRepo  portsrepo.ActivityRepositoryFacade
}

// NewDashboardService creates a new dashboard service instance.
func NewDashboardService(
	userRepo portsrepo.UserReader,
	recordRepo portsrepo.RecordReader,
	cashflowRepo portsrepo.CashflowReader,
	inventoryRepo portsrepo.InventoryReader,
	coinRepo portsrepo.CoinLedgerReader,
	activityRepo portsrepo.ActivityRepositoryFacade,
) portssvc.DashboardSvcFacade {
	return &dashboardService{
		userRepo:      userRepo,
		recordRepo:    recordRepo,
		cashflowRepo:  cashflowRepo,
		inventoryRepo: inventoryRepo,
		coinRepo:      coinRepo,
		activityRepo:  activityRepo,
	}
}

var _ portssvc.DashboardSvcFacade = (*dashboardService)(nil)

// Overview returns the personal/trader dashboard summary. Admins may pass a
// targetUserID to view any user's dashboard.
func (s *dashboardService) Overview(ctx context.Context, actor *domain.User, targetUserID string) (*dto.DashboardOverview, error) {
	subject := actor
	if targetUserID != "" && targetUserID != actor.UserID {
		if !actor.IsAdmin() {
			return nil, fmt.Errorf("%w: only admins may view another user's dashboard", apperrors.ErrForbidden)
		}
		target, err := s.userRepo.FindUserByID(ctx, targetUserID)
		if err != nil {
			return nil, fmt.Errorf("failed to find dashboard user %s: %w", targetUserID, err)
		}
		subject = target
	}

	records, err := s.recordRepo.FindRecords(ctx, subject.UserID, "", reportFetchLimit, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to load records: %w", err)
	}

	totalOwedToMe := decimal.Zero
	totalIOwe := decimal.Zero
	for i := range records {
		if records[i].Type == domain.Debtor {
			totalOwedToMe = totalOwedToMe.Add(records[i].AmountOwed)
		} else {
			totalIOwe = totalIOwe.Add(records[i].AmountOwed)
		}
	}

	receipts, payments, err := s.cashflowRepo.SumCashflows(ctx, subject.UserID, time.Time{}, time.Time{})
	if err != nil {
		return nil, fmt.Errorf("failed to sum cashflows: %w", err)
	}

	recentCashflows, err := s.cashflowRepo.FindCashflows(ctx, subject.UserID, "", time.Time{}, time.Time{}, dashboardRecentLimit, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to load recent cashflows: %w", err)
	}

	recentCoins, err := s.coinRepo.FindTransactionsByUser(ctx, subject.UserID, dashboardRecentLimit, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to load recent coin transactions: %w", err)
	}

	overview := &dto.DashboardOverview{
		User:            dto.ToUserResponse(subject),
		CoinBalance:     subject.CoinBalance,
		TotalOwedToMe:   totalOwedToMe,
		TotalIOwe:       totalIOwe,
		NetCashflow:     receipts.Sub(payments),
		RecentRecords:   firstRecords(records, dashboardRecentLimit),
		RecentCashflows: dto.ToListCashflowsResponse(recentCashflows).Cashflows,
		RecentCoins:     dto.ToCoinHistoryResponse(recentCoins).Transactions,
	}

	// Low stock only matters for traders with inventory.
	if subject.Role == domain.RoleTrader || subject.IsAdmin() {
		lowStock, err := s.inventoryRepo.FindLowStockItems(ctx, subject.UserID, dashboardRecentLimit)
		if err != nil {
			return nil, fmt.Errorf("failed to load low stock items: %w", err)
		}
		overview.LowStockItems = dto.ToListInventoryResponse(lowStock).Items
	}

	return overview, nil
}

// AgentOverview returns the agent dashboard summary. Agent or admin only.
func (s *dashboardService) AgentOverview(ctx context.Context, actor *domain.User) (*dto.AgentDashboard, error) {
	if actor.Role != domain.RoleAgent && !actor.IsAdmin() {
		return nil, fmt.Errorf("%w: agent dashboard requires agent role", apperrors.ErrForbidden)
	}

	activities, err := s.activityRepo.FindAgentActivities(ctx, actor.UserID, reportFetchLimit, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to load agent activities: %w", err)
	}

	var registered, facilitated int64
	for i := range activities {
		switch activities[i].ActivityType {
		case domain.ActivityTraderRegistration:
			registered++
		case domain.ActivityTokenFacilitation:
			facilitated++
		}
	}

	recent := activities
	if len(recent) > dashboardRecentLimit {
		recent = recent[:dashboardRecentLimit]
	}

	return &dto.AgentDashboard{
		Agent:             dto.ToUserResponse(actor),
		RegisteredTraders: registered,
		TokensFacilitated: facilitated,
		RecentActivities:  dto.ToAgentActivityResponses(recent),
	}, nil
}

// AdminOverview returns the platform-wide dashboard summary. Admin only.
func (s *dashboardService) AdminOverview(ctx context.Context, actor *domain.User) (*dto.AdminDashboard, error) {
	if !actor.IsAdmin() {
		return nil, fmt.Errorf("%w: admin dashboard requires admin role", apperrors.ErrForbidden)
	}

	roleCounts, err := s.userRepo.CountUsersByRole(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}
	userCounts := make(map[string]int64, len(roleCounts))
	for role, count := range roleCounts {
		userCounts[string(role)] = count
	}

	toolUsage, err := s.activityRepo.CountToolUsage(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count tool usage: %w", err)
	}

	recentCoins, err := s.coinRepo.FindAllTransactions(ctx, dashboardRecentLimit, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to load recent coin transactions: %w", err)
	}

	recentAudits, err := s.activityRepo.FindAuditLogs(ctx, "", dashboardRecentLimit, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to load recent audit logs: %w", err)
	}

	recentFeedback, err := s.activityRepo.FindFeedback(ctx, dashboardRecentLimit, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to load recent feedback: %w", err)
	}

	return &dto.AdminDashboard{
		UserCounts:     userCounts,
		ToolUsage:      toolUsage,
		RecentCoins:    dto.ToCoinHistoryResponse(recentCoins).Transactions,
		RecentAudits:   dto.ToAuditLogResponses(recentAudits),
		RecentFeedback: dto.ToFeedbackResponses(recentFeedback),
	}, nil
}

func firstRecords(records []domain.Record, limit int) []dto.RecordResponse {
	if len(records) > limit {
		records = records[:limit]
	}
	return dto.ToListRecordsResponse(records).Records
}
