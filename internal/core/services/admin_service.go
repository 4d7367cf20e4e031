package services

import (
	"context"
	"fmt"

	"github.com/fipithx/ficore_backend/internal/apperrors"
	"github.com/fipithx/ficore_backend/internal/core/domain"
	portsrepo "github.com/fipithx/ficore_backend/internal/core/ports/repositories"
	portssvc "github.com/fipithx/ficore_backend/internal/core/ports/services"
	"github.com/fipithx/ficore_backend/internal/dto"
)

// adminService implements platform administration operations.
type adminService struct {
	BaseService
	userSvc      portssvc.UserSvcFacade
	coinSvc      portssvc.CoinSvcFacade
	activityRepo portsrepo.ActivityRepositoryFacade
}

// NewAdminService creates a new admin service instance.
func NewAdminService(userSvc portssvc.UserSvcFacade, coinSvc portssvc.CoinSvcFacade, activityRepo portsrepo.ActivityRepositoryFacade) portssvc.AdminSvcFacade {
	return &adminService{
		userSvc:      userSvc,
		coinSvc:      coinSvc,
		activityRepo: activityRepo,
	}
}

var _ portssvc.AdminSvcFacade = (*adminService)(nil)

func requireAdmin(actor *domain.User) error {
	if !actor.IsAdmin() {
		return fmt.Errorf("%w: admin role required", apperrors.ErrForbidden)
	}
	return nil
}

// ListUsers lists users of any role.
func (s *adminService) ListUsers(ctx context.Context, actor *domain.User, role domain.Role, limit, offset int) ([]domain.User, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	return s.userSvc.ListUsers(ctx, role, limit, offset)
}

// DeleteUser removes a user and all data tied to them.
func (s *adminService) DeleteUser(ctx context.Context, actor *domain.User, userID string) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}
	return s.userSvc.DeleteUser(ctx, userID, actor)
}

// CreditCoins grants coins to a user outside the purchase flow.
func (s *adminService) CreditCoins(ctx context.Context, actor *domain.User, req dto.AdminCreditRequest) (*domain.CoinTransaction, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	return s.coinSvc.AdminCredit(ctx, actor, req)
}

// ListAuditLogs lists audit trail entries, optionally for one user.
func (s *adminService) ListAuditLogs(ctx context.Context, actor *domain.User, userID string, limit, offset int) ([]domain.AuditLog, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	logs, err := s.activityRepo.FindAuditLogs(ctx, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit logs: %w", err)
	}
	return logs, nil
}

// ListFeedback lists submitted feedback, newest first.
func (s *adminService) ListFeedback(ctx context.Context, actor *domain.User, limit, offset int) ([]domain.Feedback, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	feedback, err := s.activityRepo.FindFeedback(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list feedback: %w", err)
	}
	return feedback, nil
}

// ToolUsageStats returns usage counts per tool.
func (s *adminService) ToolUsageStats(ctx context.Context, actor *domain.User) (map[string]int64, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	stats, err := s.activityRepo.CountToolUsage(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count tool usage: %w", err)
	}
	return stats, nil
}
