package services

import (
	"context"

	"github.com/fipithx/ficore_backend/internal/core/domain"
	"github.com/fipithx/ficore_backend/internal/dto"
)

// AgentSvcFacade defines operations agents perform on behalf of traders
type AgentSvcFacade interface {
	// RegisterTrader creates a trader account on a trader's behalf and logs
	// the registration activity.
	RegisterTrader(ctx context.Context, agent *domain.User, req dto.SignupRequest) (*domain.User, error)

	// FacilitateCoinPurchase credits a coin purchase to a trader and logs
	// the facilitation activity.
	FacilitateCoinPurchase(ctx context.Context, agent *domain.User, req dto.FacilitatePurchaseRequest) (*domain.CoinTransaction, error)

	// LogActivity records a free-form assistance activity.
	LogActivity(ctx context.Context, agent *domain.User, req dto.LogAgentActivityRequest) (*domain.AgentActivity, error)

	// ListActivities lists an agent's own activity log, newest first.
	ListActivities(ctx context.Context, agent *domain.User, limit, offset int) ([]domain.AgentActivity, error)
}

// AdminSvcFacade defines platform administration operations. Every method
// returns apperrors.ErrForbidden for non-admin actors.
type AdminSvcFacade interface {
	// ListUsers lists users of any role.
	ListUsers(ctx context.Context, actor *domain.User, role domain.Role, limit, offset int) ([]domain.User, error)

	// DeleteUser removes a user and all data tied to them.
	DeleteUser(ctx context.Context, actor *domain.User, userID string) error

	// CreditCoins grants coins to a user outside the purchase flow.
	CreditCoins(ctx context.Context, actor *domain.User, req dto.AdminCreditRequest) (*domain.CoinTransaction, error)

	// ListAuditLogs lists audit trail entries, optionally for one user.
	ListAuditLogs(ctx context.Context, actor *domain.User, userID string, limit, offset int) ([]domain.AuditLog, error)

	// ListFeedback lists submitted feedback, newest first.
	ListFeedback(ctx context.Context, actor *domain.User, limit, offset int) ([]domain.Feedback, error)

	// ToolUsageStats returns usage counts per tool.
	ToolUsageStats(ctx context.Context, actor *domain.User) (map[string]int64, error)
}
