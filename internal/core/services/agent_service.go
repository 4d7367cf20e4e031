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
)

// agentService implements operations agents perform on behalf of traders.
type agentService struct {
	BaseService
	userSvc      portssvc.UserSvcFacade
	coinRepo     portsrepo.CoinRepositoryFacade
	activityRepo portsrepo.AgentActivityRepository
}

// NewAgentService creates a new agent service instance.
func NewAgentService(userSvc portssvc.UserSvcFacade, coinRepo portsrepo.CoinRepositoryFacade, activityRepo portsrepo.AgentActivityRepository) portssvc.AgentSvcFacade {
	return &agentService{
		userSvc:      userSvc,
		coinRepo:     coinRepo,
		activityRepo: activityRepo,
	}
}

var _ portssvc.AgentSvcFacade = (*agentService)(nil)

func requireAgent(agent *domain.User) error {
	if agent.Role != domain.RoleAgent && !agent.IsAdmin() {
		return fmt.Errorf("%w: agent role required", apperrors.ErrForbidden)
	}
	return nil
}

// RegisterTrader creates a trader account on a trader's behalf and logs the
// registration activity.
func (s *agentService) RegisterTrader(ctx context.Context, agent *domain.User, req dto.SignupRequest) (*domain.User, error) {
	if err := requireAgent(agent); err != nil {
		return nil, err
	}
	req.Role = string(domain.RoleTrader)
	req.FacilitatedByAgent = agent.UserID

	trader, err := s.userSvc.CreateUser(ctx, req)
	if err != nil {
		return nil, err
	}

	activity := domain.AgentActivity{
		ActivityID:   uuid.NewString(),
		AgentID:      agent.UserID,
		ActivityType: domain.ActivityTraderRegistration,
		TraderID:     trader.UserID,
		Details:      map[string]any{"email": trader.Email},
		Timestamp:    time.Now(),
	}
	if err := s.activityRepo.SaveAgentActivity(ctx, activity); err != nil {
		// The trader account exists; a lost activity row should not fail the registration.
		s.LogError(ctx, err, "Failed to log trader registration activity", slog.String("agent_id", agent.UserID), slog.String("trader_id", trader.UserID))
	}

	s.LogInfo(ctx, "Trader registered by agent", slog.String("agent_id", agent.UserID), slog.String("trader_id", trader.UserID))
	return trader, nil
}

// FacilitateCoinPurchase credits a coin purchase to a trader and logs the
// facilitation activity.
func (s *agentService) FacilitateCoinPurchase(ctx context.Context, agent *domain.User, req dto.FacilitatePurchaseRequest) (*domain.CoinTransaction, error) {
	if err := requireAgent(agent); err != nil {
		return nil, err
	}
	if !isPurchasableAmount(req.Amount) {
		return nil, fmt.Errorf("%w: amount %d is not a purchasable package", apperrors.ErrValidation, req.Amount)
	}

	trader, err := s.userSvc.GetUserByID(ctx, req.TraderID)
	if err != nil {
		return nil, fmt.Errorf("failed to find trader %s: %w", req.TraderID, err)
	}
	if trader.Role != domain.RoleTrader {
		return nil, fmt.Errorf("%w: coin facilitation is only available for traders", apperrors.ErrValidation)
	}

	now := time.Now()
	txn := domain.CoinTransaction{
		TransactionID:      uuid.NewString(),
		UserID:             trader.UserID,
		Amount:             req.Amount,
		Type:               domain.CoinPurchase,
		FacilitatedByAgent: agent.UserID,
		PaymentMethod:      req.PaymentMethod,
		Date:               now,
	}
	audit := domain.AuditLog{
		LogID:   uuid.NewString(),
		AdminID: agent.UserID,
		Action:  "facilitate_coin_purchase",
		Details: map[string]any{
			"transaction_id": txn.TransactionID,
			"trader_id":      trader.UserID,
			"amount":         req.Amount,
		},
		Timestamp: now,
	}

	if err := s.coinRepo.Credit(ctx, txn, audit); err != nil {
		s.LogError(ctx, err, "Failed to credit facilitated purchase", slog.String("agent_id", agent.UserID), slog.String("trader_id", trader.UserID))
		return nil, fmt.Errorf("failed to credit facilitated purchase: %w", err)
	}

	activity := domain.AgentActivity{
		ActivityID:   uuid.NewString(),
		AgentID:      agent.UserID,
		ActivityType: domain.ActivityTokenFacilitation,
		TraderID:     trader.UserID,
		Details:      map[string]any{"amount": req.Amount, "payment_method": req.PaymentMethod},
		Timestamp:    now,
	}
	if err := s.activityRepo.SaveAgentActivity(ctx, activity); err != nil {
		s.LogError(ctx, err, "Failed to log facilitation activity", slog.String("agent_id", agent.UserID))
	}

	s.LogInfo(ctx, "Coin purchase facilitated", slog.String("agent_id", agent.UserID), slog.String("trader_id", trader.UserID), slog.Int64("amount", req.Amount))
	return &txn, nil
}

// LogActivity records a free-form assistance activity.
func (s *agentService) LogActivity(ctx context.Context, agent *domain.User, req dto.LogAgentActivityRequest) (*domain.AgentActivity, error) {
	if err := requireAgent(agent); err != nil {
		return nil, err
	}

	activityType := domain.AgentActivityType(req.ActivityType)
	if !activityType.IsValid() {
		return nil, fmt.Errorf("%w: invalid activity type %q", apperrors.ErrValidation, req.ActivityType)
	}

	activity := domain.AgentActivity{
		ActivityID:   uuid.NewString(),
		AgentID:      agent.UserID,
		ActivityType: activityType,
		TraderID:     req.TraderID,
		Details:      req.Details,
		Timestamp:    time.Now(),
	}

	if err := s.activityRepo.SaveAgentActivity(ctx, activity); err != nil {
		s.LogError(ctx, err, "Failed to log agent activity", slog.String("agent_id", agent.UserID))
		return nil, fmt.Errorf("failed to log agent activity: %w", err)
	}
	return &activity, nil
}

// ListActivities lists an agent's own activity log, newest first.
func (s *agentService) ListActivities(ctx context.Context, agent *domain.User, limit, offset int) ([]domain.AgentActivity, error) {
	if err := requireAgent(agent); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	activities, err := s.activityRepo.FindAgentActivities(ctx, agent.UserID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list agent activities: %w", err)
	}
	return activities, nil
}
