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

// cashflowService implements the money-in/money-out ledger operations.
type cashflowService struct {
	BaseService
	cashflowRepo portsrepo.CashflowRepositoryFacade
	coinSvc      portssvc.CoinSvcFacade
}

// NewCashflowService creates a new cashflow service instance.
func NewCashflowService(cashflowRepo portsrepo.CashflowRepositoryFacade, coinSvc portssvc.CoinSvcFacade) portssvc.CashflowSvcFacade {
	return &cashflowService{
		cashflowRepo: cashflowRepo,
		coinSvc:      coinSvc,
	}
}

var _ portssvc.CashflowSvcFacade = (*cashflowService)(nil)

func (s *cashflowService) getOwnedCashflow(ctx context.Context, actor *domain.User, cashflowID string) (*domain.Cashflow, error) {
	cf, err := s.cashflowRepo.FindCashflowByID(ctx, cashflowID)
	if err != nil {
		return nil, fmt.Errorf("failed to find cashflow %s: %w", cashflowID, err)
	}
	if cf.UserID != actor.UserID && !actor.IsAdmin() {
		return nil, fmt.Errorf("%w: cashflow belongs to another user", apperrors.ErrForbidden)
	}
	return cf, nil
}

// GetCashflow retrieves an entry the actor is allowed to see.
func (s *cashflowService) GetCashflow(ctx context.Context, actor *domain.User, cashflowID string) (*domain.Cashflow, error) {
	return s.getOwnedCashflow(ctx, actor, cashflowID)
}

// ListCashflows lists the actor's entries; admins see everyone's.
func (s *cashflowService) ListCashflows(ctx context.Context, actor *domain.User, req dto.ListCashflowsRequest) ([]domain.Cashflow, error) {
	flowType := domain.CashflowType(req.Type)
	if req.Type != "" && !flowType.IsValid() {
		return nil, fmt.Errorf("%w: invalid cashflow type %q", apperrors.ErrValidation, req.Type)
	}
	limit := req.Limit
	if limit <= 0 {
		limit = 20
	}
	offset := req.Offset
	if offset < 0 {
		offset = 0
	}

	ownerID := actor.UserID
	if actor.IsAdmin() {
		ownerID = ""
	}
	cashflows, err := s.cashflowRepo.FindCashflows(ctx, ownerID, flowType, req.From, req.To, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list cashflows: %w", err)
	}
	return cashflows, nil
}

// CreateCashflow creates an entry, debiting the creation cost in the same
// transaction as the insert.
func (s *cashflowService) CreateCashflow(ctx context.Context, actor *domain.User, req dto.CreateCashflowRequest) (*domain.Cashflow, error) {
	flowType := domain.CashflowType(req.Type)
	if !flowType.IsValid() {
		return nil, fmt.Errorf("%w: invalid cashflow type %q", apperrors.ErrValidation, req.Type)
	}
	if req.Amount.IsNegative() {
		return nil, fmt.Errorf("%w: amount cannot be negative", apperrors.ErrValidation)
	}
	method := domain.PaymentMethod(req.Method)
	if !method.IsValid() {
		return nil, fmt.Errorf("%w: invalid payment method %q", apperrors.ErrValidation, req.Method)
	}

	now := time.Now()
	cf := domain.Cashflow{
		CashflowID:  uuid.NewString(),
		UserID:      actor.UserID,
		Type:        flowType,
		PartyName:   req.PartyName,
		Amount:      req.Amount,
		Method:      method,
		Category:    req.Category,
		AuditFields: domain.NewAuditFields(actor.UserID, now),
	}

	charge := chargeFor(actor, domain.CostAddCashflow, cf.CashflowID, "add_cashflow", now)
	audit := domain.AuditLog{
		LogID:   uuid.NewString(),
		AdminID: actor.UserID,
		Action:  "add_cashflow",
		Details: map[string]any{
			"cashflow_id": cf.CashflowID,
			"type":        string(flowType),
		},
		Timestamp: now,
	}

	if err := s.cashflowRepo.CreateCashflow(ctx, cf, charge, audit); err != nil {
		s.LogError(ctx, err, "Failed to create cashflow", slog.String("user_id", actor.UserID))
		return nil, err
	}

	s.LogInfo(ctx, "Cashflow created", slog.String("cashflow_id", cf.CashflowID), slog.String("type", string(flowType)))
	return &cf, nil
}

// UpdateCashflow updates an entry the actor owns.
func (s *cashflowService) UpdateCashflow(ctx context.Context, actor *domain.User, cashflowID string, req dto.UpdateCashflowRequest) (*domain.Cashflow, error) {
	cf, err := s.getOwnedCashflow(ctx, actor, cashflowID)
	if err != nil {
		return nil, err
	}

	if req.PartyName != nil {
		cf.PartyName = *req.PartyName
	}
	if req.Amount != nil {
		if req.Amount.IsNegative() {
			return nil, fmt.Errorf("%w: amount cannot be negative", apperrors.ErrValidation)
		}
		cf.Amount = *req.Amount
	}
	if req.Method != nil {
		method := domain.PaymentMethod(*req.Method)
		if !method.IsValid() {
			return nil, fmt.Errorf("%w: invalid payment method %q", apperrors.ErrValidation, *req.Method)
		}
		cf.Method = method
	}
	if req.Category != nil {
		cf.Category = *req.Category
	}
	cf.Touch(actor.UserID, time.Now())

	if err := s.cashflowRepo.UpdateCashflow(ctx, *cf); err != nil {
		s.LogError(ctx, err, "Failed to update cashflow", slog.String("cashflow_id", cashflowID))
		return nil, fmt.Errorf("failed to update cashflow: %w", err)
	}
	return cf, nil
}

// DeleteCashflow removes an entry the actor owns.
func (s *cashflowService) DeleteCashflow(ctx context.Context, actor *domain.User, cashflowID string) error {
	if _, err := s.getOwnedCashflow(ctx, actor, cashflowID); err != nil {
		return err
	}

	if err := s.cashflowRepo.DeleteCashflow(ctx, cashflowID); err != nil {
		s.LogError(ctx, err, "Failed to delete cashflow", slog.String("cashflow_id", cashflowID))
		return fmt.Errorf("failed to delete cashflow: %w", err)
	}

	s.LogInfo(ctx, "Cashflow deleted", slog.String("cashflow_id", cashflowID))
	return nil
}

// GenerateReceiptPDF renders a PDF receipt for a cashflow entry and debits
// the receipt cost.
func (s *cashflowService) GenerateReceiptPDF(ctx context.Context, actor *domain.User, cashflowID string) ([]byte, string, error) {
	cf, err := s.getOwnedCashflow(ctx, actor, cashflowID)
	if err != nil {
		return nil, "", err
	}

	pdfBytes, err := renderCashflowReceipt(cf)
	if err != nil {
		s.LogError(ctx, err, "Failed to render cashflow receipt", slog.String("cashflow_id", cashflowID))
		return nil, "", err
	}

	if _, err := s.coinSvc.Charge(ctx, actor, domain.CostGenerateReceipt, "generate_receipt", cf.CashflowID); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("receipt_%s.pdf", cf.CashflowID)
	return pdfBytes, filename, nil
}
