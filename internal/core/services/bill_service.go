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
	"github.com/fipithx/ficore_backend/internal/platform/i18n"
)

// billService implements the bill planner.
type billService struct {
	BaseService
	billRepo  portsrepo.BillRepository
	userRepo  portsrepo.UserReader
	usageRepo portsrepo.ToolUsageRepository
	mail      portssvc.EmailSender
}

// NewBillService creates a new bill service instance.
func NewBillService(billRepo portsrepo.BillRepository, userRepo portsrepo.UserReader, usageRepo portsrepo.ToolUsageRepository, mail portssvc.EmailSender) portssvc.BillSvcFacade {
	return &billService{
		billRepo:  billRepo,
		userRepo:  userRepo,
		usageRepo: usageRepo,
		mail:      mail,
	}
}

var _ portssvc.BillSvcFacade = (*billService)(nil)

// CreateBill adds a bill for the owner.
func (s *billService) CreateBill(ctx context.Context, owner portssvc.PersonalOwner, req dto.CreateBillRequest) (*domain.Bill, error) {
	frequency := domain.BillFrequency(req.Frequency)
	if !frequency.IsValid() {
		return nil, fmt.Errorf("%w: invalid bill frequency %q", apperrors.ErrValidation, req.Frequency)
	}
	if req.Amount.IsNegative() {
		return nil, fmt.Errorf("%w: amount cannot be negative", apperrors.ErrValidation)
	}

	var userEmail, userLang string
	if req.SendEmail && owner.UserID != "" {
		if user, err := s.userRepo.FindUserByID(ctx, owner.UserID); err == nil {
			userEmail = user.Email
			userLang = user.Language
		}
	}

	now := time.Now()
	bill := domain.Bill{
		BillID:    uuid.NewString(),
		UserID:    owner.UserID,
		SessionID: owner.SessionID,
		UserEmail: userEmail,
		Name:      req.Name,
		Amount:    req.Amount,
		DueDate:   req.DueDate,
		Frequency: frequency,
		Category:  req.Category,
		Status:    domain.BillUnpaid,
		SendEmail: req.SendEmail,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.billRepo.SaveBill(ctx, bill); err != nil {
		s.LogError(ctx, err, "Failed to save bill")
		return nil, fmt.Errorf("failed to save bill: %w", err)
	}

	trackTool(ctx, &s.BaseService, s.usageRepo, owner, "bill", "create")

	if bill.SendEmail && bill.UserEmail != "" {
		subject := i18n.T(userLang, "email_bill_subject") + ": " + bill.Name
		body := fmt.Sprintf("<p>Your bill <strong>%s</strong> of %s is due on %s.</p>", bill.Name, formatNaira(bill.Amount), bill.DueDate.Format("02 Jan 2006"))
		if err := s.mail.Send(ctx, bill.UserEmail, subject, body); err != nil {
			s.LogError(ctx, err, "Failed to send bill confirmation email", slog.String("bill_id", bill.BillID))
		}
	}

	return &bill, nil
}

// ListBills lists the owner's bills ordered by due date.
func (s *billService) ListBills(ctx context.Context, owner portssvc.PersonalOwner, status domain.BillStatus, limit int) ([]domain.Bill, error) {
	if status != "" && !status.IsValid() {
		return nil, fmt.Errorf("%w: invalid bill status %q", apperrors.ErrValidation, status)
	}
	if limit <= 0 {
		limit = 50
	}
	bills, err := s.billRepo.FindBills(ctx, repoOwner(owner), status, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list bills: %w", err)
	}
	return bills, nil
}

// UpdateBill updates one of the owner's bills. Marking a recurring bill paid
// rolls it over to the next due date as a fresh unpaid occurrence.
func (s *billService) UpdateBill(ctx context.Context, owner portssvc.PersonalOwner, billID string, req dto.UpdateBillRequest) (*domain.Bill, error) {
	bill, err := s.billRepo.FindBillByID(ctx, repoOwner(owner), billID)
	if err != nil {
		return nil, fmt.Errorf("failed to find bill %s: %w", billID, err)
	}

	if req.Name != nil {
		bill.Name = *req.Name
	}
	if req.Amount != nil {
		if req.Amount.IsNegative() {
			return nil, fmt.Errorf("%w: amount cannot be negative", apperrors.ErrValidation)
		}
		bill.Amount = *req.Amount
	}
	if req.DueDate != nil {
		bill.DueDate = *req.DueDate
	}
	if req.Frequency != nil {
		frequency := domain.BillFrequency(*req.Frequency)
		if !frequency.IsValid() {
			return nil, fmt.Errorf("%w: invalid bill frequency %q", apperrors.ErrValidation, *req.Frequency)
		}
		bill.Frequency = frequency
	}
	if req.Category != nil {
		bill.Category = *req.Category
	}
	if req.SendEmail != nil {
		bill.SendEmail = *req.SendEmail
	}
	if req.Status != nil {
		status := domain.BillStatus(*req.Status)
		if !status.IsValid() {
			return nil, fmt.Errorf("%w: invalid bill status %q", apperrors.ErrValidation, *req.Status)
		}
		if status == domain.BillPaid {
			if next := bill.NextDueDate(); !next.IsZero() {
				// Recurring bill: roll forward instead of staying paid.
				bill.DueDate = next
				status = domain.BillUnpaid
			}
		}
		bill.Status = status
	}
	bill.UpdatedAt = time.Now()

	if err := s.billRepo.UpdateBill(ctx, repoOwner(owner), *bill); err != nil {
		s.LogError(ctx, err, "Failed to update bill", slog.String("bill_id", billID))
		return nil, fmt.Errorf("failed to update bill: %w", err)
	}
	return bill, nil
}

// DeleteBill removes one of the owner's bills.
func (s *billService) DeleteBill(ctx context.Context, owner portssvc.PersonalOwner, billID string) error {
	if err := s.billRepo.DeleteBill(ctx, repoOwner(owner), billID); err != nil {
		return fmt.Errorf("failed to delete bill: %w", err)
	}
	return nil
}

// MarkOverdue flips unpaid bills past their due date to overdue.
func (s *billService) MarkOverdue(ctx context.Context) (int64, error) {
	changed, err := s.billRepo.MarkOverdueBills(ctx, time.Now())
	if err != nil {
		s.LogError(ctx, err, "Failed to mark overdue bills")
		return 0, fmt.Errorf("failed to mark overdue bills: %w", err)
	}
	if changed > 0 {
		s.LogInfo(ctx, "Bills marked overdue", slog.Int64("count", changed))
	}
	return changed, nil
}
