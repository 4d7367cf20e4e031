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

// recordService implements the debtor/creditor ledger operations.
type recordService struct {
	BaseService
	recordRepo portsrepo.RecordRepositoryFacade
	coinSvc    portssvc.CoinSvcFacade
	sms        portssvc.SMSSender
	whatsapp   portssvc.WhatsAppSender
}

// NewRecordService creates a new record service instance.
func NewRecordService(recordRepo portsrepo.RecordRepositoryFacade, coinSvc portssvc.CoinSvcFacade, sms portssvc.SMSSender, whatsapp portssvc.WhatsAppSender) portssvc.RecordSvcFacade {
	return &recordService{
		recordRepo: recordRepo,
		coinSvc:    coinSvc,
		sms:        sms,
		whatsapp:   whatsapp,
	}
}

var _ portssvc.RecordSvcFacade = (*recordService)(nil)

// getOwnedRecord loads a record and enforces ownership. Admins may access
// any record.
func (s *recordService) getOwnedRecord(ctx context.Context, actor *domain.User, recordID string) (*domain.Record, error) {
	record, err := s.recordRepo.FindRecordByID(ctx, recordID)
	if err != nil {
		return nil, fmt.Errorf("failed to find record %s: %w", recordID, err)
	}
	if record.UserID != actor.UserID && !actor.IsAdmin() {
		return nil, fmt.Errorf("%w: record belongs to another user", apperrors.ErrForbidden)
	}
	return record, nil
}

// GetRecord retrieves a record the actor is allowed to see.
func (s *recordService) GetRecord(ctx context.Context, actor *domain.User, recordID string) (*domain.Record, error) {
	return s.getOwnedRecord(ctx, actor, recordID)
}

// ListRecords lists the actor's records; admins see everyone's.
func (s *recordService) ListRecords(ctx context.Context, actor *domain.User, recordType domain.RecordType, limit, offset int) ([]domain.Record, error) {
	if recordType != "" && !recordType.IsValid() {
		return nil, fmt.Errorf("%w: invalid record type %q", apperrors.ErrValidation, recordType)
	}
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	ownerID := actor.UserID
	if actor.IsAdmin() {
		ownerID = ""
	}
	records, err := s.recordRepo.FindRecords(ctx, ownerID, recordType, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}
	return records, nil
}

// CreateRecord creates a record, debiting the creation cost in the same
// transaction as the insert.
func (s *recordService) CreateRecord(ctx context.Context, actor *domain.User, req dto.CreateRecordRequest) (*domain.Record, error) {
	recordType := domain.RecordType(req.Type)
	if !recordType.IsValid() {
		return nil, fmt.Errorf("%w: invalid record type %q", apperrors.ErrValidation, req.Type)
	}
	if req.AmountOwed.IsNegative() {
		return nil, fmt.Errorf("%w: amount owed cannot be negative", apperrors.ErrValidation)
	}

	now := time.Now()
	record := domain.Record{
		RecordID:    uuid.NewString(),
		UserID:      actor.UserID,
		Type:        recordType,
		Name:        req.Name,
		Contact:     req.Contact,
		AmountOwed:  req.AmountOwed,
		Description: req.Description,
		AuditFields: domain.NewAuditFields(actor.UserID, now),
	}

	charge := chargeFor(actor, domain.CostCreateRecord, record.RecordID, "create_record", now)
	audit := domain.AuditLog{
		LogID:   uuid.NewString(),
		AdminID: actor.UserID,
		Action:  "create_record",
		Details: map[string]any{
			"record_id": record.RecordID,
			"type":      string(recordType),
		},
		Timestamp: now,
	}

	if err := s.recordRepo.CreateRecord(ctx, record, charge, audit); err != nil {
		s.LogError(ctx, err, "Failed to create record", slog.String("user_id", actor.UserID))
		return nil, err
	}

	s.LogInfo(ctx, "Record created", slog.String("record_id", record.RecordID), slog.String("type", string(recordType)))
	return &record, nil
}

// UpdateRecord updates a record the actor owns.
func (s *recordService) UpdateRecord(ctx context.Context, actor *domain.User, recordID string, req dto.UpdateRecordRequest) (*domain.Record, error) {
	record, err := s.getOwnedRecord(ctx, actor, recordID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		record.Name = *req.Name
	}
	if req.Contact != nil {
		record.Contact = *req.Contact
	}
	if req.AmountOwed != nil {
		if req.AmountOwed.IsNegative() {
			return nil, fmt.Errorf("%w: amount owed cannot be negative", apperrors.ErrValidation)
		}
		record.AmountOwed = *req.AmountOwed
	}
	if req.Description != nil {
		record.Description = *req.Description
	}
	record.Touch(actor.UserID, time.Now())

	if err := s.recordRepo.UpdateRecord(ctx, *record); err != nil {
		s.LogError(ctx, err, "Failed to update record", slog.String("record_id", recordID))
		return nil, fmt.Errorf("failed to update record: %w", err)
	}
	return record, nil
}

// DeleteRecord removes a record the actor owns, together with its reminders.
func (s *recordService) DeleteRecord(ctx context.Context, actor *domain.User, recordID string) error {
	if _, err := s.getOwnedRecord(ctx, actor, recordID); err != nil {
		return err
	}

	if err := s.recordRepo.DeleteRecord(ctx, recordID); err != nil {
		s.LogError(ctx, err, "Failed to delete record", slog.String("record_id", recordID))
		return fmt.Errorf("failed to delete record: %w", err)
	}

	s.LogInfo(ctx, "Record deleted", slog.String("record_id", recordID))
	return nil
}

// SendReminder dispatches a payment reminder over SMS or WhatsApp, then debits
// the reminder cost with the reminder log in a single transaction.
func (s *recordService) SendReminder(ctx context.Context, actor *domain.User, recordID string, req dto.SendReminderRequest) (*domain.ReminderLog, error) {
	record, err := s.getOwnedRecord(ctx, actor, recordID)
	if err != nil {
		return nil, err
	}
	if record.Contact == "" {
		return nil, fmt.Errorf("%w: record has no contact number", apperrors.ErrValidation)
	}

	// The provider bills per message, so the balance has to be checked before
	// dispatch. The actual debit still commits atomically with the log below.
	if !actor.IsAdmin() {
		balance, err := s.coinSvc.GetBalance(ctx, actor.UserID)
		if err != nil {
			return nil, fmt.Errorf("failed to check coin balance: %w", err)
		}
		if balance < domain.CostSendReminder {
			return nil, fmt.Errorf("%w: sending a reminder costs %d coins", apperrors.ErrInsufficientCoins, domain.CostSendReminder)
		}
	}

	message := req.Message
	if message == "" {
		message = i18n.Tf(actor.Language, "reminder_default_message", record.Name, formatNaira(record.AmountOwed))
	}

	channel := domain.ReminderType(req.Channel)
	apiResponse := map[string]any{"status": "sent"}
	switch channel {
	case domain.ReminderWhatsApp:
		err = s.whatsapp.SendWhatsApp(ctx, record.Contact, message)
	default:
		channel = domain.ReminderSMS
		err = s.sms.SendSMS(ctx, record.Contact, message)
	}
	if err != nil {
		s.LogError(ctx, err, "Failed to dispatch reminder", slog.String("record_id", recordID), slog.String("channel", string(channel)))
		return nil, fmt.Errorf("failed to dispatch reminder: %w", err)
	}

	now := time.Now()
	logEntry := domain.ReminderLog{
		NotificationID: uuid.NewString(),
		UserID:         record.UserID,
		DebtID:         record.RecordID,
		Recipient:      record.Contact,
		Message:        message,
		Type:           channel,
		APIResponse:    apiResponse,
		SentAt:         now,
	}

	charge := chargeFor(actor, domain.CostSendReminder, record.RecordID, "send_reminder", now)
	audit := domain.AuditLog{
		LogID:   uuid.NewString(),
		AdminID: actor.UserID,
		Action:  "send_reminder",
		Details: map[string]any{
			"record_id": record.RecordID,
			"channel":   string(channel),
		},
		Timestamp: now,
	}

	if err := s.recordRepo.RecordReminder(ctx, record.RecordID, logEntry, charge, audit); err != nil {
		s.LogError(ctx, err, "Failed to record reminder", slog.String("record_id", recordID))
		return nil, err
	}

	s.LogInfo(ctx, "Reminder sent", slog.String("record_id", record.RecordID), slog.String("channel", string(channel)))
	return &logEntry, nil
}

// ListReminders lists dispatched reminders for a record.
func (s *recordService) ListReminders(ctx context.Context, actor *domain.User, recordID string, limit int) ([]domain.ReminderLog, error) {
	if _, err := s.getOwnedRecord(ctx, actor, recordID); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 20
	}
	logs, err := s.recordRepo.FindRemindersByRecord(ctx, recordID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list reminders: %w", err)
	}
	return logs, nil
}

// GenerateReceiptPDF renders a PDF receipt for a record and debits the
// receipt cost.
func (s *recordService) GenerateReceiptPDF(ctx context.Context, actor *domain.User, recordID string) ([]byte, string, error) {
	record, err := s.getOwnedRecord(ctx, actor, recordID)
	if err != nil {
		return nil, "", err
	}

	pdfBytes, err := renderRecordReceipt(record)
	if err != nil {
		s.LogError(ctx, err, "Failed to render record receipt", slog.String("record_id", recordID))
		return nil, "", err
	}

	if _, err := s.coinSvc.Charge(ctx, actor, domain.CostGenerateReceipt, "generate_receipt", record.RecordID); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("receipt_%s.pdf", record.RecordID)
	return pdfBytes, filename, nil
}

// chargeFor builds the coin debit for a metered action, or nil for admins.
func chargeFor(actor *domain.User, cost int64, ref string, action string, now time.Time) *domain.CoinTransaction {
	if actor.IsAdmin() {
		return nil
	}
	return &domain.CoinTransaction{
		TransactionID: uuid.NewString(),
		UserID:        actor.UserID,
		Amount:        -cost,
		Type:          domain.CoinSpend,
		Ref:           ref,
		Notes:         action,
		Date:          now,
	}
}
