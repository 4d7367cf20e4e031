package services

import (
	"context"

	"github.com/fipithx/ficore_backend/internal/core/domain"
	"github.com/fipithx/ficore_backend/internal/dto"
)

// RecordReaderSvc defines read operations for debtor/creditor records
type RecordReaderSvc interface {
	// GetRecord retrieves a record the actor is allowed to see.
	GetRecord(ctx context.Context, actor *domain.User, recordID string) (*domain.Record, error)

	// ListRecords lists the actor's records; admins see everyone's.
	ListRecords(ctx context.Context, actor *domain.User, recordType domain.RecordType, limit, offset int) ([]domain.Record, error)
}

// RecordWriterSvc defines write operations for debtor/creditor records
type RecordWriterSvc interface {
	// CreateRecord creates a record, debiting the creation cost atomically.
	CreateRecord(ctx context.Context, actor *domain.User, req dto.CreateRecordRequest) (*domain.Record, error)

	// UpdateRecord updates a record the actor owns (admins may update any).
	UpdateRecord(ctx context.Context, actor *domain.User, recordID string, req dto.UpdateRecordRequest) (*domain.Record, error)

	// DeleteRecord removes a record the actor owns (admins may delete any).
	DeleteRecord(ctx context.Context, actor *domain.User, recordID string) error
}

// ReminderSvc defines reminder dispatch for records
type ReminderSvc interface {
	// SendReminder sends an SMS or WhatsApp payment reminder for a record,
	// debiting the reminder cost atomically with the reminder log.
	SendReminder(ctx context.Context, actor *domain.User, recordID string, req dto.SendReminderRequest) (*domain.ReminderLog, error)

	// ListReminders lists dispatched reminders for a record.
	ListReminders(ctx context.Context, actor *domain.User, recordID string, limit int) ([]domain.ReminderLog, error)
}

// ReceiptSvc defines receipt generation for records
type ReceiptSvc interface {
	// GenerateReceiptPDF renders a PDF receipt for a record and debits the
	// receipt cost. Returns the PDF bytes and a suggested filename.
	GenerateReceiptPDF(ctx context.Context, actor *domain.User, recordID string) ([]byte, string, error)
}

// RecordSvcFacade combines all record-related service interfaces
type RecordSvcFacade interface {
	RecordReaderSvc
	RecordWriterSvc
	ReminderSvc
	ReceiptSvc
}
