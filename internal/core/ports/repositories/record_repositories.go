package repositories

import (
	"context"

	"github.com/fipithx/ficore_backend/internal/core/domain"
)

// RecordReader defines read operations for debtor/creditor records
type RecordReader interface {
	// FindRecordByID retrieves a specific record.
	FindRecordByID(ctx context.Context, recordID string) (*domain.Record, error)

	// FindRecords retrieves records for a user, newest first. An empty userID
	// returns records across all users; an empty recordType returns both types.
	FindRecords(ctx context.Context, userID string, recordType domain.RecordType, limit int, offset int) ([]domain.Record, error)
}

// RecordWriter defines write operations for debtor/creditor records
type RecordWriter interface {
	// CreateRecord persists a new record. When charge is non-nil the coin
	// debit, its ledger entry and audit log are written in the same
	// transaction; apperrors.ErrInsufficientCoins rolls everything back.
	CreateRecord(ctx context.Context, record domain.Record, charge *domain.CoinTransaction, audit domain.AuditLog) error

	// UpdateRecord updates an existing record's details.
	UpdateRecord(ctx context.Context, record domain.Record) error

	// DeleteRecord removes a record.
	DeleteRecord(ctx context.Context, recordID string) error

	// RecordReminder increments the record's reminder count and appends the
	// reminder log entry; a non-nil charge debits the sender in the same
	// transaction.
	RecordReminder(ctx context.Context, recordID string, logEntry domain.ReminderLog, charge *domain.CoinTransaction, audit domain.AuditLog) error
}

// ReminderLogReader defines read operations for reminder logs
type ReminderLogReader interface {
	// FindRemindersByRecord retrieves reminder log entries for a record, newest first.
	FindRemindersByRecord(ctx context.Context, recordID string, limit int) ([]domain.ReminderLog, error)
}

// RecordRepositoryFacade combines all record-related repository interfaces
type RecordRepositoryFacade interface {
	RecordReader
	RecordWriter
	ReminderLogReader
}
