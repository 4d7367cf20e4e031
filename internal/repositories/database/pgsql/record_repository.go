package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fipithx/ficore_backend/internal/apperrors"
	"github.com/fipithx/ficore_backend/internal/core/domain"
	portsrepo "github.com/fipithx/ficore_backend/internal/core/ports/repositories"
)

type PgxRecordRepository struct {
	BaseRepository
}

func newPgxRecordRepository(pool *pgxpool.Pool) portsrepo.RecordRepositoryFacade {
	return &PgxRecordRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxRecordRepository implements portsrepo.RecordRepositoryFacade
var _ portsrepo.RecordRepositoryFacade = (*PgxRecordRepository)(nil)

const recordColumns = `record_id, user_id, type, name, contact, amount_owed, description, reminder_count,
	created_at, created_by, last_updated_at, last_updated_by`

func scanRecord(row pgx.Row) (*domain.Record, error) {
	var rec domain.Record
	err := row.Scan(
		&rec.RecordID,
		&rec.UserID,
		&rec.Type,
		&rec.Name,
		&rec.Contact,
		&rec.AmountOwed,
		&rec.Description,
		&rec.ReminderCount,
		&rec.CreatedAt,
		&rec.CreatedBy,
		&rec.LastUpdatedAt,
		&rec.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// CreateRecord inserts the record and, when charge is non-nil, debits the
// creation cost in the same transaction.
func (r *PgxRecordRepository) CreateRecord(ctx context.Context, record domain.Record, charge *domain.CoinTransaction, audit domain.AuditLog) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	query := `
		INSERT INTO records (record_id, user_id, type, name, contact, amount_owed, description, reminder_count,
			created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err = tx.Exec(ctx, query,
		record.RecordID,
		record.UserID,
		record.Type,
		record.Name,
		record.Contact,
		record.AmountOwed,
		record.Description,
		record.ReminderCount,
		record.CreatedAt,
		record.CreatedBy,
		record.LastUpdatedAt,
		record.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert record %s: %w", record.RecordID, err)
	}

	if charge != nil {
		if err := applyBalanceChangeTx(ctx, tx, charge.UserID, charge.Amount); err != nil {
			return err
		}
		if err := insertCoinTransactionTx(ctx, tx, *charge); err != nil {
			return err
		}
	}
	if err := insertAuditLogTx(ctx, tx, audit); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

func (r *PgxRecordRepository) FindRecordByID(ctx context.Context, recordID string) (*domain.Record, error) {
	query := `SELECT ` + recordColumns + ` FROM records WHERE record_id = $1;`
	rec, err := scanRecord(r.Pool.QueryRow(ctx, query, recordID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find record %s: %w", recordID, err)
	}
	return rec, nil
}

func (r *PgxRecordRepository) FindRecords(ctx context.Context, userID string, recordType domain.RecordType, limit int, offset int) ([]domain.Record, error) {
	if limit <= 0 {
		limit = 20
	}
	query := `
		SELECT ` + recordColumns + `
		FROM records
		WHERE ($1 = '' OR user_id = $1) AND ($2 = '' OR type = $2)
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4;
	`
	rows, err := r.Pool.Query(ctx, query, userID, string(recordType), limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query records: %w", err)
	}
	defer rows.Close()

	records := make([]domain.Record, 0)
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}
		records = append(records, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating records: %w", err)
	}
	return records, nil
}

func (r *PgxRecordRepository) UpdateRecord(ctx context.Context, record domain.Record) error {
	query := `
		UPDATE records SET
			name = $2,
			contact = $3,
			amount_owed = $4,
			description = $5,
			last_updated_at = $6,
			last_updated_by = $7
		WHERE record_id = $1;
	`
	cmd, err := r.Pool.Exec(ctx, query,
		record.RecordID,
		record.Name,
		record.Contact,
		record.AmountOwed,
		record.Description,
		record.LastUpdatedAt,
		record.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update record %s: %w", record.RecordID, err)
	}
	if cmd.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxRecordRepository) DeleteRecord(ctx context.Context, recordID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if _, err := tx.Exec(ctx, `DELETE FROM reminder_logs WHERE debt_id = $1;`, recordID); err != nil {
		return fmt.Errorf("failed to delete reminder logs for record %s: %w", recordID, err)
	}
	cmd, err := tx.Exec(ctx, `DELETE FROM records WHERE record_id = $1;`, recordID)
	if err != nil {
		return fmt.Errorf("failed to delete record %s: %w", recordID, err)
	}
	if cmd.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return r.Commit(ctx, tx)
}

// RecordReminder bumps the reminder counter, appends the reminder log and,
// when charge is non-nil, debits the reminder cost, all in one transaction.
func (r *PgxRecordRepository) RecordReminder(ctx context.Context, recordID string, logEntry domain.ReminderLog, charge *domain.CoinTransaction, audit domain.AuditLog) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	cmd, err := tx.Exec(ctx, `UPDATE records SET reminder_count = reminder_count + 1 WHERE record_id = $1;`, recordID)
	if err != nil {
		return fmt.Errorf("failed to bump reminder count for record %s: %w", recordID, err)
	}
	if cmd.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	logQuery := `
		INSERT INTO reminder_logs (notification_id, user_id, debt_id, recipient, message, type, api_response, read_status, sent_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err = tx.Exec(ctx, logQuery,
		logEntry.NotificationID,
		logEntry.UserID,
		logEntry.DebtID,
		logEntry.Recipient,
		logEntry.Message,
		logEntry.Type,
		logEntry.APIResponse,
		logEntry.ReadStatus,
		logEntry.SentAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert reminder log %s: %w", logEntry.NotificationID, err)
	}

	if charge != nil {
		if err := applyBalanceChangeTx(ctx, tx, charge.UserID, charge.Amount); err != nil {
			return err
		}
		if err := insertCoinTransactionTx(ctx, tx, *charge); err != nil {
			return err
		}
	}
	if err := insertAuditLogTx(ctx, tx, audit); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

func (r *PgxRecordRepository) FindRemindersByRecord(ctx context.Context, recordID string, limit int) ([]domain.ReminderLog, error) {
	if limit <= 0 {
		limit = 20
	}
	query := `
		SELECT notification_id, user_id, debt_id, recipient, message, type, api_response, read_status, sent_at
		FROM reminder_logs
		WHERE debt_id = $1
		ORDER BY sent_at DESC
		LIMIT $2;
	`
	rows, err := r.Pool.Query(ctx, query, recordID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query reminder logs for record %s: %w", recordID, err)
	}
	defer rows.Close()

	logs := make([]domain.ReminderLog, 0)
	for rows.Next() {
		var l domain.ReminderLog
		if err := rows.Scan(
			&l.NotificationID,
			&l.UserID,
			&l.DebtID,
			&l.Recipient,
			&l.Message,
			&l.Type,
			&l.APIResponse,
			&l.ReadStatus,
			&l.SentAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan reminder log: %w", err)
		}
		logs = append(logs, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating reminder logs: %w", err)
	}
	return logs, nil
}
