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

type PgxCoinRepository struct {
	BaseRepository
}

func newPgxCoinRepository(pool *pgxpool.Pool) portsrepo.CoinRepositoryFacade {
	return &PgxCoinRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxCoinRepository implements portsrepo.CoinRepositoryFacade
var _ portsrepo.CoinRepositoryFacade = (*PgxCoinRepository)(nil)

// applyBalanceChangeTx adjusts a user's coin balance inside tx. A negative
// amount is rejected when it would push the balance below zero.
func applyBalanceChangeTx(ctx context.Context, tx pgx.Tx, userID string, amount int64) error {
	query := `
		UPDATE users
		SET coin_balance = coin_balance + $1
		WHERE user_id = $2 AND deleted_at IS NULL AND coin_balance + $1 >= 0;
	`
	cmd, err := tx.Exec(ctx, query, amount, userID)
	if err != nil {
		return fmt.Errorf("failed to update coin balance for user %s: %w", userID, err)
	}
	if cmd.RowsAffected() == 0 {
		var exists bool
		checkQuery := `SELECT EXISTS(SELECT 1 FROM users WHERE user_id = $1 AND deleted_at IS NULL);`
		if err := tx.QueryRow(ctx, checkQuery, userID).Scan(&exists); err != nil {
			return fmt.Errorf("failed to check user %s existence: %w", userID, err)
		}
		if !exists {
			return apperrors.ErrNotFound
		}
		return apperrors.ErrInsufficientCoins
	}
	return nil
}

// insertCoinTransactionTx appends a ledger entry inside tx.
func insertCoinTransactionTx(ctx context.Context, tx pgx.Tx, txn domain.CoinTransaction) error {
	query := `
		INSERT INTO coin_transactions (transaction_id, user_id, amount, type, ref, facilitated_by_agent, payment_method, notes, date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := tx.Exec(ctx, query,
		txn.TransactionID,
		txn.UserID,
		txn.Amount,
		txn.Type,
		txn.Ref,
		txn.FacilitatedByAgent,
		txn.PaymentMethod,
		txn.Notes,
		txn.Date,
	)
	if err != nil {
		return fmt.Errorf("failed to insert coin transaction %s: %w", txn.TransactionID, err)
	}
	return nil
}

// insertAuditLogTx appends an audit trail entry inside tx.
func insertAuditLogTx(ctx context.Context, tx pgx.Tx, entry domain.AuditLog) error {
	query := `
		INSERT INTO audit_logs (log_id, admin_id, action, details, timestamp)
		VALUES ($1, $2, $3, $4, $5);
	`
	_, err := tx.Exec(ctx, query,
		entry.LogID,
		entry.AdminID,
		entry.Action,
		entry.Details,
		entry.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("failed to insert audit log %s: %w", entry.LogID, err)
	}
	return nil
}

// Credit adds coins to a user's balance together with the ledger and audit
// entries, all inside one transaction.
func (r *PgxCoinRepository) Credit(ctx context.Context, txn domain.CoinTransaction, audit domain.AuditLog) error {
	if txn.Amount <= 0 {
		return fmt.Errorf("credit amount must be positive: %w", apperrors.ErrValidation)
	}
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := applyBalanceChangeTx(ctx, tx, txn.UserID, txn.Amount); err != nil {
		return err
	}
	if err := insertCoinTransactionTx(ctx, tx, txn); err != nil {
		return err
	}
	if err := insertAuditLogTx(ctx, tx, audit); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// Debit removes coins from a user's balance together with the ledger and
// audit entries. A balance that cannot cover the debit rolls everything back
// with apperrors.ErrInsufficientCoins.
func (r *PgxCoinRepository) Debit(ctx context.Context, txn domain.CoinTransaction, audit domain.AuditLog) error {
	if txn.Amount >= 0 {
		return fmt.Errorf("debit amount must be negative: %w", apperrors.ErrValidation)
	}
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := applyBalanceChangeTx(ctx, tx, txn.UserID, txn.Amount); err != nil {
		return err
	}
	if err := insertCoinTransactionTx(ctx, tx, txn); err != nil {
		return err
	}
	if err := insertAuditLogTx(ctx, tx, audit); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

func (r *PgxCoinRepository) GetBalance(ctx context.Context, userID string) (int64, error) {
	query := `SELECT coin_balance FROM users WHERE user_id = $1 AND deleted_at IS NULL;`
	var balance int64
	err := r.Pool.QueryRow(ctx, query, userID).Scan(&balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, apperrors.ErrNotFound
		}
		return 0, fmt.Errorf("failed to get coin balance for user %s: %w", userID, err)
	}
	return balance, nil
}

// SaveReceiptUpload inserts the receipt metadata and, when charge is non-nil,
// debits the upload cost in the same transaction.
func (r *PgxCoinRepository) SaveReceiptUpload(ctx context.Context, receipt domain.ReceiptUpload, charge *domain.CoinTransaction, audit domain.AuditLog) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	query := `
		INSERT INTO receipt_uploads (receipt_id, user_id, file_name, file_path, content_type, size_bytes, uploaded_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err = tx.Exec(ctx, query,
		receipt.ReceiptID,
		receipt.UserID,
		receipt.FileName,
		receipt.FilePath,
		receipt.ContentType,
		receipt.SizeBytes,
		receipt.UploadedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert receipt upload %s: %w", receipt.ReceiptID, err)
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

const coinTxnColumns = `transaction_id, user_id, amount, type, ref, facilitated_by_agent, payment_method, notes, date`

func scanCoinTransactions(rows pgx.Rows) ([]domain.CoinTransaction, error) {
	defer rows.Close()
	txns := make([]domain.CoinTransaction, 0)
	for rows.Next() {
		var txn domain.CoinTransaction
		if err := rows.Scan(
			&txn.TransactionID,
			&txn.UserID,
			&txn.Amount,
			&txn.Type,
			&txn.Ref,
			&txn.FacilitatedByAgent,
			&txn.PaymentMethod,
			&txn.Notes,
			&txn.Date,
		); err != nil {
			return nil, fmt.Errorf("failed to scan coin transaction: %w", err)
		}
		txns = append(txns, txn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating coin transactions: %w", err)
	}
	return txns, nil
}

func (r *PgxCoinRepository) FindTransactionsByUser(ctx context.Context, userID string, limit int, offset int) ([]domain.CoinTransaction, error) {
	if limit <= 0 {
		limit = 20
	}
	query := `
		SELECT ` + coinTxnColumns + `
		FROM coin_transactions
		WHERE user_id = $1
		ORDER BY date DESC
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.Pool.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query coin transactions for user %s: %w", userID, err)
	}
	return scanCoinTransactions(rows)
}

func (r *PgxCoinRepository) FindAllTransactions(ctx context.Context, limit int, offset int) ([]domain.CoinTransaction, error) {
	if limit <= 0 {
		limit = 20
	}
	query := `
		SELECT ` + coinTxnColumns + `
		FROM coin_transactions
		ORDER BY date DESC
		LIMIT $1 OFFSET $2;
	`
	rows, err := r.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query coin transactions: %w", err)
	}
	return scanCoinTransactions(rows)
}
