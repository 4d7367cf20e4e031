package repositories

import (
	"context"

	"github.com/fipithx/ficore_backend/internal/core/domain"
)

// CoinLedgerReader defines read operations for the coin ledger
type CoinLedgerReader interface {
	// GetBalance returns the current coin balance for a user.
	GetBalance(ctx context.Context, userID string) (int64, error)

	// FindTransactionsByUser retrieves a user's coin transactions, newest first.
	FindTransactionsByUser(ctx context.Context, userID string, limit int, offset int) ([]domain.CoinTransaction, error)

	// FindAllTransactions retrieves coin transactions across all users, newest first.
	FindAllTransactions(ctx context.Context, limit int, offset int) ([]domain.CoinTransaction, error)
}

// CoinLedgerWriter defines write operations for the coin ledger.
// Every write adjusts the user balance, appends the ledger entry and appends
// the audit log entry in a single transaction.
type CoinLedgerWriter interface {
	// Credit adds txn.Amount (positive) to the user's balance.
	Credit(ctx context.Context, txn domain.CoinTransaction, audit domain.AuditLog) error

	// Debit subtracts -txn.Amount (txn.Amount is negative) from the user's
	// balance. Returns apperrors.ErrInsufficientCoins when the balance would
	// go below zero; no rows are written in that case.
	Debit(ctx context.Context, txn domain.CoinTransaction, audit domain.AuditLog) error
}

// ReceiptUploadRepository defines operations for payment receipt uploads
type ReceiptUploadRepository interface {
	// SaveReceiptUpload inserts the receipt metadata and, when charge is
	// non-nil, debits the upload cost in the same transaction.
	SaveReceiptUpload(ctx context.Context, receipt domain.ReceiptUpload, charge *domain.CoinTransaction, audit domain.AuditLog) error
}

// CoinRepositoryFacade combines all coin ledger repository interfaces
type CoinRepositoryFacade interface {
	CoinLedgerReader
	CoinLedgerWriter
	ReceiptUploadRepository
}
