package repositories

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fipithx/ficore_backend/internal/core/domain"
)

// CashflowReader defines read operations for cashflow entries
type CashflowReader interface {
	// FindCashflowByID retrieves a specific cashflow entry.
	FindCashflowByID(ctx context.Context, cashflowID string) (*domain.Cashflow, error)

	// FindCashflows retrieves cashflow entries for a user, newest first.
	// An empty userID returns entries across all users; an empty flowType
	// returns both receipts and payments. Zero from/to skip date filtering.
	FindCashflows(ctx context.Context, userID string, flowType domain.CashflowType, from, to time.Time, limit int, offset int) ([]domain.Cashflow, error)

	// SumCashflows returns the receipt and payment totals for a user over a period.
	SumCashflows(ctx context.Context, userID string, from, to time.Time) (receipts, payments decimal.Decimal, err error)
}

// CashflowWriter defines write operations for cashflow entries
type CashflowWriter interface {
	// CreateCashflow persists a new cashflow entry. A non-nil charge debits
	// the user in the same transaction.
	CreateCashflow(ctx context.Context, cashflow domain.Cashflow, charge *domain.CoinTransaction, audit domain.AuditLog) error

	// UpdateCashflow updates an existing cashflow entry.
	UpdateCashflow(ctx context.Context, cashflow domain.Cashflow) error

	// DeleteCashflow removes a cashflow entry.
	DeleteCashflow(ctx context.Context, cashflowID string) error
}

// CashflowRepositoryFacade combines all cashflow-related repository interfaces
type CashflowRepositoryFacade interface {
	CashflowReader
	CashflowWriter
}
