package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/fipithx/ficore_backend/internal/apperrors"
	"github.com/fipithx/ficore_backend/internal/core/domain"
	portsrepo "github.com/fipithx/ficore_backend/internal/core/ports/repositories"
)

type PgxCashflowRepository struct {
	BaseRepository
}

func newPgxCashflowRepository(pool *pgxpool.Pool) portsrepo.CashflowRepositoryFacade {
	return &PgxCashflowRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxCashflowRepository implements portsrepo.CashflowRepositoryFacade
var _ portsrepo.CashflowRepositoryFacade = (*PgxCashflowRepository)(nil)

const cashflowColumns = `cashflow_id, user_id, type, party_name, amount, method, category,
	created_at, created_by, last_updated_at, last_updated_by`

func scanCashflow(row pgx.Row) (*domain.Cashflow, error) {
	var cf domain.Cashflow
	err := row.Scan(
		&cf.CashflowID,
		&cf.UserID,
		&cf.Type,
		&cf.PartyName,
		&cf.Amount,
		&cf.Method,
		&cf.Category,
		&cf.CreatedAt,
		&cf.CreatedBy,
		&cf.LastUpdatedAt,
		&cf.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &cf, nil
}

func (r *PgxCashflowRepository) CreateCashflow(ctx context.Context, cashflow domain.Cashflow, charge *domain.CoinTransaction, audit domain.AuditLog) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	query := `
		INSERT INTO cashflows (cashflow_id, user_id, type, party_name, amount, method, category,
			created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err = tx.Exec(ctx, query,
		cashflow.CashflowID,
		cashflow.UserID,
		cashflow.Type,
		cashflow.PartyName,
		cashflow.Amount,
		cashflow.Method,
		cashflow.Category,
		cashflow.CreatedAt,
		cashflow.CreatedBy,
		cashflow.LastUpdatedAt,
		cashflow.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert cashflow %s: %w", cashflow.CashflowID, err)
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

func (r *PgxCashflowRepository) FindCashflowByID(ctx context.Context, cashflowID string) (*domain.Cashflow, error) {
	query := `SELECT ` + cashflowColumns + ` FROM cashflows WHERE cashflow_id = $1;`
	cf, err := scanCashflow(r.Pool.QueryRow(ctx, query, cashflowID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find cashflow %s: %w", cashflowID, err)
	}
	return cf, nil
}

func (r *PgxCashflowRepository) FindCashflows(ctx context.Context, userID string, flowType domain.CashflowType, from, to time.Time, limit int, offset int) ([]domain.Cashflow, error) {
	if limit <= 0 {
		limit = 20
	}
	query := `
		SELECT ` + cashflowColumns + `
		FROM cashflows
		WHERE ($1 = '' OR user_id = $1)
		  AND ($2 = '' OR type = $2)
		  AND ($3::timestamptz IS NULL OR created_at >= $3)
		  AND ($4::timestamptz IS NULL OR created_at < $4)
		ORDER BY created_at DESC
		LIMIT $5 OFFSET $6;
	`
	var fromArg, toArg *time.Time
	if !from.IsZero() {
		fromArg = &from
	}
	if !to.IsZero() {
		toArg = &to
	}
	rows, err := r.Pool.Query(ctx, query, userID, string(flowType), fromArg, toArg, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query cashflows: %w", err)
	}
	defer rows.Close()

	cashflows := make([]domain.Cashflow, 0)
	for rows.Next() {
		cf, err := scanCashflow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan cashflow: %w", err)
		}
		cashflows = append(cashflows, *cf)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating cashflows: %w", err)
	}
	return cashflows, nil
}

func (r *PgxCashflowRepository) SumCashflows(ctx context.Context, userID string, from, to time.Time) (decimal.Decimal, decimal.Decimal, error) {
	query := `
		SELECT
			COALESCE(SUM(amount) FILTER (WHERE type = 'receipt'), 0),
			COALESCE(SUM(amount) FILTER (WHERE type = 'payment'), 0)
		FROM cashflows
		WHERE ($1 = '' OR user_id = $1)
		  AND ($2::timestamptz IS NULL OR created_at >= $2)
		  AND ($3::timestamptz IS NULL OR created_at < $3);
	`
	var fromArg, toArg *time.Time
	if !from.IsZero() {
		fromArg = &from
	}
	if !to.IsZero() {
		toArg = &to
	}
	var receipts, payments decimal.Decimal
	err := r.Pool.QueryRow(ctx, query, userID, fromArg, toArg).Scan(&receipts, &payments)
	if err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("failed to sum cashflows for user %s: %w", userID, err)
	}
	return receipts, payments, nil
}

func (r *PgxCashflowRepository) UpdateCashflow(ctx context.Context, cashflow domain.Cashflow) error {
	query := `
		UPDATE cashflows SET
			party_name = $2,
			amount = $3,
			method = $4,
			category = $5,
			last_updated_at = $6,
			last_updated_by = $7
		WHERE cashflow_id = $1;
	`
	cmd, err := r.Pool.Exec(ctx, query,
		cashflow.CashflowID,
		cashflow.PartyName,
		cashflow.Amount,
		cashflow.Method,
		cashflow.Category,
		cashflow.LastUpdatedAt,
		cashflow.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update cashflow %s: %w", cashflow.CashflowID, err)
	}
	if cmd.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxCashflowRepository) DeleteCashflow(ctx context.Context, cashflowID string) error {
	cmd, err := r.Pool.Exec(ctx, `DELETE FROM cashflows WHERE cashflow_id = $1;`, cashflowID)
	if err != nil {
		return fmt.Errorf("failed to delete cashflow %s: %w", cashflowID, err)
	}
	if cmd.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
