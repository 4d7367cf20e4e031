package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fipithx/ficore_backend/internal/apperrors"
	"github.com/fipithx/ficore_backend/internal/core/domain"
	portsrepo "github.com/fipithx/ficore_backend/internal/core/ports/repositories"
)

type PgxPersonalRepository struct {
	BaseRepository
}

func newPgxPersonalRepository(pool *pgxpool.Pool) portsrepo.PersonalRepositoryFacade {
	return &PgxPersonalRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxPersonalRepository implements portsrepo.PersonalRepositoryFacade
var _ portsrepo.PersonalRepositoryFacade = (*PgxPersonalRepository)(nil)

// ownerClause matches rows by user when $1 is set, else by session via $2.
const ownerClause = `(($1 <> '' AND user_id = $1) OR ($1 = '' AND session_id = $2))`

func (r *PgxPersonalRepository) SaveBudget(ctx context.Context, budget domain.Budget) error {
	query := `
		INSERT INTO budgets (budget_id, user_id, session_id, income, housing, food, transport,
			dependents, miscellaneous, others, fixed_expenses, savings_goal, surplus_deficit, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err := r.Pool.Exec(ctx, query,
		budget.BudgetID,
		budget.UserID,
		budget.SessionID,
		budget.Income,
		budget.Housing,
		budget.Food,
		budget.Transport,
		budget.Dependents,
		budget.Miscellaneous,
		budget.Others,
		budget.FixedExpenses,
		budget.SavingsGoal,
		budget.SurplusDeficit,
		budget.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert budget %s: %w", budget.BudgetID, err)
	}
	return nil
}

func (r *PgxPersonalRepository) FindBudgets(ctx context.Context, owner portsrepo.Owner, limit int) ([]domain.Budget, error) {
	if limit <= 0 {
		limit = 20
	}
	query := `
		SELECT budget_id, user_id, session_id, income, housing, food, transport,
			dependents, miscellaneous, others, fixed_expenses, savings_goal, surplus_deficit, created_at
		FROM budgets
		WHERE ` + ownerClause + `
		ORDER BY created_at DESC
		LIMIT $3;
	`
	rows, err := r.Pool.Query(ctx, query, owner.UserID, owner.SessionID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query budgets: %w", err)
	}
	defer rows.Close()

	budgets := make([]domain.Budget, 0)
	for rows.Next() {
		var b domain.Budget
		if err := rows.Scan(
			&b.BudgetID, &b.UserID, &b.SessionID, &b.Income, &b.Housing, &b.Food, &b.Transport,
			&b.Dependents, &b.Miscellaneous, &b.Others, &b.FixedExpenses, &b.SavingsGoal,
			&b.SurplusDeficit, &b.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan budget: %w", err)
		}
		budgets = append(budgets, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating budgets: %w", err)
	}
	return budgets, nil
}

func (r *PgxPersonalRepository) DeleteBudget(ctx context.Context, owner portsrepo.Owner, budgetID string) error {
	query := `DELETE FROM budgets WHERE ` + ownerClause + ` AND budget_id = $3;`
	cmd, err := r.Pool.Exec(ctx, query, owner.UserID, owner.SessionID, budgetID)
	if err != nil {
		return fmt.Errorf("failed to delete budget %s: %w", budgetID, err)
	}
	if cmd.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

const billColumns = `bill_id, user_id, session_id, user_email, name, amount, due_date, frequency,
	category, status, send_email, created_at, updated_at`

func scanBill(row pgx.Row) (*domain.Bill, error) {
	var b domain.Bill
	err := row.Scan(
		&b.BillID, &b.UserID, &b.SessionID, &b.UserEmail, &b.Name, &b.Amount, &b.DueDate,
		&b.Frequency, &b.Category, &b.Status, &b.SendEmail, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *PgxPersonalRepository) SaveBill(ctx context.Context, bill domain.Bill) error {
	query := `
		INSERT INTO bills (` + billColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := r.Pool.Exec(ctx, query,
		bill.BillID, bill.UserID, bill.SessionID, bill.UserEmail, bill.Name, bill.Amount,
		bill.DueDate, bill.Frequency, bill.Category, bill.Status, bill.SendEmail,
		bill.CreatedAt, bill.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert bill %s: %w", bill.BillID, err)
	}
	return nil
}

func (r *PgxPersonalRepository) FindBillByID(ctx context.Context, owner portsrepo.Owner, billID string) (*domain.Bill, error) {
	query := `SELECT ` + billColumns + ` FROM bills WHERE ` + ownerClause + ` AND bill_id = $3;`
	bill, err := scanBill(r.Pool.QueryRow(ctx, query, owner.UserID, owner.SessionID, billID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find bill %s: %w", billID, err)
	}
	return bill, nil
}

func (r *PgxPersonalRepository) FindBills(ctx context.Context, owner portsrepo.Owner, status domain.BillStatus, limit int) ([]domain.Bill, error) {
	if limit <= 0 {
		limit = 50
	}
	query := `
		SELECT ` + billColumns + `
		FROM bills
		WHERE ` + ownerClause + ` AND ($3 = '' OR status = $3)
		ORDER BY due_date ASC
		LIMIT $4;
	`
	rows, err := r.Pool.Query(ctx, query, owner.UserID, owner.SessionID, string(status), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query bills: %w", err)
	}
	defer rows.Close()

	bills := make([]domain.Bill, 0)
	for rows.Next() {
		bill, err := scanBill(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan bill: %w", err)
		}
		bills = append(bills, *bill)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating bills: %w", err)
	}
	return bills, nil
}

func (r *PgxPersonalRepository) UpdateBill(ctx context.Context, owner portsrepo.Owner, bill domain.Bill) error {
	query := `
		UPDATE bills SET
			name = $4,
			amount = $5,
			due_date = $6,
			frequency = $7,
			category = $8,
			status = $9,
			send_email = $10,
			updated_at = $11
		WHERE ` + ownerClause + ` AND bill_id = $3;
	`
	cmd, err := r.Pool.Exec(ctx, query,
		owner.UserID, owner.SessionID, bill.BillID,
		bill.Name, bill.Amount, bill.DueDate, bill.Frequency, bill.Category,
		bill.Status, bill.SendEmail, bill.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update bill %s: %w", bill.BillID, err)
	}
	if cmd.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxPersonalRepository) DeleteBill(ctx context.Context, owner portsrepo.Owner, billID string) error {
	query := `DELETE FROM bills WHERE ` + ownerClause + ` AND bill_id = $3;`
	cmd, err := r.Pool.Exec(ctx, query, owner.UserID, owner.SessionID, billID)
	if err != nil {
		return fmt.Errorf("failed to delete bill %s: %w", billID, err)
	}
	if cmd.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxPersonalRepository) MarkOverdueBills(ctx context.Context, now time.Time) (int64, error) {
	query := `UPDATE bills SET status = 'overdue', updated_at = $1 WHERE status = 'unpaid' AND due_date < $1;`
	cmd, err := r.Pool.Exec(ctx, query, now)
	if err != nil {
		return 0, fmt.Errorf("failed to mark overdue bills: %w", err)
	}
	return cmd.RowsAffected(), nil
}

func (r *PgxPersonalRepository) SaveNetWorth(ctx context.Context, record domain.NetWorthRecord) error {
	query := `
		INSERT INTO net_worth_records (record_id, user_id, session_id, cash_savings, investments, property,
			loans, total_assets, total_liabilities, net_worth, badges, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := r.Pool.Exec(ctx, query,
		record.RecordID, record.UserID, record.SessionID, record.CashSavings, record.Investments,
		record.Property, record.Loans, record.TotalAssets, record.TotalLiabilities, record.NetWorth,
		record.Badges, record.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert net worth record %s: %w", record.RecordID, err)
	}
	return nil
}

func (r *PgxPersonalRepository) FindNetWorthRecords(ctx context.Context, owner portsrepo.Owner, limit int) ([]domain.NetWorthRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	query := `
		SELECT record_id, user_id, session_id, cash_savings, investments, property,
			loans, total_assets, total_liabilities, net_worth, badges, created_at
		FROM net_worth_records
		WHERE ` + ownerClause + `
		ORDER BY created_at DESC
		LIMIT $3;
	`
	rows, err := r.Pool.Query(ctx, query, owner.UserID, owner.SessionID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query net worth records: %w", err)
	}
	defer rows.Close()

	records := make([]domain.NetWorthRecord, 0)
	for rows.Next() {
		var nw domain.NetWorthRecord
		if err := rows.Scan(
			&nw.RecordID, &nw.UserID, &nw.SessionID, &nw.CashSavings, &nw.Investments, &nw.Property,
			&nw.Loans, &nw.TotalAssets, &nw.TotalLiabilities, &nw.NetWorth, &nw.Badges, &nw.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan net worth record: %w", err)
		}
		records = append(records, nw)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating net worth records: %w", err)
	}
	return records, nil
}

func (r *PgxPersonalRepository) SaveEmergencyFund(ctx context.Context, fund domain.EmergencyFund) error {
	query := `
		INSERT INTO emergency_funds (fund_id, user_id, session_id, monthly_expenses, monthly_income,
			risk_tolerance, dependents, current_savings, timeline_months, recommended_months,
			target_amount, savings_gap, monthly_savings, percent_of_income, badges, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);
	`
	_, err := r.Pool.Exec(ctx, query,
		fund.FundID, fund.UserID, fund.SessionID, fund.MonthlyExpenses, fund.MonthlyIncome,
		fund.RiskTolerance, fund.Dependents, fund.CurrentSavings, fund.TimelineMonths,
		fund.RecommendedMonths, fund.TargetAmount, fund.SavingsGap, fund.MonthlySavings,
		fund.PercentOfIncome, fund.Badges, fund.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert emergency fund %s: %w", fund.FundID, err)
	}
	return nil
}

func (r *PgxPersonalRepository) FindEmergencyFunds(ctx context.Context, owner portsrepo.Owner, limit int) ([]domain.EmergencyFund, error) {
	if limit <= 0 {
		limit = 20
	}
	query := `
		SELECT fund_id, user_id, session_id, monthly_expenses, monthly_income,
			risk_tolerance, dependents, current_savings, timeline_months, recommended_months,
			target_amount, savings_gap, monthly_savings, percent_of_income, badges, created_at
		FROM emergency_funds
		WHERE ` + ownerClause + `
		ORDER BY created_at DESC
		LIMIT $3;
	`
	rows, err := r.Pool.Query(ctx, query, owner.UserID, owner.SessionID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query emergency funds: %w", err)
	}
	defer rows.Close()

	funds := make([]domain.EmergencyFund, 0)
	for rows.Next() {
		var f domain.EmergencyFund
		if err := rows.Scan(
			&f.FundID, &f.UserID, &f.SessionID, &f.MonthlyExpenses, &f.MonthlyIncome,
			&f.RiskTolerance, &f.Dependents, &f.CurrentSavings, &f.TimelineMonths,
			&f.RecommendedMonths, &f.TargetAmount, &f.SavingsGap, &f.MonthlySavings,
			&f.PercentOfIncome, &f.Badges, &f.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan emergency fund: %w", err)
		}
		funds = append(funds, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating emergency funds: %w", err)
	}
	return funds, nil
}

func (r *PgxPersonalRepository) SaveHealthScore(ctx context.Context, score domain.FinancialHealthScore) error {
	query := `
		INSERT INTO health_scores (score_id, user_id, session_id, first_name, email, user_type,
			income, expenses, debt, interest_rate, debt_to_income, savings_rate, interest_burden,
			score, status, badges, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17);
	`
	_, err := r.Pool.Exec(ctx, query,
		score.ScoreID, score.UserID, score.SessionID, score.FirstName, score.Email, score.UserType,
		score.Income, score.Expenses, score.Debt, score.InterestRate, score.DebtToIncome,
		score.SavingsRate, score.InterestBurden, score.Score, score.Status, score.Badges,
		score.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert health score %s: %w", score.ScoreID, err)
	}
	return nil
}

func (r *PgxPersonalRepository) FindHealthScores(ctx context.Context, owner portsrepo.Owner, limit int) ([]domain.FinancialHealthScore, error) {
	if limit <= 0 {
		limit = 20
	}
	query := `
		SELECT score_id, user_id, session_id, first_name, email, user_type,
			income, expenses, debt, interest_rate, debt_to_income, savings_rate, interest_burden,
			score, status, badges, created_at
		FROM health_scores
		WHERE ` + ownerClause + `
		ORDER BY created_at DESC
		LIMIT $3;
	`
	rows, err := r.Pool.Query(ctx, query, owner.UserID, owner.SessionID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query health scores: %w", err)
	}
	defer rows.Close()

	scores := make([]domain.FinancialHealthScore, 0)
	for rows.Next() {
		var s domain.FinancialHealthScore
		if err := rows.Scan(
			&s.ScoreID, &s.UserID, &s.SessionID, &s.FirstName, &s.Email, &s.UserType,
			&s.Income, &s.Expenses, &s.Debt, &s.InterestRate, &s.DebtToIncome,
			&s.SavingsRate, &s.InterestBurden, &s.Score, &s.Status, &s.Badges, &s.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan health score: %w", err)
		}
		scores = append(scores, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating health scores: %w", err)
	}
	return scores, nil
}

func (r *PgxPersonalRepository) AllScores(ctx context.Context) ([]float64, error) {
	rows, err := r.Pool.Query(ctx, `SELECT score FROM health_scores;`)
	if err != nil {
		return nil, fmt.Errorf("failed to query all health scores: %w", err)
	}
	defer rows.Close()

	scores := make([]float64, 0)
	for rows.Next() {
		var s float64
		if err := rows.Scan(&s); err != nil {
			return nil, fmt.Errorf("failed to scan score value: %w", err)
		}
		scores = append(scores, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating score values: %w", err)
	}
	return scores, nil
}

func (r *PgxPersonalRepository) SaveQuizResult(ctx context.Context, result domain.QuizResult) error {
	query := `
		INSERT INTO quiz_results (result_id, user_id, session_id, answers, score, personality, badges, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.Pool.Exec(ctx, query,
		result.ResultID, result.UserID, result.SessionID, result.Answers,
		result.Score, result.Personality, result.Badges, result.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert quiz result %s: %w", result.ResultID, err)
	}
	return nil
}

func (r *PgxPersonalRepository) FindQuizResults(ctx context.Context, owner portsrepo.Owner, limit int) ([]domain.QuizResult, error) {
	if limit <= 0 {
		limit = 20
	}
	query := `
		SELECT result_id, user_id, session_id, answers, score, personality, badges, created_at
		FROM quiz_results
		WHERE ` + ownerClause + `
		ORDER BY created_at DESC
		LIMIT $3;
	`
	rows, err := r.Pool.Query(ctx, query, owner.UserID, owner.SessionID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query quiz results: %w", err)
	}
	defer rows.Close()

	results := make([]domain.QuizResult, 0)
	for rows.Next() {
		var q domain.QuizResult
		if err := rows.Scan(
			&q.ResultID, &q.UserID, &q.SessionID, &q.Answers, &q.Score,
			&q.Personality, &q.Badges, &q.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan quiz result: %w", err)
		}
		results = append(results, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating quiz results: %w", err)
	}
	return results, nil
}
