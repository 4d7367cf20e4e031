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

type PgxUserRepository struct {
	BaseRepository
}

func newPgxUserRepository(pool *pgxpool.Pool) portsrepo.UserRepositoryFacade {
	return &PgxUserRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxUserRepository implements portsrepo.UserRepositoryFacade
var _ portsrepo.UserRepositoryFacade = (*PgxUserRepository)(nil)

const userColumns = `user_id, email, password_hash, role, coin_balance, language, display_name,
	dark_mode, setup_complete, business_details, personal_details, agent_details,
	notify_email, notify_sms, otp_hash, otp_expiry, reset_token_hash, reset_token_expiry,
	refresh_token_hash, refresh_token_expiry,
	created_at, created_by, last_updated_at, last_updated_by, deleted_at`

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	var otpHash, resetTokenHash, refreshTokenHash *string
	err := row.Scan(
		&u.UserID,
		&u.Email,
		&u.PasswordHash,
		&u.Role,
		&u.CoinBalance,
		&u.Language,
		&u.DisplayName,
		&u.DarkMode,
		&u.SetupComplete,
		&u.BusinessDetails,
		&u.PersonalDetails,
		&u.AgentDetails,
		&u.NotifyEmail,
		&u.NotifySMS,
		&otpHash,
		&u.OTPExpiry,
		&resetTokenHash,
		&u.ResetTokenExpiry,
		&refreshTokenHash,
		&u.RefreshTokenExpiryTime,
		&u.CreatedAt,
		&u.CreatedBy,
		&u.LastUpdatedAt,
		&u.LastUpdatedBy,
		&u.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	if otpHash != nil {
		u.OTPHash = *otpHash
	}
	if resetTokenHash != nil {
		u.ResetTokenHash = *resetTokenHash
	}
	if refreshTokenHash != nil {
		u.RefreshTokenHash = *refreshTokenHash
	}
	return &u, nil
}

func (r *PgxUserRepository) findUserWhere(ctx context.Context, where string, arg any) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE ` + where + ` AND deleted_at IS NULL;`
	user, err := scanUser(r.Pool.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

func (r *PgxUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	return r.findUserWhere(ctx, "user_id = $1", userID)
}

func (r *PgxUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findUserWhere(ctx, "email = $1", email)
}

func (r *PgxUserRepository) FindUserByResetTokenHash(ctx context.Context, tokenHash string) (*domain.User, error) {
	return r.findUserWhere(ctx, "reset_token_hash = $1", tokenHash)
}

func (r *PgxUserRepository) FindUsers(ctx context.Context, role domain.Role, limit int, offset int) ([]domain.User, error) {
	if limit <= 0 {
		limit = 20
	}
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE deleted_at IS NULL AND ($1 = '' OR role = $1)
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.Pool.Query(ctx, query, string(role), limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	users := make([]domain.User, 0)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, *user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating users: %w", err)
	}
	return users, nil
}

func (r *PgxUserRepository) CountUsersByRole(ctx context.Context) (map[domain.Role]int64, error) {
	query := `
		SELECT role, COUNT(*)
		FROM users
		WHERE deleted_at IS NULL
		GROUP BY role;
	`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to count users by role: %w", err)
	}
	defer rows.Close()

	counts := make(map[domain.Role]int64)
	for rows.Next() {
		var role domain.Role
		var count int64
		if err := rows.Scan(&role, &count); err != nil {
			return nil, fmt.Errorf("failed to scan role count: %w", err)
		}
		counts[role] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating role counts: %w", err)
	}
	return counts, nil
}

// SaveUserWithSignupBonus inserts the user row, the signup bonus ledger entry
// and its audit log in one transaction, so no account ever exists without the
// bonus on its ledger.
func (r *PgxUserRepository) SaveUserWithSignupBonus(ctx context.Context, user domain.User, bonus domain.CoinTransaction, audit domain.AuditLog) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	query := `
		INSERT INTO users (
			user_id, email, password_hash, role, coin_balance, language, display_name,
			dark_mode, setup_complete, business_details, personal_details, agent_details,
			notify_email, notify_sms,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18);
	`
	_, err = tx.Exec(ctx, query,
		user.UserID,
		user.Email,
		user.PasswordHash,
		user.Role,
		user.CoinBalance,
		user.Language,
		user.DisplayName,
		user.DarkMode,
		user.SetupComplete,
		user.BusinessDetails,
		user.PersonalDetails,
		user.AgentDetails,
		user.NotifyEmail,
		user.NotifySMS,
		user.CreatedAt,
		user.CreatedBy,
		user.LastUpdatedAt,
		user.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return fmt.Errorf("failed to insert user %s: %w", user.UserID, err)
	}

	if err := insertCoinTransactionTx(ctx, tx, bonus); err != nil {
		return err
	}
	if err := insertAuditLogTx(ctx, tx, audit); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

func (r *PgxUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	query := `
		UPDATE users SET
			email = $2,
			role = $3,
			language = $4,
			display_name = $5,
			dark_mode = $6,
			setup_complete = $7,
			business_details = $8,
			personal_details = $9,
			agent_details = $10,
			notify_email = $11,
			notify_sms = $12,
			last_updated_at = $13,
			last_updated_by = $14
		WHERE user_id = $1 AND deleted_at IS NULL;
	`
	cmd, err := r.Pool.Exec(ctx, query,
		user.UserID,
		user.Email,
		user.Role,
		user.Language,
		user.DisplayName,
		user.DarkMode,
		user.SetupComplete,
		user.BusinessDetails,
		user.PersonalDetails,
		user.AgentDetails,
		user.NotifyEmail,
		user.NotifySMS,
		user.LastUpdatedAt,
		user.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return fmt.Errorf("failed to update user %s: %w", user.UserID, err)
	}
	if cmd.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxUserRepository) UpdatePasswordHash(ctx context.Context, userID string, passwordHash string, updatedAt time.Time) error {
	query := `
		UPDATE users SET
			password_hash = $2,
			reset_token_hash = NULL,
			reset_token_expiry = NULL,
			last_updated_at = $3,
			last_updated_by = $1
		WHERE user_id = $1 AND deleted_at IS NULL;
	`
	cmd, err := r.Pool.Exec(ctx, query, userID, passwordHash, updatedAt)
	if err != nil {
		return fmt.Errorf("failed to update password for user %s: %w", userID, err)
	}
	if cmd.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxUserRepository) UpdateOTP(ctx context.Context, userID string, otpHash *string, expiry *time.Time) error {
	query := `UPDATE users SET otp_hash = $2, otp_expiry = $3 WHERE user_id = $1 AND deleted_at IS NULL;`
	cmd, err := r.Pool.Exec(ctx, query, userID, otpHash, expiry)
	if err != nil {
		return fmt.Errorf("failed to update OTP for user %s: %w", userID, err)
	}
	if cmd.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxUserRepository) UpdateResetToken(ctx context.Context, userID string, tokenHash *string, expiry *time.Time) error {
	query := `UPDATE users SET reset_token_hash = $2, reset_token_expiry = $3 WHERE user_id = $1 AND deleted_at IS NULL;`
	cmd, err := r.Pool.Exec(ctx, query, userID, tokenHash, expiry)
	if err != nil {
		return fmt.Errorf("failed to update reset token for user %s: %w", userID, err)
	}
	if cmd.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxUserRepository) UpdateRefreshToken(ctx context.Context, userID string, refreshTokenHash string, refreshTokenExpiryTime time.Time) error {
	query := `UPDATE users SET refresh_token_hash = $2, refresh_token_expiry = $3 WHERE user_id = $1 AND deleted_at IS NULL;`
	cmd, err := r.Pool.Exec(ctx, query, userID, refreshTokenHash, refreshTokenExpiryTime)
	if err != nil {
		return fmt.Errorf("failed to update refresh token for user %s: %w", userID, err)
	}
	if cmd.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxUserRepository) ClearRefreshToken(ctx context.Context, userID string) error {
	query := `UPDATE users SET refresh_token_hash = NULL, refresh_token_expiry = NULL WHERE user_id = $1 AND deleted_at IS NULL;`
	cmd, err := r.Pool.Exec(ctx, query, userID)
	if err != nil {
		return fmt.Errorf("failed to clear refresh token for user %s: %w", userID, err)
	}
	if cmd.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteUserCascade removes the user row and every row tied to them. The
// whole cascade is one transaction.
func (r *PgxUserRepository) DeleteUserCascade(ctx context.Context, userID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	dependents := []string{
		`DELETE FROM reminder_logs WHERE user_id = $1;`,
		`DELETE FROM records WHERE user_id = $1;`,
		`DELETE FROM cashflows WHERE user_id = $1;`,
		`DELETE FROM inventory_items WHERE user_id = $1;`,
		`DELETE FROM coin_transactions WHERE user_id = $1;`,
		`DELETE FROM audit_logs WHERE admin_id = $1;`,
	}
	for _, q := range dependents {
		if _, err := tx.Exec(ctx, q, userID); err != nil {
			return fmt.Errorf("failed to delete dependent rows for user %s: %w", userID, err)
		}
	}

	cmd, err := tx.Exec(ctx, `DELETE FROM users WHERE user_id = $1;`, userID)
	if err != nil {
		return fmt.Errorf("failed to delete user %s: %w", userID, err)
	}
	if cmd.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return r.Commit(ctx, tx)
}
