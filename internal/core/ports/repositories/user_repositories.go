package repositories

import (
	"context"
	"time"

	"github.com/fipithx/ficore_backend/internal/core/domain"
)

// UserReader defines read operations for user data
type UserReader interface {
	// FindUserByID retrieves a specific user by their ID (username).
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)

	// FindUserByEmail retrieves a user by their email address.
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)

	// FindUserByResetTokenHash retrieves a user holding the given password reset token hash.
	FindUserByResetTokenHash(ctx context.Context, tokenHash string) (*domain.User, error)

	// FindUsers retrieves a paginated list of users, optionally filtered by role.
	// An empty role returns users of every role.
	FindUsers(ctx context.Context, role domain.Role, limit int, offset int) ([]domain.User, error)

	// CountUsersByRole returns the number of non-deleted users per role.
	CountUsersByRole(ctx context.Context) (map[domain.Role]int64, error)
}

// UserWriter defines write operations for user data
type UserWriter interface {
	// SaveUserWithSignupBonus persists a new user, the signup bonus ledger entry
	// and its audit log entry in a single transaction. The user's starting coin
	// balance must equal the bonus amount.
	SaveUserWithSignupBonus(ctx context.Context, user domain.User, bonus domain.CoinTransaction, audit domain.AuditLog) error

	// UpdateUser updates an existing user's mutable details.
	UpdateUser(ctx context.Context, user domain.User) error

	// UpdatePasswordHash replaces a user's password hash and clears any reset token.
	UpdatePasswordHash(ctx context.Context, userID string, passwordHash string, updatedAt time.Time) error

	// UpdateOTP stores a login OTP hash and its expiry; nil values clear it.
	UpdateOTP(ctx context.Context, userID string, otpHash *string, expiry *time.Time) error

	// UpdateResetToken stores a password reset token hash and its expiry; nil values clear it.
	UpdateResetToken(ctx context.Context, userID string, tokenHash *string, expiry *time.Time) error

	// UpdateRefreshToken updates the refresh token details for a user.
	UpdateRefreshToken(ctx context.Context, userID string, refreshTokenHash string, refreshTokenExpiryTime time.Time) error

	// ClearRefreshToken clears the refresh token for a user.
	ClearRefreshToken(ctx context.Context, userID string) error
}

// UserLifecycleManager defines operations for managing user lifecycle
type UserLifecycleManager interface {
	// DeleteUserCascade removes a user together with their records, cashflows,
	// inventory, coin transactions and audit logs, in a single transaction.
	DeleteUserCascade(ctx context.Context, userID string) error
}

// UserRepositoryFacade combines all user-related repository interfaces
// This is a facade for clients that need access to all operations
type UserRepositoryFacade interface {
	UserReader
	UserWriter
	UserLifecycleManager
}
