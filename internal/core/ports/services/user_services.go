package services

import (
	"context"
	"time"

	"github.com/fipithx/ficore_backend/internal/core/domain"
	"github.com/fipithx/ficore_backend/internal/dto"
)

// UserReaderSvc defines read operations for user data
type UserReaderSvc interface {
	// GetUserByID retrieves a user by ID (username).
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)

	// GetUserByEmail retrieves a user by email address.
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)

	// ListUsers retrieves a paginated list of users, optionally filtered by role.
	ListUsers(ctx context.Context, role domain.Role, limit, offset int) ([]domain.User, error)
}

// UserWriterSvc defines write operations for user data
type UserWriterSvc interface {
	// CreateUser registers a new user and credits the signup bonus atomically.
	CreateUser(ctx context.Context, req dto.SignupRequest) (*domain.User, error)

	// UpdateUser updates a user's profile details.
	UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest, requestingUserID string) (*domain.User, error)

	// UpdateSettings updates language, dark mode and notification preferences.
	UpdateSettings(ctx context.Context, userID string, req dto.UpdateSettingsRequest) (*domain.User, error)

	// CompleteSetup stores role-specific detail data and marks setup done.
	CompleteSetup(ctx context.Context, userID string, req dto.SetupWizardRequest) (*domain.User, error)

	// UpdateRefreshToken updates the refresh token details for a user.
	UpdateRefreshToken(ctx context.Context, userID string, refreshTokenHash string, refreshTokenExpiryTime time.Time) error

	// ClearRefreshToken clears the refresh token for a user.
	ClearRefreshToken(ctx context.Context, userID string) error
}

// UserLifecycleSvc defines operations for managing user lifecycle
type UserLifecycleSvc interface {
	// DeleteUser removes a user and all of their data. Admin only.
	DeleteUser(ctx context.Context, userID string, requestingUser *domain.User) error
}

// UserAuthSvc defines operations for user authentication
type UserAuthSvc interface {
	// AuthenticateUser verifies credentials. When the user has 2FA enabled it
	// returns the user together with otpRequired=true after dispatching an OTP.
	AuthenticateUser(ctx context.Context, username, password string) (user *domain.User, otpRequired bool, err error)

	// VerifyOTP checks a previously dispatched login OTP.
	VerifyOTP(ctx context.Context, userID string, otp string) (*domain.User, error)

	// FindOrCreateGoogleUser looks a user up by their Google email, creating
	// a personal account (with the signup bonus) on first login.
	FindOrCreateGoogleUser(ctx context.Context, info *domain.GoogleUserInfo) (*domain.User, error)

	// RequestPasswordReset emails a reset link; silent when the email is unknown.
	RequestPasswordReset(ctx context.Context, email string) error

	// ResetPassword sets a new password from a valid reset token.
	ResetPassword(ctx context.Context, token string, newPassword string) error
}

// UserSvcFacade combines all user-related service interfaces
type UserSvcFacade interface {
	UserReaderSvc
	UserWriterSvc
	UserLifecycleSvc
	UserAuthSvc
}
