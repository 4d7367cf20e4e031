package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/fipithx/ficore_backend/internal/apperrors"
	"github.com/fipithx/ficore_backend/internal/core/domain"
	portsrepo "github.com/fipithx/ficore_backend/internal/core/ports/repositories"
	portssvc "github.com/fipithx/ficore_backend/internal/core/ports/services"
	"github.com/fipithx/ficore_backend/internal/dto"
	"github.com/fipithx/ficore_backend/internal/platform/config"
	"github.com/fipithx/ficore_backend/internal/platform/i18n"
	"github.com/fipithx/ficore_backend/internal/utils"
)

const otpLength = 6

// userService implements account management and credential flows.
type userService struct {
	BaseService
	userRepo portsrepo.UserRepositoryFacade
	mail     portssvc.EmailSender

	enable2FA        bool
	otpExpiry        time.Duration
	resetTokenExpiry time.Duration
	frontendBaseURL  string
}

// NewUserService creates a new user service instance.
func NewUserService(cfg *config.Config, userRepo portsrepo.UserRepositoryFacade, mail portssvc.EmailSender) portssvc.UserSvcFacade {
	return &userService{
		userRepo:         userRepo,
		mail:             mail,
		enable2FA:        cfg.Enable2FA,
		otpExpiry:        cfg.OTPExpiryDuration,
		resetTokenExpiry: cfg.ResetTokenExpiryDuration,
		frontendBaseURL:  cfg.FrontendBaseURL,
	}
}

var _ portssvc.UserSvcFacade = (*userService)(nil)

// GetUserByID retrieves a user by ID (username).
func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, strings.ToLower(userID))
	if err != nil {
		return nil, fmt.Errorf("failed to find user %s: %w", userID, err)
	}
	return user, nil
}

// GetUserByEmail retrieves a user by email address.
func (s *userService) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByEmail(ctx, strings.ToLower(email))
	if err != nil {
		return nil, fmt.Errorf("failed to find user by email: %w", err)
	}
	return user, nil
}

// ListUsers retrieves a paginated list of users, optionally filtered by role.
func (s *userService) ListUsers(ctx context.Context, role domain.Role, limit, offset int) ([]domain.User, error) {
	if role != "" && !role.IsValid() {
		return nil, fmt.Errorf("%w: invalid role %q", apperrors.ErrValidation, role)
	}
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	users, err := s.userRepo.FindUsers(ctx, role, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// CreateUser registers a new user. The signup bonus ledger entry and its
// audit log row are written in the same transaction as the user row.
func (s *userService) CreateUser(ctx context.Context, req dto.SignupRequest) (*domain.User, error) {
	username := strings.ToLower(strings.TrimSpace(req.Username))
	email := strings.ToLower(strings.TrimSpace(req.Email))

	role := domain.Role(req.Role)
	if role == "" {
		role = domain.RolePersonal
	}
	if !role.IsValid() || role == domain.RoleAdmin {
		return nil, fmt.Errorf("%w: invalid signup role %q", apperrors.ErrValidation, req.Role)
	}

	language := req.Language
	if language == "" {
		language = domain.LangEnglish
	}

	passwordHash, err := utils.HashPassword(req.Password)
	if err != nil {
		s.LogError(ctx, err, "Failed to hash password")
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user := domain.User{
		UserID:       username,
		Email:        email,
		PasswordHash: passwordHash,
		Role:         role,
		CoinBalance:  domain.SignupBonusCoins,
		Language:     language,
		NotifyEmail:  true,
		AuditFields:  domain.NewAuditFields(username, now),
	}
	bonus := domain.CoinTransaction{
		TransactionID:      uuid.NewString(),
		UserID:             username,
		Amount:             domain.SignupBonusCoins,
		Type:               domain.CoinCredit,
		Notes:              "signup bonus",
		FacilitatedByAgent: req.FacilitatedByAgent,
		Date:               now,
	}
	audit := domain.AuditLog{
		LogID:   uuid.NewString(),
		AdminID: username,
		Action:  "signup",
		Details: map[string]any{
			"role":        string(role),
			"bonus_coins": domain.SignupBonusCoins,
		},
		Timestamp: now,
	}
	if req.FacilitatedByAgent != "" {
		audit.Details["facilitated_by_agent"] = req.FacilitatedByAgent
	}

	if err := s.userRepo.SaveUserWithSignupBonus(ctx, user, bonus, audit); err != nil {
		s.LogError(ctx, err, "Failed to save new user", slog.String("user_id", username))
		return nil, fmt.Errorf("failed to save user: %w", err)
	}

	s.LogInfo(ctx, "User registered", slog.String("user_id", username), slog.String("role", string(role)))
	return &user, nil
}

// UpdateUser updates a user's profile details. Non-admins may only update
// themselves.
func (s *userService) UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest, requestingUserID string) (*domain.User, error) {
	userID = strings.ToLower(userID)
	if requestingUserID != userID {
		requester, err := s.userRepo.FindUserByID(ctx, requestingUserID)
		if err != nil {
			return nil, fmt.Errorf("failed to find requesting user: %w", err)
		}
		if !requester.IsAdmin() {
			return nil, fmt.Errorf("%w: cannot update another user's profile", apperrors.ErrForbidden)
		}
	}

	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to find user %s: %w", userID, err)
	}

	if req.DisplayName != nil {
		user.DisplayName = *req.DisplayName
	}
	if req.Email != nil {
		user.Email = strings.ToLower(*req.Email)
	}
	if req.Phone != nil {
		switch {
		case user.BusinessDetails != nil:
			user.BusinessDetails.PhoneNumber = *req.Phone
		case user.AgentDetails != nil:
			user.AgentDetails.Phone = *req.Phone
		default:
			if user.PersonalDetails == nil {
				user.PersonalDetails = &domain.PersonalDetails{}
			}
			user.PersonalDetails.PhoneNumber = *req.Phone
		}
	}
	user.Touch(requestingUserID, time.Now())

	if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
		s.LogError(ctx, err, "Failed to update user", slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return user, nil
}

// UpdateSettings updates language, dark mode and notification preferences.
func (s *userService) UpdateSettings(ctx context.Context, userID string, req dto.UpdateSettingsRequest) (*domain.User, error) {
	userID = strings.ToLower(userID)
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to find user %s: %w", userID, err)
	}

	if req.Language != nil {
		user.Language = *req.Language
	}
	if req.DarkMode != nil {
		user.DarkMode = *req.DarkMode
	}
	if req.NotifyEmail != nil {
		user.NotifyEmail = *req.NotifyEmail
	}
	if req.NotifySMS != nil {
		user.NotifySMS = *req.NotifySMS
	}
	user.Touch(userID, time.Now())

	if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
		s.LogError(ctx, err, "Failed to update settings", slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to update settings: %w", err)
	}
	return user, nil
}

// CompleteSetup stores the role-specific wizard details and marks setup done.
func (s *userService) CompleteSetup(ctx context.Context, userID string, req dto.SetupWizardRequest) (*domain.User, error) {
	userID = strings.ToLower(userID)
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to find user %s: %w", userID, err)
	}

	switch user.Role {
	case domain.RoleTrader:
		if req.Business == nil {
			return nil, fmt.Errorf("%w: business details required for trader setup", apperrors.ErrValidation)
		}
		user.BusinessDetails = &domain.BusinessDetails{
			Name:            req.Business.Name,
			Address:         req.Business.Address,
			Industry:        req.Business.Industry,
			ProductsService: req.Business.ProductsSold,
			PhoneNumber:     req.Business.PhoneNumber,
		}
		if user.DisplayName == "" {
			user.DisplayName = req.Business.Name
		}
	case domain.RoleAgent:
		if req.Agent == nil {
			return nil, fmt.Errorf("%w: agent details required for agent setup", apperrors.ErrValidation)
		}
		user.AgentDetails = &domain.AgentDetails{
			AgentName: req.Agent.AgentName,
			AgentID:   req.Agent.AgentID,
			Area:      req.Agent.Area,
			Role:      req.Agent.Role,
			Email:     strings.ToLower(req.Agent.Email),
			Phone:     req.Agent.PhoneNumber,
		}
		if user.DisplayName == "" {
			user.DisplayName = req.Agent.AgentName
		}
	default:
		if req.Personal == nil {
			return nil, fmt.Errorf("%w: personal details required for setup", apperrors.ErrValidation)
		}
		user.PersonalDetails = &domain.PersonalDetails{
			FirstName:   req.Personal.FirstName,
			LastName:    req.Personal.LastName,
			PhoneNumber: req.Personal.PhoneNumber,
			Address:     req.Personal.Address,
		}
		if user.DisplayName == "" {
			user.DisplayName = strings.TrimSpace(req.Personal.FirstName + " " + req.Personal.LastName)
		}
	}

	user.SetupComplete = true
	user.Touch(userID, time.Now())

	if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
		s.LogError(ctx, err, "Failed to complete setup", slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to complete setup: %w", err)
	}

	s.LogInfo(ctx, "Setup wizard completed", slog.String("user_id", userID), slog.String("role", string(user.Role)))
	return user, nil
}

// UpdateRefreshToken stores the hashed refresh token for a user.
func (s *userService) UpdateRefreshToken(ctx context.Context, userID string, refreshTokenHash string, refreshTokenExpiryTime time.Time) error {
	if err := s.userRepo.UpdateRefreshToken(ctx, userID, refreshTokenHash, refreshTokenExpiryTime); err != nil {
		return fmt.Errorf("failed to update refresh token: %w", err)
	}
	return nil
}

// ClearRefreshToken removes the stored refresh token for a user.
func (s *userService) ClearRefreshToken(ctx context.Context, userID string) error {
	if err := s.userRepo.ClearRefreshToken(ctx, userID); err != nil {
		return fmt.Errorf("failed to clear refresh token: %w", err)
	}
	return nil
}

// DeleteUser removes a user and everything they own. Admin only.
func (s *userService) DeleteUser(ctx context.Context, userID string, requestingUser *domain.User) error {
	if !requestingUser.IsAdmin() {
		return fmt.Errorf("%w: only admins can delete users", apperrors.ErrForbidden)
	}
	userID = strings.ToLower(userID)
	if userID == requestingUser.UserID {
		return fmt.Errorf("%w: admins cannot delete their own account", apperrors.ErrValidation)
	}

	if err := s.userRepo.DeleteUserCascade(ctx, userID); err != nil {
		s.LogError(ctx, err, "Failed to delete user", slog.String("user_id", userID))
		return fmt.Errorf("failed to delete user: %w", err)
	}

	s.LogInfo(ctx, "User deleted", slog.String("user_id", userID), slog.String("admin_id", requestingUser.UserID))
	return nil
}

// AuthenticateUser verifies the password. When 2FA is enabled it dispatches a
// one-time password to the user's email and returns otpRequired=true; if the
// email cannot be delivered, login proceeds without 2FA.
func (s *userService) AuthenticateUser(ctx context.Context, username, password string) (*domain.User, bool, error) {
	lookup := strings.ToLower(strings.TrimSpace(username))

	var user *domain.User
	var err error
	if strings.Contains(lookup, "@") {
		user, err = s.userRepo.FindUserByEmail(ctx, lookup)
	} else {
		user, err = s.userRepo.FindUserByID(ctx, lookup)
	}
	if err != nil {
		return nil, false, fmt.Errorf("%w: invalid credentials", apperrors.ErrUnauthorized)
	}

	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		s.LogDebug(ctx, "Failed login attempt", slog.String("user_id", user.UserID))
		return nil, false, fmt.Errorf("%w: invalid credentials", apperrors.ErrUnauthorized)
	}

	if !s.enable2FA {
		return user, false, nil
	}

	otp, err := utils.GenerateNumericOTP(otpLength)
	if err != nil {
		return nil, false, fmt.Errorf("failed to generate OTP: %w", err)
	}
	otpHash := utils.HashOneTimeCredential(otp)
	expiry := time.Now().Add(s.otpExpiry)
	if err := s.userRepo.UpdateOTP(ctx, user.UserID, &otpHash, &expiry); err != nil {
		return nil, false, fmt.Errorf("failed to store OTP: %w", err)
	}

	subject := i18n.T(user.Language, "email_otp_subject")
	body := fmt.Sprintf("<p>Your OTP is <strong>%s</strong>. It expires in %d minutes.</p>", otp, int(s.otpExpiry.Minutes()))
	if err := s.mail.Send(ctx, user.Email, subject, body); err != nil {
		// An undeliverable OTP must not lock the user out, so fall back to a
		// plain login.
		s.LogError(ctx, err, "OTP email delivery failed, allowing login without 2FA", slog.String("user_id", user.UserID))
		_ = s.userRepo.UpdateOTP(ctx, user.UserID, nil, nil)
		return user, false, nil
	}

	s.LogInfo(ctx, "Login OTP dispatched", slog.String("user_id", user.UserID))
	return user, true, nil
}

// VerifyOTP checks a previously dispatched login OTP and clears it on success.
func (s *userService) VerifyOTP(ctx context.Context, userID string, otp string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, strings.ToLower(userID))
	if err != nil {
		return nil, fmt.Errorf("failed to find user %s: %w", userID, err)
	}

	if user.OTPHash == "" || user.OTPExpiry == nil || time.Now().After(*user.OTPExpiry) {
		return nil, fmt.Errorf("%w: invalid or expired OTP", apperrors.ErrUnauthorized)
	}
	if utils.HashOneTimeCredential(otp) != user.OTPHash {
		return nil, fmt.Errorf("%w: invalid or expired OTP", apperrors.ErrUnauthorized)
	}

	if err := s.userRepo.UpdateOTP(ctx, user.UserID, nil, nil); err != nil {
		return nil, fmt.Errorf("failed to clear OTP: %w", err)
	}
	return user, nil
}

// FindOrCreateGoogleUser looks a user up by the Google account email,
// creating a personal account with the signup bonus on first login.
func (s *userService) FindOrCreateGoogleUser(ctx context.Context, info *domain.GoogleUserInfo) (*domain.User, error) {
	if info == nil || info.Email == "" {
		return nil, fmt.Errorf("%w: google user info missing email", apperrors.ErrValidation)
	}
	if !info.EmailVerified {
		return nil, fmt.Errorf("%w: google account email not verified", apperrors.ErrUnauthorized)
	}

	email := strings.ToLower(info.Email)
	user, err := s.userRepo.FindUserByEmail(ctx, email)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up google user: %w", err)
	}

	// Derive a username from the email local part; uniqueness collisions get
	// a random suffix.
	username := usernameFromEmail(email)
	if _, err := s.userRepo.FindUserByID(ctx, username); err == nil {
		suffix, rndErr := utils.GenerateSecureRandomString(3)
		if rndErr != nil {
			return nil, fmt.Errorf("failed to derive username: %w", rndErr)
		}
		username = username + suffix
	}

	// Google users have no local password; an unguessable random hash input
	// keeps password login disabled until they reset it.
	randomSecret, err := utils.GenerateSecureRandomString(32)
	if err != nil {
		return nil, fmt.Errorf("failed to generate placeholder password: %w", err)
	}
	passwordHash, err := utils.HashPassword(randomSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to hash placeholder password: %w", err)
	}

	now := time.Now()
	newUser := domain.User{
		UserID:       username,
		Email:        email,
		PasswordHash: passwordHash,
		Role:         domain.RolePersonal,
		CoinBalance:  domain.SignupBonusCoins,
		Language:     domain.LangEnglish,
		DisplayName:  info.Name,
		NotifyEmail:  true,
		AuditFields:  domain.NewAuditFields(username, now),
	}
	bonus := domain.CoinTransaction{
		TransactionID: uuid.NewString(),
		UserID:        username,
		Amount:        domain.SignupBonusCoins,
		Type:          domain.CoinCredit,
		Notes:         "signup bonus",
		Date:          now,
	}
	audit := domain.AuditLog{
		LogID:   uuid.NewString(),
		AdminID: username,
		Action:  "signup_google",
		Details: map[string]any{
			"email":       email,
			"bonus_coins": domain.SignupBonusCoins,
		},
		Timestamp: now,
	}

	if err := s.userRepo.SaveUserWithSignupBonus(ctx, newUser, bonus, audit); err != nil {
		s.LogError(ctx, err, "Failed to create google user", slog.String("user_id", username))
		return nil, fmt.Errorf("failed to create google user: %w", err)
	}

	s.LogInfo(ctx, "Google user registered", slog.String("user_id", username))
	return &newUser, nil
}

// RequestPasswordReset emails a reset link. Unknown emails are silently
// accepted to avoid account enumeration.
func (s *userService) RequestPasswordReset(ctx context.Context, email string) error {
	user, err := s.userRepo.FindUserByEmail(ctx, strings.ToLower(email))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.LogDebug(ctx, "Password reset requested for unknown email")
			return nil
		}
		return fmt.Errorf("failed to look up user: %w", err)
	}

	token, err := utils.GenerateSecureRandomString(32)
	if err != nil {
		return fmt.Errorf("failed to generate reset token: %w", err)
	}
	tokenHash := utils.HashOneTimeCredential(token)
	expiry := time.Now().Add(s.resetTokenExpiry)
	if err := s.userRepo.UpdateResetToken(ctx, user.UserID, &tokenHash, &expiry); err != nil {
		return fmt.Errorf("failed to store reset token: %w", err)
	}

	resetURL := fmt.Sprintf("%s/reset-password?token=%s", s.frontendBaseURL, token)
	subject := i18n.T(user.Language, "email_reset_subject")
	body := fmt.Sprintf("<p>Click <a href=%q>here</a> to reset your password. The link expires in %d minutes.</p>", resetURL, int(s.resetTokenExpiry.Minutes()))
	if err := s.mail.Send(ctx, user.Email, subject, body); err != nil {
		s.LogError(ctx, err, "Failed to send password reset email", slog.String("user_id", user.UserID))
		return fmt.Errorf("failed to send reset email: %w", err)
	}

	s.LogInfo(ctx, "Password reset email dispatched", slog.String("user_id", user.UserID))
	return nil
}

// ResetPassword sets a new password from a valid reset token.
func (s *userService) ResetPassword(ctx context.Context, token string, newPassword string) error {
	user, err := s.userRepo.FindUserByResetTokenHash(ctx, utils.HashOneTimeCredential(token))
	if err != nil {
		return fmt.Errorf("%w: invalid or expired reset token", apperrors.ErrUnauthorized)
	}
	if user.ResetTokenExpiry == nil || time.Now().After(*user.ResetTokenExpiry) {
		return fmt.Errorf("%w: invalid or expired reset token", apperrors.ErrUnauthorized)
	}

	passwordHash, err := utils.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if err := s.userRepo.UpdatePasswordHash(ctx, user.UserID, passwordHash, time.Now()); err != nil {
		s.LogError(ctx, err, "Failed to reset password", slog.String("user_id", user.UserID))
		return fmt.Errorf("failed to reset password: %w", err)
	}

	// Force re-login everywhere after a password change.
	if err := s.userRepo.ClearRefreshToken(ctx, user.UserID); err != nil {
		s.LogError(ctx, err, "Failed to clear refresh token after password reset", slog.String("user_id", user.UserID))
	}

	s.LogInfo(ctx, "Password reset completed", slog.String("user_id", user.UserID))
	return nil
}

func usernameFromEmail(email string) string {
	local := email
	if i := strings.Index(email, "@"); i > 0 {
		local = email[:i]
	}
	var b strings.Builder
	for _, r := range local {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return "user"
	}
	return b.String()
}
