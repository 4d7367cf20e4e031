package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/fipithx/ficore_backend/internal/apperrors"
	"github.com/fipithx/ficore_backend/internal/core/domain"
	portssvc "github.com/fipithx/ficore_backend/internal/core/ports/services"
	"github.com/fipithx/ficore_backend/internal/core/services"
	"github.com/fipithx/ficore_backend/internal/dto"
	"github.com/fipithx/ficore_backend/internal/platform/config"
	"github.com/fipithx/ficore_backend/internal/utils"
)

// --- Mock UserRepository ---
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) FindUserByResetTokenHash(ctx context.Context, tokenHash string) (*domain.User, error) {
	args := m.Called(ctx, tokenHash)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) FindUsers(ctx context.Context, role domain.Role, limit int, offset int) ([]domain.User, error) {
	args := m.Called(ctx, role, limit, offset)
	var users []domain.User
	if args.Get(0) != nil {
		users = args.Get(0).([]domain.User)
	}
	return users, args.Error(1)
}

func (m *MockUserRepository) CountUsersByRole(ctx context.Context) (map[domain.Role]int64, error) {
	args := m.Called(ctx)
	var counts map[domain.Role]int64
	if args.Get(0) != nil {
		counts = args.Get(0).(map[domain.Role]int64)
	}
	return counts, args.Error(1)
}

func (m *MockUserRepository) SaveUserWithSignupBonus(ctx context.Context, user domain.User, bonus domain.CoinTransaction, audit domain.AuditLog) error {
	args := m.Called(ctx, user, bonus, audit)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdatePasswordHash(ctx context.Context, userID string, passwordHash string, updatedAt time.Time) error {
	args := m.Called(ctx, userID, passwordHash, updatedAt)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateOTP(ctx context.Context, userID string, otpHash *string, expiry *time.Time) error {
	args := m.Called(ctx, userID, otpHash, expiry)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateResetToken(ctx context.Context, userID string, tokenHash *string, expiry *time.Time) error {
	args := m.Called(ctx, userID, tokenHash, expiry)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateRefreshToken(ctx context.Context, userID string, refreshTokenHash string, refreshTokenExpiryTime time.Time) error {
	args := m.Called(ctx, userID, refreshTokenHash, refreshTokenExpiryTime)
	return args.Error(0)
}

func (m *MockUserRepository) ClearRefreshToken(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockUserRepository) DeleteUserCascade(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// --- Mock EmailSender ---
type MockEmailSender struct {
	mock.Mock
}

func (m *MockEmailSender) Send(ctx context.Context, to string, subject string, htmlBody string) error {
	args := m.Called(ctx, to, subject, htmlBody)
	return args.Error(0)
}

// --- Test Suite ---
type UserServiceTestSuite struct {
	suite.Suite
	mockUserRepo *MockUserRepository
	mockMail     *MockEmailSender
	cfg          *config.Config
	service      portssvc.UserSvcFacade
}

func (suite *UserServiceTestSuite) SetupTest() {
	suite.mockUserRepo = new(MockUserRepository)
	suite.mockMail = new(MockEmailSender)
	suite.cfg = &config.Config{
		Enable2FA:                false,
		OTPExpiryDuration:        5 * time.Minute,
		ResetTokenExpiryDuration: 30 * time.Minute,
		FrontendBaseURL:          "https://app.example.test",
	}
	suite.service = services.NewUserService(suite.cfg, suite.mockUserRepo, suite.mockMail)
}

// newService rebuilds the service after the suite config is tweaked (e.g.
// flipping Enable2FA).
func (suite *UserServiceTestSuite) newService() portssvc.UserSvcFacade {
	return services.NewUserService(suite.cfg, suite.mockUserRepo, suite.mockMail)
}

// --- CreateUser Tests ---
func (suite *UserServiceTestSuite) TestCreateUser_Success() {
	ctx := context.Background()
	req := dto.SignupRequest{
		Username: "AishaBello",
		Email:    "Aisha@Example.com",
		Password: "password123",
		Role:     "trader",
	}

	suite.mockUserRepo.On("SaveUserWithSignupBonus", ctx,
		mock.MatchedBy(func(user domain.User) bool {
			return user.UserID == "aishabello" &&
				user.Email == "aisha@example.com" &&
				user.Role == domain.RoleTrader &&
				user.CoinBalance == domain.SignupBonusCoins &&
				user.Language == domain.LangEnglish &&
				user.PasswordHash != req.Password &&
				utils.CheckPasswordHash(req.Password, user.PasswordHash)
		}),
		mock.MatchedBy(func(bonus domain.CoinTransaction) bool {
			return bonus.UserID == "aishabello" &&
				bonus.Amount == domain.SignupBonusCoins &&
				bonus.Type == domain.CoinCredit
		}),
		mock.AnythingOfType("domain.AuditLog"),
	).Return(nil).Once()

	user, err := suite.service.CreateUser(ctx, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(user)
	suite.Equal("aishabello", user.UserID)
	suite.Equal(domain.RoleTrader, user.Role)
	suite.Equal(domain.SignupBonusCoins, user.CoinBalance)
	suite.True(user.NotifyEmail)
	suite.False(user.SetupComplete)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestCreateUser_AgentFacilitationCarriesIntoBonus() {
	ctx := context.Background()
	req := dto.SignupRequest{
		Username:           "bello",
		Email:              "bello@example.com",
		Password:           "password123",
		Role:               "trader",
		FacilitatedByAgent: "aisha-agent",
	}

	suite.mockUserRepo.On("SaveUserWithSignupBonus", ctx,
		mock.AnythingOfType("domain.User"),
		mock.MatchedBy(func(bonus domain.CoinTransaction) bool {
			return bonus.UserID == "bello" &&
				bonus.Type == domain.CoinCredit &&
				bonus.FacilitatedByAgent == "aisha-agent"
		}),
		mock.MatchedBy(func(audit domain.AuditLog) bool {
			return audit.Details["facilitated_by_agent"] == "aisha-agent"
		}),
	).Return(nil).Once()

	user, err := suite.service.CreateUser(ctx, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(user)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestCreateUser_DefaultsToPersonalRole() {
	ctx := context.Background()
	req := dto.SignupRequest{Username: "musa", Email: "musa@example.com", Password: "password123"}

	suite.mockUserRepo.On("SaveUserWithSignupBonus", ctx,
		mock.MatchedBy(func(user domain.User) bool { return user.Role == domain.RolePersonal }),
		mock.AnythingOfType("domain.CoinTransaction"),
		mock.AnythingOfType("domain.AuditLog"),
	).Return(nil).Once()

	user, err := suite.service.CreateUser(ctx, req)

	suite.Require().NoError(err)
	suite.Equal(domain.RolePersonal, user.Role)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestCreateUser_RejectsAdminRole() {
	ctx := context.Background()
	req := dto.SignupRequest{Username: "sneaky", Email: "s@example.com", Password: "password123", Role: "admin"}

	user, err := suite.service.CreateUser(ctx, req)

	suite.Require().Error(err)
	suite.Nil(user)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "SaveUserWithSignupBonus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *UserServiceTestSuite) TestCreateUser_SaveError() {
	ctx := context.Background()
	req := dto.SignupRequest{Username: "musa", Email: "musa@example.com", Password: "password123"}
	expectedErr := assert.AnError

	suite.mockUserRepo.On("SaveUserWithSignupBonus", ctx,
		mock.AnythingOfType("domain.User"),
		mock.AnythingOfType("domain.CoinTransaction"),
		mock.AnythingOfType("domain.AuditLog"),
	).Return(expectedErr).Once()

	user, err := suite.service.CreateUser(ctx, req)

	suite.Require().Error(err)
	suite.Nil(user)
	suite.ErrorIs(err, expectedErr)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

// --- GetUserByID Tests ---
func (suite *UserServiceTestSuite) TestGetUserByID_Success() {
	ctx := context.Background()
	expectedUser := &domain.User{UserID: "aisha", DisplayName: "Aisha"}

	suite.mockUserRepo.On("FindUserByID", ctx, "aisha").Return(expectedUser, nil).Once()

	user, err := suite.service.GetUserByID(ctx, "Aisha")

	suite.Require().NoError(err)
	suite.Equal(expectedUser, user)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestGetUserByID_NotFound() {
	ctx := context.Background()

	suite.mockUserRepo.On("FindUserByID", ctx, "ghost").Return(nil, apperrors.ErrNotFound).Once()

	user, err := suite.service.GetUserByID(ctx, "ghost")

	suite.Require().Error(err)
	suite.Nil(user)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

// --- ListUsers Tests ---
func (suite *UserServiceTestSuite) TestListUsers_Success() {
	ctx := context.Background()
	expectedUsers := []domain.User{{UserID: "a"}, {UserID: "b"}}

	suite.mockUserRepo.On("FindUsers", ctx, domain.RoleTrader, 10, 0).Return(expectedUsers, nil).Once()

	users, err := suite.service.ListUsers(ctx, domain.RoleTrader, 10, 0)

	suite.Require().NoError(err)
	suite.Len(users, 2)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestListUsers_DefaultsPagination() {
	ctx := context.Background()

	suite.mockUserRepo.On("FindUsers", ctx, domain.Role(""), 20, 0).Return([]domain.User{}, nil).Once()

	users, err := suite.service.ListUsers(ctx, "", -5, -1)

	suite.Require().NoError(err)
	suite.Empty(users)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestListUsers_InvalidRole() {
	ctx := context.Background()

	users, err := suite.service.ListUsers(ctx, domain.Role("wizard"), 10, 0)

	suite.Require().Error(err)
	suite.Nil(users)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "FindUsers", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// --- UpdateUser Tests ---
func (suite *UserServiceTestSuite) TestUpdateUser_Success() {
	ctx := context.Background()
	newName := "Aisha B."
	req := dto.UpdateUserRequest{DisplayName: &newName}
	originalUser := &domain.User{
		UserID:      "aisha",
		DisplayName: "Aisha",
		AuditFields: domain.AuditFields{LastUpdatedAt: time.Now().Add(-time.Hour), LastUpdatedBy: "aisha"},
	}
	originalTimestamp := originalUser.LastUpdatedAt

	suite.mockUserRepo.On("FindUserByID", ctx, "aisha").Return(originalUser, nil).Once()
	suite.mockUserRepo.On("UpdateUser", ctx, mock.AnythingOfType("domain.User")).Return(nil).Once().Run(func(args mock.Arguments) {
		userArg := args.Get(1).(domain.User)
		suite.Equal(newName, userArg.DisplayName)
		suite.True(userArg.LastUpdatedAt.After(originalTimestamp))
	})

	user, err := suite.service.UpdateUser(ctx, "aisha", req, "aisha")

	suite.Require().NoError(err)
	suite.Require().NotNil(user)
	suite.Equal(newName, user.DisplayName)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestUpdateUser_PhoneRoutedToBusinessDetails() {
	ctx := context.Background()
	phone := "08031234567"
	req := dto.UpdateUserRequest{Phone: &phone}
	trader := &domain.User{
		UserID:          "bello",
		Role:            domain.RoleTrader,
		BusinessDetails: &domain.BusinessDetails{Name: "Bello Stores"},
	}

	suite.mockUserRepo.On("FindUserByID", ctx, "bello").Return(trader, nil).Once()
	suite.mockUserRepo.On("UpdateUser", ctx, mock.MatchedBy(func(user domain.User) bool {
		return user.BusinessDetails != nil && user.BusinessDetails.PhoneNumber == phone
	})).Return(nil).Once()

	_, err := suite.service.UpdateUser(ctx, "bello", req, "bello")

	suite.Require().NoError(err)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestUpdateUser_ForbiddenForOtherUser() {
	ctx := context.Background()
	newName := "Hacked"
	req := dto.UpdateUserRequest{DisplayName: &newName}
	requester := &domain.User{UserID: "musa", Role: domain.RolePersonal}

	suite.mockUserRepo.On("FindUserByID", ctx, "musa").Return(requester, nil).Once()

	user, err := suite.service.UpdateUser(ctx, "aisha", req, "musa")

	suite.Require().Error(err)
	suite.Nil(user)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "UpdateUser", mock.Anything, mock.Anything)
}

func (suite *UserServiceTestSuite) TestUpdateUser_AdminMayUpdateOthers() {
	ctx := context.Background()
	newName := "Renamed"
	req := dto.UpdateUserRequest{DisplayName: &newName}
	admin := &domain.User{UserID: "admin", Role: domain.RoleAdmin}
	target := &domain.User{UserID: "aisha", DisplayName: "Aisha"}

	suite.mockUserRepo.On("FindUserByID", ctx, "admin").Return(admin, nil).Once()
	suite.mockUserRepo.On("FindUserByID", ctx, "aisha").Return(target, nil).Once()
	suite.mockUserRepo.On("UpdateUser", ctx, mock.AnythingOfType("domain.User")).Return(nil).Once()

	user, err := suite.service.UpdateUser(ctx, "aisha", req, "admin")

	suite.Require().NoError(err)
	suite.Equal(newName, user.DisplayName)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

// --- UpdateSettings Tests ---
func (suite *UserServiceTestSuite) TestUpdateSettings_Success() {
	ctx := context.Background()
	lang := domain.LangHausa
	darkMode := true
	req := dto.UpdateSettingsRequest{Language: &lang, DarkMode: &darkMode}
	user := &domain.User{UserID: "aisha", Language: domain.LangEnglish}

	suite.mockUserRepo.On("FindUserByID", ctx, "aisha").Return(user, nil).Once()
	suite.mockUserRepo.On("UpdateUser", ctx, mock.MatchedBy(func(u domain.User) bool {
		return u.Language == domain.LangHausa && u.DarkMode
	})).Return(nil).Once()

	updated, err := suite.service.UpdateSettings(ctx, "aisha", req)

	suite.Require().NoError(err)
	suite.Equal(domain.LangHausa, updated.Language)
	suite.True(updated.DarkMode)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

// --- CompleteSetup Tests ---
func (suite *UserServiceTestSuite) TestCompleteSetup_Trader() {
	ctx := context.Background()
	req := dto.SetupWizardRequest{
		Business: &dto.BusinessDetailsPayload{
			Name:        "Mama Nkechi Provisions",
			Address:     "12 Balogun Market Rd",
			Industry:    "retail",
			PhoneNumber: "08031234567",
		},
	}
	trader := &domain.User{UserID: "nkechi", Role: domain.RoleTrader}

	suite.mockUserRepo.On("FindUserByID", ctx, "nkechi").Return(trader, nil).Once()
	suite.mockUserRepo.On("UpdateUser", ctx, mock.MatchedBy(func(u domain.User) bool {
		return u.SetupComplete &&
			u.BusinessDetails != nil &&
			u.BusinessDetails.Name == "Mama Nkechi Provisions" &&
			u.DisplayName == "Mama Nkechi Provisions"
	})).Return(nil).Once()

	user, err := suite.service.CompleteSetup(ctx, "nkechi", req)

	suite.Require().NoError(err)
	suite.True(user.SetupComplete)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestCompleteSetup_TraderMissingBusinessDetails() {
	ctx := context.Background()
	trader := &domain.User{UserID: "nkechi", Role: domain.RoleTrader}

	suite.mockUserRepo.On("FindUserByID", ctx, "nkechi").Return(trader, nil).Once()

	user, err := suite.service.CompleteSetup(ctx, "nkechi", dto.SetupWizardRequest{})

	suite.Require().Error(err)
	suite.Nil(user)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "UpdateUser", mock.Anything, mock.Anything)
}

func (suite *UserServiceTestSuite) TestCompleteSetup_Personal() {
	ctx := context.Background()
	req := dto.SetupWizardRequest{
		Personal: &dto.PersonalDetailsPayload{FirstName: "Musa", LastName: "Ibrahim"},
	}
	user := &domain.User{UserID: "musa", Role: domain.RolePersonal}

	suite.mockUserRepo.On("FindUserByID", ctx, "musa").Return(user, nil).Once()
	suite.mockUserRepo.On("UpdateUser", ctx, mock.MatchedBy(func(u domain.User) bool {
		return u.SetupComplete && u.DisplayName == "Musa Ibrahim"
	})).Return(nil).Once()

	updated, err := suite.service.CompleteSetup(ctx, "musa", req)

	suite.Require().NoError(err)
	suite.True(updated.SetupComplete)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

// --- DeleteUser Tests ---
func (suite *UserServiceTestSuite) TestDeleteUser_Success() {
	ctx := context.Background()
	admin := &domain.User{UserID: "admin", Role: domain.RoleAdmin}

	suite.mockUserRepo.On("DeleteUserCascade", ctx, "aisha").Return(nil).Once()

	err := suite.service.DeleteUser(ctx, "aisha", admin)

	suite.Require().NoError(err)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestDeleteUser_NonAdminForbidden() {
	ctx := context.Background()
	trader := &domain.User{UserID: "bello", Role: domain.RoleTrader}

	err := suite.service.DeleteUser(ctx, "aisha", trader)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "DeleteUserCascade", mock.Anything, mock.Anything)
}

func (suite *UserServiceTestSuite) TestDeleteUser_SelfDeleteRejected() {
	ctx := context.Background()
	admin := &domain.User{UserID: "admin", Role: domain.RoleAdmin}

	err := suite.service.DeleteUser(ctx, "admin", admin)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "DeleteUserCascade", mock.Anything, mock.Anything)
}

// --- AuthenticateUser Tests ---
func (suite *UserServiceTestSuite) TestAuthenticateUser_Success() {
	ctx := context.Background()
	hash, err := utils.HashPassword("password123")
	suite.Require().NoError(err)
	user := &domain.User{UserID: "aisha", Email: "aisha@example.com", PasswordHash: hash}

	suite.mockUserRepo.On("FindUserByID", ctx, "aisha").Return(user, nil).Once()

	authed, otpRequired, err := suite.service.AuthenticateUser(ctx, "Aisha", "password123")

	suite.Require().NoError(err)
	suite.False(otpRequired)
	suite.Equal(user, authed)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestAuthenticateUser_ByEmail() {
	ctx := context.Background()
	hash, err := utils.HashPassword("password123")
	suite.Require().NoError(err)
	user := &domain.User{UserID: "aisha", Email: "aisha@example.com", PasswordHash: hash}

	suite.mockUserRepo.On("FindUserByEmail", ctx, "aisha@example.com").Return(user, nil).Once()

	authed, _, err := suite.service.AuthenticateUser(ctx, "Aisha@Example.com", "password123")

	suite.Require().NoError(err)
	suite.Equal(user, authed)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestAuthenticateUser_WrongPassword() {
	ctx := context.Background()
	hash, err := utils.HashPassword("password123")
	suite.Require().NoError(err)
	user := &domain.User{UserID: "aisha", PasswordHash: hash}

	suite.mockUserRepo.On("FindUserByID", ctx, "aisha").Return(user, nil).Once()

	authed, _, err := suite.service.AuthenticateUser(ctx, "aisha", "wrongpass")

	suite.Require().Error(err)
	suite.Nil(authed)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

func (suite *UserServiceTestSuite) TestAuthenticateUser_UnknownUser() {
	ctx := context.Background()

	suite.mockUserRepo.On("FindUserByID", ctx, "ghost").Return(nil, apperrors.ErrNotFound).Once()

	authed, _, err := suite.service.AuthenticateUser(ctx, "ghost", "password123")

	suite.Require().Error(err)
	suite.Nil(authed)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

func (suite *UserServiceTestSuite) TestAuthenticateUser_2FADispatchesOTP() {
	ctx := context.Background()
	suite.cfg.Enable2FA = true
	svc := suite.newService()

	hash, err := utils.HashPassword("password123")
	suite.Require().NoError(err)
	user := &domain.User{UserID: "aisha", Email: "aisha@example.com", PasswordHash: hash}

	suite.mockUserRepo.On("FindUserByID", ctx, "aisha").Return(user, nil).Once()
	suite.mockUserRepo.On("UpdateOTP", ctx, "aisha",
		mock.AnythingOfType("*string"), mock.AnythingOfType("*time.Time")).Return(nil).Once()
	suite.mockMail.On("Send", ctx, "aisha@example.com",
		mock.AnythingOfType("string"), mock.AnythingOfType("string")).Return(nil).Once()

	authed, otpRequired, err := svc.AuthenticateUser(ctx, "aisha", "password123")

	suite.Require().NoError(err)
	suite.True(otpRequired)
	suite.Equal(user, authed)
	suite.mockUserRepo.AssertExpectations(suite.T())
	suite.mockMail.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestAuthenticateUser_2FAEmailFailureFallsBack() {
	ctx := context.Background()
	suite.cfg.Enable2FA = true
	svc := suite.newService()

	hash, err := utils.HashPassword("password123")
	suite.Require().NoError(err)
	user := &domain.User{UserID: "aisha", Email: "aisha@example.com", PasswordHash: hash}

	suite.mockUserRepo.On("FindUserByID", ctx, "aisha").Return(user, nil).Once()
	// First call stores the OTP, second clears it after the send failure.
	suite.mockUserRepo.On("UpdateOTP", ctx, "aisha",
		mock.AnythingOfType("*string"), mock.AnythingOfType("*time.Time")).Return(nil).Once()
	suite.mockUserRepo.On("UpdateOTP", ctx, "aisha",
		(*string)(nil), (*time.Time)(nil)).Return(nil).Once()
	suite.mockMail.On("Send", ctx, "aisha@example.com",
		mock.AnythingOfType("string"), mock.AnythingOfType("string")).Return(assert.AnError).Once()

	authed, otpRequired, err := svc.AuthenticateUser(ctx, "aisha", "password123")

	suite.Require().NoError(err)
	suite.False(otpRequired)
	suite.Equal(user, authed)
	suite.mockUserRepo.AssertExpectations(suite.T())
	suite.mockMail.AssertExpectations(suite.T())
}

// --- VerifyOTP Tests ---
func (suite *UserServiceTestSuite) TestVerifyOTP_Success() {
	ctx := context.Background()
	expiry := time.Now().Add(3 * time.Minute)
	user := &domain.User{
		UserID:    "aisha",
		OTPHash:   utils.HashOneTimeCredential("482910"),
		OTPExpiry: &expiry,
	}

	suite.mockUserRepo.On("FindUserByID", ctx, "aisha").Return(user, nil).Once()
	suite.mockUserRepo.On("UpdateOTP", ctx, "aisha", (*string)(nil), (*time.Time)(nil)).Return(nil).Once()

	verified, err := suite.service.VerifyOTP(ctx, "aisha", "482910")

	suite.Require().NoError(err)
	suite.Equal(user, verified)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestVerifyOTP_WrongCode() {
	ctx := context.Background()
	expiry := time.Now().Add(3 * time.Minute)
	user := &domain.User{
		UserID:    "aisha",
		OTPHash:   utils.HashOneTimeCredential("482910"),
		OTPExpiry: &expiry,
	}

	suite.mockUserRepo.On("FindUserByID", ctx, "aisha").Return(user, nil).Once()

	verified, err := suite.service.VerifyOTP(ctx, "aisha", "000000")

	suite.Require().Error(err)
	suite.Nil(verified)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "UpdateOTP", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *UserServiceTestSuite) TestVerifyOTP_Expired() {
	ctx := context.Background()
	expiry := time.Now().Add(-time.Minute)
	user := &domain.User{
		UserID:    "aisha",
		OTPHash:   utils.HashOneTimeCredential("482910"),
		OTPExpiry: &expiry,
	}

	suite.mockUserRepo.On("FindUserByID", ctx, "aisha").Return(user, nil).Once()

	verified, err := suite.service.VerifyOTP(ctx, "aisha", "482910")

	suite.Require().Error(err)
	suite.Nil(verified)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

// --- FindOrCreateGoogleUser Tests ---
func (suite *UserServiceTestSuite) TestFindOrCreateGoogleUser_ExistingUser() {
	ctx := context.Background()
	info := &domain.GoogleUserInfo{Email: "Aisha@Example.com", EmailVerified: true, Name: "Aisha Bello"}
	existing := &domain.User{UserID: "aisha", Email: "aisha@example.com"}

	suite.mockUserRepo.On("FindUserByEmail", ctx, "aisha@example.com").Return(existing, nil).Once()

	user, err := suite.service.FindOrCreateGoogleUser(ctx, info)

	suite.Require().NoError(err)
	suite.Equal(existing, user)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestFindOrCreateGoogleUser_CreatesNewUser() {
	ctx := context.Background()
	info := &domain.GoogleUserInfo{Email: "new.person@example.com", EmailVerified: true, Name: "New Person"}

	suite.mockUserRepo.On("FindUserByEmail", ctx, "new.person@example.com").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockUserRepo.On("FindUserByID", ctx, "newperson").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockUserRepo.On("SaveUserWithSignupBonus", ctx,
		mock.MatchedBy(func(user domain.User) bool {
			return user.UserID == "newperson" &&
				user.Role == domain.RolePersonal &&
				user.DisplayName == "New Person" &&
				user.CoinBalance == domain.SignupBonusCoins
		}),
		mock.AnythingOfType("domain.CoinTransaction"),
		mock.AnythingOfType("domain.AuditLog"),
	).Return(nil).Once()

	user, err := suite.service.FindOrCreateGoogleUser(ctx, info)

	suite.Require().NoError(err)
	suite.Equal("newperson", user.UserID)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestFindOrCreateGoogleUser_UnverifiedEmail() {
	ctx := context.Background()
	info := &domain.GoogleUserInfo{Email: "shady@example.com", EmailVerified: false}

	user, err := suite.service.FindOrCreateGoogleUser(ctx, info)

	suite.Require().Error(err)
	suite.Nil(user)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "FindUserByEmail", mock.Anything, mock.Anything)
}

// --- Password Reset Tests ---
func (suite *UserServiceTestSuite) TestRequestPasswordReset_Success() {
	ctx := context.Background()
	user := &domain.User{UserID: "aisha", Email: "aisha@example.com"}

	suite.mockUserRepo.On("FindUserByEmail", ctx, "aisha@example.com").Return(user, nil).Once()
	suite.mockUserRepo.On("UpdateResetToken", ctx, "aisha",
		mock.AnythingOfType("*string"), mock.AnythingOfType("*time.Time")).Return(nil).Once()
	suite.mockMail.On("Send", ctx, "aisha@example.com",
		mock.AnythingOfType("string"), mock.AnythingOfType("string")).Return(nil).Once()

	err := suite.service.RequestPasswordReset(ctx, "Aisha@Example.com")

	suite.Require().NoError(err)
	suite.mockUserRepo.AssertExpectations(suite.T())
	suite.mockMail.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestRequestPasswordReset_UnknownEmailIsSilent() {
	ctx := context.Background()

	suite.mockUserRepo.On("FindUserByEmail", ctx, "ghost@example.com").Return(nil, apperrors.ErrNotFound).Once()

	err := suite.service.RequestPasswordReset(ctx, "ghost@example.com")

	suite.Require().NoError(err)
	suite.mockMail.AssertNotCalled(suite.T(), "Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *UserServiceTestSuite) TestResetPassword_Success() {
	ctx := context.Background()
	token := "resettoken"
	expiry := time.Now().Add(10 * time.Minute)
	user := &domain.User{UserID: "aisha", ResetTokenExpiry: &expiry}

	suite.mockUserRepo.On("FindUserByResetTokenHash", ctx, utils.HashOneTimeCredential(token)).Return(user, nil).Once()
	suite.mockUserRepo.On("UpdatePasswordHash", ctx, "aisha",
		mock.AnythingOfType("string"), mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockUserRepo.On("ClearRefreshToken", ctx, "aisha").Return(nil).Once()

	err := suite.service.ResetPassword(ctx, token, "newpassword123")

	suite.Require().NoError(err)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestResetPassword_ExpiredToken() {
	ctx := context.Background()
	token := "staletoken"
	expiry := time.Now().Add(-time.Minute)
	user := &domain.User{UserID: "aisha", ResetTokenExpiry: &expiry}

	suite.mockUserRepo.On("FindUserByResetTokenHash", ctx, utils.HashOneTimeCredential(token)).Return(user, nil).Once()

	err := suite.service.ResetPassword(ctx, token, "newpassword123")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "UpdatePasswordHash", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *UserServiceTestSuite) TestResetPassword_InvalidToken() {
	ctx := context.Background()
	token := "bogus"

	suite.mockUserRepo.On("FindUserByResetTokenHash", ctx, utils.HashOneTimeCredential(token)).Return(nil, apperrors.ErrNotFound).Once()

	err := suite.service.ResetPassword(ctx, token, "newpassword123")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

// --- Refresh Token Tests ---
func (suite *UserServiceTestSuite) TestUpdateRefreshToken_Success() {
	ctx := context.Background()
	expiry := time.Now().Add(24 * time.Hour)

	suite.mockUserRepo.On("UpdateRefreshToken", ctx, "aisha", "somehash", expiry).Return(nil).Once()

	err := suite.service.UpdateRefreshToken(ctx, "aisha", "somehash", expiry)

	suite.Require().NoError(err)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestClearRefreshToken_RepoError() {
	ctx := context.Background()
	expectedErr := assert.AnError

	suite.mockUserRepo.On("ClearRefreshToken", ctx, "aisha").Return(expectedErr).Once()

	err := suite.service.ClearRefreshToken(ctx, "aisha")

	suite.Require().Error(err)
	suite.ErrorIs(err, expectedErr)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

// --- Run Suite ---
func TestUserService(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}
