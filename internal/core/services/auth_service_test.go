package services_test

import (
	"context"
	"testing"
	"time"

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

// --- Mock UserService ---
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserService) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserService) ListUsers(ctx context.Context, role domain.Role, limit, offset int) ([]domain.User, error) {
	args := m.Called(ctx, role, limit, offset)
	var users []domain.User
	if args.Get(0) != nil {
		users = args.Get(0).([]domain.User)
	}
	return users, args.Error(1)
}

func (m *MockUserService) CreateUser(ctx context.Context, req dto.SignupRequest) (*domain.User, error) {
	args := m.Called(ctx, req)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserService) UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest, requestingUserID string) (*domain.User, error) {
	args := m.Called(ctx, userID, req, requestingUserID)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserService) UpdateSettings(ctx context.Context, userID string, req dto.UpdateSettingsRequest) (*domain.User, error) {
	args := m.Called(ctx, userID, req)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserService) CompleteSetup(ctx context.Context, userID string, req dto.SetupWizardRequest) (*domain.User, error) {
	args := m.Called(ctx, userID, req)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserService) UpdateRefreshToken(ctx context.Context, userID string, refreshTokenHash string, refreshTokenExpiryTime time.Time) error {
	args := m.Called(ctx, userID, refreshTokenHash, refreshTokenExpiryTime)
	return args.Error(0)
}

func (m *MockUserService) ClearRefreshToken(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockUserService) DeleteUser(ctx context.Context, userID string, requestingUser *domain.User) error {
	args := m.Called(ctx, userID, requestingUser)
	return args.Error(0)
}

func (m *MockUserService) AuthenticateUser(ctx context.Context, username, password string) (*domain.User, bool, error) {
	args := m.Called(ctx, username, password)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Bool(1), args.Error(2)
}

func (m *MockUserService) VerifyOTP(ctx context.Context, userID string, otp string) (*domain.User, error) {
	args := m.Called(ctx, userID, otp)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserService) FindOrCreateGoogleUser(ctx context.Context, info *domain.GoogleUserInfo) (*domain.User, error) {
	args := m.Called(ctx, info)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserService) RequestPasswordReset(ctx context.Context, email string) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

func (m *MockUserService) ResetPassword(ctx context.Context, token string, newPassword string) error {
	args := m.Called(ctx, token, newPassword)
	return args.Error(0)
}

// --- Test Suite ---
type TokenServiceTestSuite struct {
	suite.Suite
	mockUserSvc *MockUserService
	cfg         *config.Config
	service     portssvc.TokenSvcFacade
}

func (suite *TokenServiceTestSuite) SetupTest() {
	suite.mockUserSvc = new(MockUserService)
	suite.cfg = &config.Config{
		JWTSecret:                  "test-secret",
		JWTIssuer:                  "ficore-test",
		JWTExpiryDuration:          15 * time.Minute,
		RefreshTokenExpiryDuration: 24 * time.Hour,
	}
	suite.service = services.NewTokenService(suite.cfg, suite.mockUserSvc)
}

func (suite *TokenServiceTestSuite) TestGenerateAccessToken_RoundTrips() {
	ctx := context.Background()
	user := &domain.User{UserID: "bello"}

	token, expiry, err := suite.service.GenerateAccessToken(ctx, user)

	suite.Require().NoError(err)
	suite.NotEmpty(token)
	suite.WithinDuration(time.Now().Add(15*time.Minute), expiry, 5*time.Second)

	claims, err := utils.ParseAndValidateJWT(token, "test-secret")
	suite.Require().NoError(err)
	suite.Equal("bello", claims.Subject)
	suite.Equal("ficore-test", claims.Issuer)
}

func (suite *TokenServiceTestSuite) TestGenerateAccessToken_RejectsWrongSecret() {
	ctx := context.Background()
	user := &domain.User{UserID: "bello"}

	token, _, err := suite.service.GenerateAccessToken(ctx, user)
	suite.Require().NoError(err)

	_, err = utils.ParseAndValidateJWT(token, "other-secret")
	suite.Require().Error(err)
}

func (suite *TokenServiceTestSuite) TestGenerateRefreshToken_OpaqueHex() {
	ctx := context.Background()
	user := &domain.User{UserID: "bello"}

	token, expiry, err := suite.service.GenerateRefreshToken(ctx, user)

	suite.Require().NoError(err)
	suite.Len(token, 64)
	suite.WithinDuration(time.Now().Add(24*time.Hour), expiry, 5*time.Second)
}

func (suite *TokenServiceTestSuite) TestValidateRefreshToken_Success() {
	ctx := context.Background()
	rawToken := "a-raw-refresh-token"
	expiry := time.Now().Add(time.Hour)
	user := &domain.User{
		UserID:                 "bello",
		RefreshTokenHash:       utils.HashRefreshToken(rawToken),
		RefreshTokenExpiryTime: &expiry,
	}

	suite.mockUserSvc.On("GetUserByID", ctx, "bello").Return(user, nil).Once()

	validated, err := suite.service.ValidateAndParseRefreshToken(ctx, "bello", rawToken)

	suite.Require().NoError(err)
	suite.Equal("bello", validated.UserID)
	suite.mockUserSvc.AssertExpectations(suite.T())
}

func (suite *TokenServiceTestSuite) TestValidateRefreshToken_UnknownUser() {
	ctx := context.Background()

	suite.mockUserSvc.On("GetUserByID", ctx, "ghost").Return(nil, apperrors.ErrNotFound).Once()

	validated, err := suite.service.ValidateAndParseRefreshToken(ctx, "ghost", "whatever")

	suite.Require().Error(err)
	suite.Nil(validated)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

func (suite *TokenServiceTestSuite) TestValidateRefreshToken_NoStoredToken() {
	ctx := context.Background()
	user := &domain.User{UserID: "bello"}

	suite.mockUserSvc.On("GetUserByID", ctx, "bello").Return(user, nil).Once()

	validated, err := suite.service.ValidateAndParseRefreshToken(ctx, "bello", "whatever")

	suite.Require().Error(err)
	suite.Nil(validated)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

func (suite *TokenServiceTestSuite) TestValidateRefreshToken_Expired() {
	ctx := context.Background()
	rawToken := "a-raw-refresh-token"
	expiry := time.Now().Add(-time.Minute)
	user := &domain.User{
		UserID:                 "bello",
		RefreshTokenHash:       utils.HashRefreshToken(rawToken),
		RefreshTokenExpiryTime: &expiry,
	}

	suite.mockUserSvc.On("GetUserByID", ctx, "bello").Return(user, nil).Once()

	validated, err := suite.service.ValidateAndParseRefreshToken(ctx, "bello", rawToken)

	suite.Require().Error(err)
	suite.Nil(validated)
	suite.ErrorIs(err, apperrors.ErrRefreshTokenExpired)
}

func (suite *TokenServiceTestSuite) TestValidateRefreshToken_WrongToken() {
	ctx := context.Background()
	expiry := time.Now().Add(time.Hour)
	user := &domain.User{
		UserID:                 "bello",
		RefreshTokenHash:       utils.HashRefreshToken("the-real-token"),
		RefreshTokenExpiryTime: &expiry,
	}

	suite.mockUserSvc.On("GetUserByID", ctx, "bello").Return(user, nil).Once()

	validated, err := suite.service.ValidateAndParseRefreshToken(ctx, "bello", "a-forged-token")

	suite.Require().Error(err)
	suite.Nil(validated)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

// --- Run Suite ---
func TestTokenService(t *testing.T) {
	suite.Run(t, new(TokenServiceTestSuite))
}
