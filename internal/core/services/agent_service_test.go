package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/fipithx/ficore_backend/internal/apperrors"
	"github.com/fipithx/ficore_backend/internal/core/domain"
	portssvc "github.com/fipithx/ficore_backend/internal/core/ports/services"
	"github.com/fipithx/ficore_backend/internal/core/services"
	"github.com/fipithx/ficore_backend/internal/dto"
)

// --- Test Suite ---
type AgentServiceTestSuite struct {
	suite.Suite
	mockUserSvc      *MockUserService
	mockCoinRepo     *MockCoinRepository
	mockActivityRepo *MockActivityRepository
	service          portssvc.AgentSvcFacade

	agent  *domain.User
	trader *domain.User
}

func (suite *AgentServiceTestSuite) SetupTest() {
	suite.mockUserSvc = new(MockUserService)
	suite.mockCoinRepo = new(MockCoinRepository)
	suite.mockActivityRepo = new(MockActivityRepository)
	suite.service = services.NewAgentService(suite.mockUserSvc, suite.mockCoinRepo, suite.mockActivityRepo)

	suite.agent = &domain.User{UserID: "aisha-agent", Role: domain.RoleAgent}
	suite.trader = &domain.User{UserID: "bello", Role: domain.RoleTrader}
}

// --- RegisterTrader Tests ---
func (suite *AgentServiceTestSuite) TestRegisterTrader_Success() {
	ctx := context.Background()
	req := dto.SignupRequest{Username: "bello", Email: "bello@example.com", Password: "password123"}

	suite.mockUserSvc.On("CreateUser", ctx, mock.MatchedBy(func(r dto.SignupRequest) bool {
		return r.Role == string(domain.RoleTrader) && r.FacilitatedByAgent == "aisha-agent"
	})).Return(suite.trader, nil).Once()
	suite.mockActivityRepo.On("SaveAgentActivity", ctx, mock.MatchedBy(func(a domain.AgentActivity) bool {
		return a.AgentID == "aisha-agent" &&
			a.TraderID == "bello" &&
			a.ActivityType == domain.ActivityTraderRegistration
	})).Return(nil).Once()

	trader, err := suite.service.RegisterTrader(ctx, suite.agent, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(trader)
	suite.Equal("bello", trader.UserID)
	suite.mockUserSvc.AssertExpectations(suite.T())
	suite.mockActivityRepo.AssertExpectations(suite.T())
}

func (suite *AgentServiceTestSuite) TestRegisterTrader_ForbiddenForTrader() {
	ctx := context.Background()
	req := dto.SignupRequest{Username: "someone", Email: "s@example.com", Password: "password123"}

	trader, err := suite.service.RegisterTrader(ctx, suite.trader, req)

	suite.Require().Error(err)
	suite.Nil(trader)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockUserSvc.AssertNotCalled(suite.T(), "CreateUser", mock.Anything, mock.Anything)
}

func (suite *AgentServiceTestSuite) TestRegisterTrader_ActivityLogFailureDoesNotFailRegistration() {
	ctx := context.Background()
	req := dto.SignupRequest{Username: "bello", Email: "bello@example.com", Password: "password123"}

	suite.mockUserSvc.On("CreateUser", ctx, mock.AnythingOfType("dto.SignupRequest")).
		Return(suite.trader, nil).Once()
	suite.mockActivityRepo.On("SaveAgentActivity", ctx, mock.AnythingOfType("domain.AgentActivity")).
		Return(assert.AnError).Once()

	trader, err := suite.service.RegisterTrader(ctx, suite.agent, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(trader)
}

// --- FacilitateCoinPurchase Tests ---
func (suite *AgentServiceTestSuite) TestFacilitateCoinPurchase_Success() {
	ctx := context.Background()
	req := dto.FacilitatePurchaseRequest{TraderID: "bello", Amount: 50, PaymentMethod: "cash"}

	suite.mockUserSvc.On("GetUserByID", ctx, "bello").Return(suite.trader, nil).Once()
	suite.mockCoinRepo.On("Credit", ctx,
		mock.MatchedBy(func(txn domain.CoinTransaction) bool {
			return txn.UserID == "bello" &&
				txn.Amount == int64(50) &&
				txn.Type == domain.CoinPurchase &&
				txn.FacilitatedByAgent == "aisha-agent"
		}),
		mock.MatchedBy(func(audit domain.AuditLog) bool {
			return audit.AdminID == "aisha-agent" && audit.Action == "facilitate_coin_purchase"
		}),
	).Return(nil).Once()
	suite.mockActivityRepo.On("SaveAgentActivity", ctx, mock.MatchedBy(func(a domain.AgentActivity) bool {
		return a.ActivityType == domain.ActivityTokenFacilitation && a.TraderID == "bello"
	})).Return(nil).Once()

	txn, err := suite.service.FacilitateCoinPurchase(ctx, suite.agent, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(txn)
	suite.Equal("aisha-agent", txn.FacilitatedByAgent)
	suite.mockCoinRepo.AssertExpectations(suite.T())
}

func (suite *AgentServiceTestSuite) TestFacilitateCoinPurchase_InvalidAmount() {
	ctx := context.Background()
	req := dto.FacilitatePurchaseRequest{TraderID: "bello", Amount: 37, PaymentMethod: "cash"}

	txn, err := suite.service.FacilitateCoinPurchase(ctx, suite.agent, req)

	suite.Require().Error(err)
	suite.Nil(txn)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockCoinRepo.AssertNotCalled(suite.T(), "Credit", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AgentServiceTestSuite) TestFacilitateCoinPurchase_TargetNotTrader() {
	ctx := context.Background()
	personal := &domain.User{UserID: "sani", Role: domain.RolePersonal}
	req := dto.FacilitatePurchaseRequest{TraderID: "sani", Amount: 10, PaymentMethod: "card"}

	suite.mockUserSvc.On("GetUserByID", ctx, "sani").Return(personal, nil).Once()

	txn, err := suite.service.FacilitateCoinPurchase(ctx, suite.agent, req)

	suite.Require().Error(err)
	suite.Nil(txn)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockCoinRepo.AssertNotCalled(suite.T(), "Credit", mock.Anything, mock.Anything, mock.Anything)
}

// --- Run Suite ---
func TestAgentService(t *testing.T) {
	suite.Run(t, new(AgentServiceTestSuite))
}
