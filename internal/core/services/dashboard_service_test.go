package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/fipithx/ficore_backend/internal/apperrors"
	"github.com/fipithx/ficore_backend/internal/core/domain"
	portssvc "github.com/fipithx/ficore_backend/internal/core/ports/services"
	"github.com/fipithx/ficore_backend/internal/core/services"
)

// --- Mock ActivityRepository ---
type MockActivityRepository struct {
	mock.Mock
}

func (m *MockActivityRepository) SaveAuditLog(ctx context.Context, entry domain.AuditLog) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockActivityRepository) FindAuditLogs(ctx context.Context, userID string, limit int, offset int) ([]domain.AuditLog, error) {
	args := m.Called(ctx, userID, limit, offset)
	var logs []domain.AuditLog
	if args.Get(0) != nil {
		logs = args.Get(0).([]domain.AuditLog)
	}
	return logs, args.Error(1)
}

func (m *MockActivityRepository) SaveAgentActivity(ctx context.Context, activity domain.AgentActivity) error {
	args := m.Called(ctx, activity)
	return args.Error(0)
}

func (m *MockActivityRepository) FindAgentActivities(ctx context.Context, agentID string, limit int, offset int) ([]domain.AgentActivity, error) {
	args := m.Called(ctx, agentID, limit, offset)
	var activities []domain.AgentActivity
	if args.Get(0) != nil {
		activities = args.Get(0).([]domain.AgentActivity)
	}
	return activities, args.Error(1)
}

func (m *MockActivityRepository) SaveToolUsage(ctx context.Context, usage domain.ToolUsage) error {
	args := m.Called(ctx, usage)
	return args.Error(0)
}

func (m *MockActivityRepository) CountToolUsage(ctx context.Context) (map[string]int64, error) {
	args := m.Called(ctx)
	var counts map[string]int64
	if args.Get(0) != nil {
		counts = args.Get(0).(map[string]int64)
	}
	return counts, args.Error(1)
}

func (m *MockActivityRepository) SaveFeedback(ctx context.Context, feedback domain.Feedback) error {
	args := m.Called(ctx, feedback)
	return args.Error(0)
}

func (m *MockActivityRepository) FindFeedback(ctx context.Context, limit int, offset int) ([]domain.Feedback, error) {
	args := m.Called(ctx, limit, offset)
	var feedback []domain.Feedback
	if args.Get(0) != nil {
		feedback = args.Get(0).([]domain.Feedback)
	}
	return feedback, args.Error(1)
}

// --- Test Suite ---
type DashboardServiceTestSuite struct {
	suite.Suite
	mockUserRepo      *MockUserRepository
	mockRecordRepo    *MockRecordRepository
	mockCashflowRepo  *MockCashflowRepository
	mockInventoryRepo *MockInventoryRepository
	mockCoinRepo      *MockCoinRepository
	mockActivityRepo  *MockActivityRepository
	service           portssvc.DashboardSvcFacade

	trader *domain.User
	admin  *domain.User
}

func (suite *DashboardServiceTestSuite) SetupTest() {
	suite.mockUserRepo = new(MockUserRepository)
	suite.mockRecordRepo = new(MockRecordRepository)
	suite.mockCashflowRepo = new(MockCashflowRepository)
	suite.mockInventoryRepo = new(MockInventoryRepository)
	suite.mockCoinRepo = new(MockCoinRepository)
	suite.mockActivityRepo = new(MockActivityRepository)
	suite.service = services.NewDashboardService(
		suite.mockUserRepo,
		suite.mockRecordRepo,
		suite.mockCashflowRepo,
		suite.mockInventoryRepo,
		suite.mockCoinRepo,
		suite.mockActivityRepo,
	)

	suite.trader = &domain.User{UserID: "bello", Role: domain.RoleTrader, CoinBalance: 25}
	suite.admin = &domain.User{UserID: "admin", Role: domain.RoleAdmin}
}

func (suite *DashboardServiceTestSuite) expectOverviewReads(userID string) {
	records := []domain.Record{
		{RecordID: "rec-1", UserID: userID, Type: domain.Debtor, AmountOwed: decimal.NewFromInt(5000)},
		{RecordID: "rec-2", UserID: userID, Type: domain.Creditor, AmountOwed: decimal.NewFromInt(2000)},
	}
	suite.mockRecordRepo.On("FindRecords", mock.Anything, userID, domain.RecordType(""), mock.AnythingOfType("int"), 0).
		Return(records, nil).Once()
	suite.mockCashflowRepo.On("SumCashflows", mock.Anything, userID, time.Time{}, time.Time{}).
		Return(decimal.NewFromInt(30000), decimal.NewFromInt(12000), nil).Once()
	suite.mockCashflowRepo.On("FindCashflows", mock.Anything, userID, domain.CashflowType(""), time.Time{}, time.Time{}, 5, 0).
		Return([]domain.Cashflow{}, nil).Once()
	suite.mockCoinRepo.On("FindTransactionsByUser", mock.Anything, userID, 5, 0).
		Return([]domain.CoinTransaction{}, nil).Once()
	suite.mockInventoryRepo.On("FindLowStockItems", mock.Anything, userID, 5).
		Return([]domain.InventoryItem{}, nil).Once()
}

func (suite *DashboardServiceTestSuite) TestOverview_Self() {
	ctx := context.Background()
	suite.expectOverviewReads("bello")

	overview, err := suite.service.Overview(ctx, suite.trader, "")

	suite.Require().NoError(err)
	suite.Equal("bello", overview.User.UserID)
	suite.Equal(int64(25), overview.CoinBalance)
	suite.True(overview.TotalOwedToMe.Equal(decimal.NewFromInt(5000)))
	suite.True(overview.TotalIOwe.Equal(decimal.NewFromInt(2000)))
	suite.True(overview.NetCashflow.Equal(decimal.NewFromInt(18000)))
	suite.mockUserRepo.AssertNotCalled(suite.T(), "FindUserByID", mock.Anything, mock.Anything)
}

func (suite *DashboardServiceTestSuite) TestOverview_AdminViewsAnotherUser() {
	ctx := context.Background()
	target := &domain.User{UserID: "bello", Role: domain.RoleTrader, CoinBalance: 7}

	suite.mockUserRepo.On("FindUserByID", ctx, "bello").Return(target, nil).Once()
	suite.expectOverviewReads("bello")

	overview, err := suite.service.Overview(ctx, suite.admin, "bello")

	suite.Require().NoError(err)
	suite.Equal("bello", overview.User.UserID)
	suite.Equal(int64(7), overview.CoinBalance)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *DashboardServiceTestSuite) TestOverview_NonAdminCannotViewOthers() {
	ctx := context.Background()

	overview, err := suite.service.Overview(ctx, suite.trader, "someone-else")

	suite.Require().Error(err)
	suite.Nil(overview)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "FindUserByID", mock.Anything, mock.Anything)
	suite.mockRecordRepo.AssertNotCalled(suite.T(), "FindRecords", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *DashboardServiceTestSuite) TestOverview_UnknownTargetUser() {
	ctx := context.Background()

	suite.mockUserRepo.On("FindUserByID", ctx, "ghost").Return(nil, apperrors.ErrNotFound).Once()

	overview, err := suite.service.Overview(ctx, suite.admin, "ghost")

	suite.Require().Error(err)
	suite.Nil(overview)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

// --- Run Suite ---
func TestDashboardService(t *testing.T) {
	suite.Run(t, new(DashboardServiceTestSuite))
}
