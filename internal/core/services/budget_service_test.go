package services_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/fipithx/ficore_backend/internal/apperrors"
	"github.com/fipithx/ficore_backend/internal/core/domain"
	portsrepo "github.com/fipithx/ficore_backend/internal/core/ports/repositories"
	portssvc "github.com/fipithx/ficore_backend/internal/core/ports/services"
	"github.com/fipithx/ficore_backend/internal/core/services"
	"github.com/fipithx/ficore_backend/internal/dto"
)

// --- Mock BudgetRepository ---
type MockBudgetRepository struct {
	mock.Mock
}

func (m *MockBudgetRepository) SaveBudget(ctx context.Context, budget domain.Budget) error {
	args := m.Called(ctx, budget)
	return args.Error(0)
}

func (m *MockBudgetRepository) FindBudgets(ctx context.Context, owner portsrepo.Owner, limit int) ([]domain.Budget, error) {
	args := m.Called(ctx, owner, limit)
	var budgets []domain.Budget
	if args.Get(0) != nil {
		budgets = args.Get(0).([]domain.Budget)
	}
	return budgets, args.Error(1)
}

func (m *MockBudgetRepository) DeleteBudget(ctx context.Context, owner portsrepo.Owner, budgetID string) error {
	args := m.Called(ctx, owner, budgetID)
	return args.Error(0)
}

// --- Mock ToolUsageRepository ---
type MockToolUsageRepository struct {
	mock.Mock
}

func (m *MockToolUsageRepository) SaveToolUsage(ctx context.Context, usage domain.ToolUsage) error {
	args := m.Called(ctx, usage)
	return args.Error(0)
}

func (m *MockToolUsageRepository) CountToolUsage(ctx context.Context) (map[string]int64, error) {
	args := m.Called(ctx)
	var counts map[string]int64
	if args.Get(0) != nil {
		counts = args.Get(0).(map[string]int64)
	}
	return counts, args.Error(1)
}

// --- Test Suite ---
type BudgetServiceTestSuite struct {
	suite.Suite
	mockBudgetRepo *MockBudgetRepository
	mockUsageRepo  *MockToolUsageRepository
	service        portssvc.BudgetSvcFacade
}

func (suite *BudgetServiceTestSuite) SetupTest() {
	suite.mockBudgetRepo = new(MockBudgetRepository)
	suite.mockUsageRepo = new(MockToolUsageRepository)
	suite.service = services.NewBudgetService(suite.mockBudgetRepo, suite.mockUsageRepo)
}

func (suite *BudgetServiceTestSuite) TestCalculateBudget_Surplus() {
	ctx := context.Background()
	owner := portssvc.PersonalOwner{UserID: "musa"}
	req := dto.BudgetRequest{
		Income:      decimal.NewFromInt(100000),
		Housing:     decimal.NewFromInt(30000),
		Food:        decimal.NewFromInt(25000),
		Transport:   decimal.NewFromInt(10000),
		SavingsGoal: decimal.NewFromInt(20000),
	}

	suite.mockBudgetRepo.On("SaveBudget", ctx, mock.MatchedBy(func(b domain.Budget) bool {
		return b.UserID == "musa" &&
			b.FixedExpenses.Equal(decimal.NewFromInt(65000)) &&
			b.SurplusDeficit.Equal(decimal.NewFromInt(35000))
	})).Return(nil).Once()
	suite.mockUsageRepo.On("SaveToolUsage", ctx, mock.MatchedBy(func(u domain.ToolUsage) bool {
		return u.ToolName == "budget" && u.UserID == "musa"
	})).Return(nil).Once()

	resp, err := suite.service.CalculateBudget(ctx, owner, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(resp)
	suite.True(resp.FixedExpenses.Equal(decimal.NewFromInt(65000)))
	suite.True(resp.SurplusDeficit.Equal(decimal.NewFromInt(35000)))
	suite.mockBudgetRepo.AssertExpectations(suite.T())
	suite.mockUsageRepo.AssertExpectations(suite.T())
}

func (suite *BudgetServiceTestSuite) TestCalculateBudget_Deficit() {
	ctx := context.Background()
	owner := portssvc.PersonalOwner{SessionID: "sess-1"}
	req := dto.BudgetRequest{
		Income:  decimal.NewFromInt(50000),
		Housing: decimal.NewFromInt(40000),
		Food:    decimal.NewFromInt(30000),
	}

	suite.mockBudgetRepo.On("SaveBudget", ctx, mock.MatchedBy(func(b domain.Budget) bool {
		return b.SessionID == "sess-1" && b.SurplusDeficit.Equal(decimal.NewFromInt(-20000))
	})).Return(nil).Once()
	suite.mockUsageRepo.On("SaveToolUsage", ctx, mock.AnythingOfType("domain.ToolUsage")).Return(nil).Once()

	resp, err := suite.service.CalculateBudget(ctx, owner, req)

	suite.Require().NoError(err)
	suite.True(resp.SurplusDeficit.IsNegative())
	suite.mockBudgetRepo.AssertExpectations(suite.T())
}

func (suite *BudgetServiceTestSuite) TestCalculateBudget_NegativeIncome() {
	ctx := context.Background()
	owner := portssvc.PersonalOwner{UserID: "musa"}
	req := dto.BudgetRequest{Income: decimal.NewFromInt(-1)}

	resp, err := suite.service.CalculateBudget(ctx, owner, req)

	suite.Require().Error(err)
	suite.Nil(resp)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockBudgetRepo.AssertNotCalled(suite.T(), "SaveBudget", mock.Anything, mock.Anything)
}

func (suite *BudgetServiceTestSuite) TestCalculateBudget_UsageTrackingFailureIgnored() {
	ctx := context.Background()
	owner := portssvc.PersonalOwner{UserID: "musa"}
	req := dto.BudgetRequest{Income: decimal.NewFromInt(1000)}

	suite.mockBudgetRepo.On("SaveBudget", ctx, mock.AnythingOfType("domain.Budget")).Return(nil).Once()
	suite.mockUsageRepo.On("SaveToolUsage", ctx, mock.AnythingOfType("domain.ToolUsage")).Return(assert.AnError).Once()

	resp, err := suite.service.CalculateBudget(ctx, owner, req)

	suite.Require().NoError(err)
	suite.NotNil(resp)
}

func (suite *BudgetServiceTestSuite) TestBudgetHistory_Success() {
	ctx := context.Background()
	owner := portssvc.PersonalOwner{SessionID: "sess-1"}
	expected := []domain.Budget{{BudgetID: "b1", SessionID: "sess-1"}}

	suite.mockBudgetRepo.On("FindBudgets", ctx, portsrepo.Owner{SessionID: "sess-1"}, 20).Return(expected, nil).Once()

	budgets, err := suite.service.BudgetHistory(ctx, owner, 0)

	suite.Require().NoError(err)
	suite.Len(budgets, 1)
	suite.mockBudgetRepo.AssertExpectations(suite.T())
}

func (suite *BudgetServiceTestSuite) TestDeleteBudget_NotFound() {
	ctx := context.Background()
	owner := portssvc.PersonalOwner{UserID: "musa"}

	suite.mockBudgetRepo.On("DeleteBudget", ctx, portsrepo.Owner{UserID: "musa"}, "ghost").Return(apperrors.ErrNotFound).Once()

	err := suite.service.DeleteBudget(ctx, owner, "ghost")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

// --- Run Suite ---
func TestBudgetService(t *testing.T) {
	suite.Run(t, new(BudgetServiceTestSuite))
}
