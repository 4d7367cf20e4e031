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
	"github.com/fipithx/ficore_backend/internal/dto"
)

// --- Mock CashflowRepository ---
type MockCashflowRepository struct {
	mock.Mock
}

func (m *MockCashflowRepository) FindCashflowByID(ctx context.Context, cashflowID string) (*domain.Cashflow, error) {
	args := m.Called(ctx, cashflowID)
	var cf *domain.Cashflow
	if args.Get(0) != nil {
		cf = args.Get(0).(*domain.Cashflow)
	}
	return cf, args.Error(1)
}

func (m *MockCashflowRepository) FindCashflows(ctx context.Context, userID string, flowType domain.CashflowType, from, to time.Time, limit int, offset int) ([]domain.Cashflow, error) {
	args := m.Called(ctx, userID, flowType, from, to, limit, offset)
	var cashflows []domain.Cashflow
	if args.Get(0) != nil {
		cashflows = args.Get(0).([]domain.Cashflow)
	}
	return cashflows, args.Error(1)
}

func (m *MockCashflowRepository) SumCashflows(ctx context.Context, userID string, from, to time.Time) (decimal.Decimal, decimal.Decimal, error) {
	args := m.Called(ctx, userID, from, to)
	return args.Get(0).(decimal.Decimal), args.Get(1).(decimal.Decimal), args.Error(2)
}

func (m *MockCashflowRepository) CreateCashflow(ctx context.Context, cashflow domain.Cashflow, charge *domain.CoinTransaction, audit domain.AuditLog) error {
	args := m.Called(ctx, cashflow, charge, audit)
	return args.Error(0)
}

func (m *MockCashflowRepository) UpdateCashflow(ctx context.Context, cashflow domain.Cashflow) error {
	args := m.Called(ctx, cashflow)
	return args.Error(0)
}

func (m *MockCashflowRepository) DeleteCashflow(ctx context.Context, cashflowID string) error {
	args := m.Called(ctx, cashflowID)
	return args.Error(0)
}

// --- Test Suite ---
type CashflowServiceTestSuite struct {
	suite.Suite
	mockCashflowRepo *MockCashflowRepository
	mockCoinSvc      *MockCoinService
	service          portssvc.CashflowSvcFacade

	trader *domain.User
	admin  *domain.User
}

func (suite *CashflowServiceTestSuite) SetupTest() {
	suite.mockCashflowRepo = new(MockCashflowRepository)
	suite.mockCoinSvc = new(MockCoinService)
	suite.service = services.NewCashflowService(suite.mockCashflowRepo, suite.mockCoinSvc)

	suite.trader = &domain.User{UserID: "bello", Role: domain.RoleTrader}
	suite.admin = &domain.User{UserID: "admin", Role: domain.RoleAdmin}
}

func (suite *CashflowServiceTestSuite) TestCreateCashflow_Receipt() {
	ctx := context.Background()
	req := dto.CreateCashflowRequest{
		Type:      "receipt",
		PartyName: "Chinedu",
		Amount:    decimal.NewFromInt(15000),
		Method:    "cash",
		Category:  "sales",
	}

	suite.mockCashflowRepo.On("CreateCashflow", ctx,
		mock.MatchedBy(func(cf domain.Cashflow) bool {
			return cf.UserID == "bello" &&
				cf.Type == domain.Receipt &&
				cf.Method == domain.MethodCash &&
				cf.Amount.Equal(decimal.NewFromInt(15000))
		}),
		mock.MatchedBy(func(charge *domain.CoinTransaction) bool {
			return charge != nil && charge.Amount == -domain.CostAddCashflow
		}),
		mock.AnythingOfType("domain.AuditLog"),
	).Return(nil).Once()

	cf, err := suite.service.CreateCashflow(ctx, suite.trader, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(cf)
	suite.Equal(domain.Receipt, cf.Type)
	suite.mockCashflowRepo.AssertExpectations(suite.T())
}

func (suite *CashflowServiceTestSuite) TestCreateCashflow_InvalidType() {
	ctx := context.Background()
	req := dto.CreateCashflowRequest{Type: "transfer", PartyName: "X", Amount: decimal.NewFromInt(1)}

	cf, err := suite.service.CreateCashflow(ctx, suite.trader, req)

	suite.Require().Error(err)
	suite.Nil(cf)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockCashflowRepo.AssertNotCalled(suite.T(), "CreateCashflow", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *CashflowServiceTestSuite) TestCreateCashflow_InvalidMethod() {
	ctx := context.Background()
	req := dto.CreateCashflowRequest{Type: "payment", PartyName: "X", Amount: decimal.NewFromInt(1), Method: "cowries"}

	cf, err := suite.service.CreateCashflow(ctx, suite.trader, req)

	suite.Require().Error(err)
	suite.Nil(cf)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *CashflowServiceTestSuite) TestListCashflows_FiltersAndDefaults() {
	ctx := context.Background()
	from := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
	req := dto.ListCashflowsRequest{Type: "payment", From: from, To: to}
	expected := []domain.Cashflow{{CashflowID: "cf-1", Type: domain.Payment}}

	suite.mockCashflowRepo.On("FindCashflows", ctx, "bello", domain.Payment, from, to, 20, 0).Return(expected, nil).Once()

	cashflows, err := suite.service.ListCashflows(ctx, suite.trader, req)

	suite.Require().NoError(err)
	suite.Len(cashflows, 1)
	suite.mockCashflowRepo.AssertExpectations(suite.T())
}

func (suite *CashflowServiceTestSuite) TestListCashflows_AdminSeesAll() {
	ctx := context.Background()

	suite.mockCashflowRepo.On("FindCashflows", ctx, "", domain.CashflowType(""), time.Time{}, time.Time{}, 10, 0).
		Return([]domain.Cashflow{}, nil).Once()

	_, err := suite.service.ListCashflows(ctx, suite.admin, dto.ListCashflowsRequest{Limit: 10})

	suite.Require().NoError(err)
	suite.mockCashflowRepo.AssertExpectations(suite.T())
}

func (suite *CashflowServiceTestSuite) TestUpdateCashflow_Success() {
	ctx := context.Background()
	newAmount := decimal.NewFromInt(20000)
	req := dto.UpdateCashflowRequest{Amount: &newAmount}
	cf := &domain.Cashflow{CashflowID: "cf-1", UserID: "bello", Amount: decimal.NewFromInt(15000)}

	suite.mockCashflowRepo.On("FindCashflowByID", ctx, "cf-1").Return(cf, nil).Once()
	suite.mockCashflowRepo.On("UpdateCashflow", ctx, mock.MatchedBy(func(c domain.Cashflow) bool {
		return c.Amount.Equal(newAmount)
	})).Return(nil).Once()

	updated, err := suite.service.UpdateCashflow(ctx, suite.trader, "cf-1", req)

	suite.Require().NoError(err)
	suite.True(updated.Amount.Equal(newAmount))
	suite.mockCashflowRepo.AssertExpectations(suite.T())
}

func (suite *CashflowServiceTestSuite) TestUpdateCashflow_ForbiddenForOtherUser() {
	ctx := context.Background()
	name := "Someone"
	req := dto.UpdateCashflowRequest{PartyName: &name}
	cf := &domain.Cashflow{CashflowID: "cf-1", UserID: "someone-else"}

	suite.mockCashflowRepo.On("FindCashflowByID", ctx, "cf-1").Return(cf, nil).Once()

	updated, err := suite.service.UpdateCashflow(ctx, suite.trader, "cf-1", req)

	suite.Require().Error(err)
	suite.Nil(updated)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *CashflowServiceTestSuite) TestDeleteCashflow_Success() {
	ctx := context.Background()
	cf := &domain.Cashflow{CashflowID: "cf-1", UserID: "bello"}

	suite.mockCashflowRepo.On("FindCashflowByID", ctx, "cf-1").Return(cf, nil).Once()
	suite.mockCashflowRepo.On("DeleteCashflow", ctx, "cf-1").Return(nil).Once()

	err := suite.service.DeleteCashflow(ctx, suite.trader, "cf-1")

	suite.Require().NoError(err)
	suite.mockCashflowRepo.AssertExpectations(suite.T())
}

func (suite *CashflowServiceTestSuite) TestGenerateReceiptPDF_Success() {
	ctx := context.Background()
	cf := &domain.Cashflow{
		CashflowID: "cf-1",
		UserID:     "bello",
		Type:       domain.Receipt,
		PartyName:  "Chinedu",
		Amount:     decimal.NewFromInt(15000),
	}

	suite.mockCashflowRepo.On("FindCashflowByID", ctx, "cf-1").Return(cf, nil).Once()
	suite.mockCoinSvc.On("Charge", ctx, suite.trader, domain.CostGenerateReceipt, "generate_receipt", "cf-1").
		Return(&domain.CoinTransaction{TransactionID: "t1"}, nil).Once()

	pdfBytes, filename, err := suite.service.GenerateReceiptPDF(ctx, suite.trader, "cf-1")

	suite.Require().NoError(err)
	suite.NotEmpty(pdfBytes)
	suite.Equal("receipt_cf-1.pdf", filename)
	suite.mockCoinSvc.AssertExpectations(suite.T())
}

func (suite *CashflowServiceTestSuite) TestGenerateReceiptPDF_ChargeFails() {
	ctx := context.Background()
	cf := &domain.Cashflow{CashflowID: "cf-1", UserID: "bello", PartyName: "Chinedu"}

	suite.mockCashflowRepo.On("FindCashflowByID", ctx, "cf-1").Return(cf, nil).Once()
	suite.mockCoinSvc.On("Charge", ctx, suite.trader, domain.CostGenerateReceipt, "generate_receipt", "cf-1").
		Return(nil, apperrors.ErrInsufficientCoins).Once()

	pdfBytes, _, err := suite.service.GenerateReceiptPDF(ctx, suite.trader, "cf-1")

	suite.Require().Error(err)
	suite.Nil(pdfBytes)
	suite.ErrorIs(err, apperrors.ErrInsufficientCoins)
}

// --- Run Suite ---
func TestCashflowService(t *testing.T) {
	suite.Run(t, new(CashflowServiceTestSuite))
}
