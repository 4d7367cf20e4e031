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
	portsrepo "github.com/fipithx/ficore_backend/internal/core/ports/repositories"
	portssvc "github.com/fipithx/ficore_backend/internal/core/ports/services"
	"github.com/fipithx/ficore_backend/internal/core/services"
	"github.com/fipithx/ficore_backend/internal/dto"
)

// --- Mock BillRepository ---
type MockBillRepository struct {
	mock.Mock
}

func (m *MockBillRepository) SaveBill(ctx context.Context, bill domain.Bill) error {
	args := m.Called(ctx, bill)
	return args.Error(0)
}

func (m *MockBillRepository) FindBillByID(ctx context.Context, owner portsrepo.Owner, billID string) (*domain.Bill, error) {
	args := m.Called(ctx, owner, billID)
	var bill *domain.Bill
	if args.Get(0) != nil {
		bill = args.Get(0).(*domain.Bill)
	}
	return bill, args.Error(1)
}

func (m *MockBillRepository) FindBills(ctx context.Context, owner portsrepo.Owner, status domain.BillStatus, limit int) ([]domain.Bill, error) {
	args := m.Called(ctx, owner, status, limit)
	var bills []domain.Bill
	if args.Get(0) != nil {
		bills = args.Get(0).([]domain.Bill)
	}
	return bills, args.Error(1)
}

func (m *MockBillRepository) UpdateBill(ctx context.Context, owner portsrepo.Owner, bill domain.Bill) error {
	args := m.Called(ctx, owner, bill)
	return args.Error(0)
}

func (m *MockBillRepository) DeleteBill(ctx context.Context, owner portsrepo.Owner, billID string) error {
	args := m.Called(ctx, owner, billID)
	return args.Error(0)
}

func (m *MockBillRepository) MarkOverdueBills(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}

// --- Test Suite ---
type BillServiceTestSuite struct {
	suite.Suite
	mockBillRepo  *MockBillRepository
	mockUserRepo  *MockUserRepository
	mockUsageRepo *MockToolUsageRepository
	mockMail      *MockEmailSender
	service       portssvc.BillSvcFacade
}

func (suite *BillServiceTestSuite) SetupTest() {
	suite.mockBillRepo = new(MockBillRepository)
	suite.mockUserRepo = new(MockUserRepository)
	suite.mockUsageRepo = new(MockToolUsageRepository)
	suite.mockMail = new(MockEmailSender)
	suite.service = services.NewBillService(suite.mockBillRepo, suite.mockUserRepo, suite.mockUsageRepo, suite.mockMail)
}

func (suite *BillServiceTestSuite) TestCreateBill_Success() {
	ctx := context.Background()
	owner := portssvc.PersonalOwner{SessionID: "sess-1"}
	dueDate := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
	req := dto.CreateBillRequest{
		Name:      "NEPA bill",
		Amount:    decimal.NewFromInt(8000),
		DueDate:   dueDate,
		Frequency: "monthly",
		Category:  "utilities",
	}

	suite.mockBillRepo.On("SaveBill", ctx, mock.MatchedBy(func(bill domain.Bill) bool {
		return bill.SessionID == "sess-1" &&
			bill.Name == "NEPA bill" &&
			bill.Status == domain.BillUnpaid &&
			bill.Frequency == domain.FrequencyMonthly &&
			bill.DueDate.Equal(dueDate)
	})).Return(nil).Once()
	suite.mockUsageRepo.On("SaveToolUsage", ctx, mock.MatchedBy(func(u domain.ToolUsage) bool {
		return u.ToolName == "bill"
	})).Return(nil).Once()

	bill, err := suite.service.CreateBill(ctx, owner, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(bill)
	suite.Equal(domain.BillUnpaid, bill.Status)
	suite.mockBillRepo.AssertExpectations(suite.T())
	suite.mockMail.AssertNotCalled(suite.T(), "Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *BillServiceTestSuite) TestCreateBill_SendsConfirmationEmail() {
	ctx := context.Background()
	owner := portssvc.PersonalOwner{UserID: "musa"}
	req := dto.CreateBillRequest{
		Name:      "Rent",
		Amount:    decimal.NewFromInt(150000),
		DueDate:   time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
		Frequency: "monthly",
		SendEmail: true,
	}
	user := &domain.User{UserID: "musa", Email: "musa@example.com"}

	suite.mockUserRepo.On("FindUserByID", ctx, "musa").Return(user, nil).Once()
	suite.mockBillRepo.On("SaveBill", ctx, mock.AnythingOfType("domain.Bill")).Return(nil).Once()
	suite.mockUsageRepo.On("SaveToolUsage", ctx, mock.AnythingOfType("domain.ToolUsage")).Return(nil).Once()
	suite.mockMail.On("Send", ctx, "musa@example.com",
		mock.AnythingOfType("string"), mock.AnythingOfType("string")).Return(nil).Once()

	bill, err := suite.service.CreateBill(ctx, owner, req)

	suite.Require().NoError(err)
	suite.Equal("musa@example.com", bill.UserEmail)
	suite.mockMail.AssertExpectations(suite.T())
}

func (suite *BillServiceTestSuite) TestCreateBill_InvalidFrequency() {
	ctx := context.Background()
	owner := portssvc.PersonalOwner{UserID: "musa"}
	req := dto.CreateBillRequest{Name: "Rent", Amount: decimal.NewFromInt(1), DueDate: time.Now(), Frequency: "fortnightly"}

	bill, err := suite.service.CreateBill(ctx, owner, req)

	suite.Require().Error(err)
	suite.Nil(bill)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockBillRepo.AssertNotCalled(suite.T(), "SaveBill", mock.Anything, mock.Anything)
}

func (suite *BillServiceTestSuite) TestListBills_FilteredByStatus() {
	ctx := context.Background()
	owner := portssvc.PersonalOwner{UserID: "musa"}
	expected := []domain.Bill{{BillID: "b1", Status: domain.BillOverdue}}

	suite.mockBillRepo.On("FindBills", ctx, portsrepo.Owner{UserID: "musa"}, domain.BillOverdue, 50).Return(expected, nil).Once()

	bills, err := suite.service.ListBills(ctx, owner, domain.BillOverdue, 0)

	suite.Require().NoError(err)
	suite.Len(bills, 1)
	suite.mockBillRepo.AssertExpectations(suite.T())
}

func (suite *BillServiceTestSuite) TestListBills_InvalidStatus() {
	ctx := context.Background()
	owner := portssvc.PersonalOwner{UserID: "musa"}

	bills, err := suite.service.ListBills(ctx, owner, domain.BillStatus("settled"), 10)

	suite.Require().Error(err)
	suite.Nil(bills)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *BillServiceTestSuite) TestUpdateBill_MarkPaidRollsRecurringForward() {
	ctx := context.Background()
	owner := portssvc.PersonalOwner{UserID: "musa"}
	dueDate := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	paid := "paid"
	req := dto.UpdateBillRequest{Status: &paid}
	bill := &domain.Bill{
		BillID:    "b1",
		UserID:    "musa",
		Name:      "Rent",
		DueDate:   dueDate,
		Frequency: domain.FrequencyMonthly,
		Status:    domain.BillUnpaid,
	}

	suite.mockBillRepo.On("FindBillByID", ctx, portsrepo.Owner{UserID: "musa"}, "b1").Return(bill, nil).Once()
	suite.mockBillRepo.On("UpdateBill", ctx, portsrepo.Owner{UserID: "musa"}, mock.MatchedBy(func(b domain.Bill) bool {
		return b.Status == domain.BillUnpaid && b.DueDate.Equal(dueDate.AddDate(0, 1, 0))
	})).Return(nil).Once()

	updated, err := suite.service.UpdateBill(ctx, owner, "b1", req)

	suite.Require().NoError(err)
	suite.Equal(domain.BillUnpaid, updated.Status)
	suite.True(updated.DueDate.Equal(dueDate.AddDate(0, 1, 0)))
	suite.mockBillRepo.AssertExpectations(suite.T())
}

func (suite *BillServiceTestSuite) TestUpdateBill_MarkPaidOneOffStaysPaid() {
	ctx := context.Background()
	owner := portssvc.PersonalOwner{UserID: "musa"}
	paid := "paid"
	req := dto.UpdateBillRequest{Status: &paid}
	bill := &domain.Bill{
		BillID:    "b1",
		UserID:    "musa",
		Name:      "School fees",
		DueDate:   time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		Frequency: domain.FrequencyOneOff,
		Status:    domain.BillUnpaid,
	}

	suite.mockBillRepo.On("FindBillByID", ctx, portsrepo.Owner{UserID: "musa"}, "b1").Return(bill, nil).Once()
	suite.mockBillRepo.On("UpdateBill", ctx, portsrepo.Owner{UserID: "musa"}, mock.MatchedBy(func(b domain.Bill) bool {
		return b.Status == domain.BillPaid
	})).Return(nil).Once()

	updated, err := suite.service.UpdateBill(ctx, owner, "b1", req)

	suite.Require().NoError(err)
	suite.Equal(domain.BillPaid, updated.Status)
	suite.mockBillRepo.AssertExpectations(suite.T())
}

func (suite *BillServiceTestSuite) TestUpdateBill_NotFound() {
	ctx := context.Background()
	owner := portssvc.PersonalOwner{SessionID: "sess-1"}
	name := "Water"
	req := dto.UpdateBillRequest{Name: &name}

	suite.mockBillRepo.On("FindBillByID", ctx, portsrepo.Owner{SessionID: "sess-1"}, "ghost").Return(nil, apperrors.ErrNotFound).Once()

	bill, err := suite.service.UpdateBill(ctx, owner, "ghost", req)

	suite.Require().Error(err)
	suite.Nil(bill)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *BillServiceTestSuite) TestDeleteBill_Success() {
	ctx := context.Background()
	owner := portssvc.PersonalOwner{UserID: "musa"}

	suite.mockBillRepo.On("DeleteBill", ctx, portsrepo.Owner{UserID: "musa"}, "b1").Return(nil).Once()

	err := suite.service.DeleteBill(ctx, owner, "b1")

	suite.Require().NoError(err)
	suite.mockBillRepo.AssertExpectations(suite.T())
}

func (suite *BillServiceTestSuite) TestMarkOverdue_Success() {
	ctx := context.Background()

	suite.mockBillRepo.On("MarkOverdueBills", ctx, mock.AnythingOfType("time.Time")).Return(int64(3), nil).Once()

	changed, err := suite.service.MarkOverdue(ctx)

	suite.Require().NoError(err)
	suite.Equal(int64(3), changed)
	suite.mockBillRepo.AssertExpectations(suite.T())
}

// --- Run Suite ---
func TestBillService(t *testing.T) {
	suite.Run(t, new(BillServiceTestSuite))
}
