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

// --- Mock CoinRepository ---
type MockCoinRepository struct {
	mock.Mock
}

func (m *MockCoinRepository) GetBalance(ctx context.Context, userID string) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCoinRepository) FindTransactionsByUser(ctx context.Context, userID string, limit int, offset int) ([]domain.CoinTransaction, error) {
	args := m.Called(ctx, userID, limit, offset)
	var txns []domain.CoinTransaction
	if args.Get(0) != nil {
		txns = args.Get(0).([]domain.CoinTransaction)
	}
	return txns, args.Error(1)
}

func (m *MockCoinRepository) FindAllTransactions(ctx context.Context, limit int, offset int) ([]domain.CoinTransaction, error) {
	args := m.Called(ctx, limit, offset)
	var txns []domain.CoinTransaction
	if args.Get(0) != nil {
		txns = args.Get(0).([]domain.CoinTransaction)
	}
	return txns, args.Error(1)
}

func (m *MockCoinRepository) Credit(ctx context.Context, txn domain.CoinTransaction, audit domain.AuditLog) error {
	args := m.Called(ctx, txn, audit)
	return args.Error(0)
}

func (m *MockCoinRepository) Debit(ctx context.Context, txn domain.CoinTransaction, audit domain.AuditLog) error {
	args := m.Called(ctx, txn, audit)
	return args.Error(0)
}

func (m *MockCoinRepository) SaveReceiptUpload(ctx context.Context, receipt domain.ReceiptUpload, charge *domain.CoinTransaction, audit domain.AuditLog) error {
	args := m.Called(ctx, receipt, charge, audit)
	return args.Error(0)
}

// --- Test Suite ---
type CoinServiceTestSuite struct {
	suite.Suite
	mockCoinRepo *MockCoinRepository
	mockUserRepo *MockUserRepository
	service      portssvc.CoinSvcFacade
}

func (suite *CoinServiceTestSuite) SetupTest() {
	suite.mockCoinRepo = new(MockCoinRepository)
	suite.mockUserRepo = new(MockUserRepository)
	suite.service = services.NewCoinService(suite.mockCoinRepo, suite.mockUserRepo)
}

// --- GetBalance Tests ---
func (suite *CoinServiceTestSuite) TestGetBalance_Success() {
	ctx := context.Background()

	suite.mockCoinRepo.On("GetBalance", ctx, "aisha").Return(int64(42), nil).Once()

	balance, err := suite.service.GetBalance(ctx, "aisha")

	suite.Require().NoError(err)
	suite.Equal(int64(42), balance)
	suite.mockCoinRepo.AssertExpectations(suite.T())
}

func (suite *CoinServiceTestSuite) TestGetBalance_RepoError() {
	ctx := context.Background()
	expectedErr := assert.AnError

	suite.mockCoinRepo.On("GetBalance", ctx, "aisha").Return(int64(0), expectedErr).Once()

	balance, err := suite.service.GetBalance(ctx, "aisha")

	suite.Require().Error(err)
	suite.Zero(balance)
	suite.ErrorIs(err, expectedErr)
}

// --- Purchase Tests ---
func (suite *CoinServiceTestSuite) TestPurchase_Success() {
	ctx := context.Background()
	actor := &domain.User{UserID: "bello", Role: domain.RoleTrader}
	req := dto.PurchaseCoinsRequest{Amount: 50, PaymentMethod: "card"}

	suite.mockCoinRepo.On("Credit", ctx,
		mock.MatchedBy(func(txn domain.CoinTransaction) bool {
			return txn.UserID == "bello" &&
				txn.Amount == 50 &&
				txn.Type == domain.CoinPurchase &&
				txn.PaymentMethod == "card" &&
				txn.TransactionID != ""
		}),
		mock.MatchedBy(func(audit domain.AuditLog) bool {
			return audit.AdminID == "bello" && audit.Action == "coin_purchase"
		}),
	).Return(nil).Once()

	txn, err := suite.service.Purchase(ctx, actor, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(txn)
	suite.Equal(int64(50), txn.Amount)
	suite.mockCoinRepo.AssertExpectations(suite.T())
}

func (suite *CoinServiceTestSuite) TestPurchase_InvalidAmount() {
	ctx := context.Background()
	actor := &domain.User{UserID: "bello", Role: domain.RoleTrader}
	req := dto.PurchaseCoinsRequest{Amount: 37, PaymentMethod: "card"}

	txn, err := suite.service.Purchase(ctx, actor, req)

	suite.Require().Error(err)
	suite.Nil(txn)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockCoinRepo.AssertNotCalled(suite.T(), "Credit", mock.Anything, mock.Anything, mock.Anything)
}

// --- Charge Tests ---
func (suite *CoinServiceTestSuite) TestCharge_Success() {
	ctx := context.Background()
	actor := &domain.User{UserID: "bello", Role: domain.RoleTrader, CoinBalance: 10}

	suite.mockCoinRepo.On("Debit", ctx,
		mock.MatchedBy(func(txn domain.CoinTransaction) bool {
			return txn.UserID == "bello" &&
				txn.Amount == -domain.CostCreateRecord &&
				txn.Type == domain.CoinSpend &&
				txn.Ref == "rec-1"
		}),
		mock.AnythingOfType("domain.AuditLog"),
	).Return(nil).Once()

	txn, err := suite.service.Charge(ctx, actor, domain.CostCreateRecord, "create_record", "rec-1")

	suite.Require().NoError(err)
	suite.Require().NotNil(txn)
	suite.Equal(-domain.CostCreateRecord, txn.Amount)
	suite.mockCoinRepo.AssertExpectations(suite.T())
}

func (suite *CoinServiceTestSuite) TestCharge_AdminExempt() {
	ctx := context.Background()
	admin := &domain.User{UserID: "admin", Role: domain.RoleAdmin}

	txn, err := suite.service.Charge(ctx, admin, domain.CostCreateRecord, "create_record", "rec-1")

	suite.Require().NoError(err)
	suite.Nil(txn)
	suite.mockCoinRepo.AssertNotCalled(suite.T(), "Debit", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *CoinServiceTestSuite) TestCharge_InsufficientCoins() {
	ctx := context.Background()
	actor := &domain.User{UserID: "bello", Role: domain.RoleTrader, CoinBalance: 0}

	suite.mockCoinRepo.On("Debit", ctx,
		mock.AnythingOfType("domain.CoinTransaction"),
		mock.AnythingOfType("domain.AuditLog"),
	).Return(apperrors.ErrInsufficientCoins).Once()

	txn, err := suite.service.Charge(ctx, actor, domain.CostSendReminder, "send_reminder", "rec-1")

	suite.Require().Error(err)
	suite.Nil(txn)
	suite.ErrorIs(err, apperrors.ErrInsufficientCoins)
	suite.mockCoinRepo.AssertExpectations(suite.T())
}

func (suite *CoinServiceTestSuite) TestCharge_NonPositiveCost() {
	ctx := context.Background()
	actor := &domain.User{UserID: "bello", Role: domain.RoleTrader}

	txn, err := suite.service.Charge(ctx, actor, 0, "noop", "")

	suite.Require().Error(err)
	suite.Nil(txn)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

// --- AdminCredit Tests ---
func (suite *CoinServiceTestSuite) TestAdminCredit_Success() {
	ctx := context.Background()
	admin := &domain.User{UserID: "admin", Role: domain.RoleAdmin}
	target := &domain.User{UserID: "bello", Role: domain.RoleTrader}
	req := dto.AdminCreditRequest{UserID: "bello", Amount: 25, Notes: "support goodwill"}

	suite.mockUserRepo.On("FindUserByID", ctx, "bello").Return(target, nil).Once()
	suite.mockCoinRepo.On("Credit", ctx,
		mock.MatchedBy(func(txn domain.CoinTransaction) bool {
			return txn.UserID == "bello" &&
				txn.Amount == 25 &&
				txn.Type == domain.CoinAdminCredit
		}),
		mock.MatchedBy(func(audit domain.AuditLog) bool {
			return audit.AdminID == "admin" && audit.Action == "admin_credit_coins"
		}),
	).Return(nil).Once()

	txn, err := suite.service.AdminCredit(ctx, admin, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(txn)
	suite.Equal(int64(25), txn.Amount)
	suite.mockCoinRepo.AssertExpectations(suite.T())
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *CoinServiceTestSuite) TestAdminCredit_NonAdminForbidden() {
	ctx := context.Background()
	trader := &domain.User{UserID: "bello", Role: domain.RoleTrader}
	req := dto.AdminCreditRequest{UserID: "aisha", Amount: 25}

	txn, err := suite.service.AdminCredit(ctx, trader, req)

	suite.Require().Error(err)
	suite.Nil(txn)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockCoinRepo.AssertNotCalled(suite.T(), "Credit", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *CoinServiceTestSuite) TestAdminCredit_UnknownTarget() {
	ctx := context.Background()
	admin := &domain.User{UserID: "admin", Role: domain.RoleAdmin}
	req := dto.AdminCreditRequest{UserID: "ghost", Amount: 25}

	suite.mockUserRepo.On("FindUserByID", ctx, "ghost").Return(nil, apperrors.ErrNotFound).Once()

	txn, err := suite.service.AdminCredit(ctx, admin, req)

	suite.Require().Error(err)
	suite.Nil(txn)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockCoinRepo.AssertNotCalled(suite.T(), "Credit", mock.Anything, mock.Anything, mock.Anything)
}

// --- History Tests ---
func (suite *CoinServiceTestSuite) TestHistory_ScopedToUser() {
	ctx := context.Background()
	actor := &domain.User{UserID: "bello", Role: domain.RoleTrader}
	expected := []domain.CoinTransaction{{TransactionID: "t1", UserID: "bello"}}

	suite.mockCoinRepo.On("FindTransactionsByUser", ctx, "bello", 50, 0).Return(expected, nil).Once()

	txns, err := suite.service.History(ctx, actor, 0, -1)

	suite.Require().NoError(err)
	suite.Len(txns, 1)
	suite.mockCoinRepo.AssertExpectations(suite.T())
}

func (suite *CoinServiceTestSuite) TestHistory_AdminSeesAll() {
	ctx := context.Background()
	admin := &domain.User{UserID: "admin", Role: domain.RoleAdmin}
	expected := []domain.CoinTransaction{{TransactionID: "t1"}, {TransactionID: "t2"}}

	suite.mockCoinRepo.On("FindAllTransactions", ctx, 10, 5).Return(expected, nil).Once()

	txns, err := suite.service.History(ctx, admin, 10, 5)

	suite.Require().NoError(err)
	suite.Len(txns, 2)
	suite.mockCoinRepo.AssertNotCalled(suite.T(), "FindTransactionsByUser", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// --- UploadReceipt Tests ---
func (suite *CoinServiceTestSuite) TestUploadReceipt_DebitsUploadCost() {
	ctx := context.Background()
	actor := &domain.User{UserID: "bello", Role: domain.RoleTrader}
	meta := dto.ReceiptUploadMeta{
		FileName:    "transfer.jpg",
		FilePath:    "uploads/receipts/abc.jpg",
		ContentType: "image/jpeg",
		SizeBytes:   2048,
	}

	suite.mockCoinRepo.On("SaveReceiptUpload", ctx,
		mock.MatchedBy(func(r domain.ReceiptUpload) bool {
			return r.UserID == "bello" &&
				r.FileName == "transfer.jpg" &&
				r.FilePath == "uploads/receipts/abc.jpg" &&
				r.SizeBytes == 2048
		}),
		mock.MatchedBy(func(charge *domain.CoinTransaction) bool {
			return charge != nil &&
				charge.UserID == "bello" &&
				charge.Amount == -domain.CostReceiptUpload &&
				charge.Type == domain.CoinSpend
		}),
		mock.MatchedBy(func(audit domain.AuditLog) bool {
			return audit.Action == "receipt_upload"
		}),
	).Return(nil).Once()

	receipt, err := suite.service.UploadReceipt(ctx, actor, meta)

	suite.Require().NoError(err)
	suite.Require().NotNil(receipt)
	suite.Equal("bello", receipt.UserID)
	suite.NotEmpty(receipt.ReceiptID)
	suite.mockCoinRepo.AssertExpectations(suite.T())
}

func (suite *CoinServiceTestSuite) TestUploadReceipt_AdminNotCharged() {
	ctx := context.Background()
	admin := &domain.User{UserID: "admin", Role: domain.RoleAdmin}
	meta := dto.ReceiptUploadMeta{FileName: "transfer.pdf", FilePath: "uploads/receipts/def.pdf"}

	suite.mockCoinRepo.On("SaveReceiptUpload", ctx,
		mock.AnythingOfType("domain.ReceiptUpload"),
		(*domain.CoinTransaction)(nil),
		mock.AnythingOfType("domain.AuditLog"),
	).Return(nil).Once()

	receipt, err := suite.service.UploadReceipt(ctx, admin, meta)

	suite.Require().NoError(err)
	suite.Require().NotNil(receipt)
	suite.mockCoinRepo.AssertExpectations(suite.T())
}

func (suite *CoinServiceTestSuite) TestUploadReceipt_InsufficientCoins() {
	ctx := context.Background()
	actor := &domain.User{UserID: "bello", Role: domain.RoleTrader}
	meta := dto.ReceiptUploadMeta{FileName: "transfer.jpg", FilePath: "uploads/receipts/ghi.jpg"}

	suite.mockCoinRepo.On("SaveReceiptUpload", ctx,
		mock.AnythingOfType("domain.ReceiptUpload"),
		mock.AnythingOfType("*domain.CoinTransaction"),
		mock.AnythingOfType("domain.AuditLog"),
	).Return(apperrors.ErrInsufficientCoins).Once()

	receipt, err := suite.service.UploadReceipt(ctx, actor, meta)

	suite.Require().Error(err)
	suite.Nil(receipt)
	suite.ErrorIs(err, apperrors.ErrInsufficientCoins)
}

func (suite *CoinServiceTestSuite) TestUploadReceipt_MissingFile() {
	ctx := context.Background()
	actor := &domain.User{UserID: "bello", Role: domain.RoleTrader}

	receipt, err := suite.service.UploadReceipt(ctx, actor, dto.ReceiptUploadMeta{})

	suite.Require().Error(err)
	suite.Nil(receipt)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockCoinRepo.AssertNotCalled(suite.T(), "SaveReceiptUpload", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// --- Run Suite ---
func TestCoinService(t *testing.T) {
	suite.Run(t, new(CoinServiceTestSuite))
}
