package services_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/fipithx/ficore_backend/internal/apperrors"
	"github.com/fipithx/ficore_backend/internal/core/domain"
	portssvc "github.com/fipithx/ficore_backend/internal/core/ports/services"
	"github.com/fipithx/ficore_backend/internal/core/services"
	"github.com/fipithx/ficore_backend/internal/dto"
)

// --- Mock InventoryRepository ---
type MockInventoryRepository struct {
	mock.Mock
}

func (m *MockInventoryRepository) FindItemByID(ctx context.Context, itemID string) (*domain.InventoryItem, error) {
	args := m.Called(ctx, itemID)
	var item *domain.InventoryItem
	if args.Get(0) != nil {
		item = args.Get(0).(*domain.InventoryItem)
	}
	return item, args.Error(1)
}

func (m *MockInventoryRepository) FindItems(ctx context.Context, userID string, limit int, offset int) ([]domain.InventoryItem, error) {
	args := m.Called(ctx, userID, limit, offset)
	var items []domain.InventoryItem
	if args.Get(0) != nil {
		items = args.Get(0).([]domain.InventoryItem)
	}
	return items, args.Error(1)
}

func (m *MockInventoryRepository) FindLowStockItems(ctx context.Context, userID string, limit int) ([]domain.InventoryItem, error) {
	args := m.Called(ctx, userID, limit)
	var items []domain.InventoryItem
	if args.Get(0) != nil {
		items = args.Get(0).([]domain.InventoryItem)
	}
	return items, args.Error(1)
}

func (m *MockInventoryRepository) CreateItem(ctx context.Context, item domain.InventoryItem, charge *domain.CoinTransaction, audit domain.AuditLog) error {
	args := m.Called(ctx, item, charge, audit)
	return args.Error(0)
}

func (m *MockInventoryRepository) UpdateItem(ctx context.Context, item domain.InventoryItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockInventoryRepository) DeleteItem(ctx context.Context, itemID string) error {
	args := m.Called(ctx, itemID)
	return args.Error(0)
}

// --- Test Suite ---
type InventoryServiceTestSuite struct {
	suite.Suite
	mockInventoryRepo *MockInventoryRepository
	service           portssvc.InventorySvcFacade

	trader *domain.User
	admin  *domain.User
}

func (suite *InventoryServiceTestSuite) SetupTest() {
	suite.mockInventoryRepo = new(MockInventoryRepository)
	suite.service = services.NewInventoryService(suite.mockInventoryRepo)

	suite.trader = &domain.User{UserID: "bello", Role: domain.RoleTrader}
	suite.admin = &domain.User{UserID: "admin", Role: domain.RoleAdmin}
}

func (suite *InventoryServiceTestSuite) TestCreateItem_Success() {
	ctx := context.Background()
	req := dto.CreateInventoryItemRequest{
		ItemName:     "Bag of rice",
		Qty:          12,
		Unit:         "bags",
		BuyingPrice:  decimal.NewFromInt(55000),
		SellingPrice: decimal.NewFromInt(60000),
		Threshold:    3,
	}

	suite.mockInventoryRepo.On("CreateItem", ctx,
		mock.MatchedBy(func(item domain.InventoryItem) bool {
			return item.UserID == "bello" &&
				item.ItemName == "Bag of rice" &&
				item.Qty == 12 &&
				item.Threshold == 3
		}),
		mock.MatchedBy(func(charge *domain.CoinTransaction) bool {
			return charge != nil && charge.Amount == -domain.CostAddInventory
		}),
		mock.AnythingOfType("domain.AuditLog"),
	).Return(nil).Once()

	item, err := suite.service.CreateItem(ctx, suite.trader, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(item)
	suite.Equal("Bag of rice", item.ItemName)
	suite.mockInventoryRepo.AssertExpectations(suite.T())
}

func (suite *InventoryServiceTestSuite) TestCreateItem_NegativePrice() {
	ctx := context.Background()
	req := dto.CreateInventoryItemRequest{ItemName: "Rice", BuyingPrice: decimal.NewFromInt(-1)}

	item, err := suite.service.CreateItem(ctx, suite.trader, req)

	suite.Require().Error(err)
	suite.Nil(item)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockInventoryRepo.AssertNotCalled(suite.T(), "CreateItem", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *InventoryServiceTestSuite) TestCreateItem_InsufficientCoins() {
	ctx := context.Background()
	req := dto.CreateInventoryItemRequest{ItemName: "Rice", Qty: 1}

	suite.mockInventoryRepo.On("CreateItem", ctx,
		mock.AnythingOfType("domain.InventoryItem"),
		mock.AnythingOfType("*domain.CoinTransaction"),
		mock.AnythingOfType("domain.AuditLog"),
	).Return(apperrors.ErrInsufficientCoins).Once()

	item, err := suite.service.CreateItem(ctx, suite.trader, req)

	suite.Require().Error(err)
	suite.Nil(item)
	suite.ErrorIs(err, apperrors.ErrInsufficientCoins)
}

func (suite *InventoryServiceTestSuite) TestListItems_ScopedToOwner() {
	ctx := context.Background()
	expected := []domain.InventoryItem{{ItemID: "i1", UserID: "bello"}}

	suite.mockInventoryRepo.On("FindItems", ctx, "bello", 20, 0).Return(expected, nil).Once()

	items, err := suite.service.ListItems(ctx, suite.trader, 0, 0)

	suite.Require().NoError(err)
	suite.Len(items, 1)
	suite.mockInventoryRepo.AssertExpectations(suite.T())
}

func (suite *InventoryServiceTestSuite) TestListLowStock_AdminSeesAll() {
	ctx := context.Background()

	suite.mockInventoryRepo.On("FindLowStockItems", ctx, "", 20).Return([]domain.InventoryItem{}, nil).Once()

	_, err := suite.service.ListLowStock(ctx, suite.admin, 0)

	suite.Require().NoError(err)
	suite.mockInventoryRepo.AssertExpectations(suite.T())
}

func (suite *InventoryServiceTestSuite) TestUpdateItem_Success() {
	ctx := context.Background()
	newQty := 8
	req := dto.UpdateInventoryItemRequest{Qty: &newQty}
	item := &domain.InventoryItem{ItemID: "i1", UserID: "bello", Qty: 12}

	suite.mockInventoryRepo.On("FindItemByID", ctx, "i1").Return(item, nil).Once()
	suite.mockInventoryRepo.On("UpdateItem", ctx, mock.MatchedBy(func(i domain.InventoryItem) bool {
		return i.Qty == 8
	})).Return(nil).Once()

	updated, err := suite.service.UpdateItem(ctx, suite.trader, "i1", req)

	suite.Require().NoError(err)
	suite.Equal(8, updated.Qty)
	suite.mockInventoryRepo.AssertExpectations(suite.T())
}

func (suite *InventoryServiceTestSuite) TestUpdateItem_ForbiddenForOtherUser() {
	ctx := context.Background()
	newQty := 8
	req := dto.UpdateInventoryItemRequest{Qty: &newQty}
	item := &domain.InventoryItem{ItemID: "i1", UserID: "someone-else"}

	suite.mockInventoryRepo.On("FindItemByID", ctx, "i1").Return(item, nil).Once()

	updated, err := suite.service.UpdateItem(ctx, suite.trader, "i1", req)

	suite.Require().Error(err)
	suite.Nil(updated)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockInventoryRepo.AssertNotCalled(suite.T(), "UpdateItem", mock.Anything, mock.Anything)
}

func (suite *InventoryServiceTestSuite) TestDeleteItem_Success() {
	ctx := context.Background()
	item := &domain.InventoryItem{ItemID: "i1", UserID: "bello"}

	suite.mockInventoryRepo.On("FindItemByID", ctx, "i1").Return(item, nil).Once()
	suite.mockInventoryRepo.On("DeleteItem", ctx, "i1").Return(nil).Once()

	err := suite.service.DeleteItem(ctx, suite.trader, "i1")

	suite.Require().NoError(err)
	suite.mockInventoryRepo.AssertExpectations(suite.T())
}

// --- Run Suite ---
func TestInventoryService(t *testing.T) {
	suite.Run(t, new(InventoryServiceTestSuite))
}
