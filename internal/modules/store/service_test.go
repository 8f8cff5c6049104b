package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"backline/internal/domain"
)

type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) GetAll(ctx context.Context, visibleOnly bool) ([]domain.Product, error) {
	args := m.Called(ctx, visibleOnly)
	return args.Get(0).([]domain.Product), args.Error(1)
}

func (m *MockProductRepository) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *MockProductRepository) Create(ctx context.Context, p *domain.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockProductRepository) Update(ctx context.Context, p *domain.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockRentalRepository struct {
	mock.Mock
}

func (m *MockRentalRepository) GetItems(ctx context.Context, availableOnly bool) ([]domain.RentalItem, error) {
	args := m.Called(ctx, availableOnly)
	return args.Get(0).([]domain.RentalItem), args.Error(1)
}

func (m *MockRentalRepository) GetItemByID(ctx context.Context, id int64) (*domain.RentalItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RentalItem), args.Error(1)
}

func (m *MockRentalRepository) CreateItem(ctx context.Context, item *domain.RentalItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockRentalRepository) SetItemAvailability(ctx context.Context, id int64, available bool) error {
	args := m.Called(ctx, id, available)
	return args.Error(0)
}

func (m *MockRentalRepository) CreateAgreement(ctx context.Context, a *domain.RentalAgreement) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockRentalRepository) GetAgreementByID(ctx context.Context, id int64) (*domain.RentalAgreement, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RentalAgreement), args.Error(1)
}

func (m *MockRentalRepository) GetOpenAgreements(ctx context.Context) ([]domain.RentalAgreement, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.RentalAgreement), args.Error(1)
}

func (m *MockRentalRepository) GetOverdueAgreements(ctx context.Context, today string) ([]domain.RentalAgreement, error) {
	args := m.Called(ctx, today)
	return args.Get(0).([]domain.RentalAgreement), args.Error(1)
}

func (m *MockRentalRepository) CloseAgreement(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func fixedNow() time.Time {
	return time.Date(2024, 6, 10, 14, 30, 0, 0, time.UTC)
}

func TestService_OpenRental_Success(t *testing.T) {
	products := new(MockProductRepository)
	rentals := new(MockRentalRepository)
	service := NewService(products, rentals, fixedNow)

	item := &domain.RentalItem{ID: 7, Name: "Stratocaster", IsAvailable: true}
	rentals.On("GetItemByID", mock.Anything, int64(7)).Return(item, nil)
	rentals.On("CreateAgreement", mock.Anything, mock.MatchedBy(func(a *domain.RentalAgreement) bool {
		return a.ItemID == 7 && a.Status == domain.RentalOpen
	})).Return(nil)
	rentals.On("SetItemAvailability", mock.Anything, int64(7), false).Return(nil)

	agreement, err := service.OpenRental(context.Background(), OpenRentalRequest{
		ItemID:       7,
		CustomerName: "Lena",
		StartDate:    "2024-06-10",
		DueDate:      "2024-06-14",
	})

	assert.NoError(t, err)
	assert.Equal(t, domain.RentalOpen, agreement.Status)
	assert.Equal(t, item, agreement.Item)
	rentals.AssertExpectations(t)
}

func TestService_OpenRental_ItemOut(t *testing.T) {
	products := new(MockProductRepository)
	rentals := new(MockRentalRepository)
	service := NewService(products, rentals, fixedNow)

	rentals.On("GetItemByID", mock.Anything, int64(7)).
		Return(&domain.RentalItem{ID: 7, IsAvailable: false}, nil)

	_, err := service.OpenRental(context.Background(), OpenRentalRequest{
		ItemID:       7,
		CustomerName: "Lena",
		StartDate:    "2024-06-10",
		DueDate:      "2024-06-14",
	})

	assert.ErrorIs(t, err, ErrItemUnavailable)
	rentals.AssertNotCalled(t, "CreateAgreement", mock.Anything, mock.Anything)
}

func TestService_OpenRental_DueBeforeStart(t *testing.T) {
	products := new(MockProductRepository)
	rentals := new(MockRentalRepository)
	service := NewService(products, rentals, fixedNow)

	_, err := service.OpenRental(context.Background(), OpenRentalRequest{
		ItemID:       7,
		CustomerName: "Lena",
		StartDate:    "2024-06-14",
		DueDate:      "2024-06-10",
	})

	assert.ErrorIs(t, err, ErrValidation)
}

func TestService_CloseRental_ReleasesItem(t *testing.T) {
	products := new(MockProductRepository)
	rentals := new(MockRentalRepository)
	service := NewService(products, rentals, fixedNow)

	open := &domain.RentalAgreement{ID: 3, ItemID: 7, Status: domain.RentalOpen}
	closed := &domain.RentalAgreement{ID: 3, ItemID: 7, Status: domain.RentalReturned}
	rentals.On("GetAgreementByID", mock.Anything, int64(3)).Return(open, nil).Once()
	rentals.On("CloseAgreement", mock.Anything, int64(3)).Return(nil)
	rentals.On("SetItemAvailability", mock.Anything, int64(7), true).Return(nil)
	rentals.On("GetAgreementByID", mock.Anything, int64(3)).Return(closed, nil).Once()

	agreement, err := service.CloseRental(context.Background(), 3)

	assert.NoError(t, err)
	assert.Equal(t, domain.RentalReturned, agreement.Status)
	rentals.AssertExpectations(t)
}

func TestService_CloseRental_AlreadyReturned(t *testing.T) {
	products := new(MockProductRepository)
	rentals := new(MockRentalRepository)
	service := NewService(products, rentals, fixedNow)

	rentals.On("GetAgreementByID", mock.Anything, int64(3)).
		Return(&domain.RentalAgreement{ID: 3, Status: domain.RentalReturned}, nil)

	_, err := service.CloseRental(context.Background(), 3)

	assert.ErrorIs(t, err, ErrValidation)
	rentals.AssertNotCalled(t, "CloseAgreement", mock.Anything, mock.Anything)
}

func TestService_ListOverdueRentals_UsesToday(t *testing.T) {
	products := new(MockProductRepository)
	rentals := new(MockRentalRepository)
	service := NewService(products, rentals, fixedNow)

	rentals.On("GetOverdueAgreements", mock.Anything, "2024-06-10").
		Return([]domain.RentalAgreement{{ID: 1}}, nil)

	overdue, err := service.ListOverdueRentals(context.Background())

	assert.NoError(t, err)
	assert.Len(t, overdue, 1)
	rentals.AssertExpectations(t)
}
