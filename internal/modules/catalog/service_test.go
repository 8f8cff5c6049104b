package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"backline/internal/domain"
)

type MockRoomRepository struct {
	mock.Mock
}

func (m *MockRoomRepository) GetAll(ctx context.Context) ([]domain.Room, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Room), args.Error(1)
}

func (m *MockRoomRepository) GetVisible(ctx context.Context) ([]domain.Room, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Room), args.Error(1)
}

func (m *MockRoomRepository) GetByID(ctx context.Context, id int64) (*domain.Room, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Room), args.Error(1)
}

func (m *MockRoomRepository) Create(ctx context.Context, room *domain.Room) error {
	args := m.Called(ctx, room)
	if room != nil {
		room.ID = 42
	}
	return args.Error(0)
}

func (m *MockRoomRepository) Update(ctx context.Context, room *domain.Room) error {
	args := m.Called(ctx, room)
	return args.Error(0)
}

func (m *MockRoomRepository) SetVisibility(ctx context.Context, id int64, visible bool) error {
	args := m.Called(ctx, id, visible)
	return args.Error(0)
}

func (m *MockRoomRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockBookingCounter struct {
	mock.Mock
}

func (m *MockBookingCounter) CountFutureForRoom(ctx context.Context, roomID int64, today string, nowMin int) (int64, error) {
	args := m.Called(ctx, roomID, today, nowMin)
	return args.Get(0).(int64), args.Error(1)
}

func fixedNow() time.Time {
	return time.Date(2024, 6, 10, 14, 30, 0, 0, time.UTC)
}

func TestService_CreateRoom_InvalidType(t *testing.T) {
	service := NewService(new(MockRoomRepository), new(MockBookingCounter), fixedNow)

	_, err := service.CreateRoom(context.Background(), RoomRequest{
		Name:     "Vocal booth",
		RoomType: "vocal",
		Capacity: 2,
	})

	assert.ErrorIs(t, err, ErrValidation)
}

func TestService_CreateRoom_VisibleByDefault(t *testing.T) {
	mockRooms := new(MockRoomRepository)
	mockRooms.On("Create", mock.Anything, mock.Anything).Return(nil)

	service := NewService(mockRooms, new(MockBookingCounter), fixedNow)

	room, err := service.CreateRoom(context.Background(), RoomRequest{
		Name:     "Drums 2",
		RoomType: "drums",
		Capacity: 6,
	})

	assert.NoError(t, err)
	assert.True(t, room.IsVisible)
	assert.Equal(t, int64(42), room.ID)
}

func TestService_DeleteRoom_GuardedByFutureBookings(t *testing.T) {
	mockRooms := new(MockRoomRepository)
	mockCounter := new(MockBookingCounter)

	room := &domain.Room{ID: 1, Name: "Drums 1", RoomType: domain.RoomDrums, Capacity: 5, IsVisible: true}
	mockRooms.On("GetByID", mock.Anything, int64(1)).Return(room, nil)
	mockCounter.On("CountFutureForRoom", mock.Anything, int64(1), "2024-06-10", 870).Return(int64(2), nil)

	service := NewService(mockRooms, mockCounter, fixedNow)

	err := service.DeleteRoom(context.Background(), 1)

	assert.ErrorIs(t, err, ErrRoomInUse)
	mockRooms.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestService_DeleteRoom_AllowedWhenUnreferenced(t *testing.T) {
	mockRooms := new(MockRoomRepository)
	mockCounter := new(MockBookingCounter)

	room := &domain.Room{ID: 1, Name: "Drums 1", RoomType: domain.RoomDrums, Capacity: 5, IsVisible: true}
	mockRooms.On("GetByID", mock.Anything, int64(1)).Return(room, nil)
	mockCounter.On("CountFutureForRoom", mock.Anything, int64(1), "2024-06-10", 870).Return(int64(0), nil)
	mockRooms.On("Delete", mock.Anything, int64(1)).Return(nil)

	service := NewService(mockRooms, mockCounter, fixedNow)

	err := service.DeleteRoom(context.Background(), 1)

	assert.NoError(t, err)
	mockRooms.AssertExpectations(t)
}
