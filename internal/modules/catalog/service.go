package catalog

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"backline/internal/domain"
	"backline/internal/pkg/validator"
)

// RoomRepository is the storage surface for the room roster.
type RoomRepository interface {
	GetAll(ctx context.Context) ([]domain.Room, error)
	GetVisible(ctx context.Context) ([]domain.Room, error)
	GetByID(ctx context.Context, id int64) (*domain.Room, error)
	Create(ctx context.Context, room *domain.Room) error
	Update(ctx context.Context, room *domain.Room) error
	SetVisibility(ctx context.Context, id int64, visible bool) error
	Delete(ctx context.Context, id int64) error
}

// BookingCounter answers whether a room is still referenced by
// not-yet-finished, non-rejected bookings.
type BookingCounter interface {
	CountFutureForRoom(ctx context.Context, roomID int64, today string, nowMin int) (int64, error)
}

type Service struct {
	rooms    RoomRepository
	bookings BookingCounter
	now      func() time.Time
}

func NewService(rooms RoomRepository, bookings BookingCounter, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{rooms: rooms, bookings: bookings, now: now}
}

// ListRooms returns the roster; the public view hides invisible rooms.
func (s *Service) ListRooms(ctx context.Context, includeHidden bool) ([]domain.Room, error) {
	if includeHidden {
		return s.rooms.GetAll(ctx)
	}
	return s.rooms.GetVisible(ctx)
}

func (s *Service) GetRoom(ctx context.Context, id int64) (*domain.Room, error) {
	room, err := s.rooms.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return room, nil
}

func (s *Service) CreateRoom(ctx context.Context, req RoomRequest) (*domain.Room, error) {
	rt := domain.RoomType(req.RoomType)
	if !domain.ValidRoomType(rt) {
		return nil, ErrValidation
	}

	visible := true
	if req.IsVisible != nil {
		visible = *req.IsVisible
	}

	room := &domain.Room{
		Name:        req.Name,
		Description: req.Description,
		RoomType:    rt,
		Capacity:    req.Capacity,
		IsVisible:   visible,
	}
	if errs := validator.Validate(room); errs != nil {
		return nil, ErrValidation
	}
	if err := s.rooms.Create(ctx, room); err != nil {
		return nil, err
	}
	return room, nil
}

func (s *Service) UpdateRoom(ctx context.Context, id int64, req RoomRequest) (*domain.Room, error) {
	room, err := s.GetRoom(ctx, id)
	if err != nil {
		return nil, err
	}

	rt := domain.RoomType(req.RoomType)
	if !domain.ValidRoomType(rt) {
		return nil, ErrValidation
	}

	room.Name = req.Name
	room.Description = req.Description
	room.RoomType = rt
	room.Capacity = req.Capacity
	if req.IsVisible != nil {
		room.IsVisible = *req.IsVisible
	}
	if errs := validator.Validate(room); errs != nil {
		return nil, ErrValidation
	}

	if err := s.rooms.Update(ctx, room); err != nil {
		return nil, err
	}
	return room, nil
}

func (s *Service) SetVisibility(ctx context.Context, id int64, visible bool) (*domain.Room, error) {
	if _, err := s.GetRoom(ctx, id); err != nil {
		return nil, err
	}
	if err := s.rooms.SetVisibility(ctx, id, visible); err != nil {
		return nil, err
	}
	return s.GetRoom(ctx, id)
}

// DeleteRoom hard-deletes a room, refused while any future non-rejected
// booking still references it. Hiding is the soft alternative.
func (s *Service) DeleteRoom(ctx context.Context, id int64) error {
	if _, err := s.GetRoom(ctx, id); err != nil {
		return err
	}

	now := s.now()
	cnt, err := s.bookings.CountFutureForRoom(ctx, id, now.Format("2006-01-02"), now.Hour()*60+now.Minute())
	if err != nil {
		return err
	}
	if cnt > 0 {
		return ErrRoomInUse
	}
	return s.rooms.Delete(ctx, id)
}
