package availability

import (
	"context"
	"fmt"

	"backline/internal/domain"
	"backline/internal/schedule"
)

type Service struct {
	rooms    RoomSource
	bookings BookingSource
	engine   *schedule.Engine
}

func NewService(rooms RoomSource, bookings BookingSource, engine *schedule.Engine) *Service {
	return &Service{
		rooms:    rooms,
		bookings: bookings,
		engine:   engine,
	}
}

// snapshot fetches the roster and the day's bookings immediately before
// a computation so both reflect one moment. Results are never cached
// across requests.
func (s *Service) snapshot(ctx context.Context, date string) ([]domain.Room, []domain.Booking, error) {
	rooms, err := s.rooms.GetAll(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	bookings, err := s.bookings.GetByDate(ctx, date)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return rooms, bookings, nil
}

func (s *Service) AvailableSlots(ctx context.Context, date, rawType string) ([]string, error) {
	cat := s.engine.Config().ResolveCategory(rawType)
	rooms, bookings, err := s.snapshot(ctx, date)
	if err != nil {
		return nil, err
	}
	return s.engine.AvailableSlots(date, cat, rooms, bookings)
}

func (s *Service) AvailableRooms(ctx context.Context, date, start string, durationHours float64, rawType string) ([]domain.Room, error) {
	cat := s.engine.Config().ResolveCategory(rawType)
	rooms, bookings, err := s.snapshot(ctx, date)
	if err != nil {
		return nil, err
	}
	return s.engine.AvailableRooms(date, start, durationHours, cat, rooms, bookings)
}

func (s *Service) Conflicts(ctx context.Context, date, start string, durationHours float64, rawType string) ([]domain.Booking, error) {
	cat := s.engine.Config().ResolveCategory(rawType)
	rooms, bookings, err := s.snapshot(ctx, date)
	if err != nil {
		return nil, err
	}
	return s.engine.FindConflicts(date, start, durationHours, cat, rooms, bookings)
}
