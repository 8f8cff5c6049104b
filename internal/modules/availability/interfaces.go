package availability

import (
	"context"

	"backline/internal/domain"
)

// RoomSource provides the room roster snapshot.
type RoomSource interface {
	GetAll(ctx context.Context) ([]domain.Room, error)
}

// BookingSource provides the same-day bookings snapshot.
type BookingSource interface {
	GetByDate(ctx context.Context, date string) ([]domain.Booking, error)
}
