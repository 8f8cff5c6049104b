package booking

import (
	"context"

	"backline/internal/domain"
)

// BookingRepository defines the storage operations the module needs.
type BookingRepository interface {
	Create(ctx context.Context, b *domain.Booking) error
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByDate(ctx context.Context, date string) ([]domain.Booking, error)
	List(ctx context.Context, date, status string, limit, offset int) ([]domain.Booking, error)
	CheckRoomFree(ctx context.Context, roomID int64, date string, startMin, endMin int, excludeID int64) (bool, error)
	AssignRoom(ctx context.Context, id, roomID int64, roomName string) error
	UpdateStatus(ctx context.Context, id int64, status string) error
	RejectWithReason(ctx context.Context, id int64, reason string) error
	Delete(ctx context.Context, id int64) error
}

// RoomSource provides the roster for conflict checks and assignment.
type RoomSource interface {
	GetAll(ctx context.Context) ([]domain.Room, error)
	GetByID(ctx context.Context, id int64) (*domain.Room, error)
}

// EventSink receives booking lifecycle events. Delivery is best-effort:
// a sink failure never fails the booking action.
type EventSink interface {
	BookingCreated(b domain.Booking)
	BookingConfirmed(b domain.Booking)
	BookingRejected(b domain.Booking)
}
