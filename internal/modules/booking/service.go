package booking

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"backline/internal/domain"
	"backline/internal/schedule"
)

type Service struct {
	bookings BookingRepository
	rooms    RoomSource
	engine   *schedule.Engine
	events   EventSink
}

func NewService(bookings BookingRepository, rooms RoomSource, engine *schedule.Engine, events EventSink) *Service {
	return &Service{
		bookings: bookings,
		rooms:    rooms,
		engine:   engine,
		events:   events,
	}
}

// Submit creates a pending booking from the public flow. The conflict
// pre-check here is advisory: a race between two submissions is
// accepted and resolved at confirmation time. When the pre-check finds
// conflicts the returned slice carries them for the caller to present.
func (s *Service) Submit(ctx context.Context, req CreateBookingRequest) (*domain.Booking, []domain.Booking, error) {
	cat := s.engine.Config().ResolveCategory(req.Type)

	past, err := s.engine.InPast(req.Date, req.Time)
	if err != nil {
		return nil, nil, err
	}
	if past {
		return nil, nil, ErrValidation
	}
	if req.Duration < s.engine.Config().Rule(cat).MinDurationHours {
		return nil, nil, ErrValidation
	}

	rooms, err := s.rooms.GetAll(ctx)
	if err != nil {
		return nil, nil, err
	}
	dayBookings, err := s.bookings.GetByDate(ctx, req.Date)
	if err != nil {
		return nil, nil, err
	}

	conflicts, err := s.engine.FindConflicts(req.Date, req.Time, req.Duration, cat, rooms, dayBookings)
	if err != nil {
		return nil, nil, err
	}
	if len(conflicts) > 0 {
		return nil, conflicts, ErrConflict
	}

	b := &domain.Booking{
		Date:          req.Date,
		Time:          req.Time,
		DurationHours: req.Duration,
		Category:      cat,
		Status:        domain.BookingPending,
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		CustomerEmail: req.CustomerEmail,
		Notes:         req.Notes,
	}
	switch cat {
	case domain.CategoryBand:
		b.BandName = req.BandName
	case domain.CategoryParty:
		b.PartyGuests = req.PartyGuests
	}

	if err := s.bookings.Create(ctx, b); err != nil {
		return nil, nil, err
	}

	if s.events != nil {
		s.events.BookingCreated(*b)
	}
	return b, nil, nil
}

// Confirm assigns a room to a pending booking. Conflicts are re-checked
// here regardless of what the submission pre-check saw: first against
// the room's assigned bookings in memory, then via the store's own
// range check, with the PostgreSQL exclusion constraint as the last
// word.
func (s *Service) Confirm(ctx context.Context, bookingID, roomID int64) (*domain.Booking, error) {
	b, err := s.getBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.Status != domain.BookingPending {
		return nil, ErrInvalidStatusTransition
	}

	room, err := s.rooms.GetByID(ctx, roomID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	if !s.compatible(b.Category, room.RoomType) {
		return nil, ErrRoomIncompatible
	}

	dayBookings, err := s.bookings.GetByDate(ctx, b.Date)
	if err != nil {
		return nil, err
	}
	conflicts, err := s.engine.ConflictsForRoom(*room, b.Date, b.Time, b.DurationHours, false, dayBookings, b.ID)
	if err != nil {
		return nil, err
	}
	if len(conflicts) > 0 {
		return nil, ErrRoomOccupied
	}

	startMin, endMin, err := schedule.Span(b.Time, b.DurationHours)
	if err != nil {
		return nil, err
	}
	free, err := s.bookings.CheckRoomFree(ctx, roomID, b.Date, startMin, endMin, b.ID)
	if err != nil {
		return nil, err
	}
	if !free {
		return nil, ErrRoomOccupied
	}

	if err := s.bookings.AssignRoom(ctx, b.ID, room.ID, room.Name); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && (pgErr.Code == "23P01" || pgErr.Code == "23505") {
			return nil, ErrOverbooking
		}
		return nil, err
	}

	confirmed, err := s.getBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if s.events != nil {
		s.events.BookingConfirmed(*confirmed)
	}
	return confirmed, nil
}

// Reject moves a pending or confirmed booking to rejected. Rejecting a
// confirmed booking is the cancel action.
func (s *Service) Reject(ctx context.Context, bookingID int64, reason string) (*domain.Booking, error) {
	b, err := s.getBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !b.Active() {
		return nil, ErrInvalidStatusTransition
	}

	if err := s.bookings.RejectWithReason(ctx, bookingID, reason); err != nil {
		return nil, err
	}

	rejected, err := s.getBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if s.events != nil {
		s.events.BookingRejected(*rejected)
	}
	return rejected, nil
}

// Delete removes a booking in a terminal status.
func (s *Service) Delete(ctx context.Context, bookingID int64) error {
	b, err := s.getBooking(ctx, bookingID)
	if err != nil {
		return err
	}
	if !b.Terminal() {
		return ErrInvalidStatusTransition
	}
	return s.bookings.Delete(ctx, bookingID)
}

// CreateBlock creates an admin hold: directly confirmed into a room,
// with the same confirm-time validation as a regular booking.
func (s *Service) CreateBlock(ctx context.Context, req CreateBlockRequest) (*domain.Booking, error) {
	room, err := s.rooms.GetByID(ctx, req.RoomID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}

	dayBookings, err := s.bookings.GetByDate(ctx, req.Date)
	if err != nil {
		return nil, err
	}
	conflicts, err := s.engine.ConflictsForRoom(*room, req.Date, req.Time, req.Duration, false, dayBookings, 0)
	if err != nil {
		return nil, err
	}
	if len(conflicts) > 0 {
		return nil, ErrRoomOccupied
	}

	roomID := room.ID
	b := &domain.Booking{
		Date:          req.Date,
		Time:          req.Time,
		DurationHours: req.Duration,
		Category:      domain.CategoryBlock,
		Status:        domain.BookingConfirmed,
		RoomID:        &roomID,
		RoomName:      room.Name,
		Notes:         req.Notes,
	}
	if err := s.bookings.Create(ctx, b); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && (pgErr.Code == "23P01" || pgErr.Code == "23505") {
			return nil, ErrOverbooking
		}
		return nil, err
	}
	return b, nil
}

func (s *Service) List(ctx context.Context, date, status string, limit, offset int) ([]domain.Booking, error) {
	return s.bookings.List(ctx, date, status, limit, offset)
}

func (s *Service) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	return s.getBooking(ctx, id)
}

func (s *Service) getBooking(ctx context.Context, id int64) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return b, nil
}

func (s *Service) compatible(cat domain.Category, rt domain.RoomType) bool {
	for _, t := range s.engine.Config().Rule(cat).RoomTypes {
		if t == rt {
			return true
		}
	}
	return false
}
