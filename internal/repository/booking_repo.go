package repository

import (
	"context"
	"math"
	"time"

	"backline/internal/domain"

	"gorm.io/gorm"
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

type bookingModel struct {
	ID            int64      `gorm:"column:id;primaryKey"`
	Date          string     `gorm:"column:date;index:idx_bookings_date"`
	StartTime     string     `gorm:"column:start_time"`
	DurationHours float64    `gorm:"column:duration_hours"`
	StartMin      int        `gorm:"column:start_min"`
	EndMin        int        `gorm:"column:end_min"`
	Category      string     `gorm:"column:category"`
	Status        string     `gorm:"column:status;index:idx_bookings_status"`
	RoomID        *int64     `gorm:"column:room_id"`
	RoomName      string     `gorm:"column:room_name"`
	CustomerName  string     `gorm:"column:customer_name"`
	CustomerPhone string     `gorm:"column:customer_phone"`
	CustomerEmail string     `gorm:"column:customer_email"`
	Notes         *string    `gorm:"column:notes"`
	BandName      string     `gorm:"column:band_name"`
	PartyGuests   int        `gorm:"column:party_guests"`
	RejectReason  *string    `gorm:"column:rejection_reason"`
	CreatedAt     time.Time  `gorm:"column:created_at"`
	UpdatedAt     time.Time  `gorm:"column:updated_at"`
	RejectedAt    *time.Time `gorm:"column:rejected_at"`
}

func (bookingModel) TableName() string { return "bookings" }

// clockMinutes converts "15:04" to minutes from midnight. Callers
// validate times before persisting, so a parse failure maps to 0.
func clockMinutes(s string) int {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0
	}
	return t.Hour()*60 + t.Minute()
}

func toDomainBooking(m bookingModel) *domain.Booking {
	var notes, reason string
	if m.Notes != nil {
		notes = *m.Notes
	}
	if m.RejectReason != nil {
		reason = *m.RejectReason
	}

	return &domain.Booking{
		ID:              m.ID,
		Date:            m.Date,
		Time:            m.StartTime,
		DurationHours:   m.DurationHours,
		Category:        domain.Category(m.Category),
		Status:          domain.BookingStatus(m.Status),
		RoomID:          m.RoomID,
		RoomName:        m.RoomName,
		CustomerName:    m.CustomerName,
		CustomerPhone:   m.CustomerPhone,
		CustomerEmail:   m.CustomerEmail,
		Notes:           notes,
		BandName:        m.BandName,
		PartyGuests:     m.PartyGuests,
		RejectionReason: reason,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
		RejectedAt:      m.RejectedAt,
	}
}

func toBookingModel(b *domain.Booking) bookingModel {
	var notes, reason *string
	if b.Notes != "" {
		v := b.Notes
		notes = &v
	}
	if b.RejectionReason != "" {
		v := b.RejectionReason
		reason = &v
	}

	start := clockMinutes(b.Time)
	return bookingModel{
		ID:            b.ID,
		Date:          b.Date,
		StartTime:     b.Time,
		DurationHours: b.DurationHours,
		StartMin:      start,
		EndMin:        start + int(math.Round(b.DurationHours*60)),
		Category:      string(b.Category),
		Status:        string(b.Status),
		RoomID:        b.RoomID,
		RoomName:      b.RoomName,
		CustomerName:  b.CustomerName,
		CustomerPhone: b.CustomerPhone,
		CustomerEmail: b.CustomerEmail,
		Notes:         notes,
		BandName:      b.BandName,
		PartyGuests:   b.PartyGuests,
		RejectReason:  reason,
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
		RejectedAt:    b.RejectedAt,
	}
}

func (r *BookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	m := toBookingModel(b)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*b = *toDomainBooking(m)
	return nil
}

func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	var m bookingModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainBooking(m), nil
}

func (r *BookingRepository) GetByDate(ctx context.Context, date string) ([]domain.Booking, error) {
	var ms []bookingModel
	tx := r.db.WithContext(ctx).
		Where("date = ?", date).
		Order("start_min ASC").
		Find(&ms)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.Booking, 0, len(ms))
	for _, m := range ms {
		out = append(out, *toDomainBooking(m))
	}
	return out, nil
}

func (r *BookingRepository) List(ctx context.Context, date, status string, limit, offset int) ([]domain.Booking, error) {
	q := r.db.WithContext(ctx).Model(&bookingModel{})
	if date != "" {
		q = q.Where("date = ?", date)
	}
	if status != "" {
		q = q.Where("status = ?", status)
	}
	if limit > 0 {
		q = q.Limit(limit).Offset(offset)
	}

	var ms []bookingModel
	if tx := q.Order("date ASC, start_min ASC").Find(&ms); tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.Booking, 0, len(ms))
	for _, m := range ms {
		out = append(out, *toDomainBooking(m))
	}
	return out, nil
}

// CheckRoomFree is the persistent-store arbiter behind the in-memory
// conflict pre-check: it counts active bookings of the room whose
// half-open minute range overlaps the proposed one.
func (r *BookingRepository) CheckRoomFree(ctx context.Context, roomID int64, date string, startMin, endMin int, excludeID int64) (bool, error) {
	var cnt int64
	q := `
SELECT COUNT(1)
FROM bookings
WHERE room_id = ?
  AND date = ?
  AND status IN ('pending', 'confirmed')
  AND start_min < ?
  AND ? < end_min
  AND id <> ?
`
	tx := r.db.WithContext(ctx).Raw(q, roomID, date, endMin, startMin, excludeID).Scan(&cnt)
	if tx.Error != nil {
		return false, tx.Error
	}
	return cnt == 0, nil
}

// AssignRoom confirms the booking into a room. On PostgreSQL the
// idx_no_overbooking exclusion constraint is the final word; the
// resulting error is returned raw for the service to map.
func (r *BookingRepository) AssignRoom(ctx context.Context, id, roomID int64, roomName string) error {
	return r.db.WithContext(ctx).Model(&bookingModel{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"room_id":   roomID,
			"room_name": roomName,
			"status":    string(domain.BookingConfirmed),
		}).Error
}

func (r *BookingRepository) UpdateStatus(ctx context.Context, id int64, status string) error {
	return r.db.WithContext(ctx).Model(&bookingModel{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *BookingRepository) RejectWithReason(ctx context.Context, id int64, reason string) error {
	now := time.Now()
	return r.db.WithContext(ctx).Model(&bookingModel{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":           string(domain.BookingRejected),
			"rejection_reason": reason,
			"rejected_at":      &now,
		}).Error
}

func (r *BookingRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&bookingModel{}, id).Error
}

// CompletePast marks every active booking that ended before the given
// wall-clock moment as completed. Returns the number of rows changed.
func (r *BookingRepository) CompletePast(ctx context.Context, today string, nowMin int) (int64, error) {
	tx := r.db.WithContext(ctx).Model(&bookingModel{}).
		Where("status IN ('pending', 'confirmed')").
		Where("date < ? OR (date = ? AND end_min <= ?)", today, today, nowMin).
		Update("status", string(domain.BookingCompleted))
	return tx.RowsAffected, tx.Error
}

// CountFutureForRoom counts non-rejected bookings of the room that have
// not yet finished; used by the room delete guard.
func (r *BookingRepository) CountFutureForRoom(ctx context.Context, roomID int64, today string, nowMin int) (int64, error) {
	var cnt int64
	tx := r.db.WithContext(ctx).Model(&bookingModel{}).
		Where("room_id = ?", roomID).
		Where("status <> ?", string(domain.BookingRejected)).
		Where("date > ? OR (date = ? AND end_min > ?)", today, today, nowMin).
		Count(&cnt)
	return cnt, tx.Error
}
