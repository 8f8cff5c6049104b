// Package schedule implements the availability and conflict engine:
// slot enumeration over business hours, duration-aware conflict
// detection against same-day bookings, and room/slot filtering by
// category compatibility. All functions are pure computations over the
// snapshots handed to them; the clock is injected for deterministic
// tests.
package schedule

import (
	"fmt"
	"math"
	"time"

	"backline/internal/domain"
)

const (
	dateLayout  = "2006-01-02"
	clockLayout = "15:04"
)

type Engine struct {
	cfg Config
	now func() time.Time
}

func NewEngine(cfg Config, now func() time.Time) *Engine {
	if now == nil {
		now = time.Now
	}
	return &Engine{cfg: cfg, now: now}
}

func (e *Engine) Config() Config { return e.cfg }

// parseClock converts "15:04" to minutes from midnight.
func parseClock(s string) (int, error) {
	t, err := time.Parse(clockLayout, s)
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}

func formatClock(min int) string {
	return fmt.Sprintf("%02d:%02d", min/60, min%60)
}

// Half-open intervals: [aStart, aEnd) and [bStart, bEnd) conflict iff
// they overlap.
func overlaps(aStart, aEnd, bStart, bEnd int) bool {
	return aStart < bEnd && bStart < aEnd
}

func durationMinutes(hours float64) int {
	return int(math.Round(hours * 60))
}

func (e *Engine) hours() (open, close int, err error) {
	open, err = parseClock(e.cfg.Open)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: open %q", ErrInvalidTime, e.cfg.Open)
	}
	close, err = parseClock(e.cfg.Close)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: close %q", ErrInvalidTime, e.cfg.Close)
	}
	return open, close, nil
}

// interval validates and converts a (start, duration) pair into
// minute-of-day bounds within business hours.
func (e *Engine) interval(start string, durationHours float64) (s, end int, err error) {
	if durationHours <= 0 {
		return 0, 0, ErrInvalidDuration
	}
	s, err = parseClock(start)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidTime, start)
	}
	open, close, err := e.hours()
	if err != nil {
		return 0, 0, err
	}
	end = s + durationMinutes(durationHours)
	if s < open || end > close {
		return 0, 0, ErrOutsideHours
	}
	return s, end, nil
}

// Span converts a (start, duration) pair into half-open minute-of-day
// bounds, without the business-hours check. Used where callers need the
// raw interval, e.g. the persistent-store free check.
func Span(start string, durationHours float64) (s, end int, err error) {
	if durationHours <= 0 {
		return 0, 0, ErrInvalidDuration
	}
	s, err = parseClock(start)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidTime, start)
	}
	return s, s + durationMinutes(durationHours), nil
}

// InPast reports whether the (date, start) moment lies before the
// engine's current wall-clock time.
func (e *Engine) InPast(date, start string) (bool, error) {
	if err := validDate(date); err != nil {
		return false, err
	}
	s, err := parseClock(start)
	if err != nil {
		return false, fmt.Errorf("%w: %q", ErrInvalidTime, start)
	}
	now := e.now()
	today := now.Format(dateLayout)
	if date != today {
		return date < today, nil
	}
	return s <= now.Hour()*60+now.Minute(), nil
}

func validDate(date string) error {
	if _, err := time.Parse(dateLayout, date); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}
	return nil
}

// compatibleTypes returns the room types able to host cat.
func (e *Engine) compatibleTypes(cat domain.Category) map[domain.RoomType]bool {
	rule := e.cfg.Rule(cat)
	set := make(map[domain.RoomType]bool, len(rule.RoomTypes))
	for _, t := range rule.RoomTypes {
		set[t] = true
	}
	return set
}

// EnumerateSlots returns every start time on date that could legally
// begin a booking of the given category: aligned to the configured
// granularity, within business hours including the closing boundary
// (start + minDuration == close is allowed), and, for today, strictly
// after the current wall-clock time.
func (e *Engine) EnumerateSlots(date string, cat domain.Category) ([]string, error) {
	if err := validDate(date); err != nil {
		return nil, err
	}
	open, close, err := e.hours()
	if err != nil {
		return nil, err
	}

	minDur := durationMinutes(e.cfg.Rule(cat).MinDurationHours)
	now := e.now()
	today := date == now.Format(dateLayout)
	nowMin := now.Hour()*60 + now.Minute()

	out := make([]string, 0)
	for t := open; t+minDur <= close; t += e.cfg.GranularityMinutes {
		if today && t <= nowMin {
			continue
		}
		out = append(out, formatClock(t))
	}
	return out, nil
}

// FindConflicts reports every active (pending or confirmed) booking on
// date whose occupied interval overlaps [start, start+duration) in a
// room the candidate could occupy. A booking assigned to a room
// conflicts when that room is in the candidate's compatible pool; a
// booking with no room yet conflicts when the two categories' pools
// share a room type present in the roster. Over-reporting is
// deliberate: a double-booked room costs more than an incorrectly
// blocked slot.
func (e *Engine) FindConflicts(date, start string, durationHours float64, cat domain.Category, rooms []domain.Room, dayBookings []domain.Booking) ([]domain.Booking, error) {
	if err := validDate(date); err != nil {
		return nil, err
	}
	s, end, err := e.interval(start, durationHours)
	if err != nil {
		return nil, err
	}

	compat := e.compatibleTypes(cat)
	byID := make(map[int64]domain.Room, len(rooms))
	typesPresent := make(map[domain.RoomType]bool, len(rooms))
	for _, r := range rooms {
		byID[r.ID] = r
		typesPresent[r.RoomType] = true
	}

	conflicts := make([]domain.Booking, 0)
	for _, b := range dayBookings {
		if !b.Active() || b.Date != date {
			continue
		}
		bs, berr := parseClock(b.Time)
		if berr != nil {
			continue
		}
		if !overlaps(s, end, bs, bs+durationMinutes(b.DurationHours)) {
			continue
		}

		if b.RoomID != nil {
			room, known := byID[*b.RoomID]
			// Unknown room id is treated as occupying the whole pool.
			if !known || compat[room.RoomType] {
				conflicts = append(conflicts, b)
			}
			continue
		}

		// Soft conflict: both bookings still need a room from an
		// overlapping type pool.
		for _, t := range e.cfg.Rule(b.Category).RoomTypes {
			if compat[t] && typesPresent[t] {
				conflicts = append(conflicts, b)
				break
			}
		}
	}
	return conflicts, nil
}

// ConflictsForRoom scopes conflict detection to a single room: its
// assigned bookings always count; unassigned bookings whose category
// could claim the room count only when soft is true. excludeID skips
// one booking, used when re-validating a booking at confirm time.
func (e *Engine) ConflictsForRoom(room domain.Room, date, start string, durationHours float64, soft bool, dayBookings []domain.Booking, excludeID int64) ([]domain.Booking, error) {
	if err := validDate(date); err != nil {
		return nil, err
	}
	s, end, err := e.interval(start, durationHours)
	if err != nil {
		return nil, err
	}

	conflicts := make([]domain.Booking, 0)
	for _, b := range dayBookings {
		if !b.Active() || b.Date != date || b.ID == excludeID {
			continue
		}
		bs, berr := parseClock(b.Time)
		if berr != nil {
			continue
		}
		if !overlaps(s, end, bs, bs+durationMinutes(b.DurationHours)) {
			continue
		}

		if b.RoomID != nil {
			if *b.RoomID == room.ID {
				conflicts = append(conflicts, b)
			}
			continue
		}
		if !soft {
			continue
		}
		for _, t := range e.cfg.Rule(b.Category).RoomTypes {
			if t == room.RoomType {
				conflicts = append(conflicts, b)
				break
			}
		}
	}
	return conflicts, nil
}

// AvailableRooms narrows the roster to visible rooms compatible with
// cat and free of conflicts over [start, start+duration).
func (e *Engine) AvailableRooms(date, start string, durationHours float64, cat domain.Category, rooms []domain.Room, dayBookings []domain.Booking) ([]domain.Room, error) {
	if err := validDate(date); err != nil {
		return nil, err
	}
	if _, _, err := e.interval(start, durationHours); err != nil {
		return nil, err
	}

	compat := e.compatibleTypes(cat)
	out := make([]domain.Room, 0, len(rooms))
	for _, r := range rooms {
		if !r.IsVisible || !compat[r.RoomType] {
			continue
		}
		conflicts, err := e.ConflictsForRoom(r, date, start, durationHours, true, dayBookings, 0)
		if err != nil {
			return nil, err
		}
		if len(conflicts) == 0 {
			out = append(out, r)
		}
	}
	return out, nil
}

// AvailableSlots enumerates the day's slots and keeps those with at
// least one free compatible room at the category's minimum duration.
func (e *Engine) AvailableSlots(date string, cat domain.Category, rooms []domain.Room, dayBookings []domain.Booking) ([]string, error) {
	slots, err := e.EnumerateSlots(date, cat)
	if err != nil {
		return nil, err
	}
	minDur := e.cfg.Rule(cat).MinDurationHours

	out := make([]string, 0, len(slots))
	for _, slot := range slots {
		free, err := e.AvailableRooms(date, slot, minDur, cat, rooms, dayBookings)
		if err != nil {
			return nil, err
		}
		if len(free) > 0 {
			out = append(out, slot)
		}
	}
	return out, nil
}
