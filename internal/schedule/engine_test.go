package schedule

import (
	"testing"
	"time"

	"backline/internal/domain"

	"github.com/stretchr/testify/assert"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func testEngine() *Engine {
	// Fixed clock well before the test dates so no slot is "in the past".
	return NewEngine(DefaultConfig(), fixedClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)))
}

func roomID(id int64) *int64 { return &id }

var (
	drumsRoom  = domain.Room{ID: 1, Name: "Drums 1", RoomType: domain.RoomDrums, Capacity: 5, IsVisible: true}
	guitarRoom = domain.Room{ID: 2, Name: "Guitar 1", RoomType: domain.RoomGuitar, Capacity: 2, IsVisible: true}
)

func TestEnumerateSlots_FullDay(t *testing.T) {
	e := testEngine()

	slots, err := e.EnumerateSlots("2099-01-01", domain.CategoryIndividual)

	assert.NoError(t, err)
	// 09:00..20:00 hourly; 20:00+1h hits the closing boundary and is kept.
	assert.Len(t, slots, 12)
	assert.Equal(t, "09:00", slots[0])
	assert.Equal(t, "20:00", slots[len(slots)-1])
	for i := 1; i < len(slots); i++ {
		assert.Less(t, slots[i-1], slots[i])
	}
}

func TestEnumerateSlots_MinDurationShrinksTail(t *testing.T) {
	e := testEngine()

	slots, err := e.EnumerateSlots("2099-01-01", domain.CategoryBand)

	assert.NoError(t, err)
	// Band minimum is 2h, so 20:00 no longer fits before close.
	assert.Equal(t, "19:00", slots[len(slots)-1])
}

func TestEnumerateSlots_TodayPrunesPastSlots(t *testing.T) {
	now := time.Date(2024, 6, 10, 14, 30, 0, 0, time.UTC)
	e := NewEngine(DefaultConfig(), fixedClock(now))

	slots, err := e.EnumerateSlots("2024-06-10", domain.CategoryIndividual)

	assert.NoError(t, err)
	assert.NotEmpty(t, slots)
	// Strictly after the current wall clock: 14:00 is gone, 15:00 leads.
	assert.Equal(t, "15:00", slots[0])
	for _, s := range slots {
		assert.Greater(t, s, "14:30")
	}
}

func TestEnumerateSlots_InvalidDate(t *testing.T) {
	e := testEngine()

	_, err := e.EnumerateSlots("not-a-date", domain.CategoryIndividual)

	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestEnumerateSlots_UnknownCategoryFallsBack(t *testing.T) {
	e := testEngine()

	known, err := e.EnumerateSlots("2099-01-01", domain.CategoryIndividual)
	assert.NoError(t, err)
	unknown, err := e.EnumerateSlots("2099-01-01", domain.Category("flugelhorn"))
	assert.NoError(t, err)

	assert.Equal(t, known, unknown)
}

func TestFindConflicts_OverlappingConfirmedBooking(t *testing.T) {
	e := testEngine()
	rooms := []domain.Room{drumsRoom}
	bookings := []domain.Booking{{
		ID: 7, Date: "2024-12-25", Time: "14:00", DurationHours: 2,
		Category: domain.CategoryIndividual, Status: domain.BookingConfirmed, RoomID: roomID(1),
	}}

	conflicts, err := e.FindConflicts("2024-12-25", "15:00", 1, domain.CategoryIndividual, rooms, bookings)

	assert.NoError(t, err)
	assert.Len(t, conflicts, 1)
	assert.Equal(t, int64(7), conflicts[0].ID)
}

func TestFindConflicts_BackToBackIsNotAConflict(t *testing.T) {
	e := testEngine()
	rooms := []domain.Room{drumsRoom}
	bookings := []domain.Booking{{
		ID: 7, Date: "2024-12-25", Time: "14:00", DurationHours: 2,
		Category: domain.CategoryIndividual, Status: domain.BookingConfirmed, RoomID: roomID(1),
	}}

	conflicts, err := e.FindConflicts("2024-12-25", "16:00", 1, domain.CategoryIndividual, rooms, bookings)

	assert.NoError(t, err)
	assert.Empty(t, conflicts)
}

func TestFindConflicts_TerminalStatusesNeverConflict(t *testing.T) {
	e := testEngine()
	rooms := []domain.Room{drumsRoom}
	bookings := []domain.Booking{
		{ID: 1, Date: "2024-12-25", Time: "14:00", DurationHours: 2, Category: domain.CategoryIndividual, Status: domain.BookingRejected, RoomID: roomID(1)},
		{ID: 2, Date: "2024-12-25", Time: "14:00", DurationHours: 2, Category: domain.CategoryIndividual, Status: domain.BookingCompleted, RoomID: roomID(1)},
	}

	conflicts, err := e.FindConflicts("2024-12-25", "15:00", 1, domain.CategoryIndividual, rooms, bookings)

	assert.NoError(t, err)
	assert.Empty(t, conflicts)
}

func TestFindConflicts_AssignedRoomOutsidePool(t *testing.T) {
	e := testEngine()
	rooms := []domain.Room{drumsRoom, guitarRoom}
	// Guitar lesson in the guitar room does not block a drum practice.
	bookings := []domain.Booking{{
		ID: 3, Date: "2024-12-25", Time: "14:00", DurationHours: 2,
		Category: domain.CategoryGuitar, Status: domain.BookingConfirmed, RoomID: roomID(2),
	}}

	conflicts, err := e.FindConflicts("2024-12-25", "15:00", 1, domain.CategoryIndividual, rooms, bookings)

	assert.NoError(t, err)
	assert.Empty(t, conflicts)
}

func TestFindConflicts_UnassignedPendingSoftConflict(t *testing.T) {
	e := testEngine()
	rooms := []domain.Room{drumsRoom}
	// Pending band request with no room yet shares the drums pool.
	bookings := []domain.Booking{{
		ID: 4, Date: "2024-12-25", Time: "15:00", DurationHours: 2,
		Category: domain.CategoryBand, Status: domain.BookingPending,
	}}

	conflicts, err := e.FindConflicts("2024-12-25", "15:00", 1, domain.CategoryIndividual, rooms, bookings)

	assert.NoError(t, err)
	assert.Len(t, conflicts, 1)
}

func TestFindConflicts_DisjointPoolsNoSoftConflict(t *testing.T) {
	e := testEngine()
	// Only a guitar room exists, so an individual (drums) candidate and
	// a pending guitar request cannot collide over any real room.
	rooms := []domain.Room{guitarRoom}
	bookings := []domain.Booking{{
		ID: 5, Date: "2024-12-25", Time: "15:00", DurationHours: 1,
		Category: domain.CategoryIndividual, Status: domain.BookingPending,
	}}

	conflicts, err := e.FindConflicts("2024-12-25", "15:00", 1, domain.CategoryGuitar, rooms, bookings)

	assert.NoError(t, err)
	assert.Empty(t, conflicts)
}

func TestFindConflicts_Idempotent(t *testing.T) {
	e := testEngine()
	rooms := []domain.Room{drumsRoom}
	bookings := []domain.Booking{{
		ID: 7, Date: "2024-12-25", Time: "14:00", DurationHours: 2,
		Category: domain.CategoryIndividual, Status: domain.BookingConfirmed, RoomID: roomID(1),
	}}

	first, err := e.FindConflicts("2024-12-25", "15:00", 1, domain.CategoryIndividual, rooms, bookings)
	assert.NoError(t, err)
	second, err := e.FindConflicts("2024-12-25", "15:00", 1, domain.CategoryIndividual, rooms, bookings)
	assert.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestFindConflicts_InputValidation(t *testing.T) {
	e := testEngine()

	_, err := e.FindConflicts("2024-12-25", "15:00", 0, domain.CategoryIndividual, nil, nil)
	assert.ErrorIs(t, err, ErrInvalidDuration)

	_, err = e.FindConflicts("2024-12-25", "25:00", 1, domain.CategoryIndividual, nil, nil)
	assert.ErrorIs(t, err, ErrInvalidTime)

	_, err = e.FindConflicts("2024-12-25", "08:00", 1, domain.CategoryIndividual, nil, nil)
	assert.ErrorIs(t, err, ErrOutsideHours)

	_, err = e.FindConflicts("2024-12-25", "20:30", 1, domain.CategoryIndividual, nil, nil)
	assert.ErrorIs(t, err, ErrOutsideHours)
}

func TestAvailableRooms_FiltersByCompatibility(t *testing.T) {
	e := testEngine()
	rooms := []domain.Room{drumsRoom, guitarRoom}

	got, err := e.AvailableRooms("2024-12-25", "10:00", 1, domain.CategoryIndividual, rooms, nil)

	assert.NoError(t, err)
	assert.Len(t, got, 1)
	assert.Equal(t, drumsRoom.ID, got[0].ID)
}

func TestAvailableRooms_HiddenRoomsExcluded(t *testing.T) {
	e := testEngine()
	hidden := drumsRoom
	hidden.IsVisible = false

	got, err := e.AvailableRooms("2024-12-25", "10:00", 1, domain.CategoryIndividual, []domain.Room{hidden}, nil)

	assert.NoError(t, err)
	assert.Empty(t, got)
}

func TestAvailableRooms_MonotonicUnderNewBooking(t *testing.T) {
	e := testEngine()
	drums2 := domain.Room{ID: 3, Name: "Drums 2", RoomType: domain.RoomDrums, Capacity: 5, IsVisible: true}
	rooms := []domain.Room{drumsRoom, drums2}

	before, err := e.AvailableRooms("2024-12-25", "15:00", 1, domain.CategoryIndividual, rooms, nil)
	assert.NoError(t, err)

	added := []domain.Booking{{
		ID: 9, Date: "2024-12-25", Time: "14:00", DurationHours: 2,
		Category: domain.CategoryIndividual, Status: domain.BookingConfirmed, RoomID: roomID(1),
	}}
	after, err := e.AvailableRooms("2024-12-25", "15:00", 1, domain.CategoryIndividual, rooms, added)
	assert.NoError(t, err)

	// Adding a confirmed booking can only shrink the result.
	assert.Less(t, len(after), len(before))
	for _, r := range after {
		assert.Contains(t, before, r)
	}
	assert.Equal(t, drums2.ID, after[0].ID)
}

func TestAvailableSlots_DropsFullyBookedTimes(t *testing.T) {
	e := testEngine()
	rooms := []domain.Room{drumsRoom}
	bookings := []domain.Booking{{
		ID: 7, Date: "2099-01-01", Time: "14:00", DurationHours: 2,
		Category: domain.CategoryIndividual, Status: domain.BookingConfirmed, RoomID: roomID(1),
	}}

	slots, err := e.AvailableSlots("2099-01-01", domain.CategoryIndividual, rooms, bookings)

	assert.NoError(t, err)
	assert.NotContains(t, slots, "14:00")
	assert.NotContains(t, slots, "15:00")
	// Half-open intervals: 13:00–14:00 and 16:00 onward stay bookable.
	assert.Contains(t, slots, "13:00")
	assert.Contains(t, slots, "16:00")
}

func TestAvailableSlots_EmptyRosterMeansNoSlots(t *testing.T) {
	e := testEngine()

	slots, err := e.AvailableSlots("2099-01-01", domain.CategoryIndividual, nil, nil)

	assert.NoError(t, err)
	assert.Empty(t, slots)
}

func TestConflictsForRoom_ConfirmTimeRevalidation(t *testing.T) {
	e := testEngine()
	confirmed := domain.Booking{
		ID: 1, Date: "2024-12-25", Time: "14:00", DurationHours: 2,
		Category: domain.CategoryIndividual, Status: domain.BookingConfirmed, RoomID: roomID(1),
	}
	pendingOther := domain.Booking{
		ID: 2, Date: "2024-12-25", Time: "15:00", DurationHours: 1,
		Category: domain.CategoryIndividual, Status: domain.BookingPending,
	}
	day := []domain.Booking{confirmed, pendingOther}

	// Hard check (soft=false): only the room's own assignments block,
	// so the pending request itself cannot deadlock confirmation.
	got, err := e.ConflictsForRoom(drumsRoom, "2024-12-25", "15:00", 1, false, day, 2)
	assert.NoError(t, err)
	assert.Len(t, got, 1)
	assert.Equal(t, int64(1), got[0].ID)

	// With the confirmed booking out of the way the room is free.
	got, err = e.ConflictsForRoom(drumsRoom, "2024-12-25", "16:00", 1, false, day, 2)
	assert.NoError(t, err)
	assert.Empty(t, got)
}
