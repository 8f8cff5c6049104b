package domain

import "time"

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingRejected  BookingStatus = "rejected"
	BookingCompleted BookingStatus = "completed"
)

// Category classifies a booking and drives minimum duration and
// room-type compatibility (see internal/schedule).
type Category string

const (
	CategoryIndividual Category = "individual"
	CategoryGuitar     Category = "guitar"
	CategoryBand       Category = "band"
	CategoryParty      Category = "party"
	CategoryBlock      Category = "block"
)

type Booking struct {
	ID            int64         `json:"id"`
	Date          string        `json:"date" validate:"required"` // 2006-01-02
	Time          string        `json:"time" validate:"required"` // 15:04, local wall clock
	DurationHours float64       `json:"duration" validate:"required,gt=0"`
	Category      Category      `json:"type"`
	Status        BookingStatus `json:"status"`

	// Room is assigned on confirmation; pending bookings carry none.
	RoomID   *int64 `json:"room_id,omitempty"`
	RoomName string `json:"room_name,omitempty"`

	CustomerName  string `json:"customer_name,omitempty"`
	CustomerPhone string `json:"customer_phone,omitempty"`
	CustomerEmail string `json:"customer_email,omitempty"`
	Notes         string `json:"notes,omitempty"`

	// Per-category fields: set only for the matching category.
	BandName    string `json:"band_name,omitempty"`    // band
	PartyGuests int    `json:"party_guests,omitempty"` // party

	RejectionReason string     `json:"rejection_reason,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
	RejectedAt      *time.Time `json:"rejected_at,omitempty"`
}

// Active reports whether the booking still constrains room occupancy.
func (b Booking) Active() bool {
	return b.Status == BookingPending || b.Status == BookingConfirmed
}

func (b Booking) Terminal() bool {
	return b.Status == BookingRejected || b.Status == BookingCompleted
}
