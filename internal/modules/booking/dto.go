package booking

type CreateBookingRequest struct {
	Date          string  `json:"date" binding:"required"`
	Time          string  `json:"time" binding:"required"`
	Duration      float64 `json:"duration" binding:"required,gt=0"`
	Type          string  `json:"type"`
	CustomerName  string  `json:"customer_name" binding:"required"`
	CustomerPhone string  `json:"customer_phone"`
	CustomerEmail string  `json:"customer_email"`
	Notes         string  `json:"notes"`

	// Category-specific fields; ignored for other categories.
	BandName    string `json:"band_name"`
	PartyGuests int    `json:"party_guests"`
}

type ConfirmRequest struct {
	RoomID int64 `json:"room_id" binding:"required"`
}

type RejectRequest struct {
	Reason string `json:"reason"`
}

type CreateBlockRequest struct {
	Date     string  `json:"date" binding:"required"`
	Time     string  `json:"time" binding:"required"`
	Duration float64 `json:"duration" binding:"required,gt=0"`
	RoomID   int64   `json:"room_id" binding:"required"`
	Notes    string  `json:"notes"`
}
