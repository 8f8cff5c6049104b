package domain

import "time"

type RoomType string

const (
	RoomDrums     RoomType = "drums"
	RoomGuitar    RoomType = "guitar"
	RoomUniversal RoomType = "universal"
)

type Room struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name" validate:"required"`
	Description string    `json:"description,omitempty"`
	RoomType    RoomType  `json:"room_type" validate:"required"`
	Capacity    int       `json:"capacity" validate:"required,gt=0,lte=50"`
	IsVisible   bool      `json:"is_visible"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Room) TableName() string { return "rooms" }

func ValidRoomType(t RoomType) bool {
	switch t {
	case RoomDrums, RoomGuitar, RoomUniversal:
		return true
	}
	return false
}
