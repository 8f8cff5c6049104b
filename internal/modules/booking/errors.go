package booking

import "errors"

var (
	ErrValidation              = errors.New("validation error")
	ErrConflict                = errors.New("booking conflict")
	ErrOverbooking             = errors.New("overbooking constraint violation")
	ErrNotFound                = errors.New("not_found")
	ErrRoomNotFound            = errors.New("room not found")
	ErrRoomIncompatible        = errors.New("room incompatible with booking category")
	ErrRoomOccupied            = errors.New("room already occupied")
	ErrInvalidStatusTransition = errors.New("invalid_status_transition")
)
