package schedule

import "errors"

var (
	ErrInvalidDate     = errors.New("invalid date")
	ErrInvalidTime     = errors.New("invalid time")
	ErrInvalidDuration = errors.New("invalid duration")
	ErrOutsideHours    = errors.New("time outside business hours")
)
