package store

import "errors"

var (
	ErrValidation      = errors.New("validation error")
	ErrNotFound        = errors.New("not_found")
	ErrItemUnavailable = errors.New("rental item unavailable")
)
