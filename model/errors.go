package model

import "errors"

var (
	// ErrInvalidDimension is returned for sizes a framebuffer or display cannot hold.
	ErrInvalidDimension = errors.New("invalid dimension")
	// ErrOutOfRange is returned when a value or selection falls outside its allowed range.
	ErrOutOfRange = errors.New("out of range")
	// ErrNotFound is returned when a lookup by id has no match.
	ErrNotFound = errors.New("not found")
)
