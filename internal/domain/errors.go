package domain

import "errors"

// Sentinel errors shared by repositories and services.
var (
	ErrNotFound      = errors.New("not found")
	ErrInvalidInput  = errors.New("invalid input")
	ErrAlreadyBooked = errors.New("already booked")
	ErrEventFull     = errors.New("event is fully booked")
)
