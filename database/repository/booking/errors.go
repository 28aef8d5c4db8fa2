package bookingRepo

import "errors"

var (
	// ErrSlotTaken is returned when an active booking already holds the
	// requested date+time.
	ErrSlotTaken = errors.New("slot already booked")
	// ErrNotFound is returned when a cancel target does not exist.
	ErrNotFound = errors.New("booking not found")
)
