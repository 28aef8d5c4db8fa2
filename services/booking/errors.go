package booking

import "errors"

var (
	// ErrSlotTaken reports a booking attempt against a slot that already
	// has an active booking.
	ErrSlotTaken = errors.New("slot already booked")
	// ErrNotFound reports a cancel attempt with no matching record.
	ErrNotFound = errors.New("booking not found")
	// ErrInvalidSlot reports a booking request whose time is not one of
	// the canonical half-hour slots.
	ErrInvalidSlot = errors.New("invalid time slot")
)
