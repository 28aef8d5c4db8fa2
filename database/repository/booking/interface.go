package bookingRepo

import "slotbooker/models"

// BookingRepository defines persistence operations for booked slots.
type BookingRepository interface {
	// Create inserts a booking record. Returns ErrSlotTaken when an active
	// booking already exists for the same date and time.
	Create(record *models.BookingRecord) error
	// ListByUser returns booked slots grouped by date for one email.
	ListByUser(email string) (models.BookingsByDate, error)
	// ListAll returns every booked slot grouped by date.
	ListAll() (models.BookingsByDate, error)
	// Cancel marks the booking matching date+time as unbooked in place.
	// The filter is date+time only, so a record that was already cancelled
	// still matches and reports success. Returns ErrNotFound when no
	// record matches.
	Cancel(date, slotTime string) error
}
