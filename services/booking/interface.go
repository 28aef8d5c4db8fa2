package booking

import "slotbooker/models"

// BookingService is the application-facing surface for slot bookings.
type BookingService interface {
	// ListForUser returns the caller's booked slots grouped by date.
	ListForUser(email string) (models.BookingsByDate, error)
	// ListAll returns every booked slot grouped by date, regardless of
	// owner. Used by clients to grey out slots taken by other users.
	ListAll() (models.BookingsByDate, error)
	// Book records a booking of the given slot for the caller.
	Book(email, date string, slot models.TimeSlot) error
	// Cancel marks the booking at date+time as unbooked.
	Cancel(date, slotTime string) error
}
