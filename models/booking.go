package models

// BookingRecord is one persisted booked slot. There is one document per
// booking action; cancellation flips UpdatedSlot.IsBooked in place and the
// record is never deleted. The date key is free-form (clients send strings
// like "Mon Jan 01 2024") and the server treats it as opaque.
type BookingRecord struct {
	Date        string   `bson:"date" json:"date"`
	UpdatedSlot TimeSlot `bson:"updatedSlot" json:"updatedSlot"`
	BookedBy    string   `bson:"bookedBy,omitempty" json:"bookedBy,omitempty"`
}

// BookingsByDate maps a date key to the booked slots recorded for it.
type BookingsByDate map[string][]TimeSlot

// BookRequest is the payload for POST /api/book. AuthToken is accepted in
// the body for compatibility with clients that do not set a Bearer header.
type BookRequest struct {
	Date        string   `json:"date" binding:"required"`
	UpdatedSlot TimeSlot `json:"updatedSlot" binding:"required"`
	AuthToken   string   `json:"authToken,omitempty"`
}

// ListBookingsRequest is the optional body for POST /api/bookings.
type ListBookingsRequest struct {
	AuthToken string `json:"authToken,omitempty"`
}
