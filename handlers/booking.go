package handlers

import (
	"errors"
	"net/http"

	"slotbooker/models"
	"slotbooker/services/booking"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler exposes the booking endpoints.
type BookingHandler struct {
	Service booking.BookingService
}

// NewBookingHandler constructs a BookingHandler.
func NewBookingHandler(svc booking.BookingService) *BookingHandler {
	return &BookingHandler{Service: svc}
}

// ListBookings returns the caller's bookings grouped by date. The caller's
// identity comes from the session middleware; the legacy authToken body
// field is only used there, so the body is ignored here.
func (h *BookingHandler) ListBookings(c *gin.Context) {
	email := c.GetString("userEmail")

	bookings, err := h.Service.ListForUser(email)
	if err != nil {
		getLogger(c).Error("Error fetching bookings", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// ListAllBookings returns every booked slot grouped by date, unscoped.
// Clients use it to mark other users' slots unavailable.
func (h *BookingHandler) ListAllBookings(c *gin.Context) {
	bookings, err := h.Service.ListAll()
	if err != nil {
		getLogger(c).Error("Error fetching all bookings", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// Book inserts a booking record for the caller.
func (h *BookingHandler) Book(c *gin.Context) {
	var req models.BookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	email := c.GetString("userEmail")
	err := h.Service.Book(email, req.Date, req.UpdatedSlot)
	switch {
	case errors.Is(err, booking.ErrInvalidSlot):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date or time slot"})
	case errors.Is(err, booking.ErrSlotTaken):
		c.JSON(http.StatusConflict, gin.H{"error": "slot already booked"})
	case err != nil:
		getLogger(c).Error("Error creating booking", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
	default:
		c.JSON(http.StatusOK, gin.H{"message": "Booking successful"})
	}
}

// Cancel marks the booking at date+time as cancelled.
func (h *BookingHandler) Cancel(c *gin.Context) {
	date := c.Param("date")
	slotTime := c.Param("time")

	err := h.Service.Cancel(date, slotTime)
	switch {
	case errors.Is(err, booking.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "Booking not found"})
	case err != nil:
		getLogger(c).Error("Error cancelling booking", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
	default:
		c.JSON(http.StatusOK, gin.H{"message": "Booking cancelled successfully"})
	}
}
