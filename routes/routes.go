package routes

import (
	"time"

	"slotbooker/handlers"
	"slotbooker/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes registers the OTP login endpoints.
func RegisterAuthRoutes(r *gin.Engine, authHandler *handlers.AuthHandler) {
	api := r.Group("/api")
	{
		api.POST("/send-otp", authHandler.SendOTP)
		api.POST("/verify-otp", authHandler.VerifyOTP)

		// Protected routes (Require Authentication)
		api.POST("/logout", middleware.SessionAuthMiddleware(), authHandler.Logout)
	}
}

// RegisterBookingRoutes registers the booking endpoints. The all-bookings
// listing is public so the availability grid renders before login; the
// per-user listing and every mutating endpoint require a live session.
func RegisterBookingRoutes(r *gin.Engine, bookingHandler *handlers.BookingHandler) {
	api := r.Group("/api")
	{
		api.GET("/allbookings", bookingHandler.ListAllBookings)

		protected := api.Group("")
		protected.Use(middleware.SessionAuthMiddleware())
		protected.GET("/bookings", bookingHandler.ListBookings)
		protected.POST("/bookings", bookingHandler.ListBookings)
		protected.POST("/book", bookingHandler.Book)
		protected.PUT("/cancel/:date/:time", bookingHandler.Cancel)
		protected.DELETE("/cancel/:date/:time", bookingHandler.Cancel)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", handlers.HealthHandler)
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, bookingHandler *handlers.BookingHandler, authHandler *handlers.AuthHandler) {
	// Setup global middleware (e.g., CORS) here.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterAuthRoutes(r, authHandler)
	RegisterBookingRoutes(r, bookingHandler)
	RegisterHealthRoute(r)
}
