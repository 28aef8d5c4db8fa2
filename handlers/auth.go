package handlers

import (
	"errors"
	"net/http"

	"slotbooker/models"
	"slotbooker/services/auth"
	"slotbooker/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthHandler exposes the OTP login endpoints.
type AuthHandler struct {
	Service auth.AuthService
}

// NewAuthHandler constructs an AuthHandler.
func NewAuthHandler(svc auth.AuthService) *AuthHandler {
	return &AuthHandler{Service: svc}
}

// SendOTP generates a one-time code for the email and queues its delivery.
func (h *AuthHandler) SendOTP(c *gin.Context) {
	var req models.SendOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "A valid email is required"})
		return
	}

	if err := h.Service.SendOTP(c.Request.Context(), req.Email); err != nil {
		getLogger(c).Error("Failed to send OTP", zap.Error(err), zap.String("email", req.Email))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error generating OTP"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "OTP sent successfully"})
}

// VerifyOTP checks the submitted code and returns a session token on match.
func (h *AuthHandler) VerifyOTP(c *gin.Context) {
	var req models.VerifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.VerifyOTPResponse{
			Verified: false,
			Message:  "A valid email and otp are required",
		})
		return
	}

	token, err := h.Service.VerifyOTP(c.Request.Context(), req.Email, req.OTP)
	switch {
	case errors.Is(err, utils.ErrOTPNotFound):
		c.JSON(http.StatusUnauthorized, models.VerifyOTPResponse{
			Verified: false,
			Message:  "OTP expired or not found",
		})
	case errors.Is(err, utils.ErrOTPMismatch):
		c.JSON(http.StatusUnauthorized, models.VerifyOTPResponse{
			Verified: false,
			Message:  "Invalid OTP",
		})
	case errors.Is(err, utils.ErrOTPTooManyAttempts):
		c.JSON(http.StatusTooManyRequests, models.VerifyOTPResponse{
			Verified: false,
			Message:  "Too many failed attempts, request a new OTP",
		})
	case err != nil:
		getLogger(c).Error("OTP verification failed", zap.Error(err), zap.String("email", req.Email))
		c.JSON(http.StatusInternalServerError, models.VerifyOTPResponse{
			Verified: false,
			Message:  "Error verifying OTP",
		})
	default:
		c.JSON(http.StatusOK, models.VerifyOTPResponse{
			Verified:  true,
			Message:   "OTP verified successfully",
			AuthToken: token,
			Email:     req.Email,
		})
	}
}

// Logout drops the caller's session.
func (h *AuthHandler) Logout(c *gin.Context) {
	email := c.GetString("userEmail")
	if err := h.Service.Logout(c.Request.Context(), email); err != nil {
		getLogger(c).Error("Logout failed", zap.Error(err), zap.String("email", email))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error logging out"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}
