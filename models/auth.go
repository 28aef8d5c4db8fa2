package models

// SendOTPRequest is the payload for POST /api/send-otp.
type SendOTPRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// VerifyOTPRequest is the payload for POST /api/verify-otp.
type VerifyOTPRequest struct {
	Email string `json:"email" binding:"required,email"`
	OTP   string `json:"otp" binding:"required"`
}

// VerifyOTPResponse is returned by POST /api/verify-otp. AuthToken and
// Email are only set when Verified is true.
type VerifyOTPResponse struct {
	Verified  bool   `json:"verified"`
	Message   string `json:"message"`
	AuthToken string `json:"authToken,omitempty"`
	Email     string `json:"email,omitempty"`
}

// OTPDeliveryPayload is the asynq task payload for a queued OTP email.
type OTPDeliveryPayload struct {
	TaskID     string `json:"taskId"`
	Email      string `json:"email"`
	Code       string `json:"code"`
	TTLMinutes int    `json:"ttlMinutes"`
}
