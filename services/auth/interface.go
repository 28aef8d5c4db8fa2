package auth

import "context"

// AuthService drives the email-OTP login flow.
type AuthService interface {
	// SendOTP issues a fresh one-time code for the email and queues its
	// delivery. Re-sending replaces any pending code.
	SendOTP(ctx context.Context, email string) error
	// VerifyOTP checks the submitted code and, on match, opens a session
	// and returns its bearer token.
	VerifyOTP(ctx context.Context, email, code string) (string, error)
	// Logout drops the live session for the email, if any.
	Logout(ctx context.Context, email string) error
}
