package utils

import (
	"context"
	"crypto/rand"
	"encoding/base32"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// OTP verification failure modes. Handlers map these onto HTTP statuses.
var (
	ErrOTPNotFound        = errors.New("OTP not found or expired")
	ErrOTPMismatch        = errors.New("OTP does not match")
	ErrOTPTooManyAttempts = errors.New("too many failed OTP attempts")
)

// GenerateSecureOTP generates a secure random OTP of the specified length.
// It returns a base32 encoded string (without padding) truncated to the
// desired length.
func GenerateSecureOTP(length int) (string, error) {
	numBytes := (length*5 + 7) / 8 // Calculate the required number of bytes.
	randomBytes := make([]byte, numBytes)
	if _, err := rand.Read(randomBytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}
	otp := base32.StdEncoding.WithPadding(base32.NoPadding).EncodeToString(randomBytes)
	if len(otp) > length {
		otp = otp[:length]
	}
	return otp, nil
}

func otpKey(email string) string {
	return fmt.Sprintf("otp:%s", email)
}

func otpAttemptsKey(email string) string {
	return fmt.Sprintf("otpAttempts:%s", email)
}

// StoreEmailOTP caches an OTP for the given email with the supplied TTL and
// resets the failed-attempt counter. Re-sending replaces any pending code.
func StoreEmailOTP(ctx context.Context, email, otp string, ttl time.Duration) error {
	client := GetOTPCacheClient()
	if client == nil {
		return fmt.Errorf("OTP cache client not initialized")
	}

	if err := client.Set(ctx, otpKey(email), otp, ttl).Err(); err != nil {
		GetLogger().Error("Failed to cache OTP", zap.Error(err))
		return fmt.Errorf("failed to store OTP")
	}
	if err := client.Del(ctx, otpAttemptsKey(email)).Err(); err != nil {
		GetLogger().Error("Failed to reset OTP attempt counter", zap.Error(err))
	}
	return nil
}

// VerifyEmailOTPRecord retrieves the stored OTP for the email and compares
// it to the provided code. On match the code is consumed (deleted). Each
// mismatch bumps a counter that shares the code's TTL; once maxAttempts is
// reached further verification is refused until a new code is issued.
func VerifyEmailOTPRecord(ctx context.Context, email, providedOTP string, maxAttempts int) error {
	client := GetOTPCacheClient()
	if client == nil {
		return fmt.Errorf("OTP cache client not initialized")
	}

	storedOTP, err := client.Get(ctx, otpKey(email)).Result()
	if err != nil {
		if err == redis.Nil {
			return ErrOTPNotFound
		}
		return fmt.Errorf("failed to retrieve OTP: %w", err)
	}

	attempts, err := client.Get(ctx, otpAttemptsKey(email)).Int()
	if err != nil && err != redis.Nil {
		return fmt.Errorf("failed to retrieve OTP attempt counter: %w", err)
	}
	if maxAttempts > 0 && attempts >= maxAttempts {
		return ErrOTPTooManyAttempts
	}

	if storedOTP != providedOTP {
		ttl, terr := client.TTL(ctx, otpKey(email)).Result()
		if terr != nil || ttl <= 0 {
			ttl = 5 * time.Minute
		}
		pipe := client.TxPipeline()
		pipe.Incr(ctx, otpAttemptsKey(email))
		pipe.Expire(ctx, otpAttemptsKey(email), ttl)
		if _, perr := pipe.Exec(ctx); perr != nil {
			GetLogger().Error("Failed to bump OTP attempt counter", zap.Error(perr))
		}
		return ErrOTPMismatch
	}

	// Delete the OTP and its counter after successful verification.
	if err := client.Del(ctx, otpKey(email), otpAttemptsKey(email)).Err(); err != nil {
		GetLogger().Error("Failed to delete OTP after verification", zap.Error(err))
	}
	return nil
}
