package auth

import (
	"context"
	"fmt"
	"time"

	"slotbooker/config"
	"slotbooker/models"
	"slotbooker/services/notification"
	"slotbooker/services/tasks"
	"slotbooker/utils"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

const otpLength = 6

// DefaultAuthService implements AuthService. OTP codes live in the OTP
// Redis DB with a TTL; sessions are a token hash plus a JSON blob in the
// auth Redis DB. Delivery goes through the asynq queue when a client is
// configured, otherwise straight to the email sender.
type DefaultAuthService struct {
	Queue  *asynq.Client
	Sender notification.EmailSender
}

func (s *DefaultAuthService) SendOTP(ctx context.Context, email string) error {
	otp, err := utils.GenerateSecureOTP(otpLength)
	if err != nil {
		return fmt.Errorf("failed to generate OTP: %w", err)
	}

	ttl := time.Duration(config.AppConfig.OTPTTLMinutes) * time.Minute
	if err := utils.StoreEmailOTP(ctx, email, otp, ttl); err != nil {
		return err
	}

	payload := models.OTPDeliveryPayload{
		TaskID:     uuid.New().String(),
		Email:      email,
		Code:       otp,
		TTLMinutes: config.AppConfig.OTPTTLMinutes,
	}

	if s.Queue != nil {
		task, opts, err := tasks.NewOTPDeliveryTask(payload)
		if err != nil {
			return fmt.Errorf("failed to build OTP delivery task: %w", err)
		}
		if _, err := s.Queue.EnqueueContext(ctx, task, opts...); err != nil {
			utils.GetLogger().Error("Failed to enqueue OTP delivery", zap.Error(err))
			return fmt.Errorf("failed to send OTP")
		}
		return nil
	}

	msg := notification.EmailMessage{
		To:      email,
		Subject: "Your Slotbooker login code",
		Body:    fmt.Sprintf("Your Slotbooker OTP is: %s. It expires in %d minutes.", otp, payload.TTLMinutes),
	}
	if err := s.Sender.Send(ctx, msg); err != nil {
		utils.GetLogger().Error("Failed to send OTP email", zap.Error(err))
		return fmt.Errorf("failed to send OTP")
	}
	return nil
}

func (s *DefaultAuthService) VerifyOTP(ctx context.Context, email, code string) (string, error) {
	if err := utils.VerifyEmailOTPRecord(ctx, email, code, config.AppConfig.OTPMaxAttempts); err != nil {
		return "", err
	}

	ttl := time.Duration(config.AppConfig.SessionTTLHours) * time.Hour
	token, err := utils.GenerateToken(email, ttl)
	if err != nil {
		return "", fmt.Errorf("failed to generate auth token: %w", err)
	}

	authCache := utils.GetAuthCacheClient()
	tokenHash := utils.HashToken(token)
	if err := authCache.Set(ctx, utils.AuthCachePrefix+email, tokenHash, ttl).Err(); err != nil {
		return "", fmt.Errorf("failed to store session token: %w", err)
	}

	session := utils.AuthSession{
		Email:     email,
		TokenHash: tokenHash,
		CreatedAt: time.Now(),
	}
	if err := utils.SaveAuthSession(ctx, authCache, session, ttl); err != nil {
		return "", err
	}

	return token, nil
}

func (s *DefaultAuthService) Logout(ctx context.Context, email string) error {
	authCache := utils.GetAuthCacheClient()
	if err := authCache.Del(ctx, utils.AuthCachePrefix+email).Err(); err != nil {
		return fmt.Errorf("failed to drop session token: %w", err)
	}
	return utils.DeleteAuthSession(ctx, authCache, email)
}
