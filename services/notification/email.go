package notification

import (
	"context"
	"fmt"

	"slotbooker/utils"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.uber.org/zap"
)

// EmailSender defines the interface for sending emails. Implementations
// can be swapped (SendGrid, SMTP, stub) without changing callers.
type EmailSender interface {
	Send(ctx context.Context, msg EmailMessage) error
}

// EmailMessage represents an email to be sent.
type EmailMessage struct {
	To      string
	Subject string
	Body    string
}

// SendGridSender sends emails via the SendGrid API.
type SendGridSender struct {
	client    *sendgrid.Client
	fromEmail string
	fromName  string
}

// SendGridConfig holds configuration for SendGrid.
type SendGridConfig struct {
	APIKey    string
	FromEmail string
	FromName  string
}

// NewSendGridSender creates a new SendGrid email sender. Returns nil when
// no API key is configured; callers should fall back to the stub sender.
func NewSendGridSender(cfg SendGridConfig) *SendGridSender {
	if cfg.APIKey == "" {
		return nil
	}
	if cfg.FromName == "" {
		cfg.FromName = "Slotbooker"
	}
	return &SendGridSender{
		client:    sendgrid.NewSendClient(cfg.APIKey),
		fromEmail: cfg.FromEmail,
		fromName:  cfg.FromName,
	}
}

// Send sends an email via SendGrid.
func (s *SendGridSender) Send(ctx context.Context, msg EmailMessage) error {
	if s.client == nil {
		return fmt.Errorf("notification: sendgrid client not configured")
	}

	from := mail.NewEmail(s.fromName, s.fromEmail)
	to := mail.NewEmail("", msg.To)
	message := mail.NewSingleEmail(from, msg.Subject, to, msg.Body, msg.Body)

	response, err := s.client.SendWithContext(ctx, message)
	if err != nil {
		utils.GetLogger().Error("sendgrid send failed", zap.Error(err), zap.String("to", msg.To))
		return fmt.Errorf("notification: sendgrid send failed: %w", err)
	}
	if response.StatusCode >= 400 {
		utils.GetLogger().Error("sendgrid rejected message",
			zap.Int("status", response.StatusCode), zap.String("to", msg.To))
		return fmt.Errorf("notification: sendgrid returned status %d", response.StatusCode)
	}
	return nil
}

// StubEmailSender logs outgoing mail instead of delivering it. Used in
// development when no SendGrid key is configured.
type StubEmailSender struct{}

func (StubEmailSender) Send(_ context.Context, msg EmailMessage) error {
	utils.GetLogger().Sugar().Infof("Email to %s: %s — %s", msg.To, msg.Subject, msg.Body)
	return nil
}
