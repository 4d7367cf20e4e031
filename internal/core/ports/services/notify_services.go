package services

import "context"

// EmailSender dispatches transactional email (OTP codes, reset links,
// bill reminders).
type EmailSender interface {
	Send(ctx context.Context, to string, subject string, htmlBody string) error
}

// SMSSender dispatches SMS messages. Implementations normalise local
// Nigerian numbers to international format before sending.
type SMSSender interface {
	SendSMS(ctx context.Context, to string, message string) error
}

// WhatsAppSender dispatches WhatsApp messages.
type WhatsAppSender interface {
	SendWhatsApp(ctx context.Context, to string, message string) error
}
