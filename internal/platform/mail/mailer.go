// Package mail delivers transactional email over SMTP. When no SMTP host is
// configured the mailer logs messages instead, which keeps local development
// working without credentials.
package mail

import (
	"context"
	"fmt"
	"log/slog"

	gomail "gopkg.in/gomail.v2"

	portssvc "github.com/fipithx/ficore_backend/internal/core/ports/services"
	"github.com/fipithx/ficore_backend/internal/platform/config"
)

type smtpMailer struct {
	dialer *gomail.Dialer
	from   string
	logger *slog.Logger
}

// NewMailer builds an EmailSender from SMTP config. A missing SMTP_HOST
// yields a log-only sender.
func NewMailer(cfg *config.Config, logger *slog.Logger) portssvc.EmailSender {
	if cfg.SMTPHost == "" {
		return &logMailer{logger: logger}
	}
	return &smtpMailer{
		dialer: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword),
		from:   cfg.SMTPFrom,
		logger: logger,
	}
}

func (m *smtpMailer) Send(ctx context.Context, to string, subject string, htmlBody string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}
	m.logger.Info("Email sent", slog.String("to", to), slog.String("subject", subject))
	return nil
}

// logMailer writes outbound mail to the log instead of sending it.
type logMailer struct {
	logger *slog.Logger
}

func (m *logMailer) Send(_ context.Context, to string, subject string, htmlBody string) error {
	m.logger.Info("SMTP not configured, logging email instead",
		slog.String("to", to),
		slog.String("subject", subject),
		slog.String("body", htmlBody),
	)
	return nil
}
