// Package sms delivers SMS through the Africa's Talking messaging API.
// Recipients given as local Nigerian numbers are normalised to the 234
// international prefix before sending.
package sms

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	portssvc "github.com/fipithx/ficore_backend/internal/core/ports/services"
	"github.com/fipithx/ficore_backend/internal/platform/config"
)

const messagingEndpoint = "https://api.africastalking.com/version1/messaging"

type africasTalkingSender struct {
	apiKey     string
	username   string
	senderID   string
	endpoint   string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewSender builds an SMSSender from Africa's Talking config. A missing
// AT_API_KEY yields a log-only sender.
func NewSender(cfg *config.Config, logger *slog.Logger) portssvc.SMSSender {
	if cfg.ATAPIKey == "" {
		return &logSender{logger: logger}
	}
	return &africasTalkingSender{
		apiKey:     cfg.ATAPIKey,
		username:   cfg.ATUsername,
		senderID:   cfg.ATSenderID,
		endpoint:   messagingEndpoint,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     logger,
	}
}

// NormalizeNigerianNumber converts a local Nigerian phone number to the 234
// international format. Numbers already carrying a + or 234 prefix pass
// through unchanged.
func NormalizeNigerianNumber(number string) string {
	number = strings.TrimSpace(number)
	if strings.HasPrefix(number, "+") || strings.HasPrefix(number, "234") {
		return number
	}
	if strings.HasPrefix(number, "0") {
		return "234" + number[1:]
	}
	return "234" + number
}

// messagingResponse is the subset of the Africa's Talking response we check.
type messagingResponse struct {
	SMSMessageData struct {
		Recipients []struct {
			Number string `json:"number"`
			Status string `json:"status"`
		} `json:"Recipients"`
	} `json:"SMSMessageData"`
}

func (s *africasTalkingSender) SendSMS(ctx context.Context, to string, message string) error {
	to = NormalizeNigerianNumber(to)

	form := url.Values{}
	form.Set("username", s.username)
	form.Set("to", to)
	form.Set("message", message)
	if s.senderID != "" {
		form.Set("from", s.senderID)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("failed to build SMS request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("apikey", s.apiKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send SMS to %s: %w", to, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read SMS response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("SMS gateway returned status %d: %s", resp.StatusCode, string(body))
	}

	var parsed messagingResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return fmt.Errorf("failed to decode SMS response: %w", err)
	}
	if len(parsed.SMSMessageData.Recipients) == 0 {
		return fmt.Errorf("SMS gateway accepted no recipients: %s", string(body))
	}
	if status := parsed.SMSMessageData.Recipients[0].Status; status != "Success" {
		return fmt.Errorf("SMS delivery to %s failed with status %q", to, status)
	}

	s.logger.Info("SMS sent", slog.String("to", to))
	return nil
}

// logSender writes outbound SMS to the log instead of sending it.
type logSender struct {
	logger *slog.Logger
}

func (s *logSender) SendSMS(_ context.Context, to string, message string) error {
	s.logger.Info("SMS gateway not configured, logging message instead",
		slog.String("to", NormalizeNigerianNumber(to)),
		slog.String("message", message),
	)
	return nil
}

// whatsappStub records WhatsApp sends without dispatching them. The
// Business API integration is not wired up yet.
type whatsappStub struct {
	logger *slog.Logger
}

// NewWhatsAppSender returns the WhatsApp stub sender.
func NewWhatsAppSender(logger *slog.Logger) portssvc.WhatsAppSender {
	return &whatsappStub{logger: logger}
}

func (s *whatsappStub) SendWhatsApp(_ context.Context, to string, message string) error {
	s.logger.Info("WhatsApp integration pending, logging message instead",
		slog.String("to", NormalizeNigerianNumber(to)),
		slog.String("message", message),
	)
	return nil
}
