package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/vistaran/helpdesk/internal/client/settings"
	"github.com/vistaran/helpdesk/internal/logging"
)

// DefaultEmailJSEndpoint is the EmailJS REST send endpoint.
const DefaultEmailJSEndpoint = "https://api.emailjs.com/api/v1.0/email/send"

// emailJSTemplateID names the single pass-through EmailJS template the
// dispatcher targets; subject and body are rendered locally and passed as
// template params.
const emailJSTemplateID = "template_helpdesk"

// EmailJSSender delivers messages through the EmailJS HTTP API. The service
// id and public key are read from settings on every send, so changes take
// effect without rebuilding the sender.
type EmailJSSender struct {
	endpoint string
	client   *http.Client
	settings *settings.Store
	log      logging.Logger
}

func NewEmailJSSender(s *settings.Store, timeout time.Duration, log logging.Logger) *EmailJSSender {
	return &EmailJSSender{
		endpoint: DefaultEmailJSEndpoint,
		client:   &http.Client{Timeout: timeout},
		settings: s,
		log:      log.With("component", "emailjs"),
	}
}

type emailJSRequest struct {
	ServiceID      string            `json:"service_id"`
	TemplateID     string            `json:"template_id"`
	UserID         string            `json:"user_id"`
	TemplateParams map[string]string `json:"template_params"`
}

func (s *EmailJSSender) Send(ctx context.Context, msg Message) error {
	payload := emailJSRequest{
		ServiceID:  s.settings.EmailJSServiceID(),
		TemplateID: emailJSTemplateID,
		UserID:     s.settings.EmailJSPublicKey(),
		TemplateParams: map[string]string{
			"to_email": msg.To,
			"subject":  msg.Subject,
			"body":     msg.Body,
		},
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode emailjs request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("emailjs send failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("emailjs send failed: status %d", resp.StatusCode)
	}
	return nil
}
