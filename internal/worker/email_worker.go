package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/robertopeiro12/buscocredito-sub002/internal/infra"

	"github.com/rs/zerolog/log"
)

// EmailJobPayload is the job envelope sent to QueueEmail.
type EmailJobPayload struct {
	ToEmail        string `json:"to_email"`
	Subject        string `json:"subject"`
	Body           string `json:"body"`
	NotificationID string `json:"notification_id"`
}

// Sender delivers one e-mail; *infra.Mailer satisfies it.
type Sender interface {
	Send(to, subject, body string) error
}

// EmailWorker mirrors notifications to the recipient's inbox.
type EmailWorker struct {
	sender Sender
	cb     *infra.CircuitBreaker
}

func NewEmailWorker(sender Sender, cb *infra.CircuitBreaker) *EmailWorker {
	return &EmailWorker{sender: sender, cb: cb}
}

// Process returns nil for payloads that can never succeed so they are
// dropped instead of retried.
func (w *EmailWorker) Process(_ context.Context, raw json.RawMessage) error {
	var payload EmailJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("email_worker: invalid payload")
		return nil
	}
	if payload.ToEmail == "" {
		log.Warn().Str("notification_id", payload.NotificationID).Msg("email_worker: empty to_email, skipping")
		return nil
	}

	err := w.cb.Execute(func() error {
		return w.sender.Send(payload.ToEmail, payload.Subject, payload.Body)
	})
	if errors.Is(err, infra.ErrMailerNotConfigured) {
		log.Warn().Msg("email_worker: SMTP no configurado, descartando")
		return nil
	}
	if err != nil {
		return fmt.Errorf("email_worker: %w", err)
	}
	log.Info().Str("to", payload.ToEmail).Str("notification_id", payload.NotificationID).Msg("email_worker: notificación enviada")
	return nil
}
