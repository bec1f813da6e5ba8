package service

import (
	"context"

	"github.com/robertopeiro12/buscocredito-sub002/internal/model"
	"github.com/robertopeiro12/buscocredito-sub002/internal/repository"
	"github.com/robertopeiro12/buscocredito-sub002/internal/worker"

	"github.com/rs/zerolog/log"
)

// EmailDispatcher enqueues an e-mail job; *worker.Dispatcher satisfies it.
type EmailDispatcher interface {
	EnqueueEmail(ctx context.Context, payload worker.EmailJobPayload) error
}

// espejoCorreo copies stored notifications to the recipient's inbox.
// A nil mail disables it.
type espejoCorreo struct {
	cuentas repository.CuentaRepository
	mail    EmailDispatcher
}

// enviar is best effort: the notification is already stored, so a missing
// profile or a queue failure is only logged.
func (e espejoCorreo) enviar(ctx context.Context, n *model.Notificacion) {
	if e.mail == nil {
		return
	}
	cuenta, err := e.cuentas.FindByID(ctx, n.RecipientID)
	if err != nil || cuenta.Email == "" {
		log.Debug().Str("recipient_id", n.RecipientID).Err(err).Msg("notificacion: sin email de destino")
		return
	}
	payload := worker.EmailJobPayload{
		ToEmail:        cuenta.Email,
		Subject:        n.Title,
		Body:           n.Message,
		NotificationID: n.ID,
	}
	if err := e.mail.EnqueueEmail(ctx, payload); err != nil {
		log.Warn().Err(err).Str("notification_id", n.ID).Msg("notificacion: no se pudo encolar el email")
	}
}
