package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/robertopeiro12/buscocredito-sub002/internal/apierror"
	"github.com/robertopeiro12/buscocredito-sub002/internal/model"
	"github.com/robertopeiro12/buscocredito-sub002/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PropuestaService turns marketplace events on loan requests into
// notifications. It only reads `solicitudes` and `propuestas`.
type PropuestaService interface {
	NotificarNuevaPropuesta(ctx context.Context, propuestaID string) (string, error)
	NotificarAceptacion(ctx context.Context, solicitudID, propuestaID string) ([]string, error)
}

type propuestaService struct {
	solicitudes    repository.SolicitudRepository
	notificaciones repository.NotificacionRepository
	correo         espejoCorreo
	now            func() time.Time
}

// NewPropuestaService wires the service. mail may be nil to disable e-mail copies.
func NewPropuestaService(
	solicitudes repository.SolicitudRepository,
	notificaciones repository.NotificacionRepository,
	cuentas repository.CuentaRepository,
	mail EmailDispatcher,
) PropuestaService {
	return &propuestaService{
		solicitudes:    solicitudes,
		notificaciones: notificaciones,
		correo:         espejoCorreo{cuentas: cuentas, mail: mail},
		now:            time.Now,
	}
}

func (s *propuestaService) NotificarNuevaPropuesta(ctx context.Context, propuestaID string) (string, error) {
	p, err := s.solicitudes.FindPropuesta(ctx, propuestaID)
	if err != nil {
		return "", notFoundOrStore(err, "Propuesta no encontrada")
	}
	sol, err := s.solicitudes.FindSolicitud(ctx, p.SolicitudID)
	if err != nil {
		return "", notFoundOrStore(err, "Solicitud no encontrada")
	}

	n := s.nueva(sol.UserID, model.NotifNuevaPropuesta,
		"Nueva propuesta",
		fmt.Sprintf("%s te ha enviado una propuesta por $%s", p.Empresa, decimalOf(p.Monto).StringFixed(2)),
		snapshot(p))
	if err := s.notificaciones.Create(ctx, n); err != nil {
		return "", apierror.Store("Error al crear la notificación", err)
	}
	s.correo.enviar(ctx, n)
	return n.ID, nil
}

// NotificarAceptacion tells the winning lender their offer was accepted and
// every other bidding lender that the loan went elsewhere. Each lender gets
// one notification and the batch is stored all-or-nothing.
func (s *propuestaService) NotificarAceptacion(ctx context.Context, solicitudID, propuestaID string) ([]string, error) {
	if _, err := s.solicitudes.FindSolicitud(ctx, solicitudID); err != nil {
		return nil, notFoundOrStore(err, "Solicitud no encontrada")
	}
	props, err := s.solicitudes.ListPropuestas(ctx, solicitudID)
	if err != nil {
		return nil, apierror.Store("Error al obtener las propuestas", err)
	}

	var ganadora *model.Propuesta
	for i := range props {
		if props[i].ID == propuestaID {
			ganadora = &props[i]
			break
		}
	}
	if ganadora == nil {
		return nil, apierror.Validation("La propuesta no pertenece a la solicitud")
	}

	avisados := map[string]bool{ganadora.LenderID: true}
	batch := []*model.Notificacion{
		s.nueva(ganadora.LenderID, model.NotifLoanAccepted,
			"Propuesta aceptada",
			fmt.Sprintf("Tu propuesta por $%s fue aceptada", decimalOf(ganadora.Monto).StringFixed(2)),
			snapshot(ganadora)),
	}
	for i := range props {
		p := &props[i]
		if avisados[p.LenderID] {
			continue
		}
		avisados[p.LenderID] = true
		batch = append(batch, s.nueva(p.LenderID, model.NotifLoanAssignedOther,
			"Préstamo asignado",
			"La solicitud fue asignada a otra institución",
			snapshot(p)))
	}

	if err := s.notificaciones.CreateMany(ctx, batch); err != nil {
		return nil, apierror.Store("Error al crear las notificaciones", err)
	}
	ids := make([]string, len(batch))
	for i, n := range batch {
		ids[i] = n.ID
		s.correo.enviar(ctx, n)
	}
	return ids, nil
}

func (s *propuestaService) nueva(recipient, tipo, title, msg string, data map[string]any) *model.Notificacion {
	return &model.Notificacion{
		ID:          uuid.NewString(),
		RecipientID: recipient,
		Type:        tipo,
		Title:       title,
		Message:     msg,
		Data:        data,
		CreatedAt:   s.now().UTC(),
	}
}

// snapshot embeds the offer as it was when the notification was produced.
func snapshot(p *model.Propuesta) map[string]any {
	return map[string]any{
		"solicitudId": p.SolicitudID,
		"propuestaId": p.ID,
		"lenderId":    p.LenderID,
		"empresa":     p.Empresa,
		"monto":       decimalOf(p.Monto).StringFixed(2),
		"tasa":        decimalOf(p.Tasa).StringFixed(2),
		"comision":    decimalOf(p.Comision).StringFixed(2),
		"plazo":       p.Plazo,
	}
}

func decimalOf(d primitive.Decimal128) decimal.Decimal {
	v, err := decimal.NewFromString(d.String())
	if err != nil {
		return decimal.Zero
	}
	return v
}

func notFoundOrStore(err error, notFoundMsg string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apierror.NotFound(notFoundMsg)
	}
	return apierror.Store("Error al consultar el almacén de documentos", err)
}
