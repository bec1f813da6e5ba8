package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/robertopeiro12/buscocredito-sub002/internal/apierror"
	"github.com/robertopeiro12/buscocredito-sub002/internal/dto"
	"github.com/robertopeiro12/buscocredito-sub002/internal/model"
	"github.com/robertopeiro12/buscocredito-sub002/internal/repository"

	"github.com/google/uuid"
)

type NotificacionService interface {
	Crear(ctx context.Context, req dto.CrearNotificacionRequest) (string, error)
	ListarPorUsuario(ctx context.Context, userID string) ([]model.Notificacion, error)
	ContarNoLeidas(ctx context.Context, userID string) (int64, error)
	MarcarLeida(ctx context.Context, id string) error
	LimpiarTodas(ctx context.Context, userID string) (int64, error)
}

type notificacionService struct {
	repo   repository.NotificacionRepository
	correo espejoCorreo
	now    func() time.Time
}

// NewNotificacionService builds the service. mail may be nil.
func NewNotificacionService(repo repository.NotificacionRepository, cuentas repository.CuentaRepository, mail EmailDispatcher) NotificacionService {
	return &notificacionService{repo: repo, correo: espejoCorreo{cuentas: cuentas, mail: mail}, now: time.Now}
}

func (s *notificacionService) Crear(ctx context.Context, req dto.CrearNotificacionRequest) (string, error) {
	recipient := strings.TrimSpace(req.RecipientID)
	if recipient == "" {
		return "", apierror.Validation("recipientId es requerido")
	}
	data := req.Data
	if data == nil {
		data = map[string]any{}
	}

	n := &model.Notificacion{
		ID:          uuid.NewString(),
		RecipientID: recipient,
		Type:        req.Type,
		Title:       req.Title,
		Message:     req.Message,
		Data:        data,
		Read:        false,
		CreatedAt:   s.now().UTC(),
	}
	if err := s.repo.Create(ctx, n); err != nil {
		return "", apierror.Store("Error al crear la notificación", err)
	}

	s.correo.enviar(ctx, n)
	return n.ID, nil
}

func (s *notificacionService) ListarPorUsuario(ctx context.Context, userID string) ([]model.Notificacion, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, apierror.Validation("userId es requerido")
	}
	list, err := s.repo.ListByRecipient(ctx, userID)
	if err != nil {
		return nil, apierror.Store("Error al obtener las notificaciones", err)
	}
	return list, nil
}

func (s *notificacionService) ContarNoLeidas(ctx context.Context, userID string) (int64, error) {
	if strings.TrimSpace(userID) == "" {
		return 0, apierror.Validation("userId es requerido")
	}
	n, err := s.repo.CountUnread(ctx, userID)
	if err != nil {
		return 0, apierror.Store("Error al contar notificaciones", err)
	}
	return n, nil
}

// MarcarLeida is idempotent; an unknown id is reported as not found.
func (s *notificacionService) MarcarLeida(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return apierror.Validation("notificationId es requerido")
	}
	if err := s.repo.MarkRead(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apierror.NotFound("Notificación no encontrada")
		}
		return apierror.Store("Error al marcar la notificación", err)
	}
	return nil
}

func (s *notificacionService) LimpiarTodas(ctx context.Context, userID string) (int64, error) {
	if strings.TrimSpace(userID) == "" {
		return 0, apierror.Validation("userId es requerido")
	}
	deleted, err := s.repo.DeleteAllByRecipient(ctx, userID)
	if err != nil {
		return 0, apierror.Store("Error al eliminar las notificaciones", err)
	}
	return deleted, nil
}
