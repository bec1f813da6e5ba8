package dto

import "github.com/robertopeiro12/buscocredito-sub002/internal/model"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CrearNotificacionRequest struct {
	RecipientID string         `json:"recipientId" validate:"required"`
	Type        string         `json:"type"        validate:"required,max=64"`
	Title       string         `json:"title"       validate:"required,max=200"`
	Message     string         `json:"message"     validate:"required,max=2000"`
	Data        map[string]any `json:"data"        validate:"required"`
}

// UsuarioRequest is the body of every per-user notification query.
type UsuarioRequest struct {
	UserID string `json:"userId" validate:"required"`
}

type MarcarLeidaRequest struct {
	NotificationID string `json:"notificationId" validate:"required"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type CrearNotificacionResponse struct {
	Status         int    `json:"status"`
	NotificationID string `json:"notificationId"`
}

type ListaNotificacionesResponse struct {
	Status int                  `json:"status"`
	Data   []model.Notificacion `json:"data"`
}

type ConteoResponse struct {
	Status int   `json:"status"`
	Count  int64 `json:"count"`
}

type StatusResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message,omitempty"`
}

type LimpiarResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	Deleted int64  `json:"deleted"`
}
