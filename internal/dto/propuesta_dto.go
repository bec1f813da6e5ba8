package dto

type NotificarPropuestaRequest struct {
	PropuestaID string `json:"propuestaId" validate:"required"`
}

type NotificarAceptacionRequest struct {
	SolicitudID string `json:"solicitudId" validate:"required"`
	PropuestaID string `json:"propuestaId" validate:"required"`
}

type NotificacionesCreadasResponse struct {
	Status          int      `json:"status"`
	NotificationIDs []string `json:"notificationIds"`
}
