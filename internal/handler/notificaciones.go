package handler

import (
	"net/http"

	"github.com/robertopeiro12/buscocredito-sub002/internal/dto"
	"github.com/robertopeiro12/buscocredito-sub002/internal/service"

	"github.com/gin-gonic/gin"
)

type NotificacionesHandler struct{ svc service.NotificacionService }

func NewNotificacionesHandler(svc service.NotificacionService) *NotificacionesHandler {
	return &NotificacionesHandler{svc: svc}
}

// Crear godoc
// @Summary Crear notificación
// @Tags notificaciones
// @Accept json
// @Produce json
// @Param body body dto.CrearNotificacionRequest true "Notificación"
// @Success 200 {object} dto.CrearNotificacionResponse
// @Failure 400 {object} apierror.APIError
// @Failure 500 {object} apierror.APIError
// @Router /v1/notificaciones [post]
func (h *NotificacionesHandler) Crear(c *gin.Context) {
	var req dto.CrearNotificacionRequest
	if !bindAndValidate(c, &req) {
		return
	}
	id, err := h.svc.Crear(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.CrearNotificacionResponse{Status: http.StatusOK, NotificationID: id})
}

// Listar godoc
// @Summary Listar notificaciones de un usuario
// @Tags notificaciones
// @Accept json
// @Produce json
// @Param body body dto.UsuarioRequest true "Usuario"
// @Success 200 {object} dto.ListaNotificacionesResponse
// @Router /v1/notificaciones/listar [post]
func (h *NotificacionesHandler) Listar(c *gin.Context) {
	var req dto.UsuarioRequest
	if !bindAndValidate(c, &req) {
		return
	}
	list, err := h.svc.ListarPorUsuario(c.Request.Context(), req.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ListaNotificacionesResponse{Status: http.StatusOK, Data: list})
}

// NoLeidas godoc
// @Summary Contar notificaciones no leídas
// @Tags notificaciones
// @Accept json
// @Produce json
// @Param body body dto.UsuarioRequest true "Usuario"
// @Success 200 {object} dto.ConteoResponse
// @Router /v1/notificaciones/no-leidas [post]
func (h *NotificacionesHandler) NoLeidas(c *gin.Context) {
	var req dto.UsuarioRequest
	if !bindAndValidate(c, &req) {
		return
	}
	n, err := h.svc.ContarNoLeidas(c.Request.Context(), req.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ConteoResponse{Status: http.StatusOK, Count: n})
}

// MarcarLeida godoc
// @Summary Marcar notificación como leída
// @Tags notificaciones
// @Accept json
// @Produce json
// @Param body body dto.MarcarLeidaRequest true "Notificación"
// @Success 200 {object} dto.StatusResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/notificaciones/marcar-leida [post]
func (h *NotificacionesHandler) MarcarLeida(c *gin.Context) {
	var req dto.MarcarLeidaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.MarcarLeida(c.Request.Context(), req.NotificationID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.StatusResponse{Status: http.StatusOK})
}

// Limpiar godoc
// @Summary Eliminar todas las notificaciones de un usuario
// @Tags notificaciones
// @Accept json
// @Produce json
// @Param body body dto.UsuarioRequest true "Usuario"
// @Success 200 {object} dto.LimpiarResponse
// @Router /v1/notificaciones/limpiar [post]
func (h *NotificacionesHandler) Limpiar(c *gin.Context) {
	var req dto.UsuarioRequest
	if !bindAndValidate(c, &req) {
		return
	}
	deleted, err := h.svc.LimpiarTodas(c.Request.Context(), req.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.LimpiarResponse{
		Status:  http.StatusOK,
		Message: "Notificaciones eliminadas",
		Deleted: deleted,
	})
}
