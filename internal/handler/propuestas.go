package handler

import (
	"net/http"

	"github.com/robertopeiro12/buscocredito-sub002/internal/dto"
	"github.com/robertopeiro12/buscocredito-sub002/internal/service"

	"github.com/gin-gonic/gin"
)

type PropuestasHandler struct{ svc service.PropuestaService }

func NewPropuestasHandler(svc service.PropuestaService) *PropuestasHandler {
	return &PropuestasHandler{svc: svc}
}

// NotificarNueva godoc
// @Summary Avisar al solicitante de una nueva propuesta
// @Tags propuestas
// @Accept json
// @Produce json
// @Param body body dto.NotificarPropuestaRequest true "Propuesta"
// @Success 200 {object} dto.NotificacionesCreadasResponse
// @Failure 400 {object} apierror.APIError
// @Failure 404 {object} apierror.APIError
// @Failure 500 {object} apierror.APIError
// @Router /v1/propuestas/notificar [post]
func (h *PropuestasHandler) NotificarNueva(c *gin.Context) {
	var req dto.NotificarPropuestaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	id, err := h.svc.NotificarNuevaPropuesta(c.Request.Context(), req.PropuestaID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NotificacionesCreadasResponse{Status: http.StatusOK, NotificationIDs: []string{id}})
}

// NotificarAceptacion godoc
// @Summary Avisar a los prestamistas que la solicitud fue asignada
// @Tags propuestas
// @Accept json
// @Produce json
// @Param body body dto.NotificarAceptacionRequest true "Solicitud y propuesta ganadora"
// @Success 200 {object} dto.NotificacionesCreadasResponse
// @Failure 400 {object} apierror.APIError
// @Failure 404 {object} apierror.APIError
// @Failure 500 {object} apierror.APIError
// @Router /v1/solicitudes/notificar-aceptacion [post]
func (h *PropuestasHandler) NotificarAceptacion(c *gin.Context) {
	var req dto.NotificarAceptacionRequest
	if !bindAndValidate(c, &req) {
		return
	}
	ids, err := h.svc.NotificarAceptacion(c.Request.Context(), req.SolicitudID, req.PropuestaID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NotificacionesCreadasResponse{Status: http.StatusOK, NotificationIDs: ids})
}
