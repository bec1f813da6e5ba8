package handler

import (
	"net/http"

	"github.com/robertopeiro12/buscocredito-sub002/internal/apierror"
	"github.com/robertopeiro12/buscocredito-sub002/internal/dto"
	"github.com/robertopeiro12/buscocredito-sub002/internal/middleware"
	"github.com/robertopeiro12/buscocredito-sub002/internal/service"

	"github.com/gin-gonic/gin"
)

type SubcuentasHandler struct{ svc service.SubcuentaService }

func NewSubcuentasHandler(svc service.SubcuentaService) *SubcuentasHandler {
	return &SubcuentasHandler{svc: svc}
}

// Crear godoc
// @Summary Crear subcuenta de venta
// @Tags subcuentas
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param body body dto.CrearSubcuentaRequest true "Subcuenta"
// @Success 200 {object} dto.SubcuentaResponse
// @Failure 403 {object} apierror.APIError
// @Router /v1/subcuentas [post]
func (h *SubcuentasHandler) Crear(c *gin.Context) {
	var req dto.CrearSubcuentaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	// An administrator can only provision accounts under itself.
	claims := middleware.GetClaims(c)
	if claims == nil || claims.UserID != req.UserID {
		c.JSON(http.StatusForbidden, apierror.New(http.StatusForbidden, "No puede crear subcuentas para otro administrador"))
		return
	}

	id, err := h.svc.Provisionar(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.SubcuentaResponse{UserID: id})
}

// Eliminar godoc
// @Summary Eliminar subcuenta por email
// @Tags subcuentas
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param body body dto.EliminarSubcuentaRequest true "Subcuenta"
// @Success 200 {object} dto.StatusResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/subcuentas/eliminar [post]
func (h *SubcuentasHandler) Eliminar(c *gin.Context) {
	var req dto.EliminarSubcuentaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	var owner string
	if claims := middleware.GetClaims(c); claims != nil {
		owner = claims.UserID
	}
	if err := h.svc.DesprovisionarPorEmail(c.Request.Context(), owner, req.Email); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.StatusResponse{Status: http.StatusOK, Message: "Subcuenta eliminada"})
}
