package handler

import (
	"net/http"

	"github.com/robertopeiro12/buscocredito-sub002/internal/dto"
	"github.com/robertopeiro12/buscocredito-sub002/internal/service"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct{ svc service.AuthService }

func NewAuthHandler(svc service.AuthService) *AuthHandler { return &AuthHandler{svc: svc} }

// Login godoc
// @Summary Login de usuario
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.LoginRequest true "Credenciales"
// @Success 200 {object} dto.LoginResponse
// @Failure 401 {object} apierror.APIError
// @Router /v1/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindAndValidate(c, &req) {
		return
	}

	resp, err := h.svc.Login(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// RegistroBanco godoc
// @Summary Registrar banco con token de invitación
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.RegistroBancoRequest true "Registro"
// @Success 201 {object} dto.RegistroBancoResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/auth/registro-banco [post]
func (h *AuthHandler) RegistroBanco(c *gin.Context) {
	var req dto.RegistroBancoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	id, err := h.svc.RegistrarBanco(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.RegistroBancoResponse{UserID: id})
}
