package handler

import (
	"net/http"

	"github.com/robertopeiro12/buscocredito-sub002/internal/apierror"
	"github.com/robertopeiro12/buscocredito-sub002/internal/dto"
	"github.com/robertopeiro12/buscocredito-sub002/internal/service"

	"github.com/gin-gonic/gin"
)

// TokensHandler answers with its own {valid|success, error} bodies, which
// the signup form reads directly.
type TokensHandler struct{ svc service.TokenService }

func NewTokensHandler(svc service.TokenService) *TokensHandler {
	return &TokensHandler{svc: svc}
}

// Validar godoc
// @Summary Validar token de registro
// @Tags tokens
// @Accept json
// @Produce json
// @Param body body dto.ValidarTokenRequest true "Token"
// @Success 200 {object} dto.ValidarTokenResponse
// @Failure 400 {object} dto.ValidarTokenResponse
// @Router /v1/tokens/validar [post]
func (h *TokensHandler) Validar(c *gin.Context) {
	var req dto.ValidarTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Token == "" {
		c.JSON(http.StatusBadRequest, dto.ValidarTokenResponse{Valid: false, Error: "Token requerido"})
		return
	}
	res, err := h.svc.Validar(c.Request.Context(), req.Token)
	if err != nil {
		c.JSON(apierror.StatusOf(err), dto.ValidarTokenResponse{Valid: false, Error: err.Error()})
		return
	}
	if !res.Valid {
		c.JSON(http.StatusOK, dto.ValidarTokenResponse{Valid: false, Error: "Token inválido o ya utilizado"})
		return
	}
	c.JSON(http.StatusOK, dto.ValidarTokenResponse{
		Valid:       true,
		TokenID:     res.TokenID,
		Description: res.Description,
	})
}

// Consumir godoc
// @Summary Consumir token de registro
// @Tags tokens
// @Accept json
// @Produce json
// @Param body body dto.ConsumirTokenRequest true "Token"
// @Success 200 {object} dto.ConsumirTokenResponse
// @Failure 400 {object} dto.ConsumirTokenResponse
// @Failure 500 {object} dto.ConsumirTokenResponse
// @Router /v1/tokens/consumir [post]
func (h *TokensHandler) Consumir(c *gin.Context) {
	var req dto.ConsumirTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Token == "" || req.UsedBy == "" {
		c.JSON(http.StatusBadRequest, dto.ConsumirTokenResponse{Success: false, Error: "Token y usedBy son requeridos"})
		return
	}
	if err := h.svc.Consumir(c.Request.Context(), req.Token, req.UsedBy, req.CompanyName); err != nil {
		c.JSON(apierror.StatusOf(err), dto.ConsumirTokenResponse{Success: false, Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, dto.ConsumirTokenResponse{Success: true, Message: "Token consumido exitosamente"})
}
