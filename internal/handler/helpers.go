package handler

import (
	"errors"
	"net/http"

	"github.com/robertopeiro12/buscocredito-sub002/internal/apierror"
	"github.com/robertopeiro12/buscocredito-sub002/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
)

var validate = validator.New()

// bindAndValidate binds JSON body and runs go-playground/validator tags.
// Returns false and writes the error response if validation fails;
// the caller should return immediately without writing another response.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(http.StatusBadRequest, "JSON invalido: "+err.Error()))
		return false
	}
	if err := validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			c.JSON(http.StatusBadRequest, apierror.New(http.StatusBadRequest, err.Error()))
			return false
		}
		fields := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			fields[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusBadRequest, apierror.NewValidation(fields))
		return false
	}
	return true
}

// respondError writes the envelope for a service error. Server-side failures
// are logged with the request id before answering.
func respondError(c *gin.Context, err error) {
	resp := apierror.FromError(err)
	if resp.Status >= http.StatusInternalServerError {
		log.Error().
			Str("request_id", c.GetString(middleware.RequestIDKey)).
			Str("path", c.FullPath()).
			Str("kind", apierror.KindOf(err).String()).
			Err(err).
			Msg("service error")
	}
	c.JSON(resp.Status, resp)
}
