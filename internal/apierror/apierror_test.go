package apierror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusOf(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{Validation("x"), http.StatusBadRequest},
		{TokenInvalid("x"), http.StatusBadRequest},
		{Unauthorized("x"), http.StatusUnauthorized},
		{Forbidden("x"), http.StatusForbidden},
		{NotFound("x"), http.StatusNotFound},
		{Store("x", errors.New("db")), http.StatusInternalServerError},
		{Credential("x", errors.New("idp")), http.StatusInternalServerError},
		{errors.New("plain"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, StatusOf(tc.err), tc.err.Error())
	}
}

func TestKindOf_Wrapped(t *testing.T) {
	err := fmt.Errorf("handler: %w", NotFound("no existe"))
	assert.Equal(t, KindNotFound, KindOf(err))
	assert.Equal(t, "not_found", KindOf(err).String())
}

func TestFromError_PasaMensajeDelProveedor(t *testing.T) {
	cause := errors.New("E11000 duplicate key")
	resp := FromError(Store("Error al crear", cause))

	assert.Equal(t, http.StatusInternalServerError, resp.Status)
	assert.Equal(t, "Error al crear: E11000 duplicate key", resp.Error)
	assert.ErrorIs(t, Store("Error al crear", cause), cause)
}
