package response

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBusinessError(t *testing.T) {
	cause := errors.New("duplicate key value violates unique constraint")
	err := NewConflict("邮箱已被注册", WithError(cause))

	assert.Equal(t, Conflict, err.Code)
	assert.Equal(t, http.StatusConflict, err.HTTPStatus())
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "邮箱已被注册")
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		err  *BusinessError
		want int
	}{
		{NewNotFound("x"), http.StatusNotFound},
		{NewBadRequest("x"), http.StatusBadRequest},
		{NewForbidden("x"), http.StatusForbidden},
		{NewUnauthorized("x"), http.StatusUnauthorized},
		{NewInternal(errors.New("x")), http.StatusInternalServerError},
		{NewBusinessError(WithErrorCode(GatewayUnavailable)), http.StatusServiceUnavailable},
		{NewBusinessError(WithErrorCode(ResponseCode(999))), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.err.HTTPStatus())
	}
}
