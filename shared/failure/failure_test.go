package failure_test

import (
	"agenda/shared/failure"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFailure_Error(t *testing.T) {
	f := &failure.Failure{Code: http.StatusConflict, Message: "Horário não está mais disponível"}

	assert.Equal(t, "Horário não está mais disponível", f.Error())
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		code    int
		message string
	}{
		{name: "bad request", err: failure.BadRequest(errors.New("bad input")), code: http.StatusBadRequest, message: "bad input"},
		{name: "bad request from string", err: failure.BadRequestFromString("Informe o ID do médico."), code: http.StatusBadRequest, message: "Informe o ID do médico."},
		{name: "unauthorized", err: failure.Unauthorized("no key"), code: http.StatusUnauthorized, message: "no key"},
		{name: "forbidden", err: failure.Forbidden("nope"), code: http.StatusForbidden, message: "nope"},
		{name: "not found", err: failure.NotFound("Horário não encontrado"), code: http.StatusNotFound, message: "Horário não encontrado"},
		{name: "conflict", err: failure.Conflict("taken"), code: http.StatusConflict, message: "taken"},
		{name: "unprocessable", err: failure.Unprocessable("incomplete"), code: http.StatusUnprocessableEntity, message: "incomplete"},
		{name: "internal", err: failure.InternalError(errors.New("boom")), code: http.StatusInternalServerError, message: "boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, failure.GetCode(tt.err))
			assert.Equal(t, tt.message, tt.err.Error())
		})
	}
}

func TestNilInputs(t *testing.T) {
	assert.NoError(t, failure.BadRequest(nil))
	assert.NoError(t, failure.InternalError(nil))
}

func TestGetCode(t *testing.T) {
	wrapped := fmt.Errorf("failed to reserve schedule: %w", failure.Conflict("taken"))

	assert.Equal(t, http.StatusConflict, failure.GetCode(wrapped))
	assert.Equal(t, http.StatusInternalServerError, failure.GetCode(errors.New("plain")))
	assert.Equal(t, http.StatusBadRequest, failure.GetCode(failure.InvalidPageParam))
}

func TestIsKind(t *testing.T) {
	wrapped := fmt.Errorf("outer: %w", failure.NotFound("missing"))

	assert.True(t, failure.IsKind(wrapped, http.StatusNotFound))
	assert.False(t, failure.IsKind(wrapped, http.StatusConflict))
	assert.False(t, failure.IsKind(errors.New("plain"), http.StatusNotFound))
}

func TestIsExpected(t *testing.T) {
	assert.True(t, failure.IsExpected(failure.Unprocessable("state")))
	assert.True(t, failure.IsExpected(fmt.Errorf("wrap: %w", failure.Conflict("taken"))))
	assert.False(t, failure.IsExpected(failure.InternalError(errors.New("db down"))))
	assert.False(t, failure.IsExpected(errors.New("plain")))
}

func TestWithMessage(t *testing.T) {
	err := failure.WithMessage(failure.Conflict("raw"), "Horário não está disponível")

	assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	assert.Equal(t, "Horário não está disponível", err.Error())

	plain := errors.New("plain")
	assert.Equal(t, plain, failure.WithMessage(plain, "ignored"))
}
