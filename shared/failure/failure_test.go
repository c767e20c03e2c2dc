package failure_test

import (
	"errors"
	"fmt"
	"mariachi/shared/failure"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConstructors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		code    int
		message string
	}{
		{
			name:    "bad request from error",
			err:     failure.BadRequest(errors.New("event_date must be a date")),
			code:    http.StatusBadRequest,
			message: "event_date must be a date",
		},
		{
			name:    "bad request from string",
			err:     failure.BadRequestFromString("amount exceeds the outstanding balance of 380000"),
			code:    http.StatusBadRequest,
			message: "amount exceeds the outstanding balance of 380000",
		},
		{
			name:    "unauthorized",
			err:     failure.Unauthorized("Token has expired"),
			code:    http.StatusUnauthorized,
			message: "Token has expired",
		},
		{
			name:    "forbidden",
			err:     failure.Forbidden("only an administrator may create staff accounts"),
			code:    http.StatusForbidden,
			message: "only an administrator may create staff accounts",
		},
		{
			name:    "not found",
			err:     failure.NotFound("reservation not found"),
			code:    http.StatusNotFound,
			message: "reservation not found",
		},
		{
			name:    "conflict",
			err:     failure.Conflict("reservation is already Finalizado"),
			code:    http.StatusConflict,
			message: "reservation is already Finalizado",
		},
		{
			name:    "formatted",
			err:     failure.New(http.StatusConflict, "slot %s on %s is taken", "19:00", "2024-09-15"),
			code:    http.StatusConflict,
			message: "slot 19:00 on 2024-09-15 is taken",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, failure.GetCode(tt.err))
			assert.Equal(t, tt.message, tt.err.Error())
			assert.True(t, failure.IsCode(tt.err, tt.code))
		})
	}
}

func TestBadRequest_Nil(t *testing.T) {
	assert.NoError(t, failure.BadRequest(nil))
}

func TestGetCode(t *testing.T) {
	wrapped := fmt.Errorf("failed to add payment: %w", failure.BadRequestFromString("reservation is cancelled"))

	assert.Equal(t, http.StatusBadRequest, failure.GetCode(wrapped))
	assert.Equal(t, http.StatusInternalServerError, failure.GetCode(errors.New("connection refused")))
	assert.Equal(t, http.StatusForbidden, failure.GetCode(failure.ForbiddenError))
	assert.False(t, failure.IsCode(errors.New("connection refused"), http.StatusInternalServerError))
}
