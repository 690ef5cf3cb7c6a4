package failure_test

import (
	"errors"
	"fleetdesk/shared/failure"
	"fmt"
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
		{name: "bad request", err: failure.BadRequest(errors.New("limit must be positive")), code: http.StatusBadRequest, message: "limit must be positive"},
		{name: "bad request from string", err: failure.BadRequestFromString("as_of must use the YYYY-MM-DD format"), code: http.StatusBadRequest, message: "as_of must use the YYYY-MM-DD format"},
		{name: "unauthorized", err: failure.Unauthorized("Token has expired"), code: http.StatusUnauthorized, message: "Token has expired"},
		{name: "forbidden", err: failure.Forbidden("staff account is deactivated"), code: http.StatusForbidden, message: "staff account is deactivated"},
		{name: "not found", err: failure.NotFound("booking"), code: http.StatusNotFound, message: "booking not found"},
		{name: "conflict", err: failure.Conflict("plate number already registered"), code: http.StatusConflict, message: "plate number already registered"},
		{name: "missing reference", err: failure.MissingReference("vehicle"), code: http.StatusBadRequest, message: "vehicle does not exist"},
		{name: "invalid date range", err: failure.InvalidDateRange("end_date", "start_date"), code: http.StatusBadRequest, message: "end_date must be on or after start_date"},
		{name: "empty update", err: failure.EmptyUpdate, code: http.StatusBadRequest, message: "update request cannot be empty"},
		{name: "forbidden error", err: failure.ForbiddenError, code: http.StatusForbidden, message: "You don't have the required permissions"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, failure.GetCode(tt.err))
			assert.EqualError(t, tt.err, tt.message)
		})
	}
}

func TestBadRequestNil(t *testing.T) {
	assert.NoError(t, failure.BadRequest(nil))
}

func TestGetCode(t *testing.T) {
	t.Run("wrapped failure keeps its code", func(t *testing.T) {
		err := fmt.Errorf("failed to create booking: %w", failure.MissingReference("customer"))

		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("plain error is internal", func(t *testing.T) {
		assert.Equal(t, http.StatusInternalServerError, failure.GetCode(errors.New("connection reset")))
	})

	t.Run("nil is internal", func(t *testing.T) {
		assert.Equal(t, http.StatusInternalServerError, failure.GetCode(nil))
	})
}
