package response_test

import (
	"errors"
	"fleetdesk/shared/constant"
	"fleetdesk/shared/failure"
	"fleetdesk/transport/http/response"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWithError(t *testing.T) {
	t.Run("failure message is passed through", func(t *testing.T) {
		rec := httptest.NewRecorder()

		response.WithError(rec, failure.NotFound("booking"))

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.JSONEq(t, `{"error":"booking not found"}`, rec.Body.String())
	})

	t.Run("infrastructure error is masked", func(t *testing.T) {
		rec := httptest.NewRecorder()

		response.WithError(rec, errors.New(`pq: relation "bookings" does not exist`))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.NotContains(t, rec.Body.String(), "pq:")
		assert.Contains(t, rec.Body.String(), constant.ResponseErrorInternal)
	})
}

func TestWithJSON(t *testing.T) {
	rec := httptest.NewRecorder()

	response.WithJSON(rec, http.StatusOK, map[string]int{"active": 3})

	assert.Equal(t, constant.ContentTypeJSON, rec.Header().Get(constant.RequestHeaderContentType))
	assert.JSONEq(t, `{"data":{"active":3}}`, rec.Body.String())
}

func TestWithMessage(t *testing.T) {
	rec := httptest.NewRecorder()

	response.WithRequestLimitExceeded(rec)

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.JSONEq(t, `{"message":"REQUEST LIMIT EXCEEDED"}`, rec.Body.String())
}

func TestWithFile(t *testing.T) {
	rec := httptest.NewRecorder()

	response.WithFile(rec, constant.ContentTypePDF, "outstanding.pdf", []byte("%PDF"))

	assert.Equal(t, constant.ContentTypePDF, rec.Header().Get(constant.RequestHeaderContentType))
	assert.Contains(t, rec.Header().Get(constant.RequestHeaderContentDisposition), `filename="outstanding.pdf"`)
	assert.Equal(t, "%PDF", rec.Body.String())
}
