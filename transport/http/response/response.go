package response

import (
	"encoding/json"
	"fleetdesk/shared/constant"
	"fleetdesk/shared/failure"
	"fleetdesk/shared/logger"
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"
)

// Envelope is the body of every JSON reply. Exactly one field is set.
type Envelope struct {
	Data    any     `json:"data,omitempty"`
	Message *string `json:"message,omitempty"`
	Error   *string `json:"error,omitempty"`
}

// Data, Message and Error are the three shapes of Envelope, spelled out
// for the swagger annotations.
type Data[T any] struct {
	Data *T `json:"data,omitempty"`
}

type Message struct {
	Message *string `json:"message,omitempty"`
}

type Error struct {
	Error *string `json:"error,omitempty"`
}

func WithMessage(writer http.ResponseWriter, code int, message string) {
	write(writer, code, Envelope{Message: &message})
}

func WithJSON(writer http.ResponseWriter, code int, payload any) {
	write(writer, code, Envelope{Data: payload})
}

// WithError maps err to its failure code. Errors that are not failures
// are logged and answered with a generic 500 so driver messages never
// reach the client.
func WithError(writer http.ResponseWriter, err error) {
	code := failure.GetCode(err)

	message := constant.ResponseErrorInternal
	if code < http.StatusInternalServerError {
		message = err.Error()
	} else {
		log.Error().Err(err).Int("status", code).Msg("request failed")
	}

	write(writer, code, Envelope{Error: &message})
}

// WithFile sends a generated document as a download.
func WithFile(writer http.ResponseWriter, contentType, fileName string, data []byte) {
	writer.Header().Set(constant.RequestHeaderContentType, contentType)
	writer.Header().Set(constant.RequestHeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", fileName))
	writer.WriteHeader(http.StatusOK)

	if _, err := writer.Write(data); err != nil {
		logger.ErrorWithStack(err)
	}
}

func WithRequestLimitExceeded(writer http.ResponseWriter) {
	WithMessage(writer, http.StatusTooManyRequests, constant.ResponseErrorRequestLimitExceeded)
}

func WithPreparingShutdown(writer http.ResponseWriter) {
	WithMessage(writer, http.StatusServiceUnavailable, constant.ResponseErrorPrepareShutdown)
}

func WithUnhealthy(writer http.ResponseWriter) {
	WithMessage(writer, http.StatusServiceUnavailable, constant.ResponseErrorUnhealthy)
}

func write(writer http.ResponseWriter, code int, payload Envelope) {
	body, err := json.Marshal(payload)
	if err != nil {
		logger.ErrorWithStack(err)
		writer.WriteHeader(http.StatusInternalServerError)

		return
	}

	writer.Header().Set(constant.RequestHeaderContentType, constant.ContentTypeJSON)
	writer.WriteHeader(code)

	if _, err = writer.Write(body); err != nil {
		logger.ErrorWithStack(err)
	}
}
