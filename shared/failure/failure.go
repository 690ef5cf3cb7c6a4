// Package failure carries errors that already know their HTTP status. Anything
// else reaching the response writer is reported as a 500.
package failure

import (
	"errors"
	"net/http"
)

type Failure struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

var (
	ForbiddenError = &Failure{Code: http.StatusForbidden, Message: "You don't have the required permissions"}
	EmptyUpdate    = &Failure{Code: http.StatusBadRequest, Message: "update request cannot be empty"}
)

func (e *Failure) Error() string {
	return e.Message
}

func withCode(code int, msg string) error {
	return &Failure{Code: code, Message: msg}
}

// BadRequest turns a validation or decoding error into a 400. Nil stays nil.
func BadRequest(err error) error {
	if err == nil {
		return nil
	}

	return withCode(http.StatusBadRequest, err.Error())
}

func BadRequestFromString(msg string) error {
	return withCode(http.StatusBadRequest, msg)
}

func Unauthorized(msg string) error {
	return withCode(http.StatusUnauthorized, msg)
}

func Forbidden(msg string) error {
	return withCode(http.StatusForbidden, msg)
}

// NotFound reads "<entity> not found".
func NotFound(entityName string) error {
	return withCode(http.StatusNotFound, entityName+" not found")
}

// MissingReference is a 400 for a body that points at a record that does not
// exist, e.g. a booking for an unknown vehicle.
func MissingReference(entityName string) error {
	return withCode(http.StatusBadRequest, entityName+" does not exist")
}

// InvalidDateRange reports a pair of dates in the wrong order, using the JSON
// field names the caller sent.
func InvalidDateRange(laterField, earlierField string) error {
	return withCode(http.StatusBadRequest, laterField+" must be on or after "+earlierField)
}

func Conflict(msg string) error {
	return withCode(http.StatusConflict, msg)
}

// GetCode finds the status anywhere in the wrap chain.
func GetCode(err error) int {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Code
	}

	return http.StatusInternalServerError
}
