package validator

import (
	"errors"
	"fleetdesk/internal/reconcile"
	"reflect"
	"strings"

	val "github.com/go-playground/validator/v10"
)

const fallbackMessage = "{field} is invalid"

var messages = map[string]string{
	"required": "{field} is required",
	"email":    "{field} must be a valid email address",
	"uuid":     "{field} must be a valid id",
	"oneof":    "{field} must be one of {param}",
	"datetime": "{field} must use the {param} format",
	"nefield":  "{field} must be different from {param}",
	"gt":       "{field} must be greater than {param}",
	"gte":      "{field} must be greater than or equal to {param}",
	"min":      "{field} must be greater than or equal to {param}",
	"lte":      "{field} must be less than or equal to {param}",
	"max":      "{field} must be less than or equal to {param}",
	"empty":    "{field} must not be set",

	"bookingstatus": "{field} must be one of " + joinValues(reconcile.BookingStatuses),
	"paymentstatus": "{field} must be one of " + joinValues(reconcile.PaymentStatuses),
	"recordtype":    "{field} must be one of " + joinValues(reconcile.RecordTypes),
}

func joinValues[T ~string](values []T) string {
	parts := make([]string, len(values))
	for i, value := range values {
		parts[i] = string(value)
	}

	return strings.Join(parts, " ")
}

// message reports the first failing field only.
func message(err error) string {
	var valErrors val.ValidationErrors
	if !errors.As(err, &valErrors) || len(valErrors) == 0 {
		return err.Error()
	}

	first := valErrors[0]

	tag := first.Tag()
	// A NULL decimal reaches numeric tags as an invalid value: it was never sent.
	if first.Kind() == reflect.Invalid {
		tag = "required"
	}

	template, ok := messages[tag]
	if !ok {
		template = fallbackMessage
	}

	return strings.NewReplacer("{field}", first.Field(), "{param}", first.Param()).Replace(template)
}
