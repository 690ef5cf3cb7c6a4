package validator

import (
	"encoding/json"
	"fleetdesk/internal/reconcile"
	"fleetdesk/shared/failure"
	"fmt"
	"io"
	"reflect"
	"strings"

	val "github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate *val.Validate

// decimalValue lets numeric tags such as gte=0 apply to decimal fields. A NULL
// decimal validates as an absent value.
func decimalValue(field reflect.Value) any {
	switch value := field.Interface().(type) {
	case decimal.Decimal:
		return value.InexactFloat64()
	case decimal.NullDecimal:
		if !value.Valid {
			return nil
		}

		return value.Decimal.InexactFloat64()
	}

	return nil
}

func jsonName(field reflect.StructField) string {
	name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
	if name == "-" {
		return ""
	}

	return name
}

func registerBookingStatusValidation(field val.FieldLevel) bool {
	status := reconcile.ParseBookingStatus(field.Field().String())
	for _, known := range reconcile.BookingStatuses {
		if status == known {
			return true
		}
	}

	return false
}

func registerPaymentStatusValidation(field val.FieldLevel) bool {
	raw := strings.ToLower(strings.TrimSpace(field.Field().String()))
	for _, known := range reconcile.PaymentStatuses {
		if raw == string(known) {
			return true
		}
	}

	return false
}

func registerRecordTypeValidation(field val.FieldLevel) bool {
	_, ok := reconcile.ParseRecordType(field.Field().String())

	return ok
}

func init() {
	validate = val.New(val.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(jsonName)
	validate.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{}, decimal.NullDecimal{})

	custom := map[string]val.Func{
		"empty": func(fl val.FieldLevel) bool {
			return fl.Field().IsZero()
		},
		"bookingstatus": registerBookingStatusValidation,
		"paymentstatus": registerPaymentStatusValidation,
		"recordtype":    registerRecordTypeValidation,
	}

	for tag, fn := range custom {
		if err := validate.RegisterValidation(tag, fn); err != nil {
			panic(err)
		}
	}
}

// Validate reads from the given io.Reader into the given struct, and then performs validation
// on the struct using the validator package. If the struct is invalid according to the
// validation rules, an error is returned. Otherwise, nil is returned.
// https://github.com/go-playground/validator
func Validate[T any](r io.Reader, data *T) error {
	decoder := json.NewDecoder(r)
	err := decoder.Decode(data)

	if err != nil {
		return failure.BadRequest(fmt.Errorf("failed to decode request body: %w", err)) //nolint:wrapcheck
	}

	return ValidateStruct(data)
}

func ValidateStruct[T any](data *T) error {
	err := validate.Struct(data)

	if err != nil {
		msg := message(err)

		return failure.BadRequestFromString(msg) //nolint:wrapcheck
	}

	return nil
}

func ValidateVar(field any, tag string) error {
	err := validate.Var(field, tag)

	if err != nil {
		msg := message(err)

		return failure.BadRequestFromString(msg) //nolint:wrapcheck
	}

	return nil
}
