// Package validation wraps the schema validator behind the two call
// conventions used by the handlers: Check returns the field-error list for
// callers that build their own response, MustCheck returns a taxonomy error
// for callers that short-circuit. Both conventions produce identical
// {field, message, code} lists for the same input.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/dmorales-dev/tienda-api/internal/apperr"
)

// Shared validator instance. Struct metadata is cached internally, so a
// single instance serves the whole process.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report JSON field names, not Go struct field names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})

	return v
}

// Check validates the struct and returns the ordered field-error list, or
// nil when the input is valid. Ordering follows the validator library's own
// reporting order.
func Check(v interface{}) []apperr.FieldError {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		// InvalidValidationError: the caller passed something that is not a
		// struct. Surface it as a single opaque violation.
		return []apperr.FieldError{{Field: "", Message: "datos inválidos", Code: "invalid"}}
	}

	fields := make([]apperr.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, apperr.FieldError{
			Field:   fe.Field(),
			Message: messageFor(fe),
			Code:    fe.Tag(),
		})
	}
	return fields
}

// MustCheck validates the struct and returns a KindValidation error carrying
// the same list Check would return, or nil when the input is valid.
func MustCheck(v interface{}) error {
	if fields := Check(v); fields != nil {
		return apperr.Validation(fields)
	}
	return nil
}

// messageFor maps a violated constraint to a user-facing Spanish message.
func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "required_without":
		return "es requerido"
	case "email":
		return "debe ser un correo electrónico válido"
	case "url":
		return "debe ser una URL válida"
	case "uuid", "uuid4":
		return "debe ser un UUID válido"
	case "hexadecimal":
		return "debe ser hexadecimal"
	case "min":
		return fmt.Sprintf("debe tener al menos %s caracteres", fe.Param())
	case "max":
		return fmt.Sprintf("debe tener como máximo %s caracteres", fe.Param())
	case "len":
		return fmt.Sprintf("debe tener exactamente %s caracteres", fe.Param())
	case "gt":
		return fmt.Sprintf("debe ser mayor que %s", fe.Param())
	case "gte":
		return fmt.Sprintf("debe ser mayor o igual que %s", fe.Param())
	case "lt":
		return fmt.Sprintf("debe ser menor que %s", fe.Param())
	case "lte":
		return fmt.Sprintf("debe ser menor o igual que %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("debe ser uno de: %s", fe.Param())
	default:
		return "no es válido"
	}
}
