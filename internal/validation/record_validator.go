package validation

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	apperrors "gradecli/internal/errors"
)

// RecordValidator checks parsed records and request bodies against their
// validate struct tags. It is safe for concurrent use.
type RecordValidator struct {
	validate *validator.Validate
}

// NewRecordValidator creates a validator that reports fields by JSON name.
func NewRecordValidator() *RecordValidator {
	v := validator.New()

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &RecordValidator{validate: v}
}

var defaultRecordValidator = NewRecordValidator()

// Record validates a parsed record with the package default validator.
func Record(source string, line int, raw string, record interface{}) error {
	return defaultRecordValidator.Record(source, line, raw, record)
}

// Record validates record and converts the first failing field into a
// ValidationError that carries the raw input line.
func (v *RecordValidator) Record(source string, line int, raw string, record interface{}) error {
	err := v.validate.Struct(record)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return apperrors.NewAppError(apperrors.ErrTypeValidation, "record validation failed", err)
	}

	fe := fieldErrs[0]
	return apperrors.NewFieldValidationError(source, line, raw, fe.Field(), describe(fe))
}

// Request validates an HTTP request body. Failures become a 400 APIError
// whose details map each field to its reason.
func (v *RecordValidator) Request(req interface{}) error {
	err := v.validate.Struct(req)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return apperrors.ErrInvalidRequest
	}

	details := make(map[string]string, len(fieldErrs))
	for _, fe := range fieldErrs {
		details[fe.Field()] = describe(fe)
	}
	return apperrors.NewWithDetails(http.StatusBadRequest, "INVALID_REQUEST", "Request validation failed", details)
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "must not be empty"
	case "gte":
		return fmt.Sprintf("must be at least %s (got %v)", fe.Param(), fe.Value())
	case "lte":
		return fmt.Sprintf("must be at most %s (got %v)", fe.Param(), fe.Value())
	case "oneof":
		return fmt.Sprintf("must be one of [%s]", fe.Param())
	default:
		return fmt.Sprintf("failed %q check", fe.Tag())
	}
}
