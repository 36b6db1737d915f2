package validation

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"tutorhub-api/core/controller"
)

// RequestValidator plugs go-playground/validator into echo so that DTO
// `validate` tags are enforced at bind time.
type RequestValidator struct {
	validate *validator.Validate
}

func NewRequestValidator() *RequestValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	return &RequestValidator{validate: v}
}

func (rv *RequestValidator) Validate(i any) error {
	return rv.validate.Struct(i)
}

// FieldErrors flattens a validator error into field-level envelope entries.
// Returns nil when err is not a validation error.
func FieldErrors(err error) []controller.ValidationError {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return nil
	}

	out := make([]controller.ValidationError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, controller.NewValidationError(
			strings.ToLower(fe.Field()),
			messageFor(fe),
		))
	}
	return out
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	case "uuid":
		return "must be a valid UUID"
	case "datetime":
		return fmt.Sprintf("must match format %s", fe.Param())
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}
