package middleware

import (
	"github.com/go-playground/validator/v10"
	"github.com/uniforum/uniforum/internal/app/models/dto"
)

var validate = validator.New()

// ValidateStruct runs struct-level validation on a bound request body and
// shapes the first failure into an error detail.
func ValidateStruct(obj interface{}) *dto.ErrorDetail {
	err := validate.Struct(obj)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok || len(validationErrors) == 0 {
		return dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request")
	}

	first := validationErrors[0]
	detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, formatValidationError(first))
	return detail.WithField(first.Field())
}

// formatValidationError creates a human-readable validation error message
func formatValidationError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return e.Field() + " is required"
	case "min":
		return e.Field() + " must be at least " + e.Param()
	case "max":
		return e.Field() + " must be at most " + e.Param()
	case "email":
		return e.Field() + " must be a valid email address"
	case "oneof":
		return e.Field() + " must be one of: " + e.Param()
	default:
		return e.Field() + " validation failed: " + e.Tag()
	}
}
