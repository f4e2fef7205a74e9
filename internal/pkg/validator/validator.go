package validator

import (
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/city-tourism-backend/internal/pkg/errors"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Validate checks struct tags and converts failures into a 400
// AppError with per-field messages.
func Validate(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return errors.ErrInvalidRequest
	}

	details := make(map[string]interface{}, len(verrs))
	for _, fe := range verrs {
		details[strings.ToLower(fe.Field())] = "failed on '" + fe.Tag() + "' validation"
	}

	return errors.New(errors.CodeInvalidInput, "Validation failed", http.StatusBadRequest).
		WithDetails(details)
}

// GetValidator exposes the underlying validator for custom rules.
func GetValidator() *validator.Validate {
	return validate
}
