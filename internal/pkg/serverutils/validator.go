package serverutils

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"keep-notes-be/internal/pkg/apperror"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// ValidateRequest runs the `validate` struct tags and turns the first failure
// into a readable 400.
func ValidateRequest(req interface{}) error {
	err := getValidator().Struct(req)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		return &apperror.Error{
			Kind:    apperror.KindValidation,
			Message: describe(fieldErrs[0]),
			Err:     err,
		}
	}
	return &apperror.Error{Kind: apperror.KindValidation, Message: "Invalid request", Err: err}
}

func describe(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return "Missing required fields"
	case "email":
		return "Invalid email address"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters long", capitalize(field), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters long", capitalize(field), fe.Param())
	default:
		return fmt.Sprintf("Invalid value for %s", field)
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
