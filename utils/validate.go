package utils

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

// FormatValidationErrors turns validator output into a single client-facing
// message.
func FormatValidationErrors(err error) string {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return err.Error()
	}

	var parts []string
	for _, e := range validationErrors {
		switch e.Tag() {
		case "required":
			parts = append(parts, e.Field()+" is required")
		case "email":
			parts = append(parts, e.Field()+" must be a valid email")
		default:
			parts = append(parts, e.Field()+" is invalid")
		}
	}
	return strings.Join(parts, "; ")
}
