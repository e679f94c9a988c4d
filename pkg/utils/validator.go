package utils

import (
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateStruct runs the validator against req's `validate` tags and
// returns a field->message map suitable for JSON error responses.
func ValidateStruct(req interface{}) map[string]string {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	errors := make(map[string]string)
	for _, err := range err.(validator.ValidationErrors) {
		switch err.Tag() {
		case "required":
			errors[err.Field()] = "This field is required"
		case "email":
			errors[err.Field()] = "Invalid email format"
		case "min":
			errors[err.Field()] = "Value is below the allowed minimum"
		default:
			errors[err.Field()] = "Invalid value"
		}
	}
	return errors
}
