package domain

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

// Validator instance
var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())

	// Report JSON names so field errors match what clients sent
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	if err := validate.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(err)
	}
}

// FieldError represents a field validation error
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Validate checks the fields a product needs before it is created.
func (p *Product) Validate() []FieldError {
	return formatValidationErrors(validate.Struct(p))
}

// Validate checks the fields a category needs before it is saved.
func (c *Category) Validate() []FieldError {
	if err := validate.Var(c.Name, "notblank"); err != nil {
		return []FieldError{{Field: "nombre", Message: getErrorMessage("notblank")}}
	}
	return nil
}

// formatValidationErrors converts validator errors to field errors
func formatValidationErrors(err error) []FieldError {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return nil
	}

	fieldErrors := make([]FieldError, 0, len(validationErrors))
	for _, e := range validationErrors {
		fieldErrors = append(fieldErrors, FieldError{
			Field:   e.Field(),
			Message: getErrorMessage(e.Tag()),
		})
	}
	return fieldErrors
}

func getErrorMessage(tag string) string {
	switch tag {
	case "required":
		return "must not be null"
	case "notblank":
		return "must not be blank"
	default:
		return "is invalid"
	}
}
