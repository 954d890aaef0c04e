package service

import (
	"strings"

	"catalog-api/internal/domain"
)

// ValidationError reports the fields that failed validation
type ValidationError struct {
	Errors []domain.FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		msgs = append(msgs, fe.Field+" "+fe.Message)
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

func validationError(errs []domain.FieldError) error {
	if len(errs) == 0 {
		return nil
	}
	return &ValidationError{Errors: errs}
}
