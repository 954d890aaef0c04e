package middleware

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"catalog-api/internal/domain"
)

// ErrEmptyBody is returned when a JSON body was expected but none was sent
var ErrEmptyBody = errors.New("request body is empty")

// ValidationErrorResponse is the body of a 400 caused by invalid fields
type ValidationErrorResponse struct {
	Errors    []domain.FieldError `json:"errors"`
	Timestamp time.Time           `json:"timestamp"`
	Status    int                 `json:"status"`
}

// DecodeJSON decodes a JSON request body into v
func DecodeJSON(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return ErrEmptyBody
		}
		return fmt.Errorf("invalid JSON body: %w", err)
	}
	return nil
}

// RespondWithValidationErrors sends validation error response
func RespondWithValidationErrors(w http.ResponseWriter, errors []domain.FieldError) {
	RespondWithJSON(w, http.StatusBadRequest, ValidationErrorResponse{
		Errors:    errors,
		Timestamp: time.Now(),
		Status:    http.StatusBadRequest,
	})
}
