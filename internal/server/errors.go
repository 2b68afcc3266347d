package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jonathan/resume-agent/internal/ingestion"
	"github.com/jonathan/resume-agent/internal/schemas"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrPayloadTooLarge indicates the request body exceeded the configured limit
type ErrPayloadTooLarge struct {
	Limit int64
}

func (e *ErrPayloadTooLarge) Error() string {
	return fmt.Sprintf("request body exceeds %d bytes", e.Limit)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	if err == nil {
		return http.StatusInternalServerError
	}

	var (
		validationErr *ErrValidation
		tooLargeErr   *ErrPayloadTooLarge
		schemaErr     *schemas.ValidationError
		ingestErr     *ingestion.Error
	)
	switch {
	case errors.As(err, &tooLargeErr):
		return http.StatusRequestEntityTooLarge
	case errors.As(err, &validationErr), errors.As(err, &schemaErr), errors.As(err, &ingestErr):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
