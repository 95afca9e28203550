package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/placement-readiness/internal/checklist"
	"github.com/jonathan/placement-readiness/internal/history"
	"github.com/jonathan/placement-readiness/internal/ingestion"
	"github.com/jonathan/placement-readiness/internal/pipeline"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("validation error: %s", e.Message)
	}
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrNotFound indicates a missing resource
type ErrNotFound struct {
	Resource string
	ID       string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// newValidationError reports the first failing field of a validator error.
func newValidationError(err error) *ErrValidation {
	var fields validator.ValidationErrors
	if errors.As(err, &fields) && len(fields) > 0 {
		f := fields[0]
		return &ErrValidation{Field: f.Field(), Message: fmt.Sprintf("failed %q check", f.Tag())}
	}
	return &ErrValidation{Message: err.Error()}
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		validation *ErrValidation
		notFound   *ErrNotFound
		storageErr *history.StorageError
	)
	switch {
	case errors.As(err, &validation), errors.Is(err, pipeline.ErrEmptyJobDescription):
		return http.StatusBadRequest
	case errors.As(err, &notFound), errors.Is(err, checklist.ErrUnknownItem):
		return http.StatusNotFound
	case errors.As(err, &storageErr):
		return http.StatusInsufficientStorage
	case errors.Is(err, ingestion.ErrNoContent):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ingestion.ErrFetchFailed):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// publicMessage is the error text safe to return to clients.
func publicMessage(err error) string {
	var storageErr *history.StorageError
	if errors.As(err, &storageErr) {
		return storageErr.Message
	}
	if HTTPStatus(err) == http.StatusInternalServerError {
		return "internal server error"
	}
	return err.Error()
}
