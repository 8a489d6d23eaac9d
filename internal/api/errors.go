package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/task-api/internal/api/shared"
	"github.com/phrazzld/task-api/internal/domain"
)

// MapErrorToStatusCode maps request and storage errors to HTTP status codes.
// Only malformed input is a client error; every storage failure is a 500,
// including constraint violations.
func MapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, domain.ErrInvalidFormat):
		return http.StatusBadRequest

	default:
		return http.StatusInternalServerError
	}
}

// HandleAPIError writes a Failure envelope carrying err's text unchanged.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error) {
	shared.RespondWithError(w, r, MapErrorToStatusCode(err), err)
}

// SanitizeValidationError turns validator errors into a short description of
// the first offending field.
func SanitizeValidationError(err error) string {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) || len(validationErrs) == 0 {
		return "validation error"
	}

	fieldErr := validationErrs[0]
	if fieldErr.Tag() == "required" {
		return fmt.Sprintf("missing field `%s`", fieldErr.Field())
	}
	return fmt.Sprintf("invalid field `%s`", fieldErr.Field())
}
