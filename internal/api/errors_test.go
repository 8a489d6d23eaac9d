package api

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/phrazzld/task-api/internal/domain"
	"github.com/phrazzld/task-api/internal/platform/postgres"
	"github.com/phrazzld/task-api/internal/store"
	"github.com/stretchr/testify/assert"
)

func TestMapErrorToStatusCode(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
	}{
		{
			name:           "nil error",
			err:            nil,
			expectedStatus: http.StatusInternalServerError, // Default to 500 for nil error
		},
		{
			name:           "invalid id",
			err:            fmt.Errorf("%w %q", domain.ErrInvalidID, "abc"),
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "invalid format",
			err:            fmt.Errorf("%w: unexpected EOF", domain.ErrInvalidFormat),
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "duplicate stays a server error",
			err:            store.NewError(store.ErrDuplicate, errors.New("duplicate key")),
			expectedStatus: http.StatusInternalServerError,
		},
		{
			name:           "invalid entity stays a server error",
			err:            postgres.MapError(&pgconn.PgError{Code: "23502", Message: "null value"}),
			expectedStatus: http.StatusInternalServerError,
		},
		{
			name:           "unknown error",
			err:            errors.New("connection refused"),
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expectedStatus, MapErrorToStatusCode(tt.err))
		})
	}
}

func TestHandleAPIErrorKeepsMessage(t *testing.T) {
	pgErr := &pgconn.PgError{
		Severity: "ERROR",
		Code:     "23502",
		Message:  `null value in column "name" of relation "tasks" violates not-null constraint`,
	}
	err := postgres.MapError(pgErr)

	req := httptest.NewRequest(http.MethodPost, "/api/tasks", nil)
	w := httptest.NewRecorder()
	HandleAPIError(w, req, err)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t,
		`{"success":false,"message":"ERROR: null value in column \"name\" of relation \"tasks\" violates not-null constraint (SQLSTATE 23502)"}`,
		w.Body.String())
}

func TestSanitizeValidationError(t *testing.T) {
	v := validator.New()

	t.Run("required field", func(t *testing.T) {
		err := v.Struct(struct {
			Name *string `validate:"required"`
		}{})
		assert.Equal(t, "missing field `Name`", SanitizeValidationError(err))
	})

	t.Run("other tag", func(t *testing.T) {
		err := v.Struct(struct {
			Level string `validate:"oneof=a b"`
		}{Level: "c"})
		assert.Equal(t, "invalid field `Level`", SanitizeValidationError(err))
	})

	t.Run("not a validation error", func(t *testing.T) {
		assert.Equal(t, "validation error", SanitizeValidationError(errors.New("boom")))
	})
}
