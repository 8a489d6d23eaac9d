package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/task-api/internal/api/shared"
	"github.com/phrazzld/task-api/internal/domain"
)

// getPathID extracts a task ID from the URL path parameters.
//
// Returns:
//   - (id, nil): the parsed signed 64-bit ID
//   - (0, error): an error matching domain.ErrInvalidID if the parameter is missing or not an integer
func getPathID(r *http.Request, paramName string) (int64, error) {
	pathParam := chi.URLParam(r, paramName)
	if pathParam == "" {
		return 0, fmt.Errorf("%w: missing path parameter %q", domain.ErrInvalidID, paramName)
	}

	id, err := strconv.ParseInt(pathParam, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w %q: %w", domain.ErrInvalidID, pathParam, err)
	}

	return id, nil
}

// decodeTaskRequest decodes and validates a create or update body.
// Every failure matches domain.ErrInvalidFormat.
func decodeTaskRequest(w http.ResponseWriter, r *http.Request) (domain.TaskInput, error) {
	var req TaskRequest
	if err := shared.DecodeJSON(w, r, &req); err != nil {
		return domain.TaskInput{}, fmt.Errorf("%w: %w", domain.ErrInvalidFormat, err)
	}

	if err := shared.ValidateRequest(&req); err != nil {
		return domain.TaskInput{}, fmt.Errorf("%w: %s", domain.ErrInvalidFormat, SanitizeValidationError(err))
	}

	return req.toInput(), nil
}
