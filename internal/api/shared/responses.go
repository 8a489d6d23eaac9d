package shared

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/phrazzld/task-api/internal/platform/logger"
	"github.com/phrazzld/task-api/internal/redact"
)

// Envelope is the uniform response body. It is either a Success or a Failure.
type Envelope interface {
	json.Marshaler
	envelope()
}

// Success carries a handler result. A nil Data omits the data field entirely.
type Success struct {
	Data any
}

// Failure carries the text of the error that failed the request.
type Failure struct {
	Message string
}

func (Success) envelope() {}
func (Failure) envelope() {}

// MarshalJSON renders {"success":true,"data":...} or {"success":true}.
func (s Success) MarshalJSON() ([]byte, error) {
	if s.Data == nil {
		return json.Marshal(struct {
			Success bool `json:"success"`
		}{Success: true})
	}

	return json.Marshal(struct {
		Success bool `json:"success"`
		Data    any  `json:"data"`
	}{Success: true, Data: s.Data})
}

// MarshalJSON renders {"success":false,"message":"..."}.
func (f Failure) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}{Success: false, Message: f.Message})
}

// RespondWithJSON writes a JSON response with the given status code and data.
func RespondWithJSON(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	body, err := json.Marshal(data)
	if err != nil {
		logger.FromContextOrDefault(r.Context(), slog.Default()).
			Error("failed to encode JSON response", "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

// RespondWithSuccess writes a Success envelope.
func RespondWithSuccess(w http.ResponseWriter, r *http.Request, status int, data any) {
	RespondWithJSON(w, r, status, Success{Data: data})
}

// RespondWithError writes a Failure envelope whose message is err's text.
//
// Log level strategy:
// - 5xx errors: logged at ERROR level
// - everything else: logged at DEBUG level
func RespondWithError(w http.ResponseWriter, r *http.Request, status int, err error) {
	message := "unknown error"
	if err != nil {
		message = err.Error()
	}
	RespondWithFailure(w, r, status, message, err)
}

// RespondWithFailure writes a Failure envelope with message and logs err,
// redacted, alongside the trace ID.
func RespondWithFailure(w http.ResponseWriter, r *http.Request, status int, message string, err error) {
	traceID := GetTraceID(r.Context())

	logAttrs := []slog.Attr{
		slog.String("trace_id", traceID),
		slog.String("path", r.URL.Path),
		slog.String("method", r.Method),
		slog.Int("status_code", status),
	}
	if err != nil {
		logAttrs = append(logAttrs,
			slog.String("error", redact.Error(err)),
			slog.String("error_type", fmt.Sprintf("%T", err)))
	}

	logLevel := slog.LevelDebug
	if status >= http.StatusInternalServerError {
		logLevel = slog.LevelError
	}

	log := logger.FromContextOrDefault(r.Context(), slog.Default())
	log.LogAttrs(r.Context(), logLevel, "API error response", logAttrs...)

	RespondWithJSON(w, r, status, Failure{Message: message})
}
