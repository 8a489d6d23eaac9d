package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/phrazzld/task-api/internal/api/shared"
	"github.com/phrazzld/task-api/internal/platform/logger"
	"github.com/phrazzld/task-api/internal/redact"
)

// recoveredMessage is the Failure message sent when a handler panics.
const recoveredMessage = "internal server error"

// Recoverer answers a panicking handler with a 500 Failure envelope and logs
// the panic with its stack. http.ErrAbortHandler is re-raised so net/http can
// abort the response.
func Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}

			log := logger.FromContextOrDefault(r.Context(), slog.Default())
			log.Error("panic recovered",
				slog.String("panic", redact.String(fmt.Sprint(rec))),
				slog.String("stack", string(debug.Stack())))

			shared.RespondWithFailure(w, r, http.StatusInternalServerError, recoveredMessage,
				fmt.Errorf("panic: %v", rec))
		}()

		next.ServeHTTP(w, r)
	})
}
