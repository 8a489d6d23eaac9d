package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/task-api/internal/api"
	apiMiddleware "github.com/phrazzld/task-api/internal/api/middleware"
	"github.com/phrazzld/task-api/internal/api/shared"
	"github.com/phrazzld/task-api/internal/redact"
)

// healthCheckTimeout bounds the database ping behind GET /health.
const healthCheckTimeout = 2 * time.Second

// setupRouter creates and configures the application router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(apiMiddleware.NewTraceMiddleware(app.logger))
	r.Use(apiMiddleware.AccessLog(app.logger))
	r.Use(apiMiddleware.Recoverer)

	// Unknown routes and methods answer with the same envelope as every handler.
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		shared.RespondWithFailure(w, r, http.StatusNotFound,
			fmt.Sprintf("no route for %s %s", r.Method, r.URL.Path), nil)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		shared.RespondWithFailure(w, r, http.StatusMethodNotAllowed,
			fmt.Sprintf("method %s not allowed for %s", r.Method, r.URL.Path), nil)
	})

	taskHandler := api.NewTaskHandler(app.taskStore, app.logger)

	r.Get("/", greeting)

	r.Get("/api/tasks", taskHandler.ListTasks)
	r.Post("/api/tasks", taskHandler.CreateTask)
	r.Get("/api/tasks/{id}", taskHandler.GetTask)
	r.Patch("/api/tasks/{id}", taskHandler.UpdateTask)
	r.Delete("/api/tasks/{id}", taskHandler.DeleteTask)

	r.Get("/health", app.healthCheck)

	return r
}

// greeting answers GET / without touching the database.
func greeting(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("Hello World"))
}

// healthCheck reports whether the database pool can serve a connection.
func (app *application) healthCheck(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
	defer cancel()

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")

	if err := app.db.PingContext(ctx); err != nil {
		app.logger.Warn("Health check failed", "error", redact.Error(err))
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("Service Unavailable"))
		return
	}

	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("OK")); err != nil {
		app.logger.Error("Failed to write health check response", "error", err)
	}
}
