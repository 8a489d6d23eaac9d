package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/task-api/internal/config"
	"github.com/phrazzld/task-api/internal/store"
)

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger

	// db is the only shared mutable state; handlers reach it through taskStore.
	db        *sql.DB
	taskStore store.TaskStore
}

// newApplication creates a new application instance from dependencies that
// must be established before initialization.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB, taskStore store.TaskStore) *application {
	return &application{
		config:    cfg,
		logger:    logger,
		db:        db,
		taskStore: taskStore,
	}
}

// Run starts the application server and blocks until ctx is canceled or the
// server fails.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", "error", err)
		}
	}

	app.logger.Info("Application shutdown completed")
}
