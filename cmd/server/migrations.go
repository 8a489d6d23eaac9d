package main

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/task-api/internal/platform/logger"
	"github.com/spf13/cobra"
)

// migrationEnv is what a migrate subcommand needs to run.
type migrationEnv struct {
	db      *sql.DB
	backend backend
	logger  *slog.Logger
}

// withMigrationDB opens the configured database, runs fn and closes it again.
func withMigrationDB(cmd *cobra.Command, opts *rootOptions, fn func(migrationEnv) error) error {
	cfg, err := loadAppConfig(cmd, opts)
	if err != nil {
		return err
	}

	log := logger.New(cmd.ErrOrStderr(), cfg.Server.LogLevel).
		With(slog.String("component", "migrations"))

	db, backend, err := setupAppDatabase(cmd.Context(), cfg.Database, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database connection", "error", err)
		}
	}()

	if err := fn(migrationEnv{db: db, backend: backend, logger: log}); err != nil {
		return fmt.Errorf("migration command failed: %w", err)
	}
	return nil
}
