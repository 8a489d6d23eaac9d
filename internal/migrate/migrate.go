// Package migrate owns the tasks schema. Migrations are embedded per dialect
// and applied with goose; the server never runs them implicitly, they are a
// development and test convenience exposed through the migrate command.
package migrate

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/pressly/goose/v3"
)

//go:embed postgres/*.sql sqlite/*.sql
var migrationsFS embed.FS

// Supported dialects.
const (
	Postgres = goose.DialectPostgres
	SQLite   = goose.DialectSQLite3
)

var dialectDirs = map[goose.Dialect]string{
	Postgres: "postgres",
	SQLite:   "sqlite",
}

// NewProvider returns a goose provider over the embedded migrations for dialect.
func NewProvider(db *sql.DB, dialect goose.Dialect) (*goose.Provider, error) {
	dir, ok := dialectDirs[dialect]
	if !ok {
		return nil, fmt.Errorf("unsupported migration dialect %q", dialect)
	}

	fsys, err := fs.Sub(migrationsFS, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to open embedded migrations for %s: %w", dialect, err)
	}

	provider, err := goose.NewProvider(dialect, db, fsys)
	if err != nil {
		return nil, fmt.Errorf("failed to create migration provider: %w", err)
	}
	return provider, nil
}

// Up applies every pending migration.
func Up(ctx context.Context, db *sql.DB, dialect goose.Dialect, logger *slog.Logger) error {
	provider, err := NewProvider(db, dialect)
	if err != nil {
		return err
	}

	results, err := provider.Up(ctx)
	logResults(logger, results)
	if err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	return nil
}

// Down rolls back the most recently applied migration.
func Down(ctx context.Context, db *sql.DB, dialect goose.Dialect, logger *slog.Logger) error {
	provider, err := NewProvider(db, dialect)
	if err != nil {
		return err
	}

	result, err := provider.Down(ctx)
	if result != nil {
		logResults(logger, []*goose.MigrationResult{result})
	}
	if err != nil {
		return fmt.Errorf("failed to roll back migration: %w", err)
	}
	return nil
}

// Status reports every known migration and whether it has been applied.
func Status(ctx context.Context, db *sql.DB, dialect goose.Dialect) ([]*goose.MigrationStatus, error) {
	provider, err := NewProvider(db, dialect)
	if err != nil {
		return nil, err
	}

	statuses, err := provider.Status(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read migration status: %w", err)
	}
	return statuses, nil
}

func logResults(logger *slog.Logger, results []*goose.MigrationResult) {
	if logger == nil {
		logger = slog.Default()
	}
	for _, result := range results {
		if result == nil || result.Source == nil {
			continue
		}
		logger.Info("migration applied",
			slog.String("component", "migrations"),
			slog.String("direction", result.Direction),
			slog.String("source", result.Source.Path),
			slog.Int64("version", result.Source.Version),
			slog.Int64("duration_ms", result.Duration.Milliseconds()))
	}
}
