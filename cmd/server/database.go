package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver
	"github.com/phrazzld/task-api/internal/config"
	"github.com/phrazzld/task-api/internal/migrate"
	"github.com/phrazzld/task-api/internal/platform/postgres"
	"github.com/phrazzld/task-api/internal/platform/sqlite"
	"github.com/phrazzld/task-api/internal/redact"
	"github.com/phrazzld/task-api/internal/store"
	"github.com/pressly/goose/v3"
)

// connMaxLifetime recycles pooled postgres connections.
const connMaxLifetime = 5 * time.Minute

// backend describes the database a URL points at.
type backend struct {
	driver  string
	dsn     string
	dialect goose.Dialect
}

// resolveBackend picks the driver for a database URL by its scheme.
func resolveBackend(rawURL string) (backend, error) {
	lower := strings.ToLower(rawURL)

	switch {
	case strings.HasPrefix(lower, "postgres://"), strings.HasPrefix(lower, "postgresql://"):
		return backend{driver: "pgx", dsn: rawURL, dialect: migrate.Postgres}, nil

	case strings.HasPrefix(lower, "sqlite://"), strings.HasPrefix(lower, "file:"):
		return backend{driver: sqlite.DriverName, dsn: sqlite.DSNFromURL(rawURL), dialect: migrate.SQLite}, nil

	default:
		return backend{}, fmt.Errorf("unsupported database URL %q: expected postgres://, sqlite:// or file:",
			redact.URL(rawURL))
	}
}

// setupAppDatabase establishes a connection to the database and configures the pool.
// The connection is verified within the configured connect timeout; any failure
// is returned so startup can abort.
func setupAppDatabase(ctx context.Context, cfg config.DatabaseConfig, logger *slog.Logger) (*sql.DB, backend, error) {
	b, err := resolveBackend(cfg.URL)
	if err != nil {
		return nil, backend{}, err
	}

	connectCtx, cancel := context.WithTimeout(ctx, time.Duration(cfg.ConnectTimeoutSeconds)*time.Second)
	defer cancel()

	var db *sql.DB
	if b.driver == sqlite.DriverName {
		db, err = sqlite.Open(connectCtx, b.dsn)
		if err != nil {
			return nil, backend{}, fmt.Errorf("failed to open sqlite database: %w", err)
		}
		if cfg.MaxConns != 1 {
			logger.Debug("sqlite pool pinned to a single connection", "configured_max_conns", cfg.MaxConns)
		}
	} else {
		db, err = openPostgres(connectCtx, b.dsn, cfg.MaxConns)
		if err != nil {
			return nil, backend{}, err
		}
	}

	logger.Info("Database connection established",
		"driver", b.driver,
		"url", redact.URL(cfg.URL))
	return db, b, nil
}

// openPostgres opens a pgx-backed pool bounded to maxConns and pings it.
func openPostgres(ctx context.Context, dsn string, maxConns int) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	configurePool(db, maxConns)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// configurePool bounds db to maxConns open connections, all of which may idle.
func configurePool(db *sql.DB, maxConns int) {
	db.SetMaxOpenConns(maxConns)
	db.SetMaxIdleConns(maxConns)
	db.SetConnMaxLifetime(connMaxLifetime)
}

// newTaskStore returns the task store implementation for b.
func newTaskStore(db *sql.DB, b backend, logger *slog.Logger) store.TaskStore {
	if b.driver == sqlite.DriverName {
		return sqlite.NewTaskStore(db, logger)
	}
	return postgres.NewPostgresTaskStore(db, logger)
}
