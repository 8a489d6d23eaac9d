package sqlite

import (
	"context"
	"errors"
	"log/slog"

	"github.com/phrazzld/task-api/internal/redact"
	"github.com/phrazzld/task-api/internal/store"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// primaryCodeMask extracts the primary result code from an extended one.
const primaryCodeMask = 0xff

// MapError classifies a SQLite error as a store error, keeping its message verbatim.
func MapError(err error) error {
	if err == nil {
		return nil
	}

	var sqliteErr *sqlite.Error
	if !errors.As(err, &sqliteErr) {
		return err
	}

	switch sqliteErr.Code() {
	case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
		return store.NewError(store.ErrDuplicate, err)
	}

	if sqliteErr.Code()&primaryCodeMask == sqlite3.SQLITE_CONSTRAINT {
		return store.NewError(store.ErrInvalidEntity, err)
	}

	return err
}

// logStoreError logs a failed statement at WARN for constraint violations,
// tagged with the constraint class, and at ERROR otherwise.
func logStoreError(ctx context.Context, log *slog.Logger, msg string, err error, attrs ...any) {
	level := slog.LevelError
	if store.IsConstraintError(err) {
		level = slog.LevelWarn
		attrs = append(attrs, slog.String("constraint", constraintKind(err)))
	}

	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) {
		attrs = append(attrs, slog.Int("sqlite_code", sqliteErr.Code()))
	}
	attrs = append(attrs, slog.String("error", redact.Error(err)))

	log.Log(ctx, level, msg, attrs...)
}

func constraintKind(err error) string {
	if store.IsDuplicateError(err) {
		return "duplicate"
	}
	return "invalid_entity"
}
