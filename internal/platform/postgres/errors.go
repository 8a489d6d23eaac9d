package postgres

import (
	"context"
	"errors"
	"log/slog"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/phrazzld/task-api/internal/redact"
	"github.com/phrazzld/task-api/internal/store"
)

// PostgreSQL error codes
const (
	// uniqueViolationCode is the PostgreSQL error code for unique constraint violations
	uniqueViolationCode = "23505"

	// foreignKeyViolationCode is the PostgreSQL error code for foreign key violations
	foreignKeyViolationCode = "23503"

	// checkViolationCode is the PostgreSQL error code for check constraint violations
	checkViolationCode = "23514"

	// notNullViolationCode is the PostgreSQL error code for not null violations
	notNullViolationCode = "23502"
)

// MapError classifies a database error as a store error.
// The returned error keeps the driver's message verbatim; constraint violations
// additionally match store.ErrDuplicate or store.ErrInvalidEntity via errors.Is.
func MapError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case uniqueViolationCode:
			return store.NewError(store.ErrDuplicate, err)
		case foreignKeyViolationCode, checkViolationCode, notNullViolationCode:
			return store.NewError(store.ErrInvalidEntity, err)
		}
	}

	// Return the original error for errors that don't have specific mappings
	return err
}

// logStoreError logs a failed statement: constraint violations are the caller's
// data and go to WARN with a constraint attribute, everything else is an
// operational failure at ERROR.
func logStoreError(ctx context.Context, log *slog.Logger, msg string, err error, attrs ...any) {
	level := slog.LevelError
	if store.IsConstraintError(err) {
		level = slog.LevelWarn
		attrs = append(attrs, slog.String("constraint", constraintKind(err)))
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		attrs = append(attrs, slog.String("sqlstate", pgErr.Code))
	}
	attrs = append(attrs, slog.String("error", redact.Error(err)))

	log.Log(ctx, level, msg, attrs...)
}

// constraintKind names the class of a constraint violation for log output.
func constraintKind(err error) string {
	if store.IsDuplicateError(err) {
		return "duplicate"
	}
	return "invalid_entity"
}
