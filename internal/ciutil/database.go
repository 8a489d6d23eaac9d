package ciutil

import (
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/phrazzld/task-api/internal/redact"
)

// Connection defaults for CI service containers.
const (
	StandardCIUser     = "postgres"
	StandardCIPassword = "postgres"
	StandardCIPort     = "5432"
	StandardCIDatabase = "task_api_test"
	StandardCIOptions  = "sslmode=disable"
)

// GetTestDatabaseURL returns the database URL for integration tests, or an
// empty string when none is configured. Under CI the URL is standardised.
func GetTestDatabaseURL(logger *slog.Logger) string {
	dbURL := GetEnvWithFallbacks([]string{EnvDatabaseURL, EnvTestDBURL}, "", logger)
	if dbURL == "" || !IsCI() {
		return dbURL
	}

	standardized, err := StandardizeDatabaseURL(dbURL)
	if err != nil {
		if logger != nil {
			logger.Warn("failed to standardize database URL",
				slog.String("url", redact.URL(dbURL)),
				slog.String("error", redact.Error(err)),
			)
		}
		return dbURL
	}

	if standardized != dbURL && logger != nil {
		logger.Info("standardized database URL for CI",
			slog.String("original", redact.URL(dbURL)),
			slog.String("standardized", redact.URL(standardized)),
		)
	}
	return standardized
}

// StandardizeDatabaseURL rewrites a postgres URL to the CI credentials and
// fills in the port, database and options when they are missing.
// Non-postgres URLs are returned unchanged.
func StandardizeDatabaseURL(dbURL string) (string, error) {
	parsed, err := url.Parse(dbURL)
	if err != nil {
		return "", fmt.Errorf("failed to parse database URL: %w", err)
	}

	if parsed.Scheme != "postgres" && parsed.Scheme != "postgresql" {
		return dbURL, nil
	}

	out := *parsed
	out.User = url.UserPassword(StandardCIUser, StandardCIPassword)

	host := parsed.Hostname()
	if parsed.Port() == "" && (host == "" || host == "localhost" || host == "127.0.0.1") {
		if host == "" {
			host = "localhost"
		}
		out.Host = host + ":" + StandardCIPort
	}

	if strings.TrimPrefix(parsed.Path, "/") == "" {
		out.Path = "/" + StandardCIDatabase
	}

	if parsed.RawQuery == "" {
		out.RawQuery = StandardCIOptions
	}

	return out.String(), nil
}
