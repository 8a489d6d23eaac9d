package main

import (
	"fmt"
	"log/slog"

	"github.com/phrazzld/task-api/internal/config"
	"github.com/phrazzld/task-api/internal/redact"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// rootOptions holds flags that only steer where configuration is read from.
type rootOptions struct {
	configFile string
}

// addConfigFlags registers the flags that override configuration values.
// Their names must match the bindings in package config.
func addConfigFlags(flags *pflag.FlagSet) {
	flags.String("addr", "", "address to listen on (host:port)")
	flags.String("log-level", "", "log level: debug, info, warn or error")
	flags.String("database-url", "", "database URL (postgres://, sqlite:// or file:)")
	flags.Int("max-conns", 0, "maximum number of open database connections")
}

// loadAppConfig loads the application configuration from flags, environment
// variables, the .env file and an optional config file.
func loadAppConfig(cmd *cobra.Command, opts *rootOptions) (*config.Config, error) {
	cfg, err := config.Load(config.Options{
		ConfigFile: opts.configFile,
		DotEnvFile: config.DefaultDotEnvFile,
		Flags:      cmd.Flags(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}

// logConfig records the effective configuration without exposing credentials.
func logConfig(logger *slog.Logger, cfg *config.Config) {
	logger.Info("Server configuration loaded",
		"address", cfg.Server.Address,
		"log_level", cfg.Server.LogLevel,
		"shutdown_timeout_seconds", cfg.Server.ShutdownTimeoutSeconds)

	logger.Debug("Database configuration",
		"url", redact.URL(cfg.Database.URL),
		"max_conns", cfg.Database.MaxConns,
		"connect_timeout_seconds", cfg.Database.ConnectTimeoutSeconds)
}
