package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/phrazzld/task-api/internal/migrate"
	"github.com/phrazzld/task-api/internal/platform/logger"
	"github.com/phrazzld/task-api/internal/redact"
	"github.com/spf13/cobra"
)

// newRootCmd builds the command tree. Running the root command without a
// subcommand starts the server.
func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "task-api",
		Short:         "Task API - a minimal HTTP service for managing tasks",
		Long:          `Task API exposes create, read, update and delete operations on tasks stored in PostgreSQL or SQLite.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, opts)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.configFile, "config", "", "path to a config file (yaml, json or toml)")
	addConfigFlags(cmd.PersistentFlags())

	cmd.AddCommand(newServeCmd(opts))
	cmd.AddCommand(newMigrateCmd(opts))

	return cmd
}

// newServeCmd returns the serve command
func newServeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, opts)
		},
	}
}

// runServe loads configuration, connects to the database and serves HTTP
// until SIGINT or SIGTERM.
func runServe(cmd *cobra.Command, opts *rootOptions) error {
	cfg, err := loadAppConfig(cmd, opts)
	if err != nil {
		return err
	}

	log, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}
	logConfig(log, cfg)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, backend, err := setupAppDatabase(ctx, cfg.Database, log)
	if err != nil {
		log.Error("Failed to connect to database", "error", redact.Error(err))
		return err
	}

	app := newApplication(cfg, log, db, newTaskStore(db, backend, log))
	defer app.cleanup()

	return app.Run(ctx)
}

// newMigrateCmd returns the migrate parent command
func newMigrateCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the bundled database schema",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withMigrationDB(cmd, opts, func(env migrationEnv) error {
				return migrate.Up(cmd.Context(), env.db, env.backend.dialect, env.logger)
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Roll back the most recent migration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withMigrationDB(cmd, opts, func(env migrationEnv) error {
				return migrate.Down(cmd.Context(), env.db, env.backend.dialect, env.logger)
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show which migrations have been applied",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withMigrationDB(cmd, opts, func(env migrationEnv) error {
				statuses, err := migrate.Status(cmd.Context(), env.db, env.backend.dialect)
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				for _, status := range statuses {
					appliedAt := "-"
					if !status.AppliedAt.IsZero() {
						appliedAt = status.AppliedAt.UTC().Format("2006-01-02 15:04:05")
					}
					source := ""
					if status.Source != nil {
						source = status.Source.Path
					}
					fmt.Fprintf(out, "%-8s %-19s %s\n", status.State, appliedAt, source)
				}
				return nil
			})
		},
	})

	return cmd
}
