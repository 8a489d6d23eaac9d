// Package main implements the entry point for the task API server, a small
// HTTP CRUD service over a single tasks table.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/phrazzld/task-api/internal/redact"
)

// main is the entry point for the task-api server.
// It parses the command line and exits non-zero when startup or a subcommand fails.
func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", redact.Error(err))
		os.Exit(1)
	}
}
