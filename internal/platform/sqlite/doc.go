// Package sqlite provides an embedded SQLite implementation of the
// store.TaskStore interface on modernc.org/sqlite. It backs local development
// and the fast end-to-end tests; production deployments use package postgres.
package sqlite
