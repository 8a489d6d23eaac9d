// Package postgres provides the PostgreSQL implementation of the store.TaskStore
// interface. It runs one statement per operation on the pgx-backed
// database/sql pool and maps SQLSTATE codes onto store error classifications.
package postgres
