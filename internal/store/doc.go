// Package store defines the persistence contract for tasks. The interfaces
// here abstract the underlying database so that handlers can be exercised
// against any implementation, including an in-memory one in tests.
package store
