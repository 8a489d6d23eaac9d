// Package ciutil detects CI environments and resolves the database URL used
// by integration tests.
//
// Integration tests read DATABASE_URL first and TASK_API_TEST_DB_URL second.
// When running under CI, a postgres URL is normalised to the standard
// postgres:postgres credentials and the task_api_test database so that CI
// service containers work without per-job configuration.
package ciutil
