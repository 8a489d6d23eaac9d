//go:build integration

// Package testdb provides utilities for tests that run against a real
// PostgreSQL database.
//
// Tests obtain a migrated connection with GetTestDBWithT, which skips the
// test when neither DATABASE_URL nor TASK_API_TEST_DB_URL is set, and isolate their writes with WithTx:
//
//	func TestTaskRoundTrip(t *testing.T) {
//	    db := testdb.GetTestDBWithT(t)
//
//	    testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
//	        taskStore := postgres.NewPostgresTaskStore(tx, nil)
//	        // ...
//	    })
//	}
//
// Every transaction is rolled back when the function returns, so tests can
// run in parallel without seeing each other's rows.
package testdb
