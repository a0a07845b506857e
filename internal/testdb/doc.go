// Package testdb provides helpers for tests that need a real PostgreSQL
// database. Tests using it are skipped unless DATABASE_URL (or
// TASKBOARD_TEST_DB_URL) points at a reachable server.
//
// Each test should run inside WithTx so its writes are rolled back.
package testdb
