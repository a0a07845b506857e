package testdb

import "os"

// databaseURLEnvVars are checked in order.
var databaseURLEnvVars = []string{"TASKBOARD_TEST_DB_URL", "DATABASE_URL", "TASKBOARD_DATABASE_URL"}

// GetTestDatabaseURL returns the first configured database URL, or "".
func GetTestDatabaseURL() string {
	for _, name := range databaseURLEnvVars {
		if v := os.Getenv(name); v != "" {
			return v
		}
	}
	return ""
}

// IsIntegrationTestEnvironment reports whether a test database is configured.
func IsIntegrationTestEnvironment() bool {
	return GetTestDatabaseURL() != ""
}

// ShouldSkipDatabaseTest is the inverse of IsIntegrationTestEnvironment.
func ShouldSkipDatabaseTest() bool {
	return !IsIntegrationTestEnvironment()
}
