// Package iotesting provides shared test utilities for integration
// tests. This is an internal package for test infrastructure only.
package iotesting

import (
	"os"
	"strconv"

	"github.com/teams-transport/whdb/pkg/config"
)

const (
	// TestDatabaseName is the database name used for all integration
	// tests. Tests never run against the production database.
	TestDatabaseName = "whdb_test"
)

// GetTestConfig returns a configuration suitable for integration tests:
// the defaults, with connection details taken from WHDB_DATABASE_* env
// vars when set, and the database name always forced to
// TestDatabaseName.
//
// Usage:
//
//	func TestSomething(t *testing.T) {
//	    if testing.Short() {
//	        t.Skip("Skipping integration test")
//	    }
//	    cfg := iotesting.GetTestConfig()
//	    // ... use cfg for database operations
//	}
func GetTestConfig() *config.Config {
	cfg := config.New()

	var opts []config.Option
	if v := os.Getenv("WHDB_DATABASE_HOST"); v != "" {
		opts = append(opts, config.OptDatabaseHost(v))
	}
	if v := os.Getenv("WHDB_DATABASE_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			opts = append(opts, config.OptDatabasePort(port))
		}
	}
	if v := os.Getenv("WHDB_DATABASE_USER"); v != "" {
		opts = append(opts, config.OptDatabaseUser(v))
	}
	if v := os.Getenv("WHDB_DATABASE_PASSWORD"); v != "" {
		opts = append(opts, config.OptDatabasePassword(v))
	}
	cfg.Update(opts)

	cfg.Database.Database = TestDatabaseName
	return cfg
}

// GetTestDatabaseConfig returns only the database configuration.
func GetTestDatabaseConfig() *config.DatabaseConfig {
	cfg := GetTestConfig()
	return &cfg.Database
}
