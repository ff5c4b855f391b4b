// Package config provides configuration management for whdb.
//
// This package has no I/O dependencies (no file operations, no network
// calls). Validation functions may write user-facing warnings via
// gn.Warn().
//
// # Configuration Sources
//
// Precedence (highest to lowest): CLI flags > env vars > config.yaml >
// defaults
//
// # Design Principles
//
// - Default config (from New()) is always valid - no validation needed
// - All mutations go through Option functions - the only way to modify Config
// - Invalid options are rejected with gn.Warn() - config remains valid
// - ToOptions() converts persistent fields (those in config.yaml)
// - Environment variables match ToOptions() fields exactly
//
// # Persistent vs Runtime Fields
//
// Persistent fields (in ToOptions, config.yaml, and env vars):
//   - Database: host, port, user, password, database, ssl_mode, batch_size
//   - Log: level, format, destination
//   - API: port
//   - General: jobs_number
//
// Runtime-only fields (CLI flags only):
//   - Import.Dir, Import.SQLitePath, Import.Sources (per-command)
//   - HomeDir (set once at startup)
//
// # Environment Variables
//
// Use WHDB_ prefix with underscores for nesting:
//
//	WHDB_DATABASE_HOST=localhost
//	WHDB_DATABASE_PORT=5432
//	WHDB_LOG_LEVEL=info
//	WHDB_API_PORT=8081
package config

import (
	"runtime"
)

// Config represents the complete whdb configuration.
type Config struct {
	// Database contains PostgreSQL connection settings.
	Database DatabaseConfig `mapstructure:"database" yaml:"database"`

	// Import contains settings specific to the load command.
	Import ImportConfig `mapstructure:"import" yaml:"import"`

	// API contains settings for the read-only HTTP endpoint.
	API APIConfig `mapstructure:"api" yaml:"api"`

	Log LogConfig `mapstructure:"log" yaml:"log"`

	// JobsNumber is the number of concurrent workers for parallel
	// operations (staging sources load in parallel).
	// Default value is set according to the number of available threads.
	JobsNumber int `mapstructure:"jobs_number" yaml:"jobs_number"`

	// HomeDir determines where config, cache and logs directories reside.
	// It must be set by CLI during init, there is no default value for it.
	HomeDir string
}

// DatabaseConfig contains PostgreSQL connection parameters.
type DatabaseConfig struct {
	// Host is the PostgreSQL server hostname or IP address.
	Host string `mapstructure:"host" yaml:"host"`

	// Port is the PostgreSQL server port number.
	Port int `mapstructure:"port" yaml:"port"`

	// User is the PostgreSQL database username.
	User string `mapstructure:"user" yaml:"user"`

	// Password is the PostgreSQL database password.
	Password string `mapstructure:"password" yaml:"password"`

	// Database is the PostgreSQL database name to connect to.
	Database string `mapstructure:"database" yaml:"database"`

	// SSLMode specifies the SSL connection mode.
	// Valid values: "disable", "require", "verify-ca", "verify-full"
	SSLMode string `mapstructure:"ssl_mode" yaml:"ssl_mode"`

	// BatchSize defines the number of records per batch for bulk inserts
	// during load and migrate. Larger batches are faster but use more
	// memory.
	BatchSize int `mapstructure:"batch_size" yaml:"batch_size"`
}

// ImportConfig contains settings specific to the load command.
type ImportConfig struct {
	// Dir is the directory that holds the delimiter-separated exports
	// (companies.csv, stores.csv, case_models.csv, cost_estimates.csv,
	// inventory.csv). Runtime-only field.
	Dir string `mapstructure:"dir" yaml:"dir"`

	// SQLitePath points to a SQLite export of the legacy desktop
	// database. When set, staging tables are loaded from it instead of
	// CSV files. Runtime-only field.
	SQLitePath string `mapstructure:"sqlite_path" yaml:"sqlite_path"`

	// Sources restricts the load to the named staging sources.
	// Empty slice means load all five sources. Runtime-only field.
	Sources []string `mapstructure:"sources" yaml:"sources"`
}

// APIConfig contains settings for the read-only HTTP endpoint.
type APIConfig struct {
	// Port is the TCP port the API server listens on.
	Port int `mapstructure:"port" yaml:"port"`
}

// LogConfig provides typical settings for application logs.
type LogConfig struct {
	// Format can be 'json' or 'text'.
	Format string `mapstructure:"format"      yaml:"format"`
	// Level of logging -- 'error', 'warn', 'info', 'debug'
	Level string `mapstructure:"level"       yaml:"level"`
	// Destination can be a log file (to default place), STDERR or STDOUT
	Destination string `mapstructure:"destination" yaml:"destination"`
}

// New creates a Config with sensible default values.
// The returned config is always valid and ready to use.
// Default values can be overridden using Option functions via Update().
func New() *Config {
	res := &Config{
		Database: DatabaseConfig{
			Host:      "localhost",
			Port:      5432,
			User:      "postgres",
			Password:  "postgres",
			Database:  "whdb",
			SSLMode:   "disable",
			BatchSize: 5_000,
		},
		API: APIConfig{
			Port: 8081,
		},
		Log: LogConfig{
			Format: "json",
			Level:  "info",
			// for now file is rewritten every time the log starts
			Destination: "file",
		},
		JobsNumber: runtime.NumCPU(),
	}

	return res
}
