package config_test

import (
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/teams-transport/whdb/pkg/config"
)

func TestDirs(t *testing.T) {
	tempHome := t.TempDir()

	tests := []struct {
		msg string
		fn  func(string) string
		res string
	}{
		{
			msg: "config dir",
			fn:  config.ConfigDir,
			res: filepath.Join(tempHome, ".config", "whdb"),
		},
		{
			msg: "log dir",
			fn:  config.LogDir,
			res: filepath.Join(tempHome, ".local", "share", "whdb", "logs"),
		},
		{
			msg: "config file path",
			fn:  config.ConfigFilePath,
			res: filepath.Join(tempHome, ".config", "whdb", "config.yaml"),
		},
	}

	for _, v := range tests {
		res := v.fn(tempHome)
		assert.Equal(t, v.res, res, v.msg)
	}
}

func TestNew(t *testing.T) {
	cfg := config.New()

	t.Run("creates valid default config", func(t *testing.T) {
		require.NotNil(t, cfg)

		// Database defaults
		assert.Equal(t, "localhost", cfg.Database.Host)
		assert.Equal(t, 5432, cfg.Database.Port)
		assert.Equal(t, "postgres", cfg.Database.User)
		assert.Equal(t, "postgres", cfg.Database.Password)
		assert.Equal(t, "whdb", cfg.Database.Database)
		assert.Equal(t, "disable", cfg.Database.SSLMode)
		assert.Equal(t, 5_000, cfg.Database.BatchSize)

		// API defaults
		assert.Equal(t, 8081, cfg.API.Port)

		// Log defaults
		assert.Equal(t, "json", cfg.Log.Format)
		assert.Equal(t, "info", cfg.Log.Level)
		assert.Equal(t, "file", cfg.Log.Destination)

		// JobsNumber defaults to CPU count
		assert.Equal(t, runtime.NumCPU(), cfg.JobsNumber)

		// Import is runtime-only and starts empty
		assert.Empty(t, cfg.Import.Dir)
		assert.Empty(t, cfg.Import.SQLitePath)
		assert.Empty(t, cfg.Import.Sources)
	})
}

func TestOptionDatabaseHost(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "sets valid host",
			input:    "db.example.com",
			expected: "db.example.com",
		},
		{
			name:     "trims whitespace",
			input:    "  db.example.com  ",
			expected: "db.example.com",
		},
		{
			name:     "ignores empty string",
			input:    "",
			expected: "localhost",
		},
		{
			name:     "ignores whitespace-only",
			input:    "   ",
			expected: "localhost",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			opt := config.OptDatabaseHost(tt.input)
			cfg.Update([]config.Option{opt})
			assert.Equal(t, tt.expected, cfg.Database.Host)
		})
	}
}

func TestOptionDatabasePort(t *testing.T) {
	tests := []struct {
		name     string
		input    int
		expected int
	}{
		{
			name:     "sets valid port",
			input:    5433,
			expected: 5433,
		},
		{
			name:     "ignores zero",
			input:    0,
			expected: 5432,
		},
		{
			name:     "ignores negative",
			input:    -100,
			expected: 5432,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			opt := config.OptDatabasePort(tt.input)
			cfg.Update([]config.Option{opt})
			assert.Equal(t, tt.expected, cfg.Database.Port)
		})
	}
}

func TestOptionDatabaseSSLMode(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "sets valid ssl mode - require",
			input:    "require",
			expected: "require",
		},
		{
			name:     "sets valid ssl mode - verify-full",
			input:    "verify-full",
			expected: "verify-full",
		},
		{
			name:     "normalizes to lowercase",
			input:    "REQUIRE",
			expected: "require",
		},
		{
			name:     "ignores invalid value",
			input:    "invalid",
			expected: "disable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			opt := config.OptDatabaseSSLMode(tt.input)
			cfg.Update([]config.Option{opt})
			assert.Equal(t, tt.expected, cfg.Database.SSLMode)
		})
	}
}

func TestOptionLogFormat(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "sets text format",
			input:    "text",
			expected: "text",
		},
		{
			name:     "ignores unknown format",
			input:    "yaml",
			expected: "json",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			opt := config.OptLogFormat(tt.input)
			cfg.Update([]config.Option{opt})
			assert.Equal(t, tt.expected, cfg.Log.Format)
		})
	}
}

func TestOptionAPIPort(t *testing.T) {
	cfg := config.New()
	cfg.Update([]config.Option{config.OptAPIPort(9000)})
	assert.Equal(t, 9000, cfg.API.Port)

	cfg.Update([]config.Option{config.OptAPIPort(0)})
	assert.Equal(t, 9000, cfg.API.Port, "zero port is ignored")
}

func TestOptionImportSources(t *testing.T) {
	cfg := config.New()
	cfg.Update([]config.Option{
		config.OptImportSources([]string{"stg_companies", "stg_stores"}),
	})
	assert.Equal(t, []string{"stg_companies", "stg_stores"},
		cfg.Import.Sources)

	cfg.Update([]config.Option{config.OptImportSources(nil)})
	assert.Equal(t, []string{"stg_companies", "stg_stores"},
		cfg.Import.Sources, "empty slice is ignored")
}

func TestToOptionsRoundTrip(t *testing.T) {
	cfg := config.New()
	cfg.Update([]config.Option{
		config.OptDatabaseHost("db.internal"),
		config.OptDatabaseBatchSize(1_000),
		config.OptAPIPort(9000),
		config.OptLogLevel("debug"),
		config.OptImportDir("/tmp/export"),
		config.OptHomeDir("/home/test"),
	})

	clone := config.New()
	clone.Update(cfg.ToOptions())

	// Persistent fields survive the round trip.
	assert.Equal(t, "db.internal", clone.Database.Host)
	assert.Equal(t, 1_000, clone.Database.BatchSize)
	assert.Equal(t, 9000, clone.API.Port)
	assert.Equal(t, "debug", clone.Log.Level)

	// Runtime-only fields do not.
	assert.Empty(t, clone.Import.Dir)
	assert.Empty(t, clone.HomeDir)
}
