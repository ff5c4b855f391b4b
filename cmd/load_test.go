package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestGetLoadCmd_Exists verifies getLoadCmd returns
// a valid command.
func TestGetLoadCmd_Exists(t *testing.T) {
	cmd := getLoadCmd()
	require.NotNil(t, cmd, "Load command should exist")
	assert.Equal(t, "load", cmd.Use,
		"Command name should be load")
}

// TestGetLoadCmd_Flags verifies the source flags exist.
func TestGetLoadCmd_Flags(t *testing.T) {
	cmd := getLoadCmd()

	dirFlag := cmd.Flags().Lookup("dir")
	require.NotNil(t, dirFlag, "--dir flag should exist")
	assert.Equal(t, "d", dirFlag.Shorthand)

	sqliteFlag := cmd.Flags().Lookup("sqlite")
	require.NotNil(t, sqliteFlag, "--sqlite flag should exist")
	assert.Equal(t, "s", sqliteFlag.Shorthand)

	sourcesFlag := cmd.Flags().Lookup("sources")
	require.NotNil(t, sourcesFlag, "--sources flag should exist")
}

// TestGetLoadCmd_LongDescription verifies long
// description.
func TestGetLoadCmd_LongDescription(t *testing.T) {
	cmd := getLoadCmd()

	assert.Contains(t, cmd.Long, "staging",
		"Long description should mention staging")
	assert.Contains(t, cmd.Long, "SQLite",
		"Long description should mention SQLite")
	assert.Contains(t, cmd.Long, "CSV",
		"Long description should mention CSV")
}
