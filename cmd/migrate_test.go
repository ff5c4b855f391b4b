package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestGetMigrateCmd_Exists verifies getMigrateCmd returns
// a valid command.
func TestGetMigrateCmd_Exists(t *testing.T) {
	cmd := getMigrateCmd()
	require.NotNil(t, cmd, "Migrate command should exist")
	assert.Equal(t, "migrate", cmd.Use,
		"Command name should be migrate")
}

// TestGetMigrateCmd_LongDescription verifies the pipeline
// is documented.
func TestGetMigrateCmd_LongDescription(t *testing.T) {
	cmd := getMigrateCmd()

	assert.Contains(t, cmd.Long, "Deduplicate addresses",
		"Long description should list the address step")
	assert.Contains(t, cmd.Long, "inventory lines",
		"Long description should list the linking step")
	assert.Contains(t, cmd.Long, "staging",
		"Long description should mention staging cleanup")
}

// TestGetMigrateCmd_HasRunE verifies run function is set.
func TestGetMigrateCmd_HasRunE(t *testing.T) {
	cmd := getMigrateCmd()

	assert.NotNil(t, cmd.RunE,
		"RunE should be set")
}

// TestGetAuditCmd_Exists verifies getAuditCmd returns
// a valid command.
func TestGetAuditCmd_Exists(t *testing.T) {
	cmd := getAuditCmd()
	require.NotNil(t, cmd, "Audit command should exist")
	assert.Equal(t, "audit", cmd.Use,
		"Command name should be audit")
	assert.NotNil(t, cmd.RunE, "RunE should be set")
}

// TestGetServeCmd_Exists verifies getServeCmd returns
// a valid command with a port flag.
func TestGetServeCmd_Exists(t *testing.T) {
	cmd := getServeCmd()
	require.NotNil(t, cmd, "Serve command should exist")
	assert.Equal(t, "serve", cmd.Use,
		"Command name should be serve")

	portFlag := cmd.Flags().Lookup("port")
	require.NotNil(t, portFlag, "--port flag should exist")
	assert.Equal(t, "p", portFlag.Shorthand)
}
