package iodb_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/teams-transport/whdb/internal/iodb"
	"github.com/teams-transport/whdb/internal/iotesting"
)

// Note: These are integration tests that require PostgreSQL.
//
// Connection details come from WHDB_DATABASE_* environment variables,
// falling back to the defaults (postgres/postgres@localhost:5432).
// The database name is always forced to "whdb_test" for safety.
//
// Run PostgreSQL locally, for example:
//   docker run -d --name whdb-test -e POSTGRES_PASSWORD=postgres \
//     -p 5432:5432 postgres:16
//
// Skip these tests with:
//   go test -short

func TestPgxOperator_Connect(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	op := iodb.NewPgxOperator()
	ctx := context.Background()

	err := op.Connect(ctx, iotesting.GetTestDatabaseConfig())
	require.NoError(t, err, "Connect should succeed with valid config")

	defer op.Close()

	exists, err := op.TableExists(ctx, "nonexistent_table")
	assert.NoError(t, err, "Should be able to query after Connect")
	assert.False(t, exists)
}

func TestPgxOperator_Connect_InvalidHost(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	op := iodb.NewPgxOperator()
	ctx := context.Background()

	cfg := iotesting.GetTestDatabaseConfig()
	cfg.Host = "invalid-host-that-does-not-exist"

	err := op.Connect(ctx, cfg)
	assert.Error(t, err, "Connect should fail with invalid host")
}

func TestPgxOperator_NotConnected(t *testing.T) {
	op := iodb.NewPgxOperator()
	ctx := context.Background()

	_, err := op.TableExists(ctx, "companies")
	assert.Error(t, err, "queries before Connect should fail")

	assert.Nil(t, op.Pool(), "pool is nil before Connect")
}

func TestPgxOperator_DropTables(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	op := iodb.NewPgxOperator()
	ctx := context.Background()

	err := op.Connect(ctx, iotesting.GetTestDatabaseConfig())
	require.NoError(t, err)
	defer op.Close()

	_, err = op.Pool().Exec(ctx,
		"CREATE TABLE IF NOT EXISTS whdb_droptest (id int)")
	require.NoError(t, err)

	err = op.DropTables(ctx, []string{"whdb_droptest"})
	require.NoError(t, err)

	exists, err := op.TableExists(ctx, "whdb_droptest")
	require.NoError(t, err)
	assert.False(t, exists)

	// dropping a missing table is a no-op
	err = op.DropTables(ctx, []string{"whdb_droptest"})
	assert.NoError(t, err)
}
