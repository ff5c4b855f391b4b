package ioschema_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/teams-transport/whdb/internal/iodb"
	"github.com/teams-transport/whdb/internal/ioschema"
	"github.com/teams-transport/whdb/internal/iotesting"
	"github.com/teams-transport/whdb/pkg/schema"
)

// Integration tests; they require PostgreSQL (see internal/iodb for
// connection configuration) and are skipped in -short mode.

func TestCreate(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	op := iodb.NewPgxOperator()
	ctx := context.Background()

	err := op.Connect(ctx, iotesting.GetTestDatabaseConfig())
	require.NoError(t, err)
	defer op.Close()

	require.NoError(t, op.DropAllTables(ctx))

	sm := ioschema.NewManager(op)
	require.NoError(t, sm.Create(ctx))

	tables := []string{
		"addresses", "companies", "stores", "case_models",
		"quotes", "job_cost_estimates", "inventory_lines",
	}
	tables = append(tables, schema.StagingTableNames()...)
	for _, table := range tables {
		exists, err := op.TableExists(ctx, table)
		require.NoError(t, err)
		assert.True(t, exists, "table %s should exist", table)
	}

	// create is idempotent
	require.NoError(t, sm.Create(ctx))
}

func TestCreateGeneratedColumns(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	op := iodb.NewPgxOperator()
	ctx := context.Background()

	err := op.Connect(ctx, iotesting.GetTestDatabaseConfig())
	require.NoError(t, err)
	defer op.Close()

	require.NoError(t, op.DropAllTables(ctx))
	require.NoError(t, ioschema.NewManager(op).Create(ctx))

	pool := op.Pool()

	_, err = pool.Exec(ctx,
		`INSERT INTO case_models
  (id, name, width, depth, declared_warehouse_area)
  VALUES (1, 'CM-2418', 24, 18, 3),
         (2, 'CM-3614', 36, 14, 3.5),
         (3, 'CM-TIE', 0.72, 499.99, 2.5)`)
	require.NoError(t, err)

	var area string
	var rounded int
	err = pool.QueryRow(ctx,
		"SELECT area::text, rounded_area FROM case_models WHERE id = 1",
	).Scan(&area, &rounded)
	require.NoError(t, err)
	assert.Equal(t, "3.0000", area)
	assert.Equal(t, 3, rounded)

	// half square foot rounds away from zero
	err = pool.QueryRow(ctx,
		"SELECT area::text, rounded_area FROM case_models WHERE id = 2",
	).Scan(&area, &rounded)
	require.NoError(t, err)
	assert.Equal(t, "3.5000", area)
	assert.Equal(t, 4, rounded)

	// rounded_area rounds the 4-digit area, not the raw quotient:
	// 0.72 * 499.99 / 144 = 2.49995 exactly, so area lands on 2.5000
	// and the integer value must follow it up to 3.
	err = pool.QueryRow(ctx,
		"SELECT area::text, rounded_area FROM case_models WHERE id = 3",
	).Scan(&area, &rounded)
	require.NoError(t, err)
	assert.Equal(t, "2.5000", area)
	assert.Equal(t, 3, rounded)

	// generated columns recompute on update
	_, err = pool.Exec(ctx,
		"UPDATE case_models SET width = 48 WHERE id = 1")
	require.NoError(t, err)
	err = pool.QueryRow(ctx,
		"SELECT rounded_area FROM case_models WHERE id = 1",
	).Scan(&rounded)
	require.NoError(t, err)
	assert.Equal(t, 6, rounded)
}

func TestCreateUniqueAddressTuple(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	op := iodb.NewPgxOperator()
	ctx := context.Background()

	err := op.Connect(ctx, iotesting.GetTestDatabaseConfig())
	require.NoError(t, err)
	defer op.Close()

	require.NoError(t, op.DropAllTables(ctx))
	require.NoError(t, ioschema.NewManager(op).Create(ctx))

	pool := op.Pool()

	q := `INSERT INTO addresses (street, city, province, postal_code)
  VALUES ($1, $2, $3, $4)`
	_, err = pool.Exec(ctx, q, "100 Main St", "Kitchener", "ON", "N2N1A1")
	require.NoError(t, err)

	_, err = pool.Exec(ctx, q, "100 Main St", "Kitchener", "ON", "N2N1A1")
	assert.Error(t, err, "duplicate component tuple must be rejected")
}
