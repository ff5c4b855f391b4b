package schema_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/teams-transport/whdb/pkg/schema"
)

func TestAllModelsOrder(t *testing.T) {
	models := schema.AllModels()
	require.Len(t, models, 7)

	type tabler interface{ TableName() string }

	var tables []string
	for _, m := range models {
		tb, ok := m.(tabler)
		require.True(t, ok, "%T must declare its table name", m)
		tables = append(tables, tb.TableName())
	}

	// referenced tables come before referencing ones
	assert.Equal(t, []string{
		"addresses", "companies", "stores", "case_models",
		"quotes", "job_cost_estimates", "inventory_lines",
	}, tables)
}

func TestStagingTables(t *testing.T) {
	tables := schema.StagingTables()
	require.Len(t, tables, 5)

	for _, st := range tables {
		assert.True(t, strings.HasPrefix(st.Name, "stg_"),
			"staging tables use the stg_ prefix: %s", st.Name)
		assert.Contains(t, st.DDL, "CREATE TABLE IF NOT EXISTS "+st.Name,
			"DDL must be idempotent")
		assert.Contains(t, st.DDL, "batch_id",
			"every staging table carries the load batch id")
	}
}

func TestStagingTableNames(t *testing.T) {
	names := schema.StagingTableNames()
	assert.Equal(t, []string{
		"stg_companies", "stg_stores", "stg_case_models",
		"stg_cost_estimates", "stg_inventory",
	}, names)
}
