package ioload

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllSources(t *testing.T) {
	srcs := allSources()
	require.Len(t, srcs, 5)

	var tables []string
	for _, src := range srcs {
		tables = append(tables, src.table)
		assert.NotEmpty(t, src.csvFile, "%s needs a CSV file", src.table)
		assert.NotEmpty(t, src.sqlite, "%s needs a SQLite table", src.table)
		assert.NotEmpty(t, src.columns, "%s needs columns", src.table)
	}

	assert.Equal(t, []string{
		"stg_companies", "stg_stores", "stg_case_models",
		"stg_cost_estimates", "stg_inventory",
	}, tables)
}

func TestFilterSources(t *testing.T) {
	tests := []struct {
		name      string
		requested []string
		want      []string
	}{
		{
			name:      "empty request loads everything",
			requested: nil,
			want: []string{
				"stg_companies", "stg_stores", "stg_case_models",
				"stg_cost_estimates", "stg_inventory",
			},
		},
		{
			name:      "staging table names",
			requested: []string{"stg_companies", "stg_inventory"},
			want:      []string{"stg_companies", "stg_inventory"},
		},
		{
			name:      "legacy table names",
			requested: []string{"stores", "cost_estimates"},
			want:      []string{"stg_stores", "stg_cost_estimates"},
		},
		{
			name:      "unknown names match nothing",
			requested: []string{"nope"},
			want:      nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []string
			for _, src := range filterSources(tt.requested) {
				got = append(got, src.table)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}
