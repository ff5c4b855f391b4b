package ioload

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func companiesSource(t *testing.T) source {
	t.Helper()
	for _, src := range allSources() {
		if src.table == "stg_companies" {
			return src
		}
	}
	t.Fatal("companies source missing")
	return source{}
}

func writeExport(t *testing.T, dir, name, content string) {
	t.Helper()
	err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644)
	require.NoError(t, err)
}

func TestReadCSV(t *testing.T) {
	dir := t.TempDir()
	writeExport(t, dir, "companies.csv",
		`company_id,name,email,street,city,province,postal_code
1,Acme Retail,info@acme.test,100 Main St,Kitchener,ON,N2N 1A1
2,Budget Goods,,5 King St,Waterloo,ON,N2L 0A0
`)

	records, err := readCSV(dir, companiesSource(t))
	require.NoError(t, err)
	require.Len(t, records, 2, "header row is skipped")

	first := records[0]
	require.NotNil(t, first[0])
	assert.Equal(t, "1", *first[0])
	require.NotNil(t, first[1])
	assert.Equal(t, "Acme Retail", *first[1])

	second := records[1]
	assert.Nil(t, second[2], "empty field becomes NULL")
}

func TestReadCSVSkipsMalformedRecords(t *testing.T) {
	dir := t.TempDir()
	writeExport(t, dir, "companies.csv",
		`company_id,name,email,street,city,province,postal_code
1,Acme Retail,info@acme.test,100 Main St,Kitchener,ON,N2N 1A1
2,Short Row
3,Budget Goods,,5 King St,Waterloo,ON,N2L 0A0
`)

	records, err := readCSV(dir, companiesSource(t))
	require.NoError(t, err)
	assert.Len(t, records, 2, "wrong field count is skipped")
}

func TestReadCSVMissingFile(t *testing.T) {
	dir := t.TempDir()

	_, err := readCSV(dir, companiesSource(t))
	require.Error(t, err)
}

func TestCoerceRecord(t *testing.T) {
	record := []string{"1", "", "  ", "value"}
	res := coerceRecord(record)

	require.Len(t, res, 4)
	require.NotNil(t, res[0])
	assert.Equal(t, "1", *res[0])
	assert.Nil(t, res[1], "empty is NULL")
	assert.Nil(t, res[2], "whitespace-only is NULL")
	require.NotNil(t, res[3])
	assert.Equal(t, "value", *res[3])
}
