package ioload

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/teams-transport/whdb/pkg/errcode"
)

// NotConnectedError creates an error for when a load is attempted
// without a database connection.
func NotConnectedError() error {
	msg := "Load attempted without database connection"

	return &gn.Error{
		Code: errcode.DBNotConnectedError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("not connected to database"),
	}
}

// NoSourcesError creates an error for when the requested source filter
// matches nothing.
func NoSourcesError(requested []string) error {
	msg := `No staging sources match the request

<em>Requested:</em> %v

<em>How to fix:</em>
  1. Use staging table names (stg_companies, stg_stores,
     stg_case_models, stg_cost_estimates, stg_inventory)
  2. Or omit --sources to load everything`

	vars := []any{requested}

	return &gn.Error{
		Code: errcode.LoadSourceNotFoundError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("no sources match request: %v",
			requested),
	}
}

// SourceNotFoundError creates an error for a missing export file.
func SourceNotFoundError(table, path string, err error) error {
	msg := `Export file not found for <em>%s</em>

<em>Expected path:</em> %s

<em>How to fix:</em>
  1. Check --dir points at the export directory
  2. Verify the export contains all five files`

	vars := []any{table, path}

	return &gn.Error{
		Code: errcode.LoadSourceNotFoundError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("export file not found: %w", err),
	}
}

// CSVReadError creates an error for an unreadable export file.
func CSVReadError(path string, err error) error {
	msg := `Cannot read export file

<em>File path:</em> %s

<em>Possible causes:</em>
  - File is not delimiter-separated text
  - File is truncated or corrupted`

	vars := []any{path}

	return &gn.Error{
		Code: errcode.LoadCSVReadError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("failed to read export file: %w", err),
	}
}

// SQLiteReadError creates an error for an unreadable SQLite export.
func SQLiteReadError(path string, err error) error {
	msg := `Cannot read SQLite export

<em>File path:</em> %s

<em>Possible causes:</em>
  - File is not a SQLite database
  - Expected tables or columns are missing`

	vars := []any{path}

	return &gn.Error{
		Code: errcode.LoadSQLiteReadError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("failed to read SQLite export: %w", err),
	}
}

// InsertError creates an error for a failed staging insert.
func InsertError(table string, err error) error {
	msg := "Cannot insert rows into <em>%s</em>"
	vars := []any{table}

	return &gn.Error{
		Code: errcode.LoadInsertError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("failed to insert into %s: %w",
			table, err),
	}
}
