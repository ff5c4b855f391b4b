package iomigrate

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/teams-transport/whdb/pkg/errcode"
)

// NotConnectedError creates an error for when a migration is attempted
// without a database connection.
func NotConnectedError() error {
	msg := "Migration attempted without database connection"

	return &gn.Error{
		Code: errcode.DBNotConnectedError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("not connected to database"),
	}
}

// StagingMissingError creates an error for when the staging tables are
// absent, usually because load was never run or a previous migration
// already dropped them.
func StagingMissingError() error {
	msg := `Staging tables are missing

<em>Possible causes:</em>
  - <em>whdb load</em> was not run yet
  - A previous migration already completed and dropped staging

<em>How to fix:</em>
  1. Run <em>whdb load</em> to stage the legacy export
  2. Then run <em>whdb migrate</em> again`

	return &gn.Error{
		Code: errcode.MigrateStagingMissingError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("staging tables not found"),
	}
}

// StepError creates an error for a pipeline step interrupted from the
// outside.
func StepError(step string, err error) error {
	msg := "Migration stopped during <em>%s</em>"
	vars := []any{step}

	return &gn.Error{
		Code: errcode.MigrateStepError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("step %s interrupted: %w", step, err),
	}
}

// DedupError creates an error for a failed address deduplication.
func DedupError(err error) error {
	msg := "Cannot deduplicate addresses"

	return &gn.Error{
		Code: errcode.MigrateDedupError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("address deduplication failed: %w", err),
	}
}

// MaterializeError creates an error for a failed entity
// materialization. Duplicate primary keys land here on a re-run
// against populated tables.
func MaterializeError(table string, err error) error {
	msg := `Cannot materialize <em>%s</em>

<em>Note:</em> re-running a migration against populated tables fails on
duplicate keys. Recreate the database with <em>whdb create --force</em>
and load again to start over.`

	vars := []any{table}

	return &gn.Error{
		Code: errcode.MigrateMaterializeError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("failed to materialize %s: %w", table, err),
	}
}

// LinkError creates an error for a failed inventory linking pass.
func LinkError(err error) error {
	msg := "Cannot link inventory lines"

	return &gn.Error{
		Code: errcode.MigrateLinkError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("inventory linking failed: %w", err),
	}
}

// DropStagingError creates an error for a failed staging cleanup.
func DropStagingError(err error) error {
	msg := "Migration succeeded but staging tables were not dropped"

	return &gn.Error{
		Code: errcode.MigrateDropStagingError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("failed to drop staging tables: %w", err),
	}
}
