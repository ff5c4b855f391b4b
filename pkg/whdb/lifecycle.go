// Package whdb defines the lifecycle interfaces of the warehouse
// database tool. Implementations live in internal/io* packages; the
// interfaces keep cmd wired to behavior, not to I/O details.
package whdb

import (
	"context"
)

// SchemaManager creates the normalized schema and the staging tables.
// Schema creation is idempotent - safe to run multiple times.
type SchemaManager interface {
	// Create creates the normalized tables with GORM AutoMigrate, then
	// installs what AutoMigrate cannot express: the generated area
	// columns on case_models and the gable mutual-exclusion check on
	// inventory_lines. Finally it creates the staging tables.
	Create(ctx context.Context) error
}

// Loader imports the legacy export into the staging tables.
// No validation happens here beyond column-type coercion.
type Loader interface {
	// Load reads the configured sources (CSV directory or SQLite
	// export) and bulk-inserts rows into staging. Returns per-source
	// row counts keyed by staging table name.
	Load(ctx context.Context) (map[string]int, error)
}

// Migrator runs the staging-to-normalized pipeline: an ordered list of
// steps, each committing independently. A failed step halts the run and
// leaves prior commits intact.
type Migrator interface {
	// Migrate executes the pipeline in declared order and drops the
	// staging tables after the last step succeeds.
	Migrate(ctx context.Context) error
}

// AuditReport is the output of the post-migration consistency audit.
type AuditReport struct {
	// RowCounts maps each normalized table name to its row count.
	RowCounts map[string]int64

	// UnresolvedCaseModels counts inventory lines whose catalog lookup
	// failed even though the source carried a non-empty model name.
	UnresolvedCaseModels int64
}

// Auditor produces the read-only consistency report.
type Auditor interface {
	Audit(ctx context.Context) (*AuditReport, error)
}
