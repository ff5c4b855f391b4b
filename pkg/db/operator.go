package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/teams-transport/whdb/pkg/config"
)

// Operator defines the interface for basic database management
// operations. It provides connection lifecycle management and exposes
// the pgxpool.Pool for the lifecycle components (SchemaManager, Loader,
// Migrator, Auditor) to execute their specialized SQL internally.
//
// Design rationale:
// - Keeps interface minimal to avoid bloat with mixed semantics
// - Pool() lets components use batched inserts and transactions directly
// - Schema creation is handled by GORM AutoMigrate via SchemaManager
type Operator interface {
	// Connect establishes a connection pool to the database.
	Connect(context.Context, *config.DatabaseConfig) error

	// Close closes the database connection pool.
	Close() error

	// Pool returns the underlying pgxpool.Pool for lifecycle components
	// to execute specialized SQL operations.
	Pool() *pgxpool.Pool

	// TableExists checks if a table exists in the database.
	TableExists(ctx context.Context, tableName string) (bool, error)

	// HasTables checks if the database has any tables in the public
	// schema. Used to determine if schema creation should prompt for
	// confirmation.
	HasTables(ctx context.Context) (bool, error)

	// DropAllTables drops all tables in the public schema.
	// Used during schema initialization when overwriting existing data.
	DropAllTables(ctx context.Context) error

	// DropTables drops the named tables with CASCADE. The migrator uses
	// it to remove staging tables after a successful run.
	DropTables(ctx context.Context, tables []string) error
}
