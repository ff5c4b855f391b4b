// Package ioschema implements the SchemaManager interface for database
// schema management. This is an impure I/O package that wraps GORM
// AutoMigrate and adds the constraints AutoMigrate cannot express.
package ioschema

import (
	"context"

	"github.com/jackc/pgx/v5/stdlib"
	"github.com/teams-transport/whdb/pkg/db"
	"github.com/teams-transport/whdb/pkg/schema"
	"github.com/teams-transport/whdb/pkg/whdb"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// manager implements the whdb.SchemaManager interface using GORM
// AutoMigrate plus raw DDL for generated columns, check constraints and
// the staging tables.
type manager struct {
	operator db.Operator
}

// NewManager creates a new SchemaManager.
func NewManager(op db.Operator) whdb.SchemaManager {
	return &manager{operator: op}
}

// Create creates the normalized schema using GORM AutoMigrate, then
// installs the derived-area columns, the gable mutual-exclusion check
// and the staging tables.
func (m *manager) Create(ctx context.Context) error {
	pool := m.operator.Pool()
	if pool == nil {
		return NotConnectedError()
	}

	sqlDB := stdlib.OpenDBFromPool(pool)

	gormDB, err := gorm.Open(
		postgres.New(postgres.Config{Conn: sqlDB}),
		&gorm.Config{},
	)
	if err != nil {
		return GORMConnectionError(err)
	}

	if err := schema.Migrate(gormDB); err != nil {
		return CreateSchemaError(err)
	}

	if err := m.addGeneratedColumns(ctx); err != nil {
		return err
	}

	if err := m.addCheckConstraints(ctx); err != nil {
		return err
	}

	if err := m.createStagingTables(ctx); err != nil {
		return err
	}

	return nil
}

// addGeneratedColumns installs the derived square-footage columns on
// case_models. STORED generated columns keep the values consistent with
// width and depth under any update path; numeric arithmetic matches
// pkg/area: rounded_area rounds the 4-digit area, not the raw
// quotient, half away from zero.
func (m *manager) addGeneratedColumns(ctx context.Context) error {
	pool := m.operator.Pool()
	if pool == nil {
		return NotConnectedError()
	}

	stmts := []string{
		`ALTER TABLE case_models
			ADD COLUMN IF NOT EXISTS area numeric(12,4)
			GENERATED ALWAYS AS (round(width * depth / 144.0, 4)) STORED`,
		`ALTER TABLE case_models
			ADD COLUMN IF NOT EXISTS rounded_area integer
			GENERATED ALWAYS AS (
				round(round(width * depth / 144.0, 4))::integer
			) STORED`,
	}

	for _, q := range stmts {
		if _, err := pool.Exec(ctx, q); err != nil {
			return ConstraintError("case_models", "generated area columns", err)
		}
	}

	return nil
}

// addCheckConstraints installs the gable mutual-exclusion check:
// exactly one of lh_gable, rh_gable, no_gable is true on every
// inventory line.
func (m *manager) addCheckConstraints(ctx context.Context) error {
	pool := m.operator.Pool()
	if pool == nil {
		return NotConnectedError()
	}

	q := `DO $$
BEGIN
	IF NOT EXISTS (
		SELECT FROM pg_constraint
		WHERE conname = 'chk_inventory_lines_one_gable'
	) THEN
		ALTER TABLE inventory_lines
			ADD CONSTRAINT chk_inventory_lines_one_gable
			CHECK (
				(lh_gable::int + rh_gable::int + no_gable::int) = 1
			);
	END IF;
END $$`

	if _, err := pool.Exec(ctx, q); err != nil {
		return ConstraintError(
			"inventory_lines", "chk_inventory_lines_one_gable", err)
	}

	return nil
}

// createStagingTables creates the loosely-typed holding tables that
// mirror the legacy export.
func (m *manager) createStagingTables(ctx context.Context) error {
	pool := m.operator.Pool()
	if pool == nil {
		return NotConnectedError()
	}

	for _, t := range schema.StagingTables() {
		if _, err := pool.Exec(ctx, t.DDL); err != nil {
			return StagingError(t.Name, err)
		}
	}

	return nil
}
