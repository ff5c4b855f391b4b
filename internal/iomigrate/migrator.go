// Package iomigrate implements the staging-to-normalized migration
// pipeline. The pipeline is a finite ordered list of steps executed in
// strict sequence: every step depends on rows committed by the previous
// one. Each step commits independently; a failed step halts the run and
// leaves prior commits intact. Re-running against populated tables
// fails on duplicate keys, which is the intended idempotency boundary.
package iomigrate

import (
	"context"
	"log/slog"
	"time"

	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/teams-transport/whdb/pkg/config"
	"github.com/teams-transport/whdb/pkg/db"
	"github.com/teams-transport/whdb/pkg/schema"
	"github.com/teams-transport/whdb/pkg/whdb"
)

// step is one named unit of the pipeline.
type step struct {
	name string
	fn   func(context.Context) error
}

// migrator implements the whdb.Migrator interface.
type migrator struct {
	cfg      *config.Config
	operator db.Operator

	// addrLookup maps a normalized address tuple to its surrogate id.
	// Built once by the dedup step and consulted by all later steps so
	// no downstream stage re-joins on natural keys.
	addrLookup map[addrKey]int64
}

// New creates a new Migrator.
func New(cfg *config.Config, op db.Operator) whdb.Migrator {
	return &migrator{
		cfg:        cfg,
		operator:   op,
		addrLookup: make(map[addrKey]int64),
	}
}

// Migrate runs the pipeline in declared order and drops the staging
// tables after the last step succeeds.
func (m *migrator) Migrate(ctx context.Context) error {
	pool := m.operator.Pool()
	if pool == nil {
		return NotConnectedError()
	}

	exists, err := m.operator.TableExists(ctx, "stg_companies")
	if err != nil {
		return err
	}
	if !exists {
		return StagingMissingError()
	}

	steps := []step{
		{"deduplicate addresses", m.dedupAddresses},
		{"materialize companies", m.materializeCompanies},
		{"materialize stores", m.materializeStores},
		{"materialize case models", m.materializeCaseModels},
		{"materialize quotes", m.materializeQuotes},
		{"materialize job cost estimates", m.materializeJobs},
		{"link inventory lines", m.linkInventory},
		{"drop staging tables", m.dropStaging},
	}

	startTime := time.Now()
	slog.Info("Starting migration pipeline", "steps", len(steps))

	for i, st := range steps {
		select {
		case <-ctx.Done():
			return StepError(st.name, ctx.Err())
		default:
		}

		gn.Info("(%d/%d) %s...", i+1, len(steps), st.name)
		stepStart := time.Now()

		if err := st.fn(ctx); err != nil {
			slog.Error("Pipeline step failed",
				"step", st.name,
				"error", err,
			)
			return err
		}

		slog.Info("Pipeline step complete",
			"step", st.name,
			"duration", gnfmt.TimeString(time.Since(stepStart).Seconds()),
		)
	}

	totalDuration := time.Since(startTime)
	slog.Info("Migration pipeline complete",
		"duration", gnfmt.TimeString(totalDuration.Seconds()),
	)
	gn.Info("Migration complete in <em>%s</em>",
		gnfmt.TimeString(totalDuration.Seconds()))

	return nil
}

// dropStaging removes the staging tables after a successful run. The
// normalized schema is the only persisted state from here on.
func (m *migrator) dropStaging(ctx context.Context) error {
	err := m.operator.DropTables(ctx, schema.StagingTableNames())
	if err != nil {
		return DropStagingError(err)
	}
	return nil
}
