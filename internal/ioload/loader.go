// Package ioload implements the Loader interface: it imports the legacy
// desktop-database export into loosely-typed staging tables. This is an
// impure I/O package that reads CSV files or a SQLite export and
// performs bulk inserts. No validation happens here beyond column-type
// coercion; the migrate pipeline does the real work later.
package ioload

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/google/uuid"
	"github.com/teams-transport/whdb/pkg/config"
	"github.com/teams-transport/whdb/pkg/db"
	"github.com/teams-transport/whdb/pkg/whdb"
	"golang.org/x/sync/errgroup"
)

// loader implements the whdb.Loader interface.
type loader struct {
	cfg      *config.Config
	operator db.Operator
}

// New creates a new Loader.
func New(cfg *config.Config, op db.Operator) whdb.Loader {
	return &loader{cfg: cfg, operator: op}
}

// Load imports the configured sources into staging. Sources are
// independent tables, so they load concurrently; nothing downstream
// runs until all of them finish. Returns row counts per staging table.
func (l *loader) Load(ctx context.Context) (map[string]int, error) {
	pool := l.operator.Pool()
	if pool == nil {
		return nil, NotConnectedError()
	}

	srcs := filterSources(l.cfg.Import.Sources)
	if len(srcs) == 0 {
		return nil, NoSourcesError(l.cfg.Import.Sources)
	}

	batchID := uuid.New()
	startTime := time.Now()
	slog.Info("Starting staging load",
		"batch_id", batchID.String(),
		"sources", len(srcs),
	)

	counts := make([]int, len(srcs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(l.cfg.JobsNumber)

	for i, src := range srcs {
		g.Go(func() error {
			n, err := l.loadSource(gctx, src, batchID)
			if err != nil {
				return err
			}
			counts[i] = n
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	res := make(map[string]int, len(srcs))
	var total int
	for i, src := range srcs {
		res[src.table] = counts[i]
		total += counts[i]
	}

	totalDuration := time.Since(startTime)
	slog.Info("Staging load complete",
		"batch_id", batchID.String(),
		"rows", total,
		"duration", gnfmt.TimeString(totalDuration.Seconds()),
	)
	gn.Info("Loaded <em>%s</em> staging rows in %s",
		humanize.Comma(int64(total)),
		gnfmt.TimeString(totalDuration.Seconds()),
	)

	return res, nil
}

// loadSource reads one export table and bulk-inserts it into its
// staging table.
func (l *loader) loadSource(
	ctx context.Context,
	src source,
	batchID uuid.UUID,
) (int, error) {
	var records [][]*string
	var err error

	if l.cfg.Import.SQLitePath != "" {
		records, err = readSQLite(l.cfg.Import.SQLitePath, src)
	} else {
		records, err = readCSV(l.cfg.Import.Dir, src)
	}
	if err != nil {
		return 0, err
	}

	n, err := l.insertStaging(ctx, src, records, batchID)
	if err != nil {
		return 0, err
	}

	slog.Info("Source loaded",
		"table", src.table,
		"rows", n,
	)

	return n, nil
}

// insertStaging performs batched parameterized inserts into a staging
// table. PostgreSQL caps parameters at 65535 per statement, so the
// batch size from config is additionally clamped by column count.
func (l *loader) insertStaging(
	ctx context.Context,
	src source,
	records [][]*string,
	batchID uuid.UUID,
) (int, error) {
	cols := append(append([]string{}, src.columns...), "batch_id")
	perRow := len(cols)

	batchSize := l.cfg.Database.BatchSize
	if max := 65000 / perRow; batchSize > max {
		batchSize = max
	}

	var total int
	for i := 0; i < len(records); i += batchSize {
		end := i + batchSize
		if end > len(records) {
			end = len(records)
		}
		batch := records[i:end]

		var valueStrings []string
		var valueArgs []any
		argIdx := 1

		for _, rec := range batch {
			placeholders := make([]string, perRow)
			for j := range placeholders {
				placeholders[j] = fmt.Sprintf("$%d", argIdx)
				argIdx++
			}
			valueStrings = append(valueStrings,
				"("+strings.Join(placeholders, ", ")+")")

			for _, v := range rec {
				if v == nil {
					valueArgs = append(valueArgs, nil)
				} else {
					valueArgs = append(valueArgs, *v)
				}
			}
			valueArgs = append(valueArgs, batchID)
		}

		insertQuery := fmt.Sprintf(
			"INSERT INTO %s (%s) VALUES %s",
			src.table,
			strings.Join(cols, ", "),
			strings.Join(valueStrings, ", "),
		)

		if _, err := l.operator.Pool().Exec(
			ctx, insertQuery, valueArgs...,
		); err != nil {
			return 0, InsertError(src.table, err)
		}

		total += len(batch)
	}

	return total, nil
}
