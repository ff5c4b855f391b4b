// Package ioaudit checks a migrated database for consistency and
// reports row counts. It never writes; a dirty result is information
// for the operator, not something to repair automatically.
package ioaudit

import (
	"context"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/teams-transport/whdb/pkg/db"
	"github.com/teams-transport/whdb/pkg/schema"
	"github.com/teams-transport/whdb/pkg/whdb"
)

type auditor struct {
	operator db.Operator
}

// New creates a new Auditor.
func New(op db.Operator) whdb.Auditor {
	return &auditor{operator: op}
}

// Audit counts rows per normalized table and measures how many
// inventory lines carry a case model name that failed catalog lookup.
// Foreign-key and uniqueness integrity is enforced by the schema
// itself, so the audit focuses on what constraints cannot express.
func (a *auditor) Audit(ctx context.Context) (*whdb.AuditReport, error) {
	pool := a.operator.Pool()
	if pool == nil {
		return nil, NotConnectedError()
	}

	report := &whdb.AuditReport{
		RowCounts: make(map[string]int64),
	}

	for _, model := range schema.AllModels() {
		table := tableName(model)
		var count int64
		q := fmt.Sprintf("SELECT count(*) FROM %s", table)
		if err := pool.QueryRow(ctx, q).Scan(&count); err != nil {
			return nil, QueryError(table, err)
		}
		report.RowCounts[table] = count
	}

	q := `SELECT count(*) FROM inventory_lines
WHERE case_model_id IS NULL AND btrim(case_model_name) <> ''`
	err := pool.QueryRow(ctx, q).Scan(&report.UnresolvedCaseModels)
	if err != nil {
		return nil, QueryError("inventory_lines", err)
	}

	printReport(report)
	return report, nil
}

func tableName(model any) string {
	type tabler interface{ TableName() string }
	if t, ok := model.(tabler); ok {
		return t.TableName()
	}
	return fmt.Sprintf("%T", model)
}

func printReport(r *whdb.AuditReport) {
	for _, model := range schema.AllModels() {
		table := tableName(model)
		gn.Info("<em>%s</em>: %s rows", table,
			humanize.Comma(r.RowCounts[table]))
	}
	if r.UnresolvedCaseModels > 0 {
		gn.Warn("<em>%s</em> inventory lines have an unresolved case model",
			humanize.Comma(r.UnresolvedCaseModels))
	} else {
		gn.Info("All referenced case models resolved")
	}
}
