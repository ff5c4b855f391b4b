package iomigrate

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/cheggaaa/pb/v3"
	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
)

// stgInventoryColumns is the staging column order scanned by the
// linker; it must match the select list in linkInventory.
var stgInventoryColumns = []string{
	"job_number", "case_model", "po_number",
	"shipper_order_no", "line_up_no", "case_no", "serial_no",
	"estimated_ship_date", "arrived_at_warehouse",
	"storage_starts", "storage_ends", "scheduled_date",
	"scheduled_time", "warehouse_location", "trailer_or_warehouse",
	"original_order_no", "original_trailer_no",
	"touched", "date_stripped", "damaged",
	"delivery_order_no", "delivery_trailer_no",
	"days_in_storage", "square_footage", "storage_charge",
	"extended_price", "department",
	"lh_gable", "rh_gable", "no_gable",
}

// linkInventory is the referential linker: it resolves each staged
// inventory line to its job, inherits the store from that job, and
// resolves the free-text case model name against the catalog. A line
// whose job reference does not resolve is fatal; a failed case model
// lookup stores NULL next to the raw name for the audit.
func (m *migrator) linkInventory(ctx context.Context) error {
	pool := m.operator.Pool()

	jobStores, err := m.jobStores(ctx)
	if err != nil {
		return LinkError(err)
	}
	models, err := m.caseModelNames(ctx)
	if err != nil {
		return LinkError(err)
	}

	var total int64
	err = pool.QueryRow(ctx, "SELECT count(*) FROM stg_inventory").Scan(&total)
	if err != nil {
		return LinkError(err)
	}

	q := "SELECT " + strings.Join(stgInventoryColumns, ", ") +
		" FROM stg_inventory"
	rows, err := pool.Query(ctx, q)
	if err != nil {
		return LinkError(err)
	}
	defer rows.Close()

	bar := pb.StartNew(int(total))
	defer bar.Finish()

	var out [][]any
	var unresolved, ambiguous int
	for rows.Next() {
		vals := make([]*string, len(stgInventoryColumns))
		dest := make([]any, len(vals))
		for i := range vals {
			dest[i] = &vals[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return LinkError(err)
		}
		bar.Increment()

		jobID, ok := parseID(vals[0])
		if !ok {
			return LinkError(fmt.Errorf("row %d: bad job reference %q",
				len(out)+1, trimmed(vals[0])))
		}
		storeID, ok := jobStores[jobID]
		if !ok {
			return LinkError(fmt.Errorf("row %d: unknown job %d",
				len(out)+1, jobID))
		}

		modelName := trimmed(vals[1])
		var modelID *int
		if id, ok := models[modelName]; ok {
			modelID = &id
		} else if modelName != "" {
			unresolved++
		}

		srcLH := parseFlag(vals[27])
		srcRH := parseFlag(vals[28])
		srcNo := parseFlag(vals[29])
		lh, rh, no := normalizeGables(srcLH, srcRH, srcNo)
		if moreThanOne(srcLH, srcRH, srcNo) {
			ambiguous++
			slog.Warn("Line has multiple gable flags set",
				"job_id", jobID, "case_no", trimmed(vals[5]))
		}

		out = append(out, []any{
			jobID, storeID, modelID, modelName,
			trimmed(vals[2]), trimmed(vals[3]), trimmed(vals[4]),
			trimmed(vals[5]), trimmed(vals[6]),
			parseDate(vals[7]), parseDate(vals[8]),
			parseDate(vals[9]), parseDate(vals[10]), parseDate(vals[11]),
			trimmed(vals[12]), trimmed(vals[13]), trimmed(vals[14]),
			trimmed(vals[15]), trimmed(vals[16]),
			parseFlag(vals[17]), parseDate(vals[18]), parseFlag(vals[19]),
			trimmed(vals[20]), trimmed(vals[21]),
			intOrNil(vals[22]), textOrNil(vals[23]), textOrNil(vals[24]),
			textOrNil(vals[25]), trimmed(vals[26]),
			lh, rh, no,
		})
	}
	if err := rows.Err(); err != nil {
		return LinkError(err)
	}
	rows.Close()
	bar.Finish()

	cols := []string{
		"job_id", "store_id", "case_model_id", "case_model_name",
		"po_number", "shipper_order_no", "line_up_no",
		"case_no", "serial_no",
		"estimated_ship_date", "arrived_at_warehouse",
		"storage_starts", "storage_ends", "scheduled_date",
		"scheduled_time", "warehouse_location", "trailer_or_warehouse",
		"original_order_no", "original_trailer_no",
		"touched", "date_stripped", "damaged",
		"delivery_order_no", "delivery_trailer_no",
		"days_in_storage", "square_footage", "storage_charge",
		"extended_price", "department",
		"lh_gable", "rh_gable", "no_gable",
	}
	if err := m.insertRows(ctx, "inventory_lines", cols, out); err != nil {
		return LinkError(err)
	}

	gn.Info("Stored <em>%s</em> inventory lines",
		humanize.Comma(int64(len(out))))
	if unresolved > 0 {
		gn.Warn("<em>%s</em> lines reference a case model not in the catalog",
			humanize.Comma(int64(unresolved)))
	}
	if ambiguous > 0 {
		gn.Warn("<em>%s</em> lines had conflicting gable flags",
			humanize.Comma(int64(ambiguous)))
	}

	return nil
}

// jobStores maps job ids to their store ids, the source of truth for
// store inheritance.
func (m *migrator) jobStores(ctx context.Context) (map[int]int, error) {
	rows, err := m.operator.Pool().Query(ctx,
		"SELECT id, store_id FROM job_cost_estimates")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	res := make(map[int]int)
	for rows.Next() {
		var id, storeID int
		if err := rows.Scan(&id, &storeID); err != nil {
			return nil, err
		}
		res[id] = storeID
	}
	return res, rows.Err()
}

// caseModelNames maps exact trimmed catalog names to model ids.
func (m *migrator) caseModelNames(ctx context.Context) (map[string]int, error) {
	rows, err := m.operator.Pool().Query(ctx,
		"SELECT id, name FROM case_models")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	res := make(map[string]int)
	for rows.Next() {
		var id int
		var name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, err
		}
		res[strings.TrimSpace(name)] = id
	}
	return res, rows.Err()
}

// normalizeGables reduces the three source flags to exactly one set
// flag, which the table constraint requires. Left-hand wins over
// right-hand when both are set; a line with no flag at all is a
// no-gable case.
func normalizeGables(lh, rh, no bool) (bool, bool, bool) {
	switch {
	case lh:
		return true, false, false
	case rh:
		return false, true, false
	case no:
		return false, false, true
	default:
		return false, false, true
	}
}

func moreThanOne(flags ...bool) bool {
	var n int
	for _, f := range flags {
		if f {
			n++
		}
	}
	return n > 1
}

// intOrNil parses an optional integer column.
func intOrNil(s *string) *int {
	if n, ok := parseID(s); ok {
		return &n
	}
	return nil
}
