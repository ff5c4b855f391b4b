package iomigrate

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
)

// Sentinel rows for export records whose store reference cannot be
// resolved. Quotes keep a hard foreign key to stores, so the fallback
// target has to exist as a real row.
const (
	sentinelCompanyID   = 0
	sentinelCompanyName = "Unassigned"
	sentinelStoreID     = 0
	sentinelStoreName   = "Unknown store"
)

// seedSentinels creates the fallback company and store. These are
// infrastructure rows, not source data, so re-creating them is a no-op
// rather than a duplicate-key failure.
func (m *migrator) seedSentinels(ctx context.Context) error {
	pool := m.operator.Pool()

	_, err := pool.Exec(ctx,
		`INSERT INTO companies (id, name) VALUES ($1, $2)
ON CONFLICT (id) DO NOTHING`,
		sentinelCompanyID, sentinelCompanyName)
	if err != nil {
		return err
	}
	_, err = pool.Exec(ctx,
		`INSERT INTO stores (id, company_id, name) VALUES ($1, $2, $3)
ON CONFLICT (id) DO NOTHING`,
		sentinelStoreID, sentinelCompanyID, sentinelStoreName)
	return err
}

// storeIDs returns the set of known store identifiers.
func (m *migrator) storeIDs(ctx context.Context) (map[int]struct{}, error) {
	rows, err := m.operator.Pool().Query(ctx, "SELECT id FROM stores")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	res := make(map[int]struct{})
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		res[id] = struct{}{}
	}
	return res, rows.Err()
}

// materializeQuotes projects the quote half of the cost-estimate
// staging rows. A store reference that is absent or unknown is coerced
// to the sentinel store; this is the single documented fallback for a
// missing owning-entity reference.
func (m *migrator) materializeQuotes(ctx context.Context) error {
	pool := m.operator.Pool()

	if err := m.seedSentinels(ctx); err != nil {
		return MaterializeError("quotes", err)
	}
	stores, err := m.storeIDs(ctx)
	if err != nil {
		return MaterializeError("quotes", err)
	}

	q := `SELECT quote_id, store_id, quote_number, quote_date, quote_expiry,
  vendor_ref, purchase_order, prepared_by, sales_rep, project_manager
FROM stg_cost_estimates`
	rows, err := pool.Query(ctx, q)
	if err != nil {
		return MaterializeError("quotes", err)
	}
	defer rows.Close()

	var out [][]any
	var coerced int
	for rows.Next() {
		var quoteID, storeID, number, date, expiry *string
		var vendorRef, po, preparedBy, salesRep, pm *string
		err := rows.Scan(&quoteID, &storeID, &number, &date, &expiry,
			&vendorRef, &po, &preparedBy, &salesRep, &pm)
		if err != nil {
			return MaterializeError("quotes", err)
		}
		id, ok := parseID(quoteID)
		if !ok {
			return MaterializeError("quotes",
				fmt.Errorf("row %d: bad quote identifier %q",
					len(out)+1, trimmed(quoteID)))
		}

		store := sentinelStoreID
		if sid, ok := parseID(storeID); ok {
			if _, known := stores[sid]; known {
				store = sid
			}
		}
		if store == sentinelStoreID {
			coerced++
			slog.Warn("Quote store reference coerced to sentinel",
				"quote_id", id, "store_ref", trimmed(storeID))
		}

		out = append(out, []any{
			id, store,
			trimmed(number), parseDate(date), parseDate(expiry),
			trimmed(vendorRef), trimmed(po), trimmed(preparedBy),
			trimmed(salesRep), trimmed(pm),
		})
	}
	if err := rows.Err(); err != nil {
		return MaterializeError("quotes", err)
	}
	rows.Close()

	cols := []string{
		"id", "store_id", "quote_number", "quote_date", "quote_expiry",
		"vendor_ref", "purchase_order", "prepared_by", "sales_rep",
		"project_manager",
	}
	if err := m.insertRows(ctx, "quotes", cols, out); err != nil {
		return MaterializeError("quotes", err)
	}

	gn.Info("Stored <em>%s</em> quotes", humanize.Comma(int64(len(out))))
	if coerced > 0 {
		gn.Warn("Coerced <em>%s</em> quotes to the sentinel store",
			humanize.Comma(int64(coerced)))
	}
	return nil
}

// materializeJobs projects the job half of the cost-estimate staging
// rows. The job's store is always the parent quote's store, never read
// from the line itself, so the two stay consistent even for coerced
// quotes.
func (m *migrator) materializeJobs(ctx context.Context) error {
	pool := m.operator.Pool()

	quoteStores, err := m.quoteStores(ctx)
	if err != nil {
		return MaterializeError("job_cost_estimates", err)
	}

	q := `SELECT job_id, quote_id,
  origin_city, origin_province, destination_city, destination_province,
  load_count, linehaul_cost, fuel_surcharge_pct, accessorial_cost,
  intra_country, extended_price
FROM stg_cost_estimates`
	rows, err := pool.Query(ctx, q)
	if err != nil {
		return MaterializeError("job_cost_estimates", err)
	}
	defer rows.Close()

	var out [][]any
	for rows.Next() {
		var jobID, quoteID, origCity, origProv, destCity, destProv *string
		var loadCount, linehaul, fuelPct, accessorial, intra, extended *string
		err := rows.Scan(&jobID, &quoteID, &origCity, &origProv,
			&destCity, &destProv, &loadCount, &linehaul, &fuelPct,
			&accessorial, &intra, &extended)
		if err != nil {
			return MaterializeError("job_cost_estimates", err)
		}
		id, ok := parseID(jobID)
		if !ok {
			return MaterializeError("job_cost_estimates",
				fmt.Errorf("row %d: bad job identifier %q",
					len(out)+1, trimmed(jobID)))
		}
		quote, ok := parseID(quoteID)
		if !ok {
			return MaterializeError("job_cost_estimates",
				fmt.Errorf("job %d: bad quote reference %q",
					id, trimmed(quoteID)))
		}
		store, ok := quoteStores[quote]
		if !ok {
			return MaterializeError("job_cost_estimates",
				fmt.Errorf("job %d: unknown quote %d", id, quote))
		}

		loads, _ := parseID(loadCount)
		out = append(out, []any{
			id, quote, store,
			trimmed(origCity), trimmed(origProv),
			trimmed(destCity), trimmed(destProv),
			loads, numOrZero(linehaul), numOrZero(fuelPct),
			numOrZero(accessorial), parseFlag(intra), numOrZero(extended),
		})
	}
	if err := rows.Err(); err != nil {
		return MaterializeError("job_cost_estimates", err)
	}
	rows.Close()

	cols := []string{
		"id", "quote_id", "store_id",
		"origin_city", "origin_province",
		"destination_city", "destination_province",
		"load_count", "linehaul_cost", "fuel_surcharge_pct",
		"accessorial_cost", "intra_country", "extended_price",
	}
	if err := m.insertRows(ctx, "job_cost_estimates", cols, out); err != nil {
		return MaterializeError("job_cost_estimates", err)
	}

	gn.Info("Stored <em>%s</em> job cost estimates",
		humanize.Comma(int64(len(out))))
	return nil
}

// quoteStores maps quote ids to their resolved store ids.
func (m *migrator) quoteStores(ctx context.Context) (map[int]int, error) {
	rows, err := m.operator.Pool().Query(ctx,
		"SELECT id, store_id FROM quotes")
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
