package ioload

// source describes one table of the legacy export: the staging table it
// lands in, the CSV file and the SQLite table it can be read from, and
// the column order shared by all three. The batch_id column is appended
// by the loader itself.
type source struct {
	table   string
	csvFile string
	sqlite  string
	columns []string
}

// allSources returns the five export tables in a stable order.
// Column order follows the legacy export; the header row of a CSV file
// is skipped, not interpreted.
func allSources() []source {
	return []source{
		{
			table:   "stg_companies",
			csvFile: "companies.csv",
			sqlite:  "companies",
			columns: []string{
				"company_id", "name", "email",
				"street", "city", "province", "postal_code",
			},
		},
		{
			table:   "stg_stores",
			csvFile: "stores.csv",
			sqlite:  "stores",
			columns: []string{
				"store_id", "company_id", "name",
				"street", "city", "province", "postal_code",
			},
		},
		{
			table:   "stg_case_models",
			csvFile: "case_models.csv",
			sqlite:  "case_models",
			columns: []string{
				"case_model_id", "name", "width", "depth",
				"warehouse_area",
			},
		},
		{
			table:   "stg_cost_estimates",
			csvFile: "cost_estimates.csv",
			sqlite:  "cost_estimates",
			columns: []string{
				"job_id", "quote_id", "store_id",
				"quote_number", "quote_date", "quote_expiry",
				"vendor_ref", "purchase_order", "prepared_by",
				"sales_rep", "project_manager",
				"origin_city", "origin_province",
				"destination_city", "destination_province",
				"load_count", "linehaul_cost", "fuel_surcharge_pct",
				"accessorial_cost", "intra_country", "extended_price",
			},
		},
		{
			table:   "stg_inventory",
			csvFile: "inventory.csv",
			sqlite:  "inventory",
			columns: []string{
				"job_number", "case_model", "po_number",
				"shipper_order_no", "line_up_no", "case_no",
				"serial_no", "estimated_ship_date",
				"arrived_at_warehouse", "storage_starts",
				"storage_ends", "scheduled_date", "scheduled_time",
				"warehouse_location", "trailer_or_warehouse",
				"original_order_no", "original_trailer_no",
				"touched", "date_stripped", "damaged",
				"delivery_order_no", "delivery_trailer_no",
				"days_in_storage", "square_footage",
				"storage_charge", "extended_price", "department",
				"lh_gable", "rh_gable", "no_gable",
			},
		},
	}
}

// filterSources returns the sources whose staging table or CSV base
// name matches one of the requested names. Empty request means all.
func filterSources(requested []string) []source {
	all := allSources()
	if len(requested) == 0 {
		return all
	}

	want := make(map[string]bool)
	for _, name := range requested {
		want[name] = true
	}

	var res []source
	for _, src := range all {
		if want[src.table] || want[src.sqlite] {
			res = append(res, src)
		}
	}
	return res
}
