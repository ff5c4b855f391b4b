package schema

// StagingTable pairs a staging table name with its CREATE TABLE
// statement. Staging tables mirror the legacy export: every column is
// TEXT, nothing is referentially enforced, and the whole set is dropped
// at the end of a successful migration run.
type StagingTable struct {
	Name string
	DDL  string
}

// StagingTables returns the staging DDL in creation order.
// batch_id tags every row with the load batch that produced it.
func StagingTables() []StagingTable {
	return []StagingTable{
		{
			Name: "stg_companies",
			DDL: `CREATE TABLE IF NOT EXISTS stg_companies (
    company_id TEXT,
    name TEXT,
    email TEXT,
    street TEXT,
    city TEXT,
    province TEXT,
    postal_code TEXT,
    batch_id UUID
)`,
		},
		{
			Name: "stg_stores",
			DDL: `CREATE TABLE IF NOT EXISTS stg_stores (
    store_id TEXT,
    company_id TEXT,
    name TEXT,
    street TEXT,
    city TEXT,
    province TEXT,
    postal_code TEXT,
    batch_id UUID
)`,
		},
		{
			Name: "stg_case_models",
			DDL: `CREATE TABLE IF NOT EXISTS stg_case_models (
    case_model_id TEXT,
    name TEXT,
    width TEXT,
    depth TEXT,
    warehouse_area TEXT,
    batch_id UUID
)`,
		},
		{
			Name: "stg_cost_estimates",
			DDL: `CREATE TABLE IF NOT EXISTS stg_cost_estimates (
    job_id TEXT,
    quote_id TEXT,
    store_id TEXT,
    quote_number TEXT,
    quote_date TEXT,
    quote_expiry TEXT,
    vendor_ref TEXT,
    purchase_order TEXT,
    prepared_by TEXT,
    sales_rep TEXT,
    project_manager TEXT,
    origin_city TEXT,
    origin_province TEXT,
    destination_city TEXT,
    destination_province TEXT,
    load_count TEXT,
    linehaul_cost TEXT,
    fuel_surcharge_pct TEXT,
    accessorial_cost TEXT,
    intra_country TEXT,
    extended_price TEXT,
    batch_id UUID
)`,
		},
		{
			Name: "stg_inventory",
			DDL: `CREATE TABLE IF NOT EXISTS stg_inventory (
    job_number TEXT,
    case_model TEXT,
    po_number TEXT,
    shipper_order_no TEXT,
    line_up_no TEXT,
    case_no TEXT,
    serial_no TEXT,
    estimated_ship_date TEXT,
    arrived_at_warehouse TEXT,
    storage_starts TEXT,
    storage_ends TEXT,
    scheduled_date TEXT,
    scheduled_time TEXT,
    warehouse_location TEXT,
    trailer_or_warehouse TEXT,
    original_order_no TEXT,
    original_trailer_no TEXT,
    touched TEXT,
    date_stripped TEXT,
    damaged TEXT,
    delivery_order_no TEXT,
    delivery_trailer_no TEXT,
    days_in_storage TEXT,
    square_footage TEXT,
    storage_charge TEXT,
    extended_price TEXT,
    department TEXT,
    lh_gable TEXT,
    rh_gable TEXT,
    no_gable TEXT,
    batch_id UUID
)`,
		},
	}
}

// StagingTableNames returns just the table names, in creation order.
func StagingTableNames() []string {
	tables := StagingTables()
	res := make([]string, len(tables))
	for i, t := range tables {
		res[i] = t.Name
	}
	return res
}
