package iomigrate_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/teams-transport/whdb/internal/ioaudit"
	"github.com/teams-transport/whdb/internal/iodb"
	"github.com/teams-transport/whdb/internal/ioload"
	"github.com/teams-transport/whdb/internal/iomigrate"
	"github.com/teams-transport/whdb/internal/ioschema"
	"github.com/teams-transport/whdb/internal/iotesting"
	"github.com/teams-transport/whdb/pkg/config"
	"github.com/teams-transport/whdb/pkg/db"
)

// End-to-end pipeline test against a real PostgreSQL instance (see
// internal/iodb for connection configuration). Skipped in -short mode.

// invLine builds one inventory.csv record. Only the fields the test
// asserts on are set; the rest stay empty.
func invLine(job, model, caseNo, lh, rh, no string) string {
	fields := make([]string, 30)
	fields[0] = job
	fields[1] = model
	fields[5] = caseNo
	fields[7] = "2023-06-01"  // estimated_ship_date
	fields[22] = "14"         // days_in_storage
	fields[24] = "210.00"     // storage_charge
	fields[27] = lh
	fields[28] = rh
	fields[29] = no
	return strings.Join(fields, ",")
}

func writeExportDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	files := map[string]string{
		"companies.csv": `company_id,name,email,street,city,province,postal_code
1,Acme Retail,info@acme.test,100 Main St,Kitchener,ON,N2N 1A1
2,Budget Goods,,5 King St,Waterloo,ON,n2l 0a0
`,
		// store 10 shares the address of company 1; the postal code is
		// formatted differently and must still collapse into one row
		"stores.csv": `store_id,company_id,name,street,city,province,postal_code
10,1,Acme #0001 Kitchener,100 Main St,Kitchener,ON,n2n 1a1
11,2,Budget #0002 Waterloo,77 Erb St,Waterloo,ON,N2L 1V9
`,
		"case_models.csv": `case_model_id,name,width,depth,warehouse_area
100,CM-2418,24,18,3
101,CM-3614,36,14,3.5
`,
		// quote 301 references store 999 which does not exist
		"cost_estimates.csv": `job_id,quote_id,store_id,quote_number,quote_date,quote_expiry,vendor_ref,purchase_order,prepared_by,sales_rep,project_manager,origin_city,origin_province,destination_city,destination_province,load_count,linehaul_cost,fuel_surcharge_pct,accessorial_cost,intra_country,extended_price
500,300,10,Q-300,2023-06-15,2023-07-15,V-1,PO-1,alice,bob,carol,Toronto,ON,Kitchener,ON,2,1500.00,12.50,100.00,Y,1800.00
501,301,999,Q-301,2023-06-20,,V-2,PO-2,alice,bob,carol,Montreal,QC,Waterloo,ON,1,900.00,10.00,0,N,990.00
`,
		"inventory.csv": "job_number,case_model," +
			"po_number,shipper_order_no,line_up_no,case_no,serial_no," +
			"estimated_ship_date,arrived_at_warehouse,storage_starts," +
			"storage_ends,scheduled_date,scheduled_time," +
			"warehouse_location,trailer_or_warehouse,original_order_no," +
			"original_trailer_no,touched,date_stripped,damaged," +
			"delivery_order_no,delivery_trailer_no,days_in_storage," +
			"square_footage,storage_charge,extended_price,department," +
			"lh_gable,rh_gable,no_gable\n" +
			invLine("500", "CM-2418", "C-1", "Y", "", "") + "\n" +
			invLine("500", "CM-9999", "C-2", "", "", "") + "\n" +
			invLine("501", "", "C-3", "", "Y", "") + "\n",
	}

	for name, content := range files {
		err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644)
		require.NoError(t, err)
	}
	return dir
}

func setupMigrated(t *testing.T) (*config.Config, db.Operator) {
	t.Helper()
	ctx := context.Background()

	cfg := iotesting.GetTestConfig()
	cfg.Update([]config.Option{
		config.OptImportDir(writeExportDir(t)),
	})

	op := iodb.NewPgxOperator()
	require.NoError(t, op.Connect(ctx, &cfg.Database))
	t.Cleanup(func() { op.Close() })

	require.NoError(t, op.DropAllTables(ctx))
	require.NoError(t, ioschema.NewManager(op).Create(ctx))

	counts, err := ioload.New(cfg, op).Load(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, counts["stg_companies"])
	require.Equal(t, 3, counts["stg_inventory"])

	require.NoError(t, iomigrate.New(cfg, op).Migrate(ctx))
	return cfg, op
}

func TestMigratePipeline(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()
	_, op := setupMigrated(t)
	pool := op.Pool()

	t.Run("addresses deduplicated", func(t *testing.T) {
		var n int
		err := pool.QueryRow(ctx,
			"SELECT count(*) FROM addresses").Scan(&n)
		require.NoError(t, err)
		// company 1 and store 10 collapse into one row
		assert.Equal(t, 3, n)

		var postal string
		err = pool.QueryRow(ctx,
			`SELECT postal_code FROM addresses
WHERE street = '100 Main St'`).Scan(&postal)
		require.NoError(t, err)
		assert.Equal(t, "N2N1A1", postal)
	})

	t.Run("company with shared address", func(t *testing.T) {
		var companyAddr, storeAddr int64
		err := pool.QueryRow(ctx,
			"SELECT address_id FROM companies WHERE id = 1").
			Scan(&companyAddr)
		require.NoError(t, err)
		err = pool.QueryRow(ctx,
			"SELECT address_id FROM stores WHERE id = 10").
			Scan(&storeAddr)
		require.NoError(t, err)
		assert.Equal(t, companyAddr, storeAddr)
	})

	t.Run("missing email stays null", func(t *testing.T) {
		var email *string
		err := pool.QueryRow(ctx,
			"SELECT email FROM companies WHERE id = 2").Scan(&email)
		require.NoError(t, err)
		assert.Nil(t, email)
	})

	t.Run("case model derived area", func(t *testing.T) {
		var area string
		var rounded int
		err := pool.QueryRow(ctx,
			`SELECT area::text, rounded_area FROM case_models
WHERE name = 'CM-2418'`).Scan(&area, &rounded)
		require.NoError(t, err)
		assert.Equal(t, "3.0000", area)
		assert.Equal(t, 3, rounded)

		// generated columns follow dimension changes
		_, err = pool.Exec(ctx,
			"UPDATE case_models SET depth = 30 WHERE name = 'CM-2418'")
		require.NoError(t, err)
		err = pool.QueryRow(ctx,
			`SELECT area::text, rounded_area FROM case_models
WHERE name = 'CM-2418'`).Scan(&area, &rounded)
		require.NoError(t, err)
		assert.Equal(t, "5.0000", area)
		assert.Equal(t, 5, rounded)
		_, err = pool.Exec(ctx,
			"UPDATE case_models SET depth = 18 WHERE name = 'CM-2418'")
		require.NoError(t, err)
	})

	t.Run("unknown store coerced to sentinel", func(t *testing.T) {
		var storeID int
		err := pool.QueryRow(ctx,
			"SELECT store_id FROM quotes WHERE id = 301").Scan(&storeID)
		require.NoError(t, err)
		assert.Equal(t, 0, storeID)

		var name string
		err = pool.QueryRow(ctx,
			"SELECT name FROM stores WHERE id = 0").Scan(&name)
		require.NoError(t, err)
		assert.Equal(t, "Unknown store", name)
	})

	t.Run("job inherits quote store", func(t *testing.T) {
		var storeID int
		err := pool.QueryRow(ctx,
			"SELECT store_id FROM job_cost_estimates WHERE id = 500").
			Scan(&storeID)
		require.NoError(t, err)
		assert.Equal(t, 10, storeID)

		err = pool.QueryRow(ctx,
			"SELECT store_id FROM job_cost_estimates WHERE id = 501").
			Scan(&storeID)
		require.NoError(t, err)
		assert.Equal(t, 0, storeID, "coerced quote store carries over")
	})

	t.Run("inventory lines linked", func(t *testing.T) {
		var modelID *int
		var storeID int
		err := pool.QueryRow(ctx,
			`SELECT case_model_id, store_id FROM inventory_lines
WHERE case_no = 'C-1'`).Scan(&modelID, &storeID)
		require.NoError(t, err)
		require.NotNil(t, modelID)
		assert.Equal(t, 100, *modelID)
		assert.Equal(t, 10, storeID, "store comes from the job")

		// unknown model name keeps the raw text, id stays null
		var rawName string
		err = pool.QueryRow(ctx,
			`SELECT case_model_id, case_model_name FROM inventory_lines
WHERE case_no = 'C-2'`).Scan(&modelID, &rawName)
		require.NoError(t, err)
		assert.Nil(t, modelID)
		assert.Equal(t, "CM-9999", rawName)

		// a line without a model name stays unlinked
		err = pool.QueryRow(ctx,
			`SELECT case_model_id, case_model_name FROM inventory_lines
WHERE case_no = 'C-3'`).Scan(&modelID, &rawName)
		require.NoError(t, err)
		assert.Nil(t, modelID)
		assert.Equal(t, "", rawName)
	})

	t.Run("gable flags normalized", func(t *testing.T) {
		var lh, rh, no bool
		err := pool.QueryRow(ctx,
			`SELECT lh_gable, rh_gable, no_gable FROM inventory_lines
WHERE case_no = 'C-1'`).Scan(&lh, &rh, &no)
		require.NoError(t, err)
		assert.True(t, lh)
		assert.False(t, rh)
		assert.False(t, no)

		// a line with no flags defaults to no gable
		err = pool.QueryRow(ctx,
			`SELECT lh_gable, rh_gable, no_gable FROM inventory_lines
WHERE case_no = 'C-2'`).Scan(&lh, &rh, &no)
		require.NoError(t, err)
		assert.True(t, no)
	})

	t.Run("gable constraint rejects conflicting flags", func(t *testing.T) {
		_, err := pool.Exec(ctx,
			`UPDATE inventory_lines SET lh_gable = true, rh_gable = true
WHERE case_no = 'C-1'`)
		assert.Error(t, err)
	})

	t.Run("staging dropped", func(t *testing.T) {
		exists, err := op.TableExists(ctx, "stg_companies")
		require.NoError(t, err)
		assert.False(t, exists)
	})
}

func TestMigrateWithoutStaging(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()
	cfg, op := setupMigrated(t)

	// staging is gone after a successful run
	err := iomigrate.New(cfg, op).Migrate(ctx)
	require.Error(t, err)
}

func TestMigrateRerunFailsOnDuplicates(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()
	cfg, op := setupMigrated(t)

	// re-stage the same export and migrate again; the materializer
	// must fail on duplicate primary keys instead of double-loading
	_, err := ioload.New(cfg, op).Load(ctx)
	require.Error(t, err, "staging tables are gone")

	require.NoError(t, ioschema.NewManager(op).Create(ctx))
	_, err = ioload.New(cfg, op).Load(ctx)
	require.NoError(t, err)

	err = iomigrate.New(cfg, op).Migrate(ctx)
	require.Error(t, err)
}

func TestMigrateRejectsBlankCaseModelName(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()

	dir := writeExportDir(t)
	// a nameless catalog row would match every inventory line whose
	// model field is blank
	err := os.WriteFile(filepath.Join(dir, "case_models.csv"),
		[]byte(`case_model_id,name,width,depth,warehouse_area
100,CM-2418,24,18,3
102,  ,12,12,1
`), 0644)
	require.NoError(t, err)

	cfg := iotesting.GetTestConfig()
	cfg.Update([]config.Option{config.OptImportDir(dir)})

	op := iodb.NewPgxOperator()
	require.NoError(t, op.Connect(ctx, &cfg.Database))
	t.Cleanup(func() { op.Close() })

	require.NoError(t, op.DropAllTables(ctx))
	require.NoError(t, ioschema.NewManager(op).Create(ctx))
	_, err = ioload.New(cfg, op).Load(ctx)
	require.NoError(t, err)

	err = iomigrate.New(cfg, op).Migrate(ctx)
	require.Error(t, err)

	var n int
	err = op.Pool().QueryRow(ctx,
		"SELECT count(*) FROM case_models").Scan(&n)
	require.NoError(t, err)
	assert.Equal(t, 0, n, "the batch must not be stored partially")
}

func TestAuditAfterMigrate(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()
	_, op := setupMigrated(t)

	report, err := ioaudit.New(op).Audit(ctx)
	require.NoError(t, err)

	assert.Equal(t, int64(3), report.RowCounts["addresses"])
	// sentinel company and store count as rows
	assert.Equal(t, int64(3), report.RowCounts["companies"])
	assert.Equal(t, int64(3), report.RowCounts["stores"])
	assert.Equal(t, int64(2), report.RowCounts["case_models"])
	assert.Equal(t, int64(2), report.RowCounts["quotes"])
	assert.Equal(t, int64(2), report.RowCounts["job_cost_estimates"])
	assert.Equal(t, int64(3), report.RowCounts["inventory_lines"])

	// C-2 references CM-9999 which is not in the catalog; the empty
	// reference on C-3 does not count
	assert.Equal(t, int64(1), report.UnresolvedCaseModels)
}
