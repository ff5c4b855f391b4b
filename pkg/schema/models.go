// Package schema provides database schema models for whdb.
// Models describe the normalized target of the legacy-export migration;
// the staging tables that mirror the export itself live in staging.go.
package schema

import (
	"time"

	"github.com/shopspring/decimal"
)

// Address is a deduplicated postal address shared by companies and
// stores. The four components are stored in normalized form (trimmed,
// postal code upper-cased with internal whitespace removed) and their
// tuple is unique. Rows are created by the address deduplication step
// and only change through its upsert.
type Address struct {
	// ID is a surrogate identifier assigned on first sight of a
	// normalized tuple. It is never derived from source data.
	ID int64 `db:"id" gorm:"primaryKey;autoIncrement"`

	// Street is the free-text street line. On tuple conflict the latest
	// writer's value wins; see the deduplicator for details.
	Street string `db:"street" gorm:"type:varchar(255);not null;uniqueIndex:uq_addresses_components"`

	// City of the address, trimmed.
	City string `db:"city" gorm:"type:varchar(100);not null;uniqueIndex:uq_addresses_components"`

	// Province is a two-letter code in practice, but the legacy export
	// does not guarantee it.
	Province string `db:"province" gorm:"type:varchar(50);not null;uniqueIndex:uq_addresses_components"`

	// PostalCode is upper-cased with internal whitespace removed.
	PostalCode string `db:"postal_code" gorm:"type:varchar(20);not null;uniqueIndex:uq_addresses_components"`

	CreatedAt time.Time `db:"created_at"`
}

func (Address) TableName() string { return "addresses" }

// Company is the owning entity of stores. The primary key is the
// identifier assigned by the legacy desktop database.
type Company struct {
	// ID is source-preserved; downstream tables join on it.
	ID int `db:"id" gorm:"primaryKey;autoIncrement:false"`

	// Name of the company.
	Name string `db:"name" gorm:"type:varchar(255);not null"`

	// Email is the contact address carried over from the legacy
	// customer record; most rows do not have one.
	Email *string `db:"email" gorm:"type:varchar(255)"`

	// AddressID is a weak reference resolved during materialization.
	AddressID *int64 `db:"address_id" gorm:"index"`

	Address *Address `gorm:"foreignKey:AddressID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL"`

	CreatedAt time.Time `db:"created_at"`
}

func (Company) TableName() string { return "companies" }

// Store is a retail location owned by a company. Deleting a company is
// blocked while its stores exist.
type Store struct {
	// ID is source-preserved.
	ID int `db:"id" gorm:"primaryKey;autoIncrement:false"`

	CompanyID int     `db:"company_id" gorm:"not null;index"`
	Company   Company `gorm:"foreignKey:CompanyID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`

	// Name as exported, usually "<banner> #NNNN <city>".
	Name string `db:"name" gorm:"type:varchar(255);not null"`

	// AddressID is a weak reference resolved during materialization.
	AddressID *int64 `db:"address_id" gorm:"index"`

	Address *Address `gorm:"foreignKey:AddressID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL"`
}

func (Store) TableName() string { return "stores" }

// CaseModel is catalog data: a display-case model referenced by
// inventory lines through its unique business name. Width and depth are
// inches. Area and RoundedArea are PostgreSQL generated columns added by
// the schema manager; they are read-only and recomputed whenever width
// or depth changes (see pkg/area for the arithmetic).
type CaseModel struct {
	// ID is source-preserved.
	ID int `db:"id" gorm:"primaryKey;autoIncrement:false"`

	// Name is the unique catalog name used for lookups.
	Name string `db:"name" gorm:"type:varchar(255);not null;uniqueIndex"`

	Width decimal.Decimal `db:"width" gorm:"type:numeric(10,2);not null"`
	Depth decimal.Decimal `db:"depth" gorm:"type:numeric(10,2);not null"`

	// DeclaredWarehouseArea is the square footage claimed by the legacy
	// export; kept for comparison with the derived Area.
	DeclaredWarehouseArea decimal.Decimal `db:"declared_warehouse_area" gorm:"type:numeric(10,2)"`

	// Area is width*depth/144, generated column, square feet.
	Area decimal.Decimal `db:"area" gorm:"->;-:migration"`

	// RoundedArea is Area rounded to the nearest integer, ties away
	// from zero, generated column.
	RoundedArea int `db:"rounded_area" gorm:"->;-:migration"`
}

func (CaseModel) TableName() string { return "case_models" }

// Quote is a priced offer issued to a store.
type Quote struct {
	// ID is source-preserved.
	ID int `db:"id" gorm:"primaryKey;autoIncrement:false"`

	// StoreID is required. An unresolvable store reference in the
	// export is coerced to the sentinel store 0 during materialization.
	StoreID int   `db:"store_id" gorm:"not null;index"`
	Store   Store `gorm:"foreignKey:StoreID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`

	QuoteNumber    string     `db:"quote_number" gorm:"type:varchar(50)"`
	QuoteDate      *time.Time `db:"quote_date" gorm:"type:date"`
	QuoteExpiry    *time.Time `db:"quote_expiry" gorm:"type:date"`
	VendorRef      string     `db:"vendor_ref" gorm:"type:varchar(100)"`
	PurchaseOrder  string     `db:"purchase_order" gorm:"type:varchar(100)"`
	PreparedBy     string     `db:"prepared_by" gorm:"type:varchar(100)"`
	SalesRep       string     `db:"sales_rep" gorm:"type:varchar(100)"`
	ProjectManager string     `db:"project_manager" gorm:"type:varchar(100)"`
}

func (Quote) TableName() string { return "quotes" }

// JobCostEstimate is the freight costing attached to a quote. It is
// deleted together with its quote.
type JobCostEstimate struct {
	// ID is source-preserved. Inventory lines reference it by the
	// job number text in the export.
	ID int `db:"id" gorm:"primaryKey;autoIncrement:false"`

	QuoteID int   `db:"quote_id" gorm:"not null;index"`
	Quote   Quote `gorm:"foreignKey:QuoteID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`

	StoreID int   `db:"store_id" gorm:"not null;index"`
	Store   Store `gorm:"foreignKey:StoreID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`

	OriginCity          string          `db:"origin_city" gorm:"type:varchar(100)"`
	OriginProvince      string          `db:"origin_province" gorm:"type:varchar(50)"`
	DestinationCity     string          `db:"destination_city" gorm:"type:varchar(100)"`
	DestinationProvince string          `db:"destination_province" gorm:"type:varchar(50)"`
	LoadCount           int             `db:"load_count"`
	LinehaulCost        decimal.Decimal `db:"linehaul_cost" gorm:"type:numeric(12,2)"`
	FuelSurchargePct    decimal.Decimal `db:"fuel_surcharge_pct" gorm:"type:numeric(5,2)"`
	AccessorialCost     decimal.Decimal `db:"accessorial_cost" gorm:"type:numeric(12,2)"`
	IntraCountry        bool            `db:"intra_country"`
	ExtendedPrice       decimal.Decimal `db:"extended_price" gorm:"type:numeric(12,2)"`
}

func (JobCostEstimate) TableName() string { return "job_cost_estimates" }

// InventoryLine is a single stored case within a job. Its primary key is
// a generated surrogate because the export has no stable line
// identifier. StoreID is always inherited from the parent job, never
// taken from the line itself. Exactly one of the three gable flags is
// true; the schema manager installs a check constraint enforcing it.
type InventoryLine struct {
	ID int64 `db:"id" gorm:"primaryKey;autoIncrement"`

	JobID int             `db:"job_id" gorm:"not null;index"`
	Job   JobCostEstimate `gorm:"foreignKey:JobID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`

	StoreID int   `db:"store_id" gorm:"not null;index"`
	Store   Store `gorm:"foreignKey:StoreID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`

	// CaseModelID is a weak reference; NULL when the free-text model
	// name did not match the catalog.
	CaseModelID *int       `db:"case_model_id" gorm:"index"`
	CaseModel   *CaseModel `gorm:"foreignKey:CaseModelID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL"`

	// CaseModelName keeps the raw source text so the audit can tell a
	// failed lookup apart from a legitimately absent reference.
	CaseModelName string `db:"case_model_name" gorm:"type:varchar(255)"`

	PONumber          string     `db:"po_number" gorm:"type:varchar(50)"`
	ShipperOrderNo    string     `db:"shipper_order_no" gorm:"type:varchar(50)"`
	LineUpNo          string     `db:"line_up_no" gorm:"type:varchar(50)"`
	CaseNo            string     `db:"case_no" gorm:"type:varchar(50)"`
	SerialNo          string     `db:"serial_no" gorm:"type:varchar(100)"`
	EstimatedShipDate *time.Time `db:"estimated_ship_date" gorm:"type:date"`
	ArrivedAtWhs      *time.Time `db:"arrived_at_warehouse" gorm:"type:date"`
	StorageStarts     *time.Time `db:"storage_starts" gorm:"type:date"`
	StorageEnds       *time.Time `db:"storage_ends" gorm:"type:date"`
	ScheduledDate     *time.Time `db:"scheduled_date" gorm:"type:date"`
	ScheduledTime     string     `db:"scheduled_time" gorm:"type:varchar(20)"`
	WarehouseLocation string     `db:"warehouse_location" gorm:"type:varchar(100)"`
	TrailerOrWhs      string     `db:"trailer_or_warehouse" gorm:"type:varchar(20)"`
	OriginalOrderNo   string     `db:"original_order_no" gorm:"type:varchar(50)"`
	OriginalTrailerNo string     `db:"original_trailer_no" gorm:"type:varchar(50)"`
	Touched           bool       `db:"touched"`
	DateStripped      *time.Time `db:"date_stripped" gorm:"type:date"`
	Damaged           bool       `db:"damaged"`
	DeliveryOrderNo   string     `db:"delivery_order_no" gorm:"type:varchar(50)"`
	DeliveryTrailerNo string     `db:"delivery_trailer_no" gorm:"type:varchar(50)"`
	Department        string     `db:"department" gorm:"type:varchar(100)"`

	DaysInStorage *int             `db:"days_in_storage"`
	SquareFootage *decimal.Decimal `db:"square_footage" gorm:"type:numeric(10,4)"`
	StorageCharge *decimal.Decimal `db:"storage_charge" gorm:"type:numeric(12,2)"`
	ExtendedPrice *decimal.Decimal `db:"extended_price" gorm:"type:numeric(12,2)"`

	LHGable bool `db:"lh_gable" gorm:"not null;default:false"`
	RHGable bool `db:"rh_gable" gorm:"not null;default:false"`
	NoGable bool `db:"no_gable" gorm:"not null;default:false"`
}

func (InventoryLine) TableName() string { return "inventory_lines" }
