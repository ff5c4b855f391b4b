package schema

import (
	"gorm.io/gorm"
)

// AllModels returns all normalized-schema models for GORM AutoMigrate.
// Order matters: referenced tables come before referencing ones so
// foreign keys resolve during creation.
func AllModels() []interface{} {
	return []interface{}{
		&Address{},
		&Company{},
		&Store{},
		&CaseModel{},
		&Quote{},
		&JobCostEstimate{},
		&InventoryLine{},
	}
}

// Migrate runs GORM AutoMigrate to create or update the normalized
// schema. Generated columns and check constraints are added separately
// by the schema manager; AutoMigrate cannot express them.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(AllModels()...)
}
