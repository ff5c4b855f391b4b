package errcode

import (
	"github.com/gnames/gn"
)

const (
	UnknownError gn.ErrorCode = iota

	// File System errors
	CreateDirError
	CopyFileError
	ReadFileError

	// Logging errors
	CreateLogFileError

	// Database errors
	DBConnectionError
	DBNotConnectedError
	DBTableCheckError
	DBTableExistsCheckError
	DBQueryTablesError
	DBScanTableError
	DBDropTableError
	DBEmptyDatabaseError

	// Schema errors
	SchemaGORMConnectionError
	SchemaCreateError
	SchemaStagingError
	SchemaConstraintError

	// Load errors
	LoadSourceNotFoundError
	LoadCSVReadError
	LoadSQLiteReadError
	LoadInsertError
	LoadAllSourcesFailedError

	// Migrate errors
	MigrateStagingMissingError
	MigrateStepError
	MigrateDedupError
	MigrateMaterializeError
	MigrateLinkError
	MigrateDropStagingError

	// Audit errors
	AuditQueryError

	// API errors
	APIServerError
)
