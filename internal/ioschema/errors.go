package ioschema

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/teams-transport/whdb/pkg/errcode"
)

// NotConnectedError creates an error for when a schema
// operation is attempted without database connection.
func NotConnectedError() error {
	msg := "Schema operation attempted without database connection"

	return &gn.Error{
		Code: errcode.DBNotConnectedError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("not connected to database"),
	}
}

// GORMConnectionError creates an error for GORM
// connection failures.
func GORMConnectionError(err error) error {
	msg := `Cannot connect to database with GORM

<em>Possible causes:</em>
  - Connection pool not initialized
  - Database configuration issue

<em>How to fix:</em>
  1. Ensure database operator is connected
  2. Check database configuration`

	return &gn.Error{
		Code: errcode.SchemaGORMConnectionError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("failed to connect with GORM: %w", err),
	}
}

// CreateSchemaError creates an error for schema
// creation failures.
func CreateSchemaError(err error) error {
	msg := `Cannot create database schema

<em>Possible causes:</em>
  - Insufficient database permissions
  - Invalid schema definitions

<em>How to fix:</em>
  1. Check database user has CREATE permissions
  2. Check database logs for details`

	return &gn.Error{
		Code: errcode.SchemaCreateError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("failed to create schema: %w", err),
	}
}

// ConstraintError creates an error for failures while installing
// generated columns or check constraints.
func ConstraintError(table, constraint string, err error) error {
	msg := `Cannot install <em>%s</em> on <em>%s</em>

<em>Possible causes:</em>
  - Table was not created successfully
  - Existing rows violate the constraint

<em>How to fix:</em>
  1. Ensure 'whdb create' ran to completion
  2. Check database logs for the offending rows`

	vars := []any{constraint, table}

	return &gn.Error{
		Code: errcode.SchemaConstraintError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("failed to install %s on %s: %w",
			constraint, table, err),
	}
}

// StagingError creates an error for failed staging table creation.
func StagingError(table string, err error) error {
	msg := "Cannot create staging table <em>%s</em>"
	vars := []any{table}

	return &gn.Error{
		Code: errcode.SchemaStagingError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("failed to create staging table %s: %w",
			table, err),
	}
}
