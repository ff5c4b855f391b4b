package ioaudit

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/teams-transport/whdb/pkg/errcode"
)

// NotConnectedError creates an error for when an audit is attempted
// without a database connection.
func NotConnectedError() error {
	msg := "Audit attempted without database connection"

	return &gn.Error{
		Code: errcode.DBNotConnectedError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("not connected to database"),
	}
}

// QueryError creates an error for a failed audit query.
func QueryError(table string, err error) error {
	msg := `Cannot audit table <em>%s</em>

<em>Possible causes:</em>
  - The migration has not been run yet
  - The database schema was changed outside whdb`

	vars := []any{table}

	return &gn.Error{
		Code: errcode.AuditQueryError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("audit query failed for %s: %w", table, err),
	}
}
