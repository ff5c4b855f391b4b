package ioweb

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/teams-transport/whdb/pkg/errcode"
)

// NotConnectedError creates an error for when the server is started
// without a database connection.
func NotConnectedError() error {
	msg := "API server started without database connection"

	return &gn.Error{
		Code: errcode.DBNotConnectedError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("not connected to database"),
	}
}

// ServerError creates an error for a failed HTTP server.
func ServerError(port int, err error) error {
	msg := `API server failed on port <em>%d</em>

<em>Possible causes:</em>
  - The port is already in use
  - The process lacks permission to bind it`

	vars := []any{port}

	return &gn.Error{
		Code: errcode.APIServerError,
		Vars: vars,
		Msg:  msg,
		Err:  fmt.Errorf("api server on port %d: %w", port, err),
	}
}
