package iologger

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/teams-transport/whdb/pkg/errcode"
)

// CreateLogFileError creates an error for a log file that cannot be
// created or opened.
func CreateLogFileError(path string, err error) error {
	msg := `Cannot create log file

<em>File path:</em> %s

<em>Possible causes:</em>
  - The log directory does not exist
  - Insufficient permissions

<em>How to fix:</em>
  1. Check that the directory exists and is writable
  2. Or set log destination to <em>stderr</em> in the config`

	vars := []any{path}

	return &gn.Error{
		Code: errcode.CreateLogFileError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("failed to create log file %s: %w", path, err),
	}
}
