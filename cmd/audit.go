/*
Copyright © 2025 Teams Transport

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"context"

	"github.com/gnames/gn"
	"github.com/spf13/cobra"
	"github.com/teams-transport/whdb/internal/ioaudit"
	"github.com/teams-transport/whdb/internal/iodb"
)

// getAuditCmd returns the audit command.
// Extracted as a function to facilitate testing and dynamic
// command registration.
func getAuditCmd() *cobra.Command {
	auditCmd := &cobra.Command{
		Use:   "audit",
		Short: "Report row counts and unresolved references",
		Long: `Audit reads the migrated database and reports per-table row counts
and the number of inventory lines whose case model name failed catalog
lookup. It never modifies data.

Examples:
  whdb audit`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAudit(cmd, args)
		},
	}

	return auditCmd
}

func runAudit(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	op := iodb.NewPgxOperator()
	if err := op.Connect(ctx, &cfg.Database); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	defer op.Close()

	aud := ioaudit.New(op)
	if _, err := aud.Audit(ctx); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	return nil
}
