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
	"github.com/teams-transport/whdb/internal/iodb"
	"github.com/teams-transport/whdb/internal/iomigrate"
)

// getMigrateCmd returns the migrate command.
// Extracted as a function to facilitate testing and dynamic
// command registration.
func getMigrateCmd() *cobra.Command {
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run the staging-to-normalized migration pipeline",
		Long: `Migrate transforms the staged legacy export into the normalized
schema.

The pipeline runs as an ordered list of steps, each committing
independently:
  1. Deduplicate addresses
  2. Materialize companies, stores and case models
  3. Materialize quotes and job cost estimates
  4. Link inventory lines to jobs, stores and case models
  5. Drop the staging tables

A failed step halts the run and leaves prior commits intact.
Re-running against populated tables fails on duplicate keys; use
'whdb create --force' and 'whdb load' to start over.

Examples:
  whdb migrate`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigrateCmd(cmd, args)
		},
	}

	return migrateCmd
}

func runMigrateCmd(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	op := iodb.NewPgxOperator()
	if err := op.Connect(ctx, &cfg.Database); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	defer op.Close()

	gn.Info("Connected to database: <em>%s@%s:%d/%s</em>",
		cfg.Database.User, cfg.Database.Host,
		cfg.Database.Port, cfg.Database.Database)

	mig := iomigrate.New(cfg, op)
	if err := mig.Migrate(ctx); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	gn.Info("Verify the result with <em>whdb audit</em>.")

	return nil
}
