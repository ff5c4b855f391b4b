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

	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/spf13/cobra"
	"github.com/teams-transport/whdb/internal/iodb"
	"github.com/teams-transport/whdb/internal/ioload"
	"github.com/teams-transport/whdb/pkg/config"
)

// getLoadCmd returns the load command.
// Extracted as a function to facilitate testing and dynamic
// command registration.
func getLoadCmd() *cobra.Command {
	var dir, sqlitePath string
	var sources []string

	loadCmd := &cobra.Command{
		Use:   "load",
		Short: "Stage the legacy export into the staging tables",
		Long: `Load reads the legacy desktop-database export and bulk-inserts it
into the staging tables, all columns as text. No validation happens
here; the migrate command interprets the data.

The export comes either as a directory of CSV files (--dir) or as a
single SQLite file (--sqlite). Independent sources load in parallel.

Examples:
  whdb load --dir /data/export
  whdb load --sqlite /data/legacy.db
  whdb load --dir /data/export --sources stg_companies,stg_stores`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLoad(cmd, args, dir, sqlitePath, sources)
		},
	}

	loadCmd.Flags().StringVarP(&dir, "dir", "d", "",
		"directory with the CSV export files")
	loadCmd.Flags().StringVarP(&sqlitePath, "sqlite", "s", "",
		"path to a SQLite export of the legacy database")
	loadCmd.Flags().StringSliceVar(&sources, "sources", nil,
		"restrict the load to the named staging tables")
	loadCmd.MarkFlagsOneRequired("dir", "sqlite")
	loadCmd.MarkFlagsMutuallyExclusive("dir", "sqlite")

	return loadCmd
}

func runLoad(
	_ *cobra.Command,
	_ []string,
	dir, sqlitePath string,
	sources []string,
) error {
	ctx := context.Background()

	var loadOpts []config.Option
	if dir != "" {
		loadOpts = append(loadOpts, config.OptImportDir(dir))
	}
	if sqlitePath != "" {
		loadOpts = append(loadOpts, config.OptImportSQLitePath(sqlitePath))
	}
	if len(sources) > 0 {
		loadOpts = append(loadOpts, config.OptImportSources(sources))
	}
	cfg.Update(loadOpts)

	op := iodb.NewPgxOperator()
	if err := op.Connect(ctx, &cfg.Database); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	defer op.Close()

	gn.Info("Connected to database: <em>%s@%s:%d/%s</em>",
		cfg.Database.User, cfg.Database.Host,
		cfg.Database.Port, cfg.Database.Database)

	ldr := ioload.New(cfg, op)

	counts, err := ldr.Load(ctx)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	var total int
	for table, n := range counts {
		gn.Info("<em>%s</em>: %s rows staged", table,
			humanize.Comma(int64(n)))
		total += n
	}
	gn.Info("Staged <em>%s</em> rows. Run <em>whdb migrate</em> next.",
		humanize.Comma(int64(total)))

	return nil
}
