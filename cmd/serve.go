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
	"os/signal"
	"syscall"

	"github.com/gnames/gn"
	"github.com/spf13/cobra"
	"github.com/teams-transport/whdb/internal/iodb"
	"github.com/teams-transport/whdb/internal/ioweb"
	"github.com/teams-transport/whdb/pkg/config"
)

// getServeCmd returns the serve command.
// Extracted as a function to facilitate testing and dynamic
// command registration.
func getServeCmd() *cobra.Command {
	var port int

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the read-only HTTP API",
		Long: `Serve starts a read-only HTTP API over the migrated database for
quick verification of results.

Endpoints:
  GET /api/health     service health check
  GET /api/customers  most recently migrated companies, newest first

Examples:
  whdb serve
  whdb serve --port 9000`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, args, port)
		},
	}

	serveCmd.Flags().IntVarP(&port, "port", "p", 0,
		"port to listen on (default from config)")

	return serveCmd
}

func runServe(_ *cobra.Command, _ []string, port int) error {
	ctx, stop := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if port != 0 {
		cfg.Update([]config.Option{config.OptAPIPort(port)})
	}

	op := iodb.NewPgxOperator()
	if err := op.Connect(ctx, &cfg.Database); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	defer op.Close()

	gn.Info("Serving API on port <em>%d</em>, Ctrl-C stops it",
		cfg.API.Port)

	srv := ioweb.New(op, cfg.API.Port)
	if err := srv.Run(ctx); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	return nil
}
