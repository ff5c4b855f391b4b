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
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/gnames/gn"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/teams-transport/whdb/internal/iofs"
	"github.com/teams-transport/whdb/internal/iologger"
	app "github.com/teams-transport/whdb/pkg"
	"github.com/teams-transport/whdb/pkg/config"
)

var (
	homeDir string
	opts    []config.Option
	cfg     *config.Config
)

// rootCmd represents the base command when called without any
// subcommands.
var rootCmd = &cobra.Command{
	Version: fmt.Sprintf("version: %s\nbuild:   %s", app.Version, app.Build),
	Use:     "whdb",
	Short:   "whdb migrates the legacy warehouse database to PostgreSQL",
	Long: `whdb is a CLI tool for the one-time migration of the legacy
warehouse-management desktop database into a normalized PostgreSQL
schema.

The migration runs in phases:
  - create: create the normalized schema and the staging tables
  - load: stage the legacy export (CSV directory or SQLite file)
  - migrate: run the staging-to-normalized pipeline
  - audit: report row counts and unresolved references
  - serve: read-only HTTP API over the migrated data

Configuration precedence (highest to lowest):
  1. CLI flags
  2. Environment variables (WHDB_*)
  3. Config file (~/.config/whdb/config.yaml)
  4. Built-in defaults`,
	PersistentPreRunE: bootstrap,
	SilenceErrors:     true,
	SilenceUsage:      true,
}

func bootstrap(cmd *cobra.Command, args []string) error {
	var err error
	homeDir, err = os.UserHomeDir()
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureDirs(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	// Initial logging with hardcoded defaults; reconfigured below once
	// the user's config is loaded.
	defaultLog := config.LogConfig{
		Format:      "json",
		Level:       "info",
		Destination: "file",
	}
	err = iologger.Init(config.LogDir(homeDir), defaultLog, false)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureConfigFile(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	var cfgViper *config.Config
	if cfgViper, err = initConfig(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	cfg = config.New()
	opts = cfgViper.ToOptions()
	cfg.Update(opts)

	cfg.Update([]config.Option{config.OptHomeDir(homeDir)})

	// Reconfigure logging with the user's settings, appending so the
	// bootstrap lines are kept.
	err = iologger.Init(config.LogDir(cfg.HomeDir), cfg.Log, true)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	slog.Info("Configuration loaded",
		"config_file", config.ConfigFilePath(homeDir))

	return nil
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	// Remove the automatic "whdb version" prefix
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	rootCmd.Flags().BoolP("version", "V", false, "version for whdb")

	rootCmd.AddCommand(getCreateCmd())
	rootCmd.AddCommand(getLoadCmd())
	rootCmd.AddCommand(getMigrateCmd())
	rootCmd.AddCommand(getAuditCmd())
	rootCmd.AddCommand(getServeCmd())
}

func initConfig(home string) (*config.Config, error) {
	var err error
	cfgPath := config.ConfigFilePath(home)
	v := viper.New()
	v.SetConfigFile(cfgPath)

	initEnvVars(v)

	if err = v.ReadInConfig(); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	var res config.Config
	if err = v.Unmarshal(&res); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	return &res, nil
}

func initEnvVars(v *viper.Viper) {
	// Environment variables are bound one by one so the allowed set
	// stays explicit. They match the fields included in
	// config.ToOptions(), the persistent configuration.
	v.SetEnvPrefix("WHDB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Database configuration
	v.BindEnv("database.host", "WHDB_DATABASE_HOST")
	v.BindEnv("database.port", "WHDB_DATABASE_PORT")
	v.BindEnv("database.user", "WHDB_DATABASE_USER")
	v.BindEnv("database.password", "WHDB_DATABASE_PASSWORD")
	v.BindEnv("database.database", "WHDB_DATABASE_DATABASE")
	v.BindEnv("database.ssl_mode", "WHDB_DATABASE_SSL_MODE")
	v.BindEnv("database.batch_size", "WHDB_DATABASE_BATCH_SIZE")

	// API configuration
	v.BindEnv("api.port", "WHDB_API_PORT")

	// Log configuration
	v.BindEnv("log.level", "WHDB_LOG_LEVEL")
	v.BindEnv("log.format", "WHDB_LOG_FORMAT")
	v.BindEnv("log.destination", "WHDB_LOG_DESTINATION")

	// General configuration
	v.BindEnv("jobs_number", "WHDB_JOBS_NUMBER")

	v.AutomaticEnv()
}
