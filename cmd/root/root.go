// Package root contains the root command for the application.
package root

import (
	"fjacquet/expense-etl/internal/config"
	"fjacquet/expense-etl/internal/logging"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	// Log is the shared logger instance for commands
	Log = logrus.New()

	// Cfg is the loaded application configuration, available to all
	// subcommands after PersistentPreRun.
	Cfg *config.Config

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "expense-etl",
		Short: "Ingest bank statement exports, categorize spending and check budgets.",
		Long: `expense-etl parses per-institution statement CSV exports into a common
transaction record, categorizes each transaction with configured rules,
stores them per statement period and reports budget and threshold results.`,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			config.LoadEnv()
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			Cfg = cfg
			Log = config.ConfigureLogging(cfg)
			return nil
		},
	}
)

// Logger returns the shared logger wrapped in the logging interface used
// by the pipeline packages.
func Logger() logging.Logger {
	return logging.NewLogrusAdapterFromLogger(Log)
}
