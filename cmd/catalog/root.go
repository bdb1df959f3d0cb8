package main

import (
	"os"

	"github.com/2beens/liftlog/internal/logging"

	"github.com/spf13/cobra"
)

var (
	dsn      string
	logLevel string
)

var rootCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Liftlog database and exercise catalog tool",
	Long: `Catalog prepares the liftlog database.

  $ catalog migrate --dsn postgres://postgres@localhost:5432/liftlog --path ./migrations
  $ catalog seed --dsn postgres://postgres@localhost:5432/liftlog --file ./seed/exercises.yaml

The DSN can also be given with the LIFTLOG_DSN env var.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Setup(logging.LoggerSetupParams{
			LogToStdout: true,
			LogLevel:    logLevel,
		})
		if dsn == "" {
			dsn = os.Getenv("LIFTLOG_DSN")
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dsn, "dsn", "", "postgres connection string (default $LIFTLOG_DSN)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level [trace | debug | info | warn | error]")
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)
}
