package main

import (
	"errors"

	"github.com/2beens/liftlog/internal/db"

	"github.com/spf13/cobra"
)

var migrationsPath string

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending SQL migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		if dsn == "" {
			return errors.New("dsn not set, use --dsn or LIFTLOG_DSN")
		}
		return db.RunMigrations(dsn, migrationsPath)
	},
}

func init() {
	migrateCmd.Flags().StringVar(&migrationsPath, "path", "./migrations", "migrations directory")
}
