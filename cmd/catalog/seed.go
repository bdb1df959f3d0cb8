package main

import (
	"errors"
	"fmt"

	"github.com/2beens/liftlog/internal/catalog"
	"github.com/2beens/liftlog/internal/db"
	"github.com/2beens/liftlog/internal/exercises"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	catalogFile string
	dryRun      bool
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Upsert the global exercise library from a YAML catalog",
	Long: `Seed validates the YAML catalog and upserts every entry as a global exercise.
Custom exercises are never overwritten. Use --dry-run to only validate the file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		list, err := catalog.Load(catalogFile)
		if err != nil {
			return err
		}
		log.Infof("catalog [%s] valid, %d exercises", catalogFile, len(list))
		if dryRun {
			return nil
		}

		if dsn == "" {
			return errors.New("dsn not set, use --dsn or LIFTLOG_DSN")
		}
		ctx := cmd.Context()
		pool, err := db.NewDBPoolFromConnString(ctx, dsn, false)
		if err != nil {
			return fmt.Errorf("db pool: %w", err)
		}
		defer pool.Close()

		_, err = catalog.Seed(ctx, exercises.NewRepo(pool), list)
		return err
	},
}

func init() {
	seedCmd.Flags().StringVar(&catalogFile, "file", "./seed/exercises.yaml", "YAML catalog file")
	seedCmd.Flags().BoolVar(&dryRun, "dry-run", false, "validate the catalog without writing")
}
