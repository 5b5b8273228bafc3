package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/vaibhaw-/VetGen/internal/vetgen/config"
	"github.com/vaibhaw-/VetGen/internal/vetgen/export"
	"github.com/vaibhaw-/VetGen/internal/vetgen/generator"
	"github.com/vaibhaw-/VetGen/internal/vetgen/store"
)

var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Generate the dataset and load it into a database",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runLoad(cmd.Context(), config.Get(), cmd.OutOrStdout())
	},
}

func init() {
	loadCmd.Flags().Int64("seed", 0, "random seed (default 42)")
	loadCmd.Flags().Bool("random-seed", false, "ignore --seed and pick a time based seed")
	loadCmd.Flags().String("as-of", "", "reference date for relative dates (default today)")
	loadCmd.Flags().String("driver", "", "database driver: postgres, mysql, sqlite")
	loadCmd.Flags().String("dsn", "", "data source name (default built from database.* config)")
}

// dsnFor returns the configured DSN, or one assembled from the
// host/port/user settings for server databases.
func dsnFor(db config.DatabaseCfg, d export.Dialect) (string, error) {
	if db.DSN != "" {
		return db.DSN, nil
	}
	if d == export.SQLite {
		return "", fmt.Errorf("database.dsn is required for %s", d)
	}
	return store.BuildDSN(string(d), db.User, db.Password, db.Host, db.Port, db.Name), nil
}

func runLoad(ctx context.Context, cfg *config.Config, out io.Writer) error {
	d, err := export.ParseDialect(cfg.Database.Driver)
	if err != nil {
		return err
	}
	dsn, err := dsnFor(cfg.Database, d)
	if err != nil {
		return err
	}
	opts, err := resolveRun(cfg)
	if err != nil {
		return err
	}

	db, err := store.Open(ctx, d, dsn)
	if err != nil {
		return err
	}
	defer db.Close()

	counts, err := store.Load(ctx, db, d, generator.Generate(opts))
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "✅ %s 적재 완료!\n", d)
	fmt.Fprintf(out, "환자 수: %d\n", counts.Patients)
	fmt.Fprintf(out, "방문 기록: %d\n", counts.Visits)
	fmt.Fprintf(out, "검사 결과: %d\n", counts.TestResults)
	fmt.Fprintf(out, "약물 처방: %d\n", counts.Medications)
	return nil
}
