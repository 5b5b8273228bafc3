package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/vaibhaw-/VetGen/internal/vetgen/config"
	"github.com/vaibhaw-/VetGen/internal/vetgen/export"
	"github.com/vaibhaw-/VetGen/internal/vetgen/store"
)

var errCheckFailed = errors.New("database check found violations")

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check a loaded database for row counts and broken invariants",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCheck(cmd.Context(), config.Get(), cmd.OutOrStdout())
	},
}

func init() {
	checkCmd.Flags().String("driver", "", "database driver: postgres, mysql, sqlite")
	checkCmd.Flags().String("dsn", "", "data source name (default built from database.* config)")
}

func runCheck(ctx context.Context, cfg *config.Config, out io.Writer) error {
	d, err := export.ParseDialect(cfg.Database.Driver)
	if err != nil {
		return err
	}
	dsn, err := dsnFor(cfg.Database, d)
	if err != nil {
		return err
	}
	db, err := store.Open(ctx, d, dsn)
	if err != nil {
		return err
	}
	defer db.Close()

	r, err := store.Check(ctx, db, d)
	if err != nil {
		return err
	}
	fmt.Fprint(out, r)
	if !r.OK() {
		return errCheckFailed
	}
	return nil
}
