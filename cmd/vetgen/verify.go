package main

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/vaibhaw-/VetGen/internal/vetgen/config"
	"github.com/vaibhaw-/VetGen/internal/vetgen/dataset"
	"github.com/vaibhaw-/VetGen/internal/vetgen/export"
	"github.com/vaibhaw-/VetGen/internal/vetgen/generator"
	"github.com/vaibhaw-/VetGen/internal/vetgen/manifest"
)

var errVerifyFailed = errors.New("workbook does not match manifest")

var verifyFlagWorkbook string

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Check a workbook against its run manifest",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runVerify(config.Get().Output.ManifestPath, verifyFlagWorkbook, cmd.OutOrStdout())
	},
}

func init() {
	verifyCmd.Flags().String("manifest", "", "manifest written by generate --manifest")
	verifyCmd.Flags().StringVar(&verifyFlagWorkbook, "workbook", "", "workbook to check (default the manifest's output path)")
}

// runVerify checks the workbook digest and regenerates the dataset from
// the recorded seed and date to confirm the run is reproducible.
func runVerify(manifestPath, workbook string, out io.Writer) error {
	if manifestPath == "" {
		return errors.New("--manifest is required")
	}
	m, err := manifest.Read(manifestPath)
	if err != nil {
		return err
	}
	if workbook == "" {
		workbook = m.Output
	}

	digestOK, err := m.Verify(workbook)
	if err != nil {
		return err
	}

	asOf, err := time.Parse(dataset.DateLayout, m.AsOf)
	if err != nil {
		return fmt.Errorf("manifest as_of: %w", err)
	}
	ds := generator.Generate(generator.Options{Seed: m.Seed, AsOf: asOf})
	tablesOK := export.Fingerprint(export.Tables(ds)) == m.TablesSHA256

	fmt.Fprintf(out, "run %s\n", m.RunID)
	fmt.Fprintf(out, "workbook digest: %s\n", okText(digestOK))
	fmt.Fprintf(out, "regenerated tables: %s\n", okText(tablesOK))
	if !digestOK || !tablesOK {
		return errVerifyFailed
	}
	return nil
}

func okText(ok bool) string {
	if ok {
		return "OK"
	}
	return "MISMATCH"
}
