package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vaibhaw-/VetGen/internal/vetgen/config"
	"github.com/vaibhaw-/VetGen/internal/vetgen/dataset"
	"github.com/vaibhaw-/VetGen/internal/vetgen/export"
	"github.com/vaibhaw-/VetGen/internal/vetgen/generator"
	"github.com/vaibhaw-/VetGen/internal/vetgen/logger"
	"github.com/vaibhaw-/VetGen/internal/vetgen/manifest"
	"github.com/vaibhaw-/VetGen/internal/vetgen/publish"
)

var generateFlagPublish bool

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate the sample workbook",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGenerate(cmd.Context(), config.Get(), generateFlagPublish, cmd.OutOrStdout())
	},
}

func init() {
	generateCmd.Flags().Int64("seed", 0, "random seed (default 42)")
	generateCmd.Flags().Bool("random-seed", false, "ignore --seed and pick a time based seed")
	generateCmd.Flags().String("as-of", "", "reference date for relative dates (default today)")
	generateCmd.Flags().String("output", "", "workbook path (default "+config.DefaultOutputPath+")")
	generateCmd.Flags().String("sql", "", "also write a SQL script to this path")
	generateCmd.Flags().String("dialect", "", "SQL script dialect: postgres, mysql, sqlite")
	generateCmd.Flags().String("manifest", "", "write a YAML run manifest to this path")
	generateCmd.Flags().BoolVar(&generateFlagPublish, "publish", false, "upload the workbook to the configured S3 bucket")
}

// resolveRun turns configured generation settings into explicit options so
// that the recorded seed and date always reproduce the run.
func resolveRun(cfg *config.Config) (generator.Options, error) {
	asOf, err := config.ParseAsOf(cfg.Generation.AsOf)
	if err != nil {
		return generator.Options{}, err
	}
	if asOf.IsZero() {
		asOf = time.Now()
	}
	seed := cfg.Generation.Seed
	if cfg.Generation.RandomSeed {
		seed = time.Now().UnixNano()
	}
	return generator.Options{Seed: seed, AsOf: asOf}, nil
}

func runGenerate(ctx context.Context, cfg *config.Config, doPublish bool, out io.Writer) error {
	opts, err := resolveRun(cfg)
	if err != nil {
		return err
	}
	ds := generator.Generate(opts)
	tables := export.Tables(ds)

	path := cfg.Output.Path
	if path == "" {
		path = config.DefaultOutputPath
	}
	if err := export.WriteWorkbookFile(path, tables); err != nil {
		return err
	}

	if cfg.Output.SQLPath != "" {
		if err := writeSQLFile(cfg.Output.SQLPath, cfg.Output.SQLDialect, ds); err != nil {
			return err
		}
	}

	var publishedTo string
	if doPublish {
		s3cfg := cfg.Publish.S3
		p, err := publish.New(ctx, publish.Config{
			Bucket:    s3cfg.Bucket,
			Region:    s3cfg.Region,
			Endpoint:  s3cfg.Endpoint,
			Prefix:    s3cfg.Prefix,
			PathStyle: s3cfg.PathStyle,
		})
		if err != nil {
			return fmt.Errorf("publish: %w", err)
		}
		if publishedTo, err = p.UploadFile(ctx, path, publish.XLSXContentType); err != nil {
			return fmt.Errorf("publish: %w", err)
		}
	}

	if cfg.Output.ManifestPath != "" {
		m := manifest.New(opts.Seed, dataset.DateOf(opts.AsOf), path)
		if m.WorkbookSHA256, err = manifest.FileDigest(path); err != nil {
			return err
		}
		m.TablesSHA256 = export.Fingerprint(tables)
		for _, t := range tables {
			m.Sheets = append(m.Sheets, t.Name)
		}
		m.Counts = ds.Counts()
		m.SQLScript = cfg.Output.SQLPath
		m.PublishedTo = publishedTo
		if err := manifest.Write(cfg.Output.ManifestPath, m); err != nil {
			return err
		}
		logger.L().Infow("Manifest written", "path", cfg.Output.ManifestPath, "run_id", m.RunID)
	}

	printSummary(out, ds.Counts())
	return nil
}

func writeSQLFile(path, dialect string, ds *dataset.Dataset) error {
	d, err := export.ParseDialect(dialect)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create sql file: %w", err)
	}
	if err := export.WriteSQL(f, d, ds); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close sql file: %w", err)
	}
	logger.L().Infow("SQL script written", "path", path, "dialect", d)
	return nil
}

func printSummary(w io.Writer, c dataset.Counts) {
	fmt.Fprintln(w, "✅ Excel 파일 생성 완료!")
	fmt.Fprintf(w, "환자 수: %d\n", c.Patients)
	fmt.Fprintf(w, "방문 기록: %d\n", c.Visits)
	fmt.Fprintf(w, "검사 결과: %d\n", c.TestResults)
	fmt.Fprintf(w, "약물 처방: %d\n", c.Medications)
}
