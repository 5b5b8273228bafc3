package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/vaibhaw-/VetGen/internal/vetgen/config"
	"github.com/vaibhaw-/VetGen/internal/vetgen/logger"
)

// flagKeys maps command line flags onto config keys. Flags only override
// the config file when set explicitly.
var flagKeys = map[string]string{
	"seed":        "generation.seed",
	"random-seed": "generation.random_seed",
	"as-of":       "generation.as_of",
	"output":      "output.path",
	"sql":         "output.sql_path",
	"dialect":     "output.sql_dialect",
	"manifest":    "output.manifest_path",
	"driver":      "database.driver",
	"dsn":         "database.dsn",
	"log-level":   "logging.level",
}

var (
	cfgFile string
	Version = "v0.1"
	rootCmd = &cobra.Command{
		Use:           "vetgen",
		Short:         "VetGen - synthetic veterinary clinic sample data",
		Long:          "VetGen: generate a seeded, reproducible vet clinic dataset and write it to xlsx, SQL or a database.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(viper.GetViper(), cmd.Flags())
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			logger.Sync()
		},
	}
)

func initConfig(v *viper.Viper, flags *pflag.FlagSet) error {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		// default: ./vetgen.yaml
		v.SetConfigFile("vetgen.yaml")
	}
	if err := v.ReadInConfig(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not read config (%v). Using defaults and flags.\n", err)
	}
	for name, key := range flagKeys {
		if f := flags.Lookup(name); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return fmt.Errorf("bind flag %s: %w", name, err)
			}
		}
	}
	if err := config.Load(v); err != nil {
		return err
	}

	if err := logger.InitLogger(config.Get().Logging.Level); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./vetgen.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error")
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(loadCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(verifyCmd)
	rootCmd.AddCommand(versionCmd)
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
