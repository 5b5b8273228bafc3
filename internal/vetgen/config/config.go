package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/araddon/dateparse"
	"github.com/spf13/viper"
)

type LoggingCfg struct {
	Level string `mapstructure:"level"`
}

type GenerationCfg struct {
	Seed int64 `mapstructure:"seed"`

	// RandomSeed ignores Seed and draws a time based one; the chosen value
	// is still recorded in the run manifest.
	RandomSeed bool `mapstructure:"random_seed"`

	// AsOf overrides "today" for relative dates; any format dateparse understands.
	AsOf string `mapstructure:"as_of"`
}

type OutputCfg struct {
	Path         string `mapstructure:"path"`
	SQLPath      string `mapstructure:"sql_path"`
	SQLDialect   string `mapstructure:"sql_dialect"`
	ManifestPath string `mapstructure:"manifest_path"`
}

type DatabaseCfg struct {
	Driver   string `mapstructure:"driver"`
	DSN      string `mapstructure:"dsn"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
}

type S3Cfg struct {
	Bucket    string `mapstructure:"bucket"`
	Region    string `mapstructure:"region"`
	Endpoint  string `mapstructure:"endpoint"`
	Prefix    string `mapstructure:"prefix"`
	PathStyle bool   `mapstructure:"path_style"`
}

type PublishCfg struct {
	S3 S3Cfg `mapstructure:"s3"`
}

type Config struct {
	Generation GenerationCfg `mapstructure:"generation"`
	Output     OutputCfg     `mapstructure:"output"`
	Database   DatabaseCfg   `mapstructure:"database"`
	Publish    PublishCfg    `mapstructure:"publish"`
	Logging    LoggingCfg    `mapstructure:"logging"`
}

// DefaultOutputPath is the workbook name of the reference sample.
const DefaultOutputPath = "샘플_데이터_50명.xlsx"

// ErrInvalidAsOf is returned when generation.as_of cannot be parsed.
var ErrInvalidAsOf = errors.New("invalid as_of date")

var cfg *Config

// Load populates global config from a viper instance
func Load(v *viper.Viper) error {
	// set defaults
	v.SetDefault("generation.seed", 42)
	v.SetDefault("output.path", DefaultOutputPath)
	v.SetDefault("output.sql_dialect", "postgres")
	v.SetDefault("database.host", "127.0.0.1")
	v.SetDefault("publish.s3.region", "us-east-1")
	v.SetDefault("logging.level", "info")

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return fmt.Errorf("unmarshal config: %w", err)
	}
	cfg = &c
	return nil
}

func Get() *Config {
	if cfg == nil {
		cfg = &Config{}
	}
	return cfg
}

// ParseAsOf parses the configured reference date. An empty value yields
// the zero time, which callers treat as "today".
func ParseAsOf(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := dateparse.ParseIn(s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w %q: %v", ErrInvalidAsOf, s, err)
	}
	return t, nil
}
