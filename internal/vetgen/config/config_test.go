package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
)

func TestLoad_Defaults(t *testing.T) {
	v := viper.New()
	if err := Load(v); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	cfg := Get()
	if cfg.Generation.Seed != 42 {
		t.Errorf("default Seed = %v, want 42", cfg.Generation.Seed)
	}
	if cfg.Generation.RandomSeed {
		t.Error("default RandomSeed = true, want false")
	}
	if cfg.Output.Path != DefaultOutputPath {
		t.Errorf("default Path = %v, want %v", cfg.Output.Path, DefaultOutputPath)
	}
	if cfg.Output.SQLDialect != "postgres" {
		t.Errorf("default SQLDialect = %v, want postgres", cfg.Output.SQLDialect)
	}
	if cfg.Publish.S3.Region != "us-east-1" {
		t.Errorf("default Region = %v, want us-east-1", cfg.Publish.S3.Region)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("default Level = %v, want info", cfg.Logging.Level)
	}
}

func TestLoad_FullConfig(t *testing.T) {
	v := viper.New()
	v.Set("generation.seed", 7)
	v.Set("generation.as_of", "2025-03-15")
	v.Set("output.path", "./out/sample.xlsx")
	v.Set("output.sql_path", "./out/seed.sql")
	v.Set("output.sql_dialect", "mysql")
	v.Set("output.manifest_path", "./out/manifest.yaml")
	v.Set("database.driver", "sqlite")
	v.Set("database.dsn", "file:vet.db")
	v.Set("publish.s3.bucket", "vet-samples")
	v.Set("publish.s3.prefix", "runs")
	v.Set("publish.s3.path_style", true)
	v.Set("logging.level", "debug")

	if err := Load(v); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	cfg := Get()

	if cfg.Generation.Seed != 7 {
		t.Errorf("Seed = %v, want 7", cfg.Generation.Seed)
	}
	if cfg.Generation.AsOf != "2025-03-15" {
		t.Errorf("AsOf = %v, want 2025-03-15", cfg.Generation.AsOf)
	}
	if cfg.Output.Path != "./out/sample.xlsx" {
		t.Errorf("Path = %v, want ./out/sample.xlsx", cfg.Output.Path)
	}
	if cfg.Output.SQLPath != "./out/seed.sql" {
		t.Errorf("SQLPath = %v, want ./out/seed.sql", cfg.Output.SQLPath)
	}
	if cfg.Output.SQLDialect != "mysql" {
		t.Errorf("SQLDialect = %v, want mysql", cfg.Output.SQLDialect)
	}
	if cfg.Output.ManifestPath != "./out/manifest.yaml" {
		t.Errorf("ManifestPath = %v, want ./out/manifest.yaml", cfg.Output.ManifestPath)
	}
	if cfg.Database.Driver != "sqlite" || cfg.Database.DSN != "file:vet.db" {
		t.Errorf("Database = %+v, want sqlite file:vet.db", cfg.Database)
	}
	if cfg.Publish.S3.Bucket != "vet-samples" || cfg.Publish.S3.Prefix != "runs" || !cfg.Publish.S3.PathStyle {
		t.Errorf("Publish.S3 = %+v", cfg.Publish.S3)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Level = %v, want debug", cfg.Logging.Level)
	}
}

func TestLoad_FromYAMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "vetgen.yaml")
	content := `
generation:
  seed: 0
  random_seed: true
output:
  path: sample.xlsx
logging:
  level: warn
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		t.Fatalf("ReadInConfig() error = %v", err)
	}
	if err := Load(v); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	cfg := Get()
	if cfg.Generation.Seed != 0 {
		t.Errorf("Seed = %v, want explicit 0 over the default", cfg.Generation.Seed)
	}
	if !cfg.Generation.RandomSeed {
		t.Error("RandomSeed = false, want true")
	}
	if cfg.Output.Path != "sample.xlsx" {
		t.Errorf("Path = %v, want sample.xlsx", cfg.Output.Path)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("Level = %v, want warn", cfg.Logging.Level)
	}
}

func TestLoad_InvalidConfig(t *testing.T) {
	v := viper.New()
	v.Set("generation.seed", "not-a-number")

	if err := Load(v); err == nil {
		t.Error("Load() error = nil, want error for invalid config")
	}
}

func TestGet_Singleton(t *testing.T) {
	// Reset global config
	cfg = nil

	c1 := Get()
	if c1 == nil {
		t.Fatal("Get() returned nil")
	}
	if c2 := Get(); c2 != c1 {
		t.Error("Get() returned different instance")
	}
}

func TestParseAsOf(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "empty", input: "", want: ""},
		{name: "iso date", input: "2025-03-15", want: "2025-03-15"},
		{name: "rfc3339", input: "2025-03-15T10:30:00Z", want: "2025-03-15"},
		{name: "slashes", input: "2025/03/15", want: "2025-03-15"},
		{name: "garbage", input: "not a date", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAsOf(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidAsOf) {
					t.Fatalf("ParseAsOf(%q) error = %v, want ErrInvalidAsOf", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseAsOf(%q) error = %v", tt.input, err)
			}
			if tt.want == "" {
				if !got.IsZero() {
					t.Errorf("ParseAsOf(%q) = %v, want zero time", tt.input, got)
				}
				return
			}
			if s := got.Format(time.DateOnly); s != tt.want {
				t.Errorf("ParseAsOf(%q) = %s, want %s", tt.input, s, tt.want)
			}
		})
	}
}
