package manifest

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/vaibhaw-/VetGen/internal/vetgen/dataset"
)

// Manifest records how a workbook was produced so a run can be reproduced
// and its output checked later.
type Manifest struct {
	RunID          string         `yaml:"run_id"`
	Seed           int64          `yaml:"seed"`
	AsOf           string         `yaml:"as_of"`
	GeneratedAt    time.Time      `yaml:"generated_at"`
	Output         string         `yaml:"output"`
	WorkbookSHA256 string         `yaml:"workbook_sha256,omitempty"`
	TablesSHA256   string         `yaml:"tables_sha256"`
	Sheets         []string       `yaml:"sheets"`
	Counts         dataset.Counts `yaml:"counts"`
	SQLScript      string         `yaml:"sql_script,omitempty"`
	PublishedTo    string         `yaml:"published_to,omitempty"`
}

// New starts a manifest with a fresh run id.
func New(seed int64, asOf dataset.Date, output string) *Manifest {
	return &Manifest{
		RunID:       uuid.NewString(),
		Seed:        seed,
		AsOf:        asOf.String(),
		GeneratedAt: time.Now().UTC().Truncate(time.Second),
		Output:      output,
	}
}

// FileDigest returns the hex sha256 of the file at path.
func FileDigest(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("hash %s: %w", path, err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// Write stores m as YAML at path, creating parent directories.
func Write(path string, m *Manifest) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}
	b, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("marshal manifest: %w", err)
	}
	if err := os.WriteFile(path, b, 0644); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	return nil
}

// Read loads a manifest written by Write.
func Read(path string) (*Manifest, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	var m Manifest
	if err := yaml.Unmarshal(b, &m); err != nil {
		return nil, fmt.Errorf("unmarshal manifest: %w", err)
	}
	return &m, nil
}

// Verify reports whether the file at path still matches the recorded
// workbook digest.
func (m *Manifest) Verify(path string) (bool, error) {
	if m.WorkbookSHA256 == "" {
		return false, fmt.Errorf("manifest %s has no workbook digest", m.RunID)
	}
	got, err := FileDigest(path)
	if err != nil {
		return false, err
	}
	return got == m.WorkbookSHA256, nil
}
