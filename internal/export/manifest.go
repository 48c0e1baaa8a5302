package export

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/icefront-lab/calvingpairs/internal/pairing"
	"gopkg.in/yaml.v3"
)

// ManifestFile is the name of the manifest written next to the pair files
const ManifestFile = "manifest.yaml"

// ManifestConfig echoes the settings an export was produced with
type ManifestConfig struct {
	AnnotationsFile string  `yaml:"annotationsfile"`
	UsableOnly      bool    `yaml:"usableonly"`
	AreaThreshold   float64 `yaml:"areathreshold"`
	Augmented       bool    `yaml:"augmented"`
	Seed            int64   `yaml:"seed"`
	TrainFraction   float64 `yaml:"trainfraction"`
	Format          string  `yaml:"format"`
}

// Manifest describes one export run
type Manifest struct {
	RunID     string          `yaml:"runid"`
	Timestamp string          `yaml:"timestamp"`
	Config    ManifestConfig  `yaml:"config"`
	Frames    int             `yaml:"frames"`
	Pairs     pairing.Summary `yaml:"pairs"`
	Train     pairing.Summary `yaml:"train"`
	Test      pairing.Summary `yaml:"test"`
	Files     []string        `yaml:"files"`
}

// NewManifest creates a manifest with a fresh run id and timestamp
func NewManifest(config ManifestConfig) *Manifest {
	return &Manifest{
		RunID:     uuid.NewString(),
		Timestamp: time.Now().Format("2006-01-02_15-04-05"),
		Config:    config,
	}
}

// WriteManifest saves the manifest as YAML in dir and returns its path
func WriteManifest(dir string, manifest *Manifest) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	data, err := yaml.Marshal(manifest)
	if err != nil {
		return "", fmt.Errorf("failed to marshal YAML: %w", err)
	}

	path := filepath.Join(dir, ManifestFile)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write YAML file: %w", err)
	}

	return path, nil
}

// ReadManifest loads a manifest written by WriteManifest
func ReadManifest(dir string) (*Manifest, error) {
	data, err := os.ReadFile(filepath.Join(dir, ManifestFile))
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	var manifest Manifest
	if err := yaml.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}
	return &manifest, nil
}
