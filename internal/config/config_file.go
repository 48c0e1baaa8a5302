package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultConfigPath is read when --config is not given and the file exists
const DefaultConfigPath = "calvingpairs.yaml"

// FileConfig mirrors Config with optional fields so a file can turn options off
type FileConfig struct {
	FileName      string   `yaml:"file_name"`
	UsableOnly    *bool    `yaml:"usable_only"`
	AreaThreshold float64  `yaml:"area_threshold"`
	Seed          *int64   `yaml:"seed"`
	TrainFraction *float64 `yaml:"train_fraction"`
	OutputDir     string   `yaml:"output_dir"`
	Format        string   `yaml:"format"`
}

// LoadFileConfig reads and parses a YAML config file
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	if err := yaml.Unmarshal(b, &fc); err != nil {
		return fc, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return fc, nil
}

// ApplyFileConfig applies values from a file, skipping flags set on the command line
func ApplyFileConfig(cfg *Config, fc FileConfig, changed map[string]bool) {
	s := newSetter(changed)

	s.setString("file", fc.FileName, &cfg.FileName)
	s.setBool("usable-only", fc.UsableOnly, &cfg.UsableOnly)
	s.setFloat("area-threshold", fc.AreaThreshold, &cfg.AreaThreshold)
	s.setInt64("seed", fc.Seed, &cfg.Seed)
	s.setFloatPtr("train-fraction", fc.TrainFraction, &cfg.TrainFraction)
	s.setString("output", fc.OutputDir, &cfg.OutputDir)
	s.setString("format", fc.Format, &cfg.Format)
}

// Resolve layers the config file (if any) and the environment under the
// flag values already in cfg. Flags win over env, env wins over the file.
// An empty path falls back to DefaultConfigPath when that file exists.
func Resolve(cfg *Config, path string, changed map[string]bool) error {
	explicit := path != ""
	if !explicit {
		path = DefaultConfigPath
	}

	fc, err := LoadFileConfig(path)
	switch {
	case err == nil:
		ApplyFileConfig(cfg, fc, changed)
	case !explicit && errors.Is(err, os.ErrNotExist):
	default:
		return err
	}

	if err := ApplyEnv(cfg, changed); err != nil {
		return err
	}
	return cfg.Validate()
}
