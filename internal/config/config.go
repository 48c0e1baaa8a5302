package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/icefront-lab/calvingpairs/internal/annotations"
	"github.com/icefront-lab/calvingpairs/internal/export"
	"github.com/icefront-lab/calvingpairs/internal/pairing"
)

// Config holds the pipeline settings
type Config struct {
	FileName      string
	UsableOnly    bool
	AreaThreshold float64
	Seed          int64
	TrainFraction float64
	OutputDir     string
	Format        string
}

// Default returns a Config with default values
func Default() Config {
	return Config{
		FileName:      annotations.DefaultAnnotationsFile,
		UsableOnly:    true,
		AreaThreshold: annotations.DefaultAreaThreshold,
		Seed:          pairing.DefaultSeed,
		TrainFraction: pairing.DefaultTrainFraction,
		OutputDir:     "./pairs",
		Format:        export.FormatParquet,
	}
}

// Validate checks the configuration for errors
func (c *Config) Validate() error {
	if c.FileName == "" {
		return fmt.Errorf("file name is required")
	}
	if c.AreaThreshold <= 0 {
		return fmt.Errorf("area threshold must be positive, got %v", c.AreaThreshold)
	}
	if c.TrainFraction < 0 || c.TrainFraction > 1 {
		return fmt.Errorf("train fraction must be between 0 and 1, got %v", c.TrainFraction)
	}
	if _, err := export.FormatOf("pairs." + c.Format); err != nil {
		return err
	}
	return nil
}

// Environment variables read by ApplyEnv
const (
	EnvFileName      = "CALVING_FILE_NAME"
	EnvUsableOnly    = "CALVING_USABLE_ONLY"
	EnvAreaThreshold = "CALVING_AREA_THRESHOLD"
	EnvSeed          = "CALVING_SEED"
)

// ApplyEnv applies environment overrides, skipping flags set on the command line
func ApplyEnv(cfg *Config, changed map[string]bool) error {
	s := newSetter(changed)

	s.setString("file", os.Getenv(EnvFileName), &cfg.FileName)
	if err := s.setBoolFromString("usable-only", os.Getenv(EnvUsableOnly), &cfg.UsableOnly); err != nil {
		return err
	}
	if err := s.setFloatFromString("area-threshold", os.Getenv(EnvAreaThreshold), &cfg.AreaThreshold); err != nil {
		return err
	}
	if err := s.setInt64FromString("seed", os.Getenv(EnvSeed), &cfg.Seed); err != nil {
		return err
	}
	return nil
}

// setter applies values only when the matching flag was not set explicitly
type setter struct {
	changed map[string]bool
}

func newSetter(changed map[string]bool) *setter {
	return &setter{changed: changed}
}

func (s *setter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

func (s *setter) setFloat(flag string, value float64, dst *float64) {
	if value <= 0 || s.changed[flag] {
		return
	}
	*dst = value
}

// setFloatPtr keeps an explicit zero, which setFloat treats as unset
func (s *setter) setFloatPtr(flag string, value *float64, dst *float64) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

func (s *setter) setBool(flag string, value *bool, dst *bool) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

func (s *setter) setInt64(flag string, value *int64, dst *int64) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

func (s *setter) setBoolFromString(flag, value string, dst *bool) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = b
	return nil
}

func (s *setter) setFloatFromString(flag, value string, dst *float64) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	s.setFloat(flag, f, dst)
	return nil
}

func (s *setter) setInt64FromString(flag, value string, dst *int64) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	i, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = i
	return nil
}
