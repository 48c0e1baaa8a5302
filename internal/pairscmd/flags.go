package pairscmd

import (
	"log/slog"
	"os"

	"github.com/icefront-lab/calvingpairs/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// pipelineFlags are shared by every command that reads an annotation export
type pipelineFlags struct {
	configPath    string
	file          string
	usableOnly    bool
	areaThreshold float64
	seed          int64
	verbose       bool

	// export only
	outputDir     string
	format        string
	trainFraction float64
}

func (f *pipelineFlags) register(fs *pflag.FlagSet) {
	def := config.Default()
	fs.StringVar(&f.configPath, "config", "", "Path to YAML config (defaults to ./"+config.DefaultConfigPath+" when present)")
	fs.StringVarP(&f.file, "file", "f", def.FileName, "Path to CVAT for Images 1.1 annotation XML")
	fs.BoolVar(&f.usableOnly, "usable-only", def.UsableOnly, "Drop partially usable and unusable frames before pairing")
	fs.Float64Var(&f.areaThreshold, "area-threshold", def.AreaThreshold, "Minimum calving box area in square pixels")
	fs.Int64Var(&f.seed, "seed", def.Seed, "Seed for the train/test shuffle")
	fs.BoolVar(&f.verbose, "verbose", false, "Verbose logging")
}

func (f *pipelineFlags) registerOutput(fs *pflag.FlagSet) {
	def := config.Default()
	fs.StringVarP(&f.outputDir, "output", "o", def.OutputDir, "Directory for the train/test pair files and manifest")
	fs.StringVar(&f.format, "format", def.Format, "Pair file format (parquet, jsonl or csv)")
	fs.Float64Var(&f.trainFraction, "train-fraction", def.TrainFraction, "Share of shuffled pairs written to the train split")
}

// resolve builds the effective config: flags > env > config file > defaults
func (f *pipelineFlags) resolve(cmd *cobra.Command) (config.Config, error) {
	cfg := config.Default()
	cfg.FileName = f.file
	cfg.UsableOnly = f.usableOnly
	cfg.AreaThreshold = f.areaThreshold
	cfg.Seed = f.seed
	// Output flags are only registered on some commands; a zero train
	// fraction is a valid value, not an unset one.
	if cmd.Flags().Lookup("output") != nil {
		cfg.OutputDir = f.outputDir
		cfg.Format = f.format
	}
	if cmd.Flags().Lookup("train-fraction") != nil {
		cfg.TrainFraction = f.trainFraction
	}

	changed := make(map[string]bool)
	cmd.Flags().Visit(func(fl *pflag.Flag) {
		changed[fl.Name] = true
	})

	if err := config.Resolve(&cfg, f.configPath, changed); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func setupLogging(verbose bool) {
	logLevel := slog.LevelInfo
	if verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(logger)
}
