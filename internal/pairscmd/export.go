package pairscmd

import (
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/icefront-lab/calvingpairs/internal/config"
	"github.com/icefront-lab/calvingpairs/internal/export"
	"github.com/icefront-lab/calvingpairs/internal/pairing"
)

func executeExport(w io.Writer, cfg config.Config, augment bool) (*export.Manifest, error) {
	records, err := loadRecords(cfg)
	if err != nil {
		return nil, err
	}

	pairs := pairing.FromRecords(records, cfg.UsableOnly)
	if augment {
		pairs = pairing.Augment(pairs)
		slog.Info("Augmented calving pairs", "pairs", len(pairs))
	}

	train, test := pairing.SplitFraction(pairs, pairing.NewSeededRand(cfg.Seed), cfg.TrainFraction)
	slog.Info("Split pairs", "train", len(train), "test", len(test), "seed", cfg.Seed)

	manifest := export.NewManifest(export.ManifestConfig{
		AnnotationsFile: cfg.FileName,
		UsableOnly:      cfg.UsableOnly,
		AreaThreshold:   cfg.AreaThreshold,
		Augmented:       augment,
		Seed:            cfg.Seed,
		TrainFraction:   cfg.TrainFraction,
		Format:          cfg.Format,
	})
	manifest.Frames = len(records)
	manifest.Pairs = pairing.Summarize(pairs)
	manifest.Train = pairing.Summarize(train)
	manifest.Test = pairing.Summarize(test)

	splits := []struct {
		name  string
		pairs []pairing.Pair
	}{
		{"train", train},
		{"test", test},
	}
	for _, split := range splits {
		file := split.name + "." + cfg.Format
		if err := export.WritePairs(filepath.Join(cfg.OutputDir, file), split.pairs); err != nil {
			return nil, fmt.Errorf("failed to write %s pairs: %w", split.name, err)
		}
		manifest.Files = append(manifest.Files, file)
	}

	path, err := export.WriteManifest(cfg.OutputDir, manifest)
	if err != nil {
		return nil, err
	}

	absPath, _ := filepath.Abs(path)
	fmt.Fprintf(w, "Wrote %d train and %d test pairs (run %s)\n", len(train), len(test), manifest.RunID)
	fmt.Fprintf(w, "Manifest saved to: %s\n", absPath)

	return manifest, nil
}
