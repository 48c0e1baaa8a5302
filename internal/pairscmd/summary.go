package pairscmd

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/icefront-lab/calvingpairs/internal/annotations"
	"github.com/icefront-lab/calvingpairs/internal/config"
	"github.com/icefront-lab/calvingpairs/internal/pairing"
)

// loadRecords reads the export named by cfg and extracts its frame records
func loadRecords(cfg config.Config) ([]annotations.FrameRecord, error) {
	slog.Info("Loading annotations", "file", cfg.FileName, "area_threshold", cfg.AreaThreshold)

	loader := annotations.NewLoader(cfg.FileName, cfg.AreaThreshold)
	records, err := loader.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load annotations: %w", err)
	}

	slog.Info("Annotations loaded", "frames", len(records))
	return records, nil
}

// SummaryReport holds the counts printed by the summary command
type SummaryReport struct {
	CalvingFrames    int
	NoCalvingPairs   int
	AugmentedPairs   int
	TestCalvingAreas []float64
}

func buildSummary(records []annotations.FrameRecord, cfg config.Config) SummaryReport {
	pairs := pairing.FromRecords(records, cfg.UsableOnly)
	labeled := pairing.Labeled(pairs)
	augmented := pairing.Augment(labeled)
	_, test := pairing.SplitFraction(labeled, pairing.NewSeededRand(cfg.Seed), cfg.TrainFraction)

	slog.Debug("Pairs built",
		"pairs", len(pairs),
		"labeled", len(labeled),
		"augmented", len(augmented),
		"test", len(test))

	return SummaryReport{
		CalvingFrames:    len(annotations.Calving(records)),
		NoCalvingPairs:   len(pairing.WithLabel(pairs, pairing.NoCalving)),
		AugmentedPairs:   len(augmented),
		TestCalvingAreas: pairing.Areas(test),
	}
}

func executeSummary(w io.Writer, cfg config.Config) error {
	records, err := loadRecords(cfg)
	if err != nil {
		return err
	}

	report := buildSummary(records, cfg)
	printSummaryReport(w, report)
	return nil
}

func printSummaryReport(w io.Writer, report SummaryReport) {
	fmt.Fprintln(w, "========================================")
	fmt.Fprintln(w, "Calving Pair Summary")
	fmt.Fprintln(w, "========================================")
	fmt.Fprintf(w, "Calving Frames:     %d\n", report.CalvingFrames)
	fmt.Fprintf(w, "No Calving Pairs:   %d\n", report.NoCalvingPairs)
	fmt.Fprintf(w, "Augmented Pairs:    %d\n", report.AugmentedPairs)
	fmt.Fprintf(w, "Test Calving Areas: %v\n", report.TestCalvingAreas)
	fmt.Fprintln(w, "========================================")
}
