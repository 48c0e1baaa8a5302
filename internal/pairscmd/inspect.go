package pairscmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/icefront-lab/calvingpairs/internal/annotations"
	"github.com/icefront-lab/calvingpairs/internal/config"
	"github.com/icefront-lab/calvingpairs/internal/pairing"
)

func executeInspect(w io.Writer, cfg config.Config, limit int) error {
	loader := annotations.NewLoader(cfg.FileName, cfg.AreaThreshold)

	var records []annotations.FrameRecord
	var err error
	if limit > 0 {
		records, err = loader.LoadSample(limit)
	} else {
		records, err = loader.Load()
	}
	if err != nil {
		return fmt.Errorf("failed to load annotations: %w", err)
	}

	fmt.Fprintf(w, "Loaded %d frames from %s\n", len(records), cfg.FileName)
	fmt.Fprintln(w, strings.Repeat("=", 80))

	counts := make(map[pairing.Label]int)
	for i, r := range records {
		label := pairing.LabelOf(r)
		counts[label]++
		fmt.Fprintf(w, "%5d  %s\n", i+1, describeRecord(r, label))
	}

	fmt.Fprintln(w, strings.Repeat("=", 80))
	fmt.Fprintf(w, "Calving:    %d\n", counts[pairing.Calving])
	fmt.Fprintf(w, "No calving: %d\n", counts[pairing.NoCalving])
	fmt.Fprintf(w, "Unlabeled:  %d\n", counts[pairing.Unlabeled])
	fmt.Fprintf(w, "Usable:     %d\n", len(annotations.WithUsability(records, annotations.Usable)))
	fmt.Fprintf(w, "Partially:  %d\n", len(annotations.WithUsability(records, annotations.PartiallyUsable)))
	fmt.Fprintf(w, "Unusable:   %d\n", len(annotations.WithUsability(records, annotations.Unusable)))

	return nil
}

func describeRecord(r annotations.FrameRecord, label pairing.Label) string {
	parts := []string{r.ID, string(label)}
	if r.Usability != nil {
		parts = append(parts, "usability="+string(*r.Usability))
	}
	if r.HasRotation() {
		parts = append(parts, "rotation")
	}
	if r.CalvingArea != nil {
		parts = append(parts, fmt.Sprintf("area=%g", *r.CalvingArea))
	}
	return strings.Join(parts, "  ")
}
