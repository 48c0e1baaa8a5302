package cmd

import (
	"github.com/icefront-lab/calvingpairs/internal/pairscmd"
	"github.com/spf13/cobra"
)

func newPairsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pairs",
		Short: "Calving pair extraction tools",
		Long: `Tools for turning annotated frames into calving classifier training pairs.

Frames are paired with their predecessor in export order. Each pair takes the
label of its later frame, and frames tagged partially usable or unusable are
skipped by default.`,
	}

	cmd.AddCommand(pairscmd.NewSummaryCmd())
	cmd.AddCommand(pairscmd.NewInspectCmd())
	cmd.AddCommand(pairscmd.NewExportCmd())
	cmd.AddCommand(pairscmd.NewReportCmd())

	return cmd
}
