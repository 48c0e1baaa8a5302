package pairscmd

import (
	"fmt"

	"github.com/icefront-lab/calvingpairs/internal/config"
	"github.com/spf13/cobra"
)

// NewSummaryCmd creates the summary command, which prints the headline counts
// of an annotation export
func NewSummaryCmd() *cobra.Command {
	var flags pipelineFlags

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print calving frame and pair counts for an annotation export",
		Long: `Parse a CVAT for Images 1.1 export and print:

  - the number of frames with a qualifying calving box
  - the number of No calving pairs
  - the number of pairs after calving augmentation
  - the calving box areas that land in the test split`,
		Example: `  # Summarize the default export
  calvingpairs pairs summary

  # Keep partially usable and unusable frames
  calvingpairs pairs summary --file august_annotations.xml --usable-only=false`,
		RunE: func(cmd *cobra.Command, args []string) error {
			setupLogging(flags.verbose)

			cfg, err := flags.resolve(cmd)
			if err != nil {
				return err
			}
			return executeSummary(cmd.OutOrStdout(), cfg)
		},
	}

	flags.register(cmd.Flags())
	cmd.Flags().Float64Var(&flags.trainFraction, "train-fraction", config.Default().TrainFraction, "Share of shuffled pairs in the train split")

	return cmd
}

// NewInspectCmd creates the inspect command
func NewInspectCmd() *cobra.Command {
	var flags pipelineFlags
	var limit int

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Inspect extracted frame labels",
		Long: `Print the labels extracted for each frame of an annotation export:
usability, significant rotation and the area of the first qualifying calving box.`,
		Example: `  # Inspect the first 20 frames
  calvingpairs pairs inspect --file july_annotations_v2.xml --limit 20

  # Inspect every frame
  calvingpairs pairs inspect --limit 0`,
		RunE: func(cmd *cobra.Command, args []string) error {
			setupLogging(flags.verbose)

			cfg, err := flags.resolve(cmd)
			if err != nil {
				return err
			}
			return executeInspect(cmd.OutOrStdout(), cfg, limit)
		},
	}

	flags.register(cmd.Flags())
	cmd.Flags().IntVar(&limit, "limit", 50, "Number of frames to inspect (0 for all)")

	return cmd
}

// NewExportCmd creates the export command
func NewExportCmd() *cobra.Command {
	var flags pipelineFlags
	var augment bool

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write train/test pair files for the calving classifier",
		Long: `Build before/after pairs from an annotation export, optionally oversample
the calving class, split with a fixed seed and write train and test pair
files plus a manifest.yaml describing the run.`,
		Example: `  # Write parquet pairs to ./pairs
  calvingpairs pairs export

  # Augmented CSV pairs
  calvingpairs pairs export --augment --format csv --output ./out`,
		RunE: func(cmd *cobra.Command, args []string) error {
			setupLogging(flags.verbose)

			cfg, err := flags.resolve(cmd)
			if err != nil {
				return err
			}
			_, err = executeExport(cmd.OutOrStdout(), cfg, augment)
			return err
		},
	}

	flags.register(cmd.Flags())
	flags.registerOutput(cmd.Flags())
	cmd.Flags().BoolVar(&augment, "augment", false, "Replace calving pairs with the cartesian product of their endpoints")

	return cmd
}

// NewReportCmd creates the report command
func NewReportCmd() *cobra.Command {
	var pairsPath string
	var format string

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Summarize an exported pair file",
		Example: `  # Text report
  calvingpairs pairs report --pairs ./pairs/test.parquet

  # CSV report
  calvingpairs pairs report --pairs ./pairs/train.jsonl --format csv`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if pairsPath == "" {
				return fmt.Errorf("--pairs is required")
			}
			return executeReport(cmd.OutOrStdout(), pairsPath, format)
		},
	}

	cmd.Flags().StringVar(&pairsPath, "pairs", "", "Path to a parquet, jsonl or csv pair file (required)")
	cmd.Flags().StringVar(&format, "format", "text", "Output format (text, json, csv)")

	_ = cmd.MarkFlagRequired("pairs")

	return cmd
}
