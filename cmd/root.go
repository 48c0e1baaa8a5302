package cmd

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calvingpairs",
		Short: "Build calving classifier training pairs from CVAT annotations",
		Long: `Calvingpairs turns a CVAT for Images 1.1 annotation export of a glacier
front time-lapse into before/after image pairs labeled Calving or No calving.

Configuration is read from flags, CALVING_* environment variables (a .env file
is honored) and an optional calvingpairs.yaml, in that order of precedence.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()
		},
	}

	cmd.AddCommand(newPairsCmd())

	return cmd
}
