package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cxd309/laptime-engine/internal/track"
)

var outlineCmd = &cobra.Command{
	Use:   "outline TRACK.csv",
	Short: "Print the closed track boundary polygon as CSV",
	Long: `Offsets the centerline by the per-sample right and left track widths and
prints the closed boundary polygon (right edge, reversed left edge, first
point repeated) for plotting.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := track.LoadCSV(args[0])
		if err != nil {
			return fmt.Errorf("loading track: %w", err)
		}
		outline, err := track.Outline(p)
		if err != nil {
			return err
		}
		return track.WriteCSV(cmd.OutOrStdout(), outline)
	},
}

func init() {
	rootCmd.AddCommand(outlineCmd)
}
