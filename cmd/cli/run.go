package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/cxd309/laptime-engine/internal/engine"
)

var runCmd = &cobra.Command{
	Use:   "run [INPUT.json]",
	Short: "Run a JSON comparison and write the JSON log to stdout",
	Long: `Reads an engine Input JSON from a file argument (or stdin), runs the
comparison, and writes the Log JSON to stdout. This is the same contract the
WebAssembly build exposes.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var (
			data []byte
			err  error
		)
		if len(args) > 0 {
			data, err = os.ReadFile(args[0])
		} else {
			data, err = io.ReadAll(cmd.InOrStdin())
		}
		if err != nil {
			return fmt.Errorf("error reading input: %w", err)
		}

		result, err := engine.RunJSON(string(data))
		if err != nil {
			return fmt.Errorf("comparison error: %w", err)
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), result)
		return err
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}
