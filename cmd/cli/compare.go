package main

import (
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/cxd309/laptime-engine/internal/config"
	"github.com/cxd309/laptime-engine/internal/engine"
	"github.com/cxd309/laptime-engine/internal/report"
)

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Compare lap times of every vehicle on a track",
	Long: `Loads the track centerline and the vehicle registry, solves a speed
profile for every vehicle and prints lap times with the gap to the fastest.

Extra racing lines given with --line are evaluated against the same vehicles.`,
	RunE: runCompare,
}

func init() {
	addInputFlags(compareCmd)
	rootCmd.AddCommand(compareCmd)
}

func runCompare(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}
	applyFlagOverrides(cmd, &cfg)
	extra, _ := cmd.Flags().GetStringSlice("line")

	return compareOnce(cmd.OutOrStdout(), cfg, extra, logger)
}

// compareOnce loads inputs, runs the engine and writes the report.
func compareOnce(w io.Writer, cfg config.Config, extra []string, logger *slog.Logger) error {
	lines, err := loadLines(cfg.Track, extra)
	if err != nil {
		return err
	}
	reg, err := loadRegistry(cfg.Vehicles)
	if err != nil {
		return err
	}

	e, err := engine.New(engine.Input{
		Meta:     engine.ComparisonMeta{ComparisonID: lines[0].Name},
		Lines:    lines,
		Vehicles: reg.Vehicles,
		Circuit:  cfg.Circuit,
	}, engine.WithWorkers(cfg.Workers), engine.WithLogger(logger))
	if err != nil {
		return err
	}
	logger.Debug("comparison prepared", "lines", len(lines), "vehicles", len(reg.Vehicles), "circuit", cfg.Circuit)

	log, err := e.Run()
	if err != nil {
		return err
	}

	if cfg.Output == config.OutputJSON {
		return report.JSON(w, log)
	}
	return report.Comparison(w, log)
}
