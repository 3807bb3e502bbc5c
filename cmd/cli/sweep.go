package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cxd309/laptime-engine/internal/config"
	"github.com/cxd309/laptime-engine/internal/engine"
	"github.com/cxd309/laptime-engine/internal/report"
	"github.com/cxd309/laptime-engine/internal/vehicle"
)

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Compare constant-radius racing lines through a 90-degree corner",
	Long: `Builds racing lines of constant radius from radius-spread to radius+spread
and reports, for each, the grip-limited speed, arc length, the naive
constant-speed corner time and the time from the two-pass solver.`,
	RunE: runSweep,
}

func init() {
	sweepCmd.Flags().Float64("radius", 0, "centre-line corner radius in metres")
	sweepCmd.Flags().Float64("spread", 0, "how far lines move inside/outside the centre line, metres")
	sweepCmd.Flags().Int("lines", 0, "number of racing lines")
	sweepCmd.Flags().Int("samples", 0, "samples per line")
	sweepCmd.Flags().String("vehicle", "", "registry vehicle to use (default: first)")
	sweepCmd.Flags().StringP("vehicles", "V", "", "vehicle registry (.toml or .json)")
	sweepCmd.Flags().StringP("output", "o", "", "output format: text or json")
	rootCmd.AddCommand(sweepCmd)
}

func runSweep(cmd *cobra.Command, _ []string) error {
	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}
	applyFlagOverrides(cmd, &cfg)
	applySweepOverrides(cmd, &cfg.Sweep)

	reg, err := loadRegistry(cfg.Vehicles)
	if err != nil {
		return err
	}
	car, err := pickVehicle(reg, cfg.Sweep.Vehicle)
	if err != nil {
		return err
	}

	rows, err := engine.Sweep(engine.SweepInput{
		Radius:  cfg.Sweep.Radius,
		Spread:  cfg.Sweep.Spread,
		Lines:   cfg.Sweep.Lines,
		Samples: cfg.Sweep.Samples,
		Vehicle: car,
	})
	if err != nil {
		return err
	}

	if cfg.Output == config.OutputJSON {
		return report.JSON(cmd.OutOrStdout(), rows)
	}
	return report.Sweep(cmd.OutOrStdout(), car.Name, rows)
}

func applySweepOverrides(cmd *cobra.Command, s *config.SweepConfig) {
	if cmd.Flags().Changed("radius") {
		s.Radius, _ = cmd.Flags().GetFloat64("radius")
	}
	if cmd.Flags().Changed("spread") {
		s.Spread, _ = cmd.Flags().GetFloat64("spread")
	}
	if cmd.Flags().Changed("lines") {
		s.Lines, _ = cmd.Flags().GetInt("lines")
	}
	if cmd.Flags().Changed("samples") {
		s.Samples, _ = cmd.Flags().GetInt("samples")
	}
	if cmd.Flags().Changed("vehicle") {
		s.Vehicle, _ = cmd.Flags().GetString("vehicle")
	}
}

func pickVehicle(reg vehicle.Registry, name string) (vehicle.Vehicle, error) {
	if name == "" {
		if len(reg.Vehicles) == 0 {
			return vehicle.Vehicle{}, fmt.Errorf("vehicle registry is empty")
		}
		return reg.Vehicles[0], nil
	}
	v, ok := reg.Lookup(name)
	if !ok {
		return vehicle.Vehicle{}, fmt.Errorf("vehicle %q not in registry (have %v)", name, reg.Names())
	}
	return v, nil
}
