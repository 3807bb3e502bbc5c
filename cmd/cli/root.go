package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/cxd309/laptime-engine/internal/config"
	"github.com/cxd309/laptime-engine/internal/track"
	"github.com/cxd309/laptime-engine/internal/vehicle"
)

var rootCmd = &cobra.Command{
	Use:           "laptime",
	Short:         "Speed profile and lap time estimator",
	Long:          "laptime computes grip- and power-limited speed profiles along a track centerline and compares lap times across vehicles and racing lines.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command and exits non-zero on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default .laptime.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error")
	_ = viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
}

func initConfig() {
	if cfgFile, _ := rootCmd.PersistentFlags().GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName(".laptime")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
	}

	viper.SetEnvPrefix("LAPTIME")
	viper.AutomaticEnv()

	// It's fine if no config file is found; we use defaults.
	_ = viper.ReadInConfig()
}

// loadConfig loads config and builds the stderr logger from it.
func loadConfig() (config.Config, *slog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, newLogger(os.Stderr, cfg.LogLevel), nil
}

func newLogger(w io.Writer, level string) *slog.Logger {
	lvl, err := config.ParseLevel(level)
	if err != nil {
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))
}

// addInputFlags registers the track/vehicle flags shared by compare and watch.
func addInputFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("track", "t", "", "track CSV file (x_m, y_m[, w_tr_right_m, w_tr_left_m])")
	cmd.Flags().StringP("vehicles", "V", "", "vehicle registry (.toml or .json); built-in cars when empty")
	cmd.Flags().StringSlice("line", nil, "additional racing line CSV files evaluated on the same vehicles")
	cmd.Flags().Bool("circuit", true, "treat each line as a closed lap (end speed = start speed)")
	cmd.Flags().Int("workers", 0, "concurrent evaluations (0 = GOMAXPROCS)")
	cmd.Flags().StringP("output", "o", "", "output format: text or json")
}

// applyFlagOverrides applies CLI flag values to the loaded config.
func applyFlagOverrides(cmd *cobra.Command, cfg *config.Config) {
	if cmd.Flags().Changed("track") {
		cfg.Track, _ = cmd.Flags().GetString("track")
	}
	if cmd.Flags().Changed("vehicles") {
		cfg.Vehicles, _ = cmd.Flags().GetString("vehicles")
	}
	if cmd.Flags().Changed("circuit") {
		cfg.Circuit, _ = cmd.Flags().GetBool("circuit")
	}
	if cmd.Flags().Changed("workers") {
		cfg.Workers, _ = cmd.Flags().GetInt("workers")
	}
	if cmd.Flags().Changed("output") {
		cfg.Output, _ = cmd.Flags().GetString("output")
	}
}

// loadRegistry reads the configured registry, or the built-in cars.
func loadRegistry(file string) (vehicle.Registry, error) {
	if file == "" {
		return vehicle.Defaults(), nil
	}
	return vehicle.LoadRegistry(file)
}

// loadLines reads the main track plus any extra racing lines.
func loadLines(main string, extra []string) ([]track.Path, error) {
	if main == "" {
		return nil, fmt.Errorf("no track file: pass --track or set track in config")
	}
	var lines []track.Path
	for _, file := range append([]string{main}, extra...) {
		p, err := track.LoadCSV(file)
		if err != nil {
			return nil, fmt.Errorf("loading track: %w", err)
		}
		lines = append(lines, p)
	}
	return lines, nil
}
