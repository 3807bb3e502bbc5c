package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
)

// resetViper clears all viper state between tests to avoid cross-contamination.
func resetViper() {
	viper.Reset()
}

func TestLoad_Defaults(t *testing.T) {
	resetViper()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	tests := []struct {
		name string
		got  any
		want any
	}{
		{"Track", cfg.Track, ""},
		{"Vehicles", cfg.Vehicles, ""},
		{"Circuit", cfg.Circuit, true},
		{"Workers", cfg.Workers, 0},
		{"Output", cfg.Output, OutputText},
		{"LogLevel", cfg.LogLevel, "info"},
		{"Sweep.Radius", cfg.Sweep.Radius, 50.0},
		{"Sweep.Spread", cfg.Sweep.Spread, 10.0},
		{"Sweep.Lines", cfg.Sweep.Lines, 5},
		{"Sweep.Samples", cfg.Sweep.Samples, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.want)
			}
		})
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	resetViper()
	viper.SetEnvPrefix("LAPTIME")
	viper.AutomaticEnv()

	t.Setenv("LAPTIME_TRACK", "/data/MoscowRaceway.csv")
	t.Setenv("LAPTIME_CIRCUIT", "false")
	t.Setenv("LAPTIME_WORKERS", "3")
	t.Setenv("LAPTIME_OUTPUT", "json")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}
	if cfg.Track != "/data/MoscowRaceway.csv" {
		t.Errorf("Track = %q", cfg.Track)
	}
	if cfg.Circuit {
		t.Error("Circuit = true, want false")
	}
	if cfg.Workers != 3 {
		t.Errorf("Workers = %d, want 3", cfg.Workers)
	}
	if cfg.Output != OutputJSON {
		t.Errorf("Output = %q, want json", cfg.Output)
	}
}

func TestLoad_ConfigFile(t *testing.T) {
	resetViper()

	file := filepath.Join(t.TempDir(), ".laptime.yaml")
	body := "vehicles: cars.toml\nsweep:\n  radius: 80\n  lines: 9\n  vehicle: Mazda RX-8\n"
	if err := os.WriteFile(file, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	viper.SetConfigFile(file)
	if err := viper.ReadInConfig(); err != nil {
		t.Fatalf("ReadInConfig: %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}
	if cfg.Vehicles != "cars.toml" {
		t.Errorf("Vehicles = %q, want cars.toml", cfg.Vehicles)
	}
	if cfg.Sweep.Radius != 80 || cfg.Sweep.Lines != 9 {
		t.Errorf("Sweep = %+v, want radius 80 lines 9", cfg.Sweep)
	}
	if cfg.Sweep.Spread != 10 {
		t.Errorf("Sweep.Spread = %v, want default 10", cfg.Sweep.Spread)
	}
	if cfg.Sweep.Vehicle != "Mazda RX-8" {
		t.Errorf("Sweep.Vehicle = %q", cfg.Sweep.Vehicle)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  any
	}{
		{"output", "output", "xml"},
		{"log level", "log_level", "loud"},
		{"workers", "workers", -1},
		{"sweep lines", "sweep.lines", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetViper()
			viper.Set(tt.key, tt.val)
			if _, err := Load(); err == nil {
				t.Errorf("Load() with %s=%v expected error, got nil", tt.key, tt.val)
			}
		})
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		raw  string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"", slog.LevelInfo},
		{"WARNING", slog.LevelWarn},
		{"error", slog.LevelError},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParseLevel(tt.raw)
			if err != nil {
				t.Fatalf("ParseLevel(%q): %v", tt.raw, err)
			}
			if got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}
