package engine

import (
	"github.com/cxd309/laptime-engine/internal/profile"
	"github.com/cxd309/laptime-engine/internal/track"
	"github.com/cxd309/laptime-engine/internal/vehicle"
)

// ComparisonMeta holds the identity of a comparison run.
type ComparisonMeta struct {
	ComparisonID string `json:"comparison_id"`
	Description  string `json:"description,omitempty"`
}

// Input is the JSON-serialisable input to the engine: every vehicle is
// evaluated against every line.
type Input struct {
	Meta     ComparisonMeta    `json:"comparison_meta"`
	Lines    []track.Path      `json:"lines"`
	Vehicles []vehicle.Vehicle `json:"vehicles"`
	// Circuit ties the end speed of each line to its start speed.
	Circuit bool `json:"circuit"`
}

// Result is the outcome of one vehicle on one line.
type Result struct {
	Line    string          `json:"line"`
	Vehicle string          `json:"vehicle"`
	Turning float64         `json:"turning"` // net heading change along the line, radians
	Ceiling []float64       `json:"ceiling"` // m/s per sample
	Profile profile.Profile `json:"profile"`
	Lap     profile.Lap     `json:"lap"`
}

// Log is the complete output of a comparison run. Results are line-major,
// in input order.
type Log struct {
	Meta    ComparisonMeta `json:"comparison_meta"`
	Results []Result       `json:"results"`
}

// ForLine returns the results for the named line, in vehicle order.
func (l Log) ForLine(line string) []Result {
	var out []Result
	for _, r := range l.Results {
		if r.Line == line {
			out = append(out, r)
		}
	}
	return out
}

// Fastest returns the quickest complete lap among results, falling back to
// incomplete laps only when nothing else is available.
func Fastest(results []Result) (Result, bool) {
	var best Result
	found := false
	for _, r := range results {
		switch {
		case !found:
			best, found = r, true
		case best.Lap.Incomplete && !r.Lap.Incomplete:
			best = r
		case best.Lap.Incomplete == r.Lap.Incomplete && r.Lap.Seconds < best.Lap.Seconds:
			best = r
		}
	}
	return best, found
}

// SweepInput describes a corner-radius sweep: lines racing lines of constant
// radius spread evenly across [Radius-Spread, Radius+Spread], each a 90-degree
// arc sampled Samples times.
type SweepInput struct {
	Radius  float64         `json:"radius"`  // metres
	Spread  float64         `json:"spread"`  // metres
	Lines   int             `json:"lines"`
	Samples int             `json:"samples"`
	Vehicle vehicle.Vehicle `json:"vehicle"`
}

// SweepRow is the outcome for one radius.
type SweepRow struct {
	Radius     float64 `json:"radius"`      // metres
	GripSpeed  float64 `json:"grip_speed"`  // m/s
	ArcLength  float64 `json:"arc_length"`  // metres
	NaiveTime  float64 `json:"naive_time"`  // seconds at constant grip speed
	SolvedTime float64 `json:"solved_time"` // seconds from the two-pass solver
	Incomplete bool    `json:"incomplete,omitempty"`
}
