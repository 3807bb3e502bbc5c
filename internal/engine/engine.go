// Package engine runs lap-time comparisons.
//
// Each (line, vehicle) pair is an independent pure computation:
//
//  1. Curvature - the line's curvature trace and segment lengths are computed
//     once per line and shared read-only by every vehicle evaluated on it.
//
//  2. Profile - the vehicle's speed ceiling is derived from the trace, then
//     the two-pass solver produces the speed profile and lap time.
//
// Pairs are evaluated concurrently on a bounded worker pool.
package engine

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"runtime"

	"github.com/sourcegraph/conc/pool"

	"github.com/cxd309/laptime-engine/internal/curvature"
	"github.com/cxd309/laptime-engine/internal/laperr"
	"github.com/cxd309/laptime-engine/internal/profile"
	"github.com/cxd309/laptime-engine/internal/track"
	"github.com/cxd309/laptime-engine/internal/vehicle"
)

// preparedLine is a line with its vehicle-independent geometry precomputed.
// It is never mutated after construction.
type preparedLine struct {
	path      track.Path
	curvature []float64
	ds        []float64
	turning   float64
}

// Engine holds a validated comparison ready to run.
type Engine struct {
	meta     ComparisonMeta
	lines    []preparedLine
	vehicles []vehicle.Vehicle
	opts     profile.Options
	workers  int
	logger   *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithWorkers bounds the number of concurrent evaluations. Values below 1
// mean GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(e *Engine) { e.workers = n }
}

// WithLogger sets the logger used for incomplete-lap warnings.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// New validates the input and precomputes each line's curvature trace.
func New(input Input, opts ...Option) (*Engine, error) {
	if len(input.Lines) == 0 {
		return nil, laperr.Invalid("no lines to evaluate")
	}
	if len(input.Vehicles) == 0 {
		return nil, laperr.Invalid("no vehicles to evaluate")
	}
	vehicles, err := vehicle.NewRegistry(input.Vehicles...)
	if err != nil {
		return nil, err
	}

	lines := make([]preparedLine, 0, len(input.Lines))
	seen := make(map[string]bool, len(input.Lines))
	for i, p := range input.Lines {
		if p.Name == "" {
			p.Name = fmt.Sprintf("line-%d", i+1)
		}
		if seen[p.Name] {
			return nil, laperr.Invalid("duplicate line %q", p.Name)
		}
		seen[p.Name] = true

		prepared, err := prepare(p)
		if err != nil {
			return nil, fmt.Errorf("line %q: %w", p.Name, err)
		}
		lines = append(lines, prepared)
	}

	e := &Engine{
		meta:     input.Meta,
		lines:    lines,
		vehicles: vehicles.Vehicles,
		opts:     profile.Options{Circuit: input.Circuit},
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.workers < 1 {
		e.workers = runtime.GOMAXPROCS(0)
	}
	return e, nil
}

func prepare(p track.Path) (preparedLine, error) {
	if err := p.Validate(); err != nil {
		return preparedLine{}, err
	}
	xs, ys := p.XY()
	k, err := curvature.Trace(xs, ys)
	if err != nil {
		return preparedLine{}, err
	}
	signed, err := curvature.SignedTrace(xs, ys)
	if err != nil {
		return preparedLine{}, err
	}
	ds := p.SegmentLengths()
	turning, err := curvature.Turning(signed, ds)
	if err != nil {
		return preparedLine{}, err
	}
	return preparedLine{path: p, curvature: k, ds: ds, turning: turning}, nil
}

// Run evaluates every vehicle on every line and returns the log.
func (e *Engine) Run() (Log, error) {
	results := make([]Result, len(e.lines)*len(e.vehicles))

	p := pool.New().WithMaxGoroutines(e.workers).WithErrors()
	for li := range e.lines {
		for vi := range e.vehicles {
			idx := li*len(e.vehicles) + vi
			line, veh := &e.lines[li], e.vehicles[vi]
			p.Go(func() error {
				r, err := evaluate(line, veh, e.opts)
				if err != nil {
					return fmt.Errorf("vehicle %q on line %q: %w", veh.Name, line.path.Name, err)
				}
				results[idx] = r
				return nil
			})
		}
	}
	if err := p.Wait(); err != nil {
		return Log{}, err
	}

	for _, r := range results {
		if r.Lap.Incomplete {
			e.logger.Warn("zero-speed segments excluded, lap time is an underestimate",
				"vehicle", r.Vehicle,
				"line", r.Line,
				"excluded", len(r.Lap.Excluded),
				"lap_time", r.Lap.Seconds,
			)
		}
	}
	return Log{Meta: e.meta, Results: results}, nil
}

// evaluate runs one vehicle on one prepared line. It only reads line.
func evaluate(line *preparedLine, v vehicle.Vehicle, opts profile.Options) (Result, error) {
	ceiling, err := curvature.Ceiling(line.curvature, v.Limits())
	if err != nil {
		return Result{}, err
	}
	m, err := v.Model()
	if err != nil {
		return Result{}, err
	}
	prof, err := profile.Solve(ceiling, line.ds, m, opts)
	if err != nil {
		return Result{}, err
	}
	lap, err := profile.LapTime(prof.Speeds, line.ds)
	if err != nil {
		return Result{}, err
	}
	return Result{
		Line:    line.path.Name,
		Vehicle: v.Name,
		Turning: line.turning,
		Ceiling: ceiling,
		Profile: prof,
		Lap:     lap,
	}, nil
}

// Compare is a convenience wrapper: build an Engine for one path and run it.
func Compare(path track.Path, vehicles []vehicle.Vehicle, circuit bool, opts ...Option) (Log, error) {
	e, err := New(Input{Lines: []track.Path{path}, Vehicles: vehicles, Circuit: circuit}, opts...)
	if err != nil {
		return Log{}, err
	}
	return e.Run()
}

// Sweep evaluates constant-radius 90-degree corners across a range of radii,
// reporting the naive grip-limited time next to the solved time for each.
func Sweep(in SweepInput) ([]SweepRow, error) {
	if err := in.Vehicle.Validate(); err != nil {
		return nil, err
	}
	if !(in.Radius > 0) || !(in.Spread >= 0) || in.Spread >= in.Radius {
		return nil, laperr.Invalid("sweep needs 0 <= spread < radius, got radius %v spread %v", in.Radius, in.Spread)
	}
	if in.Lines < 1 {
		return nil, laperr.Invalid("sweep needs at least one line, got %d", in.Lines)
	}
	if in.Samples < curvature.MinSamples {
		return nil, laperr.Invalid("sweep needs at least %d samples, got %d", curvature.MinSamples, in.Samples)
	}

	radii := track.Linspace(in.Radius-in.Spread, in.Radius+in.Spread, in.Lines)
	rows := make([]SweepRow, 0, len(radii))
	for _, r := range radii {
		corner, err := track.QuarterArc(r, in.Samples)
		if err != nil {
			return nil, err
		}
		line, err := prepare(corner)
		if err != nil {
			return nil, err
		}
		res, err := evaluate(&line, in.Vehicle, profile.Options{})
		if err != nil {
			return nil, fmt.Errorf("radius %.1f: %w", r, err)
		}

		grip := math.Min(curvature.GripSpeed(r, in.Vehicle.MaxLateralG), in.Vehicle.TopSpeed())
		arc := math.Pi / 2 * r
		rows = append(rows, SweepRow{
			Radius:     r,
			GripSpeed:  grip,
			ArcLength:  arc,
			NaiveTime:  arc / grip,
			SolvedTime: res.Lap.Seconds,
			Incomplete: res.Lap.Incomplete,
		})
	}
	return rows, nil
}

// RunJSON is the primary entry point for the CLI and WASM targets.
// It accepts a JSON-encoded Input, runs the comparison, and returns a
// JSON-encoded Log.
func RunJSON(jsonInput string) (string, error) {
	var input Input
	if err := json.Unmarshal([]byte(jsonInput), &input); err != nil {
		return "", fmt.Errorf("invalid input JSON: %w", err)
	}

	e, err := New(input)
	if err != nil {
		return "", err
	}

	log, err := e.Run()
	if err != nil {
		return "", err
	}

	out, err := json.Marshal(log)
	if err != nil {
		return "", fmt.Errorf("marshaling output: %w", err)
	}
	return string(out), nil
}
