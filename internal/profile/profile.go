// Package profile turns a per-sample speed ceiling into a physically achievable
// speed profile and integrates it into a lap time.
//
// Solving has two passes:
//
//  1. Forward pass - starting from the ceiling at the first sample, each sample
//     is capped by what flat-out acceleration allows over the preceding segment.
//
//  2. Backward pass - sweeping from the end, each sample is capped by the speed
//     from which the vehicle can still brake down to the next sample's speed.
//
// Each pass returns a new slice; inputs are never modified.
package profile

import (
	"math"

	"github.com/cxd309/laptime-engine/internal/kinematics"
	"github.com/cxd309/laptime-engine/internal/laperr"
)

const (
	// MinSegmentSpeed is the trailing speed (m/s) at or below which a segment
	// is left out of the lap-time sum.
	MinSegmentSpeed = 1e-3

	// closureTolerance is how close (m/s) the endpoints of a circuit profile
	// must agree before reconciliation stops.
	closureTolerance = 1e-9

	// maxClosureRounds bounds the circuit reconciliation loop.
	maxClosureRounds = 64
)

// Options controls how a profile is solved.
type Options struct {
	// Circuit treats the path as one full lap: the speed at the last sample
	// must equal the speed at the first. Leave it off for open paths such
	// as a single corner.
	Circuit bool `json:"circuit"`
}

// Profile is the result of a solve. Forward is kept so the pass-by-pass data
// flow can be inspected; Speeds is the final profile.
type Profile struct {
	Forward []float64 `json:"forward"` // m/s, after the forward pass only
	Speeds  []float64 `json:"speeds"`  // m/s, final
	Rounds  int       `json:"rounds"`  // circuit reconciliation rounds; 0 for open paths
}

// ForwardPass returns the acceleration-limited profile: v[0] = ceiling[0],
// then each sample is the lesser of its ceiling and the speed reachable from
// the previous sample.
func ForwardPass(ceiling, ds []float64, m kinematics.MotionModel) ([]float64, error) {
	if err := validate(ceiling, ds, m); err != nil {
		return nil, err
	}
	return forward(ceiling, ceiling[0], ds, m), nil
}

// BackwardPass returns v lowered wherever the vehicle could not brake from it
// down to the following sample's speed within the segment between them. It
// never raises a speed.
func BackwardPass(v, ds []float64, m kinematics.MotionModel) ([]float64, error) {
	if err := validate(v, ds, m); err != nil {
		return nil, err
	}
	return backward(v, ds, m), nil
}

// Solve runs both passes against the ceiling. With opts.Circuit the end speed
// is tied to the start speed; the shared value is the lower of the two so the
// ceiling still holds, and the passes repeat until both ends agree.
func Solve(ceiling, ds []float64, m kinematics.MotionModel, opts Options) (Profile, error) {
	if err := validate(ceiling, ds, m); err != nil {
		return Profile{}, err
	}

	fwd := forward(ceiling, ceiling[0], ds, m)
	if !opts.Circuit {
		return Profile{Forward: fwd, Speeds: backward(fwd, ds, m)}, nil
	}

	last := len(fwd) - 1
	speeds := append([]float64(nil), fwd...)
	rounds := 0
	for rounds < maxClosureRounds {
		rounds++
		closing := math.Min(speeds[0], speeds[last])
		speeds[0], speeds[last] = closing, closing
		speeds = backward(forward(speeds, closing, ds, m), ds, m)
		if math.Abs(speeds[last]-speeds[0]) <= closureTolerance {
			break
		}
	}
	// Lowering an end by at most closureTolerance cannot break reachability
	// by more than the same amount.
	closing := math.Min(speeds[0], speeds[last])
	speeds[0], speeds[last] = closing, closing

	return Profile{Forward: fwd, Speeds: speeds, Rounds: rounds}, nil
}

func forward(bound []float64, start float64, ds []float64, m kinematics.MotionModel) []float64 {
	v := make([]float64, len(bound))
	v[0] = start
	for i := 1; i < len(v); i++ {
		v[i] = math.Min(m.AccelerateOver(v[i-1], ds[i-1]), bound[i])
	}
	return v
}

func backward(bound, ds []float64, m kinematics.MotionModel) []float64 {
	v := append([]float64(nil), bound...)
	for i := len(v) - 2; i >= 0; i-- {
		v[i] = math.Min(v[i], m.EntrySpeedFor(v[i+1], ds[i]))
	}
	return v
}

func validate(speeds, ds []float64, m kinematics.MotionModel) error {
	if m == nil {
		return laperr.Invalid("no motion model")
	}
	if err := m.Validate(); err != nil {
		return err
	}
	if len(speeds) < 2 {
		return laperr.Invalid("profile needs at least 2 samples, got %d", len(speeds))
	}
	if len(ds) != len(speeds)-1 {
		return laperr.Invalid("%d segment lengths for %d samples, want %d", len(ds), len(speeds), len(speeds)-1)
	}
	for i, v := range speeds {
		if !(v >= 0) || math.IsInf(v, 0) {
			return laperr.Invalid("speed[%d] = %v is not a finite non-negative value", i, v)
		}
	}
	for i, d := range ds {
		if !(d >= 0) || math.IsInf(d, 0) {
			return laperr.Invalid("segment length[%d] = %v is not a finite non-negative value", i, d)
		}
	}
	return nil
}
