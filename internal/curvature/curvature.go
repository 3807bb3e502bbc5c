// Package curvature estimates path curvature from raw (x, y) samples and
// converts it into a per-sample cornering speed ceiling.
//
// Derivatives are taken with respect to sample index, not arc length, so the
// estimate is only as good as the spacing of the input is even. Curvature is
// floored at MinCurvature: straights get a very large but finite radius.
package curvature

import (
	"math"

	"github.com/cxd309/laptime-engine/internal/laperr"
)

const (
	// MinCurvature is the floor applied to every curvature sample (1/m).
	MinCurvature = 1e-6

	// StandardGravity converts lateral grip in g to m/s².
	StandardGravity = 9.81

	// MinSamples is the shortest path for which second derivatives exist.
	MinSamples = 3
)

// Limits is the subset of vehicle parameters the estimator needs.
type Limits struct {
	MaxLateralG float64 // cornering grip, g
	TopSpeedKph float64 // km/h
}

// TopSpeed returns the top speed in m/s.
func (l Limits) TopSpeed() float64 { return l.TopSpeedKph * 1000 / 3600 }

// MaxLateralAccel returns the lateral acceleration capacity in m/s².
func (l Limits) MaxLateralAccel() float64 { return l.MaxLateralG * StandardGravity }

func (l Limits) validate() error {
	if !(l.MaxLateralG > 0) || math.IsInf(l.MaxLateralG, 0) {
		return laperr.Invalid("max lateral g must be positive, got %v", l.MaxLateralG)
	}
	if !(l.TopSpeedKph > 0) || math.IsInf(l.TopSpeedKph, 0) {
		return laperr.Invalid("top speed must be positive, got %v km/h", l.TopSpeedKph)
	}
	return nil
}

// Gradient returns the numerical derivative of f with respect to sample index:
// centered differences inside, one-sided differences at both ends.
func Gradient(f []float64) []float64 {
	n := len(f)
	g := make([]float64, n)
	if n < 2 {
		return g
	}
	g[0] = f[1] - f[0]
	g[n-1] = f[n-1] - f[n-2]
	for i := 1; i < n-1; i++ {
		g[i] = (f[i+1] - f[i-1]) / 2
	}
	return g
}

// Trace returns the unsigned curvature at every sample of the path given by xs, ys.
func Trace(xs, ys []float64) ([]float64, error) {
	signed, err := SignedTrace(xs, ys)
	if err != nil {
		return nil, err
	}
	for i, k := range signed {
		signed[i] = math.Max(math.Abs(k), MinCurvature)
	}
	return signed, nil
}

// SignedTrace returns curvature with the sign of the turn kept: positive for
// a left (counter-clockwise) turn. Samples with a vanishing first derivative
// are reported as zero curvature.
func SignedTrace(xs, ys []float64) ([]float64, error) {
	if len(xs) != len(ys) {
		return nil, laperr.Invalid("x and y have different lengths (%d != %d)", len(xs), len(ys))
	}
	if len(xs) < MinSamples {
		return nil, laperr.Invalid("path needs at least %d samples, got %d", MinSamples, len(xs))
	}

	dx, dy := Gradient(xs), Gradient(ys)
	ddx, ddy := Gradient(dx), Gradient(dy)

	k := make([]float64, len(xs))
	for i := range k {
		speedSq := dx[i]*dx[i] + dy[i]*dy[i]
		denom := math.Pow(speedSq, 1.5)
		if denom == 0 || math.IsNaN(denom) {
			// Coincident neighbours: no direction, treat as straight.
			continue
		}
		c := (dx[i]*ddy[i] - dy[i]*ddx[i]) / denom
		if math.IsNaN(c) || math.IsInf(c, 0) {
			continue
		}
		k[i] = c
	}
	return k, nil
}

// Turning returns the net heading change (radians) along a path from its
// signed curvature and segment lengths, integrated with the trapezoid rule.
// A full anticlockwise lap gives roughly 2π, a clockwise one -2π.
func Turning(signed, ds []float64) (float64, error) {
	if len(ds) != len(signed)-1 {
		return 0, laperr.Invalid("%d segment lengths for %d samples", len(ds), len(signed))
	}
	total := 0.0
	for i, d := range ds {
		total += (signed[i] + signed[i+1]) / 2 * d
	}
	return total, nil
}

// GripSpeed returns the speed (m/s) at which a corner of the given radius
// saturates lateral grip.
func GripSpeed(radius, lateralG float64) float64 {
	return math.Sqrt(lateralG * StandardGravity * radius)
}

// Ceiling converts a curvature trace into the per-sample speed ceiling:
// the tighter of grip-limited speed and top speed.
func Ceiling(trace []float64, limits Limits) ([]float64, error) {
	if err := limits.validate(); err != nil {
		return nil, err
	}
	latA := limits.MaxLateralAccel()
	top := limits.TopSpeed()

	out := make([]float64, len(trace))
	for i, k := range trace {
		if !(k >= MinCurvature) {
			return nil, laperr.Invalid("curvature[%d] = %v is below the %v floor", i, k, MinCurvature)
		}
		out[i] = math.Min(math.Sqrt(latA/k), top)
	}
	return out, nil
}
