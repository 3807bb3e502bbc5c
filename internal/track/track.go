// Package track provides the sampled centerline representation consumed by the
// lap-time engine, along with track-file loading, synthetic path generators and
// boundary outline construction.
package track

import (
	"math"

	"github.com/cxd309/laptime-engine/internal/curvature"
	"github.com/cxd309/laptime-engine/internal/laperr"
)

// MinSegmentLength is the floor applied to every segment length (metres), so
// duplicate samples never produce a zero divisor.
const MinSegmentLength = 1e-6

// Coordinate is a 2D position in metres.
type Coordinate struct {
	X float64 `json:"x"` // metres
	Y float64 `json:"y"` // metres
}

// Width is the track half-width either side of a centerline sample.
type Width struct {
	Right float64 `json:"right"` // metres
	Left  float64 `json:"left"`  // metres
}

// Path is an ordered sequence of centerline samples. Widths is optional and
// only used for outline construction; when present it has one entry per point.
type Path struct {
	Name   string       `json:"name"`
	Points []Coordinate `json:"points"`
	Widths []Width      `json:"widths,omitempty"`
}

// NewPath builds a validated Path.
func NewPath(name string, points []Coordinate, widths []Width) (Path, error) {
	p := Path{Name: name, Points: points, Widths: widths}
	if err := p.Validate(); err != nil {
		return Path{}, err
	}
	return p, nil
}

// Validate checks the invariants the curvature estimator relies on.
func (p Path) Validate() error {
	if len(p.Points) < curvature.MinSamples {
		return laperr.Invalid("path %q needs at least %d samples, got %d", p.Name, curvature.MinSamples, len(p.Points))
	}
	for i, pt := range p.Points {
		if !finite(pt.X) || !finite(pt.Y) {
			return laperr.Invalid("path %q sample %d is not finite (%v, %v)", p.Name, i, pt.X, pt.Y)
		}
	}
	if len(p.Widths) != 0 && len(p.Widths) != len(p.Points) {
		return laperr.Invalid("path %q has %d widths for %d samples", p.Name, len(p.Widths), len(p.Points))
	}
	for i, w := range p.Widths {
		if !(w.Right >= 0) || !(w.Left >= 0) {
			return laperr.Invalid("path %q width %d is negative or NaN", p.Name, i)
		}
	}
	return nil
}

// Len returns the number of samples.
func (p Path) Len() int { return len(p.Points) }

// XY splits the samples into separate x and y sequences.
func (p Path) XY() (xs, ys []float64) {
	xs = make([]float64, len(p.Points))
	ys = make([]float64, len(p.Points))
	for i, pt := range p.Points {
		xs[i], ys[i] = pt.X, pt.Y
	}
	return xs, ys
}

// SegmentLengths returns the N-1 distances between consecutive samples,
// floored at MinSegmentLength.
func (p Path) SegmentLengths() []float64 {
	if len(p.Points) < 2 {
		return nil
	}
	ds := make([]float64, len(p.Points)-1)
	for i := range ds {
		a, b := p.Points[i], p.Points[i+1]
		ds[i] = math.Max(math.Hypot(b.X-a.X, b.Y-a.Y), MinSegmentLength)
	}
	return ds
}

// Length returns the total distance along the path in metres.
func (p Path) Length() float64 {
	total := 0.0
	for _, d := range p.SegmentLengths() {
		total += d
	}
	return total
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
