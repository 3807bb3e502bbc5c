package track

import (
	"fmt"
	"math"

	"github.com/cxd309/laptime-engine/internal/laperr"
)

// Arc samples a circular arc of the given radius centred on the origin,
// counter-clockwise from angle from to angle to (radians), inclusive.
func Arc(radius, from, to float64, samples int) (Path, error) {
	if !(radius > 0) {
		return Path{}, laperr.Invalid("arc radius must be positive, got %v", radius)
	}
	if samples < 2 {
		return Path{}, laperr.Invalid("arc needs at least 2 samples, got %d", samples)
	}
	points := make([]Coordinate, samples)
	for i := 0; i < samples; i++ {
		theta := from + (to-from)*float64(i)/float64(samples-1)
		points[i] = Coordinate{X: radius * math.Cos(theta), Y: radius * math.Sin(theta)}
	}
	return NewPath(fmt.Sprintf("arc-r%g", radius), points, nil)
}

// QuarterArc samples a 90-degree corner of the given radius.
func QuarterArc(radius float64, samples int) (Path, error) {
	return Arc(radius, 0, math.Pi/2, samples)
}

// Circle samples a full closed circle; the last sample lands on the first so
// the path describes one complete lap.
func Circle(radius float64, samples int) (Path, error) {
	p, err := Arc(radius, 0, 2*math.Pi, samples)
	if err != nil {
		return Path{}, err
	}
	p.Name = fmt.Sprintf("circle-r%g", radius)
	return p, nil
}

// Straight samples a straight line along the x axis.
func Straight(length float64, samples int) (Path, error) {
	if !(length > 0) {
		return Path{}, laperr.Invalid("straight length must be positive, got %v", length)
	}
	if samples < 2 {
		return Path{}, laperr.Invalid("straight needs at least 2 samples, got %d", samples)
	}
	points := make([]Coordinate, samples)
	for i := 0; i < samples; i++ {
		points[i] = Coordinate{X: length * float64(i) / float64(samples-1)}
	}
	return NewPath(fmt.Sprintf("straight-%gm", length), points, nil)
}

// Linspace returns n values evenly spaced over [lo, hi].
func Linspace(lo, hi float64, n int) []float64 {
	switch {
	case n <= 0:
		return nil
	case n == 1:
		return []float64{lo}
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = lo + (hi-lo)*float64(i)/float64(n-1)
	}
	return out
}
