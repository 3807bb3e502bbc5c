package profile

import (
	"math"

	"github.com/cxd309/laptime-engine/internal/laperr"
)

// Lap is the integrated time over a profile. When any segment's trailing
// speed is at or below MinSegmentSpeed that segment is skipped, Incomplete is
// set and Seconds is a partial sum that underestimates the true time.
type Lap struct {
	Seconds    float64 `json:"seconds"`
	Distance   float64 `json:"distance"` // metres, including excluded segments
	Incomplete bool    `json:"incomplete"`
	Excluded   []int   `json:"excluded,omitempty"` // indices of skipped segments
}

// LapTime sums ds[i] / speeds[i+1] over every segment.
func LapTime(speeds, ds []float64) (Lap, error) {
	if len(speeds) < 2 {
		return Lap{}, laperr.Invalid("profile needs at least 2 samples, got %d", len(speeds))
	}
	if len(ds) != len(speeds)-1 {
		return Lap{}, laperr.Invalid("%d segment lengths for %d samples, want %d", len(ds), len(speeds), len(speeds)-1)
	}

	var lap Lap
	for i, d := range ds {
		if !(d >= 0) || math.IsInf(d, 0) {
			return Lap{}, laperr.Invalid("segment length[%d] = %v is not a finite non-negative value", i, d)
		}
		lap.Distance += d
		v := speeds[i+1]
		if !(v > MinSegmentSpeed) {
			lap.Excluded = append(lap.Excluded, i)
			continue
		}
		lap.Seconds += d / v
	}
	lap.Incomplete = len(lap.Excluded) > 0
	return lap, nil
}

// AverageSpeed returns distance over time in m/s, or 0 for an empty lap.
func (l Lap) AverageSpeed() float64 {
	if l.Seconds <= 0 {
		return 0
	}
	return l.Distance / l.Seconds
}
