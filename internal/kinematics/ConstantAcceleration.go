package kinematics

import (
	"math"

	"github.com/cxd309/laptime-engine/internal/laperr"
)

// ConstantModelName is the JSON discriminator string for the Constant model.
const ConstantModelName = "constant"

// ConstantAcceleration implements MotionModel using fixed acceleration and deceleration rates.
// This is the default and simplest kinematics model.
//
// JSON discriminator: "model": "constant"
type ConstantAcceleration struct {
	AAcc    float64 `json:"a_acc"` // traction acceleration, m/s²
	ADcc    float64 `json:"a_dcc"` // braking deceleration, m/s² (positive)
	VMaxVal float64 `json:"v_max"` // maximum speed, m/s
}

// Validate rejects non-positive or non-finite rates.
func (c ConstantAcceleration) Validate() error {
	if !(c.AAcc > 0) || math.IsInf(c.AAcc, 0) {
		return laperr.Invalid("acceleration must be positive, got %v", c.AAcc)
	}
	if !(c.ADcc > 0) || math.IsInf(c.ADcc, 0) {
		return laperr.Invalid("braking deceleration must be positive, got %v", c.ADcc)
	}
	if !(c.VMaxVal > 0) {
		return laperr.Invalid("maximum speed must be positive, got %v", c.VMaxVal)
	}
	return nil
}

func (c ConstantAcceleration) VMax() float64 { return c.VMaxVal }

func (c ConstantAcceleration) AccelerateOver(v, dist float64) float64 {
	return math.Sqrt(v*v + 2*c.AAcc*dist)
}

func (c ConstantAcceleration) EntrySpeedFor(exitV, dist float64) float64 {
	return math.Sqrt(math.Max(0, exitV*exitV+2*c.ADcc*dist))
}

func (c ConstantAcceleration) BrakingDistanceTo(v, targetV float64) float64 {
	if c.ADcc <= 0 {
		return math.Inf(1)
	}
	if v <= targetV {
		return 0
	}
	return (v*v - targetV*targetV) / (2 * c.ADcc)
}
