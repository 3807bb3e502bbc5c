// Package vehicle defines the immutable vehicle record evaluated by the
// lap-time engine and the registry files that supply them.
package vehicle

import (
	"fmt"
	"math"

	"github.com/cxd309/laptime-engine/internal/curvature"
	"github.com/cxd309/laptime-engine/internal/kinematics"
	"github.com/cxd309/laptime-engine/internal/laperr"
)

// Vehicle holds the static parameters of one car. Values are copied, never
// mutated, once a comparison starts.
//
// Kinematics selects the longitudinal physics model; adding a new model only
// requires implementing kinematics.MotionModel and registering it in Model
// below. An empty value means "constant".
type Vehicle struct {
	Name        string  `json:"name" toml:"name"`
	Mass        float64 `json:"mass" toml:"mass"`                   // kg, informational only
	MaxLateralG float64 `json:"max_lateral_g" toml:"max_lateral_g"` // g
	MaxAccel    float64 `json:"max_accel" toml:"max_accel"`         // m/s²
	MaxBrake    float64 `json:"max_brake" toml:"max_brake"`         // m/s², positive
	TopSpeedKph float64 `json:"top_speed_kph" toml:"top_speed_kph"` // km/h
	Kinematics  string  `json:"kinematics,omitempty" toml:"kinematics,omitempty"`
}

// Validate checks every physical parameter the computation relies on.
func (v Vehicle) Validate() error {
	if v.Name == "" {
		return laperr.Invalid("vehicle has no name")
	}
	if v.Mass < 0 || math.IsNaN(v.Mass) {
		return laperr.Invalid("vehicle %q: mass must not be negative, got %v", v.Name, v.Mass)
	}
	if err := positive("max_lateral_g", v.MaxLateralG); err != nil {
		return fmt.Errorf("vehicle %q: %w", v.Name, err)
	}
	if err := positive("max_accel", v.MaxAccel); err != nil {
		return fmt.Errorf("vehicle %q: %w", v.Name, err)
	}
	if err := positive("max_brake", v.MaxBrake); err != nil {
		return fmt.Errorf("vehicle %q: %w", v.Name, err)
	}
	if err := positive("top_speed_kph", v.TopSpeedKph); err != nil {
		return fmt.Errorf("vehicle %q: %w", v.Name, err)
	}
	if _, err := v.Model(); err != nil {
		return err
	}
	return nil
}

// TopSpeed returns the top speed in m/s.
func (v Vehicle) TopSpeed() float64 { return v.Limits().TopSpeed() }

// Limits returns the cornering limits used by the curvature estimator.
func (v Vehicle) Limits() curvature.Limits {
	return curvature.Limits{MaxLateralG: v.MaxLateralG, TopSpeedKph: v.TopSpeedKph}
}

// Model resolves the vehicle's longitudinal physics.
//
// Supported models:
//   - "constant" (default): fixed max_accel / max_brake rates.
func (v Vehicle) Model() (kinematics.MotionModel, error) {
	switch v.Kinematics {
	case "", kinematics.ConstantModelName:
		return kinematics.ConstantAcceleration{
			AAcc:    v.MaxAccel,
			ADcc:    v.MaxBrake,
			VMaxVal: v.TopSpeed(),
		}, nil
	default:
		return nil, laperr.Invalid("vehicle %q: unknown kinematics model %q", v.Name, v.Kinematics)
	}
}

func positive(field string, val float64) error {
	if !(val > 0) || math.IsInf(val, 0) {
		return laperr.Invalid("%s must be positive, got %v", field, val)
	}
	return nil
}
