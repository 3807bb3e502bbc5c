// Package kinematics defines the MotionModel interface for vehicle traction and braking
// physics along a sampled path, along with built-in implementations.
//
// Adding a new physics model requires only implementing MotionModel and registering it
// in the JSON discriminator in the vehicle package; the profile solver itself
// never needs to change.
package kinematics

// MotionModel is the physics contract every kinematics implementation must satisfy.
// All distance values are in metres, velocities in m/s.
type MotionModel interface {
	// Validate reports parameters the model cannot simulate with.
	Validate() error

	// VMax returns the vehicle's maximum permissible speed (m/s).
	VMax() float64

	// AccelerateOver returns the highest speed reachable after accelerating
	// flat out from v over dist metres.
	AccelerateOver(v, dist float64) float64

	// EntrySpeedFor returns the highest speed from which the vehicle can still
	// brake down to exitV within dist metres.
	EntrySpeedFor(exitV, dist float64) float64

	// BrakingDistanceTo returns the distance needed to decelerate from v to targetV.
	// Returns 0 if v ≤ targetV.
	BrakingDistanceTo(v, targetV float64) float64
}
