package profile

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/cxd309/laptime-engine/internal/curvature"
	"github.com/cxd309/laptime-engine/internal/kinematics"
	"github.com/cxd309/laptime-engine/internal/laperr"
	"github.com/cxd309/laptime-engine/internal/track"
)

const reachTolerance = 1e-6

var approx = cmpopts.EquateApprox(0, 1e-9)

func model(accel, brake float64) kinematics.ConstantAcceleration {
	return kinematics.ConstantAcceleration{AAcc: accel, ADcc: brake, VMaxVal: 100}
}

// hairpin is a 200 m straight into a 90-degree right-hander of radius 30 m,
// followed by another 200 m straight, sampled roughly every 2 m.
func hairpin(t *testing.T) track.Path {
	t.Helper()
	var pts []track.Coordinate
	for i := 0; i <= 100; i++ {
		pts = append(pts, track.Coordinate{X: -200 + 2*float64(i)})
	}
	const r = 30.0
	for i := 1; i <= 24; i++ {
		theta := -math.Pi/2 + (math.Pi/2)*float64(i)/24
		pts = append(pts, track.Coordinate{X: r * math.Cos(theta), Y: r + r*math.Sin(theta)})
	}
	for i := 1; i <= 100; i++ {
		pts = append(pts, track.Coordinate{X: r, Y: r + 2*float64(i)})
	}
	p, err := track.NewPath("hairpin", pts, nil)
	if err != nil {
		t.Fatalf("NewPath: %v", err)
	}
	return p
}

func ceilingFor(t *testing.T, p track.Path, lateralG, topKph float64) []float64 {
	t.Helper()
	k, err := curvature.Trace(p.XY())
	if err != nil {
		t.Fatalf("Trace: %v", err)
	}
	c, err := curvature.Ceiling(k, curvature.Limits{MaxLateralG: lateralG, TopSpeedKph: topKph})
	if err != nil {
		t.Fatalf("Ceiling: %v", err)
	}
	return c
}

func checkInvariants(t *testing.T, ceiling, ds, v []float64, m kinematics.ConstantAcceleration) {
	t.Helper()
	for i := range v {
		if v[i] > ceiling[i]+reachTolerance {
			t.Errorf("v[%d] = %v exceeds ceiling %v", i, v[i], ceiling[i])
		}
		if i > 0 {
			if lim := m.AccelerateOver(v[i-1], ds[i-1]); v[i] > lim+reachTolerance {
				t.Errorf("v[%d] = %v not forward reachable (limit %v)", i, v[i], lim)
			}
		}
		if i < len(v)-1 {
			if lim := m.EntrySpeedFor(v[i+1], ds[i]); v[i] > lim+reachTolerance {
				t.Errorf("v[%d] = %v cannot brake to v[%d] (limit %v)", i, v[i], i+1, lim)
			}
		}
	}
}

func TestForwardAndBackwardPass(t *testing.T) {
	ceiling := []float64{10, 100, 100, 5}
	ds := []float64{16, 16, 16}
	m := model(2, 4)

	fwd, err := ForwardPass(ceiling, ds, m)
	if err != nil {
		t.Fatalf("ForwardPass: %v", err)
	}
	wantFwd := []float64{10, math.Sqrt(164), math.Sqrt(228), 5}
	if diff := cmp.Diff(wantFwd, fwd, approx); diff != "" {
		t.Errorf("ForwardPass mismatch (-want +got):\n%s", diff)
	}

	bwd, err := BackwardPass(fwd, ds, m)
	if err != nil {
		t.Fatalf("BackwardPass: %v", err)
	}
	wantBwd := []float64{10, math.Sqrt(164), math.Sqrt(153), 5}
	if diff := cmp.Diff(wantBwd, bwd, approx); diff != "" {
		t.Errorf("BackwardPass mismatch (-want +got):\n%s", diff)
	}

	// Passes build new slices.
	if diff := cmp.Diff([]float64{10, 100, 100, 5}, ceiling); diff != "" {
		t.Errorf("ceiling was modified:\n%s", diff)
	}
	if diff := cmp.Diff(wantFwd, fwd, approx); diff != "" {
		t.Errorf("forward result was modified:\n%s", diff)
	}
}

func TestSolve_OpenPathInvariants(t *testing.T) {
	p := hairpin(t)
	ds := p.SegmentLengths()
	ceiling := ceilingFor(t, p, 1.0, 200)
	m := model(4, 9)

	prof, err := Solve(ceiling, ds, m, Options{})
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if prof.Rounds != 0 {
		t.Errorf("Rounds = %d, want 0 for an open path", prof.Rounds)
	}
	checkInvariants(t, ceiling, ds, prof.Speeds, m)

	for i := range prof.Speeds {
		if prof.Speeds[i] > prof.Forward[i] {
			t.Errorf("backward pass raised v[%d]: %v > %v", i, prof.Speeds[i], prof.Forward[i])
		}
	}
}

func TestSolve_CircuitClosure(t *testing.T) {
	p := hairpin(t)
	ds := p.SegmentLengths()
	ceiling := ceilingFor(t, p, 0.92, 230)
	m := model(4, 9)

	prof, err := Solve(ceiling, ds, m, Options{Circuit: true})
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	last := len(prof.Speeds) - 1
	if prof.Speeds[0] != prof.Speeds[last] {
		t.Errorf("circuit endpoints differ: %v vs %v", prof.Speeds[0], prof.Speeds[last])
	}
	if prof.Rounds < 1 || prof.Rounds > maxClosureRounds {
		t.Errorf("Rounds = %d, want within [1, %d]", prof.Rounds, maxClosureRounds)
	}
	checkInvariants(t, ceiling, ds, prof.Speeds, m)
}

func TestSolve_CircuitEndBelowStartCeiling(t *testing.T) {
	// Forcing the end up to the start speed would break the end ceiling.
	ceiling := []float64{30, 30, 30, 12}
	ds := []float64{5, 5, 5}
	m := model(3, 6)

	prof, err := Solve(ceiling, ds, m, Options{Circuit: true})
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if prof.Speeds[0] != prof.Speeds[3] {
		t.Errorf("circuit endpoints differ: %v vs %v", prof.Speeds[0], prof.Speeds[3])
	}
	if prof.Speeds[3] > 12 {
		t.Errorf("end speed %v exceeds its ceiling 12", prof.Speeds[3])
	}
	checkInvariants(t, ceiling, ds, prof.Speeds, m)
}

func TestSolve_StraightIgnoresLateralGrip(t *testing.T) {
	p, err := track.Straight(1000, 201)
	if err != nil {
		t.Fatalf("Straight: %v", err)
	}
	ds := p.SegmentLengths()
	m := model(5.5, 10.5)

	low, err := Solve(ceilingFor(t, p, 0.5, 210), ds, m, Options{})
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	high, err := Solve(ceilingFor(t, p, 1.5, 210), ds, m, Options{})
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if diff := cmp.Diff(low.Speeds, high.Speeds); diff != "" {
		t.Errorf("straight profile depends on lateral grip (-low +high):\n%s", diff)
	}
	top := 210 * 1000.0 / 3600
	for i, v := range low.Speeds {
		if math.Abs(v-top) > 1e-9 {
			t.Errorf("v[%d] = %v, want top speed %v", i, v, top)
		}
	}
}

func TestSolve_MoreAccelerationNeverSlower(t *testing.T) {
	p := hairpin(t)
	ds := p.SegmentLengths()
	ceiling := ceilingFor(t, p, 1.0, 250)

	for _, circuit := range []bool{false, true} {
		base, err := Solve(ceiling, ds, model(3, 8), Options{Circuit: circuit})
		if err != nil {
			t.Fatalf("Solve: %v", err)
		}
		doubled, err := Solve(ceiling, ds, model(6, 8), Options{Circuit: circuit})
		if err != nil {
			t.Fatalf("Solve: %v", err)
		}
		for i := range base.Speeds {
			if doubled.Speeds[i] < base.Speeds[i]-reachTolerance {
				t.Errorf("circuit=%v: v[%d] dropped from %v to %v with doubled accel", circuit, i, base.Speeds[i], doubled.Speeds[i])
			}
		}
	}
}

func TestSolve_QuarterCornerNotFasterThanGripLimit(t *testing.T) {
	p, err := track.QuarterArc(50, 100)
	if err != nil {
		t.Fatalf("QuarterArc: %v", err)
	}
	ds := p.SegmentLengths()
	ceiling := ceilingFor(t, p, 1.0, 300)

	naive := 0.0
	for i, d := range ds {
		naive += d / ceiling[i+1]
	}
	if math.Abs(naive-3.54) > 0.05 {
		t.Fatalf("naive corner time = %v, want ~3.54", naive)
	}

	prof, err := Solve(ceiling, ds, model(3, 6), Options{})
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	lap, err := LapTime(prof.Speeds, ds)
	if err != nil {
		t.Fatalf("LapTime: %v", err)
	}
	if lap.Seconds < naive-1e-12 {
		t.Errorf("solved corner time %v is below naive grip-limited time %v", lap.Seconds, naive)
	}
	if lap.Incomplete {
		t.Errorf("corner lap unexpectedly incomplete: %v", lap.Excluded)
	}
}

func TestSolve_InvalidInput(t *testing.T) {
	tests := []struct {
		name    string
		ceiling []float64
		ds      []float64
		m       kinematics.MotionModel
	}{
		{"single sample", []float64{10}, nil, model(3, 6)},
		{"length mismatch", []float64{10, 10, 10}, []float64{1}, model(3, 6)},
		{"negative accel", []float64{10, 10}, []float64{1}, model(-3, 6)},
		{"zero brake", []float64{10, 10}, []float64{1}, model(3, 0)},
		{"nan ceiling", []float64{10, math.NaN()}, []float64{1}, model(3, 6)},
		{"negative segment", []float64{10, 10}, []float64{-1}, model(3, 6)},
		{"nil model", []float64{10, 10}, []float64{1}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Solve(tt.ceiling, tt.ds, tt.m, Options{Circuit: true}); !errors.Is(err, laperr.ErrInvalidInput) {
				t.Errorf("Solve() error = %v, want ErrInvalidInput", err)
			}
		})
	}
}
