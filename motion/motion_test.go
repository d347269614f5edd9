package motion

import (
	"math"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"gonum.org/v1/gonum/spatial/r3"
)

var (
	approx   = cmpopts.EquateApprox(0, 1e-9)
	defaults = Params{LayerCount: 5, MaxRadius: 10}
)

func sameRotation(t *testing.T, want, got Euler) {
	t.Helper()
	wm, gm := want.Matrix(), got.Matrix()
	for j := 0; j < 3; j++ {
		if diff := cmp.Diff(wm.VecCol(j), gm.VecCol(j), approx); diff != "" {
			t.Fatalf("column %d (-want +got):\n%s", j, diff)
		}
	}
}

func TestAnimTime(t *testing.T) {
	period := 10 * time.Second
	tests := []struct {
		elapsed time.Duration
		period  time.Duration
		want    float64
	}{
		{0, period, 0},
		{2500 * time.Millisecond, period, math.Pi / 2},
		{5 * time.Second, period, math.Pi},
		{period, period, FullRotation},
		{25 * time.Second, period, 5 * math.Pi},
		{time.Second, 0, 0},
	}
	for _, tc := range tests {
		if got := AnimTime(tc.elapsed, tc.period); math.Abs(got-tc.want) > 1e-12 {
			t.Fatalf("AnimTime(%v, %v)=%v want %v", tc.elapsed, tc.period, got, tc.want)
		}
	}
}

func TestPhaseOffsetsIncreasing(t *testing.T) {
	const n = 25
	prev := -1.0
	for i := 0; i < n; i++ {
		got := PhaseOffset(i, n)
		if got <= prev {
			t.Fatalf("offset %d=%v not above %v", i, got, prev)
		}
		if got < 0 || got >= FullRotation {
			t.Fatalf("offset %d=%v outside [0, 2π)", i, got)
		}
		prev = got
	}
	if got := PhaseOffset(3, 0); got != 0 {
		t.Fatalf("empty roster offset=%v", got)
	}
}

func TestRadiusBounded(t *testing.T) {
	for i := 0; i < 400; i++ {
		tt := -20 + float64(i)*0.137
		for j := 0; j < 25; j++ {
			r := Radius(tt, PhaseOffset(j, 25), defaults)
			if r < 0 || r > defaults.MaxRadius+1e-12 {
				t.Fatalf("radius(%v, %d)=%v", tt, j, r)
			}
		}
	}
}

func TestPositionAtStart(t *testing.T) {
	if r := Radius(0, 0, defaults); r != 0 {
		t.Fatalf("radius=%v want 0", r)
	}
	if diff := cmp.Diff(r3.Vec{Z: 10}, Position(0, 0, defaults), approx); diff != "" {
		t.Fatalf("position (-want +got):\n%s", diff)
	}
}

func TestPositionWhenTimeEqualsPhase(t *testing.T) {
	const phase = 0.7
	s := math.Sin(-phase * 4)
	r := s * s * 10
	want := r3.Vec{X: r, Y: 0, Z: math.Cos(-phase*4) * 10}
	if diff := cmp.Diff(want, Position(phase, phase, defaults), approx); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}
}

func TestComputePosePeriodic(t *testing.T) {
	for _, tt := range []float64{0, 0.3, 1.9, math.Pi, 4.4, 11} {
		for j := 0; j < 25; j++ {
			phase := PhaseOffset(j, 25)
			a := ComputePose(tt, phase, defaults)
			b := ComputePose(tt+FullRotation, phase, defaults)
			if diff := cmp.Diff(a.Position, b.Position, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
				t.Fatalf("t=%v j=%d position (-a +b):\n%s", tt, j, diff)
			}
			sameRotation(t, a.Rotation, b.Rotation)
		}
	}
}

func TestLookAtFacesTarget(t *testing.T) {
	up := r3.Vec{Y: 1}
	eyes := []r3.Vec{
		{Z: 10},
		{Z: -10},
		{X: 3, Y: -2, Z: 7},
		{X: -4, Y: 6, Z: -1},
		{X: 0.5, Y: 0.5, Z: 0.5},
	}
	for _, eye := range eyes {
		m := LookAt(eye, r3.Vec{}, up).Matrix()
		want := r3.Unit(r3.Scale(-1, eye))
		if diff := cmp.Diff(want, m.MulVec(r3.Vec{Z: 1}), approx); diff != "" {
			t.Fatalf("eye %v: +Z (-want +got):\n%s", eye, diff)
		}
		// Local X stays horizontal.
		if x := m.MulVec(r3.Vec{X: 1}); math.Abs(x.Y) > 1e-9 {
			t.Fatalf("eye %v: local X tilted: %v", eye, x)
		}
		if d := m.Det(); math.Abs(d-1) > 1e-9 {
			t.Fatalf("eye %v: det=%v", eye, d)
		}
	}
}

func TestLookAtDegenerate(t *testing.T) {
	up := r3.Vec{Y: 1}
	if got := LookAt(r3.Vec{}, r3.Vec{}, up); got != (Euler{}) {
		t.Fatalf("coincident eye and target=%+v want identity", got)
	}
	// Looking straight down the up axis still yields a usable rotation.
	z := LookAt(r3.Vec{Y: 5}, r3.Vec{}, up).Matrix().MulVec(r3.Vec{Z: 1})
	if diff := cmp.Diff(r3.Vec{Y: -1}, z, cmpopts.EquateApprox(0, 1e-3)); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}
}

func TestTiltIsIncrement(t *testing.T) {
	for j := 0; j < 25; j++ {
		phase := PhaseOffset(j, 25)
		pose := ComputePose(1.3, phase, defaults)
		base := LookAt(Position(1.3, phase, defaults), r3.Vec{}, r3.Vec{Y: 1})
		want := Euler{X: base.X + TiltPitch, Y: base.Y + TiltYaw, Z: base.Z}
		if pose.Rotation != want {
			t.Fatalf("j=%d rotation=%+v want %+v", j, pose.Rotation, want)
		}
	}
}

func TestEulerRoundTrip(t *testing.T) {
	tests := []Euler{
		{},
		{X: 0.3, Y: -0.7, Z: 1.1},
		{X: -2.5, Y: 1.2, Z: -0.4},
		{X: 3.0, Y: 0.01, Z: 2.9},
	}
	for _, e := range tests {
		if diff := cmp.Diff(e, EulerFromMatrix(e.Matrix()), approx); diff != "" {
			t.Fatalf("(-want +got):\n%s", diff)
		}
	}
}

func TestEulerGimbalLock(t *testing.T) {
	e := Euler{X: 0.4, Y: math.Pi / 2, Z: 0.3}
	got := EulerFromMatrix(e.Matrix())
	if got.Z != 0 {
		t.Fatalf("Z=%v want 0 at gimbal lock", got.Z)
	}
	sameRotation(t, e, got)
}

func TestGridRotation(t *testing.T) {
	for _, tt := range []float64{0, math.Pi / 2, math.Pi, 3 * math.Pi / 2} {
		if got := GridRotation(tt); got != tt {
			t.Fatalf("GridRotation(%v)=%v", tt, got)
		}
	}
}
