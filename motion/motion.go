// Package motion computes the pose of every object in the orbit animation.
//
// All objects follow the same closed path around a sphere of radius
// MaxRadius. They only differ by a constant phase offset, so the roster is
// spread evenly along the path at any point of the loop. Every function in
// this package is pure: the same inputs always produce the same pose.
package motion

import (
	"math"
	"time"

	"gonum.org/v1/gonum/spatial/r3"
)

// FullRotation is one complete loop of the animation, in radians.
const FullRotation = 2 * math.Pi

// Tilt applied on top of the look-at orientation so more than one face of
// each shape stays visible.
const (
	TiltPitch = -0.2
	TiltYaw   = 0.5
)

// Params holds the path constants shared by every object.
type Params struct {
	// LayerCount multiplies the phase offset in the radius and depth terms.
	LayerCount int
	// MaxRadius bounds the pulse radius and the depth swing. Must be >= 0.
	MaxRadius float64
}

// Pose is the placement written to an object for one frame.
type Pose struct {
	Position r3.Vec
	Rotation Euler
}

// AnimTime converts elapsed wall time into the loop phase in radians. One
// period maps to FullRotation. A non-positive period yields 0.
func AnimTime(elapsed, period time.Duration) float64 {
	if period <= 0 {
		return 0
	}
	return float64(elapsed) / float64(period) * FullRotation
}

// PhaseOffset returns the fixed lag of roster entry i out of n.
func PhaseOffset(i, n int) float64 {
	if n <= 0 {
		return 0
	}
	return float64(i) / float64(n) * FullRotation
}

// Radius returns the distance from the Z axis at phase t. The squared sine
// keeps it within [0, MaxRadius].
func Radius(t, phase float64, p Params) float64 {
	s := math.Sin(t - phase*float64(p.LayerCount))
	return s * s * p.MaxRadius
}

// Position returns the point on the shared path at phase t.
func Position(t, phase float64, p Params) r3.Vec {
	r := Radius(t, phase, p)
	s, c := math.Sincos(t - phase)
	return r3.Vec{
		X: c * r,
		Y: s * r,
		Z: math.Cos(t-phase*float64(p.LayerCount)) * p.MaxRadius,
	}
}

// ComputePose places an object on the path, turns it towards the origin and
// then adds the fixed tilt to the resulting angles.
func ComputePose(t, phase float64, p Params) Pose {
	pos := Position(t, phase, p)
	rot := LookAt(pos, r3.Vec{}, r3.Vec{Y: 1})
	rot.X += TiltPitch
	rot.Y += TiltYaw
	return Pose{Position: pos, Rotation: rot}
}

// GridRotation returns the z-rotation of the background grid at phase t.
func GridRotation(t float64) float64 { return t }
