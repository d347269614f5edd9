package motion

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Euler is an orientation in radians, applied about X, then Y, then Z
// (R = Rx·Ry·Rz).
type Euler struct {
	X, Y, Z float64
}

// Matrix returns the rotation matrix of e.
func (e Euler) Matrix() *r3.Mat {
	sx, cx := math.Sincos(e.X)
	sy, cy := math.Sincos(e.Y)
	sz, cz := math.Sincos(e.Z)
	rx := r3.NewMat([]float64{
		1, 0, 0,
		0, cx, -sx,
		0, sx, cx,
	})
	ry := r3.NewMat([]float64{
		cy, 0, sy,
		0, 1, 0,
		-sy, 0, cy,
	})
	rz := r3.NewMat([]float64{
		cz, -sz, 0,
		sz, cz, 0,
		0, 0, 1,
	})
	var xy, m r3.Mat
	xy.Mul(rx, ry)
	m.Mul(&xy, rz)
	return &m
}

// EulerFromMatrix extracts XYZ angles from a pure rotation matrix. Near the
// gimbal lock (|m[0][2]| ≈ 1) Z is pinned to 0.
func EulerFromMatrix(m *r3.Mat) Euler {
	m13 := m.At(0, 2)
	e := Euler{Y: math.Asin(math.Max(-1, math.Min(1, m13)))}
	if math.Abs(m13) < 0.9999999 {
		e.X = math.Atan2(-m.At(1, 2), m.At(2, 2))
		e.Z = math.Atan2(-m.At(0, 1), m.At(0, 0))
	} else {
		e.X = math.Atan2(m.At(2, 1), m.At(1, 1))
	}
	return e
}

// LookAt returns the orientation that turns an object at eye so its local
// +Z axis points at target, keeping local +Y as close to up as possible.
func LookAt(eye, target, up r3.Vec) Euler {
	z := r3.Sub(target, eye)
	if r3.Norm2(z) == 0 {
		z.Z = 1
	}
	z = r3.Unit(z)

	x := r3.Cross(up, z)
	if r3.Norm2(x) == 0 {
		// up and z are parallel: nudge z off the axis.
		if math.Abs(up.Z) == 1 {
			z.X += 1e-4
		} else {
			z.Z += 1e-4
		}
		z = r3.Unit(z)
		x = r3.Cross(up, z)
	}
	x = r3.Unit(x)
	y := r3.Cross(z, x)

	return EulerFromMatrix(r3.NewMat([]float64{
		x.X, y.X, z.X,
		x.Y, y.Y, z.Y,
		x.Z, y.Z, z.Z,
	}))
}
