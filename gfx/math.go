package gfx

import "github.com/chewxy/math32"

// Scalar is the numeric type used by gfx math operations.
type Scalar = float32

// Vec3 is a 3D vector.
type Vec3 struct {
	X, Y, Z Scalar
}

// Vec4 is a homogeneous point or vector.
type Vec4 struct {
	X, Y, Z, W Scalar
}

func V3(x, y, z Scalar) Vec3 { return Vec3{X: x, Y: y, Z: z} }

func (v Vec3) Add(o Vec3) Vec3     { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vec3) Sub(o Vec3) Vec3     { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }
func (v Vec3) Scale(s Scalar) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }
func (v Vec3) Dot(o Vec3) Scalar   { return v.X*o.X + v.Y*o.Y + v.Z*o.Z }
func (v Vec3) Len() Scalar         { return math32.Sqrt(v.Dot(v)) }

func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{
		X: v.Y*o.Z - v.Z*o.Y,
		Y: v.Z*o.X - v.X*o.Z,
		Z: v.X*o.Y - v.Y*o.X,
	}
}

// Unit returns v scaled to length 1, or the zero vector for a zero v.
func (v Vec3) Unit() Vec3 {
	l := v.Len()
	if l == 0 {
		return Vec3{}
	}
	return v.Scale(1 / l)
}

// Point lifts v to a homogeneous point.
func (v Vec3) Point() Vec4 { return Vec4{X: v.X, Y: v.Y, Z: v.Z, W: 1} }

func clamp01(v Scalar) Scalar {
	return math32.Max(0, math32.Min(1, v))
}

// Deg2Rad converts degrees to radians.
func Deg2Rad(deg Scalar) Scalar { return deg * math32.Pi / 180 }

// Mat4 is a column-major 4x4 matrix: m[col*4+row].
type Mat4 [16]Scalar

func Identity() Mat4 {
	return Mat4{0: 1, 5: 1, 10: 1, 15: 1}
}

// Mul returns m * o, so o applies first.
func (m Mat4) Mul(o Mat4) Mat4 {
	var out Mat4
	for col := 0; col < 4; col++ {
		v := m.Transform(Vec4{o[col*4], o[col*4+1], o[col*4+2], o[col*4+3]})
		out[col*4+0], out[col*4+1], out[col*4+2], out[col*4+3] = v.X, v.Y, v.Z, v.W
	}
	return out
}

// Transform returns m * v.
func (m Mat4) Transform(v Vec4) Vec4 {
	return Vec4{
		X: m[0]*v.X + m[4]*v.Y + m[8]*v.Z + m[12]*v.W,
		Y: m[1]*v.X + m[5]*v.Y + m[9]*v.Z + m[13]*v.W,
		Z: m[2]*v.X + m[6]*v.Y + m[10]*v.Z + m[14]*v.W,
		W: m[3]*v.X + m[7]*v.Y + m[11]*v.Z + m[15]*v.W,
	}
}

// TransformPoint applies m to p with w=1 and drops w.
func (m Mat4) TransformPoint(p Vec3) Vec3 {
	v := m.Transform(p.Point())
	return Vec3{X: v.X, Y: v.Y, Z: v.Z}
}

// EulerXYZ returns the rotation Rx * Ry * Rz for the angles in e.
func EulerXYZ(e Vec3) Mat4 {
	return Compose(Vec3{}, e, V3(1, 1, 1))
}

// Compose returns T(pos) * Rx*Ry*Rz(euler) * S(scale) in closed form.
func Compose(pos, euler, scale Vec3) Mat4 {
	sx, cx := math32.Sincos(euler.X)
	sy, cy := math32.Sincos(euler.Y)
	sz, cz := math32.Sincos(euler.Z)
	return Mat4{
		(cy * cz) * scale.X,
		(cx*sz + sx*sy*cz) * scale.X,
		(sx*sz - cx*sy*cz) * scale.X,
		0,

		(-cy * sz) * scale.Y,
		(cx*cz - sx*sy*sz) * scale.Y,
		(sx*cz + cx*sy*sz) * scale.Y,
		0,

		sy * scale.Z,
		(-sx * cy) * scale.Z,
		(cx * cy) * scale.Z,
		0,

		pos.X, pos.Y, pos.Z, 1,
	}
}

// ViewMatrix places eye at the origin looking down -Z toward target.
func ViewMatrix(eye, target, up Vec3) Mat4 {
	f := target.Sub(eye).Unit()
	s := f.Cross(up).Unit()
	u := s.Cross(f)
	return Mat4{
		s.X, u.X, -f.X, 0,
		s.Y, u.Y, -f.Y, 0,
		s.Z, u.Z, -f.Z, 0,
		-s.Dot(eye), -u.Dot(eye), f.Dot(eye), 1,
	}
}

// Perspective maps the view frustum to clip space with NDC z in [-1, 1].
func Perspective(fovYRad, aspect, near, far Scalar) Mat4 {
	if aspect == 0 {
		aspect = 1
	}
	f := 1 / math32.Tan(fovYRad/2)
	nf := 1 / (near - far)
	return Mat4{
		0:  f / aspect,
		5:  f,
		10: (far + near) * nf,
		11: -1,
		14: 2 * far * near * nf,
	}
}
