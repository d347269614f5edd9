package gfx

import "github.com/chewxy/math32"

// Geometry is an indexed triangle list. Triangles wind counter-clockwise when
// seen from outside the solid.
//
// Geometries are treated as immutable once built and may be shared by any
// number of nodes.
type Geometry struct {
	Positions []Vec3
	Indices   []uint16
}

// Triangles returns the number of triangles in g.
func (g *Geometry) Triangles() int {
	if g == nil {
		return 0
	}
	return len(g.Indices) / 3
}

func (g *Geometry) tri(a, b, c int) {
	g.Indices = append(g.Indices, uint16(a), uint16(b), uint16(c))
}

func (g *Geometry) quad(a, b, c, d int) {
	g.tri(a, b, c)
	g.tri(a, c, d)
}

// NewBoxGeometry returns an axis-aligned box centered on the origin.
func NewBoxGeometry(width, height, depth Scalar) *Geometry {
	hx, hy, hz := width/2, height/2, depth/2
	g := &Geometry{Positions: make([]Vec3, 8)}
	// Corner i has +x when bit0 is set, +y for bit1, +z for bit2.
	for i := range g.Positions {
		p := V3(-hx, -hy, -hz)
		if i&1 != 0 {
			p.X = hx
		}
		if i&2 != 0 {
			p.Y = hy
		}
		if i&4 != 0 {
			p.Z = hz
		}
		g.Positions[i] = p
	}
	g.quad(1, 3, 7, 5) // +X
	g.quad(0, 4, 6, 2) // -X
	g.quad(2, 6, 7, 3) // +Y
	g.quad(0, 1, 5, 4) // -Y
	g.quad(4, 5, 7, 6) // +Z
	g.quad(0, 2, 3, 1) // -Z
	return g
}

// NewCylinderGeometry returns a capped cylinder along Y centered on the origin.
// A zero radius collapses that end into a single apex vertex.
func NewCylinderGeometry(radiusTop, radiusBottom, height Scalar, radialSegs int) *Geometry {
	if radialSegs < 3 {
		radialSegs = 3
	}
	hy := height / 2
	g := &Geometry{}

	ring := func(r, y Scalar) []int {
		if r == 0 {
			g.Positions = append(g.Positions, V3(0, y, 0))
			idx := make([]int, radialSegs+1)
			for i := range idx {
				idx[i] = len(g.Positions) - 1
			}
			return idx
		}
		idx := make([]int, radialSegs+1)
		for i := 0; i < radialSegs; i++ {
			s, c := math32.Sincos(2 * math32.Pi * Scalar(i) / Scalar(radialSegs))
			idx[i] = len(g.Positions)
			g.Positions = append(g.Positions, V3(r*s, y, r*c))
		}
		idx[radialSegs] = idx[0]
		return idx
	}

	top := ring(radiusTop, hy)
	bottom := ring(radiusBottom, -hy)

	for i := 0; i < radialSegs; i++ {
		t0, t1 := top[i], top[i+1]
		b0, b1 := bottom[i], bottom[i+1]
		switch {
		case t0 == t1:
			g.tri(t0, b0, b1)
		case b0 == b1:
			g.tri(t0, b0, t1)
		default:
			g.tri(t0, b0, b1)
			g.tri(t0, b1, t1)
		}
	}

	if radiusTop != 0 {
		c := len(g.Positions)
		g.Positions = append(g.Positions, V3(0, hy, 0))
		for i := 0; i < radialSegs; i++ {
			g.tri(c, top[i], top[i+1])
		}
	}
	if radiusBottom != 0 {
		c := len(g.Positions)
		g.Positions = append(g.Positions, V3(0, -hy, 0))
		for i := 0; i < radialSegs; i++ {
			g.tri(c, bottom[i+1], bottom[i])
		}
	}
	return g
}

// NewConeGeometry returns a cone along Y with its apex at +height/2.
func NewConeGeometry(radius, height Scalar, radialSegs int) *Geometry {
	return NewCylinderGeometry(0, radius, height, radialSegs)
}

// NewSphereGeometry returns a UV sphere with single-vertex poles.
func NewSphereGeometry(radius Scalar, widthSegs, heightSegs int) *Geometry {
	if widthSegs < 3 {
		widthSegs = 3
	}
	if heightSegs < 2 {
		heightSegs = 2
	}
	g := &Geometry{}
	g.Positions = append(g.Positions, V3(0, radius, 0))
	for j := 1; j < heightSegs; j++ {
		sp, cp := math32.Sincos(math32.Pi * Scalar(j) / Scalar(heightSegs))
		rho := radius * sp
		for i := 0; i < widthSegs; i++ {
			st, ct := math32.Sincos(2 * math32.Pi * Scalar(i) / Scalar(widthSegs))
			g.Positions = append(g.Positions, V3(rho*st, radius*cp, rho*ct))
		}
	}
	south := len(g.Positions)
	g.Positions = append(g.Positions, V3(0, -radius, 0))

	at := func(j, i int) int {
		switch {
		case j == 0:
			return 0
		case j == heightSegs:
			return south
		}
		return 1 + (j-1)*widthSegs + i%widthSegs
	}
	for j := 0; j < heightSegs; j++ {
		for i := 0; i < widthSegs; i++ {
			t0, t1 := at(j, i), at(j, i+1)
			b0, b1 := at(j+1, i), at(j+1, i+1)
			if j == 0 {
				g.tri(t0, b0, b1)
				continue
			}
			if j == heightSegs-1 {
				g.tri(t0, b0, t1)
				continue
			}
			g.tri(t0, b0, b1)
			g.tri(t0, b1, t1)
		}
	}
	return g
}

// NewTorusGeometry returns a torus lying in the XY plane. radialSegs runs
// around the tube and tubularSegs around the ring.
func NewTorusGeometry(radius, tube Scalar, radialSegs, tubularSegs int) *Geometry {
	if radialSegs < 3 {
		radialSegs = 3
	}
	if tubularSegs < 3 {
		tubularSegs = 3
	}
	g := &Geometry{Positions: make([]Vec3, 0, radialSegs*tubularSegs)}
	for i := 0; i < tubularSegs; i++ {
		su, cu := math32.Sincos(2 * math32.Pi * Scalar(i) / Scalar(tubularSegs))
		for j := 0; j < radialSegs; j++ {
			sv, cv := math32.Sincos(2 * math32.Pi * Scalar(j) / Scalar(radialSegs))
			r := radius + tube*cv
			g.Positions = append(g.Positions, V3(r*cu, r*su, tube*sv))
		}
	}
	at := func(i, j int) int {
		return (i%tubularSegs)*radialSegs + j%radialSegs
	}
	for i := 0; i < tubularSegs; i++ {
		for j := 0; j < radialSegs; j++ {
			g.quad(at(i, j), at(i+1, j), at(i+1, j+1), at(i, j+1))
		}
	}
	return g
}

// NewCircleGeometry returns a flat disc in the XY plane facing +Z.
func NewCircleGeometry(radius Scalar, segs int) *Geometry {
	if segs < 3 {
		segs = 3
	}
	g := &Geometry{Positions: make([]Vec3, 0, segs+1)}
	g.Positions = append(g.Positions, Vec3{})
	for i := 0; i < segs; i++ {
		s, c := math32.Sincos(2 * math32.Pi * Scalar(i) / Scalar(segs))
		g.Positions = append(g.Positions, V3(radius*c, radius*s, 0))
	}
	for i := 0; i < segs; i++ {
		g.tri(0, 1+i, 1+(i+1)%segs)
	}
	return g
}
