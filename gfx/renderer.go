package gfx

// Renderer is a fixed-pipeline software renderer.
//
// Create it once and reuse it to avoid allocations.
type Renderer struct {
	Mode  RenderMode
	Depth bool

	// LineDepthBias pulls line fragments towards the camera (in 0..1 depth
	// units) so outlines drawn on a surface are not hidden by it.
	LineDepthBias float32

	depthBuf []float32
	deferred []drawItem
	stats    Stats
}

// Stats counts the primitives submitted by the last Render call after
// near-plane rejection.
type Stats struct {
	Nodes     int
	Triangles int
	Segments  int
}

type drawItem struct {
	n     *Node
	mvp   Mat4
	model Mat4
}

// guardBand bounds projected coordinates (in NDC units) so integer edge
// functions cannot overflow for vertices that sit right at the near plane.
const guardBand = 64

// NewRenderer creates a renderer for a given maximum target size.
//
// If enableDepth is true, a depth buffer of size w*h is allocated.
func NewRenderer(w, h int, enableDepth bool) *Renderer {
	r := &Renderer{
		Mode:          RenderSolidFlat,
		Depth:         enableDepth,
		LineDepthBias: 5e-5,
	}
	if enableDepth && w > 0 && h > 0 {
		r.depthBuf = make([]float32, w*h)
	}
	return r
}

func (r *Renderer) SetRenderMode(m RenderMode) { r.Mode = m }

// Stats returns the counters of the last Render call.
func (r *Renderer) Stats() Stats { return r.stats }

func (r *Renderer) EnableDepth(on bool, w, h int) {
	r.Depth = on
	if !on {
		r.depthBuf = nil
		return
	}
	if w <= 0 || h <= 0 {
		r.depthBuf = nil
		return
	}
	if cap(r.depthBuf) < w*h {
		r.depthBuf = make([]float32, w*h)
	} else {
		r.depthBuf = r.depthBuf[:w*h]
	}
}

func (r *Renderer) clearDepth() {
	for i := range r.depthBuf {
		r.depthBuf[i] = 1e9
	}
}

// Render renders a scene into the target: background, then opaque nodes with
// depth writes, then translucent nodes blended with depth test only.
func (r *Renderer) Render(t Target, s *Scene) {
	if r == nil || t == nil || s == nil {
		return
	}
	w, h := t.Size()
	if w <= 0 || h <= 0 {
		return
	}
	t.Clear(s.Background)

	if r.Depth {
		r.EnableDepth(true, w, h)
		r.clearDepth()
	}

	aspect := Scalar(w) / Scalar(h)
	vp := s.Camera.Projection(aspect).Mul(s.Camera.View())
	near := s.Camera.Near
	if near <= 0 {
		near = 1e-3
	}

	r.stats = Stats{}
	r.deferred = r.deferred[:0]
	s.Walk(func(n *Node, world Mat4) {
		if n.Kind == NodeGroup {
			return
		}
		item := drawItem{n: n, mvp: vp.Mul(world), model: world}
		if n.Material.Translucent() {
			r.deferred = append(r.deferred, item)
			return
		}
		r.draw(t, w, h, near, item, s.Light, true)
	})
	for _, item := range r.deferred {
		r.draw(t, w, h, near, item, s.Light, false)
	}
}

func (r *Renderer) draw(t Target, w, h int, near Scalar, it drawItem, light Light, writeDepth bool) {
	r.stats.Nodes++
	switch it.n.Kind {
	case NodeMesh:
		r.renderMesh(t, w, h, it, light, writeDepth)
	case NodeLines:
		r.renderLines(t, w, h, near, it, writeDepth)
	}
}

func (r *Renderer) renderMesh(t Target, w, h int, it drawItem, light Light, writeDepth bool) {
	g := it.n.Mesh
	if g == nil || len(g.Positions) == 0 || len(g.Indices) < 3 {
		return
	}
	mat := it.n.Material.color()

	for i := 0; i+2 < len(g.Indices); i += 3 {
		i0 := int(g.Indices[i+0])
		i1 := int(g.Indices[i+1])
		i2 := int(g.Indices[i+2])
		if i0 >= len(g.Positions) || i1 >= len(g.Positions) || i2 >= len(g.Positions) {
			continue
		}

		v0, v1, v2 := g.Positions[i0], g.Positions[i1], g.Positions[i2]
		p0 := it.mvp.Transform(v0.Point())
		p1 := it.mvp.Transform(v1.Point())
		p2 := it.mvp.Transform(v2.Point())

		// Trivial clip: drop triangles touching or crossing the camera plane.
		if p0.W <= 0 || p1.W <= 0 || p2.W <= 0 {
			continue
		}
		ndc0, ok0 := clipToNDC(p0)
		ndc1, ok1 := clipToNDC(p1)
		ndc2, ok2 := clipToNDC(p2)
		if !ok0 || !ok1 || !ok2 || !ndc0.inGuardBand() || !ndc1.inGuardBand() || !ndc2.inGuardBand() {
			continue
		}
		r.stats.Triangles++

		x0, y0 := ndcToScreen(ndc0, w, h)
		x1, y1 := ndcToScreen(ndc1, w, h)
		x2, y2 := ndcToScreen(ndc2, w, h)

		c := mat
		if light.Mode == LightAmbientDirectional {
			n := triangleNormal(it.model.TransformPoint(v0), it.model.TransformPoint(v1), it.model.TransformPoint(v2))
			c = c.MulScalar(lightIntensity(light, n)).WithAlpha(mat.A)
		}

		switch r.Mode {
		case RenderWireframe:
			r.drawLine(t, w, x0, y0, ndc0.Z, x1, y1, ndc1.Z, c, false)
			r.drawLine(t, w, x1, y1, ndc1.Z, x2, y2, ndc2.Z, c, false)
			r.drawLine(t, w, x2, y2, ndc2.Z, x0, y0, ndc0.Z, c, false)
		default:
			r.fillTriangleFlat(t, w, h, x0, y0, ndc0.Z, x1, y1, ndc1.Z, x2, y2, ndc2.Z, c, writeDepth)
		}
	}
}

func (r *Renderer) renderLines(t Target, w, h int, near Scalar, it drawItem, writeDepth bool) {
	l := it.n.Lines
	if l == nil || len(l.Indices) < 2 {
		return
	}
	c := it.n.Material.color()

	for i := 0; i+1 < len(l.Indices); i += 2 {
		i0, i1 := int(l.Indices[i]), int(l.Indices[i+1])
		if i0 >= len(l.Positions) || i1 >= len(l.Positions) {
			continue
		}
		a, b := l.Positions[i0], l.Positions[i1]
		p0 := it.mvp.Transform(a.Point())
		p1 := it.mvp.Transform(b.Point())

		p0, p1, ok := clipSegmentNear(p0, p1, near)
		if !ok {
			continue
		}
		ndc0, _ := clipToNDC(p0)
		ndc1, _ := clipToNDC(p1)
		ndc0, ndc1, ok = clipSegmentXY(ndc0, ndc1)
		if !ok {
			continue
		}
		r.stats.Segments++

		x0, y0 := ndcToScreen(ndc0, w, h)
		x1, y1 := ndcToScreen(ndc1, w, h)
		r.drawLine(t, w, x0, y0, ndc0.Z, x1, y1, ndc1.Z, c, writeDepth)
	}
}

type ndcPoint struct {
	X, Y, Z float32
}

func clipToNDC(p Vec4) (ndcPoint, bool) {
	if p.W == 0 {
		return ndcPoint{}, false
	}
	invW := 1 / p.W
	return ndcPoint{X: p.X * invW, Y: p.Y * invW, Z: p.Z * invW}, true
}

func (p ndcPoint) inGuardBand() bool {
	return p.X >= -guardBand && p.X <= guardBand && p.Y >= -guardBand && p.Y <= guardBand
}

// clipSegmentNear trims a clip-space segment to w >= near.
func clipSegmentNear(a, b Vec4, near Scalar) (Vec4, Vec4, bool) {
	ina, inb := a.W >= near, b.W >= near
	switch {
	case ina && inb:
		return a, b, true
	case !ina && !inb:
		return a, b, false
	}
	t := (near - a.W) / (b.W - a.W)
	p := Vec4{
		X: a.X + (b.X-a.X)*t,
		Y: a.Y + (b.Y-a.Y)*t,
		Z: a.Z + (b.Z-a.Z)*t,
		W: near,
	}
	if ina {
		return a, p, true
	}
	return p, b, true
}

// clipSegmentXY trims an NDC segment to the [-1, 1] viewport square
// (Liang-Barsky), interpolating depth along the way.
func clipSegmentXY(a, b ndcPoint) (ndcPoint, ndcPoint, bool) {
	dx, dy := b.X-a.X, b.Y-a.Y
	t0, t1 := float32(0), float32(1)
	edges := [4][2]float32{
		{-dx, a.X + 1},
		{dx, 1 - a.X},
		{-dy, a.Y + 1},
		{dy, 1 - a.Y},
	}
	for _, e := range edges {
		p, q := e[0], e[1]
		if p == 0 {
			if q < 0 {
				return a, b, false
			}
			continue
		}
		u := q / p
		if p < 0 {
			if u > t1 {
				return a, b, false
			}
			if u > t0 {
				t0 = u
			}
		} else {
			if u < t0 {
				return a, b, false
			}
			if u < t1 {
				t1 = u
			}
		}
	}
	lerp := func(t float32) ndcPoint {
		return ndcPoint{X: a.X + dx*t, Y: a.Y + dy*t, Z: a.Z + (b.Z-a.Z)*t}
	}
	return lerp(t0), lerp(t1), true
}

func ndcToScreen(p ndcPoint, w, h int) (x, y int) {
	sx := (p.X*0.5 + 0.5) * float32(w-1)
	sy := (1 - (p.Y*0.5 + 0.5)) * float32(h-1)
	return int(sx + 0.5), int(sy + 0.5)
}

func triangleNormal(a, b, c Vec3) Vec3 {
	return b.Sub(a).Cross(c.Sub(a)).Unit()
}

func lightIntensity(l Light, n Vec3) Scalar {
	amb := clamp01(l.Ambient)
	dir := clamp01(l.DirAmount)
	ld := l.Dir.Unit()
	if ld == (Vec3{}) {
		return amb
	}
	d := -n.Dot(ld)
	if d < 0 {
		d = 0
	}
	return clamp01(amb + d*dir)
}

func (r *Renderer) depthTest(w int, x, y int, z float32, write bool) bool {
	if !r.Depth || r.depthBuf == nil {
		return true
	}
	if x < 0 || y < 0 || x >= w {
		return false
	}
	idx := y*w + x
	if idx < 0 || idx >= len(r.depthBuf) {
		return false
	}
	// NDC z is typically in [-1,1]. Map to [0,1].
	d := z*0.5 + 0.5
	if d < 0 {
		d = 0
	}
	if d > 1 {
		d = 1
	}
	if d >= r.depthBuf[idx] {
		return false
	}
	if write {
		r.depthBuf[idx] = d
	}
	return true
}

func (r *Renderer) drawLine(t Target, w int, x0, y0 int, z0 float32, x1, y1 int, z1 float32, c Color, writeDepth bool) {
	dx := absInt(x1 - x0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -absInt(y1 - y0)
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	steps := dx
	if -dy > steps {
		steps = -dy
	}
	bias := 2 * r.LineDepthBias

	err := dx + dy
	for i := 0; ; i++ {
		z := z0
		if steps > 0 {
			z = z0 + (z1-z0)*float32(i)/float32(steps)
		}
		if r.depthTest(w, x0, y0, z-bias, writeDepth) {
			t.SetPixel(x0, y0, c)
		}
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func (r *Renderer) fillTriangleFlat(t Target, w, h int, x0, y0 int, z0 float32, x1, y1 int, z1 float32, x2, y2 int, z2 float32, c Color, writeDepth bool) {
	minX, maxX := min3(x0, x1, x2), max3(x0, x1, x2)
	minY, maxY := min3(y0, y1, y2), max3(y0, y1, y2)
	if minX < 0 {
		minX = 0
	}
	if minY < 0 {
		minY = 0
	}
	if maxX >= w {
		maxX = w - 1
	}
	if maxY >= h {
		maxY = h - 1
	}
	if minX > maxX || minY > maxY {
		return
	}

	area := edgeFn(x0, y0, x1, y1, x2, y2)
	if area == 0 {
		return
	}
	// Both windings are filled; the sign only orients the edge tests.
	sign := 1
	if area < 0 {
		sign = -1
	}
	invArea := 1.0 / float32(area*sign)
	b0 := edgeBias(x1, y1, x2, y2, sign)
	b1 := edgeBias(x2, y2, x0, y0, sign)
	b2 := edgeBias(x0, y0, x1, y1, sign)

	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			w0 := edgeFn(x1, y1, x2, y2, x, y) * sign
			w1 := edgeFn(x2, y2, x0, y0, x, y) * sign
			w2 := edgeFn(x0, y0, x1, y1, x, y) * sign
			if (w0+b0)|(w1+b1)|(w2+b2) < 0 {
				continue
			}
			a0 := float32(w0) * invArea
			a1 := float32(w1) * invArea
			a2 := float32(w2) * invArea
			z := a0*z0 + a1*z1 + a2*z2
			if !r.depthTest(w, x, y, z, writeDepth) {
				continue
			}
			t.SetPixel(x, y, c)
		}
	}
}

func edgeFn(x0, y0, x1, y1, x, y int) int {
	return (x-x0)*(y1-y0) - (y-y0)*(x1-x0)
}

// edgeBias is 0 when the triangle owns pixels lying exactly on edge a->b and
// -1 otherwise. Ownership goes to the side the inward normal points to: +y,
// or +x for horizontal normals. Two triangles sharing an edge face opposite
// ways, so each edge pixel is filled once.
func edgeBias(ax, ay, bx, by, sign int) int {
	nx := sign * (by - ay)
	ny := -sign * (bx - ax)
	if ny > 0 || (ny == 0 && nx > 0) {
		return 0
	}
	return -1
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func min3(a, b, c int) int {
	if a > b {
		a = b
	}
	if a > c {
		a = c
	}
	return a
}

func max3(a, b, c int) int {
	if a < b {
		a = b
	}
	if a < c {
		a = c
	}
	return a
}
