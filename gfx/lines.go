package gfx

import "github.com/chewxy/math32"

// LineGeometry is an indexed list of line segments: Indices holds pairs.
type LineGeometry struct {
	Positions []Vec3
	Indices   []uint16
}

// Segments returns the number of line segments in l.
func (l *LineGeometry) Segments() int {
	if l == nil {
		return 0
	}
	return len(l.Indices) / 2
}

func (l *LineGeometry) addSegment(a, b Vec3) {
	i := len(l.Positions)
	l.Positions = append(l.Positions, a, b)
	l.Indices = append(l.Indices, uint16(i), uint16(i+1))
}

// edgePrecision quantizes vertex positions so coincident vertices that were
// emitted separately still share an edge.
const edgePrecision = 1e4

type posKey struct{ x, y, z int32 }

func keyOf(p Vec3) posKey {
	q := func(v Scalar) int32 { return int32(math32.Round(v * edgePrecision)) }
	return posKey{q(p.X), q(p.Y), q(p.Z)}
}

type edgeKey struct{ a, b posKey }

type openEdge struct {
	a, b   Vec3
	normal Vec3
	closed bool
}

// EdgesGeometry derives the visible edges of g: an edge is kept when the
// normals of its two faces differ by more than thresholdDeg, or when it
// borders only one face. Degenerate triangles are ignored.
func EdgesGeometry(g *Geometry, thresholdDeg Scalar) *LineGeometry {
	out := &LineGeometry{}
	if g == nil {
		return out
	}
	thresholdDot := math32.Cos(Deg2Rad(thresholdDeg))

	pending := make(map[edgeKey]int)
	var edges []openEdge

	for i := 0; i+2 < len(g.Indices); i += 3 {
		idx := [3]int{int(g.Indices[i]), int(g.Indices[i+1]), int(g.Indices[i+2])}
		if idx[0] >= len(g.Positions) || idx[1] >= len(g.Positions) || idx[2] >= len(g.Positions) {
			continue
		}
		p := [3]Vec3{g.Positions[idx[0]], g.Positions[idx[1]], g.Positions[idx[2]]}
		k := [3]posKey{keyOf(p[0]), keyOf(p[1]), keyOf(p[2])}
		if k[0] == k[1] || k[1] == k[2] || k[2] == k[0] {
			continue
		}
		n := triangleNormal(p[0], p[1], p[2])

		for j := 0; j < 3; j++ {
			a, b := j, (j+1)%3
			rev := edgeKey{k[b], k[a]}
			if ei, ok := pending[rev]; ok {
				e := &edges[ei]
				if n.Dot(e.normal) <= thresholdDot {
					out.addSegment(e.a, e.b)
				}
				e.closed = true
				delete(pending, rev)
				continue
			}
			fwd := edgeKey{k[a], k[b]}
			if _, ok := pending[fwd]; ok {
				continue
			}
			pending[fwd] = len(edges)
			edges = append(edges, openEdge{a: p[a], b: p[b], normal: n})
		}
	}

	for _, e := range edges {
		if !e.closed {
			out.addSegment(e.a, e.b)
		}
	}
	return out
}

// WireframeGeometry returns every unique triangle edge of g.
func WireframeGeometry(g *Geometry) *LineGeometry {
	out := &LineGeometry{}
	if g == nil {
		return out
	}
	out.Positions = append(out.Positions, g.Positions...)

	type pair struct{ a, b uint16 }
	seen := make(map[pair]struct{}, len(g.Indices))
	for i := 0; i+2 < len(g.Indices); i += 3 {
		for j := 0; j < 3; j++ {
			a, b := g.Indices[i+j], g.Indices[i+(j+1)%3]
			if a == b {
				continue
			}
			if a > b {
				a, b = b, a
			}
			if _, ok := seen[pair{a, b}]; ok {
				continue
			}
			seen[pair{a, b}] = struct{}{}
			out.Indices = append(out.Indices, a, b)
		}
	}
	return out
}
