package gfx

// Material is a minimal unlit surface description.
type Material struct {
	BaseColor Color
	Opacity   uint8 // 0..255. 255 means opaque.
}

// Translucent reports whether the material is drawn in the blended pass.
func (m *Material) Translucent() bool { return m != nil && m.Opacity < 0xFF }

func (m *Material) color() Color {
	if m == nil {
		return RGB(0xCC, 0xCC, 0xCC)
	}
	return m.BaseColor.WithAlpha(m.Opacity)
}

// NewMaterial returns an opaque material of color c.
func NewMaterial(c Color) *Material {
	return &Material{BaseColor: c, Opacity: 0xFF}
}

// NewTranslucentMaterial returns a blended material with the given opacity (0..1).
func NewTranslucentMaterial(c Color, opacity Scalar) *Material {
	return &Material{BaseColor: c, Opacity: Alpha(opacity)}
}

// LightMode defines minimal lighting options.
type LightMode uint8

const (
	LightOff LightMode = iota
	LightAmbientDirectional
)

// Light is a minimal light setup. With LightOff every material renders at
// its base color.
type Light struct {
	Mode      LightMode
	Ambient   Scalar // 0..1
	Dir       Vec3   // direction *towards* the scene
	DirAmount Scalar // 0..1
}

// Camera is a perspective viewing transform.
type Camera struct {
	Position Vec3
	Target   Vec3
	Up       Vec3

	FOVYRad Scalar

	// Aspect overrides the target's width/height ratio when non-zero.
	Aspect Scalar

	Near Scalar
	Far  Scalar
}

// LookAt points the camera at target.
func (c *Camera) LookAt(target Vec3) { c.Target = target }

// View returns the camera view matrix.
func (c Camera) View() Mat4 {
	up := c.Up
	if up == (Vec3{}) {
		up = V3(0, 1, 0)
	}
	return ViewMatrix(c.Position, c.Target, up)
}

// Projection returns the projection matrix for a target aspect.
func (c Camera) Projection(aspect Scalar) Mat4 {
	if c.Aspect != 0 {
		aspect = c.Aspect
	}
	fov := c.FOVYRad
	if fov == 0 {
		fov = Scalar(1.0)
	}
	return Perspective(fov, aspect, c.Near, c.Far)
}

// NodeKind selects how a node's geometry is drawn.
type NodeKind uint8

const (
	NodeGroup NodeKind = iota
	NodeMesh
	NodeLines
)

// Node is an element of the scene tree. Its local transform is
// T(Position) * R(Rotation, XYZ order) * S(Scale); children inherit it.
type Node struct {
	Name string
	Kind NodeKind

	Mesh     *Geometry
	Lines    *LineGeometry
	Material *Material

	Position Vec3
	Rotation Vec3 // Euler angles in radians, applied X then Y then Z.
	Scale    Vec3

	Hidden bool

	parent   *Node
	children []*Node
}

// NewMesh returns a node drawing g as filled triangles.
func NewMesh(g *Geometry, m *Material) *Node {
	return &Node{Kind: NodeMesh, Mesh: g, Material: m, Scale: V3(1, 1, 1)}
}

// NewLineSegments returns a node drawing l as line segments.
func NewLineSegments(l *LineGeometry, m *Material) *Node {
	return &Node{Kind: NodeLines, Lines: l, Material: m, Scale: V3(1, 1, 1)}
}

// NewGroup returns an empty node used only to carry a transform.
func NewGroup() *Node {
	return &Node{Kind: NodeGroup, Scale: V3(1, 1, 1)}
}

// Add attaches child to n, detaching it from any previous parent.
func (n *Node) Add(child *Node) {
	if n == nil || child == nil || child == n {
		return
	}
	if child.parent != nil {
		child.parent.remove(child)
	}
	child.parent = n
	n.children = append(n.children, child)
}

func (n *Node) remove(child *Node) {
	for i, c := range n.children {
		if c == child {
			n.children = append(n.children[:i], n.children[i+1:]...)
			child.parent = nil
			return
		}
	}
}

func (n *Node) Parent() *Node     { return n.parent }
func (n *Node) Children() []*Node { return n.children }

// SetPosition sets the local position.
func (n *Node) SetPosition(x, y, z Scalar) { n.Position = V3(x, y, z) }

// SetRotation sets the local Euler rotation in radians.
func (n *Node) SetRotation(x, y, z Scalar) { n.Rotation = V3(x, y, z) }

// LocalMatrix returns the node transform relative to its parent.
func (n *Node) LocalMatrix() Mat4 {
	scale := n.Scale
	if scale == (Vec3{}) {
		scale = V3(1, 1, 1)
	}
	return Compose(n.Position, n.Rotation, scale)
}

// WorldMatrix returns the node transform relative to the scene root.
func (n *Node) WorldMatrix() Mat4 {
	m := n.LocalMatrix()
	for p := n.parent; p != nil; p = p.parent {
		m = p.LocalMatrix().Mul(m)
	}
	return m
}

// Scene is the root of a node tree plus camera and background.
type Scene struct {
	Camera     Camera
	Light      Light
	Background Color

	nodes []*Node
}

// NewScene returns an empty scene with a camera at (0, 0, 3) looking at the origin.
func NewScene() *Scene {
	return &Scene{
		Camera: Camera{
			Position: V3(0, 0, 3),
			Target:   V3(0, 0, 0),
			Up:       V3(0, 1, 0),
			FOVYRad:  Scalar(1.0),
			Near:     Scalar(0.05),
			Far:      Scalar(100),
		},
		Light: Light{
			Mode:      LightOff,
			Ambient:   Scalar(0.25),
			Dir:       V3(1, 1, 1).Unit(),
			DirAmount: Scalar(0.75),
		},
		Background: RGB(0, 0, 0),
	}
}

// Add registers a root node with the scene.
func (s *Scene) Add(n *Node) {
	if s == nil || n == nil {
		return
	}
	s.nodes = append(s.nodes, n)
}

// Nodes returns the root nodes in insertion order.
func (s *Scene) Nodes() []*Node { return s.nodes }

// Walk visits every visible node depth-first with its world matrix. Hidden
// nodes are skipped together with their children.
func (s *Scene) Walk(fn func(n *Node, world Mat4)) {
	if s == nil {
		return
	}
	var visit func(n *Node, parent Mat4)
	visit = func(n *Node, parent Mat4) {
		if n == nil || n.Hidden {
			return
		}
		world := parent.Mul(n.LocalMatrix())
		fn(n, world)
		for _, c := range n.children {
			visit(c, world)
		}
	}
	for _, n := range s.nodes {
		visit(n, Identity())
	}
}
