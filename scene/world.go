// Package scene builds the orbit roster and advances it frame by frame.
package scene

import (
	"fmt"
	"math"
	"time"

	"orbit/gfx"
	"orbit/motion"
)

// Object is one roster entry: a shape mesh with its outline child.
type Object struct {
	Layer int
	Shape int
	Index int // layer*shapes + shape

	Phase float64
	Node  *gfx.Node
	Pose  motion.Pose
}

// Outline returns the edge-outline child of the object mesh.
func (o *Object) Outline() *gfx.Node {
	if c := o.Node.Children(); len(c) > 0 {
		return c[0]
	}
	return nil
}

// World owns the scene graph and the roster for the lifetime of the run.
type World struct {
	scene   *gfx.Scene
	objects []*Object
	grid    *gfx.Node

	params motion.Params
	period time.Duration

	animTime float64
}

// Build validates cat and cfg and constructs the scene. Nothing is built
// when either is invalid.
func Build(cat Catalog, cfg Config) (*World, error) {
	if err := cat.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := gfx.NewScene()
	s.Background = cfg.Background
	s.Camera = gfx.Camera{
		Position: cfg.Camera.Position,
		Up:       gfx.V3(0, 1, 0),
		FOVYRad:  gfx.Deg2Rad(cfg.Camera.FOVDeg),
		Near:     cfg.Camera.Near,
		Far:      cfg.Camera.Far,
	}
	s.Camera.LookAt(gfx.Vec3{})
	if cfg.Lighting {
		s.Light.Mode = gfx.LightAmbientDirectional
	}

	n := cat.Len()
	meshes := make([]*gfx.Geometry, n)
	edges := make([]*gfx.LineGeometry, n)
	surfaces := make([]*gfx.Material, n)
	for i, shape := range cat.Shapes {
		meshes[i] = shape.Geometry()
		edges[i] = gfx.EdgesGeometry(meshes[i], cfg.EdgeThresholdDeg)
		surfaces[i] = gfx.NewMaterial(cat.Colors[i])
	}
	outline := gfx.NewMaterial(cfg.LineColor)

	w := &World{
		scene:   s,
		objects: make([]*Object, 0, cfg.LayerCount*n),
		params:  cfg.Params(),
		period:  cfg.LoopPeriod,
	}
	total := cfg.LayerCount * n
	for l := 0; l < cfg.LayerCount; l++ {
		for o := 0; o < n; o++ {
			idx := l*n + o
			mesh := gfx.NewMesh(meshes[o], surfaces[o])
			mesh.Name = fmt.Sprintf("%s-%d", cat.Shapes[o].Kind, l)
			mesh.Add(gfx.NewLineSegments(edges[o], outline))
			s.Add(mesh)
			w.objects = append(w.objects, &Object{
				Layer: l,
				Shape: o,
				Index: idx,
				Phase: motion.PhaseOffset(idx, total),
				Node:  mesh,
			})
		}
	}

	w.grid = gfx.NewLineSegments(
		gfx.WireframeGeometry(gfx.NewCircleGeometry(cfg.Grid.Radius, cfg.Grid.Segments)),
		gfx.NewTranslucentMaterial(cfg.LineColor, cfg.Grid.Opacity),
	)
	w.grid.Name = "grid"
	w.grid.SetPosition(0, 0, cfg.Grid.Z)
	s.Add(w.grid)

	w.Step(0)
	return w, nil
}

// Step moves every object to its pose at elapsed and turns the grid.
func (w *World) Step(elapsed time.Duration) {
	t := motion.AnimTime(elapsed, w.period)
	w.animTime = t
	for _, o := range w.objects {
		o.Pose = motion.ComputePose(t, o.Phase, w.params)
		p, r := o.Pose.Position, o.Pose.Rotation
		o.Node.SetPosition(float32(p.X), float32(p.Y), float32(p.Z))
		o.Node.SetRotation(float32(r.X), float32(r.Y), float32(r.Z))
	}
	// The node angle is reduced to one turn so float32 keeps its precision
	// on long runs.
	w.grid.Rotation.Z = float32(math.Mod(motion.GridRotation(t), motion.FullRotation))
}

// Objects returns the roster in layer-major order.
func (w *World) Objects() []*Object { return w.objects }

// Grid returns the background grid node.
func (w *World) Grid() *gfx.Node { return w.grid }

// Scene returns the scene graph to render.
func (w *World) Scene() *gfx.Scene { return w.scene }

// AnimTime returns the loop phase of the last Step, in radians.
func (w *World) AnimTime() float64 { return w.animTime }

// GridRotation returns the grid angle of the last Step, unreduced.
func (w *World) GridRotation() float64 { return motion.GridRotation(w.animTime) }
