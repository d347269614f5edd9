package scene

import (
	"errors"
	"fmt"

	"orbit/gfx"
)

var (
	// ErrCatalogMismatch reports shape and color lists of different lengths.
	ErrCatalogMismatch = errors.New("scene: shape and color catalogs differ in length")
	// ErrEmptyCatalog reports a catalog without shapes.
	ErrEmptyCatalog = errors.New("scene: empty catalog")
	// ErrInvalidConfig reports an out-of-range animation constant.
	ErrInvalidConfig = errors.New("scene: invalid config")
)

// ShapeKind names a geometry generator.
type ShapeKind uint8

const (
	ShapeBox ShapeKind = iota
	ShapeCone
	ShapeCylinder
	ShapeSphere
	ShapeTorus
)

func (k ShapeKind) String() string {
	switch k {
	case ShapeBox:
		return "box"
	case ShapeCone:
		return "cone"
	case ShapeCylinder:
		return "cylinder"
	case ShapeSphere:
		return "sphere"
	case ShapeTorus:
		return "torus"
	}
	return fmt.Sprintf("shape(%d)", uint8(k))
}

// ShapeSpec describes one catalog shape. Only the fields used by Kind are
// read; the constructors below fill them.
type ShapeSpec struct {
	Kind ShapeKind

	Width, Height, Depth float32

	Radius    float32 // cone and cylinder base, sphere, torus ring
	RadiusTop float32 // cylinder
	Tube      float32 // torus

	Segments  int // radial (cone, cylinder, torus) or around (sphere)
	Segments2 int // rings (sphere) or tubular (torus)
}

func Box(width, height, depth float32) ShapeSpec {
	return ShapeSpec{Kind: ShapeBox, Width: width, Height: height, Depth: depth}
}

func Cone(radius, height float32, segs int) ShapeSpec {
	return ShapeSpec{Kind: ShapeCone, Radius: radius, Height: height, Segments: segs}
}

func Cylinder(radiusTop, radiusBottom, height float32, segs int) ShapeSpec {
	return ShapeSpec{Kind: ShapeCylinder, RadiusTop: radiusTop, Radius: radiusBottom, Height: height, Segments: segs}
}

func Sphere(radius float32, widthSegs, heightSegs int) ShapeSpec {
	return ShapeSpec{Kind: ShapeSphere, Radius: radius, Segments: widthSegs, Segments2: heightSegs}
}

func Torus(radius, tube float32, radialSegs, tubularSegs int) ShapeSpec {
	return ShapeSpec{Kind: ShapeTorus, Radius: radius, Tube: tube, Segments: radialSegs, Segments2: tubularSegs}
}

// Geometry builds the triangle mesh for s.
func (s ShapeSpec) Geometry() *gfx.Geometry {
	switch s.Kind {
	case ShapeCone:
		return gfx.NewConeGeometry(s.Radius, s.Height, s.Segments)
	case ShapeCylinder:
		return gfx.NewCylinderGeometry(s.RadiusTop, s.Radius, s.Height, s.Segments)
	case ShapeSphere:
		return gfx.NewSphereGeometry(s.Radius, s.Segments, s.Segments2)
	case ShapeTorus:
		return gfx.NewTorusGeometry(s.Radius, s.Tube, s.Segments, s.Segments2)
	default:
		return gfx.NewBoxGeometry(s.Width, s.Height, s.Depth)
	}
}

// Catalog pairs every shape with the color at the same index.
type Catalog struct {
	Shapes []ShapeSpec
	Colors []gfx.Color
}

// DefaultCatalog returns the five shapes of the animation and their colors.
func DefaultCatalog() Catalog {
	return Catalog{
		Shapes: []ShapeSpec{
			Box(1.5, 1.5, 1.5),
			Cone(1, 2, 8),
			Cylinder(0.8, 0.8, 1.6, 16),
			Sphere(1, 16, 8),
			Torus(1, 0.2, 8, 16),
		},
		Colors: []gfx.Color{
			gfx.Hex(0x3498db),
			gfx.Hex(0x2ecc71),
			gfx.Hex(0xe74c3c),
			gfx.Hex(0x9b59b6),
			gfx.Hex(0xf1c40f),
		},
	}
}

// Len returns the number of shapes per layer.
func (c Catalog) Len() int { return len(c.Shapes) }

// Validate checks that every shape has a color.
func (c Catalog) Validate() error {
	if len(c.Shapes) != len(c.Colors) {
		return fmt.Errorf("%w: %d shapes, %d colors", ErrCatalogMismatch, len(c.Shapes), len(c.Colors))
	}
	if len(c.Shapes) == 0 {
		return ErrEmptyCatalog
	}
	return nil
}
