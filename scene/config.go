package scene

import (
	"fmt"
	"time"

	"orbit/gfx"
	"orbit/motion"
)

// CameraConfig positions the perspective camera. It always looks at the
// origin.
type CameraConfig struct {
	FOVDeg   float32
	Near     float32
	Far      float32
	Position gfx.Vec3
}

// GridConfig describes the circular reference grid behind the roster.
type GridConfig struct {
	Radius   float32
	Segments int
	Z        float32
	Opacity  float32
}

// Config holds the animation constants.
type Config struct {
	LayerCount int
	MaxRadius  float64
	LoopPeriod time.Duration

	Background gfx.Color
	LineColor  gfx.Color // outlines and grid
	// EdgeThresholdDeg is the minimum angle between faces for an outline edge.
	EdgeThresholdDeg float32
	// Lighting shades faces with the scene's ambient and directional light
	// instead of the flat base color.
	Lighting bool

	Camera CameraConfig
	Grid   GridConfig
}

// DefaultConfig returns the stock animation: five layers on a radius of 10,
// looping every 10 seconds.
func DefaultConfig() Config {
	return Config{
		LayerCount:       5,
		MaxRadius:        10,
		LoopPeriod:       10 * time.Second,
		Background:       gfx.Hex(0x222222),
		LineColor:        gfx.Hex(0xecf0f1),
		EdgeThresholdDeg: 1,
		Camera: CameraConfig{
			FOVDeg:   60,
			Near:     0.1,
			Far:      1000,
			Position: gfx.V3(0, 0, 20),
		},
		Grid: GridConfig{
			Radius:   30,
			Segments: 50,
			Z:        -40,
			Opacity:  0.3,
		},
	}
}

// Validate reports the first invalid field.
func (c Config) Validate() error {
	switch {
	case c.LayerCount < 1:
		return fmt.Errorf("%w: layer count %d, need at least 1", ErrInvalidConfig, c.LayerCount)
	case c.MaxRadius < 0:
		return fmt.Errorf("%w: negative max radius %v", ErrInvalidConfig, c.MaxRadius)
	case c.LoopPeriod <= 0:
		return fmt.Errorf("%w: loop period %v, need > 0", ErrInvalidConfig, c.LoopPeriod)
	}
	return nil
}

// Params returns the path constants for the motion functions.
func (c Config) Params() motion.Params {
	return motion.Params{LayerCount: c.LayerCount, MaxRadius: c.MaxRadius}
}
