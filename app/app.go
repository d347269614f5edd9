package app

import (
	"errors"
	"fmt"
	"time"

	"orbit/gfx"
	"orbit/hal"
	"orbit/internal/buildinfo"
	"orbit/scene"
)

// Config selects what the app draws on top of the scene.
type Config struct {
	// HUD overlays the build id, loop phase and frame counter.
	HUD bool
	// Wireframe draws mesh triangle edges instead of filled faces.
	Wireframe bool

	Catalog scene.Catalog
	Scene   scene.Config

	// StatsEvery logs render counters every N frames. Zero disables them.
	StatsEvery uint64
}

// DefaultConfig returns the stock animation with the HUD enabled.
func DefaultConfig() Config {
	return Config{
		HUD:        true,
		Catalog:    scene.DefaultCatalog(),
		Scene:      scene.DefaultConfig(),
		StatsEvery: 600,
	}
}

var errNoFramebuffer = errors.New("app: no framebuffer")

type orbit struct {
	log   hal.Logger
	fb    hal.Framebuffer
	ticks <-chan uint64

	world  *scene.World
	r      *gfx.Renderer
	target *gfx.RGBATarget
	hud    *hud

	statsEvery uint64
	frames     uint64
	elapsedMs  uint64
}

// New builds the default animation on h.
func New(h hal.HAL) (func() error, error) {
	return NewWithConfig(h, DefaultConfig())
}

// NewWithConfig builds the scene and returns the per-frame step. A catalog
// or config error is returned before anything is drawn.
func NewWithConfig(h hal.HAL, cfg Config) (func() error, error) {
	o, err := newOrbit(h, cfg)
	if err != nil {
		return nil, err
	}
	return o.guard(o.step), nil
}

func newOrbit(h hal.HAL, cfg Config) (*orbit, error) {
	o := &orbit{log: h.Logger(), statsEvery: cfg.StatsEvery}
	o.logf("%s", buildinfo.Line())

	world, err := scene.Build(cfg.Catalog, cfg.Scene)
	if err != nil {
		o.logf("app: build failed: %v", err)
		return nil, err
	}
	o.world = world

	disp := h.Display()
	if disp == nil {
		return nil, errNoFramebuffer
	}
	fb := disp.Framebuffer()
	if fb == nil {
		return nil, errNoFramebuffer
	}
	if fb.Format() != hal.PixelFormatRGBA8888 {
		return nil, fmt.Errorf("app: unsupported pixel format %d", fb.Format())
	}
	o.fb = fb
	o.target = &gfx.RGBATarget{
		Buf:    fb.Buffer(),
		Stride: fb.StrideBytes(),
		W:      fb.Width(),
		H:      fb.Height(),
	}
	o.r = gfx.NewRenderer(fb.Width(), fb.Height(), true)
	if cfg.Wireframe {
		o.r.SetRenderMode(gfx.RenderWireframe)
	}

	if cfg.HUD {
		o.hud = newHUD(cfg.Scene.LineColor)
	}
	if t := h.Time(); t != nil {
		o.ticks = t.Ticks()
	}

	o.logf("app: objects=%d layers=%d shapes=%d size=%dx%d hud=%t wireframe=%t light=%t",
		len(world.Objects()), cfg.Scene.LayerCount, cfg.Catalog.Len(), fb.Width(), fb.Height(),
		cfg.HUD, cfg.Wireframe, cfg.Scene.Lighting)
	return o, nil
}

// drainTicks keeps only the newest sequence number; it is the elapsed time
// in milliseconds.
func (o *orbit) drainTicks() {
	for o.ticks != nil {
		select {
		case seq, ok := <-o.ticks:
			if !ok {
				o.ticks = nil
				return
			}
			o.elapsedMs = seq
		default:
			return
		}
	}
}

func (o *orbit) step() error {
	o.drainTicks()
	o.world.Step(time.Duration(o.elapsedMs) * time.Millisecond)

	o.target.Buf = o.fb.Buffer()
	o.r.Render(o.target, o.world.Scene())
	o.frames++
	if o.hud != nil {
		o.hud.draw(o.target, o.world.AnimTime(), o.frames)
	}

	if o.statsEvery > 0 && o.frames%o.statsEvery == 0 {
		st := o.r.Stats()
		o.logf("app: frame=%d elapsed_ms=%d nodes=%d triangles=%d segments=%d",
			o.frames, o.elapsedMs, st.Nodes, st.Triangles, st.Segments)
	}
	return o.fb.Present()
}

func (o *orbit) logf(format string, args ...any) {
	if o.log == nil {
		return
	}
	o.log.WriteLineString(fmt.Sprintf(format, args...))
}
