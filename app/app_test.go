package app

import (
	"errors"
	"math"
	"strings"
	"sync"
	"testing"

	"orbit/gfx"
	"orbit/hal"
	"orbit/scene"
)

type fakeLogger struct {
	mu    sync.Mutex
	lines []string
}

func (l *fakeLogger) WriteLineString(s string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = append(l.lines, s)
}

func (l *fakeLogger) count(prefix string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := 0
	for _, s := range l.lines {
		if strings.HasPrefix(s, prefix) {
			n++
		}
	}
	return n
}

type fakeFramebuffer struct {
	w, h     int
	buf      []byte
	presents int
}

func (f *fakeFramebuffer) Width() int                   { return f.w }
func (f *fakeFramebuffer) Height() int                  { return f.h }
func (f *fakeFramebuffer) Format() hal.PixelFormat      { return hal.PixelFormatRGBA8888 }
func (f *fakeFramebuffer) StrideBytes() int             { return f.w * 4 }
func (f *fakeFramebuffer) Buffer() []byte               { return f.buf }
func (f *fakeFramebuffer) Present() error               { f.presents++; return nil }
func (f *fakeFramebuffer) Framebuffer() hal.Framebuffer { return f }

func (f *fakeFramebuffer) ClearRGB(r, g, b uint8) {
	for i := 0; i+3 < len(f.buf); i += 4 {
		f.buf[i], f.buf[i+1], f.buf[i+2], f.buf[i+3] = r, g, b, 0xFF
	}
}

func (f *fakeFramebuffer) at(x, y int) gfx.Color {
	off := y*f.w*4 + x*4
	return gfx.RGBA(f.buf[off], f.buf[off+1], f.buf[off+2], f.buf[off+3])
}

type fakeTime struct{ ch chan uint64 }

func (t *fakeTime) Ticks() <-chan uint64 { return t.ch }

type fakeHAL struct {
	log *fakeLogger
	fb  *fakeFramebuffer
	t   *fakeTime
}

func newFakeHAL(w, h int) *fakeHAL {
	return &fakeHAL{
		log: &fakeLogger{},
		fb:  &fakeFramebuffer{w: w, h: h, buf: make([]byte, w*h*4)},
		t:   &fakeTime{ch: make(chan uint64, 16)},
	}
}

func (h *fakeHAL) Logger() hal.Logger   { return h.log }
func (h *fakeHAL) Display() hal.Display { return h.fb }
func (h *fakeHAL) Time() hal.Time       { return h.t }

func quietConfig() Config {
	cfg := DefaultConfig()
	cfg.HUD = false
	cfg.StatsEvery = 0
	return cfg
}

func TestFirstFrame(t *testing.T) {
	h := newFakeHAL(320, 240)
	step, err := NewWithConfig(h, quietConfig())
	if err != nil {
		t.Fatalf("NewWithConfig: %v", err)
	}
	if err := step(); err != nil {
		t.Fatalf("step: %v", err)
	}
	if h.fb.presents != 1 {
		t.Fatalf("presents=%d want 1", h.fb.presents)
	}
	// At t=0 every layer's box sits at (0, 0, 10), straight in front of the camera.
	if got := h.fb.at(160, 120); got != gfx.Hex(0x3498db) {
		t.Fatalf("center=%v want box color", got)
	}
	if got := h.fb.at(319, 239); got != gfx.Hex(0x222222) {
		t.Fatalf("corner=%v want background", got)
	}
}

func TestWireframeFrame(t *testing.T) {
	boxPixels := func(wireframe bool) int {
		h := newFakeHAL(320, 240)
		cfg := quietConfig()
		cfg.Wireframe = wireframe
		step, err := NewWithConfig(h, cfg)
		if err != nil {
			t.Fatalf("NewWithConfig: %v", err)
		}
		if err := step(); err != nil {
			t.Fatalf("step: %v", err)
		}
		n := 0
		for y := 0; y < 240; y++ {
			for x := 0; x < 320; x++ {
				if h.fb.at(x, y) == gfx.Hex(0x3498db) {
					n++
				}
			}
		}
		return n
	}
	filled, wire := boxPixels(false), boxPixels(true)
	if wire == 0 || wire >= filled {
		t.Fatalf("box pixels wireframe=%d filled=%d", wire, filled)
	}
}

func TestTicksDriveAnimation(t *testing.T) {
	h := newFakeHAL(32, 24)
	o, err := newOrbit(h, quietConfig())
	if err != nil {
		t.Fatalf("newOrbit: %v", err)
	}

	h.t.ch <- 1000
	h.t.ch <- 2500
	if err := o.step(); err != nil {
		t.Fatalf("step: %v", err)
	}
	if o.elapsedMs != 2500 {
		t.Fatalf("elapsed=%d want newest tick 2500", o.elapsedMs)
	}
	if got := o.world.AnimTime(); math.Abs(got-math.Pi/2) > 1e-12 {
		t.Fatalf("anim time=%v want π/2", got)
	}

	// No new ticks: time holds.
	if err := o.step(); err != nil {
		t.Fatalf("step: %v", err)
	}
	if o.elapsedMs != 2500 {
		t.Fatalf("elapsed moved without ticks: %d", o.elapsedMs)
	}

	close(h.t.ch)
	if err := o.step(); err != nil {
		t.Fatalf("step after close: %v", err)
	}
	if o.ticks != nil {
		t.Fatal("closed tick stream still polled")
	}
}

func TestCatalogMismatchIsFatal(t *testing.T) {
	h := newFakeHAL(32, 24)
	cfg := quietConfig()
	cfg.Catalog.Colors = cfg.Catalog.Colors[:4]

	step, err := NewWithConfig(h, cfg)
	if !errors.Is(err, scene.ErrCatalogMismatch) {
		t.Fatalf("err=%v want ErrCatalogMismatch", err)
	}
	if step != nil {
		t.Fatal("step returned on failure")
	}
	if h.fb.presents != 0 {
		t.Fatalf("presented %d frames before failing", h.fb.presents)
	}
	if h.log.count("app: build failed") != 1 {
		t.Fatalf("missing failure log: %q", h.log.lines)
	}
}

func TestLogging(t *testing.T) {
	h := newFakeHAL(32, 24)
	cfg := quietConfig()
	cfg.StatsEvery = 2
	step, err := NewWithConfig(h, cfg)
	if err != nil {
		t.Fatalf("NewWithConfig: %v", err)
	}
	for i := 0; i < 5; i++ {
		if err := step(); err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
	}
	if h.log.count("build: ") != 1 {
		t.Fatalf("missing build line: %q", h.log.lines)
	}
	if h.log.count("app: objects=25 layers=5 shapes=5") != 1 {
		t.Fatalf("missing startup summary: %q", h.log.lines)
	}
	if got := h.log.count("app: frame="); got != 2 {
		t.Fatalf("stats lines=%d want 2: %q", got, h.log.lines)
	}
}

func TestHUDDrawsText(t *testing.T) {
	region := func(fb *fakeFramebuffer) []gfx.Color {
		var px []gfx.Color
		for y := 0; y < 30; y++ {
			for x := 0; x < 60; x++ {
				px = append(px, fb.at(x, y))
			}
		}
		return px
	}
	plain := newFakeHAL(160, 120)
	step, err := NewWithConfig(plain, quietConfig())
	if err != nil {
		t.Fatal(err)
	}
	if err := step(); err != nil {
		t.Fatal(err)
	}

	withHUD := newFakeHAL(160, 120)
	cfg := quietConfig()
	cfg.HUD = true
	step, err = NewWithConfig(withHUD, cfg)
	if err != nil {
		t.Fatal(err)
	}
	if err := step(); err != nil {
		t.Fatal(err)
	}

	a, b := region(plain.fb), region(withHUD.fb)
	changed := 0
	for i := range a {
		if a[i] != b[i] {
			changed++
			if b[i] != cfg.Scene.LineColor {
				t.Fatalf("HUD pixel %v not in text color", b[i])
			}
		}
	}
	if changed == 0 {
		t.Fatal("HUD drew nothing")
	}
}

func TestPanicScreen(t *testing.T) {
	h := newFakeHAL(64, 48)
	o, err := newOrbit(h, quietConfig())
	if err != nil {
		t.Fatal(err)
	}
	step := o.guard(func() error { panic("boom") })
	err = step()
	if err == nil || !strings.Contains(err.Error(), "boom") {
		t.Fatalf("err=%v want panic error", err)
	}
	if h.fb.presents != 1 {
		t.Fatalf("presents=%d want 1", h.fb.presents)
	}
	white, black := 0, 0
	for y := 0; y < 48; y++ {
		for x := 0; x < 64; x++ {
			switch h.fb.at(x, y) {
			case gfx.RGB(0xFF, 0xFF, 0xFF):
				white++
			case gfx.RGB(0, 0, 0):
				black++
			}
		}
	}
	if white+black != 64*48 || black == 0 || white < black {
		t.Fatalf("panic screen white=%d black=%d", white, black)
	}
	if h.log.count("app: panic=boom") != 1 {
		t.Fatalf("panic not logged: %q", h.log.lines)
	}
}

func TestTakeRunes(t *testing.T) {
	tests := []struct {
		in         string
		n          int16
		head, tail string
	}{
		{"hello", 10, "hello", ""},
		{"hello", 2, "he", "llo"},
		{"äöü", 2, "äö", "ü"},
		{"", 3, "", ""},
		{"abc", 0, "", "abc"},
	}
	for _, tc := range tests {
		head, tail := takeRunes(tc.in, tc.n)
		if head != tc.head || tail != tc.tail {
			t.Fatalf("takeRunes(%q, %d)=%q,%q want %q,%q", tc.in, tc.n, head, tail, tc.head, tc.tail)
		}
	}
}
