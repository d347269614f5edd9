package gfx

// Target is a minimal pixel target for software rendering.
//
// Implementations should clip out-of-bounds coordinates. SetPixel receives
// the material alpha and is expected to blend when it is below 255.
type Target interface {
	Size() (w, h int)
	SetPixel(x, y int, c Color)
	Clear(c Color)
}

// RenderMode selects the rasterization mode for meshes.
type RenderMode uint8

const (
	RenderWireframe RenderMode = iota
	RenderSolidFlat
)

// RGBATarget renders into an RGBA8888 buffer (byte order R, G, B, A).
//
// Callers provide the backing buffer and layout (stride), so the target can
// sit directly on a framebuffer.
type RGBATarget struct {
	Buf    []byte
	Stride int // bytes per row
	W      int
	H      int
}

func (t *RGBATarget) Size() (w, h int) { return t.W, t.H }

func (t *RGBATarget) ok() bool {
	return t != nil && t.Buf != nil && t.Stride > 0 && t.W > 0 && t.H > 0
}

func (t *RGBATarget) Clear(c Color) {
	if !t.ok() {
		return
	}
	for y := 0; y < t.H; y++ {
		row := y * t.Stride
		for x := 0; x < t.W; x++ {
			off := row + x*4
			if off < 0 || off+3 >= len(t.Buf) {
				continue
			}
			t.Buf[off] = c.R
			t.Buf[off+1] = c.G
			t.Buf[off+2] = c.B
			t.Buf[off+3] = 0xFF
		}
	}
}

func (t *RGBATarget) SetPixel(x, y int, c Color) {
	if !t.ok() {
		return
	}
	if x < 0 || y < 0 || x >= t.W || y >= t.H {
		return
	}
	off := y*t.Stride + x*4
	if off < 0 || off+3 >= len(t.Buf) {
		return
	}
	if c.A != 0xFF {
		c = c.Over(t.pixel(off))
	}
	t.Buf[off] = c.R
	t.Buf[off+1] = c.G
	t.Buf[off+2] = c.B
	t.Buf[off+3] = c.A
}

// At returns the color stored at (x, y), or the zero color when out of bounds.
func (t *RGBATarget) At(x, y int) Color {
	if !t.ok() || x < 0 || y < 0 || x >= t.W || y >= t.H {
		return Color{}
	}
	off := y*t.Stride + x*4
	if off < 0 || off+3 >= len(t.Buf) {
		return Color{}
	}
	return t.pixel(off)
}

func (t *RGBATarget) pixel(off int) Color {
	return Color{R: t.Buf[off], G: t.Buf[off+1], B: t.Buf[off+2], A: t.Buf[off+3]}
}
