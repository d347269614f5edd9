package hal

// Logger writes newline-delimited log lines.
type Logger interface {
	WriteLineString(s string)
}

// PixelFormat defines the framebuffer pixel encoding.
type PixelFormat uint8

const (
	// PixelFormatRGBA8888 is 32bpp, byte order R, G, B, A.
	PixelFormatRGBA8888 PixelFormat = iota + 1
)

// Framebuffer is a simple pixel buffer plus a "present" hook.
type Framebuffer interface {
	Width() int
	Height() int
	Format() PixelFormat
	StrideBytes() int
	Buffer() []byte
	// ClearRGB fills the whole buffer with an opaque color.
	ClearRGB(r, g, b uint8)
	Present() error
}

// Display provides access to the framebuffer (if available).
type Display interface {
	Framebuffer() Framebuffer
}

// Time provides a base tick stream.
//
// One tick is one millisecond of host time. The sequence number carried by each
// tick is the total number of milliseconds elapsed since the first step.
type Time interface {
	Ticks() <-chan uint64
}

// HAL provides the only contact point between the animation and the outside world.
type HAL interface {
	Logger() Logger
	Display() Display
	Time() Time
}
