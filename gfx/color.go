package gfx

// Color is an RGBA color in 8-bit channels.
type Color struct {
	R, G, B, A uint8
}

func RGB(r, g, b uint8) Color     { return Color{R: r, G: g, B: b, A: 0xFF} }
func RGBA(r, g, b, a uint8) Color { return Color{R: r, G: g, B: b, A: a} }

// Hex converts a 0xRRGGBB value into an opaque color.
func Hex(v uint32) Color {
	return RGB(uint8(v>>16), uint8(v>>8), uint8(v))
}

// Alpha converts an opacity in 0..1 into an 8-bit alpha.
func Alpha(opacity Scalar) uint8 {
	return uint8(clamp01(opacity)*255 + 0.5)
}

func (c Color) MulScalar(s Scalar) Color {
	t := uint32(clamp01(s) * 255)
	mul := func(ch uint8) uint8 {
		return uint8((uint32(ch) * t) / 255)
	}
	return Color{R: mul(c.R), G: mul(c.G), B: mul(c.B), A: c.A}
}

func (c Color) WithAlpha(a uint8) Color { c.A = a; return c }

// Over composites c on top of dst using c's alpha. The result is opaque
// when dst is.
func (c Color) Over(dst Color) Color {
	if c.A == 0xFF {
		return c
	}
	if c.A == 0 {
		return dst
	}
	a := uint32(c.A)
	ia := 255 - a
	mix := func(s, d uint8) uint8 {
		return uint8((uint32(s)*a + uint32(d)*ia + 127) / 255)
	}
	return Color{
		R: mix(c.R, dst.R),
		G: mix(c.G, dst.G),
		B: mix(c.B, dst.B),
		A: uint8(a + (uint32(dst.A)*ia+127)/255),
	}
}
