package app

import (
	"fmt"
	"image/color"
	"math"

	"orbit/gfx"
	"orbit/internal/buildinfo"
	"orbit/motion"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"
)

const hudMargin = 4

type hud struct {
	font       tinyfont.Fonter
	lineHeight int16
	fg         color.RGBA
	title      string
}

func newHUD(fg gfx.Color) *hud {
	font := &proggy.TinySZ8pt7b
	lh := int16(font.YAdvance)
	if lh <= 0 {
		lh = 10
	}
	return &hud{
		font:       font,
		lineHeight: lh,
		fg:         rgba(fg),
		title:      "orbit " + buildinfo.Short(),
	}
}

func (h *hud) draw(t gfx.Target, animTime float64, frame uint64) {
	loop := int(animTime / motion.FullRotation)
	phase := math.Mod(animTime, motion.FullRotation)
	h.line(t, 0, h.title)
	h.line(t, 1, fmt.Sprintf("t=%.2f rad  loop=%d  frame=%d", phase, loop, frame))
}

func (h *hud) line(t gfx.Target, row int, s string) {
	d := targetDisplayer{t: t}
	y := hudMargin + int16(row+1)*h.lineHeight
	tinyfont.WriteLine(d, h.font, hudMargin, y, s, h.fg)
}

// targetDisplayer lets tinyfont draw into a gfx target.
type targetDisplayer struct {
	t gfx.Target
}

var _ drivers.Displayer = targetDisplayer{}

func (d targetDisplayer) Size() (x, y int16) {
	w, h := d.t.Size()
	return int16(w), int16(h)
}

func (d targetDisplayer) SetPixel(x, y int16, c color.RGBA) {
	d.t.SetPixel(int(x), int(y), gfx.RGBA(c.R, c.G, c.B, c.A))
}

func (d targetDisplayer) Display() error { return nil }

func rgba(c gfx.Color) color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}
