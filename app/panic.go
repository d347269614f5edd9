package app

import (
	"fmt"
	"image/color"
	"runtime/debug"
	"strings"
	"unicode/utf8"

	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"
)

// guard turns a panic inside step into a panic screen plus an error, so the
// host loop stops with the reason on screen and in the log.
func (o *orbit) guard(step func() error) func() error {
	return func() (err error) {
		defer func() {
			v := recover()
			if v == nil {
				return
			}
			stack := string(debug.Stack())
			o.logf("app: panic=%v frame=%d", v, o.frames)
			for _, line := range strings.Split(stack, "\n") {
				if line != "" {
					o.logf("%s", line)
				}
			}
			o.showPanic(v, stack)
			err = fmt.Errorf("app: panic: %v", v)
		}()
		return step()
	}
}

func (o *orbit) showPanic(v any, stack string) {
	if o.fb == nil || o.target == nil {
		return
	}
	o.fb.ClearRGB(0xFF, 0xFF, 0xFF)
	t := o.target
	t.Buf = o.fb.Buffer()

	font := &proggy.TinySZ8pt7b
	lineHeight := int16(font.YAdvance)
	_, outbox := tinyfont.LineWidth(font, "0")
	charWidth := int16(outbox)
	if lineHeight <= 0 || charWidth <= 0 {
		_ = o.fb.Present()
		return
	}

	lines := []string{
		"orbit panic:",
		fmt.Sprintf("panic: %v", v),
		fmt.Sprintf("frame: %d", o.frames),
		"stack:",
	}
	lines = append(lines, strings.Split(stack, "\n")...)

	d := targetDisplayer{t: t}
	fg := color.RGBA{A: 0xFF}
	cols := int16(t.W) / charWidth
	if cols <= 0 {
		cols = 1
	}
	y := int16(0)
	for _, line := range lines {
		line = strings.ReplaceAll(line, "\t", "  ")
		for len(line) > 0 {
			if int(y+lineHeight) > t.H {
				_ = o.fb.Present()
				return
			}
			chunk, rest := takeRunes(line, cols)
			x := int16(0)
			for _, r := range chunk {
				tinyfont.DrawChar(d, font, x, y+lineHeight, r, fg)
				x += charWidth
			}
			y += lineHeight
			line = strings.TrimLeft(rest, " ")
		}
	}
	_ = o.fb.Present()
}

func takeRunes(s string, n int16) (prefix, rest string) {
	if n <= 0 || s == "" {
		return "", s
	}
	if int64(len(s)) <= int64(n) {
		return s, ""
	}
	var i int
	var count int16
	for i < len(s) && count < n {
		_, size := utf8.DecodeRuneInString(s[i:])
		if size <= 0 {
			break
		}
		i += size
		count++
	}
	if i >= len(s) {
		return s, ""
	}
	return s[:i], s[i:]
}
