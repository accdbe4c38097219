package raster

import (
	"image"
	"image/color"

	"golang.org/x/image/font"
	"golang.org/x/image/font/inconsolata"
	"golang.org/x/image/math/fixed"
)

// LineHeight is the vertical advance of one HUD line in pixels.
const LineHeight = 16

var hudShadow = image.NewUniform(color.NRGBA{0, 0, 0, 255})

// DrawText prints s with its top-left corner at (x, y), with a one pixel drop shadow.
func DrawText(fb *FrameBuffer, x, y int, c color.Color, s string) {
	dst := fb.Image()
	dot := fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y + 12)}
	(&font.Drawer{
		Dst:  dst,
		Src:  hudShadow,
		Face: inconsolata.Regular8x16,
		Dot:  fixed.Point26_6{X: dot.X + fixed.I(1), Y: dot.Y + fixed.I(1)},
	}).DrawString(s)
	(&font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: inconsolata.Regular8x16,
		Dot:  dot,
	}).DrawString(s)
}

// DrawLines prints lines top to bottom starting at (x, y).
func DrawLines(fb *FrameBuffer, x, y int, c color.Color, lines []string) {
	for i, s := range lines {
		DrawText(fb, x, y+i*LineHeight, c, s)
	}
}
