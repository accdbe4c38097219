package raster

import (
	"image"

	"psx-scene-renderer/internal/gpu"
)

// FrameBuffer holds the rendering target as a flat slice for cache locality.
// Primitives arrive already sorted back to front, so there is no depth buffer.
type FrameBuffer struct {
	Width  int
	Height int
	Color  []uint8 // RGBA interleaved, len = W*H*4
}

func NewFrameBuffer(w, h int) *FrameBuffer {
	return &FrameBuffer{
		Width:  w,
		Height: h,
		Color:  make([]uint8, w*h*4),
	}
}

// Clear fills every pixel with c at full alpha.
func (fb *FrameBuffer) Clear(c gpu.Color) {
	for i := 0; i < len(fb.Color); i += 4 {
		fb.Color[i] = c.R
		fb.Color[i+1] = c.G
		fb.Color[i+2] = c.B
		fb.Color[i+3] = 255
	}
}

// Image returns an NRGBA view sharing the buffer's pixels.
func (fb *FrameBuffer) Image() *image.NRGBA {
	return &image.NRGBA{
		Pix:    fb.Color,
		Stride: fb.Width * 4,
		Rect:   image.Rect(0, 0, fb.Width, fb.Height),
	}
}

func (fb *FrameBuffer) set(x, y int, r, g, b uint8) {
	i := (y*fb.Width + x) * 4
	fb.Color[i] = r
	fb.Color[i+1] = g
	fb.Color[i+2] = b
	fb.Color[i+3] = 255
}
