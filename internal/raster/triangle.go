package raster

import (
	"math"

	"psx-scene-renderer/internal/gpu"
	"psx-scene-renderer/internal/texture"
)

// RasterizeTriangle fills one triangle with gouraud colors, sampling VRAM
// through tex when it is non-nil. Texel word 0 leaves the pixel untouched.
//
// This is the hot path: no allocation in the pixel loop.
func RasterizeTriangle(
	fb *FrameBuffer,
	pts [3]gpu.Point,
	cols [3]gpu.Color,
	uvs [3]gpu.UV,
	tex *sampler,
) {
	x0, y0 := float64(pts[0].X), float64(pts[0].Y)
	x1, y1 := float64(pts[1].X), float64(pts[1].Y)
	x2, y2 := float64(pts[2].X), float64(pts[2].Y)

	// Bounding box
	minX := int(math.Min(math.Min(x0, x1), x2))
	maxX := int(math.Max(math.Max(x0, x1), x2))
	minY := int(math.Min(math.Min(y0, y1), y2))
	maxY := int(math.Max(math.Max(y0, y1), y2))

	if minX < 0 {
		minX = 0
	}
	if maxX >= fb.Width {
		maxX = fb.Width - 1
	}
	if minY < 0 {
		minY = 0
	}
	if maxY >= fb.Height {
		maxY = fb.Height - 1
	}
	if minX > maxX || minY > maxY {
		return
	}

	// Barycentric setup
	det := (y1-y2)*(x0-x2) + (x2-x1)*(y0-y2)
	if det > -1e-8 && det < 1e-8 {
		return
	}
	invDet := 1.0 / det

	dy12 := y1 - y2
	dx21 := x2 - x1
	dy20 := y2 - y0
	dx02 := x0 - x2

	for sy := minY; sy <= maxY; sy++ {
		dsy := float64(sy) - y2
		for sx := minX; sx <= maxX; sx++ {
			dsx := float64(sx) - x2
			w0 := (dy12*dsx + dx21*dsy) * invDet
			w1 := (dy20*dsx + dx02*dsy) * invDet
			w2 := 1.0 - w0 - w1

			if w0 < -0.001 || w1 < -0.001 || w2 < -0.001 {
				continue
			}

			cr := w0*float64(cols[0].R) + w1*float64(cols[1].R) + w2*float64(cols[2].R)
			cg := w0*float64(cols[0].G) + w1*float64(cols[1].G) + w2*float64(cols[2].G)
			cb := w0*float64(cols[0].B) + w1*float64(cols[1].B) + w2*float64(cols[2].B)

			if tex == nil {
				fb.set(sx, sy, clamp255(cr), clamp255(cg), clamp255(cb))
				continue
			}

			u := w0*float64(uvs[0].U) + w1*float64(uvs[1].U) + w2*float64(uvs[2].U)
			v := w0*float64(uvs[0].V) + w1*float64(uvs[1].V) + w2*float64(uvs[2].V)
			word := tex.fetch(texel(u), texel(v))
			if word == texture.Transparent {
				continue
			}
			t := texture.From15(word)
			fb.set(sx, sy, modulate(t.R, cr), modulate(t.G, cg), modulate(t.B, cb))
		}
	}
}

func texel(f float64) uint8 {
	if f <= 0 {
		return 0
	}
	if f >= 255 {
		return 255
	}
	return uint8(f)
}

func clamp255(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}
