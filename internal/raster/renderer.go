// Package raster is a software stand-in for the GPU: it draws the primitives
// of a finished frame, in ordering-table order, into an RGBA framebuffer.
package raster

import (
	"psx-scene-renderer/internal/gpu"
	"psx-scene-renderer/internal/vram"
)

// Render clears fb to the frame background and draws every primitive of f.
// mem may be nil, in which case textured primitives are skipped.
func Render(fb *FrameBuffer, f *gpu.Frame, mem *vram.Memory) {
	fb.Clear(f.Background)
	f.Walk(func(p *gpu.Prim) {
		DrawPrim(fb, p, mem)
	})
}

// DrawPrim draws a single primitive. Quads are split into ABC and BDC.
func DrawPrim(fb *FrameBuffer, p *gpu.Prim, mem *vram.Memory) {
	switch p.Kind {
	case gpu.GouraudTriangle:
		RasterizeTriangle(fb,
			[3]gpu.Point{p.Points[0], p.Points[1], p.Points[2]},
			p.Colors, [3]gpu.UV{}, nil)

	case gpu.GouraudTexturedTriangle:
		if mem == nil {
			return
		}
		s := newSampler(mem, p)
		RasterizeTriangle(fb,
			[3]gpu.Point{p.Points[0], p.Points[1], p.Points[2]},
			p.Colors, [3]gpu.UV{p.UVs[0], p.UVs[1], p.UVs[2]}, &s)

	case gpu.TexturedQuad:
		if mem == nil {
			return
		}
		s := newSampler(mem, p)
		c := [3]gpu.Color{p.Colors[0], p.Colors[0], p.Colors[0]}
		RasterizeTriangle(fb,
			[3]gpu.Point{p.Points[0], p.Points[1], p.Points[2]},
			c, [3]gpu.UV{p.UVs[0], p.UVs[1], p.UVs[2]}, &s)
		RasterizeTriangle(fb,
			[3]gpu.Point{p.Points[1], p.Points[3], p.Points[2]},
			c, [3]gpu.UV{p.UVs[1], p.UVs[3], p.UVs[2]}, &s)
	}
}
