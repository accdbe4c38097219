package raster

import (
	"psx-scene-renderer/internal/gpu"
	"psx-scene-renderer/internal/meshdata"
	"psx-scene-renderer/internal/texture"
	"psx-scene-renderer/internal/vram"
)

// sampler reads texels of one texture page through its palette.
type sampler struct {
	mem          *vram.Memory
	baseX, baseY int
	clutX, clutY int
	depth        uint8
}

func newSampler(mem *vram.Memory, p *gpu.Prim) sampler {
	return sampler{
		mem:   mem,
		baseX: p.TPage.PageX * 64,
		baseY: p.TPage.PageY * 256,
		clutX: p.Clut.X * 16,
		clutY: p.Clut.Y,
		depth: p.TPage.Depth,
	}
}

// fetch returns the 15-bit palette word for page texel (u, v). Zero is transparent.
func (s *sampler) fetch(u, v uint8) uint16 {
	var idx int
	if s.depth == meshdata.Format4Bit {
		w := s.mem.At(s.baseX+int(u)/4, s.baseY+int(v))
		idx = int(w>>(uint(u)%4*4)) & 0xF
	} else {
		w := s.mem.At(s.baseX+int(u)/2, s.baseY+int(v))
		idx = int(w>>(uint(u)%2*8)) & 0xFF
	}
	return s.mem.At(s.clutX+idx, s.clutY)
}

// SampleTexture is fetch plus expansion to 8-bit channels. ok is false for
// transparent texels.
func SampleTexture(mem *vram.Memory, p *gpu.Prim, u, v uint8) (r, g, b uint8, ok bool) {
	s := newSampler(mem, p)
	w := s.fetch(u, v)
	if w == texture.Transparent {
		return 0, 0, 0, false
	}
	c := texture.From15(w)
	return c.R, c.G, c.B, true
}

// modulate scales texel t by vertex color c, where 128 is unity.
func modulate(t uint8, c float64) uint8 {
	return clamp255(float64(t) * c / 128)
}
