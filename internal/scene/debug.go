package scene

import (
	"psx-scene-renderer/internal/gpu"
	"psx-scene-renderer/internal/vram"
)

// Texture grid layout.
const (
	gridCols  = 8
	gridCellW = 40
	gridCellH = 52
	gridQuad  = 36
	gridTop   = 20
)

var gridBackground = gpu.Color{R: 0x10, G: 0x10, B: 0x10}

// drawDebugGrid shows each placed room texture as a flat quad, with its id
// and size below it. It replaces the 3D view.
func (s *Scene) drawDebugGrid(fc *FrameContext) {
	fc.Debug = true
	fc.Frame.Background = gridBackground
	if s.room == nil {
		return
	}

	tex := s.room.Textures()
	n := min(tex.Len(), vram.MaxTextures, len(s.roomSlots))
	rc := s.cfg.Rooms[s.roomIdx]
	fc.print(4, 4, white, "[%d/%d] %s  TEX:%d", s.roomIdx+1, len(s.cfg.Rooms), rc.Name, s.room.Header().NumTextures)

	for i := 0; i < n; i++ {
		col, row := i%gridCols, i/gridCols
		x := int16(col*gridCellW + (gridCellW-gridQuad)/2)
		y := int16(gridTop + row*gridCellH)
		d := tex.Desc(i)
		fc.print(col*gridCellW+2, gridTop+row*gridCellH+gridQuad+2, gray, "%d %dx%d", i, d.Width, d.Height)

		slot := s.roomSlots[i]
		if slot < 0 {
			continue
		}
		p := fc.Frame.New(gpu.TexturedQuad)
		if p == nil {
			return
		}
		info := s.alloc.Info(slot)
		maxU := uint8(min(int(d.Width), gridQuad) - 1)
		maxV := uint8(min(int(d.Height), gridQuad) - 1)

		p.Colors[0] = gpu.Neutral
		p.Points = [4]gpu.Point{{x, y}, {x + gridQuad, y}, {x, y + gridQuad}, {x + gridQuad, y + gridQuad}}
		p.UVs = [4]gpu.UV{
			{info.UOff, info.VOff},
			{info.UOff + maxU, info.VOff},
			{info.UOff, info.VOff + maxV},
			{info.UOff + maxU, info.VOff + maxV},
		}
		p.TPage = info.TPage
		p.Clut = info.Clut
		fc.Frame.Insert(p, 1)
	}
}
