package vram

import (
	"encoding/binary"

	"psx-scene-renderer/internal/meshdata"
)

// Memory is the 1024x512 array of 16-bit VRAM words.
type Memory struct {
	words [Width * Height]uint16
}

func NewMemory() *Memory {
	return &Memory{}
}

// At returns the word at (x, y), wrapping both coordinates.
func (m *Memory) At(x, y int) uint16 {
	return m.words[(y&(Height-1))*Width+x&(Width-1)]
}

// Upload copies little-endian words from src into r row by row. A short src
// leaves the rest of r untouched.
func (m *Memory) Upload(r Rect, src []byte) {
	for y := 0; y < r.H; y++ {
		row := (r.Y + y) * Width
		for x := 0; x < r.W; x++ {
			i := (y*r.W + x) * 2
			if i+2 > len(src) {
				return
			}
			m.words[row+r.X+x] = binary.LittleEndian.Uint16(src[i:])
		}
	}
}

// Fill sets every word of r to v.
func (m *Memory) Fill(r Rect, v uint16) {
	for y := r.Y; y < r.Y+r.H; y++ {
		for x := r.X; x < r.X+r.W; x++ {
			m.words[y*Width+x] = v
		}
	}
}

// LoadSection allocates and uploads every texture of s in order. It returns
// the global slot of each texture, -1 where the allocator ran out of room.
func LoadSection(a *Allocator, m *Memory, s meshdata.TexSection) []int {
	slots := make([]int, s.Len())
	for i := range slots {
		d := s.Desc(i)
		slot, ok := a.Alloc(int(d.Width), int(d.Height), d.Format, int(d.ClutColors))
		if !ok {
			slots[i] = -1
			continue
		}
		slots[i] = slot
		if m != nil {
			m.Upload(a.PixelRect(slot), s.Pixels(i))
			m.Upload(a.ClutRect(slot), s.Clut(i))
		}
	}
	return slots
}
