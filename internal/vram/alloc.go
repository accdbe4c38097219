// Package vram packs indexed textures and their palettes into the
// 1024x512 16-bit video memory image.
//
// Layout:
//
//	x 0..319,    y 0..479   two 320x240 framebuffers
//	x 320..1023, y 0..495   texture pixels (shelf packed)
//	x 0..1023,   y 496..511 CLUT rows
package vram

import "psx-scene-renderer/internal/meshdata"

const (
	Width  = 1024
	Height = 512

	MaxTextures = 32

	TexX0 = 320
	TexX1 = 1024
	TexY0 = 0
	TexY1 = 496

	ClutX1 = 1024
	ClutY0 = 496
	ClutY1 = 512

	pageWidth = 64
)

// Rect is a rectangle in VRAM pixels.
type Rect struct {
	X, Y, W, H int
}

// TPage selects a 256x256 texel page and its bit depth.
type TPage struct {
	PageX, PageY int
	Depth        uint8 // meshdata.Format4Bit or meshdata.Format8Bit
}

// Clut addresses a palette: X in units of 16 pixels, Y in rows.
type Clut struct {
	X, Y int
}

// TexInfo is what a primitive needs to sample a placed texture.
type TexInfo struct {
	TPage        TPage
	Clut         Clut
	UOff, VOff   uint8
	UMask, VMask uint8
}

type slot struct {
	info TexInfo
	pix  Rect
	clut Rect
}

// Allocator is a greedy shelf packer. Placement depends only on the
// sequence of Alloc calls since the last Reset.
type Allocator struct {
	slots [MaxTextures]slot
	n     int

	texX, texY, rowH int
	clutX, clutY     int
}

// NewAllocator returns an allocator ready for use.
func NewAllocator() *Allocator {
	a := &Allocator{}
	a.Reset()
	return a
}

// Reset drops every slot and rewinds both cursors.
func (a *Allocator) Reset() {
	a.n = 0
	a.texX, a.texY, a.rowH = TexX0, TexY0, 0
	a.clutX, a.clutY = 0, ClutY0
}

// Alloc places a w x h texel texture and a palette of clutColors entries.
// It returns false when either region or the slot table is full; on
// failure earlier slots are unchanged.
func (a *Allocator) Alloc(w, h int, format uint8, clutColors int) (int, bool) {
	if a.n >= MaxTextures {
		return -1, false
	}

	vw, span := w/2, 2*pageWidth
	if format == meshdata.Format4Bit {
		vw, span = w/4, pageWidth
	}
	vh := h
	if vw > span || vh > 256 {
		return -1, false
	}

	fits := func(x int) bool {
		return x%pageWidth+vw <= span && x+vw <= TexX1
	}
	texX, texY, rowH := a.texX, a.texY, a.rowH
	if !fits(texX) {
		next := (texX + pageWidth - 1) / pageWidth * pageWidth
		if fits(next) {
			texX = next
		} else {
			texY += rowH
			texX = TexX0
			rowH = 0
		}
	}
	if texY+vh > TexY1 {
		return -1, false
	}

	cw := (clutColors + 15) &^ 15
	clutX, clutY := a.clutX, a.clutY
	if clutX+cw > ClutX1 {
		clutY++
		clutX = 0
	}
	if clutY >= ClutY1 {
		return -1, false
	}

	vx, vy := texX, texY
	a.texX, a.texY, a.rowH = texX+vw, texY, max(rowH, vh)
	a.clutX, a.clutY = clutX+cw, clutY

	s := &a.slots[a.n]
	s.pix = Rect{X: vx, Y: vy, W: vw, H: vh}
	s.clut = Rect{X: clutX, Y: clutY, W: cw, H: 1}

	uScale := 2
	if format == meshdata.Format4Bit {
		uScale = 4
	}
	s.info = TexInfo{
		TPage: TPage{PageX: vx / pageWidth, PageY: vy / 256, Depth: format},
		Clut:  Clut{X: clutX / 16, Y: clutY},
		UOff:  uint8(vx % pageWidth * uScale),
		VOff:  uint8(vy % 256),
		UMask: uint8(w - 1),
		VMask: uint8(h - 1),
	}
	a.n++
	return a.n - 1, true
}

// NumSlots returns the number of placed textures.
func (a *Allocator) NumSlots() int {
	return a.n
}

func (a *Allocator) Info(slot int) TexInfo {
	return a.slots[slot].info
}

func (a *Allocator) PixelRect(slot int) Rect {
	return a.slots[slot].pix
}

func (a *Allocator) ClutRect(slot int) Rect {
	return a.slots[slot].clut
}
