package vram

import (
	"testing"

	"psx-scene-renderer/internal/meshdata"
)

type tex struct {
	w, h   int
	format uint8
	colors int
}

var mixed = []tex{
	{64, 64, meshdata.Format4Bit, 16},
	{32, 32, meshdata.Format8Bit, 256},
	{128, 64, meshdata.Format4Bit, 16},
	{256, 128, meshdata.Format8Bit, 256},
	{16, 16, meshdata.Format4Bit, 16},
	{256, 256, meshdata.Format4Bit, 16},
	{64, 32, meshdata.Format8Bit, 200},
	{32, 64, meshdata.Format4Bit, 12},
	{128, 128, meshdata.Format8Bit, 256},
	{8, 8, meshdata.Format4Bit, 16},
}

func allocAll(a *Allocator, texs []tex) []int {
	a.Reset()
	var slots []int
	for _, t := range texs {
		s, ok := a.Alloc(t.w, t.h, t.format, t.colors)
		if !ok {
			s = -1
		}
		slots = append(slots, s)
	}
	return slots
}

func TestAllocNoPageStraddle(t *testing.T) {
	a := NewAllocator()
	for i, s := range allocAll(a, mixed) {
		if s < 0 {
			t.Fatalf("Alloc(%v) failed", mixed[i])
		}
		r := a.PixelRect(s)
		span := 128
		if mixed[i].format == meshdata.Format4Bit {
			span = 64
		}
		if r.X%64+r.W > span {
			t.Fatalf("texture %d rect %+v straddles a %d-pixel page", i, r, span)
		}
		if r.X < TexX0 || r.X+r.W > TexX1 || r.Y < TexY0 || r.Y+r.H > TexY1 {
			t.Fatalf("texture %d rect %+v outside the texture region", i, r)
		}
		if r.Y/256 != (r.Y+r.H-1)/256 {
			t.Fatalf("texture %d rect %+v crosses a page row", i, r)
		}
		c := a.ClutRect(s)
		if c.X < 0 || c.X+c.W > ClutX1 || c.Y < ClutY0 || c.Y >= ClutY1 || c.X%16 != 0 || c.W < mixed[i].colors {
			t.Fatalf("texture %d clut %+v outside the palette region", i, c)
		}
		info := a.Info(s)
		if int(info.UMask) != mixed[i].w-1 || int(info.VMask) != mixed[i].h-1 {
			t.Fatalf("texture %d masks %d,%d; want %d,%d", i, info.UMask, info.VMask, mixed[i].w-1, mixed[i].h-1)
		}
		if info.TPage.PageX != r.X/64 || info.Clut.X != c.X/16 || info.Clut.Y != c.Y {
			t.Fatalf("texture %d info %+v disagrees with rects %+v %+v", i, info, r, c)
		}
	}
}

func TestAllocIdempotent(t *testing.T) {
	a := NewAllocator()
	first := allocAll(a, mixed)
	var rects []Rect
	var infos []TexInfo
	for _, s := range first {
		rects = append(rects, a.PixelRect(s), a.ClutRect(s))
		infos = append(infos, a.Info(s))
	}

	second := allocAll(a, mixed)
	for i, s := range second {
		if s != first[i] {
			t.Fatalf("slot %d = %d; first pass %d", i, s, first[i])
		}
		if a.PixelRect(s) != rects[2*i] || a.ClutRect(s) != rects[2*i+1] || a.Info(s) != infos[i] {
			t.Fatalf("slot %d placement changed between passes", s)
		}
	}
}

func TestAllocSlotLimit(t *testing.T) {
	a := NewAllocator()
	var rects []Rect
	for i := 0; i < MaxTextures; i++ {
		s, ok := a.Alloc(16, 16, meshdata.Format4Bit, 16)
		if !ok || s != i {
			t.Fatalf("Alloc #%d = %d,%v; want %d,true", i, s, ok, i)
		}
		rects = append(rects, a.PixelRect(s))
	}
	if s, ok := a.Alloc(16, 16, meshdata.Format4Bit, 16); ok {
		t.Fatalf("Alloc #33 = %d; want failure", s)
	}
	if a.NumSlots() != MaxTextures {
		t.Fatalf("NumSlots=%d; want %d", a.NumSlots(), MaxTextures)
	}
	for i, r := range rects {
		if a.PixelRect(i) != r {
			t.Fatalf("slot %d moved to %+v after overflow; was %+v", i, a.PixelRect(i), r)
		}
	}
}

func TestAllocRejectsWiderThanPage(t *testing.T) {
	tcs := []tex{
		{512, 16, meshdata.Format8Bit, 256}, // 256 words, page span 128
		{512, 16, meshdata.Format4Bit, 16},  // 128 words, page span 64
		{16, 512, meshdata.Format4Bit, 16},
	}
	a := NewAllocator()
	first, _ := a.Alloc(16, 16, meshdata.Format4Bit, 16)
	for _, tc := range tcs {
		if s, ok := a.Alloc(tc.w, tc.h, tc.format, tc.colors); ok {
			t.Fatalf("Alloc(%dx%d fmt %d)=%d; want failure", tc.w, tc.h, tc.format, s)
		}
	}
	s, ok := a.Alloc(16, 16, meshdata.Format4Bit, 16)
	if !ok || s != first+1 {
		t.Fatalf("Alloc after rejects=%d,%v; want %d,true", s, ok, first+1)
	}
	if r := a.PixelRect(s); r.X != TexX0+4 || r.Y != TexY0 {
		t.Fatalf("PixelRect(%d)=%+v; want packed after slot %d", s, r, first)
	}
}

func TestAllocRowWrapAndOverflow(t *testing.T) {
	a := NewAllocator()
	// 256x256 4-bit textures are 64 pixels wide: 11 fit across 320..1024.
	for i := 0; i < 11; i++ {
		s, _ := a.Alloc(256, 256, meshdata.Format4Bit, 16)
		if r := a.PixelRect(s); r.Y != 0 || r.X != TexX0+64*i {
			t.Fatalf("texture %d at %+v; want x=%d y=0", i, r, TexX0+64*i)
		}
	}
	s, ok := a.Alloc(256, 128, meshdata.Format4Bit, 16)
	if !ok {
		t.Fatalf("Alloc on second row failed")
	}
	if r := a.PixelRect(s); r.X != TexX0 || r.Y != 256 {
		t.Fatalf("wrapped texture at %+v; want (%d,256)", r, TexX0)
	}
	// Fill the rest of the 128-high row; a third row would end past y=496.
	for i := 0; i < 10; i++ {
		if _, ok := a.Alloc(256, 64, meshdata.Format4Bit, 16); !ok {
			t.Fatalf("Alloc #%d on second row failed", i)
		}
	}
	n := a.NumSlots()
	if _, ok := a.Alloc(256, 256, meshdata.Format4Bit, 16); ok {
		t.Fatalf("Alloc past y=%d succeeded", TexY1)
	}
	if a.NumSlots() != n {
		t.Fatalf("failed Alloc changed NumSlots %d -> %d", n, a.NumSlots())
	}
	if s, ok := a.Alloc(16, 16, meshdata.Format4Bit, 16); !ok {
		t.Fatalf("small Alloc after a failed one: slot %d", s)
	}
}

func TestClutRowWrap(t *testing.T) {
	a := NewAllocator()
	for i := 0; i < 4; i++ {
		s, _ := a.Alloc(8, 8, meshdata.Format8Bit, 256)
		if c := a.ClutRect(s); c.Y != ClutY0 || c.X != 256*i {
			t.Fatalf("clut %d at %+v; want (%d,%d)", i, c, 256*i, ClutY0)
		}
	}
	s, _ := a.Alloc(8, 8, meshdata.Format8Bit, 256)
	if c := a.ClutRect(s); c.Y != ClutY0+1 || c.X != 0 {
		t.Fatalf("fifth clut at %+v; want (0,%d)", c, ClutY0+1)
	}
}

func TestLoadSectionUploads(t *testing.T) {
	texs := []meshdata.TextureBlock{
		{Width: 4, Height: 2, Format: meshdata.Format4Bit, Pixels: []byte{0x21, 0x43, 0x65, 0x87}, Clut: []uint16{0x7fff, 0x001f}},
	}
	buf := make([]byte, meshdata.TexSectionSize(texs))
	meshdata.PutTexSection(buf, texs)
	sec, err := meshdata.ParseTexSection(meshdata.NewView(buf), 0, 1)
	if err != nil {
		t.Fatalf("ParseTexSection: %v", err)
	}
	a, m := NewAllocator(), NewMemory()
	slots := LoadSection(a, m, sec)
	if len(slots) != 1 || slots[0] != 0 {
		t.Fatalf("slots=%v; want [0]", slots)
	}
	r := a.PixelRect(0)
	if got := m.At(r.X, r.Y); got != 0x4321 {
		t.Fatalf("pixel word=%#04x; want 0x4321", got)
	}
	if got := m.At(r.X, r.Y+1); got != 0x8765 {
		t.Fatalf("second row word=%#04x; want 0x8765", got)
	}
	c := a.ClutRect(0)
	if m.At(c.X, c.Y) != 0x7fff || m.At(c.X+1, c.Y) != 0x001f {
		t.Fatalf("clut words %#04x %#04x", m.At(c.X, c.Y), m.At(c.X+1, c.Y))
	}
}
