package meshdata

import (
	"errors"
	"testing"
)

func TestMeshSizePadsUVs(t *testing.T) {
	tcs := []struct {
		nv, nt, want int
	}{
		{0, 0, 0},
		{1, 0, 8 + 4 + 4},
		{2, 1, 16 + 8 + 4 + 4},
		{3, 1, 24 + 12 + 8 + 4},
		{255, 0, 255*12 + 512},
	}
	for _, tc := range tcs {
		if got := MeshSize(tc.nv, tc.nt); got != tc.want {
			t.Fatalf("MeshSize(%d, %d)=%d; want %d", tc.nv, tc.nt, got, tc.want)
		}
	}
}

func TestMeshRoundTrip(t *testing.T) {
	b := MeshBlock{
		Verts:  []Pos{{1, -2, 3}, {-400, 500, -600}, {7, 8, 9}},
		Colors: []Color{{1, 2, 3, 4}, {5, 6, 7, 8}, {9, 10, 11, 12}},
		UVs:    []UV{{10, 20}, {30, 40}, {50, 60}},
		Tris:   []Tri{{0, 1, 2, 5}, {2, 1, 0, NoTexture}},
	}
	buf := make([]byte, b.Size()+4)
	b.Put(buf[4:])
	m, err := NewMesh(NewView(buf), 4, 3, 2)
	if err != nil {
		t.Fatalf("NewMesh: %v", err)
	}
	for i := range b.Verts {
		if got := m.Pos(i); got != b.Verts[i] {
			t.Fatalf("Pos(%d)=%v; want %v", i, got, b.Verts[i])
		}
		if got := m.Color(i); got != b.Colors[i] {
			t.Fatalf("Color(%d)=%v; want %v", i, got, b.Colors[i])
		}
		if got := m.UV(i); got != b.UVs[i] {
			t.Fatalf("UV(%d)=%v; want %v", i, got, b.UVs[i])
		}
	}
	for i := range b.Tris {
		if got := m.Tri(i); got != b.Tris[i] {
			t.Fatalf("Tri(%d)=%v; want %v", i, got, b.Tris[i])
		}
	}
}

func TestNewMeshOutOfRange(t *testing.T) {
	_, err := NewMesh(NewView(make([]byte, 20)), 0, 3, 1)
	if !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("NewMesh on short view err=%v; want ErrOutOfRange", err)
	}
}

func TestReaderStickyError(t *testing.T) {
	r := NewReader(NewView([]byte{1, 0, 2}), 0)
	if got := r.U16(); got != 1 {
		t.Fatalf("U16()=%d; want 1", got)
	}
	if got := r.U32(); got != 0 || r.Err == nil {
		t.Fatalf("U32() past end = %d, err %v; want 0 and an error", got, r.Err)
	}
	if got := r.U8(); got != 0 {
		t.Fatalf("U8() after error = %d; want 0", got)
	}
}

func TestTexSection(t *testing.T) {
	texs := []TextureBlock{
		{Width: 3, Height: 3, Format: Format4Bit, Pixels: []byte{1, 2, 3, 4, 5}, Clut: make([]uint16, 16)},
		{Width: 4, Height: 2, Format: Format8Bit, Pixels: []byte{9, 9, 9, 9, 9, 9, 9, 9}, Clut: make([]uint16, 256)},
	}
	texs[0].Clut[15] = 0x7FFF
	buf := make([]byte, TexSectionSize(texs))
	PutTexSection(buf, texs)

	s, err := ParseTexSection(NewView(buf), 0, len(texs))
	if err != nil {
		t.Fatalf("ParseTexSection: %v", err)
	}
	if got := s.Desc(1).ClutColors; got != 256 {
		t.Fatalf("ClutColors of 8-bit texture = %d; want 256", got)
	}
	if got := len(s.Pixels(0)); got != 5 {
		t.Fatalf("len(Pixels(0))=%d; want 5", got)
	}
	c := s.Clut(0)
	if got := uint16(c[30]) | uint16(c[31])<<8; got != 0x7FFF {
		t.Fatalf("Clut(0)[15]=%#x; want 0x7fff", got)
	}
	if got := s.Pixels(1)[7]; got != 9 {
		t.Fatalf("Pixels(1)[7]=%d; want 9", got)
	}
}

func TestTexSectionTruncated(t *testing.T) {
	texs := []TextureBlock{{Width: 16, Height: 16, Format: Format8Bit, Pixels: make([]byte, 256), Clut: make([]uint16, 256)}}
	buf := make([]byte, TexSectionSize(texs))
	PutTexSection(buf, texs)
	if _, err := ParseTexSection(NewView(buf[:100]), 0, 1); !errors.Is(err, ErrTruncated) {
		t.Fatalf("ParseTexSection on truncated data err=%v; want ErrTruncated", err)
	}
}
