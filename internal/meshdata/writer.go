package meshdata

import "encoding/binary"

// MeshBlock is the authoring-side form of one chunk or limb.
type MeshBlock struct {
	Verts  []Pos
	Colors []Color // optional; missing entries are written as opaque white
	UVs    []UV    // optional; missing entries are written as zero
	Tris   []Tri
}

// TextureBlock is the authoring-side form of one texture.
type TextureBlock struct {
	Width, Height uint16
	Format        uint8
	Pixels        []byte
	Clut          []uint16
}

// Size returns the encoded size of b.
func (b MeshBlock) Size() int {
	return MeshSize(len(b.Verts), len(b.Tris))
}

// Put encodes b into dst, which must hold b.Size() bytes.
func (b MeshBlock) Put(dst []byte) {
	nv := len(b.Verts)
	for i, p := range b.Verts {
		o := i * PosSize
		binary.LittleEndian.PutUint16(dst[o:], uint16(p.X))
		binary.LittleEndian.PutUint16(dst[o+2:], uint16(p.Y))
		binary.LittleEndian.PutUint16(dst[o+4:], uint16(p.Z))
	}
	col := dst[nv*PosSize:]
	for i := 0; i < nv; i++ {
		c := Color{255, 255, 255, 255}
		if i < len(b.Colors) {
			c = b.Colors[i]
		}
		col[i*4], col[i*4+1], col[i*4+2], col[i*4+3] = c.R, c.G, c.B, c.A
	}
	uv := col[nv*ColorSize:]
	for i := 0; i < nv && i < len(b.UVs); i++ {
		uv[i*2], uv[i*2+1] = b.UVs[i].U, b.UVs[i].V
	}
	tri := uv[align4(nv*UVSize):]
	for i, t := range b.Tris {
		tri[i*4], tri[i*4+1], tri[i*4+2], tri[i*4+3] = t.V0, t.V1, t.V2, t.TexID
	}
}

// TexSectionSize returns the encoded size of a texture section, padded to 4.
func TexSectionSize(texs []TextureBlock) int {
	n := len(texs) * TexDescSize
	for _, t := range texs {
		n += texDataSize(t)
	}
	return align4(n)
}

func texDataSize(t TextureBlock) int {
	d := TexDesc{Width: t.Width, Height: t.Height, Format: t.Format}
	return clutStart(d) + len(t.Clut)*2
}

// PutTexSection encodes texs into dst, which must hold TexSectionSize(texs) bytes.
func PutTexSection(dst []byte, texs []TextureBlock) {
	data := dst[len(texs)*TexDescSize:]
	off := 0
	for i, t := range texs {
		d := dst[i*TexDescSize:]
		binary.LittleEndian.PutUint16(d, t.Width)
		binary.LittleEndian.PutUint16(d[2:], t.Height)
		d[4] = t.Format
		d[5] = uint8(len(t.Clut)) // 256 wraps to 0
		binary.LittleEndian.PutUint32(d[8:], uint32(off))

		copy(data[off:], t.Pixels)
		c := data[off+clutStart(TexDesc{Width: t.Width, Height: t.Height, Format: t.Format}):]
		for j, col := range t.Clut {
			binary.LittleEndian.PutUint16(c[j*2:], col)
		}
		off += texDataSize(t)
	}
}

// Align4 rounds n up to a multiple of four.
func Align4(n int) int {
	return align4(n)
}
