package meshdata

import "fmt"

// TexDescSize is the size of one texture descriptor.
const TexDescSize = 12

// Pixel formats.
const (
	Format4Bit = 0
	Format8Bit = 1
)

// TexDesc describes one palette-indexed texture.
type TexDesc struct {
	Width, Height uint16
	Format        uint8
	ClutColors    uint16 // already expanded: 0 in the blob means 256
	DataOffset    uint32 // from the start of the texture data block
}

// PixelSize returns the number of pixel bytes of the texture.
func (d TexDesc) PixelSize() int {
	n := int(d.Width) * int(d.Height)
	if d.Format == Format4Bit {
		return (n + 1) / 2
	}
	return n
}

// ClutSize returns the number of CLUT bytes (16-bit colors).
func (d TexDesc) ClutSize() int {
	return int(d.ClutColors) * 2
}

// TexSection is the texture table shared by room and skeleton blobs:
// TexDesc[count] followed by per-texture pixel data then CLUT data.
type TexSection struct {
	descs []TexDesc
	data  View
}

// ParseTexSection decodes count descriptors at off and validates every texture's data range.
func ParseTexSection(v View, off, count int) (TexSection, error) {
	r := NewReader(v, off)
	descs := make([]TexDesc, count)
	for i := range descs {
		d := TexDesc{
			Width:  r.U16(),
			Height: r.U16(),
			Format: r.U8(),
		}
		d.ClutColors = uint16(r.U8())
		if d.ClutColors == 0 {
			d.ClutColors = 256
		}
		r.Skip(2)
		d.DataOffset = r.U32()
		descs[i] = d
	}
	if r.Err != nil {
		return TexSection{}, fmt.Errorf("meshdata: texture table at %d: %w", off, r.Err)
	}
	data, err := v.Tail(off + count*TexDescSize)
	if err != nil {
		return TexSection{}, fmt.Errorf("meshdata: texture data: %w", err)
	}
	s := TexSection{descs: descs, data: data}
	for i, d := range descs {
		if d.Format != Format4Bit && d.Format != Format8Bit {
			return TexSection{}, fmt.Errorf("meshdata: texture %d: unknown format %d", i, d.Format)
		}
		if _, err := data.Sub(int(d.DataOffset), clutStart(d)+d.ClutSize()); err != nil {
			return TexSection{}, fmt.Errorf("meshdata: texture %d: %w", i, ErrTruncated)
		}
	}
	return s, nil
}

// CLUT data follows the pixels, rounded up to a 16-bit boundary.
func clutStart(d TexDesc) int {
	return (d.PixelSize() + 1) &^ 1
}

func (s TexSection) Len() int {
	return len(s.descs)
}

func (s TexSection) Desc(i int) TexDesc {
	return s.descs[i]
}

// Pixels returns the pixel bytes of texture i.
func (s TexSection) Pixels(i int) []byte {
	d := s.descs[i]
	off := int(d.DataOffset)
	return s.data.data[off : off+d.PixelSize()]
}

// Clut returns the CLUT bytes of texture i.
func (s TexSection) Clut(i int) []byte {
	d := s.descs[i]
	off := int(d.DataOffset) + clutStart(d)
	return s.data.data[off : off+d.ClutSize()]
}
