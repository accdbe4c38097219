package texture

import (
	"encoding/binary"
	"fmt"
	"image"
	"image/color"
	"sort"

	"psx-scene-renderer/internal/meshdata"
)

// Decode expands an indexed texture into an image.
func Decode(d meshdata.TexDesc, pixels, clut []byte) *image.NRGBA {
	w, h := int(d.Width), int(d.Height)
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := y*w + x
			var idx int
			if d.Format == meshdata.Format4Bit {
				if i/2 >= len(pixels) {
					continue
				}
				idx = int(pixels[i/2] >> (4 * (i & 1)) & 0x0F)
			} else {
				if i >= len(pixels) {
					continue
				}
				idx = int(pixels[i])
			}
			if 2*idx+2 > len(clut) {
				continue
			}
			img.SetNRGBA(x, y, From15(binary.LittleEndian.Uint16(clut[2*idx:])))
		}
	}
	return img
}

func isPow2(n int) bool {
	return n > 0 && n&(n-1) == 0
}

func luma(c uint16) int {
	return int(c&0x1F)*3 + int(c>>5&0x1F)*6 + int(c>>10&0x1F)
}

// Quantize converts img to an indexed texture. Sixteen or fewer distinct
// colors give a 4-bit texture, otherwise 8-bit; more than 256 colors are
// reduced to 256 evenly spaced by luminance and every pixel takes the
// nearest remaining entry.
func Quantize(img *image.NRGBA) (meshdata.TextureBlock, error) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if !isPow2(w) || !isPow2(h) || w > 256 || h > 256 || w < 4 {
		return meshdata.TextureBlock{}, fmt.Errorf("texture: %dx%d is not a power of two in 4..256", w, h)
	}

	words := make([]uint16, 0, w*h)
	var palette []uint16
	seen := make(map[uint16]int)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := To15(img.NRGBAAt(x, y))
			words = append(words, c)
			if _, ok := seen[c]; !ok {
				seen[c] = len(palette)
				palette = append(palette, c)
			}
		}
	}

	if len(palette) > 256 {
		sort.SliceStable(palette, func(i, j int) bool { return luma(palette[i]) < luma(palette[j]) })
		step := float64(len(palette)) / 256
		reduced := make([]uint16, 256)
		for i := range reduced {
			reduced[i] = palette[int(float64(i)*step)]
		}
		palette = reduced
		seen = make(map[uint16]int, 256)
		for i, c := range palette {
			if _, ok := seen[c]; !ok {
				seen[c] = i
			}
		}
	}
	index := func(c uint16) int {
		if i, ok := seen[c]; ok {
			return i
		}
		i := nearest(palette, c)
		seen[c] = i
		return i
	}

	t := meshdata.TextureBlock{Width: uint16(w), Height: uint16(h), Clut: palette}
	if len(palette) <= 16 {
		t.Format = meshdata.Format4Bit
		t.Pixels = make([]byte, (w*h+1)/2)
		for i, c := range words {
			t.Pixels[i/2] |= byte(index(c)) << (4 * (i & 1))
		}
	} else {
		t.Format = meshdata.Format8Bit
		t.Pixels = make([]byte, w*h)
		for i, c := range words {
			t.Pixels[i] = byte(index(c))
		}
	}
	return t, nil
}

func nearest(palette []uint16, c uint16) int {
	best, bestD := 0, 1<<30
	for i, p := range palette {
		d := absDiff(c&0x1F, p&0x1F) + absDiff(c>>5&0x1F, p>>5&0x1F) + absDiff(c>>10&0x1F, p>>10&0x1F)
		if d < bestD {
			best, bestD = i, d
		}
	}
	return best
}

func absDiff(a, b uint16) int {
	if a > b {
		return int(a - b)
	}
	return int(b - a)
}

// Palette returns a TextureBlock's CLUT as colors, for previews.
func Palette(t meshdata.TextureBlock) color.Palette {
	p := make(color.Palette, len(t.Clut))
	for i, c := range t.Clut {
		p[i] = From15(c)
	}
	return p
}
