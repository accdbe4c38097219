// Package texture converts between images and the 4-bit / 8-bit indexed
// textures with 15-bit palettes stored in PRM and SKM blobs.
package texture

import "image/color"

// Transparent is the 15-bit word the rasterizer skips.
const Transparent = 0x0000

// semi marks an opaque color so that black does not read as transparent.
const semi = 1 << 15

// To15 converts c to a 15-bit VRAM color. Mostly transparent colors map to Transparent.
func To15(c color.NRGBA) uint16 {
	if c.A < 128 {
		return Transparent
	}
	return semi | uint16(c.B>>3)<<10 | uint16(c.G>>3)<<5 | uint16(c.R>>3)
}

// From15 expands a 15-bit VRAM color.
func From15(w uint16) color.NRGBA {
	if w == Transparent {
		return color.NRGBA{}
	}
	return color.NRGBA{R: expand5(w), G: expand5(w >> 5), B: expand5(w >> 10), A: 255}
}

func expand5(w uint16) uint8 {
	v := uint8(w & 0x1F)
	return v<<3 | v>>2
}
