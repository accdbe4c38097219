// Package gpu holds the drawing primitives, the ordering table that sorts
// them by depth and the double-buffered per-frame primitive storage.
package gpu

import "psx-scene-renderer/internal/vram"

type Kind uint8

const (
	GouraudTriangle Kind = iota
	GouraudTexturedTriangle
	TexturedQuad
)

func (k Kind) String() string {
	switch k {
	case GouraudTriangle:
		return "gouraud-tri"
	case GouraudTexturedTriangle:
		return "gouraud-textured-tri"
	case TexturedQuad:
		return "textured-quad"
	}
	return "unknown"
}

type Point struct {
	X, Y int16
}

type Color struct {
	R, G, B uint8
}

// Neutral is the modulation color that leaves texels unchanged.
var Neutral = Color{128, 128, 128}

type UV struct {
	U, V uint8
}

// Prim is one drawable primitive. Triangles use the first three points,
// colors and UVs; quads use all four points (A B / C D order) and Colors[0].
type Prim struct {
	Kind   Kind
	Points [4]Point
	Colors [3]Color
	UVs    [4]UV
	TPage  vram.TPage
	Clut   vram.Clut

	index int32
	next  int32
}

// Textured reports whether the primitive samples VRAM.
func (p *Prim) Textured() bool {
	return p.Kind != GouraudTriangle
}
