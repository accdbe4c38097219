package meshdata

import (
	"encoding/binary"
	"fmt"
)

// Element sizes in bytes.
const (
	PosSize   = 8
	ColorSize = 4
	UVSize    = 2
	TriSize   = 4
)

// NoTexture marks a triangle that carries vertex colors only.
const NoTexture = 0xFF

// Pos is a vertex position in the transform unit's native layout (int16 x, y, z + pad).
type Pos struct {
	X, Y, Z int16
}

type Color struct {
	R, G, B, A uint8
}

type UV struct {
	U, V uint8
}

// Tri holds three local vertex indices and a texture id (NoTexture for untextured).
type Tri struct {
	V0, V1, V2 uint8
	TexID      uint8
}

func align4(n int) int {
	return (n + 3) &^ 3
}

// MeshSize returns the byte size of one chunk/limb block:
// positions | colors | uvs (padded to 4) | triangles.
func MeshSize(numVerts, numTris int) int {
	return numVerts*PosSize + numVerts*ColorSize + align4(numVerts*UVSize) + numTris*TriSize
}

// Mesh is a validated view over one chunk or limb block. Accessors index directly
// into the blob; element indices must be below NumVerts / NumTris.
type Mesh struct {
	NumVerts, NumTris int

	pos, col, uv, tri []byte
}

// NewMesh validates that a block with the given counts fits in v starting at off.
func NewMesh(v View, off, numVerts, numTris int) (Mesh, error) {
	block, err := v.Sub(off, MeshSize(numVerts, numTris))
	if err != nil {
		return Mesh{}, fmt.Errorf("meshdata: mesh block at %d (%d verts, %d tris): %w", off, numVerts, numTris, err)
	}
	b := block.data
	posEnd := numVerts * PosSize
	colEnd := posEnd + numVerts*ColorSize
	uvEnd := colEnd + numVerts*UVSize
	triStart := colEnd + align4(numVerts*UVSize)
	return Mesh{
		NumVerts: numVerts,
		NumTris:  numTris,
		pos:      b[:posEnd],
		col:      b[posEnd:colEnd],
		uv:       b[colEnd:uvEnd],
		tri:      b[triStart:],
	}, nil
}

// Empty reports whether the mesh has no drawable geometry.
func (m Mesh) Empty() bool {
	return m.NumVerts == 0 || m.NumTris == 0
}

func (m Mesh) Pos(i int) Pos {
	p := m.pos[i*PosSize:]
	return Pos{
		X: int16(binary.LittleEndian.Uint16(p)),
		Y: int16(binary.LittleEndian.Uint16(p[2:])),
		Z: int16(binary.LittleEndian.Uint16(p[4:])),
	}
}

func (m Mesh) Color(i int) Color {
	c := m.col[i*ColorSize:]
	return Color{R: c[0], G: c[1], B: c[2], A: c[3]}
}

func (m Mesh) UV(i int) UV {
	return UV{U: m.uv[i*UVSize], V: m.uv[i*UVSize+1]}
}

func (m Mesh) Tri(i int) Tri {
	t := m.tri[i*TriSize:]
	return Tri{V0: t[0], V1: t[1], V2: t[2], TexID: t[3]}
}

// PositionBytes exposes the raw position array (shared, not copied).
func (m Mesh) PositionBytes() []byte {
	return m.pos
}
