// Package render turns chunk and limb meshes into ordering-table entries:
// batch transform through the gte.Unit, then cull, bucket and emit.
package render

import (
	"psx-scene-renderer/internal/gte"
	"psx-scene-renderer/internal/mathutil"
	"psx-scene-renderer/internal/meshdata"
)

// MaxVerts bounds a chunk or limb (8-bit local vertex indices).
const MaxVerts = 256

// ScreenVertex is one transformed vertex. SZ 0 marks a vertex on or behind the eye.
type ScreenVertex struct {
	SX, SY int16
	SZ     uint16
}

// Scratch is the screen-vertex buffer shared by every chunk and limb of a
// frame. Only one Screen may hold it at a time.
type Scratch struct {
	verts [MaxVerts]ScreenVertex
	held  bool
}

// Screen is the owned handle to a filled Scratch. It must be released
// before the next Transform into the same Scratch.
type Screen struct {
	s *Scratch
	n int
}

// Acquire takes the scratch. It panics if a previous Screen was not released.
func (s *Scratch) Acquire() *Screen {
	if s.held {
		panic("render: scratch reused before its screen was released")
	}
	s.held = true
	return &Screen{s: s}
}

// Release returns the scratch. Releasing twice is a no-op.
func (sc *Screen) Release() {
	if sc.s != nil {
		sc.s.held = false
		sc.s = nil
	}
}

// Len is the number of transformed vertices.
func (sc *Screen) Len() int {
	return sc.n
}

func (sc *Screen) At(i int) ScreenVertex {
	return sc.s.verts[i]
}

func posVec(p meshdata.Pos) mathutil.Vec3 {
	return mathutil.Vec3{int32(p.X), int32(p.Y), int32(p.Z)}
}

// Transform projects m's vertices with the unit's current matrix, three at
// a time through RTPT and the remainder through RTPS.
func Transform(u *gte.Unit, m meshdata.Mesh, s *Scratch) *Screen {
	sc := s.Acquire()
	n := min(m.NumVerts, MaxVerts)
	v := &s.verts
	i := 0
	for ; i+2 < n; i += 3 {
		u.RTPT(posVec(m.Pos(i)), posVec(m.Pos(i+1)), posVec(m.Pos(i+2)))
		for k := 0; k < 3; k++ {
			x, y := u.SXY(k)
			v[i+k] = ScreenVertex{SX: x, SY: y, SZ: u.SZ(k)}
		}
	}
	for ; i < n; i++ {
		u.RTPS(posVec(m.Pos(i)))
		x, y := u.SXY(2)
		v[i] = ScreenVertex{SX: x, SY: y, SZ: u.SZ(2)}
	}
	sc.n = n
	return sc
}
