package render

import (
	"psx-scene-renderer/internal/gpu"
	"psx-scene-renderer/internal/meshdata"
	"psx-scene-renderer/internal/vram"
)

// Cull selects which screen-space winding survives backface culling.
// Rooms and skeletons are authored with opposite winding.
type Cull uint8

const (
	CullRoom     Cull = iota // keep cross > 0
	CullSkeleton             // keep cross < 0
)

// ScreenGuard bounds |sx| and |sy| of an accepted vertex.
const ScreenGuard = 512

// Stats counts what happened to every triangle offered in a frame.
type Stats struct {
	Emitted   int
	Budget    int // skipped after the triangle budget ran out
	Behind    int // a vertex had SZ 0
	Culled    int
	Offscreen int
	Depth     int // bucket outside (0, size)
	NoTexture int // texture id without a placed slot
	BadIndex  int
}

// Rejected sums every per-triangle rejection.
func (s Stats) Rejected() int {
	return s.Behind + s.Culled + s.Offscreen + s.Depth + s.NoTexture + s.BadIndex
}

// Emitter inserts triangles into one frame's ordering table.
type Emitter struct {
	MaxTris int

	frame *gpu.Frame
	alloc *vram.Allocator
	stats Stats
}

func NewEmitter(maxTris int) *Emitter {
	return &Emitter{MaxTris: maxTris}
}

// Begin starts a frame. Texture placement is read from alloc.
func (e *Emitter) Begin(f *gpu.Frame, alloc *vram.Allocator) {
	e.frame = f
	e.alloc = alloc
	e.stats = Stats{}
}

func (e *Emitter) Stats() Stats {
	return e.stats
}

func (e *Emitter) Frame() *gpu.Frame {
	return e.frame
}

// Bucket maps the summed depth of a triangle to its ordering-table index.
func Bucket(sumZ uint32, otSize int) int {
	return int((sumZ * uint32(otSize/3)) >> 12)
}

func onScreen(v ScreenVertex) bool {
	return v.SX >= -ScreenGuard && v.SX <= ScreenGuard && v.SY >= -ScreenGuard && v.SY <= ScreenGuard
}

// EmitMesh consumes sc, emitting m's triangles. slots maps m's local
// texture ids to allocator slots (-1 for unplaced).
func (e *Emitter) EmitMesh(sc *Screen, m meshdata.Mesh, cull Cull, slots []int) {
	defer sc.Release()
	otSize := e.frame.OTSize()
	for t := 0; t < m.NumTris; t++ {
		if e.stats.Emitted >= e.MaxTris {
			e.stats.Budget += m.NumTris - t
			return
		}
		tri := m.Tri(t)
		i0, i1, i2 := int(tri.V0), int(tri.V1), int(tri.V2)
		if i0 >= sc.n || i1 >= sc.n || i2 >= sc.n {
			e.stats.BadIndex++
			continue
		}
		v0, v1, v2 := sc.At(i0), sc.At(i1), sc.At(i2)
		if v0.SZ == 0 || v1.SZ == 0 || v2.SZ == 0 {
			e.stats.Behind++
			continue
		}

		dx0, dy0 := int32(v1.SX)-int32(v0.SX), int32(v1.SY)-int32(v0.SY)
		dx1, dy1 := int32(v2.SX)-int32(v0.SX), int32(v2.SY)-int32(v0.SY)
		cross := dx0*dy1 - dx1*dy0
		if (cull == CullRoom && cross <= 0) || (cull == CullSkeleton && cross >= 0) {
			e.stats.Culled++
			continue
		}

		if !onScreen(v0) || !onScreen(v1) || !onScreen(v2) {
			e.stats.Offscreen++
			continue
		}

		bucket := Bucket(uint32(v0.SZ)+uint32(v1.SZ)+uint32(v2.SZ), otSize)
		if bucket <= 0 || bucket >= otSize {
			e.stats.Depth++
			continue
		}

		var info vram.TexInfo
		textured := tri.TexID != meshdata.NoTexture
		if textured {
			id := int(tri.TexID)
			if id >= len(slots) || slots[id] < 0 || slots[id] >= e.alloc.NumSlots() {
				e.stats.NoTexture++
				continue
			}
			info = e.alloc.Info(slots[id])
		}

		kind := gpu.GouraudTriangle
		if textured {
			kind = gpu.GouraudTexturedTriangle
		}
		p := e.frame.New(kind)
		if p == nil {
			e.stats.Budget += m.NumTris - t
			return
		}
		p.Points[0] = gpu.Point{X: v0.SX, Y: v0.SY}
		p.Points[1] = gpu.Point{X: v1.SX, Y: v1.SY}
		p.Points[2] = gpu.Point{X: v2.SX, Y: v2.SY}
		for k, vi := range [3]int{i0, i1, i2} {
			if !textured {
				c := m.Color(vi)
				p.Colors[k] = gpu.Color{R: c.R, G: c.G, B: c.B}
				continue
			}
			uv := m.UV(vi)
			p.Colors[k] = gpu.Neutral
			p.UVs[k] = gpu.UV{U: uv.U&info.UMask + info.UOff, V: uv.V&info.VMask + info.VOff}
		}
		if textured {
			p.TPage = info.TPage
			p.Clut = info.Clut
		}
		e.frame.Insert(p, bucket)
		e.stats.Emitted++
	}
}
