package render

import (
	"psx-scene-renderer/internal/gte"
	"psx-scene-renderer/internal/prm"
)

// DrawRoom emits every non-empty chunk of r with the unit's current (camera) matrix.
func (e *Emitter) DrawRoom(u *gte.Unit, s *Scratch, r *prm.Room, slots []int) {
	for i := 0; i < r.NumChunks(); i++ {
		m := r.ChunkMesh(i)
		if m.NumVerts == 0 || m.NumTris == 0 {
			continue
		}
		e.EmitMesh(Transform(u, m, s), m, CullRoom, slots)
	}
}
