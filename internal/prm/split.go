package prm

import (
	"math"

	"psx-scene-renderer/internal/meshdata"
)

// Split breaks one large indexed mesh into chunks of at most MaxChunkVerts vertices,
// remapping indices to chunk-local 8-bit values. Triangles are kept in order; a new
// chunk starts whenever the next triangle would overflow the current one.
func Split(verts []meshdata.Pos, colors []meshdata.Color, uvs []meshdata.UV, tris [][4]int) []Chunk {
	var chunks []Chunk
	var cur meshdata.MeshBlock
	remap := map[int]uint8{}

	flush := func() {
		if len(cur.Tris) == 0 {
			return
		}
		c := Chunk{Mesh: cur}
		c.CX, c.CY, c.CZ, c.Radius = boundingSphere(cur.Verts)
		chunks = append(chunks, c)
		cur = meshdata.MeshBlock{}
		remap = map[int]uint8{}
	}

	for _, t := range tris {
		missing := 0
		for k := 0; k < 3; k++ {
			if _, ok := remap[t[k]]; !ok {
				missing++
			}
		}
		if len(cur.Verts)+missing > MaxChunkVerts {
			flush()
		}
		var local [3]uint8
		for k := 0; k < 3; k++ {
			gi := t[k]
			li, ok := remap[gi]
			if !ok {
				li = uint8(len(cur.Verts))
				remap[gi] = li
				cur.Verts = append(cur.Verts, verts[gi])
				if gi < len(colors) {
					cur.Colors = append(cur.Colors, colors[gi])
				} else {
					cur.Colors = append(cur.Colors, meshdata.Color{R: 128, G: 128, B: 128, A: 255})
				}
				if gi < len(uvs) {
					cur.UVs = append(cur.UVs, uvs[gi])
				} else {
					cur.UVs = append(cur.UVs, meshdata.UV{})
				}
			}
			local[k] = li
		}
		cur.Tris = append(cur.Tris, meshdata.Tri{V0: local[0], V1: local[1], V2: local[2], TexID: uint8(t[3])})
	}
	flush()
	return chunks
}

func boundingSphere(verts []meshdata.Pos) (cx, cy, cz, r int16) {
	if len(verts) == 0 {
		return 0, 0, 0, 0
	}
	minV := [3]int{math.MaxInt, math.MaxInt, math.MaxInt}
	maxV := [3]int{math.MinInt, math.MinInt, math.MinInt}
	for _, p := range verts {
		for k, c := range [3]int{int(p.X), int(p.Y), int(p.Z)} {
			minV[k] = min(minV[k], c)
			maxV[k] = max(maxV[k], c)
		}
	}
	var center [3]int
	for k := range center {
		center[k] = (minV[k] + maxV[k]) / 2
	}
	var r2 float64
	for _, p := range verts {
		dx := float64(int(p.X) - center[0])
		dy := float64(int(p.Y) - center[1])
		dz := float64(int(p.Z) - center[2])
		r2 = math.Max(r2, dx*dx+dy*dy+dz*dz)
	}
	radius := math.Ceil(math.Sqrt(r2))
	if radius > math.MaxInt16 {
		radius = math.MaxInt16
	}
	return int16(center[0]), int16(center[1]), int16(center[2]), int16(radius)
}
