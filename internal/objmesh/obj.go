// Package objmesh reads and writes the Wavefront OBJ subset used to author
// and inspect room geometry: positions with optional vertex colors, texture
// coordinates, polygon faces and materials.
package objmesh

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"psx-scene-renderer/internal/meshdata"
	"psx-scene-renderer/internal/prm"
)

// FaceVert indexes a position and a texture coordinate (-1 when absent).
type FaceVert struct {
	Pos, Tex int
}

// Tri is one triangle of a fan-triangulated face. Material is -1 before
// the first usemtl.
type Tri struct {
	V        [3]FaceVert
	Material int
}

type Mesh struct {
	Positions [][3]float64
	Colors    [][3]float64 // per position, 1,1,1 when the file has none
	Texcos    [][2]float64
	Tris      []Tri
	Materials []string // in order of first use
	MtlLib    string
}

// Read parses an OBJ stream. Faces with more than three corners are split
// into fans; negative indices count back from the last element.
func Read(r io.Reader) (*Mesh, error) {
	m := &Mesh{}
	material := -1
	matIndex := map[string]int{}

	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}
		ident, val := fields[0], fields[1:]
		switch ident {
		case "v":
			f, err := floats(val, 3)
			if err != nil {
				return nil, fmt.Errorf("objmesh: line %d: %w", line, err)
			}
			m.Positions = append(m.Positions, [3]float64{f[0], f[1], f[2]})
			c := [3]float64{1, 1, 1}
			if len(f) >= 6 {
				c = [3]float64{f[3], f[4], f[5]}
			}
			m.Colors = append(m.Colors, c)
		case "vt":
			f, err := floats(val, 2)
			if err != nil {
				return nil, fmt.Errorf("objmesh: line %d: %w", line, err)
			}
			m.Texcos = append(m.Texcos, [2]float64{f[0], f[1]})
		case "usemtl":
			if len(val) == 0 {
				return nil, fmt.Errorf("objmesh: line %d: usemtl without a name", line)
			}
			idx, ok := matIndex[val[0]]
			if !ok {
				idx = len(m.Materials)
				matIndex[val[0]] = idx
				m.Materials = append(m.Materials, val[0])
			}
			material = idx
		case "mtllib":
			if len(val) > 0 {
				m.MtlLib = val[0]
			}
		case "f":
			if len(val) < 3 {
				return nil, fmt.Errorf("objmesh: line %d: face with %d corners", line, len(val))
			}
			corners := make([]FaceVert, len(val))
			for i, s := range val {
				fv, err := m.faceVert(s)
				if err != nil {
					return nil, fmt.Errorf("objmesh: line %d: %w", line, err)
				}
				corners[i] = fv
			}
			for i := 1; i+1 < len(corners); i++ {
				m.Tris = append(m.Tris, Tri{
					V:        [3]FaceVert{corners[0], corners[i], corners[i+1]},
					Material: material,
				})
			}
		default:
			// vn, g, o, s and the rest carry nothing the blob formats store.
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("objmesh: %w", err)
	}
	return m, nil
}

func floats(val []string, want int) ([]float64, error) {
	if len(val) < want {
		return nil, fmt.Errorf("want %d components, have %d", want, len(val))
	}
	out := make([]float64, len(val))
	for i, s := range val {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, err
		}
		out[i] = f
	}
	return out, nil
}

func resolve(s string, n int) (int, error) {
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	// compensate for indices from obj file starting at 1
	switch {
	case i > 0 && i <= n:
		return i - 1, nil
	case i < 0 && -i <= n:
		return n + i, nil
	}
	return 0, fmt.Errorf("index %d out of range (%d)", i, n)
}

func (m *Mesh) faceVert(s string) (FaceVert, error) {
	idx := strings.Split(s, "/")
	pos, err := resolve(idx[0], len(m.Positions))
	if err != nil {
		return FaceVert{}, err
	}
	fv := FaceVert{Pos: pos, Tex: -1}
	if len(idx) > 1 && idx[1] != "" {
		if fv.Tex, err = resolve(idx[1], len(m.Texcos)); err != nil {
			return FaceVert{}, err
		}
	}
	return fv, nil
}

// TexSize is the pixel size of the texture bound to a material.
type TexSize struct {
	W, H int
}

// Flatten converts m to the per-vertex arrays prm.Split takes. Positions
// are multiplied by scale and rounded; a vertex is duplicated for each
// distinct texture coordinate it is used with. texIDs maps material index
// to texture id (meshdata.NoTexture for untextured) and sizes gives the
// texture size per material.
func (m *Mesh) Flatten(scale float64, texIDs []uint8, sizes []TexSize) (
	verts []meshdata.Pos, colors []meshdata.Color, uvs []meshdata.UV, tris [][4]int) {

	type key struct {
		pos int
		uv  meshdata.UV
	}
	seen := map[key]int{}

	for _, t := range m.Tris {
		tex := int(meshdata.NoTexture)
		var size TexSize
		if t.Material >= 0 && t.Material < len(texIDs) {
			tex = int(texIDs[t.Material])
			if t.Material < len(sizes) {
				size = sizes[t.Material]
			}
		}
		var tri [4]int
		for k, fv := range t.V {
			var uv meshdata.UV
			if fv.Tex >= 0 && tex != int(meshdata.NoTexture) {
				tc := m.Texcos[fv.Tex]
				uv = meshdata.UV{U: texel(tc[0], size.W), V: texel(1-tc[1], size.H)}
			}
			kk := key{fv.Pos, uv}
			vi, ok := seen[kk]
			if !ok {
				vi = len(verts)
				seen[kk] = vi
				p, c := m.Positions[fv.Pos], m.Colors[fv.Pos]
				verts = append(verts, meshdata.Pos{X: coord(p[0] * scale), Y: coord(p[1] * scale), Z: coord(p[2] * scale)})
				colors = append(colors, meshdata.Color{R: unit8(c[0]), G: unit8(c[1]), B: unit8(c[2]), A: 255})
				uvs = append(uvs, uv)
			}
			tri[k] = vi
		}
		tri[3] = tex
		tris = append(tris, tri)
	}
	return verts, colors, uvs, tris
}

func texel(f float64, size int) uint8 {
	return uint8(int(math.Round(f*float64(size))) & 0xFF)
}

func coord(f float64) int16 {
	return int16(math.Max(math.MinInt16, math.Min(math.Round(f), math.MaxInt16)))
}

func unit8(f float64) uint8 {
	return uint8(math.Max(0, math.Min(math.Round(f*255), 255)))
}

// WriteRoom dumps every chunk of r as an OBJ group with vertex colors.
func WriteRoom(w io.Writer, r *prm.Room) error {
	bw := bufio.NewWriter(w)
	h := r.Header()
	fmt.Fprintf(bw, "# %d verts, %d tris, %d chunks\n\n", h.NumVerts, h.NumTris, h.NumChunks)

	base := 0
	for ci := 0; ci < r.NumChunks(); ci++ {
		m := r.ChunkMesh(ci)
		fmt.Fprintf(bw, "g chunk_%d\n", ci)
		for i := 0; i < m.NumVerts; i++ {
			p, c := m.Pos(i), m.Color(i)
			fmt.Fprintf(bw, "v %d %d %d %.4f %.4f %.4f\n", p.X, p.Y, p.Z,
				float64(c.R)/255, float64(c.G)/255, float64(c.B)/255)
		}
		for i := 0; i < m.NumTris; i++ {
			t := m.Tri(i)
			fmt.Fprintf(bw, "f %d %d %d\n", base+int(t.V0)+1, base+int(t.V1)+1, base+int(t.V2)+1)
		}
		base += m.NumVerts
	}
	return bw.Flush()
}
