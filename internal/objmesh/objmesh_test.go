package objmesh

import (
	"bytes"
	"strings"
	"testing"

	"psx-scene-renderer/internal/meshdata"
	"psx-scene-renderer/internal/prm"
)

const quadOBJ = `# quad
mtllib room.mtl
v 0 0 0
v 1 0 0 1 0 0
v 1 1 0
v 0 1 0
vt 0 0
vt 1 0
vt 1 1
vt 0 1
vn 0 0 1
usemtl floor
f 1/1/1 2/2/1 3/3/1 4/4/1
usemtl plain
f -4 -3 -2
`

func TestRead(t *testing.T) {
	m, err := Read(strings.NewReader(quadOBJ))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(m.Positions) != 4 || len(m.Texcos) != 4 || len(m.Tris) != 3 {
		t.Fatalf("Read: %d positions %d texcos %d tris; want 4 4 3", len(m.Positions), len(m.Texcos), len(m.Tris))
	}
	if m.MtlLib != "room.mtl" || len(m.Materials) != 2 || m.Materials[1] != "plain" {
		t.Fatalf("materials %q lib %q", m.Materials, m.MtlLib)
	}
	if m.Colors[1] != [3]float64{1, 0, 0} || m.Colors[0] != [3]float64{1, 1, 1} {
		t.Fatalf("colors %v", m.Colors[:2])
	}
	// fan: (1,2,3) (1,3,4), then the negative-index face
	want := []Tri{
		{V: [3]FaceVert{{0, 0}, {1, 1}, {2, 2}}, Material: 0},
		{V: [3]FaceVert{{0, 0}, {2, 2}, {3, 3}}, Material: 0},
		{V: [3]FaceVert{{0, -1}, {1, -1}, {2, -1}}, Material: 1},
	}
	for i, tr := range want {
		if m.Tris[i] != tr {
			t.Fatalf("Tris[%d]=%+v; want %+v", i, m.Tris[i], tr)
		}
	}
}

func TestReadErrors(t *testing.T) {
	tcs := []string{
		"v 1 2\n",
		"v 0 0 0\nf 1 2 3\n",
		"v 0 0 0\nv 1 0 0\nf 1 2\n",
		"v a b c\n",
		"usemtl\n",
	}
	for _, src := range tcs {
		if _, err := Read(strings.NewReader(src)); err == nil {
			t.Fatalf("Read(%q) succeeded", src)
		}
	}
}

func TestFlatten(t *testing.T) {
	m, err := Read(strings.NewReader(quadOBJ))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	verts, colors, uvs, tris := m.Flatten(100, []uint8{0, meshdata.NoTexture}, []TexSize{{64, 32}})

	// The untextured face shares no vertex with the textured ones: their UVs differ.
	if len(verts) != 7 {
		t.Fatalf("len(verts)=%d; want 7", len(verts))
	}
	if len(tris) != 3 || tris[0][3] != 0 || tris[2][3] != int(meshdata.NoTexture) {
		t.Fatalf("tris=%v", tris)
	}
	if len(verts) != len(colors) || len(verts) != len(uvs) {
		t.Fatalf("array lengths %d %d %d", len(verts), len(colors), len(uvs))
	}
	if v := verts[tris[0][1]]; v != (meshdata.Pos{X: 100, Y: 0, Z: 0}) {
		t.Fatalf("scaled vertex %v; want (100,0,0)", v)
	}
	if c := colors[tris[0][1]]; c != (meshdata.Color{255, 0, 0, 255}) {
		t.Fatalf("color %v; want red", c)
	}
	// vt (1,1) on a 64x32 texture, V flipped.
	if uv := uvs[tris[0][2]]; uv != (meshdata.UV{U: 64, V: 0}) {
		t.Fatalf("uv %v; want (64,0)", uv)
	}
	if uv := uvs[tris[0][0]]; uv != (meshdata.UV{U: 0, V: 32}) {
		t.Fatalf("uv %v; want (0,32)", uv)
	}

	chunks := prm.Split(verts, colors, uvs, tris)
	total := 0
	for _, c := range chunks {
		total += len(c.Mesh.Tris)
	}
	if total != 3 {
		t.Fatalf("Split kept %d tris; want 3", total)
	}
}

func TestWriteRoomRoundTrip(t *testing.T) {
	m, _ := Read(strings.NewReader(quadOBJ))
	verts, colors, uvs, tris := m.Flatten(10, nil, nil)
	b := prm.Builder{Chunks: prm.Split(verts, colors, uvs, tris)}
	room, err := prm.Open(b.Bytes())
	if err != nil {
		t.Fatalf("prm.Open: %v", err)
	}

	var buf bytes.Buffer
	if err := WriteRoom(&buf, room); err != nil {
		t.Fatalf("WriteRoom: %v", err)
	}
	back, err := Read(&buf)
	if err != nil {
		t.Fatalf("Read(WriteRoom): %v", err)
	}
	if len(back.Positions) != len(verts) || len(back.Tris) != 3 {
		t.Fatalf("round trip: %d positions %d tris; want %d 3", len(back.Positions), len(back.Tris), len(verts))
	}
	if back.Colors[1] != [3]float64{1, 0, 0} {
		t.Fatalf("round trip color %v; want red", back.Colors[1])
	}
}

func TestReadMTL(t *testing.T) {
	src := "newmtl floor\nKd 1 1 1\nmap_Kd -s 1 1 1 tex/floor.tga\nnewmtl plain\n"
	maps, err := ReadMTL(strings.NewReader(src))
	if err != nil {
		t.Fatalf("ReadMTL: %v", err)
	}
	if maps["floor"] != "tex/floor.tga" || maps["plain"] != "" || len(maps) != 2 {
		t.Fatalf("ReadMTL=%v", maps)
	}
}
