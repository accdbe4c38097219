package batch

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"psx-scene-renderer/internal/config"
	"psx-scene-renderer/internal/meshdata"
	"psx-scene-renderer/internal/prm"
	"psx-scene-renderer/internal/stream"
)

func roomBlob() []byte {
	white := meshdata.Color{255, 255, 255, 255}
	b := prm.Builder{Chunks: []prm.Chunk{{Mesh: meshdata.MeshBlock{
		Verts:  []meshdata.Pos{{-20, 20, 0}, {20, 20, 0}, {0, 60, 0}},
		Colors: []meshdata.Color{white, white, white},
		UVs:    make([]meshdata.UV, 3),
		Tris: []meshdata.Tri{
			{V0: 0, V1: 1, V2: 2, TexID: meshdata.NoTexture},
			{V0: 0, V1: 2, V2: 1, TexID: meshdata.NoTexture},
		},
	}}}}
	return b.Bytes()
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "ROOMS"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "ROOMS", "A.PRM"), roomBlob(), 0o644); err != nil {
		t.Fatal(err)
	}
	os.WriteFile(filepath.Join(dir, "ROOMS", "BAD.PRM"), []byte("nope"), 0o644)

	cfg := config.Config{
		AssetDir: dir,
		Skeleton: "LINK.SKM;1",
		Rooms: []config.Room{
			{File: "ROOMS/A.PRM;1", Name: "A"},
			{File: "ROOMS/MISSING.PRM;1", Name: "Missing"},
			{File: "ROOMS/BAD.PRM;1", Name: "Bad"},
		},
	}
	cfg.Resolve(config.Flags{Workers: 2, Frames: 3})

	results := Run(Config{Scene: cfg, Index: stream.BuildIndex(dir)})
	if len(results) != 3 {
		t.Fatalf("len(results)=%d; want 3", len(results))
	}
	if r := results[0]; !r.Success || r.Triangles != 1 || r.Image != "00.webp" {
		t.Fatalf("results[0]=%+v; want one emitted triangle in 00.webp", r)
	}
	for _, r := range results[1:] {
		if r.Success || r.Error == "" {
			t.Fatalf("room %s: %+v; want failure", r.Name, r)
		}
	}

	data, err := os.ReadFile(filepath.Join(cfg.OutputDir, "00.webp"))
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if len(data) < 12 || !bytes.Equal(data[:4], []byte("RIFF")) || !bytes.Equal(data[8:12], []byte("WEBP")) {
		t.Fatalf("00.webp is not a WebP file")
	}

	mpath := filepath.Join(cfg.OutputDir, "manifest.json")
	if err := WriteManifest(mpath, results); err != nil {
		t.Fatalf("WriteManifest: %v", err)
	}
	var entries []ManifestEntry
	data, _ = os.ReadFile(mpath)
	if err := json.Unmarshal(data, &entries); err != nil {
		t.Fatalf("manifest: %v", err)
	}
	if len(entries) != 1 || entries[0].Name != "A" || entries[0].Triangles != 1 {
		t.Fatalf("manifest=%+v; want the one rendered room", entries)
	}
}
