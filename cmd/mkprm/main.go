package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"psx-scene-renderer/internal/meshdata"
	"psx-scene-renderer/internal/objmesh"
	"psx-scene-renderer/internal/prm"
	"psx-scene-renderer/internal/texture"
)

func readOBJ(path string) (*objmesh.Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return objmesh.Read(f)
}

func readMTL(path string) (map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return objmesh.ReadMTL(f)
}

// buildTextures quantizes the diffuse map of every material. Materials that
// share an image share a texture id; materials without one stay untextured.
func buildTextures(mesh *objmesh.Mesh, maps map[string]string, dir string) ([]uint8, []objmesh.TexSize, []meshdata.TextureBlock, error) {
	cache := texture.NewCache()
	texIDs := make([]uint8, len(mesh.Materials))
	sizes := make([]objmesh.TexSize, len(mesh.Materials))
	byPath := map[string]uint8{}
	var texs []meshdata.TextureBlock

	for i, name := range mesh.Materials {
		texIDs[i] = meshdata.NoTexture
		file, ok := maps[name]
		if !ok {
			continue
		}
		path := filepath.Join(dir, filepath.FromSlash(strings.ReplaceAll(file, "\\", "/")))
		tex, err := cache.Resolve(path)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("material %s: %w", name, err)
		}
		id, ok := byPath[path]
		if !ok {
			if len(texs) >= meshdata.NoTexture {
				return nil, nil, nil, fmt.Errorf("material %s: more than %d textures", name, meshdata.NoTexture)
			}
			id = uint8(len(texs))
			byPath[path] = id
			texs = append(texs, tex)
		}
		texIDs[i] = id
		sizes[i] = objmesh.TexSize{W: int(tex.Width), H: int(tex.Height)}
	}
	return texIDs, sizes, texs, nil
}

func main() {
	out := flag.String("o", "", "Output PRM file (default: <obj>.PRM)")
	scale := flag.Float64("scale", 1, "Position scale applied before rounding to integers")
	mtlPath := flag.String("mtl", "", "Material library (default: the OBJ's mtllib)")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: mkprm [-o out.prm] [-scale f] [-mtl lib.mtl] room.obj")
		os.Exit(2)
	}
	objPath := flag.Arg(0)
	if *out == "" {
		*out = strings.TrimSuffix(objPath, filepath.Ext(objPath)) + ".PRM"
	}

	mesh, err := readOBJ(objPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s: %v\n", objPath, err)
		os.Exit(1)
	}

	dir := filepath.Dir(objPath)
	lib := *mtlPath
	if lib == "" && mesh.MtlLib != "" {
		lib = filepath.Join(dir, mesh.MtlLib)
	}
	maps := map[string]string{}
	if lib != "" {
		if maps, err = readMTL(lib); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %s: %v (building untextured)\n", lib, err)
			maps = map[string]string{}
		}
		dir = filepath.Dir(lib)
	}

	texIDs, sizes, texs, err := buildTextures(mesh, maps, dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	verts, colors, uvs, tris := mesh.Flatten(*scale, texIDs, sizes)
	b := prm.Builder{
		Chunks:   prm.Split(verts, colors, uvs, tris),
		Textures: texs,
	}
	blob := b.Bytes()
	if err := os.WriteFile(*out, blob, 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("OK  %s -> %s  (%d verts, %d tris, %d chunks, %d textures, %d bytes)\n",
		objPath, *out, len(verts), len(tris), len(b.Chunks), len(texs), len(blob))
}
