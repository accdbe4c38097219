package main

import (
	"bytes"
	"flag"
	"fmt"
	"os"

	"psx-scene-renderer/internal/meshdata"
	"psx-scene-renderer/internal/objmesh"
	"psx-scene-renderer/internal/prm"
	"psx-scene-renderer/internal/skm"
)

func printTextures(sec meshdata.TexSection) {
	fmt.Printf("Textures: %d\n", sec.Len())
	for i := 0; i < sec.Len(); i++ {
		d := sec.Desc(i)
		bits := 4
		if d.Format == meshdata.Format8Bit {
			bits = 8
		}
		fmt.Printf("  Tex[%d]: %dx%d %d-bit, %d colors, data @%d\n", i, d.Width, d.Height, bits, d.ClutColors, d.DataOffset)
	}
}

func inspectRoom(blob []byte, objPath string) error {
	r, err := prm.Open(blob)
	if err != nil {
		return err
	}
	h := r.Header()
	fmt.Printf("PRM: %d chunks, %d verts, %d tris, %d textures, %d bytes\n",
		h.NumChunks, h.NumVerts, h.NumTris, h.NumTextures, r.Size())
	for i := 0; i < r.NumChunks(); i++ {
		c := r.Chunk(i)
		fmt.Printf("  Chunk[%d]: verts=%d, tris=%d, sphere=(%d, %d, %d) r=%d, data @%d\n",
			i, c.NumVerts, c.NumTris, c.CX, c.CY, c.CZ, c.Radius, r.ChunkOffset(i))
	}
	printTextures(r.Textures())

	if objPath == "" {
		return nil
	}
	f, err := os.Create(objPath)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := objmesh.WriteRoom(f, r); err != nil {
		return err
	}
	fmt.Printf("OBJ: %s\n", objPath)
	return nil
}

func inspectSkeleton(blob []byte) error {
	s, err := skm.Open(blob)
	if err != nil {
		return err
	}
	h := s.Header()
	fmt.Printf("SKM: %d limbs, %d anims, %d textures\n", h.NumLimbs, h.NumAnims, h.NumTextures)
	tree := s.Tree()
	for i := 0; i < s.NumLimbs(); i++ {
		l := s.Limb(i)
		n := tree.Nodes[i]
		fmt.Printf("  Limb[%d]: joint=(%d, %d, %d), verts=%d, tris=%d, parent=%v, children=%v, data @%d\n",
			i, l.Joint[0], l.Joint[1], l.Joint[2], l.NumVerts, l.NumTris, n.Parent, n.Children, s.LimbOffset(i))
	}
	fmt.Printf("Order: %v\n", tree.Order)
	for i := 0; i < s.NumAnims(); i++ {
		a := s.Anim(i)
		line := fmt.Sprintf("  Anim[%d]: %d frames, loop=%v", i, a.FrameCount, a.Loop)
		if f, err := s.Frame(i, 0); err == nil {
			x, y, z := f.RootPos()
			line += fmt.Sprintf(", root=(%d, %d, %d)", x, y, z)
		}
		fmt.Println(line)
	}
	printTextures(s.Textures())
	return nil
}

func main() {
	objPath := flag.String("obj", "", "Write room geometry to this OBJ file")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: inspect [-obj out.obj] file.prm|file.skm")
		os.Exit(2)
	}
	path := flag.Arg(0)
	blob, err := os.ReadFile(path)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	switch {
	case bytes.HasPrefix(blob, prm.Magic[:]):
		err = inspectRoom(blob, *objPath)
	case bytes.HasPrefix(blob, skm.Magic[:]):
		if *objPath != "" {
			fmt.Fprintln(os.Stderr, "Warning: -obj only applies to rooms")
		}
		err = inspectSkeleton(blob)
	default:
		err = fmt.Errorf("unknown magic % x", blob[:min(4, len(blob))])
	}
	if err != nil {
		fmt.Printf("Error: %s: %v\n", path, err)
		os.Exit(1)
	}
}
