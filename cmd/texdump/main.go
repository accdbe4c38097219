package main

import (
	"bytes"
	"flag"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"psx-scene-renderer/internal/meshdata"
	"psx-scene-renderer/internal/postprocess"
	"psx-scene-renderer/internal/prm"
	"psx-scene-renderer/internal/skm"
	"psx-scene-renderer/internal/texture"
	"psx-scene-renderer/internal/vram"

	"github.com/HugoSmits86/nativewebp"
)

// textures returns the texture section of a room or skeleton blob.
func textures(blob []byte) (meshdata.TexSection, error) {
	switch {
	case bytes.HasPrefix(blob, prm.Magic[:]):
		r, err := prm.Open(blob)
		if err != nil {
			return meshdata.TexSection{}, err
		}
		return r.Textures(), nil
	case bytes.HasPrefix(blob, skm.Magic[:]):
		s, err := skm.Open(blob)
		if err != nil {
			return meshdata.TexSection{}, err
		}
		return s.Textures(), nil
	}
	return meshdata.TexSection{}, fmt.Errorf("unknown magic % x", blob[:min(4, len(blob))])
}

func writeTGA(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return texture.EncodeTGA(f, img)
}

func writeWebP(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return nativewebp.Encode(f, img, nil)
}

func main() {
	outDir := flag.String("o", ".", "Output directory")
	cols := flag.Int("cols", 8, "Textures per sheet row")
	cell := flag.Int("cell", 64, "Sheet cell size in pixels")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: texdump [-o dir] file.prm|file.skm")
		os.Exit(2)
	}
	path := flag.Arg(0)
	blob, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	sec, err := textures(blob)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s: %v\n", path, err)
		os.Exit(1)
	}
	os.MkdirAll(*outDir, 0755)
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	alloc := vram.NewAllocator()
	mem := vram.NewMemory()
	slots := vram.LoadSection(alloc, mem, sec)

	var imgs []*image.NRGBA
	for i := 0; i < sec.Len(); i++ {
		d := sec.Desc(i)
		bits := 4
		if d.Format == meshdata.Format8Bit {
			bits = 8
		}
		if slots[i] < 0 {
			fmt.Printf("  tex %2d: %3dx%-3d %d-bit %3d colors  (no VRAM space)\n", i, d.Width, d.Height, bits, d.ClutColors)
		} else {
			info := alloc.Info(slots[i])
			fmt.Printf("  tex %2d: %3dx%-3d %d-bit %3d colors  page %d,%d clut %d,%d\n", i, d.Width, d.Height, bits, d.ClutColors,
				info.TPage.PageX, info.TPage.PageY, info.Clut.X, info.Clut.Y)
		}
		img := texture.Decode(d, sec.Pixels(i), sec.Clut(i))
		imgs = append(imgs, img)
		if err := writeTGA(filepath.Join(*outDir, fmt.Sprintf("%s_%02d.tga", stem, i)), img); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	vramPath := filepath.Join(*outDir, stem+"_vram.tga")
	if err := writeTGA(vramPath, texture.VRAMImage(mem)); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("VRAM: %s (%d slots)\n", vramPath, alloc.NumSlots())

	if len(imgs) > 0 {
		sheetPath := filepath.Join(*outDir, stem+"_sheet.webp")
		if err := writeWebP(sheetPath, postprocess.Sheet(imgs, *cols, *cell)); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Sheet: %s (%d textures)\n", sheetPath, len(imgs))
	}
}
