package texture

import (
	"image"

	"psx-scene-renderer/internal/vram"
)

// VRAMImage renders m as a direct-color 1024x512 image. Indexed pages show
// up as noise, which is how they look on a VRAM viewer too.
func VRAMImage(m *vram.Memory) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, vram.Width, vram.Height))
	for y := 0; y < vram.Height; y++ {
		for x := 0; x < vram.Width; x++ {
			img.SetNRGBA(x, y, From15(m.At(x, y)))
		}
	}
	return img
}
