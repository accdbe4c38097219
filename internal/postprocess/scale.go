// Package postprocess scales rendered frames and lays out texture sheets
// for previews.
package postprocess

import (
	"image"

	"golang.org/x/image/draw"
)

// Upscale enlarges img by an integer factor with nearest-neighbour sampling,
// keeping the hard pixel edges of the low-resolution frame.
func Upscale(img image.Image, factor int) *image.NRGBA {
	b := img.Bounds()
	if factor < 1 {
		factor = 1
	}
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx()*factor, b.Dy()*factor))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

// Fit scales img to fit inside w x h keeping its aspect ratio, centred on a
// transparent canvas. Filtering is premultiplied so transparent texels do
// not bleed dark halos.
func Fit(img *image.NRGBA, w, h int) *image.NRGBA {
	b := img.Bounds()
	canvas := image.NewNRGBA(image.Rect(0, 0, w, h))
	if b.Empty() || w <= 0 || h <= 0 {
		return canvas
	}

	sw, sh := w, b.Dy()*w/b.Dx()
	if sh > h {
		sw, sh = b.Dx()*h/b.Dy(), h
	}
	sw, sh = max(sw, 1), max(sh, 1)

	// Premultiply alpha
	premul := image.NewRGBA(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			si := img.PixOffset(x, y)
			di := premul.PixOffset(x, y)
			a := float64(img.Pix[si+3]) / 255.0
			premul.Pix[di] = uint8(float64(img.Pix[si])*a + 0.5)
			premul.Pix[di+1] = uint8(float64(img.Pix[si+1])*a + 0.5)
			premul.Pix[di+2] = uint8(float64(img.Pix[si+2])*a + 0.5)
			premul.Pix[di+3] = img.Pix[si+3]
		}
	}

	scaled := image.NewRGBA(image.Rect(0, 0, sw, sh))
	draw.CatmullRom.Scale(scaled, scaled.Bounds(), premul, premul.Bounds(), draw.Src, nil)

	// Unpremultiply into the centred rectangle
	ox, oy := (w-sw)/2, (h-sh)/2
	for y := 0; y < sh; y++ {
		for x := 0; x < sw; x++ {
			si := scaled.PixOffset(x, y)
			di := canvas.PixOffset(ox+x, oy+y)
			a := float64(scaled.Pix[si+3])
			if a > 1 {
				inv := 255.0 / a
				canvas.Pix[di] = clamp8(float64(scaled.Pix[si]) * inv)
				canvas.Pix[di+1] = clamp8(float64(scaled.Pix[si+1]) * inv)
				canvas.Pix[di+2] = clamp8(float64(scaled.Pix[si+2]) * inv)
			}
			canvas.Pix[di+3] = scaled.Pix[si+3]
		}
	}
	return canvas
}

func clamp8(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}
