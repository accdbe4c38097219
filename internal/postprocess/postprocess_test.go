package postprocess

import (
	"image"
	"image/color"
	"testing"
)

func solid(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func near(a, b color.NRGBA) bool {
	d := func(x, y uint8) bool { return int(x)-int(y) <= 2 && int(y)-int(x) <= 2 }
	return d(a.R, b.R) && d(a.G, b.G) && d(a.B, b.B) && d(a.A, b.A)
}

func TestUpscale(t *testing.T) {
	img := solid(4, 2, color.NRGBA{10, 20, 30, 255})
	img.SetNRGBA(3, 1, color.NRGBA{255, 0, 0, 255})

	up := Upscale(img, 3)
	if b := up.Bounds(); b.Dx() != 12 || b.Dy() != 6 {
		t.Fatalf("Upscale bounds=%v; want 12x6", b)
	}
	tcs := []struct {
		x, y int
		want color.NRGBA
	}{
		{0, 0, color.NRGBA{10, 20, 30, 255}},
		{9, 3, color.NRGBA{255, 0, 0, 255}},
		{11, 5, color.NRGBA{255, 0, 0, 255}},
		{8, 5, color.NRGBA{10, 20, 30, 255}},
	}
	for _, tc := range tcs {
		if got := up.NRGBAAt(tc.x, tc.y); got != tc.want {
			t.Fatalf("Upscale pixel(%d,%d)=%v; want %v", tc.x, tc.y, got, tc.want)
		}
	}
	if b := Upscale(img, 0).Bounds(); b.Dx() != 4 {
		t.Fatalf("Upscale(0) width=%d; want 4", b.Dx())
	}
}

func TestFitKeepsAspect(t *testing.T) {
	img := solid(64, 32, color.NRGBA{200, 100, 50, 255})
	out := Fit(img, 32, 32)
	if b := out.Bounds(); b.Dx() != 32 || b.Dy() != 32 {
		t.Fatalf("Fit bounds=%v; want 32x32", b)
	}
	// 32x16 centred: rows 8..23 filled, rows 0..7 transparent.
	if a := out.NRGBAAt(16, 2).A; a != 0 {
		t.Fatalf("letterbox alpha=%d; want 0", a)
	}
	if got := out.NRGBAAt(16, 16); !near(got, color.NRGBA{200, 100, 50, 255}) {
		t.Fatalf("centre pixel=%v; want source color", got)
	}
}

func TestSheet(t *testing.T) {
	imgs := []*image.NRGBA{
		solid(16, 16, color.NRGBA{255, 0, 0, 255}),
		solid(8, 8, color.NRGBA{0, 255, 0, 255}),
		solid(16, 16, color.NRGBA{0, 0, 255, 255}),
	}
	s := Sheet(imgs, 2, 16)
	if b := s.Bounds(); b.Dx() != 32 || b.Dy() != 32 {
		t.Fatalf("Sheet bounds=%v; want 32x32", b)
	}
	tcs := []struct {
		x, y int
		want color.NRGBA
	}{
		{8, 8, color.NRGBA{255, 0, 0, 255}},
		{24, 8, color.NRGBA{0, 255, 0, 255}},
		{8, 24, color.NRGBA{0, 0, 255, 255}},
		{24, 24, color.NRGBA{}},
	}
	for _, tc := range tcs {
		if got := s.NRGBAAt(tc.x, tc.y); !near(got, tc.want) {
			t.Fatalf("Sheet pixel(%d,%d)=%v; want %v", tc.x, tc.y, got, tc.want)
		}
	}
}
