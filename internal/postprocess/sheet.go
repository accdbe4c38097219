package postprocess

import (
	"image"

	"golang.org/x/image/draw"
)

// Sheet arranges imgs left to right, top to bottom, in cols columns of
// cell x cell squares. Each image is fitted into its cell.
func Sheet(imgs []*image.NRGBA, cols, cell int) *image.NRGBA {
	if cols < 1 {
		cols = 1
	}
	rows := (len(imgs) + cols - 1) / cols
	sheet := image.NewNRGBA(image.Rect(0, 0, cols*cell, rows*cell))
	for i, img := range imgs {
		x, y := i%cols*cell, i/cols*cell
		fitted := Fit(img, cell, cell)
		draw.Copy(sheet, image.Pt(x, y), fitted, fitted.Bounds(), draw.Over, nil)
	}
	return sheet
}
