package scene

import "psx-scene-renderer/internal/raster"

// Draw rasterizes the frame and its HUD into fb.
func (fc *FrameContext) Draw(fb *raster.FrameBuffer) {
	raster.Render(fb, fc.Frame, fc.Memory)
	for _, l := range fc.HUD {
		raster.DrawText(fb, l.X, l.Y, l.Color, l.Text)
	}
}
