//go:build cgo

// Package hostwin shows the scene in a desktop window and feeds it the
// keyboard as a pad.
package hostwin

import (
	"psx-scene-renderer/internal/input"
	"psx-scene-renderer/internal/profiler"
	"psx-scene-renderer/internal/raster"
	"psx-scene-renderer/internal/scene"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Options configures the window. Width and Height are the framebuffer
// size; Scale is window pixels per framebuffer pixel. Poll delivers loader
// completions before each frame. Profiler may be nil.
type Options struct {
	Title    string
	Width    int
	Height   int
	Scale    int
	Poll     func() int
	Profiler *profiler.Profiler
}

// Run opens the window and drives one scene frame per tick at 60 TPS. It
// blocks until the window closes or Escape is pressed.
func Run(sc *scene.Scene, opts Options) error {
	g := &game{
		scene: sc,
		opts:  opts,
		pad:   Keyboard{},
		fb:    raster.NewFrameBuffer(opts.Width, opts.Height),
	}
	ebiten.SetWindowTitle(opts.Title)
	ebiten.SetWindowSize(opts.Width*max(opts.Scale, 1), opts.Height*max(opts.Scale, 1))
	ebiten.SetTPS(60)
	err := ebiten.RunGame(g)
	if err == ebiten.Termination {
		return nil
	}
	return err
}

type game struct {
	scene *scene.Scene
	opts  Options
	pad   input.Pad
	fb    *raster.FrameBuffer
	img   *ebiten.Image
}

func (g *game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if g.opts.Poll != nil {
		g.opts.Poll()
	}
	fc := g.scene.Frame(g.pad)
	fc.Draw(g.fb)
	if g.opts.Profiler != nil {
		g.opts.Profiler.Tick(fc.Stats)
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	if g.img == nil {
		g.img = ebiten.NewImage(g.fb.Width, g.fb.Height)
	}
	g.img.WritePixels(g.fb.Color)
	screen.DrawImage(g.img, nil)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.fb.Width, g.fb.Height
}
