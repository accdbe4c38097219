//go:build cgo

package hostwin

import (
	"psx-scene-renderer/internal/input"

	"github.com/hajimehoshi/ebiten/v2"
)

// keymap binds every pad button to one or more keys.
var keymap = [input.NumButtons][]ebiten.Key{
	input.Up:       {ebiten.KeyArrowUp, ebiten.KeyW},
	input.Down:     {ebiten.KeyArrowDown, ebiten.KeyS},
	input.Left:     {ebiten.KeyArrowLeft, ebiten.KeyA},
	input.Right:    {ebiten.KeyArrowRight, ebiten.KeyD},
	input.Cross:    {ebiten.KeyX, ebiten.KeySpace},
	input.Circle:   {ebiten.KeyC},
	input.Triangle: {ebiten.KeyV},
	input.Square:   {ebiten.KeyZ},
	input.L1:       {ebiten.KeyQ, ebiten.KeyPageUp},
	input.R1:       {ebiten.KeyE, ebiten.KeyPageDown},
	input.Start:    {ebiten.KeyEnter},
	input.Select:   {ebiten.KeyTab, ebiten.KeyBackspace},
}

// Keyboard reads the pad from the host keyboard. It must be polled from
// the ebiten update loop.
type Keyboard struct{}

func (Keyboard) Pressed(b input.Button) bool {
	if b >= input.NumButtons {
		return false
	}
	for _, k := range keymap[b] {
		if ebiten.IsKeyPressed(k) {
			return true
		}
	}
	return false
}
