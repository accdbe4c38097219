//go:build !cgo

// Package hostwin shows the scene in a desktop window and feeds it the
// keyboard as a pad.
package hostwin

import (
	"errors"

	"psx-scene-renderer/internal/profiler"
	"psx-scene-renderer/internal/scene"
)

type Options struct {
	Title    string
	Width    int
	Height   int
	Scale    int
	Poll     func() int
	Profiler *profiler.Profiler
}

func Run(_ *scene.Scene, _ Options) error {
	return errors.New("hostwin: window mode requires cgo (build/run with CGO_ENABLED=1)")
}
