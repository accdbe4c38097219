package scene

import (
	"fmt"
	"image/color"

	"psx-scene-renderer/internal/config"
	"psx-scene-renderer/internal/gpu"
	"psx-scene-renderer/internal/input"
	"psx-scene-renderer/internal/render"
	"psx-scene-renderer/internal/skeleton"
	"psx-scene-renderer/internal/vram"
)

var (
	background = gpu.Color{R: 0x08, G: 0x06, B: 0x12}

	white = color.NRGBA{255, 255, 255, 255}
	cyan  = color.NRGBA{100, 255, 255, 255}
	gray  = color.NRGBA{160, 160, 160, 255}
)

// HUDLine is one string of overlay text in screen pixels.
type HUDLine struct {
	X, Y  int
	Color color.NRGBA
	Text  string
}

// FrameContext is everything one tick produced. It stays valid until the
// frame of the same parity is built again, two ticks later.
type FrameContext struct {
	Parity int
	Frame  *gpu.Frame
	Memory *vram.Memory
	HUD    []HUDLine
	Stats  render.Stats
	Debug  bool
}

func (fc *FrameContext) print(x, y int, c color.NRGBA, format string, args ...any) {
	fc.HUD = append(fc.HUD, HUDLine{X: x, Y: y, Color: c, Text: fmt.Sprintf(format, args...)})
}

// Frame applies pad input and builds the next frame.
func (s *Scene) Frame(pad input.Pad) *FrameContext {
	if s.needUpload {
		s.uploadTextures()
	}

	s.edges.Sample(pad)
	if s.edges.JustPressed(input.Select) && !s.loading {
		s.LoadRoom(s.roomIdx + 1)
	}
	if s.edges.JustPressed(input.Start) {
		s.debugGrid = !s.debugGrid
	}

	fc := s.begin()
	if s.debugGrid {
		s.drawDebugGrid(fc)
		return s.finish(fc)
	}

	if s.edges.JustPressed(input.Triangle) {
		s.skelVisible = !s.skelVisible
	}
	if s.skelVisible && s.skel != nil {
		if s.edges.JustPressed(input.Circle) {
			s.anim.NextAnim()
		}
		if s.edges.JustPressed(input.Cross) {
			s.anim.TogglePause()
		}
	}
	s.steer()

	rot, t := s.cam.View(s.skelPos)
	s.unit.SetMatrix(rot, t)
	fc.Frame.Background = background
	s.emitter.Begin(fc.Frame, s.alloc)

	if !s.loading && s.room != nil {
		s.emitter.DrawRoom(s.unit, &s.scratch, s.room, s.roomSlots)
	}
	if s.skelVisible && s.skel != nil {
		s.anim.Advance()
		if f, err := s.anim.Current(); err == nil {
			s.pose.Compute(s.skel, f)
			v := skeleton.View{Rot: rot, T: t, Pos: s.skelPos}
			skeleton.Draw(s.emitter, s.unit, &s.scratch, s.skel, &s.pose, v, s.skelSlots)
		}
	}
	fc.Stats = s.emitter.Stats()

	s.hud(fc)
	return s.finish(fc)
}

func (s *Scene) begin() *FrameContext {
	return &FrameContext{
		Parity: s.parity,
		Frame:  s.buffers.Begin(s.parity),
		Memory: s.mem,
	}
}

func (s *Scene) finish(fc *FrameContext) *FrameContext {
	s.parity ^= 1
	return fc
}

// steer applies the held d-pad and shoulder buttons to the camera.
func (s *Scene) steer() {
	var yaw, pitch, zoom int
	if s.edges.Held(input.Left) {
		yaw--
	}
	if s.edges.Held(input.Right) {
		yaw++
	}
	if s.edges.Held(input.Up) {
		pitch++
	}
	if s.edges.Held(input.Down) {
		pitch--
	}
	if s.edges.Held(input.L1) {
		zoom--
	}
	if s.edges.Held(input.R1) {
		zoom++
	}
	s.cam.Turn(yaw, pitch)
	if zoom != 0 {
		s.cam.Zoom(zoom)
	}
}

func (s *Scene) hud(fc *FrameContext) {
	n := len(s.cfg.Rooms)
	var rc config.Room
	if n > 0 {
		rc = s.cfg.Rooms[s.roomIdx]
	}
	switch {
	case s.loading:
		fc.print(8, 8, white, "Loading %s...", rc.Name)
	case s.room != nil:
		h := s.room.Header()
		fc.print(8, 8, white, "[%d/%d] %s  %dv %dt", s.roomIdx+1, n, rc.Name, h.NumVerts, h.NumTris)
	default:
		fc.print(8, 8, white, "No room data (buf=%d)", len(s.roomBuf))
	}

	if s.skelVisible && s.skel != nil {
		anim, frame := s.anim.Frame()
		count := 0
		if s.skel.NumAnims() > 0 {
			count = int(s.skel.Anim(anim).FrameCount)
		}
		state := ">"
		if s.anim.Paused() {
			state = "||"
		}
		fc.print(8, s.cfg.ScreenH-16, cyan, "SKEL anim:%d/%d f:%d/%d %s",
			anim+1, s.skel.NumAnims(), frame+1, count, state)
	}
}
