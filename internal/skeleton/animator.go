package skeleton

import (
	"fmt"

	"psx-scene-renderer/internal/skm"
)

type State uint8

const (
	Idle      State = iota // no skeleton
	Loaded                 // skeleton present, playback paused
	Animating              // skeleton present, frames advancing
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Loaded:
		return "loaded"
	case Animating:
		return "animating"
	}
	return fmt.Sprintf("State(%d)", uint8(s))
}

// Animator steps through one animation of a skeleton a frame at a time.
// After Load or SetAnim the first Advance holds frame 0, so every frame of
// the animation is shown.
type Animator struct {
	sk     *skm.Skeleton
	anim   int
	frame  int
	paused bool
	primed bool
}

// Load attaches sk with animation 0 selected and playback paused.
func (a *Animator) Load(sk *skm.Skeleton) {
	*a = Animator{sk: sk, paused: true, primed: true}
}

func (a *Animator) Unload() {
	*a = Animator{}
}

func (a *Animator) Skeleton() *skm.Skeleton {
	return a.sk
}

func (a *Animator) State() State {
	switch {
	case a.sk == nil:
		return Idle
	case a.paused:
		return Loaded
	}
	return Animating
}

// SetAnim selects animation i modulo the animation count and rewinds.
func (a *Animator) SetAnim(i int) {
	if a.sk == nil || a.sk.NumAnims() == 0 {
		return
	}
	n := a.sk.NumAnims()
	a.anim = (i%n + n) % n
	a.frame = 0
	a.primed = true
}

// NextAnim selects the following animation.
func (a *Animator) NextAnim() {
	a.SetAnim(a.anim + 1)
}

func (a *Animator) SetPaused(p bool) {
	a.paused = p
}

func (a *Animator) TogglePause() {
	a.paused = !a.paused
}

func (a *Animator) Paused() bool {
	return a.paused
}

// Advance moves one frame forward unless paused. Past the last frame a
// looping animation wraps to 0 and any other clamps to its last frame.
// The first call after Load or SetAnim only shows frame 0 and does not
// move, so N advances from a fresh selection land on frame N-1 (mod count).
func (a *Animator) Advance() {
	if a.State() != Animating || a.sk.NumAnims() == 0 {
		return
	}
	if a.primed {
		a.primed = false
		return
	}
	d := a.sk.Anim(a.anim)
	a.frame++
	if a.frame >= int(d.FrameCount) {
		if d.Loop {
			a.frame = 0
		} else {
			a.frame = int(d.FrameCount) - 1
		}
	}
}

// Frame returns the selected animation and frame indices.
func (a *Animator) Frame() (anim, frame int) {
	return a.anim, a.frame
}

// Current reads the selected frame from the skeleton.
func (a *Animator) Current() (skm.Frame, error) {
	if a.sk == nil {
		return skm.Frame{}, fmt.Errorf("skeleton: no skeleton loaded")
	}
	return a.sk.Frame(a.anim, a.frame)
}
