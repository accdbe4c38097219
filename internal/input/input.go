// Package input models the controller as a set of buttons polled once per
// frame, with press edges derived from consecutive samples.
package input

type Button uint8

const (
	Up Button = iota
	Down
	Left
	Right
	Cross
	Circle
	Triangle
	Square
	L1
	R1
	Start
	Select

	NumButtons
)

var buttonNames = [NumButtons]string{
	"up", "down", "left", "right",
	"cross", "circle", "triangle", "square",
	"l1", "r1", "start", "select",
}

func (b Button) String() string {
	if b < NumButtons {
		return buttonNames[b]
	}
	return "unknown"
}

// Pad reports the current level of each button.
type Pad interface {
	Pressed(Button) bool
}

// State is a fixed set of held buttons. It implements Pad.
type State uint16

func (s State) Pressed(b Button) bool {
	return s&(1<<b) != 0
}

// With returns s with b held.
func (s State) With(b ...Button) State {
	for _, x := range b {
		s |= 1 << x
	}
	return s
}

// Edges keeps the previous sample so that a held button reports
// JustPressed on one frame only.
type Edges struct {
	cur, prev State
}

// Sample reads every button of pad. Call it once per frame before querying.
func (e *Edges) Sample(pad Pad) {
	e.prev = e.cur
	e.cur = 0
	if pad == nil {
		return
	}
	for b := Button(0); b < NumButtons; b++ {
		if pad.Pressed(b) {
			e.cur |= 1 << b
		}
	}
}

func (e *Edges) Held(b Button) bool {
	return e.cur.Pressed(b)
}

// JustPressed reports a button held now but not on the previous sample.
func (e *Edges) JustPressed(b Button) bool {
	return e.cur.Pressed(b) && !e.prev.Pressed(b)
}
