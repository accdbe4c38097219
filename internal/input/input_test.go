package input

import "testing"

func TestEdges(t *testing.T) {
	var e Edges
	steps := []struct {
		pad  State
		held bool
		edge bool
	}{
		{0, false, false},
		{State(0).With(Start), true, true},
		{State(0).With(Start), true, false},
		{State(0).With(Start, Cross), true, false},
		{0, false, false},
		{State(0).With(Start), true, true},
	}
	for i, s := range steps {
		e.Sample(s.pad)
		if got := e.Held(Start); got != s.held {
			t.Fatalf("step %d: Held(Start)=%v; want %v", i, got, s.held)
		}
		if got := e.JustPressed(Start); got != s.edge {
			t.Fatalf("step %d: JustPressed(Start)=%v; want %v", i, got, s.edge)
		}
	}
}

func TestNilPadReleasesAll(t *testing.T) {
	var e Edges
	e.Sample(State(0).With(L1))
	e.Sample(nil)
	if e.Held(L1) || e.JustPressed(L1) {
		t.Fatalf("nil pad left L1 held")
	}
}

func TestButtonString(t *testing.T) {
	tcs := []struct {
		b    Button
		want string
	}{
		{Up, "up"}, {Select, "select"}, {Triangle, "triangle"}, {NumButtons, "unknown"},
	}
	for _, tc := range tcs {
		if got := tc.b.String(); got != tc.want {
			t.Fatalf("Button(%d).String()=%q; want %q", tc.b, got, tc.want)
		}
	}
}
