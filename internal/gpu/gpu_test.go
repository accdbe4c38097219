package gpu

import "testing"

func TestWalkFarFirst(t *testing.T) {
	b := NewBuffers(8, 8)
	f := b.Begin(0)
	order := []int{3, 1, 6, 3, 7}
	for i, bucket := range order {
		p := f.New(GouraudTriangle)
		p.Points[0].X = int16(i)
		f.Insert(p, bucket)
	}

	var got []int16
	f.Walk(func(p *Prim) { got = append(got, p.Points[0].X) })
	// Buckets 7, 6, 3 (newest first), 1.
	want := []int16{4, 2, 3, 0, 1}
	if len(got) != len(want) {
		t.Fatalf("Walk visited %v; want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Walk visited %v; want %v", got, want)
		}
	}
}

func TestPoolCapacity(t *testing.T) {
	f := NewBuffers(4, 2).Begin(1)
	if f.New(TexturedQuad) == nil || f.New(TexturedQuad) == nil {
		t.Fatalf("New failed below capacity")
	}
	if p := f.New(TexturedQuad); p != nil {
		t.Fatalf("New past capacity returned a primitive")
	}
	if f.Len() != 2 || f.Cap() != 2 {
		t.Fatalf("Len/Cap = %d/%d; want 2/2", f.Len(), f.Cap())
	}
}

func TestBuffersIndependent(t *testing.T) {
	b := NewBuffers(4, 4)
	f0 := b.Begin(0)
	f0.Insert(f0.New(GouraudTriangle), 2)
	f1 := b.Begin(1)
	if f1 == f0 {
		t.Fatalf("both parities returned the same frame")
	}
	n := 0
	f1.Walk(func(*Prim) { n++ })
	if n != 0 {
		t.Fatalf("fresh frame walked %d primitives", n)
	}
	n = 0
	f0.Walk(func(*Prim) { n++ })
	if n != 1 {
		t.Fatalf("frame 0 lost its primitive after Begin(1): walked %d", n)
	}
	if b.Begin(0).Len() != 0 {
		t.Fatalf("Begin did not reset the pool")
	}
}

func TestInsertOutOfRangePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("Insert at bucket 4 of 4 did not panic")
		}
	}()
	f := NewBuffers(4, 1).Begin(0)
	f.Insert(f.New(GouraudTriangle), 4)
}
