package skeleton

import (
	"testing"

	"psx-scene-renderer/internal/gpu"
	"psx-scene-renderer/internal/gte"
	"psx-scene-renderer/internal/mathutil"
	"psx-scene-renderer/internal/meshdata"
	"psx-scene-renderer/internal/render"
	"psx-scene-renderer/internal/skm"
	"psx-scene-renderer/internal/vram"
)

const quarter = 0x4000

func openSkeleton(t *testing.T, b *skm.Builder) *skm.Skeleton {
	t.Helper()
	sk, err := skm.Open(b.Bytes())
	if err != nil {
		t.Fatalf("skm.Open: %v", err)
	}
	return sk
}

func twoLimbs(frames ...skm.FrameSpec) *skm.Builder {
	return &skm.Builder{
		Limbs: []skm.LimbSpec{
			{Child: 1, Sibling: skm.NoLimb},
			{Joint: [3]int16{100, 0, 0}, Child: skm.NoLimb, Sibling: skm.NoLimb},
		},
		Anims: []skm.AnimSpec{{Frames: frames}},
	}
}

func TestForwardKinematicsTwoLimbs(t *testing.T) {
	var f skm.FrameSpec
	f.Root = [3]int16{10, 20, 30}
	f.Rots[0] = [3]int16{0, 0, quarter} // root: 90° about Z
	f.Rots[1] = [3]int16{quarter, 0, 0} // child: 90° about X
	sk := openSkeleton(t, twoLimbs(f))

	frame, err := sk.Frame(0, 0)
	if err != nil {
		t.Fatalf("Frame: %v", err)
	}
	var p Pose
	p.Compute(sk, frame)

	root := p.Bones[0]
	if root.T != (mathutil.Vec3{10, 20, 30}) || root.Rot != mathutil.RotZ(mathutil.FullTurn/4) {
		t.Fatalf("root bone=%+v; want translation (10,20,30) and RotZ(90°)", root)
	}
	// (10,20,30) + RotZ(90°)×(100,0,0) = (10,120,30)
	child := p.Bones[1]
	if want := (mathutil.Vec3{10, 120, 30}); child.T != want {
		t.Fatalf("child T=%v; want %v", child.T, want)
	}
	if want := mathutil.Mat3Mul(root.Rot, mathutil.RotX(mathutil.FullTurn/4)); child.Rot != want {
		t.Fatalf("child Rot=%v; want %v", child.Rot, want)
	}
}

func TestFKChildBeforeSibling(t *testing.T) {
	// 0 -> 1 -> 2, and 3 is 1's sibling: 2 hangs off 1, 3 off the root.
	b := &skm.Builder{
		Limbs: []skm.LimbSpec{
			{Child: 1, Sibling: skm.NoLimb},
			{Joint: [3]int16{0, 50, 0}, Child: 2, Sibling: 3},
			{Joint: [3]int16{0, 50, 0}, Child: skm.NoLimb, Sibling: skm.NoLimb},
			{Joint: [3]int16{0, 0, 70}, Child: skm.NoLimb, Sibling: skm.NoLimb},
		},
		Anims: []skm.AnimSpec{{Frames: []skm.FrameSpec{{}}}},
	}
	sk := openSkeleton(t, b)
	frame, _ := sk.Frame(0, 0)
	var p Pose
	p.Compute(sk, frame)
	want := []mathutil.Vec3{{0, 0, 0}, {0, 50, 0}, {0, 100, 0}, {0, 0, 70}}
	for i, w := range want {
		if p.Bones[i].T != w {
			t.Fatalf("bone %d T=%v; want %v", i, p.Bones[i].T, w)
		}
	}
}

func animated(loop bool, n int) *skm.Builder {
	frames := make([]skm.FrameSpec, n)
	for i := range frames {
		frames[i].Root = [3]int16{int16(i), 0, 0}
		frames[i].Rots[1] = [3]int16{int16(i * 0x100), 0, 0}
	}
	b := twoLimbs(frames...)
	b.Anims[0].Loop = loop
	return b
}

func TestAdvanceLoopAndClamp(t *testing.T) {
	tcs := []struct {
		loop bool
		want int
	}{
		{true, 0},
		{false, 9},
	}
	for _, tc := range tcs {
		var a Animator
		a.Load(openSkeleton(t, animated(tc.loop, 10)))
		a.SetPaused(false)
		for i := 0; i < 11; i++ {
			a.Advance()
		}
		if _, f := a.Frame(); f != tc.want {
			t.Fatalf("loop=%v: frame after 11 advances=%d; want %d", tc.loop, f, tc.want)
		}
	}
}

func TestAnimatorStates(t *testing.T) {
	var a Animator
	if a.State() != Idle {
		t.Fatalf("zero Animator state=%v; want idle", a.State())
	}
	a.Advance()
	if _, err := a.Current(); err == nil {
		t.Fatalf("Current with no skeleton succeeded")
	}

	b := animated(true, 4)
	b.Anims = append(b.Anims, skm.AnimSpec{Frames: make([]skm.FrameSpec, 2)})
	a.Load(openSkeleton(t, b))
	if a.State() != Loaded {
		t.Fatalf("state after Load=%v; want loaded", a.State())
	}
	a.Advance()
	a.Advance()
	if _, f := a.Frame(); f != 0 {
		t.Fatalf("paused animator advanced to frame %d", f)
	}
	a.TogglePause()
	if a.State() != Animating {
		t.Fatalf("state after TogglePause=%v; want animating", a.State())
	}
	a.Advance()
	a.Advance()
	a.Advance()
	if _, f := a.Frame(); f != 2 {
		t.Fatalf("frame after 3 advances=%d; want 2", f)
	}

	a.NextAnim()
	if an, f := a.Frame(); an != 1 || f != 0 {
		t.Fatalf("after NextAnim (%d,%d); want (1,0)", an, f)
	}
	a.NextAnim()
	if an, _ := a.Frame(); an != 0 {
		t.Fatalf("NextAnim did not wrap: anim %d", an)
	}
	a.SetAnim(-1)
	if an, _ := a.Frame(); an != 1 {
		t.Fatalf("SetAnim(-1) selected %d; want 1", an)
	}

	a.Unload()
	if a.State() != Idle {
		t.Fatalf("state after Unload=%v; want idle", a.State())
	}
}

func TestSingleFrameStable(t *testing.T) {
	b := animated(false, 1)
	b.Anims[0].Frames[0].Rots[0] = [3]int16{0x1234, -0x0700, 0x2222}
	sk := openSkeleton(t, b)

	var a Animator
	a.Load(sk)
	var first Pose
	f, _ := a.Current()
	first.Compute(sk, f)

	for i := 0; i < 50; i++ {
		if i == 20 {
			a.TogglePause()
		}
		a.Advance()
		var p Pose
		f, err := a.Current()
		if err != nil {
			t.Fatalf("Current: %v", err)
		}
		p.Compute(sk, f)
		if p != first {
			t.Fatalf("pose drifted at step %d", i)
		}
	}
}

func TestDrawSkipsEmptyLimbs(t *testing.T) {
	b := twoLimbs(skm.FrameSpec{})
	// Clockwise on screen: kept by the skeleton cull.
	b.Limbs[1].Mesh = meshdata.MeshBlock{
		Verts: []meshdata.Pos{{0, 0, 0}, {0, 30, 0}, {30, 0, 0}},
		Tris:  []meshdata.Tri{{0, 1, 2, meshdata.NoTexture}},
	}
	sk := openSkeleton(t, b)
	frame, _ := sk.Frame(0, 0)
	var p Pose
	p.Compute(sk, frame)

	u := gte.New(320, 240, 180)
	em := render.NewEmitter(8)
	fr := gpu.NewBuffers(1024, 8).Begin(0)
	em.Begin(fr, vram.NewAllocator())
	Draw(em, u, &render.Scratch{}, sk, &p, View{Rot: mathutil.Mat3Identity(), T: mathutil.Vec3{0, 0, 600}}, nil)

	if s := em.Stats(); s.Emitted != 1 || s.Rejected() != 0 {
		t.Fatalf("Stats=%+v; want the single limb triangle emitted", s)
	}
	// The limb sits 100 to the right of the root.
	if rot, tr := (View{Rot: mathutil.Mat3Identity(), T: mathutil.Vec3{0, 0, 600}}).LimbMatrix(p.Bones[1]); rot != mathutil.Mat3Identity() || tr != (mathutil.Vec3{100, 0, 600}) {
		t.Fatalf("LimbMatrix=%v,%v; want identity,(100,0,600)", rot, tr)
	}
}

func TestDrawKeepsFirstMaxLimbs(t *testing.T) {
	b := &skm.Builder{Anims: []skm.AnimSpec{{Frames: []skm.FrameSpec{{}}}}}
	for i := 0; i <= skm.MaxLimbs; i++ {
		child := uint8(i + 1)
		if i == skm.MaxLimbs {
			child = skm.NoLimb
		}
		b.Limbs = append(b.Limbs, skm.LimbSpec{
			Joint:   [3]int16{1, 0, 0},
			Child:   child,
			Sibling: skm.NoLimb,
			Mesh: meshdata.MeshBlock{
				Verts: []meshdata.Pos{{0, 0, 0}, {0, 30, 0}, {30, 0, 0}},
				Tris:  []meshdata.Tri{{0, 1, 2, meshdata.NoTexture}},
			},
		})
	}
	sk := openSkeleton(t, b)
	frame, _ := sk.Frame(0, 0)
	var p Pose
	p.Compute(sk, frame)
	if want := (mathutil.Vec3{skm.MaxLimbs - 1, 0, 0}); p.Bones[skm.MaxLimbs-1].T != want {
		t.Fatalf("Bones[%d].T=%v; want %v", skm.MaxLimbs-1, p.Bones[skm.MaxLimbs-1].T, want)
	}

	u := gte.New(320, 240, 180)
	em := render.NewEmitter(64)
	fr := gpu.NewBuffers(1024, 64).Begin(0)
	em.Begin(fr, vram.NewAllocator())
	Draw(em, u, &render.Scratch{}, sk, &p, View{Rot: mathutil.Mat3Identity(), T: mathutil.Vec3{0, 0, 600}}, nil)

	if s := em.Stats(); s.Emitted != skm.MaxLimbs {
		t.Fatalf("Stats=%+v; want %d triangles emitted", s, skm.MaxLimbs)
	}
}
