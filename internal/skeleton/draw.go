package skeleton

import (
	"psx-scene-renderer/internal/gte"
	"psx-scene-renderer/internal/mathutil"
	"psx-scene-renderer/internal/render"
	"psx-scene-renderer/internal/skm"
)

// View is the camera transform the skeleton is drawn with, plus the
// skeleton's world position.
type View struct {
	Rot mathutil.Mat3
	T   mathutil.Vec3
	Pos mathutil.Vec3
}

// LimbMatrix returns the rotation and translation that take limb-local
// vertices of bone b to view space.
func (v View) LimbMatrix(b Bone) (mathutil.Mat3, mathutil.Vec3) {
	rot := mathutil.Mat3Mul(v.Rot, b.Rot)
	t := v.Rot.MulVec3(b.T.Add(v.Pos)).Add(v.T)
	return rot, t
}

// Draw loads each posed limb's view matrix into u and emits its triangles.
// Limbs without geometry are skipped. slots maps the skeleton's texture ids
// to allocator slots.
func Draw(em *render.Emitter, u *gte.Unit, s *render.Scratch, sk *skm.Skeleton, pose *Pose, v View, slots []int) {
	for _, l := range sk.Tree().Order {
		m := sk.LimbMesh(int(l))
		if m.NumVerts == 0 || m.NumTris == 0 {
			continue
		}
		u.SetMatrix(v.LimbMatrix(pose.Bones[l]))
		em.EmitMesh(render.Transform(u, m, s), m, render.CullSkeleton, slots)
	}
}
