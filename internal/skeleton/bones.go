// Package skeleton poses SKM skeletons: animation playback, forward
// kinematics over the limb tree and per-limb drawing.
package skeleton

import (
	"psx-scene-renderer/internal/mathutil"
	"psx-scene-renderer/internal/skm"
)

// Bone is a limb's world transform relative to the skeleton origin.
type Bone struct {
	Rot mathutil.Mat3
	T   mathutil.Vec3
}

// Pose is the bone cache of one frame.
type Pose struct {
	Bones [skm.MaxLimbs]Bone
}

// Compute fills the cache from frame f. Limbs are visited parent before child
// (depth-first, child before sibling). A limb's translation is its parent's
// plus the parent's world rotation applied to the limb's joint offset.
func (p *Pose) Compute(sk *skm.Skeleton, f skm.Frame) {
	tree := sk.Tree()
	for _, l := range tree.Order {
		rz, ry, rx := f.LimbRot(int(l))
		local := mathutil.EulerZYX(rz, ry, rx)

		parent, ok := tree.Nodes[l].Parent.Get()
		if !ok {
			x, y, z := f.RootPos()
			p.Bones[l] = Bone{Rot: local, T: mathutil.Vec3{int32(x), int32(y), int32(z)}}
			continue
		}
		pb := &p.Bones[parent]
		p.Bones[l] = Bone{
			Rot: mathutil.Mat3Mul(pb.Rot, local),
			T:   pb.T.Add(pb.Rot.MulVec3(sk.Limb(int(l)).Joint)),
		}
	}
}
