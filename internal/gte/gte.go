// Package gte models the geometry transformation coprocessor: a rotation
// and translation followed by a perspective divide, three vertices at a time.
package gte

import "psx-scene-renderer/internal/mathutil"

const (
	sxyMin = -1024
	sxyMax = 1023
	szMax  = 0xFFFF
	qMax   = 0x1FFFF
)

// Unit holds the coprocessor registers that affect RTPS/RTPT. Rotation and
// Translation must be set before transforming vertices in their scope.
type Unit struct {
	Rotation    mathutil.Mat3
	Translation mathutil.Vec3
	OFX, OFY    int32 // screen offset, 16.16
	H           int32 // projection plane distance

	sx, sy [3]int32
	sz     [3]uint16
}

// New returns a unit projecting onto a w x h screen centred at (w/2, h/2).
func New(w, h int, proj int32) *Unit {
	return &Unit{
		Rotation: mathutil.Mat3Identity(),
		OFX:      int32(w/2) << 16,
		OFY:      int32(h/2) << 16,
		H:        proj,
	}
}

// SetMatrix loads the rotation and translation registers.
func (u *Unit) SetMatrix(r mathutil.Mat3, t mathutil.Vec3) {
	u.Rotation = r
	u.Translation = t
}

func (u *Unit) project(i int, v mathutil.Vec3) {
	mac := u.Rotation.MulVec3(v).Add(u.Translation)

	sz := clamp(mac[2], 0, szMax)
	var q int64 = qMax
	if sz > u.H/2 {
		q = min((int64(u.H)<<16+int64(sz)/2)/int64(sz), qMax)
	}
	u.sx[i] = int32(clamp64((int64(u.OFX)+int64(mac[0])*q)>>16, sxyMin, sxyMax))
	u.sy[i] = int32(clamp64((int64(u.OFY)+int64(mac[1])*q)>>16, sxyMin, sxyMax))
	u.sz[i] = uint16(sz)
}

// RTPS transforms a single vertex into result slot 2.
func (u *Unit) RTPS(v mathutil.Vec3) {
	u.project(2, v)
}

// RTPT transforms three vertices into result slots 0..2.
func (u *Unit) RTPT(v0, v1, v2 mathutil.Vec3) {
	u.project(0, v0)
	u.project(1, v1)
	u.project(2, v2)
}

// SXY returns the screen coordinates in result slot i.
func (u *Unit) SXY(i int) (x, y int16) {
	return int16(u.sx[i]), int16(u.sy[i])
}

// SZ returns the depth in result slot i; 0 means on or behind the eye.
func (u *Unit) SZ(i int) uint16 {
	return u.sz[i]
}

func clamp(v, lo, hi int32) int32 {
	return max(lo, min(v, hi))
}

func clamp64(v, lo, hi int64) int64 {
	return max(lo, min(v, hi))
}
