// Package camera implements the orbit camera that circles the skeleton.
package camera

import "psx-scene-renderer/internal/mathutil"

const (
	TargetHeight = 40 // look-at point above the skeleton root
	DistMin      = 20
	DistMax      = 500
	ZoomStep     = 10
	startDist    = 200
)

var (
	PitchMin   = mathutil.AngleFromPi(0.02)
	PitchMax   = mathutil.AngleFromPi(0.45)
	YawStep    = mathutil.AngleFromPi(0.02)
	PitchStep  = mathutil.AngleFromPi(0.01)
	startPitch = mathutil.AngleFromPi(0.1)
)

// Orbit looks at a point from Dist units away, turned Yaw around Y and
// tilted Pitch around X.
type Orbit struct {
	Yaw   mathutil.Angle
	Pitch mathutil.Angle
	Dist  int32
}

// NewOrbit returns a camera in its spawn position.
func NewOrbit() *Orbit {
	o := &Orbit{}
	o.Reset()
	return o
}

// Reset restores the spawn yaw, pitch and distance.
func (o *Orbit) Reset() {
	o.Yaw = 0
	o.Pitch = startPitch
	o.Dist = startDist
}

// Turn adds yaw and pitch steps (each -1, 0 or 1) and applies the clamps.
func (o *Orbit) Turn(yaw, pitch int) {
	o.Yaw = (o.Yaw + mathutil.Angle(yaw)*YawStep).Wrap()
	o.Pitch = max(PitchMin, min(o.Pitch+mathutil.Angle(pitch)*PitchStep, PitchMax))
}

// Zoom moves dir (-1 in, 1 out) zoom steps.
func (o *Orbit) Zoom(dir int) {
	o.Dist = max(DistMin, min(o.Dist+int32(dir)*ZoomStep, DistMax))
}

// Position returns the eye position for a skeleton at pos.
func (o *Orbit) Position(pos mathutil.Vec3) mathutil.Vec3 {
	fwd := o.rotation().Row(2)
	target := pos.Add(mathutil.Vec3{0, TargetHeight, 0})
	for i := range target {
		target[i] -= fwd[i] * o.Dist >> 12
	}
	return target
}

func (o *Orbit) rotation() mathutil.Mat3 {
	return mathutil.Mat3Mul(mathutil.RotY(o.Yaw), mathutil.RotX(o.Pitch))
}

// View returns the world-to-view rotation and translation for a skeleton
// at pos. World Y is up and screen Y is down, so the Y row is negated.
func (o *Orbit) View(pos mathutil.Vec3) (mathutil.Mat3, mathutil.Vec3) {
	rot := o.rotation().NegateRow(1)
	return rot, rot.MulVec3(o.Position(pos)).Neg()
}
