package mathutil

// RotX returns a 4.12 rotation matrix around the X axis.
func RotX(a Angle) Mat3 {
	c, s := Cos(a), Sin(a)
	return Mat3{
		One, 0, 0,
		0, c, -s,
		0, s, c,
	}
}

// RotY returns a 4.12 rotation matrix around the Y axis.
func RotY(a Angle) Mat3 {
	c, s := Cos(a), Sin(a)
	return Mat3{
		c, 0, s,
		0, One, 0,
		-s, 0, c,
	}
}

// RotZ returns a 4.12 rotation matrix around the Z axis.
func RotZ(a Angle) Mat3 {
	c, s := Cos(a), Sin(a)
	return Mat3{
		c, -s, 0,
		s, c, 0,
		0, 0, One,
	}
}

// EulerZYX composes Rz × Ry × Rx from binary angles (0x10000 per turn),
// the order the animation authoring tool bakes its limb rotations in.
func EulerZYX(rz, ry, rx int16) Mat3 {
	zy := Mat3Mul(RotZ(AngleFromBinary(rz)), RotY(AngleFromBinary(ry)))
	return Mat3Mul(zy, RotX(AngleFromBinary(rx)))
}
