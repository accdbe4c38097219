package mathutil

// One is 1.0 in 4.12 fixed point.
const One = 4096

// Mat3 is a 3×3 matrix stored row-major in 4.12 fixed point: [r0c0, r0c1, r0c2, r1c0, ...].
// Value type for zero heap allocation.
type Mat3 [9]int32

func Mat3Identity() Mat3 {
	return Mat3{One, 0, 0, 0, One, 0, 0, 0, One}
}

func Mat3Diag(x, y, z int32) Mat3 {
	return Mat3{x, 0, 0, 0, y, 0, 0, 0, z}
}

// Mat3Mul returns a × b. Each product term is shifted back to 4.12 before summing,
// matching the coprocessor's soft-math multiply.
func Mat3Mul(a, b Mat3) Mat3 {
	var m Mat3
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			m[r*3+c] = (a[r*3+0]*b[0*3+c] + a[r*3+1]*b[1*3+c] + a[r*3+2]*b[2*3+c]) >> 12
		}
	}
	return m
}

// MulVec3 returns (M × v) >> 12. v is in model units, the result too.
func (m Mat3) MulVec3(v Vec3) Vec3 {
	return Vec3{m.dotRow(0, v), m.dotRow(1, v), m.dotRow(2, v)}
}

func (m Mat3) dotRow(r int, v Vec3) int32 {
	sum := int64(m[r*3])*int64(v[0]) + int64(m[r*3+1])*int64(v[1]) + int64(m[r*3+2])*int64(v[2])
	return int32(sum >> 12)
}

// Row returns row r as a vector.
func (m Mat3) Row(r int) Vec3 {
	return Vec3{m[r*3], m[r*3+1], m[r*3+2]}
}

// NegateRow flips the sign of row r.
func (m Mat3) NegateRow(r int) Mat3 {
	m[r*3] = -m[r*3]
	m[r*3+1] = -m[r*3+1]
	m[r*3+2] = -m[r*3+2]
	return m
}

func (m Mat3) Transpose() Mat3 {
	return Mat3{
		m[0], m[3], m[6],
		m[1], m[4], m[7],
		m[2], m[5], m[8],
	}
}
