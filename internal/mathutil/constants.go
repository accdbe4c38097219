package mathutil

import "math"

// Angle is a fixed-point angle with FullTurn units per revolution.
type Angle int32

const (
	FullTurn Angle = 2048
	HalfTurn Angle = FullTurn / 2
)

// sinTable holds one full turn of sine values in 4.12.
var sinTable [FullTurn]int32

func init() {
	for i := range sinTable {
		sinTable[i] = int32(math.Round(math.Sin(float64(i) * 2 * math.Pi / float64(FullTurn)) * One))
	}
}

// AngleFromBinary converts a 16-bit binary angle (0x10000 per turn) to an Angle.
func AngleFromBinary(raw int16) Angle {
	return Angle(int32(raw) / 32)
}

// AngleFromPi converts a multiple of π (0.5 = quarter turn) to an Angle.
func AngleFromPi(f float64) Angle {
	return Angle(math.Round(f * float64(HalfTurn)))
}

// Wrap returns a reduced to [0, FullTurn).
func (a Angle) Wrap() Angle {
	a %= FullTurn
	if a < 0 {
		a += FullTurn
	}
	return a
}

// Sin returns sin(a) in 4.12 from the shared lookup table.
func Sin(a Angle) int32 {
	return sinTable[a.Wrap()]
}

// Cos returns cos(a) in 4.12.
func Cos(a Angle) int32 {
	return sinTable[(a + FullTurn/4).Wrap()]
}
