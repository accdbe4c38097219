package skm

import "psx-scene-renderer/internal/mathutil"

// Magic identifies a version 1 skeletal mesh blob.
var Magic = [4]byte{'S', 'K', 'M', 0x01}

const (
	HeaderSize   = 20
	LimbDescSize = 12
	AnimDescSize = 8

	// MaxLimbs is the number of limb rotations stored per animation frame.
	MaxLimbs = 21
	// FrameSize is the size of one frame record: root translation, MaxLimbs
	// rotation triples and a 2-byte auxiliary field.
	FrameSize = 6 + MaxLimbs*6 + 2

	// none is the on-disk sentinel for an absent child/sibling.
	none = 0xFF
)

// Header is the fixed-size blob header.
type Header struct {
	NumLimbs    uint8
	NumAnims    uint8
	NumTextures uint16
	MeshStart   uint32
	AnimStart   uint32
	TexStart    uint32
}

// LimbDesc is the decoded limb descriptor.
type LimbDesc struct {
	Joint    mathutil.Vec3 // parent-relative translation
	NumVerts uint16
	NumTris  uint16
}

// AnimDesc describes one animation clip.
type AnimDesc struct {
	FrameCount uint16
	Loop       bool
	DataOffset uint32 // from the frame data base (after the AnimDesc array)
}
