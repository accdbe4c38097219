package skm

import (
	"encoding/binary"
	"fmt"

	"psx-scene-renderer/internal/meshdata"
)

func (s *Skeleton) parseAnims() error {
	h := s.header
	r := meshdata.NewReader(s.view, int(h.AnimStart))
	s.anims = make([]AnimDesc, h.NumAnims)
	for i := range s.anims {
		s.anims[i].FrameCount = r.U16()
		s.anims[i].Loop = r.U8()&1 != 0
		r.Skip(1)
		s.anims[i].DataOffset = r.U32()
	}
	if r.Err != nil {
		return fmt.Errorf("skm: animation table: %w", meshdata.ErrTruncated)
	}
	frames, err := s.view.Tail(int(h.AnimStart) + len(s.anims)*AnimDescSize)
	if err != nil {
		return fmt.Errorf("skm: frame data: %w", err)
	}
	s.frames = frames
	for i, a := range s.anims {
		if a.FrameCount == 0 {
			return fmt.Errorf("skm: animation %d has no frames", i)
		}
		if _, err := frames.Sub(int(a.DataOffset), int(a.FrameCount)*FrameSize); err != nil {
			return fmt.Errorf("skm: animation %d: %w", i, meshdata.ErrTruncated)
		}
	}
	return nil
}

func (s *Skeleton) NumAnims() int {
	return len(s.anims)
}

func (s *Skeleton) Anim(i int) AnimDesc {
	return s.anims[i]
}

// Frame returns frame f of animation anim, read in place from the blob.
func (s *Skeleton) Frame(anim, f int) (Frame, error) {
	if anim < 0 || anim >= len(s.anims) {
		return Frame{}, fmt.Errorf("skm: animation %d out of %d", anim, len(s.anims))
	}
	a := s.anims[anim]
	if f < 0 || f >= int(a.FrameCount) {
		return Frame{}, fmt.Errorf("skm: frame %d out of %d", f, a.FrameCount)
	}
	v, err := s.frames.Sub(int(a.DataOffset)+f*FrameSize, FrameSize)
	if err != nil {
		return Frame{}, err
	}
	return Frame{b: v.Bytes()}, nil
}

// Frame is one FrameSize record: root x,y,z then MaxLimbs (x,y,z) binary-angle
// triples in limb order, then the auxiliary field.
type Frame struct {
	b []byte
}

func (f Frame) s16(i int) int16 {
	return int16(binary.LittleEndian.Uint16(f.b[i*2:]))
}

// RootPos returns the root translation.
func (f Frame) RootPos() (x, y, z int16) {
	return f.s16(0), f.s16(1), f.s16(2)
}

// LimbRot returns the limb's Euler angles. The triple is stored x, y, z.
func (f Frame) LimbRot(limb int) (rz, ry, rx int16) {
	base := 3 + limb*3
	return f.s16(base + 2), f.s16(base + 1), f.s16(base)
}

// Aux returns the auxiliary (face expression) field.
func (f Frame) Aux() uint16 {
	return binary.LittleEndian.Uint16(f.b[FrameSize-2:])
}
