package skm

import (
	"errors"
	"fmt"

	"psx-scene-renderer/internal/mathutil"
	"psx-scene-renderer/internal/meshdata"
)

// ErrBadMagic is returned when a blob does not start with the SKM magic.
var ErrBadMagic = errors.New("skm: bad magic")

// Skeleton is a validated, zero-copy view over a skeletal mesh blob.
type Skeleton struct {
	view    meshdata.View
	header  Header
	limbs   []LimbDesc
	tree    Tree
	offsets []uint32 // per-limb byte offset from MeshStart, built once at load
	meshes  []meshdata.Mesh
	anims   []AnimDesc
	frames  meshdata.View // frame data base
	tex     meshdata.TexSection
}

// Open validates blob and returns a Skeleton reading from it.
func Open(blob []byte) (*Skeleton, error) {
	v := meshdata.NewView(blob)
	if v.Len() < HeaderSize {
		return nil, fmt.Errorf("skm: header: %w", meshdata.ErrTruncated)
	}
	if [4]byte(blob[:4]) != Magic {
		return nil, fmt.Errorf("%w: % x", ErrBadMagic, blob[:4])
	}

	r := meshdata.NewReader(v, 4)
	h := Header{
		NumLimbs:    r.U8(),
		NumAnims:    r.U8(),
		NumTextures: r.U16(),
		MeshStart:   r.U32(),
		AnimStart:   r.U32(),
		TexStart:    r.U32(),
	}
	if r.Err != nil {
		return nil, fmt.Errorf("skm: header: %w", r.Err)
	}
	if h.NumLimbs == 0 {
		return nil, fmt.Errorf("skm: no limbs")
	}

	// Frames only carry MaxLimbs rotations; limbs past that are dropped and
	// references to them read as absent.
	kept := min(int(h.NumLimbs), MaxLimbs)
	s := &Skeleton{view: v, header: h, limbs: make([]LimbDesc, kept)}
	child := make([]uint8, kept)
	sibling := make([]uint8, kept)
	r = meshdata.NewReader(v, HeaderSize)
	for i := 0; i < int(h.NumLimbs); i++ {
		joint := mathutil.Vec3{int32(r.I16()), int32(r.I16()), int32(r.I16())}
		c, sib := r.U8(), r.U8()
		nv, nt := r.U16(), r.U16()
		if i >= kept {
			continue
		}
		for _, ref := range []uint8{c, sib} {
			if ref != none && int(ref) >= int(h.NumLimbs) {
				return nil, fmt.Errorf("skm: limb %d: reference %d out of %d limbs", i, ref, h.NumLimbs)
			}
		}
		child[i], sibling[i] = truncRef(c, kept), truncRef(sib, kept)
		s.limbs[i] = LimbDesc{Joint: joint, NumVerts: nv, NumTris: nt}
	}
	if r.Err != nil {
		return nil, fmt.Errorf("skm: limb table: %w", meshdata.ErrTruncated)
	}

	tree, err := buildTree(child, sibling)
	if err != nil {
		return nil, err
	}
	s.tree = tree

	s.buildOffsets()
	s.meshes = make([]meshdata.Mesh, len(s.limbs))
	for i, l := range s.limbs {
		m, err := meshdata.NewMesh(v, int(h.MeshStart)+int(s.offsets[i]), int(l.NumVerts), int(l.NumTris))
		if err != nil {
			return nil, fmt.Errorf("skm: limb %d: %w", i, err)
		}
		s.meshes[i] = m
	}

	if err := s.parseAnims(); err != nil {
		return nil, err
	}

	tex, err := meshdata.ParseTexSection(v, int(h.TexStart), int(h.NumTextures))
	if err != nil {
		return nil, fmt.Errorf("skm: %w", err)
	}
	s.tex = tex
	return s, nil
}

func truncRef(ref uint8, kept int) uint8 {
	if int(ref) >= kept {
		return none
	}
	return ref
}

func (s *Skeleton) buildOffsets() {
	s.offsets = make([]uint32, len(s.limbs))
	var off uint32
	for i, l := range s.limbs {
		s.offsets[i] = off
		off += uint32(meshdata.MeshSize(int(l.NumVerts), int(l.NumTris)))
	}
}

func (s *Skeleton) Header() Header {
	return s.header
}

// NumLimbs returns the number of decoded limbs, at most MaxLimbs. Header
// keeps the count stored in the blob.
func (s *Skeleton) NumLimbs() int {
	return len(s.limbs)
}

func (s *Skeleton) Limb(i int) LimbDesc {
	return s.limbs[i]
}

// Tree returns the decoded limb hierarchy.
func (s *Skeleton) Tree() *Tree {
	return &s.tree
}

// LimbOffset returns limb i's mesh offset from MeshStart from the load-time cache.
func (s *Skeleton) LimbOffset(i int) int {
	return int(s.offsets[i])
}

// LimbOffsetScan recomputes limb i's mesh offset by summing the preceding limb sizes.
func (s *Skeleton) LimbOffsetScan(i int) int {
	off := 0
	for j := 0; j < i; j++ {
		off += meshdata.MeshSize(int(s.limbs[j].NumVerts), int(s.limbs[j].NumTris))
	}
	return off
}

// LimbMesh returns the vertex/UV/triangle view of limb i.
func (s *Skeleton) LimbMesh(i int) meshdata.Mesh {
	return s.meshes[i]
}

// Textures returns the skeleton's texture section.
func (s *Skeleton) Textures() meshdata.TexSection {
	return s.tex
}
