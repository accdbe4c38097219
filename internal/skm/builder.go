package skm

import (
	"encoding/binary"

	"psx-scene-renderer/internal/meshdata"
)

// NoLimb is the child/sibling value for an absent limb in LimbSpec.
const NoLimb = none

// LimbSpec is the authoring-side form of one limb.
type LimbSpec struct {
	Joint          [3]int16
	Child, Sibling uint8 // NoLimb when absent
	Mesh           meshdata.MeshBlock
}

// FrameSpec is the authoring-side form of one animation frame.
// Rots holds x, y, z binary angles per limb.
type FrameSpec struct {
	Root [3]int16
	Rots [MaxLimbs][3]int16
	Aux  uint16
}

type AnimSpec struct {
	Loop   bool
	Frames []FrameSpec
}

// Builder assembles a skeleton blob with the offline converter's layout.
type Builder struct {
	Limbs    []LimbSpec
	Anims    []AnimSpec
	Textures []meshdata.TextureBlock
}

// Bytes encodes the skeleton.
func (b *Builder) Bytes() []byte {
	meshStart := meshdata.Align4(HeaderSize + len(b.Limbs)*LimbDescSize)
	meshSize := 0
	meshOffsets := make([]int, len(b.Limbs))
	for i, l := range b.Limbs {
		meshOffsets[i] = meshSize
		meshSize += l.Mesh.Size()
	}

	animStart := meshdata.Align4(meshStart + meshSize)
	animOffsets := make([]int, len(b.Anims))
	animSize := 0
	for i, a := range b.Anims {
		animOffsets[i] = animSize
		animSize += len(a.Frames) * FrameSize
	}
	frameBase := animStart + len(b.Anims)*AnimDescSize

	texStart := meshdata.Align4(frameBase + animSize)
	buf := make([]byte, texStart+meshdata.TexSectionSize(b.Textures))

	copy(buf, Magic[:])
	buf[4] = uint8(len(b.Limbs))
	buf[5] = uint8(len(b.Anims))
	binary.LittleEndian.PutUint16(buf[6:], uint16(len(b.Textures)))
	binary.LittleEndian.PutUint32(buf[8:], uint32(meshStart))
	binary.LittleEndian.PutUint32(buf[12:], uint32(animStart))
	binary.LittleEndian.PutUint32(buf[16:], uint32(texStart))

	for i, l := range b.Limbs {
		d := buf[HeaderSize+i*LimbDescSize:]
		binary.LittleEndian.PutUint16(d, uint16(l.Joint[0]))
		binary.LittleEndian.PutUint16(d[2:], uint16(l.Joint[1]))
		binary.LittleEndian.PutUint16(d[4:], uint16(l.Joint[2]))
		d[6] = l.Child
		d[7] = l.Sibling
		binary.LittleEndian.PutUint16(d[8:], uint16(len(l.Mesh.Verts)))
		binary.LittleEndian.PutUint16(d[10:], uint16(len(l.Mesh.Tris)))
		l.Mesh.Put(buf[meshStart+meshOffsets[i]:])
	}

	for i, a := range b.Anims {
		d := buf[animStart+i*AnimDescSize:]
		binary.LittleEndian.PutUint16(d, uint16(len(a.Frames)))
		if a.Loop {
			d[2] = 1
		}
		binary.LittleEndian.PutUint32(d[4:], uint32(animOffsets[i]))
		for f, fr := range a.Frames {
			putFrame(buf[frameBase+animOffsets[i]+f*FrameSize:], fr)
		}
	}

	meshdata.PutTexSection(buf[texStart:], b.Textures)
	return buf
}

func putFrame(dst []byte, f FrameSpec) {
	for k := 0; k < 3; k++ {
		binary.LittleEndian.PutUint16(dst[k*2:], uint16(f.Root[k]))
	}
	for l, r := range f.Rots {
		for k := 0; k < 3; k++ {
			binary.LittleEndian.PutUint16(dst[6+l*6+k*2:], uint16(r[k]))
		}
	}
	binary.LittleEndian.PutUint16(dst[FrameSize-2:], f.Aux)
}
