package prm

import (
	"encoding/binary"

	"psx-scene-renderer/internal/meshdata"
)

// Chunk is the authoring-side form of one chunk.
type Chunk struct {
	CX, CY, CZ, Radius int16
	Mesh               meshdata.MeshBlock
}

// Builder assembles a room blob with the same layout and alignment as the offline converter.
type Builder struct {
	Chunks   []Chunk
	Textures []meshdata.TextureBlock
}

// Bytes encodes the room.
func (b *Builder) Bytes() []byte {
	dataStart := meshdata.Align4(HeaderSize + len(b.Chunks)*ChunkDescSize)

	offsets := make([]int, len(b.Chunks))
	dataSize := 0
	totalV, totalT := 0, 0
	for i, c := range b.Chunks {
		offsets[i] = dataSize
		dataSize += c.Mesh.Size()
		totalV += len(c.Mesh.Verts)
		totalT += len(c.Mesh.Tris)
	}
	texStart := meshdata.Align4(dataStart + dataSize)
	buf := make([]byte, texStart+meshdata.TexSectionSize(b.Textures))

	copy(buf, Magic[:])
	binary.LittleEndian.PutUint16(buf[4:], uint16(len(b.Chunks)))
	binary.LittleEndian.PutUint16(buf[6:], uint16(totalV))
	binary.LittleEndian.PutUint16(buf[8:], uint16(totalT))
	binary.LittleEndian.PutUint16(buf[10:], uint16(len(b.Textures)))
	binary.LittleEndian.PutUint32(buf[12:], uint32(dataStart))
	binary.LittleEndian.PutUint32(buf[16:], uint32(texStart))

	for i, c := range b.Chunks {
		d := buf[HeaderSize+i*ChunkDescSize:]
		binary.LittleEndian.PutUint16(d, uint16(c.CX))
		binary.LittleEndian.PutUint16(d[2:], uint16(c.CY))
		binary.LittleEndian.PutUint16(d[4:], uint16(c.CZ))
		binary.LittleEndian.PutUint16(d[6:], uint16(c.Radius))
		binary.LittleEndian.PutUint16(d[8:], uint16(len(c.Mesh.Verts)))
		binary.LittleEndian.PutUint16(d[10:], uint16(len(c.Mesh.Tris)))
		binary.LittleEndian.PutUint32(d[12:], uint32(offsets[i]))
		c.Mesh.Put(buf[dataStart+offsets[i]:])
	}

	meshdata.PutTexSection(buf[texStart:], b.Textures)
	return buf
}
