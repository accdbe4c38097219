package prm

// Magic identifies a version 2 room mesh blob.
var Magic = [4]byte{'P', 'R', 'M', 0x02}

const (
	HeaderSize    = 20
	ChunkDescSize = 16

	// MaxChunkVerts is the vertex cap per chunk imposed by 8-bit local indices.
	MaxChunkVerts = 255
)

// Header is the fixed-size blob header.
type Header struct {
	NumChunks   uint16
	NumVerts    uint16 // total over all chunks, informational
	NumTris     uint16 // total over all chunks, informational
	NumTextures uint16
	DataStart   uint32 // offset of the first chunk's data
	TexStart    uint32 // offset of the texture section
}

// ChunkDesc describes one spatial chunk of room geometry.
type ChunkDesc struct {
	CX, CY, CZ int16 // bounding sphere center
	Radius     int16
	NumVerts   uint16
	NumTris    uint16
	DataOffset uint32 // from Header.DataStart
}
