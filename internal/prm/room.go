package prm

import (
	"errors"
	"fmt"

	"psx-scene-renderer/internal/meshdata"
)

// ErrBadMagic is returned when a blob does not start with the PRM magic.
var ErrBadMagic = errors.New("prm: bad magic")

// Room is a validated, zero-copy view over a room mesh blob.
// The blob must stay unchanged for the lifetime of the Room.
type Room struct {
	view   meshdata.View
	header Header
	chunks []ChunkDesc
	meshes []meshdata.Mesh
	tex    meshdata.TexSection
}

// Open validates blob and returns a Room reading from it. Every chunk block and the
// texture section are bounds-checked once here so per-frame accessors cannot fail.
func Open(blob []byte) (*Room, error) {
	v := meshdata.NewView(blob)
	if v.Len() < HeaderSize {
		return nil, fmt.Errorf("prm: header: %w", meshdata.ErrTruncated)
	}
	if [4]byte(blob[:4]) != Magic {
		return nil, fmt.Errorf("%w: % x", ErrBadMagic, blob[:4])
	}

	r := meshdata.NewReader(v, 4)
	h := Header{
		NumChunks:   r.U16(),
		NumVerts:    r.U16(),
		NumTris:     r.U16(),
		NumTextures: r.U16(),
		DataStart:   r.U32(),
		TexStart:    r.U32(),
	}
	if r.Err != nil {
		return nil, fmt.Errorf("prm: header: %w", r.Err)
	}

	room := &Room{
		view:   v,
		header: h,
		chunks: make([]ChunkDesc, h.NumChunks),
		meshes: make([]meshdata.Mesh, h.NumChunks),
	}

	r = meshdata.NewReader(v, HeaderSize)
	for i := range room.chunks {
		room.chunks[i] = ChunkDesc{
			CX:         r.I16(),
			CY:         r.I16(),
			CZ:         r.I16(),
			Radius:     r.I16(),
			NumVerts:   r.U16(),
			NumTris:    r.U16(),
			DataOffset: r.U32(),
		}
	}
	if r.Err != nil {
		return nil, fmt.Errorf("prm: chunk table: %w", meshdata.ErrTruncated)
	}

	for i, c := range room.chunks {
		m, err := meshdata.NewMesh(v, int(h.DataStart)+int(c.DataOffset), int(c.NumVerts), int(c.NumTris))
		if err != nil {
			return nil, fmt.Errorf("prm: chunk %d: %w", i, err)
		}
		room.meshes[i] = m
	}

	tex, err := meshdata.ParseTexSection(v, int(h.TexStart), int(h.NumTextures))
	if err != nil {
		return nil, fmt.Errorf("prm: %w", err)
	}
	room.tex = tex
	return room, nil
}

func (r *Room) Header() Header {
	return r.header
}

func (r *Room) NumChunks() int {
	return len(r.chunks)
}

func (r *Room) Chunk(i int) ChunkDesc {
	return r.chunks[i]
}

// ChunkMesh returns the vertex/UV/triangle view of chunk i.
func (r *Room) ChunkMesh(i int) meshdata.Mesh {
	return r.meshes[i]
}

// ChunkOffset returns the absolute byte offset of chunk i's position array.
func (r *Room) ChunkOffset(i int) int {
	return int(r.header.DataStart) + int(r.chunks[i].DataOffset)
}

// Textures returns the room's texture section.
func (r *Room) Textures() meshdata.TexSection {
	return r.tex
}

// Size returns the blob size in bytes.
func (r *Room) Size() int {
	return r.view.Len()
}
