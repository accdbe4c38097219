// Package scene runs the room viewer: it streams rooms and the skeleton in,
// keeps their textures resident in VRAM, reacts to the pad and builds one
// ordering-table frame per tick.
package scene

import (
	"fmt"

	"psx-scene-renderer/internal/camera"
	"psx-scene-renderer/internal/config"
	"psx-scene-renderer/internal/gpu"
	"psx-scene-renderer/internal/gte"
	"psx-scene-renderer/internal/input"
	"psx-scene-renderer/internal/mathutil"
	"psx-scene-renderer/internal/prm"
	"psx-scene-renderer/internal/render"
	"psx-scene-renderer/internal/skeleton"
	"psx-scene-renderer/internal/skm"
	"psx-scene-renderer/internal/stream"
	"psx-scene-renderer/internal/vram"
)

// Scene owns every piece of per-viewer state. It is not safe for concurrent
// use; loader completions must be delivered (Poll) on the goroutine that
// calls Frame.
type Scene struct {
	cfg    config.Config
	loader stream.Loader

	unit    *gte.Unit
	scratch render.Scratch
	emitter *render.Emitter
	buffers *gpu.Buffers
	parity  int

	alloc      *vram.Allocator
	mem        *vram.Memory
	roomSlots  []int
	skelSlots  []int
	needUpload bool

	roomIdx int
	roomBuf []byte
	room    *prm.Room
	loading bool
	skelPos mathutil.Vec3

	skel *skm.Skeleton
	anim skeleton.Animator
	pose skeleton.Pose

	cam         *camera.Orbit
	edges       input.Edges
	debugGrid   bool
	skelVisible bool

	err error
}

// New builds a scene for cfg, which must be resolved. Nothing is requested
// until Start.
func New(cfg config.Config, loader stream.Loader) *Scene {
	return &Scene{
		cfg:         cfg,
		loader:      loader,
		unit:        gte.New(cfg.ScreenW, cfg.ScreenH, cfg.ProjectionH),
		emitter:     render.NewEmitter(cfg.MaxTris),
		buffers:     gpu.NewBuffers(cfg.OTSize, cfg.MaxTris+vram.MaxTextures),
		alloc:       vram.NewAllocator(),
		mem:         vram.NewMemory(),
		cam:         camera.NewOrbit(),
		skelVisible: true,
	}
}

// Start requests the skeleton; its completion requests room 0.
func (s *Scene) Start() {
	s.StartAt(0)
}

// StartAt is Start with room i loaded first.
func (s *Scene) StartAt(i int) {
	s.loading = true
	s.loader.RequestLoad(s.cfg.Skeleton, func(buf []byte) {
		s.installSkeleton(buf)
		s.LoadRoom(i)
	})
}

func (s *Scene) installSkeleton(buf []byte) {
	if buf == nil {
		s.err = fmt.Errorf("scene: load %s: %w", s.cfg.Skeleton, stream.ErrNotFound)
		return
	}
	sk, err := skm.Open(buf)
	if err != nil {
		s.err = fmt.Errorf("scene: %s: %w", s.cfg.Skeleton, err)
		return
	}
	s.skel = sk
	s.anim.Load(sk)
	s.needUpload = true
}

// LoadRoom drops the current room and requests room i (modulo the table).
// Nothing is drawn for the room until the load completes.
func (s *Scene) LoadRoom(i int) {
	if len(s.cfg.Rooms) == 0 {
		s.loading = false
		return
	}
	n := len(s.cfg.Rooms)
	idx := (i%n + n) % n
	s.loading = true
	s.room = nil
	s.roomBuf = nil
	s.roomIdx = idx

	rc := s.cfg.Rooms[idx]
	s.loader.RequestLoad(rc.File, func(buf []byte) {
		// A newer request superseded this one.
		if s.roomIdx != idx {
			return
		}
		s.roomBuf = buf
		s.room = nil
		if buf == nil {
			s.err = fmt.Errorf("scene: load %s: %w", rc.File, stream.ErrNotFound)
		} else if r, err := prm.Open(buf); err != nil {
			s.err = fmt.Errorf("scene: %s: %w", rc.File, err)
		} else {
			s.room = r
		}
		s.needUpload = true
		s.skelPos = mathutil.Vec3{rc.Spawn.X, rc.Spawn.Y, rc.Spawn.Z}
		s.cam.Reset()
		s.loading = false
	})
}

// uploadTextures rebuilds VRAM: room textures first, skeleton textures after.
func (s *Scene) uploadTextures() {
	s.alloc.Reset()
	s.roomSlots, s.skelSlots = nil, nil
	if s.room != nil {
		s.roomSlots = vram.LoadSection(s.alloc, s.mem, s.room.Textures())
	}
	if s.skel != nil {
		s.skelSlots = vram.LoadSection(s.alloc, s.mem, s.skel.Textures())
	}
	s.needUpload = false
}

// Err returns the most recent load or parse failure, if any.
func (s *Scene) Err() error {
	return s.err
}

func (s *Scene) RoomIndex() int {
	return s.roomIdx
}

func (s *Scene) RoomConfig() config.Room {
	return s.cfg.Rooms[s.roomIdx]
}

func (s *Scene) Loading() bool {
	return s.loading
}

// Room returns the resident room, nil while loading or after a failed load.
func (s *Scene) Room() *prm.Room {
	return s.room
}

func (s *Scene) Skeleton() *skm.Skeleton {
	return s.skel
}

func (s *Scene) Animator() *skeleton.Animator {
	return &s.anim
}

func (s *Scene) Camera() *camera.Orbit {
	return s.cam
}

// SkeletonPosition is the spawn point of the current room.
func (s *Scene) SkeletonPosition() mathutil.Vec3 {
	return s.skelPos
}

func (s *Scene) DebugGrid() bool {
	return s.debugGrid
}

func (s *Scene) SkeletonVisible() bool {
	return s.skelVisible
}

// Memory is the VRAM image the scene uploads into.
func (s *Scene) Memory() *vram.Memory {
	return s.mem
}

// Slots returns the allocator slots of the room and skeleton textures.
func (s *Scene) Slots() (room, skel []int) {
	return s.roomSlots, s.skelSlots
}
