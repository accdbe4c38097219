package batch

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"psx-scene-renderer/internal/config"
	"psx-scene-renderer/internal/postprocess"
	"psx-scene-renderer/internal/raster"
	"psx-scene-renderer/internal/scene"
	"psx-scene-renderer/internal/stream"

	"github.com/HugoSmits86/nativewebp"
)

// Config holds all shared resources for a batch run.
type Config struct {
	Scene  config.Config // resolved
	Index  *stream.Index
	Logger *log.Logger // progress; nil for none
}

// Result holds the outcome of rendering one room.
type Result struct {
	Index     int
	Name      string
	File      string
	Image     string // relative to the output directory
	Triangles int
	Rejected  int
	Success   bool
	Error     string
}

// Run renders every configured room using a worker pool. Each room gets its
// own Scene; only the skeleton blob is shared, read-only.
func Run(cfg Config) []Result {
	rooms := cfg.Scene.Rooms
	total := len(rooms)
	results := make([]Result, total)
	var processed atomic.Int64

	skel := readAsset(cfg.Index, cfg.Scene.Skeleton)
	if skel == nil && cfg.Logger != nil {
		cfg.Logger.Printf("batch: skeleton %q not found, rendering rooms only", cfg.Scene.Skeleton)
	}

	start := time.Now()

	// Progress reporter
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(2 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				p := processed.Load()
				if p > 0 && cfg.Logger != nil {
					rate := float64(p) / time.Since(start).Seconds()
					cfg.Logger.Printf("  [%d/%d] %.1f rooms/sec", p, total, rate)
				}
			}
		}
	}()

	// Worker pool
	workers := max(cfg.Scene.Workers, 1)
	roomChan := make(chan int, workers*2)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range roomChan {
				results[idx] = processRoom(cfg, skel, idx)
				processed.Add(1)
			}
		}()
	}

	// Send work
	for i := range rooms {
		roomChan <- i
	}
	close(roomChan)

	wg.Wait()
	close(done)

	return results
}

func readAsset(idx *stream.Index, name string) []byte {
	if idx == nil || name == "" {
		return nil
	}
	path, ok := idx.ResolvePath(name)
	if !ok {
		return nil
	}
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	return buf
}

func processRoom(cfg Config, skel []byte, i int) Result {
	rc := cfg.Scene.Rooms[i]
	res := Result{Index: i, Name: rc.Name, File: rc.File}

	buf := readAsset(cfg.Index, rc.File)
	if buf == nil {
		res.Error = fmt.Sprintf("room not found: %s", rc.File)
		return res
	}

	loader := stream.NewMemLoader()
	loader.Put(rc.File, buf)
	if skel != nil {
		loader.Put(cfg.Scene.Skeleton, skel)
	}
	sc := scene.New(cfg.Scene, loader)
	sc.StartAt(i)
	loader.Sync()
	if sc.Room() == nil {
		res.Error = fmt.Sprintf("room %s: %v", rc.File, sc.Err())
		return res
	}

	var fc *scene.FrameContext
	for f := 0; f < max(cfg.Scene.Frames, 1); f++ {
		fc = sc.Frame(nil)
	}
	res.Triangles = fc.Stats.Emitted
	res.Rejected = fc.Stats.Rejected()

	fb := raster.NewFrameBuffer(cfg.Scene.ScreenW, cfg.Scene.ScreenH)
	fc.Draw(fb)
	img := postprocess.Upscale(fb.Image(), cfg.Scene.Scale)

	// Save as WebP
	res.Image = fmt.Sprintf("%02d.webp", i)
	outPath := filepath.Join(cfg.Scene.OutputDir, res.Image)
	if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
		res.Error = err.Error()
		return res
	}

	f, err := os.Create(outPath)
	if err != nil {
		res.Error = err.Error()
		return res
	}
	defer f.Close()

	if err := nativewebp.Encode(f, img, nil); err != nil {
		res.Error = fmt.Sprintf("WebP encode: %v", err)
		return res
	}

	res.Success = true
	return res
}
