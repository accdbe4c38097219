package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"psx-scene-renderer/internal/batch"
	"psx-scene-renderer/internal/config"
	"psx-scene-renderer/internal/stream"
)

func main() {
	// CLI flags
	configFile := flag.String("config", "", "Path to config.json file")
	room := flag.Int("room", -1, "Render only this room index")
	workers := flag.Int("workers", 0, "Number of worker goroutines (default: NumCPU)")
	assetDir := flag.String("assets", "", "Asset directory holding ROOMS/ and the skeleton (default: auto-detect)")
	outputDir := flag.String("output", "", "Output directory (default: <assets>/previews)")
	scale := flag.Int("scale", 0, "Preview upscale factor (default: 2)")
	frames := flag.Int("frames", 0, "Frames to simulate before the snapshot (default: 1)")

	flag.Parse()

	// Load config
	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	// CLI flags override config file
	cfg.Resolve(config.Flags{
		AssetDir:  *assetDir,
		OutputDir: *outputDir,
		Workers:   *workers,
		Scale:     *scale,
		Frames:    *frames,
	})

	if cfg.AssetDir == "" {
		fmt.Fprintln(os.Stderr, "Error: cannot find the asset directory. Use -assets flag or config.json.")
		os.Exit(1)
	}

	if *room >= 0 {
		if *room >= len(cfg.Rooms) {
			fmt.Fprintf(os.Stderr, "Error: room %d out of range (%d rooms)\n", *room, len(cfg.Rooms))
			os.Exit(1)
		}
		cfg.Rooms = cfg.Rooms[*room : *room+1]
	}

	idx := stream.BuildIndex(cfg.AssetDir)
	fmt.Printf("Assets: %d files indexed in %s\n", idx.Len(), cfg.AssetDir)
	fmt.Printf("Rooms: %d, Workers: %d, Frames: %d\n", len(cfg.Rooms), cfg.Workers, cfg.Frames)
	fmt.Printf("Output: %s\n", cfg.OutputDir)
	fmt.Println("------------------------------------------------------------")

	start := time.Now()

	results := batch.Run(batch.Config{
		Scene:  cfg,
		Index:  idx,
		Logger: log.New(os.Stdout, "", 0),
	})

	elapsed := time.Since(start)
	fmt.Println("------------------------------------------------------------")
	fmt.Printf("Done in %.1fs\n", elapsed.Seconds())

	// Count results
	success, failed := 0, 0
	for _, r := range results {
		if r.Success {
			success++
			fmt.Printf("  %-16s %s  %d tris, %d rejected\n", r.Name, r.Image, r.Triangles, r.Rejected)
		} else {
			failed++
		}
	}
	fmt.Printf("Rendered: %d/%d\n", success, len(results))

	if failed > 0 {
		fmt.Printf("\nFailed (%d):\n", failed)
		for _, r := range results {
			if !r.Success {
				fmt.Printf("  %s: %s\n", r.Name, r.Error)
			}
		}
	}

	// Write manifest
	manifestPath := filepath.Join(cfg.OutputDir, "manifest.json")
	os.MkdirAll(cfg.OutputDir, 0755)
	if err := batch.WriteManifest(manifestPath, results); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: manifest write failed: %v\n", err)
	} else {
		fmt.Printf("Manifest: %s\n", manifestPath)
	}

	if failed > 0 {
		os.Exit(1)
	}
}
