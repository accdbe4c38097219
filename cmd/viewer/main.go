package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"psx-scene-renderer/internal/config"
	"psx-scene-renderer/internal/hostwin"
	"psx-scene-renderer/internal/profiler"
	"psx-scene-renderer/internal/scene"
	"psx-scene-renderer/internal/stream"
)

func main() {
	configFile := flag.String("config", "", "Path to config.json file")
	assetDir := flag.String("assets", "", "Asset directory holding ROOMS/ and the skeleton (default: auto-detect)")
	room := flag.Int("room", 0, "Room index to start in")
	scale := flag.Int("scale", 0, "Window pixels per framebuffer pixel (default: 2)")
	profile := flag.Duration("profile", 0, "Log frame statistics at this interval (0 disables)")

	flag.Parse()

	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}
	cfg.Resolve(config.Flags{AssetDir: *assetDir, Scale: *scale})

	if cfg.AssetDir == "" {
		fmt.Fprintln(os.Stderr, "Error: cannot find the asset directory. Use -assets flag or config.json.")
		os.Exit(1)
	}

	logger := log.New(os.Stderr, "", log.LstdFlags)
	loader := stream.NewDirLoader(cfg.AssetDir, logger)
	defer loader.Close()
	logger.Printf("Assets: %d files indexed in %s", loader.Index().Len(), cfg.AssetDir)

	var prof *profiler.Profiler
	if *profile > 0 {
		prof = profiler.New(logger, *profile)
	}

	sc := scene.New(cfg, loader)
	sc.StartAt(*room)

	err := hostwin.Run(sc, hostwin.Options{
		Title:    "psx-scene-renderer",
		Width:    cfg.ScreenW,
		Height:   cfg.ScreenH,
		Scale:    cfg.Scale,
		Poll:     loader.Poll,
		Profiler: prof,
	})
	if err != nil {
		logger.Printf("Error: %v", err)
		loader.Close()
		os.Exit(1)
	}
	if err := sc.Err(); err != nil {
		logger.Printf("Last load error: %v", err)
	}
}
