package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// Spawn places the skeleton when a room loads. RotY is a 16-bit binary
// angle as stored in the source scenes.
type Spawn struct {
	X    int32 `json:"x"`
	Y    int32 `json:"y"`
	Z    int32 `json:"z"`
	RotY int16 `json:"rot_y"`
}

type Room struct {
	File  string `json:"file"`
	Name  string `json:"name"`
	Spawn Spawn  `json:"spawn"`
}

// Config holds all configurable paths and render settings.
type Config struct {
	// Paths
	AssetDir  string `json:"asset_dir"`
	OutputDir string `json:"output_dir"`
	Skeleton  string `json:"skeleton"`
	Rooms     []Room `json:"rooms"`

	// Pipeline
	OTSize      int   `json:"ot_size"`
	MaxTris     int   `json:"max_tris"`
	ProjectionH int32 `json:"projection_h"`
	ScreenW     int   `json:"screen_w"`
	ScreenH     int   `json:"screen_h"`

	// Previews
	Scale   int `json:"scale"`
	Workers int `json:"workers"`
	Frames  int `json:"frames"`
}

// Default returns the stock scene table with every setting resolved.
func Default() Config {
	c := Config{
		Skeleton: "LINK.SKM;1",
		Rooms: []Room{
			{"ROOMS/YDAN_0.PRM;1", "Deku Tree 1", Spawn{-4, 0, 603, -32768}},
			{"ROOMS/YDAN_1.PRM;1", "Deku Tree 2", Spawn{-4, 0, 603, -32768}},
			{"ROOMS/SPOT04_0.PRM;1", "Kokiri Forest", Spawn{-68, -80, 941, 25486}},
			{"ROOMS/SPOT00_0.PRM;1", "Hyrule Field", Spawn{160, 0, 1415, -3641}},
			{"ROOMS/BMORI1_0.PRM;1", "Forest Temple", Spawn{110, 309, 781, -32768}},
			{"ROOMS/HIDAN_0.PRM;1", "Fire Temple", Spawn{5, 0, 983, -32768}},
			{"ROOMS/MIZUSIN0.PRM;1", "Water Temple", Spawn{-182, 620, 969, -32768}},
			{"ROOMS/HAKADAN0.PRM;1", "Shadow Temple", Spawn{-254, -63, 734, -32768}},
			{"ROOMS/SPOT15_0.PRM;1", "Lon Lon Ranch", Spawn{-225, 1086, 3743, -27307}},
			{"ROOMS/SPOT01_0.PRM;1", "Kakariko", Spawn{-2649, 138, 1063, 16384}},
		},
	}
	c.Resolve(Flags{})
	return c
}

// Load reads a JSON config file and returns Config.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	AssetDir  string
	OutputDir string
	Workers   int
	Scale     int
	Frames    int
}

// Resolve fills in any empty fields with defaults.
// CLI flags take priority when non-zero/non-empty.
func (c *Config) Resolve(flags Flags) {
	// CLI flags override config file
	if flags.AssetDir != "" {
		c.AssetDir = flags.AssetDir
	}
	if flags.OutputDir != "" {
		c.OutputDir = flags.OutputDir
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}
	if flags.Scale > 0 {
		c.Scale = flags.Scale
	}
	if flags.Frames > 0 {
		c.Frames = flags.Frames
	}

	if c.AssetDir == "" {
		c.AssetDir = detectAssetDir()
	}
	if c.OutputDir == "" {
		c.OutputDir = "previews"
	}
	if c.AssetDir != "" && !filepath.IsAbs(c.OutputDir) {
		c.OutputDir = filepath.Join(c.AssetDir, c.OutputDir)
	}
	if len(c.Rooms) == 0 {
		d := Default()
		c.Rooms = d.Rooms
		if c.Skeleton == "" {
			c.Skeleton = d.Skeleton
		}
	}

	// Defaults for pipeline settings
	if c.OTSize < 3 {
		c.OTSize = 1024
	}
	if c.MaxTris <= 0 {
		c.MaxTris = 1200
	}
	if c.ProjectionH <= 0 {
		c.ProjectionH = 180
	}
	if c.ScreenW <= 0 {
		c.ScreenW = 320
	}
	if c.ScreenH <= 0 {
		c.ScreenH = 240
	}
	if c.Scale <= 0 {
		c.Scale = 2
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
	if c.Frames <= 0 {
		c.Frames = 1
	}
}

func detectAssetDir() string {
	// Try relative to executable
	exe, _ := os.Executable()
	if exe != "" {
		dir := filepath.Dir(exe)
		for _, base := range []string{dir, filepath.Dir(dir), filepath.Join(dir, "..", "..")} {
			if _, err := os.Stat(filepath.Join(base, "ROOMS")); err == nil {
				return base
			}
		}
	}

	// Try current working directory
	cwd, _ := os.Getwd()
	if _, err := os.Stat(filepath.Join(cwd, "ROOMS")); err == nil {
		return cwd
	}
	return ""
}
