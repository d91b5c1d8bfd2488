package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"md3-renderer/internal/resource"
	"md3-renderer/internal/view"
)

// ResourceDir is the asset directory name looked for during detection.
const ResourceDir = "q3-resources"

// Config holds all configurable paths and render settings.
type Config struct {
	// Paths
	SearchRoots []string `json:"search_roots"`
	OutputDir   string   `json:"output_dir"`
	IndexDB     string   `json:"index_db"`

	// Render settings
	RenderSize  int     `json:"render_size"`
	Supersample int     `json:"supersample"`
	Fill        float64 `json:"fill"`
	Workers     int     `json:"workers"`
	Frame       int     `json:"frame"`
	Yaw         float64 `json:"yaw"`
	Pitch       float64 `json:"pitch"`
	Perspective bool    `json:"perspective"`
	FOV         float64 `json:"fov"`
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
	Roots       []string
	OutputDir   string
	IndexDB     string
	Size        int
	Supersample int
	Fill        float64
	Workers     int
	Frame       int // negative means unset
	Yaw         *float64
	Pitch       *float64
	Perspective bool
}

// Resolve fills in any empty fields with auto-detected defaults.
// CLI flags take priority when non-zero/non-empty.
func (c *Config) Resolve(flags Flags) {
	if len(flags.Roots) > 0 {
		c.SearchRoots = flags.Roots
	}
	if flags.OutputDir != "" {
		c.OutputDir = flags.OutputDir
	}
	if flags.IndexDB != "" {
		c.IndexDB = flags.IndexDB
	}
	if flags.Size > 0 {
		c.RenderSize = flags.Size
	}
	if flags.Supersample > 0 {
		c.Supersample = flags.Supersample
	}
	if flags.Fill > 0 {
		c.Fill = flags.Fill
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}
	if flags.Frame >= 0 {
		c.Frame = flags.Frame
	}
	if flags.Yaw != nil {
		c.Yaw = *flags.Yaw
	}
	if flags.Pitch != nil {
		c.Pitch = *flags.Pitch
	}
	if flags.Perspective {
		c.Perspective = true
	}

	if len(c.SearchRoots) == 0 {
		c.SearchRoots = DetectRoots()
	}
	if c.OutputDir == "" {
		c.OutputDir = "renders"
	}

	if c.RenderSize <= 0 {
		c.RenderSize = 256
	}
	if c.Supersample <= 0 {
		c.Supersample = 2
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
	if c.Frame < 0 {
		c.Frame = 0
	}
}

// Resolver returns the search roots as an ordered resolver chain.
func (c *Config) Resolver() resource.Chain {
	return resource.Dirs(c.SearchRoots...)
}

// Camera returns the configured orbit camera.
func (c *Config) Camera() view.Camera {
	return view.Camera{Yaw: c.Yaw, Pitch: c.Pitch, Perspective: c.Perspective, FOV: c.FOV}
}

// DetectRoots looks for q3-resources next to the working directory and
// the executable, nearest first.
func DetectRoots() []string {
	var bases []string
	if cwd, err := os.Getwd(); err == nil {
		bases = append(bases, cwd, filepath.Dir(cwd), filepath.Join(cwd, "..", ".."))
	}
	if exe, err := os.Executable(); err == nil {
		dir := filepath.Dir(exe)
		bases = append(bases, dir, filepath.Dir(dir), filepath.Join(dir, "..", ".."))
	}
	return existingRoots(bases)
}

func existingRoots(bases []string) []string {
	var roots []string
	seen := make(map[string]bool)
	for _, base := range bases {
		p := filepath.Clean(filepath.Join(base, ResourceDir))
		if seen[p] {
			continue
		}
		seen[p] = true
		if info, err := os.Stat(p); err == nil && info.IsDir() {
			roots = append(roots, p)
		}
	}
	return roots
}
