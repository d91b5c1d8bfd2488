package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	body := `{"search_roots": ["/data/baseq3"], "render_size": 512, "yaw": -45}`
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(cfg.SearchRoots) != 1 || cfg.RenderSize != 512 || cfg.Yaw != -45 {
		t.Errorf("cfg = %+v", cfg)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("Load of a missing file succeeded")
	}
	bad := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(bad, []byte("{"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(bad); err == nil {
		t.Error("Load of invalid JSON succeeded")
	}
}

func TestResolve(t *testing.T) {
	cfg := Config{SearchRoots: []string{"a"}, RenderSize: 512, Yaw: 10, Frame: 4}
	pitch := 0.0
	cfg.Resolve(Flags{Roots: []string{"b", "c"}, Supersample: 4, Frame: -1, Pitch: &pitch})

	if len(cfg.SearchRoots) != 2 || cfg.SearchRoots[0] != "b" {
		t.Errorf("SearchRoots = %v", cfg.SearchRoots)
	}
	if cfg.RenderSize != 512 || cfg.Supersample != 4 || cfg.Workers <= 0 {
		t.Errorf("render settings = %+v", cfg)
	}
	if cfg.Frame != 4 {
		t.Errorf("Frame = %d, want the file value", cfg.Frame)
	}
	if cfg.OutputDir != "renders" {
		t.Errorf("OutputDir = %q", cfg.OutputDir)
	}
	cam := cfg.Camera()
	if cam.Yaw != 10 || cam.Pitch != 0 {
		t.Errorf("Camera = %+v", cam)
	}
	if n := len(cfg.Resolver()); n != 2 {
		t.Errorf("Resolver has %d roots", n)
	}

	var empty Config
	empty.Resolve(Flags{Frame: 2})
	if empty.Frame != 2 || empty.RenderSize != 256 || empty.Supersample != 2 {
		t.Errorf("defaults = %+v", empty)
	}
}

func TestExistingRoots(t *testing.T) {
	base := t.TempDir()
	if err := os.Mkdir(filepath.Join(base, ResourceDir), 0755); err != nil {
		t.Fatal(err)
	}
	roots := existingRoots([]string{base, base, t.TempDir()})
	if len(roots) != 1 || roots[0] != filepath.Join(base, ResourceDir) {
		t.Errorf("roots = %v", roots)
	}
}
