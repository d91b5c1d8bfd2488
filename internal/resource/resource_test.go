package resource

import (
	"os"
	"path/filepath"
	"testing"
)

func touch(t *testing.T, p string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(p, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestChainOrder(t *testing.T) {
	first := t.TempDir()
	second := t.TempDir()
	touch(t, filepath.Join(second, "models", "players", "sarge", "lower.md3"))
	touch(t, filepath.Join(second, "models", "players", "sarge", "animation.cfg"))
	touch(t, filepath.Join(first, "models", "players", "sarge", "animation.cfg"))

	c := Dirs("", first, second)
	if len(c) != 2 {
		t.Fatalf("Dirs kept %d roots, want 2", len(c))
	}

	got, ok := c.Resolve(ModelPath("sarge", "lower"))
	if !ok || got != filepath.Join(second, "models", "players", "sarge", "lower.md3") {
		t.Errorf("Resolve(lower) = %q, %v", got, ok)
	}
	got, ok = c.Resolve(AnimationConfigPath("sarge"))
	if !ok || got != filepath.Join(first, "models", "players", "sarge", "animation.cfg") {
		t.Errorf("Resolve(animation.cfg) = %q, %v; want the first root", got, ok)
	}
	if _, ok := c.Resolve("models/players/sarge"); ok {
		t.Error("resolved a directory")
	}
	if _, ok := c.Resolve(ModelPath("doom", "head")); ok {
		t.Error("resolved a missing model")
	}
}

func TestFind(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "models", "players", "sarge", "lower.skin"))

	c := Dirs(root)
	p, ok := Find(c, SkinPaths(PlayerDir("sarge"), "lower", "")...)
	if !ok || filepath.Base(p) != "lower.skin" {
		t.Errorf("Find = %q, %v", p, ok)
	}
	if _, err := MustFind(c, "a.cfg", "b.cfg"); err == nil {
		t.Error("MustFind found nothing but returned no error")
	}
}

func TestPaths(t *testing.T) {
	tests := []struct{ got, want string }{
		{ModelPath("sarge", "upper"), "models/players/sarge/upper.md3"},
		{WeaponPath("rocketl"), "models/weapons2/rocketl/rocketl.md3"},
		{AnimationConfigPath("visor"), "models/players/visor/animation.cfg"},
		{SkinPaths("models/players/visor", "head", "red")[0], "models/players/visor/head_red.skin"},
		{SkinPaths("models/players/visor", "head", "")[0], "models/players/visor/head_default.skin"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("got %q, want %q", tt.got, tt.want)
		}
	}
}

func TestFindAll(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "models", "players", "sarge", "lower.md3"))
	touch(t, filepath.Join(root, "models", "players", "sarge", "HEAD.MD3"))
	touch(t, filepath.Join(root, "models", "weapons2", "rocketl", "rocketl.md3"))
	touch(t, filepath.Join(root, "models", "players", "sarge", "lower.skin"))

	files := FindAll(".md3", root, root, filepath.Join(root, "missing"))
	if len(files) != 3 {
		t.Fatalf("FindAll = %v, want 3 files", files)
	}
	for i := 1; i < len(files); i++ {
		if files[i-1] > files[i] {
			t.Errorf("not sorted: %v", files)
		}
	}
}
