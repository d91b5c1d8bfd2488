package skin

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"md3-renderer/internal/resource"
)

const upperSkin = `tag_head,
tag_weapon,
// comment
u_torso,models/players/sarge/band.tga
U_Arms,models\players\sarge\band.tga
garbage line
,models/players/sarge/none.tga
u_torso,models/players/sarge/red.tga
`

func TestParse(t *testing.T) {
	s, err := Parse(strings.NewReader(upperSkin))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(s.Surfaces) != 2 {
		t.Errorf("Surfaces = %v, want 2 entries", s.Surfaces)
	}
	tests := []struct{ surface, want string }{
		{"u_torso", "models/players/sarge/red.tga"},
		{"u_arms", "models/players/sarge/band.tga"},
		{"U_ARMS", "models/players/sarge/band.tga"},
	}
	for _, tt := range tests {
		if got, ok := s.Texture(tt.surface); !ok || got != tt.want {
			t.Errorf("Texture(%q) = %q, %v; want %q", tt.surface, got, ok, tt.want)
		}
	}
	if _, ok := s.Texture("tag_head"); ok {
		t.Error("tag entry has a texture")
	}
	if names := s.Names(); len(names) != 2 || names[0] != "u_torso" {
		t.Errorf("Names() = %v", names)
	}

	var nilSkin *Skin
	if _, ok := nilSkin.Texture("u_torso"); ok {
		t.Error("nil skin returned a texture")
	}
}

func TestParseLongComment(t *testing.T) {
	input := "// " + strings.Repeat("x", 70000) + "\nu_torso,red.tga"
	s, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if tex, ok := s.Texture("u_torso"); !ok || tex != "red.tga" {
		t.Errorf("Texture(u_torso) = %q, %v", tex, ok)
	}
}

func TestLoad(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "models", "players", "sarge")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	write := func(name, body string) {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0644); err != nil {
			t.Fatal(err)
		}
	}
	write("upper.skin", "u_torso,plain.tga\n")
	write("upper_blue.skin", "u_torso,blue.tga\n")

	res := resource.Dirs(root)
	playerDir := resource.PlayerDir("sarge")

	s, err := Load(res, playerDir, "upper", "blue")
	if err != nil {
		t.Fatalf("Load(blue): %v", err)
	}
	if tex, _ := s.Texture("u_torso"); tex != "blue.tga" {
		t.Errorf("blue skin texture = %q", tex)
	}

	s, err = Load(res, playerDir, "upper", "")
	if err != nil {
		t.Fatalf("Load(default): %v", err)
	}
	if tex, _ := s.Texture("u_torso"); tex != "plain.tga" {
		t.Errorf("fallback skin texture = %q", tex)
	}
	if filepath.Base(s.Path) != "upper.skin" {
		t.Errorf("Path = %q", s.Path)
	}

	if _, err := Load(res, playerDir, "head", ""); err == nil {
		t.Error("Load(head) found a missing skin")
	}
}
