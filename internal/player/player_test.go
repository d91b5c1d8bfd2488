package player

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"md3-renderer/internal/anim"
	"md3-renderer/internal/md3"
	"md3-renderer/internal/resource"
	"md3-renderer/internal/texture"
)

var identity = [3][3]float32{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}

// triangleModel builds a model with one triangle mesh and the given tags,
// each tag moved up by one unit per frame.
func triangleModel(mesh string, frames int, tags map[string][3]float32) *md3.Model {
	m := &md3.Model{}
	var names []string
	for name := range tags {
		names = append(names, name)
	}
	if len(names) == 2 && names[0] > names[1] {
		names[0], names[1] = names[1], names[0]
	}
	body := md3.Mesh{
		Header:    md3.MeshHeader{Name: md3.NewName(mesh)},
		Triangles: []md3.Triangle{{0, 1, 2}},
		TexCoords: []md3.TexCoord{{0, 0}, {1, 0}, {0, 1}},
	}
	for f := 0; f < frames; f++ {
		var ft []md3.Tag
		for _, name := range names {
			pos := tags[name]
			pos[2] += float32(f)
			ft = append(ft, md3.Tag{Name: md3.NewName(name), Position: pos, Axis: identity})
		}
		m.Tags = append(m.Tags, ft)
		body.Vertices = append(body.Vertices, []md3.Vertex{
			{Pos: [3]int16{0, 0, 0}}, {Pos: [3]int16{0, 64, 0}}, {Pos: [3]int16{0, 0, 64}},
		})
	}
	m.Meshes = []md3.Mesh{body}
	return m
}

func writeFile(t *testing.T, path string, write func(f *os.File) error) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := write(f); err != nil {
		t.Fatal(err)
	}
}

func writeModel(t *testing.T, path string, m *md3.Model) {
	writeFile(t, path, func(f *os.File) error { return md3.Encode(f, m) })
}

func writeText(t *testing.T, path, text string) {
	writeFile(t, path, func(f *os.File) error {
		_, err := f.WriteString(text)
		return err
	})
}

func setupSarge(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	dir := filepath.Join(root, "models", "players", "sarge")
	writeModel(t, filepath.Join(dir, "lower.md3"), triangleModel("l_legs", 4, map[string][3]float32{"tag_torso": {0, 0, 24}}))
	writeModel(t, filepath.Join(dir, "upper.md3"), triangleModel("u_torso", 3, map[string][3]float32{
		"tag_head":   {0, 0, 16},
		"tag_weapon": {5, 0, 0},
	}))
	writeModel(t, filepath.Join(dir, "head.md3"), triangleModel("h_head", 1, nil))
	writeModel(t, filepath.Join(root, "models", "weapons2", "rocketl", "rocketl.md3"), triangleModel("w_rocket", 1, nil))
	writeText(t, filepath.Join(dir, "lower_default.skin"), "l_legs,models/players/sarge/red.tga\ntag_torso,\n")

	var cfg strings.Builder
	for i := 0; i < int(anim.NumSlots); i++ {
		cfg.WriteString("0 3 3 10\n")
	}
	writeText(t, filepath.Join(dir, "animation.cfg"), cfg.String())

	writeFile(t, filepath.Join(dir, "red.png"), func(f *os.File) error {
		img := image.NewNRGBA(image.Rect(0, 0, 1, 1))
		img.SetNRGBA(0, 0, color.NRGBA{255, 0, 0, 255})
		return png.Encode(f, img)
	})
	return root
}

func TestLoad(t *testing.T) {
	root := setupSarge(t)
	res := resource.Dirs(root)
	p, err := Load(res, "sarge", "")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if p.Lower.Skin == nil || p.Upper.Skin != nil {
		t.Errorf("skins: lower %v upper %v", p.Lower.Skin, p.Upper.Skin)
	}
	if p.Anim == nil || len(p.Anim.Entries) != int(anim.NumSlots) {
		t.Fatalf("animation table not loaded: %+v", p.Anim)
	}
	if err := p.LoadWeapon(res, "rocketl"); err != nil {
		t.Fatalf("LoadWeapon: %v", err)
	}
	if err := p.LoadWeapon(res, "bfg"); err == nil {
		t.Error("LoadWeapon(bfg) succeeded")
	}
	if n := len(p.Parts()); n != 4 {
		t.Errorf("%d parts, want 4", n)
	}

	if _, err := Load(res, "keel", ""); err == nil {
		t.Error("Load(keel) succeeded")
	}
}

func TestOrientations(t *testing.T) {
	root := setupSarge(t)
	res := resource.Dirs(root)
	p, err := Load(res, "sarge", "")
	if err != nil {
		t.Fatal(err)
	}
	if err := p.LoadWeapon(res, "rocketl"); err != nil {
		t.Fatal(err)
	}

	o := p.Orientations(Pose{LegsFrame: 2, TorsoFrame: 1})
	checks := map[string]mgl32.Vec3{
		"lower":  {0, 0, 0},
		"upper":  {0, 0, 26},
		"head":   {0, 0, 43},
		"weapon": {5, 0, 27},
	}
	for key, want := range checks {
		got, ok := o[key]
		if !ok {
			t.Errorf("%s missing", key)
			continue
		}
		if !got.Origin.ApproxEqual(want) {
			t.Errorf("%s origin = %v, want %v", key, got.Origin, want)
		}
	}

	// Frames past the end clamp to the last one.
	o = p.Orientations(Pose{LegsFrame: 99, TorsoFrame: 99})
	if got := o["upper"].Origin[2]; got != 27 {
		t.Errorf("clamped upper z = %v, want 27", got)
	}

	o = p.Orientations(Pose{TorsoYaw: mgl32.DegToRad(90)})
	if !o["weapon"].Origin.ApproxEqualThreshold(mgl32.Vec3{0, 5, 24}, 1e-5) {
		t.Errorf("twisted weapon origin = %v", o["weapon"].Origin)
	}
}

func TestPoseAt(t *testing.T) {
	root := setupSarge(t)
	p, err := Load(resource.Dirs(root), "sarge", "")
	if err != nil {
		t.Fatal(err)
	}
	ps := p.PoseAt(anim.LegsRun, anim.TorsoStand, 250*time.Millisecond)
	if ps.LegsFrame != 2 || ps.TorsoFrame != 2 {
		t.Errorf("PoseAt = %+v, want frame 2 for both", ps)
	}
	p.Anim = nil
	if ps := p.PoseAt(anim.LegsRun, anim.TorsoStand, time.Second); ps != (Pose{}) {
		t.Errorf("PoseAt without table = %+v", ps)
	}
}

func TestSurfaces(t *testing.T) {
	root := setupSarge(t)
	res := resource.Dirs(root)
	p, err := Load(res, "sarge", "")
	if err != nil {
		t.Fatal(err)
	}
	cache := texture.NewCache(res, nil)
	surfs := p.Surfaces(Pose{}, cache)
	if len(surfs) != 3 {
		t.Fatalf("%d surfaces, want 3", len(surfs))
	}
	if surfs[0].Name != "l_legs" || surfs[0].Tex == nil {
		t.Errorf("legs surface %q tex %v", surfs[0].Name, surfs[0].Tex != nil)
	}
	if surfs[1].Tex != nil {
		t.Error("torso got a texture without skin or file")
	}
	if z := surfs[2].Verts[2][2]; z != 41 {
		t.Errorf("head top z = %v, want 41", z)
	}
}
