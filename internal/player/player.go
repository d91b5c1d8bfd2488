package player

import (
	"errors"
	"fmt"
	"image"
	"os"
	"path"
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"md3-renderer/internal/anim"
	"md3-renderer/internal/md3"
	"md3-renderer/internal/pose"
	"md3-renderer/internal/raster"
	"md3-renderer/internal/resource"
	"md3-renderer/internal/skin"
	"md3-renderer/internal/texture"
)

// Part is one loaded model of a character together with its skin.
type Part struct {
	Name  string // "lower", "upper", "head" or the weapon name
	Dir   string // asset directory, slash-separated
	Model *md3.Model
	Skin  *skin.Skin
}

// Player is a character assembled from separate legs, torso and head
// models hung together by tags.
type Player struct {
	Model  string
	Lower  *Part
	Upper  *Part
	Head   *Part
	Weapon *Part
	Anim   *anim.Table
}

// Pose selects the frames and aim of one rendered moment.
type Pose struct {
	LegsFrame  int
	TorsoFrame int
	TorsoYaw   float32 // radians around the torso's up axis
	HeadPitch  float32 // radians, positive looks down
}

// Load reads the three body parts of a player model. A missing skin is
// tolerated, as is a missing animation.cfg.
func Load(res resource.Resolver, model, skinName string) (*Player, error) {
	p := &Player{Model: model}
	dir := resource.PlayerDir(model)

	parts := []struct {
		name string
		dst  **Part
	}{
		{"lower", &p.Lower},
		{"upper", &p.Upper},
		{"head", &p.Head},
	}
	for _, pt := range parts {
		part, err := loadPart(res, dir, pt.name, resource.ModelPath(model, pt.name), skinName)
		if err != nil {
			return nil, fmt.Errorf("player: %s: %w", model, err)
		}
		*pt.dst = part
	}

	t, err := anim.Load(res, model)
	switch {
	case err == nil:
		p.Anim = t
	case errors.Is(err, os.ErrNotExist):
	default:
		return nil, fmt.Errorf("player: %s: %w", model, err)
	}
	return p, nil
}

// LoadWeapon attaches models/weapons2/<weapon>/<weapon>.md3 to tag_weapon.
func (p *Player) LoadWeapon(res resource.Resolver, weapon string) error {
	rel := resource.WeaponPath(weapon)
	part, err := loadPart(res, path.Dir(rel), weapon, rel, "")
	if err != nil {
		return fmt.Errorf("player: weapon: %w", err)
	}
	p.Weapon = part
	return nil
}

func loadPart(res resource.Resolver, dir, name, rel, skinName string) (*Part, error) {
	file, ok := res.Resolve(rel)
	if !ok {
		return nil, fmt.Errorf("%s: %w", rel, os.ErrNotExist)
	}
	m, err := md3.Load(file)
	if err != nil {
		return nil, err
	}
	part := &Part{Name: name, Dir: dir, Model: m}
	if s, err := skin.Load(res, dir, name, skinName); err == nil {
		part.Skin = s
	}
	return part, nil
}

// PoseAt picks the legs and torso frames for two animations after
// elapsed playback time. Without an animation table frame 0 is used.
func (p *Player) PoseAt(legs, torso anim.Slot, elapsed time.Duration) Pose {
	if p.Anim == nil {
		return Pose{}
	}
	return Pose{
		LegsFrame:  p.Anim.SlotOrPlaceholder(legs).FrameAt(elapsed),
		TorsoFrame: p.Anim.SlotOrPlaceholder(torso).FrameAt(elapsed),
	}
}

// Orientations returns where each part sits in world space. The legs
// stand at the origin; the torso hangs on the legs' tag_torso, the head
// and weapon on the torso's tag_head and tag_weapon. Parts whose tag is
// missing are reported absent.
func (p *Player) Orientations(ps Pose) map[string]pose.Orientation {
	out := map[string]pose.Orientation{"lower": pose.Identity()}
	lower := out["lower"]

	tag, ok := p.Lower.Model.FindTag(pose.ClampFrame(ps.LegsFrame, p.Lower.Model.NumFrames()), "tag_torso")
	if !ok {
		return out
	}
	upper := lower.Attach(tag)
	if ps.TorsoYaw != 0 {
		upper = upper.RotateLocal(mgl32.Rotate3DZ(ps.TorsoYaw))
	}
	out["upper"] = upper

	torsoFrame := pose.ClampFrame(ps.TorsoFrame, p.Upper.Model.NumFrames())
	if tag, ok := p.Upper.Model.FindTag(torsoFrame, "tag_head"); ok {
		head := upper.Attach(tag)
		if ps.HeadPitch != 0 {
			head = head.RotateLocal(mgl32.Rotate3DY(ps.HeadPitch))
		}
		out["head"] = head
	}
	if p.Weapon != nil {
		if tag, ok := p.Upper.Model.FindTag(torsoFrame, "tag_weapon"); ok {
			out["weapon"] = upper.Attach(tag)
		}
	}
	return out
}

// Surfaces poses all parts for rendering. The head always shows frame 0.
func (p *Player) Surfaces(ps Pose, tex texture.Resolver) []raster.Surface {
	orient := p.Orientations(ps)
	var out []raster.Surface
	add := func(part *Part, key string, frame int) {
		o, ok := orient[key]
		if part == nil || !ok {
			return
		}
		out = append(out, pose.Surfaces(part.Model, frame, o, part.textureFunc(tex))...)
	}
	add(p.Lower, "lower", ps.LegsFrame)
	add(p.Upper, "upper", ps.TorsoFrame)
	add(p.Head, "head", 0)
	add(p.Weapon, "weapon", 0)
	return out
}

// Parts lists the loaded parts in render order.
func (p *Player) Parts() []*Part {
	var out []*Part
	for _, part := range []*Part{p.Lower, p.Upper, p.Head, p.Weapon} {
		if part != nil {
			out = append(out, part)
		}
	}
	return out
}

// MeshTextures resolves mesh textures for a stand-alone model: skin
// assignment, shader paths, then names derived from the mesh.
func MeshTextures(tex texture.Resolver, s *skin.Skin, dir, part string) pose.TextureFunc {
	if tex == nil {
		return nil
	}
	return func(mesh *md3.Mesh) *image.NRGBA {
		name := mesh.Name()
		skinTex, _ := s.Texture(name)
		shaders := make([]string, len(mesh.Shaders))
		for i := range mesh.Shaders {
			shaders[i] = mesh.Shaders[i].Name.String()
		}
		img, _ := texture.First(tex, texture.MeshCandidates(skinTex, shaders, dir, part, name))
		return img
	}
}

func (part *Part) textureFunc(tex texture.Resolver) pose.TextureFunc {
	return MeshTextures(tex, part.Skin, part.Dir, part.Name)
}
