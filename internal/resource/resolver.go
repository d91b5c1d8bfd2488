package resource

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// Resolver maps a slash-separated asset path (e.g.
// "models/players/sarge/lower.md3") to a file on disk.
type Resolver interface {
	Resolve(rel string) (string, bool)
}

// Dir resolves assets below a single root directory.
type Dir string

func (d Dir) Resolve(rel string) (string, bool) {
	p := filepath.Join(string(d), filepath.FromSlash(rel))
	info, err := os.Stat(p)
	if err != nil || info.IsDir() {
		return "", false
	}
	return p, true
}

func (d Dir) String() string {
	return string(d)
}

// Chain tries each resolver in order; the first hit wins.
type Chain []Resolver

func (c Chain) Resolve(rel string) (string, bool) {
	for _, r := range c {
		if p, ok := r.Resolve(rel); ok {
			return p, true
		}
	}
	return "", false
}

// Dirs builds a Chain of Dir resolvers, skipping empty entries.
func Dirs(roots ...string) Chain {
	var c Chain
	for _, r := range roots {
		if r != "" {
			c = append(c, Dir(r))
		}
	}
	return c
}

// Find resolves the first of several candidate paths.
func Find(r Resolver, candidates ...string) (string, bool) {
	for _, c := range candidates {
		if p, ok := r.Resolve(c); ok {
			return p, true
		}
	}
	return "", false
}

// MustFind is Find with a descriptive error listing what was tried.
func MustFind(r Resolver, candidates ...string) (string, error) {
	if p, ok := Find(r, candidates...); ok {
		return p, nil
	}
	return "", fmt.Errorf("resource: none of [%s] found", strings.Join(candidates, ", "))
}

// PlayerDir is the asset directory of a player model.
func PlayerDir(model string) string {
	return path.Join("models", "players", model)
}

// ModelPath is the path of one body part ("lower", "upper", "head").
func ModelPath(model, part string) string {
	return path.Join(PlayerDir(model), part+".md3")
}

// WeaponPath is the path of a first-person weapon model.
func WeaponPath(weapon string) string {
	return path.Join("models", "weapons2", weapon, weapon+".md3")
}

// AnimationConfigPath is the path of a player's animation table.
func AnimationConfigPath(model string) string {
	return path.Join(PlayerDir(model), "animation.cfg")
}

// SkinPaths lists the skin file candidates for a body part, preferring
// "<part>_<skin>.skin" over "<part>.skin".
func SkinPaths(dir, part, skin string) []string {
	if skin == "" {
		skin = "default"
	}
	return []string{
		path.Join(dir, part+"_"+skin+".skin"),
		path.Join(dir, part+".skin"),
	}
}
