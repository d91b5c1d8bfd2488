package texture

import (
	"path"
	"strings"
)

// Alternatives expands a texture path into the same file in every
// supported format, the given extension first. Backslashes become slashes.
func Alternatives(name string) []string {
	name = strings.ReplaceAll(strings.TrimSpace(name), "\\", "/")
	if name == "" {
		return nil
	}
	out := []string{name}
	ext := path.Ext(name)
	base := strings.TrimSuffix(name, ext)
	for _, e := range Extensions {
		if strings.EqualFold(e, ext) {
			continue
		}
		out = append(out, base+e)
	}
	return out
}

// MeshCandidates lists texture names to try for a mesh, in order: the
// skin assignment, the mesh's shaders, "<dir>/<part>_<mesh>" and
// "<dir>/<mesh>". Empty inputs are skipped.
func MeshCandidates(skinTex string, shaders []string, dir, part, mesh string) []string {
	var out []string
	if skinTex != "" {
		out = append(out, skinTex)
	}
	for _, s := range shaders {
		if s != "" {
			out = append(out, s)
		}
	}
	if dir != "" && mesh != "" {
		if part != "" {
			out = append(out, path.Join(dir, part+"_"+mesh+".tga"))
		}
		out = append(out, path.Join(dir, mesh+".tga"))
	}
	return out
}
