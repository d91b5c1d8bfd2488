package texture

import (
	"io/fs"
	"path/filepath"
	"strings"
)

// Index maps lowercase texture stems to filesystem paths. It is the last
// resort for skins and shaders that name a file by a stale path.
type Index struct {
	entries map[string]string // stem → full path
}

// BuildIndex scans each root recursively for texture files. When a stem
// exists in several formats the earlier entry of Extensions wins.
func BuildIndex(roots ...string) *Index {
	idx := &Index{entries: make(map[string]string)}
	for _, root := range roots {
		filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil || d.IsDir() || !Supported(path) {
				return nil
			}
			s := stem(path)
			existing, exists := idx.entries[s]
			if !exists || rank(path) < rank(existing) {
				idx.entries[s] = path
			}
			return nil
		})
	}
	return idx
}

// ResolvePath returns the indexed path for a texture name, or ("", false).
func (idx *Index) ResolvePath(texName string) (string, bool) {
	if idx == nil {
		return "", false
	}
	path, ok := idx.entries[stem(texName)]
	return path, ok
}

// Len returns the number of indexed textures.
func (idx *Index) Len() int {
	if idx == nil {
		return 0
	}
	return len(idx.entries)
}

// stem reduces "models\players\Sarge\Red.TGA" to "red".
func stem(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	base := name[strings.LastIndex(name, "/")+1:]
	return strings.ToLower(strings.TrimSuffix(base, filepath.Ext(base)))
}

func rank(path string) int {
	ext := strings.ToLower(filepath.Ext(path))
	for i, e := range Extensions {
		if ext == e {
			return i
		}
	}
	return len(Extensions)
}
