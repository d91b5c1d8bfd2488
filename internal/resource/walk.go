package resource

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// FindAll walks each root and returns every file with the given
// extension (case-insensitive, e.g. ".md3"), sorted. Missing roots are
// skipped; unreadable subdirectories are ignored.
func FindAll(ext string, roots ...string) []string {
	ext = strings.ToLower(ext)
	seen := make(map[string]bool)
	var files []string
	for _, root := range roots {
		if info, err := os.Stat(root); err != nil || !info.IsDir() {
			continue
		}
		filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				if d != nil && d.IsDir() {
					return fs.SkipDir
				}
				return nil
			}
			if d.IsDir() || strings.ToLower(filepath.Ext(p)) != ext {
				return nil
			}
			abs, err := filepath.Abs(p)
			if err != nil {
				abs = p
			}
			if !seen[abs] {
				seen[abs] = true
				files = append(files, p)
			}
			return nil
		})
	}
	sort.Strings(files)
	return files
}
