package skin

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"md3-renderer/internal/resource"
)

// Skin maps mesh (surface) names to texture paths.
type Skin struct {
	Path     string
	Surfaces map[string]string
	order    []string
}

// Texture returns the texture assigned to a surface.
func (s *Skin) Texture(surface string) (string, bool) {
	if s == nil {
		return "", false
	}
	tex, ok := s.Surfaces[surface]
	if !ok {
		tex, ok = s.Surfaces[strings.ToLower(surface)]
	}
	return tex, ok
}

// Names returns the surface names in file order.
func (s *Skin) Names() []string {
	return s.order
}

// Parse reads "surface,texture" lines. Comments, lines without a comma
// and surfaces with an empty texture (tag_* entries) are skipped.
func Parse(r io.Reader) (*Skin, error) {
	s := &Skin{Surfaces: make(map[string]string)}
	br := bufio.NewReader(r)
	for {
		raw, err := br.ReadString('\n')
		if err != nil && err != io.EOF {
			return nil, fmt.Errorf("skin: read: %w", err)
		}
		s.add(raw)
		if err == io.EOF {
			return s, nil
		}
	}
}

func (s *Skin) add(raw string) {
	line := strings.TrimSpace(raw)
	if line == "" || strings.HasPrefix(line, "//") {
		return
	}
	surface, tex, ok := strings.Cut(line, ",")
	if !ok {
		return
	}
	surface = strings.ToLower(strings.TrimSpace(surface))
	tex = strings.TrimSpace(tex)
	if surface == "" || tex == "" {
		return
	}
	if _, dup := s.Surfaces[surface]; !dup {
		s.order = append(s.order, surface)
	}
	s.Surfaces[surface] = strings.ReplaceAll(tex, "\\", "/")
}

// Load resolves the first existing skin for a model part, trying
// "<part>_<name>.skin" then "<part>.skin" inside dir.
func Load(res resource.Resolver, dir, part, name string) (*Skin, error) {
	path, err := resource.MustFind(res, resource.SkinPaths(dir, part, name)...)
	if err != nil {
		return nil, fmt.Errorf("skin: %w", err)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("skin: open %s: %w", path, err)
	}
	defer f.Close()

	s, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("skin: %s: %w", path, err)
	}
	s.Path = path
	return s, nil
}
