package md3

import "github.com/go-gl/mathgl/mgl32"

// Bounds is an axis-aligned box in model units.
type Bounds struct {
	Min, Max mgl32.Vec3
}

// IsZero reports whether b is the zero box. Model.Bounds returns it when
// no vertex contributed, but a model whose vertices all sit at the origin
// has the same box; use FrameBounds to tell them apart.
func (b Bounds) IsZero() bool {
	return b == Bounds{}
}

func (b Bounds) Size() mgl32.Vec3 {
	return b.Max.Sub(b.Min)
}

func (b Bounds) Center() mgl32.Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// Union returns the smallest box holding b and o. Both boxes count, the
// zero box included; skip empty ones using the flag from FrameBounds.
func (b Bounds) Union(o Bounds) Bounds {
	for i := 0; i < 3; i++ {
		b.Min[i] = min(b.Min[i], o.Min[i])
		b.Max[i] = max(b.Max[i], o.Max[i])
	}
	return b
}

// Bounds scans every mesh's vertices at frame. Meshes that have no such
// frame are skipped; if nothing is left the zero box is returned.
func (m *Model) Bounds(frame int) Bounds {
	b, _ := m.FrameBounds(frame)
	return b
}

// FrameBounds is Bounds plus whether any vertex contributed.
func (m *Model) FrameBounds(frame int) (Bounds, bool) {
	var b Bounds
	found := false
	for i := range m.Meshes {
		verts := m.Meshes[i].Vertices
		if frame < 0 || frame >= len(verts) {
			continue
		}
		for _, v := range verts[frame] {
			p := v.Position()
			if !found {
				b = Bounds{Min: p, Max: p}
				found = true
				continue
			}
			for k := 0; k < 3; k++ {
				b.Min[k] = min(b.Min[k], p[k])
				b.Max[k] = max(b.Max[k], p[k])
			}
		}
	}
	return b, found
}
