package pose

import (
	"image"

	"md3-renderer/internal/md3"
	"md3-renderer/internal/raster"
)

// TextureFunc picks the texture for a mesh; it may return nil.
type TextureFunc func(mesh *md3.Mesh) *image.NRGBA

// ClampFrame limits frame to [0, n-1]; n <= 0 yields 0.
func ClampFrame(frame, n int) int {
	if frame >= n {
		frame = n - 1
	}
	if frame < 0 {
		frame = 0
	}
	return frame
}

// Surfaces poses every mesh of m at frame and places it with o. Meshes
// with fewer frames show their last one. Meshes without vertices are
// skipped.
func Surfaces(m *md3.Model, frame int, o Orientation, tex TextureFunc) []raster.Surface {
	out := make([]raster.Surface, 0, len(m.Meshes))
	for i := range m.Meshes {
		mesh := &m.Meshes[i]
		if len(mesh.Vertices) == 0 {
			continue
		}
		verts := mesh.Vertices[ClampFrame(frame, len(mesh.Vertices))]
		if len(verts) == 0 {
			continue
		}

		s := raster.Surface{
			Name:  mesh.Name(),
			Verts: make([][3]float32, len(verts)),
			UVs:   make([][2]float32, len(mesh.TexCoords)),
			Tris:  make([][3]int32, len(mesh.Triangles)),
		}
		for k, v := range verts {
			s.Verts[k] = o.Transform(v.Position())
		}
		for k, st := range mesh.TexCoords {
			s.UVs[k] = st
		}
		for k, tri := range mesh.Triangles {
			s.Tris[k] = tri
		}
		if tex != nil {
			s.Tex = tex(mesh)
		}
		out = append(out, s)
	}
	return out
}
