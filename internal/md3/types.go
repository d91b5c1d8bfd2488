package md3

// Record sizes in bytes, little-endian throughout.
const (
	HeaderSize     = 108
	FrameSize      = 56 // bounds, local origin, radius, 16-byte name
	TagSize        = 112
	MeshHeaderSize = 108
	ShaderSize     = 68
	TriangleSize   = 12
	TexCoordSize   = 8
	VertexSize     = 8
)

// Version is the format version written by Encode. Decode does not check it.
const Version = 15

// Ident is the magic found at the start of the file and of every mesh.
var Ident = [4]byte{'I', 'D', 'P', '3'}

// Header is the fixed file header.
type Header struct {
	Ident        [4]byte
	Version      int32
	Name         Name
	Flags        int32
	NumFrames    int32
	NumTags      int32
	NumMeshes    int32
	MaxSkins     int32
	HeaderLength int32 // offset of the frame records
	TagStart     int32
	TagEnd       int32 // offset of the first mesh
	FileSize     int32
}

// Tag is an attachment point for one animation frame.
type Tag struct {
	Name     Name
	Position [3]float32
	Axis     [3][3]float32 // row-major
}

// MeshHeader describes one sub-mesh. The *Start fields and MeshSize are
// relative to the first byte of the mesh header.
type MeshHeader struct {
	Ident         [4]byte
	Name          Name
	Flags         int32
	NumFrames     int32
	NumShaders    int32
	NumVertices   int32
	NumTriangles  int32
	TriStart      int32
	ShaderStart   int32
	TexCoordStart int32
	VertexStart   int32
	MeshSize      int32
}

// Shader references a material path for a mesh.
type Shader struct {
	Name  Name
	Index int32
}

// Triangle holds three 0-based indices into the mesh's vertex arrays.
type Triangle [3]int32

// TexCoord is a (u, v) pair shared by every frame of a mesh.
type TexCoord [2]float32

// Vertex is a fixed-point position (1/64 unit per tick) plus a packed
// spherical normal (longitude in the low byte, latitude in the high byte).
type Vertex struct {
	Pos    [3]int16
	Normal uint16
}

// Mesh is a decoded sub-surface. Vertices is indexed [frame][vertex].
type Mesh struct {
	Header    MeshHeader
	Shaders   []Shader
	Triangles []Triangle
	TexCoords []TexCoord
	Vertices  [][]Vertex
}

// Name returns the mesh name without padding.
func (m *Mesh) Name() string {
	return m.Header.Name.String()
}

// Model is a fully decoded file. Tags is indexed [frame][tag].
type Model struct {
	Header Header
	Tags   [][]Tag
	Meshes []Mesh
}

// NumFrames returns the number of animation frames in the header.
func (m *Model) NumFrames() int {
	return int(m.Header.NumFrames)
}

// FindTag returns the tag called name at frame.
func (m *Model) FindTag(frame int, name string) (Tag, bool) {
	if frame < 0 || frame >= len(m.Tags) {
		return Tag{}, false
	}
	for _, t := range m.Tags[frame] {
		if t.Name.String() == name {
			return t, true
		}
	}
	return Tag{}, false
}

// TagNames lists the tag names of the first frame.
func (m *Model) TagNames() []string {
	if len(m.Tags) == 0 {
		return nil
	}
	names := make([]string, len(m.Tags[0]))
	for i, t := range m.Tags[0] {
		names[i] = t.Name.String()
	}
	return names
}
