package md3

import (
	"fmt"
	"io"
	"os"
)

// Load reads an MD3 file. The file is closed before Load returns; on any
// error no model is returned.
func Load(path string) (*Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, ioError("open "+path, err)
	}
	defer f.Close()
	return Decode(f)
}

// Decode reads a complete model from r, starting at offset 0.
func Decode(r io.ReadSeeker) (*Model, error) {
	size, err := r.Seek(0, io.SeekEnd)
	if err != nil {
		return nil, ioError("seek end", err)
	}
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return nil, ioError("seek start", err)
	}
	d := &decoder{r: r, size: size}
	return d.decode()
}

type decoder struct {
	r    io.ReadSeeker
	size int64
	pos  int64
}

// fits reports whether count records of recSize bytes fit in the bytes
// remaining after off.
func (d *decoder) fits(off, recSize int64, counts ...int64) bool {
	avail := d.size - off
	if off < 0 || avail < 0 {
		return false
	}
	n := recSize
	for _, c := range counts {
		if c < 0 {
			return false
		}
		if c == 0 {
			return true
		}
		if n > avail/c {
			return false
		}
		n *= c
	}
	return n <= avail
}

func (d *decoder) seek(step string, off int64) error {
	if _, err := d.r.Seek(off, io.SeekStart); err != nil {
		return ioError("seek "+step, err)
	}
	d.pos = off
	return nil
}

// read reads exactly n bytes at the current position.
func (d *decoder) read(step string, n int64) (*cursor, error) {
	buf := make([]byte, n)
	if _, err := io.ReadFull(d.r, buf); err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return nil, ioError("read "+step, err)
	}
	d.pos += n
	return &cursor{data: buf}, nil
}

// table reads count records of recSize bytes at off, refusing tables that
// extend past the end of the file before allocating anything.
func (d *decoder) table(step string, off int64, recSize int64, counts ...int64) (*cursor, error) {
	if !d.fits(off, recSize, counts...) {
		return nil, corrupt(step, "table at offset %d (%v x %d bytes) exceeds file size %d", off, counts, recSize, d.size)
	}
	n := recSize
	for _, c := range counts {
		n *= c
	}
	if n == 0 {
		return &cursor{}, nil
	}
	if off != d.pos {
		if err := d.seek(step, off); err != nil {
			return nil, err
		}
	}
	return d.read(step, n)
}

func (d *decoder) decode() (*Model, error) {
	c, err := d.read("header", HeaderSize)
	if err != nil {
		return nil, err
	}
	h := Header{
		Ident:        c.ident(),
		Version:      c.i32(),
		Name:         c.name(),
		Flags:        c.i32(),
		NumFrames:    c.i32(),
		NumTags:      c.i32(),
		NumMeshes:    c.i32(),
		MaxSkins:     c.i32(),
		HeaderLength: c.i32(),
		TagStart:     c.i32(),
		TagEnd:       c.i32(),
		FileSize:     c.i32(),
	}
	if c.err != nil {
		return nil, ioError("decode header", c.err)
	}
	if h.Ident != Ident {
		return nil, &DecodeError{Kind: KindInvalidFormat, Step: "header", Err: fmt.Errorf("bad magic %q, want %q", h.Ident[:], Ident[:])}
	}
	if h.NumFrames < 0 || h.NumTags < 0 || h.NumMeshes < 0 || h.MaxSkins < 0 {
		return nil, corrupt("header", "negative count (frames=%d tags=%d meshes=%d skins=%d)",
			h.NumFrames, h.NumTags, h.NumMeshes, h.MaxSkins)
	}

	// Frame records are only skipped.
	if !d.fits(d.pos, FrameSize, int64(h.NumFrames)) {
		return nil, corrupt("frames", "%d frame records exceed file size %d", h.NumFrames, d.size)
	}
	if err := d.seek("frames", d.pos+int64(h.NumFrames)*FrameSize); err != nil {
		return nil, err
	}

	tags, err := d.tags(h)
	if err != nil {
		return nil, err
	}

	if !d.fits(d.pos, MeshHeaderSize, int64(h.NumMeshes)) {
		return nil, corrupt("meshes", "%d mesh headers exceed file size %d", h.NumMeshes, d.size)
	}
	meshes := make([]Mesh, 0, h.NumMeshes)
	for i := 0; i < int(h.NumMeshes); i++ {
		m, err := d.mesh(i)
		if err != nil {
			return nil, err
		}
		meshes = append(meshes, m)
	}

	return &Model{Header: h, Tags: tags, Meshes: meshes}, nil
}

func (d *decoder) tags(h Header) ([][]Tag, error) {
	c, err := d.table("tags", d.pos, TagSize, int64(h.NumFrames), int64(h.NumTags))
	if err != nil {
		return nil, err
	}
	tags := make([][]Tag, h.NumFrames)
	for f := range tags {
		tags[f] = make([]Tag, h.NumTags)
		for i := range tags[f] {
			t := &tags[f][i]
			t.Name = c.name()
			for k := 0; k < 3; k++ {
				t.Position[k] = c.f32()
			}
			for row := 0; row < 3; row++ {
				for col := 0; col < 3; col++ {
					t.Axis[row][col] = c.f32()
				}
			}
		}
	}
	if c.err != nil {
		return nil, ioError("decode tags", c.err)
	}
	return tags, nil
}

func (d *decoder) mesh(i int) (Mesh, error) {
	start := d.pos
	step := func(s string) string { return fmt.Sprintf("mesh %d %s", i, s) }

	c, err := d.read(step("header"), MeshHeaderSize)
	if err != nil {
		return Mesh{}, err
	}
	h := MeshHeader{
		Ident:         c.ident(),
		Name:          c.name(),
		Flags:         c.i32(),
		NumFrames:     c.i32(),
		NumShaders:    c.i32(),
		NumVertices:   c.i32(),
		NumTriangles:  c.i32(),
		TriStart:      c.i32(),
		ShaderStart:   c.i32(),
		TexCoordStart: c.i32(),
		VertexStart:   c.i32(),
		MeshSize:      c.i32(),
	}
	if c.err != nil {
		return Mesh{}, ioError("decode "+step("header"), c.err)
	}
	if h.NumFrames < 0 || h.NumShaders < 0 || h.NumVertices < 0 || h.NumTriangles < 0 {
		return Mesh{}, corrupt(step("header"), "negative count (frames=%d shaders=%d vertices=%d triangles=%d)",
			h.NumFrames, h.NumShaders, h.NumVertices, h.NumTriangles)
	}
	m := Mesh{Header: h}

	c, err = d.table(step("triangles"), start+int64(h.TriStart), TriangleSize, int64(h.NumTriangles))
	if err != nil {
		return Mesh{}, err
	}
	m.Triangles = make([]Triangle, h.NumTriangles)
	for t := range m.Triangles {
		for k := 0; k < 3; k++ {
			idx := c.i32()
			if c.err == nil && (idx < 0 || idx >= h.NumVertices) {
				return Mesh{}, corrupt(step("triangles"), "triangle %d index %d out of range [0,%d)", t, idx, h.NumVertices)
			}
			m.Triangles[t][k] = idx
		}
	}
	if c.err != nil {
		return Mesh{}, ioError("decode "+step("triangles"), c.err)
	}

	c, err = d.table(step("shaders"), start+int64(h.ShaderStart), ShaderSize, int64(h.NumShaders))
	if err != nil {
		return Mesh{}, err
	}
	m.Shaders = make([]Shader, h.NumShaders)
	for s := range m.Shaders {
		m.Shaders[s] = Shader{Name: c.name(), Index: c.i32()}
	}
	if c.err != nil {
		return Mesh{}, ioError("decode "+step("shaders"), c.err)
	}

	c, err = d.table(step("tex coords"), start+int64(h.TexCoordStart), TexCoordSize, int64(h.NumVertices))
	if err != nil {
		return Mesh{}, err
	}
	m.TexCoords = make([]TexCoord, h.NumVertices)
	for v := range m.TexCoords {
		m.TexCoords[v] = TexCoord{c.f32(), c.f32()}
	}
	if c.err != nil {
		return Mesh{}, ioError("decode "+step("tex coords"), c.err)
	}

	c, err = d.table(step("vertices"), start+int64(h.VertexStart), VertexSize, int64(h.NumFrames), int64(h.NumVertices))
	if err != nil {
		return Mesh{}, err
	}
	m.Vertices = make([][]Vertex, h.NumFrames)
	for f := range m.Vertices {
		frame := make([]Vertex, h.NumVertices)
		for v := range frame {
			frame[v] = Vertex{
				Pos:    [3]int16{c.i16(), c.i16(), c.i16()},
				Normal: c.u16(),
			}
		}
		m.Vertices[f] = frame
	}
	if c.err != nil {
		return Mesh{}, ioError("decode "+step("vertices"), c.err)
	}

	end := start + int64(h.MeshSize)
	if end < d.pos {
		return Mesh{}, corrupt(step("size"), "mesh ends at %d but data was read up to %d", end, d.pos)
	}
	if end > d.size {
		return Mesh{}, corrupt(step("size"), "mesh ends at %d past file size %d", end, d.size)
	}
	if err := d.seek(step("end"), end); err != nil {
		return Mesh{}, err
	}
	return m, nil
}
