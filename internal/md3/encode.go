package md3

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

// Encode writes m in the canonical layout: header, frame records, tags,
// then each mesh as header, shaders, triangles, tex coords and vertices.
// Counts and offsets in the headers are recomputed from the slices; the
// frame records are written zeroed.
func Encode(w io.Writer, m *Model) error {
	numFrames := len(m.Tags)
	numTags := 0
	if numFrames > 0 {
		numTags = len(m.Tags[0])
	}
	for f, tags := range m.Tags {
		if len(tags) != numTags {
			return fmt.Errorf("md3: encode: frame %d has %d tags, want %d", f, len(tags), numTags)
		}
	}

	tagStart := HeaderSize + numFrames*FrameSize
	tagEnd := tagStart + numFrames*numTags*TagSize
	meshHeaders := make([]MeshHeader, len(m.Meshes))
	size := tagEnd
	for i := range m.Meshes {
		mh, err := layoutMesh(&m.Meshes[i])
		if err != nil {
			return fmt.Errorf("md3: encode mesh %d: %w", i, err)
		}
		meshHeaders[i] = mh
		size += int(mh.MeshSize)
	}

	h := m.Header
	h.Ident = Ident
	if h.Version == 0 {
		h.Version = Version
	}
	h.NumFrames = int32(numFrames)
	h.NumTags = int32(numTags)
	h.NumMeshes = int32(len(m.Meshes))
	h.HeaderLength = HeaderSize
	h.TagStart = int32(tagStart)
	h.TagEnd = int32(tagEnd)
	h.FileSize = int32(size)

	e := &encoder{w: bufio.NewWriter(w)}
	e.raw(h.Ident[:])
	e.i32(h.Version)
	e.raw(h.Name[:])
	e.i32(h.Flags, h.NumFrames, h.NumTags, h.NumMeshes, h.MaxSkins, h.HeaderLength, h.TagStart, h.TagEnd, h.FileSize)
	e.raw(make([]byte, numFrames*FrameSize))
	for _, tags := range m.Tags {
		for _, t := range tags {
			e.raw(t.Name[:])
			e.f32(t.Position[:]...)
			for row := 0; row < 3; row++ {
				e.f32(t.Axis[row][:]...)
			}
		}
	}
	for i := range m.Meshes {
		e.mesh(&m.Meshes[i], meshHeaders[i])
	}
	if e.err != nil {
		return fmt.Errorf("md3: encode: %w", e.err)
	}
	if err := e.w.Flush(); err != nil {
		return fmt.Errorf("md3: encode: %w", err)
	}
	return nil
}

func layoutMesh(m *Mesh) (MeshHeader, error) {
	nv := 0
	if len(m.Vertices) > 0 {
		nv = len(m.Vertices[0])
	}
	for f, verts := range m.Vertices {
		if len(verts) != nv {
			return MeshHeader{}, fmt.Errorf("frame %d has %d vertices, want %d", f, len(verts), nv)
		}
	}
	if len(m.TexCoords) != nv {
		return MeshHeader{}, fmt.Errorf("%d tex coords for %d vertices", len(m.TexCoords), nv)
	}
	mh := m.Header
	mh.Ident = Ident
	mh.NumFrames = int32(len(m.Vertices))
	mh.NumShaders = int32(len(m.Shaders))
	mh.NumVertices = int32(nv)
	mh.NumTriangles = int32(len(m.Triangles))
	mh.ShaderStart = MeshHeaderSize
	mh.TriStart = mh.ShaderStart + mh.NumShaders*ShaderSize
	mh.TexCoordStart = mh.TriStart + mh.NumTriangles*TriangleSize
	mh.VertexStart = mh.TexCoordStart + mh.NumVertices*TexCoordSize
	mh.MeshSize = mh.VertexStart + mh.NumFrames*mh.NumVertices*VertexSize
	return mh, nil
}

type encoder struct {
	w   *bufio.Writer
	err error
	buf [4]byte
}

func (e *encoder) raw(b []byte) {
	if e.err != nil {
		return
	}
	_, e.err = e.w.Write(b)
}

func (e *encoder) i32(vs ...int32) {
	for _, v := range vs {
		binary.LittleEndian.PutUint32(e.buf[:], uint32(v))
		e.raw(e.buf[:4])
	}
}

func (e *encoder) f32(vs ...float32) {
	for _, v := range vs {
		binary.LittleEndian.PutUint32(e.buf[:], math.Float32bits(v))
		e.raw(e.buf[:4])
	}
}

func (e *encoder) u16(vs ...uint16) {
	for _, v := range vs {
		binary.LittleEndian.PutUint16(e.buf[:], v)
		e.raw(e.buf[:2])
	}
}

func (e *encoder) mesh(m *Mesh, mh MeshHeader) {
	e.raw(mh.Ident[:])
	e.raw(mh.Name[:])
	e.i32(mh.Flags, mh.NumFrames, mh.NumShaders, mh.NumVertices, mh.NumTriangles,
		mh.TriStart, mh.ShaderStart, mh.TexCoordStart, mh.VertexStart, mh.MeshSize)
	for _, s := range m.Shaders {
		e.raw(s.Name[:])
		e.i32(s.Index)
	}
	for _, t := range m.Triangles {
		e.i32(t[:]...)
	}
	for _, tc := range m.TexCoords {
		e.f32(tc[:]...)
	}
	for _, verts := range m.Vertices {
		for _, v := range verts {
			e.u16(uint16(v.Pos[0]), uint16(v.Pos[1]), uint16(v.Pos[2]), v.Normal)
		}
	}
}
