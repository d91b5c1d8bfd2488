package view

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestMatrixAxes(t *testing.T) {
	tests := []struct {
		cam       Camera
		in, want  mgl64.Vec3
	}{
		// Forward faces the viewer, left is screen right, up is up.
		{Camera{}, mgl64.Vec3{1, 0, 0}, mgl64.Vec3{0, 0, 1}},
		{Camera{}, mgl64.Vec3{0, 1, 0}, mgl64.Vec3{1, 0, 0}},
		{Camera{}, mgl64.Vec3{0, 0, 1}, mgl64.Vec3{0, 1, 0}},
		{Camera{Yaw: 90}, mgl64.Vec3{1, 0, 0}, mgl64.Vec3{1, 0, 0}},
		{Camera{Pitch: 90}, mgl64.Vec3{0, 0, 1}, mgl64.Vec3{0, 0, 1}},
		{Camera{Pitch: 90}, mgl64.Vec3{1, 0, 0}, mgl64.Vec3{0, -1, 0}},
	}
	for _, tt := range tests {
		got := tt.cam.Matrix().Mul3x1(tt.in)
		if !got.ApproxEqualThreshold(tt.want, 1e-9) {
			t.Errorf("%+v: %v -> %v, want %v", tt.cam, tt.in, got, tt.want)
		}
	}
}

func TestMatrixOrthonormal(t *testing.T) {
	m := Camera{Yaw: 37, Pitch: -12}.Matrix()
	id := m.Mul3(m.Transpose())
	if !id.ApproxEqualThreshold(mgl64.Ident3(), 1e-9) {
		t.Errorf("R·Rᵀ = %v", id)
	}
	if d := m.Det(); math.Abs(d-1) > 1e-9 {
		t.Errorf("det = %v, want 1", d)
	}
}

func TestFitOrthographic(t *testing.T) {
	verts := [][3]float32{{0, -1, 0}, {0, 1, 2}, {0, 1, 0}}
	p := Fit(Camera{}, [][][3]float32{verts}, 100, 10)
	if p.Scale != 40 {
		t.Fatalf("Scale = %v, want 40", p.Scale)
	}
	px, py, _ := p.Project(verts)
	want := [][2]float64{{10, 90}, {90, 10}, {90, 90}}
	for i, w := range want {
		if math.Abs(px[i]-w[0]) > 1e-9 || math.Abs(py[i]-w[1]) > 1e-9 {
			t.Errorf("vertex %d -> (%v, %v), want %v", i, px[i], py[i], w)
		}
	}
}

func TestFitEmpty(t *testing.T) {
	p := Fit(Camera{}, nil, 64, 4)
	px, _, _ := p.Project([][3]float32{{0, 0, 0}})
	if px[0] != 32 {
		t.Errorf("origin -> %v, want centered", px[0])
	}
}

func TestPerspective(t *testing.T) {
	verts := [][3]float32{{1, 1, 0}, {-1, 1, 0}, {0, -1, 0}}
	p := Fit(Camera{Perspective: true}, [][][3]float32{verts}, 200, 0)
	px, _, pz := p.Project(verts)
	if pz[0] <= pz[1] {
		t.Fatalf("depths %v: front vertex not closer", pz)
	}
	if px[0] <= px[1] {
		t.Errorf("near vertex at x=%v, far at x=%v; want near farther from center", px[0], px[1])
	}
}
