package view

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// DefaultFOV is the vertical field of view used when Perspective is set
// without an explicit FOV, in degrees.
const DefaultFOV = 30.0

// base turns model space (X forward, Y left, Z up) into view space
// (X right, Y up, Z toward the viewer) with the camera in front of the
// model.
var base = mgl64.Mat3FromRows(
	mgl64.Vec3{0, 1, 0},
	mgl64.Vec3{0, 0, 1},
	mgl64.Vec3{1, 0, 0},
)

// Camera is an orbit camera around the model origin. Angles are degrees.
// Positive Yaw turns the model to its left, positive Pitch looks down on it.
type Camera struct {
	Yaw         float64
	Pitch       float64
	Perspective bool
	FOV         float64
}

// Front is the default three-quarter view.
func Front() Camera {
	return Camera{Yaw: 30, Pitch: 15}
}

// Matrix returns the model-to-view rotation.
func (c Camera) Matrix() mgl64.Mat3 {
	yaw := mgl64.Rotate3DZ(mgl64.DegToRad(c.Yaw))
	pitch := mgl64.Rotate3DX(mgl64.DegToRad(c.Pitch))
	return pitch.Mul3(base).Mul3(yaw)
}

func (c Camera) fov() float64 {
	if c.FOV <= 0 || c.FOV >= 180 {
		return DefaultFOV
	}
	return c.FOV
}

// Projection maps model-space vertices to pixel coordinates so that the
// fitted geometry fills a square target.
type Projection struct {
	R      mgl64.Mat3
	Center mgl64.Vec3
	Scale  float64
	Size   int

	persp   bool
	camDist float64
	zCenter float64
}

// Fit frames the given vertex sets for a size×size target with margin
// pixels left on each side.
func Fit(cam Camera, sets [][][3]float32, size, margin int) *Projection {
	R := cam.Matrix()

	lo := mgl64.Vec3{math.Inf(1), math.Inf(1), math.Inf(1)}
	hi := mgl64.Vec3{math.Inf(-1), math.Inf(-1), math.Inf(-1)}
	n := 0
	for _, verts := range sets {
		for _, v := range verts {
			t := R.Mul3x1(vec(v))
			for k := 0; k < 3; k++ {
				lo[k] = math.Min(lo[k], t[k])
				hi[k] = math.Max(hi[k], t[k])
			}
			n++
		}
	}
	p := &Projection{R: R, Size: size, Scale: 1}
	if n == 0 {
		return p
	}

	p.Center = lo.Add(hi).Mul(0.5)
	span := math.Max(hi[0]-lo[0], hi[1]-lo[1])
	if span < 0.001 {
		span = 0.001
	}
	p.Scale = float64(size-2*margin) / span

	if cam.Perspective {
		half := math.Max(hi[0]-lo[0], hi[1]-lo[1]) / 2
		if half < 0.001 {
			half = 0.001
		}
		p.persp = true
		p.zCenter = p.Center[2]
		p.camDist = half / math.Tan(mgl64.DegToRad(cam.fov()/2))
		// Keep the nearest vertex in front of the camera.
		if d := hi[2] - p.zCenter; p.camDist <= d {
			p.camDist = d + half
		}
	}
	return p
}

// Project transforms vertices to screen X, screen Y (down) and depth in
// pixel units (larger is closer).
func (p *Projection) Project(verts [][3]float32) (px, py, pz []float64) {
	n := len(verts)
	px = make([]float64, n)
	py = make([]float64, n)
	pz = make([]float64, n)

	half := float64(p.Size) / 2
	for i, v := range verts {
		t := p.R.Mul3x1(vec(v))
		x, y := t[0]-p.Center[0], t[1]-p.Center[1]
		if p.persp {
			depth := math.Max(p.camDist-(t[2]-p.zCenter), 0.1)
			f := p.camDist / depth
			x *= f
			y *= f
		}
		px[i] = x*p.Scale + half
		py[i] = -y*p.Scale + half
		pz[i] = t[2] * p.Scale
	}
	return px, py, pz
}

func vec(v [3]float32) mgl64.Vec3 {
	return mgl64.Vec3{float64(v[0]), float64(v[1]), float64(v[2])}
}
