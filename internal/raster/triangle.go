package raster

import (
	"image"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// RasterizeTriangle fills one flat-shaded triangle into fb with texture
// mapping and a z-buffer (larger z wins). vi indexes the projected
// positions, ti the UVs. Texels with alpha below 8 are discarded.
func RasterizeTriangle(
	fb *FrameBuffer,
	px, py, pz []float64,
	uvs [][2]float32,
	vi [3]int, ti [3]int,
	tex *image.NRGBA,
	defaultR, defaultG, defaultB, defaultA uint8,
	lc *LightConfig,
) {
	nv := len(px)
	for _, i := range vi {
		if i < 0 || i >= nv {
			return
		}
	}

	x0, y0, z0 := px[vi[0]], py[vi[0]], pz[vi[0]]
	x1, y1, z1 := px[vi[1]], py[vi[1]], pz[vi[1]]
	x2, y2, z2 := px[vi[2]], py[vi[2]], pz[vi[2]]

	hasUV := tex != nil && tex.Rect.Dx() > 0 && tex.Rect.Dy() > 0
	for _, i := range ti {
		if i < 0 || i >= len(uvs) {
			hasUV = false
			break
		}
	}
	var u [3]float64
	var v [3]float64
	if hasUV {
		for k := 0; k < 3; k++ {
			u[k] = float64(uvs[ti[k]][0])
			v[k] = float64(uvs[ti[k]][1])
		}
	}

	// Face normal in screen space; y is flipped back to point up.
	e1 := mgl64.Vec3{x1 - x0, -(y1 - y0), z1 - z0}
	e2 := mgl64.Vec3{x2 - x0, -(y2 - y0), z2 - z0}
	n := e1.Cross(e2)
	if n.Len() < 1e-8 {
		return
	}
	shade := lc.ComputeShade(n.Normalize())

	size := fb.Width
	minX := max(int(math.Min(math.Min(x0, x1), x2)), 0)
	maxX := min(int(math.Max(math.Max(x0, x1), x2))+1, size-1)
	minY := max(int(math.Min(math.Min(y0, y1), y2)), 0)
	maxY := min(int(math.Max(math.Max(y0, y1), y2))+1, fb.Height-1)
	if minX > maxX || minY > maxY {
		return
	}

	det := (y1-y2)*(x0-x2) + (x2-x1)*(y0-y2)
	if det > -1e-8 && det < 1e-8 {
		return
	}
	invDet := 1.0 / det

	dy12 := y1 - y2
	dx21 := x2 - x1
	dy20 := y2 - y0
	dx02 := x0 - x2

	for sy := minY; sy <= maxY; sy++ {
		dsy := float64(sy) + 0.5 - y2
		rowOff := sy * size
		for sx := minX; sx <= maxX; sx++ {
			dsx := float64(sx) + 0.5 - x2
			w0 := (dy12*dsx + dx21*dsy) * invDet
			w1 := (dy20*dsx + dx02*dsy) * invDet
			w2 := 1.0 - w0 - w1
			if w0 < -0.001 || w1 < -0.001 || w2 < -0.001 {
				continue
			}

			z := w0*z0 + w1*z1 + w2*z2
			zIdx := rowOff + sx
			if z <= fb.ZBuf[zIdx] {
				continue
			}

			cr, cg, cb, ca := defaultR, defaultG, defaultB, defaultA
			if hasUV {
				cr, cg, cb, ca = SampleTexture(tex,
					w0*u[0]+w1*u[1]+w2*u[2],
					w0*v[0]+w1*v[1]+w2*v[2])
			}
			if ca < 8 {
				continue
			}
			fb.ZBuf[zIdx] = z

			i := zIdx * 4
			fb.Color[i], fb.Color[i+1], fb.Color[i+2] = lc.Shade(cr, cg, cb, shade)
			fb.Color[i+3] = ca
		}
	}
}
