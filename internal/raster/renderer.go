package raster

import (
	"image"

	"md3-renderer/internal/view"
)

// Surface is one posed, world-space mesh ready for rasterization.
// Triangle indices address Verts and UVs alike.
type Surface struct {
	Name  string
	Verts [][3]float32
	UVs   [][2]float32
	Tris  [][3]int32
	Tex   *image.NRGBA
}

// Render rasterizes surfaces to a (size·supersample)² NRGBA image with a
// transparent background, fitted to the view of cam.
func Render(surfaces []Surface, cam view.Camera, size, supersample int) *image.NRGBA {
	if supersample < 1 {
		supersample = 1
	}
	renderSize := max(size*supersample, 0)
	if len(surfaces) == 0 || renderSize == 0 {
		return image.NewNRGBA(image.Rect(0, 0, renderSize, renderSize))
	}

	sets := make([][][3]float32, len(surfaces))
	for i := range surfaces {
		sets[i] = surfaces[i].Verts
	}
	margin := 16 * supersample
	if 2*margin >= renderSize {
		margin = 0
	}
	proj := view.Fit(cam, sets, renderSize, margin)

	fb := NewFrameBuffer(renderSize, renderSize)
	lc := DefaultLightConfig()

	for _, s := range surfaces {
		if len(s.Verts) == 0 {
			continue
		}
		px, py, pz := proj.Project(s.Verts)

		var defR, defG, defB, defA uint8 = 160, 160, 170, 255
		if s.Tex != nil {
			defR, defG, defB, defA = averageColor(s.Tex)
		}

		for _, tri := range s.Tris {
			idx := [3]int{int(tri[0]), int(tri[1]), int(tri[2])}
			RasterizeTriangle(fb, px, py, pz, s.UVs, idx, idx, s.Tex, defR, defG, defB, defA, &lc)
		}
	}

	return fb.Image()
}

func averageColor(tex *image.NRGBA) (uint8, uint8, uint8, uint8) {
	b := tex.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return 160, 160, 170, 255
	}

	var sumR, sumG, sumB float64
	for y := 0; y < h; y++ {
		off := y * tex.Stride
		for x := 0; x < w; x++ {
			i := off + x*4
			sumR += float64(tex.Pix[i])
			sumG += float64(tex.Pix[i+1])
			sumB += float64(tex.Pix[i+2])
		}
	}
	n := float64(w * h)
	return uint8(sumR/n + 0.5), uint8(sumG/n + 0.5), uint8(sumB/n + 0.5), 255
}
