package raster

import (
	"image"
	"image/color"
	"testing"

	"md3-renderer/internal/view"
)

func solid(c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = c.R, c.G, c.B, c.A
	}
	return img
}

// quad is a 2×2 square in the YZ plane at the given depth along X,
// facing the default camera.
func quad(x float32, tex *image.NRGBA) Surface {
	return Surface{
		Name:  "quad",
		Verts: [][3]float32{{x, -1, -1}, {x, 1, -1}, {x, 1, 1}, {x, -1, 1}},
		UVs:   [][2]float32{{0, 1}, {1, 1}, {1, 0}, {0, 0}},
		Tris:  [][3]int32{{0, 1, 2}, {0, 2, 3}},
		Tex:   tex,
	}
}

func TestRenderCoverage(t *testing.T) {
	img := Render([]Surface{quad(0, nil)}, view.Camera{}, 64, 1)
	if img.Bounds() != image.Rect(0, 0, 64, 64) {
		t.Fatalf("bounds = %v", img.Bounds())
	}
	if a := img.NRGBAAt(2, 2).A; a != 0 {
		t.Errorf("corner alpha = %d, want transparent margin", a)
	}
	if a := img.NRGBAAt(32, 32).A; a != 255 {
		t.Errorf("center alpha = %d, want opaque", a)
	}
}

func TestRenderDepth(t *testing.T) {
	red := solid(color.NRGBA{255, 0, 0, 255})
	blue := solid(color.NRGBA{0, 0, 255, 255})
	for _, order := range [][]Surface{
		{quad(1, blue), quad(-1, red)},
		{quad(-1, red), quad(1, blue)},
	} {
		img := Render(order, view.Camera{}, 64, 1)
		c := img.NRGBAAt(32, 32)
		if c.B <= c.R {
			t.Errorf("center = %v, want the nearer blue quad", c)
		}
	}
}

func TestRenderAlphaDiscard(t *testing.T) {
	clear := solid(color.NRGBA{255, 255, 255, 0})
	img := Render([]Surface{quad(0, clear)}, view.Camera{}, 64, 1)
	if a := img.NRGBAAt(32, 32).A; a != 0 {
		t.Errorf("alpha = %d, want discarded texels", a)
	}
}

func TestRenderSupersample(t *testing.T) {
	img := Render([]Surface{quad(0, nil)}, view.Camera{Yaw: 20, Perspective: true}, 32, 2)
	if img.Bounds().Dx() != 64 {
		t.Errorf("width = %d, want 64", img.Bounds().Dx())
	}
	if img := Render(nil, view.Camera{}, 16, 1); img.Bounds().Dx() != 16 {
		t.Errorf("empty render width = %d", img.Bounds().Dx())
	}
}

func TestRasterizeSkipsBadIndices(t *testing.T) {
	fb := NewFrameBuffer(8, 8)
	lc := DefaultLightConfig()
	px := []float64{0, 7, 0}
	py := []float64{0, 0, 7}
	pz := []float64{0, 0, 0}
	RasterizeTriangle(fb, px, py, pz, nil, [3]int{0, 1, 5}, [3]int{0, 1, 2}, nil, 1, 2, 3, 255, &lc)
	for _, b := range fb.Color {
		if b != 0 {
			t.Fatal("out-of-range triangle was drawn")
		}
	}
	RasterizeTriangle(fb, px, py, pz, nil, [3]int{0, 1, 2}, [3]int{0, 1, 2}, nil, 1, 2, 3, 255, &lc)
	if fb.Color[3] != 255 {
		t.Error("valid triangle without UVs not drawn with the default color")
	}
}

func TestSampleTextureWraps(t *testing.T) {
	tex := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	tex.SetNRGBA(0, 0, color.NRGBA{10, 0, 0, 255})
	tex.SetNRGBA(1, 0, color.NRGBA{200, 0, 0, 255})
	tests := []struct {
		u    float64
		want uint8
	}{
		{0, 10},
		{1, 10},
		{-1, 10},
		{0.5, 105},
		{2.5, 105},
		{-0.5, 105},
	}
	for _, tt := range tests {
		if r, _, _, _ := SampleTexture(tex, tt.u, 0); r != tt.want {
			t.Errorf("SampleTexture(u=%v) r = %d, want %d", tt.u, r, tt.want)
		}
	}
}

func TestShadeMonotonic(t *testing.T) {
	lc := DefaultLightConfig()
	dark, _, _ := lc.Shade(128, 128, 128, 0.5)
	bright, _, _ := lc.Shade(128, 128, 128, 2)
	if dark >= bright {
		t.Errorf("Shade(0.5) = %d, Shade(2) = %d", dark, bright)
	}
	if r, g, b := lc.Shade(0, 0, 0, 3); r != 0 || g != 0 || b != 0 {
		t.Errorf("black shaded to %d,%d,%d", r, g, b)
	}
}
