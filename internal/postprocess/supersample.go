package postprocess

import (
	"image"

	"golang.org/x/image/draw"
)

// Downsample shrinks a supersampled render by factor using Catmull-Rom
// filtering. Scaling runs on premultiplied alpha so transparent edges
// keep no dark halo.
func Downsample(img *image.NRGBA, factor int) *image.NRGBA {
	b := img.Bounds()
	if factor <= 1 || b.Dx() < factor || b.Dy() < factor {
		return img
	}
	w, h := b.Dx()/factor, b.Dy()/factor

	premul := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(premul, premul.Bounds(), img, b, draw.Src, nil)

	out := image.NewNRGBA(premul.Bounds())
	draw.Draw(out, out.Bounds(), premul, image.Point{}, draw.Src)
	return out
}

// Fit scales img to fit a size×size square, keeping its aspect ratio and
// centering it on a transparent background.
func Fit(img *image.NRGBA, size int) *image.NRGBA {
	b := img.Bounds()
	if b.Dx() == size && b.Dy() == size {
		return img
	}
	out := image.NewNRGBA(image.Rect(0, 0, size, size))
	if b.Empty() || size <= 0 {
		return out
	}
	w, h := size, size
	if b.Dx() > b.Dy() {
		h = max(size*b.Dy()/b.Dx(), 1)
	} else {
		w = max(size*b.Dx()/b.Dy(), 1)
	}
	x0, y0 := (size-w)/2, (size-h)/2
	premul := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(premul, premul.Bounds(), img, b, draw.Src, nil)
	draw.Draw(out, image.Rect(x0, y0, x0+w, y0+h), premul, image.Point{}, draw.Src)
	return out
}
