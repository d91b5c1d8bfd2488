package postprocess

import (
	"image"
)

// CropAlpha returns the smallest sub-image holding every non-transparent
// pixel. Fully transparent images are returned unchanged.
func CropAlpha(img *image.NRGBA) *image.NRGBA {
	b := img.Bounds()
	minX, minY := b.Max.X, b.Max.Y
	maxX, maxY := b.Min.X-1, b.Min.Y-1
	for y := b.Min.Y; y < b.Max.Y; y++ {
		row := img.Pix[(y-b.Min.Y)*img.Stride:]
		for x := b.Min.X; x < b.Max.X; x++ {
			if row[(x-b.Min.X)*4+3] == 0 {
				continue
			}
			minX, maxX = min(minX, x), max(maxX, x)
			minY, maxY = min(minY, y), max(maxY, y)
		}
	}
	if maxX < minX {
		return img
	}

	cropW, cropH := maxX-minX+1, maxY-minY+1
	cropped := image.NewNRGBA(image.Rect(0, 0, cropW, cropH))
	for y := 0; y < cropH; y++ {
		src := img.PixOffset(minX, minY+y)
		copy(cropped.Pix[y*cropped.Stride:y*cropped.Stride+cropW*4], img.Pix[src:src+cropW*4])
	}
	return cropped
}

// CropAndCenter crops to the visible pixels, then scales them so the
// longer side covers fillRatio of a size×size canvas.
func CropAndCenter(img *image.NRGBA, size int, fillRatio float64) *image.NRGBA {
	if fillRatio <= 0 || fillRatio > 1 {
		fillRatio = 1
	}
	inner := max(int(float64(size)*fillRatio+0.5), 1)
	fitted := Fit(CropAlpha(img), inner)
	if inner == size {
		return fitted
	}
	canvas := image.NewNRGBA(image.Rect(0, 0, size, size))
	off := (size - inner) / 2
	for y := 0; y < inner; y++ {
		dst := canvas.PixOffset(off, off+y)
		copy(canvas.Pix[dst:dst+inner*4], fitted.Pix[y*fitted.Stride:y*fitted.Stride+inner*4])
	}
	return canvas
}
