package md3

import (
	"math"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// XYZScale converts fixed-point vertex coordinates to model units.
const XYZScale = 1.0 / 64

// DecodePosition converts a fixed-point vertex position to model units.
func DecodePosition(raw [3]int16) mgl32.Vec3 {
	return mgl32.Vec3{
		float32(raw[0]) * XYZScale,
		float32(raw[1]) * XYZScale,
		float32(raw[2]) * XYZScale,
	}
}

// EncodePosition is the inverse of DecodePosition, rounding to the nearest
// tick and saturating at the int16 range.
func EncodePosition(p mgl32.Vec3) [3]int16 {
	var raw [3]int16
	for i := range raw {
		v := math32.Floor(p[i]/XYZScale + 0.5)
		switch {
		case v > math.MaxInt16:
			v = math.MaxInt16
		case v < math.MinInt16:
			v = math.MinInt16
		}
		raw[i] = int16(v)
	}
	return raw
}

// DecodeNormal unpacks a spherical normal: latitude in the high byte,
// longitude in the low byte, both in steps of 2π/255. The formula is the
// one the format's exporters use, not a uniform sphere mapping.
func DecodeNormal(packed uint16) mgl32.Vec3 {
	lat := float32((packed>>8)&0xff) * (2 * math32.Pi / 255)
	lng := float32(packed&0xff) * (2 * math32.Pi / 255)
	sinLat, cosLat := math32.Sincos(lat)
	sinLng, cosLng := math32.Sincos(lng)
	return mgl32.Vec3{cosLat * sinLng, sinLat * sinLng, cosLng}
}

// Position returns the vertex position in model units.
func (v Vertex) Position() mgl32.Vec3 {
	return DecodePosition(v.Pos)
}

// Normal3 returns the decoded unit normal.
func (v Vertex) Normal3() mgl32.Vec3 {
	return DecodeNormal(v.Normal)
}
