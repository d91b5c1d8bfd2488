package raster

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// LightConfig holds precomputed lighting parameters. Directions are in
// view space (X right, Y up, Z toward the viewer).
type LightConfig struct {
	LightDir  mgl64.Vec3
	RimDir    mgl64.Vec3
	HalfMain  mgl64.Vec3 // Blinn-Phong half vector of LightDir and the view
	Ambient   float64
	Hemi      float64
	Direct    float64
	Rim       float64
	SpecInt   float64
	SpecPow   float64
	Exposure  float64
	InvGamma  float64
}

// DefaultLightConfig returns a key light from the upper right and a cool
// rim light from behind.
func DefaultLightConfig() LightConfig {
	lightDir := mgl64.Vec3{0.45, 0.65, 0.6}.Normalize()
	rimDir := mgl64.Vec3{-0.5, 0.4, -0.75}.Normalize()
	viewDir := mgl64.Vec3{0, 0, 1}

	return LightConfig{
		LightDir: lightDir,
		RimDir:   rimDir,
		HalfMain: lightDir.Add(viewDir).Normalize(),
		Ambient:  0.45,
		Hemi:     0.40,
		Direct:   1.30,
		Rim:      0.45,
		SpecInt:  0.25,
		SpecPow:  16.0,
		Exposure: 1.0,
		InvGamma: 1.0 / 2.2,
	}
}

// ComputeShade returns the combined lighting scalar for a unit face
// normal. Faces are lit from both sides.
func (lc *LightConfig) ComputeShade(normal mgl64.Vec3) float64 {
	ndlMain := math.Abs(normal.Dot(lc.LightDir))
	ndlRim := math.Abs(normal.Dot(lc.RimDir))

	hemi := (normal[1]*0.5 + 0.5) * lc.Hemi

	ndh := math.Abs(normal.Dot(lc.HalfMain))
	spec := math.Pow(ndh, lc.SpecPow) * lc.SpecInt

	return lc.Ambient + hemi + ndlMain*lc.Direct + ndlRim*lc.Rim + spec
}

// Shade applies a lighting scalar to an sRGB color with ACES tone mapping.
func (lc *LightConfig) Shade(r, g, b uint8, shade float64) (uint8, uint8, uint8) {
	k := shade * lc.Exposure
	return lc.encode(srgbToLinear[r] * k), lc.encode(srgbToLinear[g] * k), lc.encode(srgbToLinear[b] * k)
}

func (lc *LightConfig) encode(linear float64) uint8 {
	return clamp255(math.Pow(ACESTonemap(linear), lc.InvGamma) * 255)
}

// Precomputed sRGB-to-linear lookup table.
var srgbToLinear [256]float64

func init() {
	for i := 0; i < 256; i++ {
		srgbToLinear[i] = math.Pow(float64(i)/255.0, 2.2)
	}
}

// ACESTonemap applies ACES filmic tone mapping to a linear value.
func ACESTonemap(x float64) float64 {
	return (x * (2.51*x + 0.03)) / (x*(2.43*x+0.59) + 0.14)
}

func clamp255(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}
