package gradient

import (
	"math"

	"github.com/iburimskiy/loopvis/internal/config"
	"github.com/iburimskiy/loopvis/internal/vmath"
)

const (
	ditherStrength = 1.0 / 255
	grainScale     = 0.05
)

func hash1(n float64) float64 {
	return vmath.Fract(math.Sin(n) * 43758.5453123)
}

// ValueNoise is lattice noise in [0,1). The upper lattice row is blended by
// fy, not fx, which is the aurora field's established shape.
func ValueNoise(x, y float64) float64 {
	px, py := math.Floor(x), math.Floor(y)
	fx, fy := x-px, y-py
	fx = fx * fx * (3 - 2*fx)
	fy = fy * fy * (3 - 2*fy)
	n := px + py*57
	return vmath.Lerp(
		vmath.Lerp(hash1(n), hash1(n+1), fx),
		vmath.Lerp(hash1(n+57), hash1(n+58), fy),
		fy,
	)
}

// InterleavedGradientNoise hashes a fragment coordinate into [0,1).
func InterleavedGradientNoise(x, y float64) float64 {
	return vmath.Fract(52.9829189 * vmath.Fract(x*0.06711056+y*0.00583715))
}

// GrainAmplitude is the full dither span for a grain setting.
func GrainAmplitude(grain float64) float64 {
	return ditherStrength + vmath.Clamp(grain, 0, config.MaxGrain)*grainScale
}

// Dither offsets c by the fragment's hash. It depends on position only so a
// still frame renders identically every time.
func Dither(c vmath.Vec3, fragX, fragY, amplitude float64) vmath.Vec3 {
	return c.Add((InterleavedGradientNoise(fragX, fragY) - 0.5) * amplitude)
}
