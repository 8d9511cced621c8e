// Package gradient is the animated pattern shader evaluated per pixel on the
// CPU. Every pattern is periodic in phase with period exactly 1.
package gradient

import (
	"github.com/iburimskiy/loopvis/internal/config"
	"github.com/iburimskiy/loopvis/internal/vmath"
)

// Blend selects how a band between two stops is filled.
type Blend int

const (
	BlendSmooth Blend = iota
	BlendLinear
)

// Stops is an ordered colour list, always 2 to 5 long when built by NewStops.
type Stops []vmath.Vec3

func NewStops(c *config.Gradient) Stops {
	hexes := c.StopColors()
	s := make(Stops, len(hexes))
	for i, h := range hexes {
		s[i] = config.NormalizedRGB(h)
	}
	return s
}

// Interpolate samples the stops at t in [0,1] across equal-width bands.
func (s Stops) Interpolate(t float64, blend Blend) vmath.Vec3 {
	n := len(s)
	switch n {
	case 0:
		return vmath.Vec3{}
	case 1:
		return s[0]
	}
	t = vmath.Clamp01(t)
	step := 1 / float64(n-1)
	i := vmath.Clamp(int(t/step), 0, n-2)
	start := float64(i) * step
	end := float64(i+1) * step

	var f float64
	switch blend {
	case BlendLinear:
		f = vmath.Clamp01((t - start) / step)
	default:
		f = vmath.Smoothstep(start, end, t)
	}
	return vmath.Mix(s[i], s[i+1], f)
}
