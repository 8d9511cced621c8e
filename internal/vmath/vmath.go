// Package vmath has the small scalar helpers shared by both generators.
// The float helpers mirror the shading-language builtins they replace so the
// pattern code reads the same as a fragment shader would.
package vmath

import (
	"math"

	"golang.org/x/exp/constraints"
)

func Clamp[N constraints.Integer | constraints.Float](n, minN, maxN N) N {
	n = min(n, maxN)
	n = max(n, minN)
	return n
}

func Clamp01(v float64) float64 {
	return Clamp(v, 0, 1)
}

func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Fract returns x - floor(x), always in [0,1).
func Fract(x float64) float64 {
	f := x - math.Floor(x)
	if f >= 1 {
		return 0
	}
	return f
}

// Mod is the floored modulo (sign follows y), unlike math.Mod.
func Mod(x, y float64) float64 {
	return x - y*math.Floor(x/y)
}

// Smoothstep is the Hermite step between edge0 and edge1. Reversed edges
// produce a falling step.
func Smoothstep(edge0, edge1, x float64) float64 {
	t := Clamp01((x - edge0) / (edge1 - edge0))
	return t * t * (3 - 2*t)
}

// Vec3 is a linear RGB triple in [0,1].
type Vec3 [3]float64

func (v Vec3) Add(s float64) Vec3 {
	return Vec3{v[0] + s, v[1] + s, v[2] + s}
}

// Mix blends a toward b by t, component-wise.
func Mix(a, b Vec3, t float64) Vec3 {
	return Vec3{
		Lerp(a[0], b[0], t),
		Lerp(a[1], b[1], t),
		Lerp(a[2], b[2], t),
	}
}

func (v Vec3) Clamp01() Vec3 {
	return Vec3{Clamp01(v[0]), Clamp01(v[1]), Clamp01(v[2])}
}

// Bytes quantizes a [0,1] colour to 8 bits per channel with rounding.
func (v Vec3) Bytes() (uint8, uint8, uint8) {
	c := v.Clamp01()
	return uint8(c[0]*255 + 0.5), uint8(c[1]*255 + 0.5), uint8(c[2]*255 + 0.5)
}
