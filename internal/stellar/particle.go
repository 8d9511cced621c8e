// Package stellar is the warp field generator: a fixed set of particles
// cycling from far to near once per loop, drawn as perspective streaks.
package stellar

import (
	"math/rand/v2"

	"github.com/iburimskiy/loopvis/internal/config"
	"github.com/iburimskiy/loopvis/internal/vmath"
)

// Particle holds the identity fields fixed at creation. Per-frame positions
// are derived from it and never written back.
type Particle struct {
	X, Y        float64 // centred on the frame
	Z           float64 // [0, ZMax]
	BaseSize    float64 // [0,1)
	PhaseOffset float64 // [0,1)
}

// Generate creates count particles for a width x height frame. The same seed
// always yields the same field.
func Generate(count, width, height int, seed uint64) []Particle {
	count = vmath.Clamp(count, 0, config.MaxStarCount)
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	w, h := float64(width), float64(height)

	ps := make([]Particle, count)
	for i := range ps {
		ps[i] = Particle{
			X:           (rng.Float64() - 0.5) * w * 4,
			Y:           (rng.Float64() - 0.5) * h * 2,
			Z:           rng.Float64() * config.ZMax,
			BaseSize:    rng.Float64(),
			PhaseOffset: rng.Float64(),
		}
	}
	return ps
}

type fieldKey struct {
	count, width, height int
	seed                 uint64
}

// Field owns the particle set and regenerates it only when its inputs change.
type Field struct {
	key       fieldKey
	particles []Particle
	valid     bool
}

// Sync regenerates the field if count, frame size or seed changed since the
// last call. Reports whether it regenerated.
func (f *Field) Sync(count, width, height int, seed uint64) bool {
	key := fieldKey{count, width, height, seed}
	if f.valid && key == f.key {
		return false
	}
	f.key = key
	f.particles = Generate(count, width, height, seed)
	f.valid = true
	return true
}

func (f *Field) Particles() []Particle {
	return f.particles
}
