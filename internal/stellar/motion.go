package stellar

import (
	"github.com/iburimskiy/loopvis/internal/config"
	"github.com/iburimskiy/loopvis/internal/vmath"
)

// State is a particle's position for one frame.
type State struct {
	X, Y, Z float64
}

// LocalProgress is the particle's own position in the loop. The offset keeps
// particles from resetting in lock-step.
func LocalProgress(phase, offset float64) float64 {
	return vmath.Fract(phase + offset)
}

// Advance derives the frame position of p at phase. Static configs return the
// stored position. In a loop the particle travels from ZMax to 0 and drifts
// sideways, both as pure functions of its local progress.
func Advance(p Particle, phase float64, c *config.Stellar) State {
	if !c.Animated() {
		return State{X: p.X, Y: p.Y, Z: p.Z}
	}
	progress := LocalProgress(phase, p.PhaseOffset)
	travel := c.SpeedZ * progress
	return State{
		X: p.X - c.DriftX*travel,
		Y: p.Y - c.DriftY*travel,
		Z: config.ZMax * (1 - progress),
	}
}

// Visible reports whether the particle is in front of the near plane.
func (s State) Visible() bool {
	return s.Z > config.NearPlane
}
