package stellar

import (
	"github.com/iburimskiy/loopvis/internal/config"
	"github.com/iburimskiy/loopvis/internal/vmath"
)

const (
	// trail offsets are trailLength scaled by this
	trailScale = 0.1

	minStrokeWidth = 0.2
)

// View is a pinhole camera centred on the frame.
type View struct {
	CX, CY float64
	Focal  float64
}

func NewView(c *config.Stellar) View {
	return View{
		CX:    float64(c.Width) / 2,
		CY:    float64(c.Height) / 2,
		Focal: c.Perspective,
	}
}

// Project applies the perspective divide. z must be positive.
func (v View) Project(x, y, z float64) (float64, float64) {
	return v.CX + (x/z)*v.Focal, v.CY + (y/z)*v.Focal
}

// TrailPoint is where the particle was trailLength*0.1 ago: deeper by
// speedZ times that and shifted back along the drift.
func TrailPoint(s State, c *config.Stellar) State {
	d := c.TrailLength * trailScale
	return State{
		X: s.X + c.DriftX*d,
		Y: s.Y + c.DriftY*d,
		Z: s.Z + c.SpeedZ*d,
	}
}

// DepthAlpha fades particles in from 0 at ZMax to 1 at ZMax/2. Particles at
// or behind the near plane are not drawn and report 0.
func DepthAlpha(z float64) float64 {
	if z <= config.NearPlane {
		return 0
	}
	return vmath.Clamp01((config.ZMax - z) / (config.ZMax / 2))
}

// Size is the particle's base stroke size before perspective.
func Size(p Particle, c *config.Stellar) float64 {
	r := c.Randomness
	return c.MinSize + (c.MaxSize-c.MinSize)*(p.BaseSize*r+0.5*(1-r))
}

// StrokeWidth scales size by perspective, nearer being thicker.
func StrokeWidth(size, focal, z float64) float64 {
	return max(minStrokeWidth, size*(focal/z))
}

// Streak is one particle's screen-space stroke.
type Streak struct {
	HeadX, HeadY float64
	TailX, TailY float64
	Width        float64
	Alpha        float64
}

// ComputeStreak runs the motion model and projection for p. ok is false when
// the particle is skipped this frame.
func ComputeStreak(p Particle, phase float64, c *config.Stellar, v View) (Streak, bool) {
	s := Advance(p, phase, c)
	if !s.Visible() {
		return Streak{}, false
	}
	alpha := DepthAlpha(s.Z)
	if alpha <= 0 {
		return Streak{}, false
	}
	t := TrailPoint(s, c)
	if t.Z <= 0 {
		return Streak{}, false
	}
	hx, hy := v.Project(s.X, s.Y, s.Z)
	tx, ty := v.Project(t.X, t.Y, t.Z)
	return Streak{
		HeadX: hx, HeadY: hy,
		TailX: tx, TailY: ty,
		Width: StrokeWidth(Size(p, c), v.Focal, s.Z),
		Alpha: alpha,
	}, true
}
