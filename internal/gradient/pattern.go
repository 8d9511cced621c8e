package gradient

import (
	"math"

	"github.com/iburimskiy/loopvis/internal/config"
	"github.com/iburimskiy/loopvis/internal/vmath"
)

const tau = 2 * math.Pi

// Params is the per-frame read of a Gradient config.
type Params struct {
	Type   config.GradientType
	Stops  Stops
	Angle  float64 // degrees
	Scale  float64
	Seed   float64
	PosX   float64 // uv, bottom-left origin
	PosY   float64
	Aspect float64
	Grain  float64
}

func ParamsFrom(c *config.Gradient) Params {
	aspect := 1.0
	if c.Height > 0 {
		aspect = float64(c.Width) / float64(c.Height)
	}
	return Params{
		Type:   c.Type,
		Stops:  NewStops(c),
		Angle:  c.Angle,
		Scale:  c.Scale,
		Seed:   c.Seed,
		PosX:   c.PosX / 100,
		PosY:   1 - c.PosY/100,
		Aspect: aspect,
		Grain:  c.Grain,
	}
}

// Frame is Params bound to one phase, with the phase-only terms computed once.
type Frame struct {
	*Params
	phase float64

	dirX, dirY float64 // LINEAR and STRIPES direction
	loopScale  float64 // RADIAL
	blobs      [config.MaxStops][2]float64
	waveShift  float64
	auroraX    float64
	auroraY    float64
}

func (p *Params) At(phase float64) Frame {
	f := Frame{Params: p, phase: phase}
	a := tau * phase

	angle := p.Angle
	if p.Type == config.Linear {
		angle += phase * 360
	}
	rad := angle * math.Pi / 180
	f.dirX, f.dirY = math.Cos(rad), math.Sin(rad)

	f.loopScale = p.Scale * (1 + 0.1*math.Sin(a))

	for i := 1; i < len(p.Stops) && i < len(f.blobs); i++ {
		fi := float64(i)
		f.blobs[i] = [2]float64{
			0.5 + 0.35*math.Cos(a+fi*2.1+p.Seed*10),
			0.5 + 0.35*math.Sin(a+fi*1.8+p.Seed*10),
		}
	}

	f.waveShift = a
	f.auroraX = 0.2 * math.Cos(a)
	f.auroraY = 0.2 * math.Sin(a)
	return f
}

// ColorAt evaluates the pattern at uv (bottom-left origin, [0,1]^2) and phase.
func ColorAt(u, v, phase float64, p *Params) vmath.Vec3 {
	f := p.At(phase)
	return f.ColorAt(u, v)
}

func (f *Frame) ColorAt(u, v float64) vmath.Vec3 {
	switch f.Type {
	case config.Linear:
		return f.linear(u, v)
	case config.Radial:
		return f.radial(u, v)
	case config.Conic:
		return f.conic(u, v)
	case config.Mesh:
		return f.mesh(u, v)
	case config.Stripes:
		return f.Stops[f.StripeIndex(u, v)]
	case config.Waves:
		return f.waves(u, v)
	case config.Aurora:
		return f.aurora(u, v)
	}
	return f.linear(u, v)
}

// centred is uv relative to the configured position, aspect corrected.
func (f *Frame) centred(u, v float64) (float64, float64) {
	return (u - f.PosX) * f.Aspect, v - f.PosY
}

func (f *Frame) linear(u, v float64) vmath.Vec3 {
	t := (u-0.5)*f.dirX + (v-0.5)*f.dirY + 0.5
	return f.Stops.Interpolate(t, BlendSmooth)
}

func (f *Frame) radial(u, v float64) vmath.Vec3 {
	x, y := f.centred(u, v)
	d := math.Hypot(x, y) / f.loopScale
	return f.Stops.Interpolate(d, BlendSmooth)
}

func (f *Frame) conic(u, v float64) vmath.Vec3 {
	x, y := f.centred(u, v)
	t := (math.Atan2(y, x) + math.Pi) / tau
	t = vmath.Fract(t + f.Angle/360 + f.phase)
	return f.Stops.Interpolate(t, BlendLinear)
}

func (f *Frame) mesh(u, v float64) vmath.Vec3 {
	c := f.Stops[0]
	for i := 1; i < len(f.Stops); i++ {
		b := f.blobs[i]
		d := math.Hypot(u-b[0], v-b[1])
		w := vmath.Smoothstep(1.2*f.Scale, 0, d)
		c = vmath.Mix(c, f.Stops[i], w)
	}
	return c
}

// StripeIndex is the hard band under uv. Each loop shifts the bands by
// exactly len(Stops), so the start pattern recurs.
func (f *Frame) StripeIndex(u, v float64) int {
	n := float64(len(f.Stops))
	t := (u*f.dirX+v*f.dirY)*10*f.Scale + f.phase*n
	return int(vmath.Mod(math.Floor(t), n))
}

func (f *Frame) waves(u, v float64) vmath.Vec3 {
	c := f.Stops[0]
	n := float64(len(f.Stops))
	for i := 1; i < len(f.Stops); i++ {
		fi := float64(i)
		h := 0.1 + 0.8*(fi/n)
		wave := math.Sin(u*4+f.waveShift+fi) * 0.08 * f.Scale
		line := vmath.Smoothstep(h+wave+0.01, h+wave, v)
		c = vmath.Mix(c, f.Stops[i], line)
	}
	return c
}

// aurora walks the noise field on a circle so the sampled neighbourhood
// repeats every cycle.
func (f *Frame) aurora(u, v float64) vmath.Vec3 {
	c := f.Stops[0]
	for i := 1; i < len(f.Stops); i++ {
		nx := u*2 + f.auroraX
		ny := v*1.5 + f.auroraY + float64(i)*0.5
		mask := vmath.Smoothstep(0.3, 0.7, ValueNoise(nx, ny))
		c = vmath.Mix(c, f.Stops[i], mask*0.5)
	}
	return c
}
