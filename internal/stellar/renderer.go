package stellar

import (
	"image/color"

	"github.com/iburimskiy/loopvis/internal/config"
	"github.com/iburimskiy/loopvis/internal/surface"
)

var (
	fallbackBg   = color.NRGBA{2, 6, 23, 255}
	fallbackStar = color.NRGBA{255, 255, 255, 255}
	fallbackGlow = color.NRGBA{56, 189, 248, 255}
)

// glowBlur is the halo reach as a multiple of stroke width.
const glowBlur = 2.0

// Renderer draws the warp field. It keeps only the particle field between
// frames; every Render re-reads the config.
type Renderer struct {
	field Field
	seed  uint64
}

func NewRenderer(seed uint64) *Renderer {
	return &Renderer{seed: seed}
}

// Reseed changes the seed; the field regenerates on the next Render.
func (r *Renderer) Reseed(seed uint64) {
	r.seed = seed
}

func (r *Renderer) Seed() uint64 { return r.seed }

// Particles returns the field as of the last Render.
func (r *Renderer) Particles() []Particle {
	return r.field.Particles()
}

// Render paints one frame at phase into dst, resizing dst to the config.
func (r *Renderer) Render(dst *surface.Surface, c *config.Stellar, phase float64) {
	dst.Resize(c.Width, c.Height)
	if dst.Empty() {
		return
	}
	r.field.Sync(c.StarCount, c.Width, c.Height, r.seed)

	dst.Fill(config.ColorOr(c.BgColor, fallbackBg))
	star := config.ColorOr(c.StarColor, fallbackStar)
	glow := config.ColorOr(c.GlowColor, fallbackGlow)

	v := NewView(c)
	for _, p := range r.field.Particles() {
		s, ok := ComputeStreak(p, phase, c, v)
		if !ok {
			continue
		}
		if c.GlowEnabled {
			dst.Glow(s.TailX, s.TailY, s.HeadX, s.HeadY, s.Width, s.Width*glowBlur, glow, s.Alpha)
		}
		dst.StrokeLine(s.TailX, s.TailY, s.HeadX, s.HeadY, s.Width, star, s.Alpha)
	}
}
